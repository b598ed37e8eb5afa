package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/riverplot/pkg/errors"
	"github.com/matzehuels/riverplot/pkg/pipeline"
)

const defaultOutputBase = "rivers" // output base name when --output is omitted

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string   // output file path (or base path for multiple outputs); "-" for stdout
	formats     []string // output formats: "svg", "png", "pdf", "json"
	width       float64  // frame width in pixels
	height      float64  // frame height in pixels
	scale       float64  // PNG resolution multiplier
	pointer     string   // pointer position "x,y" to hover
	selectName  string   // river to select by name
	interactive bool     // hover layer in SVG output
	ops         bool     // include the display list in JSON output
}

// renderCommand creates the render command for writing chart snapshots.
//
// Default settings:
//   - format: svg
//   - width: 1280px, height: 720px
//   - interactive: true (hover tooltips in SVG)
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		width:       pipeline.DefaultWidth,
		height:      pipeline.DefaultHeight,
		scale:       pipeline.DefaultScale,
		interactive: true,
	}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the river chart to SVG, PNG, PDF or JSON",
		Long: `Render the river chart to one or more files.

The hover state of the snapshot is set with --pointer (a position in pixels)
or --select (a river name). SVG output is interactive by default: opening it
in a browser shows the tooltip of the river under the mouse.`,
		Example: `  riverplot render
  riverplot render -f png,svg --select Amazon -o amazon
  riverplot render -f png --width 800 --height 600 --pointer 420,130 --scale 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if opts.output == "-" && len(opts.formats) != 1 {
				return errors.New(errors.ErrCodeInvalidInput, "stdout output needs exactly one format, got %d", len(opts.formats))
			}
			return c.runRender(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple); - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "frame width in pixels")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "frame height in pixels")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG resolution multiplier")
	cmd.Flags().StringVar(&opts.pointer, "pointer", "", "hover the pointer at x,y (pixels)")
	cmd.Flags().StringVar(&opts.selectName, "select", "", "hover the named river")
	cmd.Flags().BoolVar(&opts.interactive, "interactive", opts.interactive, "add hover tooltips to SVG output")
	cmd.Flags().BoolVar(&opts.ops, "ops", false, "include drawing operations in JSON output")
	cmd.MarkFlagsMutuallyExclusive("pointer", "select")
	c.registerRenderCompletions(cmd)

	return cmd
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	popts, err := c.baseOptions()
	if err != nil {
		return err
	}
	popts.Formats = opts.formats
	popts.Width = opts.width
	popts.Height = opts.height
	popts.Scale = opts.scale
	popts.Select = opts.selectName
	popts.Interactive = opts.interactive
	popts.JSONOps = opts.ops
	if popts.Pointer, err = parsePointer(opts.pointer); err != nil {
		return err
	}

	var spinner *Spinner
	if slices.Contains(opts.formats, pipeline.FormatPDF) && opts.output != "-" {
		spinner = newSpinnerWithContext(ctx, "Rendering...")
		spinner.Start()
	}
	result, err := c.newRunner().Execute(ctx, popts)
	if spinner != nil {
		if err != nil {
			spinner.StopWithError("Render failed")
		} else {
			spinner.Stop()
		}
	}
	if err != nil {
		return err
	}

	if opts.output == "-" {
		_, err := os.Stdout.Write(result.Artifacts[opts.formats[0]])
		return err
	}

	paths := outputPaths(opts.output, opts.formats)
	for _, format := range opts.formats {
		if err := writeOutput(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
	}
	prog.done("Rendered chart")

	if n := result.Stats.Issues; n > 0 {
		printWarning("%d incomplete record(s) not plotted (run with -v for details)", n)
	}
	if sel, ok := result.Viewport.Selection().Index(); ok {
		printSuccess("Rendered %s with %s selected", strings.Join(opts.formats, ", "), result.Dataset.Records[sel].Name)
	} else {
		printSuccess("Rendered %s", strings.Join(opts.formats, ", "))
	}
	for _, format := range opts.formats {
		printFile(paths[format])
	}
	printNewline()
	printNextStep("Explore interactively", appName+" explore")
	return nil
}

// outputPaths maps each format to its output file. A single format uses
// output as given; several formats share output as base path, minus any
// format extension.
func outputPaths(output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath derives the base output path. If output is empty, the default
// base name is used. If output has a format extension (.svg, .pdf, etc.), it
// strips that extension.
func basePath(output string) string {
	if output == "" {
		return defaultOutputBase
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func writeOutput(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(data); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}

func openOutput(path string) (io.WriteCloser, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "create %s", dir)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	return f, nil
}
