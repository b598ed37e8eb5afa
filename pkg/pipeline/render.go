package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/riverplot/pkg/errors"
	"github.com/matzehuels/riverplot/pkg/observability"
	"github.com/matzehuels/riverplot/pkg/plot"
	"github.com/matzehuels/riverplot/pkg/render/sink"
)

// Render generates output artifacts for vp in the requested formats. The
// viewport's hover state is rendered as is.
func Render(ctx context.Context, vp *plot.Viewport, opts Options) (artifacts map[string][]byte, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	defer func() { hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err) }()

	svgOpts := buildSVGOptions(opts)
	artifacts = make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(vp, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(vp, sink.WithScale(opts.Scale))
		case FormatPDF:
			data, err = sink.RenderPDF(vp, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(vp, buildJSONOptions(opts)...)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, errors.Wrap(codeOf(err), err, "render %s", format)
		}
		opts.Logger.Debug("rendered format", "format", format, "bytes", len(data))
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithEmbeddedFont()}
	if opts.Interactive {
		svgOpts = append(svgOpts, sink.WithInteractive())
	}
	return svgOpts
}

func buildJSONOptions(opts Options) []sink.JSONOption {
	if opts.JSONOps {
		return []sink.JSONOption{sink.WithJSONOps()}
	}
	return nil
}

// codeOf keeps the code of a structured error, falling back to internal.
func codeOf(err error) errors.Code {
	if code := errors.GetCode(err); code != "" {
		return code
	}
	return errors.ErrCodeInternal
}
