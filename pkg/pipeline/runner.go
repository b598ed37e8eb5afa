package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/riverplot/pkg/errors"
	"github.com/matzehuels/riverplot/pkg/observability"
	"github.com/matzehuels/riverplot/pkg/plot"
	"github.com/matzehuels/riverplot/pkg/rivers"
)

// Runner executes the pipeline.
//
// The Runner is stateless except for the logger - it doesn't store pipeline
// results. Multiple goroutines can safely use the same Runner with different
// options; the viewports it returns are not shared.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete load → chart → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	// Stage 1: Load
	loadStart := time.Now()
	ds, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result := &Result{Dataset: ds}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Records = ds.Len()
	result.Stats.Issues = len(ds.Issues)

	// Stage 2: Chart
	vp, err := r.Viewport(ctx, ds, opts)
	if err != nil {
		return nil, err
	}
	result.Viewport = vp

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := Render(ctx, vp, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads the dataset named by opts.Data, or the embedded table when
// it is empty. Row-level defects are logged as warnings; the affected
// records stay in the dataset marked incomplete.
func (r *Runner) Load(ctx context.Context, opts Options) (*rivers.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	source := opts.Data
	if source == "" {
		source = rivers.DefaultSource
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, source)
	start := time.Now()

	var (
		ds  *rivers.Dataset
		err error
	)
	if opts.Data == "" {
		ds, err = rivers.Default()
	} else {
		ds, err = rivers.LoadFile(opts.Data)
	}
	if err != nil {
		hooks.OnLoadComplete(ctx, source, 0, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnLoadComplete(ctx, source, ds.Len(), len(ds.Issues), time.Since(start), nil)

	for _, issue := range ds.Issues {
		r.Logger.Warn("incomplete record", "row", issue.Row, "name", issue.Name, "reason", issue.Reason)
	}
	r.Logger.Info("loaded dataset",
		"source", source,
		"records", ds.Len(),
		"incomplete", len(ds.Issues),
		"duration", time.Since(start))
	return ds, nil
}

// Viewport builds the chart for ds and a viewport at the requested size,
// with the hover state from opts.Pointer or opts.Select applied.
func (r *Runner) Viewport(ctx context.Context, ds *rivers.Dataset, opts Options) (*plot.Viewport, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	chart, err := plot.New(ds.Records, opts.ChartOptions()...)
	if err != nil {
		return nil, err
	}
	vp := plot.NewViewport(chart, opts.Width, opts.Height)

	switch {
	case opts.Pointer != nil:
		vp.PointerMove(opts.Pointer.X, opts.Pointer.Y)
		r.Logger.Debug("applied pointer", "x", opts.Pointer.X, "y", opts.Pointer.Y, "selection", vp.Selection())
	case opts.Select != "":
		i, ok := ds.Find(opts.Select)
		if !ok {
			return nil, errors.New(errors.ErrCodeNotFound, "river %q not found in %s", opts.Select, ds.Source)
		}
		if _, _, ok := chart.Position(i, vp.Frame()); !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "river %q has incomplete data and is not plotted", ds.Records[i].Name)
		}
		vp.Select(plot.Select(i))
		r.Logger.Debug("applied selection", "river", ds.Records[i].Name, "index", i)
	}
	return vp, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
