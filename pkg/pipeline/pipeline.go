// Package pipeline provides the load → chart → render pipeline for riverplot.
//
// The CLI and tests share this package so a snapshot rendered from the command
// line and one rendered in a test go through the same steps.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read the CSV dataset (a file or the embedded table)
//  2. Chart: derive statistics and build a [plot.Viewport] at the requested size
//  3. Render: apply the hover state and produce each requested format
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	    Select:  "Amazon",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/riverplot/pkg/errors"
	"github.com/matzehuels/riverplot/pkg/plot"
	"github.com/matzehuels/riverplot/pkg/rivers"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 1280.0

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 720.0

	// DefaultScale is the default PNG resolution multiplier.
	DefaultScale = 1.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Point is a pointer position in frame pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Options contains all configuration for a pipeline run.
type Options struct {
	// Load options
	Data string `json:"data,omitempty"` // CSV path; empty uses the embedded table

	// Chart options
	Width  float64     `json:"width,omitempty"`
	Height float64     `json:"height,omitempty"`
	Theme  *plot.Theme `json:"theme,omitempty"` // nil uses plot.DefaultTheme

	// Hover state; at most one of Pointer and Select may be set
	Pointer *Point `json:"pointer,omitempty"`
	Select  string `json:"select,omitempty"` // river name, case-insensitive

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
	Interactive bool     `json:"interactive,omitempty"` // hover layer in SVG output
	JSONOps     bool     `json:"json_ops,omitempty"`    // include the display list in JSON output

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Dataset is the loaded table.
	Dataset *rivers.Dataset

	// Viewport holds the chart and the applied hover state.
	Viewport *plot.Viewport

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Records    int
	Issues     int
	LoadTime   time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParsePoint parses a pointer position written as "x,y".
func ParsePoint(s string) (Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return Point{}, errors.New(errors.ErrCodeInvalidInput, "pointer must be x,y, got %q", s)
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if errX != nil || errY != nil {
		return Point{}, errors.New(errors.ErrCodeInvalidInput, "pointer must be two numbers, got %q", s)
	}
	return Point{X: x, Y: y}, nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	if err := errors.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	if o.Scale < 0 || o.Scale > 8 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be between 0 and 8, got %g", o.Scale)
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Pointer != nil && o.Select != "" {
		return errors.New(errors.ErrCodeInvalidInput, "pointer and select are mutually exclusive")
	}
	if o.Theme != nil {
		if err := o.Theme.Validate(); err != nil {
			return err
		}
	}
	o.validated = true
	return nil
}

// ChartOptions returns the plot options derived from o.
func (o *Options) ChartOptions() []plot.Option {
	if o.Theme == nil {
		return nil
	}
	return []plot.Option{plot.WithTheme(*o.Theme)}
}
