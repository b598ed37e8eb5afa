package sink

import (
	"encoding/json"

	"github.com/matzehuels/riverplot/pkg/plot"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	ops bool
}

// WithJSONOps includes the full display list of drawing calls, enabling
// pixel-independent comparison of two renders.
func WithJSONOps() JSONOption { return func(r *jsonRenderer) { r.ops = true } }

type jsonOutput struct {
	Width     float64      `json:"width"`
	Height    float64      `json:"height"`
	Selection *int         `json:"selection"`
	Cursor    string       `json:"cursor"`
	Stats     jsonStats    `json:"stats"`
	Points    []jsonPoint  `json:"points"`
	Tooltip   *jsonTooltip `json:"tooltip,omitempty"`
	Ops       []plot.Op    `json:"ops,omitempty"`
}

type jsonStats struct {
	MaxLength        float64   `json:"max_length"`
	SortedDischarges []float64 `json:"sorted_discharges"`
}

type jsonPoint struct {
	Index int     `json:"index"`
	Name  string  `json:"name"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

type jsonTooltip struct {
	X     float64  `json:"x"`
	Y     float64  `json:"y"`
	W     float64  `json:"width"`
	H     float64  `json:"height"`
	Lines []string `json:"lines"`
}

// RenderJSON exports the viewport's scene as a pretty-printed JSON document:
// the frame, the current selection and cursor, the derived statistics, the
// mapped position of every plottable record and the tooltip box.
// Incomplete records are left out of points.
func RenderJSON(vp *plot.Viewport, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	c, f := vp.Chart(), vp.Frame()
	stats := c.Stats()
	out := jsonOutput{
		Width:  f.Width,
		Height: f.Height,
		Cursor: vp.Cursor().String(),
		Stats: jsonStats{
			MaxLength:        stats.MaxLength,
			SortedDischarges: stats.SortedDischarges,
		},
		Points: buildJSONPoints(c, f),
	}

	rec := &plot.Recorder{}
	if i, ok := vp.Selection().Index(); ok {
		out.Selection = &i
		if tip, ok := c.Tooltip(rec, f, i); ok {
			out.Tooltip = buildJSONTooltip(tip)
		}
	}

	if r.ops {
		vp.Render(rec)
		out.Ops = rec.Ops
	}

	return json.MarshalIndent(out, "", "  ")
}

func buildJSONPoints(c *plot.Chart, f plot.Frame) []jsonPoint {
	points := make([]jsonPoint, 0, len(c.Records()))
	for i, r := range c.Records() {
		x, y, ok := c.Position(i, f)
		if !ok {
			continue
		}
		points = append(points, jsonPoint{Index: i, Name: r.Name, X: x, Y: y})
	}
	return points
}

func buildJSONTooltip(tip plot.Tooltip) *jsonTooltip {
	lines := make([]string, len(tip.Lines))
	for i, l := range tip.Lines {
		lines[i] = l.Text
	}
	return &jsonTooltip{X: tip.Box.X, Y: tip.Box.Y, W: tip.Box.W, H: tip.Box.H, Lines: lines}
}
