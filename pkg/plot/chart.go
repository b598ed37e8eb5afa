package plot

import (
	"math"

	"github.com/matzehuels/riverplot/pkg/rivers"
)

// gridDivisions is the number of grid cells along each axis.
const gridDivisions = 10

// Marker radii as fractions of Layout.PointSize.
const (
	ringRadius     = 1.25
	accentRadius   = 0.6
	pointRadius    = 0.5
	ringStrokeSize = 2
	axisStrokeSize = 2
	gridStrokeSize = 1
)

// Option configures a [Chart].
type Option func(*Chart)

// WithTheme replaces the default theme.
func WithTheme(t Theme) Option {
	return func(c *Chart) { c.theme = t }
}

// Chart is an immutable scatterplot of a record sequence.
type Chart struct {
	records []rivers.Record
	stats   rivers.Stats
	theme   Theme
	colors  Colors
}

// New computes the statistics for records and returns a chart. It fails only
// if the theme is invalid.
func New(records []rivers.Record, opts ...Option) (*Chart, error) {
	c := &Chart{
		records: records,
		stats:   rivers.ComputeStats(records),
		theme:   DefaultTheme(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.theme.Validate(); err != nil {
		return nil, err
	}
	colors, err := c.theme.Palette.resolve()
	if err != nil {
		return nil, err
	}
	c.colors = colors
	return c, nil
}

// Records returns the charted records. Callers must not modify the slice.
func (c *Chart) Records() []rivers.Record { return c.records }

// Stats returns the derived statistics.
func (c *Chart) Stats() rivers.Stats { return c.stats }

// Theme returns the chart theme.
func (c *Chart) Theme() Theme { return c.theme }

// Colors returns the resolved palette.
func (c *Chart) Colors() Colors { return c.colors }

// Mapper returns the coordinate mapper for frame f.
func (c *Chart) Mapper(f Frame) Mapper {
	return NewMapper(c.stats, c.theme.Layout.Margin, f)
}

// Position returns the pixel position of record i in frame f.
func (c *Chart) Position(i int, f Frame) (x, y float64, ok bool) {
	if i < 0 || i >= len(c.records) {
		return 0, 0, false
	}
	return c.Mapper(f).Map(c.records[i])
}

// HitTest returns the first record, in dataset order, whose position lies
// strictly closer than Layout.PointSize to (px, py).
func (c *Chart) HitTest(px, py float64, f Frame) Selection {
	m := c.Mapper(f)
	sel := NoSelection
	for i, r := range c.records {
		x, y, ok := m.Map(r)
		if !ok {
			continue
		}
		if math.Hypot(px-x, py-y) < c.theme.Layout.PointSize && sel.IsNone() {
			sel = Select(i)
		}
	}
	return sel
}

// Draw paints the complete scene for frame f with sel highlighted.
func (c *Chart) Draw(cv Canvas, f Frame, sel Selection) {
	c.DrawBackground(cv)
	c.DrawGrid(cv, f)
	c.DrawAxes(cv, f)
	c.DrawPoints(cv, f, sel)
	if i, ok := sel.Index(); ok {
		c.DrawTooltip(cv, f, i)
	}
	c.DrawTitle(cv, f)
}

// DrawBackground fills the canvas with the background color.
func (c *Chart) DrawBackground(cv Canvas) {
	cv.Clear(c.colors.Background)
}

// DrawGrid draws the grid lines spanning the margin-inset plot area. Nothing
// is drawn when the frame is too small to have a plot area.
func (c *Chart) DrawGrid(cv Canvas, f Frame) {
	m := c.theme.Layout.Margin
	w, h := f.Width-2*m, f.Height-2*m
	if w <= 0 || h <= 0 {
		return
	}
	for k := 0; k <= gridDivisions; k++ {
		x := m + float64(k)*w/gridDivisions
		cv.Line(x, m, x, f.Height-m, gridStrokeSize, c.colors.GridLines)
	}
	for k := 0; k <= gridDivisions; k++ {
		y := m + float64(k)*h/gridDivisions
		cv.Line(m, y, f.Width-m, y, gridStrokeSize, c.colors.GridLines)
	}
}

// DrawAxes draws the bottom and left axis lines and their labels.
func (c *Chart) DrawAxes(cv Canvas, f Frame) {
	m := c.theme.Layout.Margin
	ink := c.colors.OnSurface
	cv.Line(m, f.Height-m, f.Width-m, f.Height-m, axisStrokeSize, ink)
	cv.Line(m, f.Height-m, m, m, axisStrokeSize, ink)

	label := TextStyle{Size: AxisLabelSize, Color: ink, Align: AlignCenter, Baseline: BaselineAlphabetic}
	cv.Text(c.theme.XLabel, f.Width/2, f.Height-m/2, label)
	label.Rotation = -math.Pi / 2
	cv.Text(c.theme.YLabel, m/2, f.Height/2, label)
}

// DrawPoints draws every plottable record, highlighting sel.
func (c *Chart) DrawPoints(cv Canvas, f Frame, sel Selection) {
	m := c.Mapper(f)
	for i, r := range c.records {
		x, y, ok := m.Map(r)
		if !ok {
			continue
		}
		c.DrawPoint(cv, x, y, sel.Is(i))
	}
}

// DrawPoint draws one marker at (x, y).
func (c *Chart) DrawPoint(cv Canvas, x, y float64, selected bool) {
	size := c.theme.Layout.PointSize
	if selected {
		cv.StrokeCircle(x, y, size*ringRadius, ringStrokeSize, c.colors.PrimaryLight)
		cv.FillCircle(x, y, size*accentRadius, c.colors.Accent)
		return
	}
	cv.FillCircle(x, y, size*pointRadius, c.colors.Primary)
}

// DrawTitle draws the chart title centered at the top.
func (c *Chart) DrawTitle(cv Canvas, f Frame) {
	cv.Text(c.theme.Title, f.Width/2, c.theme.Layout.TitleMargin, TextStyle{
		Size:     TitleSize,
		Color:    c.colors.OnSurface,
		Align:    AlignCenter,
		Baseline: BaselineTop,
	})
}
