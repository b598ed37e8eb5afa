package plot

import (
	"image/color"
)

// tooltipGap is the distance between a point and its tooltip box.
const tooltipGap = 10

// tooltipShadow matches a 0,2 offset, 4px blur, 20% black drop shadow.
var tooltipShadow = Shadow{OffsetX: 0, OffsetY: 2, Blur: 4, Color: color.NRGBA{A: 51}}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

// TooltipLine is one centered line of tooltip text.
type TooltipLine struct {
	Text  string
	Size  float64
	Color color.NRGBA
	X, Y  float64 // anchor: horizontal center, vertical middle
}

// Tooltip is the laid-out info box for one record.
type Tooltip struct {
	Box   Rect
	Lines []TooltipLine
}

// TooltipText returns the lines shown for record i: name, length, discharge
// and first country.
func (c *Chart) TooltipText(i int) []string {
	r := c.records[i]
	return []string{
		r.Name,
		"Length: " + FormatNumber(r.Length) + " km",
		"Discharge: " + FormatNumber(r.Discharge) + " m³/s",
		"Country: " + r.FirstCountry(),
	}
}

// Tooltip lays out the info box for record i in frame f. The box sits to the
// right of and above the point, flipping left when it would cross the right
// margin and below when it would cross the top margin; it never starts left
// of the margin.
func (c *Chart) Tooltip(m Measurer, f Frame, i int) (Tooltip, bool) {
	x, y, ok := c.Position(i, f)
	if !ok {
		return Tooltip{}, false
	}
	l := c.theme.Layout
	texts := c.TooltipText(i)

	lines := make([]TooltipLine, len(texts))
	widest := 0.0
	for k, s := range texts {
		size, col := float64(TooltipBodySize), c.colors.Muted
		if k == 0 {
			size, col = TooltipTitleSize, c.colors.OnSurface
		}
		lines[k] = TooltipLine{Text: s, Size: size, Color: col}
		widest = max(widest, m.MeasureText(s, size))
	}

	w := widest + 2*l.Padding
	h := l.LineHeight*float64(len(lines)) + 2*l.Padding

	bx := x + tooltipGap
	if x+w+tooltipGap > f.Width-l.Margin {
		bx = x - w - tooltipGap
	}
	bx = max(l.Margin, bx)

	by := y - h - tooltipGap
	if by < l.Margin {
		by = y + tooltipGap
	}

	for k := range lines {
		lines[k].X = bx + w/2
		lines[k].Y = by + l.Padding + l.LineHeight*(float64(k)+0.5)
	}
	return Tooltip{Box: Rect{X: bx, Y: by, W: w, H: h}, Lines: lines}, true
}

// DrawTooltip draws the info box for record i. The shadow applies to the box
// only, never to the text.
func (c *Chart) DrawTooltip(cv Canvas, f Frame, i int) {
	tip, ok := c.Tooltip(cv, f, i)
	if !ok {
		return
	}
	shadow := tooltipShadow
	b := tip.Box
	cv.FillRoundedRect(b.X, b.Y, b.W, b.H, c.theme.Layout.BorderRadius, c.colors.Surface, &shadow)
	for _, line := range tip.Lines {
		cv.Text(line.Text, line.X, line.Y, TextStyle{
			Size:     line.Size,
			Color:    line.Color,
			Align:    AlignCenter,
			Baseline: BaselineMiddle,
		})
	}
}
