package sink

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/riverplot/pkg/plot"
)

// Box-drawing runes used by [Terminal].
const (
	runeHorizontal = '─'
	runeVertical   = '│'
	runeCross      = '┼'
	runeDiagonal   = '·'
	runePoint      = '●'
	runeRingLeft   = '('
	runeRingRight  = ')'
)

type cell struct {
	r      rune
	fg, bg color.NRGBA
}

// Terminal is a [plot.Canvas] made of character cells. Each cell stands for
// a cellW by cellH block of pixels, so the chart lays out in pixel space and
// is snapped onto the grid when drawn. Text is measured as one cell per rune.
type Terminal struct {
	cols, rows   int
	cellW, cellH float64
	cells        []cell
}

var _ plot.Canvas = (*Terminal)(nil)

// NewTerminal returns a cols by rows cell canvas.
func NewTerminal(cols, rows int, cellW, cellH float64) *Terminal {
	cols, rows = max(cols, 0), max(rows, 0)
	return &Terminal{
		cols:  cols,
		rows:  rows,
		cellW: cellW,
		cellH: cellH,
		cells: make([]cell, cols*rows),
	}
}

// Frame returns the canvas size in pixels.
func (t *Terminal) Frame() plot.Frame {
	return plot.Frame{Width: float64(t.cols) * t.cellW, Height: float64(t.rows) * t.cellH}
}

// Cell converts a pixel coordinate to the cell containing it.
func (t *Terminal) Cell(x, y float64) (col, row int) {
	return int(math.Floor(x / t.cellW)), int(math.Floor(y / t.cellH))
}

// Pixel returns the pixel coordinate of the center of a cell.
func (t *Terminal) Pixel(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * t.cellW, (float64(row) + 0.5) * t.cellH
}

func (t *Terminal) MeasureText(s string, _ float64) float64 {
	return float64(len([]rune(s))) * t.cellW
}

func (t *Terminal) Clear(c color.NRGBA) {
	for i := range t.cells {
		t.cells[i] = cell{r: ' ', fg: c, bg: c}
	}
}

func (t *Terminal) Line(x1, y1, x2, y2, _ float64, c color.NRGBA) {
	c1, r1 := t.Cell(x1, y1)
	c2, r2 := t.Cell(x2, y2)
	switch {
	case r1 == r2:
		for col := min(c1, c2); col <= max(c1, c2); col++ {
			t.stroke(col, r1, runeHorizontal, c)
		}
	case c1 == c2:
		for row := min(r1, r2); row <= max(r1, r2); row++ {
			t.stroke(c1, row, runeVertical, c)
		}
	default:
		steps := max(abs(c2-c1), abs(r2-r1))
		for k := 0; k <= steps; k++ {
			f := float64(k) / float64(steps)
			col := c1 + int(math.Round(f*float64(c2-c1)))
			row := r1 + int(math.Round(f*float64(r2-r1)))
			t.stroke(col, row, runeDiagonal, c)
		}
	}
}

// stroke draws a line rune, merging perpendicular strokes into a crossing.
func (t *Terminal) stroke(col, row int, r rune, c color.NRGBA) {
	p := t.at(col, row)
	if p == nil {
		return
	}
	if (r == runeHorizontal && p.r == runeVertical) || (r == runeVertical && p.r == runeHorizontal) {
		r = runeCross
	}
	p.r, p.fg = r, blend(c, p.bg)
}

func (t *Terminal) FillCircle(cx, cy, _ float64, c color.NRGBA) {
	col, row := t.Cell(cx, cy)
	if p := t.at(col, row); p != nil {
		p.r, p.fg = runePoint, blend(c, p.bg)
	}
}

func (t *Terminal) StrokeCircle(cx, cy, _, _ float64, c color.NRGBA) {
	col, row := t.Cell(cx, cy)
	if p := t.at(col-1, row); p != nil {
		p.r, p.fg = runeRingLeft, blend(c, p.bg)
	}
	if p := t.at(col+1, row); p != nil {
		p.r, p.fg = runeRingRight, blend(c, p.bg)
	}
}

// FillRoundedRect fills the covered cells and outlines them with rounded
// corners. The shadow color, when given, tints the outline.
func (t *Terminal) FillRoundedRect(x, y, w, h, _ float64, c color.NRGBA, shadow *plot.Shadow) {
	c1, r1 := t.Cell(x, y)
	c2, r2 := t.Cell(x+w, y+h)
	edge := c
	if shadow != nil {
		edge = blend(shadow.Color, opaque(c))
	}
	for row := r1; row <= r2; row++ {
		for col := c1; col <= c2; col++ {
			p := t.at(col, row)
			if p == nil {
				continue
			}
			bg := blend(c, p.bg)
			*p = cell{r: borderRune(col, row, c1, r1, c2, r2), fg: blend(edge, bg), bg: bg}
		}
	}
}

func borderRune(col, row, c1, r1, c2, r2 int) rune {
	top, bottom := row == r1, row == r2
	left, right := col == c1, col == c2
	switch {
	case top && left:
		return '╭'
	case top && right:
		return '╮'
	case bottom && left:
		return '╰'
	case bottom && right:
		return '╯'
	case top || bottom:
		return runeHorizontal
	case left || right:
		return runeVertical
	}
	return ' '
}

// Text writes s one rune per cell. Rotated text runs top to bottom.
func (t *Terminal) Text(s string, x, y float64, style plot.TextStyle) {
	runes := []rune(s)
	if len(runes) == 0 {
		return
	}
	n := len(runes)
	col, row := t.Cell(x, y)
	if style.Baseline == plot.BaselineAlphabetic {
		_, row = t.Cell(x, y-t.cellH/2)
	}

	offset := 0
	switch style.Align {
	case plot.AlignCenter:
		offset = n / 2
	case plot.AlignRight:
		offset = n
	}

	vertical := math.Abs(math.Sin(style.Rotation)) > 0.5
	for k, r := range runes {
		cc, rr := col+k-offset, row
		if vertical {
			cc, rr = col, row+k-offset
		}
		if p := t.at(cc, rr); p != nil {
			p.r, p.fg = r, blend(style.Color, p.bg)
		}
	}
}

// Plain returns the cell runes without color, one line per row.
func (t *Terminal) Plain() string {
	var b strings.Builder
	for row := range t.rows {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := range t.cols {
			b.WriteRune(t.glyph(col, row))
		}
	}
	return b.String()
}

// String renders the cells with lipgloss colors, one line per row. Adjacent
// cells sharing colors are styled as a single run.
func (t *Terminal) String() string {
	var b strings.Builder
	for row := range t.rows {
		if row > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for col := 1; col <= t.cols; col++ {
			if col < t.cols && t.sameStyle(row, start, col) {
				continue
			}
			b.WriteString(t.run(row, start, col))
			start = col
		}
	}
	return b.String()
}

func (t *Terminal) sameStyle(row, a, b int) bool {
	pa, pb := t.cells[row*t.cols+a], t.cells[row*t.cols+b]
	return pa.fg == pb.fg && pa.bg == pb.bg
}

func (t *Terminal) run(row, from, to int) string {
	var text strings.Builder
	for col := from; col < to; col++ {
		text.WriteRune(t.glyph(col, row))
	}
	p := t.cells[row*t.cols+from]
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(plot.Hex(opaque(p.fg)))).
		Background(lipgloss.Color(plot.Hex(opaque(p.bg)))).
		Render(text.String())
}

func (t *Terminal) glyph(col, row int) rune {
	if r := t.cells[row*t.cols+col].r; r != 0 {
		return r
	}
	return ' '
}

func (t *Terminal) at(col, row int) *cell {
	if col < 0 || row < 0 || col >= t.cols || row >= t.rows {
		return nil
	}
	return &t.cells[row*t.cols+col]
}

// blend composites c over an opaque background.
func blend(c, bg color.NRGBA) color.NRGBA {
	mixed := toColorful(bg).BlendRgb(toColorful(c), float64(c.A)/255)
	r, g, b := mixed.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// toColorful drops alpha; colorful.MakeColor would reject transparent colors.
func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
