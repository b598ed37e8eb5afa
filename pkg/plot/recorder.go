package plot

import (
	"image/color"

	"github.com/matzehuels/riverplot/pkg/fonts"
)

// Op kinds recorded by [Recorder].
const (
	OpClear        = "clear"
	OpLine         = "line"
	OpFillCircle   = "fill_circle"
	OpStrokeCircle = "stroke_circle"
	OpRoundedRect  = "rounded_rect"
	OpText         = "text"
)

// Op is one recorded drawing call. Only the fields relevant to Kind are set.
type Op struct {
	Kind     string   `json:"kind"`
	X        float64  `json:"x,omitempty"`
	Y        float64  `json:"y,omitempty"`
	X2       float64  `json:"x2,omitempty"`
	Y2       float64  `json:"y2,omitempty"`
	W        float64  `json:"w,omitempty"`
	H        float64  `json:"h,omitempty"`
	R        float64  `json:"r,omitempty"`
	Stroke   float64  `json:"stroke,omitempty"`
	Color    string   `json:"color"`
	Text     string   `json:"text,omitempty"`
	Size     float64  `json:"size,omitempty"`
	Align    Align    `json:"align,omitempty"`
	Baseline Baseline `json:"baseline,omitempty"`
	Rotation float64  `json:"rotation,omitempty"`
	Shadow   *Shadow  `json:"shadow,omitempty"`
}

// Recorder is a [Canvas] that keeps a display list instead of pixels.
// Text is measured with the embedded font unless Measure is set.
type Recorder struct {
	Ops     []Op
	Measure func(s string, size float64) float64
}

var _ Canvas = (*Recorder)(nil)

// MeasureText implements [Measurer].
func (r *Recorder) MeasureText(s string, size float64) float64 {
	if r.Measure != nil {
		return r.Measure(s, size)
	}
	return fonts.Measure(s, size)
}

func (r *Recorder) Clear(c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpClear, Color: Hex(c)})
}

func (r *Recorder) Line(x1, y1, x2, y2, width float64, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, X: x1, Y: y1, X2: x2, Y2: y2, Stroke: width, Color: Hex(c)})
}

func (r *Recorder) FillCircle(cx, cy, radius float64, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpFillCircle, X: cx, Y: cy, R: radius, Color: Hex(c)})
}

func (r *Recorder) StrokeCircle(cx, cy, radius, width float64, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokeCircle, X: cx, Y: cy, R: radius, Stroke: width, Color: Hex(c)})
}

func (r *Recorder) FillRoundedRect(x, y, w, h, radius float64, c color.NRGBA, shadow *Shadow) {
	r.Ops = append(r.Ops, Op{Kind: OpRoundedRect, X: x, Y: y, W: w, H: h, R: radius, Color: Hex(c), Shadow: shadow})
}

func (r *Recorder) Text(s string, x, y float64, style TextStyle) {
	r.Ops = append(r.Ops, Op{
		Kind: OpText, X: x, Y: y, Text: s, Size: style.Size, Color: Hex(style.Color),
		Align: style.Align, Baseline: style.Baseline, Rotation: style.Rotation,
	})
}

// Kinds returns the op kinds in draw order.
func (r *Recorder) Kinds() []string {
	kinds := make([]string, len(r.Ops))
	for i, op := range r.Ops {
		kinds[i] = op.Kind
	}
	return kinds
}

// Filter returns the ops of the given kind in draw order.
func (r *Recorder) Filter(kind string) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}
