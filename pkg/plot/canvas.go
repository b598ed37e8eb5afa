package plot

import (
	"image/color"
)

// Align is the horizontal text anchor.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Baseline is the vertical text anchor.
type Baseline int

const (
	BaselineAlphabetic Baseline = iota
	BaselineTop
	BaselineMiddle
)

// TextStyle describes how a string is placed and painted.
type TextStyle struct {
	Size     float64
	Color    color.NRGBA
	Align    Align
	Baseline Baseline
	// Rotation in radians about the anchor point; positive is clockwise on
	// screen.
	Rotation float64
}

// Shadow is a blurred drop shadow cast by a filled shape.
type Shadow struct {
	OffsetX, OffsetY float64
	Blur             float64
	Color            color.NRGBA
}

// Measurer measures text in pixels.
type Measurer interface {
	MeasureText(s string, size float64) float64
}

// Canvas is a drawing surface. Coordinates are pixels with the origin at the
// top-left corner and y growing downward.
type Canvas interface {
	Measurer

	// Clear fills the whole surface.
	Clear(c color.NRGBA)
	Line(x1, y1, x2, y2, width float64, c color.NRGBA)
	FillCircle(cx, cy, r float64, c color.NRGBA)
	StrokeCircle(cx, cy, r, width float64, c color.NRGBA)
	// FillRoundedRect fills a rounded rectangle. A non-nil shadow is cast by
	// this shape only.
	FillRoundedRect(x, y, w, h, radius float64, c color.NRGBA, shadow *Shadow)
	Text(s string, x, y float64, style TextStyle)
}
