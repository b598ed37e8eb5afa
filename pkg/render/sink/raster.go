package sink

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/matzehuels/riverplot/pkg/fonts"
	"github.com/matzehuels/riverplot/pkg/plot"
)

// Raster is a [plot.Canvas] backed by an in-memory RGBA image. Drawing
// coordinates are logical pixels; scale multiplies the output resolution.
type Raster struct {
	dc    *gg.Context
	scale float64
}

var _ plot.Canvas = (*Raster)(nil)

// NewRaster returns a raster canvas for a frame of the given logical size.
func NewRaster(f plot.Frame, scale float64) *Raster {
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Ceil(f.Width * scale))
	h := int(math.Ceil(f.Height * scale))
	dc := gg.NewContext(max(w, 1), max(h, 1))
	dc.Scale(scale, scale)
	return &Raster{dc: dc, scale: scale}
}

// Image returns the rendered image.
func (r *Raster) Image() image.Image {
	return r.dc.Image()
}

// EncodePNG writes the image as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	return r.dc.EncodePNG(w)
}

func (r *Raster) MeasureText(s string, size float64) float64 {
	r.dc.SetFontFace(fonts.Face(size))
	w, _ := r.dc.MeasureString(s)
	return w
}

func (r *Raster) Clear(c color.NRGBA) {
	r.dc.SetColor(c)
	r.dc.Clear()
}

func (r *Raster) Line(x1, y1, x2, y2, width float64, c color.NRGBA) {
	r.dc.SetColor(c)
	r.dc.SetLineWidth(width)
	r.dc.DrawLine(x1, y1, x2, y2)
	r.dc.Stroke()
}

func (r *Raster) FillCircle(cx, cy, radius float64, c color.NRGBA) {
	r.dc.SetColor(c)
	r.dc.DrawCircle(cx, cy, radius)
	r.dc.Fill()
}

func (r *Raster) StrokeCircle(cx, cy, radius, width float64, c color.NRGBA) {
	r.dc.SetColor(c)
	r.dc.SetLineWidth(width)
	r.dc.DrawCircle(cx, cy, radius)
	r.dc.Stroke()
}

func (r *Raster) FillRoundedRect(x, y, w, h, radius float64, c color.NRGBA, shadow *plot.Shadow) {
	if shadow != nil {
		r.drawShadow(x, y, w, h, radius, *shadow)
	}
	r.dc.SetColor(c)
	r.dc.DrawRoundedRectangle(x, y, w, h, radius)
	r.dc.Fill()
}

// drawShadow paints the shape on a separate layer, blurs it and composites
// it under the current transform. Canvas blur is a Gaussian with sigma of
// half the blur length.
func (r *Raster) drawShadow(x, y, w, h, radius float64, s plot.Shadow) {
	sigma := s.Blur / 2
	pad := math.Ceil(3 * sigma)
	layer := gg.NewContext(int(math.Ceil(w+2*pad)), int(math.Ceil(h+2*pad)))
	layer.SetColor(s.Color)
	layer.DrawRoundedRectangle(pad, pad, w, h, radius)
	layer.Fill()

	var img image.Image = layer.Image()
	if sigma > 0 {
		img = imaging.Blur(img, sigma)
	}
	r.dc.DrawImage(img, int(math.Round(x+s.OffsetX-pad)), int(math.Round(y+s.OffsetY-pad)))
}

func (r *Raster) Text(s string, x, y float64, style plot.TextStyle) {
	if s == "" {
		return
	}
	r.dc.SetFontFace(fonts.Face(style.Size))
	r.dc.SetColor(style.Color)
	ax, ay := anchor(style)
	if style.Rotation == 0 {
		r.dc.DrawStringAnchored(s, x, y, ax, ay)
		return
	}
	r.dc.Push()
	r.dc.RotateAbout(style.Rotation, x, y)
	r.dc.DrawStringAnchored(s, x, y, ax, ay)
	r.dc.Pop()
}

// anchor converts alignment to gg's fractional anchor, where ay=0 puts the
// baseline at y and ay=1 puts the top of the text at y.
func anchor(style plot.TextStyle) (ax, ay float64) {
	switch style.Align {
	case plot.AlignCenter:
		ax = 0.5
	case plot.AlignRight:
		ax = 1
	}
	switch style.Baseline {
	case plot.BaselineTop:
		ay = 1
	case plot.BaselineMiddle:
		ay = 0.5
	}
	return ax, ay
}
