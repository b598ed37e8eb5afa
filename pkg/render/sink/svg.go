package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"
	"math"
	"slices"

	"github.com/matzehuels/riverplot/pkg/fonts"
	"github.com/matzehuels/riverplot/pkg/plot"
)

const hoverCSS = `
    text { pointer-events: none; }
    .hover { pointer-events: none; }
    .target { fill: transparent; cursor: pointer; }`

const hoverJS = `
    document.querySelectorAll('.target').forEach(el => {
      const hover = document.querySelector('.hover[data-index="' + el.dataset.index + '"]');
      if (!hover) return;
      el.addEventListener('mouseenter', () => hover.setAttribute('visibility', 'visible'));
      el.addEventListener('mouseleave', () => hover.setAttribute('visibility', 'hidden'));
    });`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	interactive bool
	embedFont   bool
}

// WithInteractive renders a hover layer per point so a browser shows the
// selected marker, tooltip and hand cursor without a round trip.
func WithInteractive() SVGOption { return func(r *svgRenderer) { r.interactive = true } }

// WithEmbeddedFont embeds the Go Regular font as a base64 @font-face so text
// widths match the measured tooltip boxes in every viewer.
func WithEmbeddedFont() SVGOption { return func(r *svgRenderer) { r.embedFont = true } }

// RenderSVG renders the viewport's current scene as an SVG document.
func RenderSVG(vp *plot.Viewport, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	f := vp.Frame()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(f.Width), num(f.Height), num(f.Width), num(f.Height))
	renderFontStyle(&buf, r.embedFont)

	cv := &svgCanvas{buf: &buf}
	if r.interactive {
		renderInteractive(cv, vp)
	} else {
		vp.Render(cv)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderInteractive follows the Chart.Draw order but replaces the single
// selected marker and tooltip with one hidden hover group per point. Hit
// targets are stacked in reverse so the earliest record is topmost, which
// keeps the first-match rule of Chart.HitTest.
func renderInteractive(cv *svgCanvas, vp *plot.Viewport) {
	c, f := vp.Chart(), vp.Frame()
	current, hasCurrent := vp.Selection().Index()

	c.DrawBackground(cv)
	c.DrawGrid(cv, f)
	c.DrawAxes(cv, f)
	c.DrawPoints(cv, f, plot.NoSelection)

	var plotted []int
	for i := range c.Records() {
		x, y, ok := c.Position(i, f)
		if !ok {
			continue
		}
		plotted = append(plotted, i)
		visibility := "hidden"
		if hasCurrent && current == i {
			visibility = "visible"
		}
		fmt.Fprintf(cv.buf, `  <g class="hover" data-index="%d" visibility="%s">`+"\n", i, visibility)
		c.DrawPoint(cv, x, y, true)
		c.DrawTooltip(cv, f, i)
		cv.buf.WriteString("  </g>\n")
	}

	c.DrawTitle(cv, f)

	radius := c.Theme().Layout.PointSize
	for _, i := range slices.Backward(plotted) {
		x, y, _ := c.Position(i, f)
		fmt.Fprintf(cv.buf, `  <circle class="target" data-index="%d" cx="%s" cy="%s" r="%s"><title>%s</title></circle>`+"\n",
			i, num(x), num(y), num(radius), escape(c.Records()[i].Name))
	}

	fmt.Fprintf(cv.buf, "  <style>%s\n  </style>\n", hoverCSS)
	fmt.Fprintf(cv.buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", hoverJS)
}

func renderFontStyle(buf *bytes.Buffer, embed bool) {
	buf.WriteString("  <style>")
	if embed {
		fmt.Fprintf(buf, "\n    @font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }",
			fonts.FontFamily, fonts.RegularTTFBase64())
	}
	fmt.Fprintf(buf, "\n    text { font-family: %s; }\n  </style>\n", fonts.FallbackFontFamily)
}

// svgCanvas writes each drawing call as an SVG element.
type svgCanvas struct {
	buf     *bytes.Buffer
	filters map[plot.Shadow]string
}

var _ plot.Canvas = (*svgCanvas)(nil)

func (s *svgCanvas) MeasureText(text string, size float64) float64 {
	return fonts.Measure(text, size)
}

func (s *svgCanvas) Clear(c color.NRGBA) {
	fmt.Fprintf(s.buf, `  <rect x="0" y="0" width="100%%" height="100%%"%s/>`+"\n", paint("fill", c))
}

func (s *svgCanvas) Line(x1, y1, x2, y2, width float64, c color.NRGBA) {
	fmt.Fprintf(s.buf, `  <line x1="%s" y1="%s" x2="%s" y2="%s" stroke-width="%s"%s/>`+"\n",
		num(x1), num(y1), num(x2), num(y2), num(width), paint("stroke", c))
}

func (s *svgCanvas) FillCircle(cx, cy, r float64, c color.NRGBA) {
	fmt.Fprintf(s.buf, `  <circle cx="%s" cy="%s" r="%s"%s/>`+"\n", num(cx), num(cy), num(r), paint("fill", c))
}

func (s *svgCanvas) StrokeCircle(cx, cy, r, width float64, c color.NRGBA) {
	fmt.Fprintf(s.buf, `  <circle cx="%s" cy="%s" r="%s" fill="none" stroke-width="%s"%s/>`+"\n",
		num(cx), num(cy), num(r), num(width), paint("stroke", c))
}

func (s *svgCanvas) FillRoundedRect(x, y, w, h, radius float64, c color.NRGBA, shadow *plot.Shadow) {
	filter := ""
	if shadow != nil {
		filter = fmt.Sprintf(` filter="url(#%s)"`, s.shadowFilter(*shadow))
	}
	fmt.Fprintf(s.buf, `  <rect x="%s" y="%s" width="%s" height="%s" rx="%s"%s%s/>`+"\n",
		num(x), num(y), num(w), num(h), num(radius), paint("fill", c), filter)
}

// shadowFilter returns the id of a drop-shadow filter, defining it on first use.
func (s *svgCanvas) shadowFilter(sh plot.Shadow) string {
	if id, ok := s.filters[sh]; ok {
		return id
	}
	if s.filters == nil {
		s.filters = make(map[plot.Shadow]string)
	}
	id := fmt.Sprintf("shadow-%d", len(s.filters))
	s.filters[sh] = id
	fmt.Fprintf(s.buf, `  <defs><filter id="%s" x="-20%%" y="-20%%" width="140%%" height="140%%">`+
		`<feDropShadow dx="%s" dy="%s" stdDeviation="%s" flood-color="%s" flood-opacity="%s"/></filter></defs>`+"\n",
		id, num(sh.OffsetX), num(sh.OffsetY), num(sh.Blur/2),
		plot.Hex(opaque(sh.Color)), num(float64(sh.Color.A)/255))
	return id
}

func (s *svgCanvas) Text(text string, x, y float64, style plot.TextStyle) {
	if text == "" {
		return
	}
	attrs := fmt.Sprintf(` x="%s" y="%s" font-size="%s"%s`, num(x), num(y), num(style.Size), paint("fill", style.Color))
	switch style.Align {
	case plot.AlignCenter:
		attrs += ` text-anchor="middle"`
	case plot.AlignRight:
		attrs += ` text-anchor="end"`
	}
	switch style.Baseline {
	case plot.BaselineTop:
		attrs += ` dominant-baseline="hanging"`
	case plot.BaselineMiddle:
		attrs += ` dominant-baseline="central"`
	}
	if style.Rotation != 0 {
		attrs += fmt.Sprintf(` transform="rotate(%s %s %s)"`, num(style.Rotation*180/math.Pi), num(x), num(y))
	}
	fmt.Fprintf(s.buf, "  <text%s>%s</text>\n", attrs, escape(text))
}

// paint renders a fill or stroke attribute, with an opacity when c is not opaque.
func paint(attr string, c color.NRGBA) string {
	out := fmt.Sprintf(` %s="%s"`, attr, plot.Hex(opaque(c)))
	if c.A != 0xff {
		out += fmt.Sprintf(` %s-opacity="%s"`, attr, num(float64(c.A)/255))
	}
	return out
}

func opaque(c color.NRGBA) color.NRGBA {
	c.A = 0xff
	return c
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	for s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	if s == "-0" {
		return "0"
	}
	return s
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
