package sink

import (
	"bytes"
	"encoding/json"
	"image/png"
	"regexp"
	"strings"
	"testing"

	"github.com/matzehuels/riverplot/pkg/plot"
	"github.com/matzehuels/riverplot/pkg/rivers"
)

func exampleRecords() []rivers.Record {
	return []rivers.Record{
		{Name: "Nile", Length: 6650, Discharge: 2830, Countries: "Egypt, Sudan"},
		{Name: "Amazon", Length: 6400, Discharge: 209000, Countries: "Brazil, Peru"},
		{Name: "Broken", Incomplete: true},
		{Name: "Rhine & Co", Length: 1230, Discharge: 2330, Countries: "Germany"},
	}
}

func newTestViewport(t *testing.T, w, h float64) *plot.Viewport {
	t.Helper()
	c, err := plot.New(exampleRecords())
	if err != nil {
		t.Fatalf("plot.New() error = %v", err)
	}
	return plot.NewViewport(c, w, h)
}

func selectRecord(t *testing.T, vp *plot.Viewport, i int) {
	t.Helper()
	x, y, ok := vp.Chart().Position(i, vp.Frame())
	if !ok {
		t.Fatalf("Position(%d) not plottable", i)
	}
	vp.PointerMove(x, y)
}

func TestRenderPNG(t *testing.T) {
	tests := []struct {
		name         string
		scale        float64
		wantW, wantH int
	}{
		{"default scale", 0, 400, 300},
		{"double scale", 2, 800, 600},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vp := newTestViewport(t, 400, 300)
			selectRecord(t, vp, 1)

			var opts []PNGOption
			if tt.scale > 0 {
				opts = append(opts, WithScale(tt.scale))
			}
			data, err := RenderPNG(vp, opts...)
			if err != nil {
				t.Fatalf("RenderPNG() error = %v", err)
			}
			img, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("png.Decode() error = %v", err)
			}
			b := img.Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
			if vp.Dirty() {
				t.Error("viewport still dirty after RenderPNG")
			}
		})
	}
}

func TestRasterBackground(t *testing.T) {
	vp := newTestViewport(t, 200, 200)
	r := NewRaster(vp.Frame(), 1)
	vp.Render(r)

	want := vp.Chart().Colors().Background
	got := r.Image().At(2, 2)
	gr, gg, gb, _ := got.RGBA()
	if uint8(gr>>8) != want.R || uint8(gg>>8) != want.G || uint8(gb>>8) != want.B {
		t.Errorf("corner pixel = %v, want %v", got, want)
	}
}

func TestRenderSVG(t *testing.T) {
	vp := newTestViewport(t, 800, 600)
	selectRecord(t, vp, 3)
	svg := string(RenderSVG(vp))

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800 600"`,
		"Rivers in the world",
		"Length (km)",
		"Rhine &amp; Co",
		"Length: 1,230 km",
		"Discharge: 2,330 m³/s",
		"feDropShadow",
		`transform="rotate(-90 40 300)"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if strings.Contains(svg, "Broken") {
		t.Error("SVG contains incomplete record")
	}
	if strings.Contains(svg, "<script") {
		t.Error("static SVG contains script")
	}
	if n := strings.Count(svg, "feDropShadow"); n != 1 {
		t.Errorf("shadow filter defined %d times, want 1", n)
	}
}

func TestRenderSVGInteractive(t *testing.T) {
	vp := newTestViewport(t, 800, 600)
	selectRecord(t, vp, 3)
	svg := string(RenderSVG(vp, WithInteractive()))

	targets := regexp.MustCompile(`class="target" data-index="(\d+)"`).FindAllStringSubmatch(svg, -1)
	var order []string
	for _, m := range targets {
		order = append(order, m[1])
	}
	if got, want := strings.Join(order, ","), "3,1,0"; got != want {
		t.Errorf("target order = %s, want %s", got, want)
	}

	if !strings.Contains(svg, `data-index="3" visibility="visible"`) {
		t.Error("selected hover group not visible")
	}
	if !strings.Contains(svg, `data-index="0" visibility="hidden"`) {
		t.Error("unselected hover group not hidden")
	}
	if !strings.Contains(svg, "cursor: pointer") {
		t.Error("targets lack hand cursor")
	}
	if !strings.Contains(svg, "mouseenter") {
		t.Error("hover script missing")
	}
}

func TestRenderSVGEmbeddedFont(t *testing.T) {
	vp := newTestViewport(t, 400, 300)
	svg := string(RenderSVG(vp, WithEmbeddedFont()))
	if !strings.Contains(svg, "@font-face") || !strings.Contains(svg, "data:font/ttf;base64,") {
		t.Error("embedded font missing")
	}
}

func TestRenderJSON(t *testing.T) {
	vp := newTestViewport(t, 800, 600)
	selectRecord(t, vp, 1)

	data, err := RenderJSON(vp)
	if err != nil {
		t.Fatalf("RenderJSON() error = %v", err)
	}
	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}

	if out.Width != 800 || out.Height != 600 {
		t.Errorf("frame = %vx%v, want 800x600", out.Width, out.Height)
	}
	if out.Selection == nil || *out.Selection != 1 {
		t.Errorf("Selection = %v, want 1", out.Selection)
	}
	if out.Cursor != "pointer" {
		t.Errorf("Cursor = %q, want pointer", out.Cursor)
	}
	if out.Stats.MaxLength != 6650 {
		t.Errorf("MaxLength = %v, want 6650", out.Stats.MaxLength)
	}
	if len(out.Points) != 3 {
		t.Errorf("Points = %d, want 3 (incomplete record skipped)", len(out.Points))
	}
	if out.Tooltip == nil || len(out.Tooltip.Lines) != 4 || out.Tooltip.Lines[0] != "Amazon" {
		t.Errorf("Tooltip = %+v, want four lines starting with Amazon", out.Tooltip)
	}
	if len(out.Ops) != 0 {
		t.Errorf("Ops = %d, want none without WithJSONOps", len(out.Ops))
	}
}

func TestRenderJSONNoSelection(t *testing.T) {
	vp := newTestViewport(t, 800, 600)

	data, err := RenderJSON(vp, WithJSONOps())
	if err != nil {
		t.Fatalf("RenderJSON() error = %v", err)
	}
	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if out.Selection != nil {
		t.Errorf("Selection = %v, want null", *out.Selection)
	}
	if out.Tooltip != nil {
		t.Error("Tooltip present without selection")
	}
	if len(out.Ops) == 0 || out.Ops[0].Kind != plot.OpClear {
		t.Errorf("Ops should start with a clear")
	}
}

func TestNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{80, "80"},
		{695.8646, "695.86"},
		{1.5, "1.5"},
		{-0.001, "0"},
		{-90, "-90"},
	}
	for _, tt := range tests {
		if got := num(tt.in); got != tt.want {
			t.Errorf("num(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
