package plot

import (
	"math"
	"slices"
	"sort"
	"testing"

	"github.com/matzehuels/riverplot/pkg/rivers"
)

// fixedWidth measures every rune as 7px, independent of size.
func fixedWidth(s string, _ float64) float64 {
	return 7 * float64(len([]rune(s)))
}

func newTestChart(t *testing.T, records []rivers.Record) *Chart {
	t.Helper()
	c, err := New(records)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func exampleRecords() []rivers.Record {
	return []rivers.Record{
		{Name: "A", Length: 100, Discharge: 50, Countries: "X"},
		{Name: "B", Length: 200, Discharge: 10, Countries: "Y"},
		{Name: "C", Length: 300, Discharge: 50, Countries: "Z"},
	}
}

func TestHitTest(t *testing.T) {
	c := newTestChart(t, exampleRecords())
	x1, y1, _ := c.Position(1, frame800)

	tests := []struct {
		name   string
		px, py float64
		want   Selection
	}{
		{"exact", x1, y1, Select(1)},
		{"inside radius", x1 + 11, y1, Select(1)},
		{"just outside radius", x1 + 12.5, y1, NoSelection},
		{"far away", 0, 0, NoSelection},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.HitTest(tt.px, tt.py, frame800); got != tt.want {
				t.Errorf("HitTest(%v, %v) = %v, want %v", tt.px, tt.py, got, tt.want)
			}
		})
	}
}

func TestHitTestFirstMatchWins(t *testing.T) {
	// Records 0 and 1 overlap exactly; record 0 must win, including index 0.
	records := []rivers.Record{
		{Name: "first", Length: 100, Discharge: 5},
		{Name: "second", Length: 100, Discharge: 5},
		{Name: "other", Length: 1000, Discharge: 9},
	}
	c := newTestChart(t, records)
	x, y, _ := c.Position(1, frame800)
	if got := c.HitTest(x+3, y-3, frame800); got != Select(0) {
		t.Errorf("HitTest() = %v, want 0", got)
	}

	// Later record closer to the pointer still loses to an earlier match.
	records = []rivers.Record{
		{Name: "early", Length: 1000, Discharge: 5},
		{Name: "late", Length: 1010, Discharge: 5},
	}
	c = newTestChart(t, records)
	x, y, _ = c.Position(1, frame800)
	if got := c.HitTest(x, y, frame800); got != Select(0) {
		t.Errorf("HitTest() = %v, want 0", got)
	}
}

func TestHitTestSkipsIncomplete(t *testing.T) {
	records := []rivers.Record{
		{Name: "bad", Incomplete: true},
		{Name: "good", Length: 10, Discharge: 1},
	}
	c := newTestChart(t, records)
	x, y, _ := c.Position(1, frame800)
	if got := c.HitTest(x, y, frame800); got != Select(1) {
		t.Errorf("HitTest() = %v, want 1", got)
	}
}

func TestDrawOrder(t *testing.T) {
	c := newTestChart(t, exampleRecords())
	rec := &Recorder{Measure: fixedWidth}
	c.Draw(rec, frame800, Select(2))

	kinds := rec.Kinds()
	if kinds[0] != OpClear {
		t.Fatalf("first op = %s, want clear", kinds[0])
	}
	// 11 vertical + 11 horizontal grid lines, then 2 axis lines.
	for i := 1; i <= 24; i++ {
		if kinds[i] != OpLine {
			t.Fatalf("op %d = %s, want line", i, kinds[i])
		}
	}
	if rec.Ops[1].Color != Hex(c.Colors().GridLines) || rec.Ops[23].Color != Hex(c.Colors().OnSurface) {
		t.Error("grid lines should precede axis lines")
	}

	var labels []string
	for _, op := range rec.Filter(OpText) {
		labels = append(labels, op.Text)
	}
	want := []string{
		"Length (km)", "Discharge (m³/s)",
		"C", "Length: 300 km", "Discharge: 50 m³/s", "Country: Z",
		"Rivers in the world",
	}
	if !slices.Equal(labels, want) {
		t.Errorf("text order = %q, want %q", labels, want)
	}

	last := rec.Ops[len(rec.Ops)-1]
	if last.Kind != OpText || last.Text != "Rivers in the world" || last.Baseline != BaselineTop {
		t.Errorf("last op = %+v, want title", last)
	}

	rect := indexOf(kinds, OpRoundedRect)
	ring := indexOf(kinds, OpStrokeCircle)
	if ring < 0 || rect < 0 || ring > rect {
		t.Errorf("selected marker (op %d) should precede tooltip box (op %d)", ring, rect)
	}
}

func TestDrawAxisLabels(t *testing.T) {
	c := newTestChart(t, exampleRecords())
	rec := &Recorder{Measure: fixedWidth}
	c.DrawAxes(rec, frame800)

	texts := rec.Filter(OpText)
	if len(texts) != 2 {
		t.Fatalf("texts = %d, want 2", len(texts))
	}
	if texts[0].X != 400 || texts[0].Y != 560 || texts[0].Rotation != 0 {
		t.Errorf("x label = %+v", texts[0])
	}
	if texts[1].X != 40 || texts[1].Y != 300 || texts[1].Rotation != -math.Pi/2 {
		t.Errorf("y label = %+v", texts[1])
	}
}

func TestDrawGridSpansPlotArea(t *testing.T) {
	c := newTestChart(t, exampleRecords())
	rec := &Recorder{}
	c.DrawGrid(rec, frame800)

	lines := rec.Filter(OpLine)
	if len(lines) != 22 {
		t.Fatalf("grid lines = %d, want 22", len(lines))
	}
	first, last := lines[0], lines[10]
	if first.X != 80 || last.X != 720 || first.Y != 80 || first.Y2 != 520 {
		t.Errorf("vertical grid spans x %v..%v y %v..%v", first.X, last.X, first.Y, first.Y2)
	}

	rec = &Recorder{}
	c.DrawGrid(rec, Frame{Width: 100, Height: 100})
	if len(rec.Ops) != 0 {
		t.Errorf("grid on a frame without plot area drew %d ops", len(rec.Ops))
	}
}

func TestDrawPointMarkers(t *testing.T) {
	c := newTestChart(t, exampleRecords())
	rec := &Recorder{}
	c.DrawPoints(rec, frame800, Select(1))

	fills := rec.Filter(OpFillCircle)
	rings := rec.Filter(OpStrokeCircle)
	if len(fills) != 3 || len(rings) != 1 {
		t.Fatalf("fills = %d rings = %d, want 3 and 1", len(fills), len(rings))
	}
	if rings[0].R != 15 || rings[0].Stroke != 2 || rings[0].Color != Hex(c.Colors().PrimaryLight) {
		t.Errorf("ring = %+v", rings[0])
	}
	if fills[0].R != 6 || fills[0].Color != Hex(c.Colors().Primary) {
		t.Errorf("plain dot = %+v", fills[0])
	}
	if !approx(fills[1].R, 7.2) || fills[1].Color != Hex(c.Colors().Accent) {
		t.Errorf("accent dot = %+v", fills[1])
	}
}

func TestDrawEmptyDataset(t *testing.T) {
	c := newTestChart(t, nil)
	if c.Stats().MaxLength != 0 || len(c.Stats().SortedDischarges) != 0 {
		t.Errorf("stats = %+v, want zero", c.Stats())
	}
	rec := &Recorder{Measure: fixedWidth}
	c.Draw(rec, frame800, NoSelection)
	if n := len(rec.Filter(OpFillCircle)); n != 0 {
		t.Errorf("empty dataset drew %d points", n)
	}
	if got := c.HitTest(400, 300, frame800); !got.IsNone() {
		t.Errorf("HitTest on empty = %v", got)
	}
	// A stale selection must not crash the renderer.
	c.Draw(rec, frame800, Select(0))
}

func TestResizeKeepsOrdering(t *testing.T) {
	ds, err := rivers.Default()
	if err != nil {
		t.Fatal(err)
	}
	c := newTestChart(t, ds.Records)

	order := func(f Frame) (byX, byY []int) {
		n := len(ds.Records)
		xs, ys := make([]float64, n), make([]float64, n)
		for i := range ds.Records {
			xs[i], ys[i], _ = c.Position(i, f)
			byX, byY = append(byX, i), append(byY, i)
		}
		sort.SliceStable(byX, func(a, b int) bool { return xs[byX[a]] < xs[byX[b]] })
		sort.SliceStable(byY, func(a, b int) bool { return ys[byY[a]] > ys[byY[b]] })
		return byX, byY
	}

	x1, y1 := order(Frame{Width: 800, Height: 600})
	x2, y2 := order(Frame{Width: 1600, Height: 400})
	if !slices.Equal(x1, x2) || !slices.Equal(y1, y2) {
		t.Error("resizing changed the relative ordering of points")
	}

	px1, _, _ := c.Position(0, Frame{Width: 800, Height: 600})
	px2, _, _ := c.Position(0, Frame{Width: 1600, Height: 400})
	if px1 == px2 {
		t.Error("resizing should move points")
	}
}

func TestNewInvalidTheme(t *testing.T) {
	theme := DefaultTheme()
	theme.Palette.Accent = "pink"
	if _, err := New(nil, WithTheme(theme)); err == nil {
		t.Error("New() with invalid accent should fail")
	}
}

func indexOf(s []string, v string) int {
	return slices.Index(s, v)
}
