package plot

import (
	"testing"

	"github.com/matzehuels/riverplot/pkg/rivers"
)

var frame800 = Frame{Width: 800, Height: 600}

func TestMapperExample(t *testing.T) {
	records := []rivers.Record{
		{Length: 100, Discharge: 50},
		{Length: 200, Discharge: 10},
		{Length: 300, Discharge: 50},
	}
	m := NewMapper(rivers.ComputeStats(records), 80, frame800)

	tests := []struct {
		i     int
		wantX float64
		wantY float64
	}{
		// x: [0,300] → [80,720]; y: rank [0,2] → [520,80]
		{0, 80 + 640.0/3, 300},
		{1, 80 + 2*640.0/3, 520},
		{2, 720, 300},
	}
	for _, tt := range tests {
		x, y, ok := m.Map(records[tt.i])
		if !ok {
			t.Fatalf("Map(records[%d]) not ok", tt.i)
		}
		if !approx(x, tt.wantX) || !approx(y, tt.wantY) {
			t.Errorf("Map(records[%d]) = (%v, %v), want (%v, %v)", tt.i, x, y, tt.wantX, tt.wantY)
		}
	}
}

func TestMapperEqualDischargeSameY(t *testing.T) {
	ds, err := rivers.Default()
	if err != nil {
		t.Fatal(err)
	}
	records := append([]rivers.Record{}, ds.Records...)
	records = append(records, rivers.Record{Name: "Twin", Length: 10, Discharge: records[0].Discharge})
	m := NewMapper(rivers.ComputeStats(records), 80, frame800)

	_, y1, _ := m.Map(records[0])
	_, y2, _ := m.Map(records[len(records)-1])
	if y1 != y2 {
		t.Errorf("equal discharges map to y=%v and y=%v", y1, y2)
	}
}

func TestMapperMonotonic(t *testing.T) {
	ds, err := rivers.Default()
	if err != nil {
		t.Fatal(err)
	}
	stats := rivers.ComputeStats(ds.Records)
	for _, f := range []Frame{{800, 600}, {1920, 1080}, {400, 900}} {
		m := NewMapper(stats, 80, f)
		for _, a := range ds.Records {
			for _, b := range ds.Records {
				ax, ay, _ := m.Map(a)
				bx, by, _ := m.Map(b)
				if a.Length > b.Length && ax < bx {
					t.Errorf("%v: longer %s left of %s", f, a.Name, b.Name)
				}
				if stats.Rank(a.Discharge) > stats.Rank(b.Discharge) && ay > by {
					t.Errorf("%v: higher-ranked %s below %s", f, a.Name, b.Name)
				}
			}
		}
	}
}

func TestMapperDegenerate(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		m := NewMapper(rivers.ComputeStats(nil), 80, frame800)
		if _, _, ok := m.Map(rivers.Record{Length: 1, Discharge: 1}); ok {
			t.Error("Map on empty stats should not be ok")
		}
	})

	t.Run("single discharge", func(t *testing.T) {
		records := []rivers.Record{{Length: 500, Discharge: 7}}
		m := NewMapper(rivers.ComputeStats(records), 80, frame800)
		x, y, ok := m.Map(records[0])
		if !ok {
			t.Fatal("Map not ok")
		}
		if x != 720 || y != 300 {
			t.Errorf("Map = (%v, %v), want (720, 300)", x, y)
		}
	})

	t.Run("zero max length", func(t *testing.T) {
		records := []rivers.Record{{Length: 0, Discharge: 1}, {Length: 0, Discharge: 2}}
		m := NewMapper(rivers.ComputeStats(records), 80, frame800)
		x, y, ok := m.Map(records[1])
		if !ok || x != 80 || y != 80 {
			t.Errorf("Map = (%v, %v, %v), want (80, 80, true)", x, y, ok)
		}
	})

	t.Run("incomplete", func(t *testing.T) {
		records := []rivers.Record{{Length: 10, Discharge: 1}, {Incomplete: true}}
		m := NewMapper(rivers.ComputeStats(records), 80, frame800)
		if _, _, ok := m.Map(records[1]); ok {
			t.Error("incomplete record should not map")
		}
	})

	t.Run("unknown discharge", func(t *testing.T) {
		m := NewMapper(rivers.ComputeStats([]rivers.Record{{Length: 10, Discharge: 1}}), 80, frame800)
		if _, _, ok := m.Map(rivers.Record{Length: 5, Discharge: 99}); ok {
			t.Error("discharge outside stats should not map")
		}
	})
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
