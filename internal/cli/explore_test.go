package cli

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/riverplot/pkg/plot"
	"github.com/matzehuels/riverplot/pkg/rivers"
)

func newTestExploreModel(t *testing.T) exploreModel {
	t.Helper()
	chart, err := plot.New([]rivers.Record{
		{Name: "Nile", Length: 6650, Discharge: 2830, Countries: "Egypt"},
		{Name: "Broken", Incomplete: true},
		{Name: "Amazon", Length: 6400, Discharge: 209000, Countries: "Brazil"},
	})
	if err != nil {
		t.Fatalf("plot.New() error = %v", err)
	}
	m := newExploreModel(plot.NewViewport(chart, 0, 0), "test")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 41})
	return next.(exploreModel)
}

func TestExploreResize(t *testing.T) {
	m := newTestExploreModel(t)
	if got := m.vp.Frame(); got != (plot.Frame{Width: 960, Height: 640}) {
		t.Errorf("Frame() = %+v, want 960x640", got)
	}
	if m.vp.Dirty() {
		t.Error("viewport dirty after Update")
	}
	if !strings.Contains(m.View(), "Rivers in the world") {
		t.Error("View() lacks the chart title")
	}
}

func TestExploreMouseHover(t *testing.T) {
	m := newTestExploreModel(t)
	x, y, _ := m.vp.Chart().Position(2, m.vp.Frame())
	col := int(math.Floor(x / cellWidth))
	row := int(math.Floor(y / cellHeight))

	next, _ := m.Update(tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionMotion})
	m = next.(exploreModel)

	if !m.vp.Selection().Is(2) {
		t.Fatalf("Selection() = %v, want 2", m.vp.Selection())
	}
	if m.vp.Cursor() != plot.CursorHand {
		t.Errorf("Cursor() = %v, want pointer", m.vp.Cursor())
	}
	view := m.View()
	if !strings.Contains(view, "Brazil") {
		t.Error("View() lacks the tooltip")
	}

	next, _ = m.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion})
	m = next.(exploreModel)
	if !m.vp.Selection().IsNone() {
		t.Errorf("Selection() = %v, want none", m.vp.Selection())
	}
	if m.vp.Cursor() != plot.CursorDefault {
		t.Errorf("Cursor() = %v, want default", m.vp.Cursor())
	}
}

func TestExploreStep(t *testing.T) {
	m := newTestExploreModel(t)

	var got []string
	for range 3 {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = next.(exploreModel)
		i, _ := m.vp.Selection().Index()
		got = append(got, m.vp.Chart().Records()[i].Name)
	}
	if s := strings.Join(got, ","); s != "Nile,Amazon,Nile" {
		t.Errorf("tab order = %s, want Nile,Amazon,Nile (incomplete skipped)", s)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(exploreModel)
	if !m.vp.Selection().Is(2) {
		t.Errorf("shift+tab Selection() = %v, want 2", m.vp.Selection())
	}
}

func TestExploreQuit(t *testing.T) {
	m := newTestExploreModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestCellCenter(t *testing.T) {
	x, y := cellCenter(2, 3)
	if x != 20 || y != 56 {
		t.Errorf("cellCenter(2, 3) = %v,%v, want 20,56", x, y)
	}
}
