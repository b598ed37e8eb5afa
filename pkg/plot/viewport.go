package plot

import (
	"time"

	"github.com/matzehuels/riverplot/pkg/observability"
)

// Viewport is the interactive state around a [Chart]: the current frame,
// the hovered record and the pointer cursor. Input events mark it dirty and
// the owner redraws by calling Render.
type Viewport struct {
	chart  *Chart
	frame  Frame
	sel    Selection
	cursor Cursor
	dirty  bool
}

// NewViewport returns a viewport of the given size with nothing selected.
// A new viewport is dirty so the first frame gets drawn.
func NewViewport(c *Chart, width, height float64) *Viewport {
	return &Viewport{
		chart: c,
		frame: Frame{Width: width, Height: height},
		dirty: true,
	}
}

// Chart returns the chart shown by the viewport.
func (v *Viewport) Chart() *Chart { return v.chart }

// Frame returns the current canvas size.
func (v *Viewport) Frame() Frame { return v.frame }

// Selection returns the hovered record, if any.
func (v *Viewport) Selection() Selection { return v.sel }

// Cursor returns the pointer style for the current selection.
func (v *Viewport) Cursor() Cursor { return v.cursor }

// Dirty reports whether the scene changed since the last Render.
func (v *Viewport) Dirty() bool { return v.dirty }

// Resize changes the canvas size. The selection is kept; point positions
// follow the new frame on the next Render.
func (v *Viewport) Resize(width, height float64) {
	v.frame = Frame{Width: width, Height: height}
	v.dirty = true
	observability.Viewport().OnResize(width, height)
}

// PointerMove re-evaluates the hovered record for a pointer at (x, y),
// updates the cursor and marks the viewport dirty. It returns the new cursor.
func (v *Viewport) PointerMove(x, y float64) Cursor {
	prev := v.sel
	v.sel = v.chart.HitTest(x, y, v.frame)
	v.cursor = CursorDefault
	if !v.sel.IsNone() {
		v.cursor = CursorHand
	}
	v.dirty = true
	if prev != v.sel {
		observability.Viewport().OnSelect(selIndex(prev), selIndex(v.sel))
	}
	return v.cursor
}

// Select sets the selection directly, as if the pointer rested on record i.
// Out-of-range indexes clear the selection. An incomplete record stays
// selected but, having no point, keeps the default cursor.
func (v *Viewport) Select(sel Selection) {
	i, ok := sel.Index()
	if ok && (i < 0 || i >= len(v.chart.records)) {
		sel, ok = NoSelection, false
	}
	prev := v.sel
	v.sel = sel
	v.cursor = CursorDefault
	if ok {
		if _, _, plotted := v.chart.Position(i, v.frame); plotted {
			v.cursor = CursorHand
		}
	}
	v.dirty = true
	if prev != v.sel {
		observability.Viewport().OnSelect(selIndex(prev), selIndex(v.sel))
	}
}

// Render draws the scene onto cv and clears the dirty flag.
func (v *Viewport) Render(cv Canvas) {
	start := time.Now()
	v.chart.Draw(cv, v.frame, v.sel)
	v.dirty = false
	observability.Viewport().OnRedraw(v.frame.Width, v.frame.Height, selIndex(v.sel), time.Since(start))
}

// RenderIfDirty renders only when an event changed the scene and reports
// whether it did.
func (v *Viewport) RenderIfDirty(cv Canvas) bool {
	if !v.dirty {
		return false
	}
	v.Render(cv)
	return true
}

func selIndex(s Selection) int {
	if i, ok := s.Index(); ok {
		return i
	}
	return -1
}
