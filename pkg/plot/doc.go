// Package plot renders the river scatterplot and resolves pointer hover.
//
// # Overview
//
// A [Chart] holds the records, the statistics derived from them and a
// [Theme]. It maps records to pixels for a given [Frame] (see [Mapper]),
// finds the record under the pointer ([Chart.HitTest]) and draws the scene
// onto any [Canvas] implementation.
//
// The horizontal axis is river length scaled linearly from 0 to the longest
// river. The vertical axis is the discharge rank (see rivers.Stats.Rank), so
// rivers with equal discharge share a row.
//
// # Draw Order
//
// [Chart.Draw] paints, back to front:
//
//  1. background
//  2. grid (10 divisions per axis inside the margin)
//  3. axis lines and labels
//  4. point cloud, with the selected record as a ring and accent dot
//  5. tooltip box for the selected record
//  6. title
//
// The stages are exported individually so backends such as the interactive
// SVG sink can interleave their own layers.
//
// # Interaction
//
// [Viewport] owns the only mutable state: frame size, [Selection] and
// [Cursor]. Resize and PointerMove mark it dirty; Render clears the flag.
// Callers redraw after each input event instead of running a frame loop:
//
//	vp := plot.NewViewport(chart, 1280, 720)
//	vp.PointerMove(640, 360)
//	if vp.Dirty() {
//	    vp.Render(canvas)
//	}
//
// Nothing in this package is safe for concurrent use; events are handled one
// at a time.
package plot
