// Package sink provides output format renderers for river charts.
//
// # Overview
//
// A "sink" turns a [plot.Viewport] into a final output format. Each sink is
// either a [plot.Canvas] implementation or a thin wrapper around one:
//
//   - PNG: anti-aliased raster image ([Raster], fogleman/gg)
//   - SVG: vector output with optional hover interactivity
//   - JSON: mapped point positions, tooltip box and display list
//   - PDF: print-ready output (requires rsvg-convert)
//   - Terminal: character cells for the explore command ([Terminal])
//
// # SVG Output
//
// [RenderSVG] draws the same scene as the other sinks. With
// [WithInteractive] every point also gets a hidden hover group holding its
// selected marker and tooltip, shown while the pointer is over the point.
// Hover targets are stacked so the earliest record wins where points
// overlap, the same rule [plot.Chart.HitTest] applies.
//
//	svg := sink.RenderSVG(vp, sink.WithInteractive(), sink.WithEmbeddedFont())
//
// # PDF Output
//
// [RenderPDF] converts the SVG via [render.ToPDF]. This requires librsvg:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [render.ToPDF]: github.com/matzehuels/riverplot/pkg/render.ToPDF
package sink
