// Package render provides format conversion shared by the output sinks.
//
// # Format Conversion
//
// [ToPDF] converts an SVG document to PDF using the external rsvg-convert
// tool (from librsvg). PNG output does not go through this package: the
// [sink] package rasterizes natively.
//
//	svg, err := sink.RenderSVG(vp)
//	pdf, err := render.ToPDF(svg)
//
// [sink]: github.com/matzehuels/riverplot/pkg/render/sink
package render
