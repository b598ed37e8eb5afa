// Package pkg provides the libraries behind riverplot, an interactive
// scatterplot of river length against discharge rank.
//
// # Overview
//
// The pkg directory is organized by concern:
//
//  1. [rivers] - River records, CSV loading and derived statistics
//  2. [plot] - Coordinate mapping, hit-testing, scene drawing and the viewport
//  3. [render/sink] - Canvas backends (PNG, SVG, JSON, PDF, terminal cells)
//  4. [pipeline] - Orchestration (load → chart → render)
//
// # Architecture
//
// The typical data flow through riverplot:
//
//	CSV table (file or embedded)
//	         ↓
//	    [rivers] package (records + statistics)
//	         ↓
//	    [plot] package (chart + viewport state)
//	         ↓
//	    [render/sink] package (canvas backends)
//	         ↓
//	    SVG/PNG/PDF/JSON output or terminal frame
//
// # Quick Start
//
// Load the default table, hover a river and render a PNG:
//
//	import (
//	    "github.com/matzehuels/riverplot/pkg/plot"
//	    "github.com/matzehuels/riverplot/pkg/render/sink"
//	    "github.com/matzehuels/riverplot/pkg/rivers"
//	)
//
//	ds, _ := rivers.Default()
//	chart, _ := plot.New(ds.Records)
//	vp := plot.NewViewport(chart, 1280, 720)
//	vp.PointerMove(640, 360)
//	png, _ := sink.RenderPNG(vp)
//
// # Supporting Packages
//
// [errors] - Structured error codes shared by the CLI and libraries.
//
// [fonts] - The embedded Go Regular font used for measuring and drawing text.
//
// [observability] - Hook registry for load, render and viewport events.
//
// [buildinfo] - Version information injected at build time.
//
// [rivers]: github.com/matzehuels/riverplot/pkg/rivers
// [plot]: github.com/matzehuels/riverplot/pkg/plot
// [render/sink]: github.com/matzehuels/riverplot/pkg/render/sink
// [pipeline]: github.com/matzehuels/riverplot/pkg/pipeline
// [errors]: github.com/matzehuels/riverplot/pkg/errors
// [fonts]: github.com/matzehuels/riverplot/pkg/fonts
// [observability]: github.com/matzehuels/riverplot/pkg/observability
// [buildinfo]: github.com/matzehuels/riverplot/pkg/buildinfo
package pkg
