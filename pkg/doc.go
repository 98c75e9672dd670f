// Package pkg provides the core libraries for hiveplot.
//
// # Overview
//
// Hiveplot lays out networks whose nodes belong to a small number of ordered
// groups. Every group gets a radial axis, nodes sit along their axis in
// order, and edges are drawn as cubic Bézier curves between axes. A group
// with edges between its own nodes is drawn on two axes either side of its
// base angle so those edges stay visible.
//
// # Architecture
//
//	graph document (JSON/TOML)
//	         ↓
//	    [graph] package (decode + validate)
//	         ↓
//	    [hive] package (angles, placement, edge routing)
//	         ↓
//	    [render/sink] package (SVG, PNG, PDF, JSON)
//
// # Quick Start
//
//	g, _ := graph.ReadGraphFile("services.toml")
//	plot, _ := g.ToPlot()
//	hl, _ := plot.Layout()
//	svg := sink.RenderSVG(graph.FromHive(hl))
//
// # Main Packages
//
// [hive] - The layout engine. Computes major and minor angles, axis
// duplication, node radii and edge curves. It knows nothing about files or
// formats.
//
// [graph] - Serialization types: the input document and the computed layout.
//
// [render/sink] - Output formats for a layout. [render] converts SVG to PNG
// and PDF with rsvg-convert.
//
// [pipeline] - Parse → layout → render with caching, shared by the CLI and
// the HTTP API so both apply the same defaults.
//
// [cache] - Null, file, Redis and MongoDB cache backends with content-hash
// keys.
//
// [observability] - Hook interfaces for pipeline, cache and HTTP events.
//
// [errors] - Coded errors and input validation.
//
// # Testing
//
//	go test ./pkg/...
//	go test -run Example ./pkg/...
//
// [hive]: https://pkg.go.dev/github.com/matzehuels/hiveplot/pkg/hive
// [graph]: https://pkg.go.dev/github.com/matzehuels/hiveplot/pkg/graph
// [render]: https://pkg.go.dev/github.com/matzehuels/hiveplot/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/hiveplot/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/hiveplot/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/hiveplot/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/hiveplot/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/hiveplot/pkg/errors
package pkg
