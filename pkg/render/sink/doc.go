// Package sink provides output format renderers for hive plot layouts.
//
// # Overview
//
// A "sink" transforms a computed [graph.Layout] into a final output format:
//
//   - SVG: Scalable vector graphics
//   - JSON: Layout data export for external tools
//   - PDF: Print-ready output (requires rsvg-convert)
//   - PNG: Raster image output (requires rsvg-convert)
//
// # SVG Output
//
// [RenderSVG] draws the axes, the edge curves and the node markers, in that
// order, with the plot origin at the centre of the viewBox. Layout
// coordinates grow upwards; the renderer flips them for SVG. Directed layouts
// get an arrowhead marker per edge colour.
//
//	svg := sink.RenderSVG(layout,
//	    sink.WithGroupLabels(),
//	    sink.WithBackground("#fafafa"),
//	)
//
// # SVG Options
//
//   - [WithMargin]: padding as a fraction of the plot radius
//   - [WithBackground]: canvas fill ("" for transparent)
//   - [WithGroupLabels]: label each axis with its group
//   - [WithPrecision]: coordinate decimals
//
// # JSON Output
//
// [RenderJSON] writes the layout document itself, suitable for caching and
// for re-rendering without recomputing the layout.
//
// # PDF and PNG Output
//
// [RenderPDF] and [RenderPNG] render SVG first and convert it with
// rsvg-convert (see [render.ToPDF] and [render.ToPNG]).
//
// [render.ToPDF]: github.com/matzehuels/hiveplot/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/hiveplot/pkg/render.ToPNG
package sink
