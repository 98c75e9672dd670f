// Package render provides format conversion for rendered hive plots.
//
// # Overview
//
// Hive plot layouts are drawn as SVG by the [sink] subpackage. This package
// converts that SVG into other formats with the external rsvg-convert tool
// (from librsvg):
//
//	svg := sink.RenderSVG(layout)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// Use [Available] to check for the tool before offering PNG or PDF output.
//
// [sink]: github.com/matzehuels/hiveplot/pkg/render/sink
package render
