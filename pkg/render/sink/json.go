package sink

import (
	"github.com/matzehuels/hiveplot/pkg/graph"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	stripPaths bool
	stripAttrs bool
}

// WithoutPaths drops the SVG path strings, keeping only the Bézier points.
func WithoutPaths() JSONOption { return func(r *jsonRenderer) { r.stripPaths = true } }

// WithoutAttrs drops edge attribute payloads.
func WithoutAttrs() JSONOption { return func(r *jsonRenderer) { r.stripAttrs = true } }

// RenderJSON exports the layout as a pretty-printed JSON document, the same
// format [graph.ReadLayoutFile] reads back. It does not modify l.
func RenderJSON(l graph.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if r.stripPaths || r.stripAttrs {
		edges := make([]graph.Curve, len(l.Edges))
		copy(edges, l.Edges)
		for i := range edges {
			if r.stripPaths {
				edges[i].Path = ""
			}
			if r.stripAttrs {
				edges[i].Attrs = nil
			}
		}
		l.Edges = edges
	}
	return graph.MarshalLayout(l)
}
