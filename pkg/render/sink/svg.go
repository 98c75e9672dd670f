package sink

import (
	"bytes"
	"fmt"
	"html"
	"strconv"

	"honnef.co/go/curve"

	"github.com/matzehuels/hiveplot/pkg/graph"
	"github.com/matzehuels/hiveplot/pkg/hive"
)

const (
	axisColor   = "black"
	axisOpacity = 0.3
	axisWidth   = 1.0

	// DefaultMargin is the padding around the plot radius, as a fraction of it.
	DefaultMargin = 0.05
)

// flipY maps layout coordinates (y up) to SVG coordinates (y down).
var flipY = curve.Scale(1, -1)

// SVGOption configures RenderSVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	margin      float64
	background  string
	groupLabels bool
	precision   int
}

// WithMargin sets the padding around the plot as a fraction of its radius.
func WithMargin(m float64) SVGOption { return func(r *svgRenderer) { r.margin = m } }

// WithBackground fills the canvas with a colour. Empty leaves it transparent.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// WithGroupLabels writes each group's name past the outer end of its axis.
func WithGroupLabels() SVGOption { return func(r *svgRenderer) { r.groupLabels = true } }

// WithPrecision caps the decimals of written coordinates (0 = shortest exact).
func WithPrecision(p int) SVGOption { return func(r *svgRenderer) { r.precision = p } }

// RenderSVG draws a layout as a standalone SVG document: axes first, then
// edges, then node markers on top. The viewBox is centred on the plot
// origin and spans the plot radius plus margin in every direction.
func RenderSVG(l graph.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	extent := l.Radius * (1 + r.margin)
	size := 2 * extent

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%.0f" height="%.0f">`+"\n",
		r.num(-extent), r.num(-extent), r.num(size), r.num(size), size, size)

	var arrows map[string]string
	if l.Directed {
		arrows = renderArrowDefs(&buf, l)
	}
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
			r.num(-extent), r.num(-extent), r.num(size), r.num(size), attr(r.background))
	}

	buf.WriteString(`  <g class="axes">` + "\n")
	for _, a := range l.Axes {
		r.renderAxis(&buf, a)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g class="edges" fill="none">` + "\n")
	for _, e := range l.Edges {
		r.renderEdge(&buf, e, arrows)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g class="nodes">` + "\n")
	for _, n := range l.Nodes {
		r.renderNode(&buf, n)
	}
	buf.WriteString("  </g>\n")

	if r.groupLabels {
		r.renderGroupLabels(&buf, l)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{margin: DefaultMargin, background: "white", precision: 3}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r *svgRenderer) renderAxis(buf *bytes.Buffer, a graph.Axis) {
	line := a.Line().Transform(flipY)
	fmt.Fprintf(buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-opacity="%g" stroke-width="%g" data-group="%s"/>`+"\n",
		r.num(line.P0.X), r.num(line.P0.Y), r.num(line.P1.X), r.num(line.P1.Y),
		axisColor, axisOpacity, axisWidth, attr(a.Group))
}

func (r *svgRenderer) renderEdge(buf *bytes.Buffer, e graph.Curve, arrows map[string]string) {
	bez := e.Bez().Transform(flipY)
	buf.WriteString(`    <path d="`)
	_ = curve.WriteSVG(buf, bez.PathElements(0.1), curve.SVGOptions{MaxPrecision: r.precision})
	fmt.Fprintf(buf, `" stroke="%s" stroke-width="%g" stroke-opacity="%g" data-from="%s" data-to="%s"`,
		attr(e.Stroke), e.LineWidth, e.Opacity, attr(e.From), attr(e.To))
	if id, ok := arrows[e.Stroke]; ok {
		fmt.Fprintf(buf, ` marker-end="url(#%s)"`, id)
	}
	buf.WriteString("/>\n")
}

func (r *svgRenderer) renderNode(buf *bytes.Buffer, n graph.Node) {
	c := n.Center.Pt().Transform(flipY)
	fmt.Fprintf(buf, `    <circle cx="%s" cy="%s" r="%s" fill="%s"><title>%s</title></circle>`+"\n",
		r.num(c.X), r.num(c.Y), r.num(n.Size), attr(n.Color), html.EscapeString(n.ID))
}

func (r *svgRenderer) renderGroupLabels(buf *bytes.Buffer, l graph.Layout) {
	buf.WriteString(`  <g class="labels" font-family="sans-serif" text-anchor="middle">` + "\n")
	for i, g := range l.Groups {
		p := hive.Cartesian(l.Radius, float64(i)*l.MajorAngle).Transform(flipY)
		fmt.Fprintf(buf, `    <text x="%s" y="%s" font-size="%s">%s</text>`+"\n",
			r.num(p.X), r.num(p.Y), r.num(l.Scale), html.EscapeString(g))
	}
	buf.WriteString("  </g>\n")
}

// renderArrowDefs emits one arrowhead marker per stroke colour and returns
// the marker id for each colour.
func renderArrowDefs(buf *bytes.Buffer, l graph.Layout) map[string]string {
	ids := make(map[string]string)
	buf.WriteString("  <defs>\n")
	for _, e := range l.Edges {
		if _, ok := ids[e.Stroke]; ok {
			continue
		}
		id := "arrow-" + strconv.Itoa(len(ids))
		ids[e.Stroke] = id
		fmt.Fprintf(buf, `    <marker id="%s" viewBox="0 0 10 10" refX="10" refY="5" markerWidth="6" markerHeight="6" orient="auto-start-reverse"><path d="M0,0 L10,5 L0,10 z" fill="%s"/></marker>`+"\n",
			id, attr(e.Stroke))
	}
	buf.WriteString("  </defs>\n")
	return ids
}

func (r *svgRenderer) num(v float64) string {
	if r.precision <= 0 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', r.precision, 64)
}

func attr(s string) string { return html.EscapeString(s) }
