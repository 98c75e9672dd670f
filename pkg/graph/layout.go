package graph

import (
	"encoding/json"
	"fmt"
	"os"

	"honnef.co/go/curve"

	"github.com/matzehuels/hiveplot/pkg/hive"
)

// pathPrecision bounds the decimals of SVG path data stored in layouts.
const pathPrecision = 3

// =============================================================================
// Layout - Computed Hive Plot
// =============================================================================

// Layout is the serialized form of a computed hive plot. It carries
// everything a renderer needs: plot radius, axis segments, node markers and
// edge curves. It is the unit stored in caches and returned by the API.
type Layout struct {
	Radius     float64  `json:"radius" bson:"radius"`
	Scale      float64  `json:"scale" bson:"scale"`
	MajorAngle float64  `json:"major_angle" bson:"major_angle"`
	MinorAngle float64  `json:"minor_angle" bson:"minor_angle"`
	Directed   bool     `json:"directed,omitempty" bson:"directed,omitempty"`
	Groups     []string `json:"groups" bson:"groups"`
	Axes       []Axis   `json:"axes" bson:"axes"`
	Nodes      []Node   `json:"nodes" bson:"nodes"`
	Edges      []Curve  `json:"edges" bson:"edges"`
}

// Point is a Cartesian coordinate.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Axis is one drawn axis segment.
type Axis struct {
	Group string  `json:"group" bson:"group"`
	Angle float64 `json:"angle" bson:"angle"`
	From  Point   `json:"from" bson:"from"`
	To    Point   `json:"to" bson:"to"`
}

// Node is one node marker. Nodes on a duplicated axis appear twice.
type Node struct {
	ID      string  `json:"id" bson:"id"`
	Group   string  `json:"group" bson:"group"`
	Ordinal int     `json:"ordinal" bson:"ordinal"`
	Radius  float64 `json:"radius" bson:"radius"`
	Angle   float64 `json:"angle" bson:"angle"`
	Center  Point   `json:"center" bson:"center"`
	Size    float64 `json:"size" bson:"size"`
	Color   string  `json:"color" bson:"color"`
}

// Curve is one routed edge: four Bézier points plus SVG path data.
type Curve struct {
	Group      string         `json:"group" bson:"group"`
	Index      int            `json:"index" bson:"index"`
	From       string         `json:"from" bson:"from"`
	To         string         `json:"to" bson:"to"`
	Transition string         `json:"transition" bson:"transition"`
	StartAngle float64        `json:"start_angle" bson:"start_angle"`
	EndAngle   float64        `json:"end_angle" bson:"end_angle"`
	Points     [4]Point       `json:"points" bson:"points"`
	Path       string         `json:"path" bson:"path"`
	Stroke     string         `json:"stroke" bson:"stroke"`
	LineWidth  float64        `json:"line_width" bson:"line_width"`
	Opacity    float64        `json:"opacity" bson:"opacity"`
	Attrs      map[string]any `json:"attrs,omitempty" bson:"attrs,omitempty"`
}

func fromPoint(p curve.Point) Point { return Point{X: p.X, Y: p.Y} }

// Pt converts back to a curve point.
func (p Point) Pt() curve.Point { return curve.Pt(p.X, p.Y) }

// Line returns the axis as a line segment.
func (a Axis) Line() curve.Line { return curve.Line{P0: a.From.Pt(), P1: a.To.Pt()} }

// Circle returns the node marker.
func (n Node) Circle() curve.Circle { return curve.Circle{Center: n.Center.Pt(), Radius: n.Size} }

// Bez returns the edge as a cubic Bézier curve.
func (c Curve) Bez() curve.CubicBez {
	return curve.CubicBez{P0: c.Points[0].Pt(), P1: c.Points[1].Pt(), P2: c.Points[2].Pt(), P3: c.Points[3].Pt()}
}

// =============================================================================
// hive.Layout → Layout Conversion
// =============================================================================

// FromHive converts an engine layout to its serialized form.
func FromHive(l *hive.Layout) Layout {
	out := Layout{
		Radius:     l.Radius,
		Scale:      l.Scale,
		MajorAngle: l.MajorAngle,
		MinorAngle: l.MinorAngle,
		Directed:   l.Directed,
		Groups:     l.Groups,
		Axes:       make([]Axis, len(l.Axes)),
		Nodes:      make([]Node, len(l.Nodes)),
		Edges:      make([]Curve, len(l.Edges)),
	}
	for i, a := range l.Axes {
		out.Axes[i] = Axis{Group: a.Group, Angle: a.Angle, From: fromPoint(a.Line.P0), To: fromPoint(a.Line.P1)}
	}
	for i, n := range l.Nodes {
		out.Nodes[i] = Node{
			ID:      n.Node,
			Group:   n.Group,
			Ordinal: n.Ordinal,
			Radius:  n.Radius,
			Angle:   n.Angle,
			Center:  fromPoint(n.Marker.Center),
			Size:    n.Marker.Radius,
			Color:   n.Color,
		}
	}
	for i, e := range l.Edges {
		c := e.Curve
		out.Edges[i] = Curve{
			Group:      e.Group,
			Index:      e.Index,
			From:       e.Edge.Source,
			To:         e.Edge.Target,
			Transition: e.Transition.String(),
			StartAngle: e.StartAngle,
			EndAngle:   e.EndAngle,
			Points:     [4]Point{fromPoint(c.P0), fromPoint(c.P1), fromPoint(c.P2), fromPoint(c.P3)},
			Path:       curve.SVG(c.PathElements(0.1), curve.SVGOptions{MaxPrecision: pathPrecision}),
			Stroke:     e.Stroke,
			LineWidth:  e.LineWidth,
			Opacity:    e.Opacity,
			Attrs:      e.Edge.Attrs,
		}
	}
	return out
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.Radius <= 0 {
		return Layout{}, fmt.Errorf("layout must have a positive radius")
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
