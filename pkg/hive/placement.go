package hive

import (
	"math"

	"honnef.co/go/curve"
)

// Cartesian converts a polar coordinate to a point, measuring θ clockwise
// from the vertical axis: x = r·sin θ, y = r·cos θ.
func Cartesian(r, theta float64) curve.Point {
	return curve.Pt(r*math.Sin(theta), r*math.Cos(theta))
}

// NodePlacement is one drawn node marker. Nodes of a duplicated group are
// placed twice.
type NodePlacement struct {
	Node    string
	Group   string
	Ordinal int
	Radius  float64
	Angle   float64
	Marker  curve.Circle
	Color   string
}

// Axis is one drawn axis line. A duplicated group has two.
type Axis struct {
	Group string
	Angle float64
	Line  curve.Line
}

// PlaceGroup returns the node markers of group in axis order. A group with
// within-group edges yields all markers on the base−minor axis followed by
// all markers on the base+minor axis.
func (p *Plot) PlaceGroup(group string) ([]NodePlacement, error) {
	i, err := p.groupIdx(group)
	if err != nil {
		return nil, err
	}
	return p.placeGroupAt(i), nil
}

func (p *Plot) placeGroupAt(i int) []NodePlacement {
	g := p.groups[i]
	angles := p.axisAngles(i)
	color := p.nodeColor(g.Group)
	dot := p.scale / 4

	out := make([]NodePlacement, 0, len(angles)*len(g.Nodes))
	for _, theta := range angles {
		for ord, n := range g.Nodes {
			r := p.radiusAt(ord)
			out = append(out, NodePlacement{
				Node:    n,
				Group:   g.Group,
				Ordinal: ord,
				Radius:  r,
				Angle:   theta,
				Marker:  curve.Circle{Center: Cartesian(r, theta), Radius: dot},
				Color:   color,
			})
		}
	}
	return out
}

// Nodes returns the node markers of every group in group order.
func (p *Plot) Nodes() []NodePlacement {
	var out []NodePlacement
	for i := range p.groups {
		out = append(out, p.placeGroupAt(i)...)
	}
	return out
}

// Axes returns the axis lines of every non-empty group, running from the
// internal radius to the outermost node.
func (p *Plot) Axes() []Axis {
	var out []Axis
	for i, g := range p.groups {
		if len(g.Nodes) == 0 {
			continue
		}
		inner, outer := p.internalRadius, p.radiusAt(len(g.Nodes)-1)
		for _, theta := range p.axisAngles(i) {
			out = append(out, Axis{
				Group: g.Group,
				Angle: theta,
				Line:  curve.Line{P0: Cartesian(inner, theta), P1: Cartesian(outer, theta)},
			})
		}
	}
	return out
}

// axisAngles returns the angles at which group i is drawn.
func (p *Plot) axisAngles(i int) []float64 {
	base := p.baseAngle(i)
	if p.within[i] {
		return []float64{base - p.minorAngle, base + p.minorAngle}
	}
	return []float64{base}
}
