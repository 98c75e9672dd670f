package hive

import (
	"math"

	"github.com/matzehuels/hiveplot/pkg/errors"
	"honnef.co/go/curve"
)

// Transition classifies an edge by the order of its endpoint groups. It
// decides which duplicated axis each endpoint is routed to.
type Transition int

const (
	// SameGroup edges join two members of one group. No duplication nudge.
	SameGroup Transition = iota
	// WrapForward edges run from the first group to the last.
	WrapForward
	// WrapBackward edges run from the last group to the first.
	WrapBackward
	// Ascending edges run from a lower group index to a higher one.
	Ascending
	// Descending edges run from a higher group index to a lower one.
	Descending
)

func (t Transition) String() string {
	switch t {
	case SameGroup:
		return "same-group"
	case WrapForward:
		return "wrap-forward"
	case WrapBackward:
		return "wrap-backward"
	case Ascending:
		return "ascending"
	case Descending:
		return "descending"
	default:
		return "unknown"
	}
}

// Classify returns the transition for an edge from group index start to
// group index end out of n groups. Wraparound pairs take precedence over
// ascending and descending ones, so with two groups 0→1 is WrapForward.
func Classify(start, end, n int) Transition {
	last := n - 1
	switch {
	case start == end:
		return SameGroup
	case start == 0 && end == last:
		return WrapForward
	case start == last && end == 0:
		return WrapBackward
	case start < end:
		return Ascending
	default:
		return Descending
	}
}

// EdgeCurve is one routed edge, ready to stroke.
type EdgeCurve struct {
	Edge       Edge
	Group      string // edge (colour) group
	Index      int    // position within the edge group
	Transition Transition
	StartAngle float64
	EndAngle   float64
	Curve      curve.CubicBez
	Stroke     string
	LineWidth  float64
	Opacity    float64
	Directed   bool
}

// Route computes the curve for edge e of edge group group.
func (p *Plot) Route(group string, e Edge) (EdgeCurve, error) {
	src, err := p.locate(e.Source)
	if err != nil {
		return EdgeCurve{}, err
	}
	dst, err := p.locate(e.Target)
	if err != nil {
		return EdgeCurve{}, err
	}

	r0, r1 := p.radiusAt(src.ordinal), p.radiusAt(dst.ordinal)
	start, end := p.correctAngles(p.baseAngle(src.group), p.baseAngle(dst.group))
	t := Classify(src.group, dst.group, len(p.groups))
	start, end = p.adjustAngles(t, src.group, start, dst.group, end)

	mid := (start + end) / 2
	return EdgeCurve{
		Edge:       e,
		Group:      group,
		Transition: t,
		StartAngle: start,
		EndAngle:   end,
		Curve: curve.CubicBez{
			P0: Cartesian(r0, start),
			P1: Cartesian(r0, mid),
			P2: Cartesian(r1, mid),
			P3: Cartesian(r1, end),
		},
		Stroke:    p.edgeColor(group),
		LineWidth: p.lineWidth,
		Opacity:   EdgeOpacity,
		Directed:  p.directed,
	}, nil
}

// Edges routes every edge, edge groups in order. It stops at the first edge
// whose endpoints cannot be resolved.
func (p *Plot) Edges() ([]EdgeCurve, error) {
	out := make([]EdgeCurve, 0, p.EdgeCount())
	for _, eg := range p.edges {
		for i, e := range eg.Edges {
			c, err := p.Route(eg.Group, e)
			if err != nil {
				return nil, errors.Wrap(errors.GetCode(err), err,
					"route edge %d (%s -> %s) of edge group %q", i, e.Source, e.Target, eg.Group)
			}
			c.Index = i
			out = append(out, c)
		}
	}
	return out, nil
}

// correctAngles resolves the 0/2π seam and spreads apart endpoints that
// share an angle.
func (p *Plot) correctAngles(start, end float64) (float64, float64) {
	if start == 0 && end-start > math.Pi {
		start = 2 * math.Pi
	}
	if end == 0 && end-start < -math.Pi {
		end = 2 * math.Pi
	}
	if start == end {
		start -= p.minorAngle
		end += p.minorAngle
	}
	return start, end
}

// adjustAngles moves each endpoint onto the duplicated axis of its group
// that faces the other endpoint. Groups without a duplicated axis are left
// alone.
func (p *Plot) adjustAngles(t Transition, sg int, start float64, eg int, end float64) (float64, float64) {
	var ds, de float64
	switch t {
	case SameGroup:
		return start, end
	case WrapForward, Descending:
		ds, de = -p.minorAngle, p.minorAngle
	case WrapBackward, Ascending:
		ds, de = p.minorAngle, -p.minorAngle
	}
	if p.within[sg] {
		start = wrapNegative(start + ds)
	}
	if p.within[eg] {
		end = wrapNegative(end + de)
	}
	return start, end
}
