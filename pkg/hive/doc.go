// Package hive computes hive plot layouts: node positions on radial axes and
// curved edge paths between them.
//
// A hive plot groups nodes onto (at most three) radial axes, orders them
// along each axis by a caller-chosen attribute, and draws edges as cubic
// curves that bulge towards the angle between their endpoints. Grouping and
// ordering are the caller's job; this package only does the geometry.
//
// # Geometry
//
// Groups are assigned base angles in input order, spaced by the major angle
// (2π / number of groups). A node at ordinal i of its group sits at radius
//
//	i·scale + internalRadius
//
// Angles are measured clockwise from the vertical axis, so polar coordinates
// map to Cartesian ones as
//
//	x = r·sin θ, y = r·cos θ
//
// (see [Cartesian]). When a group has an edge between two of its own members
// its axis is duplicated at base ± minor angle, and every node of the group
// is placed on both copies.
//
// # Edge routing
//
// [Plot.Route] turns an edge into a [curve.CubicBez]. The endpoint angles go
// through two corrections:
//
//  1. wraparound: an endpoint at angle 0 is moved to 2π when the edge would
//     otherwise sweep the long way around the seam; endpoints at the same
//     angle are spread apart by the minor angle so the curve never collapses
//     to a radial line;
//  2. duplication: for edges between different groups, each endpoint is
//     nudged onto the copy of its (duplicated) axis facing the other
//     endpoint. The group pair is classified into a [Transition] first.
//
// Both control points sit at the mean of the corrected angles, at the start
// and end radius respectively.
//
// # Usage
//
//	p, err := hive.New(
//	    []hive.GroupNodes{
//	        {Group: "a", Nodes: []string{"a0", "a1", "a2"}},
//	        {Group: "b", Nodes: []string{"b0", "b1"}},
//	    },
//	    []hive.EdgeGroup{
//	        {Group: "calls", Edges: []hive.Edge{{Source: "a0", Target: "b0"}}},
//	    },
//	    hive.Options{NodeColors: map[string]string{"a": "red", "b": "blue"}},
//	)
//	if err != nil {
//	    return err
//	}
//	layout, err := p.Layout()
//
// # Errors
//
// Configuration problems are reported with code INVALID_CONFIGURATION, and
// unknown nodes or groups with NODE_NOT_FOUND / GROUP_NOT_FOUND (see
// [github.com/matzehuels/hiveplot/pkg/errors]).
//
// # Concurrency
//
// A [Plot] is immutable after construction apart from [Plot.SetMinorAngle].
// All other methods are safe for concurrent use.
package hive
