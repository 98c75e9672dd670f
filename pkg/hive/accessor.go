package hive

import (
	"github.com/matzehuels/hiveplot/pkg/errors"
)

// PlotRadius returns the bounding radius of the plot: the longest axis
// (node count times scale) plus the internal radius.
func (p *Plot) PlotRadius() float64 {
	longest := 0.0
	for _, g := range p.groups {
		if r := float64(len(g.Nodes)) * p.scale; r > longest {
			longest = r
		}
	}
	return longest + p.internalRadius
}

// AxisLength returns the number of nodes in group.
func (p *Plot) AxisLength(group string) (int, error) {
	i, err := p.groupIdx(group)
	if err != nil {
		return 0, err
	}
	return len(p.groups[i].Nodes), nil
}

// HasEdgeWithinGroup reports whether any edge joins two members of group.
// Such groups get a duplicated axis.
func (p *Plot) HasEdgeWithinGroup(group string) (bool, error) {
	i, err := p.groupIdx(group)
	if err != nil {
		return false, err
	}
	return p.within[i], nil
}

// GroupOf returns the group that owns node.
func (p *Plot) GroupOf(node string) (string, error) {
	ref, err := p.locate(node)
	if err != nil {
		return "", err
	}
	return p.groups[ref.group].Group, nil
}

// Ordinal returns the position of node within its group.
func (p *Plot) Ordinal(node string) (int, error) {
	ref, err := p.locate(node)
	if err != nil {
		return 0, err
	}
	return ref.ordinal, nil
}

// NodeRadius returns ordinal·scale + internalRadius for node.
func (p *Plot) NodeRadius(node string) (float64, error) {
	ref, err := p.locate(node)
	if err != nil {
		return 0, err
	}
	return p.radiusAt(ref.ordinal), nil
}

// NodeAngle returns the base angle of node's group. Duplication offsets are
// applied only when placing nodes and routing edges.
func (p *Plot) NodeAngle(node string) (float64, error) {
	ref, err := p.locate(node)
	if err != nil {
		return 0, err
	}
	return p.baseAngle(ref.group), nil
}

func (p *Plot) radiusAt(ordinal int) float64 {
	return float64(ordinal)*p.scale + p.internalRadius
}

func (p *Plot) groupIdx(group string) (int, error) {
	i, ok := p.groupIndex[group]
	if !ok {
		return 0, errors.New(errors.ErrCodeGroupNotFound, "%q is not one of the node groups", group)
	}
	return i, nil
}

func (p *Plot) locate(node string) (nodeRef, error) {
	ref, ok := p.nodes[node]
	if !ok {
		return nodeRef{}, errors.New(errors.ErrCodeNodeNotFound, "node %q does not belong to any group", node)
	}
	return ref, nil
}
