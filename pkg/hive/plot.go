package hive

import (
	"math"

	"github.com/matzehuels/hiveplot/pkg/errors"
)

const (
	// DefaultScale is the radial distance between consecutive nodes on an axis.
	DefaultScale = 10.0

	// DefaultLineWidth is the stroke width of edge curves.
	DefaultLineWidth = 0.5

	// DefaultEdgeColor is used when no edge colormap entry exists.
	DefaultEdgeColor = "black"

	// DefaultNodeColor is used when no node colormap entry exists.
	DefaultNodeColor = "black"

	// EdgeOpacity is the stroke opacity of edge curves.
	EdgeOpacity = 0.3
)

// GroupNodes is one axis worth of input: a group label and its nodes in
// axis order.
type GroupNodes struct {
	Group string
	Nodes []string
}

// Edge connects two nodes. Attrs is an opaque payload carried through to the
// routed curve.
type Edge struct {
	Source string
	Target string
	Attrs  map[string]any
}

// EdgeGroup is a set of edges sharing a colour group. The colour group is
// unrelated to the node groups of the endpoints.
type EdgeGroup struct {
	Group string
	Edges []Edge
}

// Options configures a [Plot]. Zero values select defaults.
type Options struct {
	// Scale is the radial spacing between nodes (default 10).
	Scale float64

	// InternalRadius is the radius of the first node on every axis
	// (default Scale²).
	InternalRadius float64

	// LineWidth is the edge stroke width (default 0.5).
	LineWidth float64

	// Directed is passed through to edge curves as a rendering hint.
	Directed bool

	// MinorAngle overrides the default duplication offset 2π/(6·groups).
	MinorAngle float64

	// NodeColors maps node groups to colours.
	NodeColors map[string]string

	// EdgeColors maps edge groups to colours. Nil means every edge is drawn
	// in DefaultEdgeColor.
	EdgeColors map[string]string
}

func (o Options) withDefaults() Options {
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.InternalRadius == 0 {
		o.InternalRadius = o.Scale * o.Scale
	}
	if o.LineWidth == 0 {
		o.LineWidth = DefaultLineWidth
	}
	return o
}

// nodeRef locates a node: group index and ordinal within that group.
type nodeRef struct {
	group   int
	ordinal int
}

// Plot is a hive plot over fixed, pre-ordered input. Build one with [New].
type Plot struct {
	groups     []GroupNodes
	edges      []EdgeGroup
	groupIndex map[string]int
	members    []map[string]struct{}
	nodes      map[string]nodeRef
	within     []bool

	nodeColors map[string]string
	edgeColors map[string]string

	scale          float64
	internalRadius float64
	lineWidth      float64
	directed       bool

	majorAngle float64
	minorAngle float64
}

// New builds a plot from ordered groups and edge groups.
//
// Group order fixes each axis' base angle. The slices are not copied deeply;
// callers must not modify them while the plot is in use.
func New(groups []GroupNodes, edges []EdgeGroup, opts Options) (*Plot, error) {
	if len(groups) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "a hive plot needs at least one group")
	}
	opts = opts.withDefaults()
	if !(opts.Scale > 0) || math.IsInf(opts.Scale, 0) {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "scale must be positive, got %v", opts.Scale)
	}
	if !(opts.InternalRadius >= 0) {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "internal radius must not be negative, got %v", opts.InternalRadius)
	}

	p := &Plot{
		groups:         append([]GroupNodes(nil), groups...),
		edges:          append([]EdgeGroup(nil), edges...),
		groupIndex:     make(map[string]int, len(groups)),
		members:        make([]map[string]struct{}, len(groups)),
		nodes:          make(map[string]nodeRef),
		within:         make([]bool, len(groups)),
		nodeColors:     opts.NodeColors,
		edgeColors:     opts.EdgeColors,
		scale:          opts.Scale,
		internalRadius: opts.InternalRadius,
		lineWidth:      opts.LineWidth,
		directed:       opts.Directed,
		majorAngle:     MajorAngle(len(groups)),
		minorAngle:     DefaultMinorAngle(len(groups)),
	}

	for i, g := range groups {
		if _, dup := p.groupIndex[g.Group]; dup {
			return nil, errors.New(errors.ErrCodeInvalidConfiguration, "group %q listed twice", g.Group)
		}
		p.groupIndex[g.Group] = i
		set := make(map[string]struct{}, len(g.Nodes))
		for ord, n := range g.Nodes {
			set[n] = struct{}{}
			// First group in order, then first ordinal, owns the node.
			if _, seen := p.nodes[n]; !seen {
				p.nodes[n] = nodeRef{group: i, ordinal: ord}
			}
		}
		p.members[i] = set
	}

	for i := range groups {
		p.within[i] = p.scanWithin(i)
	}

	if opts.MinorAngle != 0 {
		if err := p.SetMinorAngle(opts.MinorAngle); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// scanWithin reports whether any edge has both endpoints in group i.
func (p *Plot) scanWithin(i int) bool {
	set := p.members[i]
	for _, eg := range p.edges {
		for _, e := range eg.Edges {
			_, src := set[e.Source]
			_, dst := set[e.Target]
			if src && dst {
				return true
			}
		}
	}
	return false
}

// Groups returns the group labels in axis order.
func (p *Plot) Groups() []string {
	out := make([]string, len(p.groups))
	for i, g := range p.groups {
		out[i] = g.Group
	}
	return out
}

// NumGroups returns the number of node groups.
func (p *Plot) NumGroups() int { return len(p.groups) }

// Scale returns the radial spacing between nodes.
func (p *Plot) Scale() float64 { return p.scale }

// InternalRadius returns the radius of the first node on each axis.
func (p *Plot) InternalRadius() float64 { return p.internalRadius }

// Directed reports whether edges should be rendered as directed.
func (p *Plot) Directed() bool { return p.directed }

// EdgeCount returns the total number of edges over all edge groups.
func (p *Plot) EdgeCount() int {
	n := 0
	for _, eg := range p.edges {
		n += len(eg.Edges)
	}
	return n
}

// NodeCount returns the number of distinct nodes.
func (p *Plot) NodeCount() int { return len(p.nodes) }

func (p *Plot) nodeColor(group string) string {
	if c, ok := p.nodeColors[group]; ok && c != "" {
		return c
	}
	return DefaultNodeColor
}

func (p *Plot) edgeColor(group string) string {
	if c, ok := p.edgeColors[group]; ok && c != "" {
		return c
	}
	return DefaultEdgeColor
}
