package graph

import (
	"github.com/matzehuels/hiveplot/pkg/errors"
	"github.com/matzehuels/hiveplot/pkg/hive"
)

// =============================================================================
// Validation
// =============================================================================

// Validate checks a graph document before layout: labels and colours are
// well formed, group names are unique and every edge endpoint is listed in
// some group. It returns the first problem found.
func (g *Graph) Validate() error {
	if len(g.Groups) == 0 {
		return errors.New(errors.ErrCodeInvalidConfiguration, "graph has no groups")
	}

	known := make(map[string]struct{}, g.NodeCount())
	seen := make(map[string]struct{}, len(g.Groups))
	for _, grp := range g.Groups {
		if err := errors.ValidateLabel("group", grp.Name); err != nil {
			return err
		}
		if _, dup := seen[grp.Name]; dup {
			return errors.New(errors.ErrCodeInvalidConfiguration, "group %q listed twice", grp.Name)
		}
		seen[grp.Name] = struct{}{}
		if err := errors.ValidateColor(grp.Color); err != nil {
			return err
		}
		for _, n := range grp.Nodes {
			if err := errors.ValidateLabel("node", n); err != nil {
				return err
			}
			known[n] = struct{}{}
		}
	}

	for _, eg := range g.Edges {
		if err := errors.ValidateLabel("edge group", eg.Group); err != nil {
			return err
		}
		if err := errors.ValidateColor(eg.Color); err != nil {
			return err
		}
		for i, e := range eg.Edges {
			for _, end := range []string{e.From, e.To} {
				if _, ok := known[end]; !ok {
					return errors.New(errors.ErrCodeNodeNotFound,
						"edge %d of %q references node %q, which is in no group", i, eg.Group, end)
				}
			}
		}
	}

	if g.Options.Scale < 0 || g.Options.InternalRadius < 0 || g.Options.LineWidth < 0 {
		return errors.New(errors.ErrCodeInvalidConfiguration, "scale, internal_radius and line_width must not be negative")
	}
	return nil
}

// =============================================================================
// Graph → hive.Plot Conversion
// =============================================================================

// ToPlot validates g and builds a hive plot from it.
func (g *Graph) ToPlot() (*hive.Plot, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	groups := make([]hive.GroupNodes, len(g.Groups))
	for i, grp := range g.Groups {
		groups[i] = hive.GroupNodes{Group: grp.Name, Nodes: grp.Nodes}
	}

	edges := make([]hive.EdgeGroup, len(g.Edges))
	for i, eg := range g.Edges {
		out := hive.EdgeGroup{Group: eg.Group, Edges: make([]hive.Edge, len(eg.Edges))}
		for j, e := range eg.Edges {
			out.Edges[j] = hive.Edge{Source: e.From, Target: e.To, Attrs: e.Attrs}
		}
		edges[i] = out
	}

	return hive.New(groups, edges, g.HiveOptions())
}

// HiveOptions converts the document options and colours into engine options.
// An edge colormap is only set when at least one edge group names a colour,
// so documents without edge colours draw every edge in the default colour.
func (g *Graph) HiveOptions() hive.Options {
	opts := hive.Options{
		Scale:          g.Options.Scale,
		InternalRadius: g.Options.InternalRadius,
		LineWidth:      g.Options.LineWidth,
		Directed:       g.Options.Directed,
		MinorAngle:     g.Options.MinorAngle,
		NodeColors:     make(map[string]string, len(g.Groups)),
	}
	for _, grp := range g.Groups {
		if grp.Color != "" {
			opts.NodeColors[grp.Name] = grp.Color
		}
	}
	for _, eg := range g.Edges {
		if eg.Color == "" {
			continue
		}
		if opts.EdgeColors == nil {
			opts.EdgeColors = make(map[string]string, len(g.Edges))
		}
		opts.EdgeColors[eg.Group] = eg.Color
	}
	return opts
}
