package hive

// Layout is the complete declarative output of a plot: everything a
// renderer needs, with no reference back to the plot.
type Layout struct {
	Radius     float64
	Scale      float64
	MajorAngle float64
	MinorAngle float64
	Directed   bool
	Groups     []string
	Axes       []Axis
	Nodes      []NodePlacement
	Edges      []EdgeCurve
}

// Layout computes the axes, node placements and edge curves of the plot.
func (p *Plot) Layout() (*Layout, error) {
	edges, err := p.Edges()
	if err != nil {
		return nil, err
	}
	return &Layout{
		Radius:     p.PlotRadius(),
		Scale:      p.scale,
		MajorAngle: p.majorAngle,
		MinorAngle: p.minorAngle,
		Directed:   p.directed,
		Groups:     p.Groups(),
		Axes:       p.Axes(),
		Nodes:      p.Nodes(),
		Edges:      edges,
	}, nil
}
