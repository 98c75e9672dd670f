package pipeline

import (
	"fmt"

	"github.com/matzehuels/hiveplot/pkg/graph"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout computes a hive plot layout for g with the layout
// overrides of opts applied. Partial layouts are never returned: any
// lookup or configuration error aborts the whole computation.
func GenerateLayout(g graph.Graph, opts Options) (graph.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, err
	}

	work := opts.Apply(g)
	plot, err := work.ToPlot()
	if err != nil {
		return graph.Layout{}, err
	}

	if plot.NumGroups() > graph.MaxGroups {
		opts.Logger.Warn("hive plots read best with at most three groups",
			"groups", plot.NumGroups())
	}
	opts.Logger.Debug("building hive plot",
		"groups", plot.NumGroups(),
		"nodes", plot.NodeCount(),
		"radius", plot.PlotRadius())

	hl, err := plot.Layout()
	if err != nil {
		return graph.Layout{}, fmt.Errorf("compute layout: %w", err)
	}
	return graph.FromHive(hl), nil
}
