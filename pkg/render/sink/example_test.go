package sink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/hiveplot/pkg/graph"
	"github.com/matzehuels/hiveplot/pkg/render/sink"
)

func ExampleRenderSVG() {
	g := graph.Graph{
		Groups: []graph.Group{
			{Name: "app", Color: "tomato", Nodes: []string{"web", "cli"}},
			{Name: "lib", Color: "teal", Nodes: []string{"core"}},
		},
		Edges: []graph.EdgeGroup{{Group: "imports", Edges: []graph.Edge{{From: "web", To: "core"}}}},
	}
	plot, _ := g.ToPlot()
	hl, _ := plot.Layout()

	svg := string(sink.RenderSVG(graph.FromHive(hl)))

	fmt.Println("SVG starts with:", svg[:4])
	fmt.Println("Contains viewBox:", strings.Contains(svg, "viewBox"))
	fmt.Println("Nodes:", strings.Count(svg, "<circle"))
	// Output:
	// SVG starts with: <svg
	// Contains viewBox: true
	// Nodes: 3
}
