// Package graph provides serialization types for hive plot inputs and layouts.
//
// This package defines the wire format for hiveplot's data, used for input
// files, API requests and responses, and cached layouts.
//
// # Architecture
//
// The package sits at the serialization boundary around the layout engine:
//
//   - [Graph]: input document (grouped, ordered nodes and coloured edges)
//   - pkg/hive.Plot: the layout engine
//   - [Layout]: computed positions and curves, ready for rendering
//
// Use [Graph.ToPlot] to build an engine plot and [FromHive] to serialize its
// output.
//
// # Graph Documents
//
// Graphs are accepted as JSON or TOML. Group order sets axis angles and node
// order sets radii:
//
//	{
//	  "groups": [
//	    {"name": "services", "color": "#e41a1c", "nodes": ["api", "auth"]},
//	    {"name": "stores", "color": "#377eb8", "nodes": ["postgres"]}
//	  ],
//	  "edges": [
//	    {"group": "reads", "color": "gray", "edges": [{"from": "api", "to": "postgres"}]}
//	  ],
//	  "options": {"scale": 10, "directed": true}
//	}
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("services.toml")   // File → Graph
//	plot, _ := g.ToPlot()                          // Graph → hive.Plot
//	l, _ := plot.Layout()
//	graph.WriteLayoutFile(graph.FromHive(l), "layout.json")
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
