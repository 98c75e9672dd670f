package pipeline

import (
	"bytes"
	"fmt"
	"os"

	"github.com/matzehuels/hiveplot/pkg/graph"
)

// Parse reads the graph document named by opts, either the file at
// opts.Input or the inline opts.Document, and validates it.
func Parse(opts Options) (graph.Graph, error) {
	if err := opts.ValidateForParse(); err != nil {
		return graph.Graph{}, err
	}

	var (
		g   graph.Graph
		err error
	)
	if len(opts.Document) > 0 {
		format := opts.InputFormat
		if format == "" {
			format = sniffFormat(opts.Document)
		}
		g, err = graph.ReadGraph(bytes.NewReader(opts.Document), format)
	} else {
		g, err = parseFile(opts)
	}
	if err != nil {
		return graph.Graph{}, err
	}

	if err := g.Validate(); err != nil {
		return graph.Graph{}, err
	}
	return g, nil
}

func parseFile(opts Options) (graph.Graph, error) {
	if opts.InputFormat == "" {
		return graph.ReadGraphFile(opts.Input)
	}
	f, err := os.Open(opts.Input)
	if err != nil {
		return graph.Graph{}, fmt.Errorf("open %s: %w", opts.Input, err)
	}
	defer f.Close()
	return graph.ReadGraph(f, opts.InputFormat)
}

// sniffFormat guesses the format of an inline document: JSON documents are
// objects, anything else is treated as TOML.
func sniffFormat(doc []byte) string {
	if trimmed := bytes.TrimSpace(doc); len(trimmed) > 0 && trimmed[0] == '{' {
		return graph.FormatJSON
	}
	return graph.FormatTOML
}
