package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/hiveplot/pkg/errors"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph encodes a graph document in the given format.
func MarshalGraph(g Graph, format string) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalGraph decodes a graph document. It does not validate it; call
// [Graph.Validate] or [Graph.ToPlot].
func UnmarshalGraph(data []byte, format string) (Graph, error) {
	return ReadGraph(bytes.NewReader(data), format)
}

// WriteGraph writes a graph document to w. JSON output is indented.
func WriteGraph(g Graph, w io.Writer, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(g); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(g); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	default:
		return ValidateFormat(format)
	}
	return nil
}

// ReadGraph decodes a graph document from r.
func ReadGraph(r io.Reader, format string) (Graph, error) {
	var g Graph
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&g); err != nil {
			return Graph{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json graph")
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&g); err != nil {
			return Graph{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml graph")
		}
	default:
		return Graph{}, ValidateFormat(format)
	}
	return g, nil
}

// WriteGraphFile writes a graph document, choosing the format from the
// file extension. The file is created with 0644 permissions.
func WriteGraphFile(g Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f, FormatFromPath(path))
}

// ReadGraphFile reads a graph document, choosing the format from the file
// extension.
func ReadGraphFile(path string) (Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Graph{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f, FormatFromPath(path))
}
