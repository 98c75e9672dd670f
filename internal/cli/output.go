package cli

import (
	"fmt"
	"os"
	"path/filepath"
)

// artifactWriteParams describes rendered artifacts to write to disk.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
}

// writeArtifacts writes each artifact and returns the written paths in
// format order. A single format honours output as the exact file name;
// several formats share output (or the input name) as a base path.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	paths := make([]string, 0, len(p.formats))
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			return paths, fmt.Errorf("no %s output produced", format)
		}
		path := artifactPath(p.output, p.input, format, len(p.formats))
		if err := writeFile(path, data); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// artifactPath picks the output file for one format.
func artifactPath(output, input, format string, count int) string {
	if count == 1 && output != "" {
		return output
	}
	return basePath(output, input) + "." + format
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// printArtifacts reports written files the way every render command does.
func printArtifacts(paths []string) {
	for _, p := range paths {
		printFile(p)
	}
}
