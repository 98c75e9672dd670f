package graph

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/hiveplot/pkg/errors"
)

// =============================================================================
// Constants
// =============================================================================

// Input document formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// MaxGroups is the number of groups a hive plot is designed for. Larger
// inputs are laid out but not visually optimised.
const MaxGroups = 3

// FormatFromPath infers the document format from a file extension.
// Unknown extensions default to JSON.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// ValidateFormat checks that format names a supported input format.
func ValidateFormat(format string) error {
	switch format {
	case FormatJSON, FormatTOML:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unsupported graph format %q (use json or toml)", format)
}

// =============================================================================
// Graph - Hive Plot Input Document
// =============================================================================

// Graph is the input document for a hive plot: nodes already grouped and
// ordered, edges grouped by colour, and layout options.
//
// Group order is significant: it fixes each axis' angle. Node order within
// a group fixes each node's radius.
type Graph struct {
	Groups  []Group     `json:"groups" toml:"groups" bson:"groups"`
	Edges   []EdgeGroup `json:"edges,omitempty" toml:"edges,omitempty" bson:"edges,omitempty"`
	Options Options     `json:"options,omitempty" toml:"options,omitempty" bson:"options,omitempty"`
}

// Group is one axis: a label, an optional node colour and ordered nodes.
type Group struct {
	Name  string   `json:"name" toml:"name" bson:"name"`
	Color string   `json:"color,omitempty" toml:"color,omitempty" bson:"color,omitempty"`
	Nodes []string `json:"nodes" toml:"nodes" bson:"nodes"`
}

// EdgeGroup is a set of edges drawn in one colour. Its name is independent
// of the node groups the edges connect.
type EdgeGroup struct {
	Group string `json:"group" toml:"group" bson:"group"`
	Color string `json:"color,omitempty" toml:"color,omitempty" bson:"color,omitempty"`
	Edges []Edge `json:"edges" toml:"edges" bson:"edges"`
}

// Edge is a directed pair of node IDs with an opaque payload.
type Edge struct {
	From  string         `json:"from" toml:"from" bson:"from"`
	To    string         `json:"to" toml:"to" bson:"to"`
	Attrs map[string]any `json:"attrs,omitempty" toml:"attrs,omitempty" bson:"attrs,omitempty"`
}

// Options mirrors the layout options of a hive plot. Zero values select
// the engine defaults.
type Options struct {
	Scale          float64 `json:"scale,omitempty" toml:"scale,omitempty" bson:"scale,omitempty"`
	InternalRadius float64 `json:"internal_radius,omitempty" toml:"internal_radius,omitempty" bson:"internal_radius,omitempty"`
	LineWidth      float64 `json:"line_width,omitempty" toml:"line_width,omitempty" bson:"line_width,omitempty"`
	Directed       bool    `json:"directed,omitempty" toml:"directed,omitempty" bson:"directed,omitempty"`
	MinorAngle     float64 `json:"minor_angle,omitempty" toml:"minor_angle,omitempty" bson:"minor_angle,omitempty"`
}

// NodeCount returns the number of node entries over all groups.
func (g *Graph) NodeCount() int {
	n := 0
	for _, grp := range g.Groups {
		n += len(grp.Nodes)
	}
	return n
}

// EdgeCount returns the number of edges over all edge groups.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, eg := range g.Edges {
		n += len(eg.Edges)
	}
	return n
}

// GroupNames returns the group labels in axis order.
func (g *Graph) GroupNames() []string {
	names := make([]string, len(g.Groups))
	for i, grp := range g.Groups {
		names[i] = grp.Name
	}
	return names
}
