// Package pipeline provides the core hive plot pipeline.
//
// This package implements the complete parse → layout → render pipeline that
// is shared by the CLI and the HTTP API, so both entry points apply the same
// defaults, validation and caching.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Read a graph document (JSON or TOML) from a file or request body
//  2. Layout: Compute axes, node placements and edge curves
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "services.toml",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	g, err := pipeline.Parse(opts)
//	layout, hit, err := runner.GenerateLayoutWithCacheInfo(ctx, g, opts)
//	artifacts, hit, err := runner.RenderWithCacheInfo(ctx, layout, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hiveplot/pkg/cache"
	"github.com/matzehuels/hiveplot/pkg/errors"
	"github.com/matzehuels/hiveplot/pkg/graph"
	"github.com/matzehuels/hiveplot/pkg/render/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultPNGScale is the rasterization scale for PNG output.
	DefaultPNGScale = 2.0

	// DefaultBackground is the canvas colour. "none" renders transparent.
	DefaultBackground = "white"

	// DefaultMargin is the padding around the plot as a fraction of its radius.
	DefaultMargin = sink.DefaultMargin
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the hive plot pipeline.
// This struct supports JSON serialization for API requests.
//
// Layout fields override the options stored in the graph document when set.
type Options struct {
	// Parse options
	Input       string `json:"-"`                      // Graph file path (CLI)
	Document    []byte `json:"-"`                      // Inline graph document (API)
	InputFormat string `json:"input_format,omitempty"` // json or toml; inferred from Input when empty

	// Layout options
	Scale          float64 `json:"scale,omitempty"`
	InternalRadius float64 `json:"internal_radius,omitempty"`
	LineWidth      float64 `json:"line_width,omitempty"`
	MinorAngle     float64 `json:"minor_angle,omitempty"`
	Directed       bool    `json:"directed,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	PNGScale    float64  `json:"png_scale,omitempty"`
	Margin      float64  `json:"margin,omitempty"`
	Background  string   `json:"background,omitempty"`
	GroupLabels bool     `json:"group_labels,omitempty"`

	// Refresh bypasses cached layouts and artifacts.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the parsed graph document with option overrides applied.
	Graph graph.Graph

	// GraphHash is the content hash of the graph.
	GraphHash string

	// Layout is the computed hive plot.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	GroupCount int
	NodeCount  int
	EdgeCount  int
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether layout result came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateForParse checks that there is something to parse.
func (o *Options) ValidateForParse() error {
	if o.Input == "" && len(o.Document) == 0 {
		return fmt.Errorf("input file or document is required")
	}
	if len(o.Document) == 0 {
		if err := errors.ValidatePath(o.Input); err != nil {
			return err
		}
	}
	if o.InputFormat != "" {
		if err := graph.ValidateFormat(o.InputFormat); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = discardLogger()
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
// Geometry defaults live in the layout engine, so only the logger is set.
func (o *Options) SetLayoutDefaults() {
	if o.Logger == nil {
		o.Logger = discardLogger()
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.Scale < 0 {
		return fmt.Errorf("invalid scale: %g (must be positive)", o.Scale)
	}
	if o.InternalRadius < 0 {
		return fmt.Errorf("invalid internal_radius: %g (must not be negative)", o.InternalRadius)
	}
	if o.LineWidth < 0 {
		return fmt.Errorf("invalid line_width: %g (must not be negative)", o.LineWidth)
	}
	if o.MinorAngle < 0 {
		return fmt.Errorf("invalid minor_angle: %g (must not be negative)", o.MinorAngle)
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Margin == 0 {
		o.Margin = DefaultMargin
	}
	if o.Background == "" {
		o.Background = DefaultBackground
	}
	if o.Logger == nil {
		o.Logger = discardLogger()
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.PNGScale < 0 {
		return fmt.Errorf("invalid png_scale: %g (must be positive)", o.PNGScale)
	}
	if o.Margin < 0 {
		return fmt.Errorf("invalid margin: %g (must not be negative)", o.Margin)
	}
	return nil
}

// Apply returns a copy of g with the layout overrides of o written into its
// options. Zero-valued overrides keep the document's value.
func (o *Options) Apply(g graph.Graph) graph.Graph {
	if o.Scale != 0 {
		g.Options.Scale = o.Scale
	}
	if o.InternalRadius != 0 {
		g.Options.InternalRadius = o.InternalRadius
	}
	if o.LineWidth != 0 {
		g.Options.LineWidth = o.LineWidth
	}
	if o.MinorAngle != 0 {
		g.Options.MinorAngle = o.MinorAngle
	}
	if o.Directed {
		g.Options.Directed = true
	}
	return g
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Scale:          o.Scale,
		InternalRadius: o.InternalRadius,
		LineWidth:      o.LineWidth,
		MinorAngle:     o.MinorAngle,
		Directed:       o.Directed,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG, FormatPNG, FormatPDF:
		k.Margin = o.Margin
		k.Background = o.Background
		k.GroupLabels = o.GroupLabels
	}
	if format == FormatPNG {
		k.PNGScale = o.PNGScale
	}
	return k
}

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}
