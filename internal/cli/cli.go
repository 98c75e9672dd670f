// Package cli implements the hiveplot command-line interface.
//
// # Commands
//
//   - render: graph document → SVG, PNG, PDF or JSON in one step
//   - layout: graph document → layout.json
//   - visualize: layout.json → SVG, PNG, PDF or JSON
//   - inspect: print groups, axes and node positions without rendering
//   - cache: clear or locate the layout cache
//   - serve: run the HTTP API
//   - completion: shell completion scripts
//
// All commands support --verbose (-v) for debug-level logging and --config
// for an explicit config file.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hiveplot/internal/config"
	"github.com/matzehuels/hiveplot/pkg/buildinfo"
	"github.com/matzehuels/hiveplot/pkg/cache"
	"github.com/matzehuels/hiveplot/pkg/observability"
	"github.com/matzehuels/hiveplot/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "hiveplot"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath is an explicit config file; empty searches the defaults.
	ConfigPath string

	// Verbose is set by --verbose and takes precedence over log.level.
	Verbose bool

	cfg *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RegisterHooks routes pipeline, cache and HTTP events to the CLI logger.
// Pipeline and cache events are logged at debug level, so they only show
// with --verbose.
func (c *CLI) RegisterHooks() {
	observability.SetPipelineHooks(observability.NewLogPipelineHooks(c.Logger))
	observability.SetCacheHooks(observability.NewLogCacheHooks(c.Logger))
	observability.SetHTTPHooks(observability.NewLogHTTPHooks(c.Logger))
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Hiveplot draws grouped networks as hive plots",
		Long:         `Hiveplot lays out networks whose nodes fall into a few ordered groups as hive plots: one radial axis per group, nodes placed along their axis by order, and edges drawn as curves between axes.`,
		Version:      buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default: ./hiveplot.toml or the user config dir)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig loads the application config once.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return nil, err
	}
	for _, w := range cfg.Validate() {
		c.Logger.Warn(w)
	}
	c.cfg = cfg
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// newCache opens the configured cache backend. The CLI defaults to a file
// cache in the user cache directory.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	cc := cfg.Cache
	if cc.Backend == "" {
		cc.Backend = cache.BackendFile
	}
	if cc.Backend == cache.BackendFile && cc.Dir == "" {
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		cc.Dir = dir
	}
	return cache.Open(ctx, cc)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/hiveplot/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// basePath derives the base output path from the output and input paths.
// An empty output strips the input extension; a known format extension on
// output is stripped as well.
func basePath(output, input string) string {
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		return strings.TrimSuffix(base, ".layout")
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// =============================================================================
// Options Helpers
// =============================================================================

// layoutFlags are the geometry overrides shared by render and layout.
func layoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "radial distance between consecutive nodes (default 10)")
	cmd.Flags().Float64Var(&opts.InternalRadius, "internal-radius", 0, "radius where every axis starts (default scale²)")
	cmd.Flags().Float64Var(&opts.LineWidth, "line-width", 0, "edge stroke width (default 0.5)")
	cmd.Flags().Float64Var(&opts.MinorAngle, "minor-angle", 0, "angular offset of duplicated axes in radians (default major/6)")
	cmd.Flags().BoolVar(&opts.Directed, "directed", false, "draw arrowheads at edge targets")
	cmd.Flags().StringVar(&opts.InputFormat, "input-format", "", "graph document format: json, toml (default: from extension)")
}

// renderFlags are the drawing options shared by render and visualize.
func renderFlags(cmd *cobra.Command, opts *pipeline.Options, formats *string) {
	cmd.Flags().StringVarP(formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.PNGScale, "png-scale", pipeline.DefaultPNGScale, "PNG rasterization scale")
	cmd.Flags().Float64Var(&opts.Margin, "margin", pipeline.DefaultMargin, "padding around the plot as a fraction of its radius")
	cmd.Flags().StringVar(&opts.Background, "background", pipeline.DefaultBackground, `canvas colour, "none" for transparent`)
	cmd.Flags().BoolVar(&opts.GroupLabels, "labels", false, "write group names at the end of each axis")
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
