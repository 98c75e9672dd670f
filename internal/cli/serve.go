package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hiveplot/internal/server"
	"github.com/matzehuels/hiveplot/pkg/buildinfo"
	"github.com/matzehuels/hiveplot/pkg/cache"
	"github.com/matzehuels/hiveplot/pkg/pipeline"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the hive plot HTTP API",
		Long: `Run the hive plot HTTP API.

Endpoints:
  GET  /healthz      liveness check
  POST /v1/layout    graph document → layout JSON
  POST /v1/render    graph document → SVG, PNG, PDF or JSON

The cache backend (none, file, redis, mongo) comes from the config file or
HIVEPLOT_CACHE_* environment variables. The server stops gracefully on
SIGINT/SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if !c.Verbose && cfg.Log.Level != "" {
		if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
			c.SetLogLevel(level)
		}
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	store, err := cache.Open(ctx, cfg.Cache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), cfg.Server.KeyPrefix)
	runner := pipeline.NewRunner(store, keyer, c.Logger)
	defer runner.Close()

	backend := cfg.Cache.Backend
	if backend == "" {
		backend = cache.BackendNone
		if cfg.Cache.Dir != "" {
			backend = cache.BackendFile
		}
	}
	c.Logger.Debug("starting server", "version", buildinfo.Version, "commit", buildinfo.Commit)
	printKeyValue("Listening", StyleHighlight.Render(cfg.Server.Addr))
	printKeyValue("Cache", backend)

	return server.New(runner, cfg.Server, c.Logger).ListenAndServe(ctx)
}
