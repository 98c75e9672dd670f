package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hiveplot/pkg/pipeline"
)

// renderCommand creates the render command: graph document → artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [graph.toml|graph.json]",
		Short: "Render a grouped graph as a hive plot",
		Long: `Render a grouped graph as a hive plot.

The input document lists groups in axis order, each with its nodes in radial
order, plus coloured edge groups:

  [[groups]]
  name = "frontend"
  color = "steelblue"
  nodes = ["web", "mobile"]

  [[edges]]
  group = "requests"
  color = "gray"
  [[edges.edges]]
  from = "web"
  to = "api"

Layout flags override the [options] table of the document. Results are cached
locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			opts.Input = args[0]
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")
	layoutFlags(cmd, &opts)
	renderFlags(cmd, &opts, &formatsStr)

	return cmd
}

// runRender executes the full pipeline and writes the requested formats.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	prog := newProgress(c.Logger)

	spinner := newSpinnerWithContext(ctx, "Rendering hive plot...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     opts.Input,
		output:    output,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("wrote %d files", len(paths)))

	printSuccess("Render complete")
	printArtifacts(paths)
	printStats(result.Stats.GroupCount, result.Stats.NodeCount, result.Stats.EdgeCount,
		result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	return nil
}
