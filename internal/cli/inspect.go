package cli

import (
	"context"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hiveplot/pkg/graph"
	"github.com/matzehuels/hiveplot/pkg/hive"
	"github.com/matzehuels/hiveplot/pkg/pipeline"
)

// inspectCommand creates the inspect command, which prints plot geometry
// without rendering anything.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		node        string
		interactive bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "inspect [graph.toml|graph.json]",
		Short: "Show axes, angles and node positions of a hive plot",
		Long: `Show axes, angles and node positions of a hive plot.

Prints one row per group with its axis angle and whether the axis is
duplicated (groups with edges between their own nodes get two axes), followed
by the plot radius and angles. Use --node to locate a single node, or
--interactive to browse every node.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			return c.runInspect(cmd.Context(), opts, node, interactive)
		},
	}

	cmd.Flags().StringVar(&node, "node", "", "print the group, ordinal, radius and angle of one node")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse nodes interactively")
	layoutFlags(cmd, &opts)

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, opts pipeline.Options, node string, interactive bool) error {
	opts.Logger = c.Logger
	g, err := pipeline.Parse(opts)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", opts.Input, err)
	}
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}
	work := opts.Apply(g)
	plot, err := work.ToPlot()
	if err != nil {
		return err
	}

	if node != "" {
		return printNode(plot, node)
	}
	if interactive {
		_, err := tea.NewProgram(NewPlotBrowserModel(plot), tea.WithContext(ctx)).Run()
		return err
	}

	summary, err := groupTable(work, plot)
	if err != nil {
		return err
	}
	fmt.Println(summary)
	printNewline()
	printKeyNumber("Plot radius", plot.PlotRadius(), "")
	printKeyNumber("Internal radius", plot.InternalRadius(), "")
	printKeyNumber("Scale", plot.Scale(), "")
	printKeyNumber("Major angle", degrees(plot.MajorAngle()), "°")
	printKeyNumber("Minor angle", degrees(plot.MinorAngle()), "°")
	printStats(plot.NumGroups(), plot.NodeCount(), plot.EdgeCount(), false)
	if plot.NumGroups() > graph.MaxGroups {
		printWarning("%d groups: hive plots read best with at most %d", plot.NumGroups(), graph.MaxGroups)
	}
	return nil
}

// groupTable renders one row per group: colour, node count, axis angle and
// axis count.
func groupTable(g graph.Graph, plot *hive.Plot) (string, error) {
	rows := make([][]string, 0, len(g.Groups))
	for _, grp := range g.Groups {
		angle, err := plot.GroupAngle(grp.Name)
		if err != nil {
			return "", err
		}
		within, err := plot.HasEdgeWithinGroup(grp.Name)
		if err != nil {
			return "", err
		}
		axes := "1"
		if within {
			axes = "2 (±" + formatNumber(degrees(plot.MinorAngle())) + "°)"
		}
		color := grp.Color
		if color == "" {
			color = hive.DefaultNodeColor
		}
		rows = append(rows, []string{grp.Name, color, strconv.Itoa(len(grp.Nodes)), formatNumber(degrees(angle)) + "°", axes})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Group", "Color", "Nodes", "Angle", "Axes").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			switch col {
			case 0:
				return cellStyle.Foreground(colorCyan)
			case 4:
				if row < len(rows) && rows[row][4] != "1" {
					return cellStyle.Foreground(colorYellow)
				}
			}
			return cellStyle
		})
	return t.Render(), nil
}

// printNode prints where one node sits in the plot.
func printNode(plot *hive.Plot, node string) error {
	group, err := plot.GroupOf(node)
	if err != nil {
		return err
	}
	ord, err := plot.Ordinal(node)
	if err != nil {
		return err
	}
	r, err := plot.NodeRadius(node)
	if err != nil {
		return err
	}
	angle, err := plot.NodeAngle(node)
	if err != nil {
		return err
	}
	p := hive.Cartesian(r, angle)

	fmt.Println(StyleTitle.Render(node))
	printKeyValue("Group", group)
	printKeyValue("Ordinal", StyleNumber.Render(strconv.Itoa(ord)))
	printKeyNumber("Radius", r, "")
	printKeyNumber("Angle", degrees(angle), "°")
	printKeyValue("Position", fmt.Sprintf("(%s, %s)", formatNumber(p.X), formatNumber(p.Y)))
	if within, _ := plot.HasEdgeWithinGroup(group); within {
		printDetail("%s has a duplicated axis; the angle is the group's base angle", group)
	}
	return nil
}
