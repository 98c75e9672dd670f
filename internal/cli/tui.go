package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/hiveplot/pkg/hive"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
	tabActive    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Underline(true)
	tabInactive  = lipgloss.NewStyle().Foreground(colorGray)
)

// =============================================================================
// PlotBrowserModel - Interactive node browser
// =============================================================================

// PlotBrowserModel is the bubbletea model for browsing node placements one
// group at a time. Left/right switches group, up/down moves through nodes.
type PlotBrowserModel struct {
	Groups     []string
	Placements map[string][]hive.NodePlacement
	Group      int
	Cursor     int
	Height     int
	Offset     int
}

// NewPlotBrowserModel creates a browser over every group of plot.
func NewPlotBrowserModel(plot *hive.Plot) PlotBrowserModel {
	m := PlotBrowserModel{
		Groups:     plot.Groups(),
		Placements: make(map[string][]hive.NodePlacement),
		Height:     15,
	}
	for _, g := range m.Groups {
		nodes, _ := plot.PlaceGroup(g)
		m.Placements[g] = nodes
	}
	return m
}

func (m PlotBrowserModel) Init() tea.Cmd {
	return nil
}

func (m PlotBrowserModel) current() []hive.NodePlacement {
	if len(m.Groups) == 0 {
		return nil
	}
	return m.Placements[m.Groups[m.Group]]
}

func (m PlotBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h", "shift+tab":
			if m.Group > 0 {
				m.Group--
				m.Cursor, m.Offset = 0, 0
			}
		case "right", "l", "tab":
			if m.Group < len(m.Groups)-1 {
				m.Group++
				m.Cursor, m.Offset = 0, 0
			}
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.current())-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
		if m.Cursor >= m.Offset+m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
	}
	return m, nil
}

func (m PlotBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Hive Plot Nodes"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ group  ↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.Groups))
	for i, g := range m.Groups {
		if i == m.Group {
			tabs[i] = tabActive.Render(g)
		} else {
			tabs[i] = tabInactive.Render(g)
		}
	}
	b.WriteString(strings.Join(tabs, listDimStyle.Render(" · ")))
	b.WriteString("\n")

	nodes := m.current()
	end := m.Offset + m.Height
	if end > len(nodes) {
		end = len(nodes)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		n := nodes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			n.Node,
			strconv.Itoa(n.Ordinal),
			formatNumber(n.Radius),
			formatNumber(degrees(n.Angle)) + "°",
			fmt.Sprintf("(%s, %s)", formatNumber(n.Marker.Center.X), formatNumber(n.Marker.Center.Y)),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "Ord", "Radius", "Angle", "Position").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col >= 2 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	if len(nodes) > 0 {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(nodes))))
	}

	return b.String()
}
