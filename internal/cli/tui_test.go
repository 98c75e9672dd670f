package cli

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/hiveplot/pkg/graph"
)

func browser(t *testing.T) PlotBrowserModel {
	t.Helper()
	g := graph.Graph{
		Groups: []graph.Group{
			{Name: "A", Nodes: []string{"a0", "a1", "a2"}},
			{Name: "B", Nodes: []string{"b0"}},
		},
	}
	plot, err := g.ToPlot()
	if err != nil {
		t.Fatal(err)
	}
	return NewPlotBrowserModel(plot)
}

func press(m PlotBrowserModel, keys ...tea.KeyType) PlotBrowserModel {
	for _, k := range keys {
		next, _ := m.Update(tea.KeyMsg{Type: k})
		m = next.(PlotBrowserModel)
	}
	return m
}

func TestPlotBrowserNavigation(t *testing.T) {
	m := browser(t)

	m = press(m, tea.KeyDown, tea.KeyDown, tea.KeyDown)
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, want 2 (clamped to last node)", m.Cursor)
	}

	m = press(m, tea.KeyRight)
	if m.Group != 1 || m.Cursor != 0 {
		t.Errorf("group = %d, cursor = %d after switching group", m.Group, m.Cursor)
	}

	m = press(m, tea.KeyRight, tea.KeyLeft, tea.KeyLeft)
	if m.Group != 0 {
		t.Errorf("group = %d, want 0", m.Group)
	}
}

func TestPlotBrowserView(t *testing.T) {
	m := browser(t)
	view := m.View()
	for _, want := range []string{"a0", "a2", "[1/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestPlotBrowserQuit(t *testing.T) {
	m := browser(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc should produce a quit message")
	}
}

func TestPlotBrowserResizeKeepsCursorVisible(t *testing.T) {
	nodes := make([]string, 12)
	for i := range nodes {
		nodes[i] = fmt.Sprintf("n%d", i)
	}
	g := graph.Graph{Groups: []graph.Group{{Name: "A", Nodes: nodes}}}
	plot, err := g.ToPlot()
	if err != nil {
		t.Fatal(err)
	}
	m := NewPlotBrowserModel(plot)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	m = next.(PlotBrowserModel)
	for range nodes {
		m = press(m, tea.KeyDown)
	}
	if m.Cursor != 11 || m.Offset != 0 {
		t.Fatalf("cursor = %d, offset = %d, want 11 and 0", m.Cursor, m.Offset)
	}

	next, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 13})
	m = next.(PlotBrowserModel)
	if m.Height != 5 {
		t.Fatalf("height = %d, want 5", m.Height)
	}
	if m.Cursor < m.Offset || m.Cursor >= m.Offset+m.Height {
		t.Errorf("cursor %d outside window [%d, %d)", m.Cursor, m.Offset, m.Offset+m.Height)
	}
	if !strings.Contains(m.View(), "n11") {
		t.Error("view should show the cursor row after shrinking")
	}
}
