package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/scorewell/engrave/pkg/layout"
	"github.com/scorewell/engrave/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		noCache      bool
		cacheBackend string
	)

	cmd := &cobra.Command{
		Use:   "inspect [document]",
		Short: "Browse resolved geometry interactively",
		Long: `Browse resolved geometry interactively.

The inspect command resolves the document and opens a terminal UI for
exploring the result: one row per system, with the solved blocks of the
selected system listed below. Useful for checking coordinates without
opening the rendered output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd, args[0], noCache, cacheBackend)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&cacheBackend, "cache-backend", "", "cache backend: directory, sqlite file, memory, none, redis:// or mongodb:// URL (default file cache, env ENGRAVE_CACHE_URL)")

	return cmd
}

func (c *CLI) runInspect(cmd *cobra.Command, path string, noCache bool, cacheBackend string) error {
	runner, err := c.newRunner(cmd.Context(), noCache, cacheBackend)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := runner.Execute(cmd.Context(), pipeline.Options{
		Path:    path,
		Formats: []string{pipeline.FormatJSON},
		Logger:  c.Logger,
	})
	if err != nil {
		return err
	}

	model := newInspectModel(path, result.Systems)
	program := tea.NewProgram(model, tea.WithContext(cmd.Context()))
	_, err = program.Run()
	return err
}

// =============================================================================
// InspectModel - Resolved geometry browser
// =============================================================================

// inspectModel is the bubbletea model for browsing resolved systems.
type inspectModel struct {
	Path    string
	Systems []*layout.Result
	Cursor  int
}

func newInspectModel(path string, systems []*layout.Result) inspectModel {
	return inspectModel{Path: path, Systems: systems}
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Systems)-1 {
				m.Cursor++
			}
		}
	}
	return m, nil
}

func (m inspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Inspect " + m.Path))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	b.WriteString(m.systemTable())
	b.WriteString("\n\n")
	b.WriteString(m.blockTable())

	return b.String()
}

func (m inspectModel) systemTable() string {
	rows := [][]string{}
	for i, res := range m.Systems {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		collisions := "—"
		if n := len(res.UnresolvedCollisions); n > 0 {
			collisions = fmt.Sprintf("%d", n)
		}
		rows = append(rows, []string{
			cursor,
			fmt.Sprintf("%d", res.Index),
			fmt.Sprintf("%.2f × %.2f", res.Width, res.Height),
			fmt.Sprintf("%d", len(blockPrimitives(res))),
			fmt.Sprintf("%d + %d", len(res.HorizontalLines), len(res.VerticalLines)),
			collisions,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "System", "Size", "Blocks", "Lines", "Unresolved").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row == m.Cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	return t.Render()
}

func (m inspectModel) blockTable() string {
	if m.Cursor >= len(m.Systems) {
		return ""
	}
	res := m.Systems[m.Cursor]

	rows := [][]string{}
	for _, p := range blockPrimitives(res) {
		item := "—"
		if p.Source.ItemID != "" {
			item = p.Source.ItemID
		}
		rows = append(rows, []string{
			fmt.Sprintf("b%d", p.Block),
			item,
			fmt.Sprintf("%.2f", p.X1),
			fmt.Sprintf("%.2f", p.Y1),
			fmt.Sprintf("%.2f", p.X2-p.X1),
			fmt.Sprintf("%.2f", p.Y2-p.Y1),
		})
	}
	if len(rows) == 0 {
		return listDimStyle.Render("  no visible blocks")
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Block", "Item", "X", "Y", "W", "H").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		})

	return t.Render()
}

// blockPrimitives collects the box primitives of real blocks across all
// layers, skipping debug geometry.
func blockPrimitives(res *layout.Result) []layout.Primitive {
	var prims []layout.Primitive
	for _, layerPrims := range [][]layout.Primitive{res.Background, res.Midground, res.Foreground} {
		for _, p := range layerPrims {
			if p.Kind == layout.BoxPrimitive && p.Block >= 0 {
				prims = append(prims, p)
			}
		}
	}
	return prims
}
