package main

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Bigsy/mcpkit/mcp"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the server's tools interactively",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2)
	helpStyle = lipgloss.NewStyle().Faint(true).Padding(0, 1)
)

type toolItem struct {
	tool mcp.Tool
}

func (i toolItem) Title() string       { return i.tool.Name }
func (i toolItem) Description() string { return i.tool.Description }
func (i toolItem) FilterValue() string { return i.tool.Name }

type tuiModel struct {
	serverName string
	list       list.Model
	showDetail bool
	width      int
	height     int
}

func newTUIModel(serverName string, tools []mcp.Tool) tuiModel {
	items := make([]list.Item, len(tools))
	for i, tool := range tools {
		items[i] = toolItem{tool: tool}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = fmt.Sprintf("%s — tools", serverName)
	l.SetShowStatusBar(false)

	return tuiModel{serverName: serverName, list: l}
}

func (m tuiModel) Init() tea.Cmd {
	return nil
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.showDetail {
				m.showDetail = false
				return m, nil
			}
			return m, tea.Quit
		case "enter":
			if !m.showDetail && m.list.SelectedItem() != nil {
				m.showDetail = true
			}
			return m, nil
		case "esc":
			m.showDetail = false
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m tuiModel) View() string {
	if !m.showDetail {
		return m.list.View()
	}

	item, ok := m.list.SelectedItem().(toolItem)
	if !ok {
		return m.list.View()
	}

	schema, err := json.MarshalIndent(item.tool.InputSchema, "", "  ")
	if err != nil {
		schema = []byte("<unrenderable schema>")
	}

	body := fmt.Sprintf("%s\n\n%s\n\nInput schema:\n%s",
		titleStyle.Render(item.tool.Name),
		item.tool.Description,
		string(schema))

	detail := detailStyle.Width(max(20, m.width-4)).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left,
		detail,
		helpStyle.Render("esc/q: back"))
}

func runTUI(cmd *cobra.Command, args []string) error {
	c, cleanup, err := dial(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	tools, err := listAllTools(cmd.Context(), c)
	if err != nil {
		return err
	}

	model := newTUIModel(c.ServerInfo().Name, tools)
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
