package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// DashboardChoice is the menu entry picked on the dashboard.
type DashboardChoice int

const (
	ChoiceNone DashboardChoice = iota
	ChoiceLists
	ChoiceCreate
)

var dashboardItems = []struct {
	label  string
	choice DashboardChoice
}{
	{"Your ShoppingLists", ChoiceLists},
	{"Create a New ShoppingList", ChoiceCreate},
}

// dashboardKeyMap defines key bindings for the dashboard screen
type dashboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k dashboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k dashboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Quit},
	}
}

// DashboardModel is the start screen.
type DashboardModel struct {
	Cursor int
	Choice DashboardChoice

	// Where the API lives, shown under the title
	Endpoint string

	Width  int
	Height int

	Help help.Model
	Keys dashboardKeyMap
}

// NewDashboardModel creates the start screen
func NewDashboardModel(endpoint string) DashboardModel {
	return DashboardModel{
		Endpoint: endpoint,
		Help:     help.New(),
		Keys: dashboardKeyMap{
			Up: key.NewBinding(
				key.WithKeys("up", "k"),
				key.WithHelp("↑/k", "up"),
			),
			Down: key.NewBinding(
				key.WithKeys("down", "j"),
				key.WithHelp("↓/j", "down"),
			),
			Select: key.NewBinding(
				key.WithKeys("enter", " "),
				key.WithHelp("enter", "open"),
			),
			Quit: key.NewBinding(
				key.WithKeys("q", "esc"),
				key.WithHelp("q", "quit"),
			),
		},
	}
}

// Init initializes the dashboard
func (m DashboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.Keys.Up):
			m.Cursor = (m.Cursor - 1 + len(dashboardItems)) % len(dashboardItems)
		case key.Matches(msg, m.Keys.Down):
			m.Cursor = (m.Cursor + 1) % len(dashboardItems)
		case key.Matches(msg, m.Keys.Select):
			m.Choice = dashboardItems[m.Cursor].choice
		}
	}

	return m, nil
}

// View renders the dashboard
func (m DashboardModel) View() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Dashboard"))
	b.WriteString("\n")
	if m.Endpoint != "" {
		b.WriteString(SubtitleStyle.Render("Connected to " + m.Endpoint))
		b.WriteString("\n\n")
	}

	for i, item := range dashboardItems {
		b.WriteString(RenderMenuItem(item.label, i == m.Cursor))
		b.WriteString("\n")
	}

	return RenderApplicationContainer(b.String(), m.Help.View(m.Keys), m.Width, m.Height)
}
