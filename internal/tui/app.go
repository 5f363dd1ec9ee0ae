package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/shoplist/internal/analytics"
)

// Screen represents the current active screen in the application
type Screen string

const (
	ScreenDashboard Screen = "dashboard"
	ScreenLists     Screen = "lists"
)

// AppModel is the top-level coordinator model that manages screen transitions
type AppModel struct {
	CurrentScreen  Screen
	PreviousScreen Screen

	DashboardModel DashboardModel
	ListsModel     ListTableModel

	// The list table is created once and kept across screen changes so
	// editors and expansion survive a trip to the dashboard.
	listsStarted bool

	Service Service
	Tracker analytics.Tracker

	Width  int
	Height int
}

// NewAppModel creates the application starting at startScreen. endpoint is
// only displayed.
func NewAppModel(svc Service, tracker analytics.Tracker, endpoint string, startScreen Screen) AppModel {
	tracker = analytics.OrNop(tracker)
	if startScreen == "" {
		startScreen = ScreenDashboard
	}

	m := AppModel{
		CurrentScreen:  startScreen,
		DashboardModel: NewDashboardModel(endpoint),
		Service:        svc,
		Tracker:        tracker,
	}
	if startScreen == ScreenLists {
		m.ListsModel = NewListTableModel(svc, tracker)
		m.listsStarted = true
	}
	return m
}

// Init initializes the application
func (m AppModel) Init() tea.Cmd {
	if m.CurrentScreen == ScreenLists {
		return m.ListsModel.Init()
	}
	return m.DashboardModel.Init()
}

// Update handles all messages and routes them to the appropriate screen
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.DashboardModel.Width = msg.Width
		m.DashboardModel.Height = msg.Height
		m.ListsModel.Width = msg.Width
		m.ListsModel.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	return m.updateCurrentScreen(msg)
}

// updateCurrentScreen routes updates to the currently active screen
func (m AppModel) updateCurrentScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.CurrentScreen {
	case ScreenDashboard:
		// Async results for the table still arrive while on the dashboard
		if _, ok := msg.(tea.KeyMsg); !ok && m.listsStarted {
			updated, c := m.ListsModel.Update(msg)
			m.ListsModel = updated.(ListTableModel)
			return m, c
		}

		updated, c := m.DashboardModel.Update(msg)
		m.DashboardModel = updated.(DashboardModel)
		cmd = c

		switch m.DashboardModel.Choice {
		case ChoiceLists:
			m.DashboardModel.Choice = ChoiceNone
			return m.transitionTo(ScreenLists, false)
		case ChoiceCreate:
			m.DashboardModel.Choice = ChoiceNone
			return m.transitionTo(ScreenLists, true)
		}

	case ScreenLists:
		updated, c := m.ListsModel.Update(msg)
		m.ListsModel = updated.(ListTableModel)
		cmd = c

		if m.ListsModel.IsBackRequested() {
			m.ListsModel.BackRequested = false
			return m.goBack()
		}
	}

	return m, cmd
}

// transitionTo transitions to a new screen
func (m AppModel) transitionTo(screen Screen, create bool) (tea.Model, tea.Cmd) {
	m.PreviousScreen = m.CurrentScreen
	m.CurrentScreen = screen

	var cmd tea.Cmd

	switch screen {
	case ScreenLists:
		if !m.listsStarted {
			m.ListsModel = NewListTableModel(m.Service, m.Tracker)
			m.ListsModel.Width = m.Width
			m.ListsModel.Height = m.Height
			m.listsStarted = true
			cmd = m.ListsModel.Init()
		}
		if create {
			m.ListsModel.OpenCreate()
		}
	case ScreenDashboard:
		m.DashboardModel.Choice = ChoiceNone
	}

	return m, cmd
}

// goBack returns to the previous screen
func (m AppModel) goBack() (tea.Model, tea.Cmd) {
	switch m.CurrentScreen {
	case ScreenLists:
		return m.transitionTo(ScreenDashboard, false)
	default:
		return m, tea.Quit
	}
}

// View renders the current screen
func (m AppModel) View() string {
	switch m.CurrentScreen {
	case ScreenDashboard:
		return m.DashboardModel.View()
	case ScreenLists:
		return m.ListsModel.View()
	default:
		return "Unknown screen"
	}
}
