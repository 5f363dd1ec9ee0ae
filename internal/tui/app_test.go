package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sendApp(m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(AppModel), cmd
}

func TestAppModel_DashboardToLists(t *testing.T) {
	svc := newFakeService()
	m := NewAppModel(svc, nil, "http://localhost:8080", "")
	require.Equal(t, ScreenDashboard, m.CurrentScreen)
	assert.Contains(t, m.View(), "Your ShoppingLists")
	assert.Contains(t, m.View(), "Create a New ShoppingList")
	assert.Contains(t, m.View(), "http://localhost:8080")

	m, cmd := sendApp(m, keyPress(tea.KeyEnter))
	assert.Equal(t, ScreenLists, m.CurrentScreen)
	assert.NotNil(t, cmd, "entering the table starts the fetches")
	assert.True(t, m.ListsModel.Loading())

	m, _ = sendApp(m, loadListsCmd(svc)())
	m, _ = sendApp(m, loadProvidersCmd(svc)())
	assert.True(t, m.ListsModel.Ready())

	// Expand a row, leave, come back: the table is kept
	m, _ = sendApp(m, keyPress(tea.KeySpace))
	m, _ = sendApp(m, keyPress(tea.KeyEsc))
	assert.Equal(t, ScreenDashboard, m.CurrentScreen)

	m, cmd = sendApp(m, keyPress(tea.KeyEnter))
	assert.Equal(t, ScreenLists, m.CurrentScreen)
	assert.Nil(t, cmd, "no refetch when returning")
	assert.True(t, m.ListsModel.Expanded.Has("Weekdays"))
}

func TestAppModel_CreateFromDashboard(t *testing.T) {
	m := NewAppModel(newFakeService(), nil, "", ScreenDashboard)

	m, _ = sendApp(m, keyPress(tea.KeyDown))
	m, _ = sendApp(m, keyPress(tea.KeyEnter))
	assert.Equal(t, ScreenLists, m.CurrentScreen)
	assert.Equal(t, ModeCreate, m.ListsModel.Mode)

	m, _ = sendApp(m, keyPress(tea.KeyEsc))
	assert.Equal(t, ModeTable, m.ListsModel.Mode)
	m, _ = sendApp(m, keyPress(tea.KeyEsc))
	assert.Equal(t, ScreenDashboard, m.CurrentScreen)
}

func TestAppModel_StartOnLists(t *testing.T) {
	m := NewAppModel(newFakeService(), nil, "", ScreenLists)
	assert.Equal(t, ScreenLists, m.CurrentScreen)
	assert.NotNil(t, m.Init())
}

func TestAppModel_WindowSizePropagates(t *testing.T) {
	m := NewAppModel(newFakeService(), nil, "", ScreenLists)
	m, _ = sendApp(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.ListsModel.Width)
	assert.Equal(t, 40, m.DashboardModel.Height)
}

func TestAppModel_Quit(t *testing.T) {
	m := NewAppModel(newFakeService(), nil, "", ScreenDashboard)
	_, cmd := sendApp(m, keyPress(tea.KeyCtrlC))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
