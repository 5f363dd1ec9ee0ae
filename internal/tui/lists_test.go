package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/shoplist/internal/analytics"
	"github.com/muurk/shoplist/internal/api"
	"github.com/muurk/shoplist/internal/editor"
	"github.com/muurk/shoplist/internal/server"
	"github.com/muurk/shoplist/internal/shopping"
)

// fakeService answers from memory and records writes.
type fakeService struct {
	lists        []shopping.List
	providers    []shopping.Provider
	listsErr     error
	providersErr error
	writeErr     error

	updates   []shopping.ListUpdate
	purchases []shopping.PurchaseRequest
	created   []string
}

func newFakeService() *fakeService {
	return &fakeService{lists: server.SampleLists(), providers: server.SampleProviders()}
}

func (f *fakeService) Lists(context.Context) ([]shopping.List, error) {
	return shopping.CloneLists(f.lists), f.listsErr
}

func (f *fakeService) Providers(context.Context) ([]shopping.Provider, error) {
	return shopping.CloneProviders(f.providers), f.providersErr
}

func (f *fakeService) UpdateList(_ context.Context, update shopping.ListUpdate) api.WriteResult {
	f.updates = append(f.updates, update)
	return api.WriteResult{Operation: api.OpUpdateList, ListID: update.ID, Err: f.writeErr}
}

func (f *fakeService) Purchase(_ context.Context, req shopping.PurchaseRequest) api.WriteResult {
	f.purchases = append(f.purchases, req)
	return api.WriteResult{Operation: api.OpPurchase, ListID: req.ListID, Err: f.writeErr}
}

func (f *fakeService) CreateList(_ context.Context, name string) (shopping.List, api.WriteResult) {
	f.created = append(f.created, name)
	list := shopping.List{ID: len(f.lists) + 1, Name: name, Items: []shopping.Item{}}
	return list, api.WriteResult{Operation: api.OpCreateList, ListID: list.ID, Err: f.writeErr}
}

func keyPress(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func typeText(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m ListTableModel, msg tea.Msg) (ListTableModel, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(ListTableModel), cmd
}

// loadedTable returns a table that has received both fetch results.
func loadedTable(t *testing.T, svc Service, tracker analytics.Tracker) ListTableModel {
	t.Helper()
	m := NewListTableModel(svc, tracker)
	m, _ = send(m, loadListsCmd(svc)())
	m, _ = send(m, loadProvidersCmd(svc)())
	require.True(t, m.Ready(), "table should be ready, err=%v", m.Err())
	return m
}

// editWeekdays focuses the first row of the first list.
func editWeekdays(t *testing.T, m ListTableModel) ListTableModel {
	t.Helper()
	m, _ = send(m, keyPress(tea.KeyEnter))
	require.Equal(t, ModeEditor, m.Mode)
	require.True(t, m.Expanded.Has("Weekdays"))
	return m
}

func TestListTable_LoadsInAnyOrder(t *testing.T) {
	svc := newFakeService()
	m := NewListTableModel(svc, nil)
	assert.True(t, m.Loading())
	assert.Contains(t, m.View(), "Loading")

	m, _ = send(m, loadProvidersCmd(svc)())
	assert.True(t, m.Loading(), "still waiting for lists")

	m, _ = send(m, loadListsCmd(svc)())
	assert.False(t, m.Loading())
	assert.True(t, m.Ready())
	assert.Len(t, m.Lists, 3)

	view := m.View()
	for _, want := range []string{"Name", "Number of Items", "Updated At", "Last Purchase", "Weekdays", "Walmart at March 21 2023, 3:32 pm"} {
		assert.Contains(t, view, want)
	}
}

func TestListTable_FetchFailureAndReload(t *testing.T) {
	svc := newFakeService()
	svc.providersErr = api.NewHTTPError(500, []byte("boom"))

	m := NewListTableModel(svc, nil)
	m, _ = send(m, loadListsCmd(svc)())
	m, _ = send(m, loadProvidersCmd(svc)())

	require.Error(t, m.Err())
	assert.False(t, m.Ready())
	assert.Contains(t, m.View(), "Service error (HTTP 500)")

	// Keys that need data are ignored
	m, _ = send(m, keyPress(tea.KeyEnter))
	assert.Equal(t, ModeTable, m.Mode)

	svc.providersErr = nil
	m, cmd := send(m, typeText("r"))
	require.NotNil(t, cmd)
	assert.True(t, m.Loading())
	assert.NoError(t, m.Err())

	m, _ = send(m, loadListsCmd(svc)())
	m, _ = send(m, loadProvidersCmd(svc)())
	assert.True(t, m.Ready())
}

func TestListTable_SpinnerStopsWhenLoaded(t *testing.T) {
	m := loadedTable(t, newFakeService(), nil)
	_, cmd := send(m, m.Spinner.Tick())
	assert.Nil(t, cmd)
}

func TestListTable_ToggleExpansion(t *testing.T) {
	m := loadedTable(t, newFakeService(), nil)
	space := keyPress(tea.KeySpace)

	m, _ = send(m, space)
	assert.True(t, m.Expanded.Has("Weekdays"))
	assert.Contains(t, m.View(), "Butter, Unsalted")

	m, _ = send(m, keyPress(tea.KeyDown))
	m, _ = send(m, space)
	assert.Equal(t, []string{"Weekdays", "Weekend"}, m.Expanded.Names())

	m, _ = send(m, space)
	assert.Equal(t, []string{"Weekdays"}, m.Expanded.Names())
}

func TestListTable_EditorSurvivesCollapse(t *testing.T) {
	m := loadedTable(t, newFakeService(), nil)
	m = editWeekdays(t, m)

	m, _ = send(m, keyPress(tea.KeyBackspace))
	m, _ = send(m, typeText("7"))
	m, _ = send(m, keyPress(tea.KeyEsc))
	require.Equal(t, ModeTable, m.Mode)

	m, _ = send(m, keyPress(tea.KeySpace))
	assert.False(t, m.Expanded.Has("Weekdays"))
	m, _ = send(m, keyPress(tea.KeySpace))
	assert.True(t, m.Expanded.Has("Weekdays"))

	field, err := m.editors[1].ed.Field(0)
	require.NoError(t, err)
	assert.Equal(t, "7", field.Text)
	assert.True(t, m.editors[1].ed.Dirty())
}

func TestListTable_SaveBlockedWithErrors(t *testing.T) {
	svc := newFakeService()
	m := loadedTable(t, svc, nil)
	m = editWeekdays(t, m)

	m, _ = send(m, keyPress(tea.KeyBackspace))
	m, _ = send(m, typeText("abc"))

	field, _ := m.editors[1].ed.Field(0)
	require.Equal(t, editor.ValidationError, field.Validation)

	m, cmd := send(m, keyPress(tea.KeyCtrlS))
	assert.Nil(t, cmd)
	require.NotNil(t, m.Alert)
	assert.Equal(t, MsgOutstandingErrors, m.Alert.Title)
	assert.Empty(t, svc.updates)
	assert.Contains(t, m.View(), MsgOutstandingErrors)

	// Alert blocks other keys until dismissed
	m, _ = send(m, typeText("9"))
	require.NotNil(t, m.Alert)
	m, _ = send(m, keyPress(tea.KeyEsc))
	assert.Nil(t, m.Alert)
	assert.Equal(t, ModeEditor, m.Mode)
}

func TestListTable_RemovedInvalidRowDoesNotBlock(t *testing.T) {
	svc := newFakeService()
	m := loadedTable(t, svc, nil)
	m = editWeekdays(t, m)

	m, _ = send(m, keyPress(tea.KeyBackspace))
	m, _ = send(m, keyPress(tea.KeyCtrlD))
	m, cmd := send(m, keyPress(tea.KeyCtrlS))
	require.NotNil(t, cmd)
	assert.Nil(t, m.Alert)

	m, _ = send(m, cmd())
	require.Len(t, svc.updates, 1)
	assert.Equal(t, []shopping.Item{
		{Name: "Bread, Sliced", Amount: 2},
		{Name: "Butter, Unsalted", Amount: 1},
	}, svc.updates[0].Items)
	assert.False(t, m.editors[1].ed.Dirty())
	assert.Len(t, m.Lists[0].Items, 2)
}

func TestListTable_SaveFailureKeepsDraft(t *testing.T) {
	svc := newFakeService()
	svc.writeErr = api.NewHTTPError(503, nil)
	m := loadedTable(t, svc, nil)
	m = editWeekdays(t, m)

	m, _ = send(m, keyPress(tea.KeyBackspace))
	m, _ = send(m, typeText("9"))
	m, cmd := send(m, keyPress(tea.KeyCtrlS))
	require.NotNil(t, cmd)

	m, _ = send(m, cmd())
	require.NotNil(t, m.Alert)
	assert.Equal(t, AlertError, m.Alert.Kind)
	assert.Contains(t, m.Alert.Message, "503")

	v := m.editors[1]
	assert.True(t, v.ed.Dirty())
	assert.False(t, v.saving)
	item, _ := v.ed.Item(0)
	assert.Equal(t, 9, item.Amount)
	assert.Equal(t, 4, m.Lists[0].Items[0].Amount, "fetched data is not mutated")
}

func TestListTable_AddItem(t *testing.T) {
	tracker := &analytics.Recorder{}
	m := loadedTable(t, newFakeService(), tracker)
	m = editWeekdays(t, m)

	m, _ = send(m, keyPress(tea.KeyCtrlN))
	require.Equal(t, ModeDraft, m.Mode)
	m, _ = send(m, typeText("Milk"))
	m, _ = send(m, keyPress(tea.KeyTab))
	m, _ = send(m, typeText("abc"))
	m, _ = send(m, keyPress(tea.KeyEnter))

	require.NotNil(t, m.Alert)
	assert.Equal(t, "Value abc is not a number", m.Alert.Title)
	assert.Equal(t, 3, m.editors[1].ed.Len())
	assert.Equal(t, ModeDraft, m.Mode)

	m, _ = send(m, keyPress(tea.KeyEnter)) // dismiss
	for range 3 {
		m, _ = send(m, keyPress(tea.KeyBackspace))
	}
	m, _ = send(m, typeText("2"))
	m, _ = send(m, keyPress(tea.KeyEnter))

	require.Nil(t, m.Alert)
	assert.Equal(t, ModeEditor, m.Mode)
	item, err := m.editors[1].ed.Item(3)
	require.NoError(t, err)
	assert.Equal(t, shopping.Item{Name: "Milk", Amount: 2}, item)
	assert.Contains(t, tracker.Names(), analytics.EventAddListItem)
}

func TestListTable_CancelDraftBlocksNothing(t *testing.T) {
	svc := newFakeService()
	m := loadedTable(t, svc, nil)
	m = editWeekdays(t, m)

	m, _ = send(m, keyPress(tea.KeyCtrlN))
	m, _ = send(m, keyPress(tea.KeyEsc))
	assert.Equal(t, ModeEditor, m.Mode)
	assert.False(t, m.editors[1].ed.Appending())

	_, cmd := send(m, keyPress(tea.KeyCtrlS))
	assert.NotNil(t, cmd, "an unchanged list can be saved")
}

func TestListTable_PurchaseWizard(t *testing.T) {
	svc := newFakeService()
	tracker := &analytics.Recorder{}
	m := loadedTable(t, svc, tracker)

	m, _ = send(m, typeText("p"))
	require.NotNil(t, m.Wizard())
	assert.Contains(t, m.View(), "Purchase Weekdays")

	enter := keyPress(tea.KeyEnter)
	m, _ = send(m, enter)
	m, _ = send(m, enter)
	assert.Contains(t, m.View(), "No provider selected")

	// Confirm without a provider keeps the wizard open
	m, cmd := send(m, enter)
	assert.Nil(t, cmd)
	require.NotNil(t, m.Alert)
	assert.Equal(t, MsgNoProvider, m.Alert.Title)
	require.NotNil(t, m.Wizard())

	m, _ = send(m, keyPress(tea.KeyEsc))
	m, _ = send(m, keyPress(tea.KeyBackspace))
	m, _ = send(m, keyPress(tea.KeySpace))
	m, _ = send(m, enter)

	summary := m.Wizard().Review()
	assert.Equal(t, 7, summary.TotalItems)
	assert.Equal(t, 9, summary.EstimatedPrice)
	assert.Equal(t, "today", summary.Delivery)

	m, cmd = send(m, enter)
	require.NotNil(t, cmd)
	assert.Nil(t, m.Wizard())
	assert.Contains(t, tracker.Names(), analytics.EventMakePurchase)

	m, _ = send(m, cmd())
	require.Len(t, svc.purchases, 1)
	assert.Equal(t, shopping.PurchaseRequest{ListID: 1, ProviderID: "amazon"}, svc.purchases[0])
	require.NotNil(t, m.Alert)
	assert.Equal(t, AlertSuccess, m.Alert.Kind)
	assert.Equal(t, MsgPurchaseProcessing, m.Alert.Title)
}

func TestListTable_PurchaseFailure(t *testing.T) {
	svc := newFakeService()
	svc.writeErr = errors.New("connection reset")
	m := loadedTable(t, svc, nil)

	m, _ = send(m, typeText("p"))
	m, _ = send(m, keyPress(tea.KeyEnter))
	m, _ = send(m, keyPress(tea.KeySpace))
	m, _ = send(m, keyPress(tea.KeyEnter))
	m, cmd := send(m, keyPress(tea.KeyEnter))
	require.NotNil(t, cmd)

	m, _ = send(m, cmd())
	require.NotNil(t, m.Alert)
	assert.Equal(t, AlertError, m.Alert.Kind)
	assert.True(t, strings.HasPrefix(m.Alert.Title, "Purchase of Weekdays failed"))
}

func TestListTable_CreateList(t *testing.T) {
	svc := newFakeService()
	m := loadedTable(t, svc, nil)

	m, _ = send(m, typeText("n"))
	require.Equal(t, ModeCreate, m.Mode)

	// Empty and duplicate names are refused locally
	m, cmd := send(m, keyPress(tea.KeyEnter))
	assert.Nil(t, cmd)
	require.NotNil(t, m.Alert)
	m, _ = send(m, keyPress(tea.KeyEnter))

	m, _ = send(m, typeText("Weekend"))
	m, cmd = send(m, keyPress(tea.KeyEnter))
	assert.Nil(t, cmd)
	require.NotNil(t, m.Alert)
	m, _ = send(m, keyPress(tea.KeyEnter))

	m, _ = send(m, typeText(" BBQ"))
	m, cmd = send(m, keyPress(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Equal(t, ModeTable, m.Mode)

	m, _ = send(m, cmd())
	assert.Equal(t, []string{"Weekend BBQ"}, svc.created)
	require.Len(t, m.Lists, 4)
	assert.Equal(t, 3, m.Cursor)
}

func TestListTable_BackRequested(t *testing.T) {
	m := loadedTable(t, newFakeService(), nil)
	m, _ = send(m, keyPress(tea.KeyEsc))
	assert.True(t, m.IsBackRequested())
}

func TestListTable_EditsFrozenWhileSaving(t *testing.T) {
	svc := newFakeService()
	m := loadedTable(t, svc, nil)
	m = editWeekdays(t, m)

	m, _ = send(m, keyPress(tea.KeyBackspace))
	m, _ = send(m, typeText("5"))
	m, save := send(m, keyPress(tea.KeyCtrlS))
	require.NotNil(t, save)

	// Nothing touches the draft until the save reports back
	m, _ = send(m, keyPress(tea.KeyBackspace))
	m, _ = send(m, typeText("9"))
	m, _ = send(m, keyPress(tea.KeyCtrlD))
	m, _ = send(m, keyPress(tea.KeyCtrlN))
	assert.Equal(t, ModeEditor, m.Mode)
	field, err := m.editors[1].ed.Field(0)
	require.NoError(t, err)
	assert.Equal(t, "5", field.Text)
	assert.False(t, m.editors[1].ed.IsRemoved(0))

	m, _ = send(m, save())
	v := m.editors[1]
	assert.False(t, v.saving)
	assert.False(t, v.ed.Dirty())
	item, _ := v.ed.Item(0)
	assert.Equal(t, 5, item.Amount)

	m, _ = send(m, keyPress(tea.KeyBackspace))
	m, _ = send(m, typeText("9"))
	item, _ = m.editors[1].ed.Item(0)
	assert.Equal(t, 9, item.Amount)
	assert.True(t, m.editors[1].ed.Dirty())
}

func TestListTable_EditorsFollowListID(t *testing.T) {
	svc := newFakeService()
	svc.lists = append(svc.lists, shopping.List{
		ID:    4,
		Name:  "Weekdays",
		Items: []shopping.Item{{Name: "Milk", Amount: 1}},
	})
	m := loadedTable(t, svc, nil)
	m = editWeekdays(t, m)
	m, _ = send(m, keyPress(tea.KeyEsc))

	for range 3 {
		m, _ = send(m, keyPress(tea.KeyDown))
	}
	require.Equal(t, 4, m.Lists[m.Cursor].ID)
	m, _ = send(m, keyPress(tea.KeyEnter))
	require.Equal(t, ModeEditor, m.Mode)
	assert.Equal(t, 1, m.editors[4].ed.Len())
	assert.Equal(t, 3, m.editors[1].ed.Len())

	m, cmd := send(m, keyPress(tea.KeyCtrlS))
	require.NotNil(t, cmd)
	m, _ = send(m, cmd())

	require.Len(t, svc.updates, 1)
	assert.Equal(t, 4, svc.updates[0].ID)
	assert.Equal(t, []shopping.Item{{Name: "Milk", Amount: 1}}, svc.updates[0].Items)
	assert.Equal(t, 3, m.editors[1].ed.Len())
}

func TestListTable_WizardNotesUnsavedEdits(t *testing.T) {
	m := loadedTable(t, newFakeService(), nil)

	m, _ = send(m, typeText("p"))
	require.NotNil(t, m.Wizard())
	assert.NotContains(t, m.View(), MsgUnsavedExcluded)
	m, _ = send(m, keyPress(tea.KeyEsc))
	require.Nil(t, m.Wizard())

	m = editWeekdays(t, m)
	m, _ = send(m, keyPress(tea.KeyBackspace))
	m, _ = send(m, typeText("9"))
	m, _ = send(m, keyPress(tea.KeyEsc))

	m, _ = send(m, typeText("p"))
	require.NotNil(t, m.Wizard())
	assert.Contains(t, m.View(), MsgUnsavedExcluded)
	assert.Equal(t, 7, m.Wizard().Review().TotalItems, "the saved list is summarised")
}

func TestListTable_OnlyEnterConfirmsPurchase(t *testing.T) {
	svc := newFakeService()
	m := loadedTable(t, svc, nil)
	right := keyPress(tea.KeyRight)

	m, _ = send(m, typeText("p"))
	m, _ = send(m, right)
	m, _ = send(m, keyPress(tea.KeySpace))
	m, _ = send(m, right)
	require.True(t, m.Wizard().IsLast())

	m, cmd := send(m, right)
	assert.Nil(t, cmd)
	require.NotNil(t, m.Wizard(), "right arrow on the review step does nothing")
	assert.Empty(t, svc.purchases)

	m, cmd = send(m, keyPress(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Nil(t, m.Wizard())
	m, _ = send(m, cmd())
	assert.Len(t, svc.purchases, 1)
}
