package tui

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/shoplist/internal/analytics"
	"github.com/muurk/shoplist/internal/api"
	"github.com/muurk/shoplist/internal/server"
	"github.com/muurk/shoplist/internal/shopping"
)

// updateRecorder counts POST /list/update calls in front of the reference
// handler.
type updateRecorder struct {
	next http.Handler

	mu      sync.Mutex
	updates []shopping.ListUpdate
}

func (r *updateRecorder) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if req.Method == http.MethodPost && req.URL.Path == api.PathUpdateList {
		body, _ := io.ReadAll(req.Body)
		var update shopping.ListUpdate
		if err := json.Unmarshal(body, &update); err == nil {
			r.mu.Lock()
			r.updates = append(r.updates, update)
			r.mu.Unlock()
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
	}
	r.next.ServeHTTP(w, req)
}

func (r *updateRecorder) calls() []shopping.ListUpdate {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]shopping.ListUpdate(nil), r.updates...)
}

func TestEndToEnd_EditAndSaveAmount(t *testing.T) {
	rec := &updateRecorder{next: server.NewHandler(server.NewSeededStore(), nil)}
	ts := httptest.NewServer(rec)
	defer ts.Close()

	client := api.NewClient(ts.URL, api.Options{CacheTTL: -1, ReadRetries: -1})
	tracker := &analytics.Recorder{}
	m := NewAppModel(client, tracker, ts.URL, ScreenDashboard)

	m, _ = sendApp(m, keyPress(tea.KeyEnter))
	require.Equal(t, ScreenLists, m.CurrentScreen)
	m, _ = sendApp(m, loadProvidersCmd(client)())
	m, _ = sendApp(m, loadListsCmd(client)())
	require.True(t, m.ListsModel.Ready(), "load failed: %v", m.ListsModel.Err())

	// Weekdays, first item "Apples, Red" amount 4 -> "abc": save is refused
	m, _ = sendApp(m, keyPress(tea.KeyEnter))
	m, _ = sendApp(m, keyPress(tea.KeyBackspace))
	m, _ = sendApp(m, typeText("abc"))
	m, cmd := sendApp(m, keyPress(tea.KeyCtrlS))
	assert.Nil(t, cmd)
	require.NotNil(t, m.ListsModel.Alert)
	assert.Equal(t, MsgOutstandingErrors, m.ListsModel.Alert.Title)
	assert.Empty(t, rec.calls())
	m, _ = sendApp(m, keyPress(tea.KeyEsc))

	// ... then corrected to 5
	for range 3 {
		m, _ = sendApp(m, keyPress(tea.KeyBackspace))
	}
	m, _ = sendApp(m, typeText("5"))
	m, cmd = sendApp(m, keyPress(tea.KeyCtrlS))
	require.NotNil(t, cmd)

	m, refresh := sendApp(m, cmd())
	require.Nil(t, m.ListsModel.Alert, "save failed")
	require.NotNil(t, refresh)
	m, _ = sendApp(m, refresh())

	calls := rec.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, 1, calls[0].ID)
	assert.Equal(t, "Weekdays", calls[0].Name)
	require.Len(t, calls[0].Items, 3)
	assert.Equal(t, 5, calls[0].Items[0].Amount)

	assert.Equal(t, 5, m.ListsModel.Lists[0].Items[0].Amount)
	assert.False(t, m.ListsModel.editors[1].ed.Dirty())
	assert.Equal(t, []string{analytics.EventUpdateItemAmount, analytics.EventUpdateList}, tracker.Names())
}
