package server

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/shoplist/internal/analytics"
)

func wsURL(httpURL string) string {
	return "ws" + strings.TrimPrefix(httpURL, "http") + "/events"
}

func TestEventStream_ReceivesTrackerEvents(t *testing.T) {
	events := NewEventLog(0)
	srv := httptest.NewServer(NewHandler(NewSeededStore(), events))
	defer srv.Close()

	tracker := analytics.NewWebSocketTracker(wsURL(srv.URL), 8)
	tracker.Track(analytics.EventUpdateItemAmount, analytics.Payload{"listId": 1, "amount": 5})
	tracker.Track(analytics.EventUpdateList, analytics.Payload{"listId": 1})
	require.NoError(t, tracker.Close())

	require.Eventually(t, func() bool { return events.Len() == 2 }, 2*time.Second, 10*time.Millisecond)

	got := events.Events()
	assert.Equal(t, analytics.EventUpdateItemAmount, got[0].Name)
	assert.Equal(t, float64(5), got[0].Payload["amount"])
	assert.Equal(t, analytics.EventUpdateList, got[1].Name)
	assert.NotEmpty(t, got[0].ID)
}

func TestEventStream_CloseStreams(t *testing.T) {
	events := NewEventLog(0)
	srv := httptest.NewServer(NewHandler(NewSeededStore(), events))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv.URL), nil)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	require.Eventually(t, func() bool { return events.ActiveStreams() == 1 }, 2*time.Second, 10*time.Millisecond)

	events.CloseStreams()
	assert.Zero(t, events.ActiveStreams())

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err, "server side close should end the client read")
}

func TestEventLog_Bounded(t *testing.T) {
	log := NewEventLog(2)
	for _, name := range []string{"a", "b", "c"} {
		log.Record(analytics.Event{Name: name})
	}

	got := log.Events()
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Name)
	assert.Equal(t, "c", got[1].Name)
}
