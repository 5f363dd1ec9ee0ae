package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/shoplist/internal/analytics"
	"github.com/muurk/shoplist/internal/logging"
)

const (
	// Time allowed to read the next event before the stream is considered idle
	eventReadWait = 5 * time.Minute

	// Maximum event size accepted from a client
	maxEventSize = 64 << 10

	// DefaultEventLogSize is how many events an EventLog keeps
	DefaultEventLogSize = 1000
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 1024,
	// Collector is used by terminal clients, not browsers.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// EventLog keeps the most recent analytics events received by the server.
type EventLog struct {
	mu     sync.Mutex
	events []analytics.Event
	max    int

	conns map[*websocket.Conn]struct{}
	wg    sync.WaitGroup
}

// NewEventLog creates a log holding at most max events (DefaultEventLogSize if max <= 0).
func NewEventLog(max int) *EventLog {
	if max <= 0 {
		max = DefaultEventLogSize
	}
	return &EventLog{max: max, conns: make(map[*websocket.Conn]struct{})}
}

// Record appends an event, evicting the oldest when full.
func (l *EventLog) Record(ev analytics.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.events) == l.max {
		copy(l.events, l.events[1:])
		l.events = l.events[:len(l.events)-1]
	}
	l.events = append(l.events, ev)
}

// Events returns a copy of the recorded events, oldest first.
func (l *EventLog) Events() []analytics.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]analytics.Event, len(l.events))
	copy(out, l.events)
	return out
}

// Len returns the number of recorded events.
func (l *EventLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

// ActiveStreams returns the number of open event connections.
func (l *EventLog) ActiveStreams() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.conns)
}

// CloseStreams closes all open event connections and waits for their
// readers to exit.
func (l *EventLog) CloseStreams() {
	l.mu.Lock()
	for conn := range l.conns {
		_ = conn.Close()
	}
	l.mu.Unlock()
	l.wg.Wait()
}

func (l *EventLog) track(conn *websocket.Conn) {
	l.mu.Lock()
	l.conns[conn] = struct{}{}
	l.wg.Add(1)
	l.mu.Unlock()
}

func (l *EventLog) untrack(conn *websocket.Conn) {
	l.mu.Lock()
	delete(l.conns, conn)
	l.mu.Unlock()
	l.wg.Done()
}

// eventStream upgrades to a websocket and reads analytics events until the
// client goes away.
func (h *handler) eventStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error.
		logging.Warn("Event stream upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}

	remoteAddr := r.RemoteAddr
	logging.LogConnection(remoteAddr, "event_stream_opened")
	if h.events != nil {
		h.events.track(conn)
		defer h.events.untrack(conn)
	}
	defer func() {
		_ = conn.Close()
		logging.LogConnection(remoteAddr, "event_stream_closed")
	}()

	conn.SetReadLimit(maxEventSize)
	for {
		if err := conn.SetReadDeadline(time.Now().Add(eventReadWait)); err != nil {
			return
		}

		var ev analytics.Event
		if err := conn.ReadJSON(&ev); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Info("Event stream closed unexpectedly",
					zap.String("remote_addr", remoteAddr),
					zap.Error(err),
				)
			}
			return
		}

		logging.LogAnalyticsEvent(ev.Name, ev.Payload)
		if h.events != nil {
			h.events.Record(ev)
		}
	}
}
