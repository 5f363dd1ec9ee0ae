package analytics

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/shoplist/internal/logging"
)

const (
	// DefaultBufferSize is the number of events queued before new events are dropped
	DefaultBufferSize = 64

	// writeWait is the time allowed to write a single event
	writeWait = 5 * time.Second

	// dialTimeout bounds connection attempts to the collector
	dialTimeout = 3 * time.Second
)

// ErrTrackerClosed is returned by Close when called twice.
var ErrTrackerClosed = errors.New("analytics tracker already closed")

// WebSocketTracker streams events as JSON text messages to a collector.
//
// Track enqueues into a bounded buffer and returns immediately; a single
// writer goroutine owns the connection. Events are dropped when the buffer is
// full or the collector is unreachable. The connection is dialled lazily and
// re-dialled after a write failure.
type WebSocketTracker struct {
	url    string
	dialer *websocket.Dialer

	events chan Event
	done   chan struct{}
	exited chan struct{}

	closeOnce sync.Once

	mu      sync.Mutex
	dropped int
	sent    int
}

// NewWebSocketTracker starts a tracker writing to url (ws:// or wss://).
func NewWebSocketTracker(url string, bufferSize int) *WebSocketTracker {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	t := &WebSocketTracker{
		url:    url,
		dialer: &websocket.Dialer{HandshakeTimeout: dialTimeout},
		events: make(chan Event, bufferSize),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	go t.run()
	return t
}

// Track implements Tracker
func (t *WebSocketTracker) Track(event string, payload Payload) {
	select {
	case <-t.done:
		t.drop(event, "tracker closed")
		return
	default:
	}

	select {
	case t.events <- NewEvent(event, payload):
	default:
		t.drop(event, "buffer full")
	}
}

// Close flushes queued events and closes the connection.
func (t *WebSocketTracker) Close() error {
	err := ErrTrackerClosed
	t.closeOnce.Do(func() {
		close(t.done)
		<-t.exited
		err = nil
	})
	return err
}

// Stats returns the number of events sent and dropped so far.
func (t *WebSocketTracker) Stats() (sent, dropped int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sent, t.dropped
}

func (t *WebSocketTracker) run() {
	defer close(t.exited)

	var conn *websocket.Conn
	defer func() {
		if conn != nil {
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			_ = conn.Close()
		}
	}()

	for {
		select {
		case ev := <-t.events:
			conn = t.write(conn, ev)
		case <-t.done:
			// Drain whatever is queued, then exit
			for {
				select {
				case ev := <-t.events:
					conn = t.write(conn, ev)
				default:
					return
				}
			}
		}
	}
}

// write sends ev and returns the connection to use next time (nil after a failure).
func (t *WebSocketTracker) write(conn *websocket.Conn, ev Event) *websocket.Conn {
	if conn == nil {
		c, _, err := t.dialer.Dial(t.url, nil)
		if err != nil {
			logging.Warn("Analytics collector unreachable",
				zap.String("url", t.url),
				zap.Error(err),
			)
			t.drop(ev.Name, "dial failed")
			return nil
		}
		logging.LogConnection(t.url, "analytics_connected")
		conn = c
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(ev); err != nil {
		logging.Warn("Failed to send analytics event",
			zap.String("event", ev.Name),
			zap.Error(err),
		)
		_ = conn.Close()
		t.drop(ev.Name, "write failed")
		return nil
	}

	t.mu.Lock()
	t.sent++
	t.mu.Unlock()
	return conn
}

func (t *WebSocketTracker) drop(event string, reason string) {
	t.mu.Lock()
	t.dropped++
	t.mu.Unlock()
	logging.Debug("Analytics event dropped",
		zap.String("event", event),
		zap.String("reason", reason),
	)
}
