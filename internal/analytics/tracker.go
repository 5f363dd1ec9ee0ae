package analytics

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/muurk/shoplist/internal/logging"
)

// Event names
const (
	EventUpdateItemAmount = "Update Item Amount"
	EventAddListItem      = "Add List Item"
	EventUpdateList       = "Update List"
	EventMakePurchase     = "Make Purchase"
)

// Payload is the structured data attached to an event.
type Payload map[string]any

// Tracker records analytics events.
type Tracker interface {
	Track(event string, payload Payload)
}

// Event is the envelope sent to collectors.
type Event struct {
	ID        string    `json:"id"`
	Name      string    `json:"event"`
	Payload   Payload   `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(name string, payload Payload) Event {
	return Event{
		ID:        uuid.NewString(),
		Name:      name,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// Nop discards all events.
type Nop struct{}

// Track implements Tracker
func (Nop) Track(string, Payload) {}

// LogTracker writes events to the structured log.
type LogTracker struct{}

// Track implements Tracker
func (LogTracker) Track(event string, payload Payload) {
	logging.LogAnalyticsEvent(event, payload)
}

// Recorder keeps every event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Track implements Tracker
func (r *Recorder) Track(event string, payload Payload) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, NewEvent(event, payload))
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Names returns the recorded event names in order.
func (r *Recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.events))
	for i, e := range r.events {
		names[i] = e.Name
	}
	return names
}

// Multi fans out events to several trackers.
type Multi []Tracker

// Track implements Tracker
func (m Multi) Track(event string, payload Payload) {
	for _, t := range m {
		t.Track(event, payload)
	}
}

// OrNop returns t, or Nop when t is nil.
func OrNop(t Tracker) Tracker {
	if t == nil {
		return Nop{}
	}
	return t
}
