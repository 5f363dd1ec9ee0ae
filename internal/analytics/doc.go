// Package analytics records user actions as named events.
//
// Tracking is fire-and-forget: Track never blocks the caller and never
// reports failures. A Tracker is constructed once at startup and passed to
// the components that emit events.
//
// # Events
//
//   - EventUpdateItemAmount: an item amount changed to a valid value
//   - EventAddListItem: a new item was appended to a list
//   - EventUpdateList: a list was saved
//   - EventMakePurchase: a purchase was submitted
//
// # Implementations
//
//   - Nop: discards everything
//   - LogTracker: writes events to the zap logger
//   - WebSocketTracker: streams events to a collector over a websocket
//   - Recorder: keeps events in memory (tests, dry runs)
package analytics
