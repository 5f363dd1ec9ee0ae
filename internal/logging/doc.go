// Package logging provides structured logging for shoplist.
//
// This package wraps a global zap logger with convenience functions for the
// logging patterns used across the client, the terminal UI and the reference
// API server.
//
// # Log Levels
//
//   - Debug: request/response bodies, dropped analytics events, cache hits
//   - Info: API calls, server requests, list updates, purchases
//   - Warn: failed writes, analytics transport problems
//   - Error: startup failures, unexpected server errors
//
// # Structured Logging
//
//	logging.Info("List saved",
//	    zap.Int("list_id", 1),
//	    zap.Int("items", 3),
//	)
//
// Domain helpers:
//
//	logging.LogAPIRequest("POST", "/list/update", 42)
//	logging.LogAPIResponse("POST", "/list/update", 200, elapsed)
//	logging.LogAnalyticsEvent("Update List", payload)
//	logging.LogConnection(remoteAddr, "websocket_upgraded")
//
// # Configuration
//
// Logging is silent unless a level is given or SHOPLIST_LOG_LEVEL is set.
// The terminal UI owns stdout, so it logs to a file:
//
//	if err := logging.Initialize(logging.Options{Level: "debug", File: "/tmp/shoplist.log"}); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use.
package logging
