// Package server implements the reference shopping list API.
//
// It serves the JSON endpoints the client and TUI talk to, backed by an
// in-memory Store seeded with sample lists and providers:
//
//	GET  /            all lists
//	GET  /providers   purchase providers
//	POST /list/update replace a list's items and name
//	POST /purchase    purchase a list through a provider
//	POST /list/create create an empty list
//	GET  /events      websocket collector for analytics events
//
// Successful writes answer {"status":"ok"} (create answers the new list).
// Unknown lists are 404; unknown providers and negative amounts are 422.
//
// # Usage Example
//
//	srv := server.New(&server.Config{Port: 8080, Advertise: true}, server.NewSeededStore())
//
//	// Start blocks until SIGINT/SIGTERM or a listener error
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Graceful Shutdown
//
// On SIGINT or SIGTERM the server stops accepting requests, closes open
// event streams, withdraws its mDNS advertisement and waits for in-flight
// requests to finish.
package server
