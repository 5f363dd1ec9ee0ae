// Package api is the HTTP client for the shopping list service.
//
// Reads (lists and providers) are cached for a short TTL, retried with
// exponential backoff on transient failures and coalesced when issued
// concurrently. Writes are sent once and report their outcome as a
// WriteResult so callers can surface failures to the user.
//
// Basic usage:
//
//	client := api.NewClient("http://localhost:8080", api.Options{})
//	snap, err := client.Snapshot(ctx)
//	if err != nil {
//	    return err
//	}
//	res := client.UpdateList(ctx, shopping.ListUpdate{ID: 1, Name: "Weekdays", Items: items})
//	if !res.OK() {
//	    fmt.Println(api.ShortMessage(res.Err))
//	}
//
// All errors returned by the client are *Error values carrying an ErrorType;
// use IsNetworkError, IsHTTPError, IsValidationError and IsRetryable to
// inspect them.
package api
