// Package shopping defines the shopping list domain model shared by the
// client, the terminal UI and the reference API server.
//
// # Types
//
//   - List: a named, ordered collection of items with purchase history
//   - Item: a single line on a list (name + amount)
//   - Provider: a vendor with a price multiplier and delivery speed
//   - PurchaseInfo: the last completed purchase of a list
//
// The wire format is JSON; field names match the remote API.
//
// # Amount Parsing
//
// Quantities typed by a user are free text. ParseAmount converts them to an
// integer using leading-integer semantics:
//
//	ParseAmount("4")      // 4, nil
//	ParseAmount(" 12abc") // 12, nil (trailing characters are ignored)
//	ParseAmount("abc")    // 0, ErrInvalidAmount
//	ParseAmount("-3")     // 0, ErrNegativeAmount
//
// ParseAmountStrict rejects trailing characters and is used where input does
// not come from a keystroke-by-keystroke editor (command line arguments).
//
// # Copy Semantics
//
// Values fetched from the API are treated as immutable snapshots. Editors
// always work on List.Clone() so a cached snapshot is never mutated.
package shopping
