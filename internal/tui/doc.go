// Package tui implements the terminal user interface for managing shopping
// lists.
//
// Built on Bubble Tea, it follows the Elm architecture: every screen is a
// model with Init, Update and View, and network calls run as commands that
// report back as messages.
//
// # Screens
//
//   - Dashboard: start screen linking to the lists and to list creation
//   - Lists: table of every list with expandable item editors
//
// All screens use RenderApplicationContainer for a consistent header, content
// area and context-sensitive footer. The purchase wizard and alerts are drawn
// as modals with RenderModal.
//
// # List Table
//
// On start the table issues two independent fetches, lists and providers,
// and shows a spinner until both have answered. A failed fetch is shown
// inline; r reloads. Rows expand by name and each expanded row shows an item
// editor. Editors survive collapsing, so unsaved edits are still there when
// the row is expanded again.
//
// # Key Bindings
//
//   - Table: ↑/↓ move, space expand, enter edit, p purchase, n new list, r reload
//   - Editor: type to change the amount, ctrl+d remove, ctrl+n add, ctrl+s save, ctrl+p purchase
//   - New item: tab switches name/amount, enter adds, esc cancels
//   - Wizard: space chooses a provider, enter next/purchase, ← back, esc close
//
// # Errors
//
// Every user-facing error is a blocking alert dismissed with enter or esc.
// Saves are refused locally while any visible amount is invalid. A failed
// write keeps the editor's state so the save can be retried.
package tui
