// Package ui renders styled, non-interactive output for the shoplist CLI
// subcommands: a command header, and success, failure and warning result
// boxes.
//
// The interactive screens live in internal/tui; this package is for the
// "run once and print" commands such as set-amount and purchase.
//
// Example:
//
//	fmt.Println(ui.NewHeader("Set Amount", "shoplist set-amount", []ui.Detail{
//	    {Key: "List", Value: "Weekdays"},
//	}).Render())
//
//	fmt.Println(ui.RenderSuccess("Saved", []ui.Detail{{Key: "Items", Value: "3"}}))
//
// Output width follows the terminal (golang.org/x/term), clamped between
// MinTerminalWidth and MaxContentWidth.
package ui
