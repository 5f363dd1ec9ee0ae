package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/shoplist/internal/api"
)

// AlertKind selects the alert styling.
type AlertKind int

const (
	AlertError AlertKind = iota
	AlertWarning
	AlertSuccess
)

// User-facing alert texts
const (
	MsgOutstandingErrors  = "Unable to save a ShoppingList with outstanding errors"
	MsgPurchaseProcessing = "Your purchase is being processed"
	MsgNoProvider         = "Choose a provider before purchasing"
	MsgFinishDraft        = "Finish or cancel the new item before saving"
)

// Alert is a blocking modal dismissed with enter or esc.
type Alert struct {
	Kind    AlertKind
	Title   string
	Message string
}

// errorAlert builds a failure alert for a write or validation error.
func errorAlert(title string, err error) *Alert {
	return &Alert{Kind: AlertError, Title: title, Message: api.ShortMessage(err)}
}

// Render draws the alert box sized for the terminal width.
func (a *Alert) Render(terminalWidth int) string {
	style := ErrorBoxStyle
	icon := "✗ "
	switch a.Kind {
	case AlertWarning:
		style = WarningBoxStyle
		icon = "⚠ "
	case AlertSuccess:
		style = SuccessBoxStyle
		icon = "✓ "
	}

	var b strings.Builder
	b.WriteString(icon + a.Title)
	if a.Message != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Bold(false).Render(a.Message))
	}
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(SubtleColor).Bold(false).Render("enter/esc: dismiss"))

	return style.Width(SafeModalWidth(modalWidth, terminalWidth)).Render(b.String())
}
