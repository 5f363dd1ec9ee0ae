package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/shoplist/internal/purchase"
	"github.com/muurk/shoplist/internal/shopping"
)

// wizardKeyMap defines key bindings for the purchase wizard
type wizardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Next    key.Binding
	Confirm key.Binding
	Back    key.Binding
	Cancel  key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k wizardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Next, k.Back, k.Cancel}
}

// FullHelp returns keybindings for the expanded help view
func (k wizardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Next, k.Confirm, k.Back, k.Cancel},
	}
}

func newWizardKeyMap() wizardKeyMap {
	return wizardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "choose provider"),
		),
		Next: key.NewBinding(
			key.WithKeys("enter", "right", "l"),
			key.WithHelp("enter/→", "next"),
		),
		// Only enter submits from the review step
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "purchase"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace", "left", "h"),
			key.WithHelp("←", "back"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
	}
}

// MsgUnsavedExcluded is shown in the overview when the list has unsaved edits.
const MsgUnsavedExcluded = "Unsaved changes are not included"

// wizardView hosts a purchase.Wizard inside a modal.
type wizardView struct {
	w      *purchase.Wizard
	cursor int

	// unsaved marks a list whose editor holds edits the purchase won't see
	unsaved bool
}

func newWizardView(list shopping.List, providers []shopping.Provider) *wizardView {
	return &wizardView{w: purchase.New(list, providers)}
}

func (v *wizardView) moveCursor(delta int) {
	n := len(v.w.Providers())
	if n == 0 {
		return
	}
	v.cursor = (v.cursor + delta + n) % n
}

// selectCursor selects the provider under the cursor.
func (v *wizardView) selectCursor() {
	if v.w.Step() != purchase.StepProvider {
		return
	}
	_ = v.w.Select(v.cursor)
}

func (v *wizardView) view(terminalWidth int) string {
	var b strings.Builder

	list := v.w.List()
	b.WriteString(TitleStyle.Padding(0).Render("Purchase " + list.Name))
	b.WriteString("\n")
	b.WriteString(v.renderSteps())
	b.WriteString("\n\n")

	switch v.w.Step() {
	case purchase.StepOverview:
		b.WriteString(v.renderOverview(list))
	case purchase.StepProvider:
		b.WriteString(v.renderProviders())
	case purchase.StepReview:
		b.WriteString(v.renderReview())
	}

	return WizardBoxStyle.Width(SafeModalWidth(modalWidth, terminalWidth)).Render(b.String())
}

// renderSteps draws "1 Overview › 2 Choose Provider › 3 Review" with the
// current step highlighted.
func (v *wizardView) renderSteps() string {
	steps := []purchase.Step{purchase.StepOverview, purchase.StepProvider, purchase.StepReview}
	parts := make([]string, len(steps))
	for i, s := range steps {
		label := fmt.Sprintf("%d %s", i+1, s)
		if s == v.w.Step() {
			parts[i] = SelectedRowStyle.Render(label)
		} else {
			parts[i] = SubtitleStyle.Render(label)
		}
	}
	return strings.Join(parts, " › ")
}

func (v *wizardView) renderOverview(list shopping.List) string {
	var b strings.Builder
	if len(list.Items) == 0 {
		b.WriteString(SubtitleStyle.Render("This list has no items."))
		b.WriteString("\n")
	}
	for _, item := range list.Items {
		b.WriteString(fmt.Sprintf("  %-*s %3d\n", itemNameWidth, truncate(item.Name, itemNameWidth), item.Amount))
	}
	b.WriteString(fmt.Sprintf("\nTotal items: %d", list.TotalAmount()))
	if v.unsaved {
		b.WriteString("\n\n")
		b.WriteString(DirtyMarkerStyle.Render(MsgUnsavedExcluded))
	}
	return b.String()
}

func (v *wizardView) renderProviders() string {
	var b strings.Builder
	selected := v.w.SelectedIndex()
	for i, p := range v.w.Providers() {
		radio := "( )"
		if i == selected {
			radio = "(•)"
		}
		delivery := ""
		if p.SameDayDelivery {
			delivery = " · same-day"
		}
		line := fmt.Sprintf("%s %s%s", radio, p.Name, delivery)
		b.WriteString(RenderMenuItem(line, i == v.cursor))
		b.WriteString("\n")
		if p.Description != "" {
			b.WriteString(lipgloss.NewStyle().PaddingLeft(8).Foreground(SubtleColor).Render(p.Description))
			b.WriteString("\n")
		}
	}
	if len(v.w.Providers()) == 0 {
		b.WriteString(SubtitleStyle.Render("No providers available."))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (v *wizardView) renderReview() string {
	s := v.w.Review()
	provider := s.ProviderName
	if !s.HasProvider {
		provider = purchase.NoProviderLabel
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Total items:      %d\n", s.TotalItems))
	b.WriteString(fmt.Sprintf("Provider:         %s\n", provider))
	b.WriteString(fmt.Sprintf("Estimated price:  %s\n", s.PriceLabel()))
	b.WriteString(fmt.Sprintf("Delivery:         %s\n\n", s.Delivery))
	b.WriteString(SelectedMenuItemStyle.PaddingLeft(0).Render("[ " + purchase.ConfirmButtonText + " ]"))
	return b.String()
}
