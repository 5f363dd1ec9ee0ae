package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"

	"github.com/muurk/shoplist/internal/analytics"
	"github.com/muurk/shoplist/internal/editor"
	"github.com/muurk/shoplist/internal/logging"
	"github.com/muurk/shoplist/internal/shopping"
)

// Draft row fields
const (
	draftFieldName = iota
	draftFieldAmount
)

const (
	itemNameWidth   = 28
	amountInputSize = 8
)

// itemEditorView is the on-screen editor of one expanded list. It owns the
// text inputs; all list state lives in the wrapped editor.Editor.
type itemEditorView struct {
	ed *editor.Editor

	// Cursor indexes VisibleRows
	Cursor int

	amountInput textinput.Model
	draftName   textinput.Model
	draftAmount textinput.Model
	draftField  int

	saving bool
}

func newItemEditorView(list shopping.List, tracker analytics.Tracker) *itemEditorView {
	v := &itemEditorView{
		ed:          editor.New(list, tracker),
		amountInput: newInput("0", amountInputSize),
		draftName:   newInput("Item name", itemNameWidth),
		draftAmount: newInput("Amount", amountInputSize),
	}
	v.syncInput()
	return v
}

// newInput returns a text input with a steady cursor.
func newInput(placeholder string, width int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 64
	ti.Width = width
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// focusedRow returns the list row under the cursor.
func (v *itemEditorView) focusedRow() (int, bool) {
	rows := v.ed.VisibleRows()
	if len(rows) == 0 {
		return 0, false
	}
	if v.Cursor >= len(rows) {
		v.Cursor = len(rows) - 1
	}
	if v.Cursor < 0 {
		v.Cursor = 0
	}
	return rows[v.Cursor], true
}

// syncInput loads the focused row's field text into the amount input.
func (v *itemEditorView) syncInput() {
	row, ok := v.focusedRow()
	if !ok {
		v.amountInput.SetValue("")
		v.amountInput.Blur()
		return
	}
	field, err := v.ed.Field(row)
	if err != nil {
		return
	}
	v.amountInput.SetValue(field.Text)
	v.amountInput.CursorEnd()
	v.amountInput.Focus()
}

func (v *itemEditorView) moveCursor(delta int) {
	n := len(v.ed.VisibleRows())
	if n == 0 {
		return
	}
	v.Cursor = (v.Cursor + delta + n) % n
	v.syncInput()
}

// typeAmount forwards a key to the amount input and re-parses on change.
func (v *itemEditorView) typeAmount(msg tea.Msg) tea.Cmd {
	row, ok := v.focusedRow()
	if !ok {
		return nil
	}

	before := v.amountInput.Value()
	var cmd tea.Cmd
	v.amountInput, cmd = v.amountInput.Update(msg)

	if after := v.amountInput.Value(); after != before {
		if err := v.ed.SetAmountText(row, after); err != nil {
			logging.Debug("Invalid amount",
				zap.String("list", v.ed.Name()),
				zap.Int("row", row),
				zap.String("text", after),
			)
		}
	}
	return cmd
}

// removeFocused soft-deletes the row under the cursor.
func (v *itemEditorView) removeFocused() {
	row, ok := v.focusedRow()
	if !ok {
		return
	}
	if err := v.ed.Remove(row); err != nil {
		logging.Warn("Remove failed", zap.Error(err))
		return
	}
	v.syncInput()
}

func (v *itemEditorView) beginAppend() {
	v.ed.BeginAppend()
	v.draftName.SetValue("")
	v.draftAmount.SetValue("")
	v.draftField = draftFieldName
	v.draftName.Focus()
	v.draftAmount.Blur()
	v.amountInput.Blur()
}

func (v *itemEditorView) switchDraftField() {
	if v.draftField == draftFieldName {
		v.draftField = draftFieldAmount
		v.draftName.Blur()
		v.draftAmount.Focus()
		return
	}
	v.draftField = draftFieldName
	v.draftAmount.Blur()
	v.draftName.Focus()
}

// typeDraft forwards a key to the focused draft input.
func (v *itemEditorView) typeDraft(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if v.draftField == draftFieldName {
		v.draftName, cmd = v.draftName.Update(msg)
		_ = v.ed.SetDraftName(v.draftName.Value())
		return cmd
	}
	v.draftAmount, cmd = v.draftAmount.Update(msg)
	_ = v.ed.SetDraftAmount(v.draftAmount.Value())
	return cmd
}

// confirmDraft appends the new item and moves the cursor onto it. When the
// amount does not parse the draft row stays open and the alert text is
// returned.
func (v *itemEditorView) confirmDraft() (string, bool) {
	text := v.ed.Draft().AmountText
	if err := v.ed.ConfirmDraft(); err != nil {
		logging.Debug("Draft rejected", zap.String("list", v.ed.Name()), zap.Error(err))
		return fmt.Sprintf("Value %s is not a number", text), false
	}
	v.Cursor = len(v.ed.VisibleRows()) - 1
	v.syncInput()
	return "", true
}

func (v *itemEditorView) cancelDraft() {
	v.ed.CancelDraft()
	v.draftName.Blur()
	v.draftAmount.Blur()
	v.syncInput()
}

// commit re-bases on a saved update and keeps the cursor in range.
func (v *itemEditorView) commit(update shopping.ListUpdate) error {
	if err := v.ed.Commit(update); err != nil {
		return err
	}
	v.syncInput()
	return nil
}

// rebase discards local state for a freshly fetched list unless the user has
// unsaved edits.
func (v *itemEditorView) rebase(list shopping.List) bool {
	if v.ed.Dirty() || v.saving {
		return false
	}
	v.ed.Rebase(list)
	v.syncInput()
	return true
}

// view renders the item rows. focused marks the editor that receives keys.
func (v *itemEditorView) view(focused bool, width int) string {
	var b strings.Builder

	header := fmt.Sprintf("  %-*s  %s", itemNameWidth, "Item", "Amount")
	b.WriteString(ColumnHeaderStyle.Render(header))
	b.WriteString("\n")

	rows := v.ed.VisibleRows()
	if len(rows) == 0 && !v.ed.Appending() {
		b.WriteString(SubtitleStyle.Render("  (no items)"))
		b.WriteString("\n")
	}

	for i, row := range rows {
		item, _ := v.ed.Item(row)
		field, _ := v.ed.Field(row)

		marker := "  "
		name := truncate(item.Name, itemNameWidth)
		amount := field.Text

		current := focused && !v.ed.Appending() && i == v.Cursor
		if current {
			marker = "→ "
			amount = FocusedFieldStyle().Render(v.amountInput.View())
		}
		if field.Validation == editor.ValidationError {
			amount = InvalidFieldStyle.Render(amount + " !")
		}

		line := fmt.Sprintf("%s%-*s  %s", marker, itemNameWidth, name, amount)
		if current {
			line = SelectedRowStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if v.ed.Appending() {
		b.WriteString(fmt.Sprintf("+ %s  %s\n", v.draftName.View(), v.draftAmount.View()))
	}

	b.WriteString(v.statusLine())

	return InlineEditorStyle().Width(clampEditorWidth(width)).Render(strings.TrimRight(b.String(), "\n"))
}

func (v *itemEditorView) statusLine() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("%d items", len(v.ed.VisibleRows())))
	if n := v.ed.ErrorCount(); n > 0 {
		parts = append(parts, InvalidFieldStyle.Render(fmt.Sprintf("%d invalid", n)))
	}
	if v.saving {
		parts = append(parts, "saving...")
	} else if v.ed.Dirty() {
		parts = append(parts, DirtyMarkerStyle.Render("unsaved changes"))
	}
	return SubtitleStyle.Render(strings.Join(parts, " · "))
}

func clampEditorWidth(width int) int {
	w := width - 10
	if w < 56 {
		return 56
	}
	if w > 80 {
		return 80
	}
	return w
}

// truncate shortens s to width cells, adding an ellipsis when cut.
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
