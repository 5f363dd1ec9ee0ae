// Package editor holds the editing state of a single shopping list: amount
// fields with validation, soft-deleted rows and the new-item draft row.
//
// An Editor never touches the list it was created from. It works on a deep
// copy and produces a shopping.ListUpdate when saved; the caller submits the
// update and calls Commit once the write succeeded.
package editor

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/muurk/shoplist/internal/analytics"
	"github.com/muurk/shoplist/internal/shopping"
)

var (
	// ErrOutstandingErrors blocks saving while a visible amount is invalid
	ErrOutstandingErrors = errors.New("unable to save a shopping list with outstanding errors")

	// ErrAppendInProgress blocks saving while the new-item row is open
	ErrAppendInProgress = errors.New("finish or cancel the new item before saving")

	// ErrNotAppending is returned by draft operations when no draft row is open
	ErrNotAppending = errors.New("no new item is being added")

	// ErrRowOutOfRange is returned for row indexes outside the list
	ErrRowOutOfRange = errors.New("row index out of range")

	// ErrStaleUpdate is returned by Commit for an update of a different list
	ErrStaleUpdate = errors.New("update does not belong to this list")
)

// Validation is the display state of an amount field.
type Validation int

const (
	ValidationDefault Validation = iota
	ValidationError
)

// String returns "default" or "error"
func (v Validation) String() string {
	if v == ValidationError {
		return "error"
	}
	return "default"
}

// Field is the text state of one amount input.
type Field struct {
	Text       string
	Validation Validation
}

// Draft is the transient new-item row.
type Draft struct {
	Name       string
	AmountText string
}

// Editor edits one list.
type Editor struct {
	baseline shopping.List // last saved snapshot
	list     shopping.List // working copy
	fields   []Field       // one per list.Items entry
	removed  map[int]bool  // soft-deleted row indexes

	appending bool
	draft     Draft

	tracker analytics.Tracker
}

// New creates an editor over a copy of list.
func New(list shopping.List, tracker analytics.Tracker) *Editor {
	e := &Editor{tracker: analytics.OrNop(tracker)}
	e.reset(list)
	return e
}

func (e *Editor) reset(list shopping.List) {
	e.baseline = list.Clone()
	e.list = list.Clone()
	e.fields = make([]Field, len(e.list.Items))
	for i, item := range e.list.Items {
		e.fields[i] = Field{Text: strconv.Itoa(item.Amount)}
	}
	e.removed = make(map[int]bool)
	e.appending = false
	e.draft = Draft{}
}

// ListID returns the id of the edited list.
func (e *Editor) ListID() int { return e.list.ID }

// Name returns the name of the edited list.
func (e *Editor) Name() string { return e.list.Name }

// List returns a copy of the working list, soft-deleted rows included.
func (e *Editor) List() shopping.List { return e.list.Clone() }

// Len returns the number of rows including soft-deleted ones.
func (e *Editor) Len() int { return len(e.list.Items) }

// Item returns the working item at row.
func (e *Editor) Item(row int) (shopping.Item, error) {
	if err := e.checkRow(row); err != nil {
		return shopping.Item{}, err
	}
	return e.list.Items[row], nil
}

// Field returns the amount field state at row.
func (e *Editor) Field(row int) (Field, error) {
	if err := e.checkRow(row); err != nil {
		return Field{}, err
	}
	return e.fields[row], nil
}

// VisibleRows returns the indexes of rows that are not soft-deleted, in order.
func (e *Editor) VisibleRows() []int {
	rows := make([]int, 0, len(e.list.Items))
	for i := range e.list.Items {
		if !e.removed[i] {
			rows = append(rows, i)
		}
	}
	return rows
}

// VisibleItems returns the items that would be submitted by a save.
func (e *Editor) VisibleItems() []shopping.Item {
	items := make([]shopping.Item, 0, len(e.list.Items))
	for _, row := range e.VisibleRows() {
		items = append(items, e.list.Items[row])
	}
	return items
}

// SetAmountText records keystroke input for row. A parsable value updates
// the item amount; anything else marks the field invalid and leaves the item
// untouched. The returned error is the parse error, if any.
func (e *Editor) SetAmountText(row int, text string) error {
	if err := e.checkRow(row); err != nil {
		return err
	}

	e.fields[row].Text = text
	amount, err := shopping.ParseAmount(text)
	if err != nil {
		e.fields[row].Validation = ValidationError
		return err
	}

	e.fields[row].Validation = ValidationDefault
	e.list.Items[row].Amount = amount
	e.tracker.Track(analytics.EventUpdateItemAmount, analytics.Payload{
		"listId": e.list.ID,
		"item":   e.list.Items[row].Name,
		"amount": amount,
	})
	return nil
}

// Remove soft-deletes row. Removing a row twice has no further effect.
func (e *Editor) Remove(row int) error {
	if err := e.checkRow(row); err != nil {
		return err
	}
	e.removed[row] = true
	return nil
}

// IsRemoved reports whether row is soft-deleted.
func (e *Editor) IsRemoved(row int) bool {
	return e.removed[row]
}

// ErrorCount returns the number of visible rows holding an invalid amount.
func (e *Editor) ErrorCount() int {
	n := 0
	for i, f := range e.fields {
		if !e.removed[i] && f.Validation == ValidationError {
			n++
		}
	}
	return n
}

// HasErrors reports whether any visible row is invalid.
func (e *Editor) HasErrors() bool {
	return e.ErrorCount() > 0
}

// BeginAppend opens the new-item row with an empty draft.
func (e *Editor) BeginAppend() {
	e.appending = true
	e.draft = Draft{}
}

// Appending reports whether the new-item row is open.
func (e *Editor) Appending() bool { return e.appending }

// Draft returns the current new-item draft.
func (e *Editor) Draft() Draft { return e.draft }

// SetDraftName sets the name of the new item.
func (e *Editor) SetDraftName(name string) error {
	if !e.appending {
		return ErrNotAppending
	}
	e.draft.Name = name
	return nil
}

// SetDraftAmount sets the amount text of the new item. The text is only
// validated on confirm.
func (e *Editor) SetDraftAmount(text string) error {
	if !e.appending {
		return ErrNotAppending
	}
	e.draft.AmountText = text
	return nil
}

// ConfirmDraft appends the draft item when its amount parses and resets the
// draft row. On a parse failure the list is unchanged and the draft stays open.
func (e *Editor) ConfirmDraft() error {
	if !e.appending {
		return ErrNotAppending
	}

	amount, err := shopping.ParseAmount(e.draft.AmountText)
	if err != nil {
		return fmt.Errorf("value %q is not a number: %w", e.draft.AmountText, err)
	}

	item := shopping.Item{Name: e.draft.Name, Amount: amount}
	e.list.Items = append(e.list.Items, item)
	e.fields = append(e.fields, Field{Text: strconv.Itoa(amount)})
	e.appending = false
	e.draft = Draft{}

	e.tracker.Track(analytics.EventAddListItem, analytics.Payload{
		"listId": e.list.ID,
		"name":   item.Name,
		"amount": item.Amount,
	})
	return nil
}

// CancelDraft closes the new-item row without changes.
func (e *Editor) CancelDraft() {
	e.appending = false
	e.draft = Draft{}
}

// PrepareSave validates the editor and returns the update to submit. The
// editor itself is not modified; call Commit after the write succeeds.
func (e *Editor) PrepareSave() (shopping.ListUpdate, error) {
	if e.appending {
		return shopping.ListUpdate{}, ErrAppendInProgress
	}
	if e.HasErrors() {
		return shopping.ListUpdate{}, ErrOutstandingErrors
	}

	return shopping.ListUpdate{
		ID:    e.list.ID,
		Name:  e.list.Name,
		Items: e.VisibleItems(),
	}, nil
}

// Commit re-bases the editor on a successfully saved update: soft-deleted rows
// disappear and every field is rebuilt from the saved amounts.
func (e *Editor) Commit(update shopping.ListUpdate) error {
	if update.ID != e.list.ID {
		return ErrStaleUpdate
	}

	saved := e.list.Clone()
	saved.Name = update.Name
	saved.Items = make([]shopping.Item, len(update.Items))
	copy(saved.Items, update.Items)
	e.reset(saved)

	e.tracker.Track(analytics.EventUpdateList, analytics.Payload{
		"listId": update.ID,
		"items":  len(update.Items),
	})
	return nil
}

// Rebase replaces the baseline with a freshly fetched list, discarding edits.
func (e *Editor) Rebase(list shopping.List) {
	e.reset(list)
}

// Dirty reports whether the editor differs from the last saved snapshot.
func (e *Editor) Dirty() bool {
	if e.appending || len(e.removed) > 0 || e.HasErrors() {
		return true
	}
	if len(e.list.Items) != len(e.baseline.Items) {
		return true
	}
	for i := range e.list.Items {
		if e.list.Items[i] != e.baseline.Items[i] {
			return true
		}
	}
	return false
}

func (e *Editor) checkRow(row int) error {
	if row < 0 || row >= len(e.list.Items) {
		return fmt.Errorf("%w: %d", ErrRowOutOfRange, row)
	}
	return nil
}
