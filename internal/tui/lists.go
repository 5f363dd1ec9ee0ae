package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/shoplist/internal/analytics"
	"github.com/muurk/shoplist/internal/api"
	"github.com/muurk/shoplist/internal/editor"
	"github.com/muurk/shoplist/internal/logging"
	"github.com/muurk/shoplist/internal/purchase"
	"github.com/muurk/shoplist/internal/shopping"
)

// TableMode is the input mode of the list table.
type TableMode int

const (
	ModeTable  TableMode = iota // moving between lists
	ModeEditor                  // editing the items of one list
	ModeDraft                   // typing a new item
	ModeCreate                  // typing the name of a new list
)

// Column widths
const (
	colName    = 16
	colItems   = 15
	colUpdated = 24
)

// tableKeyMap defines key bindings for the list table
type tableKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Edit     key.Binding
	Purchase key.Binding
	New      key.Binding
	Reload   key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k tableKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Edit, k.Purchase, k.New, k.Reload, k.Back, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k tableKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Edit},
		{k.Purchase, k.New, k.Reload},
		{k.Back, k.Quit},
	}
}

// editorKeyMap defines key bindings while an item editor has focus
type editorKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Remove   key.Binding
	Add      key.Binding
	Save     key.Binding
	Purchase key.Binding
	Done     key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k editorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Remove, k.Add, k.Save, k.Purchase, k.Done}
}

// FullHelp returns keybindings for the expanded help view
func (k editorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Remove, k.Add, k.Save, k.Purchase, k.Done},
	}
}

// inputKeyMap covers the draft row and the new list prompt
type inputKeyMap struct {
	Switch  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k inputKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Switch, k.Confirm, k.Cancel}
}

// FullHelp returns keybindings for the expanded help view
func (k inputKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Switch, k.Confirm, k.Cancel}}
}

// ListTableModel shows every shopping list with expandable item editors and
// hosts the purchase wizard and blocking alerts.
type ListTableModel struct {
	Service Service
	Tracker analytics.Tracker

	// Fetched data
	Lists     []shopping.List
	Providers []shopping.Provider
	index     shopping.ProviderIndex

	listsLoading     bool
	providersLoading bool
	listsErr         error
	providersErr     error

	// Expanded rows by name, editors by list id. Editors survive collapsing.
	Expanded ExpandedSet
	editors  map[int]*itemEditorView

	Cursor int
	Mode   TableMode
	active int // id of the list whose editor has focus

	wizard *wizardView
	Alert  *Alert
	Status string

	createInput textinput.Model

	Spinner spinner.Model
	Width   int
	Height  int

	BackRequested bool

	Help       help.Model
	Keys       tableKeyMap
	EditorKeys editorKeyMap
	DraftKeys  inputKeyMap
	CreateKeys inputKeyMap
	WizardKeys wizardKeyMap
}

// NewListTableModel creates the table. Init starts both fetches.
func NewListTableModel(svc Service, tracker analytics.Tracker) ListTableModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	create := newInput("List name", colName+10)

	return ListTableModel{
		Service:          svc,
		Tracker:          analytics.OrNop(tracker),
		index:            shopping.ProviderIndex{},
		listsLoading:     true,
		providersLoading: true,
		Expanded:         ExpandedSet{},
		editors:          map[int]*itemEditorView{},
		Mode:             ModeTable,
		createInput:      create,
		Spinner:          s,
		Help:             help.New(),
		Keys: tableKeyMap{
			Up: key.NewBinding(
				key.WithKeys("up", "k"),
				key.WithHelp("↑/k", "up"),
			),
			Down: key.NewBinding(
				key.WithKeys("down", "j"),
				key.WithHelp("↓/j", "down"),
			),
			Toggle: key.NewBinding(
				key.WithKeys(" ", "right", "left"),
				key.WithHelp("space", "expand"),
			),
			Edit: key.NewBinding(
				key.WithKeys("enter", "e"),
				key.WithHelp("enter", "edit"),
			),
			Purchase: key.NewBinding(
				key.WithKeys("p"),
				key.WithHelp("p", "purchase"),
			),
			New: key.NewBinding(
				key.WithKeys("n"),
				key.WithHelp("n", "new list"),
			),
			Reload: key.NewBinding(
				key.WithKeys("r"),
				key.WithHelp("r", "reload"),
			),
			Back: key.NewBinding(
				key.WithKeys("esc", "backspace"),
				key.WithHelp("esc", "back"),
			),
			Quit: key.NewBinding(
				key.WithKeys("q"),
				key.WithHelp("q", "quit"),
			),
		},
		EditorKeys: editorKeyMap{
			Up: key.NewBinding(
				key.WithKeys("up"),
				key.WithHelp("↑", "up"),
			),
			Down: key.NewBinding(
				key.WithKeys("down"),
				key.WithHelp("↓", "down"),
			),
			Remove: key.NewBinding(
				key.WithKeys("ctrl+d"),
				key.WithHelp("ctrl+d", "remove"),
			),
			Add: key.NewBinding(
				key.WithKeys("ctrl+n"),
				key.WithHelp("ctrl+n", "add item"),
			),
			Save: key.NewBinding(
				key.WithKeys("ctrl+s"),
				key.WithHelp("ctrl+s", "save"),
			),
			Purchase: key.NewBinding(
				key.WithKeys("ctrl+p"),
				key.WithHelp("ctrl+p", "purchase"),
			),
			Done: key.NewBinding(
				key.WithKeys("esc"),
				key.WithHelp("esc", "done"),
			),
		},
		DraftKeys: inputKeyMap{
			Switch: key.NewBinding(
				key.WithKeys("tab", "shift+tab"),
				key.WithHelp("tab", "name/amount"),
			),
			Confirm: key.NewBinding(
				key.WithKeys("enter"),
				key.WithHelp("enter", "add"),
			),
			Cancel: key.NewBinding(
				key.WithKeys("esc"),
				key.WithHelp("esc", "cancel"),
			),
		},
		CreateKeys: inputKeyMap{
			Switch: key.NewBinding(key.WithDisabled()),
			Confirm: key.NewBinding(
				key.WithKeys("enter"),
				key.WithHelp("enter", "create"),
			),
			Cancel: key.NewBinding(
				key.WithKeys("esc"),
				key.WithHelp("esc", "cancel"),
			),
		},
		WizardKeys: newWizardKeyMap(),
	}
}

// Init starts the spinner and both fetches. The fetches are independent and
// may complete in either order.
func (m ListTableModel) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, loadListsCmd(m.Service), loadProvidersCmd(m.Service))
}

// Loading reports whether either fetch is still pending.
func (m ListTableModel) Loading() bool {
	return m.listsLoading || m.providersLoading
}

// Err returns the first fetch error, if any.
func (m ListTableModel) Err() error {
	if m.listsErr != nil {
		return m.listsErr
	}
	return m.providersErr
}

// Ready reports whether both fetches succeeded.
func (m ListTableModel) Ready() bool {
	return !m.Loading() && m.Err() == nil
}

// OpenCreate switches to the new list prompt.
func (m *ListTableModel) OpenCreate() {
	m.Mode = ModeCreate
	m.createInput.SetValue("")
	m.createInput.Focus()
}

// IsBackRequested reports whether the user asked to leave the table.
func (m ListTableModel) IsBackRequested() bool {
	return m.BackRequested
}

// Update handles messages and updates the model
func (m ListTableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case listsLoadedMsg:
		m.listsLoading = false
		m.listsErr = msg.err
		if msg.err == nil {
			m.setLists(msg.lists)
		}
		return m, nil

	case providersLoadedMsg:
		m.providersLoading = false
		m.providersErr = msg.err
		if msg.err == nil {
			m.Providers = msg.providers
			m.index = shopping.IndexProviders(msg.providers)
		}
		return m, nil

	case saveCompleteMsg:
		return m.handleSaveComplete(msg)

	case purchaseCompleteMsg:
		return m.handlePurchaseComplete(msg)

	case createCompleteMsg:
		return m.handleCreateComplete(msg)

	case tea.KeyMsg:
		if m.Alert != nil {
			return m.updateAlert(msg)
		}
		if m.wizard != nil {
			return m.updateWizard(msg)
		}
		switch m.Mode {
		case ModeEditor:
			return m.updateEditorMode(msg)
		case ModeDraft:
			return m.updateDraftMode(msg)
		case ModeCreate:
			return m.updateCreateMode(msg)
		default:
			return m.updateTableMode(msg)
		}
	}

	return m, nil
}

// setLists stores freshly fetched lists and re-bases clean editors on them.
func (m *ListTableModel) setLists(lists []shopping.List) {
	m.Lists = lists
	if m.Cursor >= len(lists) {
		m.Cursor = max(len(lists)-1, 0)
	}
	for _, l := range lists {
		if v, ok := m.editors[l.ID]; ok {
			v.rebase(l)
		}
	}
}

// reload clears fetch state and issues both fetches again.
func (m ListTableModel) reload() (ListTableModel, tea.Cmd) {
	if inv, ok := m.Service.(interface{ InvalidateCache() }); ok {
		inv.InvalidateCache()
	}
	m.listsLoading = true
	m.providersLoading = true
	m.listsErr = nil
	m.providersErr = nil
	m.Status = ""
	return m, m.Init()
}

// refreshLists re-fetches lists after a successful write.
func (m ListTableModel) refreshLists() tea.Cmd {
	return loadListsCmd(m.Service)
}

// currentList returns the list under the cursor.
func (m ListTableModel) currentList() (shopping.List, bool) {
	if !m.Ready() || m.Cursor < 0 || m.Cursor >= len(m.Lists) {
		return shopping.List{}, false
	}
	return m.Lists[m.Cursor], true
}

func (m ListTableModel) listByName(name string) (shopping.List, bool) {
	for _, l := range m.Lists {
		if l.Name == name {
			return l, true
		}
	}
	return shopping.List{}, false
}

func (m ListTableModel) listByID(id int) (shopping.List, bool) {
	for _, l := range m.Lists {
		if l.ID == id {
			return l, true
		}
	}
	return shopping.List{}, false
}

// editorFor returns the editor of list, creating it on first use.
func (m *ListTableModel) editorFor(list shopping.List) *itemEditorView {
	v, ok := m.editors[list.ID]
	if !ok {
		v = newItemEditorView(list, m.Tracker)
		m.editors[list.ID] = v
	}
	return v
}

// ToggleExpanded flips the expansion of the named list. Every list carrying
// the name gets an editor.
func (m *ListTableModel) ToggleExpanded(name string) bool {
	expanded := m.Expanded.Toggle(name)
	if expanded {
		for _, l := range m.Lists {
			if l.Name == name {
				m.editorFor(l)
			}
		}
	}
	return expanded
}

func (m ListTableModel) updateAlert(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", " ":
		m.Alert = nil
	}
	return m, nil
}

func (m ListTableModel) updateTableMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Back):
		m.BackRequested = true
		return m, nil

	case key.Matches(msg, m.Keys.Reload):
		if m.Loading() {
			return m, nil
		}
		return m.reload()

	case key.Matches(msg, m.Keys.New):
		m.OpenCreate()
		return m, nil
	}

	if !m.Ready() || len(m.Lists) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.Keys.Up):
		m.Cursor = (m.Cursor - 1 + len(m.Lists)) % len(m.Lists)

	case key.Matches(msg, m.Keys.Down):
		m.Cursor = (m.Cursor + 1) % len(m.Lists)

	case key.Matches(msg, m.Keys.Toggle):
		list, _ := m.currentList()
		m.ToggleExpanded(list.Name)

	case key.Matches(msg, m.Keys.Edit):
		list, _ := m.currentList()
		m.Expanded.Expand(list.Name)
		m.editorFor(list).syncInput()
		m.active = list.ID
		m.Mode = ModeEditor
		m.Status = ""

	case key.Matches(msg, m.Keys.Purchase):
		list, _ := m.currentList()
		m.openWizard(list)
	}

	return m, nil
}

func (m ListTableModel) updateEditorMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v, ok := m.editors[m.active]
	if !ok {
		m.Mode = ModeTable
		return m, nil
	}

	switch {
	case key.Matches(msg, m.EditorKeys.Done):
		m.Mode = ModeTable
		return m, nil

	case key.Matches(msg, m.EditorKeys.Up):
		v.moveCursor(-1)
		return m, nil

	case key.Matches(msg, m.EditorKeys.Down):
		v.moveCursor(1)
		return m, nil

	case key.Matches(msg, m.EditorKeys.Purchase):
		if list, ok := m.listByID(m.active); ok {
			m.openWizard(list)
		}
		return m, nil
	}

	// The draft is frozen until the in-flight save reports back.
	if v.saving {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.EditorKeys.Remove):
		v.removeFocused()
		return m, nil

	case key.Matches(msg, m.EditorKeys.Add):
		v.beginAppend()
		m.Mode = ModeDraft
		return m, nil

	case key.Matches(msg, m.EditorKeys.Save):
		return m.save(v)
	}

	return m, v.typeAmount(msg)
}

// save validates the editor and submits the update. Nothing is sent while
// any visible amount is invalid.
func (m ListTableModel) save(v *itemEditorView) (tea.Model, tea.Cmd) {
	if v.saving {
		return m, nil
	}

	update, err := v.ed.PrepareSave()
	switch {
	case errors.Is(err, editor.ErrOutstandingErrors):
		m.Alert = &Alert{Kind: AlertWarning, Title: MsgOutstandingErrors}
		return m, nil
	case errors.Is(err, editor.ErrAppendInProgress):
		m.Alert = &Alert{Kind: AlertWarning, Title: MsgFinishDraft}
		return m, nil
	case err != nil:
		m.Alert = errorAlert("Unable to save "+v.ed.Name(), err)
		return m, nil
	}

	v.saving = true
	m.Status = "Saving " + v.ed.Name() + "..."
	logging.Debug("Saving list", zap.Int("id", update.ID), zap.Int("items", len(update.Items)))
	return m, saveListCmd(m.Service, v.ed.Name(), update)
}

func (m ListTableModel) updateDraftMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v, ok := m.editors[m.active]
	if !ok {
		m.Mode = ModeTable
		return m, nil
	}

	switch {
	case key.Matches(msg, m.DraftKeys.Cancel):
		v.cancelDraft()
		m.Mode = ModeEditor
		return m, nil

	case key.Matches(msg, m.DraftKeys.Switch):
		v.switchDraftField()
		return m, nil

	case key.Matches(msg, m.DraftKeys.Confirm):
		if text, ok := v.confirmDraft(); !ok {
			m.Alert = &Alert{Kind: AlertWarning, Title: text}
			return m, nil
		}
		m.Mode = ModeEditor
		return m, nil
	}

	return m, v.typeDraft(msg)
}

func (m ListTableModel) updateCreateMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.CreateKeys.Cancel):
		m.createInput.Blur()
		m.Mode = ModeTable
		return m, nil

	case key.Matches(msg, m.CreateKeys.Confirm):
		name := strings.TrimSpace(m.createInput.Value())
		if name == "" {
			m.Alert = &Alert{Kind: AlertWarning, Title: "A ShoppingList needs a name"}
			return m, nil
		}
		if _, exists := m.listByName(name); exists {
			m.Alert = &Alert{Kind: AlertWarning, Title: fmt.Sprintf("A ShoppingList named %q already exists", name)}
			return m, nil
		}
		m.createInput.Blur()
		m.Mode = ModeTable
		m.Status = "Creating " + name + "..."
		return m, createListCmd(m.Service, name)
	}

	var cmd tea.Cmd
	m.createInput, cmd = m.createInput.Update(msg)
	return m, cmd
}

// openWizard starts a purchase of list with the fetched providers. The
// wizard sees the saved list, not the editor's draft.
func (m *ListTableModel) openWizard(list shopping.List) {
	m.wizard = newWizardView(list, m.Providers)
	if v, ok := m.editors[list.ID]; ok && v.ed.Dirty() {
		m.wizard.unsaved = true
	}
}

// Wizard returns the open purchase wizard, or nil.
func (m ListTableModel) Wizard() *purchase.Wizard {
	if m.wizard == nil {
		return nil
	}
	return m.wizard.w
}

func (m ListTableModel) updateWizard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := m.wizard

	switch {
	case key.Matches(msg, m.WizardKeys.Cancel):
		m.wizard = nil

	case key.Matches(msg, m.WizardKeys.Up):
		v.moveCursor(-1)

	case key.Matches(msg, m.WizardKeys.Down):
		v.moveCursor(1)

	case key.Matches(msg, m.WizardKeys.Select):
		v.selectCursor()

	case key.Matches(msg, m.WizardKeys.Back):
		v.w.Back()

	case v.w.IsLast() && key.Matches(msg, m.WizardKeys.Confirm):
		return m.confirmPurchase()

	case key.Matches(msg, m.WizardKeys.Next):
		v.w.Next()
	}

	return m, nil
}

// confirmPurchase closes the wizard and submits the purchase. Without a
// provider the wizard stays open behind an alert.
func (m ListTableModel) confirmPurchase() (tea.Model, tea.Cmd) {
	req, err := m.wizard.w.Confirm()
	if errors.Is(err, purchase.ErrNoProvider) {
		m.Alert = &Alert{Kind: AlertWarning, Title: MsgNoProvider}
		return m, nil
	}
	if err != nil {
		m.Alert = errorAlert("Unable to purchase", err)
		return m, nil
	}

	listName := m.wizard.w.List().Name
	m.wizard = nil
	m.Tracker.Track(analytics.EventMakePurchase, analytics.Payload{
		"listId":     req.ListID,
		"providerId": req.ProviderID,
	})
	m.Status = "Purchasing " + listName + "..."
	return m, purchaseCmd(m.Service, listName, req)
}

func (m ListTableModel) handleSaveComplete(msg saveCompleteMsg) (tea.Model, tea.Cmd) {
	v, ok := m.editors[msg.update.ID]
	if ok {
		v.saving = false
	}

	if !msg.result.OK() {
		logging.Warn("Save failed", zap.String("list", msg.name), zap.Error(msg.result.Err))
		m.Status = ""
		m.Alert = errorAlert("Failed to save "+msg.name, msg.result.Err)
		return m, nil
	}

	if ok {
		if err := v.commit(msg.update); err != nil {
			logging.Warn("Commit failed", zap.String("list", msg.name), zap.Error(err))
		}
	}
	for i := range m.Lists {
		if m.Lists[i].ID == msg.update.ID {
			m.Lists[i].Items = append([]shopping.Item{}, msg.update.Items...)
		}
	}
	m.Status = fmt.Sprintf("Saved %s (%s)", msg.name, msg.result.Duration.Round(time.Millisecond))
	return m, m.refreshLists()
}

func (m ListTableModel) handlePurchaseComplete(msg purchaseCompleteMsg) (tea.Model, tea.Cmd) {
	m.Status = ""
	if !msg.result.OK() {
		logging.Warn("Purchase failed", zap.String("list", msg.listName), zap.Error(msg.result.Err))
		m.Alert = errorAlert("Purchase of "+msg.listName+" failed", msg.result.Err)
		return m, nil
	}

	m.Alert = &Alert{
		Kind:    AlertSuccess,
		Title:   MsgPurchaseProcessing,
		Message: fmt.Sprintf("%s via %s", msg.listName, m.index.DisplayName(msg.request.ProviderID)),
	}
	return m, m.refreshLists()
}

func (m ListTableModel) handleCreateComplete(msg createCompleteMsg) (tea.Model, tea.Cmd) {
	m.Status = ""
	if !msg.result.OK() {
		m.Alert = errorAlert("Failed to create list", msg.result.Err)
		return m, nil
	}

	m.Lists = append(m.Lists, msg.list)
	m.Cursor = len(m.Lists) - 1
	m.Status = "Created " + msg.list.Name
	return m, m.refreshLists()
}

// View renders the table, or an overlay when the wizard or an alert is open.
func (m ListTableModel) View() string {
	if m.Alert != nil {
		return RenderModal(m.Alert.Render(m.Width), m.Width, m.Height)
	}
	if m.wizard != nil {
		return RenderModal(m.wizard.view(m.Width), m.Width, m.Height)
	}
	return RenderApplicationContainer(m.buildContent(), m.helpView(), m.Width, m.Height)
}

func (m ListTableModel) helpView() string {
	switch m.Mode {
	case ModeEditor:
		return m.Help.View(m.EditorKeys)
	case ModeDraft:
		return m.Help.View(m.DraftKeys)
	case ModeCreate:
		return m.Help.View(m.CreateKeys)
	default:
		return m.Help.View(m.Keys)
	}
}

func (m ListTableModel) buildContent() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Your ShoppingLists"))
	b.WriteString("\n")

	switch {
	case m.Loading():
		b.WriteString(fmt.Sprintf("%s Loading lists and providers...\n", m.Spinner.View()))
		return b.String()

	case m.Err() != nil:
		b.WriteString(InlineErrorStyle.Render("Failed to load: " + api.ShortMessage(m.Err())))
		b.WriteString("\n\nPress r to reload.\n")
		return b.String()
	}

	b.WriteString(ColumnHeaderStyle.Render(formatRow("  ", "Name", "Number of Items", "Updated At", "Last Purchase")))
	b.WriteString("\n")

	if len(m.Lists) == 0 {
		b.WriteString(SubtitleStyle.Render("  No lists yet. Press n to create one."))
		b.WriteString("\n")
	}

	for i, l := range m.Lists {
		marker := "▸ "
		if m.Expanded.Has(l.Name) {
			marker = "▾ "
		}
		line := formatRow(marker, l.Name, fmt.Sprintf("%d", len(l.Items)), l.UpdatedAt, m.index.DescribeLastPurchase(l))
		if i == m.Cursor {
			line = SelectedRowStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")

		if m.Expanded.Has(l.Name) {
			if v, ok := m.editors[l.ID]; ok {
				focused := m.active == l.ID && (m.Mode == ModeEditor || m.Mode == ModeDraft)
				b.WriteString(v.view(focused, m.Width))
				b.WriteString("\n")
			}
		}
	}

	if m.Mode == ModeCreate {
		b.WriteString("\nNew ShoppingList: ")
		b.WriteString(m.createInput.View())
		b.WriteString("\n")
	}

	if m.Status != "" {
		b.WriteString("\n")
		b.WriteString(SubtitleStyle.Render(m.Status))
		b.WriteString("\n")
	}

	return b.String()
}

func formatRow(marker, name, items, updated, last string) string {
	return fmt.Sprintf("%s%-*s %-*s %-*s %s",
		marker,
		colName, truncate(name, colName),
		colItems, items,
		colUpdated, truncate(updated, colUpdated),
		last,
	)
}
