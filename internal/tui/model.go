// Package tui is the interactive front end: a Bubbletea program that
// renders the synchronizer's state and turns key presses into intents.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/farisp123/form-app/internal/contact"
	"github.com/farisp123/form-app/internal/engine"
	"github.com/farisp123/form-app/internal/session"
)

// focus selects which panel receives navigation keys.
type focus int

const (
	focusRecords focus = iota
	focusForm
)

// pendingConfirm is a yes/no modal waiting for an answer.
type pendingConfirm struct {
	prompt string
	run    func(session.Confirmer) (bool, error)
	done   string // status shown when the action went through
}

// Model is the Bubbletea model for the contact manager.
type Model struct {
	ctx context.Context
	eng *engine.Engine

	focus focus
	row   int // cursor in the filtered view
	draft int // cursor in the session
	field int // index into contact.Fields()

	editing bool
	input   textinput.Model

	searching bool
	search    textinput.Model

	confirm *pendingConfirm

	width    int
	height   int
	status   string
	errorMsg string
	quitting bool
}

// New creates a model driving eng.
func New(ctx context.Context, eng *engine.Engine) Model {
	input := textinput.New()
	input.Prompt = ""
	input.Width = 30

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search name, phone or city"
	search.Width = 30

	return Model{
		ctx:    ctx,
		eng:    eng,
		input:  input,
		search: search,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

		// Clear messages on any key
		m.status = ""
		m.errorMsg = ""

		switch {
		case m.confirm != nil:
			return m.handleConfirmKeypress(msg)
		case m.editing:
			return m.handleEditingKeypress(msg)
		case m.searching:
			return m.handleSearchKeypress(msg)
		case m.focus == focusForm && m.eng.Visible():
			return m.handleFormKeypress(msg)
		default:
			return m.handleRecordsKeypress(msg)
		}
	}

	return m, nil
}

func (m Model) handleRecordsKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.eng.Filtered()

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.row > 0 {
			m.row--
		}

	case "down", "j":
		if m.row < len(rows)-1 {
			m.row++
		}

	case "/":
		m.searching = true
		m.search.SetValue(m.eng.Query())
		m.search.CursorEnd()
		return m, m.search.Focus()

	case "f":
		m.eng.ToggleVisibility()
		if m.eng.Visible() {
			m.focus = focusForm
		}

	case "tab":
		if m.eng.Visible() {
			m.focus = focusForm
		}

	case "e", "enter":
		if len(rows) == 0 {
			return m, nil
		}
		id := rows[m.row].ID
		if err := m.eng.BeginEdit(m.ctx, id); err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		m.eng.Show()
		m.focus = focusForm
		m.draft, m.field = 0, 0
		m.status = "Editing " + id

	case "d":
		if len(rows) == 0 {
			return m, nil
		}
		id := rows[m.row].ID
		m.confirm = &pendingConfirm{
			prompt: engine.DeleteRecordPrompt,
			run: func(c session.Confirmer) (bool, error) {
				return m.eng.DeleteStoredRecord(m.ctx, id, c)
			},
			done: "Deleted " + id,
		}
	}

	return m, nil
}

func (m Model) handleFormKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	fields := contact.Fields()

	switch msg.String() {
	case "esc":
		m.eng.Cancel()
		m.focus = focusRecords

	case "tab":
		m.focus = focusRecords

	case "up", "k":
		if m.field > 0 {
			m.field--
		} else if m.draft > 0 {
			m.draft--
			m.field = len(fields) - 1
		}

	case "down", "j":
		if m.field < len(fields)-1 {
			m.field++
		} else if m.draft < m.eng.Session().Len()-1 {
			m.draft++
			m.field = 0
		}

	case "enter":
		d, err := m.eng.Session().Draft(m.draft)
		if err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		m.editing = true
		m.input.SetValue(d.Get(fields[m.field]))
		m.input.CursorEnd()
		return m, m.input.Focus()

	case "a":
		d := m.eng.AddDraft()
		m.draft = m.eng.Session().Len() - 1
		m.field = 0
		m.status = "Added " + d.ID

	case "x":
		if m.eng.Session().Len() == 1 {
			m.errorMsg = session.ErrLastDraft.Error()
			return m, nil
		}
		index := m.draft
		m.confirm = &pendingConfirm{
			prompt: session.RemoveDraftPrompt,
			run: func(c session.Confirmer) (bool, error) {
				return m.eng.RemoveDraft(index, c)
			},
			done: "Draft removed",
		}

	case "s":
		res, err := m.eng.SubmitAll(m.ctx)
		if err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("Saved %d, dropped %d", len(res.Saved), len(res.Dropped))
		m.draft, m.field = 0, 0
		m.clampRow()
	}

	return m, nil
}

// handleEditingKeypress applies every keystroke to the draft immediately,
// so input limits reject characters as they are typed.
func (m Model) handleEditingKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.editing = false
		m.input.Blur()
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	after := m.input.Value()
	if after == before {
		return m, cmd
	}

	field := contact.Fields()[m.field]
	accepted, err := m.eng.UpdateField(m.draft, field, after)
	switch {
	case err != nil:
		m.errorMsg = err.Error()
		m.input.SetValue(before)
	case !accepted:
		m.errorMsg = m.eng.Session().Limits().Reason(field)
		m.input.SetValue(before)
	}
	return m, cmd
}

func (m Model) handleSearchKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.eng.SetQuery("")
		m.clampRow()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.eng.SetQuery(m.search.Value())
	m.clampRow()
	return m, cmd
}

func (m Model) handleConfirmKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pending := m.confirm

	switch msg.String() {
	case "y", "Y", "enter":
		m.confirm = nil
		ok, err := pending.run(session.ConfirmFunc(func(string) bool { return true }))
		switch {
		case err != nil:
			m.errorMsg = err.Error()
		case ok:
			m.status = pending.done
		}
		m.clampRow()
		m.clampDraft()
		if m.eng.Mode() == engine.Composing && !m.eng.Visible() {
			m.focus = focusRecords
		}

	case "n", "N", "esc":
		m.confirm = nil
	}

	return m, nil
}

func (m *Model) clampRow() {
	n := len(m.eng.Filtered())
	if m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

func (m *Model) clampDraft() {
	if n := m.eng.Session().Len(); m.draft >= n {
		m.draft = n - 1
		m.field = 0
	}
}
