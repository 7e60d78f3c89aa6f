package engine

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/farisp123/form-app/internal/contact"
	"github.com/farisp123/form-app/internal/session"
	"github.com/farisp123/form-app/internal/store"
	"github.com/farisp123/form-app/internal/view"
)

// DeleteRecordPrompt is shown before a stored record is deleted.
const DeleteRecordPrompt = "Are you sure you want to delete this entry?"

// Engine reconciles the form session against the record store and view.
type Engine struct {
	records *store.Records
	session *session.Session
	view    []contact.Record // every committed record, store order
	query   string
	mode    Mode
	visible bool

	limits             session.Limits
	discardInvalidEdit bool
}

// Option allows configuration of engine parameters.
type Option func(*Engine)

// WithLimits sets the session's input limits.
// Default: session.DefaultLimits().
func WithLimits(l session.Limits) Option {
	return func(e *Engine) {
		e.limits = l
	}
}

// WithDiscardInvalidEdit restores the silent-reset behavior for an invalid
// draft submitted in Editing mode: nothing is written and the edit is
// discarded. By default the draft is kept and a *ValidationError returned.
func WithDiscardInvalidEdit(discard bool) Option {
	return func(e *Engine) {
		e.discardInvalidEdit = discard
	}
}

// New creates an Engine over records, generating draft ids with ids, and
// loads the initial view from the store.
func New(ctx context.Context, records *store.Records, ids contact.IDGenerator, opts ...Option) (*Engine, error) {
	e := &Engine{
		records: records,
		limits:  session.DefaultLimits(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.session = session.New(ids, e.limits)

	if err := e.Reload(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

// Mode returns the current session mode.
func (e *Engine) Mode() Mode {
	return e.mode
}

// Session returns the form session. Callers must not retain drafts across
// engine operations; use Snapshot for rendering.
func (e *Engine) Session() *session.Session {
	return e.session
}

// Records returns every committed record in store order.
func (e *Engine) Records() []contact.Record {
	return slices.Clone(e.view)
}

// Filtered returns the committed records matching the current query.
func (e *Engine) Filtered() []contact.Record {
	return view.Filter(e.view, e.query)
}

// Query returns the current search query.
func (e *Engine) Query() string {
	return e.query
}

// SetQuery changes the search query. The view is re-filtered on the next read.
func (e *Engine) SetQuery(q string) {
	e.query = q
}

// Visible reports whether the form surface is shown.
func (e *Engine) Visible() bool {
	return e.visible
}

// ToggleVisibility flips the form surface. Presentation only.
func (e *Engine) ToggleVisibility() {
	e.visible = !e.visible
}

// Show reveals the form surface. Presentation only.
func (e *Engine) Show() {
	e.visible = true
}

// Cancel hides the form surface without touching the session or mode;
// showing it again resumes the same drafts.
func (e *Engine) Cancel() {
	e.visible = false
}

// Snapshot returns the state a renderer consumes.
func (e *Engine) Snapshot() State {
	return State{
		Drafts:  e.session.Drafts(),
		View:    e.Filtered(),
		Total:   len(e.view),
		Mode:    e.mode,
		Query:   e.query,
		Visible: e.visible,
	}
}

// Reload re-derives the view from the store.
func (e *Engine) Reload(ctx context.Context) error {
	records, err := e.records.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("reload view: %w", err)
	}
	e.view = records
	slog.Debug("view reloaded", "records", len(records))
	return nil
}

// AddDraft appends a blank draft. Adding a draft while editing leaves
// Editing mode: the session now describes entries to compose, although the
// seeded draft keeps its id and will still overwrite its record on submit.
func (e *Engine) AddDraft() contact.Record {
	d := e.session.AddDraft()
	if e.mode == Editing {
		slog.Info("leaving edit mode", "reason", "draft added", "draft_id", d.ID)
		e.mode = Composing
	}
	return d
}

// UpdateField sets a field on the draft at index. See session.Session.UpdateField.
func (e *Engine) UpdateField(index int, field contact.Field, value string) (bool, error) {
	return e.session.UpdateField(index, field, value)
}

// RemoveDraft removes the draft at index after confirmation.
// See session.Session.RemoveDraft.
func (e *Engine) RemoveDraft(index int, confirm session.Confirmer) (bool, error) {
	return e.session.RemoveDraft(index, confirm)
}

// IsValid reports whether the draft at index can be submitted.
func (e *Engine) IsValid(index int) bool {
	return e.session.IsValid(index)
}

// SubmitAll writes every valid draft to the store, drops the invalid ones,
// reloads the view and resets the session to one blank draft in Composing
// mode.
//
// In Editing mode an invalid draft is kept and a *ValidationError returned,
// unless the engine was built WithDiscardInvalidEdit(true).
//
// A store failure aborts the submit after the drafts already written; the
// session is left as it was so the user can retry.
func (e *Engine) SubmitAll(ctx context.Context) (SubmitResult, error) {
	drafts := e.session.Drafts()
	result := SubmitResult{Saved: []string{}, Dropped: []string{}}

	if e.mode == Editing && !e.discardInvalidEdit {
		for _, d := range drafts {
			if !d.Valid() {
				slog.Info("edit rejected", "id", d.ID, "missing", d.Missing())
				result.Dropped = append(result.Dropped, d.ID)
				return result, &ValidationError{ID: d.ID, Missing: d.Missing()}
			}
		}
	}

	for _, d := range drafts {
		if !d.Valid() {
			slog.Debug("dropping invalid draft", "id", d.ID, "missing", d.Missing())
			result.Dropped = append(result.Dropped, d.ID)
			continue
		}
		if err := e.records.Save(ctx, d); err != nil {
			return result, fmt.Errorf("submit: %w", err)
		}
		result.Saved = append(result.Saved, d.ID)
	}

	if err := e.Reload(ctx); err != nil {
		return result, fmt.Errorf("submit: %w", err)
	}

	prev := e.mode
	e.session.Reset()
	e.mode = Composing

	slog.Info("drafts submitted",
		"mode", prev.String(),
		"saved", len(result.Saved),
		"dropped", len(result.Dropped),
		"records", len(e.view),
	)
	return result, nil
}

// BeginEdit discards the current drafts and replaces them with a copy of
// the committed record id, entering Editing mode. No confirmation is asked.
func (e *Engine) BeginEdit(ctx context.Context, id string) error {
	rec, ok := view.Find(e.view, id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}

	discarded := e.session.Len()
	e.session.Replace(rec)
	e.mode = Editing

	slog.Info("editing record", "id", id, "discarded_drafts", discarded)
	return nil
}

// DeleteStoredRecord removes a committed record after confirmation and
// leaves Editing mode. It reports whether the record was deleted.
//
// A draft seeded from the deleted record is not invalidated; submitting it
// writes the record back under the same id.
func (e *Engine) DeleteStoredRecord(ctx context.Context, id string, confirm session.Confirmer) (bool, error) {
	if _, ok := view.Find(e.view, id); !ok {
		return false, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	if !confirm.Confirm(DeleteRecordPrompt) {
		slog.Debug("delete declined", "id", id)
		return false, nil
	}

	if err := e.records.Remove(ctx, id); err != nil {
		return false, fmt.Errorf("delete record: %w", err)
	}
	e.view = view.Without(e.view, id)
	e.mode = Composing

	slog.Info("record deleted", "id", id, "records", len(e.view))
	return true, nil
}
