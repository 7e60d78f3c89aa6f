package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farisp123/form-app/internal/contact"
	"github.com/farisp123/form-app/internal/session"
	"github.com/farisp123/form-app/internal/store"
	"github.com/farisp123/form-app/internal/testutil"
)

func setupTestEngine(t *testing.T, seed ...contact.Record) (*Engine, *store.Records) {
	t.Helper()
	ctx := context.Background()
	records := store.NewRecords(store.NewMemory())
	for _, r := range seed {
		require.NoError(t, records.Save(ctx, r))
	}
	e, err := New(ctx, records, testutil.NewSequenceIDs("draft"))
	require.NoError(t, err)
	return e, records
}

func ann(id string) contact.Record {
	return contact.Record{ID: id, Name: "Ann", Phone: "1234567890", City: "NYC", Email: "a@x.com"}
}

func fill(t *testing.T, e *Engine, index int, r contact.Record) {
	t.Helper()
	for _, f := range contact.Fields() {
		ok, err := e.UpdateField(index, f, r.Get(f))
		require.NoError(t, err)
		require.True(t, ok, "field %s rejected", f)
	}
}

func loadAll(t *testing.T, records *store.Records) []contact.Record {
	t.Helper()
	all, err := records.LoadAll(context.Background())
	require.NoError(t, err)
	return all
}

func TestNew_InitialState(t *testing.T) {
	e, _ := setupTestEngine(t, ann("rec-1"))

	s := e.Snapshot()
	assert.Equal(t, Composing, s.Mode)
	assert.False(t, s.Visible)
	assert.Equal(t, "", s.Query)
	assert.Equal(t, 1, s.Total)
	require.Len(t, s.Drafts, 1)
	assert.Equal(t, "draft-1", s.Drafts[0].ID)
	assert.True(t, s.Drafts[0].IsBlank())
}

func TestNew_LoadError(t *testing.T) {
	records := store.NewRecords(failingKV{keysErr: errors.New("disk gone")})
	_, err := New(context.Background(), records, testutil.NewSequenceIDs(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
}

func TestSubmitAll_SingleValidDraft(t *testing.T) {
	e, records := setupTestEngine(t)
	ctx := context.Background()

	fill(t, e, 0, ann(""))
	res, err := e.SubmitAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"draft-1"}, res.Saved)
	assert.Empty(t, res.Dropped)

	stored := loadAll(t, records)
	require.Len(t, stored, 1)
	assert.Equal(t, ann("draft-1"), stored[0])

	s := e.Snapshot()
	require.Len(t, s.View, 1)
	assert.Equal(t, ann("draft-1"), s.View[0])
	require.Len(t, s.Drafts, 1)
	assert.Equal(t, "draft-2", s.Drafts[0].ID)
	assert.True(t, s.Drafts[0].IsBlank())
	assert.Equal(t, Composing, s.Mode)
}

func TestSubmitAll_DropsInvalidDrafts(t *testing.T) {
	e, records := setupTestEngine(t)
	ctx := context.Background()

	fill(t, e, 0, ann(""))
	e.AddDraft()
	incomplete := ann("")
	incomplete.City = ""
	for _, f := range []contact.Field{contact.FieldName, contact.FieldPhone, contact.FieldEmail} {
		_, err := e.UpdateField(1, f, incomplete.Get(f))
		require.NoError(t, err)
	}
	assert.False(t, e.IsValid(1))

	res, err := e.SubmitAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"draft-1"}, res.Saved)
	assert.Equal(t, []string{"draft-2"}, res.Dropped)

	stored := loadAll(t, records)
	require.Len(t, stored, 1)
	assert.Equal(t, "draft-1", stored[0].ID)

	assert.Equal(t, 1, e.Session().Len())
}

func TestSubmitAll_NeverWritesInvalid(t *testing.T) {
	e, records := setupTestEngine(t)
	ctx := context.Background()

	e.AddDraft()
	e.AddDraft()
	_, err := e.UpdateField(1, contact.FieldName, "Bob")
	require.NoError(t, err)

	res, err := e.SubmitAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, res.Saved)
	assert.Len(t, res.Dropped, 3)
	assert.Empty(t, loadAll(t, records))
	assert.Equal(t, 1, e.Session().Len())
}

func TestSubmitAll_ReloadPicksUpExternalWrites(t *testing.T) {
	e, records := setupTestEngine(t)
	ctx := context.Background()

	// written behind the engine's back
	require.NoError(t, records.Save(ctx, ann("external")))
	assert.Empty(t, e.Filtered())

	_, err := e.SubmitAll(ctx)
	require.NoError(t, err)

	view := e.Filtered()
	require.Len(t, view, 1)
	assert.Equal(t, "external", view[0].ID)
}

func TestSubmitAll_SaveFailureKeepsSession(t *testing.T) {
	ctx := context.Background()
	kv := &failingKV{Memory: store.NewMemory(), setErr: errors.New("read-only")}
	e, err := New(ctx, store.NewRecords(kv), testutil.NewSequenceIDs(""))
	require.NoError(t, err)

	fill(t, e, 0, ann(""))
	_, err = e.SubmitAll(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read-only")

	drafts := e.Session().Drafts()
	require.Len(t, drafts, 1)
	assert.Equal(t, "Ann", drafts[0].Name)
}

func TestBeginEdit_OverwritesOnSubmit(t *testing.T) {
	e, records := setupTestEngine(t, ann("rec-1"))
	ctx := context.Background()

	e.AddDraft()
	require.NoError(t, e.BeginEdit(ctx, "rec-1"))
	assert.Equal(t, Editing, e.Mode())

	drafts := e.Session().Drafts()
	require.Len(t, drafts, 1)
	assert.Equal(t, ann("rec-1"), drafts[0])

	ok, err := e.UpdateField(0, contact.FieldName, "Annie")
	require.NoError(t, err)
	require.True(t, ok)

	res, err := e.SubmitAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"rec-1"}, res.Saved)

	stored := loadAll(t, records)
	require.Len(t, stored, 1)
	assert.Equal(t, "rec-1", stored[0].ID)
	assert.Equal(t, "Annie", stored[0].Name)
	assert.Equal(t, Composing, e.Mode())
	assert.True(t, e.Session().Drafts()[0].IsBlank())
}

func TestBeginEdit_UnknownID(t *testing.T) {
	e, _ := setupTestEngine(t, ann("rec-1"))

	err := e.BeginEdit(context.Background(), "nope")
	require.ErrorIs(t, err, ErrRecordNotFound)
	assert.Equal(t, Composing, e.Mode())
}

func TestBeginEdit_ResolvesByIDNotFilteredRow(t *testing.T) {
	bob := contact.Record{ID: "rec-2", Name: "Bob", Phone: "5550000000", City: "Boston", Email: "b@x.com"}
	e, _ := setupTestEngine(t, ann("rec-1"), bob)

	e.SetQuery("bos")
	filtered := e.Filtered()
	require.Len(t, filtered, 1)

	require.NoError(t, e.BeginEdit(context.Background(), filtered[0].ID))
	assert.Equal(t, bob, e.Session().Drafts()[0])
}

func TestAsValidationError(t *testing.T) {
	cause := &ValidationError{ID: "rec-1", Missing: []contact.Field{contact.FieldEmail}}

	ve, ok := AsValidationError(fmt.Errorf("submit: %w", cause))
	require.True(t, ok)
	assert.Same(t, cause, ve)

	_, ok = AsValidationError(ErrRecordNotFound)
	assert.False(t, ok)

	_, ok = AsValidationError(nil)
	assert.False(t, ok)
}

func TestSubmitAll_InvalidEditKeepsDraft(t *testing.T) {
	e, records := setupTestEngine(t, ann("rec-1"))
	ctx := context.Background()

	require.NoError(t, e.BeginEdit(ctx, "rec-1"))
	_, err := e.UpdateField(0, contact.FieldCity, "")
	require.NoError(t, err)

	_, err = e.SubmitAll(ctx)
	require.Error(t, err)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "rec-1", ve.ID)
	assert.Equal(t, []contact.Field{contact.FieldCity}, ve.Missing)
	assert.Equal(t, "record rec-1 is incomplete: missing city", ve.Error())

	assert.Equal(t, Editing, e.Mode())
	assert.Equal(t, "", e.Session().Drafts()[0].City)

	stored := loadAll(t, records)
	require.Len(t, stored, 1)
	assert.Equal(t, "NYC", stored[0].City)
}

func TestSubmitAll_InvalidEditDiscarded(t *testing.T) {
	ctx := context.Background()
	records := store.NewRecords(store.NewMemory())
	require.NoError(t, records.Save(ctx, ann("rec-1")))

	e, err := New(ctx, records, testutil.NewSequenceIDs(""), WithDiscardInvalidEdit(true))
	require.NoError(t, err)

	require.NoError(t, e.BeginEdit(ctx, "rec-1"))
	_, err = e.UpdateField(0, contact.FieldEmail, "")
	require.NoError(t, err)

	res, err := e.SubmitAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"rec-1"}, res.Dropped)
	assert.Equal(t, Composing, e.Mode())
	assert.True(t, e.Session().Drafts()[0].IsBlank())
	assert.Equal(t, "a@x.com", loadAll(t, records)[0].Email)
}

func TestAddDraft_LeavesEditMode(t *testing.T) {
	e, records := setupTestEngine(t, ann("rec-1"))
	ctx := context.Background()

	require.NoError(t, e.BeginEdit(ctx, "rec-1"))
	d := e.AddDraft()
	assert.Equal(t, Composing, e.Mode())
	assert.Equal(t, 2, e.Session().Len())
	assert.NotEqual(t, "rec-1", d.ID)

	// the seeded draft still overwrites its record
	_, err := e.UpdateField(0, contact.FieldName, "Annie")
	require.NoError(t, err)
	_, err = e.SubmitAll(ctx)
	require.NoError(t, err)

	stored := loadAll(t, records)
	require.Len(t, stored, 1)
	assert.Equal(t, "Annie", stored[0].Name)
}

func TestRemoveDraft_LastDraftDisallowed(t *testing.T) {
	e, _ := setupTestEngine(t)
	confirm := testutil.Always()

	removed, err := e.RemoveDraft(0, confirm)
	require.ErrorIs(t, err, session.ErrLastDraft)
	assert.False(t, removed)
	assert.Empty(t, confirm.Prompts)
	assert.Equal(t, 1, e.Session().Len())
}

func TestRemoveDraft_Confirmed(t *testing.T) {
	e, _ := setupTestEngine(t)
	e.AddDraft()

	removed, err := e.RemoveDraft(0, testutil.Always())
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, "draft-2", e.Session().Drafts()[0].ID)
}

func TestDeleteStoredRecord(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		e, records := setupTestEngine(t, ann("rec-1"), ann("rec-2"))
		confirm := testutil.Always()

		deleted, err := e.DeleteStoredRecord(context.Background(), "rec-1", confirm)
		require.NoError(t, err)
		assert.True(t, deleted)
		assert.Equal(t, []string{DeleteRecordPrompt}, confirm.Prompts)

		stored := loadAll(t, records)
		require.Len(t, stored, 1)
		assert.Equal(t, "rec-2", stored[0].ID)
		require.Len(t, e.Filtered(), 1)
		assert.Equal(t, "rec-2", e.Filtered()[0].ID)
	})

	t.Run("declined", func(t *testing.T) {
		e, records := setupTestEngine(t, ann("rec-1"))

		deleted, err := e.DeleteStoredRecord(context.Background(), "rec-1", testutil.Never())
		require.NoError(t, err)
		assert.False(t, deleted)
		assert.Len(t, loadAll(t, records), 1)
		assert.Len(t, e.Filtered(), 1)
	})

	t.Run("unknown id", func(t *testing.T) {
		e, _ := setupTestEngine(t, ann("rec-1"))
		confirm := testutil.Always()

		_, err := e.DeleteStoredRecord(context.Background(), "nope", confirm)
		require.ErrorIs(t, err, ErrRecordNotFound)
		assert.Empty(t, confirm.Prompts)
	})
}

func TestDeleteStoredRecord_LeavesEditModeKeepsDraft(t *testing.T) {
	e, records := setupTestEngine(t, ann("rec-1"))
	ctx := context.Background()

	require.NoError(t, e.BeginEdit(ctx, "rec-1"))
	_, err := e.DeleteStoredRecord(ctx, "rec-1", testutil.Always())
	require.NoError(t, err)

	assert.Equal(t, Composing, e.Mode())
	assert.Equal(t, "rec-1", e.Session().Drafts()[0].ID)
	assert.Empty(t, loadAll(t, records))

	// submitting the stale draft writes the record back
	_, err = e.SubmitAll(ctx)
	require.NoError(t, err)
	assert.Len(t, loadAll(t, records), 1)
}

func TestVisibility_DoesNotTouchSession(t *testing.T) {
	e, _ := setupTestEngine(t, ann("rec-1"))
	ctx := context.Background()

	require.NoError(t, e.BeginEdit(ctx, "rec-1"))
	e.Show()
	assert.True(t, e.Visible())

	e.Cancel()
	assert.False(t, e.Visible())
	assert.Equal(t, Editing, e.Mode())
	assert.Equal(t, ann("rec-1"), e.Session().Drafts()[0])

	e.ToggleVisibility()
	assert.True(t, e.Visible())
	e.ToggleVisibility()
	assert.False(t, e.Visible())
}

func TestSetQuery_FiltersSnapshot(t *testing.T) {
	bob := contact.Record{ID: "rec-2", Name: "Bob", Phone: "5550000000", City: "Boston", Email: "b@x.com"}
	e, _ := setupTestEngine(t, ann("rec-1"), bob)

	e.SetQuery("555")
	s := e.Snapshot()
	assert.Equal(t, "555", s.Query)
	assert.Equal(t, 2, s.Total)
	require.Len(t, s.View, 1)
	assert.Equal(t, "rec-2", s.View[0].ID)

	e.SetQuery("")
	assert.Len(t, e.Filtered(), 2)
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "composing", Composing.String())
	assert.Equal(t, "editing", Editing.String())
	assert.Equal(t, "unknown", Mode(7).String())

	m, ok := ParseMode("editing")
	assert.True(t, ok)
	assert.Equal(t, Editing, m)
	_, ok = ParseMode("Editing")
	assert.False(t, ok)
}

// failingKV wraps a Memory store and injects errors.
type failingKV struct {
	*store.Memory
	keysErr error
	setErr  error
}

func (f failingKV) Keys(ctx context.Context) ([]string, error) {
	if f.keysErr != nil {
		return nil, f.keysErr
	}
	return f.Memory.Keys(ctx)
}

func (f failingKV) Set(ctx context.Context, key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.Memory.Set(ctx, key, value)
}
