package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farisp123/form-app/internal/contact"
	"github.com/farisp123/form-app/internal/testutil"
)

func newTestSession() *Session {
	return New(testutil.NewSequenceIDs("d"), DefaultLimits())
}

func fill(t *testing.T, s *Session, index int, name, phone, city, email string) {
	t.Helper()
	values := map[contact.Field]string{
		contact.FieldName:  name,
		contact.FieldPhone: phone,
		contact.FieldCity:  city,
		contact.FieldEmail: email,
	}
	for _, f := range contact.Fields() {
		ok, err := s.UpdateField(index, f, values[f])
		require.NoError(t, err)
		require.True(t, ok, "field %s rejected", f)
	}
}

func TestNew_StartsWithOneBlankDraft(t *testing.T) {
	s := newTestSession()

	require.Equal(t, 1, s.Len())
	d, err := s.Draft(0)
	require.NoError(t, err)
	assert.Equal(t, contact.Blank("d-1"), d)
}

func TestAddDraft_FreshIDs(t *testing.T) {
	s := newTestSession()
	a := s.AddDraft()
	b := s.AddDraft()

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, "d-2", a.ID)
	assert.Equal(t, "d-3", b.ID)
	assert.True(t, a.IsBlank())
}

func TestUpdateField(t *testing.T) {
	s := newTestSession()
	fill(t, s, 0, "Ann", "1234567890", "NYC", "a@x.com")

	d, _ := s.Draft(0)
	assert.Equal(t, contact.Record{ID: "d-1", Name: "Ann", Phone: "1234567890", City: "NYC", Email: "a@x.com"}, d)
	assert.True(t, s.IsValid(0))
}

func TestUpdateField_PhoneLengthGuard(t *testing.T) {
	s := newTestSession()
	ok, err := s.UpdateField(0, contact.FieldPhone, "12345")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.UpdateField(0, contact.FieldPhone, "12345678901")
	require.NoError(t, err)
	assert.False(t, ok)

	d, _ := s.Draft(0)
	assert.Equal(t, "12345", d.Phone)
}

func TestUpdateField_PhoneDigitsOnly(t *testing.T) {
	s := newTestSession()
	for _, v := range []string{"12a", "+1555", "12 34", "１２３"} {
		ok, err := s.UpdateField(0, contact.FieldPhone, v)
		require.NoError(t, err)
		assert.False(t, ok, "value %q should be rejected", v)
	}

	ok, err := s.UpdateField(0, contact.FieldPhone, "")
	require.NoError(t, err)
	assert.True(t, ok, "clearing the phone is allowed")
}

func TestUpdateField_NameLimit(t *testing.T) {
	s := newTestSession()

	ok, err := s.UpdateField(0, contact.FieldName, strings.Repeat("a", 15))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.UpdateField(0, contact.FieldName, strings.Repeat("b", 16))
	require.NoError(t, err)
	assert.False(t, ok)

	// Limits count runes, not bytes.
	ok, err = s.UpdateField(0, contact.FieldName, strings.Repeat("é", 15))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUpdateField_CityAndEmailUnbounded(t *testing.T) {
	s := newTestSession()
	long := strings.Repeat("x", 500)

	ok, err := s.UpdateField(0, contact.FieldCity, long)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.UpdateField(0, contact.FieldEmail, long)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUpdateField_NormalizesNFC(t *testing.T) {
	s := newTestSession()
	decomposed := "Jose\u0301"

	ok, err := s.UpdateField(0, contact.FieldName, decomposed)
	require.NoError(t, err)
	require.True(t, ok)

	d, _ := s.Draft(0)
	assert.Equal(t, "Jos\u00e9", d.Name)
}

func TestUpdateField_Errors(t *testing.T) {
	s := newTestSession()

	_, err := s.UpdateField(3, contact.FieldName, "x")
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = s.UpdateField(0, contact.Field("zip"), "x")
	assert.ErrorIs(t, err, contact.ErrUnknownField)
}

func TestUpdateField_ZeroLimitsUnbounded(t *testing.T) {
	s := New(testutil.NewSequenceIDs("d"), Limits{})
	ok, err := s.UpdateField(0, contact.FieldPhone, strings.Repeat("1", 40))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLimitsReason(t *testing.T) {
	tests := []struct {
		name   string
		limits Limits
		field  contact.Field
		want   string
	}{
		{"phone", DefaultLimits(), contact.FieldPhone, "phone takes up to 10 digits"},
		{"phone unbounded", Limits{}, contact.FieldPhone, "phone takes digits only"},
		{"name", DefaultLimits(), contact.FieldName, "name takes at most 15 characters"},
		{"name unbounded", Limits{}, contact.FieldName, "name value rejected"},
		{"city", DefaultLimits(), contact.FieldCity, "city value rejected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.limits.Reason(tt.field))
		})
	}
}

func TestRemoveDraft_LastDraftRefused(t *testing.T) {
	s := newTestSession()
	confirm := testutil.Always()

	removed, err := s.RemoveDraft(0, confirm)
	assert.ErrorIs(t, err, ErrLastDraft)
	assert.False(t, removed)
	assert.Equal(t, 1, s.Len())
	assert.Empty(t, confirm.Prompts, "no prompt for a refused removal")
}

func TestRemoveDraft_Confirmation(t *testing.T) {
	s := newTestSession()
	s.AddDraft()
	s.AddDraft()

	removed, err := s.RemoveDraft(1, testutil.Never())
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 3, s.Len())

	confirm := testutil.Always()
	removed, err = s.RemoveDraft(1, confirm)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, []string{RemoveDraftPrompt}, confirm.Prompts)

	ids := []string{}
	for _, d := range s.Drafts() {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []string{"d-1", "d-3"}, ids)
}

func TestRemoveDraft_OutOfRange(t *testing.T) {
	s := newTestSession()
	s.AddDraft()
	_, err := s.RemoveDraft(-1, testutil.Always())
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestIsValid_OutOfRange(t *testing.T) {
	assert.False(t, newTestSession().IsValid(5))
}

func TestResetAndReplace(t *testing.T) {
	s := newTestSession()
	s.AddDraft()
	s.AddDraft()

	s.Reset()
	require.Equal(t, 1, s.Len())
	d, _ := s.Draft(0)
	assert.Equal(t, "d-4", d.ID)

	rec := contact.Record{ID: "stored-1", Name: "Ann", Phone: "1", City: "NYC", Email: "a@x.com"}
	s.Replace(rec)
	require.Equal(t, 1, s.Len())
	d, _ = s.Draft(0)
	assert.Equal(t, rec, d)
}

func TestDrafts_ReturnsCopy(t *testing.T) {
	s := newTestSession()
	drafts := s.Drafts()
	drafts[0].Name = "mutated"

	d, _ := s.Draft(0)
	assert.Equal(t, "", d.Name)
}

// Every operation leaves at least one draft behind.
func TestSessionNeverEmpty(t *testing.T) {
	s := newTestSession()
	confirm := testutil.Always()

	ops := []func(){
		func() { s.AddDraft() },
		func() { _, _ = s.RemoveDraft(0, confirm) },
		func() { _, _ = s.RemoveDraft(0, confirm) },
		func() { _, _ = s.RemoveDraft(0, confirm) },
		func() { s.Reset() },
		func() { _, _ = s.RemoveDraft(0, confirm) },
		func() { s.Replace(contact.Blank("x")) },
		func() { _, _ = s.UpdateField(0, contact.FieldName, "n") },
	}
	for i, op := range ops {
		op()
		assert.GreaterOrEqual(t, s.Len(), 1, "after op %d", i)
	}
}

func TestConfirmFunc(t *testing.T) {
	var got string
	c := ConfirmFunc(func(msg string) bool { got = msg; return true })
	assert.True(t, c.Confirm("hello"))
	assert.Equal(t, "hello", got)
}
