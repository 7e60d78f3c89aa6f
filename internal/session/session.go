package session

import (
	"errors"
	"fmt"
	"slices"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/farisp123/form-app/internal/contact"
)

var (
	// ErrIndexOutOfRange is returned when a draft index does not exist.
	ErrIndexOutOfRange = errors.New("draft index out of range")

	// ErrLastDraft is returned when removing the only remaining draft.
	ErrLastDraft = errors.New("cannot remove the last draft")
)

// Limits bounds field lengths, counted in runes. Zero means unbounded.
type Limits struct {
	NameMax  int
	PhoneMax int
}

// DefaultLimits returns the form's input limits.
func DefaultLimits() Limits {
	return Limits{NameMax: 15, PhoneMax: 10}
}

// Reason describes the input constraint on field, for messages shown when
// UpdateField refuses a value.
func (l Limits) Reason(field contact.Field) string {
	switch field {
	case contact.FieldPhone:
		if l.PhoneMax > 0 {
			return fmt.Sprintf("phone takes up to %d digits", l.PhoneMax)
		}
		return "phone takes digits only"
	case contact.FieldName:
		if l.NameMax > 0 {
			return fmt.Sprintf("name takes at most %d characters", l.NameMax)
		}
	}
	return fmt.Sprintf("%s value rejected", field)
}

// Session is an ordered, never-empty sequence of drafts.
// It is not safe for concurrent use.
type Session struct {
	ids    contact.IDGenerator
	limits Limits
	drafts []contact.Record
}

// New returns a session holding one blank draft.
func New(ids contact.IDGenerator, limits Limits) *Session {
	s := &Session{ids: ids, limits: limits}
	s.Reset()
	return s
}

// Limits returns the input limits in force.
func (s *Session) Limits() Limits {
	return s.limits
}

// Len returns the number of drafts. It is always at least 1.
func (s *Session) Len() int {
	return len(s.drafts)
}

// Drafts returns a copy of the drafts in display order.
func (s *Session) Drafts() []contact.Record {
	return slices.Clone(s.drafts)
}

// Draft returns the draft at index.
func (s *Session) Draft(index int) (contact.Record, error) {
	if err := s.checkIndex(index); err != nil {
		return contact.Record{}, err
	}
	return s.drafts[index], nil
}

// AddDraft appends a blank draft with a fresh id and returns it.
func (s *Session) AddDraft() contact.Record {
	d := contact.Blank(s.ids.Generate())
	s.drafts = append(s.drafts, d)
	return d
}

// UpdateField sets field on the draft at index. It reports false, leaving
// the draft unchanged, when value breaks an input constraint.
func (s *Session) UpdateField(index int, field contact.Field, value string) (bool, error) {
	if err := s.checkIndex(index); err != nil {
		return false, err
	}

	value = norm.NFC.String(value)
	if !s.accepts(field, value) {
		return false, nil
	}

	if !s.drafts[index].Set(field, value) {
		return false, fmt.Errorf("%w: %q", contact.ErrUnknownField, field)
	}
	return true, nil
}

// accepts applies the per-field input constraints.
func (s *Session) accepts(field contact.Field, value string) bool {
	switch field {
	case contact.FieldPhone:
		if exceeds(value, s.limits.PhoneMax) {
			return false
		}
		for i := 0; i < len(value); i++ {
			if value[i] < '0' || value[i] > '9' {
				return false
			}
		}
	case contact.FieldName:
		if exceeds(value, s.limits.NameMax) {
			return false
		}
	}
	return true
}

func exceeds(value string, max int) bool {
	return max > 0 && utf8.RuneCountInString(value) > max
}

// RemoveDraft removes the draft at index after the confirmer agrees.
// The last remaining draft can never be removed; the confirmer is not
// consulted in that case. It reports whether a draft was removed.
func (s *Session) RemoveDraft(index int, confirm Confirmer) (bool, error) {
	if err := s.checkIndex(index); err != nil {
		return false, err
	}
	if len(s.drafts) == 1 {
		return false, ErrLastDraft
	}
	if !confirm.Confirm(RemoveDraftPrompt) {
		return false, nil
	}

	s.drafts = slices.Delete(s.drafts, index, index+1)
	return true, nil
}

// IsValid reports whether the draft at index has all four fields filled.
// Out-of-range indexes are not valid.
func (s *Session) IsValid(index int) bool {
	if s.checkIndex(index) != nil {
		return false
	}
	return s.drafts[index].Valid()
}

// Reset replaces every draft with a single fresh blank draft.
func (s *Session) Reset() {
	s.drafts = []contact.Record{contact.Blank(s.ids.Generate())}
}

// Replace replaces every draft with exactly one copy of rec, keeping its id.
func (s *Session) Replace(rec contact.Record) {
	s.drafts = []contact.Record{rec}
}

func (s *Session) checkIndex(index int) error {
	if index < 0 || index >= len(s.drafts) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(s.drafts))
	}
	return nil
}
