// Package engine implements the record synchronizer: the state machine
// that keeps the form session, the committed record store and the record
// view consistent across add, edit, delete and submit.
//
// MODES:
//
// Composing (default): the session holds one or more drafts describing new
// entries. Editing: the session holds exactly one draft seeded from a
// stored record, sharing its id, so submitting it overwrites that record.
//
// Transitions:
//
//	Composing --SubmitAll--> Composing   valid drafts saved, view reloaded, session reset
//	Editing   --SubmitAll--> Composing   draft saved over the original, session reset
//	any       --BeginEdit--> Editing     session replaced by a copy of the selected record
//	Editing   --AddDraft---> Composing   the seeded draft stays in the session
//	any       --DeleteStoredRecord-----> Composing (drafts untouched)
//
// Visibility of the form surface is presentation state. Cancel, Show and
// ToggleVisibility never change the session or the mode.
//
// RESYNC:
//
// After every submit the view is re-derived from the store by enumerating
// all keys, not only the ones just written. This is the canonical
// resynchronization point between view and store.
//
// The engine is single-threaded: every operation runs to completion and the
// Engine is not safe for concurrent use. Confirmation prompts are synchronous
// calls on a session.Confirmer.
package engine
