package engine

import "github.com/farisp123/form-app/internal/contact"

// Mode is the session mode of the synchronizer.
type Mode int

const (
	// Composing means the session describes new entries.
	Composing Mode = iota
	// Editing means the session holds one draft seeded from a stored record.
	Editing
)

// String returns the lower-case mode name.
func (m Mode) String() string {
	switch m {
	case Composing:
		return "composing"
	case Editing:
		return "editing"
	default:
		return "unknown"
	}
}

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "composing":
		return Composing, true
	case "editing":
		return Editing, true
	default:
		return 0, false
	}
}

// State is the snapshot a renderer consumes.
type State struct {
	Drafts  []contact.Record
	View    []contact.Record // committed records filtered by Query
	Total   int              // committed records before filtering
	Mode    Mode
	Query   string
	Visible bool
}

// Editing reports whether the state is in Editing mode.
func (s State) Editing() bool {
	return s.Mode == Editing
}

// SubmitResult reports what a SubmitAll wrote.
type SubmitResult struct {
	Saved   []string // ids written to the store, in session order
	Dropped []string // ids of invalid drafts that were not written
}
