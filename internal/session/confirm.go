package session

// Confirmer is the synchronous yes/no collaborator asked before a
// destructive action.
type Confirmer interface {
	Confirm(message string) bool
}

// ConfirmFunc adapts a plain function to Confirmer.
type ConfirmFunc func(message string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(message string) bool {
	return f(message)
}

// Prompt shown before removing a draft.
const RemoveDraftPrompt = "Are you sure you want to delete this form?"
