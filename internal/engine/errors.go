package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/farisp123/form-app/internal/contact"
)

// ErrRecordNotFound is returned when an id does not name a record in the view.
var ErrRecordNotFound = errors.New("record not found")

// ValidationError reports a draft that could not be submitted because
// fields are missing. It is only returned for the edited draft in Editing
// mode; invalid drafts while composing are dropped silently.
type ValidationError struct {
	// ID identifies the draft (and the stored record being edited).
	ID string

	// Missing lists the empty fields in form order.
	Missing []contact.Field
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	names := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		names[i] = string(f)
	}
	return fmt.Sprintf("record %s is incomplete: missing %s", e.ID, strings.Join(names, ", "))
}

// AsValidationError returns the ValidationError err is or wraps.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
