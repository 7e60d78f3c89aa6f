package harness

import (
	"fmt"
	"strings"

	"github.com/farisp123/form-app/internal/contact"
)

// AssertionError is returned when an assertion fails.
// It includes the final state to help debug the failure.
type AssertionError struct {
	Type     string     // Assertion type for categorization
	Expected string     // Human-readable expected outcome
	Actual   string     // Human-readable actual outcome
	State    FinalState // Final state for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nStore (%d):\n", len(e.State.Store))
	for i, r := range e.State.Store {
		fmt.Fprintf(&buf, "  [%d] %s\n", i+1, formatRecord(r))
	}
	fmt.Fprintf(&buf, "Session (%s, %d drafts):\n", e.State.Mode, len(e.State.Drafts))
	for i, r := range e.State.Drafts {
		fmt.Fprintf(&buf, "  [%d] %s\n", i+1, formatRecord(r))
	}

	return buf.String()
}

// assertContains checks that some record in records matches want on every
// field want sets.
func assertContains(kind string, records []contact.Record, want contact.Record, state FinalState) error {
	for _, r := range records {
		if matchRecord(r, want) {
			return nil
		}
	}
	return &AssertionError{
		Type:     kind,
		Expected: "record matching " + formatRecord(want),
		Actual:   fmt.Sprintf("not found among %d records", len(records)),
		State:    state,
	}
}

func assertMissing(state FinalState, id string) error {
	for _, r := range state.Store {
		if r.ID == id {
			return &AssertionError{
				Type:     AssertStoreMissing,
				Expected: fmt.Sprintf("no record with id %s", id),
				Actual:   "found " + formatRecord(r),
				State:    state,
			}
		}
	}
	return nil
}

func assertCount(kind string, got, want int, state FinalState) error {
	if got == want {
		return nil
	}
	return &AssertionError{
		Type:     kind,
		Expected: fmt.Sprintf("%d", want),
		Actual:   fmt.Sprintf("%d", got),
		State:    state,
	}
}

func assertMode(state FinalState, want string) error {
	if state.Mode == want {
		return nil
	}
	return &AssertionError{
		Type:     AssertMode,
		Expected: want,
		Actual:   state.Mode,
		State:    state,
	}
}

// matchRecord reports whether actual equals expected on every non-empty
// field of expected (subset semantics).
func matchRecord(actual, expected contact.Record) bool {
	if expected.ID != "" && actual.ID != expected.ID {
		return false
	}
	for _, f := range contact.Fields() {
		if want := expected.Get(f); want != "" && actual.Get(f) != want {
			return false
		}
	}
	return true
}

func formatRecord(r contact.Record) string {
	var parts []string
	if r.ID != "" {
		parts = append(parts, "id="+r.ID)
	}
	for _, f := range contact.Fields() {
		if v := r.Get(f); v != "" {
			parts = append(parts, fmt.Sprintf("%s=%q", f, v))
		}
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// EvaluateAssertions evaluates all assertions against the final state.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(state FinalState, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertStoreContains:
			err = assertContains(AssertStoreContains, state.Store, assertion.Record, state)
		case AssertStoreMissing:
			err = assertMissing(state, assertion.ID)
		case AssertStoreCount:
			err = assertCount(AssertStoreCount, len(state.Store), assertion.Count, state)
		case AssertViewContains:
			err = assertContains(AssertViewContains, state.View, assertion.Record, state)
		case AssertViewCount:
			err = assertCount(AssertViewCount, len(state.View), assertion.Count, state)
		case AssertSessionCount:
			err = assertCount(AssertSessionCount, len(state.Drafts), assertion.Count, state)
		case AssertMode:
			err = assertMode(state, assertion.Mode)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
