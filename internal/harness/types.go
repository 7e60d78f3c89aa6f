package harness

import (
	"github.com/farisp123/form-app/internal/contact"
	"github.com/farisp123/form-app/internal/engine"
)

// TraceEvent records one executed step.
type TraceEvent struct {
	Seq     int            `json:"seq"`
	Action  string         `json:"action"`
	Args    map[string]any `json:"args,omitempty"`
	Outcome map[string]any `json:"outcome,omitempty"`
	Error   string         `json:"error,omitempty"`
	Mode    string         `json:"mode"` // mode after the step
}

// FinalState is the observable state after the last step.
type FinalState struct {
	Mode    string           `json:"mode"`
	Query   string           `json:"query"`
	Visible bool             `json:"visible"`
	Drafts  []contact.Record `json:"drafts"`
	View    []contact.Record `json:"view"`
	Store   []contact.Record `json:"store"`
	Prompts []string         `json:"prompts"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every step expectation and assertion held.
	Pass bool `json:"pass"`

	// Trace contains the executed steps in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// State is the final state assertions run against.
	State FinalState `json:"state"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// captureState copies the engine's observable state.
func captureState(s engine.State, stored []contact.Record, prompts []string) FinalState {
	fs := FinalState{
		Mode:    s.Mode.String(),
		Query:   s.Query,
		Visible: s.Visible,
		Drafts:  s.Drafts,
		View:    s.View,
		Store:   stored,
		Prompts: prompts,
	}
	if fs.Prompts == nil {
		fs.Prompts = []string{}
	}
	return fs
}
