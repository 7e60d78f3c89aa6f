package harness

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/farisp123/form-app/internal/contact"
	"github.com/farisp123/form-app/internal/engine"
	"github.com/farisp123/form-app/internal/store"
	"github.com/farisp123/form-app/internal/testutil"
)

// Harness executes scenario steps against one engine.
type Harness struct {
	records *store.Records
	engine  *engine.Engine
	confirm *testutil.ScriptedConfirmer
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh in-memory store. Step failures and
// assertion failures are reported in the result; the returned error is
// reserved for problems setting the scenario up.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	records := store.NewRecords(store.NewMemory())
	defer records.Close()

	for _, rec := range scenario.Seed {
		if err := records.Save(ctx, rec); err != nil {
			return nil, fmt.Errorf("failed to seed %s: %w", rec.ID, err)
		}
	}

	eng, err := engine.New(ctx, records, testutil.NewSequenceIDs("draft"),
		engine.WithDiscardInvalidEdit(scenario.DiscardInvalidEdit))
	if err != nil {
		return nil, fmt.Errorf("failed to start engine: %w", err)
	}

	h := &Harness{
		records: records,
		engine:  eng,
		confirm: &testutil.ScriptedConfirmer{Answers: slices.Clone(scenario.Confirm)},
	}

	result := NewResult()
	for i, step := range scenario.Steps {
		event := h.execute(ctx, step)
		event.Seq = i + 1
		result.Trace = append(result.Trace, event)

		for _, msg := range checkExpect(step, event) {
			result.AddError(fmt.Sprintf("steps[%d] %s: %s", i, step.Action, msg))
		}
	}

	stored, err := records.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read final store: %w", err)
	}
	result.State = captureState(eng.Snapshot(), stored, h.confirm.Prompts)

	for _, errMsg := range EvaluateAssertions(result.State, scenario.Assertions) {
		result.AddError(errMsg)
	}

	return result, nil
}

// execute runs one step and records what happened.
func (h *Harness) execute(ctx context.Context, step Step) TraceEvent {
	event := TraceEvent{Action: step.Action, Args: stepArgs(step)}
	outcome := map[string]any{}

	var err error
	switch step.Action {
	case ActionUpdateField:
		var f contact.Field
		f, err = contact.ParseField(step.Field)
		if err == nil {
			var accepted bool
			accepted, err = h.engine.UpdateField(*step.Index, f, step.Value)
			outcome["accepted"] = accepted
		}
	case ActionAddDraft:
		d := h.engine.AddDraft()
		outcome["id"] = d.ID
	case ActionRemoveDraft:
		var removed bool
		removed, err = h.engine.RemoveDraft(*step.Index, h.confirm)
		outcome["removed"] = removed
	case ActionSubmitAll:
		var res engine.SubmitResult
		res, err = h.engine.SubmitAll(ctx)
		outcome["saved"] = res.Saved
		outcome["dropped"] = res.Dropped
	case ActionBeginEdit:
		err = h.engine.BeginEdit(ctx, step.ID)
	case ActionDeleteRecord:
		var deleted bool
		deleted, err = h.engine.DeleteStoredRecord(ctx, step.ID, h.confirm)
		outcome["deleted"] = deleted
	case ActionSetQuery:
		h.engine.SetQuery(step.Value)
		outcome["matches"] = len(h.engine.Filtered())
	case ActionShow:
		h.engine.Show()
	case ActionCancel:
		h.engine.Cancel()
	case ActionToggleVisibility:
		h.engine.ToggleVisibility()
		outcome["visible"] = h.engine.Visible()
	default:
		err = fmt.Errorf("unknown action %q", step.Action)
	}

	if len(outcome) > 0 {
		event.Outcome = outcome
	}
	if err != nil {
		event.Error = err.Error()
	}
	event.Mode = h.engine.Mode().String()
	return event
}

// stepArgs returns the arguments a step was invoked with.
func stepArgs(step Step) map[string]any {
	args := map[string]any{}
	if step.Index != nil {
		args["index"] = *step.Index
	}
	if step.Field != "" {
		args["field"] = step.Field
	}
	if step.Action == ActionUpdateField || step.Action == ActionSetQuery {
		args["value"] = step.Value
	}
	if step.ID != "" {
		args["id"] = step.ID
	}
	if len(args) == 0 {
		return nil
	}
	return args
}

// checkExpect compares a step's outcome with its expect clause.
func checkExpect(step Step, event TraceEvent) []string {
	exp := step.Expect
	if exp == nil {
		if event.Error != "" {
			return []string{"unexpected error: " + event.Error}
		}
		return nil
	}

	var msgs []string
	switch {
	case exp.Error == "" && event.Error != "":
		msgs = append(msgs, "unexpected error: "+event.Error)
	case exp.Error != "" && event.Error == "":
		msgs = append(msgs, fmt.Sprintf("expected error containing %q, got none", exp.Error))
	case exp.Error != "" && !strings.Contains(event.Error, exp.Error):
		msgs = append(msgs, fmt.Sprintf("expected error containing %q, got %q", exp.Error, event.Error))
	}

	msgs = append(msgs, checkBool("accepted", exp.Accepted, event.Outcome)...)
	msgs = append(msgs, checkBool("removed", exp.Removed, event.Outcome)...)
	msgs = append(msgs, checkBool("deleted", exp.Deleted, event.Outcome)...)
	msgs = append(msgs, checkIDs("saved", exp.Saved, event.Outcome)...)
	msgs = append(msgs, checkIDs("dropped", exp.Dropped, event.Outcome)...)
	return msgs
}

func checkBool(key string, want *bool, outcome map[string]any) []string {
	if want == nil {
		return nil
	}
	got, ok := outcome[key].(bool)
	if !ok {
		return []string{fmt.Sprintf("%s: no such outcome", key)}
	}
	if got != *want {
		return []string{fmt.Sprintf("%s: expected %t, got %t", key, *want, got)}
	}
	return nil
}

// checkIDs compares id lists. A nil expectation is not checked; an empty
// list expects no ids.
func checkIDs(key string, want []string, outcome map[string]any) []string {
	if want == nil {
		return nil
	}
	got, ok := outcome[key].([]string)
	if !ok {
		return []string{fmt.Sprintf("%s: no such outcome", key)}
	}
	if !slices.Equal(got, want) {
		return []string{fmt.Sprintf("%s: expected %v, got %v", key, want, got)}
	}
	return nil
}
