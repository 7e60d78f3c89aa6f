package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/farisp123/form-app/internal/contact"
	"github.com/farisp123/form-app/internal/engine"
)

// Scenario defines a sequence of user intents and the state they must
// leave behind.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Seed records are saved to the store before the engine starts.
	Seed []contact.Record `yaml:"seed,omitempty"`

	// Confirm holds scripted answers to confirmation prompts.
	Confirm []bool `yaml:"confirm,omitempty"`

	// DiscardInvalidEdit runs the engine with the silent-reset policy.
	DiscardInvalidEdit bool `yaml:"discard_invalid_edit,omitempty"`

	// Steps are executed in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final state.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one user intent.
type Step struct {
	Action string `yaml:"action"`
	Index  *int   `yaml:"index,omitempty"`
	Field  string `yaml:"field,omitempty"`
	Value  string `yaml:"value,omitempty"`
	ID     string `yaml:"id,omitempty"`

	// Expect validates the step's outcome. If nil, the step only has to
	// complete without error.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect describes a step outcome. Only the members that are set are checked.
type Expect struct {
	Accepted *bool    `yaml:"accepted,omitempty"`
	Removed  *bool    `yaml:"removed,omitempty"`
	Deleted  *bool    `yaml:"deleted,omitempty"`
	Saved    []string `yaml:"saved,omitempty"`
	Dropped  []string `yaml:"dropped,omitempty"`

	// Error is a substring the step's error must contain.
	Error string `yaml:"error,omitempty"`
}

// Assertion validates the final state.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Record holds the expected fields (store_contains, view_contains).
	// Subset match: only non-empty fields are compared.
	Record contact.Record `yaml:"record,omitempty"`

	// ID names the record for store_missing.
	ID string `yaml:"id,omitempty"`

	// Count is the expected size (store_count, view_count, session_count).
	Count int `yaml:"count,omitempty"`

	// Mode is the expected mode name (mode).
	Mode string `yaml:"mode,omitempty"`
}

// Action names.
const (
	ActionUpdateField      = "update_field"
	ActionAddDraft         = "add_draft"
	ActionRemoveDraft      = "remove_draft"
	ActionSubmitAll        = "submit_all"
	ActionBeginEdit        = "begin_edit"
	ActionDeleteRecord     = "delete_record"
	ActionSetQuery         = "set_query"
	ActionShow             = "show"
	ActionCancel           = "cancel"
	ActionToggleVisibility = "toggle_visibility"
)

// Assertion type constants.
const (
	AssertStoreContains = "store_contains"
	AssertStoreMissing  = "store_missing"
	AssertStoreCount    = "store_count"
	AssertViewContains  = "view_contains"
	AssertViewCount     = "view_count"
	AssertSessionCount  = "session_count"
	AssertMode          = "mode"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, rec := range s.Seed {
		if rec.ID == "" {
			return fmt.Errorf("seed[%d]: id is required", i)
		}
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateStep validates a single step based on its action.
func validateStep(index int, s *Step) error {
	switch s.Action {
	case "":
		return fmt.Errorf("steps[%d]: action is required", index)
	case ActionUpdateField:
		if s.Index == nil {
			return fmt.Errorf("steps[%d]: index is required for update_field", index)
		}
		if _, err := contact.ParseField(s.Field); err != nil {
			return fmt.Errorf("steps[%d]: %w", index, err)
		}
	case ActionRemoveDraft:
		if s.Index == nil {
			return fmt.Errorf("steps[%d]: index is required for remove_draft", index)
		}
	case ActionBeginEdit, ActionDeleteRecord:
		if s.ID == "" {
			return fmt.Errorf("steps[%d]: id is required for %s", index, s.Action)
		}
	case ActionAddDraft, ActionSubmitAll, ActionSetQuery, ActionShow, ActionCancel, ActionToggleVisibility:
	default:
		return fmt.Errorf("steps[%d]: unknown action %q", index, s.Action)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertStoreContains, AssertViewContains:
		if a.Record == (contact.Record{}) {
			return fmt.Errorf("assertions[%d]: record is required for %s", index, a.Type)
		}
	case AssertStoreMissing:
		if a.ID == "" {
			return fmt.Errorf("assertions[%d]: id is required for store_missing", index)
		}
	case AssertStoreCount, AssertViewCount, AssertSessionCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
	case AssertMode:
		if _, ok := engine.ParseMode(a.Mode); !ok {
			return fmt.Errorf("assertions[%d]: unknown mode %q", index, a.Mode)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
