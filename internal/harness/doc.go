// Package harness runs contact-form scenarios against the record
// synchronizer and checks the resulting store, view and session.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	seed:
//	  - { id: rec-1, name: Ann, phone: "1234567890", city: NYC, email: a@x.com }
//	confirm: [true, false]
//	steps:
//	  - action: update_field
//	    index: 0
//	    field: name
//	    value: Annie
//	    expect: { accepted: true }
//	  - action: submit_all
//	    expect: { saved: [draft-1], dropped: [] }
//	assertions:
//	  - type: store_contains
//	    record: { id: rec-1, name: Annie }
//	  - type: store_count
//	    count: 1
//
// Seed records are written to the store before the engine loads its view.
// Confirm scripts the answers to confirmation prompts, in order; once it
// is exhausted every prompt is declined.
//
// # Actions
//
//   - update_field: index, field, value
//   - add_draft
//   - remove_draft: index
//   - submit_all
//   - begin_edit: id
//   - delete_record: id
//   - set_query: value
//   - show, cancel, toggle_visibility
//
// # Assertion Types
//
//   - store_contains: a stored record matches every field given in record
//   - store_missing: no stored record has the given id
//   - store_count: the store holds exactly count records
//   - view_contains: the filtered view has a record matching record
//   - view_count: the filtered view has exactly count rows
//   - session_count: the session holds exactly count drafts
//   - mode: the synchronizer is in the given mode
//
// # Deterministic Testing
//
// Every scenario runs against a fresh in-memory store with draft ids
// "draft-1", "draft-2", ... so traces and final state can be compared
// against golden files.
package harness
