package view

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/farisp123/form-app/internal/contact"
)

// Predicate is a compiled boolean expression over a record's fields,
// e.g. `city == "NYC" && phone startsWith "555"`.
//
// The expression sees the variables id, name, phone, city and email.
type Predicate struct {
	source  string
	program *vm.Program
}

func recordEnv(r contact.Record) map[string]any {
	return map[string]any{
		"id":    r.ID,
		"name":  r.Name,
		"phone": r.Phone,
		"city":  r.City,
		"email": r.Email,
	}
}

// Compile parses and type-checks src. Expressions that do not yield a
// bool, or that reference unknown variables, fail here rather than at match
// time.
func Compile(src string) (*Predicate, error) {
	program, err := expr.Compile(src, expr.Env(recordEnv(contact.Record{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile predicate %q: %w", src, err)
	}
	return &Predicate{source: src, program: program}, nil
}

// String returns the source expression.
func (p *Predicate) String() string {
	return p.source
}

// Match evaluates the predicate against r.
func (p *Predicate) Match(r contact.Record) (bool, error) {
	out, err := expr.Run(p.program, recordEnv(r))
	if err != nil {
		return false, fmt.Errorf("evaluate predicate %q on %s: %w", p.source, r.ID, err)
	}
	ok, _ := out.(bool)
	return ok, nil
}

// Where returns the records matching p. A nil predicate matches all.
func Where(records []contact.Record, p *Predicate) ([]contact.Record, error) {
	out := make([]contact.Record, 0, len(records))
	for _, r := range records {
		if p == nil {
			out = append(out, r)
			continue
		}
		ok, err := p.Match(r)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, r)
		}
	}
	return out, nil
}
