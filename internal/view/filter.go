// Package view derives the Record View shown to the user from committed
// records. Nothing here mutates records; every function returns a new slice
// in store enumeration order.
package view

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/farisp123/form-app/internal/contact"
)

// Filter returns the records whose name or city contains query ignoring
// case, or whose phone contains query literally. Both sides are lowercased
// with Unicode rules; full case folding is not applied, so "ss" does not
// match "ß".
// An empty query matches every record. Email is not searched.
func Filter(records []contact.Record, query string) []contact.Record {
	out := make([]contact.Record, 0, len(records))
	if query == "" {
		return append(out, records...)
	}

	lower := cases.Lower(language.Und)
	needle := lower.String(query)
	for _, r := range records {
		if matches(lower, r, query, needle) {
			out = append(out, r)
		}
	}
	return out
}

// Matches reports whether a single record passes Filter for query.
func Matches(r contact.Record, query string) bool {
	if query == "" {
		return true
	}
	lower := cases.Lower(language.Und)
	return matches(lower, r, query, lower.String(query))
}

func matches(lower cases.Caser, r contact.Record, query, needle string) bool {
	return strings.Contains(lower.String(r.Name), needle) ||
		strings.Contains(r.Phone, query) ||
		strings.Contains(lower.String(r.City), needle)
}

// Find returns the record with the given id.
func Find(records []contact.Record, id string) (contact.Record, bool) {
	for _, r := range records {
		if r.ID == id {
			return r, true
		}
	}
	return contact.Record{}, false
}

// Without returns records minus the one with the given id.
func Without(records []contact.Record, id string) []contact.Record {
	out := make([]contact.Record, 0, len(records))
	for _, r := range records {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}
