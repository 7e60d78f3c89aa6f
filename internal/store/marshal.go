package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/farisp123/form-app/internal/contact"
)

// storedRecord is the on-disk shape of a record. The "key" member mirrors
// the store key so values written by earlier versions of the form
// application stay readable; on load the store key always wins.
type storedRecord struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	City  string `json:"city"`
	Email string `json:"email"`
	Key   string `json:"key"`
}

// decodedRecord uses pointers so that absent members can be told apart
// from empty strings.
type decodedRecord struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	City  *string `json:"city"`
	Email *string `json:"email"`
}

// errMalformed marks a stored value that cannot become a record.
var errMalformed = errors.New("malformed record")

// marshalRecord converts a record to JSON TEXT for storage.
// HTML escaping is disabled so that values round-trip byte for byte.
func marshalRecord(r contact.Record) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	err := enc.Encode(storedRecord{
		Name:  r.Name,
		Phone: r.Phone,
		City:  r.City,
		Email: r.Email,
		Key:   r.ID,
	})
	if err != nil {
		return "", fmt.Errorf("marshal record %q: %w", r.ID, err)
	}
	// Encoder adds a trailing newline, remove it
	return strings.TrimSpace(buf.String()), nil
}

// unmarshalRecord parses a stored value and tags it with key.
// Every field must be present and a string; anything else is errMalformed.
func unmarshalRecord(key, data string) (contact.Record, error) {
	var d decodedRecord
	if err := json.Unmarshal([]byte(data), &d); err != nil {
		return contact.Record{}, fmt.Errorf("%w: %v", errMalformed, err)
	}

	var missing []string
	if d.Name == nil {
		missing = append(missing, "name")
	}
	if d.Phone == nil {
		missing = append(missing, "phone")
	}
	if d.City == nil {
		missing = append(missing, "city")
	}
	if d.Email == nil {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return contact.Record{}, fmt.Errorf("%w: missing %s", errMalformed, strings.Join(missing, ", "))
	}

	return contact.Record{
		ID:    key,
		Name:  *d.Name,
		Phone: *d.Phone,
		City:  *d.City,
		Email: *d.Email,
	}, nil
}
