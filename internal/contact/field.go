package contact

import (
	"errors"
	"fmt"
	"strings"
)

// Field names one of the user-editable members of a Record.
type Field string

const (
	FieldName  Field = "name"
	FieldPhone Field = "phone"
	FieldCity  Field = "city"
	FieldEmail Field = "email"
)

// ErrUnknownField is returned by ParseField for names outside Fields().
var ErrUnknownField = errors.New("unknown field")

// Fields returns the editable fields in form order.
func Fields() []Field {
	return []Field{FieldName, FieldPhone, FieldCity, FieldEmail}
}

// ParseField maps a case-insensitive field name to a Field.
func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Fields() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// Label returns the column heading used by renderers.
func (f Field) Label() string {
	switch f {
	case FieldName:
		return "Name"
	case FieldPhone:
		return "Phone"
	case FieldCity:
		return "City"
	case FieldEmail:
		return "Email"
	default:
		return string(f)
	}
}
