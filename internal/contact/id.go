package contact

import "github.com/google/uuid"

// IDGenerator produces unique record identifiers.
type IDGenerator interface {
	Generate() string
}

// IDGeneratorFunc adapts a plain function to IDGenerator.
type IDGeneratorFunc func() string

// Generate calls f.
func (f IDGeneratorFunc) Generate() string {
	return f()
}

// UUIDGenerator generates time-sortable UUIDv7 identifiers, so records
// created later also sort later when a backend orders by key.
//
// UUIDGenerator is stateless and safe for concurrent use.
type UUIDGenerator struct{}

// Generate returns a new hyphenated UUIDv7.
//
// Panics if the random source fails, which uuid.NewV7 only does when the
// system entropy source is broken.
func (UUIDGenerator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
