// Package uuid provides a UUID type that can be bound from URI and
// query parameters, treating the empty string as the nil UUID.
package uuid

import (
	"github.com/google/uuid"
)

// UUID embeds google/uuid's UUID to add gin binding support.
type UUID struct {
	uuid.UUID
}

// Nil is the zero UUID.
var Nil UUID

// New returns a random UUID.
func New() UUID {
	return UUID{uuid.New()}
}

// UnmarshalParam implements gin's binding.BindUnmarshaler.
//
// An empty parameter binds to Nil so that optional query parameters
// can be told apart from unparseable ones.
func (u *UUID) UnmarshalParam(p string) error {
	if p == "" {
		*u = Nil
		return nil
	}

	parsed, err := uuid.Parse(p)
	if err != nil {
		return err
	}

	*u = UUID{parsed}
	return nil
}
