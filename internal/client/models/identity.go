// Package models defines the data structures the client exchanges with the
// Sweet Shop backend: the authenticated identity, catalog sweets, purchases,
// and inventory logs. All of them are read-only snapshots owned by the
// backend; the client never mutates them in place.
package models

import (
	"errors"
	"fmt"
)

// ErrMissingField reports a server response that omitted a required field.
// It is wrapped with the field name; match with errors.Is.
var ErrMissingField = errors.New("required field missing")

// Identity is the authenticated user's profile as asserted by the backend at
// login time. It is replaced wholesale on login/register/logout, never
// partially mutated.
type Identity struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	IsActive  bool      `json:"is_active"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at,omitzero"`
}

// Validate rejects identities that omit required fields.
func (i *Identity) Validate() error {
	switch {
	case i.ID <= 0:
		return fmt.Errorf("identity: %w: id", ErrMissingField)
	case i.Username == "":
		return fmt.Errorf("identity: %w: username", ErrMissingField)
	case i.Email == "":
		return fmt.Errorf("identity: %w: email", ErrMissingField)
	}
	return nil
}
