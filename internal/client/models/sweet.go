package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Sweet is one catalog product. Quantity is the on-hand stock reported by
// the server at fetch time; the cart holds these as immutable snapshots.
type Sweet struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Category    string          `json:"category,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	CreatedAt   Timestamp       `json:"created_at"`
	UpdatedAt   Timestamp       `json:"updated_at"`
}

// Validate rejects sweets that omit required fields or carry values the
// catalog contract forbids.
func (s *Sweet) Validate() error {
	switch {
	case s.ID <= 0:
		return fmt.Errorf("sweet: %w: id", ErrMissingField)
	case s.Name == "":
		return fmt.Errorf("sweet: %w: name", ErrMissingField)
	case s.Price.IsNegative():
		return fmt.Errorf("sweet %d: negative price", s.ID)
	case s.Quantity < 0:
		return fmt.Errorf("sweet %d: negative quantity", s.ID)
	}
	return nil
}

// SweetCreate is the payload for creating a catalog entry (admin only).
type SweetCreate struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Category    string          `json:"category,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
}

// SweetUpdate is the payload for a partial update (admin only).
// Nil fields are left unchanged by the server.
type SweetUpdate struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Quantity    *int             `json:"quantity,omitempty"`
	Category    *string          `json:"category,omitempty"`
	ImageURL    *string          `json:"image_url,omitempty"`
}
