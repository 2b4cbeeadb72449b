// Package cart holds the in-memory shopping cart for the current run of the
// client. The cart is created once at startup and never persisted; it is
// emptied by Clear or by a completed checkout.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"sweetshop/internal/client/models"
)

// Line is one sweet plus the quantity selected for it. The sweet is the
// catalog snapshot taken when the line was added.
type Line struct {
	Sweet    models.Sweet
	Quantity int
}

// Subtotal is price × quantity for this line.
func (l Line) Subtotal() decimal.Decimal {
	return l.Sweet.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Store keeps cart lines in insertion order with at most one line per sweet
// id. Quantities are caller-supplied; clamping against on-hand stock is the
// caller's concern.
type Store struct {
	mu    sync.Mutex
	lines []Line
}

func NewStore() *Store {
	return &Store{}
}

// Add merges quantity into an existing line for the same sweet id, or
// appends a new line at the end.
func (s *Store) Add(sweet models.Sweet, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].Sweet.ID == sweet.ID {
			s.lines[i].Quantity += quantity
			return
		}
	}
	s.lines = append(s.lines, Line{Sweet: sweet, Quantity: quantity})
}

// Remove deletes the line for the given sweet id. Removing an absent id is
// a no-op.
func (s *Store) Remove(sweetID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(sweetID)
}

func (s *Store) remove(sweetID int64) {
	for i := range s.lines {
		if s.lines[i].Sweet.ID == sweetID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

// UpdateQuantity replaces the line's quantity in place, preserving its
// position. A quantity <= 0 removes the line instead.
func (s *Store) UpdateQuantity(sweetID int64, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.remove(sweetID)
		return
	}
	for i := range s.lines {
		if s.lines[i].Sweet.ID == sweetID {
			s.lines[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart. Idempotent.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}

// Items returns a copy of the lines in insertion order.
func (s *Store) Items() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]Line, len(s.lines))
	copy(items, s.lines)
	return items
}

// Len returns the number of lines (not the summed quantity).
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// Total returns Σ price × quantity over the current lines, recomputed on
// each call. Zero for an empty cart.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Count returns Σ quantity over the current lines. Zero for an empty cart.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}
