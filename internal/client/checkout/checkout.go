// Package checkout converts cart lines into committed purchases.
//
// The flow is sequential and non-transactional: purchases are issued one at
// a time in cart order, and the cart is cleared only after every line
// succeeds. When a line fails, earlier lines are already committed on the
// server and nothing is rolled back; CheckoutError reports how many lines
// went through so the caller can say so.
package checkout

import (
	"context"
	"errors"
	"fmt"

	"sweetshop/internal/client/cart"
	"sweetshop/internal/client/models"
	"sweetshop/internal/logging"
)

// ErrEmptyCart is returned when checkout is invoked on an empty cart.
var ErrEmptyCart = errors.New("cart is empty")

// PurchaseError wraps a failed purchase call for one cart line.
type PurchaseError struct {
	SweetID  int64
	Quantity int
	Err      error
}

func (e *PurchaseError) Error() string {
	return fmt.Sprintf("purchase sweet %d (quantity %d): %v", e.SweetID, e.Quantity, e.Err)
}

func (e *PurchaseError) Unwrap() error { return e.Err }

// CheckoutError reports a checkout aborted at some line. Committed lines
// stay purchased server-side; the cart is left intact.
type CheckoutError struct {
	Committed int // lines purchased before the failure
	Cause     *PurchaseError
}

func (e *CheckoutError) Error() string {
	return fmt.Sprintf("checkout aborted after %d committed line(s): %v", e.Committed, e.Cause)
}

func (e *CheckoutError) Unwrap() error { return e.Cause }

// Purchaser is the purchase operation of the API client.
type Purchaser interface {
	Purchase(ctx context.Context, sweetID int64, quantity int) (*models.Purchase, error)
}

// Flow runs checkouts against a Purchaser.
type Flow struct {
	purchaser Purchaser
	log       logging.Logger
}

func NewFlow(purchaser Purchaser, log logging.Logger) *Flow {
	return &Flow{purchaser: purchaser, log: log}
}

// Run purchases every cart line sequentially, in cart order. On full
// success it clears the cart and returns the receipts; on the first failure
// it stops, leaves the cart untouched, and returns a *CheckoutError.
func (f *Flow) Run(ctx context.Context, crt *cart.Store) ([]models.Purchase, error) {
	lines := crt.Items()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	receipts := make([]models.Purchase, 0, len(lines))
	for i, line := range lines {
		receipt, err := f.purchaser.Purchase(ctx, line.Sweet.ID, line.Quantity)
		if err != nil {
			cause := &PurchaseError{SweetID: line.Sweet.ID, Quantity: line.Quantity, Err: err}
			f.log.Warn(ctx, "checkout aborted",
				"sweet_id", line.Sweet.ID, "committed", i, "error", err)
			return nil, &CheckoutError{Committed: i, Cause: cause}
		}
		receipts = append(receipts, *receipt)
	}

	crt.Clear()
	f.log.Info(ctx, "checkout finished", "lines", len(lines))
	return receipts, nil
}
