package checkout

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sweetshop/internal/client/api"
	"sweetshop/internal/client/cart"
	"sweetshop/internal/client/models"
	"sweetshop/internal/logging"
)

type call struct {
	sweetID  int64
	quantity int
}

type fakePurchaser struct {
	calls   []call
	failAt  int // 1-based call index to fail on, 0 = never
	failErr error
}

func (f *fakePurchaser) Purchase(_ context.Context, sweetID int64, quantity int) (*models.Purchase, error) {
	f.calls = append(f.calls, call{sweetID, quantity})
	if f.failAt != 0 && len(f.calls) == f.failAt {
		return nil, f.failErr
	}
	return &models.Purchase{
		ID:         int64(len(f.calls)),
		SweetID:    sweetID,
		Quantity:   quantity,
		TotalPrice: decimal.NewFromInt(int64(quantity)),
	}, nil
}

func newFlow(p Purchaser) *Flow {
	return NewFlow(p, logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func filledCart() *cart.Store {
	s := cart.NewStore()
	s.Add(models.Sweet{ID: 1, Name: "Fudge", Price: decimal.RequireFromString("3.00")}, 2)
	s.Add(models.Sweet{ID: 2, Name: "Brownie", Price: decimal.RequireFromString("5.00")}, 1)
	s.Add(models.Sweet{ID: 3, Name: "Ladoo", Price: decimal.RequireFromString("1.00")}, 4)
	return s
}

func TestRun_EmptyCart(t *testing.T) {
	f := newFlow(&fakePurchaser{})

	_, err := f.Run(context.Background(), cart.NewStore())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestRun_AllSucceed_PurchasesInOrderAndClearsCart(t *testing.T) {
	p := &fakePurchaser{}
	crt := filledCart()

	receipts, err := newFlow(p).Run(context.Background(), crt)
	require.NoError(t, err)

	require.Equal(t, []call{{1, 2}, {2, 1}, {3, 4}}, p.calls, "strictly in cart order, one at a time")
	require.Len(t, receipts, 3)
	assert.Zero(t, crt.Count(), "cart cleared only after all purchases succeed")
}

func TestRun_FailureMidway_KeepsCartAndReportsCommitted(t *testing.T) {
	p := &fakePurchaser{failAt: 2, failErr: api.ErrValidation}
	crt := filledCart()

	_, err := newFlow(p).Run(context.Background(), crt)
	require.Error(t, err)

	var checkoutErr *CheckoutError
	require.ErrorAs(t, err, &checkoutErr)
	assert.Equal(t, 1, checkoutErr.Committed, "first line already committed server-side")
	assert.Equal(t, int64(2), checkoutErr.Cause.SweetID)
	assert.ErrorIs(t, err, api.ErrValidation, "the cause must stay reachable")

	// Line 3 was never attempted; the cart stays intact for retry.
	require.Len(t, p.calls, 2)
	assert.Equal(t, 7, crt.Count())
	assert.Equal(t, 3, crt.Len())
}

func TestRun_FirstLineFails_NothingCommitted(t *testing.T) {
	p := &fakePurchaser{failAt: 1, failErr: api.ErrUnavailable}
	crt := filledCart()

	_, err := newFlow(p).Run(context.Background(), crt)

	var checkoutErr *CheckoutError
	require.ErrorAs(t, err, &checkoutErr)
	assert.Zero(t, checkoutErr.Committed)
	assert.Equal(t, 3, crt.Len())
}
