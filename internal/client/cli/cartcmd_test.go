package cli

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"sweetshop/internal/client/checkout"
	"sweetshop/internal/client/models"
)

func testCatalog() map[int64]models.Sweet {
	return map[int64]models.Sweet{
		1: {ID: 1, Name: "Fudge", Price: decimal.RequireFromString("3.00"), Quantity: 10},
		2: {ID: 2, Name: "Mints", Price: decimal.RequireFromString("5.00"), Quantity: 2},
		3: {ID: 3, Name: "Rock", Price: decimal.RequireFromString("1.25"), Quantity: 0},
	}
}

func TestAddToCart(t *testing.T) {
	shop := &fakeShop{sweets: testCatalog()}
	app := newTestApp(&fakeSession{}, shop, nil)

	app.addToCart(context.Background(), []string{"1", "2"})
	app.addToCart(context.Background(), []string{"2"})

	if got := app.cart.Count(); got != 3 {
		t.Errorf("cart count = %d, want 3", got)
	}
	if got := app.cart.Total().String(); got != "11" {
		t.Errorf("cart total = %s, want 11", got)
	}
}

func TestAddToCartRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no args", nil},
		{"bad id", []string{"abc"}},
		{"zero quantity", []string{"1", "0"}},
		{"unknown sweet", []string{"99"}},
		{"out of stock", []string{"3"}},
		{"over stock", []string{"2", "5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(&fakeSession{}, &fakeShop{sweets: testCatalog()}, nil)
			app.addToCart(context.Background(), tt.args)
			if got := app.cart.Len(); got != 0 {
				t.Errorf("cart should stay empty, has %d line(s)", got)
			}
		})
	}
}

func TestUpdateQuantityCommand(t *testing.T) {
	shop := &fakeShop{sweets: testCatalog()}
	app := newTestApp(&fakeSession{}, shop, nil)
	app.addToCart(context.Background(), []string{"1", "2"})

	app.updateQuantity([]string{"1", "5"})
	if got := app.cart.Count(); got != 5 {
		t.Errorf("cart count = %d, want 5", got)
	}

	app.updateQuantity([]string{"1", "0"})
	if got := app.cart.Len(); got != 0 {
		t.Errorf("zero quantity should remove the line, %d left", got)
	}
}

func TestRunCheckoutRequiresLogin(t *testing.T) {
	chk := &fakeCheckout{}
	app := newTestApp(&fakeSession{}, &fakeShop{sweets: testCatalog()}, chk)
	app.addToCart(context.Background(), []string{"1"})

	app.runCheckout(context.Background())
	if chk.calls != 0 {
		t.Error("checkout should not run while logged out")
	}
}

func TestRunCheckout(t *testing.T) {
	sess := &fakeSession{identity: &models.Identity{ID: 1, Username: "alice"}}
	chk := &fakeCheckout{receipts: []models.Purchase{{SweetID: 1, Quantity: 2}}}
	app := newTestApp(sess, &fakeShop{sweets: testCatalog()}, chk)
	app.addToCart(context.Background(), []string{"1", "2"})

	app.runCheckout(context.Background())
	if chk.calls != 1 {
		t.Fatalf("checkout ran %d times, want 1", chk.calls)
	}
	if got := app.cart.Len(); got != 0 {
		t.Errorf("cart should be cleared after checkout, %d line(s) left", got)
	}
}

func TestRunCheckoutPartialFailureKeepsCart(t *testing.T) {
	sess := &fakeSession{identity: &models.Identity{ID: 1, Username: "alice"}}
	chk := &fakeCheckout{err: &checkout.CheckoutError{
		Committed: 1,
		Cause:     &checkout.PurchaseError{SweetID: 2, Quantity: 1, Err: context.DeadlineExceeded},
	}}
	app := newTestApp(sess, &fakeShop{sweets: testCatalog()}, chk)
	app.addToCart(context.Background(), []string{"1", "2"})
	app.addToCart(context.Background(), []string{"2"})

	app.runCheckout(context.Background())
	if got := app.cart.Len(); got != 2 {
		t.Errorf("cart should be intact after a failed checkout, has %d line(s)", got)
	}
}

func TestAdminCommandsRequireAdmin(t *testing.T) {
	shop := &fakeShop{sweets: testCatalog()}
	app := newTestApp(&fakeSession{identity: &models.Identity{ID: 1, Username: "alice"}}, shop, nil)

	app.restock(context.Background(), []string{"1", "5"})
	app.sweetDelete(context.Background(), []string{"1"})

	if len(shop.restockCalls) != 0 || len(shop.deletedIDs) != 0 {
		t.Error("admin commands must not reach the backend for a non-admin")
	}
}

func TestRestock(t *testing.T) {
	shop := &fakeShop{sweets: testCatalog()}
	sess := &fakeSession{identity: &models.Identity{ID: 1, Username: "root", IsAdmin: true}, admin: true}
	app := newTestApp(sess, shop, nil)

	app.restock(context.Background(), []string{"1", "5"})
	if len(shop.restockCalls) != 1 {
		t.Fatalf("expected 1 restock call, got %d", len(shop.restockCalls))
	}
	if got := (purchaseCall{1, 5}); shop.restockCalls[0] != got {
		t.Errorf("restock called with %+v, want %+v", shop.restockCalls[0], got)
	}
}
