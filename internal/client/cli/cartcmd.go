package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"sweetshop/internal/client/api"
	"sweetshop/internal/client/checkout"
)

func (a *App) addToCart(ctx context.Context, args []string) {
	if len(args) < 1 || len(args) > 2 {
		fmt.Println("Usage: add <id> [qty]")
		return
	}
	id, ok := parseID(args[0])
	if !ok {
		return
	}
	quantity := 1
	if len(args) == 2 {
		q, err := strconv.Atoi(args[1])
		if err != nil || q <= 0 {
			fmt.Println("Quantity must be a positive number")
			return
		}
		quantity = q
	}

	sweet, err := a.shop.GetSweet(ctx, id)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			fmt.Println("No such sweet")
			return
		}
		log.Printf("error: %v", err)
		return
	}
	if sweet.Quantity == 0 {
		fmt.Printf("%s is out of stock\n", sweet.Name)
		return
	}
	if quantity > sweet.Quantity {
		fmt.Printf("Only %d in stock\n", sweet.Quantity)
		return
	}

	a.cart.Add(*sweet, quantity)
	fmt.Printf("Added %d x %s (cart: %d items, %s)\n",
		quantity, sweet.Name, a.cart.Count(), FormatPrice(a.cart.Total()))
}

func (a *App) showCart() {
	lines := a.cart.Items()
	if len(lines) == 0 {
		fmt.Println("Cart is empty")
		return
	}
	for _, line := range lines {
		fmt.Printf("%4d  %-24s %3d x %8s = %8s\n",
			line.Sweet.ID, line.Sweet.Name, line.Quantity,
			FormatPrice(line.Sweet.Price), FormatPrice(line.Subtotal()))
	}
	fmt.Printf("Total: %s (%d items)\n", FormatPrice(a.cart.Total()), a.cart.Count())
}

func (a *App) removeFromCart(args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: remove <id>")
		return
	}
	id, ok := parseID(args[0])
	if !ok {
		return
	}
	a.cart.Remove(id)
	fmt.Println("Removed")
}

func (a *App) updateQuantity(args []string) {
	if len(args) != 2 {
		fmt.Println("Usage: qty <id> <n>")
		return
	}
	id, ok := parseID(args[0])
	if !ok {
		return
	}
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Println("Quantity must be a number")
		return
	}

	a.cart.UpdateQuantity(id, quantity)
	if quantity <= 0 {
		fmt.Println("Removed")
		return
	}
	fmt.Printf("Cart: %d items, %s\n", a.cart.Count(), FormatPrice(a.cart.Total()))
}

func (a *App) clearCart() {
	a.cart.Clear()
	fmt.Println("Cart cleared")
}

func (a *App) runCheckout(ctx context.Context) {
	if !a.session.IsAuthenticated() {
		fmt.Println("Please log in first")
		return
	}

	receipts, err := a.checkout.Run(ctx, a.cart)
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			fmt.Println("Cart is empty")
			return
		}
		var chkErr *checkout.CheckoutError
		if errors.As(err, &chkErr) {
			fmt.Printf("Checkout failed: %v\n", chkErr.Cause.Err)
			if chkErr.Committed > 0 {
				fmt.Printf("%d line(s) were already purchased; the rest of the cart is untouched\n", chkErr.Committed)
			}
			return
		}
		log.Printf("error: %v", err)
		return
	}

	fmt.Println("Purchase complete!")
	for _, receipt := range receipts {
		fmt.Printf("  %3d x %-24s %8s\n", receipt.Quantity, receipt.SweetName, FormatPrice(receipt.TotalPrice))
	}
}

func (a *App) purchases(ctx context.Context) {
	if !a.session.IsAuthenticated() {
		fmt.Println("Please log in first")
		return
	}

	history, err := a.shop.PurchaseHistory(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	if len(history) == 0 {
		fmt.Println("No purchases yet")
		return
	}
	for _, p := range history {
		fmt.Printf("%s  %3d x %-24s %8s\n",
			p.PurchasedAt.Format("2006-01-02 15:04"), p.Quantity, p.SweetName, FormatPrice(p.TotalPrice))
	}
}
