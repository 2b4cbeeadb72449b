package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"sweetshop/internal/client/api"
	"sweetshop/internal/client/models"
)

func (a *App) requireAdmin() bool {
	if !a.session.IsAdmin() {
		fmt.Println("Admin access required")
		return false
	}
	return true
}

func (a *App) sweetAdd(ctx context.Context) {
	if !a.requireAdmin() {
		return
	}

	name, err := getSimpleText(a.reader, "Name", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	if name == "" {
		fmt.Println("Name is required")
		return
	}
	description, err := getSimpleText(a.reader, "Description (optional)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	priceText, err := getSimpleText(a.reader, "Price", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	price, err := decimal.NewFromString(priceText)
	if err != nil || price.IsNegative() {
		fmt.Println("Price must be a non-negative number")
		return
	}
	quantityText, err := getSimpleText(a.reader, "Quantity", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	quantity, err := strconv.Atoi(quantityText)
	if err != nil || quantity < 0 {
		fmt.Println("Quantity must be a non-negative number")
		return
	}
	category, err := getSimpleText(a.reader, "Category (optional)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	imageURL, err := getSimpleText(a.reader, "Image URL (optional)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	sweet, err := a.shop.CreateSweet(ctx, models.SweetCreate{
		Name:        name,
		Description: description,
		Price:       price,
		Quantity:    quantity,
		Category:    category,
		ImageURL:    imageURL,
	})
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	fmt.Printf("Created sweet #%d %s\n", sweet.ID, sweet.Name)
}

// sweetUpdate prompts for each field; a blank answer leaves the field
// unchanged on the server.
func (a *App) sweetUpdate(ctx context.Context, args []string) {
	if !a.requireAdmin() {
		return
	}
	if len(args) != 1 {
		fmt.Println("Usage: sweet-update <id>")
		return
	}
	id, ok := parseID(args[0])
	if !ok {
		return
	}

	req := models.SweetUpdate{}

	name, err := getSimpleText(a.reader, "Name (blank keeps current)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	if name != "" {
		req.Name = &name
	}
	description, err := getSimpleText(a.reader, "Description (blank keeps current)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	if description != "" {
		req.Description = &description
	}
	priceText, err := getSimpleText(a.reader, "Price (blank keeps current)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	if priceText != "" {
		price, err := decimal.NewFromString(priceText)
		if err != nil || price.IsNegative() {
			fmt.Println("Price must be a non-negative number")
			return
		}
		req.Price = &price
	}
	quantityText, err := getSimpleText(a.reader, "Quantity (blank keeps current)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	if quantityText != "" {
		quantity, err := strconv.Atoi(quantityText)
		if err != nil || quantity < 0 {
			fmt.Println("Quantity must be a non-negative number")
			return
		}
		req.Quantity = &quantity
	}
	category, err := getSimpleText(a.reader, "Category (blank keeps current)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	if category != "" {
		req.Category = &category
	}

	sweet, err := a.shop.UpdateSweet(ctx, id, req)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			fmt.Println("No such sweet")
			return
		}
		log.Printf("error: %v", err)
		return
	}
	fmt.Printf("Updated sweet #%d %s\n", sweet.ID, sweet.Name)
}

func (a *App) sweetDelete(ctx context.Context, args []string) {
	if !a.requireAdmin() {
		return
	}
	if len(args) != 1 {
		fmt.Println("Usage: sweet-delete <id>")
		return
	}
	id, ok := parseID(args[0])
	if !ok {
		return
	}

	if err := a.shop.DeleteSweet(ctx, id); err != nil {
		if errors.Is(err, api.ErrNotFound) {
			fmt.Println("No such sweet")
			return
		}
		log.Printf("error: %v", err)
		return
	}
	fmt.Println("Deleted")
}

func (a *App) restock(ctx context.Context, args []string) {
	if !a.requireAdmin() {
		return
	}
	if len(args) != 2 {
		fmt.Println("Usage: restock <id> <qty>")
		return
	}
	id, ok := parseID(args[0])
	if !ok {
		return
	}
	quantity, err := strconv.Atoi(args[1])
	if err != nil || quantity <= 0 {
		fmt.Println("Quantity must be a positive number")
		return
	}

	entry, err := a.shop.Restock(ctx, id, quantity)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			fmt.Println("No such sweet")
			return
		}
		log.Printf("error: %v", err)
		return
	}
	fmt.Printf("Restocked sweet #%d by %d\n", entry.SweetID, entry.QuantityChange)
}

func (a *App) history(ctx context.Context, args []string) {
	if !a.requireAdmin() {
		return
	}
	if len(args) != 1 {
		fmt.Println("Usage: history <id>")
		return
	}
	id, ok := parseID(args[0])
	if !ok {
		return
	}

	entries, err := a.shop.InventoryHistory(ctx, id)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			fmt.Println("No such sweet")
			return
		}
		log.Printf("error: %v", err)
		return
	}
	if len(entries) == 0 {
		fmt.Println("No inventory activity")
		return
	}
	for _, e := range entries {
		notes := e.Notes
		if notes != "" {
			notes = "  " + notes
		}
		fmt.Printf("%s  %-10s %+d  by user %d%s\n",
			e.CreatedAt.Format("2006-01-02 15:04"), e.Action, e.QuantityChange, e.PerformedBy, notes)
	}
}
