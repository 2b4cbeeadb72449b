package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"sweetshop/internal/client/api"
)

func parseID(arg string) (int64, bool) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		fmt.Println("Expected a positive numeric id, got:", arg)
		return 0, false
	}
	return id, true
}

func (a *App) list(ctx context.Context, args []string) {
	p := api.ListParams{}
	if len(args) > 0 {
		p.Category = args[0]
	}

	sweets, err := a.shop.ListSweets(ctx, p)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	printSweets(sweets)
}

// search takes free text plus optional category=, min= and max= tokens,
// e.g. `search chocolate min=1.50 max=9.99`.
func (a *App) search(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: search <text> [category=...] [min=...] [max=...]")
		return
	}

	p := api.SearchParams{}
	var terms []string
	for _, arg := range args {
		switch key, value, found := strings.Cut(arg, "="); {
		case found && key == "category":
			p.Category = value
		case found && (key == "min" || key == "max"):
			bound, err := decimal.NewFromString(value)
			if err != nil {
				fmt.Printf("Bad price bound %q\n", arg)
				return
			}
			if key == "min" {
				p.MinPrice = &bound
			} else {
				p.MaxPrice = &bound
			}
		default:
			terms = append(terms, arg)
		}
	}
	p.Name = strings.Join(terms, " ")

	sweets, err := a.shop.SearchSweets(ctx, p)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	printSweets(sweets)
}

func (a *App) show(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: show <id>")
		return
	}
	id, ok := parseID(args[0])
	if !ok {
		return
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

	fmt.Printf("#%d %s\n", sweet.ID, sweet.Name)
	if sweet.Description != "" {
		fmt.Println(sweet.Description)
	}
	fmt.Printf("Price:    %s\n", FormatPrice(sweet.Price))
	fmt.Printf("In stock: %d\n", sweet.Quantity)
	if sweet.Category != "" {
		fmt.Printf("Category: %s\n", sweet.Category)
	}
}
