package cli

import (
	"fmt"

	"github.com/shopspring/decimal"

	"sweetshop/internal/client/models"
)

// FormatPrice renders a price as $x.yy.
func FormatPrice(p decimal.Decimal) string {
	return "$" + p.StringFixed(2)
}

func formatSweetRow(s models.Sweet) string {
	category := s.Category
	if category == "" {
		category = "-"
	}
	return fmt.Sprintf("%4d  %-24s %-12s %8s  stock %d", s.ID, s.Name, category, FormatPrice(s.Price), s.Quantity)
}

func printSweets(sweets []models.Sweet) {
	if len(sweets) == 0 {
		fmt.Println("No sweets found")
		return
	}
	for _, s := range sweets {
		fmt.Println(formatSweetRow(s))
	}
}
