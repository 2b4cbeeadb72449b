package models

import (
	"github.com/shopspring/decimal"
)

// Purchase is one committed purchase receipt.
type Purchase struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	SweetID     int64           `json:"sweet_id"`
	SweetName   string          `json:"sweet_name,omitempty"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	PurchasedAt Timestamp       `json:"purchased_at"`
}

// InventoryLog is one stock movement record (purchase or restock),
// visible to admins only.
type InventoryLog struct {
	ID             int64     `json:"id"`
	SweetID        int64     `json:"sweet_id"`
	Action         string    `json:"action"`
	QuantityChange int       `json:"quantity_change"`
	PerformedBy    int64     `json:"performed_by"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      Timestamp `json:"created_at"`
}
