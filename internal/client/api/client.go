// Package api contains the typed client for the Sweet Shop REST backend.
// It owns the wire contract (paths, request shapes, error mapping) so the
// rest of the client can work with models and sentinel errors only.
package api

import (
	"context"

	"github.com/shopspring/decimal"

	"sweetshop/internal/client/models"
)

// Session is the result of a successful credential exchange.
type Session struct {
	AccessToken string
	Identity    models.Identity
}

// ListParams narrows a catalog listing. Limit <= 0 means the server default.
type ListParams struct {
	Skip     int
	Limit    int
	Category string
}

// SearchParams filters a catalog search. Nil price bounds are omitted.
type SearchParams struct {
	Name     string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// Client is the backend contract consumed by the stores and the CLI.
type Client interface {
	Close() error
	Ping(ctx context.Context) error

	// Auth service.
	Login(ctx context.Context, username, password string) (*Session, error)
	Register(ctx context.Context, username, email, password string) (*Session, error)

	// Catalog service.
	ListSweets(ctx context.Context, p ListParams) ([]models.Sweet, error)
	SearchSweets(ctx context.Context, p SearchParams) ([]models.Sweet, error)
	GetSweet(ctx context.Context, id int64) (*models.Sweet, error)
	CreateSweet(ctx context.Context, req models.SweetCreate) (*models.Sweet, error)
	UpdateSweet(ctx context.Context, id int64, req models.SweetUpdate) (*models.Sweet, error)
	DeleteSweet(ctx context.Context, id int64) error

	// Purchase/inventory service.
	Purchase(ctx context.Context, sweetID int64, quantity int) (*models.Purchase, error)
	Restock(ctx context.Context, sweetID int64, quantity int) (*models.InventoryLog, error)
	InventoryHistory(ctx context.Context, sweetID int64) ([]models.InventoryLog, error)
	PurchaseHistory(ctx context.Context) ([]models.Purchase, error)
}
