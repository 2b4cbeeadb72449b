// Package cli implements the interactive Sweet Shop terminal client: a
// small REPL over the session store, the cart store, and the backend API.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log"
	"os"
	"sync"
	"time"

	"sweetshop/internal/client/api"
	"sweetshop/internal/client/cart"
	"sweetshop/internal/client/checkout"
	"sweetshop/internal/client/config"
	"sweetshop/internal/client/localdb"
	"sweetshop/internal/client/models"
	"sweetshop/internal/client/session"
	"sweetshop/internal/logging"
)

// Mode reflects the last known reachability of the backend.
type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// SessionStore is the session surface the CLI depends on; satisfied by
// *session.Store and stubbed in tests.
type SessionStore interface {
	Restore(ctx context.Context) session.State
	Login(ctx context.Context, username, password string) (*models.Identity, error)
	Register(ctx context.Context, username, email, password string) (*models.Identity, error)
	Logout(ctx context.Context)
	IsAuthenticated() bool
	IsAdmin() bool
	Identity() *models.Identity
}

// CheckoutFlow converts the cart into purchases; satisfied by *checkout.Flow.
type CheckoutFlow interface {
	Run(ctx context.Context, crt *cart.Store) ([]models.Purchase, error)
}

type App struct {
	config   *config.Config
	session  SessionStore
	cart     *cart.Store
	shop     api.Client
	checkout CheckoutFlow
	db       *sql.DB
	reader   *bufio.Reader

	mu   sync.Mutex
	mode Mode
}

func NewApp(cfg *config.Config, logger logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := localdb.Open(ctx, cfg.DatabasePath, logger)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	apiClient := api.NewHTTPClient(cfg.ServerEndpointAddr)
	sessionStore := session.NewStore(apiClient, db, logger)
	apiClient.SetTokenSource(sessionStore.Token)

	return &App{
		config:   cfg,
		session:  sessionStore,
		cart:     cart.NewStore(),
		shop:     apiClient,
		checkout: checkout.NewFlow(apiClient, logger),
		db:       db,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		_ = a.shop.Close()
		_ = a.db.Close()
	}()
	a.Root(ctx)
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		log.Printf("Server is %s\n", mode)
	}
}

func (a *App) currentMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// StartOnlineStatusWatcher periodically probes the backend's health endpoint
// and flips the prompt's online/offline marker.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.shop.Ping(pingCtx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
