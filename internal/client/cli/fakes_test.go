package cli

import (
	"bufio"
	"context"
	"io"
	"strings"
	"testing"

	"sweetshop/internal/client/api"
	"sweetshop/internal/client/cart"
	"sweetshop/internal/client/config"
	"sweetshop/internal/client/models"
	"sweetshop/internal/client/session"
)

type loginCall struct{ username, password string }
type registerCall struct{ username, email, password string }

type fakeSession struct {
	state         session.State
	identity      *models.Identity
	admin         bool
	loginErr      error
	registerErr   error
	loginCalls    []loginCall
	registerCalls []registerCall
	loggedOut     bool
}

func (f *fakeSession) Restore(ctx context.Context) session.State { return f.state }

func (f *fakeSession) Login(ctx context.Context, username, password string) (*models.Identity, error) {
	f.loginCalls = append(f.loginCalls, loginCall{username, password})
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.identity, nil
}

func (f *fakeSession) Register(ctx context.Context, username, email, password string) (*models.Identity, error) {
	f.registerCalls = append(f.registerCalls, registerCall{username, email, password})
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.identity, nil
}

func (f *fakeSession) Logout(ctx context.Context) { f.loggedOut = true }
func (f *fakeSession) IsAuthenticated() bool      { return f.identity != nil }
func (f *fakeSession) IsAdmin() bool              { return f.admin }
func (f *fakeSession) Identity() *models.Identity { return f.identity }

type purchaseCall struct {
	sweetID  int64
	quantity int
}

type fakeShop struct {
	sweets        map[int64]models.Sweet
	getSweetErr   error
	purchases     []purchaseCall
	purchaseErr   error
	restockCalls  []purchaseCall
	deletedIDs    []int64
	listed        []api.ListParams
	searched      []api.SearchParams
	history       []models.Purchase
	inventoryLogs []models.InventoryLog
}

func (f *fakeShop) Close() error                   { return nil }
func (f *fakeShop) Ping(ctx context.Context) error { return nil }

func (f *fakeShop) Login(ctx context.Context, username, password string) (*api.Session, error) {
	return nil, nil
}

func (f *fakeShop) Register(ctx context.Context, username, email, password string) (*api.Session, error) {
	return nil, nil
}

func (f *fakeShop) ListSweets(ctx context.Context, p api.ListParams) ([]models.Sweet, error) {
	f.listed = append(f.listed, p)
	return nil, nil
}

func (f *fakeShop) SearchSweets(ctx context.Context, p api.SearchParams) ([]models.Sweet, error) {
	f.searched = append(f.searched, p)
	return nil, nil
}

func (f *fakeShop) GetSweet(ctx context.Context, id int64) (*models.Sweet, error) {
	if f.getSweetErr != nil {
		return nil, f.getSweetErr
	}
	s, ok := f.sweets[id]
	if !ok {
		return nil, api.ErrNotFound
	}
	return &s, nil
}

func (f *fakeShop) CreateSweet(ctx context.Context, req models.SweetCreate) (*models.Sweet, error) {
	return &models.Sweet{ID: 100, Name: req.Name, Price: req.Price, Quantity: req.Quantity}, nil
}

func (f *fakeShop) UpdateSweet(ctx context.Context, id int64, req models.SweetUpdate) (*models.Sweet, error) {
	s, ok := f.sweets[id]
	if !ok {
		return nil, api.ErrNotFound
	}
	return &s, nil
}

func (f *fakeShop) DeleteSweet(ctx context.Context, id int64) error {
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

func (f *fakeShop) Purchase(ctx context.Context, sweetID int64, quantity int) (*models.Purchase, error) {
	f.purchases = append(f.purchases, purchaseCall{sweetID, quantity})
	if f.purchaseErr != nil {
		return nil, f.purchaseErr
	}
	return &models.Purchase{SweetID: sweetID, Quantity: quantity}, nil
}

func (f *fakeShop) Restock(ctx context.Context, sweetID int64, quantity int) (*models.InventoryLog, error) {
	f.restockCalls = append(f.restockCalls, purchaseCall{sweetID, quantity})
	return &models.InventoryLog{SweetID: sweetID, Action: "restock", QuantityChange: quantity}, nil
}

func (f *fakeShop) InventoryHistory(ctx context.Context, sweetID int64) ([]models.InventoryLog, error) {
	return f.inventoryLogs, nil
}

func (f *fakeShop) PurchaseHistory(ctx context.Context) ([]models.Purchase, error) {
	return f.history, nil
}

type fakeCheckout struct {
	receipts []models.Purchase
	err      error
	calls    int
}

func (f *fakeCheckout) Run(ctx context.Context, crt *cart.Store) ([]models.Purchase, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	crt.Clear()
	return f.receipts, nil
}

func newTestApp(sess *fakeSession, shop *fakeShop, chk *fakeCheckout) *App {
	if shop == nil {
		shop = &fakeShop{}
	}
	if chk == nil {
		chk = &fakeCheckout{}
	}
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return &App{
		config:   cfg,
		session:  sess,
		cart:     cart.NewStore(),
		shop:     shop,
		checkout: chk,
		reader:   bufio.NewReader(strings.NewReader("")),
	}
}

// stubInput replaces the interactive input seams with canned answers for the
// duration of the test.
func stubInput(t *testing.T, answers []string, password string) {
	t.Helper()
	origText, origPassword := getSimpleText, getPassword
	t.Cleanup(func() {
		getSimpleText, getPassword = origText, origPassword
	})

	getSimpleText = func(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
		if len(answers) == 0 {
			return "", io.EOF
		}
		answer := answers[0]
		answers = answers[1:]
		return answer, nil
	}
	getPassword = func(w io.Writer) ([]byte, error) {
		return []byte(password), nil
	}
}
