package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"sweetshop/internal/client/models"
	"sweetshop/internal/common"
)

const apiBasePath = "/api/v1"

// TokenSource supplies the current bearer token, or "" when anonymous.
type TokenSource func() string

// HTTPClient is the REST implementation of Client. It injects the bearer
// token from its TokenSource and a fresh request id into every call.
type HTTPClient struct {
	endpoint    string // scheme://host:port, no trailing slash
	http        *http.Client
	tokenSource TokenSource
}

func NewHTTPClient(endpoint string) *HTTPClient {
	return &HTTPClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// SetTokenSource wires the session store's token accessor. Calls made before
// this (or while the source returns "") go out unauthenticated.
func (c *HTTPClient) SetTokenSource(ts TokenSource) {
	c.tokenSource = ts
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// do performs one request against the API. body (if non-nil) is sent as
// JSON; out (if non-nil) receives the decoded response body.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	u := c.endpoint + apiBasePath + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	if c.tokenSource != nil {
		if token := c.tokenSource(); token != "" {
			req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return mapStatus(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// errorDetail is the backend's error body: {"detail": "..."}.
type errorDetail struct {
	Detail string `json:"detail"`
}

func mapStatus(resp *http.Response) error {
	var sentinel error
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		sentinel = ErrUnauthorized
	case resp.StatusCode == http.StatusForbidden:
		sentinel = ErrForbidden
	case resp.StatusCode == http.StatusNotFound:
		sentinel = ErrNotFound
	case resp.StatusCode == http.StatusConflict:
		sentinel = ErrConflict
	case resp.StatusCode >= 500:
		sentinel = ErrServer
	default:
		sentinel = ErrValidation
	}

	var d errorDetail
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&d); err == nil && d.Detail != "" {
		return fmt.Errorf("%w: %s", sentinel, d.Detail)
	}
	return fmt.Errorf("%w: status %d", sentinel, resp.StatusCode)
}

// authResponse is the body of both /auth/login and /auth/register.
type authResponse struct {
	AccessToken string           `json:"access_token"`
	TokenType   string           `json:"token_type"`
	User        *models.Identity `json:"user"`
}

func (r *authResponse) toSession() (*Session, error) {
	if r.AccessToken == "" {
		return nil, fmt.Errorf("auth response: %w: access_token", models.ErrMissingField)
	}
	if r.User == nil {
		return nil, fmt.Errorf("auth response: %w: user", models.ErrMissingField)
	}
	if err := r.User.Validate(); err != nil {
		return nil, fmt.Errorf("auth response: %w", err)
	}
	return &Session{AccessToken: r.AccessToken, Identity: *r.User}, nil
}

// Login exchanges credentials for a session. The backend takes login
// credentials as query parameters with an empty body.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (*Session, error) {
	q := url.Values{}
	q.Set("username", username)
	q.Set("password", password)

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.toSession()
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and returns the new session. Username/email
// conflicts surface as ErrValidation or ErrConflict with the server's detail.
func (c *HTTPClient) Register(ctx context.Context, username, email, password string) (*Session, error) {
	req := registerRequest{Username: username, Email: email, Password: password}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &resp); err != nil {
		return nil, err
	}
	return resp.toSession()
}

func validateSweets(sweets []models.Sweet) ([]models.Sweet, error) {
	for i := range sweets {
		if err := sweets[i].Validate(); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
	}
	return sweets, nil
}

func (c *HTTPClient) ListSweets(ctx context.Context, p ListParams) ([]models.Sweet, error) {
	q := url.Values{}
	if p.Skip > 0 {
		q.Set("skip", strconv.Itoa(p.Skip))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Category != "" {
		q.Set("category", p.Category)
	}

	var sweets []models.Sweet
	if err := c.do(ctx, http.MethodGet, "/sweets", q, nil, &sweets); err != nil {
		return nil, err
	}
	return validateSweets(sweets)
}

func (c *HTTPClient) SearchSweets(ctx context.Context, p SearchParams) ([]models.Sweet, error) {
	q := url.Values{}
	if p.Name != "" {
		q.Set("name", p.Name)
	}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.MinPrice != nil {
		q.Set("min_price", p.MinPrice.String())
	}
	if p.MaxPrice != nil {
		q.Set("max_price", p.MaxPrice.String())
	}

	var sweets []models.Sweet
	if err := c.do(ctx, http.MethodGet, "/sweets/search", q, nil, &sweets); err != nil {
		return nil, err
	}
	return validateSweets(sweets)
}

func (c *HTTPClient) GetSweet(ctx context.Context, id int64) (*models.Sweet, error) {
	var sweet models.Sweet
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/sweets/%d", id), nil, nil, &sweet); err != nil {
		return nil, err
	}
	if err := sweet.Validate(); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &sweet, nil
}

func (c *HTTPClient) CreateSweet(ctx context.Context, req models.SweetCreate) (*models.Sweet, error) {
	var sweet models.Sweet
	if err := c.do(ctx, http.MethodPost, "/sweets", nil, req, &sweet); err != nil {
		return nil, err
	}
	return &sweet, nil
}

func (c *HTTPClient) UpdateSweet(ctx context.Context, id int64, req models.SweetUpdate) (*models.Sweet, error) {
	var sweet models.Sweet
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/sweets/%d", id), nil, req, &sweet); err != nil {
		return nil, err
	}
	return &sweet, nil
}

func (c *HTTPClient) DeleteSweet(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/sweets/%d", id), nil, nil, nil)
}

type purchaseRequest struct {
	SweetID  int64 `json:"sweet_id"`
	Quantity int   `json:"quantity"`
}

// envelope is the {success, message, data} wrapper the inventory endpoints use.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func (c *HTTPClient) Purchase(ctx context.Context, sweetID int64, quantity int) (*models.Purchase, error) {
	req := purchaseRequest{SweetID: sweetID, Quantity: quantity}

	var resp envelope[*models.Purchase]
	if err := c.do(ctx, http.MethodPost, "/inventory/purchase", nil, req, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("purchase response: %w: data", models.ErrMissingField)
	}
	return resp.Data, nil
}

// Restock increases stock (admin only). The backend takes the arguments as
// query parameters.
func (c *HTTPClient) Restock(ctx context.Context, sweetID int64, quantity int) (*models.InventoryLog, error) {
	q := url.Values{}
	q.Set("sweet_id", strconv.FormatInt(sweetID, 10))
	q.Set("quantity", strconv.Itoa(quantity))

	var resp envelope[*models.InventoryLog]
	if err := c.do(ctx, http.MethodPost, "/inventory/restock", q, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("restock response: %w: data", models.ErrMissingField)
	}
	return resp.Data, nil
}

func (c *HTTPClient) InventoryHistory(ctx context.Context, sweetID int64) ([]models.InventoryLog, error) {
	var resp envelope[[]models.InventoryLog]
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/inventory/history/%d", sweetID), nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *HTTPClient) PurchaseHistory(ctx context.Context) ([]models.Purchase, error) {
	var purchases []models.Purchase
	if err := c.do(ctx, http.MethodGet, "/purchases", nil, nil, &purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}

// Ping probes the backend's health endpoint, which lives at the server root
// rather than under the API prefix.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}
