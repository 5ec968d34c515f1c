package larek

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/larek-storefront/internal/order"
	"github.com/angelmondragon/larek-storefront/pkg/config"
	"github.com/angelmondragon/larek-storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/larek-storefront/pkg/errors"
	"github.com/angelmondragon/larek-storefront/pkg/metrics"
	"github.com/angelmondragon/larek-storefront/pkg/types"
)

const (
	errorBodyReadLimit int64 = 1024

	opFetchCatalog = "fetch_catalog"
	opFetchProduct = "fetch_product"
	opPlaceOrder   = "place_order"
)

// Backend is the shop API surface the storefront consumes.
type Backend interface {
	FetchCatalog(ctx context.Context) ([]types.Product, error)
	FetchProduct(ctx context.Context, id string) (types.Product, error)
	PlaceOrder(ctx context.Context, draft order.Draft) (types.OrderResult, error)
}

// Client talks to the shop API. Image paths it returns are made absolute
// against the CDN.
type Client struct {
	httpClient *http.Client
	apiURL     string
	cdnURL     string
	metrics    *metrics.BackendMetrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithMetrics records call durations and failures.
func WithMetrics(m *metrics.BackendMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient builds a client for the configured API and CDN.
func NewClient(cfg config.BackendConfig, opts ...Option) (*Client, error) {
	apiURL := strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/")
	if apiURL == "" {
		return nil, fmt.Errorf("api url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiURL:     apiURL,
		cdnURL:     strings.TrimRight(strings.TrimSpace(cfg.CDNURL), "/"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// APIURL returns the base URL the client calls.
func (c *Client) APIURL() string {
	return c.apiURL
}

type productDTO struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Image       string              `json:"image"`
	Category    string              `json:"category"`
	Price       decimal.NullDecimal `json:"price"`
}

type productListDTO struct {
	Total int          `json:"total"`
	Items []productDTO `json:"items"`
}

type orderRequest struct {
	Payment string      `json:"payment"`
	Email   string      `json:"email"`
	Phone   string      `json:"phone"`
	Address string      `json:"address"`
	Total   json.Number `json:"total"`
	Items   []string    `json:"items"`
}

type orderResponse struct {
	ID    string          `json:"id"`
	Total decimal.Decimal `json:"total"`
}

type apiError struct {
	Error string `json:"error"`
}

// FetchCatalog returns every product in server order.
func (c *Client) FetchCatalog(ctx context.Context) ([]types.Product, error) {
	var list productListDTO
	if err := c.do(ctx, opFetchCatalog, http.MethodGet, "/product", nil, nil, &list); err != nil {
		return nil, err
	}
	products := make([]types.Product, 0, len(list.Items))
	for _, item := range list.Items {
		products = append(products, c.toProduct(item))
	}
	return products, nil
}

// FetchProduct returns a single product.
func (c *Client) FetchProduct(ctx context.Context, id string) (types.Product, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return types.Product{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	var item productDTO
	if err := c.do(ctx, opFetchProduct, http.MethodGet, "/product/"+url.PathEscape(trimmed), nil, nil, &item); err != nil {
		return types.Product{}, err
	}
	return c.toProduct(item), nil
}

// PlaceOrder submits the draft. Each call carries a fresh idempotency key.
func (c *Client) PlaceOrder(ctx context.Context, draft order.Draft) (types.OrderResult, error) {
	body := orderRequest{
		Payment: draft.Payment.String(),
		Email:   draft.Email,
		Phone:   draft.Phone,
		Address: draft.Address,
		Total:   json.Number(draft.Total.String()),
		Items:   draft.Items,
	}
	if body.Items == nil {
		body.Items = []string{}
	}
	headers := map[string]string{"Idempotency-Key": uuid.NewString()}

	var resp orderResponse
	if err := c.do(ctx, opPlaceOrder, http.MethodPost, "/order", body, headers, &resp); err != nil {
		return types.OrderResult{}, err
	}
	return types.OrderResult{ID: resp.ID, Total: resp.Total}, nil
}

func (c *Client) toProduct(item productDTO) types.Product {
	return types.Product{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Image:       c.imageURL(item.Image),
		Category:    enums.Category(item.Category),
		Price:       item.Price,
	}
}

func (c *Client) imageURL(path string) string {
	if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.cdnURL + path
}

func (c *Client) do(ctx context.Context, op, method, path string, payload any, headers map[string]string, dest any) (err error) {
	start := time.Now()
	defer func() {
		c.metrics.ObserveDuration(op, time.Since(start))
		if err != nil {
			c.metrics.IncFailure(op)
		}
	}()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal "+op+" request")
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build "+op+" request")
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute "+op+" request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(op, resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode "+op+" response")
	}
	return nil
}

func statusError(op string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
	msg := strings.TrimSpace(string(raw))
	var parsed apiError
	if json.Unmarshal(raw, &parsed) == nil && parsed.Error != "" {
		msg = parsed.Error
	}

	code := pkgerrors.CodeDependency
	if resp.StatusCode == http.StatusNotFound {
		code = pkgerrors.CodeNotFound
	}
	return pkgerrors.Wrap(code, fmt.Errorf("status %d: %s", resp.StatusCode, msg), op+" request failed").
		WithDetails(map[string]any{"status": resp.StatusCode, "error": msg})
}
