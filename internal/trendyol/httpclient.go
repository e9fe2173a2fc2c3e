package trendyol

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/commercekit/marketsync/internal/metrics"
)

const (
	defaultBaseURL = "https://api.trendyol.com/sapigw"
	defaultTimeout = 30 * time.Second
)

// HTTPClient implements Client against the marketplace REST API.
type HTTPClient struct {
	creds     *CredentialStore
	baseURL   string
	client    *http.Client
	limiter   *RateLimiter
	userAgent string
}

// Option configures the HTTPClient.
type Option func(*HTTPClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *HTTPClient) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the default HTTP client. The caller owns the
// timeout when overriding.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		c.client = hc
	}
}

// WithRateLimiter injects a limiter applied before every request.
func WithRateLimiter(r *RateLimiter) Option {
	return func(c *HTTPClient) {
		c.limiter = r
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *HTTPClient) {
		c.userAgent = ua
	}
}

// NewHTTPClient builds a marketplace client reading credentials from store.
// The store may be replaced-into at runtime; each request snapshots the
// tuple exactly once.
func NewHTTPClient(store *CredentialStore, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		creds:   store,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ready implements Client.
func (c *HTTPClient) Ready() bool {
	return c.creds.Ready()
}

// call describes one marketplace request. The path is built from the
// credential snapshot taken inside do, so a concurrent credential
// replacement can never mix an old supplier id with a new signature.
type call struct {
	op     string
	method string
	path   func(supplierID string) string
	query  url.Values
	body   any
	result any
}

func (c *HTTPClient) do(ctx context.Context, rc call) error {
	snap := c.creds.Get()
	if !snap.Ready() {
		return errConfiguration()
	}

	metrics.MarketplaceCallsTotal.WithLabelValues(rc.op).Inc()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			if errors.Is(err, ErrDailyQuotaExhausted) {
				metrics.MarketplaceQuotaHits.Inc()
			}
			return &Error{Kind: KindTransientServer, Message: "local rate limit", Err: err}
		}
		metrics.MarketplaceDailyUsage.Set(float64(c.limiter.Used()))
	}

	u := c.baseURL + rc.path(snap.SupplierID)
	if len(rc.query) > 0 {
		u += "?" + rc.query.Encode()
	}

	var bodyReader io.Reader = http.NoBody
	if rc.body != nil {
		data, err := json.Marshal(rc.body)
		if err != nil {
			return fmt.Errorf("marshaling %s request: %w", rc.op, err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, rc.method, u, bodyReader)
	if err != nil {
		return fmt.Errorf("creating %s request: %w", rc.op, err)
	}

	req.Header.Set("Authorization", BasicAuth(snap))
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if rc.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		terr := classifyTransport(err)
		metrics.MarketplaceErrorsTotal.WithLabelValues(string(terr.Kind)).Inc()
		return terr
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		terr := classifyTransport(err)
		metrics.MarketplaceErrorsTotal.WithLabelValues(string(terr.Kind)).Inc()
		return terr
	}

	if resp.StatusCode >= 400 {
		serr := classifyStatus(resp.StatusCode, respBody)
		metrics.MarketplaceErrorsTotal.WithLabelValues(string(serr.Kind)).Inc()
		return serr
	}

	if rc.result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, rc.result); err != nil {
			// A 2xx with an undecodable body is an upstream glitch, not
			// a caller mistake.
			return &Error{
				Kind:    KindTransientServer,
				Status:  resp.StatusCode,
				Message: "malformed response body",
				Err:     err,
			}
		}
	}

	return nil
}

// ListProducts implements Client.
func (c *HTTPClient) ListProducts(ctx context.Context, q ProductListQuery) (*ProductPage, error) {
	query := url.Values{
		"page": []string{strconv.Itoa(q.Page)},
		"size": []string{strconv.Itoa(q.Size)},
	}
	if q.Approved != nil {
		query.Set("approved", strconv.FormatBool(*q.Approved))
	}
	if q.OnSale != nil {
		query.Set("onSale", strconv.FormatBool(*q.OnSale))
	}
	if q.Barcode != "" {
		query.Set("barcode", q.Barcode)
	}

	page := &ProductPage{}
	err := c.do(ctx, call{
		op:     "list_products",
		method: http.MethodGet,
		path: func(sid string) string {
			return "/suppliers/" + sid + "/products"
		},
		query:  query,
		result: page,
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

// GetProductByBarcode implements Client. The marketplace has no single
// product endpoint; this filters the listing by barcode.
func (c *HTTPClient) GetProductByBarcode(ctx context.Context, barcode string) (*Product, error) {
	page := &ProductPage{}
	err := c.do(ctx, call{
		op:     "get_product",
		method: http.MethodGet,
		path: func(sid string) string {
			return "/suppliers/" + sid + "/products"
		},
		query:  url.Values{"barcode": []string{barcode}},
		result: page,
	})
	if err != nil {
		return nil, err
	}

	if len(page.Content) == 0 {
		return nil, &Error{
			Kind:    KindNotFound,
			Message: fmt.Sprintf("no product with barcode %q", barcode),
		}
	}
	return &page.Content[0], nil
}

// CreateProducts implements Client.
func (c *HTTPClient) CreateProducts(ctx context.Context, items []Product) (string, error) {
	var resp batchResponse
	err := c.do(ctx, call{
		op:     "create_products",
		method: http.MethodPost,
		path: func(sid string) string {
			return "/suppliers/" + sid + "/v2/products"
		},
		body:   map[string][]Product{"items": items},
		result: &resp,
	})
	if err != nil {
		return "", err
	}
	return resp.BatchRequestID, nil
}

// UpdateStockAndPrice implements Client.
func (c *HTTPClient) UpdateStockAndPrice(ctx context.Context, items []StockPriceUpdate) (string, error) {
	var resp batchResponse
	err := c.do(ctx, call{
		op:     "update_stock_price",
		method: http.MethodPost,
		path: func(sid string) string {
			return "/suppliers/" + sid + "/products/price-and-inventory"
		},
		body:   map[string][]StockPriceUpdate{"items": items},
		result: &resp,
	})
	if err != nil {
		return "", err
	}
	return resp.BatchRequestID, nil
}

// GetBatchStatus implements Client.
func (c *HTTPClient) GetBatchStatus(ctx context.Context, batchRequestID string) (*BatchStatus, error) {
	metrics.BatchPollsTotal.Inc()

	status := &BatchStatus{}
	err := c.do(ctx, call{
		op:     "get_batch_status",
		method: http.MethodGet,
		path: func(sid string) string {
			return "/suppliers/" + sid + "/products/batch-requests/" + url.PathEscape(batchRequestID)
		},
		result: status,
	})
	if err != nil {
		return nil, err
	}
	return status, nil
}

// ListOrders implements Client.
func (c *HTTPClient) ListOrders(ctx context.Context, q OrderListQuery) (*OrderPage, error) {
	query := url.Values{
		"page": []string{strconv.Itoa(q.Page)},
		"size": []string{strconv.Itoa(q.Size)},
	}
	if q.Status != "" {
		query.Set("status", q.Status)
	}
	if q.StartDate != nil {
		query.Set("startDate", strconv.FormatInt(q.StartDate.UnixMilli(), 10))
	}
	if q.EndDate != nil {
		query.Set("endDate", strconv.FormatInt(q.EndDate.UnixMilli(), 10))
	}

	page := &OrderPage{}
	err := c.do(ctx, call{
		op:     "list_orders",
		method: http.MethodGet,
		path: func(sid string) string {
			return "/suppliers/" + sid + "/orders"
		},
		query:  query,
		result: page,
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

// ListCategories implements Client. Returns the root nodes of the category
// tree; children hang off SubCategories.
func (c *HTTPClient) ListCategories(ctx context.Context) ([]Category, error) {
	var resp struct {
		Categories []Category `json:"categories"`
	}
	err := c.do(ctx, call{
		op:     "list_categories",
		method: http.MethodGet,
		path:   func(string) string { return "/product-categories" },
		result: &resp,
	})
	if err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// GetCategoryAttributes implements Client.
func (c *HTTPClient) GetCategoryAttributes(ctx context.Context, categoryID int) (*AttributeSchema, error) {
	schema := &AttributeSchema{}
	err := c.do(ctx, call{
		op:     "get_category_attributes",
		method: http.MethodGet,
		path: func(string) string {
			return "/product-categories/" + strconv.Itoa(categoryID) + "/attributes"
		},
		result: schema,
	})
	if err != nil {
		return nil, err
	}
	return schema, nil
}

// ListBrands implements Client.
func (c *HTTPClient) ListBrands(ctx context.Context, page, size int) (*BrandPage, error) {
	out := &BrandPage{}
	err := c.do(ctx, call{
		op:     "list_brands",
		method: http.MethodGet,
		path:   func(string) string { return "/brands" },
		query: url.Values{
			"page": []string{strconv.Itoa(page)},
			"size": []string{strconv.Itoa(size)},
		},
		result: out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListCargoProviders implements Client.
func (c *HTTPClient) ListCargoProviders(ctx context.Context) ([]CargoProvider, error) {
	var providers []CargoProvider
	err := c.do(ctx, call{
		op:     "list_cargo_providers",
		method: http.MethodGet,
		path:   func(string) string { return "/shipment-providers" },
		result: &providers,
	})
	if err != nil {
		return nil, err
	}
	return providers, nil
}
