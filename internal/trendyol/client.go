// Package trendyol implements the marketplace integration boundary: the
// credential store, request signing, the HTTP client, and the typed error
// taxonomy every upstream failure is classified into.
package trendyol

import (
	"context"
)

// Client is the single choke point for all outbound marketplace calls.
// Implementations classify every failure into a *Error before returning.
type Client interface {
	// Ready reports whether the supplier id, api key, and api secret are
	// all configured. Every other method fails fast with a configuration
	// error when not ready, before any network call.
	Ready() bool

	ListProducts(ctx context.Context, q ProductListQuery) (*ProductPage, error)
	GetProductByBarcode(ctx context.Context, barcode string) (*Product, error)
	// CreateProducts submits product cards for asynchronous moderation.
	// The returned batch id is the only handle on the submission; a caller
	// needing durability must persist it immediately.
	CreateProducts(ctx context.Context, items []Product) (string, error)
	// UpdateStockAndPrice submits a price-and-inventory batch and returns
	// its batch id.
	UpdateStockAndPrice(ctx context.Context, items []StockPriceUpdate) (string, error)
	GetBatchStatus(ctx context.Context, batchRequestID string) (*BatchStatus, error)

	ListOrders(ctx context.Context, q OrderListQuery) (*OrderPage, error)

	ListCategories(ctx context.Context) ([]Category, error)
	GetCategoryAttributes(ctx context.Context, categoryID int) (*AttributeSchema, error)
	ListBrands(ctx context.Context, page, size int) (*BrandPage, error)
	ListCargoProviders(ctx context.Context) ([]CargoProvider, error)
}
