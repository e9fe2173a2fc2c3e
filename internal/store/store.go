// Package store defines the local persistence collaborator. The document
// database backing the storefront is outside this service; sync results are
// handed to whatever implementation the host wires in. The in-memory
// implementation here backs tests and single-process deployments.
package store

import (
	"context"

	domain "github.com/commercekit/marketsync/pkg/types"
)

// Store is the simple get/set surface the sync layer needs from the local
// document database.
type Store interface {
	// SaveDraft stores an imported product draft keyed by SKU.
	SaveDraft(ctx context.Context, draft domain.ProductDraft) error
	// GetDraft returns the draft for a SKU, or (nil, nil) when absent.
	GetDraft(ctx context.Context, sku string) (*domain.ProductDraft, error)

	// SaveOrder stores an imported order keyed by marketplace order id.
	SaveOrder(ctx context.Context, order domain.ImportedOrder) error
	// GetOrder returns an imported order, or (nil, nil) when absent.
	GetOrder(ctx context.Context, id int64) (*domain.ImportedOrder, error)
	// ListOrders returns all imported orders, newest first.
	ListOrders(ctx context.Context) ([]domain.ImportedOrder, error)
}
