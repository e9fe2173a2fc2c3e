package sync

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/commercekit/marketsync/internal/metrics"
	"github.com/commercekit/marketsync/internal/store"
	"github.com/commercekit/marketsync/internal/trendyol"
	domain "github.com/commercekit/marketsync/pkg/types"
)

// Invoicer is the external invoicing collaborator. OrderSync only gates the
// call with precondition checks; invoice generation itself happens
// elsewhere.
type Invoicer interface {
	CreateInvoice(ctx context.Context, order domain.ImportedOrder) (*domain.InvoiceRef, error)
}

// orderLookupPages bounds the remote scan when an order is not in the
// local store.
const orderLookupPages = 5

const orderLookupPageSize = 200

// OrderSync retrieves marketplace orders and gates invoice generation.
// Orders are read-only: nothing here ever writes order state upstream.
type OrderSync struct {
	client   trendyol.Client
	invoicer Invoicer
	store    store.Store
	log      *slog.Logger
}

// NewOrderSync creates an OrderSync. The store may be nil; order lookups
// then always go to the marketplace.
func NewOrderSync(client trendyol.Client, invoicer Invoicer, st store.Store, log *slog.Logger) *OrderSync {
	if log == nil {
		log = slog.Default()
	}
	return &OrderSync{client: client, invoicer: invoicer, store: st, log: log}
}

// FetchOrders is a passthrough to the marketplace order listing with
// pagination and filters. No local state changes.
func (s *OrderSync) FetchOrders(ctx context.Context, q trendyol.OrderListQuery) (*trendyol.OrderPage, error) {
	page, err := s.client.ListOrders(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("fetching orders: %w", err)
	}
	return page, nil
}

// ImportOrders fetches recent orders and persists them through the store.
// Used by the scheduler for unattended periodic imports.
func (s *OrderSync) ImportOrders(ctx context.Context, q trendyol.OrderListQuery) (int, error) {
	if s.store == nil {
		return 0, fmt.Errorf("order import requires a store")
	}

	page, err := s.FetchOrders(ctx, q)
	if err != nil {
		return 0, err
	}

	for _, o := range page.Content {
		if err := s.store.SaveOrder(ctx, flattenOrder(o)); err != nil {
			return 0, fmt.Errorf("saving order %d: %w", o.ID, err)
		}
	}

	metrics.OrdersImportedTotal.Add(float64(len(page.Content)))
	return len(page.Content), nil
}

// CreateInvoice verifies that the order exists and is in an invoiceable
// status, then delegates to the invoicing collaborator. A cancelled or
// not-yet-created order is rejected with a precondition error before the
// invoicer is touched.
func (s *OrderSync) CreateInvoice(ctx context.Context, orderID int64) (*domain.InvoiceRef, error) {
	order, err := s.lookupOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !invoiceable(order.Status) {
		return nil, &trendyol.Error{
			Kind: trendyol.KindPrecondition,
			Message: fmt.Sprintf(
				"order %d has status %q and cannot be invoiced",
				orderID, order.Status,
			),
		}
	}

	ref, err := s.invoicer.CreateInvoice(ctx, *order)
	if err != nil {
		return nil, fmt.Errorf("creating invoice for order %d: %w", orderID, err)
	}

	s.log.Info("invoice created", "order_id", orderID, "invoice", ref.InvoiceNumber)
	return ref, nil
}

// invoiceable reports whether an order status permits invoicing. Awaiting
// orders are not yet confirmed and cancelled/returned orders must never be
// invoiced.
func invoiceable(status string) bool {
	switch status {
	case trendyol.OrderStatusAwaiting,
		trendyol.OrderStatusCancelled,
		trendyol.OrderStatusReturned:
		return false
	default:
		return true
	}
}

// lookupOrder finds an order locally first, then falls back to a bounded
// scan of the marketplace listing.
func (s *OrderSync) lookupOrder(ctx context.Context, orderID int64) (*domain.ImportedOrder, error) {
	if s.store != nil {
		o, err := s.store.GetOrder(ctx, orderID)
		if err != nil {
			return nil, fmt.Errorf("reading order %d: %w", orderID, err)
		}
		if o != nil {
			return o, nil
		}
	}

	for page := 0; page < orderLookupPages; page++ {
		op, err := s.client.ListOrders(ctx, trendyol.OrderListQuery{
			Page: page,
			Size: orderLookupPageSize,
		})
		if err != nil {
			return nil, fmt.Errorf("looking up order %d: %w", orderID, err)
		}

		for _, o := range op.Content {
			if o.ID == orderID {
				flat := flattenOrder(o)
				return &flat, nil
			}
		}

		if op.TotalPages != 0 && page >= op.TotalPages-1 {
			break
		}
		if len(op.Content) == 0 {
			break
		}
	}

	return nil, &trendyol.Error{
		Kind:    trendyol.KindNotFound,
		Message: fmt.Sprintf("order %d not found", orderID),
	}
}

func flattenOrder(o trendyol.Order) domain.ImportedOrder {
	out := domain.ImportedOrder{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		Status:        o.Status,
		TotalPrice:    o.TotalPrice,
		CustomerFirst: o.CustomerFirstName,
		CustomerLast:  o.CustomerLastName,
		OrderDate:     o.PlacedAt(),
	}
	for _, l := range o.Lines {
		out.Lines = append(out.Lines, domain.OrderLine{
			Barcode:     l.Barcode,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			Price:       l.Price,
		})
	}
	return out
}
