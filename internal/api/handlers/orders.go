package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/commercekit/marketsync/internal/trendyol"
	domain "github.com/commercekit/marketsync/pkg/types"
)

// OrderService reads marketplace orders and gates invoicing.
type OrderService interface {
	FetchOrders(ctx context.Context, q trendyol.OrderListQuery) (*trendyol.OrderPage, error)
	ImportOrders(ctx context.Context, q trendyol.OrderListQuery) (int, error)
	CreateInvoice(ctx context.Context, orderID int64) (*domain.InvoiceRef, error)
}

// OrdersHandler handles order listing, import, and invoicing.
type OrdersHandler struct {
	orders OrderService
}

// NewOrdersHandler creates an OrdersHandler.
func NewOrdersHandler(orders OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

// ListOrdersInput filters the marketplace order listing.
type ListOrdersInput struct {
	Page      int    `query:"page"       doc:"Page number (0-based)" minimum:"0"`
	Size      int    `query:"size"       doc:"Page size (default 50)" minimum:"1" maximum:"200"`
	Status    string `query:"status"     doc:"Filter by order status" enum:"Awaiting,Created,Picking,Invoiced,Shipped,Delivered,Cancelled,Returned,"`
	StartDate string `query:"start_date" doc:"RFC 3339 lower bound on order date"`
	EndDate   string `query:"end_date"   doc:"RFC 3339 upper bound on order date"`
}

// ListOrdersOutput is one page of marketplace orders.
type ListOrdersOutput struct {
	Body trendyol.OrderPage
}

// ListOrders lists marketplace orders with pagination and filters. Orders
// are read-only; this never changes order state upstream.
func (h *OrdersHandler) ListOrders(
	ctx context.Context,
	input *ListOrdersInput,
) (*ListOrdersOutput, error) {
	q, err := orderQuery(input.Page, input.Size, input.Status, input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	page, err := h.orders.FetchOrders(ctx, q)
	if err != nil {
		return nil, mapError(err)
	}

	return &ListOrdersOutput{Body: *page}, nil
}

// ImportOrdersInput selects the order window to import.
type ImportOrdersInput struct {
	Body struct {
		Status    string `json:"status,omitempty"    doc:"Filter by order status"`
		StartDate string `json:"startDate,omitempty" doc:"RFC 3339 lower bound on order date"`
		EndDate   string `json:"endDate,omitempty"   doc:"RFC 3339 upper bound on order date"`
	}
}

// ImportOrdersOutput reports how many orders were imported.
type ImportOrdersOutput struct {
	Body struct {
		Imported int `json:"imported"`
	}
}

// ImportOrders pulls matching orders and persists them server-side.
func (h *OrdersHandler) ImportOrders(
	ctx context.Context,
	input *ImportOrdersInput,
) (*ImportOrdersOutput, error) {
	q, err := orderQuery(0, 200, input.Body.Status, input.Body.StartDate, input.Body.EndDate)
	if err != nil {
		return nil, err
	}

	n, err := h.orders.ImportOrders(ctx, q)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &ImportOrdersOutput{}
	resp.Body.Imported = n
	return resp, nil
}

// CreateInvoiceInput names the order to invoice.
type CreateInvoiceInput struct {
	OrderID int64 `path:"orderId" doc:"Marketplace order id"`
}

// CreateInvoiceOutput returns the invoice reference.
type CreateInvoiceOutput struct {
	Body domain.InvoiceRef
}

// CreateInvoice generates an invoice for an order. Orders that are not yet
// confirmed, cancelled, or returned are rejected with a conflict.
func (h *OrdersHandler) CreateInvoice(
	ctx context.Context,
	input *CreateInvoiceInput,
) (*CreateInvoiceOutput, error) {
	ref, err := h.orders.CreateInvoice(ctx, input.OrderID)
	if err != nil {
		return nil, mapError(err)
	}

	return &CreateInvoiceOutput{Body: *ref}, nil
}

func orderQuery(page, size int, status, start, end string) (trendyol.OrderListQuery, error) {
	q := trendyol.OrderListQuery{
		Page:   page,
		Size:   size,
		Status: status,
	}
	if q.Size == 0 {
		q.Size = 50
	}
	if start != "" {
		t, err := time.Parse(time.RFC3339, start)
		if err != nil {
			return q, huma.Error422UnprocessableEntity("start_date must be RFC 3339: " + err.Error())
		}
		q.StartDate = &t
	}
	if end != "" {
		t, err := time.Parse(time.RFC3339, end)
		if err != nil {
			return q, huma.Error422UnprocessableEntity("end_date must be RFC 3339: " + err.Error())
		}
		q.EndDate = &t
	}
	return q, nil
}

// RegisterOrderRoutes registers order endpoints with the API.
func RegisterOrderRoutes(api huma.API, h *OrdersHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-orders",
		Method:      http.MethodGet,
		Path:        "/api/v1/orders",
		Summary:     "List marketplace orders",
		Tags:        []string{"orders"},
		Errors:      []int{http.StatusUnprocessableEntity, http.StatusBadGateway},
	}, h.ListOrders)

	huma.Register(api, huma.Operation{
		OperationID: "import-orders",
		Method:      http.MethodPost,
		Path:        "/api/v1/orders/import",
		Summary:     "Import orders",
		Description: "Pulls matching marketplace orders and persists them server-side.",
		Tags:        []string{"orders"},
		Errors:      []int{http.StatusUnprocessableEntity, http.StatusBadGateway},
	}, h.ImportOrders)

	huma.Register(api, huma.Operation{
		OperationID: "create-invoice",
		Method:      http.MethodPost,
		Path:        "/api/v1/orders/{orderId}/invoice",
		Summary:     "Create an invoice for an order",
		Description: "Verifies the order is in an invoiceable status before delegating to the invoicing collaborator.",
		Tags:        []string{"orders"},
		Errors:      []int{http.StatusNotFound, http.StatusConflict, http.StatusBadGateway},
	}, h.CreateInvoice)
}
