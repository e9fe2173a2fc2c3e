package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/commercekit/marketsync/internal/store"
	"github.com/commercekit/marketsync/internal/trendyol"
	domain "github.com/commercekit/marketsync/pkg/types"
)

// Pusher pushes a local product to the marketplace.
type Pusher interface {
	Push(ctx context.Context, p domain.LocalProduct) (string, error)
	Import(remote trendyol.Product) domain.ProductDraft
}

// RemoteCatalog is the read side of the marketplace product catalog.
type RemoteCatalog interface {
	ListProducts(ctx context.Context, q trendyol.ProductListQuery) (*trendyol.ProductPage, error)
	GetProductByBarcode(ctx context.Context, barcode string) (*trendyol.Product, error)
}

// ProductsHandler handles product push, import, and remote listing.
type ProductsHandler struct {
	pusher  Pusher
	catalog RemoteCatalog
	drafts  store.Store
}

// NewProductsHandler creates a ProductsHandler. drafts may be nil; imports
// are then never persisted server-side.
func NewProductsHandler(p Pusher, c RemoteCatalog, drafts store.Store) *ProductsHandler {
	return &ProductsHandler{pusher: p, catalog: c, drafts: drafts}
}

// PushProductInput is a local product to push.
type PushProductInput struct {
	Body domain.LocalProduct
}

// PushProductOutput acknowledges an asynchronous push.
type PushProductOutput struct {
	Body struct {
		BatchRequestID string `json:"batchRequestId" doc:"Poll this id for moderation outcome"`
	}
}

// PushProduct submits a product for creation on the marketplace. The
// response carries only the batch id; approval arrives later via polling.
func (h *ProductsHandler) PushProduct(
	ctx context.Context,
	input *PushProductInput,
) (*PushProductOutput, error) {
	if input.Body.SKU == "" {
		return nil, huma.Error422UnprocessableEntity("sku is required")
	}

	batchID, err := h.pusher.Push(ctx, input.Body)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &PushProductOutput{}
	resp.Body.BatchRequestID = batchID
	return resp, nil
}

// ImportProductInput selects a marketplace product to import.
type ImportProductInput struct {
	Barcode string `path:"barcode" doc:"Marketplace barcode to import"`
	Persist bool   `query:"persist" doc:"Store the draft server-side as well"`
}

// ImportProductOutput returns the local draft built from the marketplace
// product.
type ImportProductOutput struct {
	Body domain.ProductDraft
}

// ImportProduct fetches a marketplace product by barcode and maps it to a
// local draft. The caller persists the draft unless persist=true is set.
func (h *ProductsHandler) ImportProduct(
	ctx context.Context,
	input *ImportProductInput,
) (*ImportProductOutput, error) {
	remote, err := h.catalog.GetProductByBarcode(ctx, input.Barcode)
	if err != nil {
		return nil, mapError(err)
	}

	draft := h.pusher.Import(*remote)

	if input.Persist && h.drafts != nil {
		if err := h.drafts.SaveDraft(ctx, draft); err != nil {
			return nil, huma.Error500InternalServerError("saving draft: " + err.Error())
		}
	}

	return &ImportProductOutput{Body: draft}, nil
}

// ListRemoteProductsInput filters the marketplace product listing.
type ListRemoteProductsInput struct {
	Page     int    `query:"page"     doc:"Page number (0-based)"         minimum:"0"`
	Size     int    `query:"size"     doc:"Page size (default 50)"        minimum:"1" maximum:"1000"`
	Approved string `query:"approved" doc:"Filter by moderation approval" enum:"true,false,"`
	OnSale   string `query:"on_sale"  doc:"Filter by on-sale flag"        enum:"true,false,"`
	Barcode  string `query:"barcode"  doc:"Filter by exact barcode"`
}

// ListRemoteProductsOutput is one page of marketplace products.
type ListRemoteProductsOutput struct {
	Body trendyol.ProductPage
}

// ListRemoteProducts lists the supplier's products as the marketplace sees
// them, including moderation state.
func (h *ProductsHandler) ListRemoteProducts(
	ctx context.Context,
	input *ListRemoteProductsInput,
) (*ListRemoteProductsOutput, error) {
	q := trendyol.ProductListQuery{
		Page:    input.Page,
		Size:    input.Size,
		Barcode: input.Barcode,
	}
	if q.Size == 0 {
		q.Size = 50
	}
	if input.Approved != "" {
		v := input.Approved == "true"
		q.Approved = &v
	}
	if input.OnSale != "" {
		v := input.OnSale == "true"
		q.OnSale = &v
	}

	page, err := h.catalog.ListProducts(ctx, q)
	if err != nil {
		return nil, mapError(err)
	}

	return &ListRemoteProductsOutput{Body: *page}, nil
}

// RegisterProductRoutes registers product endpoints with the API.
func RegisterProductRoutes(api huma.API, h *ProductsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "push-product",
		Method:      http.MethodPost,
		Path:        "/api/v1/products/push",
		Summary:     "Push a product to the marketplace",
		Description: "Submits a local product for asynchronous creation and moderation on the marketplace.",
		Tags:        []string{"products"},
		Errors:      []int{http.StatusNotFound, http.StatusUnprocessableEntity, http.StatusBadGateway},
	}, h.PushProduct)

	huma.Register(api, huma.Operation{
		OperationID: "import-product",
		Method:      http.MethodPost,
		Path:        "/api/v1/products/import/{barcode}",
		Summary:     "Import a marketplace product",
		Description: "Builds a local product draft from the marketplace product with the given barcode.",
		Tags:        []string{"products"},
		Errors:      []int{http.StatusNotFound, http.StatusBadGateway},
	}, h.ImportProduct)

	huma.Register(api, huma.Operation{
		OperationID: "list-remote-products",
		Method:      http.MethodGet,
		Path:        "/api/v1/products",
		Summary:     "List marketplace products",
		Description: "Lists the supplier's marketplace products with moderation and sale state.",
		Tags:        []string{"products"},
		Errors:      []int{http.StatusBadGateway},
	}, h.ListRemoteProducts)
}
