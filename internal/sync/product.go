// Package sync orchestrates the outbound and inbound flows between the
// local catalog and the marketplace: product pushes and imports, batched
// stock/price updates with asynchronous completion tracking, and order
// retrieval with optional invoicing.
package sync

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/commercekit/marketsync/internal/metrics"
	"github.com/commercekit/marketsync/internal/refdata"
	"github.com/commercekit/marketsync/internal/trendyol"
	domain "github.com/commercekit/marketsync/pkg/types"
)

const defaultCurrency = "TRY"

// ProductSync pushes local products to the marketplace and imports
// marketplace products into local drafts.
type ProductSync struct {
	client   trendyol.Client
	refs     *refdata.Cache
	log      *slog.Logger
	currency string
	cargoID  int
}

// ProductSyncOption configures ProductSync.
type ProductSyncOption func(*ProductSync)

// WithProductLogger sets the logger.
func WithProductLogger(l *slog.Logger) ProductSyncOption {
	return func(s *ProductSync) {
		s.log = l
	}
}

// WithCurrency overrides the fixed currency code put on pushed products.
func WithCurrency(code string) ProductSyncOption {
	return func(s *ProductSync) {
		s.currency = code
	}
}

// WithCargoProvider sets the cargo company id attached to pushed products.
func WithCargoProvider(id int) ProductSyncOption {
	return func(s *ProductSync) {
		s.cargoID = id
	}
}

// NewProductSync creates a ProductSync.
func NewProductSync(client trendyol.Client, refs *refdata.Cache, opts ...ProductSyncOption) *ProductSync {
	s := &ProductSync{
		client:   client,
		refs:     refs,
		log:      slog.Default(),
		currency: defaultCurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Push submits a local product for creation on the marketplace and returns
// the batch request id. Submission is asynchronous: the marketplace
// moderates the card later, and approval status arrives via batch polling,
// never in this response.
//
// Pushing the same SKU twice creates two independent submissions; the
// marketplace converges on the last accepted write per barcode. Callers
// wanting client-side de-duplication should hash barcode+content and skip
// unchanged pushes themselves.
func (s *ProductSync) Push(ctx context.Context, p domain.LocalProduct) (string, error) {
	categoryID, err := s.refs.Resolve(ctx, refdata.KindCategory, p.Category)
	if err != nil {
		return "", fmt.Errorf("resolving category for %s: %w", p.SKU, err)
	}

	brandID, err := s.refs.Resolve(ctx, refdata.KindBrand, p.Brand)
	if err != nil {
		return "", fmt.Errorf("resolving brand for %s: %w", p.SKU, err)
	}

	card := s.buildCard(p, categoryID, brandID)

	batchID, err := s.client.CreateProducts(ctx, []trendyol.Product{card})
	if err != nil {
		return "", fmt.Errorf("pushing product %s: %w", p.SKU, err)
	}

	metrics.ProductPushesTotal.Inc()
	s.log.Info("product pushed",
		"sku", p.SKU,
		"category_id", categoryID,
		"brand_id", brandID,
		"batch_request_id", batchID,
	)

	return batchID, nil
}

func (s *ProductSync) buildCard(p domain.LocalProduct, categoryID, brandID int) trendyol.Product {
	card := trendyol.Product{
		// The local SKU serves as both barcode and stock code upstream.
		Barcode:        p.SKU,
		StockCode:      p.SKU,
		ProductMainID:  p.SKU,
		Title:          p.Name,
		Description:    p.Description,
		BrandID:        brandID,
		CategoryID:     categoryID,
		Quantity:       p.Stock,
		VATRate:        p.VATRate,
		CurrencyType:   s.currency,
		CargoCompanyID: s.cargoID,
	}

	card.ListPrice = p.Price
	card.SalePrice = p.Price
	if p.DiscountPrice > 0 && p.DiscountPrice < p.Price {
		card.SalePrice = p.DiscountPrice
	}

	for _, u := range p.Images {
		card.Images = append(card.Images, trendyol.ProductImage{URL: u})
	}
	for name, value := range p.Attributes {
		card.Attributes = append(card.Attributes, trendyol.ProductAttribute{
			AttributeName:        name,
			CustomAttributeValue: value,
		})
	}

	return card
}

// Import maps a marketplace product to a local draft. It never persists;
// the caller owns the decision to store the draft.
func (s *ProductSync) Import(remote trendyol.Product) domain.ProductDraft {
	draft := domain.ProductDraft{
		SKU:         remote.Barcode,
		Name:        remote.Title,
		Description: remote.Description,
		Brand:       remote.Brand,
		Stock:       remote.Quantity,
		Price:       remote.ListPrice,
		Approved:    remote.Approved,
		OnSale:      remote.OnSale,
	}

	if remote.SalePrice > 0 && remote.SalePrice < remote.ListPrice {
		draft.Price = remote.ListPrice
		draft.DiscountPrice = remote.SalePrice
	}

	for _, img := range remote.Images {
		draft.Images = append(draft.Images, img.URL)
	}

	return draft
}
