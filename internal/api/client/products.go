package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/commercekit/marketsync/internal/trendyol"
	domain "github.com/commercekit/marketsync/pkg/types"
)

// BatchAck is the daemon's acknowledgement of an asynchronous submission.
type BatchAck struct {
	BatchRequestID string `json:"batchRequestId"`
}

// PushProduct submits a local product for creation on the marketplace.
func (c *Client) PushProduct(ctx context.Context, p *domain.LocalProduct) (*BatchAck, error) {
	var ack BatchAck
	if err := c.post(ctx, "/api/v1/products/push", p, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// ImportProduct builds a local draft from the marketplace product with the
// given barcode. With persist, the daemon also stores the draft.
func (c *Client) ImportProduct(ctx context.Context, barcode string, persist bool) (*domain.ProductDraft, error) {
	path := "/api/v1/products/import/" + url.PathEscape(barcode)
	if persist {
		path += "?persist=true"
	}
	var draft domain.ProductDraft
	if err := c.post(ctx, path, nil, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// ProductListOptions filter a remote product listing.
type ProductListOptions struct {
	Page     int
	Size     int
	Approved string // "true", "false", or empty
	OnSale   string // "true", "false", or empty
	Barcode  string
}

// ListProducts lists the supplier's products as the marketplace sees them.
func (c *Client) ListProducts(ctx context.Context, opts ProductListOptions) (*trendyol.ProductPage, error) {
	q := url.Values{}
	q.Set("page", fmt.Sprintf("%d", opts.Page))
	if opts.Size > 0 {
		q.Set("size", fmt.Sprintf("%d", opts.Size))
	}
	if opts.Approved != "" {
		q.Set("approved", opts.Approved)
	}
	if opts.OnSale != "" {
		q.Set("on_sale", opts.OnSale)
	}
	if opts.Barcode != "" {
		q.Set("barcode", opts.Barcode)
	}

	var page trendyol.ProductPage
	if err := c.get(ctx, "/api/v1/products?"+q.Encode(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}
