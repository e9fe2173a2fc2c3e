package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/commercekit/marketsync/internal/refdata"
	"github.com/commercekit/marketsync/internal/trendyol"
)

// ListRefdata returns the daemon's cached reference table of the given
// kind (category, brand, or cargo).
func (c *Client) ListRefdata(ctx context.Context, kind string) ([]refdata.Entry, error) {
	var resp struct {
		Kind    string          `json:"kind"`
		Entries []refdata.Entry `json:"entries"`
	}
	if err := c.get(ctx, "/api/v1/refdata/"+url.PathEscape(kind), &resp); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

// InvalidateRefdata drops the daemon's cached table of the given kind.
func (c *Client) InvalidateRefdata(ctx context.Context, kind string) error {
	return c.post(ctx, "/api/v1/refdata/"+url.PathEscape(kind)+"/invalidate", nil, nil)
}

// GetCategoryAttributes returns the attribute schema of one category.
func (c *Client) GetCategoryAttributes(ctx context.Context, categoryID int) (*trendyol.AttributeSchema, error) {
	var schema trendyol.AttributeSchema
	path := fmt.Sprintf("/api/v1/refdata/categories/%d/attributes", categoryID)
	if err := c.get(ctx, path, &schema); err != nil {
		return nil, err
	}
	return &schema, nil
}
