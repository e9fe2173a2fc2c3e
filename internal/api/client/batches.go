package client

import (
	"context"
	"net/url"

	syncer "github.com/commercekit/marketsync/internal/sync"
	"github.com/commercekit/marketsync/internal/trendyol"
)

// Batch mirrors the daemon's batch view.
type Batch struct {
	BatchRequestID string               `json:"batchRequestId"`
	State          string               `json:"state"`
	ItemCount      int                  `json:"itemCount"`
	FailedItems    []syncer.ItemFailure `json:"failedItems,omitempty"`
	Items          []trendyol.BatchItem `json:"items,omitempty"`
}

// WaitResult is the outcome of a batch wait; exactly one of WatchID and
// Batch is set.
type WaitResult struct {
	WatchID string `json:"watchId,omitempty"`
	Batch   *Batch `json:"batch,omitempty"`
}

// WatchStatus mirrors the daemon's background watch view.
type WatchStatus struct {
	WatchID string `json:"watchId"`
	BatchID string `json:"batchId"`
	State   string `json:"state"`
	Error   string `json:"error,omitempty"`
	Batch   *Batch `json:"batch,omitempty"`
}

// SubmitInventory pushes stock and price updates as one batch.
func (c *Client) SubmitInventory(ctx context.Context, items []trendyol.StockPriceUpdate) (*BatchAck, error) {
	body := map[string]any{"items": items}
	var ack BatchAck
	if err := c.post(ctx, "/api/v1/inventory", body, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// GetBatch returns the current state of a batch.
func (c *Client) GetBatch(ctx context.Context, batchID string) (*Batch, error) {
	var b Batch
	if err := c.get(ctx, "/api/v1/batches/"+url.PathEscape(batchID), &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// WaitOptions configure a blocking or background batch wait.
type WaitOptions struct {
	IntervalSeconds int  `json:"intervalSeconds,omitempty"`
	MaxWaitSeconds  int  `json:"maxWaitSeconds,omitempty"`
	Background      bool `json:"background,omitempty"`
}

// WaitBatch blocks until the batch finishes, or registers a background
// watch when opts.Background is set.
func (c *Client) WaitBatch(ctx context.Context, batchID string, opts WaitOptions) (*WaitResult, error) {
	var result WaitResult
	path := "/api/v1/batches/" + url.PathEscape(batchID) + "/wait"
	if err := c.post(ctx, path, opts, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetWatch returns the state of a background batch watch.
func (c *Client) GetWatch(ctx context.Context, watchID string) (*WatchStatus, error) {
	var w WatchStatus
	if err := c.get(ctx, "/api/v1/watches/"+url.PathEscape(watchID), &w); err != nil {
		return nil, err
	}
	return &w, nil
}
