package sync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/commercekit/marketsync/internal/metrics"
	"github.com/commercekit/marketsync/internal/trendyol"
)

const (
	defaultPollInterval = 5 * time.Second
	defaultMaxWait      = 5 * time.Minute
)

// InventorySync submits batched stock/price updates and tracks their
// asynchronous completion.
type InventorySync struct {
	client trendyol.Client
	log    *slog.Logger
}

// NewInventorySync creates an InventorySync.
func NewInventorySync(client trendyol.Client, log *slog.Logger) *InventorySync {
	if log == nil {
		log = slog.Default()
	}
	return &InventorySync{client: client, log: log}
}

// SubmitUpdate validates and submits a stock/price batch, returning the
// batch request id. Validation is all-or-nothing: one malformed line
// rejects the whole batch locally and no request is sent, so the
// marketplace never discovers a malformed line.
func (s *InventorySync) SubmitUpdate(ctx context.Context, items []trendyol.StockPriceUpdate) (string, error) {
	if err := validateItems(items); err != nil {
		return "", err
	}

	batchID, err := s.client.UpdateStockAndPrice(ctx, items)
	if err != nil {
		return "", fmt.Errorf("submitting stock update: %w", err)
	}

	metrics.StockUpdatesTotal.Inc()
	s.log.Info("stock update submitted", "items", len(items), "batch_request_id", batchID)

	return batchID, nil
}

func validateItems(items []trendyol.StockPriceUpdate) error {
	if len(items) == 0 {
		return &trendyol.Error{
			Kind:    trendyol.KindValidation,
			Message: "stock update batch is empty",
		}
	}

	for i, it := range items {
		switch {
		case it.Barcode == "":
			return &trendyol.Error{
				Kind:    trendyol.KindValidation,
				Message: fmt.Sprintf("item %d: barcode is required", i),
			}
		case it.Quantity < 0:
			return &trendyol.Error{
				Kind:    trendyol.KindValidation,
				Message: fmt.Sprintf("item %d (%s): quantity must be >= 0, got %d", i, it.Barcode, it.Quantity),
			}
		case it.SalePrice < 0 || it.ListPrice < 0:
			return &trendyol.Error{
				Kind:    trendyol.KindValidation,
				Message: fmt.Sprintf("item %d (%s): prices must be >= 0", i, it.Barcode),
			}
		}
	}

	return nil
}

// BatchSnapshot pairs the raw upstream batch status with its parsed state.
type BatchSnapshot struct {
	State  trendyol.BatchState  `json:"state"`
	Status trendyol.BatchStatus `json:"status"`
}

// PollBatch fetches and parses the current state of a batch. An upstream
// status this build does not know is an explicit error, never a silent
// misclassification.
func (s *InventorySync) PollBatch(ctx context.Context, batchRequestID string) (*BatchSnapshot, error) {
	status, err := s.client.GetBatchStatus(ctx, batchRequestID)
	if err != nil {
		return nil, fmt.Errorf("polling batch %s: %w", batchRequestID, err)
	}

	state, err := trendyol.ParseBatchState(status.Status)
	if err != nil {
		return nil, fmt.Errorf("batch %s: %w", batchRequestID, err)
	}

	return &BatchSnapshot{State: state, Status: *status}, nil
}

// AwaitCompletion polls a batch on a fixed interval until it reaches a
// terminal state or maxWait elapses. Hitting maxWait yields a timeout
// error distinct from a failed batch: the submission may still complete
// upstream, and the caller should re-poll rather than assume failure.
// Canceling ctx stops watching without touching the batch.
func (s *InventorySync) AwaitCompletion(
	ctx context.Context,
	batchRequestID string,
	pollInterval, maxWait time.Duration,
) (*BatchSnapshot, error) {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	if maxWait <= 0 {
		maxWait = defaultMaxWait
	}

	deadline := time.NewTimer(maxWait)
	defer deadline.Stop()
	tick := time.NewTicker(pollInterval)
	defer tick.Stop()

	for {
		snap, err := s.PollBatch(ctx, batchRequestID)
		if err != nil {
			return nil, err
		}

		if snap.State.Terminal() {
			s.log.Info("batch completed",
				"batch_request_id", batchRequestID,
				"state", snap.State,
				"failed_items", snap.Status.FailedItemCount,
			)
			return snap, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			return nil, &trendyol.Error{
				Kind: trendyol.KindTimeout,
				Message: fmt.Sprintf(
					"batch %s still %s after %s; it may yet complete, re-poll later",
					batchRequestID, snap.State, maxWait,
				),
			}
		case <-tick.C:
		}
	}
}

// ItemFailure is one failed line of a batch, matched back to the submitted
// input by position.
type ItemFailure struct {
	Index   int      `json:"index"`
	Barcode string   `json:"barcode"`
	Reasons []string `json:"reasons"`
}

// FailedItems extracts per-item failures from a batch status. Item order is
// preserved end-to-end by the marketplace, so the index identifies the
// original input line; items absent from the result succeeded.
func FailedItems(status trendyol.BatchStatus) []ItemFailure {
	var failures []ItemFailure
	for i, item := range status.Items {
		if len(item.FailureReasons) == 0 {
			continue
		}
		failures = append(failures, ItemFailure{
			Index:   i,
			Barcode: item.RequestItem.Barcode,
			Reasons: item.FailureReasons,
		})
	}
	return failures
}
