package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	syncer "github.com/commercekit/marketsync/internal/sync"
	"github.com/commercekit/marketsync/internal/trendyol"
)

// Submitter submits stock and price updates.
type Submitter interface {
	SubmitUpdate(ctx context.Context, items []trendyol.StockPriceUpdate) (string, error)
}

// Poller reads batch progress.
type Poller interface {
	PollBatch(ctx context.Context, batchID string) (*syncer.BatchSnapshot, error)
	AwaitCompletion(ctx context.Context, batchID string, interval, maxWait time.Duration) (*syncer.BatchSnapshot, error)
}

// InventoryHandler handles stock/price submission and batch tracking.
type InventoryHandler struct {
	submitter Submitter
	poller    Poller
	watcher   *syncer.Watcher
}

// NewInventoryHandler creates an InventoryHandler. watcher may be nil;
// background watches are then unavailable.
func NewInventoryHandler(s Submitter, p Poller, w *syncer.Watcher) *InventoryHandler {
	return &InventoryHandler{submitter: s, poller: p, watcher: w}
}

// SubmitInventoryInput carries the stock/price items to update.
type SubmitInventoryInput struct {
	Body struct {
		Items []trendyol.StockPriceUpdate `json:"items" minItems:"1" doc:"Stock and price updates, one per barcode"`
	}
}

// SubmitInventoryOutput acknowledges an accepted update batch.
type SubmitInventoryOutput struct {
	Body struct {
		BatchRequestID string `json:"batchRequestId" doc:"Poll this id for the batch outcome"`
	}
}

// SubmitInventory pushes stock and price changes. Acceptance only means the
// batch was queued; per-item failures surface via the batch status.
func (h *InventoryHandler) SubmitInventory(
	ctx context.Context,
	input *SubmitInventoryInput,
) (*SubmitInventoryOutput, error) {
	batchID, err := h.submitter.SubmitUpdate(ctx, input.Body.Items)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &SubmitInventoryOutput{}
	resp.Body.BatchRequestID = batchID
	return resp, nil
}

// GetBatchInput names the batch to inspect.
type GetBatchInput struct {
	BatchID string `path:"batchId" doc:"Batch request id returned by a push"`
}

// BatchView is the API shape of a batch snapshot.
type BatchView struct {
	BatchRequestID string               `json:"batchRequestId"`
	State          string               `json:"state" enum:"pending,processing,done,failed"`
	ItemCount      int                  `json:"itemCount"`
	FailedItems    []syncer.ItemFailure `json:"failedItems,omitempty"`
	Items          []trendyol.BatchItem `json:"items,omitempty"`
}

// GetBatchOutput returns the current batch state.
type GetBatchOutput struct {
	Body BatchView
}

// GetBatch reports the current state of a batch, including per-item
// failure reasons once the batch is terminal.
func (h *InventoryHandler) GetBatch(
	ctx context.Context,
	input *GetBatchInput,
) (*GetBatchOutput, error) {
	snap, err := h.poller.PollBatch(ctx, input.BatchID)
	if err != nil {
		return nil, mapError(err)
	}

	return &GetBatchOutput{Body: batchView(input.BatchID, snap)}, nil
}

// WaitBatchInput configures a blocking wait on a batch.
type WaitBatchInput struct {
	BatchID string `path:"batchId" doc:"Batch request id returned by a push"`
	Body    struct {
		IntervalSeconds int  `json:"intervalSeconds,omitempty" minimum:"1" maximum:"60"  doc:"Seconds between polls (default 5)"`
		MaxWaitSeconds  int  `json:"maxWaitSeconds,omitempty"  minimum:"1" maximum:"600" doc:"Give up after this many seconds (default 300)"`
		Background      bool `json:"background,omitempty"      doc:"Return immediately and watch server-side"`
	}
}

// WaitBatchOutput is either the terminal batch state or, for background
// watches, the watch id to query later.
type WaitBatchOutput struct {
	Body struct {
		WatchID string     `json:"watchId,omitempty" doc:"Set only for background watches"`
		Batch   *BatchView `json:"batch,omitempty"`
	}
}

// WaitBatch blocks until the batch reaches a terminal state or the wait
// budget runs out. With background=true it registers a server-side watch
// instead and returns its id immediately.
func (h *InventoryHandler) WaitBatch(
	ctx context.Context,
	input *WaitBatchInput,
) (*WaitBatchOutput, error) {
	interval := time.Duration(input.Body.IntervalSeconds) * time.Second
	maxWait := time.Duration(input.Body.MaxWaitSeconds) * time.Second

	resp := &WaitBatchOutput{}

	if input.Body.Background {
		if h.watcher == nil {
			return nil, huma.Error422UnprocessableEntity("background watches are not enabled")
		}
		resp.Body.WatchID = h.watcher.Start(input.BatchID, interval, maxWait)
		return resp, nil
	}

	snap, err := h.poller.AwaitCompletion(ctx, input.BatchID, interval, maxWait)
	if err != nil {
		return nil, mapError(err)
	}

	view := batchView(input.BatchID, snap)
	resp.Body.Batch = &view
	return resp, nil
}

// GetWatchInput names the background watch to inspect.
type GetWatchInput struct {
	WatchID string `path:"watchId" doc:"Watch id returned by a background wait"`
}

// GetWatchOutput reports a background watch.
type GetWatchOutput struct {
	Body struct {
		WatchID string     `json:"watchId"`
		BatchID string     `json:"batchId"`
		State   string     `json:"state" enum:"running,done,failed,canceled"`
		Error   string     `json:"error,omitempty"`
		Batch   *BatchView `json:"batch,omitempty"`
	}
}

// GetWatch reports the state of a server-side batch watch.
func (h *InventoryHandler) GetWatch(
	_ context.Context,
	input *GetWatchInput,
) (*GetWatchOutput, error) {
	if h.watcher == nil {
		return nil, huma.Error404NotFound("background watches are not enabled")
	}
	w, ok := h.watcher.Get(input.WatchID)
	if !ok {
		return nil, huma.Error404NotFound("no watch with id " + input.WatchID)
	}

	resp := &GetWatchOutput{}
	resp.Body.WatchID = w.ID
	resp.Body.BatchID = w.BatchRequestID
	resp.Body.State = string(w.State)
	resp.Body.Error = w.Error
	if w.Result != nil {
		view := batchView(w.BatchRequestID, w.Result)
		resp.Body.Batch = &view
	}
	return resp, nil
}

func batchView(batchID string, snap *syncer.BatchSnapshot) BatchView {
	view := BatchView{
		BatchRequestID: batchID,
		State:          string(snap.State),
	}
	view.ItemCount = snap.Status.ItemCount
	view.Items = snap.Status.Items
	if snap.State.Terminal() {
		view.FailedItems = syncer.FailedItems(snap.Status)
	}
	return view
}

// RegisterInventoryRoutes registers inventory and batch endpoints.
func RegisterInventoryRoutes(api huma.API, h *InventoryHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "submit-inventory",
		Method:      http.MethodPost,
		Path:        "/api/v1/inventory",
		Summary:     "Update stock and prices",
		Description: "Submits stock and price changes for existing marketplace products as one batch.",
		Tags:        []string{"inventory"},
		Errors:      []int{http.StatusUnprocessableEntity, http.StatusBadGateway},
	}, h.SubmitInventory)

	huma.Register(api, huma.Operation{
		OperationID: "get-batch",
		Method:      http.MethodGet,
		Path:        "/api/v1/batches/{batchId}",
		Summary:     "Get batch status",
		Tags:        []string{"batches"},
		Errors:      []int{http.StatusNotFound, http.StatusBadGateway},
	}, h.GetBatch)

	huma.Register(api, huma.Operation{
		OperationID: "wait-batch",
		Method:      http.MethodPost,
		Path:        "/api/v1/batches/{batchId}/wait",
		Summary:     "Wait for a batch to finish",
		Description: "Polls the batch until it reaches a terminal state or the wait budget runs out.",
		Tags:        []string{"batches"},
		Errors:      []int{http.StatusNotFound, http.StatusGatewayTimeout, http.StatusBadGateway},
	}, h.WaitBatch)

	huma.Register(api, huma.Operation{
		OperationID: "get-watch",
		Method:      http.MethodGet,
		Path:        "/api/v1/watches/{watchId}",
		Summary:     "Get a background batch watch",
		Tags:        []string{"batches"},
		Errors:      []int{http.StatusNotFound},
	}, h.GetWatch)
}
