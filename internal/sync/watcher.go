package sync

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/commercekit/marketsync/internal/metrics"
)

// WatchState is the lifecycle of one background batch watch.
type WatchState string

// Watch states.
const (
	WatchRunning  WatchState = "running"
	WatchDone     WatchState = "done"
	WatchFailed   WatchState = "failed"
	WatchCanceled WatchState = "canceled"
)

// Watch is the observable state of one polling loop.
type Watch struct {
	ID             string         `json:"id"`
	BatchRequestID string         `json:"batchRequestId"`
	State          WatchState     `json:"state"`
	Result         *BatchSnapshot `json:"result,omitempty"`
	Error          string         `json:"error,omitempty"`
	StartedAt      time.Time      `json:"startedAt"`
}

type watchEntry struct {
	watch  Watch
	cancel context.CancelFunc
}

// Watcher runs AwaitCompletion loops for multiple in-flight batches
// concurrently. Each loop is independently cancellable and shares no
// mutable state with the others; canceling a watch only stops observing
// the batch, never the batch itself.
type Watcher struct {
	inv *InventorySync
	log *slog.Logger

	mu      sync.Mutex
	watches map[string]*watchEntry
}

// NewWatcher creates a Watcher over the given InventorySync.
func NewWatcher(inv *InventorySync, log *slog.Logger) *Watcher {
	if log == nil {
		log = slog.Default()
	}
	return &Watcher{
		inv:     inv,
		log:     log,
		watches: map[string]*watchEntry{},
	}
}

// Start launches a background polling loop for the batch and returns the
// watch id. The caller polls Get for the outcome.
func (w *Watcher) Start(batchRequestID string, pollInterval, maxWait time.Duration) string {
	ctx, cancel := context.WithCancel(context.Background())

	id := uuid.NewString()
	entry := &watchEntry{
		watch: Watch{
			ID:             id,
			BatchRequestID: batchRequestID,
			State:          WatchRunning,
			StartedAt:      time.Now(),
		},
		cancel: cancel,
	}

	w.mu.Lock()
	w.watches[id] = entry
	w.mu.Unlock()

	metrics.BatchWatchesActive.Inc()

	go w.run(ctx, id, batchRequestID, pollInterval, maxWait)

	return id
}

func (w *Watcher) run(ctx context.Context, id, batchRequestID string, pollInterval, maxWait time.Duration) {
	defer metrics.BatchWatchesActive.Dec()

	snap, err := w.inv.AwaitCompletion(ctx, batchRequestID, pollInterval, maxWait)

	w.mu.Lock()
	defer w.mu.Unlock()

	entry, ok := w.watches[id]
	if !ok {
		return
	}

	switch {
	case ctx.Err() != nil:
		entry.watch.State = WatchCanceled
	case err != nil:
		entry.watch.State = WatchFailed
		entry.watch.Error = err.Error()
		w.log.Warn("batch watch failed", "watch_id", id, "batch_request_id", batchRequestID, "err", err)
	default:
		entry.watch.State = WatchDone
		entry.watch.Result = snap
	}
}

// Get returns a snapshot of a watch, or false if the id is unknown.
func (w *Watcher) Get(id string) (Watch, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	entry, ok := w.watches[id]
	if !ok {
		return Watch{}, false
	}
	return entry.watch, true
}

// Cancel stops a running watch. Safe to call on finished watches.
func (w *Watcher) Cancel(id string) bool {
	w.mu.Lock()
	entry, ok := w.watches[id]
	w.mu.Unlock()

	if !ok {
		return false
	}
	entry.cancel()
	return true
}

// Shutdown cancels every running watch.
func (w *Watcher) Shutdown() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, entry := range w.watches {
		entry.cancel()
	}
}
