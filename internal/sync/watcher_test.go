package sync_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	syncer "github.com/commercekit/marketsync/internal/sync"
	"github.com/commercekit/marketsync/internal/trendyol"
)

func waitForState(t *testing.T, w *syncer.Watcher, id string, want syncer.WatchState) syncer.Watch {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		watch, ok := w.Get(id)
		require.True(t, ok)
		if watch.State == want {
			return watch
		}
		select {
		case <-deadline:
			t.Fatalf("watch %s stuck in state %s, want %s", id, watch.State, want)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestWatcher_CompletedBatch(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		batchStatuses: []trendyol.BatchStatus{
			{Status: "PROCESSING"},
			{Status: "DONE", ItemCount: 1},
		},
	}
	w := syncer.NewWatcher(syncer.NewInventorySync(client, nil), nil)

	id := w.Start("batch-1", time.Millisecond, time.Second)
	require.NotEmpty(t, id)

	watch := waitForState(t, w, id, syncer.WatchDone)
	assert.Equal(t, "batch-1", watch.BatchRequestID)
	require.NotNil(t, watch.Result)
	assert.Equal(t, trendyol.BatchDone, watch.Result.State)
}

func TestWatcher_FailedPoll(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		batchErr: &trendyol.Error{Kind: trendyol.KindTransientServer, Status: 503},
	}
	w := syncer.NewWatcher(syncer.NewInventorySync(client, nil), nil)

	id := w.Start("batch-1", time.Millisecond, time.Second)

	watch := waitForState(t, w, id, syncer.WatchFailed)
	assert.Contains(t, watch.Error, "transient_server")
}

func TestWatcher_Cancel(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		batchStatuses: []trendyol.BatchStatus{{Status: "PROCESSING"}},
	}
	w := syncer.NewWatcher(syncer.NewInventorySync(client, nil), nil)

	id := w.Start("batch-1", time.Millisecond, time.Minute)
	require.True(t, w.Cancel(id))

	watch := waitForState(t, w, id, syncer.WatchCanceled)
	assert.Equal(t, syncer.WatchCanceled, watch.State)
}

func TestWatcher_UnknownID(t *testing.T) {
	t.Parallel()

	w := syncer.NewWatcher(syncer.NewInventorySync(&fakeClient{}, nil), nil)

	_, ok := w.Get("nope")
	assert.False(t, ok)
	assert.False(t, w.Cancel("nope"))
}

func TestWatcher_IndependentWatches(t *testing.T) {
	t.Parallel()

	done := &fakeClient{batchStatuses: []trendyol.BatchStatus{{Status: "DONE"}}}
	w := syncer.NewWatcher(syncer.NewInventorySync(done, nil), nil)

	a := w.Start("batch-a", time.Millisecond, time.Second)
	b := w.Start("batch-b", time.Millisecond, time.Second)
	require.NotEqual(t, a, b)

	waitForState(t, w, a, syncer.WatchDone)
	waitForState(t, w, b, syncer.WatchDone)
}
