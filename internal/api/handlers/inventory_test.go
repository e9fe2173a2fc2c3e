package handlers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commercekit/marketsync/internal/api/handlers"
	syncer "github.com/commercekit/marketsync/internal/sync"
	"github.com/commercekit/marketsync/internal/trendyol"
)

// fakeBatchService doubles as Submitter and Poller.
type fakeBatchService struct {
	batchID   string
	submitErr error

	snapshot *syncer.BatchSnapshot
	pollErr  error

	submitted [][]trendyol.StockPriceUpdate
}

func (f *fakeBatchService) SubmitUpdate(_ context.Context, items []trendyol.StockPriceUpdate) (string, error) {
	if f.submitErr != nil {
		return "", f.submitErr
	}
	f.submitted = append(f.submitted, items)
	return f.batchID, nil
}

func (f *fakeBatchService) PollBatch(context.Context, string) (*syncer.BatchSnapshot, error) {
	if f.pollErr != nil {
		return nil, f.pollErr
	}
	return f.snapshot, nil
}

func (f *fakeBatchService) AwaitCompletion(context.Context, string, time.Duration, time.Duration) (*syncer.BatchSnapshot, error) {
	if f.pollErr != nil {
		return nil, f.pollErr
	}
	return f.snapshot, nil
}

func doneSnapshot() *syncer.BatchSnapshot {
	return &syncer.BatchSnapshot{
		State: trendyol.BatchDone,
		Status: trendyol.BatchStatus{
			Status:          "DONE",
			ItemCount:       2,
			FailedItemCount: 1,
			Items: []trendyol.BatchItem{
				{RequestItem: trendyol.BatchRequestItem{Barcode: "868001"}, Status: "SUCCESS"},
				{
					RequestItem:    trendyol.BatchRequestItem{Barcode: "868002"},
					Status:         "FAILED",
					FailureReasons: []string{"unknown barcode"},
				},
			},
		},
	}
}

func TestSubmitInventory(t *testing.T) {
	t.Parallel()

	svc := &fakeBatchService{batchID: "batch-9"}
	h := handlers.NewInventoryHandler(svc, svc, nil)

	_, api := humatest.New(t)
	handlers.RegisterInventoryRoutes(api, h)

	resp := api.Post("/api/v1/inventory", map[string]any{
		"items": []map[string]any{
			{"barcode": "868001", "quantity": 5},
		},
	})

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"batchRequestId":"batch-9"`)
	require.Len(t, svc.submitted, 1)
}

func TestSubmitInventory_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        *trendyol.Error
		wantStatus int
	}{
		{
			name:       "validation maps to 422",
			err:        &trendyol.Error{Kind: trendyol.KindValidation, Message: "item 0: barcode is required"},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "authentication maps to 401",
			err:        &trendyol.Error{Kind: trendyol.KindAuthentication, Status: 401},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "authorization maps to 403",
			err:        &trendyol.Error{Kind: trendyol.KindAuthorization, Status: 403},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "configuration maps to 422 with remediation",
			err:        &trendyol.Error{Kind: trendyol.KindConfiguration},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "transient server maps to 502",
			err:        &trendyol.Error{Kind: trendyol.KindTransientServer, Status: 503},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "network maps to 502",
			err:        &trendyol.Error{Kind: trendyol.KindNetwork},
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &fakeBatchService{submitErr: tt.err}
			h := handlers.NewInventoryHandler(svc, svc, nil)

			_, api := humatest.New(t)
			handlers.RegisterInventoryRoutes(api, h)

			resp := api.Post("/api/v1/inventory", map[string]any{
				"items": []map[string]any{{"barcode": "868001", "quantity": 5}},
			})

			assert.Equal(t, tt.wantStatus, resp.Code)
		})
	}
}

func TestSubmitInventory_ConfigurationHint(t *testing.T) {
	t.Parallel()

	svc := &fakeBatchService{submitErr: &trendyol.Error{Kind: trendyol.KindConfiguration}}
	h := handlers.NewInventoryHandler(svc, svc, nil)

	_, api := humatest.New(t)
	handlers.RegisterInventoryRoutes(api, h)

	resp := api.Post("/api/v1/inventory", map[string]any{
		"items": []map[string]any{{"barcode": "868001", "quantity": 5}},
	})

	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Contains(t, resp.Body.String(), "fix: set the api key")
}

func TestGetBatch(t *testing.T) {
	t.Parallel()

	svc := &fakeBatchService{snapshot: doneSnapshot()}
	h := handlers.NewInventoryHandler(svc, svc, nil)

	_, api := humatest.New(t)
	handlers.RegisterInventoryRoutes(api, h)

	resp := api.Get("/api/v1/batches/batch-9")

	require.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	assert.Contains(t, body, `"state":"done"`)
	assert.Contains(t, body, `"itemCount":2`)
	// Terminal batches surface per-item failures matched by index.
	assert.Contains(t, body, `"index":1`)
	assert.Contains(t, body, "unknown barcode")
}

func TestGetBatch_PendingHasNoFailures(t *testing.T) {
	t.Parallel()

	svc := &fakeBatchService{snapshot: &syncer.BatchSnapshot{
		State:  trendyol.BatchProcessing,
		Status: trendyol.BatchStatus{Status: "PROCESSING"},
	}}
	h := handlers.NewInventoryHandler(svc, svc, nil)

	_, api := humatest.New(t)
	handlers.RegisterInventoryRoutes(api, h)

	resp := api.Get("/api/v1/batches/batch-9")

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"state":"processing"`)
	assert.NotContains(t, resp.Body.String(), "failedItems")
}

func TestWaitBatch(t *testing.T) {
	t.Parallel()

	svc := &fakeBatchService{snapshot: doneSnapshot()}
	h := handlers.NewInventoryHandler(svc, svc, nil)

	_, api := humatest.New(t)
	handlers.RegisterInventoryRoutes(api, h)

	resp := api.Post("/api/v1/batches/batch-9/wait", map[string]any{
		"intervalSeconds": 1,
		"maxWaitSeconds":  10,
	})

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"state":"done"`)
}

func TestWaitBatch_Timeout(t *testing.T) {
	t.Parallel()

	svc := &fakeBatchService{pollErr: &trendyol.Error{
		Kind:    trendyol.KindTimeout,
		Message: "batch batch-9 still processing after 10s; it may yet complete, re-poll later",
	}}
	h := handlers.NewInventoryHandler(svc, svc, nil)

	_, api := humatest.New(t)
	handlers.RegisterInventoryRoutes(api, h)

	resp := api.Post("/api/v1/batches/batch-9/wait", map[string]any{})

	require.Equal(t, http.StatusGatewayTimeout, resp.Code)
	assert.Contains(t, resp.Body.String(), "re-poll")
}

func TestWaitBatch_BackgroundUnavailable(t *testing.T) {
	t.Parallel()

	svc := &fakeBatchService{snapshot: doneSnapshot()}
	h := handlers.NewInventoryHandler(svc, svc, nil)

	_, api := humatest.New(t)
	handlers.RegisterInventoryRoutes(api, h)

	resp := api.Post("/api/v1/batches/batch-9/wait", map[string]any{
		"background": true,
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestGetWatch_NotFound(t *testing.T) {
	t.Parallel()

	svc := &fakeBatchService{}
	h := handlers.NewInventoryHandler(svc, svc, nil)

	_, api := humatest.New(t)
	handlers.RegisterInventoryRoutes(api, h)

	resp := api.Get("/api/v1/watches/nope")

	assert.Equal(t, http.StatusNotFound, resp.Code)
}
