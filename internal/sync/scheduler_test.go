package sync_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commercekit/marketsync/internal/refdata"
	syncer "github.com/commercekit/marketsync/internal/sync"
)

func TestNewScheduler_RegistersCronEntries(t *testing.T) {
	t.Parallel()

	orders := syncer.NewOrderSync(&fakeClient{}, &fakeInvoicer{}, nil, nil)
	sched, err := syncer.NewScheduler(orders, refdata.New(&fakeClient{}), 15*time.Minute, 6*time.Hour, nil)
	require.NoError(t, err)

	assert.Len(t, sched.Entries(), 2)
}

func TestNewScheduler_ZeroIntervalsDisableJobs(t *testing.T) {
	t.Parallel()

	orders := syncer.NewOrderSync(&fakeClient{}, &fakeInvoicer{}, nil, nil)
	sched, err := syncer.NewScheduler(orders, refdata.New(&fakeClient{}), 0, 0, nil)
	require.NoError(t, err)

	assert.Empty(t, sched.Entries())
}

func TestScheduler_StartStop(t *testing.T) {
	t.Parallel()

	orders := syncer.NewOrderSync(&fakeClient{}, &fakeInvoicer{}, nil, nil)
	sched, err := syncer.NewScheduler(orders, refdata.New(&fakeClient{}), time.Hour, 24*time.Hour, nil)
	require.NoError(t, err)

	sched.Start()
	ctx := sched.Stop()
	<-ctx.Done()
}
