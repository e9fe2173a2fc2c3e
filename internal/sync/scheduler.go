package sync

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/commercekit/marketsync/internal/metrics"
	"github.com/commercekit/marketsync/internal/refdata"
	"github.com/commercekit/marketsync/internal/trendyol"
)

// Scheduler runs unattended periodic jobs: order import and reference-data
// refresh. The reference behavior is on-demand only, so the scheduler is
// opt-in and disabled by default.
type Scheduler struct {
	cron   *cron.Cron
	orders *OrderSync
	refs   *refdata.Cache
	log    *slog.Logger

	orderWindow time.Duration
}

// NewScheduler wires the periodic jobs. A zero interval disables the
// corresponding job.
func NewScheduler(
	orders *OrderSync,
	refs *refdata.Cache,
	orderInterval, refdataInterval time.Duration,
	log *slog.Logger,
) (*Scheduler, error) {
	if log == nil {
		log = slog.Default()
	}

	s := &Scheduler{
		cron:        cron.New(),
		orders:      orders,
		refs:        refs,
		log:         log,
		orderWindow: 24 * time.Hour,
	}

	if orderInterval > 0 {
		if _, err := s.cron.AddFunc("@every "+orderInterval.String(), s.runOrderImport); err != nil {
			return nil, err
		}
	}

	if refdataInterval > 0 {
		if _, err := s.cron.AddFunc("@every "+refdataInterval.String(), s.runRefdataRefresh); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.cron.Start()
}

// Stop stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

func (s *Scheduler) runOrderImport() {
	ctx := context.Background()

	start := time.Now().Add(-s.orderWindow)
	n, err := s.orders.ImportOrders(ctx, trendyol.OrderListQuery{
		Page:      0,
		Size:      200,
		StartDate: &start,
	})
	if err != nil {
		metrics.SchedulerRunsTotal.WithLabelValues("order_import", "error").Inc()
		s.log.Error("scheduled order import failed", "err", err)
		return
	}

	metrics.SchedulerRunsTotal.WithLabelValues("order_import", "ok").Inc()
	s.log.Info("scheduled order import finished", "orders", n)
}

func (s *Scheduler) runRefdataRefresh() {
	ctx := context.Background()

	for _, kind := range []refdata.Kind{refdata.KindCategory, refdata.KindBrand, refdata.KindCargo} {
		s.refs.Invalidate(kind)
		if _, err := s.refs.Entries(ctx, kind); err != nil {
			metrics.SchedulerRunsTotal.WithLabelValues("refdata_refresh", "error").Inc()
			s.log.Error("scheduled reference refresh failed", "kind", kind, "err", err)
			return
		}
	}

	metrics.SchedulerRunsTotal.WithLabelValues("refdata_refresh", "ok").Inc()
	s.log.Info("scheduled reference refresh finished")
}
