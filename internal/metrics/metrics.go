// Package metrics defines Prometheus metrics for marketsync.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketsync"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "1 if the last liveness probe succeeded, 0 otherwise.",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "1 if the last readiness probe succeeded, 0 otherwise.",
	})
)

// Marketplace API metrics.
var (
	MarketplaceCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "marketplace_api_calls_total",
		Help:      "Total marketplace API calls by operation.",
	}, []string{"operation"})

	MarketplaceErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "marketplace_api_errors_total",
		Help:      "Total classified marketplace API errors by kind.",
	}, []string{"kind"})

	MarketplaceDailyUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "marketplace_daily_usage",
		Help:      "Marketplace API calls used within the current quota window.",
	})

	MarketplaceQuotaHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "marketplace_quota_hits_total",
		Help:      "Times the daily marketplace API quota was exhausted.",
	})
)

// Sync metrics.
var (
	ProductPushesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_pushes_total",
		Help:      "Total product push submissions.",
	})

	StockUpdatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stock_updates_total",
		Help:      "Total stock/price batch submissions.",
	})

	BatchPollsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "batch_polls_total",
		Help:      "Total batch status polls.",
	})

	BatchWatchesActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "batch_watches_active",
		Help:      "Batch completion watches currently running.",
	})

	OrdersImportedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_imported_total",
		Help:      "Total orders imported from the marketplace.",
	})

	SchedulerRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scheduler_runs_total",
		Help:      "Scheduled job runs by job and outcome.",
	}, []string{"job", "outcome"})
)
