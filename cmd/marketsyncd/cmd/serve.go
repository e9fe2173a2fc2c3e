package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/commercekit/marketsync/internal/api/handlers"
	"github.com/commercekit/marketsync/internal/api/middleware"
	"github.com/commercekit/marketsync/internal/config"
	"github.com/commercekit/marketsync/internal/metrics"
	"github.com/commercekit/marketsync/internal/refdata"
	"github.com/commercekit/marketsync/internal/store"
	syncer "github.com/commercekit/marketsync/internal/sync"
	"github.com/commercekit/marketsync/internal/trendyol"
	"github.com/commercekit/marketsync/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the sync daemon",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	// Credentials from config seed the store; the API can replace them at
	// runtime without a restart.
	creds := trendyol.NewCredentialStore(trendyol.Credentials{
		APIKey:     cfg.Marketplace.APIKey,
		APISecret:  cfg.Marketplace.APISecret,
		SupplierID: cfg.Marketplace.SupplierID,
	})
	if !creds.Ready() {
		log.Warn("marketplace credentials not configured; set them via PUT /api/v1/credentials")
	}

	limiter := trendyol.NewRateLimiter(
		cfg.Marketplace.RateLimit.PerSecond,
		cfg.Marketplace.RateLimit.Burst,
		cfg.Marketplace.RateLimit.DailyLimit,
	)

	mkt := trendyol.NewHTTPClient(creds,
		trendyol.WithBaseURL(cfg.Marketplace.BaseURL),
		trendyol.WithHTTPClient(&http.Client{Timeout: cfg.Marketplace.Timeout}),
		trendyol.WithRateLimiter(limiter),
		trendyol.WithUserAgent(cfg.Marketplace.UserAgent),
	)

	refs := refdata.New(mkt)
	st := store.NewMemory()

	products := syncer.NewProductSync(mkt, refs,
		syncer.WithProductLogger(log),
		syncer.WithCurrency(cfg.Sync.Currency),
		syncer.WithCargoProvider(cfg.Sync.CargoProvider),
	)
	inventory := syncer.NewInventorySync(mkt, log)
	orders := syncer.NewOrderSync(mkt, syncer.NewSequentialInvoicer(log), st, log)
	watcher := syncer.NewWatcher(inventory, log)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Recovery(log))
	e.Use(middleware.Metrics())

	// Health endpoints.
	e.GET("/healthz", func(c echo.Context) error {
		metrics.HealthzUp.Set(1)
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Readiness is serving readiness, not marketplace readiness; an
	// unconfigured daemon still serves the credentials API.
	e.GET("/readyz", func(c echo.Context) error {
		if creds.Ready() {
			metrics.ReadyzUp.Set(1)
		} else {
			metrics.ReadyzUp.Set(0)
		}
		return c.JSON(http.StatusOK, map[string]any{
			"status":     "ready",
			"configured": creds.Ready(),
		})
	})

	// Prometheus metrics.
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("MarketSync API", Version))
	handlers.RegisterCredentialRoutes(api, handlers.NewCredentialsHandler(creds))
	handlers.RegisterProductRoutes(api, handlers.NewProductsHandler(products, mkt, st))
	handlers.RegisterInventoryRoutes(api, handlers.NewInventoryHandler(inventory, inventory, watcher))
	handlers.RegisterOrderRoutes(api, handlers.NewOrdersHandler(orders))
	handlers.RegisterRefdataRoutes(api, handlers.NewRefdataHandler(refs, mkt))

	var sched *syncer.Scheduler
	if cfg.Scheduler.Enabled {
		sched, err = syncer.NewScheduler(orders, refs,
			cfg.Scheduler.OrderInterval,
			cfg.Scheduler.RefdataInterval,
			log,
		)
		if err != nil {
			return fmt.Errorf("building scheduler: %w", err)
		}
		sched.Start()
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	if sched != nil {
		<-sched.Stop().Done()
	}
	watcher.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}
