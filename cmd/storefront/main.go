package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/keepers-bakery/api/controllers"
	"github.com/angelmondragon/keepers-bakery/api/routes"
	"github.com/angelmondragon/keepers-bakery/internal/cart"
	checkoutsvc "github.com/angelmondragon/keepers-bakery/internal/checkout"
	"github.com/angelmondragon/keepers-bakery/internal/cron"
	product "github.com/angelmondragon/keepers-bakery/internal/products"
	"github.com/angelmondragon/keepers-bakery/pkg/backend"
	"github.com/angelmondragon/keepers-bakery/pkg/config"
	"github.com/angelmondragon/keepers-bakery/pkg/logger"
	"github.com/angelmondragon/keepers-bakery/pkg/metrics"
	"github.com/angelmondragon/keepers-bakery/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	readiness := map[string]controllers.Pinger{}

	var slots cart.SlotProvider
	var redisClient *redis.Client
	switch cfg.Storefront.CartStorage {
	case config.CartStorageRedis:
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		slots = cart.NewRedisSlots(redisClient, cart.DefaultSlotTTL)
		readiness["redis"] = redisClient
	default:
		slots = cart.NewMemorySlots()
	}

	backendClient, err := backend.NewClient(cfg.Storefront.BackendURL, backend.WithTimeout(cfg.Storefront.BackendTimeout))
	if err != nil {
		logg.Error(ctx, "failed to create backend client", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	sessions := cart.NewSessions(slots, logg)
	orderClient := checkoutsvc.NewClient(backendClient, logg, metrics.NewOrderMetrics(reg))

	sweepJob, err := cron.NewSessionSweepJob(cron.SessionSweepJobParams{
		Logger:   logg,
		Sessions: sessions,
		IdleTTL:  cfg.Storefront.SessionIdleTTL,
	})
	if err != nil {
		logg.Error(ctx, "failed to create session sweep job", err)
		os.Exit(1)
	}
	scheduler, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(sweepJob),
		Lock:     cron.NewLocalLock(),
		Metrics:  metrics.NewJobMetrics(reg),
		Interval: cfg.Storefront.SweepInterval,
	})
	if err != nil {
		logg.Error(ctx, "failed to create scheduler", err)
		os.Exit(1)
	}

	addr := ":" + cfg.Storefront.Port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":          cfg.App.Env,
		"addr":         addr,
		"backend":      cfg.Storefront.BackendURL,
		"cart_storage": cfg.Storefront.CartStorage,
	})
	logg.Info(ctx, "starting storefront server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewStorefrontRouter(cfg, logg, routes.StorefrontDeps{
			Sessions:  sessions,
			Catalog:   product.NewCatalogClient(backendClient),
			Flow:      checkoutsvc.NewFlow(orderClient, logg),
			Orders:    orderClient,
			Readiness: readiness,
			Metrics:   promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return scheduler.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	runErr := g.Wait()
	var closeErr error
	if redisClient != nil {
		closeErr = redisClient.Close()
	}
	if err := multierr.Append(runErr, closeErr); err != nil {
		logg.Error(context.Background(), "storefront stopped with errors", err)
		os.Exit(1)
	}
	logg.Info(context.Background(), "storefront stopped")
}
