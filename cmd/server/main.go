package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Market-Data-Simulator/internal/api"
	"github.com/ndewijer/Market-Data-Simulator/internal/config"
	"github.com/ndewijer/Market-Data-Simulator/internal/database"
	"github.com/ndewijer/Market-Data-Simulator/internal/logging"
	"github.com/ndewijer/Market-Data-Simulator/internal/marketdata"
	"github.com/ndewijer/Market-Data-Simulator/internal/metrics"
	"github.com/ndewijer/Market-Data-Simulator/internal/model"
	"github.com/ndewijer/Market-Data-Simulator/internal/repository"
	"github.com/ndewijer/Market-Data-Simulator/internal/scheduler"
	"github.com/ndewijer/Market-Data-Simulator/internal/service"
	"github.com/ndewijer/Market-Data-Simulator/internal/stream"
	"github.com/ndewijer/Market-Data-Simulator/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck // nothing to do if flushing stderr fails
	zap.ReplaceGlobals(logger)

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited with error", zap.Error(err))
	}
	logger.Info("server exited")
}

func run(cfg *config.Config, logger *zap.Logger) error {
	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	logger.Info("connected to database", zap.String("path", cfg.Database.Path), zap.String("version", version.Version))

	m := metrics.New("market_simulator")

	// Create services
	marketService, err := service.NewMarketDataService(
		marketdata.DefaultSeed(time.Now()),
		service.MarketDataOptions{
			Rand:    marketdata.NewRand(cfg.Feed.Seed),
			Latency: cfg.Feed.Latency,
			Logger:  logger,
			Metrics: m,
		},
	)
	if err != nil {
		return err
	}

	transactionService, err := service.NewTransactionService(marketdata.DefaultTransactions(time.Now()))
	if err != nil {
		return err
	}

	settingsService := service.NewSettingsService(repository.NewSettingsRepository(db))
	settings, err := settingsService.Load(context.Background(), model.FeedSettings{
		IntervalMs: cfg.Feed.Interval.Milliseconds(),
		AutoUpdate: cfg.Feed.AutoUpdate,
	})
	if err != nil {
		return err
	}

	sched, err := scheduler.New(marketService, time.Duration(settings.IntervalMs)*time.Millisecond, settings.AutoUpdate, logger, m)
	if err != nil {
		return err
	}
	marketService.SetControls(sched)

	hub := stream.NewHub(marketService, cfg.CORS.AllowedOrigins, logger, m)
	marketService.SetPublisher(hub)

	systemService := service.NewSystemService(db)

	// Create router
	router := api.NewRouter(api.Dependencies{
		SystemService:      systemService,
		MarketService:      marketService,
		SettingsService:    settingsService,
		TransactionService: transactionService,
		Scheduler:          sched,
		Hub:                hub,
		Metrics:            m,
		Logger:             logger,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server", zap.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	sched.Start()

	// Wait for interrupt signal or a server failure, then shut down in order:
	// stop scheduled ticks, abort any manual tick, drop stream clients, drain HTTP.
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := sched.Stop(shutdownCtx); err != nil {
			logger.Warn("scheduler stop", zap.Error(err))
		}
		marketService.Close()
		hub.Close()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
