package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ndewijer/Market-Data-Simulator/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Market-Data-Simulator/internal/api/middleware"
	"github.com/ndewijer/Market-Data-Simulator/internal/config"
	"github.com/ndewijer/Market-Data-Simulator/internal/metrics"
	"github.com/ndewijer/Market-Data-Simulator/internal/scheduler"
	"github.com/ndewijer/Market-Data-Simulator/internal/service"
	"github.com/ndewijer/Market-Data-Simulator/internal/stream"
)

// Dependencies groups everything the router wires into handlers.
type Dependencies struct {
	SystemService      *service.SystemService
	MarketService      *service.MarketDataService
	SettingsService    *service.SettingsService
	TransactionService *service.TransactionService
	Scheduler          *scheduler.Scheduler
	Hub                *stream.Hub
	Metrics            *metrics.Metrics
	Logger             *zap.Logger
}

// NewRouter creates and configures the HTTP router
func NewRouter(deps Dependencies, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(deps.Logger))
	r.Use(custommiddleware.Metrics(deps.Metrics))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	r.Handle("/metrics", deps.Metrics.Handler())

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(deps.SystemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/market", func(r chi.Router) {
			marketHandler := handlers.NewMarketHandler(deps.MarketService, deps.SettingsService, deps.Scheduler)
			r.Get("/", marketHandler.Snapshot)
			r.Get("/stocks", marketHandler.Stocks)
			r.With(custommiddleware.ValidateStockIDMiddleware).Get("/stocks/{stockId}", marketHandler.Stock)
			r.Get("/indices", marketHandler.Indices)
			r.Get("/summary", marketHandler.Summary)
			r.Get("/allocations", marketHandler.Allocations)
			r.Get("/status", marketHandler.Status)
			r.Get("/interval-options", marketHandler.IntervalOptions)
			r.Post("/refresh", marketHandler.Refresh)
			r.Put("/interval", marketHandler.SetInterval)
			r.Post("/auto-update/toggle", marketHandler.ToggleAutoUpdate)
			r.Get("/stream", deps.Hub.ServeHTTP)

			transactionHandler := handlers.NewTransactionHandler(deps.TransactionService)
			r.Get("/transactions", transactionHandler.Transactions)
			r.Get("/transactions/summary", transactionHandler.Summary)
			r.Get("/transactions/{transactionId}", transactionHandler.Transaction)
		})
	})

	return r
}
