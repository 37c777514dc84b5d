package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Market-Data-Simulator/internal/api/request"
	"github.com/ndewijer/Market-Data-Simulator/internal/apperrors"
	"github.com/ndewijer/Market-Data-Simulator/internal/scheduler"
	"github.com/ndewijer/Market-Data-Simulator/internal/service"
	"github.com/ndewijer/Market-Data-Simulator/internal/validation"
)

// MarketHandler handles HTTP requests for the simulated market feed.
// Reads go to the MarketDataService. Update-loop commands change the Scheduler and are
// persisted through the SettingsService; a failed save leaves the Scheduler as it was.
type MarketHandler struct {
	marketService   *service.MarketDataService
	settingsService *service.SettingsService
	scheduler       *scheduler.Scheduler
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(marketService *service.MarketDataService, settingsService *service.SettingsService, sched *scheduler.Scheduler) *MarketHandler {
	return &MarketHandler{
		marketService:   marketService,
		settingsService: settingsService,
		scheduler:       sched,
	}
}

// Snapshot handles GET requests for the complete current generation.
//
// Endpoint: GET /api/market
// Response: 200 OK with model.MarketSnapshot
func (h *MarketHandler) Snapshot(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.marketService.Snapshot())
}

// Stocks handles GET requests for all stock records.
//
// Endpoint: GET /api/market/stocks
func (h *MarketHandler) Stocks(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.marketService.Stocks())
}

// Stock handles GET requests for a single stock.
//
// Endpoint: GET /api/market/stocks/{stockId}
// Response: 200 OK with model.StockRecord
// Error: 404 Not Found if the stock is not part of the portfolio
func (h *MarketHandler) Stock(w http.ResponseWriter, r *http.Request) {
	stockID := chi.URLParam(r, "stockId")

	stock, err := h.marketService.Stock(stockID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStockNotFound) {
			respondError(w, http.StatusNotFound, "stock not found", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to retrieve stock", err)
		return
	}

	respondJSON(w, http.StatusOK, stock)
}

// Indices handles GET requests for the market indices.
//
// Endpoint: GET /api/market/indices
func (h *MarketHandler) Indices(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.marketService.Indices())
}

// Summary handles GET requests for the portfolio summary.
//
// Endpoint: GET /api/market/summary
func (h *MarketHandler) Summary(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.marketService.Summary())
}

// Allocations handles GET requests for the per-stock share of the portfolio.
//
// Endpoint: GET /api/market/allocations
func (h *MarketHandler) Allocations(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.marketService.Allocations())
}

// Status handles GET requests for the update loop state.
//
// Endpoint: GET /api/market/status
// Response: 200 OK with model.FeedStatus
func (h *MarketHandler) Status(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.marketService.Status())
}

// Refresh handles manual refresh requests. A refresh already in flight is joined
// rather than duplicated.
//
// Endpoint: POST /api/market/refresh
// Response: 200 OK with the new model.MarketSnapshot
// Error: 503 Service Unavailable if the refresh was cancelled
func (h *MarketHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.marketService.Refresh(r.Context())
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "failed to refresh market data", err)
		return
	}

	respondJSON(w, http.StatusOK, snapshot)
}

// SetInterval handles requests to change the update interval.
//
// Endpoint: PUT /api/market/interval
// Request: {"intervalMs": 5000}
// Response: 200 OK with model.FeedStatus
// Error: 400 Bad Request if the body is missing or the interval is not a positive integer
// that fits in a duration
// Error: 500 Internal Server Error if the setting cannot be saved; the previous interval stays in effect
func (h *MarketHandler) SetInterval(w http.ResponseWriter, r *http.Request) {
	var body request.SetIntervalRequest
	if err := request.Decode(r, &body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if body.IntervalMs == nil {
		respondError(w, http.StatusBadRequest, "intervalMs is required", nil)
		return
	}

	interval, err := validation.IntervalFromMillis(*body.IntervalMs)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid interval", err)
		return
	}

	previous := h.scheduler.Interval()
	if err := h.scheduler.SetInterval(interval); err != nil {
		respondError(w, http.StatusBadRequest, "invalid interval", err)
		return
	}
	if err := h.settingsService.SaveInterval(r.Context(), *body.IntervalMs); err != nil {
		_ = h.scheduler.SetInterval(previous)
		respondError(w, http.StatusInternalServerError, "failed to save settings", err)
		return
	}

	respondJSON(w, http.StatusOK, h.marketService.Status())
}

// ToggleAutoUpdate handles requests to switch scheduled updates on or off.
// An optional body {"enabled": bool} sets the value explicitly.
//
// Endpoint: POST /api/market/auto-update/toggle
// Response: 200 OK with model.FeedStatus
// Error: 500 Internal Server Error if the setting cannot be saved
func (h *MarketHandler) ToggleAutoUpdate(w http.ResponseWriter, r *http.Request) {
	var body request.SetAutoUpdateRequest
	if err := request.Decode(r, &body); err != nil && !errors.Is(err, request.ErrEmptyBody) {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	enabled := !h.scheduler.AutoUpdateEnabled()
	if body.Enabled != nil {
		enabled = *body.Enabled
	}

	if err := h.settingsService.SaveAutoUpdate(r.Context(), enabled); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save settings", err)
		return
	}
	h.scheduler.SetAutoUpdate(enabled)

	respondJSON(w, http.StatusOK, h.marketService.Status())
}

// IntervalOptions handles GET requests for the selectable update intervals.
//
// Endpoint: GET /api/market/interval-options
func (h *MarketHandler) IntervalOptions(w http.ResponseWriter, _ *http.Request) {
	options := make([]map[string]interface{}, 0, len(service.IntervalOptions))
	for _, ms := range service.IntervalOptions {
		options = append(options, map[string]interface{}{
			"intervalMs": ms,
			"label":      intervalLabel(ms),
		})
	}
	respondJSON(w, http.StatusOK, options)
}

func intervalLabel(ms int64) string {
	d := time.Duration(ms) * time.Millisecond
	switch {
	case d >= time.Minute && d%time.Minute == 0:
		return plural(int64(d/time.Minute), "minute")
	default:
		return plural(int64(d/time.Second), "second")
	}
}

func plural(n int64, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.FormatInt(n, 10) + " " + unit + "s"
}
