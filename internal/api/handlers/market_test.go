package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ndewijer/Market-Data-Simulator/internal/api/response"
	"github.com/ndewijer/Market-Data-Simulator/internal/model"
	"github.com/ndewijer/Market-Data-Simulator/internal/scheduler"
	"github.com/ndewijer/Market-Data-Simulator/internal/testutil"
)

func setupMarketHandler(t *testing.T) (*MarketHandler, *scheduler.Scheduler) {
	t.Helper()
	handler, sched, _ := setupMarketHandlerWithDB(t)
	return handler, sched
}

func setupMarketHandlerWithDB(t *testing.T) (*MarketHandler, *scheduler.Scheduler, *sql.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	svc, _ := testutil.NewTestMarketDataService(t)
	sched, err := scheduler.New(svc, 30*time.Second, true, zap.NewNop(), nil)
	if err != nil {
		t.Fatalf("Failed to create scheduler: %v", err)
	}
	svc.SetControls(sched)
	return NewMarketHandler(svc, testutil.NewTestSettingsService(t, db), sched), sched, db
}

func TestMarketHandler_Reads(t *testing.T) {
	handler, _ := setupMarketHandler(t)

	t.Run("snapshot includes update settings", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Snapshot(w, httptest.NewRequest(http.MethodGet, "/api/market", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var snap model.MarketSnapshot
		if err := json.NewDecoder(w.Body).Decode(&snap); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(snap.Stocks) != 6 || len(snap.Indices) != 4 {
			t.Errorf("Expected 6 stocks and 4 indices, got %d and %d", len(snap.Stocks), len(snap.Indices))
		}
		if !snap.AutoUpdate || snap.IntervalMs != 30000 {
			t.Errorf("Expected autoUpdate with 30000ms, got %v/%d", snap.AutoUpdate, snap.IntervalMs)
		}
	})

	t.Run("stocks", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Stocks(w, httptest.NewRequest(http.MethodGet, "/api/market/stocks", nil))

		var stocks []model.StockRecord
		if err := json.NewDecoder(w.Body).Decode(&stocks); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(stocks) != 6 || stocks[0].ID != "aapl" {
			t.Errorf("Unexpected stocks: %+v", stocks)
		}
	})

	t.Run("single stock", func(t *testing.T) {
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/market/stocks/nvda", map[string]string{"stockId": "nvda"})
		w := httptest.NewRecorder()
		handler.Stock(w, req)

		var stock model.StockRecord
		if err := json.NewDecoder(w.Body).Decode(&stock); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if w.Code != http.StatusOK || stock.Symbol != "NVDA" {
			t.Errorf("Expected NVDA, got %d %+v", w.Code, stock)
		}
	})

	t.Run("unknown stock returns 404", func(t *testing.T) {
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/market/stocks/ibm", map[string]string{"stockId": "ibm"})
		w := httptest.NewRecorder()
		handler.Stock(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})

	t.Run("summary, indices and allocations", func(t *testing.T) {
		for name, fn := range map[string]http.HandlerFunc{
			"summary":     handler.Summary,
			"indices":     handler.Indices,
			"allocations": handler.Allocations,
		} {
			w := httptest.NewRecorder()
			fn(w, httptest.NewRequest(http.MethodGet, "/api/market/"+name, nil))
			if w.Code != http.StatusOK {
				t.Errorf("%s: expected 200, got %d", name, w.Code)
			}
		}
	})

	t.Run("status", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Status(w, httptest.NewRequest(http.MethodGet, "/api/market/status", nil))

		var status model.FeedStatus
		if err := json.NewDecoder(w.Body).Decode(&status); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if status.State != scheduler.StateIdle {
			t.Errorf("Expected idle before the scheduler starts, got %s", status.State)
		}
		if status.FormattedLastUpdated != "just now" {
			t.Errorf("Expected 'just now', got %s", status.FormattedLastUpdated)
		}
		if len(status.IntervalOptions) != 6 {
			t.Errorf("Expected 6 interval options, got %v", status.IntervalOptions)
		}
	})

	t.Run("interval options carry labels", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.IntervalOptions(w, httptest.NewRequest(http.MethodGet, "/api/market/interval-options", nil))

		var options []struct {
			IntervalMs int64  `json:"intervalMs"`
			Label      string `json:"label"`
		}
		if err := json.NewDecoder(w.Body).Decode(&options); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		want := []string{"2 seconds", "5 seconds", "10 seconds", "30 seconds", "1 minute", "5 minutes"}
		for i, o := range options {
			if o.Label != want[i] {
				t.Errorf("Expected label %q for %d, got %q", want[i], o.IntervalMs, o.Label)
			}
		}
	})
}

func TestMarketHandler_Refresh(t *testing.T) {
	handler, _ := setupMarketHandler(t)

	w := httptest.NewRecorder()
	handler.Refresh(w, httptest.NewRequest(http.MethodPost, "/api/market/refresh", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var snap model.MarketSnapshot
	if err := json.NewDecoder(w.Body).Decode(&snap); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if snap.Sequence != 1 {
		t.Errorf("Expected sequence 1, got %d", snap.Sequence)
	}
}

func TestMarketHandler_SetInterval(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantMs     int64
	}{
		{name: "valid interval", body: `{"intervalMs": 5000}`, wantStatus: http.StatusOK, wantMs: 5000},
		{name: "non-preset interval", body: `{"intervalMs": 1234}`, wantStatus: http.StatusOK, wantMs: 1234},
		{name: "zero", body: `{"intervalMs": 0}`, wantStatus: http.StatusBadRequest, wantMs: 30000},
		{name: "negative", body: `{"intervalMs": -10}`, wantStatus: http.StatusBadRequest, wantMs: 30000},
		{name: "beyond duration range", body: `{"intervalMs": 10000000000000000}`, wantStatus: http.StatusBadRequest, wantMs: 30000},
		{name: "max int64", body: `{"intervalMs": 9223372036854775807}`, wantStatus: http.StatusBadRequest, wantMs: 30000},
		{name: "fractional", body: `{"intervalMs": 2.5}`, wantStatus: http.StatusBadRequest, wantMs: 30000},
		{name: "missing field", body: `{}`, wantStatus: http.StatusBadRequest, wantMs: 30000},
		{name: "empty body", body: ``, wantStatus: http.StatusBadRequest, wantMs: 30000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, sched := setupMarketHandler(t)

			req := httptest.NewRequest(http.MethodPut, "/api/market/interval", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			handler.SetInterval(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if got := sched.Interval().Milliseconds(); got != tt.wantMs {
				t.Errorf("Expected interval %dms, got %dms", tt.wantMs, got)
			}

			if w.Code == http.StatusBadRequest {
				var body response.ErrorResponse
				if err := json.NewDecoder(w.Body).Decode(&body); err != nil || body.Error == "" {
					t.Errorf("Expected error body, got %q", w.Body.String())
				}
			}
		})
	}
}

func TestMarketHandler_PersistsSettings(t *testing.T) {
	t.Run("interval and auto-update are stored", func(t *testing.T) {
		handler, _, db := setupMarketHandlerWithDB(t)

		w := httptest.NewRecorder()
		handler.SetInterval(w, httptest.NewRequest(http.MethodPut, "/api/market/interval", strings.NewReader(`{"intervalMs": 10000}`)))
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		w = httptest.NewRecorder()
		handler.ToggleAutoUpdate(w, httptest.NewRequest(http.MethodPost, "/api/market/auto-update/toggle", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		settings, err := testutil.NewTestSettingsService(t, db).Load(context.Background(), model.FeedSettings{IntervalMs: 30000, AutoUpdate: true})
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}
		if settings.IntervalMs != 10000 || settings.AutoUpdate {
			t.Errorf("Expected 10000ms and paused, got %+v", settings)
		}
	})

	t.Run("rejected interval is not stored", func(t *testing.T) {
		handler, sched, db := setupMarketHandlerWithDB(t)

		for _, body := range []string{`{"intervalMs": 10000000000000000}`, `{"intervalMs": 9223372036854775807}`} {
			w := httptest.NewRecorder()
			handler.SetInterval(w, httptest.NewRequest(http.MethodPut, "/api/market/interval", strings.NewReader(body)))
			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected 400 for %s, got %d", body, w.Code)
			}
		}
		testutil.AssertRowCount(t, db, "settings", 0)

		settings, err := testutil.NewTestSettingsService(t, db).Load(context.Background(), model.FeedSettings{IntervalMs: 30000, AutoUpdate: true})
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}
		if _, err := scheduler.New(nil, time.Duration(settings.IntervalMs)*time.Millisecond, settings.AutoUpdate, zap.NewNop(), nil); err != nil {
			t.Errorf("Expected stored settings to build a scheduler, got %v", err)
		}
		if sched.Interval() != 30*time.Second {
			t.Errorf("Expected interval unchanged, got %v", sched.Interval())
		}
	})

	t.Run("storage failure leaves the scheduler unchanged", func(t *testing.T) {
		handler, sched, db := setupMarketHandlerWithDB(t)
		db.Close()

		w := httptest.NewRecorder()
		handler.SetInterval(w, httptest.NewRequest(http.MethodPut, "/api/market/interval", strings.NewReader(`{"intervalMs": 10000}`)))
		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d", w.Code)
		}
		if sched.Interval() != 30*time.Second {
			t.Errorf("Expected interval unchanged, got %v", sched.Interval())
		}

		w = httptest.NewRecorder()
		handler.ToggleAutoUpdate(w, httptest.NewRequest(http.MethodPost, "/api/market/auto-update/toggle", nil))
		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d", w.Code)
		}
		if !sched.AutoUpdateEnabled() {
			t.Error("Expected auto-update unchanged")
		}
	})
}

func TestMarketHandler_ToggleAutoUpdate(t *testing.T) {
	t.Run("flips without a body", func(t *testing.T) {
		handler, sched := setupMarketHandler(t)

		w := httptest.NewRecorder()
		handler.ToggleAutoUpdate(w, httptest.NewRequest(http.MethodPost, "/api/market/auto-update/toggle", nil))

		var status model.FeedStatus
		if err := json.NewDecoder(w.Body).Decode(&status); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if status.AutoUpdate || sched.AutoUpdateEnabled() {
			t.Error("Expected auto-update disabled after toggle")
		}
	})

	t.Run("explicit value is idempotent", func(t *testing.T) {
		handler, sched := setupMarketHandler(t)

		for i := 0; i < 2; i++ {
			req := httptest.NewRequest(http.MethodPost, "/api/market/auto-update/toggle", strings.NewReader(`{"enabled": true}`))
			w := httptest.NewRecorder()
			handler.ToggleAutoUpdate(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("Expected 200, got %d", w.Code)
			}
		}
		if !sched.AutoUpdateEnabled() {
			t.Error("Expected auto-update to stay enabled")
		}
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		handler, _ := setupMarketHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/market/auto-update/toggle", strings.NewReader(`{"enabled":`))
		w := httptest.NewRecorder()
		handler.ToggleAutoUpdate(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}
