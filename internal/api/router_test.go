package api_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ndewijer/Market-Data-Simulator/internal/api"
	"github.com/ndewijer/Market-Data-Simulator/internal/config"
	"github.com/ndewijer/Market-Data-Simulator/internal/metrics"
	"github.com/ndewijer/Market-Data-Simulator/internal/scheduler"
	"github.com/ndewijer/Market-Data-Simulator/internal/service"
	"github.com/ndewijer/Market-Data-Simulator/internal/stream"
	"github.com/ndewijer/Market-Data-Simulator/internal/testutil"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	db := testutil.SetupTestDB(t)
	m := metrics.New("test")
	svc, _ := testutil.NewTestMarketDataService(t)

	sched, err := scheduler.New(svc, 30*time.Second, false, zap.NewNop(), m)
	require.NoError(t, err)
	svc.SetControls(sched)

	hub := stream.NewHub(svc, nil, zap.NewNop(), m)
	svc.SetPublisher(hub)
	t.Cleanup(hub.Close)

	cfg := &config.Config{CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}}}
	router := api.NewRouter(api.Dependencies{
		SystemService:      service.NewSystemService(db),
		MarketService:      svc,
		SettingsService:    testutil.NewTestSettingsService(t, db),
		TransactionService: testutil.NewTestTransactionService(t),
		Scheduler:          sched,
		Hub:                hub,
		Metrics:            m,
		Logger:             zap.NewNop(),
	}, cfg)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestRouter(t *testing.T) {
	srv := newServer(t)

	routes := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{http.MethodGet, "/api/system/health", "", http.StatusOK},
		{http.MethodGet, "/api/system/version", "", http.StatusOK},
		{http.MethodGet, "/api/market", "", http.StatusOK},
		{http.MethodGet, "/api/market/stocks", "", http.StatusOK},
		{http.MethodGet, "/api/market/stocks/aapl", "", http.StatusOK},
		{http.MethodGet, "/api/market/stocks/ibm", "", http.StatusNotFound},
		{http.MethodGet, "/api/market/stocks/a.b", "", http.StatusBadRequest},
		{http.MethodGet, "/api/market/indices", "", http.StatusOK},
		{http.MethodGet, "/api/market/summary", "", http.StatusOK},
		{http.MethodGet, "/api/market/allocations", "", http.StatusOK},
		{http.MethodGet, "/api/market/status", "", http.StatusOK},
		{http.MethodGet, "/api/market/interval-options", "", http.StatusOK},
		{http.MethodPost, "/api/market/refresh", "", http.StatusOK},
		{http.MethodPut, "/api/market/interval", `{"intervalMs":5000}`, http.StatusOK},
		{http.MethodPut, "/api/market/interval", `{"intervalMs":0}`, http.StatusBadRequest},
		{http.MethodPost, "/api/market/auto-update/toggle", "", http.StatusOK},
		{http.MethodGet, "/api/market/transactions", "", http.StatusOK},
		{http.MethodGet, "/api/market/transactions?type=sell&limit=1", "", http.StatusOK},
		{http.MethodGet, "/api/market/transactions?type=fee", "", http.StatusBadRequest},
		{http.MethodGet, "/api/market/transactions/summary", "", http.StatusOK},
		{http.MethodGet, "/api/market/transactions/tx-1001", "", http.StatusOK},
		{http.MethodGet, "/api/market/transactions/tx-9999", "", http.StatusNotFound},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodDelete, "/api/market", "", http.StatusMethodNotAllowed},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			req, err := http.NewRequest(rt.method, srv.URL+rt.path, strings.NewReader(rt.body))
			require.NoError(t, err)

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, rt.status, resp.StatusCode, string(body))
		})
	}
}

func TestRouter_CORS(t *testing.T) {
	srv := newServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/market", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}

// TestRouter_Stream covers the websocket route end to end.
//
// WHY: the request logger wraps the response writer; the upgrade only works if the
// wrapper still exposes http.Hijacker.
func TestRouter_Stream(t *testing.T) {
	srv := newServer(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/market/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() stream.Message {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)

		var msg stream.Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	}

	initial := read()
	assert.Equal(t, stream.MessageTypeSnapshot, initial.Type)
	assert.Equal(t, uint64(0), initial.Data.Sequence)

	resp, err := http.Post(srv.URL+"/api/market/refresh", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, uint64(1), read().Data.Sequence)
}
