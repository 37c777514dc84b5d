package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
)

// NewRequestWithURLParams builds a request whose chi route context carries params, so
// handlers reading chi.URLParam can be called without a router.
//
//	req := testutil.NewRequestWithURLParams(
//	    http.MethodGet,
//	    "/api/market/stocks/aapl",
//	    map[string]string{"stockId": "aapl"},
//	)
func NewRequestWithURLParams(method, path string, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return httptest.NewRequest(method, path, nil).WithContext(context.WithValue(context.Background(), chi.RouteCtxKey, rctx))
}
