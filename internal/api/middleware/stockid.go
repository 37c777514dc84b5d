// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Market-Data-Simulator/internal/api/response"
	"github.com/ndewijer/Market-Data-Simulator/internal/validation"
)

// ValidateStockIDMiddleware validates that the stockId URL parameter is present and well formed.
// Returns 400 Bad Request if the stock ID is missing or invalid.
//
// Example usage in router:
//
//	r.Route("/stocks/{stockId}", func(r chi.Router) {
//	    r.Use(middleware.ValidateStockIDMiddleware)
//	    r.Get("/", handler.Stock)
//	})
func ValidateStockIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stockID := chi.URLParam(r, "stockId")

		if stockID == "" {
			response.RespondError(w, http.StatusBadRequest, "stock ID is required", "")
			return
		}

		if err := validation.ValidateID(stockID); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid stock ID format", err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}
