package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Market-Data-Simulator/internal/api/request"
	"github.com/ndewijer/Market-Data-Simulator/internal/apperrors"
	"github.com/ndewijer/Market-Data-Simulator/internal/service"
	"github.com/ndewijer/Market-Data-Simulator/internal/validation"
)

// TransactionHandler handles HTTP requests for the portfolio's transaction history.
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// Transactions handles GET requests for the transaction list, newest first.
//
// Endpoint: GET /api/market/transactions?type=all|buy|sell&limit=n
// Response: 200 OK with array of model.Transaction
// Error: 400 Bad Request if type or limit is invalid
func (h *TransactionHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter, err := request.ParseTransactionFilter(query.Get("type"), query.Get("limit"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid transaction filter", err)
		return
	}

	transactions, err := h.transactionService.Transactions(filter.Type, filter.Limit)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid transaction filter", err)
		return
	}

	respondJSON(w, http.StatusOK, transactions)
}

// Transaction handles GET requests for a single transaction.
//
// Endpoint: GET /api/market/transactions/{transactionId}
// Response: 200 OK with model.Transaction
// Error: 400 Bad Request if the ID is malformed
// Error: 404 Not Found if the transaction does not exist
func (h *TransactionHandler) Transaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transactionId")
	if err := validation.ValidateID(transactionID); err != nil {
		respondError(w, http.StatusBadRequest, "invalid transaction ID format", err)
		return
	}

	transaction, err := h.transactionService.Transaction(transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			respondError(w, http.StatusNotFound, "transaction not found", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to retrieve transaction", err)
		return
	}

	respondJSON(w, http.StatusOK, transaction)
}

// Summary handles GET requests for buy and sell counts and totals.
//
// Endpoint: GET /api/market/transactions/summary
// Response: 200 OK with model.TransactionSummary
func (h *TransactionHandler) Summary(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.transactionService.Summary())
}
