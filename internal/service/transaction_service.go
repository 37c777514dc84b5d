package service

import (
	"fmt"

	"github.com/ndewijer/Market-Data-Simulator/internal/apperrors"
	"github.com/ndewijer/Market-Data-Simulator/internal/marketdata"
	"github.com/ndewijer/Market-Data-Simulator/internal/model"
	"github.com/ndewijer/Market-Data-Simulator/internal/validation"
)

// TransactionService serves the portfolio's transaction history. The history is seeded
// once and is read-only, so no locking is needed.
type TransactionService struct {
	transactions []model.Transaction
	summary      model.TransactionSummary
}

// NewTransactionService creates a TransactionService over the given history, newest first.
// The history is validated and rejected if any record is malformed.
func NewTransactionService(transactions []model.Transaction) (*TransactionService, error) {
	if err := validation.ValidateTransactions(transactions); err != nil {
		return nil, fmt.Errorf("invalid seed transactions: %w", err)
	}
	return &TransactionService{
		transactions: transactions,
		summary:      marketdata.SummarizeTransactions(transactions),
	}, nil
}

// Transactions returns the transactions of the given type, newest first. An empty type
// returns all transactions. A limit above zero caps the number returned.
func (s *TransactionService) Transactions(kind string, limit int) ([]model.Transaction, error) {
	if err := validation.ValidateTransactionType(kind); err != nil {
		return nil, err
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: got %d", apperrors.ErrInvalidLimit, limit)
	}

	out := marketdata.FilterTransactions(s.transactions, kind)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Transaction returns the transaction with the given ID.
func (s *TransactionService) Transaction(id string) (model.Transaction, error) {
	for _, t := range s.transactions {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Transaction{}, apperrors.ErrTransactionNotFound
}

// Summary returns buy and sell counts and totals over the whole history.
func (s *TransactionService) Summary() model.TransactionSummary {
	return s.summary
}
