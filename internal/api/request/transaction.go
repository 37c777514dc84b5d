package request

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ndewijer/Market-Data-Simulator/internal/apperrors"
	"github.com/ndewijer/Market-Data-Simulator/internal/validation"
)

// TransactionFilter selects transactions by type and caps the result size.
// An empty Type selects every transaction; a zero Limit returns all matches.
type TransactionFilter struct {
	Type  string
	Limit int
}

// ParseTransactionFilter extracts the type and limit query parameters.
//
// Validation rules:
//   - type: all, buy or sell, case-insensitive (defaults to all)
//   - limit: a positive integer when present
func ParseTransactionFilter(typeParam, limitParam string) (TransactionFilter, error) {
	var filter TransactionFilter

	kind := strings.TrimSpace(strings.ToLower(typeParam))
	if kind != "all" {
		if err := validation.ValidateTransactionType(kind); err != nil {
			return TransactionFilter{}, err
		}
		filter.Type = kind
	}

	if limitParam != "" {
		limit, err := strconv.Atoi(limitParam)
		if err != nil || limit <= 0 {
			return TransactionFilter{}, fmt.Errorf("%w: got %q", apperrors.ErrInvalidLimit, limitParam)
		}
		filter.Limit = limit
	}

	return filter, nil
}
