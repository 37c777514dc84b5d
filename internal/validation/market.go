package validation

import (
	"errors"
	"fmt"

	"github.com/ndewijer/Market-Data-Simulator/internal/apperrors"
	"github.com/ndewijer/Market-Data-Simulator/internal/model"
)

var (
	errSymbolRequired  = errors.New("symbol is required")
	errVolatilityRange = errors.New("volatility must be in [0, 1)")
	errNonFiniteChange = errors.New("change must be finite")
)

// ValidateStocks checks seed stock records before they enter the feed.
// IDs must be unique and usable in a URL; price, shares and value must be finite and
// non-negative; an explicit volatility must lie in [0, 1).
func ValidateStocks(stocks []model.StockRecord) error {
	c := newCollector()
	seen := make(map[string]bool, len(stocks))

	for i, s := range stocks {
		field := fmt.Sprintf("stocks[%d]", i)

		if err := ValidateID(s.ID); err != nil {
			c.add(field+".id", err)
		} else if seen[s.ID] {
			c.add(field+".id", fmt.Errorf("%w: id %s", apperrors.ErrDuplicateEntry, s.ID))
		}
		seen[s.ID] = true

		if s.Symbol == "" {
			c.add(field+".symbol", errSymbolRequired)
		}
		if err := ValidateAmount(s.Price); err != nil {
			c.add(field+".price", err)
		}
		if err := ValidateAmount(s.Shares); err != nil {
			c.add(field+".shares", err)
		}
		if err := ValidateAmount(s.Value); err != nil {
			c.add(field+".value", err)
		}
		if s.Volatility != nil && (*s.Volatility < 0 || *s.Volatility >= 1) {
			c.add(field+".volatility", errVolatilityRange)
		}
	}

	return c.result()
}

// ValidateIndices checks seed index records.
func ValidateIndices(indices []model.IndexRecord) error {
	c := newCollector()
	seen := make(map[string]bool, len(indices))

	for i, idx := range indices {
		field := fmt.Sprintf("indices[%d]", i)

		if err := ValidateID(idx.ID); err != nil {
			c.add(field+".id", err)
		} else if seen[idx.ID] {
			c.add(field+".id", fmt.Errorf("%w: id %s", apperrors.ErrDuplicateEntry, idx.ID))
		}
		seen[idx.ID] = true

		if err := ValidateAmount(idx.Value); err != nil {
			c.add(field+".value", err)
		}
		if !finite(idx.Change) {
			c.add(field+".change", errNonFiniteChange)
		}
	}

	return c.result()
}

// ValidateSummary checks the seed portfolio summary. Change fields may be negative
// but must be finite.
func ValidateSummary(summary model.PortfolioSummary) error {
	c := newCollector()

	if err := ValidateAmount(summary.TotalValue); err != nil {
		c.add("summary.totalValue", err)
	}
	for field, v := range map[string]float64{
		"summary.dailyChange":   summary.DailyChange,
		"summary.monthlyChange": summary.MonthlyChange,
		"summary.yearlyChange":  summary.YearlyChange,
	} {
		if !finite(v) {
			c.add(field, errNonFiniteChange)
		}
	}

	return c.result()
}

// ValidTransactionType contains the allowed transaction type values.
var ValidTransactionType = map[string]bool{
	model.TransactionBuy:  true,
	model.TransactionSell: true,
}

// ValidateTransactionType checks a transaction type filter. An empty filter selects
// every transaction.
func ValidateTransactionType(kind string) error {
	if kind != "" && !ValidTransactionType[kind] {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidTransactionType, kind)
	}
	return nil
}

// ValidateTransactions checks seed transactions: unique IDs, a buy or sell type, a
// symbol, and finite non-negative price, shares and total.
func ValidateTransactions(transactions []model.Transaction) error {
	c := newCollector()
	seen := make(map[string]bool, len(transactions))

	for i, t := range transactions {
		field := fmt.Sprintf("transactions[%d]", i)

		if err := ValidateID(t.ID); err != nil {
			c.add(field+".id", err)
		} else if seen[t.ID] {
			c.add(field+".id", fmt.Errorf("%w: id %s", apperrors.ErrDuplicateEntry, t.ID))
		}
		seen[t.ID] = true

		if !ValidTransactionType[t.Type] {
			c.add(field+".type", fmt.Errorf("%w: %q", apperrors.ErrInvalidTransactionType, t.Type))
		}
		if t.Symbol == "" {
			c.add(field+".symbol", errSymbolRequired)
		}
		if err := ValidateAmount(t.Price); err != nil {
			c.add(field+".price", err)
		}
		if err := ValidateAmount(t.Shares); err != nil {
			c.add(field+".shares", err)
		}
		if err := ValidateAmount(t.Total); err != nil {
			c.add(field+".total", err)
		}
	}

	return c.result()
}
