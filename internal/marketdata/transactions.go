package marketdata

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Market-Data-Simulator/internal/model"
)

// TransactionStatusCompleted is the status of every seeded transaction.
const TransactionStatusCompleted = "Completed"

type transactionFixture struct {
	id, kind, symbol, name string
	daysAgo                int
	price, shares          float64
}

// Newest first.
var transactionFixtures = []transactionFixture{
	{"tx-1008", model.TransactionBuy, "NVDA", "NVIDIA Corporation", 1, 871.20, 2},
	{"tx-1007", model.TransactionSell, "TSLA", "Tesla Inc.", 3, 201.15, 5},
	{"tx-1006", model.TransactionBuy, "AAPL", "Apple Inc.", 6, 186.40, 10},
	{"tx-1005", model.TransactionBuy, "MSFT", "Microsoft Corporation", 9, 409.85, 4},
	{"tx-1004", model.TransactionSell, "AMZN", "Amazon.com Inc.", 14, 175.30, 8},
	{"tx-1003", model.TransactionBuy, "GOOGL", "Alphabet Inc.", 20, 139.90, 15},
	{"tx-1002", model.TransactionBuy, "TSLA", "Tesla Inc.", 27, 188.75, 20},
	{"tx-1001", model.TransactionBuy, "AMZN", "Amazon.com Inc.", 35, 169.05, 28},
}

// DefaultTransactions builds the static transaction history, dated relative to start
// and ordered newest first.
func DefaultTransactions(start time.Time) []model.Transaction {
	day := start.Truncate(24 * time.Hour)

	out := make([]model.Transaction, len(transactionFixtures))
	for i, f := range transactionFixtures {
		out[i] = model.Transaction{
			ID:     f.id,
			Date:   day.AddDate(0, 0, -f.daysAgo),
			Type:   f.kind,
			Symbol: f.symbol,
			Name:   f.name,
			Price:  f.price,
			Shares: f.shares,
			Total:  Round2(f.price * f.shares),
			Status: TransactionStatusCompleted,
		}
	}
	return out
}

// FilterTransactions returns the transactions of the given type in their original order.
// An empty type returns all of them. The input is never modified.
func FilterTransactions(transactions []model.Transaction, kind string) []model.Transaction {
	out := make([]model.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if kind == "" || t.Type == kind {
			out = append(out, t)
		}
	}
	return out
}

// SummarizeTransactions counts buys and sells and sums their totals.
func SummarizeTransactions(transactions []model.Transaction) model.TransactionSummary {
	var summary model.TransactionSummary
	buys, sells := decimal.Zero, decimal.Zero

	for _, t := range transactions {
		switch t.Type {
		case model.TransactionBuy:
			summary.BuyTransactions++
			buys = buys.Add(decimal.NewFromFloat(t.Total))
		case model.TransactionSell:
			summary.SellTransactions++
			sells = sells.Add(decimal.NewFromFloat(t.Total))
		}
	}

	summary.TotalTransactions = len(transactions)
	summary.TotalBuyAmount = buys.Round(2).InexactFloat64()
	summary.TotalSellAmount = sells.Round(2).InexactFloat64()
	return summary
}
