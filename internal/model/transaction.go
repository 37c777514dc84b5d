package model

import "time"

// Transaction types.
const (
	TransactionBuy  = "buy"
	TransactionSell = "sell"
)

// Transaction is a completed buy or sell order in the simulated portfolio's history.
// Transactions are seeded once and never change while the feed runs.
type Transaction struct {
	ID     string    `json:"id"`
	Date   time.Time `json:"date"`
	Type   string    `json:"type"` // buy or sell
	Symbol string    `json:"symbol"`
	Name   string    `json:"name"`
	Price  float64   `json:"price"`
	Shares float64   `json:"shares"`
	Total  float64   `json:"total"` // Price * Shares, two decimals
	Status string    `json:"status"`
}

// TransactionSummary counts transactions by type and totals their amounts.
type TransactionSummary struct {
	TotalTransactions int     `json:"totalTransactions"`
	BuyTransactions   int     `json:"buyTransactions"`
	SellTransactions  int     `json:"sellTransactions"`
	TotalBuyAmount    float64 `json:"totalBuyAmount"`
	TotalSellAmount   float64 `json:"totalSellAmount"`
}
