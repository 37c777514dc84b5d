package model

import "time"

// PricePoint is a single sample in a stock's intraday history buffer.
type PricePoint struct {
	Time  string  `json:"time"` // H:MM, 24 hour clock
	Price float64 `json:"price"`
}

// StockRecord represents one holding in the simulated portfolio.
//
// Volatility is optional: a nil value means the feed default is used, while an explicit
// zero keeps the price fixed.
type StockRecord struct {
	ID               string       `json:"id"`
	Symbol           string       `json:"symbol"`
	Name             string       `json:"name"`
	Price            float64      `json:"price"`
	Shares           float64      `json:"shares"`
	Value            float64      `json:"value"`
	Change           float64      `json:"change"`
	ChangePercentage float64      `json:"changePercentage"`
	History          []PricePoint `json:"history"`
	Volatility       *float64     `json:"volatility,omitempty"`
	Color            string       `json:"color,omitempty"`
	LastUpdated      time.Time    `json:"lastUpdated"`
}

// IndexRecord represents a market index shown next to the portfolio.
type IndexRecord struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Value            float64   `json:"value"`
	Change           float64   `json:"change"`
	ChangePercentage float64   `json:"changePercentage"`
	LastUpdated      time.Time `json:"lastUpdated"`
}

// MarketSnapshot is a consistent view of one generation of market data.
// GenerationID and Sequence change on every completed tick so consumers can detect
// missed generations.
type MarketSnapshot struct {
	GenerationID         string           `json:"generationId"`
	Sequence             uint64           `json:"sequence"`
	Stocks               []StockRecord    `json:"stocks"`
	Indices              []IndexRecord    `json:"indices"`
	Summary              PortfolioSummary `json:"summary"`
	LastUpdated          time.Time        `json:"lastUpdated"`
	FormattedLastUpdated string           `json:"formattedLastUpdated"`
	IsLoading            bool             `json:"isLoading"`
	AutoUpdate           bool             `json:"autoUpdate"`
	IntervalMs           int64            `json:"intervalMs"`
}

// FeedStatus describes the update loop for the data-update controls.
type FeedStatus struct {
	LastUpdated          time.Time `json:"lastUpdated"`
	FormattedLastUpdated string    `json:"formattedLastUpdated"`
	IsLoading            bool      `json:"isLoading"`
	AutoUpdate           bool      `json:"autoUpdate"`
	IntervalMs           int64     `json:"intervalMs"`
	State                string    `json:"state"`
	IntervalOptions      []int64   `json:"intervalOptions"`
	Sequence             uint64    `json:"sequence"`
}

// Float returns a pointer to v. Used for optional numeric fields such as Volatility.
func Float(v float64) *float64 {
	return &v
}
