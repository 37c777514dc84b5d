package model

import "time"

// PortfolioSummary represents the aggregate state of the simulated portfolio after a tick.
// Daily figures are derived from the previous summary; monthly and yearly figures carry the
// previous value forward with a small random adjustment. All monetary values are rounded to
// two decimal places.
type PortfolioSummary struct {
	TotalValue              float64   `json:"totalValue"`              // Sum of all stock values
	DailyChange             float64   `json:"dailyChange"`             // Change against the previous tick
	DailyChangePercentage   float64   `json:"dailyChangePercentage"`   // DailyChange relative to previous total
	MonthlyChange           float64   `json:"monthlyChange"`           // Perturbed carry-forward
	MonthlyChangePercentage float64   `json:"monthlyChangePercentage"` // MonthlyChange relative to current total
	YearlyChange            float64   `json:"yearlyChange"`            // Perturbed carry-forward
	YearlyChangePercentage  float64   `json:"yearlyChangePercentage"`  // YearlyChange relative to current total
	LastUpdated             time.Time `json:"lastUpdated"`
}

// Allocation is the share of the portfolio held in a single stock.
type Allocation struct {
	StockID    string  `json:"stockId"`
	Symbol     string  `json:"symbol"`
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"` // Percent of total value, two decimals
}
