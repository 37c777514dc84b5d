package marketdata

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Market-Data-Simulator/internal/model"
)

// Bounds of the random drift applied to the carried-forward monthly and yearly changes.
// These figures are not derived from price movement.
const (
	MonthlyDrift = 0.1
	YearlyDrift  = 0.2
)

// TotalValue sums stock values, rounded to two decimals.
func TotalValue(stocks []model.StockRecord) float64 {
	total := decimal.Zero
	for _, s := range stocks {
		total = total.Add(decimal.NewFromFloat(s.Value))
	}
	return total.Round(2).InexactFloat64()
}

// UpdateSummary recomputes the portfolio summary from a freshly updated stock generation
// and the summary of the previous generation. Percentages with a zero denominator are 0.
func UpdateSummary(rnd Rand, stocks []model.StockRecord, previous model.PortfolioSummary, now time.Time) model.PortfolioSummary {
	totalValue := TotalValue(stocks)

	dailyChange := Round2(totalValue - previous.TotalValue)
	monthlyChange := Round2(previous.MonthlyChange + RandomInRange(rnd, -MonthlyDrift, MonthlyDrift, 2))
	yearlyChange := Round2(previous.YearlyChange + RandomInRange(rnd, -YearlyDrift, YearlyDrift, 2))

	return model.PortfolioSummary{
		TotalValue:              totalValue,
		DailyChange:             dailyChange,
		DailyChangePercentage:   percentOf(dailyChange, previous.TotalValue),
		MonthlyChange:           monthlyChange,
		MonthlyChangePercentage: percentOf(monthlyChange, totalValue),
		YearlyChange:            yearlyChange,
		YearlyChangePercentage:  percentOf(yearlyChange, totalValue),
		LastUpdated:             now,
	}
}

// Allocations returns each stock's share of the total portfolio value.
func Allocations(stocks []model.StockRecord) []model.Allocation {
	total := TotalValue(stocks)
	out := make([]model.Allocation, len(stocks))
	for i, s := range stocks {
		out[i] = model.Allocation{
			StockID:    s.ID,
			Symbol:     s.Symbol,
			Name:       s.Name,
			Value:      s.Value,
			Percentage: percentOf(s.Value, total),
		}
	}
	return out
}
