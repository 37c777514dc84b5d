package marketdata

import (
	"time"

	"github.com/ndewijer/Market-Data-Simulator/internal/model"
)

// Seed is the initial generation the feed starts from.
type Seed struct {
	Stocks  []model.StockRecord
	Indices []model.IndexRecord
	Summary model.PortfolioSummary
}

type stockFixture struct {
	id, symbol, name, color string
	price, shares           float64
	volatility              *float64
}

var stockFixtures = []stockFixture{
	{"aapl", "AAPL", "Apple Inc.", "#A2AAAD", 189.84, 25, nil},
	{"msft", "MSFT", "Microsoft Corporation", "#00A4EF", 415.50, 12, model.Float(0.004)},
	{"googl", "GOOGL", "Alphabet Inc.", "#4285F4", 142.65, 30, nil},
	{"amzn", "AMZN", "Amazon.com Inc.", "#FF9900", 178.25, 20, model.Float(0.006)},
	{"tsla", "TSLA", "Tesla Inc.", "#CC0000", 197.42, 15, model.Float(0.012)},
	{"nvda", "NVDA", "NVIDIA Corporation", "#76B900", 878.35, 5, model.Float(0.009)},
}

type indexFixture struct {
	id, name      string
	value, change float64
}

var indexFixtures = []indexFixture{
	{"sp500", "S&P 500", 5123.69, 23.53},
	{"nasdaq", "NASDAQ", 16085.11, 118.31},
	{"dow", "DOW JONES", 38790.43, -75.66},
	{"russell", "RUSSELL 2000", 2063.47, 8.12},
}

// DefaultSeed builds the static portfolio the dashboard starts with. Every stock gets a
// short intraday history ending at start, one sample per half hour.
func DefaultSeed(start time.Time) Seed {
	stocks := make([]model.StockRecord, len(stockFixtures))
	for i, f := range stockFixtures {
		history := make([]model.PricePoint, 0, HistoryCapacity)
		for step := 6; step >= 0; step-- {
			// Deterministic sawtooth around the fixture price.
			offset := float64((step+i)%3-1) * f.price * 0.002
			history = append(history, model.PricePoint{
				Time:  TimeLabel(start.Add(-time.Duration(step) * 30 * time.Minute)),
				Price: Round2(f.price + offset),
			})
		}
		history[len(history)-1].Price = f.price

		stocks[i] = model.StockRecord{
			ID:          f.id,
			Symbol:      f.symbol,
			Name:        f.name,
			Price:       f.price,
			Shares:      f.shares,
			Value:       Round2(f.price * f.shares),
			History:     history,
			Volatility:  f.volatility,
			Color:       f.color,
			LastUpdated: start,
		}
	}

	indices := make([]model.IndexRecord, len(indexFixtures))
	for i, f := range indexFixtures {
		indices[i] = model.IndexRecord{
			ID:               f.id,
			Name:             f.name,
			Value:            f.value,
			Change:           f.change,
			ChangePercentage: percentOf(f.change, f.value-f.change),
			LastUpdated:      start,
		}
	}

	total := TotalValue(stocks)
	summary := model.PortfolioSummary{
		TotalValue:              total,
		DailyChange:             245.32,
		DailyChangePercentage:   percentOf(245.32, total-245.32),
		MonthlyChange:           1250.75,
		MonthlyChangePercentage: percentOf(1250.75, total),
		YearlyChange:            5430.20,
		YearlyChangePercentage:  percentOf(5430.20, total),
		LastUpdated:             start,
	}

	return Seed{Stocks: stocks, Indices: indices, Summary: summary}
}
