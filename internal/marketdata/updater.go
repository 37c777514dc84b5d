package marketdata

import (
	"fmt"
	"time"

	"github.com/ndewijer/Market-Data-Simulator/internal/model"
)

// HistoryCapacity is the number of samples kept per stock.
const HistoryCapacity = 14

// TimeLabel formats t as H:MM on a 24 hour clock.
func TimeLabel(t time.Time) string {
	return fmt.Sprintf("%d:%02d", t.Hour(), t.Minute())
}

// stockVolatility returns the record's own volatility, or the default when unset.
func stockVolatility(s model.StockRecord) float64 {
	if s.Volatility == nil {
		return DefaultStockVolatility
	}
	return *s.Volatility
}

// appendHistory returns a new buffer holding history plus p, evicting the oldest
// samples so the result never exceeds HistoryCapacity.
func appendHistory(history []model.PricePoint, p model.PricePoint) []model.PricePoint {
	start := 0
	if len(history) >= HistoryCapacity {
		start = len(history) - HistoryCapacity + 1
	}
	out := make([]model.PricePoint, 0, HistoryCapacity)
	out = append(out, history[start:]...)
	return append(out, p)
}

// UpdateStocks advances every stock by one tick and returns the new generation.
// The input slice and its history buffers are left untouched.
func UpdateStocks(rnd Rand, stocks []model.StockRecord, now time.Time) []model.StockRecord {
	label := TimeLabel(now)
	updated := make([]model.StockRecord, len(stocks))

	for i, s := range stocks {
		newPrice := NextPrice(rnd, s.Price, stockVolatility(s))
		change := Round2(newPrice - s.Price)

		next := s
		next.Price = newPrice
		next.Change = change
		next.ChangePercentage = percentOf(change, s.Price)
		next.Value = Round2(newPrice * s.Shares)
		next.History = appendHistory(s.History, model.PricePoint{Time: label, Price: newPrice})
		if s.Volatility != nil {
			next.Volatility = model.Float(*s.Volatility)
		}
		next.LastUpdated = now

		updated[i] = next
	}

	return updated
}

// UpdateIndices advances every index by one tick with IndexVolatility.
func UpdateIndices(rnd Rand, indices []model.IndexRecord, now time.Time) []model.IndexRecord {
	updated := make([]model.IndexRecord, len(indices))

	for i, idx := range indices {
		newValue := NextPrice(rnd, idx.Value, IndexVolatility)
		change := Round2(newValue - idx.Value)

		next := idx
		next.Value = newValue
		next.Change = change
		next.ChangePercentage = percentOf(change, idx.Value)
		next.LastUpdated = now

		updated[i] = next
	}

	return updated
}
