// Package marketdata implements the synthetic market feed: a bounded random walk over
// stock and index prices, the portfolio aggregation derived from it, and the relative
// time labels shown next to the last update.
//
// Every function here is pure apart from the injected Rand, and collection updates
// always return fresh slices.
package marketdata

// Volatility bounds for a single tick.
const (
	DefaultStockVolatility = 0.005
	IndexVolatility        = 0.0025
)

// RandomInRange draws a uniform number in [min, max] rounded to places decimals.
func RandomInRange(rnd Rand, min, max float64, places int32) float64 {
	return Round(rnd.Float64()*(max-min)+min, places)
}

// NextPrice moves current by a random percentage in [-volatility, +volatility].
// The percentage is drawn with four decimals and the result rounded to two.
func NextPrice(rnd Rand, current, volatility float64) float64 {
	pct := RandomInRange(rnd, -volatility, volatility, 4)
	return Round2(current + current*pct)
}
