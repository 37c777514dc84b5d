package marketdata

import "github.com/shopspring/decimal"

// Round rounds v to places decimals, half away from zero.
func Round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// Round2 rounds a monetary or percentage value to two decimals.
func Round2(v float64) float64 {
	return Round(v, 2)
}

// percentOf returns part/whole*100, or 0 when whole is zero.
func percentOf(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return decimal.NewFromFloat(part).
		Div(decimal.NewFromFloat(whole)).
		Mul(decimal.NewFromInt(100)).
		Round(2).
		InexactFloat64()
}
