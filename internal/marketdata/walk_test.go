package marketdata_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/ndewijer/Market-Data-Simulator/internal/marketdata"
)

func TestRandomInRange(t *testing.T) {
	tests := []struct {
		name   string
		draw   float64
		min    float64
		max    float64
		places int32
		want   float64
	}{
		{"lowest draw returns min", 0, -0.1, 0.1, 2, -0.1},
		{"midpoint draw returns center", 0.5, -0.2, 0.2, 2, 0},
		{"draw is rounded to places", 0.123456, 0, 1, 4, 0.1235},
		{"near-one draw rounds to max", 0.9999999, -0.005, 0.005, 4, 0.005},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := marketdata.RandomInRange(fixedRand{v: tt.draw}, tt.min, tt.max, tt.places)
			if got != tt.want {
				t.Errorf("RandomInRange() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNextPrice(t *testing.T) {
	t.Run("zero volatility keeps the price", func(t *testing.T) {
		if got := marketdata.NextPrice(fixedRand{v: 0.9}, 100, 0); got != 100 {
			t.Errorf("Expected 100, got %v", got)
		}
	})

	t.Run("lowest draw moves down by the full volatility", func(t *testing.T) {
		if got := marketdata.NextPrice(fixedRand{v: 0}, 100, 0.005); got != 99.5 {
			t.Errorf("Expected 99.5, got %v", got)
		}
	})

	t.Run("highest draw moves up by the full volatility", func(t *testing.T) {
		if got := marketdata.NextPrice(fixedRand{v: 0.9999999}, 100, 0.005); got != 100.5 {
			t.Errorf("Expected 100.5, got %v", got)
		}
	})

	t.Run("result is rounded to cents", func(t *testing.T) {
		// pct = 0.0012 -> 123.45 * 1.0012 = 123.59814
		got := marketdata.NextPrice(fixedRand{v: 0.62}, 123.45, 0.005)
		if got != 123.6 {
			t.Errorf("Expected 123.6, got %v", got)
		}
	})
}

func TestNextPrice_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("new price stays within the volatility band", prop.ForAll(
		func(seed int64, current float64, basisPoints int) bool {
			volatility := float64(basisPoints) / 10000
			rnd := marketdata.NewRand(seed)

			got := marketdata.NextPrice(rnd, current, volatility)
			lo := marketdata.Round2(current - current*volatility)
			hi := marketdata.Round2(current + current*volatility)

			if got < lo || got > hi {
				t.Logf("NextPrice(%v, %v) = %v outside [%v, %v]", current, volatility, got, lo, hi)
				return false
			}
			return true
		},
		gen.Int64Range(1, 1<<40),
		gen.Float64Range(0.01, 100000),
		gen.IntRange(1, 9999),
	))

	properties.Property("new price has at most two decimals", prop.ForAll(
		func(seed int64, current float64) bool {
			got := marketdata.NextPrice(marketdata.NewRand(seed), current, marketdata.DefaultStockVolatility)
			return marketdata.Round2(got) == got
		},
		gen.Int64Range(1, 1<<40),
		gen.Float64Range(0.01, 100000),
	))

	properties.TestingRun(t)
}
