package marketdata_test

import (
	"time"

	"github.com/ndewijer/Market-Data-Simulator/internal/model"
)

// fixedRand always returns the same draw.
type fixedRand struct{ v float64 }

func (r fixedRand) Float64() float64 { return r.v }

// midRand draws the midpoint of every range, i.e. no movement.
var midRand = fixedRand{v: 0.5}

var testNow = time.Date(2024, 3, 18, 9, 5, 0, 0, time.UTC)

func stock(id string, price, shares float64, volatility *float64) model.StockRecord {
	return model.StockRecord{
		ID:         id,
		Symbol:     id,
		Name:       id,
		Price:      price,
		Shares:     shares,
		Value:      price * shares,
		Volatility: volatility,
	}
}
