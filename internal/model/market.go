package model

import (
	"time"

	"github.com/guregu/null/v6"
)

// RawFeed is the columnar price history served by a TradingView-style
// history endpoint. A nil slice means the field was absent from the payload.
type RawFeed struct {
	Status     string       `json:"s"`
	Timestamps []null.Int   `json:"t"`
	Close      []null.Float `json:"c"`
	Open       []null.Float `json:"o"`
	High       []null.Float `json:"h"`
	Low        []null.Float `json:"l"`
	Volume     []null.Float `json:"v"`
}

// RawObservation is a single row view of a RawFeed.
type RawObservation struct {
	Timestamp null.Int
	Close     null.Float
	Open      null.Float
	High      null.Float
	Low       null.Float
	Volume    null.Float
}

// Len returns the number of rows, taken from the timestamp column.
func (f *RawFeed) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Timestamps)
}

// Observations returns the feed as rows. Optional columns shorter than the
// timestamp column yield null cells.
func (f *RawFeed) Observations() []RawObservation {
	n := f.Len()
	obs := make([]RawObservation, n)
	for i := 0; i < n; i++ {
		obs[i] = RawObservation{
			Timestamp: f.Timestamps[i],
			Close:     cell(f.Close, i),
			Open:      cell(f.Open, i),
			High:      cell(f.High, i),
			Low:       cell(f.Low, i),
			Volume:    cell(f.Volume, i),
		}
	}
	return obs
}

func cell(col []null.Float, i int) null.Float {
	if i < len(col) {
		return col[i]
	}
	return null.Float{}
}

// PriceRow is one daily observation in canonical form.
type PriceRow struct {
	Datetime time.Time
	Price    null.Float // price_1d
	Open     null.Float
	High     null.Float
	Low      null.Float
	Volume   null.Float
}

// PriceSeries is a normalized, ascending-time daily series.
type PriceSeries []PriceRow
