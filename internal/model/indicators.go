package model

import (
	"time"

	"github.com/guregu/null/v6"
)

// EMASpans are the EMA windows computed for both timeframes.
var EMASpans = []int{5, 10, 15}

// EnrichedRow is a daily row extended with daily and weekly EMA columns.
// Weekly columns are constant across rows sharing a week bucket.
type EnrichedRow struct {
	PriceRow

	DailyEMA5  null.Float
	DailyEMA10 null.Float
	DailyEMA15 null.Float

	WeeklyPrice null.Float // price_1w
	WeeklyEMA5  null.Float
	WeeklyEMA10 null.Float
	WeeklyEMA15 null.Float
}

// EnrichedSeries is the EMA Engine output, ascending by Datetime.
type EnrichedSeries []EnrichedRow

// WeeklyBucket is one Thursday-anchored aggregation window.
type WeeklyBucket struct {
	End    time.Time // Thursday, 00:00 UTC
	Mean   float64
	Count  int
	Closed bool
}

// Column describes one numeric column of the enriched schema.
type Column struct {
	Name string
	Get  func(r *EnrichedRow) null.Float
}

// Enriched column names.
const (
	ColDatetime    = "datetime"
	ColPrice1D     = "price_1d"
	ColOpen        = "open_price"
	ColHigh        = "higest_price"
	ColLow         = "lowest_price"
	ColVolume      = "volume"
	ColDailyEMA5   = "1D_EMA_5"
	ColDailyEMA10  = "1D_EMA_10"
	ColDailyEMA15  = "1D_EMA_15"
	ColPrice1W     = "price_1w"
	ColWeeklyEMA5  = "1W_EMA_5"
	ColWeeklyEMA10 = "1W_EMA_10"
	ColWeeklyEMA15 = "1W_EMA_15"
)

// EnrichedColumns lists the numeric columns in snapshot order. The datetime
// column always precedes them.
var EnrichedColumns = []Column{
	{ColPrice1D, func(r *EnrichedRow) null.Float { return r.Price }},
	{ColOpen, func(r *EnrichedRow) null.Float { return r.Open }},
	{ColHigh, func(r *EnrichedRow) null.Float { return r.High }},
	{ColLow, func(r *EnrichedRow) null.Float { return r.Low }},
	{ColVolume, func(r *EnrichedRow) null.Float { return r.Volume }},
	{ColDailyEMA5, func(r *EnrichedRow) null.Float { return r.DailyEMA5 }},
	{ColDailyEMA10, func(r *EnrichedRow) null.Float { return r.DailyEMA10 }},
	{ColDailyEMA15, func(r *EnrichedRow) null.Float { return r.DailyEMA15 }},
	{ColPrice1W, func(r *EnrichedRow) null.Float { return r.WeeklyPrice }},
	{ColWeeklyEMA5, func(r *EnrichedRow) null.Float { return r.WeeklyEMA5 }},
	{ColWeeklyEMA10, func(r *EnrichedRow) null.Float { return r.WeeklyEMA10 }},
	{ColWeeklyEMA15, func(r *EnrichedRow) null.Float { return r.WeeklyEMA15 }},
}

// RequiredColumns are the columns scoring depends on.
var RequiredColumns = []string{
	ColPrice1W, ColWeeklyEMA5, ColWeeklyEMA10, ColWeeklyEMA15,
	ColPrice1D, ColDailyEMA5, ColDailyEMA10, ColDailyEMA15,
}

// LookupColumn returns the column with the given name.
func LookupColumn(name string) (Column, bool) {
	for _, c := range EnrichedColumns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// HasValue reports whether at least one row carries a non-null value in col.
func (s EnrichedSeries) HasValue(col Column) bool {
	for i := range s {
		if col.Get(&s[i]).Valid {
			return true
		}
	}
	return false
}

// LastValid returns the index of the last row with a non-null value in col,
// or -1.
func (s EnrichedSeries) LastValid(col Column) int {
	for i := len(s) - 1; i >= 0; i-- {
		if col.Get(&s[i]).Valid {
			return i
		}
	}
	return -1
}
