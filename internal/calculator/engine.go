package calculator

import (
	"github.com/guregu/null/v6"

	"TrendSentinel/internal/model"
)

const stageEnrich = "ema"

// Enrich computes daily EMAs over the series, resamples it into
// Thursday-anchored weekly buckets, computes weekly EMAs over the closed
// buckets and joins the weekly values back onto every daily row of their
// bucket. Rows in the open trailing week carry null weekly columns.
// The input is not modified.
func Enrich(series model.PriceSeries) (model.EnrichedSeries, error) {
	if len(series) == 0 {
		return nil, model.NewValidationError(stageEnrich, "empty series received")
	}
	hasPrice := false
	for i, r := range series {
		if r.Datetime.IsZero() {
			return nil, model.NewValidationError(stageEnrich, "missing datetime at row %d", i)
		}
		if r.Price.Valid {
			hasPrice = true
		}
	}
	if !hasPrice {
		return nil, model.NewValidationError(stageEnrich, "missing required column: %s", model.ColPrice1D)
	}

	rows := make(model.PriceSeries, len(series))
	copy(rows, series)
	sortByDatetime(rows)

	prices, err := closes(rows)
	if err != nil {
		return nil, err
	}

	out := make(model.EnrichedSeries, len(rows))
	for i, r := range rows {
		out[i].PriceRow = r
	}

	// Daily EMAs
	for _, span := range model.EMASpans {
		ema, err := CalculateEMA(prices, span)
		if err != nil {
			return nil, model.NewCalculationError(stageEnrich, "daily EMA %d: %v", span, err)
		}
		for i := range out {
			setDailyEMA(&out[i], span, null.FloatFrom(ema[i]))
		}
	}

	// Weekly resampling over closed buckets only
	var closed []model.WeeklyBucket
	for _, b := range bucketize(rows, prices) {
		if b.Closed {
			closed = append(closed, b)
		}
	}
	if len(closed) == 0 {
		return out, nil
	}

	means := make([]float64, len(closed))
	index := make(map[int64]int, len(closed))
	for i, b := range closed {
		if !finite(b.Mean) {
			return nil, model.NewCalculationError(stageEnrich, "non-finite weekly mean for week ending %s", b.End.Format("2006-01-02"))
		}
		means[i] = b.Mean
		index[b.End.Unix()] = i
	}

	weekly := make(map[int][]float64, len(model.EMASpans))
	for _, span := range model.EMASpans {
		ema, err := CalculateEMA(means, span)
		if err != nil {
			return nil, model.NewCalculationError(stageEnrich, "weekly EMA %d: %v", span, err)
		}
		weekly[span] = ema
	}

	// Left join on week bucket
	for i := range out {
		j, ok := index[WeekEnding(out[i].Datetime).Unix()]
		if !ok {
			continue
		}
		out[i].WeeklyPrice = null.FloatFrom(means[j])
		for _, span := range model.EMASpans {
			setWeeklyEMA(&out[i], span, null.FloatFrom(weekly[span][j]))
		}
	}
	return out, nil
}

// closes extracts the close prices, rejecting null or non-finite cells.
func closes(rows model.PriceSeries) ([]float64, error) {
	prices := make([]float64, len(rows))
	for i, r := range rows {
		if !r.Price.Valid || !finite(r.Price.Float64) {
			return nil, model.NewCalculationError(stageEnrich,
				"non-numeric price at %s", r.Datetime.Format("2006-01-02 15:04:05"))
		}
		prices[i] = r.Price.Float64
	}
	return prices, nil
}

func setDailyEMA(r *model.EnrichedRow, span int, v null.Float) {
	switch span {
	case 5:
		r.DailyEMA5 = v
	case 10:
		r.DailyEMA10 = v
	case 15:
		r.DailyEMA15 = v
	}
}

func setWeeklyEMA(r *model.EnrichedRow, span int, v null.Float) {
	switch span {
	case 5:
		r.WeeklyEMA5 = v
	case 10:
		r.WeeklyEMA10 = v
	case 15:
		r.WeeklyEMA15 = v
	}
}
