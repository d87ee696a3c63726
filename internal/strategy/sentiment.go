package strategy

import (
	"TrendSentinel/internal/model"
)

const stageScore = "score"

// Evaluate scores the latest daily and weekly prices against their EMAs.
//
// The intraday reference is the last row. The weekly reference is the last
// row carrying a price_1w value, together with that row's weekly EMAs.
// Each timeframe gets three votes: price vs EMA5, EMA5 vs EMA10 and
// EMA10 vs EMA15. Scores are unrounded; see Round2.
func Evaluate(series model.EnrichedSeries) (model.Score, error) {
	if len(series) == 0 {
		return model.Score{}, model.NewValidationError(stageScore, "empty series received")
	}
	if err := checkColumns(series); err != nil {
		return model.Score{}, err
	}

	last := &series[len(series)-1]
	intraday := tally(last.Price, last.DailyEMA5, last.DailyEMA10, last.DailyEMA15)

	price1w, _ := model.LookupColumn(model.ColPrice1W)
	wk := &series[series.LastValid(price1w)]
	weekly := tally(wk.WeeklyPrice, wk.WeeklyEMA5, wk.WeeklyEMA10, wk.WeeklyEMA15)

	return model.Score{
		Intraday:      Percent(intraday),
		Weekly:        Percent(weekly),
		IntradayVotes: intraday,
		WeeklyVotes:   weekly,
	}, nil
}

// checkColumns requires every scoring column to hold at least one value.
func checkColumns(series model.EnrichedSeries) error {
	var missing []string
	for _, name := range model.RequiredColumns {
		col, ok := model.LookupColumn(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		if !series.HasValue(col) {
			return model.NewValidationError(stageScore, "no valid data for %s", name)
		}
	}
	if len(missing) > 0 {
		return model.NewValidationError(stageScore, "missing required columns: %v", missing)
	}
	return nil
}
