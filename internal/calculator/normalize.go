package calculator

import (
	"math"
	"sort"
	"time"

	"TrendSentinel/internal/model"
)

const stageNormalize = "normalize"

// maxUnixSeconds bounds timestamps that still fit a nanosecond clock.
const maxUnixSeconds = math.MaxInt64 / int64(time.Second)

// Normalize validates a raw feed and reshapes it into an ascending-time
// PriceSeries. The status column is dropped. Rows sharing a timestamp keep
// their feed order.
func Normalize(feed *model.RawFeed) (model.PriceSeries, error) {
	if feed == nil || (feed.Len() == 0 && len(feed.Close) == 0) {
		return nil, model.NewValidationError(stageNormalize, "empty feed received")
	}

	var missing []string
	if feed.Close == nil {
		missing = append(missing, "c")
	}
	if feed.Timestamps == nil {
		missing = append(missing, "t")
	}
	if len(missing) > 0 {
		return nil, model.NewValidationError(stageNormalize, "missing required columns: %v", missing)
	}

	n := feed.Len()
	if len(feed.Close) != n {
		return nil, model.NewValidationError(stageNormalize,
			"column length mismatch: t has %d rows, c has %d", n, len(feed.Close))
	}
	optional := []struct {
		name string
		rows int
	}{{"o", len(feed.Open)}, {"h", len(feed.High)}, {"l", len(feed.Low)}, {"v", len(feed.Volume)}}
	for _, col := range optional {
		if col.rows != 0 && col.rows != n {
			return nil, model.NewValidationError(stageNormalize,
				"column length mismatch: t has %d rows, %s has %d", n, col.name, col.rows)
		}
	}

	series := make(model.PriceSeries, 0, n)
	for i, obs := range feed.Observations() {
		ts := obs.Timestamp
		if !ts.Valid || ts.Int64 > maxUnixSeconds || ts.Int64 < -maxUnixSeconds {
			return nil, model.NewValidationError(stageNormalize, "invalid timestamp value at row %d", i)
		}
		series = append(series, model.PriceRow{
			Datetime: time.Unix(ts.Int64, 0).UTC(),
			Price:    obs.Close,
			Open:     obs.Open,
			High:     obs.High,
			Low:      obs.Low,
			Volume:   obs.Volume,
		})
	}

	sortByDatetime(series)

	if len(series) == 0 {
		return nil, model.NewValidationError(stageNormalize, "processing resulted in an empty series")
	}
	return series, nil
}

func sortByDatetime(series model.PriceSeries) {
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Datetime.Before(series[j].Datetime)
	})
}
