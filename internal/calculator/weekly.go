package calculator

import (
	"time"

	"TrendSentinel/internal/model"
)

// BucketAnchor is the weekday closing every weekly bucket.
const BucketAnchor = time.Thursday

// WeekEnding returns the bucket end for t: midnight UTC of the first
// Thursday on or after t's calendar date. Any time of day on a Thursday
// belongs to that Thursday's bucket.
func WeekEnding(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	ahead := (int(BucketAnchor) - int(day.Weekday()) + 7) % 7
	return day.AddDate(0, 0, ahead)
}

// ResampleWeekly groups a daily series into Thursday-anchored buckets and
// averages the close price of each. Weeks without observations produce no
// bucket. The trailing bucket is open when its Thursday lies after the last
// observation's date.
func ResampleWeekly(series model.PriceSeries) ([]model.WeeklyBucket, error) {
	if len(series) == 0 {
		return nil, model.NewValidationError(stageEnrich, "empty series received")
	}
	rows := make(model.PriceSeries, len(series))
	copy(rows, series)
	sortByDatetime(rows)

	prices, err := closes(rows)
	if err != nil {
		return nil, err
	}
	return bucketize(rows, prices), nil
}

// bucketize expects rows sorted ascending and prices aligned with rows.
func bucketize(rows model.PriceSeries, prices []float64) []model.WeeklyBucket {
	var buckets []model.WeeklyBucket
	var sum float64
	for i, r := range rows {
		end := WeekEnding(r.Datetime)
		if len(buckets) == 0 || !buckets[len(buckets)-1].End.Equal(end) {
			if len(buckets) > 0 {
				last := &buckets[len(buckets)-1]
				last.Mean = sum / float64(last.Count)
			}
			buckets = append(buckets, model.WeeklyBucket{End: end})
			sum = 0
		}
		buckets[len(buckets)-1].Count++
		sum += prices[i]
	}
	if len(buckets) == 0 {
		return nil
	}
	tail := &buckets[len(buckets)-1]
	tail.Mean = sum / float64(tail.Count)

	lastDay := rows[len(rows)-1].Datetime
	lastDay = time.Date(lastDay.Year(), lastDay.Month(), lastDay.Day(), 0, 0, 0, 0, time.UTC)
	for i := range buckets {
		buckets[i].Closed = !buckets[i].End.After(lastDay)
	}
	return buckets
}
