package collector

import (
	"context"
	"time"

	"github.com/guregu/null/v6"

	"TrendSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price float64
	Days  int
	Start time.Time
	Feed  *model.RawFeed
	Err   error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchHistory(_ context.Context, _ string) (*model.RawFeed, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Feed != nil {
		return m.Feed, nil
	}
	start := m.Start
	if start.IsZero() {
		start = time.Now().AddDate(0, 0, -m.Days)
	}
	return generateMockFeed(m.Price, m.Days, start), nil
}

func generateMockFeed(basePrice float64, count int, start time.Time) *model.RawFeed {
	feed := &model.RawFeed{Status: "ok"}
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		feed.Timestamps = append(feed.Timestamps, null.IntFrom(start.AddDate(0, 0, i).Unix()))
		feed.Close = append(feed.Close, null.FloatFrom(p))
		feed.Open = append(feed.Open, null.FloatFrom(p*0.999))
		feed.High = append(feed.High, null.FloatFrom(p*1.005))
		feed.Low = append(feed.Low, null.FloatFrom(p*0.995))
		feed.Volume = append(feed.Volume, null.FloatFrom(1000000))
	}
	return feed
}
