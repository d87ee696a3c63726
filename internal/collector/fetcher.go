package collector

import (
	"context"

	"TrendSentinel/internal/model"
)

// Fetcher defines the interface for fetching raw price history.
type Fetcher interface {
	FetchHistory(ctx context.Context, symbol string) (*model.RawFeed, error)
	Name() string
}

// userAgent is sent by every HTTP fetcher; both upstreams reject bare clients.
const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
