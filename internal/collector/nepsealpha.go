package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"

	"TrendSentinel/internal/model"
)

// NepseAlphaFetcher implements Fetcher against the NepseAlpha trading
// history endpoint, which serves TradingView UDF columnar bars.
type NepseAlphaFetcher struct {
	BaseURL    string
	FSK        string
	Resolution string
	Client     *resty.Client
}

// NewNepseAlphaFetcher creates a new fetcher with optional proxy support.
func NewNepseAlphaFetcher(baseURL, fsk, resolution, proxyURL string, timeout time.Duration) *NepseAlphaFetcher {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json")
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &NepseAlphaFetcher{
		BaseURL:    baseURL,
		FSK:        fsk,
		Resolution: resolution,
		Client:     client,
	}
}

func (f *NepseAlphaFetcher) Name() string { return "nepsealpha" }

// udfHistory is the history payload; errmsg is only set when s == "error".
type udfHistory struct {
	model.RawFeed
	ErrMsg string `json:"errmsg"`
}

func (f *NepseAlphaFetcher) FetchHistory(ctx context.Context, symbol string) (*model.RawFeed, error) {
	params := map[string]string{
		"symbol":     symbol,
		"resolution": f.Resolution,
		"pass":       "ok",
	}
	if f.FSK != "" {
		params["fsk"] = f.FSK
	}

	resp, err := f.Client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(f.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("nepsealpha fetch: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("nepsealpha: status %d, body: %s", resp.StatusCode(), truncate(resp.String(), 200))
	}

	var hist udfHistory
	if err := json.Unmarshal(resp.Body(), &hist); err != nil {
		return nil, fmt.Errorf("nepsealpha decode: %w", err)
	}
	switch hist.Status {
	case "error":
		return nil, fmt.Errorf("nepsealpha api error: %s", hist.ErrMsg)
	case "no_data":
		return nil, fmt.Errorf("nepsealpha: no data for %s", symbol)
	}

	log.Printf("[INFO] nepsealpha: fetched %d bars for %s", hist.Len(), symbol)
	return &hist.RawFeed, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
