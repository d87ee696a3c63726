package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/guregu/null/v6"

	"TrendSentinel/internal/model"
)

const yahooChartURL = "https://query1.finance.yahoo.com/v8/finance/chart/"

// YahooFetcher implements Fetcher using Yahoo Finance public API.
type YahooFetcher struct {
	BaseURL   string
	Range     string
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker
	Client    *resty.Client
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(proxyURL string, timeout time.Duration) *YahooFetcher {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent)
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &YahooFetcher{
		BaseURL: yahooChartURL,
		Range:   "2y",
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
		},
		Client: client,
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// yahooChart is the response structure from Yahoo Finance chart API.
// Quote arrays carry JSON nulls for holidays and halted sessions.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []null.Float `json:"open"`
					High   []null.Float `json:"high"`
					Low    []null.Float `json:"low"`
					Close  []null.Float `json:"close"`
					Volume []null.Float `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchHistory returns daily bars over the configured range. Sessions with
// a null close are dropped; the Yahoo feed reports them for non-trading days.
func (f *YahooFetcher) FetchHistory(ctx context.Context, symbol string) (*model.RawFeed, error) {
	resp, err := f.Client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"interval": "1d", "range": f.Range}).
		Get(f.BaseURL + url.PathEscape(f.yahooSymbol(symbol)))
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}

	var chart yahooChart
	if err := json.Unmarshal(resp.Body(), &chart); err != nil {
		if resp.StatusCode() != 200 {
			return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode(), truncate(resp.String(), 200))
		}
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("yahoo: status %d", resp.StatusCode())
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 ||
		len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	feed := &model.RawFeed{Status: "ok"}
	for i, ts := range result.Timestamp {
		c := at(quote.Close, i)
		if !c.Valid {
			continue
		}
		feed.Timestamps = append(feed.Timestamps, null.IntFrom(ts))
		feed.Close = append(feed.Close, c)
		feed.Open = append(feed.Open, at(quote.Open, i))
		feed.High = append(feed.High, at(quote.High, i))
		feed.Low = append(feed.Low, at(quote.Low, i))
		feed.Volume = append(feed.Volume, at(quote.Volume, i))
	}

	log.Printf("[INFO] yahoo: fetched %d bars for %s", feed.Len(), symbol)
	return feed, nil
}

func at(col []null.Float, i int) null.Float {
	if i < len(col) {
		return col[i]
	}
	return null.Float{}
}
