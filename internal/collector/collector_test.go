package collector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNepseAlphaFetcher_FetchHistory(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		if ua := r.Header.Get("User-Agent"); !strings.HasPrefix(ua, "Mozilla/") {
			t.Errorf("unexpected User-Agent %q", ua)
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`{"s":"ok","t":[1704153600,1704067200],"c":[101.5,100],"o":[100,99],"h":[102,101],"l":[99,98],"v":[1200,null]}`))
	}))
	defer srv.Close()

	f := NewNepseAlphaFetcher(srv.URL+"/trading/1/history", "key123", "1D", "", 5*time.Second)
	feed, err := f.FetchHistory(context.Background(), "MERO")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"symbol=MERO", "resolution=1D", "pass=ok", "fsk=key123"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}
	if feed.Len() != 2 || feed.Status != "ok" {
		t.Fatalf("unexpected feed: %+v", feed)
	}
	if feed.Timestamps[1].Int64 != 1704067200 || feed.Close[0].Float64 != 101.5 {
		t.Errorf("decoded values do not match payload: %+v", feed)
	}
	if feed.Volume[1].Valid {
		t.Error("expected null volume to decode as null")
	}
}

func TestNepseAlphaFetcher_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"http error", http.StatusForbidden, "blocked"},
		{"api error", http.StatusOK, `{"s":"error","errmsg":"unknown symbol"}`},
		{"no data", http.StatusOK, `{"s":"no_data"}`},
		{"bad json", http.StatusOK, `<html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			f := NewNepseAlphaFetcher(srv.URL, "", "1D", "", 5*time.Second)
			if _, err := f.FetchHistory(context.Background(), "XYZ"); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestYahooFetcher_FetchHistory(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"chart":{"result":[{"timestamp":[1704067200,1704153600,1704240000],
			"indicators":{"quote":[{"open":[1,null,3],"high":[1,null,3],"low":[1,null,3],
			"close":[10,null,12],"volume":[100,null,300]}]}}],"error":null}}`))
	}))
	defer srv.Close()

	f := NewYahooFetcher("", 5*time.Second)
	f.BaseURL = srv.URL + "/v8/finance/chart/"
	feed, err := f.FetchHistory(context.Background(), "SPX500")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/v8/finance/chart/%5EGSPC" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if feed.Len() != 2 {
		t.Fatalf("expected null-close session to be dropped, got %d rows", feed.Len())
	}
	if feed.Close[1].Float64 != 12 || feed.Timestamps[1].Int64 != 1704240000 {
		t.Errorf("unexpected second row: t=%v c=%v", feed.Timestamps[1], feed.Close[1])
	}
}

func TestYahooFetcher_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	}))
	defer srv.Close()

	f := NewYahooFetcher("", 5*time.Second)
	f.BaseURL = srv.URL + "/"
	_, err := f.FetchHistory(context.Background(), "GONE")
	if err == nil || !strings.Contains(err.Error(), "delisted") {
		t.Errorf("expected api error description, got %v", err)
	}
}

func TestMockFetcher(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := &MockFetcher{Price: 100, Days: 10, Start: start}
	feed, err := m.FetchHistory(context.Background(), "ANY")
	if err != nil {
		t.Fatal(err)
	}
	if feed.Len() != 10 || len(feed.Close) != 10 {
		t.Fatalf("expected 10 rows, got %d", feed.Len())
	}
	if feed.Timestamps[0].Int64 != start.Unix() {
		t.Errorf("first timestamp = %d, want %d", feed.Timestamps[0].Int64, start.Unix())
	}

	m.Err = errors.New("boom")
	if _, err := m.FetchHistory(context.Background(), "ANY"); err == nil {
		t.Error("expected configured error")
	}
}
