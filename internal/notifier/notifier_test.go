package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/guregu/null/v6"

	"TrendSentinel/internal/model"
)

func TestFormatResult(t *testing.T) {
	got := FormatResult(model.SentimentResult{Symbol: "MERO", IntradayBullish: 66.67, WeeklyBullish: 33.33})
	want := "MERO | intraday: 67% | weekly: 33% | BULLISH / BEARISH"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	failed := FormatResult(model.SentimentResult{Symbol: "MERO", Error: "boom"})
	if failed != "MERO | intraday: 0% | weekly: 0% | no signal" {
		t.Errorf("unexpected failure line: %q", failed)
	}
}

func TestFormatReport(t *testing.T) {
	series := model.EnrichedSeries{
		{
			PriceRow:    model.PriceRow{Datetime: time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), Price: null.FloatFrom(100)},
			DailyEMA5:   null.FloatFrom(99),
			DailyEMA10:  null.FloatFrom(98),
			DailyEMA15:  null.FloatFrom(97),
			WeeklyPrice: null.FloatFrom(96.5),
			WeeklyEMA5:  null.FloatFrom(95),
			WeeklyEMA10: null.FloatFrom(94),
			WeeklyEMA15: null.FloatFrom(93),
		},
		{
			PriceRow:  model.PriceRow{Datetime: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Price: null.FloatFrom(101)},
			DailyEMA5: null.FloatFrom(99.67),
		},
	}
	report := FormatReport(model.SentimentResult{Symbol: "MERO", IntradayBullish: 100, WeeklyBullish: 100}, series)
	for _, want := range []string{"MERO", "101.00", "99.67 / - / -", "96.50", "100.00% BULLISH"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}

	failed := FormatReport(model.SentimentResult{Symbol: "<X>", Error: "a < b"}, nil)
	if !strings.Contains(failed, "a &lt; b") || !strings.Contains(failed, "&lt;X&gt;") {
		t.Errorf("expected escaped error report, got:\n%s", failed)
	}
}

func TestTelegramNotifier_Send(t *testing.T) {
	var payload map[string]string
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "42", "")
	tn.BaseURL = srv.URL
	if err := tn.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if path != "/botTOKEN/sendMessage" {
		t.Errorf("unexpected path %q", path)
	}
	if payload["chat_id"] != "42" || payload["text"] != "hello" || payload["parse_mode"] != "HTML" {
		t.Errorf("unexpected payload %v", payload)
	}
}

func TestTelegramNotifier_SendWithRetryGivesUp(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "42", "")
	tn.BaseURL = srv.URL
	if err := tn.SendWithRetry(context.Background(), "hello", 0); err == nil {
		t.Error("expected error")
	}
	if calls != 1 {
		t.Errorf("expected a single attempt, got %d", calls)
	}
}
