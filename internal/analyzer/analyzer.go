package analyzer

import (
	"context"
	"fmt"
	"log"

	"TrendSentinel/internal/calculator"
	"TrendSentinel/internal/collector"
	"TrendSentinel/internal/model"
	"TrendSentinel/internal/recorder"
	"TrendSentinel/internal/strategy"
)

// Analyzer sequences fetch -> normalize -> enrich -> score for one symbol
// and is the only place a stage failure becomes a zero-score result.
type Analyzer struct {
	Fetcher  collector.Fetcher
	Recorder recorder.Recorder
}

// NewAnalyzer creates a new Analyzer. A nil recorder disables snapshots.
func NewAnalyzer(fetcher collector.Fetcher, rec recorder.Recorder) *Analyzer {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Analyzer{Fetcher: fetcher, Recorder: rec}
}

// Analyze fetches the symbol's history and scores it. Fetch and pipeline
// failures are reported in the result's Error field. The enriched series is
// returned alongside for reporting and is nil on failure.
func (a *Analyzer) Analyze(ctx context.Context, symbol string) (model.SentimentResult, model.EnrichedSeries) {
	feed, err := a.Fetcher.FetchHistory(ctx, symbol)
	if err != nil {
		log.Printf("[WARN] %s: fetch from %s failed: %v", symbol, a.Fetcher.Name(), err)
		return failure(symbol, fmt.Errorf("fetch: %w", err)), nil
	}
	if feed.Len() == 0 {
		return failure(symbol, fmt.Errorf("no data returned from %s", a.Fetcher.Name())), nil
	}

	series, err := enriched(feed)
	if err != nil {
		log.Printf("[WARN] %s: %v", symbol, err)
		return failure(symbol, err), nil
	}

	if err := a.Recorder.RecordSnapshot(symbol, series); err != nil {
		log.Printf("[WARN] %s: snapshot failed: %v", symbol, err)
	}
	result := score(symbol, series)
	if result.Failed() {
		log.Printf("[WARN] %s: %s", symbol, result.Error)
		return result, nil
	}
	return result, series
}

// Predict runs the pipeline over an already fetched feed.
func Predict(symbol string, feed *model.RawFeed) model.SentimentResult {
	series, err := enriched(feed)
	if err != nil {
		return failure(symbol, err)
	}
	return score(symbol, series)
}

// enriched runs the Normalizer and EMA Engine and validates their outputs.
func enriched(feed *model.RawFeed) (model.EnrichedSeries, error) {
	normalized, err := calculator.Normalize(feed)
	if err != nil {
		return nil, err
	}
	if len(normalized) == 0 {
		return nil, model.NewValidationError("pipeline", "data preprocessing failed")
	}

	series, err := calculator.Enrich(normalized)
	if err != nil {
		return nil, err
	}
	if len(series) == 0 {
		return nil, model.NewValidationError("pipeline", "EMA calculation failed")
	}

	for _, name := range model.RequiredColumns {
		col, ok := model.LookupColumn(name)
		if !ok {
			return nil, model.NewValidationError("pipeline", "missing required column: %s", name)
		}
		if !series.HasValue(col) {
			return nil, model.NewValidationError("pipeline", "no valid data for %s", name)
		}
	}
	return series, nil
}

func score(symbol string, series model.EnrichedSeries) model.SentimentResult {
	s, err := strategy.Evaluate(series)
	if err != nil {
		return failure(symbol, err)
	}
	return model.SentimentResult{
		Symbol:          symbol,
		IntradayBullish: strategy.Round2(s.Intraday),
		WeeklyBullish:   strategy.Round2(s.Weekly),
	}
}

func failure(symbol string, err error) model.SentimentResult {
	return model.SentimentResult{
		Symbol:          symbol,
		IntradayBullish: 0,
		WeeklyBullish:   0,
		Error:           err.Error(),
	}
}
