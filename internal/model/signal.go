package model

// Votes counts the directional comparisons of one timeframe.
type Votes struct {
	Bullish int
	Bearish int
}

// Score is the Sentiment Scorer output. Both values lie in [0, 100].
type Score struct {
	Intraday      float64
	Weekly        float64
	IntradayVotes Votes
	WeeklyVotes   Votes
}

// SentimentResult is the pipeline output handed to reporting.
// A non-empty Error means no signal is available, not a bearish one.
type SentimentResult struct {
	Symbol          string  `json:"symbol"`
	IntradayBullish float64 `json:"intraday_bullish"`
	WeeklyBullish   float64 `json:"weekly_bullish"`
	Error           string  `json:"error,omitempty"`
}

// Failed reports whether the result carries an error.
func (r SentimentResult) Failed() bool { return r.Error != "" }
