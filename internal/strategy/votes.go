package strategy

import (
	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"

	"TrendSentinel/internal/model"
)

// NeutralScore is reported when no comparison yields a direction.
const NeutralScore = 50.0

// Trend labels.
const (
	TrendBullish = "BULLISH"
	TrendBearish = "BEARISH"
	TrendNeutral = "NEUTRAL"
)

// vote returns +1 when a > b, -1 when a < b and 0 when they are equal or
// either side is null.
func vote(a, b null.Float) int {
	if !a.Valid || !b.Valid {
		return 0
	}
	switch {
	case a.Float64 > b.Float64:
		return 1
	case a.Float64 < b.Float64:
		return -1
	default:
		return 0
	}
}

// tally casts the three ordering votes of one timeframe.
func tally(price, ema5, ema10, ema15 null.Float) model.Votes {
	var v model.Votes
	for _, d := range []int{vote(price, ema5), vote(ema5, ema10), vote(ema10, ema15)} {
		switch d {
		case 1:
			v.Bullish++
		case -1:
			v.Bearish++
		}
	}
	return v
}

// Percent converts votes into a bullish percentage in [0, 100].
func Percent(v model.Votes) float64 {
	total := v.Bullish + v.Bearish
	if total == 0 {
		return NeutralScore
	}
	return 100 * float64(v.Bullish) / float64(total)
}

// Round2 rounds a score to two decimal places.
func Round2(score float64) float64 {
	return decimal.NewFromFloat(score).Round(2).InexactFloat64()
}

// RoundInt rounds a score to the nearest integer for display.
func RoundInt(score float64) int64 {
	return decimal.NewFromFloat(score).Round(0).IntPart()
}

// Trend labels a score relative to the neutral midpoint.
func Trend(score float64) string {
	switch {
	case score > NeutralScore:
		return TrendBullish
	case score < NeutralScore:
		return TrendBearish
	default:
		return TrendNeutral
	}
}
