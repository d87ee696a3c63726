package calculator

import (
	"errors"
	"fmt"
	"math"
)

// Alpha returns the EMA smoothing factor 2/(span+1).
func Alpha(span int) float64 {
	return 2.0 / float64(span+1)
}

// CalculateEMA computes the recursive (adjust=false) exponential moving
// average: EMA[0] = prices[0], EMA[i] = a*prices[i] + (1-a)*EMA[i-1].
// One value is returned per input price.
func CalculateEMA(prices []float64, span int) ([]float64, error) {
	if span <= 0 {
		return nil, errors.New("span must be positive")
	}
	if len(prices) == 0 {
		return nil, errors.New("no prices for EMA calculation")
	}
	alpha := Alpha(span)
	ema := make([]float64, len(prices))
	ema[0] = prices[0]
	for i := 1; i < len(prices); i++ {
		ema[i] = alpha*prices[i] + (1-alpha)*ema[i-1]
	}
	for i, v := range ema {
		if !finite(v) {
			return nil, fmt.Errorf("non-finite EMA value at index %d", i)
		}
	}
	return ema, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
