package calculator

import (
	"math"
	"testing"
)

func TestCalculateEMA_Recurrence(t *testing.T) {
	prices := []float64{100, 102.5, 101, 99.75, 104, 108.2, 107, 110.5, 109, 111}
	for _, span := range []int{1, 5, 10, 15} {
		ema, err := CalculateEMA(prices, span)
		if err != nil {
			t.Fatalf("span %d: unexpected error: %v", span, err)
		}
		if len(ema) != len(prices) {
			t.Fatalf("span %d: expected %d values, got %d", span, len(prices), len(ema))
		}
		if ema[0] != prices[0] {
			t.Errorf("span %d: EMA[0] = %v, want %v", span, ema[0], prices[0])
		}
		alpha := 2.0 / float64(span+1)
		for i := 1; i < len(prices); i++ {
			want := alpha*prices[i] + (1-alpha)*ema[i-1]
			if math.Abs(ema[i]-want) > 1e-9 {
				t.Errorf("span %d: EMA[%d] = %v, want %v", span, i, ema[i], want)
			}
		}
	}
}

func TestCalculateEMA_KnownValues(t *testing.T) {
	// alpha = 1/3 for span 5
	ema, err := CalculateEMA([]float64{3, 6, 9}, 5)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{3, 4, 17.0 / 3.0}
	for i := range want {
		if math.Abs(ema[i]-want[i]) > 1e-9 {
			t.Errorf("EMA[%d] = %v, want %v", i, ema[i], want[i])
		}
	}
}

func TestCalculateEMA_ConstantSeries(t *testing.T) {
	ema, err := CalculateEMA([]float64{42, 42, 42, 42}, 15)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range ema {
		if v != 42 {
			t.Errorf("EMA[%d] = %v, want 42", i, v)
		}
	}
}

func TestCalculateEMA_InvalidInput(t *testing.T) {
	if _, err := CalculateEMA([]float64{1, 2}, 0); err == nil {
		t.Error("expected error for zero span")
	}
	if _, err := CalculateEMA(nil, 5); err == nil {
		t.Error("expected error for empty prices")
	}
	if _, err := CalculateEMA([]float64{1, math.NaN(), 3}, 5); err == nil {
		t.Error("expected error for NaN price")
	}
}

func TestAlpha(t *testing.T) {
	tests := []struct {
		span int
		want float64
	}{
		{5, 1.0 / 3.0},
		{10, 2.0 / 11.0},
		{15, 0.125},
	}
	for _, tt := range tests {
		if got := Alpha(tt.span); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Alpha(%d) = %v, want %v", tt.span, got, tt.want)
		}
	}
}
