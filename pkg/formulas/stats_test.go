package formulas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.InDelta(t, 2.0, Mean([]float64{1, 2, 3}), 1e-9)
}

func TestStdDev_TooFewValues(t *testing.T) {
	assert.Equal(t, 0.0, StdDev(nil))
	assert.Equal(t, 0.0, StdDev([]float64{5}))
}

func TestLogReturns(t *testing.T) {
	returns := LogReturns([]float64{100, 110, 121})
	assert.Len(t, returns, 2)
	assert.InDelta(t, math.Log(1.1), returns[0], 1e-9)
	assert.InDelta(t, math.Log(1.1), returns[1], 1e-9)
}

func TestLogReturns_SkipsNonPositivePrices(t *testing.T) {
	returns := LogReturns([]float64{100, 0, 110, 121})
	// Pairs touching the zero price are dropped.
	assert.Len(t, returns, 1)
	assert.InDelta(t, math.Log(1.1), returns[0], 1e-9)
}

func TestAnnualizedVolatility(t *testing.T) {
	returns := []float64{0.01, -0.02, 0.015, -0.005, 0.02}
	want := StdDev(returns) * math.Sqrt(252)
	assert.InDelta(t, want, AnnualizedVolatility(returns), 1e-12)
	assert.Equal(t, 0.0, AnnualizedVolatility([]float64{0.01}))
}

func TestCAGR(t *testing.T) {
	tests := []struct {
		name      string
		priceThen float64
		priceNow  float64
		years     float64
		want      float64
	}{
		{"doubling over one year", 100, 200, 1, 1.0},
		{"doubling over two years", 100, 200, 2, math.Sqrt2 - 1},
		{"flat price", 150, 150, 3, 0},
		{"zero base price", 0, 200, 3, 0},
		{"zero years", 100, 200, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CAGR(tt.priceThen, tt.priceNow, tt.years), 1e-9)
		})
	}
}
