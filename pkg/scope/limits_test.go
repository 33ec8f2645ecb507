package scope

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestYLimits(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		lo, hi float64
	}{
		{"flat series widened twice", []float64{5, 5, 5, 5}, 3, 7},
		{"zero filled window", []float64{0, 0, 0}, -2, 2},
		{"spread series", []float64{1, 4, 2}, 0, 5},
		{"negative values", []float64{-10, -2}, -11, -1},
		{"single value", []float64{230}, 228, 232},
		{"empty", nil, -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := YLimits(tt.values)
			assert.Equal(t, tt.lo, lo)
			assert.Equal(t, tt.hi, hi)
			assert.Less(t, lo, hi, "axis must never have zero height")
		})
	}
}

func TestXLimits(t *testing.T) {
	tests := []struct {
		name   string
		times  []float64
		lo, hi float64
	}{
		{"ordered times", []float64{0, 0.5, 1.5}, 0, 1.5},
		{"zero filled window", []float64{0, 0, 0}, -1, 1},
		{"after wrap", []float64{3.2, 3.3, 3.4}, 3.2, 3.4},
		{"empty", nil, -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := XLimits(tt.times)
			assert.InDelta(t, tt.lo, lo, 1e-12)
			assert.InDelta(t, tt.hi, hi, 1e-12)
		})
	}
}

func TestYLimits_ExtremeValues(t *testing.T) {
	flat := func(v float64) []float64 {
		values := make([]float64, 100)
		for i := range values {
			values[i] = v
		}
		return values
	}

	tests := []struct {
		name   string
		values []float64
	}{
		{"large flat series", flat(1e17)},
		{"large negative flat series", flat(-1e17)},
		{"max float flat series", flat(math.MaxFloat64)},
		{"min float flat series", flat(-math.MaxFloat64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := YLimits(tt.values)
			assert.Less(t, lo, hi, "axis must never have zero height")
			assert.False(t, math.IsInf(lo, 0) || math.IsInf(hi, 0))
			assert.LessOrEqual(t, lo, tt.values[0])
			assert.GreaterOrEqual(t, hi, tt.values[0])
		})
	}
}

func TestLimits_IgnoreNonFinite(t *testing.T) {
	lo, hi := YLimits([]float64{0, math.Inf(1), 2, math.NaN(), math.Inf(-1)})
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 3.0, hi)

	lo, hi = YLimits([]float64{math.NaN(), math.Inf(1)})
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 1.0, hi)

	lo, hi = XLimits([]float64{0, math.NaN(), 4})
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 4.0, hi)
}
