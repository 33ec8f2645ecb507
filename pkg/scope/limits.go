package scope

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// axisMargin pads the y axis above and below the data.
const axisMargin = 1.0

// relMargin widens flat ranges whose magnitude swallows axisMargin.
const relMargin = 1e-6

// YLimits returns the value axis range for values: one unit of margin on each
// side, plus another unit when the series is flat so the axis never collapses.
// Non-finite values are ignored.
func YLimits(values []float64) (lo, hi float64) {
	values = finite(values)
	if len(values) == 0 {
		return -axisMargin, axisMargin
	}

	minV, maxV := floats.Min(values), floats.Max(values)
	lo, hi = minV-axisMargin, maxV+axisMargin
	if minV == maxV {
		lo -= axisMargin
		hi += axisMargin
	}
	return widen(lo, hi)
}

// XLimits fits the time axis to the data. A zero-width range, as in a freshly
// zero-filled window, is widened by one second on each side.
func XLimits(times []float64) (lo, hi float64) {
	times = finite(times)
	if len(times) == 0 {
		return -1, 1
	}

	lo, hi = floats.Min(times), floats.Max(times)
	if lo == hi {
		lo--
		hi++
	}
	return widen(lo, hi)
}

// widen keeps lo < hi with both ends finite, even where adding a unit margin
// is lost to rounding.
func widen(lo, hi float64) (float64, float64) {
	if hi > lo {
		return lo, hi
	}
	pad := math.Max(axisMargin, math.Abs(lo)*relMargin)
	lo, hi = lo-pad, hi+pad
	if math.IsInf(lo, -1) {
		lo = -math.MaxFloat64
	}
	if math.IsInf(hi, 1) {
		hi = math.MaxFloat64
	}
	return lo, hi
}

// finite returns values without NaN and infinities. The input is returned
// unchanged when it has none.
func finite(values []float64) []float64 {
	for i, v := range values {
		if isFinite(v) {
			continue
		}
		out := append([]float64(nil), values[:i]...)
		for _, v := range values[i+1:] {
			if isFinite(v) {
				out = append(out, v)
			}
		}
		return out
	}
	return values
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
