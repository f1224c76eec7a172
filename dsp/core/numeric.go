package core

import "math"

const defaultEpsilon = 1e-12

// DenormalBias is added to filter inputs so that recursive sections fed with
// sustained near-silence never decay into subnormal numbers.
const DenormalBias = 1e-20

// Clamp limits value to the inclusive range [lo, hi].
func Clamp(value, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}

	if value < lo {
		return lo
	}

	if value > hi {
		return hi
	}

	return value
}

// ClampInt limits value to the inclusive range [lo, hi].
func ClampInt(value, lo, hi int) int {
	if lo > hi {
		lo, hi = hi, lo
	}

	return min(max(value, lo), hi)
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// FrequencyRatio returns the symmetric ratio between two positive
// frequencies. The result is always >= 1.
func FrequencyRatio(a, b float64) float64 {
	r := a / b
	if r < 1 {
		r = 1 / r
	}

	return r
}

// AmplitudeChanged reports whether two gain values differ enough to be
// worth interpolating across a block instead of applying b directly.
func AmplitudeChanged(a, b float64) bool {
	return 2*math.Abs(b-a)/math.Abs(b+a+1e-10) > 1e-4
}
