package testutil

import "math"

// RMS returns the root mean square of data, or 0 for an empty slice.
func RMS(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}

	var sum float64
	for _, v := range data {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(data)))
}

// Peak returns the largest absolute value in data.
func Peak(data []float64) float64 {
	var peak float64
	for _, v := range data {
		peak = max(peak, math.Abs(v))
	}
	return peak
}

// GainDB returns the RMS level of out relative to in, in dB, ignoring the
// first skip samples of both so filter transients settle.
func GainDB(out, in []float64, skip int) float64 {
	skip = min(max(skip, 0), len(out), len(in))
	return 20 * math.Log10(RMS(out[skip:])/RMS(in[skip:]))
}

// MaxStep returns the largest absolute difference between adjacent samples.
func MaxStep(data []float64) float64 {
	var step float64
	for i := 1; i < len(data); i++ {
		step = max(step, math.Abs(data[i]-data[i-1]))
	}
	return step
}
