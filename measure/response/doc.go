// Package response measures the magnitude response of a block-based filter
// from the outside, by driving it with test signals.
//
// Measure records the impulse response and transforms it with an FFT;
// ToneGain drives a steady sine and compares input and output levels with a
// Goertzel detector. Both mutate the processor they are given, so pass a
// clone when the filter state matters.
//
//	f := analog.New(env, analog.TypeLowpass2, 1000, 1, 0)
//	curve, err := response.Measure(f.Clone(), env.SampleRate())
//	fmt.Printf("%.1f dB at 1 kHz\n", curve.AtDB(1000))
package response
