// Package analog implements the cascaded first/second-order filter engine
// used by the synthesizer: lowpass, highpass, bandpass, notch, peak and
// shelving responses designed from analog prototypes, with up to
// filter.MaxStages+1 identical sections in series.
//
// Coefficients are computed by the pure function Compute. The Filter type
// owns the per-section history and crossfades between the previous and the
// new coefficient set whenever the frequency jumps by more than a factor of
// three or crosses the high-frequency ceiling, so automation does not click.
package analog
