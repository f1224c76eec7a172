// Package svf implements the synthesizer's state-variable filter engine.
//
// Each stage is a Chamberlin-style recursive network producing lowpass,
// highpass, bandpass and notch outputs at once; the selected output feeds the
// next stage. Frequency jumps are crossfaded over one block with the same
// trigger rules as the analog engine.
package svf
