// Package params holds the user-facing filter parameter set shared between
// the filter facade and its engines.
//
// Controls are stored as raw 0..127 values, the way MIDI controllers and
// presets address them, and mapped to physical units on demand (Hz, dB,
// resonance). Every mutation made through Update bumps a version counter;
// consumers keep a Tracker to notice changes without locking.
package params
