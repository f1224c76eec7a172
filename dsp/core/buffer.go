package core

import "github.com/cwbudde/algo-vecmath"

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// CopyInto copies src into dst and returns the number of copied elements.
func CopyInto(dst, src []float64) int {
	n := min(len(dst), len(src))
	copy(dst[:n], src[:n])
	return n
}

// Scale multiplies buf by gain in place. Unity gain is a no-op.
func Scale(buf []float64, gain float64) {
	if gain == 1 || len(buf) == 0 {
		return
	}

	vecmath.ScaleBlockInPlace(buf, gain)
}

// Accumulate adds src*gain into dst. Both slices must have the same length.
// src is scaled in place.
func Accumulate(dst, src []float64, gain float64) {
	if len(dst) == 0 {
		return
	}

	Scale(src, gain)
	vecmath.AddBlockInPlace(dst, src)
}

// AccumulateRamp adds src into dst while the gain moves linearly from
// `from` towards `to`: sample i is weighted by from + (to-from)*i/len.
func AccumulateRamp(dst, src []float64, from, to float64) {
	n := len(dst)
	if n == 0 {
		return
	}

	step := (to - from) / float64(n)
	for i := range dst {
		dst[i] += src[i] * (from + step*float64(i))
	}
}

// Crossfader blends two renderings of the same block with a linear ramp that
// starts fully on the old rendering and approaches the new one.
//
// The zero value is usable but allocates on its first Apply; call Reserve
// with the expected block length beforehand to keep Apply allocation free.
type Crossfader struct {
	ramp []float64
	n    int
}

// Reserve sizes the ramp for blocks of up to n samples and prepares it for
// blocks of exactly n.
func (c *Crossfader) Reserve(n int) {
	if n <= 0 {
		return
	}

	if cap(c.ramp) < n {
		c.ramp = make([]float64, n)
	}

	c.fill(n)
}

func (c *Crossfader) fill(n int) {
	c.ramp = EnsureLen(c.ramp, n)
	for i := range c.ramp {
		c.ramp[i] = float64(i) / float64(n)
	}

	c.n = n
}

// Clone returns a crossfader with its own ramp of the same capacity.
func (c *Crossfader) Clone() Crossfader {
	var out Crossfader
	out.Reserve(max(cap(c.ramp), c.n))

	return out
}

// Apply overwrites dst with old + (dst-old)*i/len(dst). The first sample
// equals old[0] exactly. old must be at least as long as dst; its contents
// are left unchanged.
func (c *Crossfader) Apply(dst, old []float64) {
	n := len(dst)
	if n == 0 {
		return
	}

	if c.n != n {
		c.fill(n)
	}

	old = old[:n]

	// dst = (new - old) * ramp + old
	vecmath.ScaleBlockInPlace(old, -1)
	vecmath.AddBlockInPlace(dst, old)
	vecmath.ScaleBlockInPlace(old, -1)
	vecmath.MulAddBlock(dst, dst, c.ramp, old)
}
