package core

import "testing"

func TestNewEngineOptions(t *testing.T) {
	e := NewEngine(WithSampleRate(96000), WithBlockSize(512))
	if e.SampleRate() != 96000 {
		t.Fatalf("sample rate = %v, want 96000", e.SampleRate())
	}
	if e.HalfSampleRate() != 48000 {
		t.Fatalf("half sample rate = %v, want 48000", e.HalfSampleRate())
	}
	if e.BlockSize() != 512 {
		t.Fatalf("block size = %d, want 512", e.BlockSize())
	}
	if e.BlockBytes() != 512*8 {
		t.Fatalf("block bytes = %d, want %d", e.BlockBytes(), 512*8)
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	e := NewEngine(WithSampleRate(0), WithBlockSize(-1), WithRandom(nil), nil)
	if e.SampleRate() != defaultSampleRate {
		t.Fatalf("sample rate = %v, want %v", e.SampleRate(), defaultSampleRate)
	}
	if e.BlockSize() != defaultBlockSize {
		t.Fatalf("block size = %d, want %d", e.BlockSize(), defaultBlockSize)
	}
	if e.rng == nil {
		t.Fatal("random source must never be nil")
	}
}

type countingSource struct{ n uint32 }

func (c *countingSource) Uint32() uint32 {
	c.n++
	return c.n
}

func TestWithRandomIsUsed(t *testing.T) {
	src := &countingSource{}
	e := NewEngine(WithRandom(src))

	if got := e.RandomUint32(); got != 1 {
		t.Fatalf("first draw = %d, want 1", got)
	}
	if got := e.RandomUint32(); got != 2 {
		t.Fatalf("second draw = %d, want 2", got)
	}
}

func TestWithSeedReproducible(t *testing.T) {
	a := NewEngine(WithSeed(7))
	b := NewEngine(WithSeed(7))

	for i := range 16 {
		if x, y := a.RandomUint32(), b.RandomUint32(); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
}

func TestRandomFuncAdaptsEnv(t *testing.T) {
	src := &countingSource{}
	e := NewEngine(WithRandom(src))

	var rng RandomSource = RandomFunc(e.RandomUint32)
	rng.Uint32()
	if got := rng.Uint32(); got != 2 {
		t.Fatalf("second draw = %d, want 2", got)
	}
}
