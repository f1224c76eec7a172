package params

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/cwbudde/algo-synthfilter/dsp/filter"
)

type constSource uint32

func (c constSource) Uint32() uint32 { return uint32(c) }

func newTestParams() *Params {
	return New(2, 64, 64, rand.New(rand.NewPCG(1, 2)))
}

func TestNewDefaults(t *testing.T) {
	p := newTestParams()

	if p.Type != 2 || p.Freq != 64 || p.Q != 64 {
		t.Fatalf("type/freq/q = %d/%d/%d, want 2/64/64", p.Type, p.Freq, p.Q)
	}
	if p.Category != CategoryAnalog || p.Stages != 0 || p.FreqTrack != 64 || p.Gain != 64 {
		t.Fatalf("unexpected defaults: %+v", p)
	}
	if p.NumFormants != 3 || p.FormantSlowness != 64 || p.SequenceSize != 3 {
		t.Fatalf("formant defaults = %d/%d/%d", p.NumFormants, p.FormantSlowness, p.SequenceSize)
	}
	if p.SequenceStretch != 40 || p.SequenceReversed {
		t.Fatalf("sequence stretch/reversed = %d/%v", p.SequenceStretch, p.SequenceReversed)
	}
	if p.CenterFreq != 64 || p.OctavesFreq != 64 || p.VowelClearness != 64 {
		t.Fatalf("center/octaves/clearness = %d/%d/%d", p.CenterFreq, p.OctavesFreq, p.VowelClearness)
	}

	for i, v := range p.Sequence {
		if int(v) != i%MaxVowels {
			t.Fatalf("Sequence[%d] = %d, want %d", i, v, i%MaxVowels)
		}
	}

	for v := range p.Vowels {
		for i, f := range p.Vowels[v].Formants {
			if f.FirstFreq >= 127 {
				t.Fatalf("vowel %d formant %d: baseline %d out of range", v, i, f.FirstFreq)
			}
			if f.Freq != f.FirstFreq || f.Amp != 127 || f.Q != 64 {
				t.Fatalf("vowel %d formant %d = %+v", v, i, f)
			}
		}
	}

	if p.Version() != 0 {
		t.Fatalf("fresh params version = %d, want 0", p.Version())
	}
}

func TestBaselineRange(t *testing.T) {
	if got := New(0, 0, 0, constSource(0)).Vowels[0].Formants[0].FirstFreq; got != 0 {
		t.Fatalf("baseline for 0 = %d, want 0", got)
	}

	if got := New(0, 0, 0, constSource(math.MaxUint32)).Vowels[5].Formants[11].FirstFreq; got != 126 {
		t.Fatalf("baseline for max = %d, want 126", got)
	}
}

func TestNewNilRandomPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil random source")
		}
	}()

	New(0, 64, 64, nil)
}

func TestDefaultsRestoresBaseline(t *testing.T) {
	p := newTestParams()
	first := p.Vowels[3].Formants[7].FirstFreq

	p.Update(func(p *Params) {
		p.Type = 7
		p.Gain = 10
		p.Vowels[3].Formants[7].Freq = first + 1
		p.SequenceReversed = true
	})

	before := p.Version()
	p.Defaults()

	if p.Type != 2 || p.Gain != 64 || p.SequenceReversed {
		t.Fatalf("Defaults did not reset controls: %+v", p)
	}
	if got := p.Vowels[3].Formants[7].Freq; got != first {
		t.Fatalf("formant freq = %d, want baseline %d", got, first)
	}
	if p.Version() <= before {
		t.Fatal("Defaults must bump the version")
	}
}

func TestCopyFrom(t *testing.T) {
	src := newTestParams()
	src.Update(func(p *Params) {
		p.Category = CategoryFormant
		p.Stages = 3
		p.Vowels[1].Formants[2] = Formant{Freq: 100, Amp: 90, Q: 70, FirstFreq: 5}
		p.Sequence[4] = 1
		p.SequenceReversed = true
	})

	dst := New(0, 10, 10, constSource(0))
	before := dst.Version()
	dst.CopyFrom(src)

	if dst.Category != CategoryFormant || dst.Stages != 3 || !dst.SequenceReversed || dst.Sequence[4] != 1 {
		t.Fatalf("controls not copied: %+v", dst)
	}

	got := dst.Vowels[1].Formants[2]
	if got.Freq != 100 || got.Amp != 90 || got.Q != 70 {
		t.Fatalf("formant = %+v, want freq 100 amp 90 q 70", got)
	}
	if got.FirstFreq != 0 {
		t.Fatalf("baseline must not be copied, got %d", got.FirstFreq)
	}
	if dst.Version() <= before {
		t.Fatal("CopyFrom must bump the version")
	}

	dst.Defaults()
	if dst.Type != 0 || dst.Freq != 10 {
		t.Fatalf("construction defaults lost: type %d freq %d", dst.Type, dst.Freq)
	}
}

func TestTracker(t *testing.T) {
	p := newTestParams()
	tr := NewTracker(p)

	if tr.CheckUpdated() {
		t.Fatal("fresh tracker must not report a change")
	}

	p.Update(func(p *Params) { p.Q = 100 })
	if !tr.CheckUpdated() {
		t.Fatal("Update must be observed")
	}
	if tr.CheckUpdated() {
		t.Fatal("change must be reported once")
	}

	tr.ForceUpdate()
	if !tr.CheckUpdated() {
		t.Fatal("ForceUpdate must be observed")
	}
	if tr.CheckUpdated() {
		t.Fatal("forced change must be reported once")
	}

	p.Q = 3
	p.Touch()
	if !tr.CheckUpdated() {
		t.Fatal("Touch must be observed")
	}
}

func TestClampedAccessors(t *testing.T) {
	p := newTestParams()
	p.NumFormants = 200
	p.SequenceSize = 0
	p.Stages = 9
	p.Sequence[2] = 40

	if got := p.FormantCount(); got != MaxFormants {
		t.Fatalf("FormantCount = %d, want %d", got, MaxFormants)
	}
	if got := p.SequenceLen(); got != 1 {
		t.Fatalf("SequenceLen = %d, want 1", got)
	}
	if got := p.StageCount(); got != filter.MaxStages {
		t.Fatalf("StageCount = %d, want %d", got, filter.MaxStages)
	}
	if got := p.SequenceVowel(2); got != MaxVowels-1 {
		t.Fatalf("SequenceVowel(2) = %d, want %d", got, MaxVowels-1)
	}
	if got := p.SequenceVowel(99); got != int(p.Sequence[MaxSequence-1]) {
		t.Fatalf("SequenceVowel(99) = %d", got)
	}
}

func TestCategoryString(t *testing.T) {
	for c, want := range map[Category]string{
		CategoryAnalog:        "analog",
		CategoryFormant:       "formant",
		CategoryStateVariable: "statevariable",
		Category(9):           "unknown",
	} {
		if got := c.String(); got != want {
			t.Fatalf("Category(%d).String() = %q, want %q", c, got, want)
		}
	}
}
