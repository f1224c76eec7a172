package params

import (
	"github.com/cwbudde/algo-synthfilter/dsp/core"
	"github.com/cwbudde/algo-synthfilter/dsp/filter"
)

const (
	MaxVowels   = 6
	MaxFormants = 12
	MaxSequence = 8
)

// Category selects the engine family backing a filter.
type Category uint8

const (
	CategoryAnalog Category = iota
	CategoryFormant
	CategoryStateVariable
)

func (c Category) String() string {
	switch c {
	case CategoryAnalog:
		return "analog"
	case CategoryFormant:
		return "formant"
	case CategoryStateVariable:
		return "statevariable"
	default:
		return "unknown"
	}
}

// Formant is one resonance of a vowel. FirstFreq is the randomized frequency
// assigned at construction; Defaults restores Freq from it.
type Formant struct {
	Freq      uint8
	Amp       uint8
	Q         uint8
	FirstFreq uint8
}

type Vowel struct {
	Formants [MaxFormants]Formant
}

// Params is the complete parameter set of one filter. Fields may be read at
// any time; writers should go through Update so trackers see the change.
type Params struct {
	Category Category
	Type     uint8
	Freq     uint8
	Q        uint8
	Stages   uint8
	// FreqTrack scales how much the played note moves the cutoff; 64 is none.
	FreqTrack uint8
	Gain      uint8

	NumFormants     uint8
	FormantSlowness uint8
	VowelClearness  uint8
	CenterFreq      uint8
	OctavesFreq     uint8
	Vowels          [MaxVowels]Vowel

	SequenceSize     uint8
	Sequence         [MaxSequence]uint8
	SequenceStretch  uint8
	SequenceReversed bool

	defaultType uint8
	defaultFreq uint8
	defaultQ    uint8

	version uint64
}

// New returns defaults for the given type, frequency and resonance controls.
// rng draws the per-formant baseline frequencies; it is only used here.
func New(typ, freq, q uint8, rng core.RandomSource) *Params {
	if rng == nil {
		panic("params: nil random source")
	}

	p := &Params{
		defaultType: typ,
		defaultFreq: freq,
		defaultQ:    q,
	}

	for v := range p.Vowels {
		for i := range p.Vowels[v].Formants {
			// uniform in [0, 127)
			p.Vowels[v].Formants[i].FirstFreq = uint8(uint64(rng.Uint32()) * 127 >> 32)
		}
	}

	p.reset()

	return p
}

// Defaults restores every control to its construction-time value. Formant
// frequencies return to their first-seen baseline.
func (p *Params) Defaults() {
	p.reset()
	p.Touch()
}

func (p *Params) reset() {
	p.Category = CategoryAnalog
	p.Type = p.defaultType
	p.Freq = p.defaultFreq
	p.Q = p.defaultQ
	p.Stages = 0
	p.FreqTrack = 64
	p.Gain = 64

	p.NumFormants = 3
	p.FormantSlowness = 64
	for v := range p.Vowels {
		for i := range p.Vowels[v].Formants {
			f := &p.Vowels[v].Formants[i]
			f.Freq = f.FirstFreq
			f.Q = 64
			f.Amp = 127
		}
	}

	p.SequenceSize = 3
	for i := range p.Sequence {
		p.Sequence[i] = uint8(i % MaxVowels)
	}

	p.SequenceStretch = 40
	p.SequenceReversed = false
	p.CenterFreq = 64 // 1 kHz
	p.OctavesFreq = 64
	p.VowelClearness = 64
}

// CopyFrom takes over every control of src. Construction defaults and
// formant baselines of p are kept.
func (p *Params) CopyFrom(src *Params) {
	p.reset()
	if src != nil {
		p.Category = src.Category
		p.Type = src.Type
		p.Freq = src.Freq
		p.Q = src.Q
		p.Stages = src.Stages
		p.FreqTrack = src.FreqTrack
		p.Gain = src.Gain

		p.NumFormants = src.NumFormants
		p.FormantSlowness = src.FormantSlowness
		for v := range p.Vowels {
			for i := range p.Vowels[v].Formants {
				dst, from := &p.Vowels[v].Formants[i], src.Vowels[v].Formants[i]
				dst.Freq, dst.Amp, dst.Q = from.Freq, from.Amp, from.Q
			}
		}

		p.SequenceSize = src.SequenceSize
		p.Sequence = src.Sequence
		p.SequenceStretch = src.SequenceStretch
		p.SequenceReversed = src.SequenceReversed
		p.CenterFreq = src.CenterFreq
		p.OctavesFreq = src.OctavesFreq
		p.VowelClearness = src.VowelClearness
	}

	p.Touch()
}

// Update applies fn and marks the parameters as changed.
func (p *Params) Update(fn func(*Params)) {
	fn(p)
	p.Touch()
}

// Touch marks the parameters as changed after a direct field write.
func (p *Params) Touch() { p.version++ }

// Version returns the change counter. It only ever increases.
func (p *Params) Version() uint64 { return p.version }

// StageCount returns Stages limited to filter.MaxStages.
func (p *Params) StageCount() int {
	return min(int(p.Stages), filter.MaxStages)
}

// FormantCount returns NumFormants limited to MaxFormants.
func (p *Params) FormantCount() int {
	return min(int(p.NumFormants), MaxFormants)
}

// SequenceLen returns SequenceSize limited to [1, MaxSequence].
func (p *Params) SequenceLen() int {
	return core.ClampInt(int(p.SequenceSize), 1, MaxSequence)
}

// SequenceVowel returns the vowel index stored at sequence position pos.
func (p *Params) SequenceVowel(pos int) int {
	return min(int(p.Sequence[core.ClampInt(pos, 0, MaxSequence-1)]), MaxVowels-1)
}

// Tracker remembers the last parameter version a consumer acted on.
type Tracker struct {
	p     *Params
	seen  uint64
	force bool
}

// NewTracker returns a tracker that considers the current version seen.
func NewTracker(p *Params) Tracker {
	return Tracker{p: p, seen: p.Version()}
}

// CheckUpdated reports whether the parameters changed since the previous
// call (or a ForceUpdate was requested) and marks the current version seen.
func (t *Tracker) CheckUpdated() bool {
	v := t.p.Version()
	changed := t.force || v != t.seen
	t.seen = v
	t.force = false

	return changed
}

// ForceUpdate makes the next CheckUpdated report a change.
func (t *Tracker) ForceUpdate() { t.force = true }
