package analog

import (
	"fmt"
	"testing"

	"github.com/cwbudde/algo-synthfilter/internal/testutil"
)

func BenchmarkProcess(b *testing.B) {
	for _, stages := range []int{0, 3} {
		b.Run(fmt.Sprintf("stages=%d", stages), func(b *testing.B) {
			f := New(newEnv(48000), TypeLowpass2, 1200, 2, stages)
			buf := testutil.DeterministicNoise(1, 1, 256)

			b.ReportAllocs()
			b.SetBytes(int64(len(buf) * 8))
			b.ResetTimer()

			for range b.N {
				f.Process(buf)
			}
		})
	}
}

func BenchmarkProcessInterpolated(b *testing.B) {
	f := New(newEnv(48000), TypeLowpass2, 200, 2, 1)
	buf := testutil.DeterministicNoise(2, 1, 256)
	freqs := [2]float64{200, 2000}

	b.ReportAllocs()
	b.ResetTimer()

	for i := range b.N {
		f.SetFrequency(freqs[i%2])
		f.Process(buf)
	}
}
