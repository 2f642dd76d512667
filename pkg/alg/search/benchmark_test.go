package search

import (
	"testing"
)

// Benchmark constants.
const (
	benchSeqLen = 100000
	benchStride = 3
)

// BenchmarkWeakPredecessorOrdered benchmarks lookups in a large sorted slice.
func BenchmarkWeakPredecessorOrdered(b *testing.B) {
	seq := make([]int, benchSeqLen)
	for i := range seq {
		seq[i] = i * benchStride
	}

	b.ResetTimer()

	for i := range b.N {
		WeakPredecessorOrdered(seq, i%(benchSeqLen*benchStride))
	}
}
