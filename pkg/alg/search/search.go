// Package search provides predecessor lookups over sorted slices.
package search

import "cmp"

// WeakPredecessorIndex returns the index of the largest element of seq that
// is less than or equal to key under compare, or -1 when no such element
// exists. seq must be sorted ascending by compare. Runs in O(log n).
func WeakPredecessorIndex[E any](seq []E, key E, compare func(a, b E) int) int {
	if len(seq) == 0 {
		return -1
	}

	pos := bisectLeft(seq, key, compare)

	if pos == len(seq) {
		return len(seq) - 1
	}

	if compare(seq[pos], key) == 0 {
		return pos
	}

	// seq[pos] is strictly greater than key.
	return pos - 1
}

// WeakPredecessor returns the largest element of seq that is less than or
// equal to key. The boolean is false when seq is empty or every element
// exceeds key.
func WeakPredecessor[E any](seq []E, key E, compare func(a, b E) int) (E, bool) {
	idx := WeakPredecessorIndex(seq, key, compare)
	if idx < 0 {
		var zero E

		return zero, false
	}

	return seq[idx], true
}

// WeakPredecessorOrdered is WeakPredecessor for naturally ordered elements.
func WeakPredecessorOrdered[E cmp.Ordered](seq []E, key E) (E, bool) {
	return WeakPredecessor(seq, key, cmp.Compare[E])
}

// bisectLeft returns the first position whose element is not less than key.
func bisectLeft[E any](seq []E, key E, compare func(a, b E) int) int {
	lo, hi := 0, len(seq)

	for lo < hi {
		mid := int(uint(lo+hi) >> 1)

		if compare(seq[mid], key) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	return lo
}
