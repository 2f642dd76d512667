package search

import (
	"cmp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeakPredecessorOrdered(t *testing.T) {
	t.Parallel()

	seq := []float64{1, 2, 3, 4}

	tests := []struct {
		name   string
		seq    []float64
		key    float64
		want   float64
		wantOK bool
	}{
		{name: "empty", seq: nil, key: 0, wantOK: false},
		{name: "below all", seq: seq, key: 0, wantOK: false},
		{name: "first", seq: seq, key: 1, want: 1, wantOK: true},
		{name: "middle exact", seq: seq, key: 3, want: 3, wantOK: true},
		{name: "last exact", seq: seq, key: 4, want: 4, wantOK: true},
		{name: "between", seq: seq, key: 1.5, want: 1, wantOK: true},
		{name: "beyond last", seq: seq, key: 4.5, want: 4, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := WeakPredecessorOrdered(tt.seq, tt.key)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 0)
		})
	}
}

func TestWeakPredecessorIndex_Duplicates(t *testing.T) {
	t.Parallel()

	seq := []int{1, 2, 2, 2, 5}

	// Leftmost match wins on equal keys.
	assert.Equal(t, 1, WeakPredecessorIndex(seq, 2, cmp.Compare[int]))
	assert.Equal(t, 3, WeakPredecessorIndex(seq, 4, cmp.Compare[int]))
	assert.Equal(t, -1, WeakPredecessorIndex(seq, 0, cmp.Compare[int]))
}

func TestWeakPredecessor_Times(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	seq := []time.Time{base, base.Add(time.Hour), base.Add(2 * time.Hour)}

	got, ok := WeakPredecessor(seq, base.Add(90*time.Minute), time.Time.Compare)
	assert.True(t, ok)
	assert.True(t, got.Equal(base.Add(time.Hour)))

	_, ok = WeakPredecessor(seq, base.Add(-time.Minute), time.Time.Compare)
	assert.False(t, ok)
}

func TestWeakPredecessor_MaxBelowKey(t *testing.T) {
	t.Parallel()

	seq := []int{-7, -3, 0, 4, 9, 15, 22}

	for key := -10; key <= 25; key++ {
		want, wantOK := 0, false

		for _, v := range seq {
			if v <= key {
				want, wantOK = v, true
			}
		}

		got, ok := WeakPredecessorOrdered(seq, key)
		assert.Equal(t, wantOK, ok, "key %d", key)
		assert.Equal(t, want, got, "key %d", key)
	}
}

func TestBisectLeft(t *testing.T) {
	t.Parallel()

	seq := []int{1, 3, 3, 5}

	assert.Equal(t, 0, bisectLeft(seq, 0, cmp.Compare[int]))
	assert.Equal(t, 1, bisectLeft(seq, 3, cmp.Compare[int]))
	assert.Equal(t, 3, bisectLeft(seq, 4, cmp.Compare[int]))
	assert.Equal(t, 4, bisectLeft(seq, 6, cmp.Compare[int]))
}
