package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/stepwise/pkg/interval"
)

// Test constants.
const (
	testWeightLow  = 2.5
	testWeightMid  = 3.5
	testWeightHigh = 5.0
	testWeightSpot = 7.0
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func mkInterval(start, end time.Time, value float64) interval.Interval {
	return interval.MustNew(start, end, value)
}

func nodeWith(at time.Time, intervals ...interval.Interval) *Node {
	n := newNode(at)
	for _, iv := range intervals {
		n.addInterval(iv)
	}

	return n
}

func withoutStarting(n *Node, iv interval.Interval) *Node {
	n.starting.remove(iv)

	return n
}

func TestNode_Equal(t *testing.T) {
	t.Parallel()

	longRun := mkInterval(day(1970, 1, 1), day(1977, 1, 1), 0)
	shortRun := mkInterval(day(1975, 1, 1), day(1977, 1, 1), 0)

	tests := []struct {
		name  string
		a, b  *Node
		equal bool
	}{
		{
			name:  "same instant same interval",
			a:     nodeWith(day(1973, 1, 1), longRun),
			b:     nodeWith(day(1973, 1, 1), longRun),
			equal: true,
		},
		{
			name:  "insertion order ignored",
			a:     nodeWith(day(1973, 1, 1), longRun, shortRun),
			b:     nodeWith(day(1973, 1, 1), shortRun, longRun),
			equal: true,
		},
		{
			name:  "different active sets",
			a:     nodeWith(day(1973, 1, 1)),
			b:     nodeWith(day(1973, 1, 1), mkInterval(day(1971, 1, 1), day(1977, 1, 1), 0)),
			equal: false,
		},
		{
			name:  "different instants",
			a:     newNode(day(1973, 1, 1)),
			b:     newNode(day(1974, 1, 1)),
			equal: false,
		},
		{
			name:  "same empty active set different ending",
			a:     nodeWith(day(1977, 1, 1), longRun),
			b:     nodeWith(day(1977, 1, 1), shortRun),
			equal: false,
		},
		{
			name:  "same active set different starting",
			a:     nodeWith(day(1975, 1, 1), longRun, shortRun),
			b:     withoutStarting(nodeWith(day(1975, 1, 1), longRun, shortRun), shortRun),
			equal: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.equal, tt.a.Equal(tt.b))
			assert.Equal(t, tt.equal, tt.b.Equal(tt.a))
		})
	}
}

func TestNode_EqualNil(t *testing.T) {
	t.Parallel()

	var missing *Node

	assert.True(t, missing.Equal(nil))
	assert.False(t, newNode(Origin).Equal(nil))
	assert.False(t, missing.Equal(newNode(Origin)))
}

func TestNode_Compare(t *testing.T) {
	t.Parallel()

	early := newNode(day(1973, 1, 1))
	same := newNode(day(1973, 1, 1))
	late := newNode(day(1974, 1, 1))

	assert.Zero(t, early.Compare(same))
	assert.Negative(t, early.Compare(late))
	assert.Positive(t, late.Compare(early))
}

func TestNode_Value(t *testing.T) {
	t.Parallel()

	normal := func(v float64) interval.Interval { return mkInterval(day(2017, 5, 20), day(2023, 10, 6), v) }
	point := func(v float64) interval.Interval { return mkInterval(day(2014, 9, 12), day(2014, 9, 12), v) }

	tests := []struct {
		name      string
		intervals []interval.Interval
		want      float64
	}{
		{name: "empty", want: 0},
		{name: "zero weight", intervals: []interval.Interval{normal(0)}, want: 0},
		{name: "positive weight", intervals: []interval.Interval{normal(testWeightHigh)}, want: testWeightHigh},
		{name: "two zero weights", intervals: []interval.Interval{normal(0), normal(0)}, want: 0},
		{
			name:      "two positive weights",
			intervals: []interval.Interval{normal(testWeightLow), normal(testWeightHigh)},
			want:      testWeightLow + testWeightHigh,
		},
		{name: "degenerate zero", intervals: []interval.Interval{point(0)}, want: 0},
		{name: "degenerate positive", intervals: []interval.Interval{point(testWeightHigh)}, want: 0},
		{
			name:      "two degenerates",
			intervals: []interval.Interval{point(testWeightHigh), point(testWeightSpot)},
			want:      0,
		},
		{
			name:      "normal and degenerate",
			intervals: []interval.Interval{normal(testWeightMid), point(testWeightSpot)},
			want:      testWeightMid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			n := nodeWith(day(2014, 9, 12), tt.intervals...)
			assert.InDelta(t, tt.want, n.Value(), 1e-9)
		})
	}
}

func TestNode_DuplicatesCount(t *testing.T) {
	t.Parallel()

	iv := mkInterval(day(2023, 1, 1), day(2023, 1, 10), testWeightHigh)
	n := nodeWith(day(2023, 1, 5), iv, iv)

	assert.InDelta(t, 2*testWeightHigh, n.Value(), 1e-9)
	assert.Len(t, n.Intervals(), 2)

	n.removeInterval(iv)

	assert.Empty(t, n.Intervals())
	assert.Zero(t, n.Value())
}

func TestNode_Clone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		at        time.Time
		intervals []interval.Interval
	}{
		{
			name:      "starting interval",
			at:        day(2023, 1, 1),
			intervals: []interval.Interval{mkInterval(day(2023, 1, 1), day(2023, 1, 10), 5)},
		},
		{
			name:      "ending interval",
			at:        day(2023, 1, 10),
			intervals: []interval.Interval{mkInterval(day(2023, 1, 1), day(2023, 1, 10), 5)},
		},
		{
			name: "starting and ending",
			at:   day(2023, 1, 5),
			intervals: []interval.Interval{
				mkInterval(day(2023, 1, 5), day(2023, 1, 10), 3),
				mkInterval(day(2023, 1, 1), day(2023, 1, 5), 2),
			},
		},
		{
			name:      "degenerate at instant",
			at:        day(2023, 1, 5),
			intervals: []interval.Interval{mkInterval(day(2023, 1, 5), day(2023, 1, 5), 100)},
		},
		{
			name: "multiple starting",
			at:   day(2023, 1, 1),
			intervals: []interval.Interval{
				mkInterval(day(2023, 1, 1), day(2023, 1, 10), 5),
				mkInterval(day(2023, 1, 1), day(2023, 1, 15), 3),
			},
		},
		{
			name: "multiple ending",
			at:   day(2023, 1, 10),
			intervals: []interval.Interval{
				mkInterval(day(2023, 1, 1), day(2023, 1, 10), 5),
				mkInterval(day(2023, 1, 5), day(2023, 1, 10), 3),
			},
		},
		{
			name:      "containing instant",
			at:        day(2023, 1, 5),
			intervals: []interval.Interval{mkInterval(day(2023, 1, 1), day(2023, 1, 10), 5)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			original := nodeWith(tt.at, tt.intervals...)
			cloned := original.Clone()

			assert.True(t, cloned.Equal(original))
			assert.Equal(t, original.Intervals(), cloned.Intervals())
			assert.Equal(t, original.Starting(), cloned.Starting())
			assert.Equal(t, original.Ending(), cloned.Ending())
			assert.InDelta(t, original.Value(), cloned.Value(), 0)

			cloned.addInterval(mkInterval(tt.at, tt.at.Add(time.Hour), 1))

			assert.NotEqual(t, original.Starting(), cloned.Starting())
			assert.NotEqual(t, original.Intervals(), cloned.Intervals())
		})
	}
}

func TestNode_CopyToMatchesFreshNode(t *testing.T) {
	t.Parallel()

	longRun := mkInterval(day(1970, 1, 1), day(2000, 1, 1), 1)
	spot := mkInterval(day(1975, 1, 1), day(1975, 1, 1), 1)

	tests := []struct {
		name   string
		source *Node
		to     time.Time
		want   *Node
	}{
		{
			name:   "empty node",
			source: newNode(day(1975, 1, 1)),
			to:     day(2014, 9, 12),
			want:   newNode(day(2014, 9, 12)),
		},
		{
			name:   "normal interval carried",
			source: nodeWith(day(1975, 1, 1), longRun),
			to:     day(2014, 9, 12),
			want:   nodeWith(day(2014, 9, 12), longRun),
		},
		{
			name:   "degenerate left behind",
			source: nodeWith(day(1975, 1, 1), spot),
			to:     day(1976, 1, 1),
			want:   newNode(day(1976, 1, 1)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.True(t, tt.want.Equal(tt.source.CopyTo(tt.to)))
		})
	}
}

func TestNode_CopyToRebuildsBoundaries(t *testing.T) {
	t.Parallel()

	first := mkInterval(day(2023, 1, 1), day(2023, 1, 10), 5)
	second := mkInterval(day(2023, 1, 5), day(2023, 1, 15), 3)

	tests := []struct {
		name         string
		source       *Node
		to           time.Time
		wantStarting []interval.Interval
		wantEnding   []interval.Interval
		wantValue    float64
	}{
		{
			name:         "at interval start",
			source:       nodeWith(day(2023, 1, 1), first),
			to:           day(2023, 1, 1),
			wantStarting: []interval.Interval{first},
			wantValue:    5,
		},
		{
			name:       "at interval end",
			source:     nodeWith(day(2023, 1, 10), first),
			to:         day(2023, 1, 10),
			wantEnding: []interval.Interval{first},
		},
		{
			name:      "middle of interval",
			source:    nodeWith(day(2023, 1, 5), first),
			to:        day(2023, 1, 5),
			wantValue: 5,
		},
		{
			name:         "moves onto a later start",
			source:       nodeWith(day(2023, 1, 1), first, second),
			to:           day(2023, 1, 5),
			wantStarting: []interval.Interval{second},
			wantValue:    8,
		},
		{
			name:       "active interval ends at target",
			source:     nodeWith(day(2023, 1, 5), first, second),
			to:         day(2023, 1, 10),
			wantEnding: []interval.Interval{first},
			wantValue:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			copied := tt.source.CopyTo(tt.to)

			assert.Equal(t, tt.wantStarting, nilIfEmpty(copied.Starting()))
			assert.Equal(t, tt.wantEnding, nilIfEmpty(copied.Ending()))
			assert.InDelta(t, tt.wantValue, copied.Value(), 1e-9)
			assert.True(t, copied.TimePoint().Equal(tt.to))
		})
	}
}

func TestNode_AddInterval(t *testing.T) {
	t.Parallel()

	at := day(2023, 1, 5)

	t.Run("starting", func(t *testing.T) {
		t.Parallel()

		iv := mkInterval(at, day(2023, 1, 9), 2)
		n := nodeWith(at, iv)

		assert.Equal(t, []interval.Interval{iv}, n.Starting())
		assert.Equal(t, []interval.Interval{iv}, n.Intervals())
		assert.Empty(t, n.Ending())
		assert.InDelta(t, 2.0, n.Value(), 0)
	})

	t.Run("ending", func(t *testing.T) {
		t.Parallel()

		iv := mkInterval(day(2023, 1, 1), at, 2)
		n := nodeWith(at, iv)

		assert.Equal(t, []interval.Interval{iv}, n.Ending())
		assert.Empty(t, n.Intervals())
		assert.Zero(t, n.Value())
	})

	t.Run("degenerate", func(t *testing.T) {
		t.Parallel()

		iv := mkInterval(at, at, 2)
		n := nodeWith(at, iv)

		assert.Equal(t, []interval.Interval{iv}, n.Starting())
		assert.Equal(t, []interval.Interval{iv}, n.Ending())
		assert.Equal(t, []interval.Interval{iv}, n.Intervals())
		assert.Zero(t, n.Value())
	})
}

func TestNode_RemoveInterval(t *testing.T) {
	t.Parallel()

	at := day(2023, 1, 5)
	keep := mkInterval(day(2023, 1, 1), day(2023, 1, 9), 2)
	drop := mkInterval(at, day(2023, 1, 9), 3)
	n := nodeWith(at, keep, drop)

	require.InDelta(t, 5.0, n.Value(), 0)

	n.removeInterval(drop)

	assert.Equal(t, []interval.Interval{keep}, n.Intervals())
	assert.Empty(t, n.Starting())
	assert.InDelta(t, 2.0, n.Value(), 0)
	assert.True(t, n.isRedundant(Origin))
	assert.False(t, newNode(Origin).isRedundant(Origin))
}

func TestNode_String(t *testing.T) {
	t.Parallel()

	n := nodeWith(day(2023, 1, 5), mkInterval(day(2023, 1, 1), day(2023, 1, 9), 2))

	assert.Equal(t, "node(2023-01-05T00:00:00Z value=2 active=1)", n.String())
}

func nilIfEmpty(ivs []interval.Interval) []interval.Interval {
	if len(ivs) == 0 {
		return nil
	}

	return ivs
}
