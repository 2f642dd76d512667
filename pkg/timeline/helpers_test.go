package timeline_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/stepwise/pkg/interval"
	"github.com/Sumatoshi-tech/stepwise/pkg/timeline"
)

// Test constants.
const (
	testDelta = 1e-9
	testDay   = 24 * time.Hour
)

func date(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func clock(year int, month time.Month, d, hour, minute int) time.Time {
	return time.Date(year, month, d, hour, minute, 0, 0, time.UTC)
}

func iv(start, end time.Time, value float64) interval.Interval {
	return interval.MustNew(start, end, value)
}

func newHandler(t *testing.T, intervals ...interval.Interval) *timeline.Handler {
	t.Helper()

	h, err := timeline.New(intervals)
	require.NoError(t, err)

	return h
}

func projectionInstants(h *timeline.Handler) []time.Time {
	nodes := h.Projection()
	out := make([]time.Time, 0, len(nodes))

	for _, n := range nodes {
		out = append(out, n.TimePoint())
	}

	return out
}

// complexIntervals mixes overlapping, adjacent, and degenerate intervals.
func complexIntervals() []interval.Interval {
	return []interval.Interval{
		iv(date(2023, 1, 1), clock(2023, 1, 15, 17, 0), 1),
		iv(clock(2023, 1, 19, 5, 0), clock(2023, 1, 21, 23, 0), 2),
		iv(clock(2023, 1, 20, 5, 0), clock(2023, 1, 20, 5, 0), 1000),
		iv(clock(2023, 1, 20, 5, 0), clock(2023, 1, 25, 5, 0), 5),
		iv(clock(2023, 1, 25, 5, 0), clock(2023, 1, 25, 5, 0), 9),
		iv(date(2023, 2, 1), date(2023, 2, 1), 9),
		iv(date(2023, 2, 1), date(2023, 3, 1), 3),
		iv(date(2023, 2, 15), date(2023, 2, 15), 2),
	}
}

type recordedOp struct {
	op  string
	err error
}

type fakeRecorder struct {
	ops []recordedOp
}

func (r *fakeRecorder) RecordOp(op string, _ time.Duration, err error) {
	r.ops = append(r.ops, recordedOp{op: op, err: err})
}

func (r *fakeRecorder) names() []string {
	out := make([]string, 0, len(r.ops))
	for _, op := range r.ops {
		out = append(out, op.op)
	}

	return out
}
