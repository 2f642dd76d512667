// Package interval provides half-open time intervals carrying a numeric
// weight, together with the overlap, containment, and intersection algebra
// used by the timeline projection.
//
// An Interval covers [Start, End). When Start equals End the interval is
// degenerate and represents the single instant Start.
package interval

import (
	"fmt"
	"math"
	"time"

	"github.com/cockroachdb/errors"
)

// ErrInvalidRange is returned when an interval's end precedes its start.
var ErrInvalidRange = errors.New("interval end is earlier than its start")

// ErrInvalidValue is returned for a NaN weight, which has no place in the
// ordering of stored intervals.
var ErrInvalidValue = errors.New("interval value is NaN")

// TimeMax is the latest representable instant used as an open-ended bound,
// e.g. for a baseline interval that spans the whole domain.
var TimeMax = time.Date(9999, time.December, 31, 23, 59, 59, 999999000, time.UTC)

// Interval is an immutable half-open range of time with a weight.
type Interval struct {
	start time.Time
	end   time.Time
	value float64
}

// New creates an interval [start, end) with the given value.
// It fails with ErrInvalidRange when start is after end and with
// ErrInvalidValue when value is NaN.
func New(start, end time.Time, value float64) (Interval, error) {
	if start.After(end) {
		return Interval{}, errors.Wrapf(ErrInvalidRange,
			"start %s, end %s", start.Format(time.RFC3339Nano), end.Format(time.RFC3339Nano))
	}

	if math.IsNaN(value) {
		return Interval{}, errors.Wrapf(ErrInvalidValue,
			"start %s, end %s", start.Format(time.RFC3339Nano), end.Format(time.RFC3339Nano))
	}

	return Interval{start: start, end: end, value: value}, nil
}

// MustNew is like New but panics on invalid input.
func MustNew(start, end time.Time, value float64) Interval {
	iv, err := New(start, end, value)
	if err != nil {
		panic(err)
	}

	return iv
}

// Start returns the inclusive lower bound.
func (iv Interval) Start() time.Time { return iv.start }

// End returns the exclusive upper bound.
func (iv Interval) End() time.Time { return iv.end }

// Value returns the interval's weight.
func (iv Interval) Value() float64 { return iv.value }

// Degenerate reports whether the interval is a single instant.
func (iv Interval) Degenerate() bool {
	return iv.start.Equal(iv.end)
}

// Duration returns End minus Start.
func (iv Interval) Duration() time.Duration {
	return iv.end.Sub(iv.start)
}

// ContainsPoint reports whether point lies inside the interval. A degenerate
// interval contains only its own instant; otherwise Start <= point < End.
func (iv Interval) ContainsPoint(point time.Time) bool {
	if iv.Degenerate() {
		return point.Equal(iv.start)
	}

	return !point.Before(iv.start) && point.Before(iv.end)
}

// Overlaps reports whether iv and other share at least one instant.
func (iv Interval) Overlaps(other Interval) bool {
	return Overlaps(iv, other)
}

// Contains reports whether other lies fully inside iv.
func (iv Interval) Contains(other Interval) bool {
	return Contains(iv, other)
}

// Equal reports structural equality. Times are compared as instants.
func (iv Interval) Equal(other Interval) bool {
	return iv.start.Equal(other.start) && iv.end.Equal(other.end) && iv.value == other.value
}

// Compare orders intervals by start, then end, then value.
func (iv Interval) Compare(other Interval) int {
	if c := iv.start.Compare(other.start); c != 0 {
		return c
	}

	if c := iv.end.Compare(other.end); c != 0 {
		return c
	}

	switch {
	case iv.value < other.value:
		return -1
	case iv.value > other.value:
		return 1
	default:
		return 0
	}
}

// String renders the interval as "[start, end)=value".
func (iv Interval) String() string {
	return fmt.Sprintf("[%s, %s)=%g",
		iv.start.Format(time.RFC3339), iv.end.Format(time.RFC3339), iv.value)
}
