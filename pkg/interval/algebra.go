package interval

import "time"

// Overlaps reports whether a and b share at least one instant.
//
// Two degenerate intervals overlap only at the same instant. A degenerate
// interval overlaps a non-degenerate one when the latter contains its point.
// Half-open intervals that merely touch do not overlap.
func Overlaps(a, b Interval) bool {
	aDegenerate, bDegenerate := a.Degenerate(), b.Degenerate()

	switch {
	case aDegenerate && bDegenerate:
		return a.start.Equal(b.start)
	case aDegenerate:
		return b.ContainsPoint(a.start)
	case bDegenerate:
		return a.ContainsPoint(b.start)
	}

	first, second := a, b
	if second.start.Before(first.start) {
		first, second = second, first
	}

	return second.start.Before(first.end)
}

// Contains reports whether b lies fully inside a.
//
// A degenerate b is contained exactly when it overlaps a, so a point at a's
// end is not contained. A non-degenerate b needs a to span it on both sides.
func Contains(a, b Interval) bool {
	if b.Degenerate() {
		return Overlaps(a, b)
	}

	return !a.start.After(b.start) && !a.end.Before(b.end)
}

// Intersection returns the shared range of a and b with a zero value.
// The second result is false when the intervals do not overlap.
func Intersection(a, b Interval) (Interval, bool) {
	if !Overlaps(a, b) {
		return Interval{}, false
	}

	return Interval{start: latest(a.start, b.start), end: earliest(a.end, b.end)}, true
}

func latest(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}

	return b
}

func earliest(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}

	return b
}
