// Package timeline maintains a step-function view of weighted time intervals.
//
// A Handler owns a list of intervals and an ordered projection of breakpoint
// nodes. Each node records which intervals are active, starting, or ending at
// its instant, and caches the sum of the active non-degenerate weights. Point
// queries resolve to the weak predecessor node; range integrals, arithmetic
// combination of two handlers, and first-negative lookups all walk the
// projection instead of rescanning the interval list.
//
// A Handler is not safe for concurrent mutation.
package timeline

import (
	"time"

	"github.com/cockroachdb/errors"
)

// Origin is the fixed earliest breakpoint of every projection.
var Origin = time.Unix(0, 0).UTC()

var (
	// ErrNoPredecessor is returned when no breakpoint exists at or before an instant.
	ErrNoPredecessor = errors.New("no breakpoint at or before instant")

	// ErrDivisionByZero is returned when a divided handler samples a zero denominator.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrUnsupportedOperand is returned for a nil operand or an unknown operator.
	ErrUnsupportedOperand = errors.New("unsupported operand")

	// ErrBeforeOrigin is returned when an interval starts before Origin.
	ErrBeforeOrigin = errors.New("interval starts before the timeline origin")
)
