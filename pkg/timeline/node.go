package timeline

import (
	"fmt"
	"time"

	"github.com/Sumatoshi-tech/stepwise/pkg/interval"
)

// Node is a breakpoint of the projection. It tracks the intervals active at
// its instant and those whose boundary falls on it.
type Node struct {
	timePoint time.Time
	active    *intervalSet
	starting  *intervalSet
	ending    *intervalSet
	value     float64
}

func newNode(at time.Time) *Node {
	return &Node{
		timePoint: at,
		active:    newIntervalSet(),
		starting:  newIntervalSet(),
		ending:    newIntervalSet(),
	}
}

// TimePoint returns the node's instant.
func (n *Node) TimePoint() time.Time { return n.timePoint }

// Value returns the sum of weights of the non-degenerate intervals active at
// the node. Degenerate intervals never contribute.
func (n *Node) Value() float64 { return n.value }

// Intervals returns the intervals active at the node, sorted.
func (n *Node) Intervals() []interval.Interval { return n.active.items() }

// Starting returns the intervals that start at the node, sorted.
func (n *Node) Starting() []interval.Interval { return n.starting.items() }

// Ending returns the intervals that end at the node, sorted.
func (n *Node) Ending() []interval.Interval { return n.ending.items() }

// Equal reports whether both nodes sit at the same instant with the same
// active, starting and ending intervals, regardless of insertion order.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}

	return n.timePoint.Equal(other.timePoint) &&
		n.active.equal(other.active) &&
		n.starting.equal(other.starting) &&
		n.ending.equal(other.ending)
}

// String renders the node for logs and test failures.
func (n *Node) String() string {
	return fmt.Sprintf("node(%s value=%g active=%d)",
		n.timePoint.Format(time.RFC3339), n.value, n.active.size())
}

// Clone returns a deep copy with independent interval sets.
func (n *Node) Clone() *Node {
	return &Node{
		timePoint: n.timePoint,
		active:    n.active.clone(),
		starting:  n.starting.clone(),
		ending:    n.ending.clone(),
		value:     n.value,
	}
}

// CopyTo transplants the node to another instant. Degenerate intervals stay
// behind. Active intervals that end at the new instant become ending ones, and
// the starting and ending sets are rebuilt from the active and ending
// intervals of the source.
func (n *Node) CopyTo(at time.Time) *Node {
	c := newNode(at)

	n.active.each(func(iv interval.Interval, count int) {
		if iv.Degenerate() || iv.End().Equal(at) {
			return
		}

		c.active.add(iv, count)
	})

	for _, source := range []*intervalSet{n.active, n.ending} {
		source.each(func(iv interval.Interval, count int) {
			if iv.Degenerate() {
				return
			}

			if iv.Start().Equal(at) && !c.starting.has(iv) {
				c.starting.add(iv, count)
			}

			if iv.End().Equal(at) && !c.ending.has(iv) {
				c.ending.add(iv, count)
			}
		})
	}

	c.recomputeValue()

	return c
}

// addInterval registers iv at the node. The caller picks the nodes iv covers.
func (n *Node) addInterval(iv interval.Interval) {
	switch {
	case iv.End().Equal(n.timePoint):
		n.ending.add(iv, 1)

		if iv.Degenerate() {
			n.active.add(iv, 1)
		}
	case !iv.Degenerate():
		n.active.add(iv, 1)
		n.value += iv.Value()
	}

	if iv.Start().Equal(n.timePoint) {
		n.starting.add(iv, 1)
	}
}

// removeInterval drops every copy of iv from the node.
func (n *Node) removeInterval(iv interval.Interval) {
	if iv.ContainsPoint(n.timePoint) && n.active.remove(iv) > 0 {
		n.recomputeValue()
	}

	if iv.Start().Equal(n.timePoint) {
		n.starting.remove(iv)
	}

	if iv.End().Equal(n.timePoint) {
		n.ending.remove(iv)
	}
}

// isRedundant reports whether the node marks no interval boundary and is not
// the origin.
func (n *Node) isRedundant(origin time.Time) bool {
	return n.timePoint.After(origin) && n.starting.empty() && n.ending.empty()
}

func (n *Node) recomputeValue() {
	var total float64

	n.active.each(func(iv interval.Interval, count int) {
		if !iv.Degenerate() {
			total += iv.Value() * float64(count)
		}
	})

	n.value = total
}
