package timeline

import (
	"time"

	"github.com/biogo/store/llrb"
	"github.com/cockroachdb/errors"
)

// Compare orders nodes by instant. It lets nodes live in the projection tree.
func (n *Node) Compare(c llrb.Comparable) int {
	return n.timePoint.Compare(keyOf(c))
}

// instant looks up the node at an instant.
type instant time.Time

func (k instant) Compare(c llrb.Comparable) int {
	return time.Time(k).Compare(keyOf(c))
}

// justAfter sorts after every node at or before its instant. It serves as an
// inclusive upper bound and an exclusive lower bound for range walks.
type justAfter time.Time

func (k justAfter) Compare(c llrb.Comparable) int {
	if d := time.Time(k).Compare(keyOf(c)); d != 0 {
		return d
	}

	return 1
}

func keyOf(c llrb.Comparable) time.Time {
	switch k := c.(type) {
	case *Node:
		return k.timePoint
	case instant:
		return time.Time(k)
	case justAfter:
		return time.Time(k)
	default:
		panic(errors.AssertionFailedf("unexpected projection key %T", c))
	}
}

// projection is the ordered set of breakpoint nodes.
type projection struct {
	tree llrb.Tree
}

func (p *projection) len() int {
	return p.tree.Len()
}

func (p *projection) insert(n *Node) {
	p.tree.Insert(n)
}

func (p *projection) delete(n *Node) {
	p.tree.Delete(n)
}

// floor returns the weak predecessor of at, or nil when every node is later.
func (p *projection) floor(at time.Time) *Node {
	found := p.tree.Floor(instant(at))
	if found == nil {
		return nil
	}

	return found.(*Node)
}

// nodes returns all nodes in time order.
func (p *projection) nodes() []*Node {
	out := make([]*Node, 0, p.tree.Len())

	p.tree.Do(func(c llrb.Comparable) bool {
		out = append(out, c.(*Node))

		return false
	})

	return out
}

// within returns the nodes in [from, to].
func (p *projection) within(from, to time.Time) []*Node {
	var out []*Node

	if from.After(to) {
		return out
	}

	p.tree.DoRange(func(c llrb.Comparable) bool {
		out = append(out, c.(*Node))

		return false
	}, instant(from), justAfter(to))

	return out
}

// strictlyBetween returns the nodes in (from, to).
func (p *projection) strictlyBetween(from, to time.Time) []*Node {
	var out []*Node

	if !from.Before(to) {
		return out
	}

	p.tree.DoRange(func(c llrb.Comparable) bool {
		out = append(out, c.(*Node))

		return false
	}, justAfter(from), instant(to))

	return out
}

// relevant returns the nodes an interval [start, end] touches: the weak
// predecessor of start followed by every node up to and including end.
func (p *projection) relevant(start, end time.Time) []*Node {
	from := start
	if pred := p.floor(start); pred != nil {
		from = pred.timePoint
	}

	return p.within(from, end)
}
