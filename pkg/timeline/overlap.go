package timeline

import (
	"slices"
	"time"

	ivtree "github.com/biogo/store/interval"
	"github.com/cockroachdb/errors"

	"github.com/Sumatoshi-tech/stepwise/pkg/interval"
)

// bound is an interval end point in the overlap index.
type bound time.Time

// Compare implements ivtree.Comparable.
func (b bound) Compare(c ivtree.Comparable) int {
	return time.Time(b).Compare(time.Time(c.(bound)))
}

// span indexes the interval at position pos of the handler's list as the
// closed range [start, end].
type span struct {
	pos        int
	start, end bound
}

func (s span) ID() uintptr                 { return uintptr(s.pos) }
func (s span) Start() ivtree.Comparable    { return s.start }
func (s span) End() ivtree.Comparable      { return s.end }
func (s span) NewMutable() ivtree.Mutable  { return &spanRange{start: s.start, end: s.end} }
func (s span) Overlap(r ivtree.Range) bool { return closedOverlap(s.start, s.end, r) }

// spanRange is the subtree extent kept on each tree node.
type spanRange struct{ start, end bound }

func (r *spanRange) Start() ivtree.Comparable     { return r.start }
func (r *spanRange) End() ivtree.Comparable       { return r.end }
func (r *spanRange) SetStart(c ivtree.Comparable) { r.start = c.(bound) }
func (r *spanRange) SetEnd(c ivtree.Comparable)   { r.end = c.(bound) }

func closedOverlap(start, end bound, r ivtree.Range) bool {
	return start.Compare(r.End()) <= 0 && end.Compare(r.Start()) >= 0
}

// overlapIndex is an interval tree over the handler's interval list.
// Mutations mark it dirty; the next query rebuilds it.
type overlapIndex struct {
	tree  ivtree.Tree
	dirty bool
}

func newOverlapIndex() *overlapIndex {
	return &overlapIndex{dirty: true}
}

func (x *overlapIndex) invalidate() {
	x.dirty = true
}

func (x *overlapIndex) ensure(intervals []interval.Interval) {
	if !x.dirty {
		return
	}

	x.tree.Root, x.tree.Count = nil, 0

	for pos, iv := range intervals {
		err := x.tree.Insert(span{pos: pos, start: bound(iv.Start()), end: bound(iv.End())}, true)
		if err != nil {
			// Stored intervals are validated, so the range cannot be inverted.
			panic(errors.NewAssertionErrorWithWrappedErrf(err, "index interval %s", iv))
		}
	}

	x.tree.AdjustRanges()
	x.dirty = false
}

// Overlapping returns the stored intervals that overlap during, in insertion
// order.
func (h *Handler) Overlapping(during interval.Interval) []interval.Interval {
	h.index.ensure(h.intervals)

	// Closed-range candidates are a superset of the half-open matches.
	hits := h.index.tree.Get(span{start: bound(during.Start()), end: bound(during.End())})

	positions := make([]int, 0, len(hits))
	for _, hit := range hits {
		positions = append(positions, hit.(span).pos)
	}

	slices.Sort(positions)

	out := make([]interval.Interval, 0, len(positions))

	for _, pos := range positions {
		if iv := h.intervals[pos]; interval.Overlaps(iv, during) {
			out = append(out, iv)
		}
	}

	return out
}
