package timeline

import (
	"log/slog"
	"slices"
	"time"

	"github.com/biogo/store/llrb"
	"github.com/cockroachdb/errors"

	"github.com/Sumatoshi-tech/stepwise/pkg/interval"
)

// Handler owns a set of intervals and the breakpoint projection built from
// them.
type Handler struct {
	intervals     []interval.Interval
	nodes         projection
	firstNegative *Node
	origin        time.Time
	location      *time.Location
	logger        *slog.Logger
	recorder      OpRecorder
	index         *overlapIndex
}

// Segment is the constant-value stretch between two consecutive breakpoints.
type Segment struct {
	Start time.Time
	End   time.Time
	Value float64
}

// New creates a handler holding intervals.
func New(intervals []interval.Interval, opts ...Option) (*Handler, error) {
	h := &Handler{
		location: time.UTC,
		logger:   slog.New(slog.DiscardHandler),
		recorder: nopRecorder{},
	}

	for _, opt := range opts {
		opt(h)
	}

	h.reset()

	err := h.Add(intervals...)
	if err != nil {
		return nil, err
	}

	return h, nil
}

// reset empties the handler down to its origin node.
func (h *Handler) reset() {
	h.origin = Origin.In(h.location)
	h.intervals = nil
	h.nodes = projection{}
	h.nodes.insert(newNode(h.origin))
	h.firstNegative = nil
	h.index = newOverlapIndex()
}

// Location returns the time zone tag of the origin node.
func (h *Handler) Location() *time.Location {
	return h.location
}

// Intervals returns a copy of the stored intervals in insertion order.
func (h *Handler) Intervals() []interval.Interval {
	return slices.Clone(h.intervals)
}

// Projection returns the breakpoint nodes in time order. The slice is a
// snapshot; the nodes are shared with the handler.
func (h *Handler) Projection() []*Node {
	return h.nodes.nodes()
}

// Add stores intervals and registers them at every breakpoint they cover.
// Nothing is stored when any interval starts before the origin.
func (h *Handler) Add(intervals ...interval.Interval) (err error) {
	defer h.observe(OpNameAdd, time.Now(), &err)

	for _, iv := range intervals {
		if iv.Start().Before(h.origin) {
			return errors.Wrapf(ErrBeforeOrigin, "interval %s", iv)
		}
	}

	h.intervals = append(h.intervals, intervals...)

	for _, iv := range intervals {
		h.ensureNode(iv.Start())
		h.ensureNode(iv.End())

		for _, n := range h.nodes.relevant(iv.Start(), iv.End()) {
			n.addInterval(iv)
			h.trackNegative(n)
		}
	}

	if h.firstNegative != nil && h.firstNegative.value >= 0 {
		h.rescanNegative()
	}

	if len(intervals) > 0 {
		h.index.invalidate()
	}

	return nil
}

// Remove drops every stored interval structurally equal to one of intervals,
// then prunes breakpoints that no longer mark a boundary.
func (h *Handler) Remove(intervals ...interval.Interval) {
	defer h.observe(OpNameRemove, time.Now(), nil)

	if len(intervals) == 0 {
		return
	}

	h.intervals = slices.DeleteFunc(h.intervals, func(stored interval.Interval) bool {
		return slices.ContainsFunc(intervals, stored.Equal)
	})

	for _, iv := range intervals {
		for _, n := range h.nodes.relevant(iv.Start(), iv.End()) {
			n.removeInterval(iv)
		}
	}

	h.prune()
	h.rescanNegative()
	h.index.invalidate()
}

// NodeAt returns the breakpoint in effect at when.
func (h *Handler) NodeAt(when time.Time) (*Node, error) {
	n := h.nodes.floor(when)
	if n == nil {
		return nil, errors.Wrapf(ErrNoPredecessor, "at %s", when.Format(time.RFC3339Nano))
	}

	return n, nil
}

// ValueAt returns the aggregate value in effect at when.
func (h *Handler) ValueAt(when time.Time) (float64, error) {
	n, err := h.NodeAt(when)
	if err != nil {
		return 0, err
	}

	return n.value, nil
}

// FirstNegative returns the earliest breakpoint with a negative value, or nil.
func (h *Handler) FirstNegative() *Node {
	return h.firstNegative
}

// Segments returns the stretches between consecutive breakpoints. The value
// after the last breakpoint is always zero and is not reported.
func (h *Handler) Segments() []Segment {
	nodes := h.nodes.nodes()
	out := make([]Segment, 0, len(nodes))

	for i := 0; i+1 < len(nodes); i++ {
		out = append(out, Segment{
			Start: nodes[i].timePoint,
			End:   nodes[i+1].timePoint,
			Value: nodes[i].value,
		})
	}

	return out
}

// Clone returns an independent copy. Intervals are shared, nodes are not.
func (h *Handler) Clone() *Handler {
	c := &Handler{
		intervals: slices.Clone(h.intervals),
		origin:    h.origin,
		location:  h.location,
		logger:    h.logger,
		recorder:  h.recorder,
		index:     newOverlapIndex(),
	}

	for _, n := range h.nodes.nodes() {
		cn := n.Clone()
		c.nodes.insert(cn)

		if n == h.firstNegative {
			c.firstNegative = cn
		}
	}

	return c
}

// Equal reports whether both handlers hold the same intervals in the same
// order and identical projections.
func (h *Handler) Equal(other *Handler) bool {
	if h == nil || other == nil {
		return h == other
	}

	return slices.EqualFunc(h.intervals, other.intervals, interval.Interval.Equal) &&
		slices.EqualFunc(h.nodes.nodes(), other.nodes.nodes(), (*Node).Equal)
}

// ensureNode inserts a breakpoint at at, copied from its predecessor, unless
// one already exists there.
func (h *Handler) ensureNode(at time.Time) {
	pred := h.nodes.floor(at)
	if pred == nil {
		panic(errors.AssertionFailedf("projection has no node at or before %s", at))
	}

	if pred.timePoint.Equal(at) {
		return
	}

	h.nodes.insert(pred.CopyTo(at))
	h.logger.Debug("breakpoint created", "at", at, "from", pred.timePoint)
}

func (h *Handler) prune() {
	var redundant []*Node

	for _, n := range h.nodes.nodes() {
		if n.isRedundant(h.origin) {
			redundant = append(redundant, n)
		}
	}

	for _, n := range redundant {
		h.nodes.delete(n)
	}

	if len(redundant) > 0 {
		h.logger.Debug("breakpoints pruned", "count", len(redundant), "remaining", h.nodes.len())
	}
}

// trackNegative keeps firstNegative pointing at the earliest negative node
// seen so far.
func (h *Handler) trackNegative(n *Node) {
	if n.value >= 0 {
		return
	}

	if h.firstNegative == nil || n.timePoint.Before(h.firstNegative.timePoint) {
		h.firstNegative = n
	}
}

func (h *Handler) rescanNegative() {
	h.firstNegative = nil

	h.nodes.tree.Do(func(c llrb.Comparable) bool {
		n := c.(*Node)
		if n.value < 0 {
			h.firstNegative = n

			return true
		}

		return false
	})

	h.logger.Debug("first negative rescanned", "found", h.firstNegative != nil)
}

// observe reports op to the recorder. A nil err marks an op that cannot fail.
func (h *Handler) observe(op string, began time.Time, err *error) {
	var opErr error
	if err != nil {
		opErr = *err
	}

	h.recorder.RecordOp(op, time.Since(began), opErr)
}
