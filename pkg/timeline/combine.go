package timeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/Sumatoshi-tech/stepwise/pkg/alg/search"
	"github.com/Sumatoshi-tech/stepwise/pkg/interval"
)

// Operator is a binary arithmetic operation applied point-wise to two handlers.
type Operator int

// Supported operators.
const (
	OpAdd Operator = iota + 1
	OpSubtract
	OpMultiply
	OpDivide
)

var operatorNames = map[Operator]string{
	OpAdd:      "add",
	OpSubtract: "sub",
	OpMultiply: "mul",
	OpDivide:   "div",
}

// ParseOperator maps "add", "sub", "mul", "div" or their symbols to an Operator.
func ParseOperator(raw string) (Operator, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "add", "+":
		return OpAdd, nil
	case "sub", "-":
		return OpSubtract, nil
	case "mul", "*":
		return OpMultiply, nil
	case "div", "/":
		return OpDivide, nil
	default:
		return 0, errors.Wrapf(ErrUnsupportedOperand, "operator %q", raw)
	}
}

// String returns the operator's short name.
func (op Operator) String() string {
	if name, ok := operatorNames[op]; ok {
		return name
	}

	return fmt.Sprintf("Operator(%d)", int(op))
}

func (op Operator) apply(a, b float64) (float64, bool) {
	switch op {
	case OpAdd:
		return a + b, true
	case OpSubtract:
		return a - b, true
	case OpMultiply:
		return a * b, true
	case OpDivide:
		if b == 0 {
			return 0, false
		}

		return a / b, true
	default:
		return 0, false
	}
}

// Combine samples a and b at the union of their breakpoints and returns a new
// handler with one interval per consecutive breakpoint pair, valued
// a(t) op b(t). The result keeps a's location, logger, and recorder.
func Combine(a, b *Handler, op Operator) (*Handler, error) {
	segments, err := combineIntervals(a, b, op)
	if err != nil {
		return nil, err
	}

	return New(segments, WithLocation(a.location), WithLogger(a.logger), WithRecorder(a.recorder))
}

// Apply replaces the handler's contents with h op other. The handler is left
// untouched when the combination fails.
func (h *Handler) Apply(other *Handler, op Operator) error {
	segments, err := combineIntervals(h, other, op)
	if err != nil {
		return err
	}

	h.reset()

	return h.Add(segments...)
}

// Sum returns h + other.
func (h *Handler) Sum(other *Handler) (*Handler, error) { return Combine(h, other, OpAdd) }

// Difference returns h - other.
func (h *Handler) Difference(other *Handler) (*Handler, error) { return Combine(h, other, OpSubtract) }

// Product returns h * other.
func (h *Handler) Product(other *Handler) (*Handler, error) { return Combine(h, other, OpMultiply) }

// Quotient returns h / other. It fails with ErrDivisionByZero when other is
// zero at any breakpoint of either handler, the origin included.
func (h *Handler) Quotient(other *Handler) (*Handler, error) { return Combine(h, other, OpDivide) }

func combineIntervals(a, b *Handler, op Operator) (out []interval.Interval, err error) {
	if a == nil || b == nil {
		return nil, errors.Wrap(ErrUnsupportedOperand, "nil handler")
	}

	defer a.observe(OpNameCombine, time.Now(), &err)

	if _, known := operatorNames[op]; !known {
		return nil, errors.Wrapf(ErrUnsupportedOperand, "operator %d", int(op))
	}

	left, right := sampleOf(a), sampleOf(b)
	times := mergeTimes(left.times, right.times)
	out = make([]interval.Interval, 0, len(times))

	for i := 0; i+1 < len(times); i++ {
		at := times[i]

		value, ok := op.apply(left.at(at), right.at(at))
		if !ok {
			return nil, errors.Wrapf(ErrDivisionByZero, "denominator is zero at %s", at.Format(time.RFC3339Nano))
		}

		out = append(out, interval.MustNew(at, times[i+1], value))
	}

	return out, nil
}

// sample is a flattened projection: breakpoint instants and their values.
type sample struct {
	times  []time.Time
	values []float64
}

func sampleOf(h *Handler) sample {
	nodes := h.nodes.nodes()
	s := sample{
		times:  make([]time.Time, len(nodes)),
		values: make([]float64, len(nodes)),
	}

	for i, n := range nodes {
		s.times[i] = n.timePoint
		s.values[i] = n.value
	}

	return s
}

// at returns the value in effect at an instant.
func (s sample) at(when time.Time) float64 {
	idx := search.WeakPredecessorIndex(s.times, when, time.Time.Compare)
	if idx < 0 {
		return 0
	}

	return s.values[idx]
}

// mergeTimes merges two ascending instant lists, dropping duplicates.
func mergeTimes(a, b []time.Time) []time.Time {
	out := make([]time.Time, 0, len(a)+len(b))
	i, j := 0, 0

	for i < len(a) || j < len(b) {
		var next time.Time

		switch {
		case j == len(b) || (i < len(a) && a[i].Before(b[j])):
			next = a[i]
			i++
		case i == len(a) || b[j].Before(a[i]):
			next = b[j]
			j++
		default:
			next = a[i]
			i++
			j++
		}

		if len(out) == 0 || !out[len(out)-1].Equal(next) {
			out = append(out, next)
		}
	}

	return out
}
