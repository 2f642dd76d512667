package observability

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instrument names. The Prometheus reader exports them as
// stepwise_ops_total, stepwise_op_duration_seconds and
// stepwise_op_errors_total.
const (
	MetricOps      = "stepwise.ops"
	MetricDuration = "stepwise.op.duration"
	MetricErrors   = "stepwise.op.errors"
)

const (
	attrOp      = attribute.Key("op")
	attrOutcome = attribute.Key("outcome")
)

var (
	outcomeOK    = attrOutcome.String("ok")
	outcomeError = attrOutcome.String("error")
)

// Handler operations run in memory, so the buckets start at 10us.
var durationBuckets = []float64{
	1e-5, 1e-4, 5e-4, 1e-3, 5e-3, 1e-2, 5e-2, 0.1, 0.5, 1, 5,
}

// OpMetrics counts timeline operations and their latency. It satisfies
// timeline.OpRecorder.
type OpMetrics struct {
	ops      metric.Int64Counter
	duration metric.Float64Histogram
	errs     metric.Int64Counter
}

// NewOpMetrics registers the operation instruments on mt.
func NewOpMetrics(mt metric.Meter) (*OpMetrics, error) {
	ops, err := mt.Int64Counter(MetricOps,
		metric.WithDescription("Timeline operations performed"),
		metric.WithUnit("{operation}"))
	if err != nil {
		return nil, errors.Wrapf(err, "create %s", MetricOps)
	}

	duration, err := mt.Float64Histogram(MetricDuration,
		metric.WithDescription("Timeline operation latency"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...))
	if err != nil {
		return nil, errors.Wrapf(err, "create %s", MetricDuration)
	}

	errs, err := mt.Int64Counter(MetricErrors,
		metric.WithDescription("Timeline operations that returned an error"),
		metric.WithUnit("{error}"))
	if err != nil {
		return nil, errors.Wrapf(err, "create %s", MetricErrors)
	}

	return &OpMetrics{ops: ops, duration: duration, errs: errs}, nil
}

// RecordOp records one finished operation.
func (m *OpMetrics) RecordOp(op string, elapsed time.Duration, err error) {
	ctx := context.Background()
	name := attrOp.String(op)

	outcome := outcomeOK
	if err != nil {
		outcome = outcomeError

		m.errs.Add(ctx, 1, metric.WithAttributes(name))
	}

	attrs := metric.WithAttributeSet(attribute.NewSet(name, outcome))

	m.ops.Add(ctx, 1, attrs)
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
}
