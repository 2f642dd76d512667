package observability

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// ErrNoGatherer is returned when metrics are dumped without a Prometheus reader.
var ErrNoGatherer = errors.New("prometheus reader not enabled")

// WritePrometheus writes every metric family gathered by g to w in the
// Prometheus text exposition format.
func WritePrometheus(w io.Writer, g prometheus.Gatherer) error {
	if g == nil {
		return ErrNoGatherer
	}

	families, err := g.Gather()
	if err != nil {
		return errors.Wrap(err, "gather metrics")
	}

	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return errors.Wrapf(err, "write %s", family.GetName())
		}
	}

	return nil
}
