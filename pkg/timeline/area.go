package timeline

import (
	"time"

	"github.com/Sumatoshi-tech/stepwise/pkg/interval"
)

// Area integrates the handler's value over during and scales the result by
// during's own value. The unit is value-seconds. A degenerate window has
// zero area.
func (h *Handler) Area(during interval.Interval) (area float64, err error) {
	defer h.observe(OpNameArea, time.Now(), &err)

	first, err := h.NodeAt(during.Start())
	if err != nil {
		return 0, err
	}

	last, err := h.NodeAt(during.End())
	if err != nil {
		return 0, err
	}

	walk := make([]*Node, 0, 2)
	walk = append(walk, first.CopyTo(during.Start()))
	walk = append(walk, h.nodes.strictlyBetween(during.Start(), during.End())...)
	walk = append(walk, last.CopyTo(during.End()))

	for i := 0; i+1 < len(walk); i++ {
		area += walk[i].value * seconds(walk[i].timePoint, walk[i+1].timePoint)
	}

	return area * during.Value(), nil
}

// seconds measures from..to in seconds without going through time.Duration,
// which overflows past roughly 292 years.
func seconds(from, to time.Time) float64 {
	whole := float64(to.Unix() - from.Unix())
	frac := float64(to.Nanosecond()-from.Nanosecond()) / float64(time.Second)

	return whole + frac
}
