package render

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/stepwise/pkg/interval"
	"github.com/Sumatoshi-tech/stepwise/pkg/timeline"
)

const (
	chartWidth  = "100%"
	chartHeight = "500px"
	lineWidth   = 2

	// stepAtEnd holds each value until the next point.
	stepAtEnd = "end"

	// openTailFraction sizes the drawn tail of a segment that runs to
	// interval.TimeMax, relative to the finite part of the chart.
	openTailFraction = 10
	minOpenTail      = 24 * time.Hour

	colorLine   = "#5470c6"
	areaOpacity = 0.2
)

// ErrNoSegments is returned when there is nothing to plot.
var ErrNoSegments = errors.New("no segments to plot")

// StepChart builds a step line chart of the segments on a time axis.
func StepChart(title string, segments []timeline.Segment, o Options) (*charts.Line, error) {
	if len(segments) == 0 {
		return nil, ErrNoSegments
	}

	data := stepPoints(segments, o)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     chartWidth,
			Height:    chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{Title: title, Left: "center"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(
			opts.DataZoom{Type: "slider", Start: 0, End: 100},
			opts.DataZoom{Type: "inside"},
		),
		charts.WithXAxisOpts(opts.XAxis{Name: "Time", Type: "time"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Value"}),
	)

	line.AddSeries("value", data,
		charts.WithLineChartOpts(opts.LineChart{Step: stepAtEnd}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: colorLine}),
		charts.WithLineStyleOpts(opts.LineStyle{Width: lineWidth}),
		charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: opts.Float(areaOpacity)}),
	)

	return line, nil
}

// WriteStepChart renders the chart as a standalone HTML page.
func WriteStepChart(w io.Writer, title string, segments []timeline.Segment, o Options) error {
	line, err := StepChart(title, segments, o)
	if err != nil {
		return err
	}

	err = line.Render(w)
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}

	return nil
}

// stepPoints emits one point per segment start and a closing point at the
// last end. A tail running to interval.TimeMax is cut short so the finite
// part stays readable.
func stepPoints(segments []timeline.Segment, o Options) []opts.LineData {
	data := make([]opts.LineData, 0, len(segments)+1)

	for _, s := range segments {
		data = append(data, point(s.Start, s.Value, o))
	}

	last := segments[len(segments)-1]
	end := last.End

	if end.Equal(interval.TimeMax) {
		tail := last.Start.Sub(segments[0].Start) / openTailFraction
		if tail < minOpenTail {
			tail = minOpenTail
		}

		end = last.Start.Add(tail)
	}

	data = append(data, point(end, last.Value, o))

	return data
}

func point(at time.Time, value float64, o Options) opts.LineData {
	return opts.LineData{
		Name:  o.Time(at),
		Value: []any{at.UnixMilli(), value},
	}
}
