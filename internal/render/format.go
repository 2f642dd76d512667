// Package render formats timeline projections for the terminal and for HTML
// charts.
package render

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/Sumatoshi-tech/stepwise/pkg/interval"
)

const (
	secondsPerDay = 24 * 60 * 60

	labelMax     = "max"
	labelNone    = "none"
	labelUnknown = "-"
)

// Options controls how values and timestamps are printed.
type Options struct {
	// Color enables ANSI highlighting of negative values.
	Color bool

	// Precision is the number of decimals kept in values.
	Precision int

	// Layout is the time.Format layout; empty means RFC 3339.
	Layout string

	// Location converts timestamps before formatting; nil keeps their own zone.
	Location *time.Location
}

// DefaultOptions returns colored RFC 3339 output with three decimals.
func DefaultOptions() Options {
	return Options{Color: true, Precision: 3, Layout: time.RFC3339}
}

// Time formats t, printing the far end of the timeline as "max".
func (o Options) Time(t time.Time) string {
	if t.Equal(interval.TimeMax) {
		return labelMax
	}

	if o.Location != nil {
		t = t.In(o.Location)
	}

	layout := o.Layout
	if layout == "" {
		layout = time.RFC3339
	}

	return t.Format(layout)
}

// Value formats v with trailing zeros trimmed.
func (o Options) Value(v float64) string {
	return humanize.FtoaWithDigits(v, o.Precision)
}

// Number formats v with thousands separators.
func (o Options) Number(v float64) string {
	return humanize.CommafWithDigits(v, o.Precision)
}

// Signed formats v and paints it red when negative.
func (o Options) Signed(v float64) string {
	text := o.Value(v)
	if v >= 0 {
		return text
	}

	return o.negative().Sprint(text)
}

// Span formats the distance between two instants.
func (o Options) Span(from, to time.Time) string {
	if to.Equal(interval.TimeMax) {
		return labelUnknown
	}

	return to.Sub(from).Round(time.Second).String()
}

func (o Options) negative() *color.Color {
	c := color.New(color.FgRed, color.Bold)

	if o.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}

	return c
}

func (o Options) highlight() *color.Color {
	c := color.New(color.FgCyan)

	if o.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}

	return c
}

// ValueDays converts value-seconds to value-days.
func ValueDays(area float64) float64 {
	return area / secondsPerDay
}
