package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Sumatoshi-tech/stepwise/pkg/interval"
	"github.com/Sumatoshi-tech/stepwise/pkg/timeline"
)

// Column headers.
const (
	colIndex    = "#"
	colTime     = "Time"
	colValue    = "Value"
	colActive   = "Active"
	colStarting = "Starting"
	colEnding   = "Ending"
	colStart    = "Start"
	colEnd      = "End"
	colLength   = "Length"
)

func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.DrawBorder = false

	return tbl
}

func writeTable(w io.Writer, tbl table.Writer) error {
	_, err := fmt.Fprintln(w, tbl.Render())
	if err != nil {
		return fmt.Errorf("write table: %w", err)
	}

	return nil
}

// Nodes writes one row per breakpoint.
func Nodes(w io.Writer, nodes []*timeline.Node, o Options) error {
	tbl := newTable()
	tbl.AppendHeader(table.Row{colIndex, colTime, colValue, colActive, colStarting, colEnding})

	for i, n := range nodes {
		tbl.AppendRow(table.Row{
			strconv.Itoa(i),
			o.Time(n.TimePoint()),
			o.Signed(n.Value()),
			len(n.Intervals()),
			len(n.Starting()),
			len(n.Ending()),
		})
	}

	tbl.AppendFooter(table.Row{"", fmt.Sprintf("Total: %d breakpoints", len(nodes))})

	return writeTable(w, tbl)
}

// Segments writes one row per constant-value stretch.
func Segments(w io.Writer, segments []timeline.Segment, o Options) error {
	tbl := newTable()
	tbl.AppendHeader(table.Row{colStart, colEnd, colLength, colValue})

	for _, s := range segments {
		tbl.AppendRow(table.Row{
			o.Time(s.Start),
			o.Time(s.End),
			o.Span(s.Start, s.End),
			o.Signed(s.Value),
		})
	}

	tbl.AppendFooter(table.Row{"", "", "", fmt.Sprintf("Total: %d segments", len(segments))})

	return writeTable(w, tbl)
}

// Intervals writes one row per stored interval.
func Intervals(w io.Writer, intervals []interval.Interval, o Options) error {
	tbl := newTable()
	tbl.AppendHeader(table.Row{colStart, colEnd, colLength, colValue})

	for _, iv := range intervals {
		tbl.AppendRow(table.Row{
			o.Time(iv.Start()),
			o.Time(iv.End()),
			o.Span(iv.Start(), iv.End()),
			o.Signed(iv.Value()),
		})
	}

	tbl.AppendFooter(table.Row{"", "", "", fmt.Sprintf("Total: %d intervals", len(intervals))})

	return writeTable(w, tbl)
}

// Node writes a single breakpoint summary, as printed for point queries.
func Node(w io.Writer, n *timeline.Node, o Options) error {
	if n == nil {
		_, err := fmt.Fprintln(w, labelNone)
		if err != nil {
			return fmt.Errorf("write node: %w", err)
		}

		return nil
	}

	_, err := fmt.Fprintf(w, "%s %s\nvalue: %s\nactive: %d starting: %d ending: %d\n",
		o.highlight().Sprint("breakpoint"),
		o.Time(n.TimePoint()),
		o.Signed(n.Value()),
		len(n.Intervals()), len(n.Starting()), len(n.Ending()),
	)
	if err != nil {
		return fmt.Errorf("write node: %w", err)
	}

	return nil
}

// Area writes an integral in value-seconds together with its value-day form.
func Area(w io.Writer, area float64, o Options) error {
	_, err := fmt.Fprintf(w, "area: %s value-seconds (%s value-days)\n",
		o.Number(area), o.Number(ValueDays(area)))
	if err != nil {
		return fmt.Errorf("write area: %w", err)
	}

	return nil
}
