// Package intervalflag parses command-line interval and timestamp arguments.
package intervalflag

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Sumatoshi-tech/stepwise/pkg/interval"
)

// Sentinel parse errors.
var (
	ErrInvalidIntervalSyntax = errors.New("invalid interval syntax")
	ErrInvalidTimestamp      = errors.New("invalid timestamp")
	ErrInvalidValue          = errors.New("invalid interval value")
)

const (
	// MaxKeyword stands for interval.TimeMax.
	MaxKeyword = "max"

	fieldSep      = ","
	minFields     = 2
	maxFields     = 3
	defaultWeight = 1.0

	layoutDate      = "2006-01-02"
	layoutLocalTime = "2006-01-02T15:04:05"
	layoutLocalSecs = "2006-01-02 15:04:05"
)

// Parser reads timestamps in a location. Layout, when set, is tried before
// the built-in forms.
type Parser struct {
	Location *time.Location
	Layout   string
}

// NewParser returns a parser for loc. A nil loc means UTC.
func NewParser(loc *time.Location, layout string) Parser {
	if loc == nil {
		loc = time.UTC
	}

	return Parser{Location: loc, Layout: layout}
}

// Time parses raw as RFC 3339, a zone-less local timestamp, a bare date, the
// keyword "max", or the configured layout. Zone-less forms are read in the
// parser's location.
func (p Parser) Time(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidTimestamp)
	}

	if strings.EqualFold(raw, MaxKeyword) {
		return interval.TimeMax, nil
	}

	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}

	if p.Layout != "" {
		if t, err := time.ParseInLocation(p.Layout, raw, loc); err == nil {
			return t, nil
		}
	}

	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, nil
	}

	for _, layout := range []string{layoutLocalTime, layoutLocalSecs, layoutDate} {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, raw)
}

// Interval parses "START,END[,VALUE]". VALUE defaults to 1.
func (p Parser) Interval(raw string) (interval.Interval, error) {
	fields := strings.Split(raw, fieldSep)
	if len(fields) < minFields || len(fields) > maxFields {
		return interval.Interval{}, fmt.Errorf("%w: %q: want START,END[,VALUE]", ErrInvalidIntervalSyntax, raw)
	}

	start, err := p.Time(fields[0])
	if err != nil {
		return interval.Interval{}, fmt.Errorf("%w: %q: %w", ErrInvalidIntervalSyntax, raw, err)
	}

	end, err := p.Time(fields[1])
	if err != nil {
		return interval.Interval{}, fmt.Errorf("%w: %q: %w", ErrInvalidIntervalSyntax, raw, err)
	}

	value := defaultWeight

	if len(fields) == maxFields {
		value, err = ParseValue(fields[2])
		if err != nil {
			return interval.Interval{}, fmt.Errorf("%w: %q: %w", ErrInvalidIntervalSyntax, raw, err)
		}
	}

	iv, err := interval.New(start, end, value)
	if err != nil {
		return interval.Interval{}, fmt.Errorf("%w: %q: %w", ErrInvalidIntervalSyntax, raw, err)
	}

	return iv, nil
}

// Intervals parses every entry of raws, stopping at the first failure.
func (p Parser) Intervals(raws []string) ([]interval.Interval, error) {
	out := make([]interval.Interval, 0, len(raws))

	for _, raw := range raws {
		iv, err := p.Interval(raw)
		if err != nil {
			return nil, err
		}

		out = append(out, iv)
	}

	return out, nil
}

// Window builds a unit-weight interval from two timestamps.
func (p Parser) Window(from, to string) (interval.Interval, error) {
	return p.WeightedWindow(from, to, defaultWeight)
}

// WeightedWindow builds an interval from two timestamps and a weight.
func (p Parser) WeightedWindow(from, to string, weight float64) (interval.Interval, error) {
	start, err := p.Time(from)
	if err != nil {
		return interval.Interval{}, err
	}

	end, err := p.Time(to)
	if err != nil {
		return interval.Interval{}, err
	}

	iv, err := interval.New(start, end, weight)
	if err != nil {
		return interval.Interval{}, fmt.Errorf("window %s..%s: %w", from, to, err)
	}

	return iv, nil
}

// ParseValue parses a finite interval weight.
func ParseValue(raw string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, raw)
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: %q is not finite", ErrInvalidValue, raw)
	}

	return value, nil
}
