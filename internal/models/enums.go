package models

import "fmt"

// Granularity selects the chart bucket size.
type Granularity string

const (
	Granularity15m Granularity = "15m"
	Granularity1h  Granularity = "1h"
	Granularity1d  Granularity = "1d"
)

// IntervalMs returns the fixed bucket width in milliseconds, or 0 for the
// local-calendar-day granularity whose buckets are not a fixed width.
func (g Granularity) IntervalMs() int64 {
	switch g {
	case Granularity15m:
		return 15 * 60 * 1000
	case Granularity1h:
		return 60 * 60 * 1000
	default:
		return 0
	}
}

// ParseGranularity validates a granularity query value, defaulting to 1h when
// empty.
func ParseGranularity(s string) (Granularity, error) {
	switch s {
	case "":
		return Granularity1h, nil
	case string(Granularity15m), string(Granularity1h), string(Granularity1d):
		return Granularity(s), nil
	}
	return "", fmt.Errorf("unknown granularity %q", s)
}

// Filter selects which event categories contribute to a view.
type Filter string

const (
	FilterAll     Filter = "all"
	FilterZeroETV Filter = "zeroEtv"
	FilterAFA     Filter = "afa"
)

// Apply zeroes the categories excluded by the filter.
func (f Filter) Apply(e Event) Event {
	switch f {
	case FilterZeroETV:
		e.AI = 0
		e.LastChance = 0
	case FilterAFA:
		e.AI = 0
		e.ZeroETV = 0
	}
	return e
}

// Contribution returns the event's scalar total under the filter, as used by
// the heat-map cells and daily totals.
func (f Filter) Contribution(e Event) int {
	switch f {
	case FilterZeroETV:
		return e.ZeroETV
	case FilterAFA:
		return e.LastChance
	default:
		return e.AI + e.LastChance
	}
}

func ParseFilter(s string) (Filter, error) {
	switch s {
	case "":
		return FilterAll, nil
	case string(FilterAll), string(FilterZeroETV), string(FilterAFA):
		return Filter(s), nil
	}
	return "", fmt.Errorf("unknown filter %q", s)
}

// Timeframe is the consumer-side trailing window applied to the bucketed
// series; the engine itself always buckets the full history.
type Timeframe string

const (
	Timeframe12h Timeframe = "12h"
	Timeframe24h Timeframe = "24h"
	Timeframe7d  Timeframe = "7d"
	Timeframe30d Timeframe = "30d"
	TimeframeAll Timeframe = "all"
)

// WindowMs returns the trailing window in milliseconds, or 0 for "all".
func (t Timeframe) WindowMs() int64 {
	const hour = int64(60 * 60 * 1000)
	switch t {
	case Timeframe12h:
		return 12 * hour
	case Timeframe24h:
		return 24 * hour
	case Timeframe7d:
		return 7 * 24 * hour
	case Timeframe30d:
		return 30 * 24 * hour
	}
	return 0
}

func ParseTimeframe(s string) (Timeframe, error) {
	switch s {
	case "":
		return TimeframeAll, nil
	case string(Timeframe12h), string(Timeframe24h), string(Timeframe7d), string(Timeframe30d), string(TimeframeAll):
		return Timeframe(s), nil
	}
	return "", fmt.Errorf("unknown timeframe %q", s)
}
