// Package localtime converts between absolute instants (epoch milliseconds)
// and civil time in the dashboard's fixed zone. The only timezone-aware call
// in the whole package is the projection of an instant into civil fields;
// offsets, DST transition instants and day/week boundaries are all derived
// arithmetically from that single primitive.
package localtime

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

// ZoneName is the fixed civil timezone for all dashboard views.
const ZoneName = "America/Los_Angeles"

const (
	MinuteMs = int64(60 * 1000)
	HourMs   = 60 * MinuteMs
	DayMs    = 24 * HourMs
	WeekMs   = 7 * DayMs
)

var location = mustLoadLocation()

func mustLoadLocation() *time.Location {
	loc, err := time.LoadLocation(ZoneName)
	if err != nil {
		panic(fmt.Sprintf("localtime: load %s: %v", ZoneName, err))
	}
	return loc
}

// Civil holds the local calendar/clock reading of an instant.
type Civil struct {
	Year    int
	Month   time.Month
	Day     int
	Hour    int
	Minute  int
	Second  int
	Weekday time.Weekday
}

// CivilOf projects an absolute instant into civil fields.
func CivilOf(ts int64) Civil {
	t := time.UnixMilli(ts).In(location)
	year, month, day := t.Date()
	hour, min, sec := t.Clock()
	return Civil{
		Year:    year,
		Month:   month,
		Day:     day,
		Hour:    hour,
		Minute:  min,
		Second:  sec,
		Weekday: t.Weekday(),
	}
}

// OffsetMs returns the civil-minus-UTC offset in milliseconds at ts. The
// civil fields are reinterpreted as UTC fields; the difference between that
// fake-UTC instant and the real one is, by definition, the offset.
func OffsetMs(ts int64) int64 {
	c := CivilOf(ts)
	fake := time.Date(c.Year, c.Month, c.Day, c.Hour, c.Minute, c.Second, 0, time.UTC).UnixMilli()
	return fake - (ts - floorMod(ts, 1000))
}

// Format renders an instant in the fixed zone using a time layout string.
// Presentation helper for labels; the aggregation paths never call it.
func Format(ts int64, layout string) string {
	return time.UnixMilli(ts).In(location).Format(layout)
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// floorMod returns the non-negative remainder of a/b for positive b.
func floorMod(a, b int64) int64 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
