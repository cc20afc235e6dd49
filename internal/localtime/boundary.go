package localtime

import "time"

// A "local timestamp" below is an absolute instant shifted by its offset
// (local = utc + offset), so that local-calendar arithmetic becomes plain
// integer arithmetic on milliseconds.

// UTCForLocal maps a local timestamp back to the absolute instant it reads
// from. It finds the segment whose offset, when subtracted, lands inside that
// segment's own interval. Local readings skipped or repeated by a DST
// transition resolve to the nearest segment's interpretation.
func UTCForLocal(localTs int64, segs []Segment) int64 {
	for _, s := range segs {
		utc := localTs - s.Offset
		if utc >= s.Start && utc < s.End {
			return utc
		}
	}
	if localTs-segs[0].Offset < segs[0].Start {
		return localTs - segs[0].Offset
	}
	return localTs - segs[len(segs)-1].Offset
}

// DayStart truncates a local timestamp to its local midnight.
func DayStart(localTs int64) int64 {
	return localTs - floorMod(localTs, DayMs)
}

// DayKey returns the local calendar-day index (days since the epoch day).
func DayKey(localTs int64) int64 {
	return floorDiv(localTs, DayMs)
}

// WeekdayIndex returns the Monday-first weekday (Monday=0 .. Sunday=6) of the
// local day containing localTs. The epoch day, 1970-01-01, was a Thursday,
// hence the +3. Every weekday index in this codebase is Monday-first.
func WeekdayIndex(localTs int64) int {
	return int(floorMod(DayKey(localTs)+3, 7))
}

// ISOWeekStart truncates a local timestamp to the local midnight of its
// Monday.
func ISOWeekStart(localTs int64) int64 {
	return DayStart(localTs) - int64(WeekdayIndex(localTs))*DayMs
}

// WeekKey returns the Monday-aligned week index of the local day.
func WeekKey(localTs int64) int64 {
	return floorDiv(DayKey(localTs)+3, 7)
}

// MonthStart returns the absolute instant of the local month start containing
// ts (civil fields truncated to day 1, hour 0).
func MonthStart(ts int64, segs []Segment) int64 {
	c := CivilOf(ts)
	local := time.Date(c.Year, c.Month, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	return UTCForLocal(local, segs)
}

// DateKey formats the local day containing localTs as YYYY-MM-DD. The local
// timestamp already carries the zone shift, so plain UTC formatting of it
// yields the civil date without another zone lookup.
func DateKey(localTs int64) string {
	return time.UnixMilli(DayKey(localTs) * DayMs).UTC().Format("2006-01-02")
}
