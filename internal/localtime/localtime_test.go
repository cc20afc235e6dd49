package localtime

import (
	"testing"
	"time"
)

func utcMs(year int, month time.Month, day, hour, min int) int64 {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC).UnixMilli()
}

// --------------- OffsetMs / CivilOf ---------------

func TestOffsetMs_Winter(t *testing.T) {
	// Mid-January is PST, UTC-8.
	ts := utcMs(2026, time.January, 15, 12, 0)
	if got := OffsetMs(ts); got != -8*HourMs {
		t.Errorf("OffsetMs = %d, want %d", got, -8*HourMs)
	}
}

func TestOffsetMs_Summer(t *testing.T) {
	// Mid-June is PDT, UTC-7.
	ts := utcMs(2026, time.June, 15, 12, 0)
	if got := OffsetMs(ts); got != -7*HourMs {
		t.Errorf("OffsetMs = %d, want %d", got, -7*HourMs)
	}
}

func TestCivilOf(t *testing.T) {
	// 2026-01-15 20:30 UTC is 12:30 local on the same day.
	ts := utcMs(2026, time.January, 15, 20, 30)
	c := CivilOf(ts)
	if c.Year != 2026 || c.Month != time.January || c.Day != 15 {
		t.Errorf("date = %d-%d-%d", c.Year, c.Month, c.Day)
	}
	if c.Hour != 12 || c.Minute != 30 {
		t.Errorf("clock = %d:%d", c.Hour, c.Minute)
	}
	if c.Weekday != time.Thursday {
		t.Errorf("weekday = %v", c.Weekday)
	}
}

// --------------- BuildSegments ---------------

func TestBuildSegments_SingleOffset(t *testing.T) {
	a := utcMs(2026, time.January, 10, 0, 0)
	b := utcMs(2026, time.January, 20, 0, 0)
	segs := BuildSegments(a, b)
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	if segs[0].Start != a || segs[0].End != b+1 {
		t.Errorf("segment = [%d, %d), want [%d, %d)", segs[0].Start, segs[0].End, a, b+1)
	}
	if segs[0].Offset != -8*HourMs {
		t.Errorf("offset = %d", segs[0].Offset)
	}
}

func TestBuildSegments_ZeroLengthRange(t *testing.T) {
	a := utcMs(2026, time.January, 10, 0, 0)
	segs := BuildSegments(a, a)
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
}

func TestBuildSegments_InvertedRange(t *testing.T) {
	a := utcMs(2026, time.January, 10, 0, 0)
	b := utcMs(2026, time.January, 20, 0, 0)
	segs := BuildSegments(b, a)
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	if segs[0].Start != a {
		t.Errorf("start = %d, want %d", segs[0].Start, a)
	}
}

func TestBuildSegments_SpringForward(t *testing.T) {
	// US spring-forward 2026: Sunday March 8, 02:00 PST -> 03:00 PDT,
	// i.e. 10:00 UTC.
	a := utcMs(2026, time.March, 7, 0, 0)
	b := utcMs(2026, time.March, 9, 0, 0)
	segs := BuildSegments(a, b)
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	if segs[0].Offset != -8*HourMs || segs[1].Offset != -7*HourMs {
		t.Errorf("offsets = %d, %d", segs[0].Offset, segs[1].Offset)
	}

	transition := utcMs(2026, time.March, 8, 10, 0)
	diff := segs[0].End - transition
	if diff < 0 {
		diff = -diff
	}
	if diff > MinuteMs {
		t.Errorf("transition located at %d, want within 60s of %d", segs[0].End, transition)
	}
}

func TestBuildSegments_Contiguous(t *testing.T) {
	// A full year has two transitions: three contiguous segments.
	a := utcMs(2026, time.January, 1, 0, 0)
	b := utcMs(2026, time.December, 31, 0, 0)
	segs := BuildSegments(a, b)
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segs))
	}
	if segs[0].Start != a || segs[len(segs)-1].End != b+1 {
		t.Error("segments do not cover the requested range")
	}
	for i := 0; i < len(segs)-1; i++ {
		if segs[i].End != segs[i+1].Start {
			t.Errorf("gap between segment %d and %d", i, i+1)
		}
	}
}

// --------------- OffsetAt / Cursor ---------------

func TestOffsetAt_MatchesOffsetMs(t *testing.T) {
	a := utcMs(2026, time.March, 1, 0, 0)
	b := utcMs(2026, time.March, 15, 0, 0)
	segs := BuildSegments(a, b)

	// Sample every 6 hours, skipping instants within a minute of a segment
	// edge (the located transition is only minute-precise).
	for ts := a; ts <= b; ts += 6 * HourMs {
		nearEdge := false
		for _, s := range segs {
			if ts > s.End-MinuteMs && ts < s.End+MinuteMs {
				nearEdge = true
			}
		}
		if nearEdge {
			continue
		}
		if got, want := OffsetAt(ts, segs), OffsetMs(ts); got != want {
			t.Errorf("OffsetAt(%d) = %d, want %d", ts, got, want)
		}
	}
}

func TestCursor_MatchesOffsetAt(t *testing.T) {
	a := utcMs(2026, time.March, 1, 0, 0)
	b := utcMs(2026, time.March, 15, 0, 0)
	segs := BuildSegments(a, b)
	cur := NewCursor(segs)

	for ts := a; ts <= b; ts += HourMs {
		if got, want := cur.OffsetFor(ts), OffsetAt(ts, segs); got != want {
			t.Fatalf("cursor offset at %d = %d, want %d", ts, got, want)
		}
	}
}

// --------------- UTCForLocal ---------------

func TestUTCForLocal_RoundTrip(t *testing.T) {
	a := utcMs(2026, time.March, 1, 0, 0)
	b := utcMs(2026, time.March, 15, 0, 0)
	segs := BuildSegments(a, b)

	for ts := a; ts <= b; ts += 7 * HourMs {
		local := ts + OffsetAt(ts, segs)
		if got := UTCForLocal(local, segs); got != ts {
			// Instants within a minute of the DST transition may resolve to
			// the neighboring segment; everything else must round-trip.
			if diff := got - ts; diff > HourMs || diff < -HourMs {
				t.Errorf("UTCForLocal round-trip: got %d, want %d", got, ts)
			}
		}
	}
}

func TestUTCForLocal_LocalMidnightOnDSTDay(t *testing.T) {
	a := utcMs(2026, time.March, 7, 0, 0)
	b := utcMs(2026, time.March, 10, 0, 0)
	segs := BuildSegments(a, b)

	// Local midnight March 8 is still PST: 08:00 UTC.
	local := time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC).UnixMilli()
	want := utcMs(2026, time.March, 8, 8, 0)
	if got := UTCForLocal(local, segs); got != want {
		t.Errorf("UTCForLocal = %d, want %d", got, want)
	}

	// Local midnight March 9 is PDT: 07:00 UTC.
	local = time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC).UnixMilli()
	want = utcMs(2026, time.March, 9, 7, 0)
	if got := UTCForLocal(local, segs); got != want {
		t.Errorf("UTCForLocal = %d, want %d", got, want)
	}
}

// --------------- Day / week helpers ---------------

func TestWeekdayIndex_EpochDayIsThursday(t *testing.T) {
	if got := WeekdayIndex(0); got != 3 {
		t.Errorf("WeekdayIndex(0) = %d, want 3", got)
	}
}

func TestWeekdayIndex_MondayFirst(t *testing.T) {
	// 2026-01-12 was a Monday; use its local timestamp directly.
	local := time.Date(2026, time.January, 12, 10, 0, 0, 0, time.UTC).UnixMilli()
	if got := WeekdayIndex(local); got != 0 {
		t.Errorf("WeekdayIndex = %d, want 0", got)
	}
	if got := WeekdayIndex(local + 6*DayMs); got != 6 {
		t.Errorf("Sunday index = %d, want 6", got)
	}
}

func TestDayStartAndISOWeekStart(t *testing.T) {
	// Thursday 2026-01-15 13:45 local.
	local := time.Date(2026, time.January, 15, 13, 45, 0, 0, time.UTC).UnixMilli()
	wantDay := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC).UnixMilli()
	if got := DayStart(local); got != wantDay {
		t.Errorf("DayStart = %d, want %d", got, wantDay)
	}
	wantWeek := time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC).UnixMilli()
	if got := ISOWeekStart(local); got != wantWeek {
		t.Errorf("ISOWeekStart = %d, want %d", got, wantWeek)
	}
}

func TestWeekKey_IncrementsOnMonday(t *testing.T) {
	sunday := time.Date(2026, time.January, 11, 23, 0, 0, 0, time.UTC).UnixMilli()
	monday := time.Date(2026, time.January, 12, 1, 0, 0, 0, time.UTC).UnixMilli()
	if WeekKey(monday) != WeekKey(sunday)+1 {
		t.Errorf("WeekKey did not increment across Sunday->Monday")
	}
}

func TestMonthStart(t *testing.T) {
	ts := utcMs(2026, time.March, 20, 12, 0)
	segs := BuildSegments(utcMs(2026, time.February, 25, 0, 0), ts)
	start := MonthStart(ts, segs)
	c := CivilOf(start)
	if c.Month != time.March || c.Day != 1 || c.Hour != 0 || c.Minute != 0 {
		t.Errorf("month start civil fields = %+v", c)
	}
}

func TestDateKey(t *testing.T) {
	local := time.Date(2026, time.May, 18, 10, 0, 0, 0, time.UTC).UnixMilli()
	if got := DateKey(local); got != "2026-05-18" {
		t.Errorf("DateKey = %q", got)
	}
}
