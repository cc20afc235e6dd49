package localtime

// Segment is a half-open absolute-time interval [Start, End) during which the
// offset from UTC is constant. Segments returned by BuildSegments are ordered
// and contiguous, and their union covers the requested range.
type Segment struct {
	Start  int64
	End    int64
	Offset int64
}

// BuildSegments partitions [a, b] (order-independent) into maximal
// constant-offset segments, covering [min, max+1] so the final instant sits
// inside a half-open interval. The offset is sampled once per 24-hour window;
// a change inside a window is pinned down by binary search to a one-minute
// window. A range with no transition yields exactly one segment.
func BuildSegments(a, b int64) []Segment {
	start, end := a, b
	if end < start {
		start, end = end, start
	}
	limit := end + 1

	var segs []Segment
	segStart := start
	curOffset := OffsetMs(start)

	cursor := start
	for cursor < limit {
		next := cursor + DayMs
		if next > limit {
			next = limit
		}
		if off := OffsetMs(next); off != curOffset {
			transition := findOffsetTransition(cursor, next, curOffset)
			segs = append(segs, Segment{Start: segStart, End: transition, Offset: curOffset})
			segStart = transition
			curOffset = off
		}
		cursor = next
	}

	return append(segs, Segment{Start: segStart, End: limit, Offset: curOffset})
}

// findOffsetTransition narrows [lo, hi] to at most one minute and returns its
// upper bound. Invariant: the offset equals oldOffset for every instant before
// the transition and differs at and after it; DST rules change on whole
// minutes, so minute precision is exact in practice.
func findOffsetTransition(lo, hi, oldOffset int64) int64 {
	for hi-lo > MinuteMs {
		mid := lo + (hi-lo)/2
		if OffsetMs(mid) == oldOffset {
			lo = mid
		} else {
			hi = mid
		}
	}
	return hi
}

// OffsetAt returns the offset of the segment containing ts. Reverse linear
// scan; segment lists hold at most a couple of entries per year in range.
func OffsetAt(ts int64, segs []Segment) int64 {
	for i := len(segs) - 1; i >= 0; i-- {
		if ts >= segs[i].Start {
			return segs[i].Offset
		}
	}
	return segs[0].Offset
}

// Cursor looks up offsets for a monotonically non-decreasing sequence of
// instants in amortized constant time. The caller owns the cursor and must
// feed it timestamps in ascending order.
type Cursor struct {
	segs []Segment
	i    int
}

func NewCursor(segs []Segment) *Cursor {
	return &Cursor{segs: segs}
}

// OffsetFor advances past segments that end at or before ts and returns the
// offset of the segment containing it.
func (c *Cursor) OffsetFor(ts int64) int64 {
	for c.i+1 < len(c.segs) && ts >= c.segs[c.i+1].Start {
		c.i++
	}
	return c.segs[c.i].Offset
}
