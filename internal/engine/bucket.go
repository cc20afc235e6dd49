// Package engine computes the three derived views the dashboard renders:
// bucketed chart series, rolling summary stats, and weekday-hour heat maps.
// Every entry point is a pure function of its inputs plus an explicit "now"
// instant, and expects history sorted ascending by timestamp.
package engine

import (
	"github.com/mbraun/dropdash/internal/localtime"
	"github.com/mbraun/dropdash/internal/models"
)

// BucketEvents partitions sorted history into contiguous buckets and sums
// each bucket's category counts under the filter. Fixed granularities align
// buckets to absolute multiples of the interval; day granularity uses local
// calendar days. Every bucket between the first event and max(now, last
// event) is emitted, empty ones included.
func BucketEvents(history []models.Event, granularity models.Granularity, filter models.Filter, now int64) []models.ChartPoint {
	if len(history) == 0 {
		return nil
	}
	var points []models.ChartPoint
	if interval := granularity.IntervalMs(); interval > 0 {
		points = bucketFixed(history, interval, filter, now)
	} else {
		points = bucketDays(history, filter, now)
	}
	finalize(points, granularity)
	return points
}

func bucketFixed(history []models.Event, interval int64, filter models.Filter, now int64) []models.ChartPoint {
	end := now
	if last := history[len(history)-1].T; last > end {
		end = last
	}
	cursor := floorDiv(history[0].T, interval) * interval
	lastBucket := floorDiv(end, interval) * interval

	var points []models.ChartPoint
	idx := 0
	for ; cursor <= lastBucket; cursor += interval {
		p := models.ChartPoint{Date: cursor}
		for idx < len(history) && history[idx].T < cursor+interval {
			accumulate(&p, filter.Apply(history[idx]))
			idx++
		}
		p.Total = p.AI + p.LastChance
		points = append(points, p)
	}
	return points
}

func bucketDays(history []models.Event, filter models.Filter, now int64) []models.ChartPoint {
	first := history[0].T
	end := now
	if last := history[len(history)-1].T; last > end {
		end = last
	}

	segs := localtime.BuildSegments(first-localtime.DayMs, end+localtime.DayMs)
	startKey := localtime.DayKey(first + localtime.OffsetAt(first, segs))
	endKey := localtime.DayKey(end + localtime.OffsetAt(end, segs))

	// One inverse mapping per day up front, instead of per emitted bucket.
	points := make([]models.ChartPoint, 0, endKey-startKey+1)
	for key := startKey; key <= endKey; key++ {
		points = append(points, models.ChartPoint{
			Date: localtime.UTCForLocal(key*localtime.DayMs, segs),
		})
	}

	cur := localtime.NewCursor(segs)
	for _, e := range history {
		key := localtime.DayKey(e.T + cur.OffsetFor(e.T))
		if key < startKey || key > endKey {
			continue
		}
		accumulate(&points[key-startKey], filter.Apply(e))
	}
	for i := range points {
		points[i].Total = points[i].AI + points[i].LastChance
	}
	return points
}

func accumulate(p *models.ChartPoint, e models.Event) {
	p.AI += e.AI
	p.LastChance += e.LastChance
	p.ZeroETV += e.ZeroETV
}

// finalize attaches display strings. Day buckets show month+day, hour buckets
// month+day plus clock time, sub-hour buckets clock time only.
func finalize(points []models.ChartPoint, granularity models.Granularity) {
	var layout string
	switch granularity {
	case models.Granularity1d:
		layout = "Jan 2"
	case models.Granularity1h:
		layout = "Jan 2 15:04"
	default:
		layout = "15:04"
	}
	for i := range points {
		points[i].Label = localtime.Format(points[i].Date, layout)
		points[i].FullDate = localtime.Format(points[i].Date, "Mon Jan 2 2006 15:04")
	}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
