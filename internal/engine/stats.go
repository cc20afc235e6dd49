package engine

import (
	"math"
	"sort"
	"time"

	"github.com/mbraun/dropdash/internal/localtime"
	"github.com/mbraun/dropdash/internal/models"
)

// ComputeStats produces the rolling summary: last-hour / today / this-week
// totals plus growth percentages against the historical per-day and per-week
// medians. Empty history yields all zeros with a nil UpdatedAt.
func ComputeStats(history []models.Event, updatedAt *time.Time, now int64) models.DashboardStats {
	if len(history) == 0 {
		return models.DashboardStats{}
	}

	// A week of margin on both sides guarantees today's and this week's
	// boundaries resolve even when all events are far from "now".
	lo := history[0].T
	if now < lo {
		lo = now
	}
	hi := history[len(history)-1].T
	if now > hi {
		hi = now
	}
	segs := localtime.BuildSegments(lo-localtime.WeekMs, hi+localtime.WeekMs)

	localNow := now + localtime.OffsetAt(now, segs)
	todayStartLocal := localtime.DayStart(localNow)
	weekStartLocal := localtime.ISOWeekStart(localNow)
	todayStartAbs := localtime.UTCForLocal(todayStartLocal, segs)
	weekStartAbs := localtime.UTCForLocal(weekStartLocal, segs)
	todayKey := localtime.DayKey(localNow)
	weekKey := localtime.WeekKey(localNow)

	stats := models.DashboardStats{UpdatedAt: updatedAt}
	dailyTotals := make(map[int64]int)
	weeklyTotals := make(map[int64]int)

	cur := localtime.NewCursor(segs)
	for _, e := range history {
		total := e.AI + e.LastChance
		if e.T > now-localtime.HourMs {
			stats.LastHour += total
		}
		if e.T >= todayStartAbs {
			stats.Today += total
		}
		if e.T >= weekStartAbs {
			stats.ThisWeek += total
		}

		local := e.T + cur.OffsetFor(e.T)
		if dk := localtime.DayKey(local); dk < todayKey {
			dailyTotals[dk] += total
		}
		if wk := localtime.WeekKey(local); wk < weekKey {
			weeklyTotals[wk] += total
		}
	}

	stats.TodayMedian = int(math.Round(medianOfMap(dailyTotals)))
	stats.TodayGrowth = growthPercent(stats.Today, stats.TodayMedian)
	stats.WeekMedian = int(math.Round(medianOfMap(weeklyTotals)))
	stats.WeekGrowth = growthPercent(stats.ThisWeek, stats.WeekMedian)
	return stats
}

// growthPercent is the change of current against the historical median,
// pinned to 100 when no history exists yet.
func growthPercent(current, median int) int {
	if median == 0 {
		return 100
	}
	return int(math.Round(float64(current-median) / float64(median) * 100))
}

// Median returns the middle of the sorted values, the mean of the central
// pair for even lengths, and 0 for an empty slice.
func Median(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return float64(sorted[mid-1]+sorted[mid]) / 2
}

func medianOfMap(m map[int64]int) float64 {
	values := make([]int, 0, len(m))
	for _, v := range m {
		values = append(values, v)
	}
	return Median(values)
}
