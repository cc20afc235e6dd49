package engine

import (
	"math"

	"github.com/mbraun/dropdash/internal/localtime"
	"github.com/mbraun/dropdash/internal/models"
)

// heatMapHorizonMs is the trailing window of events the heat map samples.
const heatMapHorizonMs = 365 * localtime.DayMs

// ComputeHeatMap builds the daily-total map and the 7x24 median/mean
// matrices from the trailing year of history. Each weekday-hour cell is
// sampled once per calendar week in the surviving span; weeks with no events
// in a cell still count as zero samples for the median, so quiet weeks pull
// it down instead of being ignored.
func ComputeHeatMap(history []models.Event, filter models.Filter, now int64) models.HeatMap {
	cutoff := now - heatMapHorizonMs
	start := 0
	for start < len(history) && history[start].T <= cutoff {
		start++
	}
	survivors := history[start:]

	hm := models.HeatMap{
		Weekly:          make(map[string]int),
		MaxDaily:        1,
		MaxHourlyMedian: 1,
		MaxHourlyMean:   1,
	}
	if len(survivors) == 0 {
		return hm
	}

	first := survivors[0].T
	last := survivors[len(survivors)-1].T
	segs := localtime.BuildSegments(first-localtime.DayMs, last+localtime.DayMs)

	minWeek := localtime.WeekKey(first + localtime.OffsetAt(first, segs))
	maxWeek := localtime.WeekKey(last + localtime.OffsetAt(last, segs))
	weekCount := int(maxWeek - minWeek + 1)
	if weekCount < 1 {
		weekCount = 1
	}

	var hourlySum [7][24]int
	var weekSums [7][24][]int

	cur := localtime.NewCursor(segs)
	for _, e := range survivors {
		contrib := filter.Contribution(e)
		local := e.T + cur.OffsetFor(e.T)
		wd := localtime.WeekdayIndex(local)
		hour := int((local - localtime.DayStart(local)) / localtime.HourMs)

		hm.Weekly[localtime.DateKey(local)] += contrib
		hourlySum[wd][hour] += contrib

		if weekSums[wd][hour] == nil {
			weekSums[wd][hour] = make([]int, weekCount)
		}
		wi := int(localtime.WeekKey(local) - minWeek)
		if wi < 0 {
			wi = 0
		} else if wi >= weekCount {
			wi = weekCount - 1
		}
		weekSums[wd][hour][wi] += contrib
	}

	for wd := 0; wd < 7; wd++ {
		for hour := 0; hour < 24; hour++ {
			mean := round1(float64(hourlySum[wd][hour]) / float64(weekCount))
			hm.HourlyMean[wd][hour] = mean
			if mean > hm.MaxHourlyMean {
				hm.MaxHourlyMean = mean
			}

			samples := weekSums[wd][hour]
			if samples == nil {
				continue
			}
			median := round1(Median(samples))
			hm.HourlyMedian[wd][hour] = median
			if median > hm.MaxHourlyMedian {
				hm.MaxHourlyMedian = median
			}
		}
	}
	for _, total := range hm.Weekly {
		if total > hm.MaxDaily {
			hm.MaxDaily = total
		}
	}
	return hm
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
