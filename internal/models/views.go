package models

import "time"

// ChartPoint is one chart bucket: its absolute start instant, the summed
// category counts, and display strings derived from the bucket's civil fields.
type ChartPoint struct {
	Date       int64  `json:"date"`
	AI         int    `json:"ai"`
	LastChance int    `json:"lastChance"`
	ZeroETV    int    `json:"zeroEtv"`
	Total      int    `json:"total"`
	Label      string `json:"label"`
	FullDate   string `json:"fullDate"`
}

// DashboardStats is the rolling summary card data. Growth values are
// percentages relative to the historical medians; UpdatedAt is the feed's own
// stated refresh instant, nil when no events exist.
type DashboardStats struct {
	LastHour    int        `json:"lastHour"`
	Today       int        `json:"today"`
	TodayGrowth int        `json:"todayGrowth"`
	TodayMedian int        `json:"todayMedian"`
	ThisWeek    int        `json:"thisWeek"`
	WeekGrowth  int        `json:"weekGrowth"`
	WeekMedian  int        `json:"weekMedian"`
	UpdatedAt   *time.Time `json:"updatedAt"`
}

// HeatMap holds the weekly daily-total map (keyed YYYY-MM-DD) and the two
// 7x24 weekday-hour matrices (rows Monday=0..Sunday=6, columns hour 0..23).
// The maxima are floored at 1 so consumers can divide by them directly.
type HeatMap struct {
	Weekly          map[string]int  `json:"weekly"`
	HourlyMedian    [7][24]float64  `json:"hourlyMedian"`
	HourlyMean      [7][24]float64  `json:"hourlyMean"`
	MaxDaily        int             `json:"maxDaily"`
	MaxHourlyMedian float64         `json:"maxHourlyMedian"`
	MaxHourlyMean   float64         `json:"maxHourlyMean"`
}
