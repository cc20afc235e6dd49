package web

import (
	"net/http"
	"time"

	"github.com/mbraun/dropdash/internal/engine"
	"github.com/mbraun/dropdash/internal/models"
	"github.com/mbraun/dropdash/internal/util"
	"github.com/mbraun/dropdash/internal/version"
)

// DashboardData is the template data for the dashboard page. The charts and
// heat map load through the JSON APIs; the page carries the summary cards.
type DashboardData struct {
	RefreshMinutes int
	Version        string
	Today          string
	ThisWeek       string
	LastHour       string
	TodayGrowth    int
	WeekGrowth     int
	EventCount     int
	LastFetch      string
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	state := s.poller.State()
	stats := engine.ComputeStats(state.Events, state.UpdatedAt, time.Now().UnixMilli())

	data := DashboardData{
		RefreshMinutes: s.refreshMinutes,
		Version:        version.Version,
		Today:          util.FormatNumber(stats.Today),
		ThisWeek:       util.FormatNumber(stats.ThisWeek),
		LastHour:       util.FormatNumber(stats.LastHour),
		TodayGrowth:    stats.TodayGrowth,
		WeekGrowth:     stats.WeekGrowth,
		EventCount:     len(state.Events),
		LastFetch:      util.FormatTimeAgo(state.LastFetch.UnixMilli()),
	}
	if state.LastFetch.IsZero() {
		data.LastFetch = "never"
	}

	s.renderPage(w, "dashboard.html", data)
}

func (s *Server) handleAPIStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeNotAllowed(w)
		return
	}

	state := s.poller.State()
	stats := engine.ComputeStats(state.Events, state.UpdatedAt, time.Now().UnixMilli())
	writeJSONOK(w, stats)
}

func (s *Server) handleAPIChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeNotAllowed(w)
		return
	}

	granularity, err := models.ParseGranularity(r.URL.Query().Get("granularity"))
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	filter, err := models.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	timeframe, err := models.ParseTimeframe(r.URL.Query().Get("timeframe"))
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	now := time.Now().UnixMilli()
	state := s.poller.State()
	points := engine.BucketEvents(state.Events, granularity, filter, now)

	// Timeframe windowing is consumer-side: trim the series to the trailing
	// window instead of re-bucketing.
	if window := timeframe.WindowMs(); window > 0 {
		cutoff := now - window
		i := 0
		for i < len(points) && points[i].Date < cutoff {
			i++
		}
		points = points[i:]
	}
	if points == nil {
		points = []models.ChartPoint{}
	}

	writeJSONOK(w, points)
}

func (s *Server) handleAPIHeatMap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeNotAllowed(w)
		return
	}

	filter, err := models.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	state := s.poller.State()
	hm := engine.ComputeHeatMap(state.Events, filter, time.Now().UnixMilli())
	writeJSONOK(w, hm)
}

// StatusInfo reports feed health to the dashboard header.
type StatusInfo struct {
	Events     int    `json:"events"`
	TotalItems int    `json:"totalItems"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
	LastFetch  string `json:"lastFetch,omitempty"`
	LastError  string `json:"lastError,omitempty"`
	Version    string `json:"version"`
}

func (s *Server) handleAPIStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeNotAllowed(w)
		return
	}

	state := s.poller.State()
	info := StatusInfo{
		Events:     len(state.Events),
		TotalItems: state.TotalItems,
		LastError:  state.LastError,
		Version:    version.Version,
	}
	if state.UpdatedAt != nil {
		info.UpdatedAt = state.UpdatedAt.UTC().Format(time.RFC3339)
	}
	if !state.LastFetch.IsZero() {
		info.LastFetch = state.LastFetch.UTC().Format(time.RFC3339)
	}

	writeJSONOK(w, info)
}
