package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mbraun/dropdash/internal/models"
)

// Manager fires a growth alert when today's activity exceeds the historical
// median by the configured percentage, at most once per local day.
type Manager struct {
	provider  Provider
	threshold int

	lastAlertDay string
	mu           sync.Mutex
}

func NewManager(provider Provider, growthThreshold int) *Manager {
	return &Manager{
		provider:  provider,
		threshold: growthThreshold,
	}
}

func (m *Manager) Connect(ctx context.Context) error {
	if m.provider == nil || !m.provider.IsConfigured() {
		return fmt.Errorf("no configured notification provider")
	}
	return m.provider.Connect(ctx)
}

func (m *Manager) Disconnect() {
	if m.provider == nil {
		return
	}
	if err := m.provider.Disconnect(); err != nil {
		slog.Warn("Failed to disconnect notification provider", "provider", m.provider.Name(), "error", err)
	}
}

// CheckGrowth inspects a freshly computed stats snapshot. dateKey is the
// current local date (YYYY-MM-DD) and dedups alerts within one day.
func (m *Manager) CheckGrowth(ctx context.Context, stats models.DashboardStats, dateKey string) {
	if m.provider == nil {
		return
	}
	if stats.TodayMedian == 0 || stats.TodayGrowth < m.threshold {
		return
	}

	m.mu.Lock()
	if m.lastAlertDay == dateKey {
		m.mu.Unlock()
		return
	}
	m.lastAlertDay = dateKey
	m.mu.Unlock()

	n := Notification{
		Type:  NotificationTypeGrowth,
		Title: "Drop activity spike",
		Message: fmt.Sprintf("Today is at %d drops, %+d%% vs the daily median of %d.",
			stats.Today, stats.TodayGrowth, stats.TodayMedian),
		Color: ColorGrowth,
	}
	if err := m.provider.Send(ctx, n); err != nil {
		slog.Error("Failed to send growth alert", "provider", m.provider.Name(), "error", err)
	}
}
