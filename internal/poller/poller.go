// Package poller drives the fixed-interval feed fetch loop: fetch, persist,
// publish the refreshed state to whoever listens (web hub, notifier).
package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mbraun/dropdash/internal/feed"
	"github.com/mbraun/dropdash/internal/models"
	"github.com/mbraun/dropdash/internal/store"
)

// State is the current view of the feed: the full normalized history plus
// fetch bookkeeping. Events are shared read-only; consumers must not mutate.
type State struct {
	Events     []models.Event
	UpdatedAt  *time.Time
	TotalItems int
	LastFetch  time.Time
	LastError  string
}

type Poller struct {
	client   *feed.Client
	store    *store.Store
	interval time.Duration

	onRefresh func(State)

	state    State
	running  bool
	stopChan chan struct{}

	mu sync.RWMutex
}

func New(client *feed.Client, st *store.Store, interval time.Duration, onRefresh func(State)) *Poller {
	return &Poller{
		client:    client,
		store:     st,
		interval:  interval,
		onRefresh: onRefresh,
		stopChan:  make(chan struct{}),
	}
}

// Start restores the persisted snapshot, then begins polling. The first
// fetch happens immediately.
func (p *Poller) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.mu.Unlock()

	p.restore()

	go p.loop()
}

func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.mu.Unlock()

	close(p.stopChan)
}

// State returns the current feed state.
func (p *Poller) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

func (p *Poller) restore() {
	if p.store == nil {
		return
	}
	events, updatedAt, totalItems, err := p.store.LoadSnapshot()
	if err != nil {
		slog.Warn("Failed to restore snapshot from store", "error", err)
		return
	}
	if len(events) == 0 {
		return
	}

	p.mu.Lock()
	p.state.Events = events
	p.state.UpdatedAt = updatedAt
	p.state.TotalItems = totalItems
	p.mu.Unlock()

	slog.Info("Restored snapshot from store", "events", len(events))
}

func (p *Poller) loop() {
	p.refresh()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopChan:
			return
		case <-ticker.C:
			p.refresh()
		}
	}
}

func (p *Poller) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	snap, err := p.client.Fetch(ctx)
	if err != nil {
		slog.Error("Feed fetch failed", "error", err)
		p.mu.Lock()
		p.state.LastError = err.Error()
		p.mu.Unlock()
		return
	}

	if p.store != nil {
		if err := p.store.SaveSnapshot(snap.Events, snap.UpdatedAt, snap.TotalItems); err != nil {
			slog.Warn("Failed to persist snapshot", "error", err)
		}
	}

	p.mu.Lock()
	p.state = State{
		Events:     snap.Events,
		UpdatedAt:  snap.UpdatedAt,
		TotalItems: snap.TotalItems,
		LastFetch:  time.Now(),
	}
	current := p.state
	p.mu.Unlock()

	slog.Debug("Feed refreshed", "events", len(snap.Events), "totalItems", snap.TotalItems)

	if p.onRefresh != nil {
		p.onRefresh(current)
	}
}
