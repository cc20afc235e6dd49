// Package feed fetches the raw drop-event document and normalizes it into
// the canonical event model before the engine ever sees it.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/mbraun/dropdash/internal/models"
)

var ErrBadStatus = errors.New("feed returned non-success status")

// Snapshot is one fetched feed document after normalization: events sorted
// ascending by timestamp, the feed's stated refresh instant (nil when absent
// or unparseable), and its stated item count.
type Snapshot struct {
	Events     []models.Event
	UpdatedAt  *time.Time
	TotalItems int
}

type document struct {
	Meta struct {
		TotalItems int    `json:"totalItems"`
		UpdatedAt  string `json:"updatedAt"`
	} `json:"meta"`
	History []rawEvent `json:"history"`
}

// rawEvent carries the wire shape, including the legacy "encore" alias for
// the ai count and the optional zero_etv field.
type rawEvent struct {
	T          int64 `json:"t"`
	AI         *int  `json:"ai"`
	Encore     *int  `json:"encore"`
	LastChance *int  `json:"last_chance"`
	ZeroETV    *int  `json:"zero_etv"`
}

type Client struct {
	url    string
	client *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch performs one GET of the feed document. There is no retry here; the
// poller's fixed interval drives retries.
func (c *Client) Fetch(ctx context.Context) (*Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return Parse(body)
}

// Parse decodes and normalizes a feed document.
func Parse(body []byte) (*Snapshot, error) {
	var doc document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse feed document: %w", err)
	}

	snap := &Snapshot{
		Events:     make([]models.Event, 0, len(doc.History)),
		TotalItems: doc.Meta.TotalItems,
	}
	for _, raw := range doc.History {
		snap.Events = append(snap.Events, normalize(raw))
	}
	sort.Slice(snap.Events, func(i, j int) bool {
		return snap.Events[i].T < snap.Events[j].T
	})

	if doc.Meta.UpdatedAt != "" {
		t, err := time.Parse(time.RFC3339, doc.Meta.UpdatedAt)
		if err != nil {
			slog.Debug("Unparseable updatedAt in feed", "value", doc.Meta.UpdatedAt, "error", err)
		} else {
			snap.UpdatedAt = &t
		}
	}

	return snap, nil
}

// normalize resolves the alias chain ai -> encore -> 0 and defaults the other
// counts, so downstream code never deals with optional fields.
func normalize(raw rawEvent) models.Event {
	e := models.Event{T: raw.T}
	switch {
	case raw.AI != nil:
		e.AI = *raw.AI
	case raw.Encore != nil:
		e.AI = *raw.Encore
	}
	if raw.LastChance != nil {
		e.LastChance = *raw.LastChance
	}
	if raw.ZeroETV != nil {
		e.ZeroETV = *raw.ZeroETV
	}
	return e
}
