package poller

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mbraun/dropdash/internal/feed"
	"github.com/mbraun/dropdash/internal/models"
	"github.com/mbraun/dropdash/internal/store"
)

func testFeedServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPoller_RefreshUpdatesStateAndStore(t *testing.T) {
	srv := testFeedServer(t, `{"meta": {"totalItems": 2}, "history": [{"t": 2000, "ai": 3}, {"t": 1000, "encore": 1}]}`)

	st, err := store.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	refreshed := make(chan State, 1)
	p := New(feed.NewClient(srv.URL), st, time.Hour, func(s State) {
		refreshed <- s
	})

	p.Start()
	t.Cleanup(p.Stop)

	select {
	case state := <-refreshed:
		if len(state.Events) != 2 || state.TotalItems != 2 {
			t.Errorf("state = %+v", state)
		}
		if state.Events[0].T != 1000 {
			t.Errorf("events not sorted: %+v", state.Events)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("refresh callback never fired")
	}

	events, _, _, err := st.LoadSnapshot()
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Errorf("persisted events = %d, want 2", len(events))
	}
}

func TestPoller_FetchFailureKeepsState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	p := New(feed.NewClient(srv.URL), nil, time.Hour, nil)
	p.Start()
	t.Cleanup(p.Stop)

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if p.State().LastError != "" {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("LastError was never set")
}

func TestPoller_RestoresFromStore(t *testing.T) {
	st, err := store.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	if err := st.SaveSnapshot([]models.Event{{T: 1000, AI: 4}}, nil, 1); err != nil {
		t.Fatal(err)
	}

	p := New(nil, st, time.Hour, nil)
	p.restore()

	state := p.State()
	if len(state.Events) != 1 || state.Events[0].AI != 4 {
		t.Errorf("restored state = %+v", state)
	}
}
