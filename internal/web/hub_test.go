package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialTestHub(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.HandleWS)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHub_BroadcastReachesClient(t *testing.T) {
	h := NewHub()
	conn := dialTestHub(t, h)

	// The server registers the client during the upgrade handler; give the
	// handler a moment to finish before broadcasting.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		h.mu.Lock()
		n := len(h.clients)
		h.mu.Unlock()
		if n == 1 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	h.Broadcast("refreshed", map[string]int{"events": 7})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var payload struct {
		Event string `json:"event"`
		Data  struct {
			Events int `json:"events"`
		} `json:"data"`
	}
	if err := json.Unmarshal(msg, &payload); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if payload.Event != "refreshed" || payload.Data.Events != 7 {
		t.Errorf("payload = %+v", payload)
	}
}

func TestHub_RemovesClosedClients(t *testing.T) {
	h := NewHub()
	conn := dialTestHub(t, h)
	conn.Close()

	// Broadcasting to a closed connection should drop it from the set.
	h.Broadcast("refreshed", nil)
	h.Broadcast("refreshed", nil)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		h.mu.Lock()
		n := len(h.clients)
		h.mu.Unlock()
		if n == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Error("closed client was not removed")
}
