package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"arcadechess/internal/game"
	"arcadechess/internal/rules"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp
}

func TestHandleLegal(t *testing.T) {
	h := NewHandler(game.NewHub(nil))

	w := httptest.NewRecorder()
	h.HandleLegal(w, httptest.NewRequest("GET", "/legal/g1?sq=e2", nil))
	resp := decode(t, w)
	var got []string
	for _, m := range resp["moves"].([]any) {
		got = append(got, m.(string))
	}
	slices.Sort(got)
	if !slices.Equal(got, []string{"e3", "e4"}) {
		t.Fatalf("unexpected moves %v", got)
	}

	w = httptest.NewRecorder()
	h.HandleLegal(w, httptest.NewRequest("GET", "/legal/g1?sq=k9", nil))
	if w.Code != 400 {
		t.Fatalf("expected 400 for bad square, got %d", w.Code)
	}
}

func TestHandleStateRoundTrip(t *testing.T) {
	hub := game.NewHub(nil)
	h := NewHandler(hub)
	hub.Get("g1", "owner")

	const state = "4k3/8/8/8/8/8/8/R3K3 b"
	w := httptest.NewRecorder()
	h.HandleState(w, httptest.NewRequest("POST", "/state/g1", strings.NewReader(`{"state":"`+state+`","clientId":"owner"}`)))
	if resp := decode(t, w); !resp["ok"].(bool) {
		t.Fatalf("import failed: %v", resp["error"])
	}

	w = httptest.NewRecorder()
	h.HandleState(w, httptest.NewRequest("GET", "/state/g1", nil))
	if resp := decode(t, w); resp["state"] != state {
		t.Fatalf("expected %q, got %v", state, resp["state"])
	}
}

func TestHandleStateRejects(t *testing.T) {
	hub := game.NewHub(nil)
	h := NewHandler(hub)
	hub.Get("g1", "owner")

	w := httptest.NewRecorder()
	h.HandleState(w, httptest.NewRequest("POST", "/state/g1", strings.NewReader(`{"state":"8/8 w","clientId":"owner"}`)))
	if w.Code != 400 {
		t.Fatalf("expected 400 for malformed state, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.HandleState(w, httptest.NewRequest("POST", "/state/g1", strings.NewReader(`{"state":"`+rules.StartState+`","clientId":"intruder"}`)))
	if resp := decode(t, w); resp["ok"].(bool) {
		t.Fatalf("expected non-owner import to be refused")
	}

	w = httptest.NewRecorder()
	h.HandleState(w, httptest.NewRequest("DELETE", "/state/g1", nil))
	if w.Code != 405 {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}

func TestHandleReset(t *testing.T) {
	hub := game.NewHub(nil)
	h := NewHandler(hub)
	g, _ := hub.Get("g1", "")
	if _, err := g.MakeMove("e2e4"); err != nil {
		t.Fatalf("move: %v", err)
	}

	w := httptest.NewRecorder()
	h.HandleReset(w, httptest.NewRequest("POST", "/reset/g1", nil))
	if resp := decode(t, w); !resp["ok"].(bool) {
		t.Fatalf("expected reset to succeed")
	}
	if g.Export() != rules.StartState {
		t.Fatalf("expected start position after reset")
	}
}

func TestHandleResetNotOwner(t *testing.T) {
	hub := game.NewHub(nil)
	h := NewHandler(hub)
	g, _ := hub.Get("g1", "owner")
	if _, err := g.MakeMove("e2e4"); err != nil {
		t.Fatalf("move: %v", err)
	}
	before := g.Export()

	for _, body := range []string{`{"clientId":"intruder"}`, ``} {
		w := httptest.NewRecorder()
		h.HandleReset(w, httptest.NewRequest("POST", "/reset/g1", strings.NewReader(body)))
		resp := decode(t, w)
		if resp["ok"].(bool) {
			t.Fatalf("expected reset with body %q to be refused", body)
		}
		if resp["error"] != game.ErrNotOwner.Error() {
			t.Fatalf("unexpected error %v", resp["error"])
		}
		if g.Export() != before {
			t.Fatalf("refused reset changed the board")
		}
	}

	w := httptest.NewRecorder()
	h.HandleReset(w, httptest.NewRequest("POST", "/reset/g1", strings.NewReader(`{"clientId":"owner"}`)))
	if resp := decode(t, w); !resp["ok"].(bool) {
		t.Fatalf("expected owner reset to succeed: %v", resp["error"])
	}
	if g.Export() != rules.StartState {
		t.Fatalf("expected start position after owner reset")
	}

	w = httptest.NewRecorder()
	h.HandleReset(w, httptest.NewRequest("POST", "/reset/g1", strings.NewReader(`{`)))
	if w.Code != 400 {
		t.Fatalf("expected 400 for bad json, got %d", w.Code)
	}
}

func TestHandleReact(t *testing.T) {
	h := NewHandler(game.NewHub(nil))

	w := httptest.NewRecorder()
	h.HandleReact(w, httptest.NewRequest("POST", "/react/g1", strings.NewReader(`{"emoji":"🔥","sender":"s1"}`)))
	if resp := decode(t, w); !resp["ok"].(bool) {
		t.Fatalf("expected reaction to pass: %v", resp["error"])
	}

	w = httptest.NewRecorder()
	h.HandleReact(w, httptest.NewRequest("POST", "/react/g1", strings.NewReader(`{"emoji":"🔥","sender":"s1"}`)))
	if resp := decode(t, w); resp["ok"].(bool) {
		t.Fatalf("expected cooldown")
	}
}

func TestHandleStatsWithoutStore(t *testing.T) {
	h := NewHandler(game.NewHub(nil))
	w := httptest.NewRecorder()
	h.HandleStats(w, httptest.NewRequest("GET", "/stats", nil))
	if resp := decode(t, w); !resp["ok"].(bool) {
		t.Fatalf("expected zero stats without a store")
	}
}

func TestHandlePage(t *testing.T) {
	h := NewHandler(game.NewHub(nil))

	w := httptest.NewRecorder()
	h.HandlePage(w, httptest.NewRequest("GET", "/", nil))
	if w.Code != 200 || !strings.Contains(w.Body.String(), "/new") {
		t.Fatalf("unexpected home page %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.HandlePage(w, httptest.NewRequest("GET", "/abc123", nil))
	if !strings.Contains(w.Body.String(), `"abc123"`) {
		t.Fatalf("expected game id in page")
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2")
	if got := ClientIP(req); got != "10.0.0.1" {
		t.Fatalf("expected first forwarded address, got %s", got)
	}
	req = httptest.NewRequest("GET", "/", nil)
	if got := ClientIP(req); got != "192.0.2.1" {
		t.Fatalf("expected remote addr host, got %s", got)
	}
}
