package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"arcadechess/internal/game"
	"arcadechess/internal/rules"
)

func TestHandleRelease(t *testing.T) {
	hub := game.NewHub(nil)
	h := NewHandler(hub)
	g, _ := hub.Get("g1", "owner")
	g.Clients["other"] = rules.Black

	req := httptest.NewRequest("POST", "/release/g1", strings.NewReader(`{"clientId":"owner","targetId":"other"}`))
	w := httptest.NewRecorder()
	h.HandleRelease(w, req)

	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp["ok"].(bool) {
		t.Fatalf("expected ok true")
	}
	if g.ColorOf("other") != nil {
		t.Fatalf("expected client to be removed")
	}
}

func TestHandleReleaseNotOwner(t *testing.T) {
	hub := game.NewHub(nil)
	h := NewHandler(hub)
	g, _ := hub.Get("g2", "owner")
	g.Clients["other"] = rules.Black

	req := httptest.NewRequest("POST", "/release/g2", strings.NewReader(`{"clientId":"notowner","targetId":"other"}`))
	w := httptest.NewRecorder()
	h.HandleRelease(w, req)

	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["ok"].(bool) {
		t.Fatalf("expected ok false")
	}
	if g.ColorOf("other") == nil {
		t.Fatalf("client should still be present")
	}
}
