package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"arcadechess/internal/game"
	"arcadechess/internal/logging"
	"arcadechess/internal/rules"
	"arcadechess/internal/storage"
	"arcadechess/internal/templates"
	"arcadechess/pkg/utils"

	"github.com/google/uuid"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	Hub   *game.Hub
	Store *storage.Store
}

// NewHandler creates a new handler instance
func NewHandler(hub *game.Hub) *Handler {
	return &Handler{Hub: hub, Store: hub.Store}
}

// HandleNew creates a new game and redirects to it
func (h *Handler) HandleNew(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	http.Redirect(w, r, "/"+id, http.StatusFound)
}

// HandlePage serves the home page or game page
func (h *Handler) HandlePage(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/")
	if path == "" || path == "index.html" {
		templates.WriteHomeHTML(w)
		return
	}
	if strings.Contains(path, "/") {
		http.NotFound(w, r)
		return
	}
	_, _ = h.Hub.Get(path, "")
	templates.WriteGameHTML(w, path)
}

// HandleSSE handles Server-Sent Events for real-time game updates
func (h *Handler) HandleSSE(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/sse/")
	clientID := strings.TrimSpace(r.URL.Query().Get("clientId"))
	if clientID == "" {
		clientID = utils.NewClientID()
	}
	g, _ := h.Hub.Get(id, clientID)

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan []byte, 16)
	g.AddWatcher(ch)

	g.Mu.Lock()
	initial, _ := json.Marshal(g.ClientStateLocked(clientID))
	g.Mu.Unlock()

	_, _ = fmt.Fprintf(w, "data: %s\n\n", initial)
	flusher.Flush()

	h.Hub.Seen(r.Context(), g)
	go g.Broadcast()

	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	defer g.RemoveWatcher(ch)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// heartbeat
			_, _ = w.Write([]byte("data: {}\n\n"))
			flusher.Flush()
		case msg := <-ch:
			_, _ = w.Write([]byte("data: "))
			_, _ = w.Write(msg)
			_, _ = w.Write([]byte("\n\n"))
			flusher.Flush()
		}
	}
}

// HandleMove processes a chess move
func (h *Handler) HandleMove(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/move/")
	g, _ := h.Hub.Get(id, "")

	var m game.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "bad json"})
		return
	}

	clientID := strings.TrimSpace(m.ClientID)
	if clientID == "" {
		WriteJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "missing client id"})
		return
	}

	uci, err := appendPromotion(strings.ToLower(strings.TrimSpace(m.UCI)), m.Promotion)
	if err != nil {
		WriteJSON(w, http.StatusOK, map[string]any{"ok": false, "error": err.Error(), "state": currentState(g)})
		return
	}

	g.Touch()

	ply, err := g.Play(clientID, uci)
	if err != nil {
		logging.Debugf("Rejected move %s in game %s from %s: %v", uci, id, clientID, err)
		WriteJSON(w, http.StatusOK, map[string]any{"ok": false, "error": err.Error(), "state": currentState(g)})
		return
	}

	h.Hub.Record(r.Context(), g, clientID, ply)
	go g.Broadcast()

	WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "move": ply.Move, "state": currentState(g)})
}

// HandleLegal lists legal destinations for the piece on ?sq=
func (h *Handler) HandleLegal(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/legal/")
	g, _ := h.Hub.Get(id, "")

	moves, err := g.LegalMoves(strings.ToLower(r.URL.Query().Get("sq")))
	if err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": err.Error()})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "moves": moves})
}

// HandleState exports the board snapshot on GET and imports one on POST
func (h *Handler) HandleState(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/state/")
	g, _ := h.Hub.Get(id, "")

	switch r.Method {
	case http.MethodGet:
		WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "state": g.Export()})
	case http.MethodPost:
		var body game.ImportRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "bad json"})
			return
		}
		if err := g.Import(strings.TrimSpace(body.ClientID), strings.TrimSpace(body.State)); err != nil {
			status := http.StatusOK
			if errors.Is(err, rules.ErrMalformedState) {
				status = http.StatusBadRequest
			}
			WriteJSON(w, status, map[string]any{"ok": false, "error": err.Error()})
			return
		}
		h.Hub.Rebase(r.Context(), g)
		go g.Broadcast()
		WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "state": currentState(g)})
	default:
		w.Header().Set("Allow", "GET, POST")
		WriteJSON(w, http.StatusMethodNotAllowed, map[string]any{"ok": false, "error": "method not allowed"})
	}
}

// HandleReact processes a reaction/emoji
func (h *Handler) HandleReact(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/react/")
	g, _ := h.Hub.Get(id, "")

	var body game.ReactionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "bad json"})
		return
	}

	if !isAllowedEmoji(body.Emoji) {
		WriteJSON(w, http.StatusOK, map[string]any{"ok": false, "error": "unsupported emoji"})
		return
	}

	sender := body.Sender
	if sender == "" {
		sender = ClientIP(r)
	}
	canReact, wait := g.CanReact(sender)
	if !canReact {
		WriteJSON(w, http.StatusOK, map[string]any{"ok": false, "error": fmt.Sprintf("cooldown %ds", wait)})
		return
	}

	payload := game.ReactionPayload{
		Kind:   "emoji",
		Emoji:  body.Emoji,
		At:     time.Now().UnixMilli(),
		Sender: body.Sender,
	}

	g.BroadcastReaction(payload)
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// HandleReset resets a game to the starting position
func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/reset/")
	g, _ := h.Hub.Get(id, "")

	var body game.ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		WriteJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "bad json"})
		return
	}
	if err := g.Reset(strings.TrimSpace(body.ClientID)); err != nil {
		WriteJSON(w, http.StatusOK, map[string]any{"ok": false, "error": err.Error()})
		return
	}
	h.Hub.Rebase(r.Context(), g)

	state := currentState(g)
	go g.Broadcast()
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "state": state})
}

// HandleRelease lets the owner free another client's seat
func (h *Handler) HandleRelease(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/release/")
	g, _ := h.Hub.Get(id, "")

	var body game.ReleaseRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "bad json"})
		return
	}
	if err := h.Hub.Release(r.Context(), g, strings.TrimSpace(body.ClientID), strings.TrimSpace(body.TargetID)); err != nil {
		WriteJSON(w, http.StatusOK, map[string]any{"ok": false, "error": err.Error()})
		return
	}
	go g.Broadcast()
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// HandleStats reports aggregate game counts from the store
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Store.FetchStats(r.Context())
	if err != nil {
		logging.Warnf("fetch stats: %v", err)
		WriteJSON(w, http.StatusInternalServerError, map[string]any{"ok": false, "error": "stats unavailable"})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "stats": stats})
}

func currentState(g *game.Game) game.GameState {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.StateLocked()
}

// ClientIP extracts the client IP from the request
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
