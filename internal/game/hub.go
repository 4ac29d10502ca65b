package game

import (
	"context"
	"errors"
	"time"

	"arcadechess/internal/logging"
	"arcadechess/internal/rules"
	"arcadechess/internal/storage"

	"github.com/google/uuid"
)

const (
	idleTimeout     = 24 * time.Hour
	cleanupInterval = 5 * time.Minute
	storeTimeout    = 5 * time.Second
)

// NewHub creates a new game hub with cleanup goroutine. store may be nil.
func NewHub(store *storage.Store) *Hub {
	h := &Hub{Games: make(map[string]*Game), Store: store}
	go func() {
		for {
			time.Sleep(cleanupInterval)
			h.runCleanup(time.Now())
		}
	}()
	return h
}

// runCleanup drops games idle for longer than idleTimeout
func (h *Hub) runCleanup(now time.Time) {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	for id, g := range h.Games {
		g.Mu.Lock()
		idle := now.Sub(g.LastSeen) > idleTimeout
		g.Mu.Unlock()
		if idle {
			delete(h.Games, id)
			if gid, ok := storeID(id); ok && h.Store != nil {
				ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
				if err := h.Store.DeactivateAllSessions(ctx, gid); err != nil {
					logging.Warnf("deactivate sessions for %s: %v", id, err)
				}
				cancel()
			}
		}
	}
}

// storeID converts a game id into a storage key. Ids that are not uuids are
// kept in memory only.
func storeID(id string) (uuid.UUID, bool) {
	gid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, false
	}
	return gid, true
}

// Get retrieves an existing game or creates a new one, restoring it from the
// store when one is configured. When clientID is set the client is seated and
// its color returned; spectators get nil.
func (h *Hub) Get(id, clientID string) (*Game, *rules.Color) {
	h.Mu.Lock()
	g, ok := h.Games[id]
	if !ok {
		g = newGame(id)
		h.Games[id] = g
		g.Mu.Lock()
	}
	h.Mu.Unlock()

	if !ok {
		h.restoreLocked(g)
		g.Mu.Unlock()
	}

	if clientID == "" {
		return g, nil
	}

	g.Mu.Lock()
	color, joined := g.joinLocked(clientID)
	name := g.Names[clientID]
	owner := g.OwnerID == clientID
	g.LastSeen = time.Now()
	g.Mu.Unlock()

	if joined {
		h.persistSeat(g.ID, clientID, name, *color, owner)
	}
	return g, color
}

// restoreLocked rebuilds g from the store, or registers it there when it is
// new (must be called with g's lock held)
func (h *Hub) restoreLocked(g *Game) {
	gid, ok := storeID(g.ID)
	if !ok || h.Store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	pg, err := h.Store.LoadGame(ctx, gid)
	if errors.Is(err, storage.ErrNotFound) {
		if err := h.Store.CreateGame(ctx, gid, rules.StartState, g.LastSeen); err != nil {
			logging.Warnf("create game %s: %v", g.ID, err)
		}
		return
	}
	if err != nil {
		logging.Warnf("load game %s: %v", g.ID, err)
		return
	}

	g.saveMu.Lock()
	if err := g.loadLocked(pg.Game.BaseState, pg.UCI()); err != nil {
		// the stored moves no longer apply; keep the store in line with the
		// position the game fell back to
		logging.Warnf("restore game %s: %v; restarting from %s", g.ID, err, g.base)
		if err := h.Store.Rebase(ctx, gid, g.base); err != nil {
			logging.Warnf("rebase game %s: %v", g.ID, err)
		}
		g.savedPly = 0
	} else {
		g.savedPly = len(pg.Moves)
	}
	g.saveMu.Unlock()

	for _, p := range pg.Players {
		c, ok := parseColor(p.Color)
		if !ok {
			continue
		}
		g.Clients[p.ClientID] = c
		if p.Name != "" {
			g.Names[p.ClientID] = p.Name
		}
	}
	if _, seated := g.Clients[pg.Game.OwnerID]; seated {
		g.OwnerID = pg.Game.OwnerID
	}
	logging.Debugf("Restored game %s with %d moves and %d players", g.ID, len(pg.Moves), len(pg.Players))
}

func parseColor(s string) (rules.Color, bool) {
	switch s {
	case rules.White.String():
		return rules.White, true
	case rules.Black.String():
		return rules.Black, true
	}
	return rules.White, false
}

func (h *Hub) persistSeat(id, clientID, name string, color rules.Color, owner bool) {
	gid, ok := storeID(id)
	if !ok || h.Store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	role := "player"
	if owner {
		role = "owner"
		if err := h.Store.SetOwner(ctx, gid, clientID, color.String()); err != nil {
			logging.Warnf("set owner for %s: %v", id, err)
		}
	}
	if err := h.Store.EnsureUserSession(ctx, gid, clientID, name, color.String(), role, time.Now()); err != nil {
		logging.Warnf("save session %s/%s: %v", id, clientID, err)
	}
}

// Record persists a played move and the position it produced
func (h *Hub) Record(ctx context.Context, g *Game, clientID string, ply Ply) {
	gid, ok := storeID(g.ID)
	if !ok || h.Store == nil {
		return
	}

	g.saveMu.Lock()
	defer g.saveMu.Unlock()

	if !h.syncEpochLocked(ctx, g, gid, ply.Epoch, ply.Base) {
		logging.Debugf("Dropping ply %d of game %s from a superseded position", ply.Number, g.ID)
		return
	}

	mv := ply.Move
	row := storage.Move{
		ClientID: clientID,
		Number:   ply.Number,
		UCI:      mv.UCI(),
		Color:    mv.Piece.Color.String(),
	}
	if mv.IsCapture() {
		row.Captured = string(mv.Captured.Letter())
	}
	switch {
	case mv.Castle != rules.NoCastle:
		row.Special = mv.Castle.String()
	case mv.EnPassant:
		row.Special = "e.p."
	case mv.Promotion != rules.NoPieceType:
		row.Special = "=" + mv.Promotion.String()
	}
	if err := h.Store.RecordMove(ctx, gid, row); err != nil {
		logging.Warnf("record move %s in %s: %v", row.UCI, g.ID, err)
		return
	}

	// a later ply may already have been saved
	if ply.Number <= g.savedPly {
		return
	}
	g.savedPly = ply.Number

	now := time.Now()
	st := ply.Status.String()
	if err := h.Store.SaveGameState(ctx, gid, storage.GameStateUpdate{FEN: &ply.State, Status: &st, LastSeen: &now}); err != nil {
		logging.Warnf("save state for %s: %v", g.ID, err)
	}
	if ply.Status.Over() {
		if err := h.Store.CompleteGame(ctx, gid, st, ply.Outcome, now); err != nil {
			logging.Warnf("complete game %s: %v", g.ID, err)
		}
	}
}

// syncEpochLocked brings the store up to epoch, rebasing it on base when the
// game was reset or imported since the last write. It reports false for
// writes from an older epoch (must be called with g.saveMu held)
func (h *Hub) syncEpochLocked(ctx context.Context, g *Game, gid uuid.UUID, epoch int, base string) bool {
	switch {
	case epoch < g.savedEpoch:
		return false
	case epoch > g.savedEpoch:
		if err := h.Store.Rebase(ctx, gid, base); err != nil {
			logging.Warnf("rebase game %s: %v", g.ID, err)
			return false
		}
		g.savedEpoch = epoch
		g.savedPly = 0
	}
	return true
}

// Rebase persists the snapshot the game was last reset or imported to as its
// new starting point, discarding the recorded moves
func (h *Hub) Rebase(ctx context.Context, g *Game) {
	gid, ok := storeID(g.ID)
	if !ok || h.Store == nil {
		return
	}
	g.Mu.Lock()
	epoch, base := g.epoch, g.base
	g.Mu.Unlock()

	g.saveMu.Lock()
	h.syncEpochLocked(ctx, g, gid, epoch, base)
	g.saveMu.Unlock()
}

// Seen marks the game active now, in memory and in the store
func (h *Hub) Seen(ctx context.Context, g *Game) {
	g.Touch()
	gid, ok := storeID(g.ID)
	if !ok || h.Store == nil {
		return
	}
	g.Mu.Lock()
	seen := g.LastSeen
	g.Mu.Unlock()
	if err := h.Store.UpdateLastSeen(ctx, gid, seen); err != nil {
		logging.Warnf("update last seen for %s: %v", g.ID, err)
	}
}

// Release frees targetID's seat on behalf of the game owner
func (h *Hub) Release(ctx context.Context, g *Game, ownerID, targetID string) error {
	if err := g.Release(ownerID, targetID); err != nil {
		return err
	}
	if gid, ok := storeID(g.ID); ok && h.Store != nil {
		if err := h.Store.DeactivateUserSession(ctx, gid, targetID); err != nil {
			logging.Warnf("deactivate session %s/%s: %v", g.ID, targetID, err)
		}
	}
	return nil
}
