package game

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"time"

	"arcadechess/internal/logging"
	"arcadechess/internal/rules"

	petname "github.com/dustinkirkland/golang-petname"
)

func newGame(id string) *Game {
	return &Game{
		ID:        id,
		engine:    rules.New(),
		Watchers:  make(map[chan []byte]struct{}),
		LastReact: make(map[string]time.Time),
		Clients:   make(map[string]rules.Color),
		Names:     make(map[string]string),
		LastSeen:  time.Now(),
		base:      rules.StartState,
	}
}

// Touch updates the last seen timestamp for a game
func (g *Game) Touch() {
	g.Mu.Lock()
	g.LastSeen = time.Now()
	g.Mu.Unlock()
}

// MovesUCI returns the list of moves in UCI notation (must be called with lock held)
func (g *Game) MovesUCI() []string {
	hist := g.engine.MoveHistory()
	out := make([]string, 0, len(hist))
	for _, m := range hist {
		out = append(out, m.UCI())
	}
	return out
}

func capturedLetters(ps []rules.Piece) string {
	b := make([]byte, 0, len(ps))
	for _, p := range ps {
		b = append(b, p.Letter())
	}
	return string(b)
}

// StateLocked returns the current game state (must be called with lock held)
func (g *Game) StateLocked() GameState {
	e := g.engine
	status := e.Status()
	state := GameState{
		Kind:     "state",
		FEN:      e.ExportState(),
		Turn:     e.Turn().String(),
		Outcome:  e.Outcome(),
		Check:    e.IsInCheck(e.Turn()),
		UCI:      g.MovesUCI(),
		LastSeen: g.LastSeen.UnixMilli(),
		Watchers: len(g.Watchers),
	}
	if status != rules.StatusActive {
		state.Status = status.String()
	}
	if hist := e.MoveHistory(); len(hist) > 0 {
		last := hist[len(hist)-1]
		state.LastMove = &last
	}
	caps := e.CapturedPieces()
	state.Captured = CapturedState{ByWhite: capturedLetters(caps.ByWhite), ByBlack: capturedLetters(caps.ByBlack)}
	return state
}

// ClientStateLocked decorates the game state with the client's seat (must be called with lock held)
func (g *Game) ClientStateLocked(clientID string) ClientState {
	cs := ClientState{GameState: g.StateLocked(), ClientID: clientID, Role: "spectator", Name: g.Names[clientID]}
	if c, ok := g.Clients[clientID]; ok {
		s := c.String()
		cs.Color = &s
		cs.Role = "player"
		if clientID == g.OwnerID {
			cs.Role = "owner"
		}
	}
	return cs
}

// Broadcast sends the current game state to all watchers
func (g *Game) Broadcast() {
	g.Mu.Lock()
	state := g.StateLocked()
	data, _ := json.Marshal(state)
	g.sendLocked(data)
	g.Mu.Unlock()
}

func (g *Game) sendLocked(data []byte) {
	for ch := range g.Watchers {
		select {
		case ch <- data:
		default:
		}
	}
}

// MakeMove plays a UCI move for whichever side is on turn
func (g *Game) MakeMove(uci string) (rules.Move, error) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	return g.engine.MoveUCI(uci)
}

// Play validates that clientID owns the moving piece and is on turn, then
// plays the move. Holding the game lock across the checks and the move keeps
// a second submission from the same side out until the turn has flipped.
func (g *Game) Play(clientID, uci string) (Ply, error) {
	from, to, promo, err := rules.ParseUCI(uci)
	if err != nil {
		return Ply{}, err
	}

	g.Mu.Lock()
	defer g.Mu.Unlock()

	color, ok := g.Clients[clientID]
	if !ok {
		return Ply{}, ErrUnknownClient
	}
	if p := g.engine.Piece(from); p.Empty() || p.Color != color {
		return Ply{}, ErrWrongColor
	}
	if g.engine.Turn() != color {
		return Ply{}, ErrNotYourTurn
	}
	if g.engine.Status().Over() {
		return Ply{}, ErrGameOver
	}

	mv, err := g.engine.MakeMove(from, to, promo)
	if err != nil {
		return Ply{}, err
	}
	g.LastSeen = time.Now()
	if mv.Castle != rules.NoCastle {
		logging.Debugf("Castling %s in game %s (%s)", mv.Castle, g.ID, mv.UCI())
	}
	if mv.EnPassant {
		logging.Debugf("En passant in game %s (%s)", g.ID, mv.UCI())
	}
	return g.plyLocked(mv), nil
}

func (g *Game) plyLocked(mv rules.Move) Ply {
	return Ply{
		Move:    mv,
		Number:  len(g.engine.MoveHistory()),
		State:   g.engine.ExportState(),
		Status:  g.engine.Status(),
		Outcome: g.engine.Outcome(),
		Epoch:   g.epoch,
		Base:    g.base,
	}
}

// LegalMoves lists the destinations of the piece on square
func (g *Game) LegalMoves(square string) ([]string, error) {
	sq, err := rules.ParseSquare(square)
	if err != nil {
		return nil, err
	}
	g.Mu.Lock()
	targets := g.engine.LegalMoves(sq)
	g.Mu.Unlock()

	out := make([]string, 0, len(targets))
	for _, t := range targets {
		out = append(out, t.String())
	}
	return out, nil
}

// Reset resets the game to the starting position. Only the owner may do this
// once the game has one.
func (g *Game) Reset(clientID string) error {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	if g.OwnerID != "" && clientID != g.OwnerID {
		return ErrNotOwner
	}
	g.engine.Initialize()
	g.epoch++
	g.base = rules.StartState
	logging.Debugf("Game %s reset - state: %s", g.ID, g.base)
	return nil
}

// Export returns the board snapshot
func (g *Game) Export() string {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.engine.ExportState()
}

// Import replaces the board with a snapshot. Only the owner may do this once
// the game has one.
func (g *Game) Import(clientID, state string) error {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	if g.OwnerID != "" && clientID != g.OwnerID {
		return ErrNotOwner
	}
	if err := g.engine.ImportState(state); err != nil {
		return err
	}
	g.epoch++
	g.base = g.engine.ExportState()
	return nil
}

// loadLocked replays moves on top of base. When a move no longer applies the
// game falls back to base (or the initial position if base itself is
// rejected) and the replay error is returned (must be called with lock held)
func (g *Game) loadLocked(base string, moves []string) error {
	if base == "" {
		base = rules.StartState
	}
	err := g.replayLocked(base, moves)
	if err != nil {
		if ierr := g.engine.ImportState(base); ierr != nil {
			g.engine.Initialize()
			base = rules.StartState
		}
	}
	g.base = base
	return err
}

// replayLocked rebuilds the engine from a base snapshot and a move list
func (g *Game) replayLocked(base string, moves []string) error {
	if base == "" {
		g.engine.Initialize()
	} else if err := g.engine.ImportState(base); err != nil {
		return err
	}
	for i, m := range moves {
		if _, err := g.engine.MoveUCI(m); err != nil {
			return fmt.Errorf("replay move %d (%s): %w", i+1, m, err)
		}
	}
	return nil
}

// AddWatcher adds a new watcher channel
func (g *Game) AddWatcher(ch chan []byte) {
	g.Mu.Lock()
	g.Watchers[ch] = struct{}{}
	g.Mu.Unlock()
}

// RemoveWatcher removes a watcher channel
func (g *Game) RemoveWatcher(ch chan []byte) {
	g.Mu.Lock()
	delete(g.Watchers, ch)
	g.Mu.Unlock()
}

// CanReact checks if a sender can send a reaction (cooldown check)
func (g *Game) CanReact(sender string) (bool, int) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	now := time.Now()
	if t, ok := g.LastReact[sender]; ok && now.Sub(t) < reactCooldown {
		wait := int((reactCooldown - now.Sub(t)).Seconds())
		return false, wait
	}

	g.LastReact[sender] = now
	return true, 0
}

const reactCooldown = 5 * time.Second

// BroadcastReaction sends a reaction to all watchers
func (g *Game) BroadcastReaction(payload ReactionPayload) {
	g.Mu.Lock()
	data, _ := json.Marshal(payload)
	g.sendLocked(data)
	g.Mu.Unlock()
}

// joinLocked returns the color seated for clientID, seating it if a seat is
// free. The first client becomes owner with a random color, the second gets
// the other color and later clients spectate. joined is true when a seat was
// assigned by this call.
func (g *Game) joinLocked(clientID string) (color *rules.Color, joined bool) {
	if clientID == "" {
		return nil, false
	}
	if _, ok := g.Names[clientID]; !ok {
		g.Names[clientID] = petname.Generate(2, "-")
	}
	if c, ok := g.Clients[clientID]; ok {
		return &c, false
	}

	switch len(g.Clients) {
	case 0:
		c := rules.White
		if rand.IntN(2) == 1 {
			c = rules.Black
		}
		g.OwnerID = clientID
		g.Clients[clientID] = c
		return &c, true
	case 1:
		var taken rules.Color
		for _, t := range g.Clients {
			taken = t
		}
		c := taken.Opposite()
		g.Clients[clientID] = c
		if g.OwnerID == "" {
			g.OwnerID = clientID
		}
		return &c, true
	}
	return nil, false
}

// ColorOf returns the client's color or nil for spectators
func (g *Game) ColorOf(clientID string) *rules.Color {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	if c, ok := g.Clients[clientID]; ok {
		return &c
	}
	return nil
}

// RemoveClient frees the client's seat, clearing ownership if it was the owner
func (g *Game) RemoveClient(clientID string) {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	delete(g.Clients, clientID)
	if g.OwnerID == clientID {
		g.OwnerID = ""
	}
}

// Release lets the owner free another client's seat
func (g *Game) Release(ownerID, targetID string) error {
	g.Mu.Lock()
	isOwner := g.OwnerID != "" && g.OwnerID == ownerID
	g.Mu.Unlock()
	if !isOwner {
		return ErrNotOwner
	}
	g.RemoveClient(targetID)
	return nil
}
