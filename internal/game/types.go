package game

import (
	"sync"
	"time"

	"arcadechess/internal/rules"
	"arcadechess/internal/storage"
)

// Hub manages all active chess games
type Hub struct {
	Mu    sync.Mutex
	Games map[string]*Game
	// Store persists games when configured; nil keeps everything in memory.
	Store *storage.Store
}

// Game represents a single chess game with its state and watchers
type Game struct {
	Mu        sync.Mutex
	ID        string
	engine    *rules.Engine
	Watchers  map[chan []byte]struct{}
	LastReact map[string]time.Time
	LastSeen  time.Time
	OwnerID   string
	Clients   map[string]rules.Color // clientId -> color
	Names     map[string]string      // clientId -> display name

	// epoch counts resets and imports; base is the snapshot it started from
	epoch int
	base  string

	// saveMu orders writes to the store; savedEpoch and savedPly describe
	// what the store already holds
	saveMu     sync.Mutex
	savedEpoch int
	savedPly   int
}

// Ply is a played move together with the position it produced, taken under
// the game lock so persistence never sees a later position.
type Ply struct {
	Move    rules.Move
	Number  int
	State   string
	Status  rules.Status
	Outcome string
	Epoch   int
	Base    string
}

// MoveRequest represents a move request from a client
type MoveRequest struct {
	UCI       string `json:"uci"`
	ClientID  string `json:"clientId"`
	Promotion string `json:"promotion,omitempty"`
}

// ResetRequest asks for the game to restart from the initial position
type ResetRequest struct {
	ClientID string `json:"clientId"`
}

// ImportRequest carries a board snapshot to load into a game
type ImportRequest struct {
	State    string `json:"state"`
	ClientID string `json:"clientId"`
}

// ReactionRequest represents a reaction request from a client
type ReactionRequest struct {
	Emoji  string `json:"emoji"`
	Sender string `json:"sender"`
}

// ReleaseRequest asks the owner to free another client's seat
type ReleaseRequest struct {
	ClientID string `json:"clientId"`
	TargetID string `json:"targetId"`
}

// CapturedState lists captured pieces as FEN letters
type CapturedState struct {
	ByWhite string `json:"byWhite"`
	ByBlack string `json:"byBlack"`
}

// GameState represents the current state of a game
type GameState struct {
	Kind     string        `json:"kind"`
	FEN      string        `json:"fen"`
	Turn     string        `json:"turn"`
	Status   string        `json:"status"`
	Outcome  string        `json:"outcome"`
	Check    bool          `json:"check"`
	UCI      []string      `json:"uci"`
	LastMove *rules.Move   `json:"lastMove,omitempty"`
	Captured CapturedState `json:"captured"`
	LastSeen int64         `json:"lastSeen"`
	Watchers int           `json:"watchers"`
}

// ClientState represents the state sent to a specific client, including their color
type ClientState struct {
	GameState
	Color    *string `json:"color"`
	Role     string  `json:"role"`
	ClientID string  `json:"clientId"`
	Name     string  `json:"name"`
}

// ReactionPayload represents a reaction broadcast
type ReactionPayload struct {
	Kind   string `json:"kind"`
	Emoji  string `json:"emoji"`
	At     int64  `json:"at"`
	Sender string `json:"sender"`
}
