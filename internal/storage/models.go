package storage

import (
	"time"

	"github.com/google/uuid"
)

// Game represents a chess game. BaseState is the snapshot the recorded moves
// start from; replaying Moves on top of it rebuilds the live position.
type Game struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	BaseState   string
	FEN         string
	OwnerID     string `gorm:"index"`
	OwnerColor  string
	Status      string
	Result      string
	Active      bool `gorm:"index"`
	CompletedAt *time.Time
	LastSeen    time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Players     []UserSession `gorm:"constraint:OnDelete:CASCADE;"`
	Moves       []Move        `gorm:"constraint:OnDelete:CASCADE;"`
}

// UserSession links a client to a seat in a game.
type UserSession struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	GameID    uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_game_client"`
	ClientID  string    `gorm:"uniqueIndex:idx_game_client"`
	Name      string
	Color     string
	Role      string
	Active    bool
	LastSeen  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Move stores a single ply in a game.
type Move struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	GameID    uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_game_number"`
	ClientID  string    `gorm:"index"`
	Number    int       `gorm:"uniqueIndex:idx_game_number"`
	UCI       string
	Color     string
	Captured  string
	Special   string
	CreatedAt time.Time
}
