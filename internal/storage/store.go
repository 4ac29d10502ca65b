package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store wraps a gorm DB instance and provides helper methods for persisting games.
// A nil *Store is valid and turns every call into a no-op.
type Store struct {
	db *gorm.DB
}

// NewStore creates a new store helper from a gorm DB.
func NewStore(db *gorm.DB) *Store {
	if db == nil {
		return nil
	}
	return &Store{db: db}
}

// ErrNotFound is returned when a record is not found.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrMissingGame is returned when attempting to operate on a non-existing game.
var ErrMissingGame = errors.New("game not found")

// GameStateUpdate represents a partial update to a game row.
type GameStateUpdate struct {
	FEN         *string
	Status      *string
	Result      *string
	Active      *bool
	LastSeen    *time.Time
	CompletedAt *time.Time
}

// CreateGame inserts a new game starting from base.
func (s *Store) CreateGame(ctx context.Context, id uuid.UUID, base string, lastSeen time.Time) error {
	if s == nil {
		return nil
	}
	game := Game{
		ID:        id,
		BaseState: base,
		FEN:       base,
		Active:    true,
		LastSeen:  lastSeen,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&game).Error
}

// SaveGameState applies partial updates to the game row.
func (s *Store) SaveGameState(ctx context.Context, id uuid.UUID, upd GameStateUpdate) error {
	if s == nil {
		return nil
	}
	updates := make(map[string]any)
	if upd.FEN != nil {
		updates["fen"] = *upd.FEN
	}
	if upd.Status != nil {
		updates["status"] = *upd.Status
	}
	if upd.Result != nil {
		updates["result"] = *upd.Result
	}
	if upd.Active != nil {
		updates["active"] = *upd.Active
	}
	if upd.LastSeen != nil {
		updates["last_seen"] = *upd.LastSeen
	}
	if upd.CompletedAt != nil {
		updates["completed_at"] = *upd.CompletedAt
	}
	if len(updates) == 0 {
		return nil
	}
	res := s.db.WithContext(ctx).Model(&Game{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMissingGame
	}
	return nil
}

// Rebase drops the recorded moves and restarts the game from base. Used when
// a game is reset or a snapshot is imported.
func (s *Store) Rebase(ctx context.Context, id uuid.UUID, base string) error {
	if s == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("game_id = ?", id).Delete(&Move{}).Error; err != nil {
			return err
		}
		res := tx.Model(&Game{}).Where("id = ?", id).Updates(map[string]any{
			"base_state":   base,
			"fen":          base,
			"status":       "",
			"result":       "",
			"active":       true,
			"completed_at": nil,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrMissingGame
		}
		return nil
	})
}

// SetOwner records which client owns the game and the color they play.
func (s *Store) SetOwner(ctx context.Context, id uuid.UUID, ownerID, color string) error {
	if s == nil {
		return nil
	}
	return s.db.WithContext(ctx).Model(&Game{}).Where("id = ?", id).
		Updates(map[string]any{"owner_id": ownerID, "owner_color": color}).Error
}

// EnsureUserSession upserts a user session record for a game.
func (s *Store) EnsureUserSession(ctx context.Context, gameID uuid.UUID, clientID, name, color, role string, lastSeen time.Time) error {
	if s == nil {
		return nil
	}
	session := UserSession{
		GameID:   gameID,
		ClientID: clientID,
		Name:     name,
		Color:    color,
		Role:     role,
		Active:   true,
		LastSeen: lastSeen,
	}
	return s.db.WithContext(ctx).
		Where("game_id = ? AND client_id = ?", gameID, clientID).
		Assign(map[string]any{
			"name":      name,
			"color":     color,
			"role":      role,
			"active":    true,
			"last_seen": lastSeen,
		}).
		FirstOrCreate(&session).Error
}

// DeactivateUserSession marks the given user session as inactive.
func (s *Store) DeactivateUserSession(ctx context.Context, gameID uuid.UUID, clientID string) error {
	if s == nil {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&UserSession{}).
		Where("game_id = ? AND client_id = ?", gameID, clientID).
		Updates(map[string]any{"active": false}).Error
}

// DeactivateAllSessions marks all sessions for the game as inactive.
func (s *Store) DeactivateAllSessions(ctx context.Context, gameID uuid.UUID) error {
	if s == nil {
		return nil
	}
	return s.db.WithContext(ctx).Model(&UserSession{}).Where("game_id = ?", gameID).Updates(map[string]any{"active": false}).Error
}

// RecordMove inserts a move row for the given game.
func (s *Store) RecordMove(ctx context.Context, gameID uuid.UUID, m Move) error {
	if s == nil {
		return nil
	}
	m.GameID = gameID
	return s.db.WithContext(ctx).Create(&m).Error
}

// PersistedGame is a stored game with its active seats and moves in play order.
type PersistedGame struct {
	Game    Game
	Players []UserSession
	Moves   []Move
}

// UCI returns the recorded moves in play order.
func (p *PersistedGame) UCI() []string {
	out := make([]string, 0, len(p.Moves))
	for _, m := range p.Moves {
		out = append(out, m.UCI)
	}
	return out
}

// LoadGame fetches a persisted game, its active sessions and its moves.
func (s *Store) LoadGame(ctx context.Context, id uuid.UUID) (*PersistedGame, error) {
	if s == nil {
		return nil, ErrNotFound
	}
	var game Game
	if err := s.db.WithContext(ctx).First(&game, "id = ?", id).Error; err != nil {
		return nil, err
	}
	var players []UserSession
	if err := s.db.WithContext(ctx).
		Where("game_id = ? AND active = ?", id, true).
		Find(&players).Error; err != nil {
		return nil, err
	}
	var moves []Move
	if err := s.db.WithContext(ctx).
		Where("game_id = ?", id).
		Order("number asc").
		Find(&moves).Error; err != nil {
		return nil, err
	}
	return &PersistedGame{Game: game, Players: players, Moves: moves}, nil
}

// Stats represents aggregate counts for games.
type Stats struct {
	Started   int64 `json:"started"`
	Completed int64 `json:"completed"`
	Active    int64 `json:"active"`
	Moves     int64 `json:"moves"`
}

// FetchStats aggregates counts for display on the home page.
func (s *Store) FetchStats(ctx context.Context) (Stats, error) {
	var stats Stats
	if s == nil {
		return stats, nil
	}
	if err := s.db.WithContext(ctx).Model(&Game{}).Count(&stats.Started).Error; err != nil {
		return stats, err
	}
	if err := s.db.WithContext(ctx).Model(&Game{}).Where("active = ?", true).Count(&stats.Active).Error; err != nil {
		return stats, err
	}
	if err := s.db.WithContext(ctx).Model(&Game{}).Where("completed_at IS NOT NULL").Count(&stats.Completed).Error; err != nil {
		return stats, err
	}
	if err := s.db.WithContext(ctx).Model(&Move{}).Count(&stats.Moves).Error; err != nil {
		return stats, err
	}
	return stats, nil
}

// CompleteGame marks a game as finished with the provided status and result.
func (s *Store) CompleteGame(ctx context.Context, id uuid.UUID, status, result string, completedAt time.Time) error {
	if s == nil {
		return nil
	}
	active := false
	return s.SaveGameState(ctx, id, GameStateUpdate{
		Status:      &status,
		Result:      &result,
		Active:      &active,
		CompletedAt: &completedAt,
	})
}

// UpdateLastSeen updates the last seen timestamp for a game.
func (s *Store) UpdateLastSeen(ctx context.Context, id uuid.UUID, lastSeen time.Time) error {
	if s == nil {
		return nil
	}
	return s.SaveGameState(ctx, id, GameStateUpdate{LastSeen: &lastSeen})
}
