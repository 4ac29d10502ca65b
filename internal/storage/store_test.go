package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNilStoreIsNoop(t *testing.T) {
	var s *Store
	ctx := context.Background()
	id := uuid.New()
	now := time.Now()

	if err := s.CreateGame(ctx, id, "8/8/8/8/8/8/8/8 w", now); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.RecordMove(ctx, id, Move{Number: 1, UCI: "e2e4"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := s.Rebase(ctx, id, "base"); err != nil {
		t.Fatalf("rebase: %v", err)
	}
	if err := s.CompleteGame(ctx, id, "checkmate", "1-0", now); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := s.EnsureUserSession(ctx, id, "c1", "name", "white", "owner", now); err != nil {
		t.Fatalf("session: %v", err)
	}
	if err := s.UpdateLastSeen(ctx, id, now); err != nil {
		t.Fatalf("last seen: %v", err)
	}
	if _, err := s.LoadGame(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	stats, err := s.FetchStats(ctx)
	if err != nil || stats != (Stats{}) {
		t.Fatalf("expected zero stats, got %+v %v", stats, err)
	}
}

func TestNewStoreNilDB(t *testing.T) {
	if NewStore(nil) != nil {
		t.Fatalf("expected nil store for nil db")
	}
}

func TestPersistedGameUCI(t *testing.T) {
	pg := &PersistedGame{Moves: []Move{{Number: 1, UCI: "e2e4"}, {Number: 2, UCI: "e7e5"}}}
	got := pg.UCI()
	if len(got) != 2 || got[0] != "e2e4" || got[1] != "e7e5" {
		t.Fatalf("unexpected uci list %v", got)
	}
}
