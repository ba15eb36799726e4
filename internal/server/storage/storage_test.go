package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	s, err := NewStore(path, false)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndQuery(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "chess.db")
	s := openTestStore(t, path)
	if err := s.InitDB(); err != nil {
		t.Fatalf("InitDB: %v", err)
	}

	start := time.Now().UTC().Truncate(time.Second)
	s.RecordNewGame(GameRecord{GameID: "g1", InitialFEN: "start", Status: "active", StartTimeUTC: start})
	s.RecordNewGame(GameRecord{GameID: "g2", InitialFEN: "start", Status: "active", StartTimeUTC: start.Add(time.Minute)})
	s.RecordMove(MoveRecord{
		GameID: "g1", MoveNumber: 1, MoveUCI: "e2e4", Piece: "P",
		FENAfterMove: "fen1", PlayerColor: "w", MoveTimeUTC: start,
	}, "active")
	s.RecordMove(MoveRecord{
		GameID: "g1", MoveNumber: 2, MoveUCI: "f7f6", Piece: "p",
		FENAfterMove: "fen2", PlayerColor: "b", MoveTimeUTC: start,
	}, "check")
	s.MarkGameDeleted("g2", start.Add(2*time.Minute))

	// Close flushes the write queue
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !s.IsHealthy() {
		t.Fatalf("store degraded after valid writes")
	}

	r := openTestStore(t, path)

	games, err := r.QueryGames("", "")
	if err != nil {
		t.Fatalf("QueryGames: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("got %d games, want 2", len(games))
	}
	// Newest first
	if games[0].GameID != "g2" || games[0].DeletedAtUTC == nil {
		t.Fatalf("g2 = %+v, want deleted", games[0])
	}
	if g := games[1]; g.GameID != "g1" || g.Status != "check" || g.MoveCount != 2 || g.DeletedAtUTC != nil {
		t.Fatalf("g1 = %+v", g)
	}

	filtered, err := r.QueryGames("*", "check")
	if err != nil || len(filtered) != 1 || filtered[0].GameID != "g1" {
		t.Fatalf("status filter = %+v, %v", filtered, err)
	}
	byID, err := r.QueryGames("g2", "*")
	if err != nil || len(byID) != 1 {
		t.Fatalf("id filter = %+v, %v", byID, err)
	}

	moves, err := r.QueryMoves("g1")
	if err != nil {
		t.Fatalf("QueryMoves: %v", err)
	}
	if len(moves) != 2 || moves[0].MoveUCI != "e2e4" || moves[1].MoveUCI != "f7f6" {
		t.Fatalf("moves = %+v", moves)
	}
	if moves[1].PlayerColor != "b" || moves[1].FENAfterMove != "fen2" {
		t.Fatalf("second move = %+v", moves[1])
	}

	none, err := r.QueryMoves("missing")
	if err != nil || len(none) != 0 {
		t.Fatalf("moves of unknown game = %+v, %v", none, err)
	}
}

func TestFailedWriteDegradesStore(t *testing.T) {
	t.Parallel()

	s := openTestStore(t, filepath.Join(t.TempDir(), "chess.db"))
	if err := s.InitDB(); err != nil {
		t.Fatalf("InitDB: %v", err)
	}

	s.RecordNewGame(GameRecord{GameID: "g", InitialFEN: "start", Status: "active", StartTimeUTC: time.Now().UTC()})
	rec := MoveRecord{GameID: "g", MoveNumber: 1, MoveUCI: "e2e4", Piece: "P", FENAfterMove: "f", PlayerColor: "w", MoveTimeUTC: time.Now().UTC()}
	s.RecordMove(rec, "active")
	// Same move number violates the unique constraint
	s.RecordMove(rec, "active")

	deadline := time.Now().Add(5 * time.Second)
	for s.IsHealthy() {
		if time.Now().After(deadline) {
			t.Fatalf("store still healthy after a failed write")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err := s.Degraded(); err == nil || !strings.Contains(err.Error(), "move write") {
		t.Fatalf("Degraded() = %v, want the failed move write", err)
	}
}

func TestDeleteDB(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "chess.db")
	s := openTestStore(t, path)
	if err := s.InitDB(); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	if err := s.DeleteDB(); err != nil {
		t.Fatalf("DeleteDB: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("database file still present: %v", err)
	}
	// Closing again is harmless
	if err := s.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestWritesAfterCloseAreDropped(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "chess.db")
	s := openTestStore(t, path)
	if err := s.InitDB(); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	if s.Degraded() != nil {
		t.Fatalf("fresh store reports degraded: %v", s.Degraded())
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s.RecordNewGame(GameRecord{GameID: "late", InitialFEN: "start", Status: "active", StartTimeUTC: time.Now().UTC()})
	s.MarkGameDeleted("late", time.Now().UTC())

	r := openTestStore(t, path)
	games, err := r.QueryGames("", "")
	if err != nil {
		t.Fatalf("QueryGames: %v", err)
	}
	if len(games) != 0 {
		t.Fatalf("write after Close reached the database: %+v", games)
	}
}
