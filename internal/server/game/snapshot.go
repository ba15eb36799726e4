// FILE: internal/server/game/snapshot.go
package game

import (
	"time"

	"chessrules/internal/server/board"
	"chessrules/internal/server/core"
)

// Snapshot is a detached copy of a game's state, safe to read after the
// game's lock is released
type Snapshot struct {
	ID         string
	Board      board.Board
	FEN        string
	InitialFEN string
	Turn       core.Color
	Status     core.Status
	History    []board.Move
	CreatedAt  time.Time
}

// Snapshot copies the current state
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		ID:         g.id,
		Board:      g.board,
		FEN:        g.FEN(),
		InitialFEN: g.initialFEN,
		Turn:       g.turn,
		Status:     g.status,
		History:    g.History(),
		CreatedAt:  g.createdAt,
	}
}

// LastMove returns the most recent move of the snapshot, if any
func (s Snapshot) LastMove() (board.Move, bool) {
	if n := len(s.History); n > 0 {
		return s.History[n-1], true
	}
	return board.Move{}, false
}

// Moves returns the history in UCI notation
func (s Snapshot) Moves() []string {
	moves := make([]string, 0, len(s.History))
	for _, m := range s.History {
		moves = append(moves, m.UCI())
	}
	return moves
}
