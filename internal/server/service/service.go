// FILE: internal/server/service/service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"chessrules/internal/server/board"
	"chessrules/internal/server/engine"
	"chessrules/internal/server/game"
	"chessrules/internal/server/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var ErrGameNotFound = errors.New("game not found")

// entry guards one game. Holding mu serializes every operation on the game;
// deleted is set under mu once the game has left the registry.
type entry struct {
	mu      sync.Mutex
	game    *game.Game
	deleted bool
}

// Service is the keyed store of in-flight games. Operations on one game are
// serialized, operations on different games run in parallel.
type Service struct {
	games  map[string]*entry
	mu     sync.RWMutex
	store  *storage.Store // nil if persistence disabled
	waiter *WaitRegistry
}

// New creates a service with optional storage
func New(store *storage.Store) *Service {
	return &Service{
		games:  make(map[string]*entry),
		store:  store,
		waiter: NewWaitRegistry(),
	}
}

// CreateGame registers a new game, from the standard position when fen is
// empty
func (s *Service) CreateGame(fen string) (game.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.generateGameID()

	var g *game.Game
	if fen == "" {
		g = game.New(id)
	} else {
		var err error
		if g, err = game.NewFromFEN(id, fen); err != nil {
			return game.Snapshot{}, err
		}
	}

	s.games[id] = &entry{game: g}
	snap := g.Snapshot()

	if s.store != nil {
		s.store.RecordNewGame(storage.GameRecord{
			GameID:       id,
			InitialFEN:   snap.InitialFEN,
			Status:       snap.Status.String(),
			StartTimeUTC: snap.CreatedAt,
		})
	}

	log.Debug().Str("game", id).Str("fen", snap.FEN).Msg("game created")
	return snap, nil
}

// generateGameID returns an id not in use. Callers hold s.mu.
func (s *Service) generateGameID() string {
	for {
		id := uuid.New().String()
		if _, exists := s.games[id]; !exists {
			return id
		}
	}
}

// WithGame runs fn while holding the game's lock
func (s *Service) WithGame(gameID string, fn func(*game.Game) error) error {
	s.mu.RLock()
	e, ok := s.games[gameID]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return fn(e.game)
}

// GetGame returns a snapshot of the game
func (s *Service) GetGame(gameID string) (game.Snapshot, error) {
	var snap game.Snapshot
	err := s.WithGame(gameID, func(g *game.Game) error {
		snap = g.Snapshot()
		return nil
	})
	return snap, err
}

// MakeMove validates and applies a move, returning it with the resulting
// game state
func (s *Service) MakeMove(gameID string, from, to board.Position, promotion board.PieceType) (board.Move, game.Snapshot, error) {
	var (
		move board.Move
		snap game.Snapshot
	)
	err := s.WithGame(gameID, func(g *game.Game) error {
		m, err := g.Play(from, to, promotion)
		if err != nil {
			return err
		}
		move = m
		snap = g.Snapshot()
		s.recordMove(snap, m)
		return nil
	})
	if err != nil {
		return board.Move{}, game.Snapshot{}, err
	}

	s.waiter.NotifyGame(gameID, len(snap.History))
	log.Debug().Str("game", gameID).Str("move", move.UCI()).Str("status", snap.Status.String()).Msg("move applied")
	return move, snap, nil
}

func (s *Service) recordMove(snap game.Snapshot, m board.Move) {
	if s.store == nil {
		return
	}
	flags := ""
	if m.IsPromotion {
		flags += "p"
	}
	if m.IsCastling {
		flags += "c"
	}
	if m.IsEnPassant {
		flags += "e"
	}
	captured := ""
	if m.IsCapture() {
		captured = string(m.Captured.Letter())
	}
	s.store.RecordMove(storage.MoveRecord{
		GameID:       snap.ID,
		MoveNumber:   len(snap.History),
		MoveUCI:      m.UCI(),
		Piece:        string(m.Piece.Letter()),
		Captured:     captured,
		Flags:        flags,
		FENAfterMove: snap.FEN,
		PlayerColor:  m.Piece.Color.String(),
		MoveTimeUTC:  time.Now().UTC(),
	}, snap.Status.String())
}

// History returns the moves of a game, oldest first
func (s *Service) History(gameID string) ([]board.Move, error) {
	var moves []board.Move
	err := s.WithGame(gameID, func(g *game.Game) error {
		moves = g.History()
		return nil
	})
	return moves, err
}

// LegalDestinations lists where the piece on pos may move
func (s *Service) LegalDestinations(gameID string, pos board.Position) ([]board.Position, error) {
	var dests []board.Position
	err := s.WithGame(gameID, func(g *game.Game) error {
		dests = engine.LegalDestinations(g, pos)
		return nil
	})
	return dests, err
}

// DeleteGame removes a game. Deleting an unknown game is not an error; the
// result reports whether a game was removed.
func (s *Service) DeleteGame(gameID string) bool {
	s.mu.Lock()
	e, ok := s.games[gameID]
	delete(s.games, gameID)
	s.mu.Unlock()

	if !ok {
		return false
	}

	// Wait for any in-flight operation on the game to finish
	e.mu.Lock()
	e.deleted = true
	e.mu.Unlock()

	s.waiter.RemoveGame(gameID)
	if s.store != nil {
		s.store.MarkGameDeleted(gameID, time.Now().UTC())
	}

	log.Debug().Str("game", gameID).Msg("game deleted")
	return true
}

// GameCount returns the number of live games
func (s *Service) GameCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// RegisterWait registers a client to wait for game state changes
func (s *Service) RegisterWait(ctx context.Context, gameID string, moveCount int) <-chan struct{} {
	return s.waiter.RegisterWait(ctx, gameID, moveCount)
}

// GetStorageHealth returns the storage component status
func (s *Service) GetStorageHealth() string {
	if s.store == nil {
		return "disabled"
	}
	if s.store.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

// Shutdown releases waiters, drops all games and closes storage
func (s *Service) Shutdown(timeout time.Duration) error {
	var errs []error

	if err := s.waiter.Shutdown(timeout); err != nil {
		errs = append(errs, fmt.Errorf("wait registry: %w", err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.games = make(map[string]*entry)

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	return errors.Join(errs...)
}
