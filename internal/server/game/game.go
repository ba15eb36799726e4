// FILE: internal/server/game/game.go
package game

import (
	"errors"
	"fmt"
	"time"

	"chessrules/internal/server/board"
	"chessrules/internal/server/core"
	"chessrules/internal/server/engine"
)

var ErrGameOver = errors.New("game is over")

// Game aggregates a board with turn, status and move history. It is not safe
// for concurrent use; the service serializes access per game.
type Game struct {
	id         string
	board      board.Board
	turn       core.Color
	history    []board.Move
	status     core.Status
	halfMove   int
	fullMove   int
	initialFEN string
	createdAt  time.Time

	// seed stands in for the move that preceded a custom start position, so
	// an en passant right encoded in the FEN can be exercised
	seed *board.Move
}

// New starts a game from the standard position with White to move
func New(id string) *Game {
	return &Game{
		id:         id,
		board:      *board.New(),
		turn:       core.ColorWhite,
		status:     core.StatusActive,
		fullMove:   1,
		initialFEN: board.StartingFEN,
		createdAt:  time.Now().UTC(),
	}
}

// NewFromFEN starts a game from a custom position
func NewFromFEN(id, fen string) (*Game, error) {
	setup, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}

	g := &Game{
		id:        id,
		board:     *setup.Board,
		turn:      setup.Turn,
		halfMove:  setup.HalfMove,
		fullMove:  setup.FullMove,
		createdAt: time.Now().UTC(),
	}

	if setup.EnPassant != nil {
		mover := core.OppositeColor(setup.Turn)
		dir := board.Forward(mover)
		to := setup.EnPassant.Offset(dir, 0)
		pawn, ok := g.board.Get(to)
		if !ok || pawn.Type != board.Pawn || pawn.Color != mover {
			return nil, fmt.Errorf("invalid FEN: no %s pawn in front of en passant square %s", mover.Name(), setup.EnPassant)
		}
		pawn.Moved = false
		g.seed = &board.Move{From: setup.EnPassant.Offset(-dir, 0), To: to, Piece: pawn}
	}

	if engine.IsInCheck(&g.board, core.OppositeColor(g.turn)) {
		return nil, fmt.Errorf("invalid FEN: %s to move can capture the king", g.turn.Name())
	}

	g.initialFEN = g.FEN()
	g.status = engine.ClassifyStatus(g)
	return g, nil
}

func (g *Game) ID() string {
	return g.id
}

// Board exposes the live board for rule evaluation. Callers must not modify it.
func (g *Game) Board() *board.Board {
	return &g.board
}

func (g *Game) Turn() core.Color {
	return g.turn
}

func (g *Game) Status() core.Status {
	return g.status
}

func (g *Game) CreatedAt() time.Time {
	return g.createdAt
}

func (g *Game) InitialFEN() string {
	return g.initialFEN
}

// LastMove returns the most recent move, used for en passant
func (g *Game) LastMove() (board.Move, bool) {
	if n := len(g.history); n > 0 {
		return g.history[n-1], true
	}
	if g.seed != nil {
		return *g.seed, true
	}
	return board.Move{}, false
}

// History returns a copy of the moves played so far, oldest first
func (g *Game) History() []board.Move {
	out := make([]board.Move, len(g.history))
	copy(out, g.history)
	return out
}

func (g *Game) MoveCount() int {
	return len(g.history)
}

// FEN encodes the current position
func (g *Game) FEN() string {
	return board.EncodeFEN(&g.board, g.turn, g.enPassantTarget(), g.halfMove, g.fullMove)
}

func (g *Game) enPassantTarget() *board.Position {
	last, ok := g.LastMove()
	if !ok || !last.IsDoublePawnPush() {
		return nil
	}
	target := last.From.Offset(board.Forward(last.Piece.Color), 0)
	return &target
}

// Play validates the move from one square to another and applies it
func (g *Game) Play(from, to board.Position, promotion board.PieceType) (board.Move, error) {
	if g.status.IsOver() {
		return board.Move{}, fmt.Errorf("%w: %s", ErrGameOver, g.status)
	}
	m, err := engine.Validate(g, from, to, promotion)
	if err != nil {
		return board.Move{}, err
	}
	g.apply(m)
	return m, nil
}

// ApplyMove re-verifies m against the current position and applies it. m
// must match exactly what the engine derives for its squares, including the
// captured piece and special-move flags. Nothing changes on error.
func (g *Game) ApplyMove(m board.Move) error {
	if g.status.IsOver() {
		return fmt.Errorf("%w: %s", ErrGameOver, g.status)
	}
	v, err := engine.Validate(g, m.From, m.To, m.Promotion)
	if err != nil {
		return err
	}
	if v != m {
		return &engine.IllegalMoveError{Reason: fmt.Sprintf("move %s does not match the position", m.UCI())}
	}
	g.apply(v)
	return nil
}

func (g *Game) apply(m board.Move) {
	engine.Perform(&g.board, m)
	g.history = append(g.history, m)

	if m.Piece.Type == board.Pawn || m.IsCapture() {
		g.halfMove = 0
	} else {
		g.halfMove++
	}
	if g.turn == core.ColorBlack {
		g.fullMove++
	}

	g.turn = core.OppositeColor(g.turn)
	g.status = engine.ClassifyStatus(g)
}
