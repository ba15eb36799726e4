// FILE: internal/server/engine/engine.go

// Package engine decides move legality under the full rules of chess and
// classifies positions as check, checkmate or stalemate. The board of a
// Context is never modified; Perform is the only function that writes to a
// board, and only to the one it is handed.
package engine

import (
	"errors"
	"fmt"

	"chessrules/internal/server/board"
	"chessrules/internal/server/core"
)

// Context is the read-only game state the rules depend on
type Context interface {
	Board() *board.Board
	Turn() core.Color
	// LastMove returns the move that produced the current position, which
	// decides en passant eligibility
	LastMove() (board.Move, bool)
}

var ErrIllegalMove = errors.New("illegal move")

// IllegalMoveError carries the rule a rejected move broke
type IllegalMoveError struct {
	Reason string
}

func (e *IllegalMoveError) Error() string {
	return "illegal move: " + e.Reason
}

func (e *IllegalMoveError) Is(target error) bool {
	return target == ErrIllegalMove
}

func illegal(format string, args ...any) error {
	return &IllegalMoveError{Reason: fmt.Sprintf(format, args...)}
}

// Validate checks a proposed move for the side to move and returns it with
// its capture and special-move fields filled in. promotion selects the piece
// a pawn turns into on the last rank; NoPiece means a queen.
func Validate(ctx Context, from, to board.Position, promotion board.PieceType) (board.Move, error) {
	b := ctx.Board()

	if !from.Valid() {
		return board.Move{}, illegal("source square %v is off the board", from)
	}
	if !to.Valid() {
		return board.Move{}, illegal("destination square %v is off the board", to)
	}

	piece, ok := b.Get(from)
	if !ok {
		return board.Move{}, illegal("no piece at %s", from)
	}
	if piece.Color != ctx.Turn() {
		return board.Move{}, illegal("it is not %s's turn", piece.Color.Name())
	}
	if from == to {
		return board.Move{}, illegal("%s must move to a different square", piece.Type)
	}

	m := board.Move{From: from, To: to, Piece: piece}
	if target, occupied := b.Get(to); occupied {
		if target.Color == piece.Color {
			return board.Move{}, illegal("cannot capture own %s on %s", target.Type, to)
		}
		m.Captured = target
	}

	if err := checkGeometry(ctx, &m); err != nil {
		return board.Move{}, err
	}

	if m.IsPromotion {
		switch promotion {
		case board.NoPiece:
			m.Promotion = board.Queen
		case board.Queen, board.Rook, board.Bishop, board.Knight:
			m.Promotion = promotion
		default:
			return board.Move{}, illegal("pawn cannot promote to %s", promotion)
		}
	}

	if leavesKingAttacked(b, m) {
		return board.Move{}, illegal("move leaves the %s king in check", piece.Color.Name())
	}

	return m, nil
}

// IsLegal reports whether m is legal in ctx, including its special-move flags
func IsLegal(ctx Context, m board.Move) bool {
	v, err := Validate(ctx, m.From, m.To, m.Promotion)
	if err != nil {
		return false
	}
	if !m.Piece.IsEmpty() && m.Piece.Type != v.Piece.Type {
		return false
	}
	return v.IsPromotion == m.IsPromotion &&
		v.IsCastling == m.IsCastling &&
		v.IsEnPassant == m.IsEnPassant
}

// LegalDestinations lists every square the piece on pos may move to, in
// row-major order. It is empty when pos holds no piece of the side to move.
func LegalDestinations(ctx Context, pos board.Position) []board.Position {
	var out []board.Position
	for _, m := range movesFrom(ctx, pos, false) {
		out = append(out, m.To)
	}
	return out
}

// LegalMoves lists every legal move of the side to move. Promotions appear
// once, with the default queen.
func LegalMoves(ctx Context) []board.Move {
	var out []board.Move
	for _, pl := range ctx.Board().PiecesOfColor(ctx.Turn()) {
		out = append(out, movesFrom(ctx, pl.Pos, false)...)
	}
	return out
}

// HasLegalMove reports whether the side to move can move at all
func HasLegalMove(ctx Context) bool {
	for _, pl := range ctx.Board().PiecesOfColor(ctx.Turn()) {
		if len(movesFrom(ctx, pl.Pos, true)) > 0 {
			return true
		}
	}
	return false
}

// movesFrom tries every square as a destination. firstOnly stops at the
// first legal move.
func movesFrom(ctx Context, from board.Position, firstOnly bool) []board.Move {
	p, ok := ctx.Board().Get(from)
	if !ok || p.Color != ctx.Turn() {
		return nil
	}
	var out []board.Move
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			m, err := Validate(ctx, from, board.Position{Row: row, Col: col}, board.NoPiece)
			if err != nil {
				continue
			}
			out = append(out, m)
			if firstOnly {
				return out
			}
		}
	}
	return out
}

// ClassifyStatus classifies the position for the side to move. Draws by
// repetition, the fifty-move rule or insufficient material are not detected.
func ClassifyStatus(ctx Context) core.Status {
	inCheck := IsInCheck(ctx.Board(), ctx.Turn())
	canMove := HasLegalMove(ctx)

	switch {
	case inCheck && canMove:
		return core.StatusCheck
	case inCheck:
		return core.StatusCheckmate
	case canMove:
		return core.StatusActive
	default:
		return core.StatusStalemate
	}
}
