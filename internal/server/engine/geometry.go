// FILE: internal/server/engine/geometry.go
package engine

import (
	"chessrules/internal/server/board"
	"chessrules/internal/server/core"
)

// checkGeometry applies the movement rule of the moving piece and sets the
// special-move fields of m
func checkGeometry(ctx Context, m *board.Move) error {
	b := ctx.Board()
	rowDiff := m.To.Row - m.From.Row
	colDiff := m.To.Col - m.From.Col

	switch m.Piece.Type {
	case board.Pawn:
		return checkPawn(ctx, m, rowDiff, colDiff)
	case board.Knight:
		if !knightStep(rowDiff, colDiff) {
			return illegal("knight moves in an L shape")
		}
	case board.Bishop:
		if !diagonal(rowDiff, colDiff) {
			return illegal("bishop moves diagonally")
		}
		if blocked, at := firstBlocker(b, m.From, m.To); blocked {
			return illegal("path is blocked at %s", at)
		}
	case board.Rook:
		if !straight(rowDiff, colDiff) {
			return illegal("rook moves along a rank or file")
		}
		if blocked, at := firstBlocker(b, m.From, m.To); blocked {
			return illegal("path is blocked at %s", at)
		}
	case board.Queen:
		if !straight(rowDiff, colDiff) && !diagonal(rowDiff, colDiff) {
			return illegal("queen moves along a rank, file or diagonal")
		}
		if blocked, at := firstBlocker(b, m.From, m.To); blocked {
			return illegal("path is blocked at %s", at)
		}
	case board.King:
		if rowDiff == 0 && abs(colDiff) == 2 && m.From == board.KingHome(m.Piece.Color) {
			return checkCastling(b, m, colDiff)
		}
		if !kingStep(rowDiff, colDiff) {
			return illegal("king moves one square")
		}
	default:
		panic("engine: unknown piece type on " + m.From.String())
	}
	return nil
}

func checkPawn(ctx Context, m *board.Move, rowDiff, colDiff int) error {
	b := ctx.Board()
	color := m.Piece.Color
	dir := board.Forward(color)

	switch {
	case colDiff == 0 && (rowDiff == dir || rowDiff == 2*dir):
		if !m.Captured.IsEmpty() {
			return illegal("pawn cannot capture straight ahead")
		}
		if rowDiff == 2*dir {
			if m.From.Row != board.PawnRow(color) {
				return illegal("pawn can only advance two squares from its starting rank")
			}
			if mid := m.From.Offset(dir, 0); !b.IsEmpty(mid) {
				return illegal("path is blocked at %s", mid)
			}
		}
	case abs(colDiff) == 1 && rowDiff == dir:
		if m.Captured.IsEmpty() {
			victim, ok := enPassantVictim(ctx, m)
			if !ok {
				return illegal("pawn can only move diagonally when capturing")
			}
			m.Captured = victim
			m.IsEnPassant = true
		}
	default:
		return illegal("pawn cannot move from %s to %s", m.From, m.To)
	}

	if m.To.Row == board.BackRow(core.OppositeColor(color)) {
		m.IsPromotion = true
	}
	return nil
}

// firstBlocker walks the squares strictly between from and to and returns
// the first occupied one
func firstBlocker(b *board.Board, from, to board.Position) (bool, board.Position) {
	stepRow := sign(to.Row - from.Row)
	stepCol := sign(to.Col - from.Col)
	for cur := from.Offset(stepRow, stepCol); cur != to; cur = cur.Offset(stepRow, stepCol) {
		if !b.IsEmpty(cur) {
			return true, cur
		}
	}
	return false, board.Position{}
}

// isPathClear reports whether every square strictly between from and to is
// empty. from and to must share a rank, file or diagonal.
func isPathClear(b *board.Board, from, to board.Position) bool {
	blocked, _ := firstBlocker(b, from, to)
	return !blocked
}

func knightStep(rowDiff, colDiff int) bool {
	r, c := abs(rowDiff), abs(colDiff)
	return (r == 2 && c == 1) || (r == 1 && c == 2)
}

func diagonal(rowDiff, colDiff int) bool {
	return abs(rowDiff) == abs(colDiff) && rowDiff != 0
}

func straight(rowDiff, colDiff int) bool {
	return (rowDiff == 0) != (colDiff == 0)
}

func kingStep(rowDiff, colDiff int) bool {
	return abs(rowDiff) <= 1 && abs(colDiff) <= 1 && (rowDiff != 0 || colDiff != 0)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
