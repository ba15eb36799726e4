// FILE: internal/server/engine/attack.go
package engine

import (
	"chessrules/internal/server/board"
	"chessrules/internal/server/core"
)

// IsInCheck reports whether the king of color is attacked. A board without
// that king is never in check.
func IsInCheck(b *board.Board, color core.Color) bool {
	king, ok := b.King(color)
	if !ok {
		return false
	}
	return IsAttacked(b, king, core.OppositeColor(color))
}

// IsAttacked reports whether any piece of color by could move onto target,
// ignoring whether that move would expose its own king. Pawns attack their
// forward diagonals whether or not the square is occupied.
func IsAttacked(b *board.Board, target board.Position, by core.Color) bool {
	for _, pl := range b.PiecesOfColor(by) {
		if attacks(b, pl, target) {
			return true
		}
	}
	return false
}

func attacks(b *board.Board, pl board.Placed, target board.Position) bool {
	rowDiff := target.Row - pl.Pos.Row
	colDiff := target.Col - pl.Pos.Col

	switch pl.Piece.Type {
	case board.Pawn:
		return rowDiff == board.Forward(pl.Piece.Color) && abs(colDiff) == 1
	case board.Knight:
		return knightStep(rowDiff, colDiff)
	case board.Bishop:
		return diagonal(rowDiff, colDiff) && isPathClear(b, pl.Pos, target)
	case board.Rook:
		return straight(rowDiff, colDiff) && isPathClear(b, pl.Pos, target)
	case board.Queen:
		return (straight(rowDiff, colDiff) || diagonal(rowDiff, colDiff)) && isPathClear(b, pl.Pos, target)
	case board.King:
		return kingStep(rowDiff, colDiff)
	default:
		return false
	}
}

// leavesKingAttacked plays m on a scratch copy of b and reports whether the
// mover's king is attacked afterwards
func leavesKingAttacked(b *board.Board, m board.Move) bool {
	scratch := *b
	Perform(&scratch, m)
	return IsInCheck(&scratch, m.Piece.Color)
}
