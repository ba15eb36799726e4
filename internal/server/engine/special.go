// FILE: internal/server/engine/special.go
package engine

import (
	"chessrules/internal/server/board"
	"chessrules/internal/server/core"
)

// checkCastling validates a two-square king move along the back rank
func checkCastling(b *board.Board, m *board.Move, colDiff int) error {
	color := m.Piece.Color
	if m.Piece.Moved {
		return illegal("king has already moved")
	}

	rookPos := board.Position{Row: m.From.Row, Col: 0}
	if colDiff > 0 {
		rookPos.Col = board.Size - 1
	}
	rook, ok := b.Get(rookPos)
	if !ok || rook.Type != board.Rook || rook.Color != color || rook.Moved {
		return illegal("castling requires an unmoved rook on %s", rookPos)
	}
	if blocked, at := firstBlocker(b, m.From, rookPos); blocked {
		return illegal("castling path is blocked at %s", at)
	}
	if !m.Captured.IsEmpty() {
		return illegal("castling path is blocked at %s", m.To)
	}

	enemy := core.OppositeColor(color)
	if IsAttacked(b, m.From, enemy) {
		return illegal("cannot castle out of check")
	}
	if passed := m.From.Offset(0, sign(colDiff)); IsAttacked(b, passed, enemy) {
		return illegal("cannot castle through attacked square %s", passed)
	}

	m.IsCastling = true
	return nil
}

// castlingRook returns the rook's origin and destination for a castling move
func castlingRook(m board.Move) (from, to board.Position) {
	row := m.From.Row
	if m.To.Col > m.From.Col {
		return board.Position{Row: row, Col: board.Size - 1}, board.Position{Row: row, Col: m.To.Col - 1}
	}
	return board.Position{Row: row, Col: 0}, board.Position{Row: row, Col: m.To.Col + 1}
}

// enPassantVictim returns the pawn a diagonal move onto an empty square
// would take en passant. Only a double push made on the immediately
// preceding move, landing beside the capturing pawn, qualifies.
func enPassantVictim(ctx Context, m *board.Move) (board.Piece, bool) {
	last, ok := ctx.LastMove()
	if !ok || !last.IsDoublePawnPush() || last.Piece.Color == m.Piece.Color {
		return board.Piece{}, false
	}
	if last.To.Row != m.From.Row || last.To.Col != m.To.Col {
		return board.Piece{}, false
	}
	victim, ok := ctx.Board().Get(last.To)
	if !ok || victim.Type != board.Pawn || victim.Color == m.Piece.Color {
		return board.Piece{}, false
	}
	return victim, true
}

// Perform executes a validated move on b, including the rook hop of
// castling, removal of a pawn taken en passant and promotion. Performing a
// move that was not produced by Validate for this board is a programming
// error and may panic.
func Perform(b *board.Board, m board.Move) {
	if m.IsEnPassant {
		b.Clear(m.CapturedAt())
	}

	b.MovePiece(m)

	if m.IsCastling {
		rookFrom, rookTo := castlingRook(m)
		b.MovePiece(board.Move{From: rookFrom, To: rookTo})
	}

	if m.IsPromotion {
		b.Set(m.To, board.Piece{Type: m.Promotion, Color: m.Piece.Color, Moved: true})
	}
}
