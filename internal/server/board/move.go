// FILE: internal/server/board/move.go
package board

// Move is an immutable record of a transition. Piece is the mover as it
// stood before the move. Captured is the zero Piece when nothing was taken.
type Move struct {
	From        Position
	To          Position
	Piece       Piece
	Captured    Piece
	Promotion   PieceType
	IsPromotion bool
	IsCastling  bool
	IsEnPassant bool
}

// IsCapture reports whether the move removes an enemy piece
func (m Move) IsCapture() bool {
	return !m.Captured.IsEmpty()
}

// CapturedAt returns the square of the captured piece. For en passant this
// is beside the destination, not the destination itself.
func (m Move) CapturedAt() Position {
	if m.IsEnPassant {
		return Position{Row: m.From.Row, Col: m.To.Col}
	}
	return m.To
}

// IsDoublePawnPush reports a two-square pawn advance
func (m Move) IsDoublePawnPush() bool {
	d := m.To.Row - m.From.Row
	return m.Piece.Type == Pawn && m.From.Col == m.To.Col && (d == 2 || d == -2)
}

// UCI returns the move in long algebraic form, e.g. "e2e4" or "e7e8q"
func (m Move) UCI() string {
	s := m.From.Notation() + m.To.Notation()
	if m.IsPromotion {
		s += string(m.Promotion.Letter())
	}
	return s
}

func (m Move) String() string {
	return m.Piece.Type.String() + ": " + m.From.String() + " -> " + m.To.String()
}
