// FILE: internal/server/board/board.go
package board

import (
	"fmt"
	"strings"

	"chessrules/internal/server/core"
)

// Board is an 8x8 grid of pieces. It holds no rule knowledge. Boards are
// values: assigning one copies every square.
type Board struct {
	squares [Size][Size]Piece
}

// Placed pairs a piece with the square it occupies
type Placed struct {
	Pos   Position
	Piece Piece
}

var backRank = [Size]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// New returns a board in the standard starting position
func New() *Board {
	b := &Board{}
	for col := 0; col < Size; col++ {
		b.squares[BackRow(core.ColorBlack)][col] = NewPiece(backRank[col], core.ColorBlack)
		b.squares[PawnRow(core.ColorBlack)][col] = NewPiece(Pawn, core.ColorBlack)
		b.squares[PawnRow(core.ColorWhite)][col] = NewPiece(Pawn, core.ColorWhite)
		b.squares[BackRow(core.ColorWhite)][col] = NewPiece(backRank[col], core.ColorWhite)
	}
	return b
}

// NewEmpty returns a board with no pieces
func NewEmpty() *Board {
	return &Board{}
}

// BackRow is the row holding the color's major pieces at the start
func BackRow(c core.Color) int {
	if c == core.ColorWhite {
		return Size - 1
	}
	return 0
}

// PawnRow is the row holding the color's pawns at the start
func PawnRow(c core.Color) int {
	if c == core.ColorWhite {
		return Size - 2
	}
	return 1
}

// Forward is the row direction the color's pawns advance in
func Forward(c core.Color) int {
	if c == core.ColorWhite {
		return -1
	}
	return 1
}

// IsPositionValid reports whether pos is on the board
func (b *Board) IsPositionValid(pos Position) bool {
	return pos.Valid()
}

// Get returns the piece at pos. The boolean is false for empty squares and
// positions off the board.
func (b *Board) Get(pos Position) (Piece, bool) {
	if !pos.Valid() {
		return Piece{}, false
	}
	p := b.squares[pos.Row][pos.Col]
	return p, !p.IsEmpty()
}

// IsEmpty reports whether pos is on the board and unoccupied
func (b *Board) IsEmpty(pos Position) bool {
	return pos.Valid() && b.squares[pos.Row][pos.Col].IsEmpty()
}

// Set places p at pos, replacing any occupant. Setting the zero Piece clears
// the square.
func (b *Board) Set(pos Position, p Piece) {
	if !pos.Valid() {
		panic(fmt.Sprintf("board: set on invalid position %v", pos))
	}
	b.squares[pos.Row][pos.Col] = p
}

// Clear empties pos
func (b *Board) Clear(pos Position) {
	b.Set(pos, Piece{})
}

// MovePiece relocates the piece on m.From to m.To and marks it as moved. Any
// occupant of m.To is overwritten. Captures on other squares and rook
// relocation for castling are left to the caller.
func (b *Board) MovePiece(m Move) {
	p, ok := b.Get(m.From)
	if !ok {
		panic(fmt.Sprintf("board: no piece to move on %v", m.From))
	}
	p.Moved = true
	b.Clear(m.From)
	b.Set(m.To, p)
}

// PiecesOfColor lists every piece of the given color in row-major order
func (b *Board) PiecesOfColor(c core.Color) []Placed {
	var out []Placed
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			p := b.squares[row][col]
			if !p.IsEmpty() && p.Color == c {
				out = append(out, Placed{Pos: Position{Row: row, Col: col}, Piece: p})
			}
		}
	}
	return out
}

// King finds the king of the given color
func (b *Board) King(c core.Color) (Position, bool) {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			p := b.squares[row][col]
			if p.Type == King && p.Color == c {
				return Position{Row: row, Col: col}, true
			}
		}
	}
	return Position{}, false
}

// ASCII renders the board from White's side with FEN letters
func (b *Board) ASCII() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")

	for r := 0; r < Size; r++ {
		sb.WriteString(fmt.Sprintf("%d ", Size-r))
		for f := 0; f < Size; f++ {
			piece := b.squares[r][f]
			if piece.IsEmpty() {
				sb.WriteString(". ")
			} else {
				sb.WriteString(fmt.Sprintf("%c ", piece.Letter()))
			}
		}
		sb.WriteString(fmt.Sprintf(" %d\n", Size-r))
	}
	sb.WriteString("  a b c d e f g h")

	return sb.String()
}
