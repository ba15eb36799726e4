// FILE: internal/server/board/piece.go
package board

import (
	"fmt"
	"strings"

	"chessrules/internal/server/core"
)

// PieceType is the kind of a piece. The zero value marks an empty square.
type PieceType int

const (
	NoPiece PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

func (t PieceType) String() string {
	switch t {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return ""
	}
}

// Letter returns the lowercase FEN letter for the type
func (t PieceType) Letter() byte {
	switch t {
	case Pawn:
		return 'p'
	case Knight:
		return 'n'
	case Bishop:
		return 'b'
	case Rook:
		return 'r'
	case Queen:
		return 'q'
	case King:
		return 'k'
	default:
		return 0
	}
}

// ParsePromotion maps a promotion letter to a piece type. An empty string
// selects a queen.
func ParsePromotion(s string) (PieceType, error) {
	switch strings.ToLower(s) {
	case "", "q":
		return Queen, nil
	case "r":
		return Rook, nil
	case "b":
		return Bishop, nil
	case "n":
		return Knight, nil
	default:
		return NoPiece, fmt.Errorf("invalid promotion piece %q", s)
	}
}

// Piece is the content of a square. It carries no position of its own; where
// a piece stands is defined only by the board cell holding it.
type Piece struct {
	Type  PieceType
	Color core.Color
	Moved bool
}

// NewPiece returns an unmoved piece
func NewPiece(t PieceType, c core.Color) Piece {
	return Piece{Type: t, Color: c}
}

// IsEmpty reports whether the value denotes an empty square
func (p Piece) IsEmpty() bool {
	return p.Type == NoPiece
}

// Letter returns the FEN letter, uppercase for White
func (p Piece) Letter() byte {
	l := p.Type.Letter()
	if l != 0 && p.Color == core.ColorWhite {
		l -= 'a' - 'A'
	}
	return l
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return ""
	}
	return fmt.Sprintf("%s %s", p.Color.Name(), p.Type)
}

// PieceFromLetter parses a FEN piece letter
func PieceFromLetter(ch byte) (Piece, bool) {
	color := core.ColorBlack
	if ch >= 'A' && ch <= 'Z' {
		color = core.ColorWhite
		ch += 'a' - 'A'
	}
	var t PieceType
	switch ch {
	case 'p':
		t = Pawn
	case 'n':
		t = Knight
	case 'b':
		t = Bishop
	case 'r':
		t = Rook
	case 'q':
		t = Queen
	case 'k':
		t = King
	default:
		return Piece{}, false
	}
	return Piece{Type: t, Color: color}, true
}
