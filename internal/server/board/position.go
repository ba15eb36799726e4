// FILE: internal/server/board/position.go
package board

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Size is the number of rows and columns on the board
const Size = 8

var ErrInvalidNotation = errors.New("invalid notation")

// Position addresses a square. Row 0 is rank 8 (Black's back rank), row 7 is
// rank 1. Col 0 is the a-file.
type Position struct {
	Row int
	Col int
}

// Valid reports whether the position lies on the board
func (p Position) Valid() bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

// Notation returns the algebraic square name, e.g. "e4"
func (p Position) Notation() string {
	return fmt.Sprintf("%c%d", 'a'+p.Col, Size-p.Row)
}

func (p Position) String() string {
	if !p.Valid() {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return p.Notation()
}

// Offset returns the position shifted by the given row and column deltas.
// The result may be off the board.
func (p Position) Offset(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

// ParsePosition converts a two character square name into a Position
func ParsePosition(notation string) (Position, error) {
	if len(notation) != 2 {
		return Position{}, fmt.Errorf("%w: %q must be exactly 2 characters", ErrInvalidNotation, notation)
	}
	file, rank := notation[0], notation[1]
	if file < 'a' || file > 'h' {
		return Position{}, fmt.Errorf("%w: %q has file outside a-h", ErrInvalidNotation, notation)
	}
	if rank < '1' || rank > '8' {
		return Position{}, fmt.Errorf("%w: %q has rank outside 1-8", ErrInvalidNotation, notation)
	}
	return Position{Row: Size - int(rank-'0'), Col: int(file - 'a')}, nil
}

// MustParsePosition is ParsePosition for compile-time constant squares
func MustParsePosition(notation string) Position {
	p, err := ParsePosition(notation)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Notation())
}

func (p *Position) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePosition(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
