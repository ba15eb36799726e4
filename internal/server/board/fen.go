// FILE: internal/server/board/fen.go
package board

import (
	"fmt"
	"strconv"
	"strings"

	"chessrules/internal/server/core"
)

const (
	StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
)

// Setup is a position decoded from FEN
type Setup struct {
	Board     *Board
	Turn      core.Color
	EnPassant *Position // square passed over by the last double pawn push
	HalfMove  int
	FullMove  int
}

// castleCorner describes where the king and one rook start for a castling right
type castleCorner struct {
	letter byte
	color  core.Color
	rook   Position
}

var castleCorners = []castleCorner{
	{'K', core.ColorWhite, Position{Row: 7, Col: 7}},
	{'Q', core.ColorWhite, Position{Row: 7, Col: 0}},
	{'k', core.ColorBlack, Position{Row: 0, Col: 7}},
	{'q', core.ColorBlack, Position{Row: 0, Col: 0}},
}

// KingHome is the king's starting square
func KingHome(c core.Color) Position {
	return Position{Row: BackRow(c), Col: 4}
}

func ParseFEN(fen string) (*Setup, error) {
	parts := strings.Fields(fen)
	if len(parts) != 6 {
		return nil, fmt.Errorf("invalid FEN: expected 6 parts, got %d", len(parts))
	}

	s := &Setup{Board: NewEmpty()}

	ranks := strings.Split(parts[0], "/")
	if len(ranks) != Size {
		return nil, fmt.Errorf("invalid FEN: expected 8 ranks")
	}

	for r := 0; r < Size; r++ {
		file := 0
		for i := 0; i < len(ranks[r]); i++ {
			ch := ranks[r][i]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			if file >= Size {
				return nil, fmt.Errorf("invalid FEN: too many pieces in rank %d", Size-r)
			}
			p, ok := PieceFromLetter(ch)
			if !ok {
				return nil, fmt.Errorf("invalid FEN: unknown piece %q", ch)
			}
			// Kings and rooks regain their unmoved state from the castling field
			p.Moved = p.Type == King || p.Type == Rook || (p.Type == Pawn && r != PawnRow(p.Color))
			s.Board.Set(Position{Row: r, Col: file}, p)
			file++
		}
		if file != Size {
			return nil, fmt.Errorf("invalid FEN: rank %d has %d files", Size-r, file)
		}
	}

	for _, c := range []core.Color{core.ColorWhite, core.ColorBlack} {
		kings := 0
		for _, pl := range s.Board.PiecesOfColor(c) {
			if pl.Piece.Type == King {
				kings++
			}
			if pl.Piece.Type == Pawn && (pl.Pos.Row == 0 || pl.Pos.Row == Size-1) {
				return nil, fmt.Errorf("invalid FEN: pawn on back rank at %s", pl.Pos)
			}
		}
		if kings != 1 {
			return nil, fmt.Errorf("invalid FEN: %s must have exactly one king", c.Name())
		}
	}

	switch parts[1] {
	case "w":
		s.Turn = core.ColorWhite
	case "b":
		s.Turn = core.ColorBlack
	default:
		return nil, fmt.Errorf("invalid FEN: turn must be 'w' or 'b'")
	}

	if err := s.applyCastling(parts[2]); err != nil {
		return nil, err
	}

	if parts[3] != "-" {
		ep, err := ParsePosition(parts[3])
		if err != nil {
			return nil, fmt.Errorf("invalid FEN: en passant square: %w", err)
		}
		// The target lies behind a pawn of the side that just moved
		wantRow := 2
		if s.Turn == core.ColorBlack {
			wantRow = 5
		}
		if ep.Row != wantRow {
			return nil, fmt.Errorf("invalid FEN: en passant square %s on wrong rank", ep)
		}
		s.EnPassant = &ep
	}

	var err error
	if s.HalfMove, err = strconv.Atoi(parts[4]); err != nil || s.HalfMove < 0 {
		return nil, fmt.Errorf("invalid FEN: halfmove counter")
	}
	if s.FullMove, err = strconv.Atoi(parts[5]); err != nil || s.FullMove < 1 {
		return nil, fmt.Errorf("invalid FEN: fullmove counter")
	}

	return s, nil
}

// applyCastling clears the moved flag on kings and rooks that keep a
// castling right
func (s *Setup) applyCastling(field string) error {
	if field == "-" {
		return nil
	}
	for i := 0; i < len(field); i++ {
		var corner *castleCorner
		for j := range castleCorners {
			if castleCorners[j].letter == field[i] {
				corner = &castleCorners[j]
			}
		}
		if corner == nil {
			return fmt.Errorf("invalid FEN: castling field %q", field)
		}
		king, ok := s.Board.Get(KingHome(corner.color))
		if !ok || king.Type != King || king.Color != corner.color {
			return fmt.Errorf("invalid FEN: castling right %c without king on %s", corner.letter, KingHome(corner.color))
		}
		rook, ok := s.Board.Get(corner.rook)
		if !ok || rook.Type != Rook || rook.Color != corner.color {
			return fmt.Errorf("invalid FEN: castling right %c without rook on %s", corner.letter, corner.rook)
		}
		king.Moved = false
		rook.Moved = false
		s.Board.Set(KingHome(corner.color), king)
		s.Board.Set(corner.rook, rook)
	}
	return nil
}

// CastlingRights derives the FEN castling field from the moved flags
func (b *Board) CastlingRights() string {
	var sb strings.Builder
	for _, corner := range castleCorners {
		king, ok := b.Get(KingHome(corner.color))
		if !ok || king.Type != King || king.Color != corner.color || king.Moved {
			continue
		}
		rook, ok := b.Get(corner.rook)
		if !ok || rook.Type != Rook || rook.Color != corner.color || rook.Moved {
			continue
		}
		sb.WriteByte(corner.letter)
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// EncodeFEN writes a position in Forsyth-Edwards Notation
func EncodeFEN(b *Board, turn core.Color, enPassant *Position, halfMove, fullMove int) string {
	var sb strings.Builder
	for r := 0; r < Size; r++ {
		empty := 0
		for f := 0; f < Size; f++ {
			p := b.squares[r][f]
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.Letter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if r < Size-1 {
			sb.WriteByte('/')
		}
	}

	ep := "-"
	if enPassant != nil {
		ep = enPassant.Notation()
	}

	return fmt.Sprintf("%s %s %s %s %d %d", sb.String(), turn, b.CastlingRights(), ep, halfMove, fullMove)
}
