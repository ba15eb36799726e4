package engine

import (
	"testing"

	"chessrules/internal/server/board"
	"chessrules/internal/server/core"
)

// position is a minimal Context for exercising the rules without a Game
type position struct {
	board board.Board
	turn  core.Color
	last  *board.Move
}

func (p *position) Board() *board.Board { return &p.board }
func (p *position) Turn() core.Color    { return p.turn }
func (p *position) LastMove() (board.Move, bool) {
	if p.last == nil {
		return board.Move{}, false
	}
	return *p.last, true
}

func startPosition() *position {
	return &position{board: *board.New(), turn: core.ColorWhite}
}

func fromFEN(t testing.TB, fen string) *position {
	t.Helper()
	setup, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	p := &position{board: *setup.Board, turn: setup.Turn}
	if setup.EnPassant != nil {
		mover := core.OppositeColor(setup.Turn)
		dir := board.Forward(mover)
		to := setup.EnPassant.Offset(dir, 0)
		pawn, _ := p.board.Get(to)
		p.last = &board.Move{From: setup.EnPassant.Offset(-dir, 0), To: to, Piece: pawn}
	}
	return p
}

// play applies a legal move; promotion defaults to a queen
func (p *position) play(m board.Move) {
	Perform(&p.board, m)
	p.last = &m
	p.turn = core.OppositeColor(p.turn)
}

// mustPlay validates and applies each UCI move in turn
func mustPlay(t testing.TB, p *position, moves ...string) {
	t.Helper()
	for _, uci := range moves {
		m, err := validateUCI(p, uci)
		if err != nil {
			t.Fatalf("%s: %v", uci, err)
		}
		p.play(m)
	}
}

func validateUCI(p *position, uci string) (board.Move, error) {
	from := board.MustParsePosition(uci[0:2])
	to := board.MustParsePosition(uci[2:4])
	promo := board.NoPiece
	if len(uci) == 5 {
		promo, _ = board.ParsePromotion(uci[4:])
	}
	return Validate(p, from, to, promo)
}

// allMoves lists legal moves with every promotion choice spelled out
func allMoves(p *position) []board.Move {
	var out []board.Move
	for _, m := range LegalMoves(p) {
		if !m.IsPromotion {
			out = append(out, m)
			continue
		}
		for _, pt := range []board.PieceType{board.Queen, board.Rook, board.Bishop, board.Knight} {
			pm, err := Validate(p, m.From, m.To, pt)
			if err != nil {
				panic("promotion choice rejected: " + err.Error())
			}
			out = append(out, pm)
		}
	}
	return out
}

func sq(s string) board.Position {
	return board.MustParsePosition(s)
}
