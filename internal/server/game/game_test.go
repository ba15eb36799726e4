package game

import (
	"errors"
	"testing"

	"chessrules/internal/server/board"
	"chessrules/internal/server/core"
	"chessrules/internal/server/engine"
)

func sq(s string) board.Position {
	return board.MustParsePosition(s)
}

func play(t *testing.T, g *Game, moves ...string) {
	t.Helper()
	for _, uci := range moves {
		promo := board.NoPiece
		if len(uci) == 5 {
			promo, _ = board.ParsePromotion(uci[4:])
		}
		if _, err := g.Play(sq(uci[:2]), sq(uci[2:4]), promo); err != nil {
			t.Fatalf("%s: %v", uci, err)
		}
	}
}

func TestNewGame(t *testing.T) {
	t.Parallel()

	g := New("g1")
	if g.ID() != "g1" || g.Turn() != core.ColorWhite || g.Status() != core.StatusActive {
		t.Fatalf("unexpected initial state: id=%s turn=%v status=%v", g.ID(), g.Turn(), g.Status())
	}
	if g.MoveCount() != 0 || len(g.History()) != 0 {
		t.Fatalf("new game has history")
	}
	if _, ok := g.LastMove(); ok {
		t.Fatalf("new game has a last move")
	}
	if g.FEN() != board.StartingFEN || g.InitialFEN() != board.StartingFEN {
		t.Fatalf("FEN = %q", g.FEN())
	}
}

func TestPlayFlipsTurnAndRecords(t *testing.T) {
	t.Parallel()

	g := New("g")
	m, err := g.Play(sq("e2"), sq("e4"), board.NoPiece)
	if err != nil {
		t.Fatalf("e2e4: %v", err)
	}
	if g.Turn() != core.ColorBlack {
		t.Fatalf("turn = %v, want black", g.Turn())
	}
	if last, ok := g.LastMove(); !ok || last != m {
		t.Fatalf("LastMove = %+v, %v", last, ok)
	}
	if g.board.IsEmpty(sq("e4")) || !g.board.IsEmpty(sq("e2")) {
		t.Fatalf("pawn not relocated")
	}

	want := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"
	if got := g.FEN(); got != want {
		t.Fatalf("FEN = %q, want %q", got, want)
	}
}

func TestIllegalMoveLeavesGameUntouched(t *testing.T) {
	t.Parallel()

	g := New("g")
	play(t, g, "e2e4")
	before := g.Snapshot()

	tests := []struct {
		name     string
		from, to string
	}{
		{"wrong color", "d2", "d4"},
		{"empty square", "d4", "d5"},
		{"bad geometry", "g8", "g6"},
		{"blocked", "a8", "a6"},
	}
	for _, tt := range tests {
		_, err := g.Play(sq(tt.from), sq(tt.to), board.NoPiece)
		if !errors.Is(err, engine.ErrIllegalMove) {
			t.Errorf("%s: error = %v, want illegal move", tt.name, err)
		}
	}

	after := g.Snapshot()
	if after.Board != before.Board || after.Turn != before.Turn || after.FEN != before.FEN || len(after.History) != len(before.History) {
		t.Fatalf("game changed after rejected moves")
	}
}

func TestApplyMoveRequiresExactMatch(t *testing.T) {
	t.Parallel()

	g := New("g")
	pawn, _ := g.Board().Get(sq("e2"))

	forged := board.Move{From: sq("e2"), To: sq("e4"), Piece: pawn, IsEnPassant: true}
	if err := g.ApplyMove(forged); !errors.Is(err, engine.ErrIllegalMove) {
		t.Fatalf("forged flags: error = %v", err)
	}
	if g.MoveCount() != 0 {
		t.Fatalf("forged move was applied")
	}

	exact := board.Move{From: sq("e2"), To: sq("e4"), Piece: pawn}
	if err := g.ApplyMove(exact); err != nil {
		t.Fatalf("exact move: %v", err)
	}
	if g.MoveCount() != 1 || g.Turn() != core.ColorBlack {
		t.Fatalf("exact move not applied")
	}
}

func TestGameOverRejectsMoves(t *testing.T) {
	t.Parallel()

	g := New("g")
	play(t, g, "f2f3", "e7e5", "g2g4", "d8h4")
	if g.Status() != core.StatusCheckmate {
		t.Fatalf("status = %v, want checkmate", g.Status())
	}

	_, err := g.Play(sq("a2"), sq("a3"), board.NoPiece)
	if !errors.Is(err, ErrGameOver) {
		t.Fatalf("error = %v, want ErrGameOver", err)
	}
	if g.MoveCount() != 4 {
		t.Fatalf("move count = %d, want 4", g.MoveCount())
	}
}

func TestStatusProgression(t *testing.T) {
	t.Parallel()

	g := New("g")
	play(t, g, "e2e4", "f7f6", "d2d4", "g7g5")
	if g.Status() != core.StatusActive {
		t.Fatalf("status = %v", g.Status())
	}
	play(t, g, "d1h5")
	if g.Status() != core.StatusCheckmate {
		t.Fatalf("status after Qh5 = %v, want checkmate", g.Status())
	}

	g = New("g")
	play(t, g, "e2e4", "f7f5", "d1h5")
	if g.Status() != core.StatusCheck {
		t.Fatalf("status after Qh5+ = %v, want check", g.Status())
	}
}

func TestClocks(t *testing.T) {
	t.Parallel()

	g := New("g")
	play(t, g, "g1f3", "g8f6", "f3g1")
	if g.halfMove != 3 || g.fullMove != 2 {
		t.Fatalf("clocks = %d/%d, want 3/2", g.halfMove, g.fullMove)
	}
	play(t, g, "e7e5")
	if g.halfMove != 0 || g.fullMove != 3 {
		t.Fatalf("clocks after pawn move = %d/%d, want 0/3", g.halfMove, g.fullMove)
	}
}

func TestNewFromFEN(t *testing.T) {
	t.Parallel()

	t.Run("en passant target is playable", func(t *testing.T) {
		t.Parallel()

		g, err := NewFromFEN("g", "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 2")
		if err != nil {
			t.Fatalf("NewFromFEN: %v", err)
		}
		m, err := g.Play(sq("e5"), sq("d6"), board.NoPiece)
		if err != nil || !m.IsEnPassant {
			t.Fatalf("e5xd6: %+v, %v", m, err)
		}
		if !g.Board().IsEmpty(sq("d5")) {
			t.Fatalf("captured pawn still on d5")
		}
	})

	t.Run("keeps initial FEN", func(t *testing.T) {
		t.Parallel()

		const fen = "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"
		g, err := NewFromFEN("g", fen)
		if err != nil {
			t.Fatalf("NewFromFEN: %v", err)
		}
		play(t, g, "e1g1")
		if g.InitialFEN() != fen {
			t.Fatalf("InitialFEN = %q", g.InitialFEN())
		}
		if got := g.FEN(); got != "r3k2r/8/8/8/8/8/8/R4RK1 b kq - 1 1" {
			t.Fatalf("FEN after castling = %q", got)
		}
	})

	t.Run("terminal start", func(t *testing.T) {
		t.Parallel()

		g, err := NewFromFEN("g", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
		if err != nil {
			t.Fatalf("NewFromFEN: %v", err)
		}
		if g.Status() != core.StatusStalemate {
			t.Fatalf("status = %v, want stalemate", g.Status())
		}
	})

	invalid := []struct {
		name string
		fen  string
	}{
		{"garbage", "not a fen"},
		{"no pawn behind target", "4k3/8/8/8/8/8/8/4K3 w - d6 0 2"},
		{"side not to move in check", "4k3/8/8/8/8/8/4R3/4K3 w - - 0 1"},
	}
	for _, tt := range invalid {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := NewFromFEN("g", tt.fen); err == nil {
				t.Fatalf("NewFromFEN(%q) succeeded", tt.fen)
			}
		})
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	t.Parallel()

	g := New("g")
	snap := g.Snapshot()
	play(t, g, "e2e4")

	if snap.Board.IsEmpty(sq("e2")) {
		t.Fatalf("snapshot board followed the game")
	}
	if len(snap.History) != 0 {
		t.Fatalf("snapshot history followed the game")
	}

	snap = g.Snapshot()
	if got := snap.Moves(); len(got) != 1 || got[0] != "e2e4" {
		t.Fatalf("Moves = %v", got)
	}
	if last, ok := snap.LastMove(); !ok || last.UCI() != "e2e4" {
		t.Fatalf("snapshot LastMove = %+v, %v", last, ok)
	}
}
