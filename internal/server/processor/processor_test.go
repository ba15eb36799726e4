package processor

import (
	"strings"
	"testing"
	"time"

	"chessrules/internal/server/core"
	"chessrules/internal/server/service"
)

func newProcessor(t *testing.T) *Processor {
	t.Helper()
	svc := service.New(nil)
	t.Cleanup(func() { svc.Shutdown(time.Second) })
	return New(svc)
}

func createGame(t *testing.T, p *Processor, fen string) core.GameResponse {
	t.Helper()
	resp := p.Execute(NewCreateGameCommand(core.CreateGameRequest{FEN: fen}))
	if !resp.Success {
		t.Fatalf("create game failed: %+v", resp.Error)
	}
	return resp.Data.(core.GameResponse)
}

func TestCreateGame(t *testing.T) {
	t.Parallel()

	p := newProcessor(t)
	g := createGame(t, p, "")
	if g.Turn != "w" || g.Status != "active" || len(g.Moves) != 0 || g.LastMove != nil {
		t.Fatalf("game = %+v", g)
	}

	tests := []struct {
		name string
		fen  string
	}{
		{"bad characters", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1; DROP"},
		{"control characters", "8/8/8/8/8/8/8/8\x00 w - - 0 1"},
		{"wrong shape", "rnbqkbnr/pppppppp w"},
		{"shape ok but unplayable", "8/8/8/8/8/8/8/8 w - - 0 1"},
	}
	for _, tt := range tests {
		resp := p.Execute(NewCreateGameCommand(core.CreateGameRequest{FEN: tt.fen}))
		if resp.Success || resp.Error.Code != core.ErrInvalidFEN {
			t.Errorf("%s: response = %+v", tt.name, resp)
		}
	}
}

func TestMakeMoveErrorCodes(t *testing.T) {
	t.Parallel()

	p := newProcessor(t)
	g := createGame(t, p, "")
	mate := createGame(t, p, "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1")

	tests := []struct {
		name   string
		gameID string
		req    core.MoveRequest
		code   string
	}{
		{"unknown game", "00000000-0000-0000-0000-000000000000", core.MoveRequest{From: "e2", To: "e4"}, core.ErrGameNotFound},
		{"bad from", g.GameID, core.MoveRequest{From: "z9", To: "e4"}, core.ErrInvalidNotation},
		{"bad to", g.GameID, core.MoveRequest{From: "e2", To: "e9"}, core.ErrInvalidNotation},
		{"uppercase from", g.GameID, core.MoveRequest{From: "E2", To: "e4"}, core.ErrInvalidNotation},
		{"uppercase to", g.GameID, core.MoveRequest{From: "e2", To: "E4"}, core.ErrInvalidNotation},
		{"padded from", g.GameID, core.MoveRequest{From: " e2", To: "e4"}, core.ErrInvalidNotation},
		{"file past h", g.GameID, core.MoveRequest{From: "i1", To: "e4"}, core.ErrInvalidNotation},
		{"bad promotion", g.GameID, core.MoveRequest{From: "e2", To: "e4", Promotion: "k"}, core.ErrInvalidRequest},
		{"illegal", g.GameID, core.MoveRequest{From: "e2", To: "e5"}, core.ErrIllegalMove},
		{"wrong turn", g.GameID, core.MoveRequest{From: "e7", To: "e5"}, core.ErrIllegalMove},
		{"game over", mate.GameID, core.MoveRequest{From: "g8", To: "f8"}, core.ErrGameOver},
	}

	for _, tt := range tests {
		resp := p.Execute(NewMakeMoveCommand(tt.gameID, tt.req))
		if resp.Success {
			t.Errorf("%s: unexpected success", tt.name)
			continue
		}
		if resp.Error.Code != tt.code {
			t.Errorf("%s: code = %s, want %s (%s)", tt.name, resp.Error.Code, tt.code, resp.Error.Details)
		}
	}

	if moves := p.Execute(NewGetMovesCommand(g.GameID)).Data.([]core.MoveInfo); len(moves) != 0 {
		t.Fatalf("rejected requests changed the game: %+v", moves)
	}

	illegal := p.Execute(NewMakeMoveCommand(g.GameID, core.MoveRequest{From: "e2", To: "e5"}))
	if illegal.Error.Details == "" {
		t.Fatalf("illegal move response carries no reason")
	}
}

func TestMakeMoveResponse(t *testing.T) {
	t.Parallel()

	p := newProcessor(t)
	g := createGame(t, p, "4k3/P7/8/8/8/8/8/4K3 w - - 0 1")

	resp := p.Execute(NewMakeMoveCommand(g.GameID, core.MoveRequest{From: "a7", To: "a8", Promotion: "N"}))
	if !resp.Success {
		t.Fatalf("promotion failed: %+v", resp.Error)
	}
	mr := resp.Data.(core.MoveResponse)
	if mr.Move.UCI != "a7a8n" || !mr.Move.IsPromotion || mr.Move.Promotion != "knight" || mr.Move.Number != 1 {
		t.Fatalf("move = %+v", mr.Move)
	}
	if mr.Game.Turn != "b" || mr.Game.LastMove == nil || mr.Game.LastMove.UCI != "a7a8n" {
		t.Fatalf("game = %+v", mr.Game)
	}
	if !strings.HasPrefix(mr.Game.FEN, "N3k3/") {
		t.Fatalf("FEN = %q", mr.Game.FEN)
	}
}

func TestQueries(t *testing.T) {
	t.Parallel()

	p := newProcessor(t)
	g := createGame(t, p, "")
	for _, mv := range [][2]string{{"e2", "e4"}, {"d7", "d5"}, {"e4", "d5"}} {
		if resp := p.Execute(NewMakeMoveCommand(g.GameID, core.MoveRequest{From: mv[0], To: mv[1]})); !resp.Success {
			t.Fatalf("%s%s: %+v", mv[0], mv[1], resp.Error)
		}
	}

	moves := p.Execute(NewGetMovesCommand(g.GameID)).Data.([]core.MoveInfo)
	if len(moves) != 3 || moves[2].Captured != "pawn" || moves[2].Number != 3 || moves[0].Captured != "" {
		t.Fatalf("moves = %+v", moves)
	}

	valid := p.Execute(NewGetValidMovesCommand(g.GameID, "d8"))
	if !valid.Success {
		t.Fatalf("valid moves: %+v", valid.Error)
	}
	vm := valid.Data.(core.ValidMovesResponse)
	if vm.Position != "d8" || strings.Join(vm.Destinations, ",") != "d7,d6,d5" {
		t.Fatalf("valid moves = %+v", vm)
	}

	empty := p.Execute(NewGetValidMovesCommand(g.GameID, "e4")).Data.(core.ValidMovesResponse)
	if empty.Destinations == nil || len(empty.Destinations) != 0 {
		t.Fatalf("empty square destinations = %#v", empty.Destinations)
	}

	for _, square := range []string{"i1", "e9", "G8", " e2", "e2 "} {
		if resp := p.Execute(NewGetValidMovesCommand(g.GameID, square)); resp.Error == nil || resp.Error.Code != core.ErrInvalidNotation {
			t.Fatalf("square %q: %+v", square, resp)
		}
	}

	b := p.Execute(NewGetBoardCommand(g.GameID)).Data.(core.BoardResponse)
	if !strings.Contains(b.Board, "a b c d e f g h") || b.FEN == "" {
		t.Fatalf("board = %+v", b)
	}
}

func TestDeleteGame(t *testing.T) {
	t.Parallel()

	p := newProcessor(t)
	g := createGame(t, p, "")

	for i := 0; i < 2; i++ {
		if resp := p.Execute(NewDeleteGameCommand(g.GameID)); !resp.Success {
			t.Fatalf("delete %d failed: %+v", i, resp.Error)
		}
	}
	if resp := p.Execute(NewGetGameCommand(g.GameID)); resp.Success || resp.Error.Code != core.ErrGameNotFound {
		t.Fatalf("get after delete = %+v", resp)
	}
}

func TestUnknownCommand(t *testing.T) {
	t.Parallel()

	resp := newProcessor(t).Execute(Command{Type: CommandType(99)})
	if resp.Success || resp.Error.Code != core.ErrInvalidRequest {
		t.Fatalf("response = %+v", resp)
	}
}
