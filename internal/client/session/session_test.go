package session

import (
	"testing"

	"chessrules/internal/client/api"
	"chessrules/internal/client/config"
)

func TestSession(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig
	s := New(&cfg)

	s.SetAPIBaseURL("http://other:1234")
	if s.GetClient().BaseURL != "http://other:1234" || cfg.APIBaseURL != "http://other:1234" {
		t.Fatalf("base URL not propagated: client %q, config %q", s.GetClient().BaseURL, cfg.APIBaseURL)
	}

	s.SetCurrentGame("g1")
	s.SetGameState(&api.GameResponse{GameID: "g1", Moves: []string{"e2e4", "e7e5"}})
	if s.GetLastMoveCount() != 2 {
		t.Fatalf("LastMoveCount = %d, want 2", s.GetLastMoveCount())
	}

	s.SetCurrentGame("g2")
	if s.GetGameState() != nil || s.GetLastMoveCount() != 0 {
		t.Fatalf("switching games kept cached state")
	}
}
