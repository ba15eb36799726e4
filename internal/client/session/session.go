// FILE: internal/client/session/session.go
package session

import (
	"chessrules/internal/client/api"
	"chessrules/internal/client/config"
)

// Session is the mutable state of one client run
type Session struct {
	APIBaseURL       string
	Client           *api.Client
	Config           *config.Config
	CurrentGame      string
	CurrentGameState *api.GameResponse
	LastMoveCount    int
	Verbose          bool
}

func New(cfg *config.Config) *Session {
	return &Session{
		APIBaseURL: cfg.APIBaseURL,
		Client:     api.New(cfg.APIBaseURL),
		Config:     cfg,
	}
}

func (s *Session) GetAPIBaseURL() string { return s.APIBaseURL }

func (s *Session) SetAPIBaseURL(url string) {
	s.APIBaseURL = url
	s.Client.SetBaseURL(url)
	s.Config.APIBaseURL = url
}

func (s *Session) GetConfig() *config.Config { return s.Config }

func (s *Session) GetCurrentGame() string { return s.CurrentGame }

// SetCurrentGame switches games and forgets the cached state
func (s *Session) SetCurrentGame(id string) {
	s.CurrentGame = id
	s.CurrentGameState = nil
	s.LastMoveCount = 0
}

func (s *Session) GetLastMoveCount() int { return s.LastMoveCount }

func (s *Session) SetLastMoveCount(n int) { s.LastMoveCount = n }

func (s *Session) GetClient() *api.Client { return s.Client }

func (s *Session) IsVerbose() bool { return s.Verbose }

func (s *Session) GetGameState() *api.GameResponse { return s.CurrentGameState }

// SetGameState caches the latest state of the current game
func (s *Session) SetGameState(g *api.GameResponse) {
	s.CurrentGameState = g
	if g != nil {
		s.LastMoveCount = len(g.Moves)
	}
}
