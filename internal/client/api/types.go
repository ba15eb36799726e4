// FILE: internal/client/api/types.go
package api

import "encoding/json"

// Wire types of the chess server API, decoupled from the server packages

type HealthResponse struct {
	Status  string `json:"status"`
	Time    int64  `json:"time"`
	Games   int    `json:"games"`
	Storage string `json:"storage,omitempty"`
}

type CreateGameRequest struct {
	FEN string `json:"fen,omitempty"`
}

type MoveRequest struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

type GameResponse struct {
	GameID    string    `json:"gameId"`
	FEN       string    `json:"fen"`
	Turn      string    `json:"turn"`
	Status    string    `json:"status"`
	Moves     []string  `json:"moves"`
	LastMove  *MoveInfo `json:"lastMove,omitempty"`
	CreatedAt int64     `json:"createdAt"`
}

type MoveInfo struct {
	Number      int    `json:"number"`
	From        string `json:"from"`
	To          string `json:"to"`
	Piece       string `json:"piece"`
	Color       string `json:"color"`
	Captured    string `json:"captured,omitempty"`
	Promotion   string `json:"promotion,omitempty"`
	IsPromotion bool   `json:"isPromotion"`
	IsCastling  bool   `json:"isCastling"`
	IsEnPassant bool   `json:"isEnPassant"`
	UCI         string `json:"uci"`
}

type MoveResponse struct {
	Move MoveInfo     `json:"move"`
	Game GameResponse `json:"game"`
}

type ValidMovesResponse struct {
	Position     string   `json:"position"`
	Destinations []string `json:"destinations"`
}

type BoardResponse struct {
	FEN   string `json:"fen"`
	Board string `json:"board"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// StreamMessage is one websocket frame of the game stream
type StreamMessage struct {
	Type    string          `json:"type"` // state, move, error, deleted
	Payload json.RawMessage `json:"payload,omitempty"`
}
