// FILE: internal/server/core/api.go
package core

// Request types

type CreateGameRequest struct {
	FEN string `json:"fen,omitempty" validate:"omitempty,max=100"`
}

type MoveRequest struct {
	From      string `json:"from" validate:"required"`
	To        string `json:"to" validate:"required"`
	Promotion string `json:"promotion,omitempty" validate:"omitempty,oneof=q r b n Q R B N"`
}

// Response types

type GameResponse struct {
	GameID    string    `json:"gameId"`
	FEN       string    `json:"fen"`
	Turn      string    `json:"turn"`   // "w" or "b"
	Status    string    `json:"status"` // "active", "check", "checkmate", ...
	Moves     []string  `json:"moves"`  // UCI notation
	LastMove  *MoveInfo `json:"lastMove,omitempty"`
	CreatedAt int64     `json:"createdAt"`
}

type MoveInfo struct {
	Number      int    `json:"number"`
	From        string `json:"from"`
	To          string `json:"to"`
	Piece       string `json:"piece"`
	Color       string `json:"color"` // "w" or "b"
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
	Board string `json:"board"` // ASCII representation
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}
