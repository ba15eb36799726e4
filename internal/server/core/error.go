// FILE: internal/server/core/error.go
package core

// Error codes
const (
	ErrGameNotFound      = "GAME_NOT_FOUND"
	ErrIllegalMove       = "ILLEGAL_MOVE"
	ErrInvalidNotation   = "INVALID_NOTATION"
	ErrGameOver          = "GAME_OVER"
	ErrRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrInvalidContent    = "INVALID_CONTENT_TYPE"
	ErrInvalidRequest    = "INVALID_REQUEST"
	ErrInvalidFEN        = "INVALID_FEN"
	ErrInternalError     = "INTERNAL_ERROR"
)
