// FILE: internal/server/core/state.go
package core

// Status is the classification of a game from the side to move's point of view
type Status int

const (
	StatusActive Status = iota
	StatusCheck
	StatusCheckmate
	StatusStalemate
	StatusDraw
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusCheck:
		return "check"
	case StatusCheckmate:
		return "checkmate"
	case StatusStalemate:
		return "stalemate"
	case StatusDraw:
		return "draw"
	default:
		return "unknown"
	}
}

// IsOver reports whether no further moves can be made
func (s Status) IsOver() bool {
	return s == StatusCheckmate || s == StatusStalemate || s == StatusDraw
}
