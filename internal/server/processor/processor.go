// FILE: internal/server/processor/processor.go
package processor

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"chessrules/internal/server/board"
	"chessrules/internal/server/core"
	"chessrules/internal/server/engine"
	"chessrules/internal/server/game"
	"chessrules/internal/server/service"
)

// FEN validation regex
var fenPattern = regexp.MustCompile(`^[rnbqkpRNBQKP1-8/]+ [wb] [KQkq-]+ [a-h1-8-]+ \d+ \d+$`)

// Processor translates transport commands into service calls and shapes the
// responses
type Processor struct {
	svc *service.Service
}

func New(svc *service.Service) *Processor {
	return &Processor{svc: svc}
}

func (p *Processor) Execute(cmd Command) ProcessorResponse {
	switch cmd.Type {
	case CmdCreateGame:
		return p.handleCreateGame(cmd)
	case CmdGetGame:
		return p.handleGetGame(cmd)
	case CmdMakeMove:
		return p.handleMakeMove(cmd)
	case CmdDeleteGame:
		return p.handleDeleteGame(cmd)
	case CmdGetMoves:
		return p.handleGetMoves(cmd)
	case CmdGetValidMoves:
		return p.handleGetValidMoves(cmd)
	case CmdGetBoard:
		return p.handleGetBoard(cmd)
	default:
		return p.errorResponse("unknown command", core.ErrInvalidRequest, "")
	}
}

// isFENSafe checks for control characters and the overall FEN shape
func (p *Processor) isFENSafe(fen string) bool {
	for _, r := range fen {
		if unicode.IsControl(r) {
			return false
		}
	}
	return fenPattern.MatchString(fen)
}

// handleCreateGame creates a new game from the standard or a custom position
func (p *Processor) handleCreateGame(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.CreateGameRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest, "")
	}

	fen := strings.TrimSpace(args.FEN)
	if fen != "" && !p.isFENSafe(fen) {
		return p.errorResponse("invalid FEN format or characters", core.ErrInvalidFEN, "")
	}

	snap, err := p.svc.CreateGame(fen)
	if err != nil {
		return p.errorResponse("invalid FEN", core.ErrInvalidFEN, err.Error())
	}

	return ProcessorResponse{
		Success: true,
		Data:    BuildGameResponse(snap),
	}
}

func (p *Processor) handleGetGame(cmd Command) ProcessorResponse {
	snap, err := p.svc.GetGame(cmd.GameID)
	if err != nil {
		return p.fromError(err)
	}

	return ProcessorResponse{
		Success: true,
		Data:    BuildGameResponse(snap),
	}
}

// handleMakeMove parses the squares and submits the move
func (p *Processor) handleMakeMove(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.MoveRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest, "")
	}

	from, err := board.ParsePosition(args.From)
	if err != nil {
		return p.fromError(err)
	}
	to, err := board.ParsePosition(args.To)
	if err != nil {
		return p.fromError(err)
	}
	promotion := board.NoPiece
	if args.Promotion != "" {
		if promotion, err = board.ParsePromotion(args.Promotion); err != nil {
			return p.errorResponse("invalid promotion piece", core.ErrInvalidRequest, err.Error())
		}
	}

	move, snap, err := p.svc.MakeMove(cmd.GameID, from, to, promotion)
	if err != nil {
		return p.fromError(err)
	}

	return ProcessorResponse{
		Success: true,
		Data: core.MoveResponse{
			Move: BuildMoveInfo(move, len(snap.History)),
			Game: BuildGameResponse(snap),
		},
	}
}

// handleDeleteGame removes a game; unknown ids succeed as well
func (p *Processor) handleDeleteGame(cmd Command) ProcessorResponse {
	p.svc.DeleteGame(cmd.GameID)
	return ProcessorResponse{Success: true}
}

func (p *Processor) handleGetMoves(cmd Command) ProcessorResponse {
	history, err := p.svc.History(cmd.GameID)
	if err != nil {
		return p.fromError(err)
	}

	moves := make([]core.MoveInfo, 0, len(history))
	for i, m := range history {
		moves = append(moves, BuildMoveInfo(m, i+1))
	}

	return ProcessorResponse{
		Success: true,
		Data:    moves,
	}
}

func (p *Processor) handleGetValidMoves(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(ValidMovesArgs)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest, "")
	}

	pos, err := board.ParsePosition(args.Position)
	if err != nil {
		return p.fromError(err)
	}

	dests, err := p.svc.LegalDestinations(cmd.GameID, pos)
	if err != nil {
		return p.fromError(err)
	}

	resp := core.ValidMovesResponse{
		Position:     pos.Notation(),
		Destinations: make([]string, 0, len(dests)),
	}
	for _, d := range dests {
		resp.Destinations = append(resp.Destinations, d.Notation())
	}

	return ProcessorResponse{
		Success: true,
		Data:    resp,
	}
}

// handleGetBoard returns board visualization
func (p *Processor) handleGetBoard(cmd Command) ProcessorResponse {
	snap, err := p.svc.GetGame(cmd.GameID)
	if err != nil {
		return p.fromError(err)
	}

	return ProcessorResponse{
		Success: true,
		Data: core.BoardResponse{
			FEN:   snap.FEN,
			Board: snap.Board.ASCII(),
		},
	}
}

// BuildGameResponse constructs the standard game payload
func BuildGameResponse(snap game.Snapshot) core.GameResponse {
	resp := core.GameResponse{
		GameID:    snap.ID,
		FEN:       snap.FEN,
		Turn:      snap.Turn.String(),
		Status:    snap.Status.String(),
		Moves:     snap.Moves(),
		CreatedAt: snap.CreatedAt.Unix(),
	}

	if last, ok := snap.LastMove(); ok {
		info := BuildMoveInfo(last, len(snap.History))
		resp.LastMove = &info
	}

	return resp
}

// BuildMoveInfo converts a move to its API form. number is 1-based.
func BuildMoveInfo(m board.Move, number int) core.MoveInfo {
	info := core.MoveInfo{
		Number:      number,
		From:        m.From.Notation(),
		To:          m.To.Notation(),
		Piece:       m.Piece.Type.String(),
		Color:       m.Piece.Color.String(),
		Captured:    m.Captured.Type.String(),
		IsPromotion: m.IsPromotion,
		IsCastling:  m.IsCastling,
		IsEnPassant: m.IsEnPassant,
		UCI:         m.UCI(),
	}
	if m.IsPromotion {
		info.Promotion = m.Promotion.String()
	}
	return info
}

// fromError maps domain errors to error codes
func (p *Processor) fromError(err error) ProcessorResponse {
	var illegal *engine.IllegalMoveError
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return p.errorResponse("game not found", core.ErrGameNotFound, "")
	case errors.Is(err, board.ErrInvalidNotation):
		return p.errorResponse("invalid notation", core.ErrInvalidNotation, err.Error())
	case errors.Is(err, game.ErrGameOver):
		return p.errorResponse("game is over", core.ErrGameOver, err.Error())
	case errors.As(err, &illegal):
		return p.errorResponse("illegal move", core.ErrIllegalMove, illegal.Reason)
	default:
		return p.errorResponse("internal error", core.ErrInternalError, err.Error())
	}
}

func (p *Processor) errorResponse(message, code, details string) ProcessorResponse {
	return ProcessorResponse{
		Success: false,
		Error: &core.ErrorResponse{
			Error:   message,
			Code:    code,
			Details: details,
		},
	}
}
