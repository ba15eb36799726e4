// FILE: internal/server/http/websocket.go
package http

import (
	"context"
	"encoding/json"

	"chessrules/internal/server/core"
	"chessrules/internal/server/processor"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog/log"
)

// Stream message types
const (
	MessageTypeState   = "state"
	MessageTypeMove    = "move"
	MessageTypeError   = "error"
	MessageTypeDeleted = "deleted"
)

// StreamMessage is the envelope for every websocket frame in both directions
type StreamMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// upgradeWebSocket accepts only websocket upgrades for existing games
func (h *HTTPHandler) upgradeWebSocket(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid game ID format")
	}
	if _, err := h.svc.GetGame(gameID); err != nil {
		return fiber.NewError(fiber.StatusNotFound, "game not found")
	}
	return c.Next()
}

// StreamGame pushes the game state on connect and after every change. Clients
// may send {"type":"move","payload":{"from":"e2","to":"e4"}} frames.
func (h *HTTPHandler) StreamGame(c *websocket.Conn) {
	gameID := c.Params("gameId")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Writes come from the push loop and from move replies
	writes := make(chan StreamMessage, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case msg := <-writes:
				if err := c.WriteJSON(msg); err != nil {
					log.Debug().Err(err).Str("game", gameID).Msg("websocket write failed")
					cancel()
					return
				}
			case <-ctx.Done():
				// Flush what was queued before shutdown
				for {
					select {
					case msg := <-writes:
						if c.WriteJSON(msg) != nil {
							return
						}
					default:
						return
					}
				}
			}
		}
	}()

	go func() {
		defer cancel()
		for {
			messageType, data, err := c.ReadMessage()
			if err != nil {
				return
			}
			if messageType != websocket.TextMessage {
				continue
			}
			h.handleStreamMessage(ctx, gameID, data, writes)
		}
	}()

	h.pushStates(ctx, gameID, writes)

	cancel()
	<-done
	_ = c.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// pushStates sends the state whenever the move count changes, until the game
// is deleted or ctx ends
func (h *HTTPHandler) pushStates(ctx context.Context, gameID string, writes chan<- StreamMessage) {
	sent := -1
	for {
		resp := h.proc.Execute(processor.NewGetGameCommand(gameID))
		if !resp.Success {
			send(ctx, writes, MessageTypeDeleted, resp.Error)
			return
		}
		state := resp.Data.(core.GameResponse)
		if len(state.Moves) != sent {
			sent = len(state.Moves)
			send(ctx, writes, MessageTypeState, state)
		}

		notify := h.svc.RegisterWait(ctx, gameID, sent)
		// A move may have landed before the registration
		if snap, err := h.svc.GetGame(gameID); err != nil || len(snap.History) != sent {
			continue
		}

		select {
		case <-notify:
		case <-ctx.Done():
			return
		}
	}
}

func (h *HTTPHandler) handleStreamMessage(ctx context.Context, gameID string, data []byte, writes chan<- StreamMessage) {
	var msg StreamMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		send(ctx, writes, MessageTypeError, core.ErrorResponse{
			Error:   "invalid message",
			Code:    core.ErrInvalidRequest,
			Details: err.Error(),
		})
		return
	}

	switch msg.Type {
	case MessageTypeMove:
		var req core.MoveRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			send(ctx, writes, MessageTypeError, core.ErrorResponse{
				Error:   "invalid move payload",
				Code:    core.ErrInvalidRequest,
				Details: err.Error(),
			})
			return
		}
		if err := validate.Struct(&req); err != nil {
			send(ctx, writes, MessageTypeError, core.ErrorResponse{
				Error:   "validation failed",
				Code:    core.ErrInvalidRequest,
				Details: describeValidationErrors(err),
			})
			return
		}
		// Success is observed through the state push
		resp := h.proc.Execute(processor.NewMakeMoveCommand(gameID, req))
		if !resp.Success {
			send(ctx, writes, MessageTypeError, resp.Error)
		}
	default:
		send(ctx, writes, MessageTypeError, core.ErrorResponse{
			Error: "unknown message type: " + msg.Type,
			Code:  core.ErrInvalidRequest,
		})
	}
}

func send(ctx context.Context, writes chan<- StreamMessage, msgType string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("type", msgType).Msg("encode stream message")
		return
	}
	select {
	case writes <- StreamMessage{Type: msgType, Payload: raw}:
	case <-ctx.Done():
	}
}
