// FILE: internal/server/http/handler.go
package http

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"chessrules/internal/server/core"
	"chessrules/internal/server/processor"
	"chessrules/internal/server/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog/log"
)

const rateLimitRate = 10 // req/sec

// HTTPHandler handles HTTP requests and routes them to the processor
type HTTPHandler struct {
	proc *processor.Processor
	svc  *service.Service
}

func NewHTTPHandler(proc *processor.Processor, svc *service.Service) *HTTPHandler {
	return &HTTPHandler{proc: proc, svc: svc}
}

// accessLog feeds fiber's request log lines into the global zerolog logger
type accessLog struct{}

func (accessLog) Write(p []byte) (int, error) {
	log.Info().Str("component", "http").Msg(strings.TrimSpace(string(p)))
	return len(p), nil
}

// Config holds transport options
type Config struct {
	DevMode     bool
	CORSOrigins string // comma separated, "*" when empty
	RateLimit   int    // requests per second per client, 0 for the default
}

func NewFiberApp(proc *processor.Processor, svc *service.Service, cfg Config) *fiber.App {
	h := NewHTTPHandler(proc, svc)

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	})

	// Global middleware (order matters)
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "${status} ${method} ${path} ${latency}",
		Output: accessLog{},
	}))
	origins := cfg.CORSOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Health check (no rate limit)
	app.Get("/health", h.Health)

	api := app.Group("/api/v1")

	// Websocket stream sits before the limiter, the connection is long lived
	api.Get("/games/:gameId/ws", h.upgradeWebSocket, websocket.New(h.StreamGame))

	maxReq := cfg.RateLimit
	if maxReq <= 0 {
		maxReq = rateLimitRate
		if cfg.DevMode {
			maxReq = rateLimitRate * 2
		}
	}
	api.Use(limiter.New(limiter.Config{
		Max:        maxReq,
		Expiration: 1 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			if xff := c.Get("X-Forwarded-For"); xff != "" {
				if idx := strings.Index(xff, ","); idx != -1 {
					return strings.TrimSpace(xff[:idx])
				}
				return xff
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(core.ErrorResponse{
				Error:   "rate limit exceeded",
				Code:    core.ErrRateLimitExceeded,
				Details: fmt.Sprintf("%d requests per second allowed", maxReq),
			})
		},
	}))

	api.Use(contentTypeValidator)
	api.Use(validationMiddleware)

	api.Post("/games", h.CreateGame)
	api.Get("/games/:gameId", h.requireGameID, h.GetGame)
	api.Delete("/games/:gameId", h.requireGameID, h.DeleteGame)
	api.Post("/games/:gameId/moves", h.requireGameID, h.MakeMove)
	api.Get("/games/:gameId/moves", h.requireGameID, h.GetMoves)
	api.Get("/games/:gameId/valid-moves/:position", h.requireGameID, h.GetValidMoves)
	api.Get("/games/:gameId/board", h.requireGameID, h.GetBoard)

	return app
}

// contentTypeValidator ensures POST requests have application/json
func contentTypeValidator(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		contentType := c.Get("Content-Type")
		if contentType != "" && !strings.HasPrefix(contentType, fiber.MIMEApplicationJSON) {
			return c.Status(fiber.StatusUnsupportedMediaType).JSON(core.ErrorResponse{
				Error:   "unsupported media type",
				Code:    core.ErrInvalidContent,
				Details: "Content-Type must be application/json",
			})
		}
	}
	return c.Next()
}

// requireGameID rejects malformed game ids before they reach the processor
func (h *HTTPHandler) requireGameID(c *fiber.Ctx) error {
	if !isValidUUID(c.Params("gameId")) {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid game ID format",
			Code:    core.ErrInvalidRequest,
			Details: "game ID must be a valid UUID",
		})
	}
	return c.Next()
}

// customErrorHandler provides consistent error responses
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	response := core.ErrorResponse{
		Error: "internal server error",
		Code:  core.ErrInternalError,
	}

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		response.Error = e.Message

		switch code {
		case fiber.StatusNotFound:
			response.Code = core.ErrGameNotFound
		case fiber.StatusBadRequest, fiber.StatusUpgradeRequired:
			response.Code = core.ErrInvalidRequest
		case fiber.StatusTooManyRequests:
			response.Code = core.ErrRateLimitExceeded
		}
	}

	return c.Status(code).JSON(response)
}

// httpStatus maps processor error codes to HTTP status codes
func httpStatus(code string) int {
	switch code {
	case core.ErrGameNotFound:
		return fiber.StatusNotFound
	case core.ErrGameOver:
		return fiber.StatusConflict
	case core.ErrIllegalMove:
		return fiber.StatusUnprocessableEntity
	case core.ErrInternalError:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusBadRequest
	}
}

func reply(c *fiber.Ctx, resp processor.ProcessorResponse) error {
	if !resp.Success {
		return c.Status(httpStatus(resp.Error.Code)).JSON(resp.Error)
	}
	return c.JSON(resp.Data)
}

// validatedBody fetches the request struct stored by validationMiddleware
func validatedBody[T any](c *fiber.Ctx) (T, error) {
	var zero T
	if validated, ok := c.Locals("validated").(bool); !ok || !validated {
		return zero, fiber.NewError(fiber.StatusInternalServerError, "validation bypass detected")
	}
	body, ok := c.Locals("validatedBody").(*T)
	if !ok || body == nil {
		return zero, fiber.NewError(fiber.StatusInternalServerError, "validation data missing")
	}
	return *body, nil
}

// Health check endpoint with storage status
func (h *HTTPHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"time":    time.Now().Unix(),
		"games":   h.svc.GameCount(),
		"storage": h.svc.GetStorageHealth(),
	})
}

// CreateGame starts a game from the standard or a supplied position
func (h *HTTPHandler) CreateGame(c *fiber.Ctx) error {
	req, err := validatedBody[core.CreateGameRequest](c)
	if err != nil {
		return err
	}

	resp := h.proc.Execute(processor.NewCreateGameCommand(req))
	if !resp.Success {
		return c.Status(httpStatus(resp.Error.Code)).JSON(resp.Error)
	}

	return c.Status(fiber.StatusCreated).JSON(resp.Data)
}

// GetGame retrieves current game state, optionally waiting for a change
func (h *HTTPHandler) GetGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	if c.Query("wait", "false") != "true" {
		return reply(c, h.proc.Execute(processor.NewGetGameCommand(gameID)))
	}

	moveCount, err := strconv.Atoi(c.Query("moveCount", "-1"))
	if err != nil {
		moveCount = -1
	}

	snap, err := h.svc.GetGame(gameID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(core.ErrorResponse{
			Error: "game not found",
			Code:  core.ErrGameNotFound,
		})
	}

	// If move count already different, return immediately
	if moveCount != len(snap.History) {
		return c.JSON(processor.BuildGameResponse(snap))
	}

	ctx := c.Context()
	notify := h.svc.RegisterWait(ctx, gameID, moveCount)

	// A move may have landed between the read and the registration
	if snap, err = h.svc.GetGame(gameID); err == nil && len(snap.History) != moveCount {
		return c.JSON(processor.BuildGameResponse(snap))
	}

	select {
	case <-notify:
		// State changed or timeout; the game may also have been deleted
		return reply(c, h.proc.Execute(processor.NewGetGameCommand(gameID)))
	case <-ctx.Done():
		return nil
	}
}

// MakeMove submits a move
func (h *HTTPHandler) MakeMove(c *fiber.Ctx) error {
	req, err := validatedBody[core.MoveRequest](c)
	if err != nil {
		return err
	}

	return reply(c, h.proc.Execute(processor.NewMakeMoveCommand(c.Params("gameId"), req)))
}

// GetMoves returns the move history, oldest first
func (h *HTTPHandler) GetMoves(c *fiber.Ctx) error {
	return reply(c, h.proc.Execute(processor.NewGetMovesCommand(c.Params("gameId"))))
}

// GetValidMoves lists legal destinations for the piece on a square
func (h *HTTPHandler) GetValidMoves(c *fiber.Ctx) error {
	cmd := processor.NewGetValidMovesCommand(c.Params("gameId"), c.Params("position"))
	return reply(c, h.proc.Execute(cmd))
}

// DeleteGame removes a game. Unknown games are treated as already deleted.
func (h *HTTPHandler) DeleteGame(c *fiber.Ctx) error {
	resp := h.proc.Execute(processor.NewDeleteGameCommand(c.Params("gameId")))
	if !resp.Success {
		return c.Status(httpStatus(resp.Error.Code)).JSON(resp.Error)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetBoard returns ASCII representation of the board
func (h *HTTPHandler) GetBoard(c *fiber.Ctx) error {
	return reply(c, h.proc.Execute(processor.NewGetBoardCommand(c.Params("gameId"))))
}
