// FILE: internal/client/commands/game.go
package commands

import (
	"fmt"
	"strconv"
	"strings"

	"chessrules/internal/client/display"
)

var errNoGame = fmt.Errorf("no current game, use 'new' or 'join <gameId>'")

func (r *Registry) registerGameCommands() {
	for _, cmd := range []*Command{
		{Name: "new", ShortName: "n", Description: "Create a new game", Usage: "new [fen]", Handler: newGameHandler},
		{Name: "join", ShortName: "j", Description: "Join/set current game ID", Usage: "join <gameId>", Handler: joinGameHandler},
		{Name: "move", ShortName: "m", Description: "Make a move", Usage: "move <from> <to> [q|r|b|n] | move <uci>", Handler: moveHandler},
		{Name: "valid", ShortName: "v", Description: "List legal destinations of a piece", Usage: "valid <square>", Handler: validMovesHandler},
		{Name: "history", ShortName: "y", Description: "Show move history", Usage: "history", Handler: historyHandler},
		{Name: "show", ShortName: "h", Description: "Show board and game state", Usage: "show", Handler: showBoardHandler},
		{Name: "state", ShortName: "s", Description: "Show raw game JSON", Usage: "state", Handler: gameStateHandler},
		{Name: "delete", ShortName: "d", Description: "Delete a game", Usage: "delete [gameId]", Handler: deleteGameHandler},
		{Name: "poll", ShortName: "p", Description: "Long-poll for game updates", Usage: "poll", Handler: pollHandler},
		{Name: "watch", ShortName: "w", Description: "Stream game updates over websocket", Usage: "watch [updates]", Handler: watchHandler},
	} {
		cmd.Group = groupGame
		r.Register(cmd)
	}
}

// ParseMoveArgs accepts "e2 e4 [q]" or the UCI form "e2e4" / "e7e8q"
func ParseMoveArgs(args []string) (from, to, promotion string, err error) {
	switch len(args) {
	case 1:
		uci := strings.ToLower(args[0])
		if len(uci) != 4 && len(uci) != 5 {
			return "", "", "", fmt.Errorf("invalid move: %s", args[0])
		}
		from, to = uci[:2], uci[2:4]
		if len(uci) == 5 {
			promotion = uci[4:]
		}
	case 2, 3:
		from, to = strings.ToLower(args[0]), strings.ToLower(args[1])
		if len(args) == 3 {
			promotion = strings.ToLower(args[2])
		}
	default:
		return "", "", "", fmt.Errorf("usage: move <from> <to> [q|r|b|n]")
	}
	return from, to, promotion, nil
}

func newGameHandler(s Session, args []string) error {
	// FEN fields are space separated, rejoin them
	fen := strings.Join(args, " ")

	display.Infof("\nCreating new game...")
	resp, err := s.GetClient().CreateGame(fen)
	if err != nil {
		return err
	}

	s.SetCurrentGame(resp.GameID)
	s.SetGameState(resp)

	display.Successf("Game created: %s", resp.GameID)
	fmt.Printf("Turn: %s | Status: %s\n", display.ColorForTurn(resp.Turn), display.ColorForStatus(resp.Status))
	return nil
}

func joinGameHandler(s Session, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: join <gameId>")
	}

	gameID := args[0]
	resp, err := s.GetClient().GetGame(gameID)
	if err != nil {
		return err
	}

	s.SetCurrentGame(gameID)
	s.SetGameState(resp)

	display.Successf("Joined game: %s", gameID)
	fmt.Printf("Turn: %s | Status: %s | Moves: %d\n",
		display.ColorForTurn(resp.Turn), display.ColorForStatus(resp.Status), len(resp.Moves))
	return nil
}

func moveHandler(s Session, args []string) error {
	gameID := s.GetCurrentGame()
	if gameID == "" {
		return errNoGame
	}

	from, to, promotion, err := ParseMoveArgs(args)
	if err != nil {
		return err
	}

	resp, err := s.GetClient().MakeMove(gameID, from, to, promotion)
	if err != nil {
		return err
	}

	s.SetGameState(&resp.Game)

	var flags []string
	if resp.Move.Captured != "" {
		flags = append(flags, "captures "+resp.Move.Captured)
	}
	if resp.Move.IsCastling {
		flags = append(flags, "castling")
	}
	if resp.Move.IsEnPassant {
		flags = append(flags, "en passant")
	}
	if resp.Move.IsPromotion {
		flags = append(flags, "promotes to "+resp.Move.Promotion)
	}
	line := fmt.Sprintf("Move accepted: %s %s", resp.Move.Piece, resp.Move.UCI)
	if len(flags) > 0 {
		line += " (" + strings.Join(flags, ", ") + ")"
	}
	display.Successf("%s", line)
	fmt.Printf("Turn: %s | Status: %s\n", display.ColorForTurn(resp.Game.Turn), display.ColorForStatus(resp.Game.Status))
	return nil
}

func validMovesHandler(s Session, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: valid <square>")
	}
	gameID := s.GetCurrentGame()
	if gameID == "" {
		return errNoGame
	}

	resp, err := s.GetClient().GetValidMoves(gameID, strings.ToLower(args[0]))
	if err != nil {
		return err
	}

	if len(resp.Destinations) == 0 {
		fmt.Printf("No legal moves from %s\n", resp.Position)
		return nil
	}
	fmt.Printf("%s -> %s\n", display.Cyan(resp.Position), strings.Join(resp.Destinations, " "))
	return nil
}

func historyHandler(s Session, args []string) error {
	gameID := s.GetCurrentGame()
	if gameID == "" {
		return errNoGame
	}

	moves, err := s.GetClient().GetMoves(gameID)
	if err != nil {
		return err
	}
	if len(moves) == 0 {
		fmt.Println("No moves yet")
		return nil
	}

	for _, m := range moves {
		side := display.ColorForTurn(m.Color)
		extra := ""
		if m.Captured != "" {
			extra += " x" + m.Captured
		}
		if m.IsCastling {
			extra += " castling"
		}
		if m.IsEnPassant {
			extra += " e.p."
		}
		if m.IsPromotion {
			extra += " =" + m.Promotion
		}
		fmt.Printf("%3d. %s %-6s %s%s\n", m.Number, side, m.UCI, m.Piece, extra)
	}
	return nil
}

func showBoardHandler(s Session, args []string) error {
	gameID := s.GetCurrentGame()
	if gameID == "" {
		return errNoGame
	}

	c := s.GetClient()

	game, err := c.GetGame(gameID)
	if err != nil {
		return err
	}

	board, err := c.GetBoard(gameID)
	if err != nil {
		return err
	}

	s.SetGameState(game)

	fmt.Println()
	display.RenderBoard(board.Board)

	fmt.Printf("\nFEN: %s\n", game.FEN)
	fmt.Printf("Turn: %s | Status: %s | Moves: %d\n",
		display.ColorForTurn(game.Turn), display.ColorForStatus(game.Status), len(game.Moves))

	if len(game.Moves) > 0 {
		// The first mover is the last mover when the count is odd
		firstBlack := game.LastMove != nil && (game.LastMove.Color == "b") == (len(game.Moves)%2 == 1)
		fmt.Printf("\nHistory: %s\n", display.FormatHistory(game.Moves, firstBlack))
	}

	if game.LastMove != nil {
		color := "White"
		if game.LastMove.Color == "b" {
			color = "Black"
		}
		fmt.Printf("Last move: %s by %s\n", game.LastMove.UCI, color)
	}

	return nil
}

func gameStateHandler(s Session, args []string) error {
	gameID := s.GetCurrentGame()
	if gameID == "" {
		return errNoGame
	}

	resp, err := s.GetClient().GetGame(gameID)
	if err != nil {
		return err
	}

	s.SetGameState(resp)

	display.Infof("Game State:")
	display.PrettyPrintJSON(resp)
	return nil
}

func deleteGameHandler(s Session, args []string) error {
	gameID := s.GetCurrentGame()
	if len(args) > 0 {
		gameID = args[0]
	}

	if gameID == "" {
		return fmt.Errorf("specify game ID or set current game")
	}

	if err := s.GetClient().DeleteGame(gameID); err != nil {
		return err
	}

	if gameID == s.GetCurrentGame() {
		s.SetCurrentGame("")
	}

	display.Successf("Game deleted: %s", gameID)
	return nil
}

func pollHandler(s Session, args []string) error {
	gameID := s.GetCurrentGame()
	if gameID == "" {
		return errNoGame
	}

	moveCount := s.GetLastMoveCount()

	display.Infof("Long-polling for updates (move count: %d)...", moveCount)
	display.Infof("This may take up to 25 seconds")

	resp, err := s.GetClient().GetGameWithPoll(gameID, moveCount)
	if err != nil {
		return err
	}

	s.SetGameState(resp)

	if len(resp.Moves) != moveCount {
		display.Successf("Game updated! New moves detected")
		if resp.LastMove != nil {
			fmt.Printf("Last move: %s\n", resp.LastMove.UCI)
		}
	} else {
		fmt.Println(display.Yellow("No updates (timeout)"))
	}

	return nil
}

// watchHandler prints streamed states until the requested number of updates
// past the initial state arrives or the game ends
func watchHandler(s Session, args []string) error {
	gameID := s.GetCurrentGame()
	if gameID == "" {
		return errNoGame
	}

	updates := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid update count: %s", args[0])
		}
		updates = n
	}

	stream, err := s.GetClient().Watch(gameID)
	if err != nil {
		return err
	}
	defer stream.Close()

	display.Infof("Watching %s for %d update(s)...", gameID, updates)

	seen := -1
	for {
		msg, err := stream.Next()
		if err != nil {
			return err
		}

		switch msg.Type {
		case "state":
			state, err := msg.State()
			if err != nil {
				return err
			}
			s.SetGameState(state)
			last := "-"
			if state.LastMove != nil {
				last = state.LastMove.UCI
			}
			fmt.Printf("[%d] last: %s | turn: %s | status: %s\n",
				len(state.Moves), last, display.ColorForTurn(state.Turn), display.ColorForStatus(state.Status))

			seen++
			if seen >= updates {
				return nil
			}
			switch state.Status {
			case "checkmate", "stalemate", "draw":
				return nil
			}
		case "deleted":
			if gameID == s.GetCurrentGame() {
				s.SetCurrentGame("")
			}
			display.Errorf("Game deleted")
			return nil
		case "error":
			display.Errorf("Stream error: %s", string(msg.Payload))
		}
	}
}
