// FILE: cmd/chess-server/cli/cli.go
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"chessrules/internal/server/storage"
)

// Run is the entry point for the database maintenance commands
func Run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("subcommand required: init, delete, query, moves")
	}

	switch args[0] {
	case "init":
		return runInit(args[1:])
	case "delete":
		return runDelete(args[1:])
	case "query":
		return runQuery(args[1:])
	case "moves":
		return runMoves(args[1:])
	default:
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}
}

// openStore parses the shared -path flag plus any extra flags registered by
// the caller
func openStore(fs *flag.FlagSet, args []string) (*storage.Store, error) {
	path := fs.String("path", "", "Database file path (required)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *path == "" {
		return nil, fmt.Errorf("database path required")
	}

	store, err := storage.NewStore(*path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return store, nil
}

func runInit(args []string) error {
	store, err := openStore(flag.NewFlagSet("init", flag.ContinueOnError), args)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	fmt.Println("Database initialized")
	return nil
}

func runDelete(args []string) error {
	store, err := openStore(flag.NewFlagSet("delete", flag.ContinueOnError), args)
	if err != nil {
		return err
	}

	if err := store.DeleteDB(); err != nil {
		return fmt.Errorf("failed to delete database: %w", err)
	}

	fmt.Println("Database deleted")
	return nil
}

func runQuery(args []string) error {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	gameID := fs.String("gameId", "", "Game ID to filter (optional, * for all)")
	status := fs.String("status", "", "Status to filter: active, check, checkmate, stalemate (optional, * for all)")

	store, err := openStore(fs, args)
	if err != nil {
		return err
	}
	defer store.Close()

	games, err := store.QueryGames(*gameID, *status)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if len(games) == 0 {
		fmt.Println("No games found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Game ID\tStatus\tMoves\tStart Time\tDeleted")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for _, g := range games {
		deleted := "-"
		if g.DeletedAtUTC != nil {
			deleted = g.DeletedAtUTC.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			g.GameID,
			g.Status,
			g.MoveCount,
			g.StartTimeUTC.Format("2006-01-02 15:04:05"),
			deleted,
		)
	}
	w.Flush()

	fmt.Printf("\nFound %d game(s)\n", len(games))
	return nil
}

func runMoves(args []string) error {
	fs := flag.NewFlagSet("moves", flag.ContinueOnError)
	gameID := fs.String("gameId", "", "Game ID (required)")

	store, err := openStore(fs, args)
	if err != nil {
		return err
	}
	defer store.Close()

	if *gameID == "" {
		return fmt.Errorf("game ID required")
	}

	moves, err := store.QueryMoves(*gameID)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if len(moves) == 0 {
		fmt.Println("No moves found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tColor\tMove\tPiece\tCaptured\tFlags\tFEN")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, m := range moves {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			m.MoveNumber,
			m.PlayerColor,
			m.MoveUCI,
			m.Piece,
			dash(m.Captured),
			dash(m.Flags),
			m.FENAfterMove,
		)
	}
	w.Flush()

	fmt.Printf("\n%d move(s)\n", len(moves))
	return nil
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
