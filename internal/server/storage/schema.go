// FILE: internal/server/storage/schema.go
package storage

import "time"

// GameRecord represents a row in the games table
type GameRecord struct {
	GameID       string     `db:"game_id"`
	InitialFEN   string     `db:"initial_fen"`
	Status       string     `db:"status"`
	MoveCount    int        `db:"move_count"` // derived from the moves table
	StartTimeUTC time.Time  `db:"start_time_utc"`
	DeletedAtUTC *time.Time `db:"deleted_at_utc"` // nil while the game is live
}

// MoveRecord represents a row in the moves table
type MoveRecord struct {
	MoveID       int64     `db:"move_id"`
	GameID       string    `db:"game_id"`
	MoveNumber   int       `db:"move_number"`
	MoveUCI      string    `db:"move_uci"`
	Piece        string    `db:"piece"`
	Captured     string    `db:"captured"`
	Flags        string    `db:"flags"` // any of "p" promotion, "c" castling, "e" en passant
	FENAfterMove string    `db:"fen_after_move"`
	PlayerColor  string    `db:"player_color"`
	MoveTimeUTC  time.Time `db:"move_time_utc"`
}

// Schema defines the SQLite database structure
const Schema = `
CREATE TABLE IF NOT EXISTS games (
	game_id TEXT PRIMARY KEY,
	initial_fen TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'active',
	start_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	deleted_at_utc DATETIME
);

CREATE TABLE IF NOT EXISTS moves (
	move_id INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id TEXT NOT NULL,
	move_number INTEGER NOT NULL,
	move_uci TEXT NOT NULL,
	piece TEXT NOT NULL,
	captured TEXT NOT NULL DEFAULT '',
	flags TEXT NOT NULL DEFAULT '',
	fen_after_move TEXT NOT NULL,
	player_color TEXT NOT NULL CHECK(player_color IN ('w', 'b')),
	move_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (game_id) REFERENCES games(game_id) ON DELETE CASCADE,
	UNIQUE(game_id, move_number)
);

CREATE INDEX IF NOT EXISTS idx_moves_game_id ON moves(game_id);
CREATE INDEX IF NOT EXISTS idx_games_status ON games(status);
`
