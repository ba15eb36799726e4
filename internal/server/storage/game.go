// FILE: internal/server/storage/game.go
package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// RecordNewGame asynchronously records a new game
func (s *Store) RecordNewGame(record GameRecord) {
	s.enqueue("game", func(tx *sql.Tx) error {
		query := `INSERT INTO games (game_id, initial_fen, status, start_time_utc) VALUES (?, ?, ?, ?)`
		_, err := tx.Exec(query, record.GameID, record.InitialFEN, record.Status, record.StartTimeUTC)
		return err
	})
}

// RecordMove asynchronously records a move and the resulting game status
func (s *Store) RecordMove(record MoveRecord, status string) {
	s.enqueue("move", func(tx *sql.Tx) error {
		query := `INSERT INTO moves (
			game_id, move_number, move_uci, piece, captured, flags,
			fen_after_move, player_color, move_time_utc
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

		if _, err := tx.Exec(query,
			record.GameID, record.MoveNumber, record.MoveUCI, record.Piece, record.Captured, record.Flags,
			record.FENAfterMove, record.PlayerColor, record.MoveTimeUTC,
		); err != nil {
			return err
		}

		_, err := tx.Exec(`UPDATE games SET status = ? WHERE game_id = ?`, status, record.GameID)
		return err
	})
}

// MarkGameDeleted asynchronously stamps a game as removed from play. Rows
// are kept for the audit trail.
func (s *Store) MarkGameDeleted(gameID string, at time.Time) {
	s.enqueue("delete", func(tx *sql.Tx) error {
		_, err := tx.Exec(`UPDATE games SET deleted_at_utc = ? WHERE game_id = ? AND deleted_at_utc IS NULL`, at, gameID)
		return err
	})
}

// QueryGames retrieves games with optional filtering by id and status
func (s *Store) QueryGames(gameID, status string) ([]GameRecord, error) {
	query := `SELECT
		g.game_id, g.initial_fen, g.status, g.start_time_utc, g.deleted_at_utc,
		(SELECT COUNT(*) FROM moves m WHERE m.game_id = g.game_id)
	FROM games g WHERE 1=1`

	var args []interface{}

	if gameID != "" && gameID != "*" {
		query += " AND g.game_id = ?"
		args = append(args, gameID)
	}

	if status != "" && status != "*" {
		query += " AND g.status = ?"
		args = append(args, status)
	}

	query += " ORDER BY g.start_time_utc DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var g GameRecord
		var deleted sql.NullTime
		if err := rows.Scan(&g.GameID, &g.InitialFEN, &g.Status, &g.StartTimeUTC, &deleted, &g.MoveCount); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		if deleted.Valid {
			t := deleted.Time
			g.DeletedAtUTC = &t
		}
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return games, nil
}

// QueryMoves returns the recorded moves of a game in play order
func (s *Store) QueryMoves(gameID string) ([]MoveRecord, error) {
	rows, err := s.db.Query(`SELECT
		move_id, game_id, move_number, move_uci, piece, captured, flags,
		fen_after_move, player_color, move_time_utc
	FROM moves WHERE game_id = ? ORDER BY move_number`, gameID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		if err := rows.Scan(
			&m.MoveID, &m.GameID, &m.MoveNumber, &m.MoveUCI, &m.Piece, &m.Captured, &m.Flags,
			&m.FENAfterMove, &m.PlayerColor, &m.MoveTimeUTC,
		); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		moves = append(moves, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return moves, nil
}
