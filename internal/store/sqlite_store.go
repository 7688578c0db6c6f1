package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	domaingames "github.com/preston-bernstein/nba-possession-sim/internal/domain/games"
	"github.com/preston-bernstein/nba-possession-sim/internal/possession"
)

// SQLiteStore persists simulated games and play logs in a SQLite database. Rows hold the JSON
// encoding of the domain values; the indexed columns exist for listing and lookups.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and applies the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(1)

	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS games (
			id           TEXT    PRIMARY KEY,
			created_at   TEXT    NOT NULL,
			home_team_id TEXT    NOT NULL,
			away_team_id TEXT    NOT NULL,
			seed         INTEGER NOT NULL,
			home_score   INTEGER NOT NULL,
			away_score   INTEGER NOT NULL,
			body         TEXT    NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS plays (
			game_id    TEXT    NOT NULL,
			seq        INTEGER NOT NULL,
			possession INTEGER NOT NULL,
			body       TEXT    NOT NULL,
			PRIMARY KEY (game_id, seq)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_games_created_at ON games(created_at)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("init schema (%s): %w", stmt, err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// SaveGame writes the game and its plays in one transaction, replacing an earlier save.
func (s *SQLiteStore) SaveGame(ctx context.Context, game domaingames.Game, plays []possession.Play) error {
	body, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("encode game: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO games (id, created_at, home_team_id, away_team_id, seed, home_score, away_score, body)
		VALUES (?,?,?,?,?,?,?,?)`,
		game.ID,
		game.CreatedAt.UTC().Format(time.RFC3339Nano),
		game.HomeTeamID,
		game.AwayTeamID,
		int64(game.Seed),
		game.Score.Home,
		game.Score.Away,
		string(body),
	); err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM plays WHERE game_id = ?`, game.ID); err != nil {
		return fmt.Errorf("clear plays: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO plays (game_id, seq, possession, body) VALUES (?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare plays: %w", err)
	}
	defer stmt.Close()
	for i, p := range plays {
		pb, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encode play %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, game.ID, i, p.Possession, string(pb)); err != nil {
			return fmt.Errorf("insert play %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// ListGames returns the stored games oldest first.
func (s *SQLiteStore) ListGames(ctx context.Context) ([]domaingames.Game, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT body FROM games ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var out []domaingames.Game
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		var g domaingames.Game
		if err := json.Unmarshal([]byte(body), &g); err != nil {
			return nil, fmt.Errorf("decode game: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// GetGame retrieves a game by ID.
func (s *SQLiteStore) GetGame(ctx context.Context, id string) (domaingames.Game, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM games WHERE id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return domaingames.Game{}, domaingames.ErrNotFound
	}
	if err != nil {
		return domaingames.Game{}, fmt.Errorf("get game: %w", err)
	}
	var g domaingames.Game
	if err := json.Unmarshal([]byte(body), &g); err != nil {
		return domaingames.Game{}, fmt.Errorf("decode game: %w", err)
	}
	return g, nil
}

// GamePlays returns a game's play log in order.
func (s *SQLiteStore) GamePlays(ctx context.Context, id string) ([]possession.Play, error) {
	if _, err := s.GetGame(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT body FROM plays WHERE game_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("list plays: %w", err)
	}
	defer rows.Close()

	var out []possession.Play
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan play: %w", err)
		}
		var p possession.Play
		if err := json.Unmarshal([]byte(body), &p); err != nil {
			return nil, fmt.Errorf("decode play: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Ping reports whether the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
