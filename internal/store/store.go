// Package store persists game snapshots in SQLite so sessions survive a
// server restart.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/benbeisheim/clickchess-backend/internal/model"
	_ "github.com/mattn/go-sqlite3"
)

var ErrNotFound = errors.New("snapshot not found")

// Record is what is kept per game: the board snapshot and the seats.
type Record struct {
	Snapshot model.Snapshot `json:"snapshot"`
	Players  model.Players  `json:"players"`
}

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and its schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// a single connection keeps ":memory:" databases coherent
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA synchronous=NORMAL;
		CREATE TABLE IF NOT EXISTS snapshots (
			game_id TEXT PRIMARY KEY,
			state TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save upserts the record for gameID.
func (s *Store) Save(ctx context.Context, gameID string, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", gameID, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (game_id, state, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(game_id) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at
	`, gameID, string(data), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("save %s: %w", gameID, err)
	}
	return nil
}

// Load returns the record for gameID, or ErrNotFound.
func (s *Store) Load(ctx context.Context, gameID string) (Record, error) {
	var data string
	err := s.db.QueryRowContext(ctx, "SELECT state FROM snapshots WHERE game_id = ?", gameID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("load %s: %w", gameID, ErrNotFound)
	}
	if err != nil {
		return Record{}, fmt.Errorf("load %s: %w", gameID, err)
	}
	var rec Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return Record{}, fmt.Errorf("unmarshal %s: %w", gameID, err)
	}
	return rec, nil
}

func (s *Store) Delete(ctx context.Context, gameID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM snapshots WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("delete %s: %w", gameID, err)
	}
	return nil
}
