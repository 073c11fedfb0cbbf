package storage

import (
	"context"
	"database/sql"
	"fmt"

	// import the SQLite driver to register it with the database/sql package.
	_ "modernc.org/sqlite"
)

type Storage struct {
	Connection *sql.DB
}

func NewSQLiteStorage(path string) (*Storage, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	// a single writer keeps the append order and lets ":memory:" databases work
	conn.SetMaxOpenConns(1)

	if err = conn.Ping(); err != nil {
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}

	return &Storage{Connection: conn}, nil
}

func (that *Storage) Init(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS moves (
		seq       INTEGER PRIMARY KEY AUTOINCREMENT,
		id        TEXT    NOT NULL UNIQUE,
		game_id   TEXT    NOT NULL,
		player_id TEXT    NOT NULL,
		origin    INTEGER NOT NULL CHECK (origin BETWEEN 0 AND 63),
		target    INTEGER NOT NULL CHECK (target BETWEEN 0 AND 63),
		created_at TEXT   NOT NULL
	)`

	if _, err := that.Connection.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("can't create table: %w", err)
	}

	index := `CREATE INDEX IF NOT EXISTS moves_game_id ON moves (game_id, seq)`
	if _, err := that.Connection.ExecContext(ctx, index); err != nil {
		return fmt.Errorf("can't create index: %w", err)
	}

	return nil
}

func (that *Storage) Close() error {
	if err := that.Connection.Close(); err != nil {
		return fmt.Errorf("can't close database: %w", err)
	}

	return nil
}
