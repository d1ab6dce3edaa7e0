// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/group-swipe/cliparse"
)

var ErrUnknownDatabaseType = errors.New("unknown database type")

// Open connects to the configured database and verifies the connection.
func Open(cfg cliparse.Config) (*sql.DB, error) {
	driver, err := DriverName(cfg.DatabaseType)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows one writer; a single connection also keeps
	// in-memory databases alive for the lifetime of the pool.
	if driver == "sqlite" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

// DriverName maps a configured database type to its database/sql driver.
func DriverName(databaseType string) (string, error) {
	switch databaseType {
	case cliparse.DatabaseSQLite:
		return "sqlite", nil
	case cliparse.DatabasePostgres:
		return "postgres", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDatabaseType, databaseType)
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Timestamps are always written explicitly; the statements below run
// unchanged on SQLite and PostgreSQL.
const schema = `
-- Groups
CREATE TABLE IF NOT EXISTS voting_group (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

-- Voting sessions (raw client documents)
CREATE TABLE IF NOT EXISTS voting_session (
    id TEXT PRIMARY KEY,
    group_id TEXT NOT NULL REFERENCES voting_group(id) ON DELETE CASCADE,
    payload TEXT NOT NULL,
    stored_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_voting_session_group_id ON voting_session(group_id);

-- Votes
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    group_id TEXT NOT NULL REFERENCES voting_group(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL,
    activity_id TEXT NOT NULL,
    value TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_vote_group_id ON vote(group_id);
CREATE INDEX IF NOT EXISTS idx_vote_user_activity ON vote(group_id, user_id, activity_id);
`
