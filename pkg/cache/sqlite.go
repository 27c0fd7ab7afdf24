package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteCache stores entries in a single SQLite database file. Compared to
// FileCache it keeps everything in one file and survives concurrent CLI
// invocations via WAL journaling.
type SQLiteCache struct {
	db *sql.DB
}

// NewSQLiteCache opens (or creates) a SQLite cache database at path.
func NewSQLiteCache(path string) (Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	stmts := []string{
		`PRAGMA journal_mode=WAL`,
		`PRAGMA busy_timeout=5000`,
		`CREATE TABLE IF NOT EXISTS entries (
			key        TEXT PRIMARY KEY,
			data       BLOB NOT NULL,
			expires_at INTEGER NOT NULL DEFAULT 0
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init sqlite %s: %w", path, err)
		}
	}

	return &SQLiteCache{db: db}, nil
}

// Get retrieves a value from the database.
func (c *SQLiteCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var (
		data      []byte
		expiresAt int64
	)
	row := c.db.QueryRowContext(ctx, `SELECT data, expires_at FROM entries WHERE key = ?`, key)
	err := row.Scan(&data, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("sqlite get: %w", err)
	}
	if expiresAt != 0 && time.Now().Unix() > expiresAt {
		_, _ = c.db.ExecContext(ctx, `DELETE FROM entries WHERE key = ?`, key)
		return nil, false, nil
	}
	return data, true, nil
}

// Set stores a value, replacing any existing entry for the key.
func (c *SQLiteCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl).Unix()
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO entries (key, data, expires_at) VALUES (?, ?, ?)`,
		key, data, expiresAt)
	if err != nil {
		return fmt.Errorf("sqlite set: %w", err)
	}
	return nil
}

// Delete removes a value from the database.
func (c *SQLiteCache) Delete(ctx context.Context, key string) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("sqlite delete: %w", err)
	}
	return nil
}

// Close closes the database.
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}

// Ensure SQLiteCache implements Cache.
var _ Cache = (*SQLiteCache)(nil)
