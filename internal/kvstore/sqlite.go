package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite" // SQLite driver registration.

	"techtimes/migrations"
)

const timeLayout = "2006-01-02T15:04:05Z"

// DefaultQuota is the total value budget in bytes, sized after the ~5 MB
// browser profile quota the store stands in for.
const DefaultQuota = 5 * 1024 * 1024

// SQLite implements Store backed by a SQLite database with a fixed total
// value budget. When a write would exceed the budget, the configured
// eviction key is dropped and the write retried once.
type SQLite struct {
	db       *sql.DB
	quota    int64
	evictKey string
	log      *slog.Logger
}

// NewSQLite opens a SQLite database at dsn and runs pending migrations.
// evictKey names the known-large, lower-priority key sacrificed on capacity
// failure; quota <= 0 selects DefaultQuota.
func NewSQLite(dsn string, quota int64, evictKey string, log *slog.Logger) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	if quota <= 0 {
		quota = DefaultQuota
	}

	return &SQLite{db: db, quota: quota, evictKey: evictKey, log: log}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key. Any fault reads as absent.
func (s *SQLite) Get(ctx context.Context, key string) (string, bool) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.log.Warn("kv read failed", "key", key, "error", err)
		}
		return "", false
	}
	return value, true
}

// Set stores value under key. On a capacity failure it evicts the configured
// eviction key and retries once; a second failure reports false.
func (s *SQLite) Set(ctx context.Context, key, value string) bool {
	if s.write(ctx, key, value) {
		return true
	}

	if s.evictKey == "" || s.evictKey == key {
		return false
	}

	s.log.Warn("kv over budget, evicting", "key", key, "evicted", s.evictKey)
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, s.evictKey); err != nil {
		s.log.Warn("kv evict failed", "key", s.evictKey, "error", err)
		return false
	}

	return s.write(ctx, key, value)
}

func (s *SQLite) write(ctx context.Context, key, value string) bool {
	if !s.fits(ctx, key, int64(len(value))) {
		return false
	}

	now := time.Now().UTC().Format(timeLayout)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, now,
	)
	if err != nil {
		s.log.Warn("kv write failed", "key", key, "error", err)
		return false
	}
	return true
}

// fits checks the total value budget with key replaced by a value of size n.
func (s *SQLite) fits(ctx context.Context, key string, n int64) bool {
	var used sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(LENGTH(value)), 0) FROM kv WHERE key != ?`, key,
	).Scan(&used)
	if err != nil {
		s.log.Warn("kv size check failed", "key", key, "error", err)
		return false
	}
	return used.Int64+n <= s.quota
}
