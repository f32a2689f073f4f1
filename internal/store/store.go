package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists feed credentials so a device that once redeemed a secret
// stays authenticated, the way a browser keeps its cookie. Feed items are
// never stored here; the server owns them.
type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS feed_credentials (
  feed TEXT PRIMARY KEY,
  secret TEXT NOT NULL,
  push_key TEXT,
  updated_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// SaveCredential stores or replaces the secret and push key for a feed.
func (s *Store) SaveCredential(ctx context.Context, feed, secret, pushKey string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO feed_credentials (feed, secret, push_key, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(feed) DO UPDATE SET
  secret=excluded.secret,
  push_key=excluded.push_key,
  updated_at=excluded.updated_at
`, feed, secret, pushKey, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save credential for %q: %w", feed, err)
	}
	return nil
}

// LoadCredential returns the stored secret and push key for a feed, or empty
// strings when the feed has never been authenticated from this device.
func (s *Store) LoadCredential(ctx context.Context, feed string) (secret, pushKey string, err error) {
	var storedPushKey sql.NullString
	row := s.db.QueryRowContext(ctx, `SELECT secret, push_key FROM feed_credentials WHERE feed = ?`, feed)
	if err := row.Scan(&secret, &storedPushKey); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", nil
		}
		return "", "", fmt.Errorf("load credential for %q: %w", feed, err)
	}
	return secret, storedPushKey.String, nil
}

// DeleteCredential forgets a feed's secret, e.g. after the server rejected it.
func (s *Store) DeleteCredential(ctx context.Context, feed string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM feed_credentials WHERE feed = ?`, feed); err != nil {
		return fmt.Errorf("delete credential for %q: %w", feed, err)
	}
	return nil
}
