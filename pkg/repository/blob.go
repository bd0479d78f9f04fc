package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned by Get for a missing key
var ErrNotFound = errors.New("blob not found")

// BlobRepository is a flat key-value store over a single SQLite table,
// the moral equivalent of an object store bucket
type BlobRepository struct {
	db *sqlx.DB
}

// NewBlobRepository creates a new blob repository
func NewBlobRepository(db *sqlx.DB) *BlobRepository {
	return &BlobRepository{db: db}
}

// Get retrieves a blob by key, ErrNotFound if the key doesn't exist
func (r *BlobRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.GetContext(ctx, &value, "SELECT value FROM blobs WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get blob %q: %w", key, err)
	}
	return value, nil
}

// Put stores a blob, replacing any previous value for the key
func (r *BlobRepository) Put(ctx context.Context, key string, value []byte) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		query := `
			INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, datetime('now'))
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`
		if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("put blob %q: %w", key, err)}
		}
		return nil
	})
}

// List returns all keys with the given prefix, sorted
func (r *BlobRepository) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	query := "SELECT key FROM blobs WHERE key LIKE ? || '%' ORDER BY key"
	if err := r.db.SelectContext(ctx, &keys, query, prefix); err != nil {
		return nil, fmt.Errorf("list blobs %q: %w", prefix, err)
	}
	return keys, nil
}

// Delete removes a blob, no error if the key doesn't exist
func (r *BlobRepository) Delete(ctx context.Context, key string) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		if _, err := r.db.ExecContext(ctx, "DELETE FROM blobs WHERE key = ?", key); err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("delete blob %q: %w", key, err)}
		}
		return nil
	})
}
