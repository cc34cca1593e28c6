package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const createAppStateTable = `
	CREATE TABLE IF NOT EXISTS app_state (
		key        TEXT PRIMARY KEY,
		value      JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

// SQLExecutor is satisfied by both *sql.DB and *sql.Tx.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type postgresBlobStore struct {
	db SQLExecutor
}

func NewPostgresBlobStore(db SQLExecutor) BlobStore {
	return &postgresBlobStore{db: db}
}

// EnsureAppStateSchema creates the key/value table if it does not exist.
func EnsureAppStateSchema(ctx context.Context, db SQLExecutor) error {
	if _, err := db.ExecContext(ctx, createAppStateTable); err != nil {
		return fmt.Errorf("failed to create app_state table: %w", handlePQError(err))
	}
	return nil
}

func (s *postgresBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM app_state WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("failed to read state %q: %w", key, handlePQError(err))
	}
	return value, nil
}

func (s *postgresBlobStore) Put(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO app_state (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`

	result, err := s.db.ExecContext(ctx, query, key, string(value))
	if err != nil {
		return fmt.Errorf("failed to write state %q: %w", key, handlePQError(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("state %q was not written", key)
	}
	return nil
}

var ErrInvalidDocument = errors.New("stored document is not valid JSON")

func handlePQError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code.Name() == "invalid_text_representation" {
			return fmt.Errorf("%w: %s", ErrInvalidDocument, pqErr.Message)
		}
	}
	return err
}
