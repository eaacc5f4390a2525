// Package gateway implements the development storage gateway server: a
// two-verb key→value HTTP API over a sqlite record store. Writes overwrite
// unconditionally — the service deliberately offers no compare-and-swap,
// matching the substrate contract every client is written against.
package gateway

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/schoolchat/internal/dbx"
	"github.com/dmitrijs2005/schoolchat/internal/gateway/migrations"
)

// Record is one stored key→value pair. Shared is an opaque visibility flag
// persisted verbatim and never interpreted by the server.
type Record struct {
	Key       string
	Value     string
	Shared    bool
	UpdatedAt time.Time
}

// Store is the persistence contract of the gateway server.
type Store interface {
	Get(ctx context.Context, key string) (Record, bool, error)
	Put(ctx context.Context, key, value string, shared bool) error
}

// SQLiteStore implements Store on a DBTX (either *sql.DB or *sql.Tx).
type SQLiteStore struct {
	db dbx.DBTX
}

func NewSQLiteStore(db dbx.DBTX) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (Record, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT key, value, shared, updated_at FROM records WHERE key = ?`, key)

	var rec Record
	err := row.Scan(&rec.Key, &rec.Value, &rec.Shared, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("reading record: %w", err)
	}
	return rec, true, nil
}

// Put upserts a record. Last writer wins.
func (s *SQLiteStore) Put(ctx context.Context, key, value string, shared bool) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO records (key, value, shared) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value,
		     shared = excluded.shared,
		     updated_at = CURRENT_TIMESTAMP`,
		key, value, shared)
	if err != nil {
		return fmt.Errorf("writing record: %w", err)
	}
	return nil
}

// Open opens the sqlite database at dsn and applies the embedded migrations.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return nil, err
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return nil, err
	}
	return db, nil
}
