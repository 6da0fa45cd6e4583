package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/2beens/workoutlog/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	_ "modernc.org/sqlite"
)

var _ Store = (*SQLite)(nil)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS kv (
    key   TEXT PRIMARY KEY,
    value BLOB NOT NULL
);`

const sqliteUpsert = `INSERT INTO kv (key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value;`

// SQLite keeps the documents in a single-file database on the local device.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at path. Use ":memory:" for a
// throwaway store.
func NewSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite [%s]: %w", path, err)
	}

	// one writer at a time; also keeps a ":memory:" database on a single connection
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}

	log.Debugf("sqlite kv store ready: %s", path)
	return &SQLite{db: db}, nil
}

func (s *SQLite) Get(ctx context.Context, key string) (_ []byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "kvstore.sqlite.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("key", key))

	var value []byte
	err = s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?;`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return value, nil
}

func (s *SQLite) Set(ctx context.Context, key string, value []byte) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "kvstore.sqlite.set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("key", key), attribute.Int("size", len(value)))

	_, err = s.db.ExecContext(ctx, sqliteUpsert, key, value)
	return err
}

func (s *SQLite) SetMany(ctx context.Context, values map[string][]byte) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "kvstore.sqlite.setMany")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("keys", len(values)))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				log.Errorf("sqlite set many, rollback: %s", rbErr)
			}
		}
	}()

	for key, value := range values {
		if _, err = tx.ExecContext(ctx, sqliteUpsert, key, value); err != nil {
			return fmt.Errorf("upsert [%s]: %w", key, err)
		}
	}

	return tx.Commit()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
