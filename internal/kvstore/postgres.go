package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/workoutlog/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var _ Store = (*Postgres)(nil)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS kv_store
(
    key        VARCHAR PRIMARY KEY,
    value      BYTEA       NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);`

const postgresUpsert = `INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, $3)
	ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at;`

// Postgres keeps the documents in the kv_store table. The pool is owned by the
// caller.
type Postgres struct {
	db *pgxpool.Pool
}

func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{
		db: db,
	}
}

// EnsureSchema creates the kv_store table when missing.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("create kv_store table: %w", err)
	}
	return nil
}

func (p *Postgres) Get(ctx context.Context, key string) (_ []byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "kvstore.postgres.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("key", key))

	var value []byte
	err = p.db.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1;`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return value, nil
}

func (p *Postgres) Set(ctx context.Context, key string, value []byte) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "kvstore.postgres.set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("key", key), attribute.Int("size", len(value)))

	_, err = p.db.Exec(ctx, postgresUpsert, key, value, time.Now())
	return err
}

func (p *Postgres) SetMany(ctx context.Context, values map[string][]byte) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "kvstore.postgres.setMany")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("keys", len(values)))

	now := time.Now()
	return pgx.BeginFunc(ctx, p.db, func(tx pgx.Tx) error {
		for key, value := range values {
			if _, err := tx.Exec(ctx, postgresUpsert, key, value, now); err != nil {
				return fmt.Errorf("upsert [%s]: %w", key, err)
			}
		}
		return nil
	})
}

func (p *Postgres) Close() error {
	return nil
}
