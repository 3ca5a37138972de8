// Package postgres keeps the order collection document in a single-row
// table, as an alternative to the bucket backend. The document stays an
// opaque blob; there is no per-order schema and no migration machinery.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"orderdesk/internal/ports/outbound"
)

type DocumentStore struct {
	pool *pgxpool.Pool
}

func NewDocumentStore(pool *pgxpool.Pool) *DocumentStore {
	return &DocumentStore{pool: pool}
}

// EnsureSchema creates the document table if missing.
func (s *DocumentStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS order_documents (
			name       TEXT PRIMARY KEY,
			doc        JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *DocumentStore) Get(ctx context.Context, key string) ([]byte, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx,
		`SELECT doc FROM order_documents WHERE name = $1`, key,
	).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%q: %w", key, outbound.ErrObjectNotFound)
		}
		return nil, fmt.Errorf("select document %q: %w", key, err)
	}
	return doc, nil
}

func (s *DocumentStore) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO order_documents (name, doc, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET
			doc = EXCLUDED.doc,
			updated_at = now()
	`, key, data)
	if err != nil {
		return fmt.Errorf("upsert document %q: %w", key, err)
	}
	return nil
}

var _ outbound.ObjectStore = (*DocumentStore)(nil)
