package postgres

import (
	"context"
	"fmt"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS kv_records (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS receipts (
	id         UUID PRIMARY KEY,
	session_id TEXT NOT NULL,
	items      INTEGER NOT NULL,
	total      NUMERIC(14,2) NOT NULL,
	restocked  BOOLEAN NOT NULL DEFAULT false,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_receipts_session ON receipts (session_id, created_at DESC);

CREATE TABLE IF NOT EXISTS receipt_lines (
	receipt_id UUID NOT NULL REFERENCES receipts(id) ON DELETE CASCADE,
	position   INTEGER NOT NULL,
	product_id TEXT NOT NULL,
	name       TEXT NOT NULL,
	unit_price NUMERIC(14,2) NOT NULL,
	qty        INTEGER NOT NULL CHECK (qty > 0),
	PRIMARY KEY (receipt_id, position)
);`

// EnsureSchema crea las tablas si no existen. Idempotente.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
