package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain/repository"
)

var _ repository.KVStore = (*KVStore)(nil)

// KVStore guarda los registros de sesión en la tabla kv_records (value JSONB).
type KVStore struct {
	pool *pgxpool.Pool
	tx   *TxRunner
}

// NewKVStore construye el adaptador. Requiere EnsureSchema previo.
func NewKVStore(pool *pgxpool.Pool) *KVStore {
	return &KVStore{pool: pool, tx: NewTxRunner(pool)}
}

// Get devuelve el JSON guardado o domain.ErrNotFound.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.pool.QueryRow(ctx, `SELECT value::text FROM kv_records WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get kv %q: %w", key, err)
	}
	return value, nil
}

// SetMany hace upsert de todas las entradas en una sola transacción.
// Los valores deben ser JSON válido (columna JSONB).
func (s *KVStore) SetMany(ctx context.Context, entries map[string][]byte) error {
	return s.tx.Run(ctx, func(q Querier) error {
		for k, v := range entries {
			_, err := q.Exec(ctx, `
				INSERT INTO kv_records (key, value, updated_at)
				VALUES ($1, $2::jsonb, now())
				ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
				k, string(v))
			if err != nil {
				return fmt.Errorf("upsert kv %q: %w", k, err)
			}
		}
		return nil
	})
}

// Delete elimina las claves.
func (s *KVStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if _, err := s.pool.Exec(ctx, `DELETE FROM kv_records WHERE key = ANY($1)`, keys); err != nil {
		return fmt.Errorf("delete kv: %w", err)
	}
	return nil
}
