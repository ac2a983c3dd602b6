// Package storage arma el backend clave-valor y el repositorio de comprobantes según STORAGE_DRIVER.
package storage

import (
	"context"
	"fmt"

	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain/repository"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/infrastructure/kv"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/infrastructure/memory"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/infrastructure/persistence"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/infrastructure/postgres"
	"github.com/EmiliaOsaba/Entregable2-Osaba/pkg/config"
	"github.com/EmiliaOsaba/Entregable2-Osaba/pkg/logger"
)

// Backend adaptadores listos para inyectar. Close libera conexiones.
type Backend struct {
	Driver   string
	KV       repository.KVStore
	Receipts repository.ReceiptRepository
	State    *persistence.StateStore
	closers  []func()
}

// Close libera los recursos en orden inverso.
func (b *Backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

// Open construye el backend configurado. Con postgres también crea el esquema.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Backend, error) {
	b := &Backend{Driver: cfg.Storage.Driver}

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		b.KV = kv.NewMemoryStore()
		b.Receipts = memory.NewReceiptRepository()

	case config.DriverFile:
		store, err := kv.NewFileStore(cfg.Storage.Dir)
		if err != nil {
			return nil, err
		}
		b.KV = store
		b.Receipts = persistence.NewReceiptStore(store)

	case config.DriverRedis:
		store, err := kv.NewRedisStore(ctx, kv.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.App.Name + ":",
		})
		if err != nil {
			return nil, err
		}
		b.KV = store
		b.Receipts = persistence.NewReceiptStore(store)
		b.closers = append(b.closers, func() { _ = store.Close() })

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		b.KV = postgres.NewKVStore(pool)
		b.Receipts = postgres.NewReceiptRepository(pool)
		b.closers = append(b.closers, pool.Close)

	default:
		return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Storage.Driver)
	}

	b.State = persistence.NewStateStore(b.KV, persistence.Keys{
		Products: cfg.Storage.KeyProducts,
		Cart:     cfg.Storage.KeyCart,
	}, log)
	return b, nil
}
