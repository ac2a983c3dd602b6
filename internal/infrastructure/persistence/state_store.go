// Package persistence traduce sesiones de la tienda a registros JSON en un repository.KVStore.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain/repository"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain/shop"
	"github.com/EmiliaOsaba/Entregable2-Osaba/pkg/logger"
)

// Keys nombres base de los dos registros de cada sesión.
type Keys struct {
	Products string // ej. e2_products
	Cart     string // ej. e2_cart
}

// StateStore carga y guarda el snapshot de una sesión.
type StateStore struct {
	kv   repository.KVStore
	keys Keys
	log  *logger.Logger
}

// NewStateStore construye el adaptador. log puede ser nil.
func NewStateStore(kv repository.KVStore, keys Keys, log *logger.Logger) *StateStore {
	if log == nil {
		log = logger.Nop()
	}
	return &StateStore{kv: kv, keys: keys, log: log}
}

func (s *StateStore) key(sessionID, base string) string {
	if sessionID == "" {
		return base
	}
	return sessionID + ":" + base
}

// Load lee ambos registros. Productos ausentes, ilegibles o vacíos se reemplazan por el
// catálogo inicial; un carrito ausente o ilegible se toma como vacío. Solo los errores
// del backend se devuelven.
func (s *StateStore) Load(ctx context.Context, sessionID string) (shop.Snapshot, error) {
	var snap shop.Snapshot

	rawProducts, err := s.get(ctx, s.key(sessionID, s.keys.Products))
	if err != nil {
		return snap, err
	}
	if rawProducts != nil {
		recs, skipped, err := decodeRecords[productRecord](rawProducts)
		if err != nil {
			s.log.Warn().Err(err).Str("session_id", sessionID).Msg("registro de productos ilegible, se usa el catálogo inicial")
		} else {
			if skipped > 0 {
				s.log.Warn().Int("skipped", skipped).Str("session_id", sessionID).Msg("productos ilegibles descartados")
			}
			snap.Products = fromProductRecords(recs)
		}
	}
	if len(snap.Products) == 0 {
		snap.Products = SeedCatalog()
	}

	rawCart, err := s.get(ctx, s.key(sessionID, s.keys.Cart))
	if err != nil {
		return snap, err
	}
	if rawCart != nil {
		recs, skipped, err := decodeRecords[cartRecord](rawCart)
		if err != nil {
			s.log.Warn().Err(err).Str("session_id", sessionID).Msg("registro de carrito ilegible, se usa carrito vacío")
		} else {
			if skipped > 0 {
				s.log.Warn().Int("skipped", skipped).Str("session_id", sessionID).Msg("líneas de carrito ilegibles descartadas")
			}
			snap.Cart = fromCartRecords(recs)
		}
	}
	return snap, nil
}

func (s *StateStore) get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load %q: %w", key, err)
	}
	return b, nil
}

// Save reescribe ambos registros completos.
func (s *StateStore) Save(ctx context.Context, sessionID string, snap shop.Snapshot) error {
	products, err := json.Marshal(toProductRecords(snap.Products))
	if err != nil {
		return fmt.Errorf("encode products: %w", err)
	}
	cart, err := json.Marshal(toCartRecords(snap.Cart))
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	err = s.kv.SetMany(ctx, map[string][]byte{
		s.key(sessionID, s.keys.Products): products,
		s.key(sessionID, s.keys.Cart):     cart,
	})
	if err != nil {
		return fmt.Errorf("save session %q: %w", sessionID, err)
	}
	return nil
}

// Reset borra ambos registros; la próxima carga vuelve al catálogo inicial.
func (s *StateStore) Reset(ctx context.Context, sessionID string) error {
	if err := s.kv.Delete(ctx, s.key(sessionID, s.keys.Products), s.key(sessionID, s.keys.Cart)); err != nil {
		return fmt.Errorf("reset session %q: %w", sessionID, err)
	}
	return nil
}
