// Package memory guarda comprobantes en memoria del proceso (driver memory).
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain/entity"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain/repository"
)

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

// ReceiptRepo implementación en memoria de ReceiptRepository.
type ReceiptRepo struct {
	mu       sync.RWMutex
	receipts map[string]entity.Receipt
}

// NewReceiptRepository construye el repositorio vacío.
func NewReceiptRepository() *ReceiptRepo {
	return &ReceiptRepo{receipts: make(map[string]entity.Receipt)}
}

// Create guarda una copia del comprobante.
func (r *ReceiptRepo) Create(_ context.Context, receipt *entity.Receipt) error {
	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.receipts[receipt.ID]; ok {
		return fmt.Errorf("receipt %s: %w", receipt.ID, domain.ErrDuplicate)
	}
	r.receipts[receipt.ID] = clone(*receipt)
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *ReceiptRepo) GetByID(_ context.Context, id string) (*entity.Receipt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.receipts[id]
	if !ok {
		return nil, nil
	}
	out := clone(rec)
	return &out, nil
}

// ListBySession devuelve los comprobantes de la sesión, más recientes primero.
func (r *ReceiptRepo) ListBySession(_ context.Context, sessionID string, limit int) ([]*entity.Receipt, error) {
	if limit <= 0 {
		limit = 20
	}
	r.mu.RLock()
	out := make([]*entity.Receipt, 0)
	for _, rec := range r.receipts {
		if rec.SessionID == sessionID {
			c := clone(rec)
			out = append(out, &c)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Delete borra el comprobante si existe.
func (r *ReceiptRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.receipts, id)
	return nil
}

func clone(r entity.Receipt) entity.Receipt {
	r.Lines = append([]entity.CartLine(nil), r.Lines...)
	return r
}
