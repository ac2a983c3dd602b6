package repository

import (
	"context"

	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain/entity"
)

// ReceiptRepository define el puerto de persistencia para los comprobantes de checkout.
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.Receipt) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Receipt, error)
	ListBySession(ctx context.Context, sessionID string, limit int) ([]*entity.Receipt, error)
	// Delete borra el comprobante; si no existe no hace nada.
	Delete(ctx context.Context, id string) error
}
