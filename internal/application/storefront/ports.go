package storefront

import (
	"context"

	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain/entity"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain/shop"
)

// StateRepository carga y guarda el snapshot completo de una sesión.
type StateRepository interface {
	Load(ctx context.Context, sessionID string) (shop.Snapshot, error)
	Save(ctx context.Context, sessionID string, snap shop.Snapshot) error
}

// ReceiptPDFGenerator genera la representación PDF de un comprobante.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, receipt *entity.Receipt) ([]byte, error)
}
