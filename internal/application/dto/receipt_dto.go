package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutResponse resultado del checkout simulado.
type CheckoutResponse struct {
	ReceiptID  string          `json:"receipt_id"`
	Items      int             `json:"items"`
	Total      decimal.Decimal `json:"total" swaggertype:"string"`
	TotalLabel string          `json:"total_label"`
	Message    string          `json:"message"`
	Restocked  bool            `json:"restocked"`
	Cart       CartResponse    `json:"cart"`
}

// ReceiptResponse comprobante guardado.
type ReceiptResponse struct {
	ID         string             `json:"id"`
	Lines      []CartLineResponse `json:"lines"`
	Items      int                `json:"items"`
	Total      decimal.Decimal    `json:"total" swaggertype:"string"`
	TotalLabel string             `json:"total_label"`
	Restocked  bool               `json:"restocked"`
	CreatedAt  time.Time          `json:"created_at"`
}

// ReceiptListResponse comprobantes de la sesión, más recientes primero.
type ReceiptListResponse struct {
	Items []ReceiptResponse `json:"items"`
}
