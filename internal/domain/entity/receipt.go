package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt registra un checkout simulado: las líneas compradas y el total cobrado.
// Restocked indica si las unidades volvieron al stock al vaciar el carrito.
type Receipt struct {
	ID        string
	SessionID string
	Lines     []CartLine
	Items     int
	Total     decimal.Decimal
	Restocked bool
	CreatedAt time.Time
}
