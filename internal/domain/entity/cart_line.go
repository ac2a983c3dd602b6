package entity

import "github.com/shopspring/decimal"

// CartLine es una reserva de unidades de un producto dentro del carrito.
// Name y UnitPrice son copias tomadas al agregar; Qty siempre es > 0.
type CartLine struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Qty       int
}

// Subtotal devuelve Qty * UnitPrice.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Qty)))
}
