package entity

import "github.com/shopspring/decimal"

// DefaultCategory se asigna cuando el producto llega sin categoría.
const DefaultCategory = "General"

// Product representa un producto del catálogo con su stock disponible (no reservado en carrito).
type Product struct {
	// ID uuid generado al crear; nunca se reutiliza ni se modifica.
	ID       string
	Name     string
	Price    decimal.Decimal // precio de venta, >= 0
	Stock    int             // unidades disponibles, >= 0
	Category string
}
