package dto

import "github.com/shopspring/decimal"

// CartLineResponse una línea del carrito.
type CartLineResponse struct {
	ProductID     string          `json:"product_id"`
	Name          string          `json:"name"`
	UnitPrice     decimal.Decimal `json:"unit_price" swaggertype:"string"`
	Qty           int             `json:"qty"`
	Subtotal      decimal.Decimal `json:"subtotal" swaggertype:"string"`
	SubtotalLabel string          `json:"subtotal_label"`
}

// CartResponse estado del carrito. Empty refleja el mensaje "Tu carrito está vacío".
type CartResponse struct {
	Lines      []CartLineResponse `json:"lines"`
	Items      int                `json:"items"`
	Total      decimal.Decimal    `json:"total" swaggertype:"string"`
	TotalLabel string             `json:"total_label"`
	Empty      bool               `json:"empty"`
}

// MutationResponse resultado de una intención sobre el carrito.
// Applied=false indica que la operación no tuvo efecto; el estado devuelto es el actual.
type MutationResponse struct {
	Applied  bool              `json:"applied"`
	Cart     CartResponse      `json:"cart"`
	Products []ProductResponse `json:"products"`
}
