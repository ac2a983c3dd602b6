package dto

import "github.com/shopspring/decimal"

// CreateProductRequest formulario de alta de producto. price y stock aceptan número o texto.
type CreateProductRequest struct {
	Name     string    `json:"name"`
	Price    FormValue `json:"price" swaggertype:"string"`
	Stock    FormValue `json:"stock" swaggertype:"string"`
	Category string    `json:"category"`
}

// ProductResponse salida de un producto con su stock disponible.
type ProductResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price" swaggertype:"string"`
	PriceLabel string          `json:"price_label"`
	Stock      int             `json:"stock"`
	Category   string          `json:"category"`
	Available  bool            `json:"available"`
}

// ProductListResponse catálogo filtrado y ordenado.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}
