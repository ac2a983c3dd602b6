package shop

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain/entity"
)

// Mensajes del formulario de alta de producto.
const (
	MsgInvalidName  = "El nombre debe tener al menos 2 caracteres."
	MsgInvalidPrice = "El precio debe ser un número mayor a 0."
	MsgInvalidStock = "El stock debe ser un entero mayor o igual a 0."
)

// ProductDraft datos crudos del formulario de alta, tal como los envía el cliente.
type ProductDraft struct {
	Name     string
	Price    string
	Stock    string
	Category string
}

// Validate aplica las reglas del formulario en orden (nombre, precio, stock) y
// devuelve el producto sin ID. El primer campo inválido corta la validación.
func (d ProductDraft) Validate() (entity.Product, error) {
	name := strings.TrimSpace(d.Name)
	if utf8.RuneCountInString(name) < 2 {
		return entity.Product{}, domain.NewValidationError("name", MsgInvalidName)
	}
	price, err := decimal.NewFromString(strings.TrimSpace(d.Price))
	if err != nil || !price.IsPositive() {
		return entity.Product{}, domain.NewValidationError("price", MsgInvalidPrice)
	}
	stock, err := strconv.Atoi(strings.TrimSpace(d.Stock))
	if err != nil || stock < 0 {
		return entity.Product{}, domain.NewValidationError("stock", MsgInvalidStock)
	}
	category := strings.TrimSpace(d.Category)
	if category == "" {
		category = entity.DefaultCategory
	}
	return entity.Product{
		Name:     name,
		Price:    price,
		Stock:    stock,
		Category: category,
	}, nil
}
