// Package shop implementa el modelo de consistencia carrito/inventario de la tienda.
//
// Cada unidad de un producto está disponible (Product.Stock) o reservada en una línea
// del carrito (CartLine.Qty). Las operaciones de Session son las únicas que mueven
// unidades entre ambos lados y siempre lo hacen en la misma llamada, con el delta
// opuesto, de modo que stock + reservado se conserva. Si una precondición falla la
// operación no modifica nada y devuelve false.
package shop

import (
	"github.com/shopspring/decimal"

	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain/entity"
)

// Snapshot es la forma persistible de una sesión: productos y líneas en orden.
type Snapshot struct {
	Products []entity.Product
	Cart     []entity.CartLine
}

// Session agrupa el inventario y el carrito de un visitante.
// No es segura para uso concurrente; el llamador serializa las operaciones.
type Session struct {
	id        string
	inventory *Inventory
	cart      *Cart
}

// NewSession construye la sesión a partir de un snapshot cargado o sembrado.
func NewSession(id string, snap Snapshot) *Session {
	return &Session{
		id:        id,
		inventory: newInventory(snap.Products),
		cart:      newCart(snap.Cart),
	}
}

// ID identificador de la sesión.
func (s *Session) ID() string { return s.id }

// Inventory acceso de solo lectura al inventario.
func (s *Session) Inventory() *Inventory { return s.inventory }

// Cart acceso de solo lectura al carrito.
func (s *Session) Cart() *Cart { return s.cart }

// Snapshot copia el estado actual para persistirlo.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Products: s.inventory.Products(),
		Cart:     s.cart.Lines(),
	}
}

// Reserved unidades del producto reservadas en el carrito.
func (s *Session) Reserved(productID string) int {
	if l := s.cart.find(productID); l != nil {
		return l.Qty
	}
	return 0
}

// AddToCart reserva una unidad del producto.
// No hace nada si el producto no existe, no tiene stock, o si ya hay línea y
// stock - qty <= 0.
func (s *Session) AddToCart(productID string) bool {
	prod := s.inventory.find(productID)
	if prod == nil || prod.Stock <= 0 {
		return false
	}
	if line := s.cart.find(productID); line != nil {
		if prod.Stock-line.Qty <= 0 {
			return false
		}
		line.Qty++
	} else {
		s.cart.upsertLine(entity.CartLine{
			ProductID: prod.ID,
			Name:      prod.Name,
			UnitPrice: prod.Price,
			Qty:       1,
		})
	}
	s.inventory.adjustStock(productID, -1)
	return true
}

// ChangeQuantity suma delta a la cantidad de la línea y resta delta al stock.
// Si la cantidad resultante es <= 0 la línea se elimina y vuelve todo su stock.
// Un incremento sin stock suficiente para cubrir delta no aplica nada.
func (s *Session) ChangeQuantity(productID string, delta int) bool {
	line := s.cart.find(productID)
	prod := s.inventory.find(productID)
	if line == nil || prod == nil || delta == 0 {
		return false
	}
	newQty := line.Qty + delta
	if newQty <= 0 {
		s.inventory.adjustStock(productID, line.Qty)
		s.cart.removeLine(productID)
		return true
	}
	if delta > 0 && prod.Stock < delta {
		return false
	}
	line.Qty = newQty
	s.inventory.adjustStock(productID, -delta)
	return true
}

// RemoveLine quita la línea y devuelve toda su cantidad al stock.
func (s *Session) RemoveLine(productID string) bool {
	line := s.cart.find(productID)
	prod := s.inventory.find(productID)
	if line == nil || prod == nil {
		return false
	}
	s.inventory.adjustStock(productID, line.Qty)
	s.cart.removeLine(productID)
	return true
}

// ClearCart devuelve el stock de todas las líneas (omite productos que ya no existen)
// y vacía el carrito. Sobre un carrito vacío no hace nada.
func (s *Session) ClearCart() bool {
	if s.cart.Len() == 0 {
		return false
	}
	for _, l := range s.cart.lines {
		if s.inventory.find(l.ProductID) != nil {
			s.inventory.adjustStock(l.ProductID, l.Qty)
		}
	}
	s.cart.clear()
	return true
}

// CheckoutSummary resultado de un checkout.
type CheckoutSummary struct {
	Lines     []entity.CartLine
	Items     int
	Total     decimal.Decimal
	Restocked bool
}

// Checkout calcula el total del carrito y lo vacía.
// Con restock las unidades vuelven al stock como en ClearCart; sin restock se
// consideran vendidas. Devuelve domain.ErrEmptyCart sin modificar nada si el
// carrito está vacío.
func (s *Session) Checkout(restock bool) (CheckoutSummary, error) {
	if s.cart.Len() == 0 {
		return CheckoutSummary{}, domain.ErrEmptyCart
	}
	summary := CheckoutSummary{
		Lines:     s.cart.Lines(),
		Items:     s.cart.Items(),
		Total:     s.cart.Total(),
		Restocked: restock,
	}
	if restock {
		s.ClearCart()
	} else {
		s.cart.clear()
	}
	return summary, nil
}

// CreateProduct valida el borrador y agrega el producto al final del inventario.
func (s *Session) CreateProduct(id string, draft ProductDraft) (entity.Product, error) {
	if id == "" {
		return entity.Product{}, domain.ErrInvalidInput
	}
	p, err := draft.Validate()
	if err != nil {
		return entity.Product{}, err
	}
	p.ID = id
	if err := s.inventory.add(p); err != nil {
		return entity.Product{}, err
	}
	return p, nil
}
