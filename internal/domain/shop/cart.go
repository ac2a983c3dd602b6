package shop

import (
	"github.com/shopspring/decimal"

	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain/entity"
)

// Cart guarda las líneas del carrito en orden de inserción (define el orden de visualización).
type Cart struct {
	lines []*entity.CartLine
}

func newCart(lines []entity.CartLine) *Cart {
	c := &Cart{lines: make([]*entity.CartLine, 0, len(lines))}
	for _, l := range lines {
		if l.Qty <= 0 {
			continue
		}
		if c.find(l.ProductID) != nil {
			continue
		}
		line := l
		c.lines = append(c.lines, &line)
	}
	return c
}

// FindByProductID devuelve una copia de la línea del producto.
func (c *Cart) FindByProductID(id string) (entity.CartLine, bool) {
	l := c.find(id)
	if l == nil {
		return entity.CartLine{}, false
	}
	return *l, true
}

// Lines devuelve copias de las líneas en orden de inserción.
func (c *Cart) Lines() []entity.CartLine {
	out := make([]entity.CartLine, 0, len(c.lines))
	for _, l := range c.lines {
		out = append(out, *l)
	}
	return out
}

// Len cantidad de líneas.
func (c *Cart) Len() int { return len(c.lines) }

// Items suma de cantidades de todas las líneas.
func (c *Cart) Items() int {
	n := 0
	for _, l := range c.lines {
		n += l.Qty
	}
	return n
}

// Total suma de Qty * UnitPrice.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (c *Cart) find(id string) *entity.CartLine {
	for _, l := range c.lines {
		if l.ProductID == id {
			return l
		}
	}
	return nil
}

// upsertLine reemplaza la línea existente del mismo producto o la agrega al final.
func (c *Cart) upsertLine(line entity.CartLine) {
	if existing := c.find(line.ProductID); existing != nil {
		*existing = line
		return
	}
	stored := line
	c.lines = append(c.lines, &stored)
}

func (c *Cart) removeLine(id string) {
	for i, l := range c.lines {
		if l.ProductID == id {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

func (c *Cart) clear() {
	c.lines = c.lines[:0]
}
