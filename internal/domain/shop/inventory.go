package shop

import (
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain/entity"
)

// Inventory guarda los productos en orden de inserción con un índice por ID.
// Es de solo lectura fuera del paquete: el stock cambia únicamente a través de Session.
type Inventory struct {
	products []*entity.Product
	byID     map[string]*entity.Product
}

func newInventory(products []entity.Product) *Inventory {
	inv := &Inventory{
		products: make([]*entity.Product, 0, len(products)),
		byID:     make(map[string]*entity.Product, len(products)),
	}
	for _, p := range products {
		// IDs repetidos en datos persistidos: se conserva el primero.
		_ = inv.add(p)
	}
	return inv
}

// FindByID devuelve una copia del producto.
func (inv *Inventory) FindByID(id string) (entity.Product, bool) {
	p, ok := inv.byID[id]
	if !ok {
		return entity.Product{}, false
	}
	return *p, true
}

// Products devuelve copias de todos los productos en orden de inserción.
func (inv *Inventory) Products() []entity.Product {
	out := make([]entity.Product, 0, len(inv.products))
	for _, p := range inv.products {
		out = append(out, *p)
	}
	return out
}

// Len cantidad de productos.
func (inv *Inventory) Len() int { return len(inv.products) }

func (inv *Inventory) find(id string) *entity.Product {
	return inv.byID[id]
}

func (inv *Inventory) add(p entity.Product) error {
	if _, exists := inv.byID[p.ID]; exists {
		return domain.ErrDuplicate
	}
	stored := p
	inv.products = append(inv.products, &stored)
	inv.byID[p.ID] = &stored
	return nil
}

// adjustStock suma delta (con signo) al stock. No valida negativos: lo hace el llamador.
func (inv *Inventory) adjustStock(id string, delta int) {
	if p := inv.byID[id]; p != nil {
		p.Stock += delta
	}
}
