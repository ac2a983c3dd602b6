package persistence

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain/entity"
)

// SeedCatalog catálogo inicial para almacenamiento vacío; ids nuevos en cada llamada.
func SeedCatalog() []entity.Product {
	seed := []struct {
		name     string
		price    int64
		stock    int
		category string
	}{
		{"Camisa", 1500, 12, "Ropa"},
		{"Pantalón", 2300, 20, "Ropa"},
		{"Championes", 4500, 30, "Calzado"},
		{"Gorra", 800, 25, "Accesorio"},
	}
	out := make([]entity.Product, 0, len(seed))
	for _, s := range seed {
		out = append(out, entity.Product{
			ID:       uuid.NewString(),
			Name:     s.name,
			Price:    decimal.NewFromInt(s.price),
			Stock:    s.stock,
			Category: s.category,
		})
	}
	return out
}
