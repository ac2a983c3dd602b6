package shop

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain/entity"
)

// SortKey criterio de orden del catálogo.
type SortKey string

const (
	SortAlphaAsc  SortKey = "alphaAsc"
	SortAlphaDesc SortKey = "alphaDesc"
	SortPriceAsc  SortKey = "priceAsc"
	SortPriceDesc SortKey = "priceDesc"
)

// Valid indica si el criterio es conocido. Vacío es válido (orden de inserción).
func (k SortKey) Valid() bool {
	switch k {
	case "", SortAlphaAsc, SortAlphaDesc, SortPriceAsc, SortPriceDesc:
		return true
	}
	return false
}

// CatalogQuery filtro y orden de la vista del catálogo.
type CatalogQuery struct {
	Term string
	Sort SortKey
}

// catalogLocale idioma para comparar nombres (equivalente a localeCompare en es-UY).
var catalogLocale = language.MustParse("es-UY")

// FilterAndSort devuelve una vista nueva del catálogo; nunca modifica products.
// El término se compara sin distinguir mayúsculas contra nombre o categoría.
func FilterAndSort(products []entity.Product, q CatalogQuery) []entity.Product {
	fold := cases.Fold()
	term := fold.String(strings.TrimSpace(q.Term))

	list := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if term == "" ||
			strings.Contains(fold.String(p.Name), term) ||
			strings.Contains(fold.String(p.Category), term) {
			list = append(list, p)
		}
	}

	switch q.Sort {
	case SortAlphaAsc, SortAlphaDesc:
		col := collate.New(catalogLocale)
		desc := q.Sort == SortAlphaDesc
		sort.SliceStable(list, func(i, j int) bool {
			if desc {
				return col.CompareString(list[j].Name, list[i].Name) < 0
			}
			return col.CompareString(list[i].Name, list[j].Name) < 0
		})
	case SortPriceAsc:
		sort.SliceStable(list, func(i, j int) bool { return list[i].Price.LessThan(list[j].Price) })
	case SortPriceDesc:
		sort.SliceStable(list, func(i, j int) bool { return list[j].Price.LessThan(list[i].Price) })
	}
	return list
}
