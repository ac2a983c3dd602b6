package persistence

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain/entity"
)

// productRecord forma JSON de un producto guardado. price y stock son números JSON.
type productRecord struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Price    json.Number `json:"price"`
	Stock    json.Number `json:"stock"`
	Category string      `json:"category"`
}

// cartRecord forma JSON de una línea del carrito; id es el id del producto.
type cartRecord struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	UnitPrice json.Number `json:"unitPrice"`
	Qty       json.Number `json:"qty"`
}

// decodeRecords lee un arreglo JSON elemento por elemento; los elementos que no
// decodifican se saltean y se cuentan en skipped.
func decodeRecords[T any](raw []byte) (recs []T, skipped int, err error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, 0, err
	}
	recs = make([]T, 0, len(items))
	for _, item := range items {
		var rec T
		if err := json.Unmarshal(item, &rec); err != nil {
			skipped++
			continue
		}
		recs = append(recs, rec)
	}
	return recs, skipped, nil
}

// wholeNumber interpreta n como entero; acepta 3 y 3.0, rechaza 2.5 y texto.
func wholeNumber(n json.Number) (int, bool) {
	d, err := decimal.NewFromString(n.String())
	if err != nil || !d.IsInteger() {
		return 0, false
	}
	return int(d.IntPart()), true
}

func toProductRecords(products []entity.Product) []productRecord {
	out := make([]productRecord, 0, len(products))
	for _, p := range products {
		out = append(out, productRecord{
			ID:       p.ID,
			Name:     p.Name,
			Price:    json.Number(p.Price.String()),
			Stock:    json.Number(strconv.Itoa(p.Stock)),
			Category: p.Category,
		})
	}
	return out
}

func toCartRecords(lines []entity.CartLine) []cartRecord {
	out := make([]cartRecord, 0, len(lines))
	for _, l := range lines {
		out = append(out, cartRecord{
			ID:        l.ProductID,
			Name:      l.Name,
			UnitPrice: json.Number(l.UnitPrice.String()),
			Qty:       json.Number(strconv.Itoa(l.Qty)),
		})
	}
	return out
}

// fromProductRecords descarta registros sin id, con precio ilegible o negativo, o stock
// negativo o no entero.
func fromProductRecords(recs []productRecord) []entity.Product {
	out := make([]entity.Product, 0, len(recs))
	for _, r := range recs {
		stock, ok := wholeNumber(r.Stock)
		if r.ID == "" || !ok || stock < 0 {
			continue
		}
		price, err := decimal.NewFromString(r.Price.String())
		if err != nil || price.IsNegative() {
			continue
		}
		category := strings.TrimSpace(r.Category)
		if category == "" {
			category = entity.DefaultCategory
		}
		out = append(out, entity.Product{
			ID:       r.ID,
			Name:     r.Name,
			Price:    price,
			Stock:    stock,
			Category: category,
		})
	}
	return out
}

// fromCartRecords descarta líneas sin id, con cantidad no entera o <= 0, o precio ilegible.
func fromCartRecords(recs []cartRecord) []entity.CartLine {
	out := make([]entity.CartLine, 0, len(recs))
	for _, r := range recs {
		qty, ok := wholeNumber(r.Qty)
		if r.ID == "" || !ok || qty <= 0 {
			continue
		}
		price, err := decimal.NewFromString(r.UnitPrice.String())
		if err != nil || price.IsNegative() {
			continue
		}
		out = append(out, entity.CartLine{
			ProductID: r.ID,
			Name:      r.Name,
			UnitPrice: price,
			Qty:       qty,
		})
	}
	return out
}
