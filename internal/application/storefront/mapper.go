package storefront

import (
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/application/dto"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain/entity"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain/shop"
	"github.com/EmiliaOsaba/Entregable2-Osaba/pkg/money"
)

func toProductResponse(p entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price,
		PriceLabel: money.Label(p.Price),
		Stock:      p.Stock,
		Category:   p.Category,
		Available:  p.Stock > 0,
	}
}

func toProductResponses(products []entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

func toLineResponses(lines []entity.CartLine) []dto.CartLineResponse {
	out := make([]dto.CartLineResponse, 0, len(lines))
	for _, l := range lines {
		sub := l.Subtotal()
		out = append(out, dto.CartLineResponse{
			ProductID:     l.ProductID,
			Name:          l.Name,
			UnitPrice:     l.UnitPrice,
			Qty:           l.Qty,
			Subtotal:      sub,
			SubtotalLabel: money.Label(sub),
		})
	}
	return out
}

func toCartResponse(c *shop.Cart) dto.CartResponse {
	total := c.Total()
	return dto.CartResponse{
		Lines:      toLineResponses(c.Lines()),
		Items:      c.Items(),
		Total:      total,
		TotalLabel: money.Label(total),
		Empty:      c.Len() == 0,
	}
}

func toMutationResponse(applied bool, s *shop.Session) *dto.MutationResponse {
	return &dto.MutationResponse{
		Applied:  applied,
		Cart:     toCartResponse(s.Cart()),
		Products: toProductResponses(s.Inventory().Products()),
	}
}

func toReceiptResponse(r *entity.Receipt) *dto.ReceiptResponse {
	return &dto.ReceiptResponse{
		ID:         r.ID,
		Lines:      toLineResponses(r.Lines),
		Items:      r.Items,
		Total:      r.Total,
		TotalLabel: money.Label(r.Total),
		Restocked:  r.Restocked,
		CreatedAt:  r.CreatedAt,
	}
}
