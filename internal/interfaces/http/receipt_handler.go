package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/application/storefront"
)

// ReceiptHandler comprobantes de checkout de la sesión.
type ReceiptHandler struct {
	svc *storefront.Service
}

// NewReceiptHandler construye el handler.
func NewReceiptHandler(svc *storefront.Service) *ReceiptHandler {
	return &ReceiptHandler{svc: svc}
}

// List godoc
// @Summary      Listar comprobantes
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Límite"  default(20)
// @Success      200    {object}  dto.ReceiptListResponse
// @Router       /api/receipts [get]
func (h *ReceiptHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	out, err := h.svc.Receipts(c.UserContext(), GetSessionID(c), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener comprobante
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del comprobante"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id} [get]
func (h *ReceiptHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.svc.Receipt(c.UserContext(), GetSessionID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar comprobante en PDF
// @Tags         receipts
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del comprobante"
// @Success      200  {file}  binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id}/pdf [get]
func (h *ReceiptHandler) PDF(c *fiber.Ctx) error {
	id := c.Params("id")
	b, err := h.svc.ReceiptPDF(c.UserContext(), GetSessionID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="comprobante-`+id+`.pdf"`)
	return c.Send(b)
}
