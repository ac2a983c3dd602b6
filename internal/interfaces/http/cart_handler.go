package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/application/dto"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/application/storefront"
)

// CartHandler intenciones sobre el carrito. Un no-op responde 200 con applied=false.
type CartHandler struct {
	svc *storefront.Service
}

// NewCartHandler construye el handler.
func NewCartHandler(svc *storefront.Service) *CartHandler {
	return &CartHandler{svc: svc}
}

type lineIntent func(ctx context.Context, sessionID, productID string) (*dto.MutationResponse, error)

func (h *CartHandler) runLine(c *fiber.Ctx, fn lineIntent) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := fn(c.UserContext(), GetSessionID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Ver carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	out, err := h.svc.Cart(c.UserContext(), GetSessionID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Agregar una unidad al carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.MutationResponse
// @Router       /api/cart/items/{id} [post]
func (h *CartHandler) Add(c *fiber.Ctx) error {
	return h.runLine(c, h.svc.AddToCart)
}

// Increment godoc
// @Summary      Sumar una unidad a la línea
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.MutationResponse
// @Router       /api/cart/items/{id}/increment [post]
func (h *CartHandler) Increment(c *fiber.Ctx) error {
	return h.runLine(c, h.svc.Increment)
}

// Decrement godoc
// @Summary      Restar una unidad a la línea
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.MutationResponse
// @Router       /api/cart/items/{id}/decrement [post]
func (h *CartHandler) Decrement(c *fiber.Ctx) error {
	return h.runLine(c, h.svc.Decrement)
}

// Remove godoc
// @Summary      Quitar la línea del carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.MutationResponse
// @Router       /api/cart/items/{id} [delete]
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	return h.runLine(c, h.svc.Remove)
}

// Clear godoc
// @Summary      Vaciar carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MutationResponse
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	out, err := h.svc.Clear(c.UserContext(), GetSessionID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Checkout godoc
// @Summary      Finalizar compra (simulada)
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CheckoutResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cart/checkout [post]
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	out, err := h.svc.Checkout(c.UserContext(), GetSessionID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
