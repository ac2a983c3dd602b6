package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/application/dto"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/application/storefront"
)

// ProductHandler catálogo de la sesión.
type ProductHandler struct {
	svc *storefront.Service
}

// NewProductHandler construye el handler.
func NewProductHandler(svc *storefront.Service) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// List godoc
// @Summary      Listar catálogo
// @Description  Filtra por nombre o categoría (sin distinguir mayúsculas) y ordena.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        q     query  string  false  "Texto a buscar"
// @Param        sort  query  string  false  "alphaAsc | alphaDesc | priceAsc | priceDesc"
// @Success      200   {object}  dto.ProductListResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.svc.Catalog(c.UserContext(), GetSessionID(c), c.Query("q"), c.Query("sort"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Nombre, precio, stock y categoría"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.svc.CreateProduct(c.UserContext(), GetSessionID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
