package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/application/auth"
)

// SessionHandler abre sesiones anónimas.
type SessionHandler struct {
	uc *auth.SessionUseCase
}

// NewSessionHandler construye el handler.
func NewSessionHandler(uc *auth.SessionUseCase) *SessionHandler {
	return &SessionHandler{uc: uc}
}

// Create godoc
// @Summary      Crear sesión
// @Description  Crea una sesión con el catálogo inicial y devuelve su token Bearer.
// @Tags         sessions
// @Produce      json
// @Success      201  {object}  dto.SessionResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/sessions [post]
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	out, err := h.uc.Start(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
