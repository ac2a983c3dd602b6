package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/application/auth"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/application/storefront"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SessionUC   *auth.SessionUseCase
	Storefront  *storefront.Service
	JWTSecret   string
	ServiceName string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	api := app.Group("/api")

	// Sesiones (público)
	sessionHandler := NewSessionHandler(deps.SessionUC)
	api.Post("/sessions", sessionHandler.Create)

	// El resto requiere el token de la sesión
	protected := api.Group("/", SessionMiddleware(deps.JWTSecret))

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.Storefront)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)

	cart := protected.Group("/cart")
	cartHandler := NewCartHandler(deps.Storefront)
	cart.Get("/", cartHandler.Get)
	cart.Delete("/", cartHandler.Clear)
	cart.Post("/checkout", cartHandler.Checkout)
	cart.Post("/items/:id", cartHandler.Add)
	cart.Post("/items/:id/increment", cartHandler.Increment)
	cart.Post("/items/:id/decrement", cartHandler.Decrement)
	cart.Delete("/items/:id", cartHandler.Remove)

	receipts := protected.Group("/receipts")
	receiptHandler := NewReceiptHandler(deps.Storefront)
	receipts.Get("/", receiptHandler.List)
	receipts.Get("/:id", receiptHandler.GetByID)
	receipts.Get("/:id/pdf", receiptHandler.PDF)
}
