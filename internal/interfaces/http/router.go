package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/veon-api/internal/application/dto"
	"github.com/jhoicas/veon-api/internal/application/sales"
	"github.com/jhoicas/veon-api/internal/application/usecase"
	"github.com/jhoicas/veon-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ClientUC    *usecase.ClientUseCase
	ProductUC   *usecase.ProductUseCase
	ProviderUC  *usecase.ProviderUseCase
	QuotationUC *usecase.QuotationUseCase
	SaleUC      *sales.SaleUseCase
	Verifier    TokenVerifier
	Logger      *logger.Logger
}

// Router registra las rutas de la API bajo /api.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.NewNop()
	}
	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.Verifier)

	api.Get("/health", Health)

	// Auth
	authHandler := NewAuthHandler(deps.Verifier, log)
	authGroup := api.Group("/auth")
	authGroup.Post("/verify-token", authHandler.VerifyToken)
	authGroup.Get("/me", requireAuth, authHandler.Me)

	// Clients (protegido)
	clientHandler := NewClientHandler(deps.ClientUC, log)
	clients := api.Group("/clients", requireAuth)
	clients.Get("/", clientHandler.List)
	clients.Post("/", clientHandler.Create)
	clients.Get("/:id", clientHandler.Get)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	// Products (protegido). /sku/:sku va antes de /:id.
	productHandler := NewProductHandler(deps.ProductUC, log)
	products := api.Group("/products", requireAuth)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/sku/:sku", productHandler.GetBySKU)
	products.Get("/:id", productHandler.Get)
	products.Put("/:id", productHandler.Update)
	products.Patch("/:id/stock", productHandler.UpdateStock)
	products.Delete("/:id", productHandler.Delete)

	// Providers (protegido)
	providerHandler := NewProviderHandler(deps.ProviderUC, log)
	providers := api.Group("/providers", requireAuth)
	providers.Get("/", providerHandler.List)
	providers.Post("/", providerHandler.Create)
	providers.Get("/:id", providerHandler.Get)
	providers.Put("/:id", providerHandler.Update)
	providers.Delete("/:id", providerHandler.Delete)

	// Quotations (protegido)
	quotationHandler := NewQuotationHandler(deps.QuotationUC, log)
	quotations := api.Group("/quotations", requireAuth)
	quotations.Get("/", quotationHandler.List)
	quotations.Post("/", quotationHandler.Create)
	quotations.Get("/:id", quotationHandler.Get)
	quotations.Get("/:id/pdf", quotationHandler.PDF)
	quotations.Put("/:id", quotationHandler.Update)
	quotations.Patch("/:id/status", quotationHandler.UpdateStatus)
	quotations.Patch("/:id/convert", quotationHandler.Convert)
	quotations.Delete("/:id", quotationHandler.Delete)

	// Sales (protegido). /stats va antes de /:id.
	saleHandler := NewSaleHandler(deps.SaleUC, log)
	salesGroup := api.Group("/sales", requireAuth)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/stats", saleHandler.Stats)
	salesGroup.Get("/:id", saleHandler.Get)
	salesGroup.Put("/:id", saleHandler.Update)
	salesGroup.Delete("/:id", saleHandler.Delete)
}

// Health GET /api/health
func Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	})
}
