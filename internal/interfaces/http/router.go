package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-backoffice/internal/application/billing"
	"github.com/tu-usuario/pos-backoffice/internal/application/credit"
	"github.com/tu-usuario/pos-backoffice/internal/application/inventory"
	"github.com/tu-usuario/pos-backoffice/internal/application/sales"
	"github.com/tu-usuario/pos-backoffice/internal/application/usecase"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC    *usecase.ProductUseCase
	CustomerUC   *billing.CustomerUseCase
	InventoryUC  *inventory.LedgerUseCase
	CreditUC     *credit.LedgerUseCase
	SaleUC       *sales.SaleUseCase
	IssueInvoice *billing.IssueInvoiceUseCase
	UserRepo     repository.UserRepository
	PointOfSale  string // serie por defecto de la terminal
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Todas las rutas requieren Bearer Token (atribución del actor).
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Usuarios
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserRepo)
	users.Get("/me", userHandler.Me)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Inventory movements
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)

	// Customers + cuenta corriente
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.CreditUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Post("/:id/payments", customerHandler.RecordPayment)
	customers.Get("/:id/ledger", customerHandler.Ledger)

	// Sales
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/:id", saleHandler.GetByID)
	// La anulación queda restringida a administradores.
	salesGroup.Post("/:id/void", RequireRole("admin"), saleHandler.Void)

	// Invoices
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.IssueInvoice, deps.PointOfSale)
	invoices.Post("/", invoiceHandler.Issue)
	invoices.Get("/:id", invoiceHandler.GetByID)
}
