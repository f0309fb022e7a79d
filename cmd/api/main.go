package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/pos-backoffice/internal/application/billing"
	"github.com/tu-usuario/pos-backoffice/internal/application/credit"
	"github.com/tu-usuario/pos-backoffice/internal/application/inventory"
	"github.com/tu-usuario/pos-backoffice/internal/application/sales"
	"github.com/tu-usuario/pos-backoffice/internal/application/usecase"
	"github.com/tu-usuario/pos-backoffice/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/pos-backoffice/internal/interfaces/http"
	"github.com/tu-usuario/pos-backoffice/pkg/config"
	"github.com/tu-usuario/pos-backoffice/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("point_of_sale", cfg.POS.PointOfSale).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repos fuera de transacción (lecturas); los transaccionales los arma el TxRunner.
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	creditRepo := postgres.NewCreditLedgerRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	productUC := usecase.NewProductUseCase(productRepo)
	customerUC := billing.NewCustomerUseCase(customerRepo)
	inventoryUC := inventory.NewLedgerUseCase(txRunner, movementRepo)
	creditUC := credit.NewLedgerUseCase(txRunner, creditRepo)
	saleUC := sales.NewSaleUseCase(txRunner, inventoryUC, creditUC, saleRepo, customerRepo)
	issueInvoiceUC := billing.NewIssueInvoiceUseCase(txRunner, invoiceRepo, saleRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:    productUC,
		CustomerUC:   customerUC,
		InventoryUC:  inventoryUC,
		CreditUC:     creditUC,
		SaleUC:       saleUC,
		IssueInvoice: issueInvoiceUC,
		UserRepo:     userRepo,
		PointOfSale:  cfg.POS.PointOfSale,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
