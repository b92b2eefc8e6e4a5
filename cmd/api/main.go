package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/textil-erp/internal/application/alerts"
	"github.com/jhoicas/textil-erp/internal/application/auth"
	"github.com/jhoicas/textil-erp/internal/application/catalog"
	"github.com/jhoicas/textil-erp/internal/application/inventory"
	"github.com/jhoicas/textil-erp/internal/application/orders"
	"github.com/jhoicas/textil-erp/internal/application/payments"
	"github.com/jhoicas/textil-erp/internal/application/production"
	"github.com/jhoicas/textil-erp/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/textil-erp/internal/infrastructure/pdf"
	"github.com/jhoicas/textil-erp/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/textil-erp/internal/interfaces/http"
	"github.com/jhoicas/textil-erp/internal/scheduler"
	"github.com/jhoicas/textil-erp/pkg/config"
	"github.com/jhoicas/textil-erp/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	supplyRepo := postgres.NewSupplyRepository(pool)
	bomRepo := postgres.NewBOMRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	balanceRepo := postgres.NewInventoryBalanceRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	alertRepo := postgres.NewStockAlertRepository(pool)
	salesRepo := postgres.NewSalesOrderRepository(pool)
	purchaseRepo := postgres.NewPurchaseOrderRepository(pool)
	productionRepo := postgres.NewProductionRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewUseCase(employeeRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := catalog.NewProductUseCase(productRepo)
	supplyUC := catalog.NewSupplyUseCase(supplyRepo)
	bomUC := catalog.NewBOMUseCase(bomRepo, productRepo, supplyRepo)
	clientUC := catalog.NewClientUseCase(clientRepo)
	supplierUC := catalog.NewSupplierUseCase(supplierRepo)
	employeeUC := catalog.NewEmployeeUseCase(employeeRepo)

	inventoryUC := inventory.NewUseCase(txRunner, balanceRepo, movementRepo, productRepo, supplyRepo)
	alertsUC := alerts.NewUseCase(balanceRepo, alertRepo, cfg.Alert.Dedupe)

	salesUC := orders.NewSalesUseCase(txRunner, salesRepo, clientRepo, productRepo, inventoryUC)
	purchaseUC := orders.NewPurchaseUseCase(txRunner, purchaseRepo, supplierRepo, supplyRepo, inventoryUC)
	productionUC := production.NewUseCase(txRunner, productionRepo, salesRepo, bomRepo, employeeRepo, inventoryUC)
	paymentsUC := payments.NewUseCase(paymentRepo, salesRepo, purchaseRepo)

	// PDF: documento de la orden de venta para el cliente
	pdfGenerator := infrapdf.NewMarotoOrderGenerator(cfg.App.Name)
	documentUC := orders.NewDocumentUseCase(salesRepo, clientRepo, productRepo, pdfGenerator)

	// Webhook opcional para alertas generadas por el escaneo periódico
	var notifier alerts.Notifier
	if cfg.Alert.WebhookURL != "" {
		notifier = notify.NewWebhookNotifier(cfg.Alert.WebhookURL)
	}
	sched := scheduler.New(cfg.Alert, alertsUC, notifier, log)
	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Str("cron", cfg.Alert.CronSpec).Msg("programar escaneo de alertas")
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ProductUC:    productUC,
		SupplyUC:     supplyUC,
		BOMUC:        bomUC,
		ClientUC:     clientUC,
		SupplierUC:   supplierUC,
		EmployeeUC:   employeeUC,
		InventoryUC:  inventoryUC,
		AlertsUC:     alertsUC,
		SalesUC:      salesUC,
		DocumentUC:   documentUC,
		PurchaseUC:   purchaseUC,
		ProductionUC: productionUC,
		PaymentsUC:   paymentsUC,
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
