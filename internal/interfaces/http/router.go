package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/textil-erp/internal/application/alerts"
	"github.com/jhoicas/textil-erp/internal/application/auth"
	"github.com/jhoicas/textil-erp/internal/application/catalog"
	"github.com/jhoicas/textil-erp/internal/application/inventory"
	"github.com/jhoicas/textil-erp/internal/application/orders"
	"github.com/jhoicas/textil-erp/internal/application/payments"
	"github.com/jhoicas/textil-erp/internal/application/production"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	ProductUC    *catalog.ProductUseCase
	SupplyUC     *catalog.SupplyUseCase
	BOMUC        *catalog.BOMUseCase
	ClientUC     *catalog.ClientUseCase
	SupplierUC   *catalog.SupplierUseCase
	EmployeeUC   *catalog.EmployeeUseCase
	InventoryUC  *inventory.UseCase
	AlertsUC     *alerts.UseCase
	SalesUC      *orders.SalesUseCase
	DocumentUC   *orders.DocumentUseCase
	PurchaseUC   *orders.PurchaseUseCase
	ProductionUC *production.UseCase
	PaymentsUC   *payments.UseCase
	JWTSecret    string
}

// Router registra las rutas de la API. Las lecturas quedan abiertas a
// cualquier usuario autenticado; las escrituras se restringen por rol
// (ADMIN siempre pasa).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	ventas := RequireRole(entity.RoleVentas)
	compras := RequireRole(entity.RoleCompras)
	produccion := RequireRole(entity.RoleProduccion)
	admin := RequireRole()

	// Products (catálogo de producto terminado)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", ventas, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", ventas, productHandler.Update)
	products.Delete("/:id", ventas, productHandler.Delete)

	// BOM (lista de materiales, anidada bajo productos)
	bomHandler := NewBOMHandler(deps.BOMUC)
	products.Get("/:id/bom", bomHandler.List)
	products.Put("/:id/bom", produccion, bomHandler.Upsert)
	products.Delete("/:id/bom/:supplyId", produccion, bomHandler.Delete)

	// Supplies (insumos)
	supplies := protected.Group("/supplies")
	supplyHandler := NewSupplyHandler(deps.SupplyUC)
	supplies.Post("/", compras, supplyHandler.Create)
	supplies.Get("/", supplyHandler.List)
	supplies.Get("/:id", supplyHandler.GetByID)
	supplies.Put("/:id", compras, supplyHandler.Update)
	supplies.Delete("/:id", compras, supplyHandler.Delete)

	// Clients
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", ventas, clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", ventas, clientHandler.Update)
	clients.Delete("/:id", ventas, clientHandler.Delete)

	// Suppliers
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", compras, supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", compras, supplierHandler.Update)
	suppliers.Delete("/:id", compras, supplierHandler.Delete)

	// Employees (solo ADMIN)
	employees := protected.Group("/employees", admin)
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees.Post("/", employeeHandler.Create)
	employees.Get("/", employeeHandler.List)
	employees.Get("/:id", employeeHandler.GetByID)
	employees.Put("/:id", employeeHandler.Update)
	employees.Delete("/:id", employeeHandler.Delete)

	// Inventory (saldos, movimientos, umbrales, reconciliación)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup.Post("/balances", produccion, inventoryHandler.RegisterBalance)
	invGroup.Get("/balances", inventoryHandler.ListBalances)
	invGroup.Get("/balances/:id", inventoryHandler.GetBalance)
	invGroup.Post("/balances/:id/movements", produccion, inventoryHandler.PostMovement)
	invGroup.Get("/balances/:id/movements", inventoryHandler.ListMovements)
	invGroup.Put("/thresholds", produccion, inventoryHandler.SetThreshold)
	invGroup.Get("/balances/:id/reconciliation", inventoryHandler.Reconcile)

	// Stock alerts
	alertGroup := protected.Group("/alerts")
	alertHandler := NewAlertHandler(deps.AlertsUC)
	alertGroup.Get("/", produccion, alertHandler.List)
	alertGroup.Get("/:id", produccion, alertHandler.GetByID)
	alertGroup.Post("/:id/view", produccion, alertHandler.MarkViewed)
	alertGroup.Post("/:id/resolve", produccion, alertHandler.MarkResolved)
	alertGroup.Post("/scan", admin, alertHandler.Scan)

	// Sales orders (+ documento PDF)
	sales := protected.Group("/sales-orders")
	salesHandler := NewSalesOrderHandler(deps.SalesUC, deps.DocumentUC)
	sales.Post("/", ventas, salesHandler.Create)
	sales.Get("/", salesHandler.List)
	sales.Get("/:id", salesHandler.GetByID)
	sales.Post("/:id/lines", ventas, salesHandler.AddLine)
	sales.Put("/:id/lines/:lineId", ventas, salesHandler.UpdateLine)
	sales.Delete("/:id/lines/:lineId", ventas, salesHandler.RemoveLine)
	sales.Post("/:id/confirm", ventas, salesHandler.Confirm)
	sales.Post("/:id/cancel", ventas, salesHandler.Cancel)
	sales.Post("/:id/deliver", ventas, salesHandler.Deliver)
	sales.Get("/:id/document", ventas, salesHandler.Document)

	// Purchase orders
	purchases := protected.Group("/purchase-orders")
	purchaseHandler := NewPurchaseOrderHandler(deps.PurchaseUC)
	purchases.Post("/", compras, purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Post("/:id/lines", compras, purchaseHandler.AddLine)
	purchases.Put("/:id/lines/:lineId", compras, purchaseHandler.UpdateLine)
	purchases.Delete("/:id/lines/:lineId", compras, purchaseHandler.RemoveLine)
	purchases.Post("/:id/send", compras, purchaseHandler.Send)
	purchases.Post("/:id/cancel", compras, purchaseHandler.Cancel)
	purchases.Post("/:id/receive", compras, purchaseHandler.Receive)

	// Production orders
	productionGroup := protected.Group("/production-orders")
	productionHandler := NewProductionHandler(deps.ProductionUC)
	productionGroup.Post("/", produccion, productionHandler.Create)
	productionGroup.Get("/", productionHandler.List)
	productionGroup.Get("/:id", productionHandler.GetByID)
	productionGroup.Post("/:id/tasks", produccion, productionHandler.AddTask)
	productionGroup.Put("/:id/tasks/:taskId", produccion, productionHandler.UpdateTask)
	productionGroup.Post("/:id/consume", produccion, productionHandler.ConsumeMaterials)
	productionGroup.Post("/:id/finish", produccion, productionHandler.Finish)
	productionGroup.Post("/:id/cancel", produccion, productionHandler.Cancel)

	// Payments (VENTAS registra cobros, COMPRAS registra pagos)
	paymentGroup := protected.Group("/payments")
	paymentHandler := NewPaymentHandler(deps.PaymentsUC)
	paymentGroup.Post("/", RequireRole(entity.RoleVentas, entity.RoleCompras), paymentHandler.Create)
	paymentGroup.Get("/", paymentHandler.List)
	paymentGroup.Get("/:id", paymentHandler.GetByID)
	paymentGroup.Put("/:id", RequireRole(entity.RoleVentas, entity.RoleCompras), paymentHandler.Update)
	paymentGroup.Post("/:id/cancel", admin, paymentHandler.Cancel)
}
