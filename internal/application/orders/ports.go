package orders

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

// SalesTxRunner ejecuta una función con repositorios atados a una misma
// transacción: orden de venta + inventario (la entrega descuenta stock de
// producto terminado atómicamente).
type SalesTxRunner interface {
	RunSales(ctx context.Context, fn func(
		orderRepo repository.SalesOrderRepository,
		balanceRepo repository.InventoryBalanceRepository,
		movementRepo repository.InventoryMovementRepository,
	) error) error
}

// PurchaseTxRunner ejecuta una función con repositorios atados a una misma
// transacción: orden de compra + inventario (la recepción suma stock de
// insumos atómicamente).
type PurchaseTxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		orderRepo repository.PurchaseOrderRepository,
		balanceRepo repository.InventoryBalanceRepository,
		movementRepo repository.InventoryMovementRepository,
	) error) error
}

// InventoryPoster registra movimientos de inventario dentro de la
// transacción del caller. Lo implementa inventory.UseCase.
type InventoryPoster interface {
	PostEntradaInTx(
		balanceRepo repository.InventoryBalanceRepository,
		movementRepo repository.InventoryMovementRepository,
		itemType, itemID, location string,
		quantity decimal.Decimal,
		description, userID string,
	) error
	PostSalidaInTx(
		balanceRepo repository.InventoryBalanceRepository,
		movementRepo repository.InventoryMovementRepository,
		itemType, itemID, location string,
		quantity decimal.Decimal,
		description, userID string,
	) error
}
