package production

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

// TxRunner ejecuta una función con repositorios atados a una misma
// transacción: producción + venta + inventario. Crear una orden avanza la
// venta a EN_PRODUCCION, el consumo de materiales descuenta insumos y la
// anulación bloquea tareas, todo atómico.
type TxRunner interface {
	RunProduction(ctx context.Context, fn func(
		productionRepo repository.ProductionRepository,
		salesRepo repository.SalesOrderRepository,
		balanceRepo repository.InventoryBalanceRepository,
		movementRepo repository.InventoryMovementRepository,
	) error) error
}

// InventoryPoster registra salidas de inventario dentro de la transacción
// del caller. Lo implementa inventory.UseCase.
type InventoryPoster interface {
	PostSalidaInTx(
		balanceRepo repository.InventoryBalanceRepository,
		movementRepo repository.InventoryMovementRepository,
		itemType, itemID, location string,
		quantity decimal.Decimal,
		description, userID string,
	) error
}
