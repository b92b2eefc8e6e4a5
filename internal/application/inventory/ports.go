package inventory

import (
	"context"

	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad entre la actualización
// del saldo y el registro del movimiento.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		balanceRepo repository.InventoryBalanceRepository,
		movementRepo repository.InventoryMovementRepository,
	) error) error
}
