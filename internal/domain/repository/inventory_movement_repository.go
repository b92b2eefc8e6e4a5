package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/textil-erp/internal/domain/entity"
)

// InventoryMovementRepository define el puerto de persistencia para el
// historial de movimientos (solo inserción; nunca update ni delete).
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	ListByBalance(balanceID string, limit, offset int) ([]*entity.InventoryMovement, error)
	// SumByBalance devuelve la suma con signo de los movimientos del saldo
	// (ENTRADA positiva, SALIDA negativa) para la reconciliación.
	SumByBalance(balanceID string) (decimal.Decimal, error)
}
