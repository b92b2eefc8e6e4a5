package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/textil-erp/internal/domain/entity"
)

// InventoryBalanceRepository define el puerto de persistencia para saldos de
// inventario. GetForUpdate bloquea la fila (SELECT FOR UPDATE) y solo tiene
// sentido dentro de una transacción.
type InventoryBalanceRepository interface {
	Create(balance *entity.InventoryBalance) error
	GetByID(id string) (*entity.InventoryBalance, error)
	GetForUpdate(id string) (*entity.InventoryBalance, error)
	GetByItemLocation(itemType, itemID, location string) (*entity.InventoryBalance, error)
	List(limit, offset int) ([]*entity.InventoryBalance, error)
	ListBelowThreshold() ([]*entity.InventoryBalance, error)
	UpdateQuantity(id string, quantity decimal.Decimal) error
	// UpdateThresholdByItem aplica el umbral a todos los saldos del ítem
	// (todas las ubicaciones). Devuelve cuántas filas afectó.
	UpdateThresholdByItem(itemType, itemID string, threshold decimal.Decimal) (int64, error)
}
