package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BOMItem define cuánto insumo requiere producir una unidad de un producto
// (lista de materiales). Clave compuesta (ProductID, SupplyID).
type BOMItem struct {
	ProductID string
	SupplyID  string
	Quantity  decimal.Decimal // cantidad de insumo por unidad de producto, > 0
	UpdatedAt time.Time
}
