package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto terminado del catálogo (confección textil).
// Reference es el código de referencia único del producto; Price el precio de venta.
type Product struct {
	ID          string
	Reference   string
	Name        string
	Description string
	Price       decimal.Decimal
	Unit        string // unidad de venta: UNIDAD, DOCENA, etc.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
