package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supply representa un insumo o materia prima (tela, hilo, botones, tintes).
// Las cantidades de insumos son decimales: metros, kilogramos, litros.
type Supply struct {
	ID        string
	Reference string // código único del insumo
	Name      string
	Unit      string // METRO, KILOGRAMO, LITRO, UNIDAD
	UnitCost  decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
