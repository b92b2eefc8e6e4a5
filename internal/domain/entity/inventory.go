package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de ítem que maneja el inventario.
const (
	ItemTypeProducto = "PRODUCTO" // producto terminado
	ItemTypeInsumo   = "INSUMO"   // materia prima
)

// Direcciones de movimiento de inventario.
const (
	MovementEntrada = "ENTRADA"
	MovementSalida  = "SALIDA"
)

// ValidItemType indica si el tipo de ítem pertenece al conjunto cerrado.
func ValidItemType(t string) bool {
	return t == ItemTypeProducto || t == ItemTypeInsumo
}

// ValidMovementDirection indica si la dirección es ENTRADA o SALIDA.
func ValidMovementDirection(d string) bool {
	return d == MovementEntrada || d == MovementSalida
}

// InventoryBalance representa el saldo actual de un ítem en una ubicación.
// Invariantes: Quantity >= 0 siempre; única por (ItemType, ItemID, Location).
// Solo se muta registrando movimientos; nunca se borra (se lleva a cero).
type InventoryBalance struct {
	ID        string
	ItemType  string
	ItemID    string
	Location  string
	Quantity  decimal.Decimal
	Threshold decimal.Decimal // umbral mínimo para alertas; 0 = sin alerta
	UpdatedAt time.Time
}

// BelowThreshold indica si el saldo está por debajo de su umbral configurado.
func (b *InventoryBalance) BelowThreshold() bool {
	return b.Threshold.GreaterThan(decimal.Zero) && b.Quantity.LessThan(b.Threshold)
}

// InventoryMovement es el registro inmutable de un cambio de stock.
// Se crea una vez y nunca se edita ni se borra; las correcciones son
// movimientos nuevos. La suma con signo de los movimientos de un saldo
// debe reconciliar con su cantidad actual.
type InventoryMovement struct {
	ID          string
	BalanceID   string
	Direction   string          // ENTRADA | SALIDA
	Quantity    decimal.Decimal // siempre positiva; el signo lo da Direction
	Description string
	CreatedAt   time.Time
	CreatedBy   string
}

// Signed devuelve la cantidad con signo según la dirección.
func (m *InventoryMovement) Signed() decimal.Decimal {
	if m.Direction == MovementSalida {
		return m.Quantity.Neg()
	}
	return m.Quantity
}
