package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de venta.
// PENDIENTE → CONFIRMADA → EN_PRODUCCION → ENTREGADA; cualquier estado no
// terminal puede anularse. ENTREGADA y ANULADA son terminales.
const (
	SalesPendiente    = "PENDIENTE"
	SalesConfirmada   = "CONFIRMADA"
	SalesEnProduccion = "EN_PRODUCCION"
	SalesEntregada    = "ENTREGADA"
	SalesAnulada      = "ANULADA"
)

// salesTransitions tabla de transiciones válidas de la orden de venta.
var salesTransitions = map[string][]string{
	SalesPendiente:    {SalesConfirmada, SalesAnulada},
	SalesConfirmada:   {SalesEnProduccion, SalesEntregada, SalesAnulada},
	SalesEnProduccion: {SalesEntregada, SalesAnulada},
	SalesEntregada:    {},
	SalesAnulada:      {},
}

// CanSalesTransition valida una transición de estado de orden de venta.
func CanSalesTransition(from, to string) bool {
	for _, s := range salesTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// SalesOrder cabecera de una orden de venta. Total siempre igual a la suma
// de los subtotales de sus líneas vigentes; se recalcula y persiste en cada
// mutación de línea.
type SalesOrder struct {
	ID            string
	ClientID      *string // nullable: el cliente puede borrarse (SET NULL)
	Status        string
	Total         decimal.Decimal
	Notes         string
	RequestedAt   time.Time  // fecha solicitada por el cliente
	EstimatedAt   *time.Time // fecha estimada de entrega
	DeliveredAt   *time.Time // fecha real de entrega
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Editable indica si las líneas de la orden admiten mutación.
// Solo mientras está PENDIENTE; confirmada o posterior queda bloqueada.
func (o *SalesOrder) Editable() bool {
	return o.Status == SalesPendiente
}

// Terminal indica si la orden quedó inmutable (salvo lectura).
func (o *SalesOrder) Terminal() bool {
	return o.Status == SalesEntregada || o.Status == SalesAnulada
}

// SalesOrderLine línea de una orden de venta. Subtotal = Quantity * UnitPrice.
// Propiedad exclusiva de su cabecera (cascade al borrar la orden).
type SalesOrderLine struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
