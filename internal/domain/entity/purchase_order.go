package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
// PENDIENTE → ENVIADA → RECIBIDA_PARCIAL → RECIBIDA_TOTAL; anulable mientras
// no sea terminal. RECIBIDA_TOTAL y ANULADA son terminales.
const (
	PurchasePendiente       = "PENDIENTE"
	PurchaseEnviada         = "ENVIADA"
	PurchaseRecibidaParcial = "RECIBIDA_PARCIAL"
	PurchaseRecibidaTotal   = "RECIBIDA_TOTAL"
	PurchaseAnulada         = "ANULADA"
)

var purchaseTransitions = map[string][]string{
	PurchasePendiente:       {PurchaseEnviada, PurchaseAnulada},
	PurchaseEnviada:         {PurchaseRecibidaParcial, PurchaseRecibidaTotal, PurchaseAnulada},
	// RECIBIDA_PARCIAL admite re-entrar: cada entrega parcial adicional es
	// una nueva recepción sobre el mismo estado.
	PurchaseRecibidaParcial: {PurchaseRecibidaParcial, PurchaseRecibidaTotal, PurchaseAnulada},
	PurchaseRecibidaTotal:   {},
	PurchaseAnulada:         {},
}

// CanPurchaseTransition valida una transición de estado de orden de compra.
func CanPurchaseTransition(from, to string) bool {
	for _, s := range purchaseTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// PurchaseOrder cabecera de una orden de compra a proveedor. Total siempre
// igual a la suma de subtotales de sus líneas vigentes.
type PurchaseOrder struct {
	ID          string
	SupplierID  *string // nullable: el proveedor puede borrarse (SET NULL)
	Status      string
	Total       decimal.Decimal
	Notes       string
	RequestedAt time.Time
	EstimatedAt *time.Time
	ReceivedAt  *time.Time // fecha de recepción total
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Editable indica si las líneas admiten mutación: mientras la orden está
// PENDIENTE o ENVIADA (antes de cualquier recepción).
func (o *PurchaseOrder) Editable() bool {
	return o.Status == PurchasePendiente || o.Status == PurchaseEnviada
}

// Terminal indica si la orden quedó inmutable.
func (o *PurchaseOrder) Terminal() bool {
	return o.Status == PurchaseRecibidaTotal || o.Status == PurchaseAnulada
}

// PurchaseOrderLine línea de una orden de compra (insumo solicitado).
type PurchaseOrderLine struct {
	ID        string
	OrderID   string
	SupplyID  string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
