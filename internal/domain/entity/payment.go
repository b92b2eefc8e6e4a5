package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción financiera. COBRO solo puede referenciar una orden
// de venta; PAGO solo una orden de compra. Nunca ambas, nunca ninguna.
const (
	PaymentPago  = "PAGO"
	PaymentCobro = "COBRO"
)

// Estados de una transacción financiera. ANULADO es terminal de una vía:
// una vez anulada no admite mutación ni re-anulación.
const (
	PaymentRegistrado = "REGISTRADO"
	PaymentConfirmado = "CONFIRMADO"
	PaymentAnulado    = "ANULADO"
)

// ValidPaymentKind indica si el tipo pertenece al conjunto cerrado.
func ValidPaymentKind(k string) bool {
	return k == PaymentPago || k == PaymentCobro
}

// PaymentTransaction registra un pago a proveedor o un cobro a cliente.
type PaymentTransaction struct {
	ID              string
	Kind            string // PAGO | COBRO
	SalesOrderID    *string
	PurchaseOrderID *string
	Amount          decimal.Decimal
	Method          string // EFECTIVO, TRANSFERENCIA, CHEQUE...
	Reference       string // referencia externa (consignación, cheque)
	Status          string
	RegisteredAt    time.Time
	EffectiveAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LinkConsistent valida la exclusividad del vínculo según el tipo:
// COBRO exige venta y prohíbe compra; PAGO exige compra y prohíbe venta.
func (p *PaymentTransaction) LinkConsistent() bool {
	switch p.Kind {
	case PaymentCobro:
		return p.SalesOrderID != nil && p.PurchaseOrderID == nil
	case PaymentPago:
		return p.PurchaseOrderID != nil && p.SalesOrderID == nil
	}
	return false
}
