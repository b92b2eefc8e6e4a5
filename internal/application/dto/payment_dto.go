package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/textil-erp/internal/domain/entity"
)

// CreatePaymentRequest body para registrar un pago o cobro. El vínculo es
// exclusivo: COBRO lleva sales_order_id, PAGO lleva purchase_order_id.
type CreatePaymentRequest struct {
	Kind            string          `json:"kind"`
	SalesOrderID    *string         `json:"sales_order_id,omitempty"`
	PurchaseOrderID *string         `json:"purchase_order_id,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Method          string          `json:"method"`
	Reference       string          `json:"reference"`
	EffectiveAt     *time.Time      `json:"effective_at,omitempty"`
}

// UpdatePaymentRequest body para actualizar una transacción no anulada.
// Campos nulos no mutan.
type UpdatePaymentRequest struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Method      *string          `json:"method,omitempty"`
	Reference   *string          `json:"reference,omitempty"`
	Status      *string          `json:"status,omitempty"`
	EffectiveAt *time.Time       `json:"effective_at,omitempty"`
}

// PaymentResponse transacción financiera.
type PaymentResponse struct {
	ID              string          `json:"id"`
	Kind            string          `json:"kind"`
	SalesOrderID    *string         `json:"sales_order_id,omitempty"`
	PurchaseOrderID *string         `json:"purchase_order_id,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Method          string          `json:"method"`
	Reference       string          `json:"reference,omitempty"`
	Status          string          `json:"status"`
	RegisteredAt    time.Time       `json:"registered_at"`
	EffectiveAt     *time.Time      `json:"effective_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// NewPaymentResponse mapea la entidad al DTO.
func NewPaymentResponse(p *entity.PaymentTransaction) PaymentResponse {
	return PaymentResponse{
		ID:              p.ID,
		Kind:            p.Kind,
		SalesOrderID:    p.SalesOrderID,
		PurchaseOrderID: p.PurchaseOrderID,
		Amount:          p.Amount,
		Method:          p.Method,
		Reference:       p.Reference,
		Status:          p.Status,
		RegisteredAt:    p.RegisteredAt,
		EffectiveAt:     p.EffectiveAt,
		CreatedAt:       p.CreatedAt,
	}
}
