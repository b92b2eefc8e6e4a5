package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/textil-erp/internal/domain/entity"
)

// RegisterBalanceRequest body para POST /api/inventory/balances.
type RegisterBalanceRequest struct {
	ItemType        string          `json:"item_type"` // PRODUCTO | INSUMO
	ItemID          string          `json:"item_id"`
	Location        string          `json:"location"`
	InitialQuantity decimal.Decimal `json:"initial_quantity"`
	Threshold       decimal.Decimal `json:"threshold"`
}

// PostMovementRequest body para POST /api/inventory/balances/:id/movements.
type PostMovementRequest struct {
	Direction   string          `json:"direction"` // ENTRADA | SALIDA
	Quantity    decimal.Decimal `json:"quantity"`
	Description string          `json:"description"`
}

// SetThresholdRequest body para PUT /api/inventory/thresholds.
// Aplica a todos los saldos del ítem, en todas las ubicaciones.
type SetThresholdRequest struct {
	ItemType  string          `json:"item_type"`
	ItemID    string          `json:"item_id"`
	Threshold decimal.Decimal `json:"threshold"`
}

// BalanceResponse saldo de inventario.
type BalanceResponse struct {
	ID        string          `json:"id"`
	ItemType  string          `json:"item_type"`
	ItemID    string          `json:"item_id"`
	Location  string          `json:"location"`
	Quantity  decimal.Decimal `json:"quantity"`
	Threshold decimal.Decimal `json:"threshold"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewBalanceResponse mapea la entidad al DTO.
func NewBalanceResponse(b *entity.InventoryBalance) BalanceResponse {
	return BalanceResponse{
		ID:        b.ID,
		ItemType:  b.ItemType,
		ItemID:    b.ItemID,
		Location:  b.Location,
		Quantity:  b.Quantity,
		Threshold: b.Threshold,
		UpdatedAt: b.UpdatedAt,
	}
}

// MovementResponse movimiento de inventario.
type MovementResponse struct {
	ID          string          `json:"id"`
	BalanceID   string          `json:"balance_id"`
	Direction   string          `json:"direction"`
	Quantity    decimal.Decimal `json:"quantity"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	CreatedBy   string          `json:"created_by,omitempty"`
}

// NewMovementResponse mapea la entidad al DTO.
func NewMovementResponse(m *entity.InventoryMovement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		BalanceID:   m.BalanceID,
		Direction:   m.Direction,
		Quantity:    m.Quantity,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		CreatedBy:   m.CreatedBy,
	}
}

// ReconciliationResponse resultado de la verificación de reconciliación de
// un saldo contra su historial de movimientos.
type ReconciliationResponse struct {
	BalanceID    string          `json:"balance_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	MovementsSum decimal.Decimal `json:"movements_sum"`
	Consistent   bool            `json:"consistent"`
}
