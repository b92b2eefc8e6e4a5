package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/textil-erp/internal/domain/entity"
)

// AlertResponse alerta de stock bajo umbral.
type AlertResponse struct {
	ID         string          `json:"id"`
	ItemType   string          `json:"item_type"`
	ItemID     string          `json:"item_id"`
	Location   string          `json:"location"`
	Message    string          `json:"message"`
	Level      decimal.Decimal `json:"level"`
	Threshold  decimal.Decimal `json:"threshold"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	ViewedAt   *time.Time      `json:"viewed_at,omitempty"`
	ViewedBy   string          `json:"viewed_by,omitempty"`
	ResolvedAt *time.Time      `json:"resolved_at,omitempty"`
	ResolvedBy string          `json:"resolved_by,omitempty"`
}

// NewAlertResponse mapea la entidad al DTO.
func NewAlertResponse(a *entity.StockAlert) AlertResponse {
	return AlertResponse{
		ID:         a.ID,
		ItemType:   a.ItemType,
		ItemID:     a.ItemID,
		Location:   a.Location,
		Message:    a.Message,
		Level:      a.Level,
		Threshold:  a.Threshold,
		Status:     a.Status,
		CreatedAt:  a.CreatedAt,
		ViewedAt:   a.ViewedAt,
		ViewedBy:   a.ViewedBy,
		ResolvedAt: a.ResolvedAt,
		ResolvedBy: a.ResolvedBy,
	}
}
