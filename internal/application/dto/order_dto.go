package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/textil-erp/internal/domain/entity"
)

// ── Órdenes de venta ──────────────────────────────────────────────────────────

// SalesLineRequest línea solicitada de una orden de venta. UnitPrice nulo
// toma el precio de catálogo del producto.
type SalesLineRequest struct {
	ProductID string           `json:"product_id"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// CreateSalesOrderRequest body para POST /api/sales-orders.
type CreateSalesOrderRequest struct {
	ClientID    string             `json:"client_id"`
	Notes       string             `json:"notes"`
	RequestedAt *time.Time         `json:"requested_at,omitempty"`
	EstimatedAt *time.Time         `json:"estimated_at,omitempty"`
	Lines       []SalesLineRequest `json:"lines"`
}

// UpdateSalesLineRequest body para PUT de una línea de venta.
type UpdateSalesLineRequest struct {
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// DeliverSalesOrderRequest body para la entrega: ubicación desde la que se
// descuenta el stock de producto terminado.
type DeliverSalesOrderRequest struct {
	Location string `json:"location"`
}

// SalesLineResponse línea de una orden de venta.
type SalesLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SalesOrderResponse cabecera + líneas.
type SalesOrderResponse struct {
	ID          string              `json:"id"`
	ClientID    *string             `json:"client_id"`
	Status      string              `json:"status"`
	Total       decimal.Decimal     `json:"total"`
	Notes       string              `json:"notes,omitempty"`
	RequestedAt time.Time           `json:"requested_at"`
	EstimatedAt *time.Time          `json:"estimated_at,omitempty"`
	DeliveredAt *time.Time          `json:"delivered_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	Lines       []SalesLineResponse `json:"lines"`
}

// NewSalesOrderResponse mapea cabecera y líneas al DTO.
func NewSalesOrderResponse(o *entity.SalesOrder, lines []*entity.SalesOrderLine) SalesOrderResponse {
	resp := SalesOrderResponse{
		ID:          o.ID,
		ClientID:    o.ClientID,
		Status:      o.Status,
		Total:       o.Total,
		Notes:       o.Notes,
		RequestedAt: o.RequestedAt,
		EstimatedAt: o.EstimatedAt,
		DeliveredAt: o.DeliveredAt,
		CreatedAt:   o.CreatedAt,
		Lines:       make([]SalesLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, SalesLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal,
		})
	}
	return resp
}

// ── Órdenes de compra ─────────────────────────────────────────────────────────

// PurchaseLineRequest línea solicitada de una orden de compra. El precio es
// obligatorio: lo pacta el comprador con el proveedor, no hay catálogo.
type PurchaseLineRequest struct {
	SupplyID  string          `json:"supply_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	SupplierID  string                `json:"supplier_id"`
	Notes       string                `json:"notes"`
	RequestedAt *time.Time            `json:"requested_at,omitempty"`
	EstimatedAt *time.Time            `json:"estimated_at,omitempty"`
	Lines       []PurchaseLineRequest `json:"lines"`
}

// UpdatePurchaseLineRequest body para PUT de una línea de compra.
type UpdatePurchaseLineRequest struct {
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// ReceiveLineRequest cantidad recibida de una línea en una recepción parcial.
type ReceiveLineRequest struct {
	LineID   string          `json:"line_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// ReceivePurchaseOrderRequest body para la recepción de una orden de compra.
// Lines vacío recibe todas las líneas completas; Total marca la orden como
// RECIBIDA_TOTAL, si no queda RECIBIDA_PARCIAL.
type ReceivePurchaseOrderRequest struct {
	Location string               `json:"location"`
	Total    bool                 `json:"total"`
	Lines    []ReceiveLineRequest `json:"lines,omitempty"`
}

// PurchaseLineResponse línea de una orden de compra.
type PurchaseLineResponse struct {
	ID        string          `json:"id"`
	SupplyID  string          `json:"supply_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// PurchaseOrderResponse cabecera + líneas.
type PurchaseOrderResponse struct {
	ID          string                 `json:"id"`
	SupplierID  *string                `json:"supplier_id"`
	Status      string                 `json:"status"`
	Total       decimal.Decimal        `json:"total"`
	Notes       string                 `json:"notes,omitempty"`
	RequestedAt time.Time              `json:"requested_at"`
	EstimatedAt *time.Time             `json:"estimated_at,omitempty"`
	ReceivedAt  *time.Time             `json:"received_at,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	Lines       []PurchaseLineResponse `json:"lines"`
}

// NewPurchaseOrderResponse mapea cabecera y líneas al DTO.
func NewPurchaseOrderResponse(o *entity.PurchaseOrder, lines []*entity.PurchaseOrderLine) PurchaseOrderResponse {
	resp := PurchaseOrderResponse{
		ID:          o.ID,
		SupplierID:  o.SupplierID,
		Status:      o.Status,
		Total:       o.Total,
		Notes:       o.Notes,
		RequestedAt: o.RequestedAt,
		EstimatedAt: o.EstimatedAt,
		ReceivedAt:  o.ReceivedAt,
		CreatedAt:   o.CreatedAt,
		Lines:       make([]PurchaseLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, PurchaseLineResponse{
			ID:        l.ID,
			SupplyID:  l.SupplyID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal,
		})
	}
	return resp
}
