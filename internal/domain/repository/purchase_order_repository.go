package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/textil-erp/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para órdenes de
// compra y sus líneas.
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	GetForUpdate(id string) (*entity.PurchaseOrder, error)
	Update(order *entity.PurchaseOrder) error
	UpdateTotal(id string, total decimal.Decimal) error
	List(status string, limit, offset int) ([]*entity.PurchaseOrder, error)

	CreateLine(line *entity.PurchaseOrderLine) error
	GetLine(id string) (*entity.PurchaseOrderLine, error)
	UpdateLine(line *entity.PurchaseOrderLine) error
	DeleteLine(id string) error
	ListLines(orderID string) ([]*entity.PurchaseOrderLine, error)
}
