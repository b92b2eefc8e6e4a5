package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/textil-erp/internal/domain/entity"
)

// SalesOrderRepository define el puerto de persistencia para órdenes de venta
// y sus líneas. Las líneas son propiedad exclusiva de la cabecera.
type SalesOrderRepository interface {
	Create(order *entity.SalesOrder) error
	GetByID(id string) (*entity.SalesOrder, error)
	GetForUpdate(id string) (*entity.SalesOrder, error)
	Update(order *entity.SalesOrder) error
	UpdateTotal(id string, total decimal.Decimal) error
	List(status string, limit, offset int) ([]*entity.SalesOrder, error)

	CreateLine(line *entity.SalesOrderLine) error
	GetLine(id string) (*entity.SalesOrderLine, error)
	UpdateLine(line *entity.SalesOrderLine) error
	DeleteLine(id string) error
	ListLines(orderID string) ([]*entity.SalesOrderLine, error)
}
