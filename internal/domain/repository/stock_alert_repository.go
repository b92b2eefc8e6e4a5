package repository

import "github.com/jhoicas/textil-erp/internal/domain/entity"

// StockAlertRepository define el puerto de persistencia para alertas de stock.
// Las alertas no se borran; solo cambian de estado.
type StockAlertRepository interface {
	Create(alert *entity.StockAlert) error
	GetByID(id string) (*entity.StockAlert, error)
	Update(alert *entity.StockAlert) error
	List(status string, limit, offset int) ([]*entity.StockAlert, error)
	// HasOpen indica si existe una alerta NUEVA para el ítem en la ubicación
	// (política de deduplicación del escaneo).
	HasOpen(itemType, itemID, location string) (bool, error)
}
