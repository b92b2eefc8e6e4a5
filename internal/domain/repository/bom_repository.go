package repository

import "github.com/jhoicas/textil-erp/internal/domain/entity"

// BOMRepository define el puerto de persistencia para la lista de materiales
// (asociación producto-insumo con cantidad requerida).
type BOMRepository interface {
	Upsert(item *entity.BOMItem) error
	Get(productID, supplyID string) (*entity.BOMItem, error)
	ListByProduct(productID string) ([]*entity.BOMItem, error)
	Delete(productID, supplyID string) error
}
