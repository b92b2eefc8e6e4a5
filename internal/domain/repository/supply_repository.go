package repository

import "github.com/jhoicas/textil-erp/internal/domain/entity"

// SupplyRepository define el puerto de persistencia para Supply.
type SupplyRepository interface {
	Create(supply *entity.Supply) error
	GetByID(id string) (*entity.Supply, error)
	GetByReference(reference string) (*entity.Supply, error)
	Update(supply *entity.Supply) error
	List(limit, offset int) ([]*entity.Supply, error)
	Delete(id string) error
}
