package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/textil-erp/internal/application/dto"
	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

// SupplyUseCase casos de uso CRUD para insumos (telas, hilos, botones).
type SupplyUseCase struct {
	repo repository.SupplyRepository
}

// NewSupplyUseCase construye el caso de uso.
func NewSupplyUseCase(repo repository.SupplyRepository) *SupplyUseCase {
	return &SupplyUseCase{repo: repo}
}

// Create crea un insumo. La referencia es única.
func (uc *SupplyUseCase) Create(_ context.Context, in dto.CreateSupplyRequest) (*entity.Supply, error) {
	if in.Reference == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByReference(in.Reference)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	unit := in.Unit
	if unit == "" {
		unit = "UNIDAD"
	}
	now := time.Now()
	supply := &entity.Supply{
		ID:        uuid.New().String(),
		Reference: in.Reference,
		Name:      in.Name,
		Unit:      unit,
		UnitCost:  in.UnitCost,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(supply); err != nil {
		return nil, err
	}
	return supply, nil
}

// Get obtiene un insumo por id.
func (uc *SupplyUseCase) Get(_ context.Context, id string) (*entity.Supply, error) {
	supply, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supply == nil {
		return nil, domain.ErrNotFound
	}
	return supply, nil
}

// Update actualiza un insumo. La referencia no se modifica.
func (uc *SupplyUseCase) Update(_ context.Context, id string, in dto.UpdateSupplyRequest) (*entity.Supply, error) {
	supply, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supply == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		supply.Name = *in.Name
	}
	if in.Unit != nil && *in.Unit != "" {
		supply.Unit = *in.Unit
	}
	if in.UnitCost != nil {
		if in.UnitCost.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		supply.UnitCost = *in.UnitCost
	}
	supply.UpdatedAt = time.Now()
	if err := uc.repo.Update(supply); err != nil {
		return nil, err
	}
	return supply, nil
}

// List lista insumos con paginación.
func (uc *SupplyUseCase) List(_ context.Context, limit, offset int) ([]*entity.Supply, error) {
	return uc.repo.List(limit, offset)
}

// Delete elimina un insumo. Referenciado por BOM, compras o inventario
// falla con ErrConflict.
func (uc *SupplyUseCase) Delete(_ context.Context, id string) error {
	supply, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if supply == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}
