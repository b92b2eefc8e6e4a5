package catalog

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/textil-erp/internal/application/dto"
	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

// BOMUseCase gestiona la lista de materiales de cada producto: cuánto insumo
// consume producir una unidad. Upsert por clave compuesta (producto, insumo).
type BOMUseCase struct {
	bomRepo     repository.BOMRepository
	productRepo repository.ProductRepository
	supplyRepo  repository.SupplyRepository
}

// NewBOMUseCase construye el caso de uso.
func NewBOMUseCase(
	bomRepo repository.BOMRepository,
	productRepo repository.ProductRepository,
	supplyRepo repository.SupplyRepository,
) *BOMUseCase {
	return &BOMUseCase{bomRepo: bomRepo, productRepo: productRepo, supplyRepo: supplyRepo}
}

// Upsert crea o reemplaza la cantidad requerida de un insumo para el
// producto. Cantidad estrictamente positiva.
func (uc *BOMUseCase) Upsert(_ context.Context, productID string, in dto.UpsertBOMItemRequest) (*entity.BOMItem, error) {
	if in.SupplyID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	supply, err := uc.supplyRepo.GetByID(in.SupplyID)
	if err != nil {
		return nil, err
	}
	if supply == nil {
		return nil, domain.ErrNotFound
	}
	item := &entity.BOMItem{
		ProductID: productID,
		SupplyID:  in.SupplyID,
		Quantity:  in.Quantity,
		UpdatedAt: time.Now(),
	}
	if err := uc.bomRepo.Upsert(item); err != nil {
		return nil, err
	}
	return item, nil
}

// List lista la lista de materiales de un producto.
func (uc *BOMUseCase) List(_ context.Context, productID string) ([]*entity.BOMItem, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.bomRepo.ListByProduct(productID)
}

// Delete retira un insumo de la lista de materiales del producto.
func (uc *BOMUseCase) Delete(_ context.Context, productID, supplyID string) error {
	item, err := uc.bomRepo.Get(productID, supplyID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.bomRepo.Delete(productID, supplyID)
}
