package inventory

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

// UseCase gestiona los saldos de inventario y el registro transaccional de
// movimientos (ENTRADA/SALIDA) con bloqueo de fila (SELECT FOR UPDATE).
type UseCase struct {
	txRunner     TxRunner
	balanceRepo  repository.InventoryBalanceRepository
	movementRepo repository.InventoryMovementRepository
	productRepo  repository.ProductRepository
	supplyRepo   repository.SupplyRepository
}

// NewUseCase construye el caso de uso de inventario.
func NewUseCase(
	txRunner TxRunner,
	balanceRepo repository.InventoryBalanceRepository,
	movementRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	supplyRepo repository.SupplyRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		balanceRepo:  balanceRepo,
		movementRepo: movementRepo,
		productRepo:  productRepo,
		supplyRepo:   supplyRepo,
	}
}

// itemExists verifica que el producto o insumo referenciado exista.
func (uc *UseCase) itemExists(itemType, itemID string) (bool, error) {
	switch itemType {
	case entity.ItemTypeProducto:
		p, err := uc.productRepo.GetByID(itemID)
		if err != nil {
			return false, err
		}
		return p != nil, nil
	case entity.ItemTypeInsumo:
		s, err := uc.supplyRepo.GetByID(itemID)
		if err != nil {
			return false, err
		}
		return s != nil, nil
	}
	return false, nil
}

// RegisterBalance crea el saldo de un ítem en una ubicación. Falla con
// ErrNotFound si el ítem no existe y con ErrDuplicate si ya hay saldo para
// (ítem, ubicación). Una cantidad inicial positiva se registra como
// movimiento ENTRADA de apertura en la misma transacción, de modo que la
// reconciliación saldo-movimientos se cumple desde la creación.
func (uc *UseCase) RegisterBalance(ctx context.Context, userID string, in dto.RegisterBalanceRequest) (*entity.InventoryBalance, error) {
	if !entity.ValidItemType(in.ItemType) || in.ItemID == "" || in.Location == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.InitialQuantity.IsNegative() || in.Threshold.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	exists, err := uc.itemExists(in.ItemType, in.ItemID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	if prev, err := uc.balanceRepo.GetByItemLocation(in.ItemType, in.ItemID, in.Location); err != nil {
		return nil, err
	} else if prev != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	balance := &entity.InventoryBalance{
		ID:        uuid.New().String(),
		ItemType:  in.ItemType,
		ItemID:    in.ItemID,
		Location:  in.Location,
		Quantity:  in.InitialQuantity,
		Threshold: in.Threshold,
		UpdatedAt: now,
	}

	err = uc.txRunner.Run(ctx, func(
		balanceRepo repository.InventoryBalanceRepository,
		movementRepo repository.InventoryMovementRepository,
	) error {
		if err := balanceRepo.Create(balance); err != nil {
			return err
		}
		if balance.Quantity.GreaterThan(decimal.Zero) {
			opening := &entity.InventoryMovement{
				ID:          uuid.New().String(),
				BalanceID:   balance.ID,
				Direction:   entity.MovementEntrada,
				Quantity:    balance.Quantity,
				Description: "saldo inicial",
				CreatedAt:   now,
				CreatedBy:   userID,
			}
			if err := movementRepo.Create(opening); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return balance, nil
}

// PostMovement registra un movimiento sobre un saldo. Inicia una transacción,
// bloquea la fila del saldo (SELECT FOR UPDATE), valida stock suficiente en
// SALIDA y persiste saldo y movimiento de forma atómica: un fallo en
// cualquier punto revierte todo.
func (uc *UseCase) PostMovement(ctx context.Context, balanceID, userID string, in dto.PostMovementRequest) (*entity.InventoryBalance, error) {
	if !entity.ValidMovementDirection(in.Direction) {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.InventoryBalance
	err := uc.txRunner.Run(ctx, func(
		balanceRepo repository.InventoryBalanceRepository,
		movementRepo repository.InventoryMovementRepository,
	) error {
		balance, err := balanceRepo.GetForUpdate(balanceID)
		if err != nil {
			return err
		}
		if balance == nil {
			return domain.ErrNotFound
		}
		if err := applyMovement(balanceRepo, movementRepo, balance, in.Direction, in.Quantity, in.Description, userID); err != nil {
			return err
		}
		updated = balance
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// applyMovement muta el saldo bloqueado y agrega el movimiento inmutable.
// Precondición: balance leído con FOR UPDATE dentro de la tx vigente.
func applyMovement(
	balanceRepo repository.InventoryBalanceRepository,
	movementRepo repository.InventoryMovementRepository,
	balance *entity.InventoryBalance,
	direction string,
	quantity decimal.Decimal,
	description, userID string,
) error {
	newQty := balance.Quantity
	switch direction {
	case entity.MovementEntrada:
		newQty = newQty.Add(quantity)
	case entity.MovementSalida:
		if quantity.GreaterThan(balance.Quantity) {
			return domain.ErrInsufficientStock
		}
		newQty = newQty.Sub(quantity)
	default:
		return domain.ErrInvalidInput
	}

	if err := balanceRepo.UpdateQuantity(balance.ID, newQty); err != nil {
		return err
	}
	balance.Quantity = newQty
	balance.UpdatedAt = time.Now()

	movement := &entity.InventoryMovement{
		ID:          uuid.New().String(),
		BalanceID:   balance.ID,
		Direction:   direction,
		Quantity:    quantity,
		Description: description,
		CreatedAt:   balance.UpdatedAt,
		CreatedBy:   userID,
	}
	return movementRepo.Create(movement)
}

// PostSalidaInTx registra una SALIDA usando los repositorios del caller
// (misma transacción). Lo invocan la entrega de órdenes de venta y el
// consumo de materiales de producción para descontar stock atómicamente
// junto con sus propias escrituras.
func (uc *UseCase) PostSalidaInTx(
	balanceRepo repository.InventoryBalanceRepository,
	movementRepo repository.InventoryMovementRepository,
	itemType, itemID, location string,
	quantity decimal.Decimal,
	description, userID string,
) error {
	if !quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	balance, err := balanceRepo.GetByItemLocation(itemType, itemID, location)
	if err != nil {
		return err
	}
	if balance == nil {
		return domain.ErrNotFound
	}
	locked, err := balanceRepo.GetForUpdate(balance.ID)
	if err != nil {
		return err
	}
	if locked == nil {
		return domain.ErrNotFound
	}
	return applyMovement(balanceRepo, movementRepo, locked, entity.MovementSalida, quantity, description, userID)
}

// PostEntradaInTx registra una ENTRADA usando los repositorios del caller
// (misma transacción). La recepción de compras crea el saldo si la
// ubicación aún no lo tiene (umbral 0, sin alertas hasta configurarlo).
func (uc *UseCase) PostEntradaInTx(
	balanceRepo repository.InventoryBalanceRepository,
	movementRepo repository.InventoryMovementRepository,
	itemType, itemID, location string,
	quantity decimal.Decimal,
	description, userID string,
) error {
	if !quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	balance, err := balanceRepo.GetByItemLocation(itemType, itemID, location)
	if err != nil {
		return err
	}
	if balance == nil {
		balance = &entity.InventoryBalance{
			ID:        uuid.New().String(),
			ItemType:  itemType,
			ItemID:    itemID,
			Location:  location,
			Quantity:  decimal.Zero,
			Threshold: decimal.Zero,
			UpdatedAt: time.Now(),
		}
		if err := balanceRepo.Create(balance); err != nil {
			return err
		}
	} else {
		locked, err := balanceRepo.GetForUpdate(balance.ID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		balance = locked
	}
	return applyMovement(balanceRepo, movementRepo, balance, entity.MovementEntrada, quantity, description, userID)
}

// GetBalance obtiene un saldo por ID.
func (uc *UseCase) GetBalance(_ context.Context, balanceID string) (*entity.InventoryBalance, error) {
	balance, err := uc.balanceRepo.GetByID(balanceID)
	if err != nil {
		return nil, err
	}
	if balance == nil {
		return nil, domain.ErrNotFound
	}
	return balance, nil
}

// ListBalances lista saldos paginados.
func (uc *UseCase) ListBalances(_ context.Context, limit, offset int) ([]*entity.InventoryBalance, error) {
	return uc.balanceRepo.List(limit, offset)
}

// ListMovements lista el historial de movimientos de un saldo en orden
// estable (más recientes primero, desempate por id).
func (uc *UseCase) ListMovements(_ context.Context, balanceID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	balance, err := uc.balanceRepo.GetByID(balanceID)
	if err != nil {
		return nil, err
	}
	if balance == nil {
		return nil, domain.ErrNotFound
	}
	return uc.movementRepo.ListByBalance(balanceID, limit, offset)
}

// SetThreshold aplica el umbral mínimo a todos los saldos del ítem, en
// todas las ubicaciones. ErrNotFound si el ítem no tiene saldos.
func (uc *UseCase) SetThreshold(_ context.Context, in dto.SetThresholdRequest) error {
	if !entity.ValidItemType(in.ItemType) || in.ItemID == "" || in.Threshold.IsNegative() {
		return domain.ErrInvalidInput
	}
	rows, err := uc.balanceRepo.UpdateThresholdByItem(in.ItemType, in.ItemID, in.Threshold)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Reconcile compara la cantidad del saldo contra la suma con signo de su
// historial de movimientos (invariante de reconciliación).
func (uc *UseCase) Reconcile(_ context.Context, balanceID string) (*dto.ReconciliationResponse, error) {
	balance, err := uc.balanceRepo.GetByID(balanceID)
	if err != nil {
		return nil, err
	}
	if balance == nil {
		return nil, domain.ErrNotFound
	}
	sum, err := uc.movementRepo.SumByBalance(balanceID)
	if err != nil {
		return nil, err
	}
	return &dto.ReconciliationResponse{
		BalanceID:    balanceID,
		Quantity:     balance.Quantity,
		MovementsSum: sum,
		Consistent:   balance.Quantity.Equal(sum),
	}, nil
}
