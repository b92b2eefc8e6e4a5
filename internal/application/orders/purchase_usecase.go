package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/textil-erp/internal/application/dto"
	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

// PurchaseUseCase gestiona órdenes de compra a proveedores: espejo de las
// órdenes de venta, con recepción que repone inventario de insumos en la
// misma transacción.
type PurchaseUseCase struct {
	txRunner     PurchaseTxRunner
	orderRepo    repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	supplyRepo   repository.SupplyRepository
	inventory    InventoryPoster
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(
	txRunner PurchaseTxRunner,
	orderRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	supplyRepo repository.SupplyRepository,
	inventory InventoryPoster,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		txRunner:     txRunner,
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		supplyRepo:   supplyRepo,
		inventory:    inventory,
	}
}

// Create valida proveedor e insumos y persiste cabecera y líneas en una
// transacción. El precio unitario es obligatorio en compras (se pacta con
// el proveedor; no hay precio de catálogo que aplique).
func (uc *PurchaseUseCase) Create(ctx context.Context, userID string, in dto.CreatePurchaseOrderRequest) (*entity.PurchaseOrder, []*entity.PurchaseOrderLine, error) {
	if in.SupplierID == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, nil, err
	}
	if supplier == nil {
		return nil, nil, domain.ErrNotFound
	}

	now := time.Now()
	requested := now
	if in.RequestedAt != nil {
		requested = *in.RequestedAt
	}
	order := &entity.PurchaseOrder{
		ID:          uuid.New().String(),
		SupplierID:  &in.SupplierID,
		Status:      entity.PurchasePendiente,
		Total:       decimal.Zero,
		Notes:       in.Notes,
		RequestedAt: requested,
		EstimatedAt: in.EstimatedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	lines := make([]*entity.PurchaseOrderLine, 0, len(in.Lines))
	for _, lr := range in.Lines {
		line, err := uc.buildLine(order.ID, lr.SupplyID, lr.Quantity, lr.UnitPrice)
		if err != nil {
			return nil, nil, err
		}
		order.Total = order.Total.Add(line.Subtotal)
		lines = append(lines, line)
	}

	err = uc.txRunner.RunPurchase(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		_ repository.InventoryBalanceRepository,
		_ repository.InventoryMovementRepository,
	) error {
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		for _, line := range lines {
			if err := orderRepo.CreateLine(line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return order, lines, nil
}

func (uc *PurchaseUseCase) buildLine(orderID, supplyID string, quantity, unitPrice decimal.Decimal) (*entity.PurchaseOrderLine, error) {
	if supplyID == "" || !quantity.GreaterThan(decimal.Zero) || unitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	supply, err := uc.supplyRepo.GetByID(supplyID)
	if err != nil {
		return nil, err
	}
	if supply == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	return &entity.PurchaseOrderLine{
		ID:        uuid.New().String(),
		OrderID:   orderID,
		SupplyID:  supplyID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Subtotal:  quantity.Mul(unitPrice),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// AddLine agrega una línea mientras la orden es editable (PENDIENTE o
// ENVIADA) y recalcula el total desde las líneas persistidas.
func (uc *PurchaseUseCase) AddLine(ctx context.Context, orderID, userID string, in dto.PurchaseLineRequest) (*entity.PurchaseOrderLine, error) {
	line, err := uc.buildLine(orderID, in.SupplyID, in.Quantity, in.UnitPrice)
	if err != nil {
		return nil, err
	}
	err = uc.txRunner.RunPurchase(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		_ repository.InventoryBalanceRepository,
		_ repository.InventoryMovementRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.Editable() {
			return domain.ErrConflict
		}
		if err := orderRepo.CreateLine(line); err != nil {
			return err
		}
		return recomputePurchaseTotal(orderRepo, orderID)
	})
	if err != nil {
		return nil, err
	}
	return line, nil
}

// UpdateLine modifica una línea de una orden editable y recalcula el total.
func (uc *PurchaseUseCase) UpdateLine(ctx context.Context, orderID, lineID string, in dto.UpdatePurchaseLineRequest) (*entity.PurchaseOrderLine, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) || in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.PurchaseOrderLine
	err := uc.txRunner.RunPurchase(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		_ repository.InventoryBalanceRepository,
		_ repository.InventoryMovementRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.Editable() {
			return domain.ErrConflict
		}
		line, err := orderRepo.GetLine(lineID)
		if err != nil {
			return err
		}
		if line == nil {
			return domain.ErrNotFound
		}
		if line.OrderID != orderID {
			return domain.ErrInvalidInput
		}
		line.Quantity = in.Quantity
		line.UnitPrice = in.UnitPrice
		line.Subtotal = line.Quantity.Mul(line.UnitPrice)
		line.UpdatedAt = time.Now()
		if err := orderRepo.UpdateLine(line); err != nil {
			return err
		}
		updated = line
		return recomputePurchaseTotal(orderRepo, orderID)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RemoveLine elimina una línea de una orden editable y recalcula el total.
func (uc *PurchaseUseCase) RemoveLine(ctx context.Context, orderID, lineID string) error {
	return uc.txRunner.RunPurchase(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		_ repository.InventoryBalanceRepository,
		_ repository.InventoryMovementRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.Editable() {
			return domain.ErrConflict
		}
		line, err := orderRepo.GetLine(lineID)
		if err != nil {
			return err
		}
		if line == nil {
			return domain.ErrNotFound
		}
		if line.OrderID != orderID {
			return domain.ErrInvalidInput
		}
		if err := orderRepo.DeleteLine(lineID); err != nil {
			return err
		}
		return recomputePurchaseTotal(orderRepo, orderID)
	})
}

func recomputePurchaseTotal(orderRepo repository.PurchaseOrderRepository, orderID string) error {
	lines, err := orderRepo.ListLines(orderID)
	if err != nil {
		return err
	}
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal)
	}
	return orderRepo.UpdateTotal(orderID, total)
}

// Send transiciona la orden PENDIENTE → ENVIADA (enviada al proveedor).
func (uc *PurchaseUseCase) Send(ctx context.Context, orderID string) (*entity.PurchaseOrder, error) {
	return uc.transition(ctx, orderID, entity.PurchaseEnviada)
}

// Cancel anula la orden. Rechazada si ya fue recibida en su totalidad.
func (uc *PurchaseUseCase) Cancel(ctx context.Context, orderID string) (*entity.PurchaseOrder, error) {
	return uc.transition(ctx, orderID, entity.PurchaseAnulada)
}

func (uc *PurchaseUseCase) transition(_ context.Context, orderID, to string) (*entity.PurchaseOrder, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.CanPurchaseTransition(order.Status, to) {
		return nil, domain.ErrConflict
	}
	order.Status = to
	order.UpdatedAt = time.Now()
	if err := uc.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return order, nil
}

// Receive registra la recepción de la mercancía: suma ENTRADA de cada
// insumo recibido en la ubicación indicada y transiciona el estado, todo en
// una transacción. Lines vacío recibe todas las líneas completas; Total
// marca RECIBIDA_TOTAL y estampa la fecha de recepción.
func (uc *PurchaseUseCase) Receive(ctx context.Context, orderID, userID string, in dto.ReceivePurchaseOrderRequest) (*entity.PurchaseOrder, error) {
	if in.Location == "" {
		return nil, domain.ErrInvalidInput
	}
	target := entity.PurchaseRecibidaParcial
	if in.Total {
		target = entity.PurchaseRecibidaTotal
	}

	var received *entity.PurchaseOrder
	err := uc.txRunner.RunPurchase(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		balanceRepo repository.InventoryBalanceRepository,
		movementRepo repository.InventoryMovementRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !entity.CanPurchaseTransition(order.Status, target) {
			return domain.ErrConflict
		}
		lines, err := orderRepo.ListLines(orderID)
		if err != nil {
			return err
		}
		linesByID := make(map[string]*entity.PurchaseOrderLine, len(lines))
		for _, l := range lines {
			linesByID[l.ID] = l
		}

		// Sin detalle de recepción: se reciben todas las líneas completas.
		receipts := in.Lines
		if len(receipts) == 0 {
			receipts = make([]dto.ReceiveLineRequest, 0, len(lines))
			for _, l := range lines {
				receipts = append(receipts, dto.ReceiveLineRequest{LineID: l.ID, Quantity: l.Quantity})
			}
		}

		for _, r := range receipts {
			line, ok := linesByID[r.LineID]
			if !ok {
				return domain.ErrInvalidInput
			}
			if !r.Quantity.GreaterThan(decimal.Zero) {
				return domain.ErrInvalidInput
			}
			err := uc.inventory.PostEntradaInTx(
				balanceRepo, movementRepo,
				entity.ItemTypeInsumo, line.SupplyID, in.Location,
				r.Quantity,
				fmt.Sprintf("recepción orden de compra %s", orderID),
				userID,
			)
			if err != nil {
				return err
			}
		}

		now := time.Now()
		order.Status = target
		if in.Total {
			order.ReceivedAt = &now
		}
		order.UpdatedAt = now
		if err := orderRepo.Update(order); err != nil {
			return err
		}
		received = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return received, nil
}

// Get obtiene la cabecera con sus líneas.
func (uc *PurchaseUseCase) Get(_ context.Context, orderID string) (*entity.PurchaseOrder, []*entity.PurchaseOrderLine, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, domain.ErrNotFound
	}
	lines, err := uc.orderRepo.ListLines(orderID)
	if err != nil {
		return nil, nil, err
	}
	return order, lines, nil
}

// List lista órdenes con filtro opcional por estado.
func (uc *PurchaseUseCase) List(_ context.Context, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	return uc.orderRepo.List(status, limit, offset)
}
