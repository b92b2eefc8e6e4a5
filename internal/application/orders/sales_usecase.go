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

// SalesUseCase gestiona órdenes de venta: creación con líneas, mutación de
// líneas mientras la orden está abierta (con recálculo del total desde las
// líneas persistidas), transiciones de estado y entrega con descuento de
// inventario en la misma transacción.
type SalesUseCase struct {
	txRunner    SalesTxRunner
	orderRepo   repository.SalesOrderRepository
	clientRepo  repository.ClientRepository
	productRepo repository.ProductRepository
	inventory   InventoryPoster
}

// NewSalesUseCase construye el caso de uso.
func NewSalesUseCase(
	txRunner SalesTxRunner,
	orderRepo repository.SalesOrderRepository,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	inventory InventoryPoster,
) *SalesUseCase {
	return &SalesUseCase{
		txRunner:    txRunner,
		orderRepo:   orderRepo,
		clientRepo:  clientRepo,
		productRepo: productRepo,
		inventory:   inventory,
	}
}

// Create valida cliente y productos, calcula subtotales (precio de catálogo
// si la línea no trae precio) y persiste cabecera y líneas en una sola
// transacción.
func (uc *SalesUseCase) Create(ctx context.Context, userID string, in dto.CreateSalesOrderRequest) (*entity.SalesOrder, []*entity.SalesOrderLine, error) {
	if in.ClientID == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		return nil, nil, domain.ErrNotFound
	}

	now := time.Now()
	requested := now
	if in.RequestedAt != nil {
		requested = *in.RequestedAt
	}
	order := &entity.SalesOrder{
		ID:          uuid.New().String(),
		ClientID:    &in.ClientID,
		Status:      entity.SalesPendiente,
		Total:       decimal.Zero,
		Notes:       in.Notes,
		RequestedAt: requested,
		EstimatedAt: in.EstimatedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	lines := make([]*entity.SalesOrderLine, 0, len(in.Lines))
	for _, lr := range in.Lines {
		line, err := uc.buildLine(order.ID, lr)
		if err != nil {
			return nil, nil, err
		}
		order.Total = order.Total.Add(line.Subtotal)
		lines = append(lines, line)
	}

	err = uc.txRunner.RunSales(ctx, func(
		orderRepo repository.SalesOrderRepository,
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

// buildLine valida la línea solicitada y resuelve el precio unitario
// (catálogo cuando no viene explícito).
func (uc *SalesUseCase) buildLine(orderID string, lr dto.SalesLineRequest) (*entity.SalesOrderLine, error) {
	if lr.ProductID == "" || !lr.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(lr.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	unitPrice := product.Price
	if lr.UnitPrice != nil {
		if lr.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		unitPrice = *lr.UnitPrice
	}
	now := time.Now()
	return &entity.SalesOrderLine{
		ID:        uuid.New().String(),
		OrderID:   orderID,
		ProductID: lr.ProductID,
		Quantity:  lr.Quantity,
		UnitPrice: unitPrice,
		Subtotal:  lr.Quantity.Mul(unitPrice),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// AddLine agrega una línea a una orden abierta y recalcula el total desde
// el conjunto persistido de líneas, todo en una transacción.
func (uc *SalesUseCase) AddLine(ctx context.Context, orderID, userID string, in dto.SalesLineRequest) (*entity.SalesOrderLine, error) {
	line, err := uc.buildLine(orderID, in)
	if err != nil {
		return nil, err
	}
	err = uc.txRunner.RunSales(ctx, func(
		orderRepo repository.SalesOrderRepository,
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
		return recomputeSalesTotal(orderRepo, orderID)
	})
	if err != nil {
		return nil, err
	}
	return line, nil
}

// UpdateLine modifica cantidad/precio de una línea de una orden abierta y
// recalcula el total. Falla con ErrInvalidInput si la línea no pertenece a
// la orden indicada.
func (uc *SalesUseCase) UpdateLine(ctx context.Context, orderID, lineID, userID string, in dto.UpdateSalesLineRequest) (*entity.SalesOrderLine, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.SalesOrderLine
	err := uc.txRunner.RunSales(ctx, func(
		orderRepo repository.SalesOrderRepository,
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
		if in.UnitPrice != nil {
			if in.UnitPrice.IsNegative() {
				return domain.ErrInvalidInput
			}
			line.UnitPrice = *in.UnitPrice
		}
		line.Subtotal = line.Quantity.Mul(line.UnitPrice)
		line.UpdatedAt = time.Now()
		if err := orderRepo.UpdateLine(line); err != nil {
			return err
		}
		updated = line
		return recomputeSalesTotal(orderRepo, orderID)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RemoveLine elimina una línea de una orden abierta y recalcula el total.
func (uc *SalesUseCase) RemoveLine(ctx context.Context, orderID, lineID string) error {
	return uc.txRunner.RunSales(ctx, func(
		orderRepo repository.SalesOrderRepository,
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
		return recomputeSalesTotal(orderRepo, orderID)
	})
}

// recomputeSalesTotal recalcula el total de la cabecera desde las líneas
// persistidas (nunca desde un delta en memoria) y lo guarda.
func recomputeSalesTotal(orderRepo repository.SalesOrderRepository, orderID string) error {
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

// Confirm transiciona la orden PENDIENTE → CONFIRMADA.
func (uc *SalesUseCase) Confirm(ctx context.Context, orderID string) (*entity.SalesOrder, error) {
	return uc.transition(ctx, orderID, entity.SalesConfirmada)
}

// Cancel anula la orden. Irreversible; rechazada si la orden ya es terminal.
func (uc *SalesUseCase) Cancel(ctx context.Context, orderID string) (*entity.SalesOrder, error) {
	return uc.transition(ctx, orderID, entity.SalesAnulada)
}

func (uc *SalesUseCase) transition(_ context.Context, orderID, to string) (*entity.SalesOrder, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.CanSalesTransition(order.Status, to) {
		return nil, domain.ErrConflict
	}
	order.Status = to
	order.UpdatedAt = time.Now()
	if err := uc.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return order, nil
}

// Deliver entrega la orden: transiciona a ENTREGADA, estampa la fecha real
// y descuenta el stock de producto terminado de la ubicación indicada, por
// cada línea, en una sola transacción. Stock insuficiente revierte todo.
func (uc *SalesUseCase) Deliver(ctx context.Context, orderID, userID string, in dto.DeliverSalesOrderRequest) (*entity.SalesOrder, error) {
	if in.Location == "" {
		return nil, domain.ErrInvalidInput
	}
	var delivered *entity.SalesOrder
	err := uc.txRunner.RunSales(ctx, func(
		orderRepo repository.SalesOrderRepository,
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
		if !entity.CanSalesTransition(order.Status, entity.SalesEntregada) {
			return domain.ErrConflict
		}
		lines, err := orderRepo.ListLines(orderID)
		if err != nil {
			return err
		}
		for _, line := range lines {
			err := uc.inventory.PostSalidaInTx(
				balanceRepo, movementRepo,
				entity.ItemTypeProducto, line.ProductID, in.Location,
				line.Quantity,
				fmt.Sprintf("entrega orden de venta %s", orderID),
				userID,
			)
			if err != nil {
				return err
			}
		}
		now := time.Now()
		order.Status = entity.SalesEntregada
		order.DeliveredAt = &now
		order.UpdatedAt = now
		if err := orderRepo.Update(order); err != nil {
			return err
		}
		delivered = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return delivered, nil
}

// Get obtiene la cabecera con sus líneas.
func (uc *SalesUseCase) Get(_ context.Context, orderID string) (*entity.SalesOrder, []*entity.SalesOrderLine, error) {
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
func (uc *SalesUseCase) List(_ context.Context, status string, limit, offset int) ([]*entity.SalesOrder, error) {
	return uc.orderRepo.List(status, limit, offset)
}
