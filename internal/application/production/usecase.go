package production

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

// UseCase gestiona órdenes de producción y sus tareas: creación ligada a una
// venta confirmada, avance de estados, consumo de insumos según la lista de
// materiales y anulación en cascada sobre las tareas abiertas.
type UseCase struct {
	txRunner     TxRunner
	orderRepo    repository.ProductionRepository
	salesRepo    repository.SalesOrderRepository
	bomRepo      repository.BOMRepository
	employeeRepo repository.EmployeeRepository
	inventory    InventoryPoster
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	orderRepo repository.ProductionRepository,
	salesRepo repository.SalesOrderRepository,
	bomRepo repository.BOMRepository,
	employeeRepo repository.EmployeeRepository,
	inventory InventoryPoster,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		orderRepo:    orderRepo,
		salesRepo:    salesRepo,
		bomRepo:      bomRepo,
		employeeRepo: employeeRepo,
		inventory:    inventory,
	}
}

// Create crea una orden de producción PENDIENTE. Si viene ligada a una orden
// de venta, esta debe estar CONFIRMADA o EN_PRODUCCION; una venta CONFIRMADA
// se avanza a EN_PRODUCCION en la misma transacción.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateProductionOrderRequest) (*entity.ProductionOrder, error) {
	now := time.Now()
	order := &entity.ProductionOrder{
		ID:           uuid.New().String(),
		SalesOrderID: in.SalesOrderID,
		Status:       entity.ProductionPendiente,
		PlannedStart: in.PlannedStart,
		PlannedEnd:   in.PlannedEnd,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := uc.txRunner.RunProduction(ctx, func(
		orderRepo repository.ProductionRepository,
		salesRepo repository.SalesOrderRepository,
		_ repository.InventoryBalanceRepository,
		_ repository.InventoryMovementRepository,
	) error {
		if in.SalesOrderID != nil {
			sales, err := salesRepo.GetForUpdate(*in.SalesOrderID)
			if err != nil {
				return err
			}
			if sales == nil {
				return domain.ErrNotFound
			}
			switch sales.Status {
			case entity.SalesEnProduccion:
				// ya está donde debe
			case entity.SalesConfirmada:
				if err := advanceSalesToProduction(salesRepo, sales); err != nil {
					return err
				}
			default:
				return domain.ErrConflict
			}
		}
		return orderRepo.Create(order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// advanceSalesToProduction avanza la venta CONFIRMADA → EN_PRODUCCION. La
// transición es un efecto declarado de crear la orden de producción, nunca
// una mutación implícita fuera de transacción.
func advanceSalesToProduction(salesRepo repository.SalesOrderRepository, sales *entity.SalesOrder) error {
	if !entity.CanSalesTransition(sales.Status, entity.SalesEnProduccion) {
		return domain.ErrConflict
	}
	sales.Status = entity.SalesEnProduccion
	sales.UpdatedAt = time.Now()
	return salesRepo.Update(sales)
}

// AddTask agrega una tarea PENDIENTE a la orden. La primera tarea de una
// orden PENDIENTE arranca la producción: la orden pasa a EN_PROCESO y se
// estampa el inicio real si no existía.
func (uc *UseCase) AddTask(ctx context.Context, orderID string, in dto.CreateTaskRequest) (*entity.ProductionTask, error) {
	if in.Name == "" || in.EstimatedMinutes < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.EmployeeID != nil {
		emp, err := uc.employeeRepo.GetByID(*in.EmployeeID)
		if err != nil {
			return nil, err
		}
		if emp == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	task := &entity.ProductionTask{
		ID:               uuid.New().String(),
		OrderID:          orderID,
		Name:             in.Name,
		EmployeeID:       in.EmployeeID,
		PlannedStart:     in.PlannedStart,
		EstimatedMinutes: in.EstimatedMinutes,
		Status:           entity.TaskPendiente,
		Notes:            in.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	err := uc.txRunner.RunProduction(ctx, func(
		orderRepo repository.ProductionRepository,
		_ repository.SalesOrderRepository,
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
		if order.Terminal() {
			return domain.ErrConflict
		}
		if err := orderRepo.CreateTask(task); err != nil {
			return err
		}
		if order.Status == entity.ProductionPendiente {
			order.Status = entity.ProductionEnProceso
			if order.ActualStart == nil {
				start := time.Now()
				order.ActualStart = &start
			}
			order.UpdatedAt = time.Now()
			return orderRepo.Update(order)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTask actualiza una tarea. Las transiciones de estado pasan por la
// tabla de tareas; un fin real sin estado explícito completa la tarea salvo
// que esté BLOQUEADA. Las tareas de una orden terminal son inmutables.
func (uc *UseCase) UpdateTask(ctx context.Context, orderID, taskID string, in dto.UpdateTaskRequest) (*entity.ProductionTask, error) {
	if in.EmployeeID != nil {
		emp, err := uc.employeeRepo.GetByID(*in.EmployeeID)
		if err != nil {
			return nil, err
		}
		if emp == nil {
			return nil, domain.ErrNotFound
		}
	}
	var updated *entity.ProductionTask
	err := uc.txRunner.RunProduction(ctx, func(
		orderRepo repository.ProductionRepository,
		_ repository.SalesOrderRepository,
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
		if order.Terminal() {
			return domain.ErrConflict
		}
		task, err := orderRepo.GetTask(taskID)
		if err != nil {
			return err
		}
		if task == nil {
			return domain.ErrNotFound
		}
		if task.OrderID != orderID {
			return domain.ErrInvalidInput
		}
		if err := applyTaskUpdate(task, in); err != nil {
			return err
		}
		task.UpdatedAt = time.Now()
		if err := orderRepo.UpdateTask(task); err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// applyTaskUpdate muta la tarea según los campos presentes del request.
func applyTaskUpdate(task *entity.ProductionTask, in dto.UpdateTaskRequest) error {
	if in.Name != nil {
		if *in.Name == "" {
			return domain.ErrInvalidInput
		}
		task.Name = *in.Name
	}
	if in.EmployeeID != nil {
		task.EmployeeID = in.EmployeeID
	}
	if in.StartedAt != nil {
		task.StartedAt = in.StartedAt
		if task.Status == entity.TaskPendiente && in.Status == nil {
			task.Status = entity.TaskEnCurso
		}
	}
	if in.ActualMinutes != nil {
		if *in.ActualMinutes < 0 {
			return domain.ErrInvalidInput
		}
		task.ActualMinutes = *in.ActualMinutes
	}
	if in.Notes != nil {
		task.Notes = *in.Notes
	}
	if in.Status != nil {
		if !entity.CanTaskTransition(task.Status, *in.Status) {
			return domain.ErrConflict
		}
		task.Status = *in.Status
	}
	if in.EndedAt != nil {
		task.EndedAt = in.EndedAt
		if in.Status == nil && task.Status != entity.TaskBloqueada {
			if !entity.TaskTerminal(task.Status) {
				if !entity.CanTaskTransition(task.Status, entity.TaskCompletada) {
					return domain.ErrConflict
				}
				task.Status = entity.TaskCompletada
			}
		}
	}
	return nil
}

// ConsumeMaterials explota las líneas de producto de la venta ligada a
// través de la lista de materiales y registra una SALIDA de inventario por
// cada insumo requerido, todo en una transacción. Stock insuficiente de
// cualquier insumo revierte el consumo completo.
func (uc *UseCase) ConsumeMaterials(ctx context.Context, orderID, userID string, in dto.ConsumeMaterialsRequest) error {
	if in.Location == "" {
		return domain.ErrInvalidInput
	}
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.Terminal() {
		return domain.ErrConflict
	}
	if order.SalesOrderID == nil {
		return domain.ErrInvalidInput
	}
	lines, err := uc.salesRepo.ListLines(*order.SalesOrderID)
	if err != nil {
		return err
	}
	required, err := uc.explodeBOM(lines)
	if err != nil {
		return err
	}
	if len(required) == 0 {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunProduction(ctx, func(
		_ repository.ProductionRepository,
		_ repository.SalesOrderRepository,
		balanceRepo repository.InventoryBalanceRepository,
		movementRepo repository.InventoryMovementRepository,
	) error {
		for _, req := range required {
			err := uc.inventory.PostSalidaInTx(
				balanceRepo, movementRepo,
				entity.ItemTypeInsumo, req.supplyID, in.Location,
				req.quantity,
				fmt.Sprintf("consumo orden de producción %s", orderID),
				userID,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

type supplyRequirement struct {
	supplyID string
	quantity decimal.Decimal
}

// explodeBOM agrega, por insumo, la cantidad requerida por todas las líneas
// de producto. El orden de aparición se preserva para que las salidas sean
// deterministas.
func (uc *UseCase) explodeBOM(lines []*entity.SalesOrderLine) ([]supplyRequirement, error) {
	index := make(map[string]int)
	required := make([]supplyRequirement, 0)
	for _, line := range lines {
		items, err := uc.bomRepo.ListByProduct(line.ProductID)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			needed := item.Quantity.Mul(line.Quantity)
			if i, ok := index[item.SupplyID]; ok {
				required[i].quantity = required[i].quantity.Add(needed)
				continue
			}
			index[item.SupplyID] = len(required)
			required = append(required, supplyRequirement{supplyID: item.SupplyID, quantity: needed})
		}
	}
	return required, nil
}

// Finish termina la orden: exige que toda tarea esté en estado terminal,
// transiciona EN_PROCESO → TERMINADA y estampa el fin real.
func (uc *UseCase) Finish(ctx context.Context, orderID string) (*entity.ProductionOrder, error) {
	var finished *entity.ProductionOrder
	err := uc.txRunner.RunProduction(ctx, func(
		orderRepo repository.ProductionRepository,
		_ repository.SalesOrderRepository,
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
		if !entity.CanProductionTransition(order.Status, entity.ProductionTerminada) {
			return domain.ErrConflict
		}
		tasks, err := orderRepo.ListTasks(orderID)
		if err != nil {
			return err
		}
		for _, t := range tasks {
			if !entity.TaskTerminal(t.Status) {
				return domain.ErrConflict
			}
		}
		now := time.Now()
		order.Status = entity.ProductionTerminada
		order.ActualEnd = &now
		order.UpdatedAt = now
		if err := orderRepo.Update(order); err != nil {
			return err
		}
		finished = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return finished, nil
}

// Cancel anula la orden. Prohibido sobre una orden TERMINADA. Toda tarea no
// terminal pasa a BLOQUEADA con una nota anexada, en la misma transacción.
func (uc *UseCase) Cancel(ctx context.Context, orderID string) (*entity.ProductionOrder, error) {
	var cancelled *entity.ProductionOrder
	err := uc.txRunner.RunProduction(ctx, func(
		orderRepo repository.ProductionRepository,
		_ repository.SalesOrderRepository,
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
		if !entity.CanProductionTransition(order.Status, entity.ProductionAnulada) {
			return domain.ErrConflict
		}
		tasks, err := orderRepo.ListTasks(orderID)
		if err != nil {
			return err
		}
		now := time.Now()
		for _, t := range tasks {
			if entity.TaskTerminal(t.Status) {
				continue
			}
			t.Status = entity.TaskBloqueada
			if t.Notes != "" {
				t.Notes += "; "
			}
			t.Notes += "bloqueada por anulación de la orden"
			t.UpdatedAt = now
			if err := orderRepo.UpdateTask(t); err != nil {
				return err
			}
		}
		order.Status = entity.ProductionAnulada
		order.UpdatedAt = now
		if err := orderRepo.Update(order); err != nil {
			return err
		}
		cancelled = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// Get obtiene la cabecera con sus tareas.
func (uc *UseCase) Get(_ context.Context, orderID string) (*entity.ProductionOrder, []*entity.ProductionTask, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, domain.ErrNotFound
	}
	tasks, err := uc.orderRepo.ListTasks(orderID)
	if err != nil {
		return nil, nil, err
	}
	return order, tasks, nil
}

// List lista órdenes con filtro opcional por estado.
func (uc *UseCase) List(_ context.Context, status string, limit, offset int) ([]*entity.ProductionOrder, error) {
	return uc.orderRepo.List(status, limit, offset)
}
