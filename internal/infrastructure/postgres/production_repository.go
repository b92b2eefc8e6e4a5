package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

var _ repository.ProductionRepository = (*ProductionRepo)(nil)

// ProductionRepo implementación del puerto ProductionRepository sobre
// PostgreSQL: órdenes de producción y sus tareas.
type ProductionRepo struct {
	q Querier
}

// NewProductionRepository construye el adaptador de persistencia para producción.
func NewProductionRepository(q Querier) *ProductionRepo {
	return &ProductionRepo{q: q}
}

const productionOrderColumns = `id, sales_order_id, status, planned_start, planned_end, actual_start, actual_end, notes, created_at, updated_at`

// Create persiste una nueva orden de producción.
func (r *ProductionRepo) Create(order *entity.ProductionOrder) error {
	query := `
		INSERT INTO production_orders (id, sales_order_id, status, planned_start, planned_end, actual_start, actual_end, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.SalesOrderID, order.Status, order.PlannedStart, order.PlannedEnd,
		order.ActualStart, order.ActualEnd, order.Notes, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert production order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID.
func (r *ProductionRepo) GetByID(id string) (*entity.ProductionOrder, error) {
	query := `SELECT ` + productionOrderColumns + ` FROM production_orders WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene una orden bloqueando la fila (SELECT FOR UPDATE).
func (r *ProductionRepo) GetForUpdate(id string) (*entity.ProductionOrder, error) {
	query := `SELECT ` + productionOrderColumns + ` FROM production_orders WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

func (r *ProductionRepo) scanOne(row pgx.Row) (*entity.ProductionOrder, error) {
	var o entity.ProductionOrder
	err := row.Scan(
		&o.ID, &o.SalesOrderID, &o.Status, &o.PlannedStart, &o.PlannedEnd,
		&o.ActualStart, &o.ActualEnd, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production order: %w", err)
	}
	return &o, nil
}

// Update persiste la cabecera completa.
func (r *ProductionRepo) Update(order *entity.ProductionOrder) error {
	query := `
		UPDATE production_orders SET status = $2, planned_start = $3, planned_end = $4,
			actual_start = $5, actual_end = $6, notes = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		order.ID, order.Status, order.PlannedStart, order.PlannedEnd,
		order.ActualStart, order.ActualEnd, order.Notes, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update production order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista órdenes, opcionalmente filtradas por estado, más recientes primero.
func (r *ProductionRepo) List(status string, limit, offset int) ([]*entity.ProductionOrder, error) {
	var (
		query string
		args  []any
	)
	if status != "" {
		query = `SELECT ` + productionOrderColumns + ` FROM production_orders WHERE status = $1
			ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = []any{status, limit, offset}
	} else {
		query = `SELECT ` + productionOrderColumns + ` FROM production_orders
			ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		args = []any{limit, offset}
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list production orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionOrder
	for rows.Next() {
		var o entity.ProductionOrder
		if err := rows.Scan(
			&o.ID, &o.SalesOrderID, &o.Status, &o.PlannedStart, &o.PlannedEnd,
			&o.ActualStart, &o.ActualEnd, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan production order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

const taskColumns = `id, order_id, name, employee_id, planned_start, estimated_minutes, actual_minutes, started_at, ended_at, status, notes, created_at, updated_at`

// CreateTask persiste una tarea.
func (r *ProductionRepo) CreateTask(task *entity.ProductionTask) error {
	query := `
		INSERT INTO production_tasks (id, order_id, name, employee_id, planned_start, estimated_minutes,
			actual_minutes, started_at, ended_at, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		task.ID, task.OrderID, task.Name, task.EmployeeID, task.PlannedStart, task.EstimatedMinutes,
		task.ActualMinutes, task.StartedAt, task.EndedAt, task.Status, task.Notes, task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert production task: %w", err)
	}
	return nil
}

// GetTask obtiene una tarea por ID.
func (r *ProductionRepo) GetTask(id string) (*entity.ProductionTask, error) {
	query := `SELECT ` + taskColumns + ` FROM production_tasks WHERE id = $1`
	var t entity.ProductionTask
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.OrderID, &t.Name, &t.EmployeeID, &t.PlannedStart, &t.EstimatedMinutes,
		&t.ActualMinutes, &t.StartedAt, &t.EndedAt, &t.Status, &t.Notes, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production task: %w", err)
	}
	return &t, nil
}

// UpdateTask persiste la tarea completa.
func (r *ProductionRepo) UpdateTask(task *entity.ProductionTask) error {
	query := `
		UPDATE production_tasks SET name = $2, employee_id = $3, planned_start = $4, estimated_minutes = $5,
			actual_minutes = $6, started_at = $7, ended_at = $8, status = $9, notes = $10, updated_at = $11
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		task.ID, task.Name, task.EmployeeID, task.PlannedStart, task.EstimatedMinutes,
		task.ActualMinutes, task.StartedAt, task.EndedAt, task.Status, task.Notes, task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update production task: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListTasks lista las tareas de una orden en orden de creación.
func (r *ProductionRepo) ListTasks(orderID string) ([]*entity.ProductionTask, error) {
	query := `SELECT ` + taskColumns + ` FROM production_tasks WHERE order_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list production tasks: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionTask
	for rows.Next() {
		var t entity.ProductionTask
		if err := rows.Scan(
			&t.ID, &t.OrderID, &t.Name, &t.EmployeeID, &t.PlannedStart, &t.EstimatedMinutes,
			&t.ActualMinutes, &t.StartedAt, &t.EndedAt, &t.Status, &t.Notes, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan production task: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
