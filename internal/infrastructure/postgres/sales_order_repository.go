package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

// SalesOrderRepo implementación del puerto SalesOrderRepository sobre
// PostgreSQL (usable con pool o tx).
type SalesOrderRepo struct {
	q Querier
}

// NewSalesOrderRepository construye el adaptador de persistencia para órdenes de venta.
func NewSalesOrderRepository(q Querier) *SalesOrderRepo {
	return &SalesOrderRepo{q: q}
}

const salesOrderColumns = `id, client_id, status, total, notes, requested_at, estimated_at, delivered_at, created_at, updated_at`

// Create persiste una nueva cabecera.
func (r *SalesOrderRepo) Create(order *entity.SalesOrder) error {
	query := `
		INSERT INTO sales_orders (id, client_id, status, total, notes, requested_at, estimated_at, delivered_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.ClientID, order.Status, order.Total, order.Notes,
		order.RequestedAt, order.EstimatedAt, order.DeliveredAt, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert sales order: %w", err)
	}
	return nil
}

// GetByID obtiene una cabecera por ID.
func (r *SalesOrderRepo) GetByID(id string) (*entity.SalesOrder, error) {
	query := `SELECT ` + salesOrderColumns + ` FROM sales_orders WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene una cabecera bloqueando la fila (SELECT FOR UPDATE).
func (r *SalesOrderRepo) GetForUpdate(id string) (*entity.SalesOrder, error) {
	query := `SELECT ` + salesOrderColumns + ` FROM sales_orders WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

func (r *SalesOrderRepo) scanOne(row pgx.Row) (*entity.SalesOrder, error) {
	var o entity.SalesOrder
	err := row.Scan(
		&o.ID, &o.ClientID, &o.Status, &o.Total, &o.Notes,
		&o.RequestedAt, &o.EstimatedAt, &o.DeliveredAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales order: %w", err)
	}
	return &o, nil
}

// Update persiste la cabecera completa.
func (r *SalesOrderRepo) Update(order *entity.SalesOrder) error {
	query := `
		UPDATE sales_orders SET status = $2, total = $3, notes = $4, estimated_at = $5, delivered_at = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		order.ID, order.Status, order.Total, order.Notes,
		order.EstimatedAt, order.DeliveredAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sales order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateTotal fija el total recalculado desde las líneas persistidas.
func (r *SalesOrderRepo) UpdateTotal(id string, total decimal.Decimal) error {
	query := `UPDATE sales_orders SET total = $2, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, id, total)
	if err != nil {
		return fmt.Errorf("update sales order total: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista cabeceras, opcionalmente filtradas por estado, más recientes primero.
func (r *SalesOrderRepo) List(status string, limit, offset int) ([]*entity.SalesOrder, error) {
	var (
		query string
		args  []any
	)
	if status != "" {
		query = `SELECT ` + salesOrderColumns + ` FROM sales_orders WHERE status = $1
			ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = []any{status, limit, offset}
	} else {
		query = `SELECT ` + salesOrderColumns + ` FROM sales_orders
			ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		args = []any{limit, offset}
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesOrder
	for rows.Next() {
		var o entity.SalesOrder
		if err := rows.Scan(
			&o.ID, &o.ClientID, &o.Status, &o.Total, &o.Notes,
			&o.RequestedAt, &o.EstimatedAt, &o.DeliveredAt, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sales order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// CreateLine persiste una línea.
func (r *SalesOrderRepo) CreateLine(line *entity.SalesOrderLine) error {
	query := `
		INSERT INTO sales_order_lines (id, order_id, product_id, quantity, unit_price, subtotal, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.OrderID, line.ProductID, line.Quantity, line.UnitPrice,
		line.Subtotal, line.CreatedAt, line.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert sales order line: %w", err)
	}
	return nil
}

// GetLine obtiene una línea por ID.
func (r *SalesOrderRepo) GetLine(id string) (*entity.SalesOrderLine, error) {
	query := `
		SELECT id, order_id, product_id, quantity, unit_price, subtotal, created_at, updated_at
		FROM sales_order_lines WHERE id = $1`
	var l entity.SalesOrderLine
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&l.ID, &l.OrderID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.Subtotal, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales order line: %w", err)
	}
	return &l, nil
}

// UpdateLine persiste cantidad, precio y subtotal de la línea.
func (r *SalesOrderRepo) UpdateLine(line *entity.SalesOrderLine) error {
	query := `
		UPDATE sales_order_lines SET quantity = $2, unit_price = $3, subtotal = $4, updated_at = $5
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		line.ID, line.Quantity, line.UnitPrice, line.Subtotal, line.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sales order line: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteLine elimina una línea.
func (r *SalesOrderRepo) DeleteLine(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM sales_order_lines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sales order line: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListLines lista las líneas de una orden en orden de creación.
func (r *SalesOrderRepo) ListLines(orderID string) ([]*entity.SalesOrderLine, error) {
	query := `
		SELECT id, order_id, product_id, quantity, unit_price, subtotal, created_at, updated_at
		FROM sales_order_lines WHERE order_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list sales order lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesOrderLine
	for rows.Next() {
		var l entity.SalesOrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.Subtotal, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sales order line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
