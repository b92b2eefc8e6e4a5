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

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación del puerto PurchaseOrderRepository sobre
// PostgreSQL (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador de persistencia para órdenes de compra.
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const purchaseOrderColumns = `id, supplier_id, status, total, notes, requested_at, estimated_at, received_at, created_at, updated_at`

// Create persiste una nueva cabecera.
func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, supplier_id, status, total, notes, requested_at, estimated_at, received_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.SupplierID, order.Status, order.Total, order.Notes,
		order.RequestedAt, order.EstimatedAt, order.ReceivedAt, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

// GetByID obtiene una cabecera por ID.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene una cabecera bloqueando la fila (SELECT FOR UPDATE).
func (r *PurchaseOrderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

func (r *PurchaseOrderRepo) scanOne(row pgx.Row) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	err := row.Scan(
		&o.ID, &o.SupplierID, &o.Status, &o.Total, &o.Notes,
		&o.RequestedAt, &o.EstimatedAt, &o.ReceivedAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return &o, nil
}

// Update persiste la cabecera completa.
func (r *PurchaseOrderRepo) Update(order *entity.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders SET status = $2, total = $3, notes = $4, estimated_at = $5, received_at = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		order.ID, order.Status, order.Total, order.Notes,
		order.EstimatedAt, order.ReceivedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateTotal fija el total recalculado desde las líneas persistidas.
func (r *PurchaseOrderRepo) UpdateTotal(id string, total decimal.Decimal) error {
	query := `UPDATE purchase_orders SET total = $2, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, id, total)
	if err != nil {
		return fmt.Errorf("update purchase order total: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista cabeceras, opcionalmente filtradas por estado, más recientes primero.
func (r *PurchaseOrderRepo) List(status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	var (
		query string
		args  []any
	)
	if status != "" {
		query = `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders WHERE status = $1
			ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = []any{status, limit, offset}
	} else {
		query = `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders
			ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		args = []any{limit, offset}
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		var o entity.PurchaseOrder
		if err := rows.Scan(
			&o.ID, &o.SupplierID, &o.Status, &o.Total, &o.Notes,
			&o.RequestedAt, &o.EstimatedAt, &o.ReceivedAt, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// CreateLine persiste una línea.
func (r *PurchaseOrderRepo) CreateLine(line *entity.PurchaseOrderLine) error {
	query := `
		INSERT INTO purchase_order_lines (id, order_id, supply_id, quantity, unit_price, subtotal, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.OrderID, line.SupplyID, line.Quantity, line.UnitPrice,
		line.Subtotal, line.CreatedAt, line.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert purchase order line: %w", err)
	}
	return nil
}

// GetLine obtiene una línea por ID.
func (r *PurchaseOrderRepo) GetLine(id string) (*entity.PurchaseOrderLine, error) {
	query := `
		SELECT id, order_id, supply_id, quantity, unit_price, subtotal, created_at, updated_at
		FROM purchase_order_lines WHERE id = $1`
	var l entity.PurchaseOrderLine
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&l.ID, &l.OrderID, &l.SupplyID, &l.Quantity, &l.UnitPrice, &l.Subtotal, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order line: %w", err)
	}
	return &l, nil
}

// UpdateLine persiste cantidad, precio y subtotal de la línea.
func (r *PurchaseOrderRepo) UpdateLine(line *entity.PurchaseOrderLine) error {
	query := `
		UPDATE purchase_order_lines SET quantity = $2, unit_price = $3, subtotal = $4, updated_at = $5
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		line.ID, line.Quantity, line.UnitPrice, line.Subtotal, line.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase order line: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteLine elimina una línea.
func (r *PurchaseOrderRepo) DeleteLine(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM purchase_order_lines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete purchase order line: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListLines lista las líneas de una orden en orden de creación.
func (r *PurchaseOrderRepo) ListLines(orderID string) ([]*entity.PurchaseOrderLine, error) {
	query := `
		SELECT id, order_id, supply_id, quantity, unit_price, subtotal, created_at, updated_at
		FROM purchase_order_lines WHERE order_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list purchase order lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrderLine
	for rows.Next() {
		var l entity.PurchaseOrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.SupplyID, &l.Quantity, &l.UnitPrice, &l.Subtotal, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase order line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
