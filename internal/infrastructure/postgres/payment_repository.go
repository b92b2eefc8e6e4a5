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

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación del puerto PaymentRepository sobre PostgreSQL.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador de persistencia para transacciones financieras.
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `id, kind, sales_order_id, purchase_order_id, amount, method, reference, status,
		registered_at, effective_at, created_at, updated_at`

// Create persiste una transacción.
func (r *PaymentRepo) Create(payment *entity.PaymentTransaction) error {
	query := `
		INSERT INTO payment_transactions (id, kind, sales_order_id, purchase_order_id, amount, method,
			reference, status, registered_at, effective_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.Kind, payment.SalesOrderID, payment.PurchaseOrderID,
		payment.Amount, payment.Method, payment.Reference, payment.Status,
		payment.RegisteredAt, payment.EffectiveAt, payment.CreatedAt, payment.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID obtiene una transacción por ID.
func (r *PaymentRepo) GetByID(id string) (*entity.PaymentTransaction, error) {
	query := `SELECT ` + paymentColumns + ` FROM payment_transactions WHERE id = $1`
	var p entity.PaymentTransaction
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Kind, &p.SalesOrderID, &p.PurchaseOrderID, &p.Amount, &p.Method,
		&p.Reference, &p.Status, &p.RegisteredAt, &p.EffectiveAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &p, nil
}

// Update persiste la transacción completa.
func (r *PaymentRepo) Update(payment *entity.PaymentTransaction) error {
	query := `
		UPDATE payment_transactions SET amount = $2, method = $3, reference = $4, status = $5,
			effective_at = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.Amount, payment.Method, payment.Reference,
		payment.Status, payment.EffectiveAt, payment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista transacciones con filtros opcionales por tipo y estado, más recientes primero.
func (r *PaymentRepo) List(kind, status string, limit, offset int) ([]*entity.PaymentTransaction, error) {
	query := `SELECT ` + paymentColumns + ` FROM payment_transactions WHERE 1=1`
	args := []any{}
	if kind != "" {
		args = append(args, kind)
		query += fmt.Sprintf(" AND kind = $%d", len(args))
	}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY registered_at DESC LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.PaymentTransaction
	for rows.Next() {
		var p entity.PaymentTransaction
		if err := rows.Scan(
			&p.ID, &p.Kind, &p.SalesOrderID, &p.PurchaseOrderID, &p.Amount, &p.Method,
			&p.Reference, &p.Status, &p.RegisteredAt, &p.EffectiveAt, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
