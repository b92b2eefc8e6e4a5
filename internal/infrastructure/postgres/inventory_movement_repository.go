package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación del puerto InventoryMovementRepository
// sobre PostgreSQL. El historial es solo inserción.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador de persistencia para movimientos.
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento inmutable.
func (r *InventoryMovementRepo) Create(movement *entity.InventoryMovement) error {
	query := `
		INSERT INTO inventory_movements (id, balance_id, direction, quantity, description, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.BalanceID, movement.Direction, movement.Quantity,
		movement.Description, movement.CreatedAt, movement.CreatedBy,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert inventory movement: %w", err)
	}
	return nil
}

// ListByBalance lista los movimientos de un saldo, más recientes primero.
// El id desempata movimientos con el mismo created_at para un orden estable.
func (r *InventoryMovementRepo) ListByBalance(balanceID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT id, balance_id, direction, quantity, description, created_at, created_by
		FROM inventory_movements WHERE balance_id = $1
		ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, balanceID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		if err := rows.Scan(&m.ID, &m.BalanceID, &m.Direction, &m.Quantity, &m.Description, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan inventory movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// SumByBalance devuelve la suma con signo de los movimientos del saldo
// (ENTRADA positiva, SALIDA negativa) para la reconciliación.
func (r *InventoryMovementRepo) SumByBalance(balanceID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN direction = 'SALIDA' THEN -quantity ELSE quantity END), 0)
		FROM inventory_movements WHERE balance_id = $1`
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, balanceID).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum inventory movements: %w", err)
	}
	return sum, nil
}
