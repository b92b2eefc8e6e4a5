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

var _ repository.InventoryBalanceRepository = (*InventoryBalanceRepo)(nil)

// InventoryBalanceRepo implementación del puerto InventoryBalanceRepository
// sobre PostgreSQL (usable con pool o tx).
type InventoryBalanceRepo struct {
	q Querier
}

// NewInventoryBalanceRepository construye el adaptador de persistencia para saldos.
func NewInventoryBalanceRepository(q Querier) *InventoryBalanceRepo {
	return &InventoryBalanceRepo{q: q}
}

const balanceColumns = `id, item_type, item_id, location, quantity, threshold, updated_at`

// Create persiste un nuevo saldo. Duplicado por (item_type, item_id, location)
// devuelve ErrDuplicate.
func (r *InventoryBalanceRepo) Create(balance *entity.InventoryBalance) error {
	query := `
		INSERT INTO inventory_balances (id, item_type, item_id, location, quantity, threshold, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		balance.ID, balance.ItemType, balance.ItemID, balance.Location,
		balance.Quantity, balance.Threshold, balance.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert inventory balance: %w", err)
	}
	return nil
}

// GetByID obtiene un saldo por ID.
func (r *InventoryBalanceRepo) GetByID(id string) (*entity.InventoryBalance, error) {
	query := `SELECT ` + balanceColumns + ` FROM inventory_balances WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene un saldo bloqueando la fila (SELECT FOR UPDATE).
// Solo tiene sentido con un Querier transaccional: serializa movimientos
// concurrentes sobre el mismo saldo.
func (r *InventoryBalanceRepo) GetForUpdate(id string) (*entity.InventoryBalance, error) {
	query := `SELECT ` + balanceColumns + ` FROM inventory_balances WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByItemLocation obtiene el saldo de un ítem en una ubicación.
func (r *InventoryBalanceRepo) GetByItemLocation(itemType, itemID, location string) (*entity.InventoryBalance, error) {
	query := `
		SELECT ` + balanceColumns + ` FROM inventory_balances
		WHERE item_type = $1 AND item_id = $2 AND location = $3`
	return r.scanOne(r.q.QueryRow(context.Background(), query, itemType, itemID, location))
}

func (r *InventoryBalanceRepo) scanOne(row pgx.Row) (*entity.InventoryBalance, error) {
	var b entity.InventoryBalance
	err := row.Scan(&b.ID, &b.ItemType, &b.ItemID, &b.Location, &b.Quantity, &b.Threshold, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory balance: %w", err)
	}
	return &b, nil
}

// List lista saldos con paginación.
func (r *InventoryBalanceRepo) List(limit, offset int) ([]*entity.InventoryBalance, error) {
	query := `
		SELECT ` + balanceColumns + ` FROM inventory_balances
		ORDER BY item_type, item_id, location LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory balances: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListBelowThreshold lista los saldos con umbral configurado cuyo nivel cayó
// por debajo de él (insumo del escaneo de alertas).
func (r *InventoryBalanceRepo) ListBelowThreshold() ([]*entity.InventoryBalance, error) {
	query := `
		SELECT ` + balanceColumns + ` FROM inventory_balances
		WHERE threshold > 0 AND quantity < threshold
		ORDER BY item_type, item_id, location`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list balances below threshold: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *InventoryBalanceRepo) scanMany(rows pgx.Rows) ([]*entity.InventoryBalance, error) {
	var list []*entity.InventoryBalance
	for rows.Next() {
		var b entity.InventoryBalance
		if err := rows.Scan(&b.ID, &b.ItemType, &b.ItemID, &b.Location, &b.Quantity, &b.Threshold, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory balance: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// UpdateQuantity fija la cantidad del saldo. Solo se invoca dentro de la
// transacción que registró el movimiento correspondiente.
func (r *InventoryBalanceRepo) UpdateQuantity(id string, quantity decimal.Decimal) error {
	query := `UPDATE inventory_balances SET quantity = $2, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, id, quantity)
	if err != nil {
		return fmt.Errorf("update balance quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateThresholdByItem aplica el umbral a todos los saldos del ítem en
// todas las ubicaciones. Devuelve cuántas filas afectó.
func (r *InventoryBalanceRepo) UpdateThresholdByItem(itemType, itemID string, threshold decimal.Decimal) (int64, error) {
	query := `
		UPDATE inventory_balances SET threshold = $3, updated_at = now()
		WHERE item_type = $1 AND item_id = $2`
	cmd, err := r.q.Exec(context.Background(), query, itemType, itemID, threshold)
	if err != nil {
		return 0, fmt.Errorf("update threshold by item: %w", err)
	}
	return cmd.RowsAffected(), nil
}
