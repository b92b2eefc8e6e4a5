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

var _ repository.BOMRepository = (*BOMRepo)(nil)

// BOMRepo implementación del puerto BOMRepository sobre PostgreSQL.
type BOMRepo struct {
	q Querier
}

// NewBOMRepository construye el adaptador de persistencia para la lista de materiales.
func NewBOMRepository(q Querier) *BOMRepo {
	return &BOMRepo{q: q}
}

// Upsert crea o reemplaza la entrada por clave compuesta (producto, insumo).
func (r *BOMRepo) Upsert(item *entity.BOMItem) error {
	query := `
		INSERT INTO bom_items (product_id, supply_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id, supply_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		item.ProductID, item.SupplyID, item.Quantity, item.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("upsert bom item: %w", err)
	}
	return nil
}

// Get obtiene una entrada por clave compuesta.
func (r *BOMRepo) Get(productID, supplyID string) (*entity.BOMItem, error) {
	query := `
		SELECT product_id, supply_id, quantity, updated_at
		FROM bom_items WHERE product_id = $1 AND supply_id = $2`
	var b entity.BOMItem
	err := r.q.QueryRow(context.Background(), query, productID, supplyID).Scan(
		&b.ProductID, &b.SupplyID, &b.Quantity, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bom item: %w", err)
	}
	return &b, nil
}

// ListByProduct lista la lista de materiales de un producto.
func (r *BOMRepo) ListByProduct(productID string) ([]*entity.BOMItem, error) {
	query := `
		SELECT product_id, supply_id, quantity, updated_at
		FROM bom_items WHERE product_id = $1 ORDER BY supply_id`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list bom items: %w", err)
	}
	defer rows.Close()
	var list []*entity.BOMItem
	for rows.Next() {
		var b entity.BOMItem
		if err := rows.Scan(&b.ProductID, &b.SupplyID, &b.Quantity, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan bom item: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// Delete retira un insumo de la lista de materiales del producto.
func (r *BOMRepo) Delete(productID, supplyID string) error {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM bom_items WHERE product_id = $1 AND supply_id = $2`, productID, supplyID)
	if err != nil {
		return fmt.Errorf("delete bom item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
