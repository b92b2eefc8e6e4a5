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

var _ repository.SupplyRepository = (*SupplyRepo)(nil)

// SupplyRepo implementación del puerto SupplyRepository sobre PostgreSQL.
type SupplyRepo struct {
	q Querier
}

// NewSupplyRepository construye el adaptador de persistencia para insumos.
func NewSupplyRepository(q Querier) *SupplyRepo {
	return &SupplyRepo{q: q}
}

// Create persiste un nuevo insumo.
func (r *SupplyRepo) Create(supply *entity.Supply) error {
	query := `
		INSERT INTO supplies (id, reference, name, unit, unit_cost, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		supply.ID, supply.Reference, supply.Name, supply.Unit, supply.UnitCost,
		supply.CreatedAt, supply.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supply: %w", err)
	}
	return nil
}

// GetByID obtiene un insumo por ID.
func (r *SupplyRepo) GetByID(id string) (*entity.Supply, error) {
	query := `
		SELECT id, reference, name, unit, unit_cost, created_at, updated_at
		FROM supplies WHERE id = $1`
	var s entity.Supply
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Reference, &s.Name, &s.Unit, &s.UnitCost, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supply: %w", err)
	}
	return &s, nil
}

// GetByReference obtiene un insumo por su referencia única.
func (r *SupplyRepo) GetByReference(reference string) (*entity.Supply, error) {
	query := `
		SELECT id, reference, name, unit, unit_cost, created_at, updated_at
		FROM supplies WHERE reference = $1`
	var s entity.Supply
	err := r.q.QueryRow(context.Background(), query, reference).Scan(
		&s.ID, &s.Reference, &s.Name, &s.Unit, &s.UnitCost, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supply by reference: %w", err)
	}
	return &s, nil
}

// Update actualiza un insumo. La referencia no se modifica.
func (r *SupplyRepo) Update(supply *entity.Supply) error {
	query := `
		UPDATE supplies SET name = $2, unit = $3, unit_cost = $4, updated_at = $5
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		supply.ID, supply.Name, supply.Unit, supply.UnitCost, supply.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update supply: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista insumos con paginación.
func (r *SupplyRepo) List(limit, offset int) ([]*entity.Supply, error) {
	query := `
		SELECT id, reference, name, unit, unit_cost, created_at, updated_at
		FROM supplies ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list supplies: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supply
	for rows.Next() {
		var s entity.Supply
		if err := rows.Scan(&s.ID, &s.Reference, &s.Name, &s.Unit, &s.UnitCost, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supply: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Delete elimina un insumo. Referenciado por BOM, compras o inventario devuelve ErrConflict.
func (r *SupplyRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM supplies WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete supply: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
