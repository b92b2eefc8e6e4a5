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

var _ repository.StockAlertRepository = (*StockAlertRepo)(nil)

// StockAlertRepo implementación del puerto StockAlertRepository sobre
// PostgreSQL. Las alertas nunca se borran.
type StockAlertRepo struct {
	q Querier
}

// NewStockAlertRepository construye el adaptador de persistencia para alertas.
func NewStockAlertRepository(q Querier) *StockAlertRepo {
	return &StockAlertRepo{q: q}
}

const alertColumns = `id, item_type, item_id, location, message, level, threshold, status,
		created_at, viewed_at, viewed_by, resolved_at, resolved_by`

// Create persiste una alerta nueva.
func (r *StockAlertRepo) Create(alert *entity.StockAlert) error {
	query := `
		INSERT INTO stock_alerts (id, item_type, item_id, location, message, level, threshold, status,
			created_at, viewed_at, viewed_by, resolved_at, resolved_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		alert.ID, alert.ItemType, alert.ItemID, alert.Location, alert.Message,
		alert.Level, alert.Threshold, alert.Status,
		alert.CreatedAt, alert.ViewedAt, alert.ViewedBy, alert.ResolvedAt, alert.ResolvedBy,
	)
	if err != nil {
		return fmt.Errorf("insert stock alert: %w", err)
	}
	return nil
}

// GetByID obtiene una alerta por ID.
func (r *StockAlertRepo) GetByID(id string) (*entity.StockAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM stock_alerts WHERE id = $1`
	var a entity.StockAlert
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.ItemType, &a.ItemID, &a.Location, &a.Message, &a.Level, &a.Threshold, &a.Status,
		&a.CreatedAt, &a.ViewedAt, &a.ViewedBy, &a.ResolvedAt, &a.ResolvedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock alert: %w", err)
	}
	return &a, nil
}

// Update persiste una transición de estado de la alerta.
func (r *StockAlertRepo) Update(alert *entity.StockAlert) error {
	query := `
		UPDATE stock_alerts SET status = $2, viewed_at = $3, viewed_by = $4, resolved_at = $5, resolved_by = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		alert.ID, alert.Status, alert.ViewedAt, alert.ViewedBy, alert.ResolvedAt, alert.ResolvedBy,
	)
	if err != nil {
		return fmt.Errorf("update stock alert: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista alertas, opcionalmente filtradas por estado, más recientes primero.
func (r *StockAlertRepo) List(status string, limit, offset int) ([]*entity.StockAlert, error) {
	var (
		query string
		args  []any
	)
	if status != "" {
		query = `SELECT ` + alertColumns + ` FROM stock_alerts WHERE status = $1
			ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = []any{status, limit, offset}
	} else {
		query = `SELECT ` + alertColumns + ` FROM stock_alerts
			ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		args = []any{limit, offset}
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock alerts: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockAlert
	for rows.Next() {
		var a entity.StockAlert
		if err := rows.Scan(
			&a.ID, &a.ItemType, &a.ItemID, &a.Location, &a.Message, &a.Level, &a.Threshold, &a.Status,
			&a.CreatedAt, &a.ViewedAt, &a.ViewedBy, &a.ResolvedAt, &a.ResolvedBy,
		); err != nil {
			return nil, fmt.Errorf("scan stock alert: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// HasOpen indica si existe una alerta NUEVA para el ítem en la ubicación
// (política de deduplicación del escaneo).
func (r *StockAlertRepo) HasOpen(itemType, itemID, location string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM stock_alerts
			WHERE item_type = $1 AND item_id = $2 AND location = $3 AND status = 'NUEVA'
		)`
	var exists bool
	err := r.q.QueryRow(context.Background(), query, itemType, itemID, location).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check open alert: %w", err)
	}
	return exists, nil
}
