package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/textil-erp/internal/application/inventory"
	"github.com/jhoicas/textil-erp/internal/application/orders"
	"github.com/jhoicas/textil-erp/internal/application/production"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

// Ensure TxRunner implements the application tx ports.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ orders.SalesTxRunner = (*TxRunner)(nil)
var _ orders.PurchaseTxRunner = (*TxRunner)(nil)
var _ production.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repos de inventario y hace Commit o
// Rollback según el resultado de fn.
func (r *TxRunner) Run(ctx context.Context, fn func(
	balanceRepo repository.InventoryBalanceRepository,
	movementRepo repository.InventoryMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	balanceRepo := NewInventoryBalanceRepository(tx)
	movementRepo := NewInventoryMovementRepository(tx)

	if err := fn(balanceRepo, movementRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSales inicia una transacción con repos de venta e inventario (la
// entrega descuenta stock atómicamente).
func (r *TxRunner) RunSales(ctx context.Context, fn func(
	orderRepo repository.SalesOrderRepository,
	balanceRepo repository.InventoryBalanceRepository,
	movementRepo repository.InventoryMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderRepo := NewSalesOrderRepository(tx)
	balanceRepo := NewInventoryBalanceRepository(tx)
	movementRepo := NewInventoryMovementRepository(tx)

	if err := fn(orderRepo, balanceRepo, movementRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunPurchase inicia una transacción con repos de compra e inventario (la
// recepción suma stock atómicamente).
func (r *TxRunner) RunPurchase(ctx context.Context, fn func(
	orderRepo repository.PurchaseOrderRepository,
	balanceRepo repository.InventoryBalanceRepository,
	movementRepo repository.InventoryMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderRepo := NewPurchaseOrderRepository(tx)
	balanceRepo := NewInventoryBalanceRepository(tx)
	movementRepo := NewInventoryMovementRepository(tx)

	if err := fn(orderRepo, balanceRepo, movementRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunProduction inicia una transacción con repos de producción, venta e
// inventario (creación ligada a venta, consumo de insumos y anulación en
// cascada).
func (r *TxRunner) RunProduction(ctx context.Context, fn func(
	productionRepo repository.ProductionRepository,
	salesRepo repository.SalesOrderRepository,
	balanceRepo repository.InventoryBalanceRepository,
	movementRepo repository.InventoryMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	productionRepo := NewProductionRepository(tx)
	salesRepo := NewSalesOrderRepository(tx)
	balanceRepo := NewInventoryBalanceRepository(tx)
	movementRepo := NewInventoryMovementRepository(tx)

	if err := fn(productionRepo, salesRepo, balanceRepo, movementRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
