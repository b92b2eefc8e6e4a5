package orders_test

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

// Fakes en memoria compartidos por los tests de venta y compra.

type fakeSalesRepo struct {
	orders map[string]*entity.SalesOrder
	lines  map[string]*entity.SalesOrderLine
}

func newFakeSalesRepo() *fakeSalesRepo {
	return &fakeSalesRepo{
		orders: map[string]*entity.SalesOrder{},
		lines:  map[string]*entity.SalesOrderLine{},
	}
}

func (r *fakeSalesRepo) Create(o *entity.SalesOrder) error {
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeSalesRepo) GetByID(id string) (*entity.SalesOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeSalesRepo) GetForUpdate(id string) (*entity.SalesOrder, error) {
	return r.GetByID(id)
}

func (r *fakeSalesRepo) Update(o *entity.SalesOrder) error {
	if _, ok := r.orders[o.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeSalesRepo) UpdateTotal(id string, total decimal.Decimal) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Total = total
	return nil
}

func (r *fakeSalesRepo) List(status string, limit, offset int) ([]*entity.SalesOrder, error) {
	var out []*entity.SalesOrder
	for _, o := range r.orders {
		if status == "" || o.Status == status {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSalesRepo) CreateLine(l *entity.SalesOrderLine) error {
	cp := *l
	r.lines[l.ID] = &cp
	return nil
}

func (r *fakeSalesRepo) GetLine(id string) (*entity.SalesOrderLine, error) {
	l, ok := r.lines[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *fakeSalesRepo) UpdateLine(l *entity.SalesOrderLine) error {
	if _, ok := r.lines[l.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *l
	r.lines[l.ID] = &cp
	return nil
}

func (r *fakeSalesRepo) DeleteLine(id string) error {
	if _, ok := r.lines[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.lines, id)
	return nil
}

func (r *fakeSalesRepo) ListLines(orderID string) ([]*entity.SalesOrderLine, error) {
	var out []*entity.SalesOrderLine
	for _, l := range r.lines {
		if l.OrderID == orderID {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakePurchaseRepo struct {
	orders map[string]*entity.PurchaseOrder
	lines  map[string]*entity.PurchaseOrderLine
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{
		orders: map[string]*entity.PurchaseOrder{},
		lines:  map[string]*entity.PurchaseOrderLine{},
	}
}

func (r *fakePurchaseRepo) Create(o *entity.PurchaseOrder) error {
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakePurchaseRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakePurchaseRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(id)
}

func (r *fakePurchaseRepo) Update(o *entity.PurchaseOrder) error {
	if _, ok := r.orders[o.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakePurchaseRepo) UpdateTotal(id string, total decimal.Decimal) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Total = total
	return nil
}

func (r *fakePurchaseRepo) List(status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, o := range r.orders {
		if status == "" || o.Status == status {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePurchaseRepo) CreateLine(l *entity.PurchaseOrderLine) error {
	cp := *l
	r.lines[l.ID] = &cp
	return nil
}

func (r *fakePurchaseRepo) GetLine(id string) (*entity.PurchaseOrderLine, error) {
	l, ok := r.lines[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *fakePurchaseRepo) UpdateLine(l *entity.PurchaseOrderLine) error {
	if _, ok := r.lines[l.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *l
	r.lines[l.ID] = &cp
	return nil
}

func (r *fakePurchaseRepo) DeleteLine(id string) error {
	if _, ok := r.lines[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.lines, id)
	return nil
}

func (r *fakePurchaseRepo) ListLines(orderID string) ([]*entity.PurchaseOrderLine, error) {
	var out []*entity.PurchaseOrderLine
	for _, l := range r.lines {
		if l.OrderID == orderID {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeClientRepo struct {
	clients map[string]*entity.Client
}

func (r *fakeClientRepo) Create(c *entity.Client) error { r.clients[c.ID] = c; return nil }
func (r *fakeClientRepo) GetByID(id string) (*entity.Client, error) {
	return r.clients[id], nil
}
func (r *fakeClientRepo) GetByDocument(string) (*entity.Client, error) { return nil, nil }
func (r *fakeClientRepo) Update(c *entity.Client) error                { r.clients[c.ID] = c; return nil }
func (r *fakeClientRepo) List(int, int) ([]*entity.Client, error)      { return nil, nil }
func (r *fakeClientRepo) Delete(id string) error                       { delete(r.clients, id); return nil }

type fakeSupplierRepo struct {
	suppliers map[string]*entity.Supplier
}

func (r *fakeSupplierRepo) Create(s *entity.Supplier) error { r.suppliers[s.ID] = s; return nil }
func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	return r.suppliers[id], nil
}
func (r *fakeSupplierRepo) GetByNIT(string) (*entity.Supplier, error) { return nil, nil }
func (r *fakeSupplierRepo) Update(s *entity.Supplier) error           { r.suppliers[s.ID] = s; return nil }
func (r *fakeSupplierRepo) List(int, int) ([]*entity.Supplier, error) { return nil, nil }
func (r *fakeSupplierRepo) Delete(id string) error                    { delete(r.suppliers, id); return nil }

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *fakeProductRepo) GetByReference(string) (*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Update(p *entity.Product) error                 { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) List(int, int) ([]*entity.Product, error)       { return nil, nil }
func (r *fakeProductRepo) Delete(id string) error                         { delete(r.products, id); return nil }

type fakeSupplyRepo struct {
	supplies map[string]*entity.Supply
}

func (r *fakeSupplyRepo) Create(s *entity.Supply) error { r.supplies[s.ID] = s; return nil }
func (r *fakeSupplyRepo) GetByID(id string) (*entity.Supply, error) {
	return r.supplies[id], nil
}
func (r *fakeSupplyRepo) GetByReference(string) (*entity.Supply, error) { return nil, nil }
func (r *fakeSupplyRepo) Update(s *entity.Supply) error                 { r.supplies[s.ID] = s; return nil }
func (r *fakeSupplyRepo) List(int, int) ([]*entity.Supply, error)       { return nil, nil }
func (r *fakeSupplyRepo) Delete(id string) error                        { delete(r.supplies, id); return nil }

type fakeBalanceRepo struct {
	balances map[string]*entity.InventoryBalance
}

func newFakeBalanceRepo() *fakeBalanceRepo {
	return &fakeBalanceRepo{balances: map[string]*entity.InventoryBalance{}}
}

func (r *fakeBalanceRepo) Create(b *entity.InventoryBalance) error {
	cp := *b
	r.balances[b.ID] = &cp
	return nil
}

func (r *fakeBalanceRepo) GetByID(id string) (*entity.InventoryBalance, error) {
	b, ok := r.balances[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBalanceRepo) GetForUpdate(id string) (*entity.InventoryBalance, error) {
	return r.GetByID(id)
}

func (r *fakeBalanceRepo) GetByItemLocation(itemType, itemID, location string) (*entity.InventoryBalance, error) {
	for _, b := range r.balances {
		if b.ItemType == itemType && b.ItemID == itemID && b.Location == location {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeBalanceRepo) List(int, int) ([]*entity.InventoryBalance, error) { return nil, nil }
func (r *fakeBalanceRepo) ListBelowThreshold() ([]*entity.InventoryBalance, error) {
	return nil, nil
}

func (r *fakeBalanceRepo) UpdateQuantity(id string, quantity decimal.Decimal) error {
	b, ok := r.balances[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.Quantity = quantity
	return nil
}

func (r *fakeBalanceRepo) UpdateThresholdByItem(string, string, decimal.Decimal) (int64, error) {
	return 0, nil
}

type fakeMovementRepo struct {
	movements []*entity.InventoryMovement
}

func (r *fakeMovementRepo) Create(m *entity.InventoryMovement) error {
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) ListByBalance(balanceID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.movements {
		if m.BalanceID == balanceID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) SumByBalance(balanceID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, m := range r.movements {
		if m.BalanceID == balanceID {
			sum = sum.Add(m.Signed())
		}
	}
	return sum, nil
}

// fakeTx pasa los mismos repos en memoria a la función transaccional.
type fakeTx struct {
	salesRepo    *fakeSalesRepo
	purchaseRepo *fakePurchaseRepo
	balanceRepo  *fakeBalanceRepo
	movementRepo *fakeMovementRepo
}

func (tx *fakeTx) RunSales(_ context.Context, fn func(
	repository.SalesOrderRepository,
	repository.InventoryBalanceRepository,
	repository.InventoryMovementRepository,
) error) error {
	return fn(tx.salesRepo, tx.balanceRepo, tx.movementRepo)
}

func (tx *fakeTx) RunPurchase(_ context.Context, fn func(
	repository.PurchaseOrderRepository,
	repository.InventoryBalanceRepository,
	repository.InventoryMovementRepository,
) error) error {
	return fn(tx.purchaseRepo, tx.balanceRepo, tx.movementRepo)
}
