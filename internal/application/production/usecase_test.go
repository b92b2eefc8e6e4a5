package production_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/textil-erp/internal/application/dto"
	"github.com/jhoicas/textil-erp/internal/application/inventory"
	"github.com/jhoicas/textil-erp/internal/application/production"
	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductionRepo struct {
	orders map[string]*entity.ProductionOrder
	tasks  map[string]*entity.ProductionTask
}

func newFakeProductionRepo() *fakeProductionRepo {
	return &fakeProductionRepo{
		orders: map[string]*entity.ProductionOrder{},
		tasks:  map[string]*entity.ProductionTask{},
	}
}

func (r *fakeProductionRepo) Create(o *entity.ProductionOrder) error {
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeProductionRepo) GetByID(id string) (*entity.ProductionOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeProductionRepo) GetForUpdate(id string) (*entity.ProductionOrder, error) {
	return r.GetByID(id)
}

func (r *fakeProductionRepo) Update(o *entity.ProductionOrder) error {
	if _, ok := r.orders[o.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeProductionRepo) List(status string, limit, offset int) ([]*entity.ProductionOrder, error) {
	var out []*entity.ProductionOrder
	for _, o := range r.orders {
		if status == "" || o.Status == status {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductionRepo) CreateTask(t *entity.ProductionTask) error {
	cp := *t
	r.tasks[t.ID] = &cp
	return nil
}

func (r *fakeProductionRepo) GetTask(id string) (*entity.ProductionTask, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeProductionRepo) UpdateTask(t *entity.ProductionTask) error {
	if _, ok := r.tasks[t.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *t
	r.tasks[t.ID] = &cp
	return nil
}

func (r *fakeProductionRepo) ListTasks(orderID string) ([]*entity.ProductionTask, error) {
	var out []*entity.ProductionTask
	for _, t := range r.tasks {
		if t.OrderID == orderID {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

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

func (r *fakeSalesRepo) List(string, int, int) ([]*entity.SalesOrder, error) { return nil, nil }

func (r *fakeSalesRepo) CreateLine(l *entity.SalesOrderLine) error {
	cp := *l
	r.lines[l.ID] = &cp
	return nil
}

func (r *fakeSalesRepo) GetLine(id string) (*entity.SalesOrderLine, error) { return nil, nil }
func (r *fakeSalesRepo) UpdateLine(*entity.SalesOrderLine) error           { return nil }
func (r *fakeSalesRepo) DeleteLine(string) error                           { return nil }

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

type fakeBOMRepo struct {
	items map[string][]*entity.BOMItem // por producto
}

func (r *fakeBOMRepo) Upsert(item *entity.BOMItem) error {
	r.items[item.ProductID] = append(r.items[item.ProductID], item)
	return nil
}

func (r *fakeBOMRepo) Get(string, string) (*entity.BOMItem, error) { return nil, nil }

func (r *fakeBOMRepo) ListByProduct(productID string) ([]*entity.BOMItem, error) {
	var out []*entity.BOMItem
	for _, item := range r.items[productID] {
		cp := *item
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeBOMRepo) Delete(string, string) error { return nil }

type fakeEmployeeRepo struct {
	employees map[string]*entity.Employee
}

func (r *fakeEmployeeRepo) Create(e *entity.Employee) error { r.employees[e.ID] = e; return nil }
func (r *fakeEmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	return r.employees[id], nil
}
func (r *fakeEmployeeRepo) GetByEmail(string) (*entity.Employee, error) { return nil, nil }
func (r *fakeEmployeeRepo) Update(e *entity.Employee) error             { r.employees[e.ID] = e; return nil }
func (r *fakeEmployeeRepo) List(int, int) ([]*entity.Employee, error)   { return nil, nil }
func (r *fakeEmployeeRepo) Delete(id string) error                      { delete(r.employees, id); return nil }

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
	productionRepo *fakeProductionRepo
	salesRepo      *fakeSalesRepo
	balanceRepo    *fakeBalanceRepo
	movementRepo   *fakeMovementRepo
}

func (tx *fakeTx) RunProduction(_ context.Context, fn func(
	repository.ProductionRepository,
	repository.SalesOrderRepository,
	repository.InventoryBalanceRepository,
	repository.InventoryMovementRepository,
) error) error {
	return fn(tx.productionRepo, tx.salesRepo, tx.balanceRepo, tx.movementRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado del entorno
// ──────────────────────────────────────────────────────────────────────────────

type prodEnv struct {
	uc             *production.UseCase
	productionRepo *fakeProductionRepo
	salesRepo      *fakeSalesRepo
	bomRepo        *fakeBOMRepo
	balanceRepo    *fakeBalanceRepo
	movementRepo   *fakeMovementRepo
}

// buildProdEnv arma el caso de uso con una venta CONFIRMADA so-1 de dos
// líneas (prod-1 x10, prod-2 x5), lista de materiales para ambos productos
// y un empleado emp-1. Requerimiento total: ins-1 = 2*10 + 1*5 = 25,
// ins-2 = 0.5*10 = 5.
func buildProdEnv(t *testing.T) *prodEnv {
	t.Helper()
	productionRepo := newFakeProductionRepo()
	salesRepo := newFakeSalesRepo()
	balanceRepo := newFakeBalanceRepo()
	movementRepo := &fakeMovementRepo{}
	bomRepo := &fakeBOMRepo{items: map[string][]*entity.BOMItem{
		"prod-1": {
			{ProductID: "prod-1", SupplyID: "ins-1", Quantity: decimal.NewFromInt(2)},
			{ProductID: "prod-1", SupplyID: "ins-2", Quantity: decimal.NewFromFloat(0.5)},
		},
		"prod-2": {
			{ProductID: "prod-2", SupplyID: "ins-1", Quantity: decimal.NewFromInt(1)},
		},
	}}
	employeeRepo := &fakeEmployeeRepo{employees: map[string]*entity.Employee{
		"emp-1": {ID: "emp-1", Name: "Operaria", Role: entity.RoleProduccion},
	}}

	now := time.Now()
	require.NoError(t, salesRepo.Create(&entity.SalesOrder{
		ID:        "so-1",
		Status:    entity.SalesConfirmada,
		CreatedAt: now,
		UpdatedAt: now,
	}))
	require.NoError(t, salesRepo.CreateLine(&entity.SalesOrderLine{
		ID: "line-1", OrderID: "so-1", ProductID: "prod-1", Quantity: decimal.NewFromInt(10),
	}))
	require.NoError(t, salesRepo.CreateLine(&entity.SalesOrderLine{
		ID: "line-2", OrderID: "so-1", ProductID: "prod-2", Quantity: decimal.NewFromInt(5),
	}))

	tx := &fakeTx{
		productionRepo: productionRepo,
		salesRepo:      salesRepo,
		balanceRepo:    balanceRepo,
		movementRepo:   movementRepo,
	}
	poster := inventory.NewUseCase(nil, balanceRepo, movementRepo, nil, nil)
	uc := production.NewUseCase(tx, productionRepo, salesRepo, bomRepo, employeeRepo, poster)
	return &prodEnv{
		uc:             uc,
		productionRepo: productionRepo,
		salesRepo:      salesRepo,
		bomRepo:        bomRepo,
		balanceRepo:    balanceRepo,
		movementRepo:   movementRepo,
	}
}

func (e *prodEnv) seedStock(t *testing.T, supplyID string, qty int64) {
	t.Helper()
	require.NoError(t, e.balanceRepo.Create(&entity.InventoryBalance{
		ID:       "bal-" + supplyID,
		ItemType: entity.ItemTypeInsumo,
		ItemID:   supplyID,
		Location: "BODEGA_PRINCIPAL",
		Quantity: decimal.NewFromInt(qty),
	}))
}

func (e *prodEnv) createOrder(t *testing.T, salesOrderID *string) *entity.ProductionOrder {
	t.Helper()
	order, err := e.uc.Create(context.Background(), dto.CreateProductionOrderRequest{
		SalesOrderID: salesOrderID,
	})
	require.NoError(t, err)
	return order
}

func (e *prodEnv) addTask(t *testing.T, orderID, name string) *entity.ProductionTask {
	t.Helper()
	task, err := e.uc.AddTask(context.Background(), orderID, dto.CreateTaskRequest{Name: name})
	require.NoError(t, err)
	return task
}

func strPtr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestProductionCreate_AvanzaVentaConfirmada(t *testing.T) {
	env := buildProdEnv(t)

	order := env.createOrder(t, strPtr("so-1"))
	assert.Equal(t, entity.ProductionPendiente, order.Status)

	sales, err := env.salesRepo.GetByID("so-1")
	require.NoError(t, err)
	assert.Equal(t, entity.SalesEnProduccion, sales.Status,
		"crear la orden de producción avanza la venta CONFIRMADA")
}

func TestProductionCreate_VentaYaEnProduccionNoCambia(t *testing.T) {
	env := buildProdEnv(t)
	env.createOrder(t, strPtr("so-1"))

	// una segunda orden sobre la misma venta EN_PRODUCCION es válida
	second := env.createOrder(t, strPtr("so-1"))
	assert.Equal(t, entity.ProductionPendiente, second.Status)

	sales, _ := env.salesRepo.GetByID("so-1")
	assert.Equal(t, entity.SalesEnProduccion, sales.Status)
}

func TestProductionCreate_VentaPendienteRechazada(t *testing.T) {
	env := buildProdEnv(t)
	now := time.Now()
	require.NoError(t, env.salesRepo.Create(&entity.SalesOrder{
		ID: "so-pend", Status: entity.SalesPendiente, CreatedAt: now, UpdatedAt: now,
	}))

	_, err := env.uc.Create(context.Background(), dto.CreateProductionOrderRequest{
		SalesOrderID: strPtr("so-pend"),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestProductionCreate_VentaInexistente(t *testing.T) {
	env := buildProdEnv(t)

	_, err := env.uc.Create(context.Background(), dto.CreateProductionOrderRequest{
		SalesOrderID: strPtr("no-existe"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductionCreate_SinVentaLigada(t *testing.T) {
	env := buildProdEnv(t)

	order := env.createOrder(t, nil)
	assert.Nil(t, order.SalesOrderID)
	assert.Equal(t, entity.ProductionPendiente, order.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tareas
// ──────────────────────────────────────────────────────────────────────────────

func TestAddTask_PrimeraTareaArrancaLaOrden(t *testing.T) {
	env := buildProdEnv(t)
	order := env.createOrder(t, nil)

	task := env.addTask(t, order.ID, "Corte")
	assert.Equal(t, entity.TaskPendiente, task.Status)

	stored, err := env.productionRepo.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductionEnProceso, stored.Status)
	require.NotNil(t, stored.ActualStart, "la primera tarea estampa el inicio real")
}

func TestAddTask_SegundaTareaNoReestampaInicio(t *testing.T) {
	env := buildProdEnv(t)
	order := env.createOrder(t, nil)
	env.addTask(t, order.ID, "Corte")

	first, _ := env.productionRepo.GetByID(order.ID)
	env.addTask(t, order.ID, "Confección")
	second, _ := env.productionRepo.GetByID(order.ID)

	assert.Equal(t, entity.ProductionEnProceso, second.Status)
	assert.Equal(t, *first.ActualStart, *second.ActualStart)
}

func TestAddTask_NombreVacioInvalido(t *testing.T) {
	env := buildProdEnv(t)
	order := env.createOrder(t, nil)

	_, err := env.uc.AddTask(context.Background(), order.ID, dto.CreateTaskRequest{Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddTask_EmpleadoInexistente(t *testing.T) {
	env := buildProdEnv(t)
	order := env.createOrder(t, nil)

	_, err := env.uc.AddTask(context.Background(), order.ID, dto.CreateTaskRequest{
		Name:       "Corte",
		EmployeeID: strPtr("no-existe"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddTask_OrdenAnuladaRechazada(t *testing.T) {
	env := buildProdEnv(t)
	order := env.createOrder(t, nil)
	_, err := env.uc.Cancel(context.Background(), order.ID)
	require.NoError(t, err)

	_, err = env.uc.AddTask(context.Background(), order.ID, dto.CreateTaskRequest{Name: "Corte"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdateTask_TransicionValida(t *testing.T) {
	env := buildProdEnv(t)
	order := env.createOrder(t, nil)
	task := env.addTask(t, order.ID, "Corte")

	updated, err := env.uc.UpdateTask(context.Background(), order.ID, task.ID, dto.UpdateTaskRequest{
		Status: strPtr(entity.TaskEnCurso),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TaskEnCurso, updated.Status)
}

func TestUpdateTask_TransicionInvalida(t *testing.T) {
	env := buildProdEnv(t)
	order := env.createOrder(t, nil)
	task := env.addTask(t, order.ID, "Corte")

	_, err := env.uc.UpdateTask(context.Background(), order.ID, task.ID, dto.UpdateTaskRequest{
		Status: strPtr(entity.TaskCompletada),
	})
	require.NoError(t, err)

	_, err = env.uc.UpdateTask(context.Background(), order.ID, task.ID, dto.UpdateTaskRequest{
		Status: strPtr(entity.TaskEnCurso),
	})
	assert.ErrorIs(t, err, domain.ErrConflict, "una tarea completada no vuelve atrás")
}

func TestUpdateTask_InicioRealPasaAEnCurso(t *testing.T) {
	env := buildProdEnv(t)
	order := env.createOrder(t, nil)
	task := env.addTask(t, order.ID, "Corte")

	started := time.Now()
	updated, err := env.uc.UpdateTask(context.Background(), order.ID, task.ID, dto.UpdateTaskRequest{
		StartedAt: &started,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TaskEnCurso, updated.Status)
}

func TestUpdateTask_FinRealCompletaLaTarea(t *testing.T) {
	env := buildProdEnv(t)
	order := env.createOrder(t, nil)
	task := env.addTask(t, order.ID, "Corte")

	ended := time.Now()
	updated, err := env.uc.UpdateTask(context.Background(), order.ID, task.ID, dto.UpdateTaskRequest{
		EndedAt: &ended,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TaskCompletada, updated.Status,
		"fin real sin estado explícito completa la tarea")
}

func TestUpdateTask_TareaDeOtraOrden(t *testing.T) {
	env := buildProdEnv(t)
	orderA := env.createOrder(t, nil)
	orderB := env.createOrder(t, nil)
	task := env.addTask(t, orderA.ID, "Corte")

	_, err := env.uc.UpdateTask(context.Background(), orderB.ID, task.ID, dto.UpdateTaskRequest{
		Status: strPtr(entity.TaskEnCurso),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consumo de materiales
// ──────────────────────────────────────────────────────────────────────────────

func TestConsumeMaterials_ExplotaBOMYDescuentaStock(t *testing.T) {
	env := buildProdEnv(t)
	env.seedStock(t, "ins-1", 100)
	env.seedStock(t, "ins-2", 50)
	order := env.createOrder(t, strPtr("so-1"))

	err := env.uc.ConsumeMaterials(context.Background(), order.ID, "user-9", dto.ConsumeMaterialsRequest{
		Location: "BODEGA_PRINCIPAL",
	})
	require.NoError(t, err)

	b1, _ := env.balanceRepo.GetByID("bal-ins-1")
	b2, _ := env.balanceRepo.GetByID("bal-ins-2")
	assert.True(t, b1.Quantity.Equal(decimal.NewFromInt(75)), "ins-1: 100 - 25 = 75, saldo %s", b1.Quantity)
	assert.True(t, b2.Quantity.Equal(decimal.NewFromInt(45)), "ins-2: 50 - 5 = 45, saldo %s", b2.Quantity)

	movements, err := env.movementRepo.ListByBalance("bal-ins-1", 10, 0)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, entity.MovementSalida, movements[0].Direction)
	assert.Contains(t, movements[0].Description, order.ID)
	assert.Equal(t, "user-9", movements[0].CreatedBy)
}

func TestConsumeMaterials_StockInsuficienteRevierteTodo(t *testing.T) {
	env := buildProdEnv(t)
	env.seedStock(t, "ins-1", 100)
	env.seedStock(t, "ins-2", 3) // requiere 5
	order := env.createOrder(t, strPtr("so-1"))

	err := env.uc.ConsumeMaterials(context.Background(), order.ID, "user-9", dto.ConsumeMaterialsRequest{
		Location: "BODEGA_PRINCIPAL",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestConsumeMaterials_SinUbicacion(t *testing.T) {
	env := buildProdEnv(t)
	order := env.createOrder(t, strPtr("so-1"))

	err := env.uc.ConsumeMaterials(context.Background(), order.ID, "user-9", dto.ConsumeMaterialsRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConsumeMaterials_UbicacionSinSaldo(t *testing.T) {
	env := buildProdEnv(t)
	order := env.createOrder(t, strPtr("so-1"))

	err := env.uc.ConsumeMaterials(context.Background(), order.ID, "user-9", dto.ConsumeMaterialsRequest{
		Location: "BODEGA_NORTE",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConsumeMaterials_SinVentaLigada(t *testing.T) {
	env := buildProdEnv(t)
	order := env.createOrder(t, nil)

	err := env.uc.ConsumeMaterials(context.Background(), order.ID, "user-9", dto.ConsumeMaterialsRequest{
		Location: "BODEGA_PRINCIPAL",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConsumeMaterials_OrdenAnulada(t *testing.T) {
	env := buildProdEnv(t)
	order := env.createOrder(t, strPtr("so-1"))
	_, err := env.uc.Cancel(context.Background(), order.ID)
	require.NoError(t, err)

	err = env.uc.ConsumeMaterials(context.Background(), order.ID, "user-9", dto.ConsumeMaterialsRequest{
		Location: "BODEGA_PRINCIPAL",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Finish / Cancel
// ──────────────────────────────────────────────────────────────────────────────

func TestFinish_ConTareasTerminales(t *testing.T) {
	env := buildProdEnv(t)
	order := env.createOrder(t, nil)
	task := env.addTask(t, order.ID, "Corte")
	_, err := env.uc.UpdateTask(context.Background(), order.ID, task.ID, dto.UpdateTaskRequest{
		Status: strPtr(entity.TaskCompletada),
	})
	require.NoError(t, err)

	finished, err := env.uc.Finish(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductionTerminada, finished.Status)
	require.NotNil(t, finished.ActualEnd)
}

func TestFinish_ConTareaAbiertaRechazado(t *testing.T) {
	env := buildProdEnv(t)
	order := env.createOrder(t, nil)
	env.addTask(t, order.ID, "Corte") // queda PENDIENTE

	_, err := env.uc.Finish(context.Background(), order.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "terminar exige toda tarea en estado terminal")
}

func TestFinish_DesdePendienteRechazado(t *testing.T) {
	env := buildProdEnv(t)
	order := env.createOrder(t, nil)

	_, err := env.uc.Finish(context.Background(), order.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "una orden sin arrancar no puede terminarse")
}

func TestCancel_BloqueaTareasAbiertas(t *testing.T) {
	env := buildProdEnv(t)
	order := env.createOrder(t, nil)
	open := env.addTask(t, order.ID, "Corte")
	done := env.addTask(t, order.ID, "Confección")
	_, err := env.uc.UpdateTask(context.Background(), order.ID, done.ID, dto.UpdateTaskRequest{
		Status: strPtr(entity.TaskCompletada),
	})
	require.NoError(t, err)

	cancelled, err := env.uc.Cancel(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductionAnulada, cancelled.Status)

	blocked, _ := env.productionRepo.GetTask(open.ID)
	assert.Equal(t, entity.TaskBloqueada, blocked.Status)
	assert.Contains(t, blocked.Notes, "bloqueada por anulación de la orden")

	completed, _ := env.productionRepo.GetTask(done.ID)
	assert.Equal(t, entity.TaskCompletada, completed.Status, "las tareas terminales no se tocan")
}

func TestCancel_OrdenTerminadaRechazada(t *testing.T) {
	env := buildProdEnv(t)
	order := env.createOrder(t, nil)
	task := env.addTask(t, order.ID, "Corte")
	_, err := env.uc.UpdateTask(context.Background(), order.ID, task.ID, dto.UpdateTaskRequest{
		Status: strPtr(entity.TaskCompletada),
	})
	require.NoError(t, err)
	_, err = env.uc.Finish(context.Background(), order.ID)
	require.NoError(t, err)

	_, err = env.uc.Cancel(context.Background(), order.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}
