package orders_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/textil-erp/internal/application/dto"
	"github.com/jhoicas/textil-erp/internal/application/inventory"
	"github.com/jhoicas/textil-erp/internal/application/orders"
	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

type purchaseEnv struct {
	uc           *orders.PurchaseUseCase
	purchaseRepo *fakePurchaseRepo
	balanceRepo  *fakeBalanceRepo
	movementRepo *fakeMovementRepo
}

func buildPurchaseEnv() *purchaseEnv {
	purchaseRepo := newFakePurchaseRepo()
	balanceRepo := newFakeBalanceRepo()
	movementRepo := &fakeMovementRepo{}
	supplierRepo := &fakeSupplierRepo{suppliers: map[string]*entity.Supplier{
		"prov-1": {ID: "prov-1", NIT: "800333444", Name: "Textiles del Valle"},
	}}
	supplyRepo := &fakeSupplyRepo{supplies: map[string]*entity.Supply{
		"ins-1": {ID: "ins-1", Reference: "TEL-001", Name: "Tela algodón"},
		"ins-2": {ID: "ins-2", Reference: "BOT-001", Name: "Botones"},
	}}
	tx := &fakeTx{purchaseRepo: purchaseRepo, balanceRepo: balanceRepo, movementRepo: movementRepo}
	poster := inventory.NewUseCase(nil, balanceRepo, movementRepo, nil, supplyRepo)
	return &purchaseEnv{
		uc:           orders.NewPurchaseUseCase(tx, purchaseRepo, supplierRepo, supplyRepo, poster),
		purchaseRepo: purchaseRepo,
		balanceRepo:  balanceRepo,
		movementRepo: movementRepo,
	}
}

func (e *purchaseEnv) createOrder(t *testing.T, lines ...dto.PurchaseLineRequest) *entity.PurchaseOrder {
	t.Helper()
	order, _, err := e.uc.Create(context.Background(), "user-1", dto.CreatePurchaseOrderRequest{
		SupplierID: "prov-1",
		Lines:      lines,
	})
	require.NoError(t, err)
	return order
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestPurchaseCreate_TotalDesdeLasLineas(t *testing.T) {
	env := buildPurchaseEnv()

	order, lines, err := env.uc.Create(context.Background(), "user-1", dto.CreatePurchaseOrderRequest{
		SupplierID: "prov-1",
		Lines: []dto.PurchaseLineRequest{
			{SupplyID: "ins-1", Quantity: qty(100), UnitPrice: qty(1200)},
			{SupplyID: "ins-2", Quantity: qty(500), UnitPrice: qty(50)},
		},
	})
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, entity.PurchasePendiente, order.Status)
	// 100*1200 + 500*50
	assert.True(t, order.Total.Equal(qty(145000)))
}

func TestPurchaseCreate_ProveedorInexistente(t *testing.T) {
	env := buildPurchaseEnv()

	_, _, err := env.uc.Create(context.Background(), "user-1", dto.CreatePurchaseOrderRequest{
		SupplierID: "no-existe",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPurchaseCreate_PrecioNegativoInvalido(t *testing.T) {
	env := buildPurchaseEnv()

	_, _, err := env.uc.Create(context.Background(), "user-1", dto.CreatePurchaseOrderRequest{
		SupplierID: "prov-1",
		Lines:      []dto.PurchaseLineRequest{{SupplyID: "ins-1", Quantity: qty(1), UnitPrice: qty(-5)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Mutación de líneas
// ──────────────────────────────────────────────────────────────────────────────

func TestPurchaseAddLine_OrdenEnviadaSigueEditable(t *testing.T) {
	// A diferencia de la venta, la compra admite ajustes hasta la primera
	// recepción: el proveedor puede pedir cambios tras recibir la orden.
	env := buildPurchaseEnv()
	order := env.createOrder(t, dto.PurchaseLineRequest{SupplyID: "ins-1", Quantity: qty(1), UnitPrice: qty(100)})

	_, err := env.uc.Send(context.Background(), order.ID)
	require.NoError(t, err)

	_, err = env.uc.AddLine(context.Background(), order.ID, "user-1", dto.PurchaseLineRequest{
		SupplyID: "ins-2", Quantity: qty(1), UnitPrice: qty(100),
	})
	assert.NoError(t, err)
}

func TestPurchaseAddLine_OrdenRecibidaRechazada(t *testing.T) {
	env := buildPurchaseEnv()
	order := env.createOrder(t, dto.PurchaseLineRequest{SupplyID: "ins-1", Quantity: qty(10), UnitPrice: qty(100)})
	_, err := env.uc.Send(context.Background(), order.ID)
	require.NoError(t, err)

	lines, _ := env.purchaseRepo.ListLines(order.ID)
	_, err = env.uc.Receive(context.Background(), order.ID, "user-1", dto.ReceivePurchaseOrderRequest{
		Location: "BODEGA_PRINCIPAL",
		Lines:    []dto.ReceiveLineRequest{{LineID: lines[0].ID, Quantity: qty(4)}},
	})
	require.NoError(t, err)

	_, err = env.uc.AddLine(context.Background(), order.ID, "user-1", dto.PurchaseLineRequest{
		SupplyID: "ins-2", Quantity: qty(1), UnitPrice: qty(100),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestPurchaseUpdateLine_RecalculaTotal(t *testing.T) {
	env := buildPurchaseEnv()
	order := env.createOrder(t, dto.PurchaseLineRequest{SupplyID: "ins-1", Quantity: qty(10), UnitPrice: qty(1000)})
	lines, _ := env.purchaseRepo.ListLines(order.ID)
	require.Len(t, lines, 1)

	_, err := env.uc.UpdateLine(context.Background(), order.ID, lines[0].ID, dto.UpdatePurchaseLineRequest{
		Quantity: qty(20), UnitPrice: qty(900),
	})
	require.NoError(t, err)

	persisted, _ := env.purchaseRepo.GetByID(order.ID)
	assert.True(t, persisted.Total.Equal(qty(18000)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Recepción
// ──────────────────────────────────────────────────────────────────────────────

func TestPurchaseReceive_TotalGeneraEntradasYEstampaFecha(t *testing.T) {
	env := buildPurchaseEnv()
	order := env.createOrder(t,
		dto.PurchaseLineRequest{SupplyID: "ins-1", Quantity: qty(100), UnitPrice: qty(1200)},
		dto.PurchaseLineRequest{SupplyID: "ins-2", Quantity: qty(500), UnitPrice: qty(50)},
	)
	_, err := env.uc.Send(context.Background(), order.ID)
	require.NoError(t, err)

	received, err := env.uc.Receive(context.Background(), order.ID, "user-3", dto.ReceivePurchaseOrderRequest{
		Location: "BODEGA_PRINCIPAL",
		Total:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseRecibidaTotal, received.Status)
	require.NotNil(t, received.ReceivedAt)

	// la recepción crea los saldos que no existían y suma las cantidades
	b1, _ := env.balanceRepo.GetByItemLocation(entity.ItemTypeInsumo, "ins-1", "BODEGA_PRINCIPAL")
	b2, _ := env.balanceRepo.GetByItemLocation(entity.ItemTypeInsumo, "ins-2", "BODEGA_PRINCIPAL")
	require.NotNil(t, b1)
	require.NotNil(t, b2)
	assert.True(t, b1.Quantity.Equal(qty(100)))
	assert.True(t, b2.Quantity.Equal(qty(500)))

	require.Len(t, env.movementRepo.movements, 2)
	for _, m := range env.movementRepo.movements {
		assert.Equal(t, entity.MovementEntrada, m.Direction)
		assert.Contains(t, m.Description, order.ID)
	}
}

func TestPurchaseReceive_ParcialNoEstampaFecha(t *testing.T) {
	env := buildPurchaseEnv()
	order := env.createOrder(t, dto.PurchaseLineRequest{SupplyID: "ins-1", Quantity: qty(100), UnitPrice: qty(1200)})
	_, err := env.uc.Send(context.Background(), order.ID)
	require.NoError(t, err)

	lines, _ := env.purchaseRepo.ListLines(order.ID)
	received, err := env.uc.Receive(context.Background(), order.ID, "user-3", dto.ReceivePurchaseOrderRequest{
		Location: "BODEGA_PRINCIPAL",
		Lines:    []dto.ReceiveLineRequest{{LineID: lines[0].ID, Quantity: qty(40)}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseRecibidaParcial, received.Status)
	assert.Nil(t, received.ReceivedAt)

	b, _ := env.balanceRepo.GetByItemLocation(entity.ItemTypeInsumo, "ins-1", "BODEGA_PRINCIPAL")
	assert.True(t, b.Quantity.Equal(qty(40)), "solo entra lo recibido, no lo pedido")
}

func TestPurchaseReceive_ParcialLuegoTotal(t *testing.T) {
	env := buildPurchaseEnv()
	order := env.createOrder(t, dto.PurchaseLineRequest{SupplyID: "ins-1", Quantity: qty(100), UnitPrice: qty(1200)})
	_, err := env.uc.Send(context.Background(), order.ID)
	require.NoError(t, err)

	lines, _ := env.purchaseRepo.ListLines(order.ID)
	_, err = env.uc.Receive(context.Background(), order.ID, "user-3", dto.ReceivePurchaseOrderRequest{
		Location: "BODEGA_PRINCIPAL",
		Lines:    []dto.ReceiveLineRequest{{LineID: lines[0].ID, Quantity: qty(40)}},
	})
	require.NoError(t, err)

	received, err := env.uc.Receive(context.Background(), order.ID, "user-3", dto.ReceivePurchaseOrderRequest{
		Location: "BODEGA_PRINCIPAL",
		Total:    true,
		Lines:    []dto.ReceiveLineRequest{{LineID: lines[0].ID, Quantity: qty(60)}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseRecibidaTotal, received.Status)

	b, _ := env.balanceRepo.GetByItemLocation(entity.ItemTypeInsumo, "ins-1", "BODEGA_PRINCIPAL")
	assert.True(t, b.Quantity.Equal(qty(100)))
}

func TestPurchaseReceive_VariasParcialesAcumulan(t *testing.T) {
	env := buildPurchaseEnv()
	order := env.createOrder(t, dto.PurchaseLineRequest{SupplyID: "ins-1", Quantity: qty(100), UnitPrice: qty(1200)})
	_, err := env.uc.Send(context.Background(), order.ID)
	require.NoError(t, err)

	lines, _ := env.purchaseRepo.ListLines(order.ID)
	_, err = env.uc.Receive(context.Background(), order.ID, "user-3", dto.ReceivePurchaseOrderRequest{
		Location: "BODEGA_PRINCIPAL",
		Lines:    []dto.ReceiveLineRequest{{LineID: lines[0].ID, Quantity: qty(40)}},
	})
	require.NoError(t, err)

	// el proveedor entrega en varias tandas: cada parcial adicional es válida
	received, err := env.uc.Receive(context.Background(), order.ID, "user-3", dto.ReceivePurchaseOrderRequest{
		Location: "BODEGA_PRINCIPAL",
		Lines:    []dto.ReceiveLineRequest{{LineID: lines[0].ID, Quantity: qty(30)}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseRecibidaParcial, received.Status)
	assert.Nil(t, received.ReceivedAt)

	b, _ := env.balanceRepo.GetByItemLocation(entity.ItemTypeInsumo, "ins-1", "BODEGA_PRINCIPAL")
	assert.True(t, b.Quantity.Equal(qty(70)), "las parciales acumulan: 40 + 30")
	require.Len(t, env.movementRepo.movements, 2)
}

func TestPurchaseReceive_SinEnviarRechazada(t *testing.T) {
	env := buildPurchaseEnv()
	order := env.createOrder(t, dto.PurchaseLineRequest{SupplyID: "ins-1", Quantity: qty(10), UnitPrice: qty(100)})

	_, err := env.uc.Receive(context.Background(), order.ID, "user-1", dto.ReceivePurchaseOrderRequest{
		Location: "BODEGA_PRINCIPAL",
		Total:    true,
	})
	assert.ErrorIs(t, err, domain.ErrConflict, "no se recibe lo que no se ha enviado")
}

func TestPurchaseReceive_LineaAjenaInvalida(t *testing.T) {
	env := buildPurchaseEnv()
	order := env.createOrder(t, dto.PurchaseLineRequest{SupplyID: "ins-1", Quantity: qty(10), UnitPrice: qty(100)})
	_, err := env.uc.Send(context.Background(), order.ID)
	require.NoError(t, err)

	_, err = env.uc.Receive(context.Background(), order.ID, "user-1", dto.ReceivePurchaseOrderRequest{
		Location: "BODEGA_PRINCIPAL",
		Lines:    []dto.ReceiveLineRequest{{LineID: "linea-ajena", Quantity: qty(5)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPurchaseCancel_RecibidaTotalRechazada(t *testing.T) {
	env := buildPurchaseEnv()
	order := env.createOrder(t, dto.PurchaseLineRequest{SupplyID: "ins-1", Quantity: qty(10), UnitPrice: qty(100)})
	_, err := env.uc.Send(context.Background(), order.ID)
	require.NoError(t, err)
	_, err = env.uc.Receive(context.Background(), order.ID, "user-1", dto.ReceivePurchaseOrderRequest{
		Location: "BODEGA_PRINCIPAL",
		Total:    true,
	})
	require.NoError(t, err)

	_, err = env.uc.Cancel(context.Background(), order.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}
