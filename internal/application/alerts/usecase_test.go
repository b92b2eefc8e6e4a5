package alerts_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/textil-erp/internal/application/alerts"
	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeBalanceRepo struct {
	balances []*entity.InventoryBalance
}

func (r *fakeBalanceRepo) Create(*entity.InventoryBalance) error        { return nil }
func (r *fakeBalanceRepo) GetByID(string) (*entity.InventoryBalance, error) { return nil, nil }
func (r *fakeBalanceRepo) GetForUpdate(string) (*entity.InventoryBalance, error) {
	return nil, nil
}
func (r *fakeBalanceRepo) GetByItemLocation(string, string, string) (*entity.InventoryBalance, error) {
	return nil, nil
}
func (r *fakeBalanceRepo) List(int, int) ([]*entity.InventoryBalance, error) { return nil, nil }
func (r *fakeBalanceRepo) ListBelowThreshold() ([]*entity.InventoryBalance, error) {
	var out []*entity.InventoryBalance
	for _, b := range r.balances {
		if b.BelowThreshold() {
			out = append(out, b)
		}
	}
	return out, nil
}
func (r *fakeBalanceRepo) UpdateQuantity(string, decimal.Decimal) error { return nil }
func (r *fakeBalanceRepo) UpdateThresholdByItem(string, string, decimal.Decimal) (int64, error) {
	return 0, nil
}

type fakeAlertRepo struct {
	alerts map[string]*entity.StockAlert
}

func newFakeAlertRepo() *fakeAlertRepo {
	return &fakeAlertRepo{alerts: map[string]*entity.StockAlert{}}
}

func (r *fakeAlertRepo) Create(a *entity.StockAlert) error {
	cp := *a
	r.alerts[a.ID] = &cp
	return nil
}

func (r *fakeAlertRepo) GetByID(id string) (*entity.StockAlert, error) {
	a, ok := r.alerts[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAlertRepo) Update(a *entity.StockAlert) error {
	if _, ok := r.alerts[a.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *a
	r.alerts[a.ID] = &cp
	return nil
}

func (r *fakeAlertRepo) List(status string, limit, offset int) ([]*entity.StockAlert, error) {
	var out []*entity.StockAlert
	for _, a := range r.alerts {
		if status == "" || a.Status == status {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeAlertRepo) HasOpen(itemType, itemID, location string) (bool, error) {
	for _, a := range r.alerts {
		if a.ItemType == itemType && a.ItemID == itemID && a.Location == location && a.Status == entity.AlertNueva {
			return true, nil
		}
	}
	return false, nil
}

func lowBalance(itemID string, qty, threshold int64) *entity.InventoryBalance {
	return &entity.InventoryBalance{
		ID:        "bal-" + itemID,
		ItemType:  entity.ItemTypeInsumo,
		ItemID:    itemID,
		Location:  "BODEGA_PRINCIPAL",
		Quantity:  decimal.NewFromInt(qty),
		Threshold: decimal.NewFromInt(threshold),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Scan
// ──────────────────────────────────────────────────────────────────────────────

func TestScan_GeneraAlertaPorSaldoBajoUmbral(t *testing.T) {
	balanceRepo := &fakeBalanceRepo{balances: []*entity.InventoryBalance{
		lowBalance("ins-1", 5, 10),
		lowBalance("ins-2", 50, 10), // por encima del umbral, no alerta
	}}
	alertRepo := newFakeAlertRepo()
	uc := alerts.NewUseCase(balanceRepo, alertRepo, true)

	created, err := uc.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, created, 1)

	a := created[0]
	assert.Equal(t, "ins-1", a.ItemID)
	assert.Equal(t, entity.AlertNueva, a.Status)
	assert.True(t, a.Level.Equal(decimal.NewFromInt(5)), "la alerta captura el nivel al momento del escaneo")
	assert.True(t, a.Threshold.Equal(decimal.NewFromInt(10)))
	assert.Contains(t, a.Message, "BODEGA_PRINCIPAL")
}

func TestScan_UmbralCeroNoAlerta(t *testing.T) {
	balanceRepo := &fakeBalanceRepo{balances: []*entity.InventoryBalance{
		lowBalance("ins-1", 0, 0),
	}}
	uc := alerts.NewUseCase(balanceRepo, newFakeAlertRepo(), true)

	created, err := uc.Scan(context.Background())
	require.NoError(t, err)
	assert.Empty(t, created, "umbral cero deshabilita la alerta aun con saldo cero")
}

func TestScan_DedupeSuprimeMientrasHayaNuevaAbierta(t *testing.T) {
	balanceRepo := &fakeBalanceRepo{balances: []*entity.InventoryBalance{
		lowBalance("ins-1", 5, 10),
	}}
	alertRepo := newFakeAlertRepo()
	uc := alerts.NewUseCase(balanceRepo, alertRepo, true)

	first, err := uc.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := uc.Scan(context.Background())
	require.NoError(t, err)
	assert.Empty(t, second, "mientras haya una alerta NUEVA abierta no se repite")

	// resuelta la alerta, el siguiente escaneo vuelve a emitir
	_, err = uc.MarkResolved(context.Background(), first[0].ID, "user-1")
	require.NoError(t, err)

	third, err := uc.Scan(context.Background())
	require.NoError(t, err)
	assert.Len(t, third, 1)
}

func TestScan_SinDedupeEmiteEnCadaEscaneo(t *testing.T) {
	balanceRepo := &fakeBalanceRepo{balances: []*entity.InventoryBalance{
		lowBalance("ins-1", 5, 10),
	}}
	uc := alerts.NewUseCase(balanceRepo, newFakeAlertRepo(), false)

	first, _ := uc.Scan(context.Background())
	second, _ := uc.Scan(context.Background())
	assert.Len(t, first, 1)
	assert.Len(t, second, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida
// ──────────────────────────────────────────────────────────────────────────────

func seedAlert(t *testing.T, uc *alerts.UseCase) *entity.StockAlert {
	t.Helper()
	created, err := uc.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, created, 1)
	return created[0]
}

func TestMarkViewed_EstampaUsuarioYFecha(t *testing.T) {
	balanceRepo := &fakeBalanceRepo{balances: []*entity.InventoryBalance{lowBalance("ins-1", 5, 10)}}
	alertRepo := newFakeAlertRepo()
	uc := alerts.NewUseCase(balanceRepo, alertRepo, true)
	a := seedAlert(t, uc)

	viewed, err := uc.MarkViewed(context.Background(), a.ID, "user-7")
	require.NoError(t, err)
	assert.Equal(t, entity.AlertVista, viewed.Status)
	assert.Equal(t, "user-7", viewed.ViewedBy)
	require.NotNil(t, viewed.ViewedAt)
}

func TestMarkResolved_DesdeNuevaEsValido(t *testing.T) {
	balanceRepo := &fakeBalanceRepo{balances: []*entity.InventoryBalance{lowBalance("ins-1", 5, 10)}}
	uc := alerts.NewUseCase(balanceRepo, newFakeAlertRepo(), true)
	a := seedAlert(t, uc)

	resolved, err := uc.MarkResolved(context.Background(), a.ID, "user-7")
	require.NoError(t, err)
	assert.Equal(t, entity.AlertResuelta, resolved.Status)
	assert.Equal(t, "user-7", resolved.ResolvedBy)
	require.NotNil(t, resolved.ResolvedAt)
}

func TestMarkViewed_NoRetrocedeDesdeResuelta(t *testing.T) {
	balanceRepo := &fakeBalanceRepo{balances: []*entity.InventoryBalance{lowBalance("ins-1", 5, 10)}}
	uc := alerts.NewUseCase(balanceRepo, newFakeAlertRepo(), true)
	a := seedAlert(t, uc)

	_, err := uc.MarkResolved(context.Background(), a.ID, "user-7")
	require.NoError(t, err)

	_, err = uc.MarkViewed(context.Background(), a.ID, "user-7")
	assert.ErrorIs(t, err, domain.ErrConflict, "una alerta resuelta no vuelve a VISTA")
}

func TestMarkViewed_AlertaInexistente(t *testing.T) {
	uc := alerts.NewUseCase(&fakeBalanceRepo{}, newFakeAlertRepo(), true)

	_, err := uc.MarkViewed(context.Background(), "no-existe", "user-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
