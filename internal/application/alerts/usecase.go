package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

// Notifier publica alertas recién generadas hacia un canal externo
// (ej. webhook). El fallo de notificación no afecta el escaneo.
type Notifier interface {
	Notify(ctx context.Context, alerts []*entity.StockAlert) error
}

// UseCase escanea saldos contra su umbral y administra el ciclo de vida de
// las alertas: NUEVA → VISTA → RESUELTA, solo hacia adelante.
type UseCase struct {
	balanceRepo repository.InventoryBalanceRepository
	alertRepo   repository.StockAlertRepository
	dedupe      bool
}

// NewUseCase construye el monitor. dedupe=true suprime alertas mientras el
// ítem tenga una NUEVA abierta; false emite en cada escaneo (comportamiento
// histórico del sistema).
func NewUseCase(
	balanceRepo repository.InventoryBalanceRepository,
	alertRepo repository.StockAlertRepository,
	dedupe bool,
) *UseCase {
	return &UseCase{balanceRepo: balanceRepo, alertRepo: alertRepo, dedupe: dedupe}
}

// Scan recorre todos los saldos con umbral configurado y genera una alerta
// por cada uno cuya cantidad esté por debajo. Nivel y umbral quedan
// capturados al momento del escaneo. Devuelve las alertas creadas.
func (uc *UseCase) Scan(ctx context.Context) ([]*entity.StockAlert, error) {
	balances, err := uc.balanceRepo.ListBelowThreshold()
	if err != nil {
		return nil, err
	}

	var created []*entity.StockAlert
	now := time.Now()
	for _, b := range balances {
		if uc.dedupe {
			open, err := uc.alertRepo.HasOpen(b.ItemType, b.ItemID, b.Location)
			if err != nil {
				return created, err
			}
			if open {
				continue
			}
		}
		alert := &entity.StockAlert{
			ID:       uuid.New().String(),
			ItemType: b.ItemType,
			ItemID:   b.ItemID,
			Location: b.Location,
			Message: fmt.Sprintf("stock por debajo del umbral mínimo en %s: %s de %s",
				b.Location, b.Quantity.String(), b.Threshold.String()),
			Level:     b.Quantity,
			Threshold: b.Threshold,
			Status:    entity.AlertNueva,
			CreatedAt: now,
		}
		if err := uc.alertRepo.Create(alert); err != nil {
			return created, err
		}
		created = append(created, alert)
	}
	return created, nil
}

// MarkViewed marca la alerta como VISTA estampando usuario y fecha.
func (uc *UseCase) MarkViewed(_ context.Context, alertID, userID string) (*entity.StockAlert, error) {
	return uc.transition(alertID, userID, entity.AlertVista)
}

// MarkResolved marca la alerta como RESUELTA estampando usuario y fecha.
// Es válido resolver directamente desde NUEVA.
func (uc *UseCase) MarkResolved(_ context.Context, alertID, userID string) (*entity.StockAlert, error) {
	return uc.transition(alertID, userID, entity.AlertResuelta)
}

func (uc *UseCase) transition(alertID, userID, to string) (*entity.StockAlert, error) {
	alert, err := uc.alertRepo.GetByID(alertID)
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.CanAlertTransition(alert.Status, to) {
		return nil, domain.ErrConflict
	}
	now := time.Now()
	alert.Status = to
	switch to {
	case entity.AlertVista:
		alert.ViewedAt = &now
		alert.ViewedBy = userID
	case entity.AlertResuelta:
		alert.ResolvedAt = &now
		alert.ResolvedBy = userID
	}
	if err := uc.alertRepo.Update(alert); err != nil {
		return nil, err
	}
	return alert, nil
}

// Get obtiene una alerta por ID.
func (uc *UseCase) Get(_ context.Context, alertID string) (*entity.StockAlert, error) {
	alert, err := uc.alertRepo.GetByID(alertID)
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, domain.ErrNotFound
	}
	return alert, nil
}

// List lista alertas con filtro opcional por estado.
func (uc *UseCase) List(_ context.Context, status string, limit, offset int) ([]*entity.StockAlert, error) {
	return uc.alertRepo.List(status, limit, offset)
}
