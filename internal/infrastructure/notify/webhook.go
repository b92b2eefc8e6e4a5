package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jhoicas/textil-erp/internal/application/alerts"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
)

var _ alerts.Notifier = (*WebhookNotifier)(nil)

// WebhookNotifier publica las alertas generadas por el escaneo a un webhook
// HTTP (JSON). El endpoint lo define ALERT_WEBHOOK_URL.
type WebhookNotifier struct {
	client *resty.Client
	url    string
}

// NewWebhookNotifier construye el notificador con timeout y reintentos.
func NewWebhookNotifier(url string) *WebhookNotifier {
	client := resty.New().
		SetHeader("Content-Type", "application/json").
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(2 * time.Second)
	return &WebhookNotifier{client: client, url: url}
}

// alertPayload es el cuerpo JSON enviado al webhook por cada escaneo.
type alertPayload struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Count       int            `json:"count"`
	Alerts      []alertSummary `json:"alerts"`
}

type alertSummary struct {
	ID        string `json:"id"`
	ItemType  string `json:"item_type"`
	ItemID    string `json:"item_id"`
	Location  string `json:"location"`
	Message   string `json:"message"`
	Level     string `json:"level"`
	Threshold string `json:"threshold"`
}

// Notify envía el lote de alertas. Sin alertas no hace nada.
func (n *WebhookNotifier) Notify(ctx context.Context, list []*entity.StockAlert) error {
	if len(list) == 0 {
		return nil
	}
	payload := alertPayload{
		GeneratedAt: time.Now(),
		Count:       len(list),
		Alerts:      make([]alertSummary, 0, len(list)),
	}
	for _, a := range list {
		payload.Alerts = append(payload.Alerts, alertSummary{
			ID:        a.ID,
			ItemType:  a.ItemType,
			ItemID:    a.ItemID,
			Location:  a.Location,
			Message:   a.Message,
			Level:     a.Level.String(),
			Threshold: a.Threshold.String(),
		})
	}
	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("post alert webhook: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("alert webhook respondió %d", resp.StatusCode())
	}
	return nil
}
