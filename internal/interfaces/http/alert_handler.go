package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/textil-erp/internal/application/alerts"
	"github.com/jhoicas/textil-erp/internal/application/dto"
)

// AlertHandler maneja las alertas de stock bajo umbral.
type AlertHandler struct {
	uc *alerts.UseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *alerts.UseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// List lista alertas con filtro opcional por estado.
func (h *AlertHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	list, err := h.uc.List(c.Context(), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.AlertResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.NewAlertResponse(a))
	}
	return c.JSON(out)
}

// GetByID obtiene una alerta por ID.
func (h *AlertHandler) GetByID(c *fiber.Ctx) error {
	alert, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewAlertResponse(alert))
}

// MarkViewed marca la alerta como VISTA.
func (h *AlertHandler) MarkViewed(c *fiber.Ctx) error {
	alert, err := h.uc.MarkViewed(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewAlertResponse(alert))
}

// MarkResolved marca la alerta como RESUELTA.
func (h *AlertHandler) MarkResolved(c *fiber.Ctx) error {
	alert, err := h.uc.MarkResolved(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewAlertResponse(alert))
}

// Scan dispara manualmente el escaneo de stock (además del cron).
func (h *AlertHandler) Scan(c *fiber.Ctx) error {
	created, err := h.uc.Scan(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.AlertResponse, 0, len(created))
	for _, a := range created {
		out = append(out, dto.NewAlertResponse(a))
	}
	return c.JSON(out)
}
