package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/textil-erp/internal/application/dto"
	"github.com/jhoicas/textil-erp/internal/application/orders"
)

// SalesOrderHandler maneja las órdenes de venta y su documento PDF.
type SalesOrderHandler struct {
	uc  *orders.SalesUseCase
	doc *orders.DocumentUseCase
}

// NewSalesOrderHandler construye el handler.
func NewSalesOrderHandler(uc *orders.SalesUseCase, doc *orders.DocumentUseCase) *SalesOrderHandler {
	return &SalesOrderHandler{uc: uc, doc: doc}
}

// Create crea una orden de venta con sus líneas.
func (h *SalesOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSalesOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, lines, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewSalesOrderResponse(order, lines))
}

// GetByID obtiene la orden con sus líneas.
func (h *SalesOrderHandler) GetByID(c *fiber.Ctx) error {
	order, lines, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewSalesOrderResponse(order, lines))
}

// List lista órdenes con filtro opcional por estado.
func (h *SalesOrderHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	list, err := h.uc.List(c.Context(), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.SalesOrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, dto.NewSalesOrderResponse(o, nil))
	}
	return c.JSON(out)
}

// AddLine agrega una línea a una orden abierta.
func (h *SalesOrderHandler) AddLine(c *fiber.Ctx) error {
	var in dto.SalesLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if _, err := h.uc.AddLine(c.Context(), c.Params("id"), GetUserID(c), in); err != nil {
		return respondError(c, err)
	}
	return h.respondOrder(c, fiber.StatusCreated)
}

// UpdateLine modifica cantidad/precio de una línea de una orden abierta.
func (h *SalesOrderHandler) UpdateLine(c *fiber.Ctx) error {
	var in dto.UpdateSalesLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if _, err := h.uc.UpdateLine(c.Context(), c.Params("id"), c.Params("lineId"), GetUserID(c), in); err != nil {
		return respondError(c, err)
	}
	return h.respondOrder(c, fiber.StatusOK)
}

// RemoveLine elimina una línea de una orden abierta.
func (h *SalesOrderHandler) RemoveLine(c *fiber.Ctx) error {
	if err := h.uc.RemoveLine(c.Context(), c.Params("id"), c.Params("lineId")); err != nil {
		return respondError(c, err)
	}
	return h.respondOrder(c, fiber.StatusOK)
}

// respondOrder devuelve la orden completa tras una mutación de línea, con el
// total ya recalculado desde las líneas persistidas.
func (h *SalesOrderHandler) respondOrder(c *fiber.Ctx, status int) error {
	order, lines, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(status).JSON(dto.NewSalesOrderResponse(order, lines))
}

// Confirm transiciona la orden a CONFIRMADA.
func (h *SalesOrderHandler) Confirm(c *fiber.Ctx) error {
	order, err := h.uc.Confirm(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewSalesOrderResponse(order, nil))
}

// Cancel anula la orden (irreversible).
func (h *SalesOrderHandler) Cancel(c *fiber.Ctx) error {
	order, err := h.uc.Cancel(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewSalesOrderResponse(order, nil))
}

// Deliver entrega la orden descontando stock de la ubicación indicada.
func (h *SalesOrderHandler) Deliver(c *fiber.Ctx) error {
	var in dto.DeliverSalesOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.Deliver(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewSalesOrderResponse(order, nil))
}

// Document genera y descarga el documento PDF de la orden.
func (h *SalesOrderHandler) Document(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.doc.DownloadOrderPDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}
