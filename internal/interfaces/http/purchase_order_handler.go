package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/textil-erp/internal/application/dto"
	"github.com/jhoicas/textil-erp/internal/application/orders"
)

// PurchaseOrderHandler maneja las órdenes de compra a proveedores.
type PurchaseOrderHandler struct {
	uc *orders.PurchaseUseCase
}

// NewPurchaseOrderHandler construye el handler.
func NewPurchaseOrderHandler(uc *orders.PurchaseUseCase) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{uc: uc}
}

// Create crea una orden de compra con sus líneas.
func (h *PurchaseOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, lines, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewPurchaseOrderResponse(order, lines))
}

// GetByID obtiene la orden con sus líneas.
func (h *PurchaseOrderHandler) GetByID(c *fiber.Ctx) error {
	order, lines, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewPurchaseOrderResponse(order, lines))
}

// List lista órdenes con filtro opcional por estado.
func (h *PurchaseOrderHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	list, err := h.uc.List(c.Context(), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, dto.NewPurchaseOrderResponse(o, nil))
	}
	return c.JSON(out)
}

// AddLine agrega una línea a una orden abierta.
func (h *PurchaseOrderHandler) AddLine(c *fiber.Ctx) error {
	var in dto.PurchaseLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if _, err := h.uc.AddLine(c.Context(), c.Params("id"), GetUserID(c), in); err != nil {
		return respondError(c, err)
	}
	return h.respondOrder(c, fiber.StatusCreated)
}

// UpdateLine modifica cantidad/precio de una línea de una orden abierta.
func (h *PurchaseOrderHandler) UpdateLine(c *fiber.Ctx) error {
	var in dto.UpdatePurchaseLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if _, err := h.uc.UpdateLine(c.Context(), c.Params("id"), c.Params("lineId"), in); err != nil {
		return respondError(c, err)
	}
	return h.respondOrder(c, fiber.StatusOK)
}

// RemoveLine elimina una línea de una orden abierta.
func (h *PurchaseOrderHandler) RemoveLine(c *fiber.Ctx) error {
	if err := h.uc.RemoveLine(c.Context(), c.Params("id"), c.Params("lineId")); err != nil {
		return respondError(c, err)
	}
	return h.respondOrder(c, fiber.StatusOK)
}

func (h *PurchaseOrderHandler) respondOrder(c *fiber.Ctx, status int) error {
	order, lines, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(status).JSON(dto.NewPurchaseOrderResponse(order, lines))
}

// Send transiciona la orden a ENVIADA al proveedor.
func (h *PurchaseOrderHandler) Send(c *fiber.Ctx) error {
	order, err := h.uc.Send(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewPurchaseOrderResponse(order, nil))
}

// Cancel anula la orden (irreversible).
func (h *PurchaseOrderHandler) Cancel(c *fiber.Ctx) error {
	order, err := h.uc.Cancel(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewPurchaseOrderResponse(order, nil))
}

// Receive registra la recepción (parcial o total) generando las entradas de
// inventario en la ubicación indicada.
func (h *PurchaseOrderHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceivePurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.Receive(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewPurchaseOrderResponse(order, nil))
}
