package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/textil-erp/internal/application/dto"
	"github.com/jhoicas/textil-erp/internal/application/payments"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
)

// PaymentHandler maneja el libro de pagos y cobros.
type PaymentHandler struct {
	uc *payments.UseCase
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc *payments.UseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// Create registra una transacción. VENTAS solo puede registrar COBRO y
// COMPRAS solo PAGO; ADMIN registra ambos.
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	switch GetRole(c) {
	case entity.RoleVentas:
		if in.Kind != entity.PaymentCobro {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para este tipo de transacción"})
		}
	case entity.RoleCompras:
		if in.Kind != entity.PaymentPago {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para este tipo de transacción"})
		}
	}
	payment, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewPaymentResponse(payment))
}

// GetByID obtiene una transacción por ID.
func (h *PaymentHandler) GetByID(c *fiber.Ctx) error {
	payment, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewPaymentResponse(payment))
}

// List lista transacciones con filtros opcionales por tipo y estado.
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	list, err := h.uc.List(c.Context(), c.Query("kind"), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.NewPaymentResponse(p))
	}
	return c.JSON(out)
}

// Update corrige monto, método, referencia o confirma la transacción.
func (h *PaymentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	payment, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewPaymentResponse(payment))
}

// Cancel anula la transacción (irreversible, el registro se conserva).
func (h *PaymentHandler) Cancel(c *fiber.Ctx) error {
	payment, err := h.uc.Cancel(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewPaymentResponse(payment))
}
