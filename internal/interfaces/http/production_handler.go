package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/textil-erp/internal/application/dto"
	"github.com/jhoicas/textil-erp/internal/application/production"
)

// ProductionHandler maneja las órdenes de producción y sus tareas.
type ProductionHandler struct {
	uc *production.UseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc *production.UseCase) *ProductionHandler {
	return &ProductionHandler{uc: uc}
}

// Create crea una orden de producción, opcionalmente ligada a una orden de
// venta (que avanza a EN_PRODUCCION en la misma transacción).
func (h *ProductionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductionOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewProductionOrderResponse(order, nil))
}

// GetByID obtiene la orden con sus tareas.
func (h *ProductionHandler) GetByID(c *fiber.Ctx) error {
	order, tasks, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewProductionOrderResponse(order, tasks))
}

// List lista órdenes con filtro opcional por estado.
func (h *ProductionHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	list, err := h.uc.List(c.Context(), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ProductionOrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, dto.NewProductionOrderResponse(o, nil))
	}
	return c.JSON(out)
}

// AddTask agrega una tarea a la orden. La primera tarea arranca la orden.
func (h *ProductionHandler) AddTask(c *fiber.Ctx) error {
	var in dto.CreateTaskRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	task, err := h.uc.AddTask(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewTaskResponse(task))
}

// UpdateTask actualiza estado, asignación o fechas de una tarea.
func (h *ProductionHandler) UpdateTask(c *fiber.Ctx) error {
	var in dto.UpdateTaskRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	task, err := h.uc.UpdateTask(c.Context(), c.Params("id"), c.Params("taskId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewTaskResponse(task))
}

// ConsumeMaterials descuenta los insumos de la lista de materiales de la
// orden de venta ligada, desde la ubicación indicada.
func (h *ProductionHandler) ConsumeMaterials(c *fiber.Ctx) error {
	var in dto.ConsumeMaterialsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.ConsumeMaterials(c.Context(), c.Params("id"), GetUserID(c), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Finish transiciona la orden a TERMINADA. Requiere todas las tareas en
// estado terminal.
func (h *ProductionHandler) Finish(c *fiber.Ctx) error {
	order, err := h.uc.Finish(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewProductionOrderResponse(order, nil))
}

// Cancel anula la orden bloqueando sus tareas no terminales.
func (h *ProductionHandler) Cancel(c *fiber.Ctx) error {
	order, err := h.uc.Cancel(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewProductionOrderResponse(order, nil))
}
