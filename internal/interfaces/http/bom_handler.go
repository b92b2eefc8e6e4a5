package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/textil-erp/internal/application/catalog"
	"github.com/jhoicas/textil-erp/internal/application/dto"
)

// BOMHandler maneja la lista de materiales anidada bajo productos.
type BOMHandler struct {
	uc *catalog.BOMUseCase
}

// NewBOMHandler construye el handler.
func NewBOMHandler(uc *catalog.BOMUseCase) *BOMHandler {
	return &BOMHandler{uc: uc}
}

// Upsert crea o reemplaza la cantidad de un insumo en la lista del producto.
func (h *BOMHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertBOMItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.Upsert(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewBOMItemResponse(item))
}

// List lista la lista de materiales del producto.
func (h *BOMHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.BOMItemResponse, 0, len(list))
	for _, b := range list {
		out = append(out, dto.NewBOMItemResponse(b))
	}
	return c.JSON(out)
}

// Delete retira un insumo de la lista de materiales del producto.
func (h *BOMHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id"), c.Params("supplyId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
