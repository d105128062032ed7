package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-bodegas/internal/application/dto"
	"github.com/jhoicas/pos-bodegas/internal/application/returns"
)

// ReturnHandler expone la creación y consulta de devoluciones.
type ReturnHandler struct {
	uc *returns.UseCase
}

// NewReturnHandler construye el handler.
func NewReturnHandler(uc *returns.UseCase) *ReturnHandler {
	return &ReturnHandler{uc: uc}
}

// Create registra una devolución y reingresa el inventario.
func (h *ReturnHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if !WarehouseScopeAllowed(c, in.WarehouseID) {
		return warehouseScopeError(c)
	}
	resp, err := h.uc.CreateReturn(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return movementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List lista las devoluciones recientes de una bodega (?warehouse_id=).
func (h *ReturnHandler) List(c *fiber.Ctx) error {
	warehouseID := c.Query("warehouse_id")
	if warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id es requerido"})
	}
	if !WarehouseScopeAllowed(c, warehouseID) {
		return warehouseScopeError(c)
	}
	list, err := h.uc.ListReturns(c.Context(), GetCompanyID(c), warehouseID, c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return directoryError(c, err)
	}
	return c.JSON(list)
}
