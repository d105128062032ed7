package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-bodegas/internal/application/dto"
	"github.com/jhoicas/pos-bodegas/internal/application/transfers"
	"github.com/jhoicas/pos-bodegas/internal/domain"
	"github.com/jhoicas/pos-bodegas/internal/domain/repository"
)

// TransferHandler expone el flujo de traslados entre bodegas.
type TransferHandler struct {
	wf *transfers.Workflow
}

// NewTransferHandler construye el handler.
func NewTransferHandler(wf *transfers.Workflow) *TransferHandler {
	return &TransferHandler{wf: wf}
}

// Create registra un traslado en estado PENDING. No mueve inventario.
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if !WarehouseScopeAllowed(c, in.FromWarehouseID) {
		return warehouseScopeError(c)
	}
	resp, err := h.wf.Create(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return directoryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID consulta un traslado con sus líneas.
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.wf.Get(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return directoryError(c, err)
	}
	return c.JSON(resp)
}

// List lista traslados con filtros opcionales status/warehouse_id/direction.
func (h *TransferHandler) List(c *fiber.Ctx) error {
	filter := repository.TransferFilter{
		Status:      c.Query("status"),
		WarehouseID: c.Query("warehouse_id"),
		Direction:   c.Query("direction"),
	}
	if filter.WarehouseID != "" && !WarehouseScopeAllowed(c, filter.WarehouseID) {
		return warehouseScopeError(c)
	}
	list, err := h.wf.List(c.Context(), GetCompanyID(c), filter, c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return directoryError(c, err)
	}
	return c.JSON(list)
}

// Approve aprueba un traslado PENDING y mueve el inventario entre bodegas.
func (h *TransferHandler) Approve(c *fiber.Ctx) error {
	resp, err := h.wf.Approve(c.Context(), GetCompanyID(c), GetUserID(c), c.Params("id"))
	if err != nil {
		return transferDecisionError(c, err, fiber.StatusBadRequest)
	}
	return c.JSON(resp)
}

// Reject rechaza un traslado PENDING sin mover inventario. Un traslado ya
// resuelto responde 404, igual que uno inexistente.
func (h *TransferHandler) Reject(c *fiber.Ctx) error {
	resp, err := h.wf.Reject(c.Context(), GetCompanyID(c), GetUserID(c), c.Params("id"))
	if err != nil {
		return transferDecisionError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(resp)
}

// transferDecisionError mapea los errores de aprobar/rechazar un traslado.
// notPendingStatus es el código HTTP para un traslado fuera de PENDING:
// 400 al aprobar, 404 al rechazar.
func transferDecisionError(c *fiber.Ctx, err error, notPendingStatus int) error {
	var insufficient *domain.InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: insufficient.Error(),
		})
	case errors.Is(err, domain.ErrInvalidState):
		return c.Status(notPendingStatus).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "el traslado ya fue resuelto"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto de concurrencia, reintente la operación"})
	default:
		return directoryError(c, err)
	}
}
