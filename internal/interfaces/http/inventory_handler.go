package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-bodegas/internal/application/dto"
	"github.com/jhoicas/pos-bodegas/internal/application/inventory"
	"github.com/jhoicas/pos-bodegas/internal/application/receipts"
	"github.com/jhoicas/pos-bodegas/internal/domain"
	"github.com/jhoicas/pos-bodegas/internal/domain/entity"
)

// InventoryHandler expone saldos, movimientos, recepciones y ajustes.
type InventoryHandler struct {
	inventoryUC *inventory.UseCase
	receiptsUC  *receipts.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(inventoryUC *inventory.UseCase, receiptsUC *receipts.UseCase) *InventoryHandler {
	return &InventoryHandler{inventoryUC: inventoryUC, receiptsUC: receiptsUC}
}

// ListInventory lista el inventario de una bodega (?warehouse_id=).
func (h *InventoryHandler) ListInventory(c *fiber.Ctx) error {
	warehouseID := c.Query("warehouse_id")
	if warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id es requerido"})
	}
	if !WarehouseScopeAllowed(c, warehouseID) {
		return warehouseScopeError(c)
	}
	items, err := h.inventoryUC.ListInventory(c.Context(), GetCompanyID(c), warehouseID, pageFromQuery(c))
	if err != nil {
		return directoryError(c, err)
	}
	return c.JSON(items)
}

// GetBalance consulta el saldo de un producto en una bodega.
func (h *InventoryHandler) GetBalance(c *fiber.Ctx) error {
	warehouseID := c.Params("warehouseId")
	if !WarehouseScopeAllowed(c, warehouseID) {
		return warehouseScopeError(c)
	}
	balance, err := h.inventoryUC.GetBalance(c.Context(), GetCompanyID(c), warehouseID, c.Params("productId"))
	if err != nil {
		return directoryError(c, err)
	}
	return c.JSON(balance)
}

// ListMovements lista el libro de movimientos de una bodega, con filtros
// opcionales from/to en RFC 3339.
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	warehouseID := c.Query("warehouse_id")
	if warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id es requerido"})
	}
	if !WarehouseScopeAllowed(c, warehouseID) {
		return warehouseScopeError(c)
	}
	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido, se espera RFC 3339"})
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido, se espera RFC 3339"})
		}
		to = &t
	}
	movements, err := h.inventoryUC.ListMovements(c.Context(), GetCompanyID(c), warehouseID, from, to, pageFromQuery(c))
	if err != nil {
		return directoryError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(out)
}

// Receive registra una recepción de mercancía (entrada RECEIPT).
func (h *InventoryHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if !WarehouseScopeAllowed(c, in.WarehouseID) {
		return warehouseScopeError(c)
	}
	resp, err := h.receiptsUC.Receive(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return movementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListReceipts lista las recepciones recientes de una bodega.
func (h *InventoryHandler) ListReceipts(c *fiber.Ctx) error {
	warehouseID := c.Query("warehouse_id")
	if warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id es requerido"})
	}
	if !WarehouseScopeAllowed(c, warehouseID) {
		return warehouseScopeError(c)
	}
	list, err := h.receiptsUC.ListRecent(c.Context(), GetCompanyID(c), warehouseID, c.QueryInt("limit"))
	if err != nil {
		return directoryError(c, err)
	}
	return c.JSON(list)
}

// Adjust fija la cantidad absoluta de un producto y registra el ADJUSTMENT.
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if !WarehouseScopeAllowed(c, in.WarehouseID) {
		return warehouseScopeError(c)
	}
	resp, err := h.inventoryUC.AdjustStock(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return movementError(c, err)
	}
	return c.JSON(resp)
}

// movementError mapea los errores de las operaciones que mueven inventario.
func movementError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: insufficient.Error(),
		})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto de concurrencia, reintente la operación"})
	default:
		return directoryError(c, err)
	}
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		WarehouseID:   m.WarehouseID,
		ProductID:     m.ProductID,
		Quantity:      m.Quantity,
		Cause:         m.Cause,
		CorrelationID: m.CorrelationID,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
	}
}
