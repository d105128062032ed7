package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-bodegas/internal/application/dto"
	"github.com/jhoicas/pos-bodegas/internal/application/reports"
)

// ReportHandler expone los reportes de ventas y de inventario.
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Pos reporte diario de punto de venta (?warehouse_id=&date=YYYY-MM-DD).
func (h *ReportHandler) Pos(c *fiber.Ctx) error {
	warehouseID := c.Query("warehouse_id")
	if warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id es requerido"})
	}
	if !WarehouseScopeAllowed(c, warehouseID) {
		return warehouseScopeError(c)
	}
	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date inválida, se espera YYYY-MM-DD"})
		}
		day = parsed
	}
	report, err := h.uc.PosReport(c.Context(), GetCompanyID(c), warehouseID, day)
	if err != nil {
		return directoryError(c, err)
	}
	return c.JSON(report)
}

// Warehouse reporte de existencias de una bodega (?warehouse_id=&limit=).
func (h *ReportHandler) Warehouse(c *fiber.Ctx) error {
	warehouseID := c.Query("warehouse_id")
	if warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id es requerido"})
	}
	if !WarehouseScopeAllowed(c, warehouseID) {
		return warehouseScopeError(c)
	}
	report, err := h.uc.WarehouseReport(c.Context(), GetCompanyID(c), warehouseID, c.QueryInt("limit"))
	if err != nil {
		return directoryError(c, err)
	}
	return c.JSON(report)
}
