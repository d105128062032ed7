package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-bodegas/internal/application/dto"
	"github.com/jhoicas/pos-bodegas/internal/application/sales"
	"github.com/jhoicas/pos-bodegas/internal/domain/entity"
)

// SaleHandler expone la creación y consulta de ventas POS.
type SaleHandler struct {
	uc        *sales.UseCase
	ticketGen sales.TicketPDFGenerator
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.UseCase, ticketGen sales.TicketPDFGenerator) *SaleHandler {
	return &SaleHandler{uc: uc, ticketGen: ticketGen}
}

// Create registra una venta y descuenta inventario atómicamente.
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if !WarehouseScopeAllowed(c, in.WarehouseID) {
		return warehouseScopeError(c)
	}
	resp, err := h.uc.CreateSale(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return movementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID consulta una venta con sus líneas.
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.uc.GetSale(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return directoryError(c, err)
	}
	return c.JSON(toSaleResponse(sale, true))
}

// List lista las ventas recientes de una bodega (?warehouse_id=).
func (h *SaleHandler) List(c *fiber.Ctx) error {
	warehouseID := c.Query("warehouse_id")
	if warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id es requerido"})
	}
	if !WarehouseScopeAllowed(c, warehouseID) {
		return warehouseScopeError(c)
	}
	list, err := h.uc.ListSales(c.Context(), GetCompanyID(c), warehouseID, c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return directoryError(c, err)
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, sale := range list {
		out = append(out, toSaleResponse(sale, false))
	}
	return c.JSON(out)
}

// Ticket genera el tiquete de venta en PDF.
func (h *SaleHandler) Ticket(c *fiber.Ctx) error {
	pdf, err := h.uc.GenerateTicket(c.Context(), GetCompanyID(c), c.Params("id"), h.ticketGen)
	if err != nil {
		return directoryError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="ticket.pdf"`)
	return c.Send(pdf)
}

func toSaleResponse(sale *entity.Sale, withItems bool) dto.SaleResponse {
	resp := dto.SaleResponse{
		SaleID:         sale.ID,
		SaleNumber:     sale.Number,
		WarehouseID:    sale.WarehouseID,
		CashierID:      sale.CashierID,
		CustomerID:     sale.CustomerID,
		GrossAmount:    sale.GrossAmount,
		DiscountAmount: sale.DiscountAmount,
		TaxAmount:      sale.TaxAmount,
		TotalAmount:    sale.TotalAmount,
		PaymentStatus:  sale.PaymentStatus,
		Status:         sale.Status,
		Notes:          sale.Notes,
		CreatedAt:      sale.CreatedAt,
	}
	if !withItems {
		return resp
	}
	resp.Items = make([]dto.SaleItemResponse, 0, len(sale.Items))
	for _, item := range sale.Items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			LineNumber:     item.LineNumber,
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			DiscountAmount: item.DiscountAmount,
			TaxAmount:      item.TaxAmount,
			LineTotal:      item.LineTotal,
		})
	}
	return resp
}
