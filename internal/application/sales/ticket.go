package sales

import (
	"context"

	"github.com/jhoicas/pos-bodegas/internal/domain"
	"github.com/jhoicas/pos-bodegas/internal/domain/entity"
)

// TicketLine línea del tiquete con el nombre del producto resuelto y los
// montos ya formateados.
type TicketLine struct {
	ProductName string
	Quantity    int64
	UnitPrice   string
	LineTotal   string
}

// TicketPDFGenerator puerto de generación del tiquete de venta en PDF.
type TicketPDFGenerator interface {
	GenerateSaleTicket(ctx context.Context, sale *entity.Sale, company *entity.Company, warehouse *entity.Warehouse, lines []TicketLine) ([]byte, error)
}

// GenerateTicket arma los datos del tiquete de una venta y delega el PDF al
// generador.
func (uc *UseCase) GenerateTicket(ctx context.Context, companyID, saleID string, gen TicketPDFGenerator) ([]byte, error) {
	sale, err := uc.GetSale(ctx, companyID, saleID)
	if err != nil {
		return nil, err
	}
	warehouse, err := uc.warehouseRepo.GetByID(sale.WarehouseID)
	if err != nil {
		return nil, err
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil || company == nil {
		return nil, domain.ErrNotFound
	}

	lines := make([]TicketLine, 0, len(sale.Items))
	for _, item := range sale.Items {
		name := item.ProductID
		if product, err := uc.productRepo.GetByID(item.ProductID); err == nil && product != nil {
			name = product.Name
		}
		lines = append(lines, TicketLine{
			ProductName: name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			LineTotal:   item.LineTotal.StringFixed(2),
		})
	}
	return gen.GenerateSaleTicket(ctx, sale, company, warehouse, lines)
}

// ListSales lista las ventas de una bodega, validando que pertenezca a la empresa.
func (uc *UseCase) ListSales(ctx context.Context, companyID, warehouseID string, limit, offset int) ([]*entity.Sale, error) {
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil || warehouse.IsDeleted {
		return nil, domain.ErrNotFound
	}
	if warehouse.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return uc.saleReader.ListByWarehouse(warehouseID, limit, offset)
}
