package reports

import (
	"context"
	"time"

	"github.com/jhoicas/pos-bodegas/internal/application/dto"
	"github.com/jhoicas/pos-bodegas/internal/domain"
	"github.com/jhoicas/pos-bodegas/internal/domain/repository"
)

// UseCase arma los reportes de lectura del punto de venta y de bodega.
// Solo consultas de agregación; nunca participa en transacciones del ledger.
type UseCase struct {
	reportRepo    repository.ReportRepository
	warehouseRepo repository.WarehouseRepository
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(reportRepo repository.ReportRepository, warehouseRepo repository.WarehouseRepository) *UseCase {
	return &UseCase{reportRepo: reportRepo, warehouseRepo: warehouseRepo}
}

// PosReport resume el día de una bodega: total vendido, número de ventas y
// devoluciones agrupadas por motivo (los motivos vacíos se reportan como
// "Unspecified"). La fecha se interpreta en la zona horaria local del servidor.
func (uc *UseCase) PosReport(ctx context.Context, companyID, warehouseID string, day time.Time) (*dto.PosReportResponse, error) {
	if err := uc.checkWarehouse(companyID, warehouseID); err != nil {
		return nil, err
	}

	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.AddDate(0, 0, 1)

	total, err := uc.reportRepo.TotalSales(warehouseID, from, to)
	if err != nil {
		return nil, err
	}
	count, err := uc.reportRepo.SalesCount(warehouseID, from, to)
	if err != nil {
		return nil, err
	}
	reasons, err := uc.reportRepo.ReturnsByReason(warehouseID, from, to)
	if err != nil {
		return nil, err
	}

	byReason := make([]dto.ReturnReasonDTO, 0, len(reasons))
	for _, r := range reasons {
		reason := r.Reason
		if reason == "" {
			reason = "Unspecified"
		}
		byReason = append(byReason, dto.ReturnReasonDTO{Reason: reason, Count: r.Count})
	}

	return &dto.PosReportResponse{
		WarehouseID:     warehouseID,
		Date:            from.Format("2006-01-02"),
		TotalSales:      total.StringFixed(2),
		SalesCount:      count,
		ReturnsByReason: byReason,
	}, nil
}

// WarehouseReport resume el stock de una bodega: unidades totales y los
// productos con mayor saldo.
func (uc *UseCase) WarehouseReport(ctx context.Context, companyID, warehouseID string, topLimit int) (*dto.WarehouseReportResponse, error) {
	if err := uc.checkWarehouse(companyID, warehouseID); err != nil {
		return nil, err
	}
	if topLimit <= 0 {
		topLimit = 10
	}

	totalUnits, err := uc.reportRepo.TotalUnitsOnHand(warehouseID)
	if err != nil {
		return nil, err
	}
	top, err := uc.reportRepo.TopStock(warehouseID, topLimit)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.WarehouseStockDTO, 0, len(top))
	for _, r := range top {
		rows = append(rows, dto.WarehouseStockDTO{
			ProductID:      r.ProductID,
			ProductName:    r.ProductName,
			QuantityOnHand: r.QuantityOnHand,
		})
	}

	return &dto.WarehouseReportResponse{
		WarehouseID: warehouseID,
		TotalUnits:  totalUnits,
		TopStock:    rows,
	}, nil
}

func (uc *UseCase) checkWarehouse(companyID, warehouseID string) error {
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return err
	}
	if warehouse == nil || warehouse.IsDeleted {
		return domain.ErrNotFound
	}
	if warehouse.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return nil
}
