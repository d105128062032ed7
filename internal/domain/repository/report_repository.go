package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnReasonCount devoluciones agrupadas por motivo. Los registros sin
// motivo se agrupan bajo "Unspecified".
type ReturnReasonCount struct {
	Reason string
	Count  int64
}

// WarehouseStockRow saldo agregado de un producto para el reporte de bodega.
type WarehouseStockRow struct {
	ProductID      string
	ProductName    string
	QuantityOnHand int64
}

// ReportRepository define el puerto de consultas de agregación para reportes.
// Solo lecturas; no participa en transacciones del ledger.
type ReportRepository interface {
	TotalSales(warehouseID string, from, to time.Time) (decimal.Decimal, error)
	SalesCount(warehouseID string, from, to time.Time) (int64, error)
	ReturnsByReason(warehouseID string, from, to time.Time) ([]ReturnReasonCount, error)
	TotalUnitsOnHand(warehouseID string) (int64, error)
	TopStock(warehouseID string, limit int) ([]WarehouseStockRow, error)
}
