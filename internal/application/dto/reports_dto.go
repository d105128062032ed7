package dto

// ReturnReasonDTO devoluciones agrupadas por motivo.
type ReturnReasonDTO struct {
	Reason string `json:"reason"`
	Count  int64  `json:"count"`
}

// PosReportResponse reporte POS del día: totales de venta y devoluciones por motivo.
type PosReportResponse struct {
	WarehouseID      string            `json:"warehouse_id"`
	Date             string            `json:"date"` // YYYY-MM-DD
	TotalSales       string            `json:"total_sales"`
	SalesCount       int64             `json:"sales_count"`
	ReturnsByReason  []ReturnReasonDTO `json:"returns_by_reason"`
}

// WarehouseStockDTO fila de stock del reporte de bodega.
type WarehouseStockDTO struct {
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	QuantityOnHand int64  `json:"quantity_on_hand"`
}

// WarehouseReportResponse reporte de bodega: unidades totales y top de saldos.
type WarehouseReportResponse struct {
	WarehouseID string              `json:"warehouse_id"`
	TotalUnits  int64               `json:"total_units"`
	TopStock    []WarehouseStockDTO `json:"top_stock"`
}
