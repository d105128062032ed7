package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Return representa una devolución de mercancía. Puede referenciar la venta
// original (SaleID) o no. Reason es texto libre; los reportes agrupan las
// devoluciones sin motivo bajo "Unspecified".
type Return struct {
	ID          string
	Number      string // ej. RET-a1b2c3d4
	SaleID      string // vacío si no referencia una venta
	WarehouseID string
	CashierID   string
	Reason      string
	Status      string // COMPLETED
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Items       []ReturnItem
}

// ReturnItem representa una línea devuelta.
type ReturnItem struct {
	ID        string
	ReturnID  string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal // cero si no se informó
	TaxAmount decimal.Decimal
	LineTotal decimal.Decimal
}
