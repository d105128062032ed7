package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta y de su pago.
const (
	SaleStatusCompleted = "COMPLETED"
	SaleStatusVoided    = "VOIDED"

	PaymentStatusPaid   = "PAID"
	PaymentStatusUnpaid = "UNPAID"
)

// Sale representa la cabecera de una venta POS. Se crea atómicamente junto con
// sus líneas y los movimientos SALE que descuentan inventario.
type Sale struct {
	ID             string
	Number         string // consecutivo visible, ej. POS-a1b2c3d4
	WarehouseID    string
	CashierID      string
	CustomerID     string // vacío si venta de mostrador
	GrossAmount    decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	TotalAmount    decimal.Decimal
	PaymentStatus  string
	Status         string
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Items          []SaleItem
}

// SaleItem representa una línea de venta.
// LineTotal = Quantity*UnitPrice - DiscountAmount + TaxAmount.
type SaleItem struct {
	ID             string
	SaleID         string
	LineNumber     int
	ProductID      string
	Quantity       int64
	UnitPrice      decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	LineTotal      decimal.Decimal
}
