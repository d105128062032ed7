package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta. LineTotal es opcional: si viene nil se
// deriva como Quantity*UnitPrice - DiscountAmount + TaxAmount.
type SaleItemRequest struct {
	ProductID      string           `json:"product_id"`
	Quantity       int64            `json:"quantity"`
	UnitPrice      decimal.Decimal  `json:"unit_price"`
	DiscountAmount decimal.Decimal  `json:"discount_amount"`
	TaxAmount      decimal.Decimal  `json:"tax_amount"`
	LineTotal      *decimal.Decimal `json:"line_total,omitempty"`
}

// CreateSaleRequest body para POST /api/sales. Los totales de cabecera son
// opcionales; si vienen nil se derivan como sumas sobre las líneas.
type CreateSaleRequest struct {
	SaleNumber     string            `json:"sale_number,omitempty"`
	WarehouseID    string            `json:"warehouse_id"`
	CashierID      string            `json:"cashier_id,omitempty"`
	CustomerID     string            `json:"customer_id,omitempty"`
	GrossAmount    *decimal.Decimal  `json:"gross_amount,omitempty"`
	DiscountAmount *decimal.Decimal  `json:"discount_amount,omitempty"`
	TaxAmount      *decimal.Decimal  `json:"tax_amount,omitempty"`
	TotalAmount    *decimal.Decimal  `json:"total_amount,omitempty"`
	PaymentStatus  string            `json:"payment_status,omitempty"`
	Status         string            `json:"status,omitempty"`
	Notes          string            `json:"notes,omitempty"`
	Items          []SaleItemRequest `json:"items"`
}

// CreateSaleResponse respuesta de creación de venta.
type CreateSaleResponse struct {
	SaleID     string `json:"sale_id"`
	SaleNumber string `json:"sale_number"`
}

// SaleItemResponse línea de venta en consultas.
type SaleItemResponse struct {
	LineNumber     int             `json:"line_number"`
	ProductID      string          `json:"product_id"`
	Quantity       int64           `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	LineTotal      decimal.Decimal `json:"line_total"`
}

// SaleResponse venta completa para GET /api/sales/:id y listados.
type SaleResponse struct {
	SaleID         string             `json:"sale_id"`
	SaleNumber     string             `json:"sale_number"`
	WarehouseID    string             `json:"warehouse_id"`
	CashierID      string             `json:"cashier_id,omitempty"`
	CustomerID     string             `json:"customer_id,omitempty"`
	GrossAmount    decimal.Decimal    `json:"gross_amount"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	TaxAmount      decimal.Decimal    `json:"tax_amount"`
	TotalAmount    decimal.Decimal    `json:"total_amount"`
	PaymentStatus  string             `json:"payment_status"`
	Status         string             `json:"status"`
	Notes          string             `json:"notes,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	Items          []SaleItemResponse `json:"items,omitempty"`
}
