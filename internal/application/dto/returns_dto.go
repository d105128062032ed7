package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnItemRequest línea de devolución.
type ReturnItemRequest struct {
	ProductID string           `json:"product_id"`
	Quantity  int64            `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	TaxAmount decimal.Decimal  `json:"tax_amount"`
	LineTotal *decimal.Decimal `json:"line_total,omitempty"`
}

// CreateReturnRequest body para POST /api/returns.
type CreateReturnRequest struct {
	WarehouseID string              `json:"warehouse_id"`
	SaleID      string              `json:"sale_id,omitempty"`
	Reason      string              `json:"reason,omitempty"`
	Items       []ReturnItemRequest `json:"items"`
}

// CreateReturnResponse respuesta de creación de devolución.
type CreateReturnResponse struct {
	ReturnID     string `json:"return_id"`
	ReturnNumber string `json:"return_number"`
}

// ReturnResponse fila del listado de devoluciones.
type ReturnResponse struct {
	ReturnID     string    `json:"return_id"`
	ReturnNumber string    `json:"return_number"`
	SaleID       string    `json:"sale_id,omitempty"`
	WarehouseID  string    `json:"warehouse_id"`
	Reason       string    `json:"reason,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
