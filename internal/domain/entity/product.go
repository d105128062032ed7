package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU vendible. El ledger solo necesita su
// existencia; precios e impuestos se copian a las líneas de venta al momento
// de vender.
type Product struct {
	ID        string
	CompanyID string
	Code      string // código único por empresa
	Name      string
	Barcode   string
	UnitPrice decimal.Decimal
	CostPrice decimal.Decimal
	TaxRate   decimal.Decimal // porcentaje, ej. 19.00
	IsActive  bool
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
