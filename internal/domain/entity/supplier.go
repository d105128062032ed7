package entity

import "time"

// Supplier representa un proveedor de mercancía (referenciado por las recepciones).
type Supplier struct {
	ID        string
	CompanyID string
	Name      string
	TaxID     string
	Phone     string
	Email     string
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
