package entity

import "time"

// Company representa una organización/tenant del sistema: dueña de bodegas,
// productos y usuarios. Los traslados solo son legales entre bodegas de la
// misma empresa.
type Company struct {
	ID        string
	Name      string
	TaxID     string
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
