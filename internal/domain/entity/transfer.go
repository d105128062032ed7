package entity

import "time"

// Estados de un traslado. PENDING es el único estado inicial; COMPLETED y
// REJECTED son terminales y mutuamente excluyentes: ninguna transición sale
// de un estado terminal.
const (
	TransferStatusPending   = "PENDING"
	TransferStatusCompleted = "COMPLETED"
	TransferStatusRejected  = "REJECTED"
)

// Transfer representa un traslado de stock entre dos bodegas de la misma
// empresa, sujeto a aprobación. Crear el traslado no toca saldos; aprobar
// aplica débito en origen y crédito en destino como un solo lote atómico.
type Transfer struct {
	ID              string
	Number          string // ej. TRF-a1b2c3d4
	CompanyID       string
	FromWarehouseID string
	ToWarehouseID   string
	Status          string
	Notes           string
	RequestedBy     string
	ApprovedBy      string     // vacío mientras PENDING
	ApprovedAt      *time.Time // nil mientras PENDING
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Items           []TransferItem
}

// TransferItem representa una línea del traslado.
type TransferItem struct {
	ID         string
	TransferID string
	ProductID  string
	Quantity   int64
}

// IsTerminal indica si el traslado ya no admite transiciones.
func (t *Transfer) IsTerminal() bool {
	return t.Status == TransferStatusCompleted || t.Status == TransferStatusRejected
}
