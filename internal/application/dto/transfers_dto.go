package dto

import "time"

// TransferItemRequest línea de traslado.
type TransferItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// CreateTransferRequest body para POST /api/transfers.
type CreateTransferRequest struct {
	FromWarehouseID string                `json:"from_warehouse_id"`
	ToWarehouseID   string                `json:"to_warehouse_id"`
	Notes           string                `json:"notes,omitempty"`
	Items           []TransferItemRequest `json:"items"`
}

// CreateTransferResponse respuesta de creación (estado inicial PENDING).
type CreateTransferResponse struct {
	TransferID     string `json:"transfer_id"`
	TransferNumber string `json:"transfer_number"`
	Status         string `json:"status"`
}

// TransferDecisionResponse respuesta de aprobar/rechazar.
type TransferDecisionResponse struct {
	TransferID string `json:"transfer_id"`
	Status     string `json:"status"`
}

// TransferItemResponse línea de traslado en lecturas.
type TransferItemResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// TransferResponse traslado completo en lecturas.
type TransferResponse struct {
	TransferID      string                 `json:"transfer_id"`
	TransferNumber  string                 `json:"transfer_number"`
	CompanyID       string                 `json:"company_id"`
	FromWarehouseID string                 `json:"from_warehouse_id"`
	ToWarehouseID   string                 `json:"to_warehouse_id"`
	Status          string                 `json:"status"`
	Notes           string                 `json:"notes,omitempty"`
	RequestedBy     string                 `json:"requested_by,omitempty"`
	ApprovedBy      string                 `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time             `json:"approved_at,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	Items           []TransferItemResponse `json:"items"`
}
