package entity

import "time"

// Causas de movimiento de inventario.
const (
	MovementCauseSale        = "SALE"
	MovementCauseReturn      = "RETURN"
	MovementCauseReceipt     = "RECEIPT"
	MovementCauseTransferOut = "TRANSFER_OUT"
	MovementCauseTransferIn  = "TRANSFER_IN"
	MovementCauseAdjustment  = "ADJUSTMENT"
)

// Movement representa un delta de cantidad con signo aplicado a un saldo,
// etiquetado con su causa y el id del documento que lo originó (venta,
// devolución, recepción o traslado).
type Movement struct {
	ID            string
	WarehouseID   string
	ProductID     string
	Quantity      int64 // positivo entrada, negativo salida
	Cause         string
	CorrelationID string
	CreatedAt     time.Time
	CreatedBy     string
}
