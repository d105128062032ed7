package entity

import "time"

// Receipt representa una recepción de mercancía de un proveedor: una sola
// línea (bodega, producto, cantidad). Se crea atómicamente con su movimiento
// RECEIPT.
type Receipt struct {
	ID          string
	Number      string // identificador visible, ej. RCV-a1b2c3d4
	WarehouseID string
	ProductID   string
	SupplierID  string // vacío si se desconoce el proveedor
	Quantity    int64
	ReceivedAt  time.Time
	CreatedBy   string
	CreatedAt   time.Time
}
