package dto

import "time"

// BalanceResponse saldo de un producto en una bodega. Si la fila no existe se
// devuelve en cero (el saldo perezoso aún no creado vale 0).
type BalanceResponse struct {
	WarehouseID      string     `json:"warehouse_id"`
	ProductID        string     `json:"product_id"`
	QuantityOnHand   int64      `json:"quantity_on_hand"`
	QuantityReserved int64      `json:"quantity_reserved"`
	LastMovementAt   *time.Time `json:"last_movement_at,omitempty"`
}

// InventoryItemResponse fila del listado de inventario de una bodega
// (producto + saldo, cero si no hay fila de saldo).
type InventoryItemResponse struct {
	ProductID      string `json:"product_id"`
	ProductCode    string `json:"product_code"`
	ProductName    string `json:"product_name"`
	Barcode        string `json:"barcode,omitempty"`
	UnitPrice      string `json:"unit_price"`
	TaxRate        string `json:"tax_rate"`
	QuantityOnHand int64  `json:"quantity_on_hand"`
}

// ReceiveStockRequest body para POST /api/inventory/receive.
type ReceiveStockRequest struct {
	WarehouseID string `json:"warehouse_id"`
	ProductID   string `json:"product_id"`
	Quantity    int64  `json:"quantity"`
	SupplierID  string `json:"supplier_id,omitempty"`
}

// ReceiveStockResponse confirmación de recepción.
type ReceiveStockResponse struct {
	WarehouseID   string `json:"warehouse_id"`
	ProductID     string `json:"product_id"`
	ReceiptID     string `json:"receipt_id"`
	ReceiptNumber string `json:"receipt_number"`
}

// AdjustStockRequest body para POST /api/inventory/adjust (fijación absoluta).
type AdjustStockRequest struct {
	WarehouseID    string `json:"warehouse_id"`
	ProductID      string `json:"product_id"`
	QuantityOnHand int64  `json:"quantity_on_hand"`
}

// AdjustStockResponse confirmación de ajuste.
type AdjustStockResponse struct {
	WarehouseID    string `json:"warehouse_id"`
	ProductID      string `json:"product_id"`
	QuantityOnHand int64  `json:"quantity_on_hand"`
}

// MovementResponse representa un movimiento del libro de inventario.
type MovementResponse struct {
	ID            string    `json:"id"`
	WarehouseID   string    `json:"warehouse_id"`
	ProductID     string    `json:"product_id"`
	Quantity      int64     `json:"quantity"`
	Cause         string    `json:"cause"`
	CorrelationID string    `json:"correlation_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	CreatedBy     string    `json:"created_by,omitempty"`
}

// ReceiptResponsefila del listado de recepciones recientes.
type ReceiptResponse struct {
	ReceiptNumber string    `json:"receipt_number"`
	WarehouseID   string    `json:"warehouse_id"`
	ProductID     string    `json:"product_id"`
	SupplierID    string    `json:"supplier_id,omitempty"`
	Quantity      int64     `json:"quantity"`
	ReceivedAt    time.Time `json:"received_at"`
}
