package repository

import "github.com/jhoicas/pos-bodegas/internal/domain/entity"

// ReceiptRepository define el puerto de persistencia de recepciones de mercancía.
type ReceiptRepository interface {
	Create(receipt *entity.Receipt) error
	ListByWarehouse(warehouseID string, limit int) ([]*entity.Receipt, error)
}
