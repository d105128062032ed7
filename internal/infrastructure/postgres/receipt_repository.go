package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-bodegas/internal/domain"
	"github.com/jhoicas/pos-bodegas/internal/domain/entity"
	"github.com/jhoicas/pos-bodegas/internal/domain/repository"
)

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

// ReceiptRepo implementa ReceiptRepository sobre PostgreSQL (usable con pool o tx).
type ReceiptRepo struct {
	q Querier
}

// NewReceiptRepository construye el adaptador de recepciones. Pasar pool o tx (Querier).
func NewReceiptRepository(q Querier) *ReceiptRepo {
	return &ReceiptRepo{q: q}
}

// Create persiste la recepción.
func (r *ReceiptRepo) Create(receipt *entity.Receipt) error {
	query := `
		INSERT INTO receipts (id, number, warehouse_id, product_id, supplier_id, quantity, received_at, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	supplierID := (*string)(nil)
	if receipt.SupplierID != "" {
		supplierID = &receipt.SupplierID
	}
	_, err := r.q.Exec(context.Background(), query,
		receipt.ID, receipt.Number, receipt.WarehouseID, receipt.ProductID,
		supplierID, receipt.Quantity, receipt.ReceivedAt, receipt.CreatedBy, receipt.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert receipt: %w", err)
	}
	return nil
}

// ListByWarehouse lista las recepciones más recientes de una bodega.
func (r *ReceiptRepo) ListByWarehouse(warehouseID string, limit int) ([]*entity.Receipt, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `
		SELECT id, number, warehouse_id, product_id, supplier_id, quantity, received_at, created_by, created_at
		FROM receipts WHERE warehouse_id = $1
		ORDER BY received_at DESC
		LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, warehouseID, limit)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()

	var receipts []*entity.Receipt
	for rows.Next() {
		var rc entity.Receipt
		var supplierID *string
		if err := rows.Scan(
			&rc.ID, &rc.Number, &rc.WarehouseID, &rc.ProductID,
			&supplierID, &rc.Quantity, &rc.ReceivedAt, &rc.CreatedBy, &rc.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		if supplierID != nil {
			rc.SupplierID = *supplierID
		}
		receipts = append(receipts, &rc)
	}
	return receipts, rows.Err()
}
