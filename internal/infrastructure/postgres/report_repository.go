package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-bodegas/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo implementa las consultas de agregación para reportes. Solo
// lecturas sobre el pool, fuera de las transacciones del ledger.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// TotalSales suma el total vendido en una bodega dentro del rango [from, to).
func (r *ReportRepo) TotalSales(warehouseID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM sales
		WHERE warehouse_id = $1 AND status = 'COMPLETED' AND created_at >= $2 AND created_at < $3`
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, warehouseID, from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total sales: %w", err)
	}
	return total, nil
}

// SalesCount cuenta las ventas completadas en el rango [from, to).
func (r *ReportRepo) SalesCount(warehouseID string, from, to time.Time) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM sales
		WHERE warehouse_id = $1 AND status = 'COMPLETED' AND created_at >= $2 AND created_at < $3`
	var count int64
	err := r.q.QueryRow(context.Background(), query, warehouseID, from, to).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("sales count: %w", err)
	}
	return count, nil
}

// ReturnsByReason agrupa devoluciones por motivo en el rango [from, to). Los
// motivos vacíos o nulos se agrupan bajo 'Unspecified'.
func (r *ReportRepo) ReturnsByReason(warehouseID string, from, to time.Time) ([]repository.ReturnReasonCount, error) {
	query := `
		SELECT COALESCE(NULLIF(reason, ''), 'Unspecified') AS reason, COUNT(*)
		FROM returns
		WHERE warehouse_id = $1 AND created_at >= $2 AND created_at < $3
		GROUP BY 1
		ORDER BY 2 DESC`
	rows, err := r.q.Query(context.Background(), query, warehouseID, from, to)
	if err != nil {
		return nil, fmt.Errorf("returns by reason: %w", err)
	}
	defer rows.Close()

	var counts []repository.ReturnReasonCount
	for rows.Next() {
		var c repository.ReturnReasonCount
		if err := rows.Scan(&c.Reason, &c.Count); err != nil {
			return nil, fmt.Errorf("scan reason count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// TotalUnitsOnHand suma las unidades en stock de una bodega.
func (r *ReportRepo) TotalUnitsOnHand(warehouseID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(quantity_on_hand), 0)
		FROM stock_balances WHERE warehouse_id = $1`
	var total int64
	err := r.q.QueryRow(context.Background(), query, warehouseID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total units on hand: %w", err)
	}
	return total, nil
}

// TopStock devuelve los productos con mayor saldo en una bodega.
func (r *ReportRepo) TopStock(warehouseID string, limit int) ([]repository.WarehouseStockRow, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `
		SELECT b.product_id, p.name, b.quantity_on_hand
		FROM stock_balances b
		JOIN products p ON p.id = b.product_id
		WHERE b.warehouse_id = $1
		ORDER BY b.quantity_on_hand DESC, p.name
		LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, warehouseID, limit)
	if err != nil {
		return nil, fmt.Errorf("top stock: %w", err)
	}
	defer rows.Close()

	var result []repository.WarehouseStockRow
	for rows.Next() {
		var row repository.WarehouseStockRow
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.QuantityOnHand); err != nil {
			return nil, fmt.Errorf("scan stock row: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
