package memory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-bodegas/internal/domain/entity"
	"github.com/jhoicas/pos-bodegas/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo implementa las agregaciones de reportes sobre el store en memoria.
type ReportRepo struct {
	store *Store
}

// NewReportRepository construye el adaptador.
func NewReportRepository(store *Store) *ReportRepo {
	return &ReportRepo{store: store}
}

func inRange(at, from, to time.Time) bool {
	return !at.Before(from) && at.Before(to)
}

func (r *ReportRepo) TotalSales(warehouseID string, from, to time.Time) (decimal.Decimal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	total := decimal.Zero
	for _, s := range r.store.sales {
		if s.WarehouseID == warehouseID && s.Status == entity.SaleStatusCompleted && inRange(s.CreatedAt, from, to) {
			total = total.Add(s.TotalAmount)
		}
	}
	return total, nil
}

func (r *ReportRepo) SalesCount(warehouseID string, from, to time.Time) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var count int64
	for _, s := range r.store.sales {
		if s.WarehouseID == warehouseID && s.Status == entity.SaleStatusCompleted && inRange(s.CreatedAt, from, to) {
			count++
		}
	}
	return count, nil
}

func (r *ReportRepo) ReturnsByReason(warehouseID string, from, to time.Time) ([]repository.ReturnReasonCount, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	byReason := make(map[string]int64)
	for _, ret := range r.store.returns {
		if ret.WarehouseID != warehouseID || !inRange(ret.CreatedAt, from, to) {
			continue
		}
		reason := ret.Reason
		if reason == "" {
			reason = "Unspecified"
		}
		byReason[reason]++
	}
	counts := make([]repository.ReturnReasonCount, 0, len(byReason))
	for reason, count := range byReason {
		counts = append(counts, repository.ReturnReasonCount{Reason: reason, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Reason < counts[j].Reason
	})
	return counts, nil
}

func (r *ReportRepo) TotalUnitsOnHand(warehouseID string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var total int64
	for _, b := range r.store.balances {
		if b.WarehouseID == warehouseID {
			total += b.QuantityOnHand
		}
	}
	return total, nil
}

func (r *ReportRepo) TopStock(warehouseID string, limit int) ([]repository.WarehouseStockRow, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if limit <= 0 {
		limit = 10
	}
	var result []repository.WarehouseStockRow
	for _, b := range r.store.balances {
		if b.WarehouseID != warehouseID {
			continue
		}
		name := b.ProductID
		if p, ok := r.store.products[b.ProductID]; ok {
			name = p.Name
		}
		result = append(result, repository.WarehouseStockRow{
			ProductID:      b.ProductID,
			ProductName:    name,
			QuantityOnHand: b.QuantityOnHand,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].QuantityOnHand != result[j].QuantityOnHand {
			return result[i].QuantityOnHand > result[j].QuantityOnHand
		}
		return result[i].ProductName < result[j].ProductName
	})
	if limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}
