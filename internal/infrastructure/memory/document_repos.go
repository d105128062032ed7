package memory

import (
	"sort"

	"github.com/jhoicas/pos-bodegas/internal/domain"
	"github.com/jhoicas/pos-bodegas/internal/domain/entity"
	"github.com/jhoicas/pos-bodegas/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementa SaleRepository sobre el store en memoria.
type SaleRepo struct {
	store  *Store
	locked bool
}

// NewSaleRepository construye el adaptador para uso fuera de transacción.
func NewSaleRepository(store *Store) *SaleRepo {
	return &SaleRepo{store: store}
}

func (r *SaleRepo) lock() func() {
	if r.locked {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *SaleRepo) Create(sale *entity.Sale) error {
	defer r.lock()()
	if _, ok := r.store.sales[sale.ID]; ok {
		return domain.ErrDuplicate
	}
	r.store.sales[sale.ID] = *sale
	return nil
}

func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	defer r.lock()()
	if s, ok := r.store.sales[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r *SaleRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Sale, error) {
	defer r.lock()()
	var sales []*entity.Sale
	for _, s := range r.store.sales {
		if s.WarehouseID == warehouseID {
			copied := s
			sales = append(sales, &copied)
		}
	}
	sort.Slice(sales, func(i, j int) bool { return sales[i].CreatedAt.After(sales[j].CreatedAt) })
	return paginate(sales, limit, offset), nil
}

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo implementa ReturnRepository sobre el store en memoria.
type ReturnRepo struct {
	store  *Store
	locked bool
}

// NewReturnRepository construye el adaptador para uso fuera de transacción.
func NewReturnRepository(store *Store) *ReturnRepo {
	return &ReturnRepo{store: store}
}

func (r *ReturnRepo) lock() func() {
	if r.locked {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *ReturnRepo) Create(ret *entity.Return) error {
	defer r.lock()()
	if _, ok := r.store.returns[ret.ID]; ok {
		return domain.ErrDuplicate
	}
	r.store.returns[ret.ID] = *ret
	return nil
}

func (r *ReturnRepo) GetByID(id string) (*entity.Return, error) {
	defer r.lock()()
	if ret, ok := r.store.returns[id]; ok {
		return &ret, nil
	}
	return nil, nil
}

func (r *ReturnRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Return, error) {
	defer r.lock()()
	var returns []*entity.Return
	for _, ret := range r.store.returns {
		if ret.WarehouseID == warehouseID {
			copied := ret
			returns = append(returns, &copied)
		}
	}
	sort.Slice(returns, func(i, j int) bool { return returns[i].CreatedAt.After(returns[j].CreatedAt) })
	return paginate(returns, limit, offset), nil
}

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

// ReceiptRepo implementa ReceiptRepository sobre el store en memoria.
type ReceiptRepo struct {
	store  *Store
	locked bool
}

// NewReceiptRepository construye el adaptador para uso fuera de transacción.
func NewReceiptRepository(store *Store) *ReceiptRepo {
	return &ReceiptRepo{store: store}
}

func (r *ReceiptRepo) lock() func() {
	if r.locked {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *ReceiptRepo) Create(receipt *entity.Receipt) error {
	defer r.lock()()
	if _, ok := r.store.receipts[receipt.ID]; ok {
		return domain.ErrDuplicate
	}
	r.store.receipts[receipt.ID] = *receipt
	return nil
}

func (r *ReceiptRepo) ListByWarehouse(warehouseID string, limit int) ([]*entity.Receipt, error) {
	defer r.lock()()
	var receipts []*entity.Receipt
	for _, rc := range r.store.receipts {
		if rc.WarehouseID == warehouseID {
			copied := rc
			receipts = append(receipts, &copied)
		}
	}
	sort.Slice(receipts, func(i, j int) bool { return receipts[i].ReceivedAt.After(receipts[j].ReceivedAt) })
	if limit <= 0 {
		limit = 10
	}
	return paginate(receipts, limit, 0), nil
}

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementa TransferRepository sobre el store en memoria.
type TransferRepo struct {
	store  *Store
	locked bool
}

// NewTransferRepository construye el adaptador para uso fuera de transacción.
func NewTransferRepository(store *Store) *TransferRepo {
	return &TransferRepo{store: store}
}

func (r *TransferRepo) lock() func() {
	if r.locked {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *TransferRepo) Create(transfer *entity.Transfer) error {
	defer r.lock()()
	if _, ok := r.store.transfers[transfer.ID]; ok {
		return domain.ErrDuplicate
	}
	r.store.transfers[transfer.ID] = *transfer
	return nil
}

func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	defer r.lock()()
	if t, ok := r.store.transfers[id]; ok {
		return &t, nil
	}
	return nil, nil
}

// GetForUpdate equivale a GetByID: el mutex del store ya serializa.
func (r *TransferRepo) GetForUpdate(id string) (*entity.Transfer, error) {
	return r.GetByID(id)
}

func (r *TransferRepo) UpdateStatus(transfer *entity.Transfer) error {
	defer r.lock()()
	current, ok := r.store.transfers[transfer.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if current.Status != entity.TransferStatusPending {
		return domain.ErrInvalidState
	}
	r.store.transfers[transfer.ID] = *transfer
	return nil
}

func (r *TransferRepo) List(filter repository.TransferFilter, limit, offset int) ([]*entity.Transfer, error) {
	defer r.lock()()
	var transfers []*entity.Transfer
	for _, t := range r.store.transfers {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.WarehouseID != "" {
			switch filter.Direction {
			case "incoming":
				if t.ToWarehouseID != filter.WarehouseID {
					continue
				}
			case "outgoing":
				if t.FromWarehouseID != filter.WarehouseID {
					continue
				}
			default:
				if t.FromWarehouseID != filter.WarehouseID && t.ToWarehouseID != filter.WarehouseID {
					continue
				}
			}
		}
		copied := t
		transfers = append(transfers, &copied)
	}
	sort.Slice(transfers, func(i, j int) bool { return transfers[i].CreatedAt.After(transfers[j].CreatedAt) })
	return paginate(transfers, limit, offset), nil
}
