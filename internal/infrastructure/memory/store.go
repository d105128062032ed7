package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/jhoicas/pos-bodegas/internal/application/ledger"
	"github.com/jhoicas/pos-bodegas/internal/domain/entity"
	"github.com/jhoicas/pos-bodegas/internal/domain/repository"
)

// Store es el backend en memoria (modo demo). Todo el estado vive en mapas
// protegidos por un solo mutex: las transacciones se serializan, así que el
// motor nunca ve ErrTxBusy con este backend.
type Store struct {
	mu sync.Mutex

	balances  map[string]entity.Balance // clave warehouseID|productID
	movements []entity.Movement
	sales     map[string]entity.Sale
	returns   map[string]entity.Return
	receipts  map[string]entity.Receipt
	transfers map[string]entity.Transfer

	companies  map[string]entity.Company
	warehouses map[string]entity.Warehouse
	products   map[string]entity.Product
	suppliers  map[string]entity.Supplier
	users      map[string]entity.User
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		balances:   make(map[string]entity.Balance),
		sales:      make(map[string]entity.Sale),
		returns:    make(map[string]entity.Return),
		receipts:   make(map[string]entity.Receipt),
		transfers:  make(map[string]entity.Transfer),
		companies:  make(map[string]entity.Company),
		warehouses: make(map[string]entity.Warehouse),
		products:   make(map[string]entity.Product),
		suppliers:  make(map[string]entity.Supplier),
		users:      make(map[string]entity.User),
	}
}

func balanceKey(warehouseID, productID string) string {
	return warehouseID + "|" + productID
}

// snapshot captura el estado mutado por transacciones del ledger. Las
// entidades se guardan por valor, así que clonar los mapas basta.
type snapshot struct {
	balances     map[string]entity.Balance
	movementsLen int
	sales        map[string]entity.Sale
	returns      map[string]entity.Return
	receipts     map[string]entity.Receipt
	transfers    map[string]entity.Transfer
}

func (s *Store) takeSnapshot() snapshot {
	return snapshot{
		balances:     maps.Clone(s.balances),
		movementsLen: len(s.movements),
		sales:        maps.Clone(s.sales),
		returns:      maps.Clone(s.returns),
		receipts:     maps.Clone(s.receipts),
		transfers:    maps.Clone(s.transfers),
	}
}

func (s *Store) restore(snap snapshot) {
	s.balances = snap.balances
	s.movements = s.movements[:snap.movementsLen]
	s.sales = snap.sales
	s.returns = snap.returns
	s.receipts = snap.receipts
	s.transfers = snap.transfers
}

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks contra el store bajo el mutex global. Si el
// callback falla se restaura el snapshot tomado al inicio, emulando el
// rollback de una transacción real.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con los repos del ledger dentro de una "transacción" en memoria.
func (r *TxRunner) Run(ctx context.Context, fn func(
	balanceRepo repository.BalanceRepository,
	movementRepo repository.MovementRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snap := r.store.takeSnapshot()
	err := fn(
		&BalanceRepo{store: r.store, locked: true},
		&MovementRepo{store: r.store, locked: true},
	)
	if err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

// RunDocuments ejecuta fn con los repos del ledger más los de documentos.
func (r *TxRunner) RunDocuments(ctx context.Context, fn func(
	balanceRepo repository.BalanceRepository,
	movementRepo repository.MovementRepository,
	saleRepo repository.SaleRepository,
	returnRepo repository.ReturnRepository,
	receiptRepo repository.ReceiptRepository,
	transferRepo repository.TransferRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snap := r.store.takeSnapshot()
	err := fn(
		&BalanceRepo{store: r.store, locked: true},
		&MovementRepo{store: r.store, locked: true},
		&SaleRepo{store: r.store, locked: true},
		&ReturnRepo{store: r.store, locked: true},
		&ReceiptRepo{store: r.store, locked: true},
		&TransferRepo{store: r.store, locked: true},
	)
	if err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}
