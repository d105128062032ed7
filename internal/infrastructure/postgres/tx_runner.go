package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/pos-bodegas/internal/application/ledger"
	"github.com/jhoicas/pos-bodegas/internal/domain/repository"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Los fallos
// de serialización y deadlock (40001, 40P01) se traducen a ledger.ErrTxBusy
// para que el motor reintente el lote completo.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repos del ledger y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	balanceRepo repository.BalanceRepository,
	movementRepo repository.MovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewBalanceRepository(tx), NewMovementRepository(tx)); err != nil {
		if isRetryableTxError(err) {
			return ledger.ErrTxBusy
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isRetryableTxError(err) {
			return ledger.ErrTxBusy
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunDocuments inicia una transacción con los repos del ledger más los de
// documentos (venta, devolución, recepción, traslado), para los coordinadores
// que persisten documento y movimientos como una sola unidad.
func (r *TxRunner) RunDocuments(ctx context.Context, fn func(
	balanceRepo repository.BalanceRepository,
	movementRepo repository.MovementRepository,
	saleRepo repository.SaleRepository,
	returnRepo repository.ReturnRepository,
	receiptRepo repository.ReceiptRepository,
	transferRepo repository.TransferRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = fn(
		NewBalanceRepository(tx),
		NewMovementRepository(tx),
		NewSaleRepository(tx),
		NewReturnRepository(tx),
		NewReceiptRepository(tx),
		NewTransferRepository(tx),
	)
	if err != nil {
		if isRetryableTxError(err) {
			return ledger.ErrTxBusy
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isRetryableTxError(err) {
			return ledger.ErrTxBusy
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
