package ledger

import (
	"context"

	"github.com/jhoicas/pos-bodegas/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es la unidad de atomicidad del ledger: un lote
// que falla no deja ninguna escritura.
//
// Las implementaciones deben traducir los fallos de serialización o deadlock
// del almacenamiento a ErrTxBusy para que WithRetry pueda reintentar el lote.
type TxRunner interface {
	// Run abre una transacción con los repositorios del ledger.
	Run(ctx context.Context, fn func(
		balanceRepo repository.BalanceRepository,
		movementRepo repository.MovementRepository,
	) error) error

	// RunDocuments abre una transacción con los repositorios del ledger más
	// los de documentos, para los flujos que persisten cabecera+líneas junto
	// con sus movimientos (ventas, devoluciones, recepciones, traslados).
	RunDocuments(ctx context.Context, fn func(
		balanceRepo repository.BalanceRepository,
		movementRepo repository.MovementRepository,
		saleRepo repository.SaleRepository,
		returnRepo repository.ReturnRepository,
		receiptRepo repository.ReceiptRepository,
		transferRepo repository.TransferRepository,
	) error) error
}
