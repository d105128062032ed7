package transfers

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-bodegas/internal/application/dto"
	"github.com/jhoicas/pos-bodegas/internal/application/ledger"
	"github.com/jhoicas/pos-bodegas/internal/domain"
	"github.com/jhoicas/pos-bodegas/internal/domain/entity"
	"github.com/jhoicas/pos-bodegas/internal/domain/repository"
	"github.com/jhoicas/pos-bodegas/pkg/metrics"
)

// Workflow implementa la máquina de estados de traslados entre bodegas:
// PENDING -> COMPLETED (aprobar) o PENDING -> REJECTED (rechazar); ninguna
// otra transición es legal. Crear no toca saldos; aprobar aplica débito en
// origen y crédito en destino como un solo lote atómico, de modo que una
// caída o una aprobación concurrente nunca deja stock debitado sin su
// crédito correspondiente.
type Workflow struct {
	txRunner       ledger.TxRunner
	engine         *ledger.Engine
	warehouseRepo  repository.WarehouseRepository
	productRepo    repository.ProductRepository
	transferReader repository.TransferRepository
}

// NewWorkflow construye el flujo de traslados.
func NewWorkflow(
	txRunner ledger.TxRunner,
	engine *ledger.Engine,
	warehouseRepo repository.WarehouseRepository,
	productRepo repository.ProductRepository,
	transferReader repository.TransferRepository,
) *Workflow {
	return &Workflow{
		txRunner:       txRunner,
		engine:         engine,
		warehouseRepo:  warehouseRepo,
		productRepo:    productRepo,
		transferReader: transferReader,
	}
}

// Create valida y persiste el traslado en PENDING. No toca saldos.
// Reglas: bodegas distintas, existentes, activas y de la misma empresa;
// líneas no vacías con cantidad > 0 y producto resoluble.
func (w *Workflow) Create(ctx context.Context, companyID, userID string, in dto.CreateTransferRequest) (*dto.CreateTransferResponse, error) {
	if in.FromWarehouseID == "" || in.ToWarehouseID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.FromWarehouseID == in.ToWarehouseID {
		return nil, domain.ErrInvalidInput
	}

	from, err := w.warehouseRepo.GetByID(in.FromWarehouseID)
	if err != nil {
		return nil, err
	}
	to, err := w.warehouseRepo.GetByID(in.ToWarehouseID)
	if err != nil {
		return nil, err
	}
	if from == nil || to == nil || from.IsDeleted || to.IsDeleted || !from.IsActive || !to.IsActive {
		return nil, domain.ErrInvalidInput
	}
	if from.CompanyID != to.CompanyID || from.CompanyID != companyID {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	transferID := uuid.New().String()

	items := make([]entity.TransferItem, 0, len(in.Items))
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		product, err := w.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || product.IsDeleted || product.CompanyID != companyID {
			return nil, domain.ErrInvalidInput
		}
		items = append(items, entity.TransferItem{
			ID:         uuid.New().String(),
			TransferID: transferID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
		})
	}

	transfer := &entity.Transfer{
		ID:              transferID,
		Number:          "TRF-" + strings.ToUpper(transferID[:8]),
		CompanyID:       companyID,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Status:          entity.TransferStatusPending,
		Notes:           in.Notes,
		RequestedBy:     userID,
		CreatedAt:       now,
		UpdatedAt:       now,
		Items:           items,
	}

	err = w.txRunner.RunDocuments(ctx, func(
		_ repository.BalanceRepository,
		_ repository.MovementRepository,
		_ repository.SaleRepository,
		_ repository.ReturnRepository,
		_ repository.ReceiptRepository,
		transferRepo repository.TransferRepository,
	) error {
		return transferRepo.Create(transfer)
	})
	if err != nil {
		return nil, err
	}

	return &dto.CreateTransferResponse{
		TransferID:     transferID,
		TransferNumber: transfer.Number,
		Status:         transfer.Status,
	}, nil
}

// Approve transiciona PENDING -> COMPLETED aplicando, por cada línea, un
// TRANSFER_OUT de -cantidad en origen y un TRANSFER_IN de +cantidad en
// destino, todo en un solo lote. Si el lote falla por stock insuficiente el
// traslado queda PENDING y la aprobación puede reintentarse después de una
// recepción.
func (w *Workflow) Approve(ctx context.Context, companyID, approvedBy, transferID string) (*dto.TransferDecisionResponse, error) {
	err := ledger.WithRetry(func() error {
		return w.txRunner.RunDocuments(ctx, func(
			balanceRepo repository.BalanceRepository,
			movementRepo repository.MovementRepository,
			_ repository.SaleRepository,
			_ repository.ReturnRepository,
			_ repository.ReceiptRepository,
			transferRepo repository.TransferRepository,
		) error {
			transfer, err := transferRepo.GetForUpdate(transferID)
			if err != nil {
				return err
			}
			if transfer == nil {
				return domain.ErrNotFound
			}
			if transfer.CompanyID != companyID {
				return domain.ErrForbidden
			}
			if transfer.Status != entity.TransferStatusPending {
				return domain.ErrInvalidState
			}

			deltas := make([]ledger.Delta, 0, 2*len(transfer.Items))
			for _, item := range transfer.Items {
				deltas = append(deltas,
					ledger.Delta{
						WarehouseID:   transfer.FromWarehouseID,
						ProductID:     item.ProductID,
						Quantity:      -item.Quantity,
						Cause:         entity.MovementCauseTransferOut,
						CorrelationID: transfer.ID,
						CreatedBy:     approvedBy,
					},
					ledger.Delta{
						WarehouseID:   transfer.ToWarehouseID,
						ProductID:     item.ProductID,
						Quantity:      item.Quantity,
						Cause:         entity.MovementCauseTransferIn,
						CorrelationID: transfer.ID,
						CreatedBy:     approvedBy,
					},
				)
			}
			if err := w.engine.ApplyInTx(balanceRepo, movementRepo, deltas); err != nil {
				return err
			}

			now := time.Now()
			transfer.Status = entity.TransferStatusCompleted
			transfer.ApprovedBy = approvedBy
			transfer.ApprovedAt = &now
			transfer.UpdatedAt = now
			return transferRepo.UpdateStatus(transfer)
		})
	})
	if err != nil {
		return nil, err
	}

	metrics.TransfersResolved.WithLabelValues(entity.TransferStatusCompleted).Inc()
	return &dto.TransferDecisionResponse{
		TransferID: transferID,
		Status:     entity.TransferStatusCompleted,
	}, nil
}

// Reject transiciona PENDING -> REJECTED sin tocar saldos. Falla con
// ErrInvalidState si el traslado ya es terminal.
func (w *Workflow) Reject(ctx context.Context, companyID, rejectedBy, transferID string) (*dto.TransferDecisionResponse, error) {
	err := w.txRunner.RunDocuments(ctx, func(
		_ repository.BalanceRepository,
		_ repository.MovementRepository,
		_ repository.SaleRepository,
		_ repository.ReturnRepository,
		_ repository.ReceiptRepository,
		transferRepo repository.TransferRepository,
	) error {
		transfer, err := transferRepo.GetForUpdate(transferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return domain.ErrNotFound
		}
		if transfer.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if transfer.Status != entity.TransferStatusPending {
			return domain.ErrInvalidState
		}

		now := time.Now()
		transfer.Status = entity.TransferStatusRejected
		transfer.ApprovedBy = rejectedBy
		transfer.ApprovedAt = &now
		transfer.UpdatedAt = now
		return transferRepo.UpdateStatus(transfer)
	})
	if err != nil {
		return nil, err
	}

	metrics.TransfersResolved.WithLabelValues(entity.TransferStatusRejected).Inc()
	return &dto.TransferDecisionResponse{
		TransferID: transferID,
		Status:     entity.TransferStatusRejected,
	}, nil
}

// Get devuelve un traslado completo.
func (w *Workflow) Get(ctx context.Context, companyID, transferID string) (*dto.TransferResponse, error) {
	transfer, err := w.transferReader.GetByID(transferID)
	if err != nil {
		return nil, err
	}
	if transfer == nil || transfer.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	out := toResponse(transfer)
	return &out, nil
}

// List lista traslados con filtros de estado, bodega y dirección.
func (w *Workflow) List(ctx context.Context, companyID string, filter repository.TransferFilter, limit, offset int) ([]dto.TransferResponse, error) {
	transfers, err := w.transferReader.List(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransferResponse, 0, len(transfers))
	for _, t := range transfers {
		if t.CompanyID != companyID {
			continue
		}
		out = append(out, toResponse(t))
	}
	return out, nil
}

func toResponse(t *entity.Transfer) dto.TransferResponse {
	items := make([]dto.TransferItemResponse, 0, len(t.Items))
	for _, item := range t.Items {
		items = append(items, dto.TransferItemResponse{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return dto.TransferResponse{
		TransferID:      t.ID,
		TransferNumber:  t.Number,
		CompanyID:       t.CompanyID,
		FromWarehouseID: t.FromWarehouseID,
		ToWarehouseID:   t.ToWarehouseID,
		Status:          t.Status,
		Notes:           t.Notes,
		RequestedBy:     t.RequestedBy,
		ApprovedBy:      t.ApprovedBy,
		ApprovedAt:      t.ApprovedAt,
		CreatedAt:       t.CreatedAt,
		Items:           items,
	}
}
