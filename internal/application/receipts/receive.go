package receipts

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
)

// UseCase coordina recepciones de mercancía: un solo delta RECEIPT positivo
// más el registro de la recepción, en una transacción.
type UseCase struct {
	txRunner      ledger.TxRunner
	engine        *ledger.Engine
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	supplierRepo  repository.SupplierRepository
	receiptReader repository.ReceiptRepository
}

// NewUseCase construye el coordinador de recepciones.
func NewUseCase(
	txRunner ledger.TxRunner,
	engine *ledger.Engine,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	supplierRepo repository.SupplierRepository,
	receiptReader repository.ReceiptRepository,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		engine:        engine,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		supplierRepo:  supplierRepo,
		receiptReader: receiptReader,
	}
}

// Receive registra la entrada de mercancía y suma el stock. Genera un número
// de recepción visible (RCV-XXXXXXXX) único.
func (uc *UseCase) Receive(ctx context.Context, companyID, userID string, in dto.ReceiveStockRequest) (*dto.ReceiveStockResponse, error) {
	if in.WarehouseID == "" || in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	warehouse, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil || warehouse.IsDeleted {
		return nil, domain.ErrNotFound
	}
	if warehouse.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.IsDeleted {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if in.SupplierID != "" {
		supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil || supplier.IsDeleted {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	receiptID := uuid.New().String()
	number := "RCV-" + strings.ToUpper(receiptID[:8])

	receipt := &entity.Receipt{
		ID:          receiptID,
		Number:      number,
		WarehouseID: in.WarehouseID,
		ProductID:   in.ProductID,
		SupplierID:  in.SupplierID,
		Quantity:    in.Quantity,
		ReceivedAt:  now,
		CreatedBy:   userID,
		CreatedAt:   now,
	}

	deltas := []ledger.Delta{{
		WarehouseID:   in.WarehouseID,
		ProductID:     in.ProductID,
		Quantity:      in.Quantity,
		Cause:         entity.MovementCauseReceipt,
		CorrelationID: receiptID,
		CreatedBy:     userID,
	}}

	err = ledger.WithRetry(func() error {
		return uc.txRunner.RunDocuments(ctx, func(
			balanceRepo repository.BalanceRepository,
			movementRepo repository.MovementRepository,
			_ repository.SaleRepository,
			_ repository.ReturnRepository,
			receiptRepo repository.ReceiptRepository,
			_ repository.TransferRepository,
		) error {
			if err := receiptRepo.Create(receipt); err != nil {
				return err
			}
			return uc.engine.ApplyInTx(balanceRepo, movementRepo, deltas)
		})
	})
	if err != nil {
		return nil, err
	}

	return &dto.ReceiveStockResponse{
		WarehouseID:   in.WarehouseID,
		ProductID:     in.ProductID,
		ReceiptID:     receiptID,
		ReceiptNumber: number,
	}, nil
}

// ListRecent devuelve las recepciones más recientes de una bodega.
func (uc *UseCase) ListRecent(ctx context.Context, companyID, warehouseID string, limit int) ([]dto.ReceiptResponse, error) {
	if warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil || warehouse.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if limit <= 0 {
		limit = 10
	}
	receipts, err := uc.receiptReader.ListByWarehouse(warehouseID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReceiptResponse, 0, len(receipts))
	for _, r := range receipts {
		out = append(out, dto.ReceiptResponse{
			ReceiptNumber: r.Number,
			WarehouseID:   r.WarehouseID,
			ProductID:     r.ProductID,
			SupplierID:    r.SupplierID,
			Quantity:      r.Quantity,
			ReceivedAt:    r.ReceivedAt,
		})
	}
	return out, nil
}
