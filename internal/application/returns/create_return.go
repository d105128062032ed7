package returns

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-bodegas/internal/application/dto"
	"github.com/jhoicas/pos-bodegas/internal/application/ledger"
	"github.com/jhoicas/pos-bodegas/internal/domain"
	"github.com/jhoicas/pos-bodegas/internal/domain/entity"
	"github.com/jhoicas/pos-bodegas/internal/domain/repository"
)

// UseCase coordina devoluciones: espejo de las ventas pero con deltas
// positivos (RETURN). La cabecera, las líneas y los movimientos quedan en la
// misma transacción.
type UseCase struct {
	txRunner      ledger.TxRunner
	engine        *ledger.Engine
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	returnReader  repository.ReturnRepository
}

// NewUseCase construye el coordinador de devoluciones.
func NewUseCase(
	txRunner ledger.TxRunner,
	engine *ledger.Engine,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	returnReader repository.ReturnRepository,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		engine:        engine,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		returnReader:  returnReader,
	}
}

// CreateReturn valida y persiste la devolución junto con sus movimientos RETURN.
// Reason es texto libre; se guarda tal cual (vacío incluido) y el reporte lo
// agrupa como "Unspecified" cuando falta.
func (uc *UseCase) CreateReturn(ctx context.Context, companyID, userID string, in dto.CreateReturnRequest) (*dto.CreateReturnResponse, error) {
	if in.WarehouseID == "" || len(in.Items) == 0 {
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

	now := time.Now()
	returnID := uuid.New().String()
	number := "RET-" + strings.ToUpper(returnID[:8])

	items := make([]entity.ReturnItem, 0, len(in.Items))
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if item.UnitPrice != nil && item.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || product.IsDeleted {
			return nil, domain.ErrNotFound
		}
		if product.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}

		unitPrice := decimal.Zero
		if item.UnitPrice != nil {
			unitPrice = *item.UnitPrice
		}
		lineTotal := unitPrice.Mul(decimal.NewFromInt(item.Quantity)).Add(item.TaxAmount)
		if item.LineTotal != nil {
			lineTotal = *item.LineTotal
		}
		items = append(items, entity.ReturnItem{
			ID:        uuid.New().String(),
			ReturnID:  returnID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
			TaxAmount: item.TaxAmount,
			LineTotal: lineTotal,
		})
	}

	ret := &entity.Return{
		ID:          returnID,
		Number:      number,
		SaleID:      in.SaleID,
		WarehouseID: in.WarehouseID,
		CashierID:   userID,
		Reason:      in.Reason,
		Status:      "COMPLETED",
		CreatedAt:   now,
		UpdatedAt:   now,
		Items:       items,
	}

	deltas := make([]ledger.Delta, 0, len(items))
	for _, item := range items {
		deltas = append(deltas, ledger.Delta{
			WarehouseID:   in.WarehouseID,
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			Cause:         entity.MovementCauseReturn,
			CorrelationID: returnID,
			CreatedBy:     userID,
		})
	}

	err = ledger.WithRetry(func() error {
		return uc.txRunner.RunDocuments(ctx, func(
			balanceRepo repository.BalanceRepository,
			movementRepo repository.MovementRepository,
			_ repository.SaleRepository,
			returnRepo repository.ReturnRepository,
			_ repository.ReceiptRepository,
			_ repository.TransferRepository,
		) error {
			if err := returnRepo.Create(ret); err != nil {
				return err
			}
			return uc.engine.ApplyInTx(balanceRepo, movementRepo, deltas)
		})
	})
	if err != nil {
		return nil, err
	}

	return &dto.CreateReturnResponse{ReturnID: returnID, ReturnNumber: number}, nil
}

// ListReturns lista devoluciones de una bodega, más reciente primero.
func (uc *UseCase) ListReturns(ctx context.Context, companyID, warehouseID string, limit, offset int) ([]dto.ReturnResponse, error) {
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil || warehouse.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	rets, err := uc.returnReader.ListByWarehouse(warehouseID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReturnResponse, 0, len(rets))
	for _, r := range rets {
		out = append(out, dto.ReturnResponse{
			ReturnID:     r.ID,
			ReturnNumber: r.Number,
			SaleID:       r.SaleID,
			WarehouseID:  r.WarehouseID,
			Reason:       r.Reason,
			Status:       r.Status,
			CreatedAt:    r.CreatedAt,
		})
	}
	return out, nil
}
