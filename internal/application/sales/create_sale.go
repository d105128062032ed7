package sales

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

// UseCase coordina la creación de ventas: valida y normaliza las líneas,
// deriva totales y descuenta inventario a través del motor de movimientos.
// El registro monetario y el descuento de stock quedan en la misma
// transacción: ambos se persisten o ninguno.
type UseCase struct {
	txRunner      ledger.TxRunner
	engine        *ledger.Engine
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	companyRepo   repository.CompanyRepository
	saleReader    repository.SaleRepository
}

// NewUseCase construye el coordinador de ventas. saleReader es el repositorio
// fuera de transacción para lecturas (GetByID, listados).
func NewUseCase(
	txRunner ledger.TxRunner,
	engine *ledger.Engine,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	companyRepo repository.CompanyRepository,
	saleReader repository.SaleRepository,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		engine:        engine,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		companyRepo:   companyRepo,
		saleReader:    saleReader,
	}
}

// CreateSale valida la venta, deriva los campos faltantes y la persiste junto
// con sus movimientos SALE como un solo lote atómico.
func (uc *UseCase) CreateSale(ctx context.Context, companyID, userID string, in dto.CreateSaleRequest) (*dto.CreateSaleResponse, error) {
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

	cashierID := in.CashierID
	if cashierID == "" {
		cashierID = userID
	}

	now := time.Now()
	saleID := uuid.New().String()
	number := in.SaleNumber
	if number == "" {
		number = "POS-" + strings.ToUpper(saleID[:8])
	}

	items := make([]entity.SaleItem, 0, len(in.Items))
	for i, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 || item.UnitPrice.IsNegative() {
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

		qty := decimal.NewFromInt(item.Quantity)
		lineTotal := qty.Mul(item.UnitPrice).Sub(item.DiscountAmount).Add(item.TaxAmount)
		if item.LineTotal != nil {
			lineTotal = *item.LineTotal
		}
		items = append(items, entity.SaleItem{
			ID:             uuid.New().String(),
			SaleID:         saleID,
			LineNumber:     i + 1,
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			DiscountAmount: item.DiscountAmount,
			TaxAmount:      item.TaxAmount,
			LineTotal:      lineTotal,
		})
	}

	// Totales de cabecera: los no informados se derivan como sumas sobre líneas.
	gross, discount, tax, total := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	for _, item := range items {
		gross = gross.Add(item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity)))
		discount = discount.Add(item.DiscountAmount)
		tax = tax.Add(item.TaxAmount)
		total = total.Add(item.LineTotal)
	}
	if in.GrossAmount != nil {
		gross = *in.GrossAmount
	}
	if in.DiscountAmount != nil {
		discount = *in.DiscountAmount
	}
	if in.TaxAmount != nil {
		tax = *in.TaxAmount
	}
	if in.TotalAmount != nil {
		total = *in.TotalAmount
	}

	paymentStatus := in.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = entity.PaymentStatusUnpaid
	}
	status := in.Status
	if status == "" {
		status = entity.SaleStatusCompleted
	}

	sale := &entity.Sale{
		ID:             saleID,
		Number:         number,
		WarehouseID:    in.WarehouseID,
		CashierID:      cashierID,
		CustomerID:     in.CustomerID,
		GrossAmount:    gross,
		DiscountAmount: discount,
		TaxAmount:      tax,
		TotalAmount:    total,
		PaymentStatus:  paymentStatus,
		Status:         status,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
		Items:          items,
	}

	deltas := make([]ledger.Delta, 0, len(items))
	for _, item := range items {
		deltas = append(deltas, ledger.Delta{
			WarehouseID:   in.WarehouseID,
			ProductID:     item.ProductID,
			Quantity:      -item.Quantity,
			Cause:         entity.MovementCauseSale,
			CorrelationID: saleID,
			CreatedBy:     cashierID,
		})
	}

	err = ledger.WithRetry(func() error {
		return uc.txRunner.RunDocuments(ctx, func(
			balanceRepo repository.BalanceRepository,
			movementRepo repository.MovementRepository,
			saleRepo repository.SaleRepository,
			_ repository.ReturnRepository,
			_ repository.ReceiptRepository,
			_ repository.TransferRepository,
		) error {
			if err := saleRepo.Create(sale); err != nil {
				return err
			}
			return uc.engine.ApplyInTx(balanceRepo, movementRepo, deltas)
		})
	})
	if err != nil {
		return nil, err
	}

	return &dto.CreateSaleResponse{SaleID: saleID, SaleNumber: number}, nil
}

// GetSale devuelve una venta completa (para el ticket PDF y consultas).
func (uc *UseCase) GetSale(ctx context.Context, companyID, saleID string) (*entity.Sale, error) {
	sale, err := uc.saleReader.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	warehouse, err := uc.warehouseRepo.GetByID(sale.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil || warehouse.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return sale, nil
}
