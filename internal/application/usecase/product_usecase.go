package usecase

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/pos-bodegas/internal/application/dto"
	"github.com/jhoicas/pos-bodegas/internal/domain"
	"github.com/jhoicas/pos-bodegas/internal/domain/entity"
	"github.com/jhoicas/pos-bodegas/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock no vive aquí:
// se maneja exclusivamente vía movimientos del ledger.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto activo. Los precios llegan como string decimal
// para no perder precisión en el JSON.
func (uc *ProductUseCase) Create(companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	unitPrice, err := parsePrice(in.UnitPrice, false)
	if err != nil {
		return nil, err
	}
	costPrice, err := parsePrice(in.CostPrice, true)
	if err != nil {
		return nil, err
	}
	taxRate, err := parsePrice(in.TaxRate, true)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Code:      in.Code,
		Name:      in.Name,
		Barcode:   in.Barcode,
		UnitPrice: unitPrice,
		CostPrice: costPrice,
		TaxRate:   taxRate,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	// El repo traduce la violación del índice único (company, code) a ErrDuplicate.
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto, validando que pertenezca a la empresa.
func (uc *ProductUseCase) GetByID(companyID, id string) (*dto.ProductResponse, error) {
	product, err := uc.getOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update modifica los campos no nulos del producto. El código no se cambia.
func (uc *ProductUseCase) Update(companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.getOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	if in.UnitPrice != nil {
		price, err := parsePrice(*in.UnitPrice, false)
		if err != nil {
			return nil, err
		}
		product.UnitPrice = price
	}
	if in.CostPrice != nil {
		price, err := parsePrice(*in.CostPrice, true)
		if err != nil {
			return nil, err
		}
		product.CostPrice = price
	}
	if in.TaxRate != nil {
		rate, err := parsePrice(*in.TaxRate, true)
		if err != nil {
			return nil, err
		}
		product.TaxRate = rate
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista los productos de la empresa.
func (uc *ProductUseCase) List(companyID string, page dto.PageRequest) ([]dto.ProductResponse, error) {
	products, err := uc.repo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		if p.IsDeleted {
			continue
		}
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// Search busca productos por nombre o código, ignorando tildes y mayúsculas
// ("azucar" encuentra "Azúcar").
func (uc *ProductUseCase) Search(companyID, query string, limit int) ([]dto.ProductResponse, error) {
	normalized := NormalizeSearch(query)
	if normalized == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 20
	}
	products, err := uc.repo.Search(companyID, normalized, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// Delete marca el producto como eliminado.
func (uc *ProductUseCase) Delete(companyID, id string) error {
	if _, err := uc.getOwned(companyID, id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}

func (uc *ProductUseCase) getOwned(companyID, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.IsDeleted {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return product, nil
}

// NormalizeSearch baja a minúsculas y elimina marcas diacríticas (NFD +
// remoción de Mn + NFC) para comparar texto con y sin tildes.
func NormalizeSearch(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

func parsePrice(s string, optional bool) (decimal.Decimal, error) {
	if s == "" {
		if optional {
			return decimal.Zero, nil
		}
		return decimal.Zero, domain.ErrInvalidInput
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return d, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:        p.ID,
		Code:      p.Code,
		Name:      p.Name,
		Barcode:   p.Barcode,
		UnitPrice: p.UnitPrice.StringFixed(2),
		CostPrice: p.CostPrice.StringFixed(2),
		TaxRate:   p.TaxRate.StringFixed(2),
		IsActive:  p.IsActive,
	}
}
