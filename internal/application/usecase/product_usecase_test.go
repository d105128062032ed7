package usecase_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-bodegas/internal/application/dto"
	"github.com/jhoicas/pos-bodegas/internal/application/usecase"
	"github.com/jhoicas/pos-bodegas/internal/domain"
	"github.com/jhoicas/pos-bodegas/internal/domain/entity"
	"github.com/jhoicas/pos-bodegas/internal/infrastructure/memory"
)

const fxCompany = "empresa-1"

func newProductUC(t *testing.T) (*usecase.ProductUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return usecase.NewProductUseCase(memory.NewProductRepository(store)), store
}

// NormalizeSearch quita acentos, baja a minúsculas y recorta espacios.
func TestNormalizeSearch(t *testing.T) {
	cases := map[string]string{
		"Azúcar":       "azucar",
		"  CAFÉ  ":     "cafe",
		"Niño Ñandú":   "nino nandu",
		"arroz blanco": "arroz blanco",
	}
	for in, want := range cases {
		assert.Equal(t, want, usecase.NormalizeSearch(in), "entrada %q", in)
	}
}

// La búsqueda encuentra por nombre sin importar acentos ni mayúsculas, y
// también por código.
func TestSearch_InsensibleAAcentos(t *testing.T) {
	uc, _ := newProductUC(t)

	_, err := uc.Create(fxCompany, dto.CreateProductRequest{
		Code: "AZU-001", Name: "Azúcar Refinada 1kg", UnitPrice: "4500",
	})
	require.NoError(t, err)
	_, err = uc.Create(fxCompany, dto.CreateProductRequest{
		Code: "CAF-001", Name: "Café Molido 500g", UnitPrice: "18900",
	})
	require.NoError(t, err)

	found, err := uc.Search(fxCompany, "azucar", 0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "AZU-001", found[0].Code)

	found, err = uc.Search(fxCompany, "CAFE", 0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "CAF-001", found[0].Code)

	found, err = uc.Search(fxCompany, "caf-001", 0)
	require.NoError(t, err)
	assert.Len(t, found, 1, "la búsqueda por código también aplica")

	_, err = uc.Search(fxCompany, "   ", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "consulta vacía tras normalizar")
}

// El código de producto es único por empresa e inmutable.
func TestProduct_CodigoUnicoEInmutable(t *testing.T) {
	uc, _ := newProductUC(t)

	created, err := uc.Create(fxCompany, dto.CreateProductRequest{Code: "SKU-1", Name: "Producto Uno", UnitPrice: "100"})
	require.NoError(t, err)

	_, err = uc.Create(fxCompany, dto.CreateProductRequest{Code: "SKU-1", Name: "Producto Repetido", UnitPrice: "200"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	newName := "Producto Uno Renombrado"
	updated, err := uc.Update(fxCompany, created.ID, dto.UpdateProductRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)
	assert.Equal(t, "SKU-1", updated.Code, "el código no cambia en updates")
}

// Un producto de otra empresa no es visible ni modificable.
func TestProduct_AislamientoPorEmpresa(t *testing.T) {
	uc, store := newProductUC(t)

	require.NoError(t, memory.NewProductRepository(store).Create(&entity.Product{
		ID: "ajeno", CompanyID: "otra-empresa", Code: "X-1", Name: "Ajeno",
		UnitPrice: decimal.NewFromInt(100), IsActive: true, CreatedAt: time.Now(),
	}))

	_, err := uc.GetByID(fxCompany, "ajeno")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = uc.Delete(fxCompany, "ajeno")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
