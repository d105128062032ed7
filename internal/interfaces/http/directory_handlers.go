package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-bodegas/internal/application/dto"
	"github.com/jhoicas/pos-bodegas/internal/application/usecase"
	"github.com/jhoicas/pos-bodegas/internal/domain"
)

// directoryError mapea los errores de dominio del directorio a HTTP.
func directoryError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe un recurso con esos datos"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	page.DefaultPage()
	return page
}

// CompanyHandler maneja el CRUD de empresas.
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

// NewCompanyHandler construye el handler.
func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	company, err := h.uc.Create(in)
	if err != nil {
		return directoryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(company)
}

func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	company, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return directoryError(c, err)
	}
	return c.JSON(company)
}

func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	company, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return directoryError(c, err)
	}
	return c.JSON(company)
}

func (h *CompanyHandler) List(c *fiber.Ctx) error {
	companies, err := h.uc.List(pageFromQuery(c))
	if err != nil {
		return directoryError(c, err)
	}
	return c.JSON(companies)
}

// WarehouseHandler maneja el CRUD de bodegas (protegido).
type WarehouseHandler struct {
	uc *usecase.WarehouseUseCase
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(uc *usecase.WarehouseUseCase) *WarehouseHandler {
	return &WarehouseHandler{uc: uc}
}

func (h *WarehouseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	warehouse, err := h.uc.Create(GetCompanyID(c), in)
	if err != nil {
		return directoryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(warehouse)
}

func (h *WarehouseHandler) GetByID(c *fiber.Ctx) error {
	warehouse, err := h.uc.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return directoryError(c, err)
	}
	return c.JSON(warehouse)
}

func (h *WarehouseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	warehouse, err := h.uc.Update(GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return directoryError(c, err)
	}
	return c.JSON(warehouse)
}

func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	warehouses, err := h.uc.List(GetCompanyID(c), pageFromQuery(c))
	if err != nil {
		return directoryError(c, err)
	}
	return c.JSON(warehouses)
}

func (h *WarehouseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetCompanyID(c), c.Params("id")); err != nil {
		return directoryError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ProductHandler maneja el CRUD y búsqueda de productos (protegido).
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	product, err := h.uc.Create(GetCompanyID(c), in)
	if err != nil {
		return directoryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	product, err := h.uc.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return directoryError(c, err)
	}
	return c.JSON(product)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	product, err := h.uc.Update(GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return directoryError(c, err)
	}
	return c.JSON(product)
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.uc.List(GetCompanyID(c), pageFromQuery(c))
	if err != nil {
		return directoryError(c, err)
	}
	return c.JSON(products)
}

// Search busca productos por nombre, código o barcode (?q=).
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	products, err := h.uc.Search(GetCompanyID(c), c.Query("q"), c.QueryInt("limit"))
	if err != nil {
		return directoryError(c, err)
	}
	return c.JSON(products)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetCompanyID(c), c.Params("id")); err != nil {
		return directoryError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SupplierHandler maneja el CRUD de proveedores (protegido).
type SupplierHandler struct {
	uc *usecase.SupplierUseCase
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(uc *usecase.SupplierUseCase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	supplier, err := h.uc.Create(GetCompanyID(c), in)
	if err != nil {
		return directoryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(supplier)
}

func (h *SupplierHandler) GetByID(c *fiber.Ctx) error {
	supplier, err := h.uc.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return directoryError(c, err)
	}
	return c.JSON(supplier)
}

func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	supplier, err := h.uc.Update(GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return directoryError(c, err)
	}
	return c.JSON(supplier)
}

func (h *SupplierHandler) List(c *fiber.Ctx) error {
	suppliers, err := h.uc.List(GetCompanyID(c), pageFromQuery(c))
	if err != nil {
		return directoryError(c, err)
	}
	return c.JSON(suppliers)
}

func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetCompanyID(c), c.Params("id")); err != nil {
		return directoryError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
