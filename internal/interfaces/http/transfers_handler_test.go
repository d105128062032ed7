package http_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-bodegas/internal/application/dto"
	"github.com/jhoicas/pos-bodegas/internal/application/ledger"
	"github.com/jhoicas/pos-bodegas/internal/application/transfers"
	"github.com/jhoicas/pos-bodegas/internal/domain/entity"
	"github.com/jhoicas/pos-bodegas/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/pos-bodegas/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: app Fiber con las rutas de decisión de traslados sobre memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	transferWarehouseFrom = "bodega-origen"
	transferWarehouseTo   = "bodega-destino"
	transferProduct       = "producto-arroz"
)

type transferApp struct {
	app *fiber.App
	wf  *transfers.Workflow
}

func newTransferApp(t *testing.T, initialStock int64) *transferApp {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()

	companyRepo := memory.NewCompanyRepository(store)
	warehouseRepo := memory.NewWarehouseRepository(store)
	productRepo := memory.NewProductRepository(store)

	require.NoError(t, companyRepo.Create(&entity.Company{
		ID: testCompanyID, Name: "Empresa Test", Status: "active", CreatedAt: now,
	}))
	for _, id := range []string{transferWarehouseFrom, transferWarehouseTo} {
		require.NoError(t, warehouseRepo.Create(&entity.Warehouse{
			ID: id, CompanyID: testCompanyID, Name: id, IsActive: true, CreatedAt: now,
		}))
	}
	require.NoError(t, productRepo.Create(&entity.Product{
		ID: transferProduct, CompanyID: testCompanyID, Code: "ARROZ-1K", Name: "Arroz 1kg",
		UnitPrice: decimal.NewFromInt(4500), IsActive: true, CreatedAt: now,
	}))
	if initialStock > 0 {
		_, err := memory.NewBalanceRepository(store).SetQuantity(transferWarehouseFrom, transferProduct, initialStock, now)
		require.NoError(t, err)
	}

	runner := memory.NewTxRunner(store)
	wf := transfers.NewWorkflow(runner, ledger.NewEngine(runner), warehouseRepo, productRepo,
		memory.NewTransferRepository(store))

	handler := apphttp.NewTransferHandler(wf)
	app := fiber.New()
	grp := app.Group("/transfers", apphttp.AuthMiddleware(testJWTSecret))
	grp.Post("/:id/approve", handler.Approve)
	grp.Post("/:id/reject", handler.Reject)
	return &transferApp{app: app, wf: wf}
}

func (ta *transferApp) createPending(t *testing.T, qty int64) string {
	t.Helper()
	resp, err := ta.wf.Create(context.Background(), testCompanyID, testUserID, dto.CreateTransferRequest{
		FromWarehouseID: transferWarehouseFrom,
		ToWarehouseID:   transferWarehouseTo,
		Items:           []dto.TransferItemRequest{{ProductID: transferProduct, Quantity: qty}},
	})
	require.NoError(t, err)
	return resp.TransferID
}

func (ta *transferApp) decide(t *testing.T, action, transferID string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/transfers/"+transferID+"/"+action, nil)
	req.Header.Set("Authorization", tokenFor(t, "admin", ""))
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de aprobar/rechazar
// ──────────────────────────────────────────────────────────────────────────────

// Aprobar un traslado PENDING responde 200 con el estado COMPLETED.
func TestTransferencias_AprobarPendiente_Retorna200(t *testing.T) {
	ta := newTransferApp(t, 10)
	id := ta.createPending(t, 3)

	status, body := ta.decide(t, "approve", id)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, entity.TransferStatusCompleted, body["status"])
}

// Aprobar un traslado ya resuelto responde 400 INVALID_STATE.
func TestTransferencias_AprobarResuelto_Retorna400(t *testing.T) {
	ta := newTransferApp(t, 10)
	id := ta.createPending(t, 3)

	status, _ := ta.decide(t, "approve", id)
	require.Equal(t, fiber.StatusOK, status)

	status, body := ta.decide(t, "approve", id)
	assert.Equal(t, fiber.StatusBadRequest, status,
		"reaprobar un traslado resuelto debe responder 400")
	assert.Equal(t, "INVALID_STATE", body["code"])
}

// Rechazar un traslado ya resuelto responde 404, igual que uno inexistente.
func TestTransferencias_RechazarResuelto_Retorna404(t *testing.T) {
	ta := newTransferApp(t, 10)
	id := ta.createPending(t, 3)

	status, _ := ta.decide(t, "approve", id)
	require.Equal(t, fiber.StatusOK, status)

	status, body := ta.decide(t, "reject", id)
	assert.Equal(t, fiber.StatusNotFound, status,
		"rechazar un traslado resuelto debe responder 404")
	assert.Equal(t, "INVALID_STATE", body["code"])
}

// Aprobar o rechazar un id desconocido responde 404.
func TestTransferencias_IdDesconocido_Retorna404(t *testing.T) {
	ta := newTransferApp(t, 10)

	status, _ := ta.decide(t, "approve", "traslado-inexistente")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = ta.decide(t, "reject", "traslado-inexistente")
	assert.Equal(t, fiber.StatusNotFound, status)
}

// Aprobar sin stock suficiente responde 409 y el traslado sigue PENDING.
func TestTransferencias_AprobarSinStock_Retorna409(t *testing.T) {
	ta := newTransferApp(t, 2)
	id := ta.createPending(t, 5)

	status, body := ta.decide(t, "approve", id)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])

	got, err := ta.wf.Get(context.Background(), testCompanyID, id)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusPending, got.Status)
}
