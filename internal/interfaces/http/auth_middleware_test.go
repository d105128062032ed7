package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/pos-bodegas/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/pos-bodegas/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testWarehouse = "00000000-0000-0000-0000-000000000003"
	testIssuer    = "pos-bodegas-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con AuthMiddleware,
// RequireRole y un handler que informa la bodega del alcance del token.
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":    true,
				"role":  apphttp.GetRole(c),
				"scope": apphttp.GetWarehouseScope(c),
			})
		},
	)
	return app
}

// tokenFor genera un JWT con el rol y alcance de bodega indicados.
func tokenFor(t *testing.T, role, warehouseID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, role, warehouseID, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware + RequireRole
// ──────────────────────────────────────────────────────────────────────────────

// El usuario con rol permitido pasa y el handler ve sus claims.
func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, tokenFor(t, "admin", testWarehouse))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin debe poder acceder a ruta restringida a admin")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "admin", body["role"])
	assert.Equal(t, testWarehouse, body["scope"],
		"el alcance de bodega del token debe quedar en el contexto")
}

// Multi-rol: basta con tener uno de los roles permitidos.
func TestRequireRole_BodegueroAccedeRutaAdminOBodeguero(t *testing.T) {
	app := buildTestApp("admin", "bodeguero")
	resp := doRequest(t, app, tokenFor(t, "bodeguero", ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Rol distinto al requerido -> 403 FORBIDDEN.
func TestRequireRole_VendedorBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, tokenFor(t, "vendedor", ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

// Token con rol vacío -> 401 MISSING_ROLE.
func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, tokenFor(t, "", ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

// Sin header Authorization -> 401 MISSING_TOKEN.
func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

// Token malformado -> 401 INVALID_TOKEN.
func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

// Token firmado con otro secret -> 401.
func TestAuthMiddleware_FirmaIncorrecta_Retorna401(t *testing.T) {
	app := buildTestApp("admin")
	tok, err := pkgjwt.Generate("otro-secret", testUserID, testCompanyID, "admin", "", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests del alcance de bodega
// ──────────────────────────────────────────────────────────────────────────────

// buildScopeApp expone una ruta que aplica WarehouseScopeAllowed sobre el
// warehouse_id de la query, como hacen los handlers de inventario.
func buildScopeApp() *fiber.App {
	app := fiber.New()
	app.Get("/inventory",
		apphttp.AuthMiddleware(testJWTSecret),
		func(c *fiber.Ctx) error {
			if !apphttp.WarehouseScopeAllowed(c, c.Query("warehouse_id")) {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"code": "WAREHOUSE_SCOPE"})
			}
			return c.SendStatus(fiber.StatusOK)
		},
	)
	return app
}

func TestWarehouseScope(t *testing.T) {
	app := buildScopeApp()

	get := func(token, warehouseID string) int {
		req := httptest.NewRequest(http.MethodGet, "/inventory?warehouse_id="+warehouseID, nil)
		req.Header.Set("Authorization", token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	scoped := tokenFor(t, "vendedor", testWarehouse)
	unscoped := tokenFor(t, "admin", "")

	assert.Equal(t, http.StatusOK, get(scoped, testWarehouse),
		"el token puede operar sobre su propia bodega")
	assert.Equal(t, http.StatusForbidden, get(scoped, "otra-bodega"),
		"el token no puede operar sobre otra bodega")
	assert.Equal(t, http.StatusOK, get(unscoped, testWarehouse),
		"un token sin alcance opera sobre cualquier bodega")
	assert.Equal(t, http.StatusOK, get(unscoped, "otra-bodega"))
}
