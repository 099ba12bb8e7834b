package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hisaabb-api/internal/application/auth"
	"github.com/jhoicas/hisaabb-api/internal/application/dto"
	"github.com/jhoicas/hisaabb-api/internal/application/usecase"
	"github.com/jhoicas/hisaabb-api/internal/domain/access"
	"github.com/jhoicas/hisaabb-api/internal/domain/dashboard"
	"github.com/jhoicas/hisaabb-api/internal/domain/entity"
	"github.com/jhoicas/hisaabb-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/hisaabb-api/internal/interfaces/http"
	"github.com/jhoicas/hisaabb-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// buildAPI arma el router completo sobre repositorios en memoria.
// ──────────────────────────────────────────────────────────────────────────────

func buildAPI(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	resolver := access.NewResolver(nil)
	dashboardUC, err := usecase.NewDashboardUseCase(store.Companies(), store.Users(), dashboard.NewComposer(resolver), 16, logger.Nop())
	require.NoError(t, err)

	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(store.Users(), store.Companies(), store, auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}),
		CompanyUC:     usecase.NewCompanyUseCase(store.Companies()),
		UserUC:        usecase.NewUserUseCase(store.Users()),
		ModuleService: usecase.NewModuleService(store.Companies(), resolver),
		DashboardUC:   dashboardUC,
		JWTSecret:     testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// registerOwner da de alta un retailer y devuelve la respuesta con el token del owner.
func registerOwner(t *testing.T, app *fiber.App) dto.RegisterBusinessResponse {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/auth/register-business", "", dto.RegisterBusinessRequest{
		CompanyName: "Kirana Store", BusinessType: "retailer", OwnerName: "Asha",
		Email: "asha@kirana.in", Password: "supersecret",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.RegisterBusinessResponse](t, resp)
}

// loginAs crea con el token del owner un usuario con el rol indicado y devuelve su token.
func loginAs(t *testing.T, app *fiber.App, ownerToken, email, role string) string {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/users", ownerToken, dto.CreateUserRequest{
		Email: email, Password: "supersecret", Role: role,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: "supersecret"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[dto.LoginResponse](t, resp).Token
}

func ids(ms []entity.ModuleDescriptor) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.ID
	}
	return out
}

// ── Dashboard ────────────────────────────────────────────────────────────────

func TestAPI_DashboardOwnerRetailer(t *testing.T) {
	app := buildAPI(t)
	owner := registerOwner(t, app)

	resp := call(t, app, http.MethodGet, "/api/dashboard/config", owner.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cfg := decode[entity.DashboardConfig](t, resp)

	assert.Equal(t, entity.BusinessRetailer, cfg.BusinessType)
	assert.Equal(t, entity.RoleOwner, cfg.Role)
	assert.Contains(t, ids(cfg.Modules), "owner-analytics")
	assert.Contains(t, ids(cfg.Modules), "inventory-batches")
	assert.LessOrEqual(t, len(cfg.Layout.Sidebar), 8)
	assert.NotEmpty(t, cfg.Layout.QuickActions)
	assert.NotEmpty(t, cfg.KPIs)
}

func TestAPI_DashboardCajero(t *testing.T) {
	app := buildAPI(t)
	owner := registerOwner(t, app)
	token := loginAs(t, app, owner.Token, "cajero@kirana.in", "cashier")

	resp := call(t, app, http.MethodGet, "/api/dashboard/config", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cfg := decode[entity.DashboardConfig](t, resp)

	assert.NotContains(t, ids(cfg.Modules), "owner-analytics")
	require.Len(t, cfg.Layout.QuickActions, 1)
	assert.Equal(t, "new-sale", cfg.Layout.QuickActions[0].ID)
}

func TestAPI_SinTokenRetorna401(t *testing.T) {
	app := buildAPI(t)
	resp := call(t, app, http.MethodGet, "/api/dashboard/config", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ── Módulos ──────────────────────────────────────────────────────────────────

func TestAPI_ModuleAccess(t *testing.T) {
	app := buildAPI(t)
	owner := registerOwner(t, app)

	resp := call(t, app, http.MethodGet, "/api/modules/inventory-batches/access", owner.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.ModuleAccessResponse](t, resp)
	assert.True(t, out.HasAccess)

	resp = call(t, app, http.MethodGet, "/api/modules/production-orders/access", owner.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, decode[dto.ModuleAccessResponse](t, resp).HasAccess)
}

func TestAPI_CambioDeTipoDeNegocio(t *testing.T) {
	app := buildAPI(t)
	owner := registerOwner(t, app)

	resp := call(t, app, http.MethodPatch, "/api/companies/me/business-type", owner.Token, dto.UpdateBusinessTypeRequest{BusinessType: "service"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodGet, "/api/modules/specialized", owner.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.ModuleListResponse](t, resp)
	assert.Equal(t, "service", list.BusinessType)
	assert.Contains(t, ids(list.Items), "appointments")
	assert.NotContains(t, ids(list.Items), "inventory-batches")
}

func TestAPI_CambioDeTipoDeNegocioSoloOwner(t *testing.T) {
	app := buildAPI(t)
	owner := registerOwner(t, app)
	token := loginAs(t, app, owner.Token, "gerente@kirana.in", "manager")

	resp := call(t, app, http.MethodPatch, "/api/companies/me/business-type", token, dto.UpdateBusinessTypeRequest{BusinessType: "service"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAPI_EmpresaDelTokenInexistente(t *testing.T) {
	app := buildAPI(t)
	token := signToken(t, testUserID, "empresa-borrada", "owner")

	resp := call(t, app, http.MethodGet, "/api/modules", token[len("Bearer "):], nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/users", token[len("Bearer "):], nil)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "COMPANY_NOT_FOUND")
}

// ── Staff ────────────────────────────────────────────────────────────────────

func TestAPI_StaffBloqueadoParaCajero(t *testing.T) {
	app := buildAPI(t)
	owner := registerOwner(t, app)
	token := loginAs(t, app, owner.Token, "cajero@kirana.in", "cashier")

	resp := call(t, app, http.MethodGet, "/api/users", token, nil)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, string(body), "MODULE_DISABLED")
}

func TestAPI_OwnerGestionaPermisos(t *testing.T) {
	app := buildAPI(t)
	owner := registerOwner(t, app)

	resp := call(t, app, http.MethodPost, "/api/users", owner.Token, dto.CreateUserRequest{
		Email: "ravi@kirana.in", Password: "supersecret", Role: "cashier",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.UserResponse](t, resp)

	resp = call(t, app, http.MethodPut, "/api/users/"+created.ID+"/permissions", owner.Token, dto.UpdatePermissionsRequest{Permissions: []string{"volar"}})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, app, http.MethodPut, "/api/users/"+created.ID+"/permissions", owner.Token, dto.UpdatePermissionsRequest{Permissions: []string{"view_reports"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[dto.UserResponse](t, resp)
	assert.Equal(t, []string{"view_reports"}, updated.Permissions)
	assert.Contains(t, updated.EffectivePermissions, "create_sales")

	resp = call(t, app, http.MethodGet, "/api/users", owner.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[dto.UserListResponse](t, resp).Items, 2)
}

func TestAPI_RegistroPublicoSoloStaff(t *testing.T) {
	app := buildAPI(t)
	owner := registerOwner(t, app)

	resp := call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email: "intruso@kirana.in", Password: "supersecret", CompanyID: owner.Company.ID, Role: "manager",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email: "intruso@kirana.in", Password: "supersecret", CompanyID: owner.Company.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "intruso@kirana.in", Password: "supersecret"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := decode[dto.LoginResponse](t, resp).Token

	// Un staff no habilita staff-management.
	resp = call(t, app, http.MethodGet, "/api/users", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAPI_ManagerNoSeConcedePermisosDeOwner(t *testing.T) {
	app := buildAPI(t)
	owner := registerOwner(t, app)
	token := loginAs(t, app, owner.Token, "gerente@kirana.in", "manager")

	resp := call(t, app, http.MethodGet, "/api/users", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var managerID, ownerID string
	for _, u := range decode[dto.UserListResponse](t, resp).Items {
		switch u.Email {
		case "gerente@kirana.in":
			managerID = u.ID
		case "asha@kirana.in":
			ownerID = u.ID
		}
	}
	require.NotEmpty(t, managerID)
	require.NotEmpty(t, ownerID)

	for _, perm := range []string{"view_financials", "manage_settings"} {
		resp = call(t, app, http.MethodPut, "/api/users/"+managerID+"/permissions", token, dto.UpdatePermissionsRequest{Permissions: []string{perm}})
		resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, perm)
	}

	resp = call(t, app, http.MethodPut, "/api/users/"+ownerID+"/permissions", token, dto.UpdatePermissionsRequest{})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/users", token, dto.CreateUserRequest{
		Email: "socio@kirana.in", Password: "supersecret", Role: "staff", Permissions: []string{"view_financials"},
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/users", owner.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, u := range decode[dto.UserListResponse](t, resp).Items {
		if u.ID == managerID {
			assert.Empty(t, u.Permissions)
			assert.NotContains(t, u.EffectivePermissions, "view_financials")
		}
	}
}

// ── Catálogo ─────────────────────────────────────────────────────────────────

func TestAPI_PreviewSoloOwner(t *testing.T) {
	app := buildAPI(t)
	owner := registerOwner(t, app)
	token := loginAs(t, app, owner.Token, "staff@kirana.in", "staff")

	resp := call(t, app, http.MethodGet, "/api/catalog/preview?business_type=manufacturer&role=staff", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/catalog/preview?business_type=manufacturer&role=staff", owner.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cfg := decode[entity.DashboardConfig](t, resp)
	assert.Equal(t, entity.BusinessManufacturer, cfg.BusinessType)
	assert.Contains(t, ids(cfg.Modules), "production-orders")

	resp = call(t, app, http.MethodGet, "/api/catalog/preview?business_type=nave&role=staff", owner.Token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_CatalogoCompleto(t *testing.T) {
	app := buildAPI(t)
	owner := registerOwner(t, app)

	resp := call(t, app, http.MethodGet, "/api/catalog/modules", owner.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.CatalogModulesResponse](t, resp)
	assert.NotEmpty(t, out.Common)
	assert.NotEmpty(t, out.Specialized)

	resp = call(t, app, http.MethodGet, "/api/catalog/kpis", owner.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, decode[[]entity.KPIConfig](t, resp))
}

func TestAPI_CompanyDeOtroTenantNoVisible(t *testing.T) {
	app := buildAPI(t)
	owner := registerOwner(t, app)

	resp := call(t, app, http.MethodGet, "/api/companies/"+owner.Company.ID, owner.Token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/companies/otra-empresa", owner.Token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_LoginCredencialesInvalidas(t *testing.T) {
	app := buildAPI(t)
	registerOwner(t, app)

	resp := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "asha@kirana.in", Password: "incorrecta"})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
