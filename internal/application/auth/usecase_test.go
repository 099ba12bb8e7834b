package auth_test

import (
	"context"
	"testing"

	"github.com/jhoicas/hisaabb-api/internal/application/auth"
	"github.com/jhoicas/hisaabb-api/internal/application/dto"
	"github.com/jhoicas/hisaabb-api/internal/domain"
	"github.com/jhoicas/hisaabb-api/internal/infrastructure/memory"
	"github.com/jhoicas/hisaabb-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-hisaabb"

func newAuth(s *memory.Store) *auth.AuthUseCase {
	return auth.NewAuthUseCase(s.Users(), s.Companies(), s, auth.JWTConfig{
		Secret: testSecret, ExpMinutes: 5, Issuer: "test",
	})
}

func registerKirana(t *testing.T, uc *auth.AuthUseCase) *dto.RegisterBusinessResponse {
	t.Helper()
	res, err := uc.RegisterBusiness(context.Background(), dto.RegisterBusinessRequest{
		CompanyName:  "Kirana Store",
		BusinessType: "retailer",
		OwnerName:    "Asha",
		Email:        "Asha@Kirana.in",
		Password:     "supersecret",
	})
	require.NoError(t, err)
	return res
}

func TestRegisterBusiness_CreaEmpresaYOwner(t *testing.T) {
	s := memory.NewStore()
	res := registerKirana(t, newAuth(s))

	assert.Equal(t, "retailer", res.Company.BusinessType)
	assert.Equal(t, "owner", res.User.Role)
	assert.Equal(t, "asha@kirana.in", res.User.Email)
	assert.Equal(t, res.Company.ID, res.User.CompanyID)

	id, err := jwt.Parse(testSecret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, id.UserID)
	assert.Equal(t, res.Company.ID, id.CompanyID)
	assert.Equal(t, "owner", id.Role)
}

func TestRegisterBusiness_EmailRepetidoNoCreaEmpresa(t *testing.T) {
	s := memory.NewStore()
	uc := newAuth(s)
	registerKirana(t, uc)

	_, err := uc.RegisterBusiness(context.Background(), dto.RegisterBusinessRequest{
		CompanyName: "Otra", BusinessType: "service", Email: "asha@kirana.in", Password: "supersecret",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	list, err := s.Companies().List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRegisterBusiness_ValidaEntrada(t *testing.T) {
	uc := newAuth(memory.NewStore())
	ctx := context.Background()

	_, err := uc.RegisterBusiness(ctx, dto.RegisterBusinessRequest{CompanyName: "X", BusinessType: "casino", Email: "a@b.co", Password: "supersecret"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterBusiness(ctx, dto.RegisterBusinessRequest{CompanyName: "X", BusinessType: "retailer", Email: "a@b.co", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterUser_RolPorDefectoStaff(t *testing.T) {
	uc := newAuth(memory.NewStore())
	company := registerKirana(t, uc).Company

	res, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "ravi@kirana.in", Password: "supersecret", CompanyID: company.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "staff", res.Role)
}

func TestRegisterUser_SoloAdmiteStaff(t *testing.T) {
	uc := newAuth(memory.NewStore())
	company := registerKirana(t, uc).Company
	ctx := context.Background()

	for _, role := range []string{"owner", "manager", "accountant", "cashier"} {
		_, err := uc.RegisterUser(ctx, dto.RegisterRequest{
			Email: "ravi@kirana.in", Password: "supersecret", CompanyID: company.ID, Role: role,
		})
		assert.ErrorIs(t, err, domain.ErrForbidden, role)
	}

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{
		Email: "ravi@kirana.in", Password: "supersecret", CompanyID: company.ID, Role: "rey",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	res, err := uc.RegisterUser(ctx, dto.RegisterRequest{
		Email: "ravi@kirana.in", Password: "supersecret", CompanyID: company.ID, Role: "staff",
	})
	require.NoError(t, err)
	assert.Equal(t, "staff", res.Role)
}

func TestRegisterUser_EmpresaInexistente(t *testing.T) {
	uc := newAuth(memory.NewStore())
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "ravi@kirana.in", Password: "supersecret", CompanyID: "nope",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLogin(t *testing.T) {
	uc := newAuth(memory.NewStore())
	registerKirana(t, uc)
	ctx := context.Background()

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "asha@kirana.in", Password: "supersecret"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "asha@kirana.in", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@kirana.in", Password: "supersecret"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
