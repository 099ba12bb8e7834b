package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jhoicas/hisaabb-api/internal/domain"
	"github.com/jhoicas/hisaabb-api/internal/domain/entity"
	"github.com/jhoicas/hisaabb-api/internal/domain/repository"
	"github.com/jhoicas/hisaabb-api/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_OnboardingConErrorNoDejaEscrituras(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	boom := errors.New("boom")

	err := s.RunOnboarding(ctx, func(c repository.CompanyRepository, u repository.UserRepository) error {
		require.NoError(t, c.Create(ctx, &entity.Company{ID: "c1", BusinessType: entity.BusinessRetailer}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.Companies().GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

// El rollback deshace solo lo escrito por la transacción: lo que otro cliente
// escribió mientras fn corría sigue en el almacén.
func TestStore_OnboardingConErrorConservaEscriturasConcurrentes(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: "u0", Email: "previo@kirana.in"}))
	boom := errors.New("boom")

	err := s.RunOnboarding(ctx, func(c repository.CompanyRepository, u repository.UserRepository) error {
		require.NoError(t, c.Create(ctx, &entity.Company{ID: "tx-company", BusinessType: entity.BusinessRetailer}))
		require.NoError(t, u.Create(ctx, &entity.User{ID: "tx-user", Email: "tx@kirana.in", CompanyID: "tx-company"}))
		require.NoError(t, u.UpdatePermissions(ctx, "u0", []entity.Permission{entity.PermViewReports}))

		done := make(chan struct{})
		go func() {
			defer close(done)
			assert.NoError(t, s.Companies().Create(ctx, &entity.Company{ID: "otra", BusinessType: entity.BusinessTrader}))
			assert.NoError(t, s.Users().Create(ctx, &entity.User{ID: "u-otra", Email: "otra@trader.in", CompanyID: "otra"}))
		}()
		<-done
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.Companies().GetByID(ctx, "tx-company")
	require.NoError(t, err)
	assert.Nil(t, got)
	user, err := s.Users().GetByID(ctx, "tx-user")
	require.NoError(t, err)
	assert.Nil(t, user)

	prev, err := s.Users().GetByID(ctx, "u0")
	require.NoError(t, err)
	require.NotNil(t, prev)
	assert.Empty(t, prev.Permissions)

	other, err := s.Companies().GetByID(ctx, "otra")
	require.NoError(t, err)
	assert.NotNil(t, other)
	otherUser, err := s.Users().GetByEmail(ctx, "otra@trader.in")
	require.NoError(t, err)
	assert.NotNil(t, otherUser)
}

func TestStore_OnboardingExitosoPersiste(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	err := s.RunOnboarding(ctx, func(c repository.CompanyRepository, u repository.UserRepository) error {
		require.NoError(t, c.Create(ctx, &entity.Company{ID: "c1", BusinessType: entity.BusinessRetailer}))
		return u.Create(ctx, &entity.User{ID: "u1", Email: "a@b.co", CompanyID: "c1"})
	})
	require.NoError(t, err)

	got, err := s.Users().GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestStore_GetBusinessTypeEmpresaInexistente(t *testing.T) {
	_, err := memory.NewStore().Companies().GetBusinessType(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_EmailDuplicado(t *testing.T) {
	ctx := context.Background()
	users := memory.NewStore().Users()
	require.NoError(t, users.Create(ctx, &entity.User{ID: "u1", Email: "a@b.co"}))
	assert.ErrorIs(t, users.Create(ctx, &entity.User{ID: "u2", Email: "A@B.co"}), domain.ErrEmailAlreadyExists)
}
