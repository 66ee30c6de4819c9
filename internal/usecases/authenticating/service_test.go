package authenticating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/ngxdigital/dash-metrics-api/infrastructure/repository/mocks"
	"github.com/ngxdigital/dash-metrics-api/internal/config"
	"github.com/ngxdigital/dash-metrics-api/internal/domain"
)

func newAuthService(t *testing.T) (Authenticator, *mocks.MockUserRepository, *mocks.MockTenantRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	userRepo := mocks.NewMockUserRepository(ctrl)
	tenantRepo := mocks.NewMockTenantRepository(ctrl)

	cfg := &config.Config{SecretKey: "test-secret"}

	return NewService(userRepo, tenantRepo, cfg), userRepo, tenantRepo
}

func activeUser(t *testing.T, password string) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return &domain.User{
		ID:            10,
		Name:          "Ana",
		Lastname:      "Silva",
		Email:         "ana@ngx.com.br",
		PasswordHash:  string(hash),
		Active:        true,
		RoleID:        1,
		LinkedTenants: []string{"saveiculos-dash"},
	}
}

func TestLoginUser(t *testing.T) {
	t.Run("login com sucesso gera token com clientes vinculados", func(t *testing.T) {
		service, userRepo, _ := newAuthService(t)

		userRepo.EXPECT().GetUserByEmail("ana@ngx.com.br").Return(activeUser(t, "Senha@123"), nil)

		token, err := service.LoginUser("  Ana@NGX.com.br ", "Senha@123")

		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, 10, claims.UserID)
		assert.Equal(t, []string{"saveiculos-dash"}, claims.UserTenants)
	})

	t.Run("senha incorreta", func(t *testing.T) {
		service, userRepo, _ := newAuthService(t)

		userRepo.EXPECT().GetUserByEmail("ana@ngx.com.br").Return(activeUser(t, "Senha@123"), nil)

		_, err := service.LoginUser("ana@ngx.com.br", "errada")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("usuário desativado", func(t *testing.T) {
		service, userRepo, _ := newAuthService(t)

		user := activeUser(t, "Senha@123")
		user.Active = false
		userRepo.EXPECT().GetUserByEmail("ana@ngx.com.br").Return(user, nil)

		_, err := service.LoginUser("ana@ngx.com.br", "Senha@123")

		assert.ErrorIs(t, err, ErrUserDisabled)
	})

	t.Run("usuário inexistente", func(t *testing.T) {
		service, userRepo, _ := newAuthService(t)

		userRepo.EXPECT().GetUserByEmail("ninguem@ngx.com.br").Return(nil, nil)

		_, err := service.LoginUser("ninguem@ngx.com.br", "Senha@123")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestValidateToken(t *testing.T) {
	t.Run("token adulterado", func(t *testing.T) {
		service, _, _ := newAuthService(t)

		_, err := service.ValidateToken("cabecalho.corpo.assinatura")

		assert.Error(t, err)
	})
}

func TestGetUserLinkedTenants(t *testing.T) {
	t.Run("filtra clientes removidos e inativos", func(t *testing.T) {
		service, userRepo, tenantRepo := newAuthService(t)

		userRepo.EXPECT().GetUserLinkedTenants(10).Return([]string{"saveiculos-dash", "fantasma-dash", "inativo-dash"}, nil)
		tenantRepo.EXPECT().GetBySlug("saveiculos-dash").Return(&domain.Tenant{Slug: "saveiculos-dash", Active: true}, nil)
		tenantRepo.EXPECT().GetBySlug("fantasma-dash").Return(nil, nil)
		tenantRepo.EXPECT().GetBySlug("inativo-dash").Return(&domain.Tenant{Slug: "inativo-dash", Active: false}, nil)

		tenants, err := service.GetUserLinkedTenants(10)

		require.NoError(t, err)
		require.Len(t, tenants, 1)
		assert.Equal(t, "saveiculos-dash", tenants[0].Slug)
	})
}

func TestLinkUserTenant(t *testing.T) {
	t.Run("cliente inexistente", func(t *testing.T) {
		service, userRepo, tenantRepo := newAuthService(t)

		userRepo.EXPECT().GetUserByID(10).Return(&domain.User{ID: 10}, nil)
		tenantRepo.EXPECT().GetBySlug("fantasma-dash").Return(nil, nil)

		err := service.LinkUserTenant(10, "fantasma-dash")

		assert.Error(t, err)
	})

	t.Run("vincula cliente existente", func(t *testing.T) {
		service, userRepo, tenantRepo := newAuthService(t)

		userRepo.EXPECT().GetUserByID(10).Return(&domain.User{ID: 10}, nil)
		tenantRepo.EXPECT().GetBySlug("saveiculos-dash").Return(&domain.Tenant{Slug: "saveiculos-dash"}, nil)
		userRepo.EXPECT().LinkUserTenant(10, "saveiculos-dash").Return(nil)

		assert.NoError(t, service.LinkUserTenant(10, "saveiculos-dash"))
	})
}

func TestValidatePasswordStrength(t *testing.T) {
	service, _, _ := newAuthService(t)

	assert.NoError(t, service.ValidatePasswordStrength("Senha@123"))
	assert.Error(t, service.ValidatePasswordStrength("curta1!"))
	assert.Error(t, service.ValidatePasswordStrength("semnumero@A"))
	assert.Error(t, service.ValidatePasswordStrength("SEMMINUSCULA@1"))
	assert.Error(t, service.ValidatePasswordStrength("semespecial1A"))
}
