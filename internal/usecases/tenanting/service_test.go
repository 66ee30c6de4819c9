package tenanting

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ngxdigital/dash-metrics-api/infrastructure/repository/mocks"
	"github.com/ngxdigital/dash-metrics-api/internal/domain"
	"github.com/ngxdigital/dash-metrics-api/pkg/apiErrors"
)

func newService(t *testing.T) (TenantService, *mocks.MockTenantRepository, *mocks.MockTableProvisioner) {
	t.Helper()

	ctrl := gomock.NewController(t)
	tenantRepo := mocks.NewMockTenantRepository(ctrl)
	provisioner := mocks.NewMockTableProvisioner(ctrl)

	return NewService(tenantRepo, provisioner, NewAuditLog()), tenantRepo, provisioner
}

func validRequest() *domain.CreateTenantRequest {
	return &domain.CreateTenantRequest{
		Name:         "SA Veículos",
		Slug:         "saveiculos-dash",
		BusinessType: "vendas",
	}
}

func TestCreateTenant(t *testing.T) {
	t.Run("cadastra cliente e provisiona tabelas", func(t *testing.T) {
		service, tenantRepo, provisioner := newService(t)

		tenantRepo.EXPECT().GetBySlug("saveiculos-dash").Return(nil, nil)
		tenantRepo.EXPECT().Insert(gomock.Any()).DoAndReturn(func(tenant *domain.Tenant) (*domain.Tenant, error) {
			assert.Equal(t, "SA Veículos", tenant.Name)
			assert.Equal(t, "vendas", tenant.BusinessType.Code())

			created := *tenant
			created.ID = 7
			created.Active = true
			return &created, nil
		})
		provisioner.EXPECT().CreateTenantTables("saveiculos-dash").Return(nil)

		created, err := service.CreateTenant(validRequest())

		require.NoError(t, err)
		assert.Equal(t, 7, created.ID)
		assert.True(t, created.Active)

		entries := service.AuditEntries()
		require.Len(t, entries, 1)
		assert.Equal(t, "create", entries[0].Action)
		assert.Equal(t, "saveiculos-dash", entries[0].Slug)
		assert.NotEmpty(t, entries[0].ID)
	})

	t.Run("rejeita slug duplicado", func(t *testing.T) {
		service, tenantRepo, _ := newService(t)

		tenantRepo.EXPECT().GetBySlug("saveiculos-dash").Return(&domain.Tenant{Slug: "saveiculos-dash"}, nil)

		created, err := service.CreateTenant(validRequest())

		require.Error(t, err)
		assert.Nil(t, created)
		assert.ErrorIs(t, err, ErrTenantAlreadyExists)

		var tenantErr *TenantError
		require.ErrorAs(t, err, &tenantErr)
		assert.Equal(t, apiErrors.ErrTenantAlreadyExists, tenantErr.Code)
	})

	t.Run("desfaz o cadastro quando o DDL falha", func(t *testing.T) {
		service, tenantRepo, provisioner := newService(t)

		tenantRepo.EXPECT().GetBySlug("saveiculos-dash").Return(nil, nil)
		tenantRepo.EXPECT().Insert(gomock.Any()).DoAndReturn(func(tenant *domain.Tenant) (*domain.Tenant, error) {
			created := *tenant
			created.ID = 7
			return &created, nil
		})
		provisioner.EXPECT().CreateTenantTables("saveiculos-dash").Return(errors.New("permission denied"))
		tenantRepo.EXPECT().Delete("saveiculos-dash").Return(nil)

		created, err := service.CreateTenant(validRequest())

		require.Error(t, err)
		assert.Nil(t, created)
		assert.ErrorIs(t, err, ErrProvisionTables)
		assert.Empty(t, service.AuditEntries())
	})

	t.Run("valida campos obrigatórios", func(t *testing.T) {
		service, _, _ := newService(t)

		_, err := service.CreateTenant(&domain.CreateTenantRequest{Slug: "abc-dash"})
		assert.ErrorIs(t, err, ErrNameRequired)

		_, err = service.CreateTenant(&domain.CreateTenantRequest{Name: "Cliente"})
		assert.ErrorIs(t, err, ErrSlugRequired)

		_, err = service.CreateTenant(&domain.CreateTenantRequest{Name: "Cliente", Slug: "Maiúsculo_Dash"})
		assert.ErrorIs(t, err, ErrInvalidSlug)
	})
}

func TestDeleteTenant(t *testing.T) {
	t.Run("remove tabelas e configuração", func(t *testing.T) {
		service, tenantRepo, provisioner := newService(t)

		tenantRepo.EXPECT().GetBySlug("saveiculos-dash").Return(&domain.Tenant{Name: "SA Veículos", Slug: "saveiculos-dash"}, nil)
		provisioner.EXPECT().DropTenantTables("saveiculos-dash").Return(nil)
		tenantRepo.EXPECT().Delete("saveiculos-dash").Return(nil)

		err := service.DeleteTenant("saveiculos-dash")

		require.NoError(t, err)

		entries := service.AuditEntries()
		require.Len(t, entries, 1)
		assert.Equal(t, "delete", entries[0].Action)
	})

	t.Run("remove a configuração mesmo com falha no DROP", func(t *testing.T) {
		service, tenantRepo, provisioner := newService(t)

		tenantRepo.EXPECT().GetBySlug("saveiculos-dash").Return(&domain.Tenant{Slug: "saveiculos-dash"}, nil)
		provisioner.EXPECT().DropTenantTables("saveiculos-dash").Return(errors.New("table locked"))
		tenantRepo.EXPECT().Delete("saveiculos-dash").Return(nil)

		err := service.DeleteTenant("saveiculos-dash")

		require.NoError(t, err)
	})

	t.Run("cliente inexistente", func(t *testing.T) {
		service, tenantRepo, _ := newService(t)

		tenantRepo.EXPECT().GetBySlug("fantasma-dash").Return(nil, nil)

		err := service.DeleteTenant("fantasma-dash")

		assert.ErrorIs(t, err, ErrTenantNotFound)
	})
}

func TestSetTenantActive(t *testing.T) {
	t.Run("ativa e desativa com auditoria", func(t *testing.T) {
		service, tenantRepo, _ := newService(t)

		tenantRepo.EXPECT().SetActive("saveiculos-dash", false).Return(nil)
		tenantRepo.EXPECT().SetActive("saveiculos-dash", true).Return(nil)

		require.NoError(t, service.SetTenantActive("saveiculos-dash", false))
		require.NoError(t, service.SetTenantActive("saveiculos-dash", true))

		entries := service.AuditEntries()
		require.Len(t, entries, 2)
		assert.Equal(t, "deactivate", entries[0].Action)
		assert.Equal(t, "activate", entries[1].Action)
	})

	t.Run("cliente inexistente", func(t *testing.T) {
		service, tenantRepo, _ := newService(t)

		tenantRepo.EXPECT().SetActive("fantasma-dash", true).Return(sql.ErrNoRows)

		err := service.SetTenantActive("fantasma-dash", true)

		assert.ErrorIs(t, err, ErrTenantNotFound)
	})
}

func TestListTenants(t *testing.T) {
	service, tenantRepo, _ := newService(t)

	expected := []*domain.Tenant{{Slug: "saveiculos-dash"}, {Slug: "motos-sul-dash"}}
	tenantRepo.EXPECT().List(true).Return(expected, nil)

	tenants, err := service.ListTenants(true)

	require.NoError(t, err)
	assert.Equal(t, expected, tenants)
}
