package scheduler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ngxdigital/dash-metrics-api/infrastructure/repository/mocks"
	"github.com/ngxdigital/dash-metrics-api/internal/config"
	"github.com/ngxdigital/dash-metrics-api/internal/domain"
)

func newSyncService(t *testing.T) (*TenantTableSyncService, *mocks.MockTenantRepository, *mocks.MockTableProvisioner) {
	t.Helper()

	ctrl := gomock.NewController(t)
	tenantRepo := mocks.NewMockTenantRepository(ctrl)
	provisioner := mocks.NewMockTableProvisioner(ctrl)

	cfg := &config.Config{
		TenantTableSync: config.TenantTableSync{
			CronSchedule: "0 3 * * *",
			Enabled:      true,
		},
	}

	return NewTenantTableSyncService(tenantRepo, provisioner, cfg), tenantRepo, provisioner
}

func TestSyncTenantTables(t *testing.T) {
	t.Run("cadastra clientes descobertos como desativados", func(t *testing.T) {
		service, tenantRepo, provisioner := newSyncService(t)

		provisioner.EXPECT().ListMetricTables().Return([]string{
			"dash_gabriel_seminovos_rows",
			"dash_sa_veiculos_rows",
		}, nil)

		// gabriel-seminovos ainda não existe nas configurações
		tenantRepo.EXPECT().GetBySlug("gabriel-seminovos").Return(nil, nil)
		tenantRepo.EXPECT().Insert(gomock.Any()).DoAndReturn(func(tenant *domain.Tenant) (*domain.Tenant, error) {
			assert.Equal(t, "gabriel-seminovos", tenant.Slug)
			assert.Equal(t, "Gabriel Seminovos", tenant.Name)
			return tenant, nil
		})
		tenantRepo.EXPECT().SetActive("gabriel-seminovos", false).Return(nil)

		// saveiculos-dash já está cadastrado
		tenantRepo.EXPECT().GetBySlug("saveiculos-dash").Return(&domain.Tenant{Slug: "saveiculos-dash"}, nil)

		err := service.SyncTenantTables()

		require.NoError(t, err)
	})

	t.Run("falha de cadastro não interrompe as demais tabelas", func(t *testing.T) {
		service, tenantRepo, provisioner := newSyncService(t)

		provisioner.EXPECT().ListMetricTables().Return([]string{
			"dash_motos_sul_rows",
			"dash_ngx_veiculos_rows",
		}, nil)

		tenantRepo.EXPECT().GetBySlug("motos-sul").Return(nil, nil)
		tenantRepo.EXPECT().Insert(gomock.Any()).Return(nil, errors.New("duplicate key"))

		tenantRepo.EXPECT().GetBySlug("ngx-veiculos").Return(nil, nil)
		tenantRepo.EXPECT().Insert(gomock.Any()).DoAndReturn(func(tenant *domain.Tenant) (*domain.Tenant, error) {
			return tenant, nil
		})
		tenantRepo.EXPECT().SetActive("ngx-veiculos", false).Return(nil)

		err := service.SyncTenantTables()

		require.NoError(t, err)
	})

	t.Run("erro ao listar tabelas é propagado", func(t *testing.T) {
		service, _, provisioner := newSyncService(t)

		provisioner.EXPECT().ListMetricTables().Return(nil, errors.New("connection refused"))

		err := service.SyncTenantTables()

		assert.Error(t, err)
	})
}

func TestGetStatus(t *testing.T) {
	service, _, _ := newSyncService(t)

	status := service.GetStatus()

	assert.Equal(t, true, status["sync_enabled"])
	assert.Equal(t, "0 3 * * *", status["sync_cron"])
	assert.Equal(t, false, status["sync_running"])
}

func TestTenantNameFromSlug(t *testing.T) {
	assert.Equal(t, "Gabriel Seminovos", tenantNameFromSlug("gabriel-seminovos"))
	assert.Equal(t, "Sa Veiculos", tenantNameFromSlug("sa-veiculos-dash"))
	assert.Equal(t, "Loja", tenantNameFromSlug("loja"))
}
