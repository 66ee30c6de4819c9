package querying

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ngxdigital/dash-metrics-api/infrastructure/repository/mocks"
	"github.com/ngxdigital/dash-metrics-api/internal/domain"
)

type routerMocks struct {
	tenants     *mocks.MockTenantRepository
	adMetrics   *mocks.MockAdMetricRepository
	sales       *mocks.MockSaleRepository
	provisioner *mocks.MockTableProvisioner
}

func newRouter(t *testing.T) (QueryRouter, routerMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := routerMocks{
		tenants:     mocks.NewMockTenantRepository(ctrl),
		adMetrics:   mocks.NewMockAdMetricRepository(ctrl),
		sales:       mocks.NewMockSaleRepository(ctrl),
		provisioner: mocks.NewMockTableProvisioner(ctrl),
	}

	return NewService(m.tenants, m.adMetrics, m.sales, m.provisioner), m
}

func TestExecute(t *testing.T) {
	t.Run("configuracoes retorna clientes ativos", func(t *testing.T) {
		router, m := newRouter(t)

		m.tenants.EXPECT().List(true).Return([]*domain.Tenant{
			{Name: "SA Veículos", Slug: "saveiculos-dash"},
		}, nil)

		rows := router.Execute("SELECT * FROM configuracoes ORDER BY created_at DESC")

		require.Len(t, rows, 1)
		assert.Equal(t, "SA Veículos", rows[0]["nome"])
		assert.Equal(t, "saveiculos-dash", rows[0]["slug"])
	})

	t.Run("information_schema lista o catálogo de tabelas", func(t *testing.T) {
		router, m := newRouter(t)

		m.provisioner.EXPECT().ListMetricTables().Return([]string{
			"dash_ngx_veiculos_rows",
			"dash_sa_veiculos_rows",
		}, nil)

		rows := router.Execute("SELECT table_name FROM information_schema.tables WHERE table_schema = 'public'")

		require.Len(t, rows, 5)
		assert.Equal(t, "configuracoes", rows[0]["table_name"])
		assert.Equal(t, "dash_ngx_veiculos_rows", rows[1]["table_name"])
		assert.Equal(t, "dash_ngx_veiculos_vendas", rows[2]["table_name"])
		assert.Equal(t, "dash_sa_veiculos_rows", rows[3]["table_name"])
		assert.Equal(t, "dash_sa_veiculos_vendas", rows[4]["table_name"])
	})

	t.Run("despejo de tabela de métricas com teto de linhas", func(t *testing.T) {
		router, m := newRouter(t)

		metrics := make([]*domain.AdMetric, 0, maxDumpRows+20)
		for i := 0; i < maxDumpRows+20; i++ {
			metrics = append(metrics, &domain.AdMetric{
				AdName:      fmt.Sprintf("ANUNCIO %d", i),
				AmountSpent: "1.00",
			})
		}

		m.adMetrics.EXPECT().ListByTenant("saveiculos-dash", gomock.Nil()).Return(metrics, nil)

		rows := router.Execute("SELECT * FROM dash_sa_veiculos_rows")

		require.Len(t, rows, maxDumpRows)
		assert.Equal(t, "ANUNCIO 0", rows[0]["nome_anuncio"])
	})

	t.Run("despejo de tabela de vendas", func(t *testing.T) {
		router, m := newRouter(t)

		m.sales.EXPECT().ListByTenant("saveiculos-dash", gomock.Nil()).Return([]*domain.Sale{
			{AdTitle: "HILUX SW4 - 23/24", VehicleAmount: 98000},
		}, nil)

		rows := router.Execute("SELECT * FROM public.dash_sa_veiculos_vendas")

		require.Len(t, rows, 1)
		assert.Equal(t, "HILUX SW4 - 23/24", rows[0]["anuncio_titulo"])
	})

	t.Run("COUNT em tabela de métricas", func(t *testing.T) {
		router, m := newRouter(t)

		m.adMetrics.EXPECT().CountByTenant("saveiculos-dash").Return(42, nil)

		rows := router.Execute("SELECT COUNT(*) FROM dash_sa_veiculos_rows")

		require.Len(t, rows, 1)
		assert.Equal(t, 42, rows[0]["count"])
	})

	t.Run("falha de backend vira resultado vazio", func(t *testing.T) {
		router, m := newRouter(t)

		m.adMetrics.EXPECT().ListByTenant("saveiculos-dash", gomock.Nil()).Return(nil, errors.New("connection refused"))

		rows := router.Execute("SELECT * FROM dash_sa_veiculos_rows")

		assert.Empty(t, rows)
	})

	t.Run("padrão desconhecido vira resultado vazio", func(t *testing.T) {
		router, _ := newRouter(t)

		assert.Empty(t, router.Execute("UPDATE configuracoes SET ativo = false"))
		assert.Empty(t, router.Execute("DROP TABLE dash_sa_veiculos_rows"))
		assert.Empty(t, router.Execute(""))
	})
}

func TestListTables(t *testing.T) {
	t.Run("inclui legado e pares de tabelas", func(t *testing.T) {
		router, m := newRouter(t)

		m.provisioner.EXPECT().ListMetricTables().Return([]string{"dash_sa_veiculos_rows"}, nil)

		tables, err := router.ListTables()

		require.NoError(t, err)
		// saveiculos-dash é o slug legado de dash_sa_veiculos
		assert.Equal(t, []string{"configuracoes", "dash_sa_veiculos_rows", "dash_sa_veiculos_vendas"}, tables)
	})

	t.Run("propaga erro de catálogo", func(t *testing.T) {
		router, m := newRouter(t)

		m.provisioner.EXPECT().ListMetricTables().Return(nil, errors.New("connection refused"))

		_, err := router.ListTables()

		assert.Error(t, err)
	})
}
