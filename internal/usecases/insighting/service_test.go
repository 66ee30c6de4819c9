package insighting_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ngxdigital/dash-metrics-api/infrastructure/repository/mocks"
	"github.com/ngxdigital/dash-metrics-api/internal/domain"
	"github.com/ngxdigital/dash-metrics-api/internal/usecases/aggregating"
	"github.com/ngxdigital/dash-metrics-api/internal/usecases/insighting"
)

func newService(t *testing.T) (insighting.Insighter, *mocks.MockTenantRepository, *mocks.MockAdMetricRepository, *mocks.MockSaleRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	tenantRepo := mocks.NewMockTenantRepository(ctrl)
	metricRepo := mocks.NewMockAdMetricRepository(ctrl)
	saleRepo := mocks.NewMockSaleRepository(ctrl)

	service := insighting.NewService(tenantRepo, metricRepo, saleRepo, aggregating.NewService())

	return service, tenantRepo, metricRepo, saleRepo
}

func activeTenant(slug string, businessType string) *domain.Tenant {
	return &domain.Tenant{
		ID:           1,
		Name:         "SA Veículos",
		Slug:         slug,
		BusinessType: domain.ParseBusinessType(businessType),
		Active:       true,
	}
}

func TestGetTenantMetrics(t *testing.T) {
	t.Run("retorna registros, agregados e diagnóstico de duplicatas", func(t *testing.T) {
		service, tenantRepo, metricRepo, _ := newService(t)

		metrics := []*domain.AdMetric{
			{ID: "a1", AdName: "HILUX SW4 - 23/24", RegistrationDate: "2025-10-20", AmountSpent: "1.10", Impressions: 45, ConversationsStarted: 0},
			{ID: "a2", AdName: "HILUX SW4 - 23/24", RegistrationDate: "2025-10-21", AmountSpent: "2.00", Impressions: 55, ConversationsStarted: 1},
			{ID: "a3", AdName: "STRADA FREEDOM", RegistrationDate: "2025-10-20", AmountSpent: "5.00", Impressions: 200},
		}

		tenantRepo.EXPECT().GetBySlug("saveiculos-dash").Return(activeTenant("saveiculos-dash", "vendas"), nil)
		metricRepo.EXPECT().ListByTenant("saveiculos-dash", gomock.Any()).Return(metrics, nil)

		resp, err := service.GetTenantMetrics("saveiculos-dash", nil)

		require.NoError(t, err)
		assert.Len(t, resp.Metrics, 3)
		require.Len(t, resp.Aggregated, 2)
		assert.Equal(t, "3.10", resp.Aggregated[0].AmountSpent)
		assert.True(t, resp.Duplicates.HasDuplicates)
		assert.Equal(t, 3, resp.Duplicates.TotalOriginal)
		assert.Equal(t, 2, resp.Duplicates.TotalAfterAggregation)
	})

	t.Run("falha na busca vira conjunto vazio, não erro", func(t *testing.T) {
		service, tenantRepo, metricRepo, _ := newService(t)

		tenantRepo.EXPECT().GetBySlug("lojacenter-dash").Return(activeTenant("lojacenter-dash", "mensagens"), nil)
		metricRepo.EXPECT().ListByTenant("lojacenter-dash", gomock.Any()).Return(nil, assert.AnError)

		resp, err := service.GetTenantMetrics("lojacenter-dash", nil)

		require.NoError(t, err)
		assert.Empty(t, resp.Metrics)
		assert.Empty(t, resp.Aggregated)
		assert.False(t, resp.Duplicates.HasDuplicates)
	})

	t.Run("cliente desconhecido retorna erro", func(t *testing.T) {
		service, tenantRepo, _, _ := newService(t)

		tenantRepo.EXPECT().GetBySlug("nao-existe").Return(nil, nil)

		_, err := service.GetTenantMetrics("nao-existe", nil)

		assert.Error(t, err)
	})

	t.Run("cliente inativo retorna erro", func(t *testing.T) {
		service, tenantRepo, _, _ := newService(t)

		inactive := activeTenant("inativo-dash", "mensagens")
		inactive.Active = false
		tenantRepo.EXPECT().GetBySlug("inativo-dash").Return(inactive, nil)

		_, err := service.GetTenantMetrics("inativo-dash", nil)

		assert.Error(t, err)
	})
}

func TestGetTenantSummary(t *testing.T) {
	t.Run("resume métricas e vendas com feedbacks e cartões", func(t *testing.T) {
		service, tenantRepo, metricRepo, saleRepo := newService(t)

		metrics := []*domain.AdMetric{
			{ID: "a1", AdName: "HILUX SW4", AmountSpent: "500.00", ConversationsStarted: 50, Impressions: 10000},
			{ID: "a2", AdName: "STRADA", AmountSpent: "500.00", ConversationsStarted: 50, Impressions: 12000},
		}
		sales := []*domain.Sale{
			{ID: "v1", VehicleAmount: 50000},
			{ID: "v2", VehicleAmount: 48000},
			{ID: "v3", VehicleAmount: 52000},
			{ID: "v4", VehicleAmount: 45000},
			{ID: "v5", VehicleAmount: 55000},
		}

		tenantRepo.EXPECT().GetBySlug("saveiculos-dash").Return(activeTenant("saveiculos-dash", "vendas"), nil)
		metricRepo.EXPECT().ListByTenant("saveiculos-dash", gomock.Any()).Return(metrics, nil)
		saleRepo.EXPECT().ListByTenant("saveiculos-dash", gomock.Any()).Return(sales, nil)

		resp, err := service.GetTenantSummary("saveiculos-dash", nil)

		require.NoError(t, err)
		assert.InDelta(t, 1000.00, resp.Summary.TotalSpend, 0.001)
		assert.Equal(t, 100, resp.Summary.ConversationsStarted)
		assert.Equal(t, 5, resp.Summary.SalesCount)
		assert.InDelta(t, 250000.00, resp.Summary.TotalRevenue, 0.001)
		assert.True(t, resp.Summary.ROIDefined)

		// cpl, performance e roi presentes nessa ordem
		require.Len(t, resp.Feedbacks, 3)
		assert.Equal(t, domain.FeedbackCPL, resp.Feedbacks[0].Dimension)
		assert.Equal(t, domain.FeedbackPerformance, resp.Feedbacks[1].Dimension)
		assert.Equal(t, domain.FeedbackROI, resp.Feedbacks[2].Dimension)

		// variante vendas expõe os cartões de receita
		require.Len(t, resp.MetricCards, 5)
		assert.Equal(t, "Vendas Geradas", resp.MetricCards[1].Label)
	})

	t.Run("falha em ambas as buscas produz resumo zerado", func(t *testing.T) {
		service, tenantRepo, metricRepo, saleRepo := newService(t)

		tenantRepo.EXPECT().GetBySlug("lojacenter-dash").Return(activeTenant("lojacenter-dash", "mensagens"), nil)
		metricRepo.EXPECT().ListByTenant("lojacenter-dash", gomock.Any()).Return(nil, assert.AnError)
		saleRepo.EXPECT().ListByTenant("lojacenter-dash", gomock.Any()).Return(nil, assert.AnError)

		resp, err := service.GetTenantSummary("lojacenter-dash", nil)

		require.NoError(t, err)
		assert.Zero(t, resp.Summary.TotalSpend)
		assert.Zero(t, resp.Summary.SalesCount)
		assert.False(t, resp.Summary.ROIDefined)

		// sem conversas: item de CPL ausente e performance crítica
		require.Len(t, resp.Feedbacks, 1)
		assert.Equal(t, domain.FeedbackPerformance, resp.Feedbacks[0].Dimension)
		assert.Equal(t, domain.FeedbackCritical, resp.Feedbacks[0].Level)
	})
}

func TestResolveFilters(t *testing.T) {
	service, _, _, _ := newService(t)

	t.Run("datas explícitas válidas têm prioridade", func(t *testing.T) {
		filters, label := service.ResolveFilters("7dias", "2025-10-01", "2025-10-15")

		require.NotNil(t, filters.StartDate)
		require.NotNil(t, filters.EndDate)
		assert.Equal(t, "Período personalizado", label)
		assert.Equal(t, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), *filters.StartDate)
		assert.Equal(t, time.Date(2025, 10, 15, 23, 59, 59, 0, time.UTC), *filters.EndDate)
	})

	t.Run("datas invertidas caem no período nomeado", func(t *testing.T) {
		filters, label := service.ResolveFilters("7dias", "2025-10-15", "2025-10-01")

		require.NotNil(t, filters.StartDate)
		assert.Equal(t, "Últimos 7 dias", label)
	})

	t.Run("período desconhecido cai em 30 dias", func(t *testing.T) {
		_, label := service.ResolveFilters("qualquer-coisa", "", "")

		assert.Equal(t, "Últimos 30 dias", label)
	})
}

func TestListSales(t *testing.T) {
	t.Run("retorna vendas com totais do período", func(t *testing.T) {
		service, tenantRepo, _, saleRepo := newService(t)

		tenantRepo.EXPECT().GetBySlug("saveiculos-dash").Return(activeTenant("saveiculos-dash", "vendas"), nil)
		saleRepo.EXPECT().ListByTenant("saveiculos-dash", gomock.Any()).Return([]*domain.Sale{
			{AdTitle: "HILUX SW4 - 23/24", VehicleAmount: 98000},
			{AdTitle: "STRADA FREEDOM", VehicleAmount: 52000},
		}, nil)

		resp, err := service.ListSales("saveiculos-dash", nil)

		require.NoError(t, err)
		assert.Len(t, resp.Sales, 2)
		assert.Equal(t, 2, resp.Totals.SalesCount)
		assert.Equal(t, 150000.0, resp.Totals.TotalRevenue)
	})

	t.Run("erro de busca é propagado ao chamador", func(t *testing.T) {
		service, tenantRepo, _, saleRepo := newService(t)

		tenantRepo.EXPECT().GetBySlug("saveiculos-dash").Return(activeTenant("saveiculos-dash", "vendas"), nil)
		saleRepo.EXPECT().ListByTenant("saveiculos-dash", gomock.Any()).Return(nil, assert.AnError)

		_, err := service.ListSales("saveiculos-dash", nil)

		assert.Error(t, err)
	})
}

func TestAddSale(t *testing.T) {
	t.Run("registra venda com data informada", func(t *testing.T) {
		service, tenantRepo, _, saleRepo := newService(t)

		tenantRepo.EXPECT().GetBySlug("saveiculos-dash").Return(activeTenant("saveiculos-dash", "vendas"), nil)
		saleRepo.EXPECT().Insert("saveiculos-dash", gomock.Any()).DoAndReturn(func(slug string, sale *domain.Sale) (*domain.Sale, error) {
			assert.Equal(t, "HILUX SW4 - 23/24", sale.AdTitle)
			assert.Equal(t, 98000.0, sale.VehicleAmount)
			assert.Equal(t, "2025-10-20", sale.SaleDate.Format(time.DateOnly))

			created := *sale
			created.ID = "s1"
			return &created, nil
		})

		created, err := service.AddSale("saveiculos-dash", &domain.CreateSaleRequest{
			AdReference:   "a1",
			AdTitle:       "HILUX SW4 - 23/24",
			VehicleAmount: 98000,
			SaleDate:      "2025-10-20",
		})

		require.NoError(t, err)
		assert.Equal(t, "s1", created.ID)
	})

	t.Run("valida título e valor", func(t *testing.T) {
		service, tenantRepo, _, _ := newService(t)

		tenantRepo.EXPECT().GetBySlug("saveiculos-dash").Return(activeTenant("saveiculos-dash", "vendas"), nil).Times(2)

		_, err := service.AddSale("saveiculos-dash", &domain.CreateSaleRequest{VehicleAmount: 1000})
		assert.Error(t, err)

		_, err = service.AddSale("saveiculos-dash", &domain.CreateSaleRequest{AdTitle: "HILUX", VehicleAmount: 0})
		assert.Error(t, err)
	})

	t.Run("data inválida é rejeitada", func(t *testing.T) {
		service, tenantRepo, _, _ := newService(t)

		tenantRepo.EXPECT().GetBySlug("saveiculos-dash").Return(activeTenant("saveiculos-dash", "vendas"), nil)

		_, err := service.AddSale("saveiculos-dash", &domain.CreateSaleRequest{
			AdTitle:       "HILUX",
			VehicleAmount: 1000,
			SaleDate:      "20/10/2025",
		})

		assert.Error(t, err)
	})
}
