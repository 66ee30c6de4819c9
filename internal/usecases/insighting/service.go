// Package insighting orquestra o dashboard de um cliente: busca registros e
// vendas do período, consolida, resume e classifica.
package insighting

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/ngxdigital/dash-metrics-api/infrastructure/repository"
	"github.com/ngxdigital/dash-metrics-api/internal/domain"
	"github.com/ngxdigital/dash-metrics-api/internal/usecases/aggregating"
	"github.com/ngxdigital/dash-metrics-api/internal/usecases/feedback"
	"github.com/ngxdigital/dash-metrics-api/internal/usecases/summarizing"
)

// Insighter é a interface do dashboard consumida pelos handlers.
type Insighter interface {
	GetTenantMetrics(slug string, filters *domain.InsightFilters) (*domain.TenantMetricsResponse, error)
	GetTenantSummary(slug string, filters *domain.InsightFilters) (*domain.TenantSummaryResponse, error)
	ListSales(slug string, filters *domain.InsightFilters) (*domain.SalesResponse, error)
	AddSale(slug string, request *domain.CreateSaleRequest) (*domain.Sale, error)
	ResolveFilters(period, startDate, endDate string) (*domain.InsightFilters, string)
}

type Service struct {
	tenantRepository   repository.TenantRepository
	adMetricRepository repository.AdMetricRepository
	saleRepository     repository.SaleRepository
	aggregator         aggregating.Aggregator
}

func NewService(
	tenantRepo repository.TenantRepository,
	adMetricRepo repository.AdMetricRepository,
	saleRepo repository.SaleRepository,
	aggregator aggregating.Aggregator,
) Insighter {
	return &Service{
		tenantRepository:   tenantRepo,
		adMetricRepository: adMetricRepo,
		saleRepository:     saleRepo,
		aggregator:         aggregator,
	}
}

// GetTenantMetrics retorna os registros brutos do período, os consolidados
// por nome e o diagnóstico de duplicatas.
func (s *Service) GetTenantMetrics(slug string, filters *domain.InsightFilters) (*domain.TenantMetricsResponse, error) {
	tenant, err := s.findTenant(slug)
	if err != nil {
		return nil, err
	}

	metrics := s.fetchMetrics(tenant.Slug, filters)

	return &domain.TenantMetricsResponse{
		Tenant:     tenant,
		Metrics:    metrics,
		Aggregated: s.aggregator.AggregateByName(metrics),
		Duplicates: s.aggregator.CheckDuplicates(metrics),
	}, nil
}

// GetTenantSummary retorna o resumo do período com o bloco de vendas,
// os julgamentos de performance, os insights por anúncio e os cartões de
// métrica da variante de negócio do cliente.
func (s *Service) GetTenantSummary(slug string, filters *domain.InsightFilters) (*domain.TenantSummaryResponse, error) {
	tenant, err := s.findTenant(slug)
	if err != nil {
		return nil, err
	}

	var (
		metrics []*domain.AdMetric
		sales   []*domain.Sale
	)

	wg := sync.WaitGroup{}
	wg.Add(2)

	go func() {
		defer wg.Done()
		metrics = s.fetchMetrics(tenant.Slug, filters)
	}()

	go func() {
		defer wg.Done()
		sales = s.fetchSales(tenant.Slug, filters)
	}()

	wg.Wait()

	summary := summarizing.Summarize(summarizing.MetricRows(metrics))
	summarizing.ApplySales(summary, sales)

	return &domain.TenantSummaryResponse{
		Tenant:      tenant,
		Summary:     summary,
		Feedbacks:   feedback.ForSummary(summary),
		AdInsights:  feedback.AdHighlights(metrics),
		MetricCards: tenant.BusinessType.MetricCards(summary),
	}, nil
}

// ListSales retorna as vendas do período com os totais já reduzidos.
func (s *Service) ListSales(slug string, filters *domain.InsightFilters) (*domain.SalesResponse, error) {
	tenant, err := s.findTenant(slug)
	if err != nil {
		return nil, err
	}

	sales, err := s.saleRepository.ListByTenant(tenant.Slug, filters)
	if err != nil {
		logrus.WithError(err).WithField("slug", slug).Error("Erro ao listar vendas do cliente")
		return nil, err
	}

	if sales == nil {
		sales = []*domain.Sale{}
	}

	return &domain.SalesResponse{
		Sales:  sales,
		Totals: domain.TotalsOf(sales),
	}, nil
}

// AddSale registra uma venda atribuída a um anúncio do cliente.
func (s *Service) AddSale(slug string, request *domain.CreateSaleRequest) (*domain.Sale, error) {
	tenant, err := s.findTenant(slug)
	if err != nil {
		return nil, err
	}

	if request.AdTitle == "" {
		return nil, fmt.Errorf("título do anúncio é obrigatório")
	}

	if request.VehicleAmount <= 0 {
		return nil, fmt.Errorf("valor do veículo deve ser maior que zero")
	}

	sale := &domain.Sale{
		AdReference:   request.AdReference,
		AdTitle:       request.AdTitle,
		VehicleAmount: request.VehicleAmount,
	}

	if request.SaleDate != "" {
		saleDate, err := time.Parse(time.DateOnly, request.SaleDate)
		if err != nil {
			return nil, fmt.Errorf("data de venda inválida: %s", request.SaleDate)
		}
		sale.SaleDate = saleDate
	}

	created, err := s.saleRepository.Insert(tenant.Slug, sale)
	if err != nil {
		logrus.WithError(err).WithField("slug", slug).Error("Erro ao registrar venda do cliente")
		return nil, err
	}

	return created, nil
}

// ResolveFilters resolve o período da requisição: datas explícitas quando
// informadas e válidas, senão o preset nomeado (default 30 dias).
func (s *Service) ResolveFilters(period, startDate, endDate string) (*domain.InsightFilters, string) {
	if startDate != "" && endDate != "" {
		start, errStart := time.Parse(time.DateOnly, startDate)
		end, errEnd := time.Parse(time.DateOnly, endDate)
		if errStart == nil && errEnd == nil && !start.After(end) {
			end = end.Add(24*time.Hour - time.Second)
			return &domain.InsightFilters{StartDate: &start, EndDate: &end}, "Período personalizado"
		}

		logrus.WithFields(logrus.Fields{
			"start_date": startDate,
			"end_date":   endDate,
		}).Warn("Intervalo de datas inválido, caindo para o período nomeado")
	}

	rng := domain.ResolvePeriod(period, time.Now())
	return rng.Filters(), rng.Label
}

func (s *Service) findTenant(slug string) (*domain.Tenant, error) {
	tenant, err := s.tenantRepository.GetBySlug(slug)
	if err != nil {
		logrus.WithError(err).WithField("slug", slug).Error("Erro ao buscar cliente pelo slug")
		return nil, err
	}

	if tenant == nil {
		return nil, fmt.Errorf("cliente não encontrado: %s", slug)
	}

	if !tenant.Active {
		return nil, fmt.Errorf("cliente inativo: %s", slug)
	}

	return tenant, nil
}

// fetchMetrics busca os registros do cliente. Falha de busca vira conjunto
// vazio aqui, na borda — o resumo e o feedback nunca veem o erro.
func (s *Service) fetchMetrics(slug string, filters *domain.InsightFilters) []*domain.AdMetric {
	metrics, err := s.adMetricRepository.ListByTenant(slug, filters)
	if err != nil {
		logrus.WithError(err).WithField("slug", slug).Warn("Erro ao buscar registros de anúncio do cliente")
		return []*domain.AdMetric{}
	}

	if metrics == nil {
		return []*domain.AdMetric{}
	}

	return metrics
}

func (s *Service) fetchSales(slug string, filters *domain.InsightFilters) []*domain.Sale {
	sales, err := s.saleRepository.ListByTenant(slug, filters)
	if err != nil {
		logrus.WithError(err).WithField("slug", slug).Warn("Erro ao buscar vendas do cliente")
		return []*domain.Sale{}
	}

	if sales == nil {
		return []*domain.Sale{}
	}

	return sales
}
