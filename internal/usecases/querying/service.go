package querying

import (
	"regexp"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/ngxdigital/dash-metrics-api/infrastructure/repository"
	"github.com/ngxdigital/dash-metrics-api/internal/domain"
)

// maxDumpRows limita o despejo de tabela do roteador, como o shim original.
const maxDumpRows = 100

var (
	selectTablePattern = regexp.MustCompile(`(?i)SELECT \* FROM (?:public\.)?(\w+)`)
	countTablePattern  = regexp.MustCompile(`(?i)FROM\s+(?:public\.)?(\w+)`)

	json = jsoniter.ConfigCompatibleWithStandardLibrary
)

// QueryRouter casa o texto SQL recebido com um conjunto fixo de padrões e
// despacha para a operação correspondente. Não é um motor SQL: consultas fora
// dos padrões conhecidos retornam resultado vazio, nunca erro ao chamador.
type QueryRouter interface {
	Execute(query string) []map[string]any
	ListTables() ([]string, error)
}

type Service struct {
	tenantRepository   repository.TenantRepository
	adMetricRepository repository.AdMetricRepository
	saleRepository     repository.SaleRepository
	provisioner        repository.TableProvisioner
}

func NewService(
	tenantRepository repository.TenantRepository,
	adMetricRepository repository.AdMetricRepository,
	saleRepository repository.SaleRepository,
	provisioner repository.TableProvisioner,
) QueryRouter {
	return &Service{
		tenantRepository:   tenantRepository,
		adMetricRepository: adMetricRepository,
		saleRepository:     saleRepository,
		provisioner:        provisioner,
	}
}

// Execute roteia a consulta na ordem do shim original: configurações ativas,
// catálogo de tabelas, despejo de tabela de cliente, contagem. Falhas de
// backend viram resultado vazio com log de aviso.
func (s *Service) Execute(query string) []map[string]any {
	tableName := ""
	if match := selectTablePattern.FindStringSubmatch(query); match != nil {
		tableName = match[1]
	}

	switch {
	case tableName == "configuracoes":
		return s.activeConfigurations()

	case strings.Contains(query, "information_schema.tables"):
		return s.tableCatalog()

	case strings.HasPrefix(tableName, "dash_"):
		return s.dumpTenantTable(tableName)

	case strings.Contains(query, "COUNT(*)"):
		if match := countTablePattern.FindStringSubmatch(query); match != nil {
			return s.countTenantTable(match[1])
		}
	}

	logrus.WithField("query", query).Warn("Unhandled query pattern, returning empty result")
	return []map[string]any{}
}

// ListTables devolve o catálogo de tabelas conhecidas: o registro de
// configurações mais o par de tabelas de cada cliente provisionado.
func (s *Service) ListTables() ([]string, error) {
	metricTables, err := s.provisioner.ListMetricTables()
	if err != nil {
		return nil, err
	}

	tables := make([]string, 0, 1+2*len(metricTables))
	tables = append(tables, "configuracoes")

	for _, table := range metricTables {
		slug, ok := domain.SlugFromMetricsTable(table)
		if !ok {
			continue
		}
		tables = append(tables, table, domain.SalesTableFromSlug(slug))
	}

	return tables, nil
}

func (s *Service) activeConfigurations() []map[string]any {
	tenants, err := s.tenantRepository.List(true)
	if err != nil {
		logrus.WithField("error", err).Warn("Error listing configurations for query router")
		return []map[string]any{}
	}

	return rowsOf(tenants)
}

func (s *Service) tableCatalog() []map[string]any {
	tables, err := s.ListTables()
	if err != nil {
		logrus.WithField("error", err).Warn("Error listing tables for query router")
		return []map[string]any{}
	}

	rows := make([]map[string]any, 0, len(tables))
	for _, table := range tables {
		rows = append(rows, map[string]any{"table_name": table})
	}

	return rows
}

func (s *Service) dumpTenantTable(tableName string) []map[string]any {
	if strings.HasSuffix(tableName, "_rows") {
		slug, ok := domain.SlugFromMetricsTable(tableName)
		if !ok {
			return []map[string]any{}
		}

		metrics, err := s.adMetricRepository.ListByTenant(slug, nil)
		if err != nil {
			logrus.WithField("error", err).Warnf("Error dumping table %s", tableName)
			return []map[string]any{}
		}

		if len(metrics) > maxDumpRows {
			metrics = metrics[:maxDumpRows]
		}

		return rowsOf(metrics)
	}

	if strings.HasSuffix(tableName, "_vendas") {
		slug, ok := domain.SlugFromMetricsTable(strings.TrimSuffix(tableName, "_vendas") + "_rows")
		if !ok {
			return []map[string]any{}
		}

		sales, err := s.saleRepository.ListByTenant(slug, nil)
		if err != nil {
			logrus.WithField("error", err).Warnf("Error dumping table %s", tableName)
			return []map[string]any{}
		}

		if len(sales) > maxDumpRows {
			sales = sales[:maxDumpRows]
		}

		return rowsOf(sales)
	}

	return []map[string]any{}
}

func (s *Service) countTenantTable(tableName string) []map[string]any {
	zero := []map[string]any{{"count": 0}}

	if strings.HasSuffix(tableName, "_rows") {
		slug, ok := domain.SlugFromMetricsTable(tableName)
		if !ok {
			return zero
		}

		count, err := s.adMetricRepository.CountByTenant(slug)
		if err != nil {
			logrus.WithField("error", err).Warnf("Error counting table %s", tableName)
			return zero
		}

		return []map[string]any{{"count": count}}
	}

	if strings.HasSuffix(tableName, "_vendas") {
		slug, ok := domain.SlugFromMetricsTable(strings.TrimSuffix(tableName, "_vendas") + "_rows")
		if !ok {
			return zero
		}

		sales, err := s.saleRepository.ListByTenant(slug, nil)
		if err != nil {
			logrus.WithField("error", err).Warnf("Error counting table %s", tableName)
			return zero
		}

		return []map[string]any{{"count": len(sales)}}
	}

	return zero
}

// rowsOf converte registros do domínio em linhas genéricas reaproveitando as
// tags JSON, que espelham os nomes das colunas.
func rowsOf[T any](records []T) []map[string]any {
	rows := make([]map[string]any, 0, len(records))

	for _, record := range records {
		data, err := json.Marshal(record)
		if err != nil {
			continue
		}

		row := map[string]any{}
		if err := json.Unmarshal(data, &row); err != nil {
			continue
		}

		rows = append(rows, row)
	}

	return rows
}
