package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/ngxdigital/dash-metrics-api/infrastructure/database/postgres"
	"github.com/ngxdigital/dash-metrics-api/internal/domain"
)

// adMetricColumns é a projeção das tabelas dash_<slug>_rows, na ordem de scan.
const adMetricColumns = "id, data_registro, nome_anuncio, link_criativo, valor_gasto, " +
	"conversas_iniciadas, custo_por_conversa, impressoes, alcance, frequencia, " +
	"cliques_todos, cliques_link, ctr_todos, ctr_link, cpm, cpc_todos, " +
	"custo_clique_link, engajamento_publicacao, visualizacoes_video, " +
	"custo_visualizacao_video, created_at"

type AdMetricRepository interface {
	ListByTenant(slug string, filters *domain.InsightFilters) ([]*domain.AdMetric, error)
	CountByTenant(slug string) (int, error)
}

type adMetricRepository struct {
	conn *postgres.Connection
}

func NewAdMetricRepository(conn *postgres.Connection) AdMetricRepository {
	return &adMetricRepository{
		conn: conn,
	}
}

// ListByTenant busca os registros de anúncio da tabela do cliente, ordenados
// por data de registro. O slug resolve a tabela pela transformação fixa do
// domínio — a tabela não vem do chamador.
func (r *adMetricRepository) ListByTenant(slug string, filters *domain.InsightFilters) ([]*domain.AdMetric, error) {
	table := domain.MetricsTableFromSlug(slug)
	if table == "" {
		return nil, fmt.Errorf("slug de cliente inválido: %q", slug)
	}

	queryBuilder := squirrel.
		Select(adMetricColumns).
		From(table).
		OrderBy("data_registro ASC", "created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filters != nil {
		if filters.StartDate != nil {
			queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"data_registro": filters.StartDate.Format(time.DateOnly)})
		}

		if filters.EndDate != nil {
			queryBuilder = queryBuilder.Where(squirrel.LtOrEq{"data_registro": filters.EndDate.Format(time.DateOnly)})
		}
	}

	metricsSQL, metricsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(metricsSQL, metricsArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	metrics := make([]*domain.AdMetric, 0)
	idx := 1

	for rows.Next() {
		m, err := r.deserializeAdMetric(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao deserializar o registro: %w", err)
		}

		// idx sequencial a partir de 1 na ordem da consulta
		m.Idx = idx
		idx++

		metrics = append(metrics, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return metrics, nil
}

func (r *adMetricRepository) deserializeAdMetric(rows *sql.Rows) (*domain.AdMetric, error) {
	m := &domain.AdMetric{}

	var registrationDate time.Time
	var createdAt time.Time

	if err := rows.Scan(
		&m.ID,
		&registrationDate,
		&m.AdName,
		&m.CreativeLink,
		&m.AmountSpent,
		&m.ConversationsStarted,
		&m.CostPerConversation,
		&m.Impressions,
		&m.Reach,
		&m.Frequency,
		&m.ClicksAll,
		&m.ClicksLink,
		&m.CTRAll,
		&m.CTRLink,
		&m.CPM,
		&m.CPCAll,
		&m.CostPerLinkClick,
		&m.PostEngagement,
		&m.VideoViews,
		&m.CostPerVideoView,
		&createdAt,
	); err != nil {
		return nil, err
	}

	m.RegistrationDate = registrationDate.Format(time.DateOnly)
	m.CreatedAt = createdAt.Format(time.RFC3339)

	return m, nil
}

// CountByTenant conta os registros da tabela de métricas do cliente.
func (r *adMetricRepository) CountByTenant(slug string) (int, error) {
	table := domain.MetricsTableFromSlug(slug)
	if table == "" {
		return 0, fmt.Errorf("slug de cliente inválido: %q", slug)
	}

	countSQL, countArgs, err := squirrel.
		Select("COUNT(*)").
		From(table).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := r.conn.QueryRow(countSQL, countArgs...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar registros: %w", err)
	}

	return count, nil
}
