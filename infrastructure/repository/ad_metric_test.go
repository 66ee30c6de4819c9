package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngxdigital/dash-metrics-api/infrastructure/database/postgres"
	"github.com/ngxdigital/dash-metrics-api/internal/domain"
)

func newMockConnection(t *testing.T) (*postgres.Connection, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &postgres.Connection{DB: db}, mock
}

func metricRowsColumns() []string {
	return []string{
		"id", "data_registro", "nome_anuncio", "link_criativo", "valor_gasto",
		"conversas_iniciadas", "custo_por_conversa", "impressoes", "alcance", "frequencia",
		"cliques_todos", "cliques_link", "ctr_todos", "ctr_link", "cpm", "cpc_todos",
		"custo_clique_link", "engajamento_publicacao", "visualizacoes_video",
		"custo_visualizacao_video", "created_at",
	}
}

func TestAdMetricRepository_ListByTenant(t *testing.T) {
	t.Run("consulta a tabela resolvida pelo slug e numera os registros", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewAdMetricRepository(conn)

		day := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
		createdAt := day.Add(8 * time.Hour)

		rows := sqlmock.NewRows(metricRowsColumns()).
			AddRow("a1", day, "HILUX SW4 - 23/24", "https://cdn/c1", "1.10",
				0, "0", 45, 40, "1.12", 3, 2, "6.67", "4.44", "24.44", "0.37",
				"0.55", 5, 12, "0.09", createdAt).
			AddRow("a2", day.AddDate(0, 0, 1), "HILUX SW4 - 23/24", "https://cdn/c2", "2.00",
				1, "2.00", 55, 50, "1.10", 4, 3, "7.27", "5.45", "36.36", "0.50",
				"0.66", 7, 20, "0.10", createdAt.AddDate(0, 0, 1))

		mock.ExpectQuery(`SELECT .+ FROM dash_sa_veiculos_rows ORDER BY data_registro ASC, created_at ASC`).
			WillReturnRows(rows)

		metrics, err := repo.ListByTenant("saveiculos-dash", nil)

		require.NoError(t, err)
		require.Len(t, metrics, 2)
		assert.Equal(t, 1, metrics[0].Idx)
		assert.Equal(t, 2, metrics[1].Idx)
		assert.Equal(t, "2025-10-20", metrics[0].RegistrationDate)
		assert.Equal(t, "HILUX SW4 - 23/24", metrics[0].AdName)
		assert.Equal(t, "1.10", metrics[0].AmountSpent)
		assert.Equal(t, 1, metrics[1].ConversationsStarted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("aplica o filtro de período na consulta", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewAdMetricRepository(conn)

		start := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, 10, 31, 23, 59, 59, 0, time.UTC)

		mock.ExpectQuery(`SELECT .+ FROM dash_lojacenter_rows WHERE data_registro >= \$1 AND data_registro <= \$2`).
			WithArgs("2025-10-01", "2025-10-31").
			WillReturnRows(sqlmock.NewRows(metricRowsColumns()))

		metrics, err := repo.ListByTenant("lojacenter-dash", &domain.InsightFilters{StartDate: &start, EndDate: &end})

		require.NoError(t, err)
		assert.Empty(t, metrics)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("slug vazio retorna erro sem consultar o banco", func(t *testing.T) {
		conn, _ := newMockConnection(t)
		repo := NewAdMetricRepository(conn)

		_, err := repo.ListByTenant("", nil)

		assert.Error(t, err)
	})
}

func TestAdMetricRepository_CountByTenant(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewAdMetricRepository(conn)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM dash_sa_veiculos_rows`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	count, err := repo.CountByTenant("saveiculos-dash")

	require.NoError(t, err)
	assert.Equal(t, 42, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
