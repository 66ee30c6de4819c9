package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/ngxdigital/dash-metrics-api/infrastructure/database/postgres"
	"github.com/ngxdigital/dash-metrics-api/internal/domain"
)

// TableProvisioner cria e remove o par de tabelas de um cliente e descobre
// tabelas de métricas já provisionadas no schema.
type TableProvisioner interface {
	CreateTenantTables(slug string) error
	DropTenantTables(slug string) error
	TenantTablesExist(slug string) (bool, error)
	ListMetricTables() ([]string, error)
}

type tableProvisioner struct {
	conn *postgres.Connection
}

func NewTableProvisioner(conn *postgres.Connection) TableProvisioner {
	return &tableProvisioner{
		conn: conn,
	}
}

// DDL fixo das tabelas por cliente. O nome da tabela vem da transformação de
// slug do domínio, nunca de entrada livre do chamador.
const metricsTableDDL = `
CREATE TABLE IF NOT EXISTS public.%[1]s (
	id uuid DEFAULT gen_random_uuid() PRIMARY KEY,
	data_registro date NOT NULL,
	nome_anuncio text NOT NULL,
	link_criativo text NOT NULL,
	valor_gasto numeric NOT NULL,
	conversas_iniciadas integer NOT NULL,
	custo_por_conversa numeric NOT NULL,
	impressoes integer NOT NULL,
	alcance integer NOT NULL,
	cliques_todos integer NOT NULL,
	cliques_link integer NOT NULL,
	ctr_todos numeric NOT NULL,
	ctr_link numeric NOT NULL,
	cpm numeric NOT NULL,
	cpc_todos numeric NOT NULL,
	custo_clique_link numeric NOT NULL,
	frequencia numeric NOT NULL,
	engajamento_publicacao integer NOT NULL,
	visualizacoes_video integer NOT NULL,
	custo_visualizacao_video numeric NOT NULL,
	created_at timestamp with time zone DEFAULT now() NOT NULL
);

CREATE INDEX IF NOT EXISTS %[1]s_data_registro_idx ON public.%[1]s (data_registro);
CREATE INDEX IF NOT EXISTS %[1]s_created_at_idx ON public.%[1]s (created_at);
`

const salesTableDDL = `
CREATE TABLE IF NOT EXISTS public.%[1]s (
	id uuid DEFAULT gen_random_uuid() PRIMARY KEY,
	anuncio_id text NOT NULL,
	anuncio_titulo text NOT NULL,
	valor_veiculo numeric(12,2) NOT NULL,
	data_venda timestamp with time zone DEFAULT now(),
	cliente_slug text NOT NULL,
	created_at timestamp with time zone DEFAULT now(),
	updated_at timestamp with time zone DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_%[1]s_anuncio_id ON public.%[1]s (anuncio_id);
CREATE INDEX IF NOT EXISTS idx_%[1]s_cliente_slug ON public.%[1]s (cliente_slug);
CREATE INDEX IF NOT EXISTS idx_%[1]s_data_venda ON public.%[1]s (data_venda);
`

// CreateTenantTables provisiona o par de tabelas do cliente com índices.
// Idempotente: tabelas já existentes não são tocadas.
func (p *tableProvisioner) CreateTenantTables(slug string) error {
	metricsTable := domain.MetricsTableFromSlug(slug)
	salesTable := domain.SalesTableFromSlug(slug)
	if metricsTable == "" || salesTable == "" {
		return fmt.Errorf("slug de cliente inválido: %q", slug)
	}

	if _, err := p.conn.Exec(fmt.Sprintf(metricsTableDDL, metricsTable)); err != nil {
		return fmt.Errorf("erro ao criar tabela de métricas %s: %w", metricsTable, err)
	}

	if _, err := p.conn.Exec(fmt.Sprintf(salesTableDDL, salesTable)); err != nil {
		return fmt.Errorf("erro ao criar tabela de vendas %s: %w", salesTable, err)
	}

	return nil
}

// DropTenantTables remove o par de tabelas do cliente.
func (p *tableProvisioner) DropTenantTables(slug string) error {
	metricsTable := domain.MetricsTableFromSlug(slug)
	salesTable := domain.SalesTableFromSlug(slug)
	if metricsTable == "" || salesTable == "" {
		return fmt.Errorf("slug de cliente inválido: %q", slug)
	}

	dropSQL := fmt.Sprintf(
		"DROP TABLE IF EXISTS public.%s CASCADE; DROP TABLE IF EXISTS public.%s CASCADE;",
		salesTable, metricsTable,
	)

	if _, err := p.conn.Exec(dropSQL); err != nil {
		return fmt.Errorf("erro ao remover tabelas do cliente %s: %w", slug, err)
	}

	return nil
}

// TenantTablesExist verifica se ambas as tabelas do cliente existem.
func (p *tableProvisioner) TenantTablesExist(slug string) (bool, error) {
	metricsTable := domain.MetricsTableFromSlug(slug)
	salesTable := domain.SalesTableFromSlug(slug)
	if metricsTable == "" || salesTable == "" {
		return false, fmt.Errorf("slug de cliente inválido: %q", slug)
	}

	checkSQL, checkArgs, err := squirrel.
		Select("COUNT(*)").
		From("information_schema.tables").
		Where(squirrel.Eq{"table_schema": "public"}).
		Where(squirrel.Eq{"table_name": []string{metricsTable, salesTable}}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := p.conn.QueryRow(checkSQL, checkArgs...).Scan(&count); err != nil {
		return false, fmt.Errorf("erro ao verificar tabelas: %w", err)
	}

	return count == 2, nil
}

// ListMetricTables retorna os nomes das tabelas de métricas (dash_*_rows)
// presentes no schema público, ordenados.
func (p *tableProvisioner) ListMetricTables() ([]string, error) {
	listSQL, listArgs, err := squirrel.
		Select("table_name").
		From("information_schema.tables").
		Where(squirrel.Eq{"table_schema": "public"}).
		Where(squirrel.Like{"table_name": "dash\\_%\\_rows"}).
		OrderBy("table_name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := p.conn.Query(listSQL, listArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	tables := make([]string, 0)

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("erro ao ler nome de tabela: %w", err)
		}

		// LIKE com escape cobre o padrão, mas o sufixo exato fica garantido aqui
		if strings.HasSuffix(name, "_rows") {
			tables = append(tables, name)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return tables, nil
}
