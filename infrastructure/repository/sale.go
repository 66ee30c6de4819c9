package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	_ "github.com/lib/pq"
	"github.com/ngxdigital/dash-metrics-api/infrastructure/database/postgres"
	"github.com/ngxdigital/dash-metrics-api/internal/domain"
)

type SaleRepository interface {
	ListByTenant(slug string, filters *domain.InsightFilters) ([]*domain.Sale, error)
	Insert(slug string, sale *domain.Sale) (*domain.Sale, error)
}

type saleRepository struct {
	conn *postgres.Connection
}

func NewSaleRepository(conn *postgres.Connection) SaleRepository {
	return &saleRepository{
		conn: conn,
	}
}

// ListByTenant busca as vendas da tabela do cliente, mais recentes primeiro.
func (r *saleRepository) ListByTenant(slug string, filters *domain.InsightFilters) ([]*domain.Sale, error) {
	table := domain.SalesTableFromSlug(slug)
	if table == "" {
		return nil, fmt.Errorf("slug de cliente inválido: %q", slug)
	}

	queryBuilder := squirrel.
		Select("id, anuncio_id, anuncio_titulo, valor_veiculo, data_venda, cliente_slug, created_at").
		From(table).
		OrderBy("data_venda DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filters != nil {
		if filters.StartDate != nil {
			queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"data_venda": *filters.StartDate})
		}

		if filters.EndDate != nil {
			queryBuilder = queryBuilder.Where(squirrel.LtOrEq{"data_venda": *filters.EndDate})
		}
	}

	salesSQL, salesArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(salesSQL, salesArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	sales := make([]*domain.Sale, 0)

	for rows.Next() {
		sale := &domain.Sale{}
		if err := rows.Scan(
			&sale.ID,
			&sale.AdReference,
			&sale.AdTitle,
			&sale.VehicleAmount,
			&sale.SaleDate,
			&sale.TenantSlug,
			&sale.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao deserializar a venda: %w", err)
		}

		sales = append(sales, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return sales, nil
}

// Insert registra uma venda na tabela do cliente e devolve a linha criada.
func (r *saleRepository) Insert(slug string, sale *domain.Sale) (*domain.Sale, error) {
	table := domain.SalesTableFromSlug(slug)
	if table == "" {
		return nil, fmt.Errorf("slug de cliente inválido: %q", slug)
	}

	saleDate := sale.SaleDate
	if saleDate.IsZero() {
		saleDate = time.Now()
	}

	insertSQL, insertArgs, err := squirrel.
		Insert(table).
		Columns("anuncio_id", "anuncio_titulo", "valor_veiculo", "data_venda", "cliente_slug").
		Values(sale.AdReference, sale.AdTitle, sale.VehicleAmount, saleDate, slug).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	created := *sale
	created.SaleDate = saleDate
	created.TenantSlug = slug

	if err := r.conn.QueryRow(insertSQL, insertArgs...).Scan(&created.ID, &created.CreatedAt); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return nil, fmt.Errorf("erro ao registrar a venda: %w", err)
	}

	return &created, nil
}
