package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	_ "github.com/lib/pq"
	"github.com/ngxdigital/dash-metrics-api/infrastructure/database/postgres"
	"github.com/ngxdigital/dash-metrics-api/internal/domain"
)

const configurationsTable = "configuracoes"

type TenantRepository interface {
	GetBySlug(slug string) (*domain.Tenant, error)
	List(onlyActive bool) ([]*domain.Tenant, error)
	Insert(tenant *domain.Tenant) (*domain.Tenant, error)
	SetActive(slug string, active bool) error
	Delete(slug string) error
}

type tenantRepository struct {
	conn *postgres.Connection
}

func NewTenantRepository(conn *postgres.Connection) TenantRepository {
	return &tenantRepository{
		conn: conn,
	}
}

const tenantColumns = "id, nome, slug, logo_url, tipo_negocio, ativo, " +
	"meta_mensal_conversas, meta_mensal_investimento, meta_mensal_vendas, meta_roi, created_at"

// GetBySlug busca o cliente no registro de configurações. Slug desconhecido
// retorna nil sem erro, o chamador decide o que fazer.
func (r *tenantRepository) GetBySlug(slug string) (*domain.Tenant, error) {
	tenantSQL, tenantArgs, err := squirrel.
		Select(tenantColumns).
		From(configurationsTable).
		Where(squirrel.Eq{"slug": slug}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(tenantSQL, tenantArgs...)

	tenant, err := r.deserializeTenant(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar o cliente: %w", err)
	}

	return tenant, nil
}

// List retorna os clientes cadastrados, mais recentes primeiro.
func (r *tenantRepository) List(onlyActive bool) ([]*domain.Tenant, error) {
	queryBuilder := squirrel.
		Select(tenantColumns).
		From(configurationsTable).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if onlyActive {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"ativo": true})
	}

	tenantsSQL, tenantsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(tenantsSQL, tenantsArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	tenants := make([]*domain.Tenant, 0)

	for rows.Next() {
		tenant, err := r.deserializeTenant(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("erro ao deserializar o cliente: %w", err)
		}

		tenants = append(tenants, tenant)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return tenants, nil
}

// Insert registra o cliente nas configurações e devolve a linha criada.
func (r *tenantRepository) Insert(tenant *domain.Tenant) (*domain.Tenant, error) {
	insertSQL, insertArgs, err := squirrel.
		Insert(configurationsTable).
		Columns("nome", "slug", "logo_url", "tipo_negocio", "ativo",
			"meta_mensal_conversas", "meta_mensal_investimento", "meta_mensal_vendas", "meta_roi").
		Values(
			tenant.Name,
			tenant.Slug,
			tenant.LogoURL,
			tenant.BusinessType.Code(),
			true,
			tenant.MonthlyConversasGoal,
			tenant.MonthlyBudgetGoal,
			tenant.MonthlySalesGoal,
			tenant.ROIGoal,
		).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	created := *tenant
	created.Active = true

	if err := r.conn.QueryRow(insertSQL, insertArgs...).Scan(&created.ID, &created.CreatedAt); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return nil, fmt.Errorf("erro ao cadastrar o cliente: %w", err)
	}

	return &created, nil
}

// SetActive liga ou desliga o cliente sem remover o registro.
func (r *tenantRepository) SetActive(slug string, active bool) error {
	updateSQL, updateArgs, err := squirrel.
		Update(configurationsTable).
		Set("ativo", active).
		Where(squirrel.Eq{"slug": slug}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(updateSQL, updateArgs...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar o cliente: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// Delete remove o registro do cliente das configurações.
func (r *tenantRepository) Delete(slug string) error {
	deleteSQL, deleteArgs, err := squirrel.
		Delete(configurationsTable).
		Where(squirrel.Eq{"slug": slug}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(deleteSQL, deleteArgs...); err != nil {
		return fmt.Errorf("erro ao remover o cliente: %w", err)
	}

	return nil
}

func (r *tenantRepository) deserializeTenant(scan func(dest ...any) error) (*domain.Tenant, error) {
	tenant := &domain.Tenant{}

	var businessType string
	var logoURL sql.NullString

	if err := scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.Slug,
		&logoURL,
		&businessType,
		&tenant.Active,
		&tenant.MonthlyConversasGoal,
		&tenant.MonthlyBudgetGoal,
		&tenant.MonthlySalesGoal,
		&tenant.ROIGoal,
		&tenant.CreatedAt,
	); err != nil {
		return nil, err
	}

	tenant.LogoURL = logoURL.String
	tenant.BusinessType = domain.ParseBusinessType(businessType)

	return tenant, nil
}
