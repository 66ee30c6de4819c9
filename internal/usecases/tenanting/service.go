package tenanting

import (
	"database/sql"
	"errors"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ngxdigital/dash-metrics-api/infrastructure/repository"
	"github.com/ngxdigital/dash-metrics-api/internal/domain"
	"github.com/ngxdigital/dash-metrics-api/pkg/apiErrors"
)

// slugPattern: minúsculas, dígitos e hífens internos, como nos slugs de URL
// dos dashboards (ex.: "saveiculos-dash").
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

type TenantService interface {
	CreateTenant(request *domain.CreateTenantRequest) (*domain.Tenant, error)
	DeleteTenant(slug string) error
	ListTenants(onlyActive bool) ([]*domain.Tenant, error)
	SetTenantActive(slug string, active bool) error
	AuditEntries() []AuditEntry
}

type Service struct {
	tenantRepository repository.TenantRepository
	provisioner      repository.TableProvisioner
	audit            *AuditLog
}

func NewService(
	tenantRepository repository.TenantRepository,
	provisioner repository.TableProvisioner,
	audit *AuditLog,
) TenantService {
	return &Service{
		tenantRepository: tenantRepository,
		provisioner:      provisioner,
		audit:            audit,
	}
}

// CreateTenant cadastra o cliente nas configurações e provisiona o par de
// tabelas dele. Se o DDL falhar, o registro de configuração recém criado é
// desfeito para não deixar um cliente cadastrado sem tabelas.
func (s *Service) CreateTenant(request *domain.CreateTenantRequest) (*domain.Tenant, error) {
	if err := validateCreateRequest(request); err != nil {
		return nil, err
	}

	slug := strings.TrimSpace(request.Slug)

	existing, err := s.tenantRepository.GetBySlug(slug)
	if err != nil {
		logrus.Error("Error getting tenant by slug on the repository:", err)
		return nil, NewTenantError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao consultar cliente no banco de dados")
	}

	if existing != nil {
		return nil, NewTenantErrorWithSlug(ErrTenantAlreadyExists, apiErrors.ErrTenantAlreadyExists, slug, "Já existe um cliente com este slug")
	}

	tenant := &domain.Tenant{
		Name:                 strings.TrimSpace(request.Name),
		Slug:                 slug,
		LogoURL:              request.LogoURL,
		BusinessType:         domain.ParseBusinessType(request.BusinessType),
		MonthlyConversasGoal: request.MonthlyConversasGoal,
		MonthlyBudgetGoal:    request.MonthlyBudgetGoal,
		MonthlySalesGoal:     request.MonthlySalesGoal,
		ROIGoal:              request.ROIGoal,
	}

	created, err := s.tenantRepository.Insert(tenant)
	if err != nil {
		logrus.Error("Error inserting tenant on the repository:", err)
		return nil, NewTenantErrorWithSlug(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, slug, "Erro ao cadastrar cliente no banco de dados")
	}

	if err := s.provisioner.CreateTenantTables(slug); err != nil {
		logrus.WithFields(logrus.Fields{
			"slug":  slug,
			"error": err,
		}).Error("Error provisioning tenant tables, rolling back configuration")

		if rollbackErr := s.tenantRepository.Delete(slug); rollbackErr != nil {
			logrus.WithFields(logrus.Fields{
				"slug":  slug,
				"error": rollbackErr,
			}).Warn("Error rolling back tenant configuration after failed provisioning")
		}

		return nil, NewTenantErrorWithSlug(ErrProvisionTables, apiErrors.ErrTenantProvisioning, slug, "Falha ao provisionar tabelas do cliente")
	}

	s.audit.Record("create", slug, "cliente cadastrado: "+created.Name)

	logrus.Infof("Tenant %s was successfully created", slug)

	return created, nil
}

// DeleteTenant remove as tabelas e o registro de configurações do cliente.
// Falha ao remover as tabelas não impede a remoção do registro: o que sobrar
// é recolhido depois pela sincronização de tabelas.
func (s *Service) DeleteTenant(slug string) error {
	if slug == "" {
		return NewTenantError(ErrSlugRequired, apiErrors.ErrMissingRequiredData, "Slug do cliente é obrigatório")
	}

	tenant, err := s.tenantRepository.GetBySlug(slug)
	if err != nil {
		logrus.Error("Error getting tenant by slug on the repository:", err)
		return NewTenantError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao consultar cliente no banco de dados")
	}

	if tenant == nil {
		return NewTenantErrorWithSlug(ErrTenantNotFound, apiErrors.ErrTenantNotFound, slug, "Cliente não encontrado")
	}

	if err := s.provisioner.DropTenantTables(slug); err != nil {
		logrus.WithFields(logrus.Fields{
			"slug":  slug,
			"error": err,
		}).Warn("Error dropping tenant tables, removing configuration anyway")
	}

	if err := s.tenantRepository.Delete(slug); err != nil {
		logrus.Error("Error deleting tenant on the repository:", err)
		return NewTenantErrorWithSlug(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, slug, "Erro ao remover cliente do banco de dados")
	}

	s.audit.Record("delete", slug, "cliente removido: "+tenant.Name)

	logrus.Infof("Tenant %s was successfully deleted", slug)

	return nil
}

// ListTenants retorna os clientes cadastrados.
func (s *Service) ListTenants(onlyActive bool) ([]*domain.Tenant, error) {
	tenants, err := s.tenantRepository.List(onlyActive)
	if err != nil {
		logrus.Error("Error listing tenants on the repository:", err)
		return nil, NewTenantError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao listar clientes no banco de dados")
	}

	return tenants, nil
}

// SetTenantActive liga ou desliga o cliente sem remover dados.
func (s *Service) SetTenantActive(slug string, active bool) error {
	if slug == "" {
		return NewTenantError(ErrSlugRequired, apiErrors.ErrMissingRequiredData, "Slug do cliente é obrigatório")
	}

	if err := s.tenantRepository.SetActive(slug, active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return NewTenantErrorWithSlug(ErrTenantNotFound, apiErrors.ErrTenantNotFound, slug, "Cliente não encontrado")
		}

		logrus.Error("Error updating tenant status on the repository:", err)
		return NewTenantErrorWithSlug(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, slug, "Erro ao atualizar status do cliente")
	}

	action := "deactivate"
	if active {
		action = "activate"
	}
	s.audit.Record(action, slug, "")

	return nil
}

// AuditEntries expõe o histórico administrativo da instância.
func (s *Service) AuditEntries() []AuditEntry {
	return s.audit.Entries()
}

func validateCreateRequest(request *domain.CreateTenantRequest) error {
	if strings.TrimSpace(request.Name) == "" {
		return NewTenantError(ErrNameRequired, apiErrors.ErrMissingRequiredData, "Nome do cliente é obrigatório")
	}

	slug := strings.TrimSpace(request.Slug)
	if slug == "" {
		return NewTenantError(ErrSlugRequired, apiErrors.ErrMissingRequiredData, "Slug do cliente é obrigatório")
	}

	if !slugPattern.MatchString(slug) {
		return NewTenantErrorWithSlug(ErrInvalidSlug, apiErrors.ErrInvalidFormat, slug, "Slug deve conter apenas letras minúsculas, números e hífens")
	}

	return nil
}
