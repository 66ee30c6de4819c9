package tenanting

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de clientes
var (
	// Erros de validação
	ErrNameRequired        = errors.New("tenant name is required")
	ErrSlugRequired        = errors.New("tenant slug is required")
	ErrInvalidSlug         = errors.New("invalid tenant slug")
	ErrTenantNotFound      = errors.New("tenant not found")
	ErrTenantAlreadyExists = errors.New("tenant already exists")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("database operation error")
	ErrProvisionTables   = errors.New("error provisioning tenant tables")
	ErrDropTables        = errors.New("error dropping tenant tables")
)

// TenantError é um erro com contexto adicional para clientes
type TenantError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Slug    string // Slug do cliente envolvido (quando aplicável)
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *TenantError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *TenantError) Unwrap() error {
	return e.Err
}

// NewTenantError cria um novo TenantError
func NewTenantError(err error, code string, details string) *TenantError {
	return &TenantError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewTenantErrorWithSlug cria um novo TenantError com o slug do cliente
func NewTenantErrorWithSlug(err error, code string, slug string, details string) *TenantError {
	return &TenantError{
		Err:     err,
		Code:    code,
		Slug:    slug,
		Details: details,
	}
}
