package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/ngxdigital/dash-metrics-api/internal/domain"
	"github.com/ngxdigital/dash-metrics-api/internal/usecases/tenanting"
	"github.com/ngxdigital/dash-metrics-api/pkg/apiErrors"
)

type SetTenantActiveRequest struct {
	Active bool `json:"ativo"`
}

// ListTenants lista os clientes cadastrados. Com ?active=true só os ativos.
func ListTenants(service tenanting.TenantService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		onlyActive := r.URL.Query().Get("active") == "true"

		tenants, err := service.ListTenants(onlyActive)
		if err != nil {
			handleTenantError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(tenants); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// CreateTenant cadastra um cliente e provisiona o par de tabelas dele.
func CreateTenant(service tenanting.TenantService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateTenant")

		var req domain.CreateTenantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		tenant, err := service.CreateTenant(&req)
		if err != nil {
			handleTenantError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(tenant); err != nil {
			logrus.Error(err)
		}
	}
}

// DeleteTenant remove as tabelas e o registro de configurações do cliente.
func DeleteTenant(service tenanting.TenantService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - DeleteTenant")

		slug := httprouter.ParamsFromContext(r.Context()).ByName("slug")
		if slug == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Slug do cliente não fornecido", nil)
			return
		}

		if err := service.DeleteTenant(slug); err != nil {
			handleTenantError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Cliente removido com sucesso",
			"slug":    slug,
		})
	}
}

// SetTenantActive liga ou desliga o cliente sem remover dados.
func SetTenantActive(service tenanting.TenantService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := httprouter.ParamsFromContext(r.Context()).ByName("slug")
		if slug == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Slug do cliente não fornecido", nil)
			return
		}

		var req SetTenantActiveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if err := service.SetTenantActive(slug, req.Active); err != nil {
			handleTenantError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Status do cliente atualizado com sucesso",
			"slug":    slug,
			"ativo":   req.Active,
		})
	}
}

// GetTenantAudit retorna o histórico administrativo da instância.
func GetTenantAudit(service tenanting.TenantService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(service.AuditEntries()); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// handleTenantError traduz erros do serviço de clientes para a resposta da API
func handleTenantError(w http.ResponseWriter, err error) {
	var tenantErr *tenanting.TenantError
	if errors.As(err, &tenantErr) {
		apiErrors.WriteError(w, tenantErr.Code, tenantErr.Error(), map[string]any{
			"slug": tenantErr.Slug,
		})
		return
	}

	logrus.Error(err)
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao processar cliente", nil)
}
