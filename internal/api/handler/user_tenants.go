package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/ngxdigital/dash-metrics-api/internal/domain"
	"github.com/ngxdigital/dash-metrics-api/internal/usecases/authenticating"
	"github.com/ngxdigital/dash-metrics-api/pkg/apiErrors"
	"github.com/ngxdigital/dash-metrics-api/pkg/middleware"
)

type UserTenantsRequest struct {
	Slugs []string `json:"slugs"`
}

// GetUserTenants retorna os clientes cujos dashboards o usuário logado pode ver
func GetUserTenants(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para ver os clientes deste usuário", nil)
			return
		}

		tenants, err := service.GetUserLinkedTenants(userClaims.UserID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar clientes vinculados", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(tenants); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// UpdateUserTenants substitui a lista de clientes vinculados a um usuário
func UpdateUserTenants(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idStr := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if idStr == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do usuário não fornecido", nil)
			return
		}

		id, err := strconv.Atoi(idStr)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID do usuário inválido", nil)
			return
		}

		// Apenas administradores podem alterar vínculos
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != 1 {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem alterar os clientes vinculados", nil)
			return
		}

		var req UserTenantsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		err = service.ManageUserTenants(id, req.Slugs)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao atualizar clientes vinculados", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		response := map[string]any{
			"message": "Clientes vinculados atualizados com sucesso",
			"user_id": id,
			"slugs":   req.Slugs,
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// LinkUserTenants vincula uma lista de clientes a um usuário.
// Apenas administradores podem realizar esta operação.
func LinkUserTenants(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userIDStr := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if userIDStr == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do usuário é obrigatório", nil)
			return
		}

		userID, err := strconv.Atoi(userIDStr)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID do usuário inválido", nil)
			return
		}

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != 1 {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem vincular clientes", nil)
			return
		}

		var req UserTenantsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if len(req.Slugs) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Lista de slugs não pode estar vazia", nil)
			return
		}

		var successfulLinks []string
		var failedLinks []string

		for _, slug := range req.Slugs {
			err = service.LinkUserTenant(userID, slug)
			if err != nil {
				logrus.Warnf("Erro ao vincular cliente %s ao usuário %d: %v", slug, userID, err)
				failedLinks = append(failedLinks, slug)
			} else {
				successfulLinks = append(successfulLinks, slug)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		response := map[string]any{
			"message":          "Clientes vinculados processados",
			"user_id":          userID,
			"successful_links": successfulLinks,
		}

		if len(failedLinks) > 0 {
			response["failed_links"] = failedLinks
		}

		if err := json.NewEncoder(w).Encode(response); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// UnlinkUserTenant remove o vínculo entre um usuário e um cliente
func UnlinkUserTenant(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := httprouter.ParamsFromContext(r.Context())
		userIDStr := params.ByName("id")
		slug := params.ByName("slug")

		if userIDStr == "" || slug == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do usuário e slug do cliente são obrigatórios", nil)
			return
		}

		userID, err := strconv.Atoi(userIDStr)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID do usuário inválido", nil)
			return
		}

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != 1 {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem desvincular clientes", nil)
			return
		}

		err = service.UnlinkUserTenant(userID, slug)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao desvincular cliente", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		response := map[string]any{
			"message": "Cliente desvinculado com sucesso",
			"user_id": userID,
			"slug":    slug,
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}
