package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/ngxdigital/dash-metrics-api/internal/usecases/insighting"
	"github.com/ngxdigital/dash-metrics-api/pkg/apiErrors"
	"github.com/ngxdigital/dash-metrics-api/pkg/log"
)

// GetTenantMetrics retorna os registros brutos do período, os anúncios
// consolidados por nome e o diagnóstico de duplicatas.
func GetTenantMetrics(service insighting.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		slug := httprouter.ParamsFromContext(r.Context()).ByName("slug")
		logger.WithField("slug", slug).Info("dashboard: fetching tenant metrics")

		filters, label := service.ResolveFilters(
			r.URL.Query().Get("period"),
			r.URL.Query().Get("start_date"),
			r.URL.Query().Get("end_date"),
		)

		response, err := service.GetTenantMetrics(slug, filters)
		if err != nil {
			writeTenantError(w, logger, slug, err)
			return
		}

		logger.WithFields(log.Fields{
			"slug":    slug,
			"period":  label,
			"records": len(response.Metrics),
		}).Info("dashboard: tenant metrics retrieved")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithFields(log.Fields{
				"slug":  slug,
				"error": err.Error(),
			}).Error("dashboard: failed to encode response")

			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetTenantSummary retorna o resumo do período com feedbacks, insights por
// anúncio e os cartões de métrica da variante de negócio do cliente.
func GetTenantSummary(service insighting.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		slug := httprouter.ParamsFromContext(r.Context()).ByName("slug")
		logger.WithField("slug", slug).Info("dashboard: fetching tenant summary")

		filters, label := service.ResolveFilters(
			r.URL.Query().Get("period"),
			r.URL.Query().Get("start_date"),
			r.URL.Query().Get("end_date"),
		)

		response, err := service.GetTenantSummary(slug, filters)
		if err != nil {
			writeTenantError(w, logger, slug, err)
			return
		}

		logger.WithFields(log.Fields{
			"slug":      slug,
			"period":    label,
			"feedbacks": len(response.Feedbacks),
		}).Info("dashboard: tenant summary retrieved")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithFields(log.Fields{
				"slug":  slug,
				"error": err.Error(),
			}).Error("dashboard: failed to encode response")

			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// writeTenantError traduz os erros de resolução de cliente para a resposta
// padronizada da API.
func writeTenantError(w http.ResponseWriter, logger log.Logger, slug string, err error) {
	msg := err.Error()

	switch {
	case strings.HasPrefix(msg, "cliente não encontrado"):
		logger.WithField("slug", slug).Warn("dashboard: tenant not found")
		apiErrors.WriteError(w, apiErrors.ErrTenantNotFound, msg, nil)

	case strings.HasPrefix(msg, "cliente inativo"):
		logger.WithField("slug", slug).Warn("dashboard: tenant inactive")
		apiErrors.WriteError(w, apiErrors.ErrTenantInactive, msg, nil)

	default:
		logger.WithFields(log.Fields{
			"slug":  slug,
			"error": msg,
		}).Error("dashboard: failed to resolve tenant")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao consultar dados do cliente", nil)
	}
}
