package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/ngxdigital/dash-metrics-api/internal/domain"
	"github.com/ngxdigital/dash-metrics-api/internal/usecases/insighting"
	"github.com/ngxdigital/dash-metrics-api/pkg/apiErrors"
	"github.com/ngxdigital/dash-metrics-api/pkg/log"
)

// ListTenantSales retorna as vendas do período com os totais reduzidos.
func ListTenantSales(service insighting.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		slug := httprouter.ParamsFromContext(r.Context()).ByName("slug")
		logger.WithField("slug", slug).Info("sales: listing tenant sales")

		filters, _ := service.ResolveFilters(
			r.URL.Query().Get("period"),
			r.URL.Query().Get("start_date"),
			r.URL.Query().Get("end_date"),
		)

		response, err := service.ListSales(slug, filters)
		if err != nil {
			writeTenantError(w, logger, slug, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithFields(log.Fields{
				"slug":  slug,
				"error": err.Error(),
			}).Error("sales: failed to encode response")

			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// AddTenantSale registra uma venda atribuída a um anúncio do cliente.
func AddTenantSale(service insighting.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		slug := httprouter.ParamsFromContext(r.Context()).ByName("slug")
		logger.WithField("slug", slug).Info("sales: adding tenant sale")

		var req domain.CreateSaleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.WithField("error", err.Error()).Warn("sales: invalid request body")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		sale, err := service.AddSale(slug, &req)
		if err != nil {
			msg := err.Error()
			switch {
			case strings.HasPrefix(msg, "cliente"):
				writeTenantError(w, logger, slug, err)

			case strings.Contains(msg, "obrigatório") ||
				strings.Contains(msg, "maior que zero") ||
				strings.Contains(msg, "inválida"):
				logger.WithFields(log.Fields{
					"slug":  slug,
					"error": msg,
				}).Warn("sales: invalid sale data")
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, msg, nil)

			default:
				logger.WithFields(log.Fields{
					"slug":  slug,
					"error": msg,
				}).Error("sales: failed to insert sale")
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao registrar venda", nil)
			}
			return
		}

		logger.WithFields(log.Fields{
			"slug":    slug,
			"sale_id": sale.ID,
		}).Info("sales: sale recorded")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(sale); err != nil {
			logger.WithField("error", err.Error()).Error("sales: failed to encode response")
		}
	})
}
