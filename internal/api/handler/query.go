package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ngxdigital/dash-metrics-api/internal/usecases/querying"
	"github.com/ngxdigital/dash-metrics-api/pkg/apiErrors"
	"github.com/ngxdigital/dash-metrics-api/pkg/log"
)

type ExecuteQueryRequest struct {
	Query string `json:"query"`
}

type ExecuteQueryResponse struct {
	Rows []map[string]any `json:"rows"`
}

// ExecuteQuery roteia o texto SQL recebido pelos padrões conhecidos do
// roteador. Consultas fora dos padrões retornam resultado vazio, nunca erro.
func ExecuteQuery(service querying.QueryRouter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req ExecuteQueryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.WithField("error", err.Error()).Warn("query: invalid request body")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		rows := service.Execute(req.Query)

		logger.WithFields(log.Fields{
			"rows": len(rows),
		}).Info("query: executed")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(ExecuteQueryResponse{Rows: rows}); err != nil {
			logger.WithField("error", err.Error()).Error("query: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// ListQueryTables retorna o catálogo de tabelas conhecidas.
func ListQueryTables(service querying.QueryRouter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		tables, err := service.ListTables()
		if err != nil {
			logger.WithField("error", err.Error()).Error("query: failed to list tables")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar tabelas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{"tables": tables}); err != nil {
			logger.WithField("error", err.Error()).Error("query: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
