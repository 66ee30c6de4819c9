package handler

import (
	"net/http"

	"github.com/ngxdigital/dash-metrics-api/internal/api/handler/router"
	"github.com/ngxdigital/dash-metrics-api/internal/usecases/authenticating"
	"github.com/ngxdigital/dash-metrics-api/internal/usecases/insighting"
	"github.com/ngxdigital/dash-metrics-api/internal/usecases/querying"
	"github.com/ngxdigital/dash-metrics-api/internal/usecases/tenanting"
	"github.com/ngxdigital/dash-metrics-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Tenants(service tenanting.TenantService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/clients",
			Method:      http.MethodGet,
			Handler:     ListTenants(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/clients",
			Method:      http.MethodPost,
			Handler:     CreateTenant(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/audit/clients",
			Method:      http.MethodGet,
			Handler:     GetTenantAudit(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/clients/:slug",
			Method:      http.MethodDelete,
			Handler:     DeleteTenant(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/clients/:slug/active",
			Method:      http.MethodPut,
			Handler:     SetTenantActive(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Dashboard(service insighting.Insighter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/clients/:slug/metrics",
			Method:      http.MethodGet,
			Handler:     GetTenantMetrics(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/clients/:slug/summary",
			Method:      http.MethodGet,
			Handler:     GetTenantSummary(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Sales(service insighting.Insighter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/clients/:slug/sales",
			Method:      http.MethodGet,
			Handler:     ListTenantSales(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/clients/:slug/sales",
			Method:      http.MethodPost,
			Handler:     AddTenantSale(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Query(service querying.QueryRouter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/query/execute",
			Method:      http.MethodPost,
			Handler:     ExecuteQuery(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/query/tables",
			Method:      http.MethodGet,
			Handler:     ListQueryTables(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: CreateUser(service),
		},
		{
			Path:        "/v1/users/:id/generate-password",
			Method:      http.MethodPost,
			Handler:     GeneratePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodGet,
			Handler:     GetUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

// UserTenants retorna as rotas para gerenciamento de clientes vinculados a usuários
func UserTenants(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/me/tenants",
			Method:      http.MethodGet,
			Handler:     GetUserTenants(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id/tenants",
			Method:      http.MethodPut,
			Handler:     UpdateUserTenants(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id/tenants/link",
			Method:      http.MethodPost,
			Handler:     LinkUserTenants(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id/tenants/:slug",
			Method:      http.MethodDelete,
			Handler:     UnlinkUserTenant(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}
