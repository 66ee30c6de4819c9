package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/ngxdigital/dash-metrics-api/infrastructure/database/postgres"
	"github.com/ngxdigital/dash-metrics-api/infrastructure/repository"
	"github.com/ngxdigital/dash-metrics-api/internal/api"
	"github.com/ngxdigital/dash-metrics-api/internal/config"
	"github.com/ngxdigital/dash-metrics-api/internal/scheduler"
	"github.com/ngxdigital/dash-metrics-api/internal/usecases/aggregating"
	"github.com/ngxdigital/dash-metrics-api/internal/usecases/authenticating"
	"github.com/ngxdigital/dash-metrics-api/internal/usecases/insighting"
	"github.com/ngxdigital/dash-metrics-api/internal/usecases/querying"
	"github.com/ngxdigital/dash-metrics-api/internal/usecases/tenanting"
	"github.com/sirupsen/logrus"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	tenantRepo := repository.NewTenantRepository(pgConn)
	adMetricRepo := repository.NewAdMetricRepository(pgConn)
	saleRepo := repository.NewSaleRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)
	provisioner := repository.NewTableProvisioner(pgConn)

	authenticator := authenticating.NewService(userRepo, tenantRepo, cfg)

	aggregator := aggregating.NewService()

	insightService := insighting.NewService(tenantRepo, adMetricRepo, saleRepo, aggregator)
	tenantService := tenanting.NewService(tenantRepo, provisioner, tenanting.NewAuditLog())
	queryService := querying.NewService(tenantRepo, adMetricRepo, saleRepo, provisioner)

	// Inicializa o agendador de descoberta de tabelas de clientes
	tenantTableSyncService := scheduler.NewTenantTableSyncService(tenantRepo, provisioner, cfg)

	if err := tenantTableSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de tabelas de clientes")
	} else {
		logrus.Info("Agendador de sincronização de tabelas de clientes iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		insightService,
		tenantService,
		queryService,
		authenticator,
		tenantTableSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
