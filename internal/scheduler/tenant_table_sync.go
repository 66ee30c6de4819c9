// Package scheduler contém os serviços de agendamento da aplicação
package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/ngxdigital/dash-metrics-api/infrastructure/repository"
	"github.com/ngxdigital/dash-metrics-api/internal/config"
	"github.com/ngxdigital/dash-metrics-api/internal/domain"
)

type TenantTableSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// TenantTableSyncService descobre tabelas de métricas provisionadas fora do
// fluxo normal de cadastro e registra os clientes correspondentes nas
// configurações, desativados até revisão manual.
type TenantTableSyncService struct {
	scheduler           *gocron.Scheduler
	tenantRepo          repository.TenantRepository
	provisioner         repository.TableProvisioner
	config              TenantTableSyncConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewTenantTableSyncService(
	tenantRepo repository.TenantRepository,
	provisioner repository.TableProvisioner,
	cfg *config.Config,
) *TenantTableSyncService {
	syncConfig := TenantTableSyncConfig{
		CronSchedule: cfg.TenantTableSync.CronSchedule, // Default: 3h da manhã todos os dias
		SyncEnabled:  cfg.TenantTableSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
	}).Info("Configuração do agendador de sincronização de tabelas de clientes carregada")

	return &TenantTableSyncService{
		scheduler:   scheduler,
		tenantRepo:  tenantRepo,
		provisioner: provisioner,
		config:      syncConfig,
	}
}

func (s *TenantTableSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron de sincronização de tabelas de clientes desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de sincronização de tabelas de clientes")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.SyncTenantTables(); err != nil {
			logrus.WithError(err).Error("Erro na sincronização de tabelas de clientes")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de tabelas de clientes: %w", err)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do cron quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de sincronização de tabelas de clientes")
		s.scheduler.Stop()
	}()

	return nil
}

// SyncTenantTables percorre as tabelas de métricas do schema e cadastra os
// clientes que ainda não existem nas configurações.
func (s *TenantTableSyncService) SyncTenantTables() error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Sincronização de tabelas de clientes já está em execução")
		return nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando sincronização de tabelas de clientes")

	tables, err := s.provisioner.ListMetricTables()
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar tabelas de métricas")
		return err
	}

	registered := 0
	for _, table := range tables {
		slug, ok := domain.SlugFromMetricsTable(table)
		if !ok {
			logrus.WithField("table", table).Warn("Tabela fora da convenção de nomes, ignorando")
			continue
		}

		tenant, err := s.tenantRepo.GetBySlug(slug)
		if err != nil {
			logrus.WithError(err).WithField("slug", slug).Error("Erro ao consultar cliente")
			continue
		}

		if tenant != nil {
			continue
		}

		created, err := s.tenantRepo.Insert(&domain.Tenant{
			Name: tenantNameFromSlug(slug),
			Slug: slug,
		})
		if err != nil {
			logrus.WithError(err).WithField("slug", slug).Error("Erro ao cadastrar cliente descoberto")
			continue
		}

		// Descobertos entram desativados até revisão manual
		if err := s.tenantRepo.SetActive(slug, false); err != nil {
			logrus.WithError(err).WithField("slug", slug).Warn("Erro ao desativar cliente descoberto")
		}

		logrus.WithFields(logrus.Fields{
			"slug": created.Slug,
			"name": created.Name,
		}).Info("Cliente descoberto a partir de tabela provisionada")

		registered++
	}

	logrus.WithFields(logrus.Fields{
		"tables":     len(tables),
		"registered": registered,
	}).Info("Sincronização de tabelas de clientes concluída")

	return nil
}

// TriggerManualSync dispara a sincronização fora do agendamento
func (s *TenantTableSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de tabelas de clientes já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual de tabelas de clientes")
	go func() {
		if err := s.SyncTenantTables(); err != nil {
			logrus.WithError(err).Error("Erro na sincronização manual de tabelas de clientes")
		}
	}()
}

// GetStatus retorna o status atual do agendador
func (s *TenantTableSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}

// tenantNameFromSlug deriva um nome de exibição provisório do slug:
// "gabriel-seminovos" vira "Gabriel Seminovos".
func tenantNameFromSlug(slug string) string {
	base := strings.TrimSuffix(slug, "-dash")

	words := strings.Split(base, "-")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}

	return strings.Join(words, " ")
}
