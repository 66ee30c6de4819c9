package tenanting

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ngxdigital/dash-metrics-api/pkg/utils"
)

// AuditEntry registra uma operação administrativa sobre um cliente.
type AuditEntry struct {
	ID        string    `json:"id"`
	Action    string    `json:"acao"`
	Slug      string    `json:"slug"`
	Details   string    `json:"detalhes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AuditLog mantém em memória o histórico de operações administrativas da
// instância. Criado explicitamente por NewAuditLog e injetado no serviço,
// nunca como estado global do pacote.
type AuditLog struct {
	mu      sync.Mutex
	entries []AuditEntry
}

func NewAuditLog() *AuditLog {
	return &AuditLog{
		entries: make([]AuditEntry, 0),
	}
}

// Record acrescenta uma entrada ao histórico. Falha ao gerar o identificador
// não interrompe a operação que está sendo auditada.
func (a *AuditLog) Record(action, slug, details string) {
	id, err := utils.GenerateID()
	if err != nil {
		logrus.WithField("error", err).Warn("Error generating audit entry id")
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.entries = append(a.entries, AuditEntry{
		ID:        id,
		Action:    action,
		Slug:      slug,
		Details:   details,
		CreatedAt: time.Now(),
	})
}

// Entries devolve uma cópia do histórico, mais antigas primeiro.
func (a *AuditLog) Entries() []AuditEntry {
	a.mu.Lock()
	defer a.mu.Unlock()

	entries := make([]AuditEntry, len(a.entries))
	copy(entries, a.entries)
	return entries
}
