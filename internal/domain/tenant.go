package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ngxdigital/dash-metrics-api/pkg/utils"
)

// legacyTenantTables mapeia slugs anteriores à convenção atual de nomes.
var legacyTenantTables = map[string]string{
	"saveiculos-dash": "dash_sa_veiculos",
}

// tenantTableBase aplica a transformação textual fixa de slug para o prefixo
// das tabelas do cliente: remove o sufixo "-dash" e troca hífens por
// underscores. A mesma transformação vale para a tabela de métricas e a de
// vendas, então qualquer chamador que a use é consistente por construção.
func tenantTableBase(slug string) string {
	if base, ok := legacyTenantTables[slug]; ok {
		return base
	}

	base := strings.TrimSuffix(slug, "-dash")
	base = strings.ReplaceAll(base, "-", "_")
	return "dash_" + base
}

// MetricsTableFromSlug resolve a tabela de métricas de anúncios do cliente.
func MetricsTableFromSlug(slug string) string {
	if slug == "" {
		return ""
	}
	return tenantTableBase(slug) + "_rows"
}

// SalesTableFromSlug resolve a tabela de vendas do cliente.
func SalesTableFromSlug(slug string) string {
	if slug == "" {
		return ""
	}
	return tenantTableBase(slug) + "_vendas"
}

// SlugFromMetricsTable é a transformação inversa, usada pela descoberta de
// tabelas provisionadas fora do fluxo normal de cadastro.
func SlugFromMetricsTable(table string) (string, bool) {
	if !strings.HasPrefix(table, "dash_") || !strings.HasSuffix(table, "_rows") {
		return "", false
	}

	base := strings.TrimSuffix(strings.TrimPrefix(table, "dash_"), "_rows")
	if base == "" {
		return "", false
	}

	for slug, legacy := range legacyTenantTables {
		if legacy == "dash_"+base {
			return slug, true
		}
	}

	return strings.ReplaceAll(base, "_", "-"), true
}

// Tenant é um cliente do dashboard, identificado pelo slug da URL e dono de
// um namespace próprio de registros de anúncios e vendas (ClienteInfo).
type Tenant struct {
	ID                   int          `json:"id"`
	Name                 string       `json:"nome"`
	Slug                 string       `json:"slug"`
	LogoURL              string       `json:"logo_url"`
	BusinessType         BusinessType `json:"tipo_negocio"`
	Active               bool         `json:"ativo"`
	MonthlyConversasGoal int          `json:"meta_mensal_conversas"`
	MonthlyBudgetGoal    float64      `json:"meta_mensal_investimento"`
	MonthlySalesGoal     int          `json:"meta_mensal_vendas"`
	ROIGoal              float64      `json:"meta_roi"`
	CreatedAt            time.Time    `json:"created_at"`
}

// CreateTenantRequest é o corpo da requisição de cadastro de cliente.
type CreateTenantRequest struct {
	Name                 string  `json:"nome"`
	Slug                 string  `json:"slug"`
	BusinessType         string  `json:"tipo_negocio"`
	LogoURL              string  `json:"logo_url,omitempty"`
	MonthlyConversasGoal int     `json:"meta_mensal_conversas,omitempty"`
	MonthlyBudgetGoal    float64 `json:"meta_mensal_investimento,omitempty"`
	MonthlySalesGoal     int     `json:"meta_mensal_vendas,omitempty"`
	ROIGoal              float64 `json:"meta_roi,omitempty"`
}

// BusinessType é o tipo fechado de negócio do cliente. Cada variante carrega
// sua própria seleção de cartões de métrica para a apresentação, no lugar de
// condicionais espalhadas por tipo.
type BusinessType struct {
	code        string
	metricCards func(s *Summary) []MetricCard
}

// MetricCard é um cartão de métrica pronto para exibição.
type MetricCard struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

var (
	// BusinessMessages: dashboards focados em conversas iniciadas (leads).
	BusinessMessages = BusinessType{code: "mensagens", metricCards: messageCards}

	// BusinessSales: dashboards focados em vendas e retorno.
	BusinessSales = BusinessType{code: "vendas", metricCards: salesCards}
)

func messageCards(s *Summary) []MetricCard {
	return []MetricCard{
		{Label: "Investimento Total", Value: "R$ " + utils.FormatMoney(s.TotalSpend)},
		{Label: "Conversas Iniciadas", Value: fmt.Sprintf("%d", s.ConversationsStarted)},
		{Label: "Custo Médio por Conversa", Value: "R$ " + utils.FormatMoney(s.AvgCostPerConversa)},
		{Label: "Impressões", Value: fmt.Sprintf("%d", s.Impressions)},
		{Label: "Alcance", Value: fmt.Sprintf("%d", s.Reach)},
	}
}

func salesCards(s *Summary) []MetricCard {
	roi := "—"
	if s.ROIDefined {
		roi = utils.FormatPercentBR(s.ROI)
	}

	return []MetricCard{
		{Label: "Investimento Total", Value: "R$ " + utils.FormatMoney(s.TotalSpend)},
		{Label: "Vendas Geradas", Value: fmt.Sprintf("%d", s.SalesCount)},
		{Label: "Receita Total", Value: "R$ " + utils.FormatMoney(s.TotalRevenue)},
		{Label: "Ticket Médio", Value: "R$ " + utils.FormatMoney(s.AverageTicket)},
		{Label: "ROI", Value: roi},
	}
}

// ParseBusinessType resolve o código textual para a variante fechada.
// Códigos desconhecidos caem em mensagens, o comportamento histórico.
func ParseBusinessType(code string) BusinessType {
	if code == BusinessSales.code {
		return BusinessSales
	}
	return BusinessMessages
}

func (b BusinessType) Code() string {
	if b.code == "" {
		return BusinessMessages.code
	}
	return b.code
}

// MetricCards retorna os cartões de métrica da variante para um resumo.
func (b BusinessType) MetricCards(s *Summary) []MetricCard {
	if b.metricCards == nil {
		return messageCards(s)
	}
	return b.metricCards(s)
}

func (b BusinessType) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Code())
}

func (b *BusinessType) UnmarshalJSON(data []byte) error {
	var code string
	if err := json.Unmarshal(data, &code); err != nil {
		return err
	}
	*b = ParseBusinessType(code)
	return nil
}
