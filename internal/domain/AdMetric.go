// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"strings"
	"time"

	"github.com/ngxdigital/dash-metrics-api/pkg/utils"
)

// AdMetric representa o desempenho de um anúncio em um dia para um cliente.
// Os nomes JSON espelham as colunas das tabelas por cliente (dash_<slug>_rows).
// Campos monetários e de taxa chegam como texto da origem; use os métodos
// *Value para obter o número — a conversão tolerante fica centralizada neles.
type AdMetric struct {
	Idx                  int    `json:"idx"`
	ID                   string `json:"id"`
	RegistrationDate     string `json:"data_registro"`
	AdName               string `json:"nome_anuncio"`
	CreativeLink         string `json:"link_criativo"`
	AmountSpent          string `json:"valor_gasto"`
	ConversationsStarted int    `json:"conversas_iniciadas"`
	CostPerConversation  string `json:"custo_por_conversa"`
	Impressions          int    `json:"impressoes"`
	Reach                int    `json:"alcance"`
	Frequency            string `json:"frequencia"`
	ClicksAll            int    `json:"cliques_todos"`
	ClicksLink           int    `json:"cliques_link"`
	CTRAll               string `json:"ctr_todos"`
	CTRLink              string `json:"ctr_link"`
	CPM                  string `json:"cpm"`
	CPCAll               string `json:"cpc_todos"`
	CostPerLinkClick     string `json:"custo_clique_link"`
	PostEngagement       int    `json:"engajamento_publicacao"`
	VideoViews           int    `json:"visualizacoes_video"`
	CostPerVideoView     string `json:"custo_visualizacao_video"`
	CreatedAt            string `json:"created_at"`
}

// TrimmedName retorna o nome do anúncio sem espaços nas bordas, a chave de
// agrupamento da agregação. A comparação é sensível a maiúsculas.
func (m *AdMetric) TrimmedName() string {
	return strings.TrimSpace(m.AdName)
}

func (m *AdMetric) SpendValue() float64 {
	return utils.ParseDecimal(m.AmountSpent)
}

func (m *AdMetric) FrequencyValue() float64 {
	return utils.ParseDecimal(m.Frequency)
}

func (m *AdMetric) CTRAllValue() float64 {
	return utils.ParseDecimal(m.CTRAll)
}

func (m *AdMetric) CPMValue() float64 {
	return utils.ParseDecimal(m.CPM)
}

func (m *AdMetric) CPCAllValue() float64 {
	return utils.ParseDecimal(m.CPCAll)
}

// RegistrationTime converte data_registro para time.Time. Datas inválidas
// resultam no zero value, que ordena antes de qualquer data válida.
func (m *AdMetric) RegistrationTime() time.Time {
	t, err := time.Parse("2006-01-02", m.RegistrationDate)
	if err != nil {
		return time.Time{}
	}
	return t
}
