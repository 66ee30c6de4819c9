package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsTableFromSlug(t *testing.T) {
	tests := []struct {
		name     string
		slug     string
		expected string
	}{
		{name: "slug legado da SA Veículos", slug: "saveiculos-dash", expected: "dash_sa_veiculos_rows"},
		{name: "slug com sufixo -dash", slug: "autoprime-dash", expected: "dash_autoprime_rows"},
		{name: "hífens viram underscores", slug: "ngx-veiculos-dash", expected: "dash_ngx_veiculos_rows"},
		{name: "slug sem sufixo", slug: "gabriel-seminovos", expected: "dash_gabriel_seminovos_rows"},
		{name: "slug vazio", slug: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MetricsTableFromSlug(tt.slug))
		})
	}
}

func TestSalesTableFromSlug(t *testing.T) {
	assert.Equal(t, "dash_sa_veiculos_vendas", SalesTableFromSlug("saveiculos-dash"))
	assert.Equal(t, "dash_ngx_veiculos_vendas", SalesTableFromSlug("ngx-veiculos-dash"))
	assert.Equal(t, "", SalesTableFromSlug(""))
}

func TestSlugFromMetricsTable(t *testing.T) {
	slug, ok := SlugFromMetricsTable("dash_ngx_veiculos_rows")
	assert.True(t, ok)
	assert.Equal(t, "ngx-veiculos", slug)

	// tabela legada resolve para o slug histórico
	slug, ok = SlugFromMetricsTable("dash_sa_veiculos_rows")
	assert.True(t, ok)
	assert.Equal(t, "saveiculos-dash", slug)

	_, ok = SlugFromMetricsTable("configuracoes")
	assert.False(t, ok)

	_, ok = SlugFromMetricsTable("dash_ngx_veiculos_vendas")
	assert.False(t, ok)
}

func TestParseBusinessType(t *testing.T) {
	assert.Equal(t, "vendas", ParseBusinessType("vendas").Code())
	assert.Equal(t, "mensagens", ParseBusinessType("mensagens").Code())
	assert.Equal(t, "mensagens", ParseBusinessType("qualquer-coisa").Code())

	var zero BusinessType
	assert.Equal(t, "mensagens", zero.Code())
}

func TestBusinessTypeMetricCards(t *testing.T) {
	summary := &Summary{
		TotalSpend:           1500.5,
		ConversationsStarted: 42,
		AvgCostPerConversa:   35.73,
		SalesCount:           3,
		TotalRevenue:         150000,
		AverageTicket:        50000,
		ROI:                  9890.6,
		ROIDefined:           true,
	}

	msgCards := BusinessMessages.MetricCards(summary)
	assert.Equal(t, "Conversas Iniciadas", msgCards[1].Label)
	assert.Equal(t, "42", msgCards[1].Value)

	salesCards := BusinessSales.MetricCards(summary)
	assert.Equal(t, "ROI", salesCards[4].Label)
	assert.Equal(t, "9.890,6%", salesCards[4].Value)

	// ROI indefinido não exibe número
	summary.ROIDefined = false
	salesCards = BusinessSales.MetricCards(summary)
	assert.Equal(t, "—", salesCards[4].Value)
}
