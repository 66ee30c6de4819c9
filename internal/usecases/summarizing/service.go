// Package summarizing reduz um conjunto de registros de anúncios aos totais
// e médias do período, e incorpora o bloco de vendas buscado separadamente.
package summarizing

import (
	"github.com/ngxdigital/dash-metrics-api/internal/domain"
	"github.com/ngxdigital/dash-metrics-api/pkg/utils"
)

// Row é o que o resumo precisa enxergar de um registro. Tanto AdMetric quanto
// AggregatedAd satisfazem a interface, então o resumo aceita linhas brutas ou
// consolidadas.
type Row interface {
	SpendValue() float64
	ConversasValue() int
	ImpressionsValue() int
	ReachValue() int
	ClicksAllValue() int
	ClicksLinkValue() int
	CTRValue() float64
	CPMRowValue() float64
	CPCRowValue() float64
	FrequencyRowValue() float64
	EngagementValue() int
	VideoViewsValue() int
}

// Summarize reduz as linhas ao resumo do período. Entrada vazia produz um
// resumo zerado — as divisões pela contagem são protegidas explicitamente.
func Summarize(rows []Row) *domain.Summary {
	summary := &domain.Summary{}

	var ctrSum, cpmSum, cpcSum, freqSum float64
	for _, r := range rows {
		summary.TotalSpend += r.SpendValue()
		summary.ConversationsStarted += r.ConversasValue()
		summary.Impressions += r.ImpressionsValue()
		summary.Reach += r.ReachValue()
		summary.ClicksAll += r.ClicksAllValue()
		summary.ClicksLink += r.ClicksLinkValue()
		summary.TotalEngagement += r.EngagementValue()
		summary.VideoViews += r.VideoViewsValue()

		ctrSum += r.CTRValue()
		cpmSum += r.CPMRowValue()
		cpcSum += r.CPCRowValue()
		freqSum += r.FrequencyRowValue()
	}

	summary.AvgCTR = meanOf(ctrSum, len(rows))
	summary.AvgCPM = meanOf(cpmSum, len(rows))
	summary.AvgCPC = meanOf(cpcSum, len(rows))
	summary.AvgFrequency = meanOf(freqSum, len(rows))

	if summary.ConversationsStarted > 0 {
		summary.AvgCostPerConversa = summary.TotalSpend / float64(summary.ConversationsStarted)
	}

	return summary
}

// meanOf é a política de média do resumo: média aritmética simples sobre as
// linhas recebidas, sem ponderação, mesmo quando as linhas são agregados.
// Mantida isolada aqui para que uma troca de política não toque o restante.
func meanOf(sum float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// ApplySales incorpora ao resumo o bloco de vendas do mesmo cliente e
// período. ROI fica indefinido (e marcado como tal) quando não há gasto.
func ApplySales(summary *domain.Summary, sales []*domain.Sale) {
	totals := domain.TotalsOf(sales)

	summary.SalesCount = totals.SalesCount
	summary.TotalRevenue = totals.TotalRevenue

	if totals.SalesCount > 0 {
		summary.AverageTicket = totals.TotalRevenue / float64(totals.SalesCount)
	} else {
		summary.AverageTicket = 0
	}

	if summary.TotalSpend > 0 {
		summary.ROI = (totals.TotalRevenue - summary.TotalSpend) / summary.TotalSpend * 100
		summary.ROIDefined = true
	} else {
		summary.ROI = 0
		summary.ROIDefined = false
	}
}

// MetricRows adapta registros brutos para as linhas do resumo.
func MetricRows(metrics []*domain.AdMetric) []Row {
	rows := make([]Row, len(metrics))
	for i, m := range metrics {
		rows[i] = metricRow{m}
	}
	return rows
}

// AggregatedRows adapta registros consolidados para as linhas do resumo.
// As médias passam a ser sobre as linhas consolidadas, não sobre as diárias.
func AggregatedRows(ads []*domain.AggregatedAd) []Row {
	rows := make([]Row, len(ads))
	for i, a := range ads {
		rows[i] = aggregatedRow{a}
	}
	return rows
}

type metricRow struct {
	m *domain.AdMetric
}

func (r metricRow) SpendValue() float64        { return r.m.SpendValue() }
func (r metricRow) ConversasValue() int        { return r.m.ConversationsStarted }
func (r metricRow) ImpressionsValue() int      { return r.m.Impressions }
func (r metricRow) ReachValue() int            { return r.m.Reach }
func (r metricRow) ClicksAllValue() int        { return r.m.ClicksAll }
func (r metricRow) ClicksLinkValue() int       { return r.m.ClicksLink }
func (r metricRow) CTRValue() float64          { return r.m.CTRAllValue() }
func (r metricRow) CPMRowValue() float64       { return r.m.CPMValue() }
func (r metricRow) CPCRowValue() float64       { return r.m.CPCAllValue() }
func (r metricRow) FrequencyRowValue() float64 { return r.m.FrequencyValue() }
func (r metricRow) EngagementValue() int       { return r.m.PostEngagement }
func (r metricRow) VideoViewsValue() int       { return r.m.VideoViews }

type aggregatedRow struct {
	a *domain.AggregatedAd
}

func (r aggregatedRow) SpendValue() float64        { return utils.ParseDecimal(r.a.AmountSpent) }
func (r aggregatedRow) ConversasValue() int        { return r.a.ConversationsStarted }
func (r aggregatedRow) ImpressionsValue() int      { return r.a.Impressions }
func (r aggregatedRow) ReachValue() int            { return r.a.Reach }
func (r aggregatedRow) ClicksAllValue() int        { return r.a.ClicksAll }
func (r aggregatedRow) ClicksLinkValue() int       { return r.a.ClicksLink }
func (r aggregatedRow) CTRValue() float64          { return utils.ParseDecimal(r.a.CTRAll) }
func (r aggregatedRow) CPMRowValue() float64       { return utils.ParseDecimal(r.a.CPM) }
func (r aggregatedRow) CPCRowValue() float64       { return utils.ParseDecimal(r.a.CPCAll) }
func (r aggregatedRow) FrequencyRowValue() float64 { return utils.ParseDecimal(r.a.Frequency) }
func (r aggregatedRow) EngagementValue() int       { return r.a.PostEngagement }
func (r aggregatedRow) VideoViewsValue() int       { return r.a.VideoViews }
