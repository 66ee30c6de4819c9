// Package feedback classifica o resumo de um período em bandas qualitativas
// por dimensão (CPL, performance, ROI) e gera insights textuais por anúncio.
// As escadas de limiares são tabelas ordenadas avaliadas de cima para baixo,
// primeiro predicado verdadeiro vence; função pura, sem estado externo.
package feedback

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ngxdigital/dash-metrics-api/internal/domain"
	"github.com/ngxdigital/dash-metrics-api/pkg/utils"
)

// Faixa nacional de taxa de conversão de lead em venda no varejo automotivo,
// referência das bandas de performance.
const (
	nationalConversionFloor = 3.5
	nationalConversionCeil  = 6.25
)

// band é uma linha da escada de limiares de uma dimensão.
type band struct {
	matches func(v float64) bool
	level   domain.FeedbackLevel
	message string
}

func atMost(limit float64) func(float64) bool {
	return func(v float64) bool { return v <= limit }
}

func atLeast(limit float64) func(float64) bool {
	return func(v float64) bool { return v >= limit }
}

func above(limit float64) func(float64) bool {
	return func(v float64) bool { return v > limit }
}

func always(float64) bool { return true }

// cplBands avalia o custo médio por conversa, em reais.
var cplBands = []band{
	{atMost(8.00), domain.FeedbackExcellent, "Seu custo por lead está excelente!"},
	{atMost(12.00), domain.FeedbackGood, "Bom desempenho nos leads gerados."},
	{atMost(15.00), domain.FeedbackAcceptable, "Resultados dentro do esperado."},
	{atMost(30.00), domain.FeedbackWarning, "Atenção: o custo por lead está alto."},
	{always, domain.FeedbackCritical, "Custo por lead fora do ideal!"},
}

// performanceBands avaliam a taxa de conversão (vendas/conversas em %)
// contra a faixa de média nacional.
var performanceBands = []band{
	{atLeast(nationalConversionCeil), domain.FeedbackExcellent, "Conversão acima da média nacional, excelente trabalho!"},
	{atLeast(4.5), domain.FeedbackGood, "Boa taxa de conversão, dentro da média nacional."},
	{atLeast(nationalConversionFloor), domain.FeedbackAcceptable, "Conversão na faixa da média nacional."},
	{always, domain.FeedbackWarning, "Conversão abaixo da média nacional, revise o atendimento dos leads."},
}

// roiBands avaliam o ROI percentual do período.
var roiBands = []band{
	{atLeast(300), domain.FeedbackExcellent, "Ótimo retorno sobre investimento!"},
	{atLeast(150), domain.FeedbackGood, "Bom retorno, continue assim!"},
	{atLeast(50), domain.FeedbackAcceptable, "Retorno razoável, há espaço para melhorar."},
	{above(0), domain.FeedbackAcceptable, "Retorno positivo, mas ainda baixo."},
	{always, domain.FeedbackWarning, "Retorno abaixo do investido."},
}

func classify(bands []band, value float64) band {
	for _, b := range bands {
		if b.matches(value) {
			return b
		}
	}
	// a última linha de toda escada aceita qualquer valor
	return bands[len(bands)-1]
}

// ForSummary produz a lista ordenada de julgamentos do resumo: CPL (quando há
// conversas), performance e ROI (quando definido), nessa ordem.
func ForSummary(summary *domain.Summary) []domain.FeedbackItem {
	items := make([]domain.FeedbackItem, 0, 3)

	if item, ok := cplFeedback(summary); ok {
		items = append(items, item)
	}

	items = append(items, performanceFeedback(summary))

	if item, ok := roiFeedback(summary); ok {
		items = append(items, item)
	}

	return items
}

// cplFeedback é omitido quando não houve conversa no período: sem
// denominador não há custo por lead a julgar.
func cplFeedback(summary *domain.Summary) (domain.FeedbackItem, bool) {
	if summary.ConversationsStarted == 0 {
		return domain.FeedbackItem{}, false
	}

	cpl := summary.AvgCostPerConversa
	b := classify(cplBands, cpl)

	return domain.FeedbackItem{
		Dimension: domain.FeedbackCPL,
		Level:     b.level,
		Title:     "CPL (Custo Por Lead)",
		Message:   b.message,
		Value:     fmt.Sprintf("R$ %s", utils.FormatMoney(cpl)),
	}, true
}

func performanceFeedback(summary *domain.Summary) domain.FeedbackItem {
	item := domain.FeedbackItem{
		Dimension: domain.FeedbackPerformance,
		Title:     "Performance de Conversão",
	}

	if summary.ConversationsStarted == 0 {
		item.Level = domain.FeedbackCritical
		item.Message = "Nenhuma conversa iniciada no período."
		item.Value = "0% de conversão"
		return item
	}

	if summary.SalesCount == 0 {
		item.Level = domain.FeedbackWarning
		item.Message = "Conversas iniciadas, mas nenhuma venda registrada no período."
		item.Value = "0% de conversão"
		return item
	}

	rate := float64(summary.SalesCount) / float64(summary.ConversationsStarted) * 100
	b := classify(performanceBands, rate)

	item.Level = b.level
	item.Message = b.message
	item.Value = fmt.Sprintf("%s de conversão", utils.FormatPercentBR(rate))
	return item
}

// roiFeedback é omitido quando o ROI é indefinido (sem investimento no
// período não há retorno a medir).
func roiFeedback(summary *domain.Summary) (domain.FeedbackItem, bool) {
	if !summary.ROIDefined {
		return domain.FeedbackItem{}, false
	}

	b := classify(roiBands, summary.ROI)

	return domain.FeedbackItem{
		Dimension: domain.FeedbackROI,
		Level:     b.level,
		Title:     "ROI (Retorno sobre Investimento)",
		Message:   b.message,
		Value:     utils.FormatPercentBR(summary.ROI),
	}, true
}

// AdHighlights gera observações por anúncio: o melhor gerador de conversas,
// um anúncio com CTR alto (oportunidade de budget) e um com CTR baixo e gasto
// relevante (criativo a revisar). Zero a três itens por chamada.
func AdHighlights(metrics []*domain.AdMetric) []domain.AdInsight {
	insights := make([]domain.AdInsight, 0, 3)
	if len(metrics) == 0 {
		return insights
	}

	ordered := make([]*domain.AdMetric, len(metrics))
	copy(ordered, metrics)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ConversationsStarted > ordered[j].ConversationsStarted
	})

	if best := ordered[0]; best.ConversationsStarted > 0 {
		insights = append(insights, domain.AdInsight{
			Kind:    domain.AdInsightSuccess,
			Message: fmt.Sprintf("%s gerou %d conversa(s) (melhor anúncio)", shortName(best.AdName), best.ConversationsStarted),
		})
	}

	for _, m := range metrics {
		if m.CTRAllValue() > 5 {
			insights = append(insights, domain.AdInsight{
				Kind:    domain.AdInsightOpportunity,
				Message: fmt.Sprintf("%s tem CTR de %s - considere aumentar budget", shortName(m.AdName), utils.FormatPercentBR(m.CTRAllValue())),
			})
			break
		}
	}

	for _, m := range metrics {
		if m.CTRAllValue() < 1 && m.SpendValue() > 10 {
			insights = append(insights, domain.AdInsight{
				Kind:    domain.AdInsightWarning,
				Message: fmt.Sprintf("%s tem CTR baixo (%s) - revisar criativo", shortName(m.AdName), utils.FormatPercentBR(m.CTRAllValue())),
			})
			break
		}
	}

	return insights
}

// shortName trunca nomes longos de anúncio para caber na mensagem.
func shortName(name string) string {
	runes := []rune(strings.TrimSpace(name))
	if len(runes) <= 20 {
		return string(runes)
	}
	return string(runes[:20]) + "..."
}
