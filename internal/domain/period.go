package domain

import (
	"time"

	"github.com/ngxdigital/dash-metrics-api/pkg/utils"
)

// InsightFilters delimita o período consultado de métricas e vendas.
type InsightFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// PeriodRange é o intervalo de datas resolvido de um período nomeado.
type PeriodRange struct {
	StartDate time.Time `json:"data_inicio"`
	EndDate   time.Time `json:"data_fim"`
	Label     string    `json:"label"`
}

// Filters converte o intervalo para os filtros de consulta.
func (p PeriodRange) Filters() *InsightFilters {
	start, end := p.StartDate, p.EndDate
	return &InsightFilters{StartDate: &start, EndDate: &end}
}

// ResolvePeriod resolve o período selecionado no dashboard para um intervalo
// de datas concreto. Períodos desconhecidos caem nos últimos 30 dias.
func ResolvePeriod(period string, now time.Time) PeriodRange {
	switch period {
	case "hoje":
		return PeriodRange{
			StartDate: utils.StartOfDay(now),
			EndDate:   utils.EndOfDay(now),
			Label:     "Hoje",
		}

	case "7dias":
		// últimos 7 dias incluindo hoje
		return PeriodRange{
			StartDate: utils.StartOfDay(now.AddDate(0, 0, -6)),
			EndDate:   utils.EndOfDay(now),
			Label:     "Últimos 7 dias",
		}

	case "mes-atual":
		return PeriodRange{
			StartDate: utils.StartOfMonth(now),
			EndDate:   utils.EndOfMonth(now),
			Label:     "Mês atual",
		}

	case "mes-passado":
		lastMonth := now.AddDate(0, -1, 0)
		return PeriodRange{
			StartDate: utils.StartOfMonth(lastMonth),
			EndDate:   utils.EndOfMonth(lastMonth),
			Label:     "Mês passado",
		}

	default:
		return PeriodRange{
			StartDate: utils.StartOfDay(now.AddDate(0, 0, -29)),
			EndDate:   utils.EndOfDay(now),
			Label:     "Últimos 30 dias",
		}
	}
}

// FilterMetricsByPeriod mantém apenas os registros cuja data_registro cai
// dentro do intervalo, inclusivo nas duas pontas.
func FilterMetricsByPeriod(metrics []*AdMetric, start, end time.Time) []*AdMetric {
	filtered := make([]*AdMetric, 0, len(metrics))
	for _, m := range metrics {
		d := m.RegistrationTime()
		if !d.Before(start) && !d.After(end) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}
