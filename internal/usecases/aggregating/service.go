// Package aggregating consolida registros diários de anúncios pelo nome,
// somando métricas aditivas e rederivando as taxas a partir dos totais.
package aggregating

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/ngxdigital/dash-metrics-api/internal/domain"
	"github.com/ngxdigital/dash-metrics-api/pkg/utils"
)

// Aggregator agrega registros de anúncios e diagnostica duplicatas.
type Aggregator interface {
	AggregateByName(metrics []*domain.AdMetric) []*domain.AggregatedAd
	CheckDuplicates(metrics []*domain.AdMetric) *domain.DuplicateReport
}

type Service struct {
	now func() time.Time
}

// NewService cria o agregador. O relógio é injetável para que o identificador
// sintético dos agregados seja determinístico em testes.
func NewService(opts ...Option) *Service {
	s := &Service{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

var idSanitizer = regexp.MustCompile(`\s+`)

// AggregateByName funde todos os registros com o mesmo nome de anúncio (após
// trim, sensível a maiúsculas) em um AggregatedAd por nome. A ordem de saída
// segue a primeira ocorrência de cada nome na entrada. Entrada vazia produz
// saída vazia, sem erro.
func (s *Service) AggregateByName(metrics []*domain.AdMetric) []*domain.AggregatedAd {
	groups := make(map[string][]*domain.AdMetric)
	order := make([]string, 0, len(metrics))

	for _, m := range metrics {
		name := m.TrimmedName()
		if _, seen := groups[name]; !seen {
			order = append(order, name)
		}
		groups[name] = append(groups[name], m)
	}

	generatedAt := s.now().UnixMilli()
	aggregated := make([]*domain.AggregatedAd, 0, len(order))

	for idx, name := range order {
		group := groups[name]

		// Ordena por data de registro para identificar início e fim da
		// veiculação. O mais recente também serve de chave de ordenação.
		sorted := make([]*domain.AdMetric, len(group))
		copy(sorted, group)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].RegistrationTime().Before(sorted[j].RegistrationTime())
		})

		first := sorted[0]
		last := sorted[len(sorted)-1]

		agg := &domain.AggregatedAd{
			ID:               syntheticID(name, generatedAt),
			Idx:              idx + 1,
			AdName:           name,
			CreativeLink:     first.CreativeLink,
			RegistrationDate: last.RegistrationDate,
			StartDate:        first.RegistrationDate,
			EndDate:          last.RegistrationDate,
			TotalDays:        len(group),
			CreatedAt:        last.CreatedAt,
			SourceAds:        group,
		}

		var spend, weightedFreq float64
		for _, m := range group {
			spend += m.SpendValue()
			agg.ConversationsStarted += m.ConversationsStarted
			agg.Impressions += m.Impressions
			agg.Reach += m.Reach
			agg.ClicksAll += m.ClicksAll
			agg.ClicksLink += m.ClicksLink
			agg.PostEngagement += m.PostEngagement
			agg.VideoViews += m.VideoViews

			// Frequência não é aditiva: média ponderada pelo alcance.
			weightedFreq += m.FrequencyValue() * float64(m.Reach)
		}

		agg.AmountSpent = utils.FormatMoney(spend)
		agg.CostPerConversation = safeMoneyRatio(spend, agg.ConversationsStarted)
		agg.CTRAll = safePercent(agg.ClicksAll, agg.Impressions)
		agg.CTRLink = safePercent(agg.ClicksLink, agg.Impressions)
		agg.CPM = safeMille(spend, agg.Impressions)
		agg.CPCAll = safeMoneyRatio(spend, agg.ClicksAll)
		agg.CostPerLinkClick = safeMoneyRatio(spend, agg.ClicksLink)
		agg.CostPerVideoView = safeMoneyRatio(spend, agg.VideoViews)

		if agg.Reach > 0 {
			agg.Frequency = utils.FormatMoney(weightedFreq / float64(agg.Reach))
		} else {
			agg.Frequency = utils.FormatMoney(0)
		}

		aggregated = append(aggregated, agg)
	}

	return aggregated
}

// CheckDuplicates conta registros por nome de anúncio (após trim) e reporta
// quantos seriam consolidados pela agregação. Diagnóstico somente leitura.
func (s *Service) CheckDuplicates(metrics []*domain.AdMetric) *domain.DuplicateReport {
	counts := make(map[string]int)
	order := make([]string, 0, len(metrics))

	for _, m := range metrics {
		name := m.TrimmedName()
		if counts[name] == 0 {
			order = append(order, name)
		}
		counts[name]++
	}

	duplicates := make([]domain.DuplicateName, 0)
	for _, name := range order {
		if counts[name] > 1 {
			duplicates = append(duplicates, domain.DuplicateName{Name: name, Count: counts[name]})
		}
	}

	return &domain.DuplicateReport{
		HasDuplicates:         len(duplicates) > 0,
		Duplicates:            duplicates,
		TotalOriginal:         len(metrics),
		TotalAfterAggregation: len(counts),
		ReductionCount:        len(metrics) - len(counts),
	}
}

// syntheticID gera o identificador do agregado a partir do nome do anúncio e
// do instante de geração, único dentro da chamada.
func syntheticID(name string, generatedAt int64) string {
	slug := idSanitizer.ReplaceAllString(strings.ToLower(name), "_")
	return fmt.Sprintf("agregado_%s_%d", slug, generatedAt)
}

func safeMoneyRatio(spend float64, denominator int) string {
	if denominator <= 0 {
		return utils.FormatMoney(0)
	}
	return utils.FormatMoney(spend / float64(denominator))
}

func safePercent(numerator, impressions int) string {
	if impressions <= 0 {
		return utils.FormatMoney(0)
	}
	return utils.FormatMoney(float64(numerator) / float64(impressions) * 100)
}

func safeMille(spend float64, impressions int) string {
	if impressions <= 0 {
		return utils.FormatMoney(0)
	}
	return utils.FormatMoney(spend / float64(impressions) * 1000)
}
