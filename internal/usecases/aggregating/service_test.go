package aggregating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngxdigital/dash-metrics-api/internal/domain"
)

func fixedClock() time.Time {
	return time.Date(2025, 10, 23, 12, 0, 0, 0, time.UTC)
}

func metric(name, date, spend string, conversas, impressoes, alcance int) *domain.AdMetric {
	return &domain.AdMetric{
		AdName:               name,
		RegistrationDate:     date,
		AmountSpent:          spend,
		ConversationsStarted: conversas,
		Impressions:          impressoes,
		Reach:                alcance,
	}
}

func TestAggregateByName_MergesSameName(t *testing.T) {
	service := NewService(WithClock(fixedClock))

	metrics := []*domain.AdMetric{
		metric("HILUX SW4 - 23/24", "2025-10-16", "1.10", 0, 45, 39),
		metric("HILUX SW4 - 23/24", "2025-10-17", "2.00", 1, 55, 41),
	}

	result := service.AggregateByName(metrics)
	require.Len(t, result, 1)

	agg := result[0]
	assert.Equal(t, "HILUX SW4 - 23/24", agg.AdName)
	assert.Equal(t, "3.10", agg.AmountSpent)
	assert.Equal(t, 1, agg.ConversationsStarted)
	assert.Equal(t, 100, agg.Impressions)
	assert.Equal(t, "3.10", agg.CostPerConversation)
	assert.Equal(t, "2025-10-16", agg.StartDate)
	assert.Equal(t, "2025-10-17", agg.EndDate)
	assert.Equal(t, "2025-10-17", agg.RegistrationDate)
	assert.Equal(t, 2, agg.TotalDays)
	assert.Equal(t, 1, agg.Idx)
	assert.Len(t, agg.SourceAds, 2)
}

func TestAggregateByName_TrimsButKeepsCase(t *testing.T) {
	service := NewService(WithClock(fixedClock))

	metrics := []*domain.AdMetric{
		metric("  AMAROK V6  ", "2025-10-01", "10.00", 1, 100, 80),
		metric("AMAROK V6", "2025-10-02", "5.00", 0, 50, 40),
		metric("amarok v6", "2025-10-03", "2.00", 0, 20, 10),
	}

	result := service.AggregateByName(metrics)
	require.Len(t, result, 2)

	// espaço nas bordas funde, diferença de caixa não
	assert.Equal(t, "AMAROK V6", result[0].AdName)
	assert.Equal(t, "15.00", result[0].AmountSpent)
	assert.Equal(t, "amarok v6", result[1].AdName)
}

func TestAggregateByName_DerivedRatios(t *testing.T) {
	service := NewService(WithClock(fixedClock))

	m1 := metric("RANGER XLT", "2025-10-01", "10.00", 2, 1000, 500)
	m1.ClicksAll = 30
	m1.ClicksLink = 20
	m1.VideoViews = 100
	m1.Frequency = "2.00"

	m2 := metric("RANGER XLT", "2025-10-02", "30.00", 2, 1000, 1500)
	m2.ClicksAll = 10
	m2.ClicksLink = 5
	m2.VideoViews = 100
	m2.Frequency = "1.00"

	result := service.AggregateByName([]*domain.AdMetric{m1, m2})
	require.Len(t, result, 1)
	agg := result[0]

	// taxas rederivadas dos totais, nunca média das taxas originais
	assert.Equal(t, "2.00", agg.CTRAll)             // 40/2000*100
	assert.Equal(t, "1.25", agg.CTRLink)            // 25/2000*100
	assert.Equal(t, "20.00", agg.CPM)               // 40/2000*1000
	assert.Equal(t, "1.00", agg.CPCAll)             // 40/40
	assert.Equal(t, "1.60", agg.CostPerLinkClick)   // 40/25
	assert.Equal(t, "0.20", agg.CostPerVideoView)   // 40/200
	assert.Equal(t, "10.00", agg.CostPerConversation)

	// frequência: média ponderada pelo alcance = (2*500 + 1*1500) / 2000
	assert.Equal(t, "1.25", agg.Frequency)
}

func TestAggregateByName_ZeroDenominators(t *testing.T) {
	service := NewService(WithClock(fixedClock))

	m := metric("S10 HIGH COUNTRY", "2025-10-01", "18.20", 0, 0, 0)
	result := service.AggregateByName([]*domain.AdMetric{m})
	require.Len(t, result, 1)

	agg := result[0]
	assert.Equal(t, "0.00", agg.CostPerConversation)
	assert.Equal(t, "0.00", agg.CTRAll)
	assert.Equal(t, "0.00", agg.CPM)
	assert.Equal(t, "0.00", agg.CPCAll)
	assert.Equal(t, "0.00", agg.Frequency)
	assert.Equal(t, "0.00", agg.CostPerVideoView)
}

func TestAggregateByName_UnparsableSpendIsZero(t *testing.T) {
	service := NewService(WithClock(fixedClock))

	metrics := []*domain.AdMetric{
		metric("TORO ULTRA", "2025-10-01", "12.75", 1, 100, 80),
		metric("TORO ULTRA", "2025-10-02", "n/a", 1, 100, 80),
	}

	result := service.AggregateByName(metrics)
	require.Len(t, result, 1)

	// registro mal formado conta como zero e não aborta a agregação
	assert.Equal(t, "12.75", result[0].AmountSpent)
	assert.Equal(t, 2, result[0].ConversationsStarted)
}

func TestAggregateByName_DeterministicOrderAndIdx(t *testing.T) {
	service := NewService(WithClock(fixedClock))

	metrics := []*domain.AdMetric{
		metric("B", "2025-10-02", "1.00", 0, 0, 0),
		metric("A", "2025-10-01", "1.00", 0, 0, 0),
		metric("B", "2025-10-03", "1.00", 0, 0, 0),
	}

	first := service.AggregateByName(metrics)
	second := service.AggregateByName(metrics)

	require.Len(t, first, 2)
	assert.Equal(t, "B", first[0].AdName)
	assert.Equal(t, 1, first[0].Idx)
	assert.Equal(t, "A", first[1].AdName)
	assert.Equal(t, 2, first[1].Idx)

	// mesma entrada, mesma saída
	assert.Equal(t, first, second)
}

func TestAggregateByName_SyntheticID(t *testing.T) {
	service := NewService(WithClock(fixedClock))

	result := service.AggregateByName([]*domain.AdMetric{
		metric("HILUX SW4 - 23/24", "2025-10-16", "1.10", 0, 45, 39),
	})
	require.Len(t, result, 1)
	assert.Equal(t, "agregado_hilux_sw4_-_23/24_1761220800000", result[0].ID)
}

func TestAggregateByName_EmptyInput(t *testing.T) {
	service := NewService(WithClock(fixedClock))
	assert.Empty(t, service.AggregateByName(nil))
	assert.Empty(t, service.AggregateByName([]*domain.AdMetric{}))
}

func TestCheckDuplicates(t *testing.T) {
	service := NewService(WithClock(fixedClock))

	metrics := []*domain.AdMetric{
		metric("HILUX SW4", "2025-10-01", "1.00", 0, 0, 0),
		metric("HILUX SW4 ", "2025-10-02", "1.00", 0, 0, 0),
		metric("AMAROK V6", "2025-10-01", "1.00", 0, 0, 0),
		metric("RANGER XLT", "2025-10-01", "1.00", 0, 0, 0),
		metric("S10 HIGH COUNTRY", "2025-10-01", "1.00", 0, 0, 0),
	}

	report := service.CheckDuplicates(metrics)
	assert.True(t, report.HasDuplicates)
	assert.Equal(t, 5, report.TotalOriginal)
	assert.Equal(t, 4, report.TotalAfterAggregation)
	assert.Equal(t, 1, report.ReductionCount)
	require.Len(t, report.Duplicates, 1)
	assert.Equal(t, "HILUX SW4", report.Duplicates[0].Name)
	assert.Equal(t, 2, report.Duplicates[0].Count)
}

func TestCheckDuplicates_NoDuplicates(t *testing.T) {
	service := NewService(WithClock(fixedClock))

	metrics := []*domain.AdMetric{
		metric("A", "2025-10-01", "1.00", 0, 0, 0),
		metric("B", "2025-10-01", "1.00", 0, 0, 0),
	}

	report := service.CheckDuplicates(metrics)
	assert.False(t, report.HasDuplicates)
	assert.Empty(t, report.Duplicates)
	assert.Equal(t, 0, report.ReductionCount)
}

func TestCheckDuplicates_EmptyInput(t *testing.T) {
	service := NewService(WithClock(fixedClock))

	report := service.CheckDuplicates(nil)
	assert.False(t, report.HasDuplicates)
	assert.Equal(t, 0, report.TotalOriginal)
	assert.Equal(t, 0, report.TotalAfterAggregation)
}

func TestAggregateByName_OutputNeverLargerThanInput(t *testing.T) {
	service := NewService(WithClock(fixedClock))

	metrics := []*domain.AdMetric{
		metric("A", "2025-10-01", "1.00", 0, 0, 0),
		metric("B", "2025-10-01", "1.00", 0, 0, 0),
		metric("A", "2025-10-02", "1.00", 0, 0, 0),
	}

	result := service.AggregateByName(metrics)
	assert.LessOrEqual(t, len(result), len(metrics))

	distinct := []*domain.AdMetric{
		metric("A", "2025-10-01", "1.00", 0, 0, 0),
		metric("B", "2025-10-01", "1.00", 0, 0, 0),
	}
	assert.Len(t, service.AggregateByName(distinct), len(distinct))
}
