package domain

// TenantMetricsResponse é a resposta do endpoint de métricas do cliente:
// registros brutos do período, consolidados por nome e diagnóstico de
// duplicatas.
type TenantMetricsResponse struct {
	Tenant     *Tenant          `json:"cliente"`
	Metrics    []*AdMetric      `json:"registros"`
	Aggregated []*AggregatedAd  `json:"anuncios_agregados"`
	Duplicates *DuplicateReport `json:"duplicatas"`
}

// TenantSummaryResponse é a resposta do endpoint de resumo do cliente.
type TenantSummaryResponse struct {
	Tenant      *Tenant        `json:"cliente"`
	Summary     *Summary       `json:"resumo"`
	Feedbacks   []FeedbackItem `json:"feedbacks"`
	AdInsights  []AdInsight    `json:"insights"`
	MetricCards []MetricCard   `json:"cartoes"`
}

// SalesResponse é a resposta da listagem de vendas de um cliente.
type SalesResponse struct {
	Sales  []*Sale     `json:"vendas"`
	Totals SalesTotals `json:"totais"`
}
