package domain

// Summary é a redução de um conjunto de registros (brutos ou agregados) para
// os totais e médias de um período de um cliente (ResumoMetricas no front).
type Summary struct {
	TotalSpend           float64 `json:"investimento_total"`
	ConversationsStarted int     `json:"conversas_iniciadas"`
	AvgCostPerConversa   float64 `json:"custo_medio_conversa"`
	Impressions          int     `json:"impressoes"`
	Reach                int     `json:"alcance"`
	ClicksAll            int     `json:"cliques_todos"`
	ClicksLink           int     `json:"cliques_link"`
	AvgCTR               float64 `json:"ctr_medio"`
	AvgCPM               float64 `json:"cpm_medio"`
	AvgCPC               float64 `json:"cpc_medio"`
	AvgFrequency         float64 `json:"frequencia_media"`
	TotalEngagement      int     `json:"engajamento_total"`
	VideoViews           int     `json:"visualizacoes_video"`

	// Bloco de vendas: vem do conjunto de vendas buscado separadamente para
	// o mesmo cliente e período, nunca derivado dos registros de anúncio.
	SalesCount    int     `json:"vendas_geradas"`
	TotalRevenue  float64 `json:"receita_total"`
	ROI           float64 `json:"roi"`
	AverageTicket float64 `json:"ticket_medio"`

	// ROIDefined indica se o ROI pôde ser calculado (investimento > 0).
	// Quando falso o item de feedback de ROI é omitido.
	ROIDefined bool `json:"roi_definido"`
}
