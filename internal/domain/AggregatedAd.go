package domain

// AggregatedAd é o anúncio consolidado: todos os AdMetric com o mesmo nome
// (após trim) dentro do conjunto consultado, fundidos em um único registro.
// Métricas aditivas são somas exatas; as taxas são rederivadas dos totais.
type AggregatedAd struct {
	ID                   string `json:"id"`
	Idx                  int    `json:"idx"`
	AdName               string `json:"nome_anuncio"`
	CreativeLink         string `json:"link_criativo"`
	RegistrationDate     string `json:"data_registro"`
	StartDate            string `json:"data_inicio"`
	EndDate              string `json:"data_fim"`
	TotalDays            int    `json:"total_dias"`
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

	// SourceAds referencia os registros originais que compõem o agregado.
	// Referência somente leitura, para rastreabilidade na apresentação.
	SourceAds []*AdMetric `json:"anuncios_originais"`
}

// DuplicateName é um nome de anúncio que aparece mais de uma vez no conjunto.
type DuplicateName struct {
	Name  string `json:"nome"`
	Count int    `json:"count"`
}

// DuplicateReport é o diagnóstico de duplicatas exibido pela apresentação
// como aviso "N anúncios duplicados consolidados".
type DuplicateReport struct {
	HasDuplicates         bool            `json:"hasDuplicates"`
	Duplicates            []DuplicateName `json:"duplicates"`
	TotalOriginal         int             `json:"totalOriginal"`
	TotalAfterAggregation int             `json:"totalAfterAggregation"`
	ReductionCount        int             `json:"reductionCount"`
}
