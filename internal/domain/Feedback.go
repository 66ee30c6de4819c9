package domain

// FeedbackLevel é a banda qualitativa de um julgamento de performance,
// ordenada de excellent (melhor) a critical (pior).
type FeedbackLevel string

const (
	FeedbackExcellent  FeedbackLevel = "excellent"
	FeedbackGood       FeedbackLevel = "good"
	FeedbackAcceptable FeedbackLevel = "acceptable"
	FeedbackWarning    FeedbackLevel = "warning"
	FeedbackCritical   FeedbackLevel = "critical"
)

// FeedbackDimension identifica a dimensão avaliada de um resumo.
type FeedbackDimension string

const (
	FeedbackCPL         FeedbackDimension = "cpl"
	FeedbackPerformance FeedbackDimension = "performance"
	FeedbackROI         FeedbackDimension = "roi"
)

// FeedbackItem é um julgamento qualitativo sobre uma dimensão do resumo do
// período. No máximo um item por dimensão por chamada.
type FeedbackItem struct {
	Dimension FeedbackDimension `json:"tipo"`
	Level     FeedbackLevel     `json:"nivel"`
	Title     string            `json:"titulo"`
	Message   string            `json:"mensagem"`
	Value     string            `json:"valor,omitempty"`
}

// AdInsightKind classifica um insight textual sobre anúncios individuais.
type AdInsightKind string

const (
	AdInsightSuccess     AdInsightKind = "success"
	AdInsightOpportunity AdInsightKind = "opportunity"
	AdInsightWarning     AdInsightKind = "warning"
)

// AdInsight é uma observação textual gerada por regra sobre os anúncios do
// período (melhor anúncio, CTR alto, CTR baixo com gasto relevante).
type AdInsight struct {
	Kind    AdInsightKind `json:"tipo"`
	Message string        `json:"mensagem"`
}
