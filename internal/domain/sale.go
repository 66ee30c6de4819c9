package domain

import "time"

// Sale representa uma venda registrada na tabela de vendas do cliente
// (dash_<slug>_vendas). O valor do veículo é a receita atribuída ao anúncio.
type Sale struct {
	ID            string    `json:"id"`
	AdReference   string    `json:"anuncio_id"`
	AdTitle       string    `json:"anuncio_titulo"`
	VehicleAmount float64   `json:"valor_veiculo"`
	SaleDate      time.Time `json:"data_venda"`
	TenantSlug    string    `json:"cliente_slug"`
	CreatedAt     time.Time `json:"created_at"`
}

// SalesTotals resume o conjunto de vendas de um período.
type SalesTotals struct {
	SalesCount   int     `json:"total_vendas"`
	TotalRevenue float64 `json:"valor_total"`
}

// TotalsOf reduz uma lista de vendas aos totais do período.
func TotalsOf(sales []*Sale) SalesTotals {
	totals := SalesTotals{SalesCount: len(sales)}
	for _, s := range sales {
		totals.TotalRevenue += s.VehicleAmount
	}
	return totals
}

// CreateSaleRequest é o corpo da requisição de registro de venda.
type CreateSaleRequest struct {
	AdReference   string  `json:"anuncio_id"`
	AdTitle       string  `json:"anuncio_titulo"`
	VehicleAmount float64 `json:"valor_veiculo"`
	SaleDate      string  `json:"data_venda,omitempty"`
}
