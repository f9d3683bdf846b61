package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegistrarCompraRequest struct {
	CombustivelID uint            `json:"combustivel_id" validate:"required,min=1"`
	Data          string          `json:"data"        validate:"required,datetime=2006-01-02"`
	Litros        decimal.Decimal `json:"litros"      validate:"required"`
	ValorTotal    decimal.Decimal `json:"valor_total" validate:"required"`
	NotaFiscal    *string         `json:"nota_fiscal"`
	Fornecedor    *string         `json:"fornecedor"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CompraResponse struct {
	ID               string          `json:"id"`
	CombustivelID    uint            `json:"combustivel_id"`
	Combustivel      string          `json:"combustivel"`
	Data             string          `json:"data"`
	Litros           decimal.Decimal `json:"litros"`
	ValorTotal       decimal.Decimal `json:"valor_total"`
	PrecoLitro       decimal.Decimal `json:"preco_litro"`
	NotaFiscal       *string         `json:"nota_fiscal"`
	Fornecedor       *string         `json:"fornecedor"`
	CustoMedioAntes  decimal.Decimal `json:"custo_medio_antes"`
	CustoMedioDepois decimal.Decimal `json:"custo_medio_depois"`
}

// MargemCombustivelResponse consolida a planilha de margem de um
// combustível em um período: litros vendidos, custos, rateio de despesa
// e o lucro por litro resultante.
type MargemCombustivelResponse struct {
	Codigo           string          `json:"codigo"`
	Nome             string          `json:"nome"`
	LitrosVendidos   decimal.Decimal `json:"litros_vendidos"`
	ValorVendido     decimal.Decimal `json:"valor_vendido"`
	LitrosComprados  decimal.Decimal `json:"litros_comprados"`
	ValorComprado    decimal.Decimal `json:"valor_comprado"`
	CustoMedio       decimal.Decimal `json:"custo_medio"`
	DespesaPorLitro  decimal.Decimal `json:"despesa_por_litro"`
	PrecoEquilibrio  decimal.Decimal `json:"preco_equilibrio"`
	LucroPorLitro    decimal.Decimal `json:"lucro_por_litro"`
	LucroTotal       decimal.Decimal `json:"lucro_total"`
	MargemPct        decimal.Decimal `json:"margem_pct"`
	ParticipacaoPct  decimal.Decimal `json:"participacao_pct"`
	EstoqueLitros    decimal.Decimal `json:"estoque_litros"`
	PercaSobraLitros decimal.Decimal `json:"perca_sobra_litros"`
}

type MargensResponse struct {
	Competencia    string                      `json:"competencia"`
	Combustiveis   []MargemCombustivelResponse `json:"combustiveis"`
	TotalLitros    decimal.Decimal             `json:"total_litros"`
	TotalVendido   decimal.Decimal             `json:"total_vendido"`
	TotalLucro     decimal.Decimal             `json:"total_lucro"`
	TotalDespesas  decimal.Decimal             `json:"total_despesas"`
	MargemMediaPct decimal.Decimal             `json:"margem_media_pct"`
}
