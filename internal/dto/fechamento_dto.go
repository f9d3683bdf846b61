package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// LeituraBicoInput carrega os encerrantes como texto na convenção de
// entrada: com vírgula decimal explícita ou como dígitos crus do encerrante
// (três últimos dígitos decimais). "-" e vazio valem zero.
type LeituraBicoInput struct {
	BicoID  uint   `json:"bico_id" validate:"required,min=1"`
	Inicial string `json:"inicial"`
	Final   string `json:"final"`
}

type SessaoFrentistaInput struct {
	FrentistaID        uint   `json:"frentista_id" validate:"required,min=1"`
	ValorCartaoDebito  string `json:"valor_cartao_debito"`
	ValorCartaoCredito string `json:"valor_cartao_credito"`
	// ValorCartao é o campo legado sem separação débito/crédito. Usado
	// apenas quando os dois campos separados estão vazios.
	ValorCartao     string `json:"valor_cartao"`
	ValorNota       string  `json:"valor_nota"`
	ValorPix        string  `json:"valor_pix"`
	ValorDinheiro   string  `json:"valor_dinheiro"`
	ValorBaratao    string  `json:"valor_baratao"`
	ValorProdutos   string  `json:"valor_produtos"`
	ValorConferido  string  `json:"valor_conferido"`
	ValorEncerrante string  `json:"valor_encerrante"`
	Observacoes     *string `json:"observacoes"`
}

type RecebimentoInput struct {
	FormaPagamentoID uint   `json:"forma_pagamento_id" validate:"required,min=1"`
	Valor            string `json:"valor"`
}

type SalvarFechamentoRequest struct {
	Data        string                 `json:"data"     validate:"required,datetime=2006-01-02"`
	TurnoID     uint                   `json:"turno_id" validate:"required,min=1"`
	Leituras    []LeituraBicoInput     `json:"leituras"     validate:"dive"`
	Sessoes     []SessaoFrentistaInput `json:"sessoes"      validate:"dive"`
	Recebidos   []RecebimentoInput     `json:"recebimentos" validate:"dive"`
	Observacoes *string                `json:"observacoes"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SumarioCombustivelResponse struct {
	Codigo        string          `json:"codigo"`
	Nome          string          `json:"nome"`
	Litros        decimal.Decimal `json:"litros"`
	Valor         decimal.Decimal `json:"valor"`
	LitrosExibido string          `json:"litros_exibido"`
	ValorExibido  string          `json:"valor_exibido"`
}

type SessaoResumoResponse struct {
	FrentistaID    uint            `json:"frentista_id"`
	Frentista      string          `json:"frentista"`
	TotalDeclarado decimal.Decimal `json:"total_declarado"`
	Diferenca      decimal.Decimal `json:"diferenca"` // positivo = sobra
}

type PagamentoResumoResponse struct {
	FormaPagamentoID uint            `json:"forma_pagamento_id"`
	Nome             string          `json:"nome"`
	Valor            decimal.Decimal `json:"valor"`
	Taxa             decimal.Decimal `json:"taxa"`
	ValorTaxa        decimal.Decimal `json:"valor_taxa"`
	Liquido          decimal.Decimal `json:"liquido"`
}

type ResumoFechamentoResponse struct {
	FechamentoID      string                       `json:"fechamento_id"`
	Data              string                       `json:"data"`
	Turno             string                       `json:"turno"`
	Status            string                       `json:"status"`
	Combustiveis      []SumarioCombustivelResponse `json:"combustiveis"`
	Sessoes           []SessaoResumoResponse       `json:"sessoes"`
	Pagamentos        []PagamentoResumoResponse    `json:"pagamentos"`
	TotalLitros       decimal.Decimal              `json:"total_litros"`
	TotalVendas       decimal.Decimal              `json:"total_vendas"`
	TotalDeclarado    decimal.Decimal              `json:"total_declarado"`
	TotalTaxas        decimal.Decimal              `json:"total_taxas"`
	LiquidoPagamentos decimal.Decimal              `json:"liquido_pagamentos"`
	DiferencaCaixa    decimal.Decimal              `json:"diferenca_caixa"` // positivo = sobra
	PercentualDesvio  decimal.Decimal              `json:"percentual_desvio"`
	Classificacao     string                       `json:"classificacao"` // normal | atencao | critico
	TotalVendasBR     string                       `json:"total_vendas_br"`
	DiferencaCaixaBR  string                       `json:"diferenca_caixa_br"`
	PodeFechar        bool                         `json:"pode_fechar"`
	Pendencias        []string                     `json:"pendencias,omitempty"`
}

type FechamentoListItemResponse struct {
	ID             string           `json:"id"`
	Data           string           `json:"data"`
	Turno          string           `json:"turno"`
	Status         string           `json:"status"`
	TotalVendas    *decimal.Decimal `json:"total_vendas"`
	DiferencaCaixa *decimal.Decimal `json:"diferenca_caixa"`
	Classificacao  *string          `json:"classificacao"`
}
