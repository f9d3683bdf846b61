package dto

import "github.com/shopspring/decimal"

// ─── Combustíveis ────────────────────────────────────────────────────────────

type CombustivelRequest struct {
	Codigo     string          `json:"codigo"      validate:"required,min=1,max=10,uppercase"`
	Nome       string          `json:"nome"        validate:"required,min=2,max=60"`
	PrecoVenda decimal.Decimal `json:"preco_venda" validate:"required"`
	PrecoCusto decimal.Decimal `json:"preco_custo"`
}

type AtualizarPrecoRequest struct {
	PrecoVenda *decimal.Decimal `json:"preco_venda"`
	PrecoCusto *decimal.Decimal `json:"preco_custo"`
	Motivo     string           `json:"motivo" validate:"omitempty,oneof=ajuste_manual reajuste"`
}

type CombustivelResponse struct {
	ID            uint            `json:"id"`
	Codigo        string          `json:"codigo"`
	Nome          string          `json:"nome"`
	PrecoVenda    decimal.Decimal `json:"preco_venda"`
	PrecoCusto    decimal.Decimal `json:"preco_custo"`
	EstoqueLitros decimal.Decimal `json:"estoque_litros"`
	Ativo         bool            `json:"ativo"`
}

type HistoricoPrecoResponse struct {
	ID          string          `json:"id"`
	Combustivel string          `json:"combustivel"`
	CustoAntes  decimal.Decimal `json:"custo_antes"`
	CustoDepois decimal.Decimal `json:"custo_depois"`
	VendaAntes  decimal.Decimal `json:"venda_antes"`
	VendaDepois decimal.Decimal `json:"venda_depois"`
	Motivo      string          `json:"motivo"`
	CreatedAt   string          `json:"created_at"`
}

// ─── Bombas e bicos ──────────────────────────────────────────────────────────

type BicoRequest struct {
	CombustivelID uint `json:"combustivel_id" validate:"required,min=1"`
	Numero        int  `json:"numero"         validate:"required,min=1"`
}

type BombaRequest struct {
	Numero int           `json:"numero" validate:"required,min=1"`
	Nome   string        `json:"nome"   validate:"required,min=1,max=60"`
	Bicos  []BicoRequest `json:"bicos"  validate:"dive"`
}

type BicoResponse struct {
	ID            uint   `json:"id"`
	Numero        int    `json:"numero"`
	CombustivelID uint   `json:"combustivel_id"`
	Codigo        string `json:"codigo"`
	Combustivel   string `json:"combustivel"`
	Ativo         bool   `json:"ativo"`
}

type BombaResponse struct {
	ID     uint           `json:"id"`
	Numero int            `json:"numero"`
	Nome   string         `json:"nome"`
	Ativo  bool           `json:"ativo"`
	Bicos  []BicoResponse `json:"bicos"`
}

// ─── Frentistas, turnos e formas de pagamento ────────────────────────────────

type FrentistaRequest struct {
	Nome     string  `json:"nome"     validate:"required,min=2,max=100"`
	Telefone *string `json:"telefone" validate:"omitempty,min=8,max=20"`
}

type FrentistaResponse struct {
	ID       uint    `json:"id"`
	Nome     string  `json:"nome"`
	Telefone *string `json:"telefone"`
	Ativo    bool    `json:"ativo"`
}

type TurnoRequest struct {
	Nome          string `json:"nome"           validate:"required,min=2,max=40"`
	HorarioInicio string `json:"horario_inicio" validate:"required,datetime=15:04"`
	HorarioFim    string `json:"horario_fim"    validate:"required,datetime=15:04"`
}

type TurnoResponse struct {
	ID            uint   `json:"id"`
	Nome          string `json:"nome"`
	HorarioInicio string `json:"horario_inicio"`
	HorarioFim    string `json:"horario_fim"`
	Ativo         bool   `json:"ativo"`
}

type FormaPagamentoRequest struct {
	Nome string          `json:"nome" validate:"required,min=2,max=40"`
	Tipo string          `json:"tipo" validate:"required,oneof=dinheiro cartao_debito cartao_credito pix nota baratao"`
	Taxa decimal.Decimal `json:"taxa"`
}

type FormaPagamentoResponse struct {
	ID    uint            `json:"id"`
	Nome  string          `json:"nome"`
	Tipo  string          `json:"tipo"`
	Taxa  decimal.Decimal `json:"taxa"`
	Ativo bool            `json:"ativo"`
}

// PrecoPublicoResponse é a linha do painel público de preços.
type PrecoPublicoResponse struct {
	Codigo       string          `json:"codigo"`
	Nome         string          `json:"nome"`
	PrecoVenda   decimal.Decimal `json:"preco_venda"`
	PrecoVendaBR string          `json:"preco_venda_br"`
	AtualizadoEm string          `json:"atualizado_em"`
}

// ─── Despesas ────────────────────────────────────────────────────────────────

type DespesaRequest struct {
	Competencia string          `json:"competencia" validate:"required,datetime=2006-01"`
	Descricao   string          `json:"descricao"   validate:"required,min=2,max=120"`
	Categoria   string          `json:"categoria"   validate:"omitempty,max=30"`
	Valor       decimal.Decimal `json:"valor"       validate:"required"`
}

type DespesaResponse struct {
	ID          string          `json:"id"`
	Competencia string          `json:"competencia"`
	Descricao   string          `json:"descricao"`
	Categoria   string          `json:"categoria"`
	Valor       decimal.Decimal `json:"valor"`
}
