package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status de um fechamento de caixa.
const (
	FechamentoAberto    = "aberto"
	FechamentoFechado   = "fechado"
	FechamentoCancelado = "cancelado"
)

// Fechamento é o fechamento de caixa de um turno: leituras de encerrante
// por bico, sessões declaradas por frentista e recebimentos por forma de
// pagamento, com os totais consolidados congelados no momento do fechamento.
type Fechamento struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// Unicidade por (data, turno) entre não cancelados é garantida por um
	// índice parcial criado via patch de schema (ver infra.NewDatabase).
	Data    time.Time `gorm:"type:date;not null;index:idx_fechamento_data_turno"`
	TurnoID uint      `gorm:"not null;index:idx_fechamento_data_turno"`
	Status  string    `gorm:"type:varchar(15);not null;default:'aberto'"`

	// Totais consolidados. Preenchidos ao fechar, nulos enquanto aberto.
	TotalLitros        *decimal.Decimal `gorm:"type:decimal(14,3)"`
	TotalVendas        *decimal.Decimal `gorm:"type:decimal(14,2)"`
	TotalDeclarado     *decimal.Decimal `gorm:"type:decimal(14,2)"`
	TotalProdutos      *decimal.Decimal `gorm:"type:decimal(14,2)"`
	TotalTaxas         *decimal.Decimal `gorm:"type:decimal(14,2)"`
	LiquidoPagamentos  *decimal.Decimal `gorm:"type:decimal(14,2)"`
	DiferencaCaixa     *decimal.Decimal `gorm:"type:decimal(14,2)"` // positivo = sobra
	PercentualDesvio   *decimal.Decimal `gorm:"type:decimal(7,3)"`
	Classificacao      *string          `gorm:"type:varchar(10)"` // normal | atencao | critico
	Observacoes        *string
	FechadoPor         *uuid.UUID `gorm:"type:uuid"`
	FechadoEm          *time.Time
	CriadoPorUsuarioID uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Turno       *Turno                 `gorm:"foreignKey:TurnoID"`
	Leituras    []LeituraBico          `gorm:"foreignKey:FechamentoID"`
	Sessoes     []SessaoFrentista      `gorm:"foreignKey:FechamentoID"`
	Recebidos   []RecebimentoPagamento `gorm:"foreignKey:FechamentoID"`
	CriadoPor   *Usuario               `gorm:"foreignKey:CriadoPorUsuarioID"`
	FechadoPorU *Usuario               `gorm:"foreignKey:FechadoPor"`
}

// TableName fixa o nome da tabela de fechamentos.
func (Fechamento) TableName() string { return "fechamentos" }

// LeituraBico guarda os encerrantes digitados de um bico em um fechamento.
// Os valores ficam como texto na convenção de entrada ("1.718.359,423" ou
// os dígitos crus do encerrante); a interpretação é do motor de cálculo.
type LeituraBico struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FechamentoID uuid.UUID `gorm:"type:uuid;not null;index"`
	BicoID       uint      `gorm:"not null"`
	Inicial      string    `gorm:"not null;default:''"`
	Final        string    `gorm:"not null;default:''"`
	CreatedAt    time.Time

	Bico *Bico `gorm:"foreignKey:BicoID"`
}

// TableName fixa o nome da tabela de leituras.
func (LeituraBico) TableName() string { return "leituras_bico" }

// SessaoFrentista é a declaração de um frentista no fechamento: quanto
// recebeu em cada forma e o valor conferido em caixa.
type SessaoFrentista struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FechamentoID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	FrentistaID        uint            `gorm:"not null"`
	ValorCartaoDebito  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	ValorCartaoCredito decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	ValorNota          decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	ValorPix           decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	ValorDinheiro      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	ValorBaratao       decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	ValorProdutos      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	ValorConferido     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	ValorEncerrante    decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Observacoes        *string
	CreatedAt          time.Time

	Frentista *Frentista `gorm:"foreignKey:FrentistaID"`
}

// TableName fixa o nome da tabela de sessões.
func (SessaoFrentista) TableName() string { return "sessoes_frentista" }

// RecebimentoPagamento é o total recebido em uma forma de pagamento no
// fechamento. A taxa é copiada do cadastro no momento do registro para
// que mudanças futuras de taxa não reescrevam fechamentos antigos.
type RecebimentoPagamento struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FechamentoID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	FormaPagamentoID uint            `gorm:"not null"`
	Valor            decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Taxa             decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	CreatedAt        time.Time

	FormaPagamento *FormaPagamento `gorm:"foreignKey:FormaPagamentoID"`
}

// TableName fixa o nome da tabela de recebimentos.
func (RecebimentoPagamento) TableName() string { return "recebimentos_pagamento" }
