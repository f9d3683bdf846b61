package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Combustivel é a configuração de um tipo de combustível do posto.
// PrecoCusto é o custo médio ponderado, recalculado a cada compra registrada.
type Combustivel struct {
	ID     uint   `gorm:"primaryKey;autoIncrement"`
	Codigo string `gorm:"type:varchar(10);uniqueIndex;not null"` // GC | GA | ET | S10 | DIESEL
	Nome   string `gorm:"not null"`
	// PrecoVenda é único por combustível: todos os bicos do mesmo código
	// vendem ao mesmo preço em um dado instante.
	PrecoVenda    decimal.Decimal `gorm:"type:decimal(10,3);not null"`
	PrecoCusto    decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0"`
	EstoqueLitros decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	Ativo         bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName evita a pluralização automática (combustivels → combustiveis).
func (Combustivel) TableName() string { return "combustiveis" }

// HistoricoPrecoCombustivel registra cada mudança de preço de um combustível.
// Os registros são imutáveis: nunca se alteram nem se removem.
type HistoricoPrecoCombustivel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CombustivelID uint            `gorm:"not null;index"`
	CustoAntes    decimal.Decimal `gorm:"type:decimal(10,3);not null"`
	CustoDepois   decimal.Decimal `gorm:"type:decimal(10,3);not null"`
	VendaAntes    decimal.Decimal `gorm:"type:decimal(10,3);not null"`
	VendaDepois   decimal.Decimal `gorm:"type:decimal(10,3);not null"`
	Motivo        string          `gorm:"not null;default:'ajuste_manual'"` // ajuste_manual | compra | reajuste
	CreatedAt     time.Time

	Combustivel *Combustivel `gorm:"foreignKey:CombustivelID"`
}

// TableName fixa o nome da tabela de histórico.
func (HistoricoPrecoCombustivel) TableName() string { return "historico_precos_combustiveis" }
