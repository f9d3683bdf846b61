package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CompraCombustivel registra uma entrada de combustível da distribuidora.
// CustoMedioAntes/Depois congelam o efeito da compra sobre o custo médio
// ponderado do combustível no momento do registro.
type CompraCombustivel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CombustivelID uint            `gorm:"not null;index"`
	Data          time.Time       `gorm:"type:date;not null;index"`
	Litros        decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	ValorTotal    decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	NotaFiscal    *string
	Fornecedor    *string
	CustoMedioAntes  decimal.Decimal `gorm:"type:decimal(10,3);not null"`
	CustoMedioDepois decimal.Decimal `gorm:"type:decimal(10,3);not null"`
	CriadoPorUsuarioID uuid.UUID    `gorm:"type:uuid;not null"`
	CreatedAt     time.Time

	Combustivel *Combustivel `gorm:"foreignKey:CombustivelID"`
	CriadoPor   *Usuario     `gorm:"foreignKey:CriadoPorUsuarioID"`
}

// TableName fixa o nome da tabela de compras.
func (CompraCombustivel) TableName() string { return "compras_combustivel" }
