package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DespesaMensal é uma despesa fixa ou variável do mês. A soma das despesas
// do mês alimenta o rateio de despesa por litro no cálculo de margem.
type DespesaMensal struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Competencia string        `gorm:"type:varchar(7);not null;index"` // "2026-08"
	Descricao string          `gorm:"not null"`
	Categoria string          `gorm:"type:varchar(30);not null;default:'geral'"`
	Valor     decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName fixa o nome da tabela de despesas.
func (DespesaMensal) TableName() string { return "despesas_mensais" }
