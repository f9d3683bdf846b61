package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// FormaPagamento é uma forma de recebimento configurada (PIX, dinheiro,
// cartões, vale) com a taxa percentual cobrada pela operadora.
type FormaPagamento struct {
	ID   uint   `gorm:"primaryKey;autoIncrement"`
	Nome string `gorm:"not null"`
	// Tipo: "dinheiro" | "cartao_debito" | "cartao_credito" | "pix" | "nota" | "baratao"
	Tipo      string          `gorm:"type:varchar(20);not null;uniqueIndex"`
	Taxa      decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Ativo     bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName evita a pluralização automática.
func (FormaPagamento) TableName() string { return "formas_pagamento" }
