package model

import "time"

// Bomba é uma bomba física do pátio. Uma bomba tem vários bicos.
type Bomba struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Numero    int    `gorm:"not null;uniqueIndex"`
	Nome      string `gorm:"not null"`
	Ativo     bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Bicos []Bico `gorm:"foreignKey:BombaID"`
}

// Bico pertence a exatamente uma bomba e referencia exatamente um
// combustível. Configuração somente-leitura para o motor de cálculo:
// o fechamento nunca cria nem remove bicos.
type Bico struct {
	ID            uint `gorm:"primaryKey;autoIncrement"`
	BombaID       uint `gorm:"not null;index"`
	CombustivelID uint `gorm:"not null;index"`
	Numero        int  `gorm:"not null"`
	Ativo         bool `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Bomba       *Bomba       `gorm:"foreignKey:BombaID"`
	Combustivel *Combustivel `gorm:"foreignKey:CombustivelID"`
}
