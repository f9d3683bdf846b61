package model

import (
	"time"

	"github.com/google/uuid"
)

// Frentista é o atendente de pista que declara os recebimentos no fim do
// turno. UsuarioID liga ao login do app móvel quando existir.
type Frentista struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Nome      string `gorm:"not null"`
	Telefone  *string
	UsuarioID *uuid.UUID `gorm:"type:uuid;index"`
	Ativo     bool       `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Usuario *Usuario `gorm:"foreignKey:UsuarioID"`
}
