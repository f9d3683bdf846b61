package model

// Turno é uma faixa horária de operação. Os três turnos padrão
// (Manhã/Tarde/Noite) são semeados quando a tabela está vazia.
type Turno struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"`
	Nome          string `gorm:"not null"`
	HorarioInicio string `gorm:"type:varchar(5);not null"` // "06:00"
	HorarioFim    string `gorm:"type:varchar(5);not null"` // "14:00"
	Ativo         bool   `gorm:"not null;default:true"`
}

// TurnosPadrao são os turnos usados quando não há configuração própria.
var TurnosPadrao = []Turno{
	{Nome: "Manhã", HorarioInicio: "06:00", HorarioFim: "14:00", Ativo: true},
	{Nome: "Tarde", HorarioInicio: "14:00", HorarioFim: "22:00", Ativo: true},
	{Nome: "Noite", HorarioInicio: "22:00", HorarioFim: "06:00", Ativo: true},
}
