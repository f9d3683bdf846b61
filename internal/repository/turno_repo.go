package repository

import (
	"context"

	"postogestor/internal/model"

	"gorm.io/gorm"
)

type TurnoRepository interface {
	Create(ctx context.Context, t *model.Turno) error
	FindByID(ctx context.Context, id uint) (*model.Turno, error)
	List(ctx context.Context) ([]model.Turno, error)
	Update(ctx context.Context, t *model.Turno) error
	SoftDelete(ctx context.Context, id uint) error
	SeedPadrao(ctx context.Context) error
}

type turnoRepo struct{ db *gorm.DB }

func NewTurnoRepository(db *gorm.DB) TurnoRepository { return &turnoRepo{db: db} }

func (r *turnoRepo) Create(ctx context.Context, t *model.Turno) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *turnoRepo) FindByID(ctx context.Context, id uint) (*model.Turno, error) {
	var t model.Turno
	err := r.db.WithContext(ctx).First(&t, id).Error
	return &t, err
}

func (r *turnoRepo) List(ctx context.Context) ([]model.Turno, error) {
	var ts []model.Turno
	err := r.db.WithContext(ctx).Where("ativo = true").Order("horario_inicio ASC").Find(&ts).Error
	return ts, err
}

func (r *turnoRepo) Update(ctx context.Context, t *model.Turno) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *turnoRepo) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Turno{}).Where("id = ?", id).Update("ativo", false).Error
}

// SeedPadrao insere Manhã/Tarde/Noite quando a tabela está vazia.
func (r *turnoRepo) SeedPadrao(ctx context.Context) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Turno{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	turnos := make([]model.Turno, len(model.TurnosPadrao))
	copy(turnos, model.TurnosPadrao)
	return r.db.WithContext(ctx).Create(&turnos).Error
}
