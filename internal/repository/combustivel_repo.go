package repository

import (
	"context"

	"postogestor/internal/model"

	"gorm.io/gorm"
)

type CombustivelRepository interface {
	Create(ctx context.Context, c *model.Combustivel) error
	FindByID(ctx context.Context, id uint) (*model.Combustivel, error)
	FindByCodigo(ctx context.Context, codigo string) (*model.Combustivel, error)
	List(ctx context.Context) ([]model.Combustivel, error)
	Update(ctx context.Context, c *model.Combustivel) error
	SoftDelete(ctx context.Context, id uint) error
	CreateHistorico(ctx context.Context, h *model.HistoricoPrecoCombustivel) error
	ListHistorico(ctx context.Context, combustivelID uint, limit int) ([]model.HistoricoPrecoCombustivel, error)
}

type combustivelRepo struct{ db *gorm.DB }

func NewCombustivelRepository(db *gorm.DB) CombustivelRepository { return &combustivelRepo{db: db} }

func (r *combustivelRepo) Create(ctx context.Context, c *model.Combustivel) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *combustivelRepo) FindByID(ctx context.Context, id uint) (*model.Combustivel, error) {
	var c model.Combustivel
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *combustivelRepo) FindByCodigo(ctx context.Context, codigo string) (*model.Combustivel, error) {
	var c model.Combustivel
	err := r.db.WithContext(ctx).Where("codigo = ?", codigo).First(&c).Error
	return &c, err
}

func (r *combustivelRepo) List(ctx context.Context) ([]model.Combustivel, error) {
	var cs []model.Combustivel
	err := r.db.WithContext(ctx).Where("ativo = true").Order("codigo ASC").Find(&cs).Error
	return cs, err
}

func (r *combustivelRepo) Update(ctx context.Context, c *model.Combustivel) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *combustivelRepo) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Combustivel{}).Where("id = ?", id).Update("ativo", false).Error
}

func (r *combustivelRepo) CreateHistorico(ctx context.Context, h *model.HistoricoPrecoCombustivel) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *combustivelRepo) ListHistorico(ctx context.Context, combustivelID uint, limit int) ([]model.HistoricoPrecoCombustivel, error) {
	var hs []model.HistoricoPrecoCombustivel
	q := r.db.WithContext(ctx).
		Preload("Combustivel").
		Where("combustivel_id = ?", combustivelID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&hs).Error
	return hs, err
}
