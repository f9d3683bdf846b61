package repository

import (
	"context"

	"postogestor/internal/model"

	"gorm.io/gorm"
)

type FrentistaRepository interface {
	Create(ctx context.Context, f *model.Frentista) error
	FindByID(ctx context.Context, id uint) (*model.Frentista, error)
	List(ctx context.Context) ([]model.Frentista, error)
	Update(ctx context.Context, f *model.Frentista) error
	SoftDelete(ctx context.Context, id uint) error
}

type frentistaRepo struct{ db *gorm.DB }

func NewFrentistaRepository(db *gorm.DB) FrentistaRepository { return &frentistaRepo{db: db} }

func (r *frentistaRepo) Create(ctx context.Context, f *model.Frentista) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *frentistaRepo) FindByID(ctx context.Context, id uint) (*model.Frentista, error) {
	var f model.Frentista
	err := r.db.WithContext(ctx).First(&f, id).Error
	return &f, err
}

func (r *frentistaRepo) List(ctx context.Context) ([]model.Frentista, error) {
	var fs []model.Frentista
	err := r.db.WithContext(ctx).Where("ativo = true").Order("nome ASC").Find(&fs).Error
	return fs, err
}

func (r *frentistaRepo) Update(ctx context.Context, f *model.Frentista) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *frentistaRepo) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Frentista{}).Where("id = ?", id).Update("ativo", false).Error
}
