package repository

import (
	"context"

	"postogestor/internal/model"

	"gorm.io/gorm"
)

type FormaPagamentoRepository interface {
	Create(ctx context.Context, fp *model.FormaPagamento) error
	FindByID(ctx context.Context, id uint) (*model.FormaPagamento, error)
	List(ctx context.Context) ([]model.FormaPagamento, error)
	Update(ctx context.Context, fp *model.FormaPagamento) error
	SoftDelete(ctx context.Context, id uint) error
}

type formaPagamentoRepo struct{ db *gorm.DB }

func NewFormaPagamentoRepository(db *gorm.DB) FormaPagamentoRepository {
	return &formaPagamentoRepo{db: db}
}

func (r *formaPagamentoRepo) Create(ctx context.Context, fp *model.FormaPagamento) error {
	return r.db.WithContext(ctx).Create(fp).Error
}

func (r *formaPagamentoRepo) FindByID(ctx context.Context, id uint) (*model.FormaPagamento, error) {
	var fp model.FormaPagamento
	err := r.db.WithContext(ctx).First(&fp, id).Error
	return &fp, err
}

func (r *formaPagamentoRepo) List(ctx context.Context) ([]model.FormaPagamento, error) {
	var fps []model.FormaPagamento
	err := r.db.WithContext(ctx).Where("ativo = true").Order("nome ASC").Find(&fps).Error
	return fps, err
}

func (r *formaPagamentoRepo) Update(ctx context.Context, fp *model.FormaPagamento) error {
	return r.db.WithContext(ctx).Save(fp).Error
}

func (r *formaPagamentoRepo) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.FormaPagamento{}).Where("id = ?", id).Update("ativo", false).Error
}
