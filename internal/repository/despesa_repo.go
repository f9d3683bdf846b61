package repository

import (
	"context"

	"postogestor/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DespesaRepository interface {
	Create(ctx context.Context, d *model.DespesaMensal) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.DespesaMensal, error)
	ListCompetencia(ctx context.Context, competencia string) ([]model.DespesaMensal, error)
	SumCompetencia(ctx context.Context, competencia string) (decimal.Decimal, error)
	Update(ctx context.Context, d *model.DespesaMensal) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type despesaRepo struct{ db *gorm.DB }

func NewDespesaRepository(db *gorm.DB) DespesaRepository { return &despesaRepo{db: db} }

func (r *despesaRepo) Create(ctx context.Context, d *model.DespesaMensal) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *despesaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.DespesaMensal, error) {
	var d model.DespesaMensal
	err := r.db.WithContext(ctx).First(&d, id).Error
	return &d, err
}

func (r *despesaRepo) ListCompetencia(ctx context.Context, competencia string) ([]model.DespesaMensal, error) {
	var ds []model.DespesaMensal
	err := r.db.WithContext(ctx).
		Where("competencia = ?", competencia).
		Order("created_at ASC").
		Find(&ds).Error
	return ds, err
}

func (r *despesaRepo) SumCompetencia(ctx context.Context, competencia string) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&model.DespesaMensal{}).
		Select("COALESCE(SUM(valor), 0)").
		Where("competencia = ?", competencia).
		Scan(&total).Error
	if err != nil || !total.Valid {
		return decimal.Zero, err
	}
	return total.Decimal, nil
}

func (r *despesaRepo) Update(ctx context.Context, d *model.DespesaMensal) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *despesaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.DespesaMensal{}, id).Error
}
