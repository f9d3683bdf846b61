package repository

import (
	"context"

	"postogestor/internal/model"

	"gorm.io/gorm"
)

type BombaRepository interface {
	Create(ctx context.Context, b *model.Bomba) error
	FindByID(ctx context.Context, id uint) (*model.Bomba, error)
	List(ctx context.Context) ([]model.Bomba, error)
	Update(ctx context.Context, b *model.Bomba) error
	SoftDelete(ctx context.Context, id uint) error
	ListBicosAtivos(ctx context.Context) ([]model.Bico, error)
	FindBicoByID(ctx context.Context, id uint) (*model.Bico, error)
	ReplaceBicos(ctx context.Context, bombaID uint, bicos []model.Bico) error
}

type bombaRepo struct{ db *gorm.DB }

func NewBombaRepository(db *gorm.DB) BombaRepository { return &bombaRepo{db: db} }

func (r *bombaRepo) Create(ctx context.Context, b *model.Bomba) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *bombaRepo) FindByID(ctx context.Context, id uint) (*model.Bomba, error) {
	var b model.Bomba
	err := r.db.WithContext(ctx).
		Preload("Bicos", "ativo = true").
		Preload("Bicos.Combustivel").
		First(&b, id).Error
	return &b, err
}

func (r *bombaRepo) List(ctx context.Context) ([]model.Bomba, error) {
	var bs []model.Bomba
	err := r.db.WithContext(ctx).
		Preload("Bicos", "ativo = true").
		Preload("Bicos.Combustivel").
		Where("ativo = true").
		Order("numero ASC").
		Find(&bs).Error
	return bs, err
}

func (r *bombaRepo) Update(ctx context.Context, b *model.Bomba) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *bombaRepo) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Bico{}).Where("bomba_id = ?", id).Update("ativo", false).Error; err != nil {
			return err
		}
		return tx.Model(&model.Bomba{}).Where("id = ?", id).Update("ativo", false).Error
	})
}

func (r *bombaRepo) ListBicosAtivos(ctx context.Context) ([]model.Bico, error) {
	var bicos []model.Bico
	err := r.db.WithContext(ctx).
		Preload("Combustivel").
		Preload("Bomba").
		Where("ativo = true").
		Order("bomba_id ASC, numero ASC").
		Find(&bicos).Error
	return bicos, err
}

func (r *bombaRepo) FindBicoByID(ctx context.Context, id uint) (*model.Bico, error) {
	var b model.Bico
	err := r.db.WithContext(ctx).Preload("Combustivel").First(&b, id).Error
	return &b, err
}

// ReplaceBicos desativa os bicos que saíram da configuração e insere os
// novos, preservando os IDs dos que permanecem. Leituras antigas seguem
// apontando para bicos desativados.
func (r *bombaRepo) ReplaceBicos(ctx context.Context, bombaID uint, bicos []model.Bico) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		manter := make([]uint, 0, len(bicos))
		for i := range bicos {
			bicos[i].BombaID = bombaID
			bicos[i].Ativo = true
			if bicos[i].ID != 0 {
				manter = append(manter, bicos[i].ID)
			}
		}
		q := tx.Model(&model.Bico{}).Where("bomba_id = ?", bombaID)
		if len(manter) > 0 {
			q = q.Where("id NOT IN ?", manter)
		}
		if err := q.Update("ativo", false).Error; err != nil {
			return err
		}
		for i := range bicos {
			if err := tx.Save(&bicos[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
