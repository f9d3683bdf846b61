package repository

import (
	"context"
	"time"

	"postogestor/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FechamentoRepository interface {
	Create(ctx context.Context, f *model.Fechamento) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Fechamento, error)
	FindByDataTurno(ctx context.Context, data time.Time, turnoID uint) (*model.Fechamento, error)
	List(ctx context.Context, de, ate time.Time) ([]model.Fechamento, error)
	ListFechadosPeriodo(ctx context.Context, de, ate time.Time) ([]model.Fechamento, error)
	Update(ctx context.Context, f *model.Fechamento) error
	ReplaceFilhos(ctx context.Context, f *model.Fechamento) error
}

type fechamentoRepo struct{ db *gorm.DB }

func NewFechamentoRepository(db *gorm.DB) FechamentoRepository { return &fechamentoRepo{db: db} }

func (r *fechamentoRepo) Create(ctx context.Context, f *model.Fechamento) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *fechamentoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Fechamento, error) {
	var f model.Fechamento
	err := r.db.WithContext(ctx).
		Preload("Turno").
		Preload("Leituras").
		Preload("Leituras.Bico").
		Preload("Leituras.Bico.Combustivel").
		Preload("Sessoes").
		Preload("Sessoes.Frentista").
		Preload("Recebidos").
		Preload("Recebidos.FormaPagamento").
		First(&f, id).Error
	return &f, err
}

func (r *fechamentoRepo) FindByDataTurno(ctx context.Context, data time.Time, turnoID uint) (*model.Fechamento, error) {
	var f model.Fechamento
	err := r.db.WithContext(ctx).
		Where("data = ? AND turno_id = ? AND status <> ?", data, turnoID, model.FechamentoCancelado).
		First(&f).Error
	return &f, err
}

func (r *fechamentoRepo) List(ctx context.Context, de, ate time.Time) ([]model.Fechamento, error) {
	var fs []model.Fechamento
	err := r.db.WithContext(ctx).
		Preload("Turno").
		Where("data BETWEEN ? AND ?", de, ate).
		Order("data DESC, turno_id ASC").
		Find(&fs).Error
	return fs, err
}

func (r *fechamentoRepo) ListFechadosPeriodo(ctx context.Context, de, ate time.Time) ([]model.Fechamento, error) {
	var fs []model.Fechamento
	err := r.db.WithContext(ctx).
		Preload("Leituras").
		Preload("Leituras.Bico").
		Preload("Leituras.Bico.Combustivel").
		Where("data BETWEEN ? AND ? AND status = ?", de, ate, model.FechamentoFechado).
		Order("data ASC").
		Find(&fs).Error
	return fs, err
}

func (r *fechamentoRepo) Update(ctx context.Context, f *model.Fechamento) error {
	return r.db.WithContext(ctx).Save(f).Error
}

// ReplaceFilhos substitui leituras, sessões e recebimentos do fechamento
// em uma única transação. Um rascunho salvo várias vezes ao longo do turno
// sempre reflete o último envio completo.
func (r *fechamentoRepo) ReplaceFilhos(ctx context.Context, f *model.Fechamento) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("fechamento_id = ?", f.ID).Delete(&model.LeituraBico{}).Error; err != nil {
			return err
		}
		if err := tx.Where("fechamento_id = ?", f.ID).Delete(&model.SessaoFrentista{}).Error; err != nil {
			return err
		}
		if err := tx.Where("fechamento_id = ?", f.ID).Delete(&model.RecebimentoPagamento{}).Error; err != nil {
			return err
		}
		for i := range f.Leituras {
			f.Leituras[i].ID = uuid.Nil
			f.Leituras[i].FechamentoID = f.ID
		}
		for i := range f.Sessoes {
			f.Sessoes[i].ID = uuid.Nil
			f.Sessoes[i].FechamentoID = f.ID
		}
		for i := range f.Recebidos {
			f.Recebidos[i].ID = uuid.Nil
			f.Recebidos[i].FechamentoID = f.ID
		}
		if len(f.Leituras) > 0 {
			if err := tx.Create(&f.Leituras).Error; err != nil {
				return err
			}
		}
		if len(f.Sessoes) > 0 {
			if err := tx.Create(&f.Sessoes).Error; err != nil {
				return err
			}
		}
		if len(f.Recebidos) > 0 {
			if err := tx.Create(&f.Recebidos).Error; err != nil {
				return err
			}
		}
		return tx.Omit("Leituras", "Sessoes", "Recebidos").Save(f).Error
	})
}
