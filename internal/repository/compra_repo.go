package repository

import (
	"context"
	"time"

	"postogestor/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompraRepository interface {
	Create(ctx context.Context, c *model.CompraCombustivel) error
	// RegistrarCompra grava a compra, o combustível atualizado e a linha de
	// histórico de preço em uma única transação.
	RegistrarCompra(ctx context.Context, compra *model.CompraCombustivel, combustivel *model.Combustivel, historico *model.HistoricoPrecoCombustivel) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CompraCombustivel, error)
	List(ctx context.Context, de, ate time.Time) ([]model.CompraCombustivel, error)
	ListByCombustivel(ctx context.Context, combustivelID uint, de, ate time.Time) ([]model.CompraCombustivel, error)
}

type compraRepo struct{ db *gorm.DB }

func NewCompraRepository(db *gorm.DB) CompraRepository { return &compraRepo{db: db} }

func (r *compraRepo) Create(ctx context.Context, c *model.CompraCombustivel) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *compraRepo) RegistrarCompra(ctx context.Context, compra *model.CompraCombustivel, combustivel *model.Combustivel, historico *model.HistoricoPrecoCombustivel) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(compra).Error; err != nil {
			return err
		}
		if err := tx.Save(combustivel).Error; err != nil {
			return err
		}
		return tx.Create(historico).Error
	})
}

func (r *compraRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CompraCombustivel, error) {
	var c model.CompraCombustivel
	err := r.db.WithContext(ctx).Preload("Combustivel").First(&c, id).Error
	return &c, err
}

func (r *compraRepo) List(ctx context.Context, de, ate time.Time) ([]model.CompraCombustivel, error) {
	var cs []model.CompraCombustivel
	err := r.db.WithContext(ctx).
		Preload("Combustivel").
		Where("data BETWEEN ? AND ?", de, ate).
		Order("data DESC, created_at DESC").
		Find(&cs).Error
	return cs, err
}

func (r *compraRepo) ListByCombustivel(ctx context.Context, combustivelID uint, de, ate time.Time) ([]model.CompraCombustivel, error) {
	var cs []model.CompraCombustivel
	err := r.db.WithContext(ctx).
		Where("combustivel_id = ? AND data BETWEEN ? AND ?", combustivelID, de, ate).
		Order("data ASC").
		Find(&cs).Error
	return cs, err
}
