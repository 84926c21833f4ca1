package repository

import (
	"context"

	"australprints/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MovimientoStockRepository interface {
	Create(ctx context.Context, m *model.MovimientoStock) error
	ListByInsumo(ctx context.Context, insumoID uuid.UUID, limit int) ([]model.MovimientoStock, error)
	ListRecientes(ctx context.Context, limit int) ([]model.MovimientoStock, error)
}

type movimientoStockRepo struct{ db *gorm.DB }

func NewMovimientoStockRepository(db *gorm.DB) MovimientoStockRepository {
	return &movimientoStockRepo{db: db}
}

func (r *movimientoStockRepo) Create(ctx context.Context, m *model.MovimientoStock) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *movimientoStockRepo) ListByInsumo(ctx context.Context, insumoID uuid.UUID, limit int) ([]model.MovimientoStock, error) {
	if limit <= 0 {
		limit = 100
	}
	var movs []model.MovimientoStock
	err := r.db.WithContext(ctx).
		Where("insumo_id = ?", insumoID).
		Order("created_at DESC").Limit(limit).
		Find(&movs).Error
	return movs, err
}

func (r *movimientoStockRepo) ListRecientes(ctx context.Context, limit int) ([]model.MovimientoStock, error) {
	if limit <= 0 {
		limit = 100
	}
	var movs []model.MovimientoStock
	err := r.db.WithContext(ctx).
		Preload("Insumo").
		Order("created_at DESC").Limit(limit).
		Find(&movs).Error
	return movs, err
}
