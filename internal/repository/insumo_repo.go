package repository

import (
	"context"

	"australprints/internal/dto"
	"australprints/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InsumoRepository maneja el acceso a datos de insumos (stock de materiales).
type InsumoRepository interface {
	Create(ctx context.Context, i *model.Insumo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Insumo, error)
	List(ctx context.Context, filter dto.InsumoFilter) ([]model.Insumo, int64, error)
	Update(ctx context.Context, i *model.Insumo) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// FindPrimerFilamento returns the first active filament roll in default
	// ordering — the fallback when an order carries no explicit roll.
	FindPrimerFilamento(ctx context.Context) (*model.Insumo, error)

	// DescontarStock subtracts monto from stock atomically with a zero floor
	// (GREATEST at the store level), so concurrent completions cannot lose a
	// deduction nor drive stock negative.
	DescontarStock(ctx context.Context, id uuid.UUID, monto decimal.Decimal) error
	// AjustarStock applies a signed manual delta, also floored at zero.
	AjustarStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error

	// ListBajoMinimo returns active items with stock under their minimum.
	ListBajoMinimo(ctx context.Context) ([]model.Insumo, error)
}

type insumoRepo struct{ db *gorm.DB }

func NewInsumoRepository(db *gorm.DB) InsumoRepository { return &insumoRepo{db: db} }

func (r *insumoRepo) Create(ctx context.Context, i *model.Insumo) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *insumoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Insumo, error) {
	var i model.Insumo
	err := r.db.WithContext(ctx).First(&i, "id = ?", id).Error
	return &i, err
}

func (r *insumoRepo) List(ctx context.Context, filter dto.InsumoFilter) ([]model.Insumo, int64, error) {
	var insumos []model.Insumo
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Insumo{})

	switch filter.Activo {
	case "false":
		q = q.Where("activo = false")
	case "all":
		// no filter
	default:
		q = q.Where("activo = true")
	}
	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("nombre ASC").Limit(filter.Limit).Offset(offset).Find(&insumos).Error
	return insumos, total, err
}

func (r *insumoRepo) Update(ctx context.Context, i *model.Insumo) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *insumoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Insumo{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *insumoRepo) FindPrimerFilamento(ctx context.Context) (*model.Insumo, error) {
	var i model.Insumo
	err := r.db.WithContext(ctx).
		Where("tipo = ? AND activo = true", model.InsumoFilamento).
		Order("created_at ASC").
		First(&i).Error
	return &i, err
}

func (r *insumoRepo) DescontarStock(ctx context.Context, id uuid.UUID, monto decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&model.Insumo{}).
		Where("id = ?", id).
		Update("stock_gramos", gorm.Expr("GREATEST(stock_gramos - ?, 0)", monto)).Error
}

func (r *insumoRepo) AjustarStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&model.Insumo{}).
		Where("id = ? AND activo = true", id).
		Update("stock_gramos", gorm.Expr("GREATEST(stock_gramos + ?, 0)", delta)).Error
}

func (r *insumoRepo) ListBajoMinimo(ctx context.Context) ([]model.Insumo, error) {
	var insumos []model.Insumo
	err := r.db.WithContext(ctx).
		Where("activo = true AND stock_minimo > 0 AND stock_gramos < stock_minimo").
		Order("nombre ASC").
		Find(&insumos).Error
	return insumos, err
}
