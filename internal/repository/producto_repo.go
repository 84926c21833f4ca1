package repository

import (
	"context"

	"australprints/internal/dto"
	"australprints/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductoRepository maneja el acceso a datos del catálogo.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error)
	Update(ctx context.Context, p *model.Producto) error
	ReemplazarLineas(ctx context.Context, p *model.Producto, costos []model.ProductoCostoAdicional, insumos []model.ProductoInsumo) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).
		Preload("CostosAdicionales").
		Preload("Insumos").
		Preload("Insumos.Insumo").
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productoRepo) List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	var productos []model.Producto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Producto{})

	switch filter.Activo {
	case "false":
		q = q.Where("activo = false")
	case "all":
		// no filter
	default:
		q = q.Where("activo = true")
	}
	if filter.Nombre != "" {
		q = q.Where("nombre ILIKE ?", "%"+filter.Nombre+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("CostosAdicionales").
		Preload("Insumos").
		Preload("Insumos.Insumo").
		Order("nombre ASC").Limit(filter.Limit).Offset(offset).
		Find(&productos).Error
	return productos, total, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Omit("CostosAdicionales", "Insumos").Save(p).Error
}

func (r *productoRepo) ReemplazarLineas(ctx context.Context, p *model.Producto, costos []model.ProductoCostoAdicional, insumos []model.ProductoInsumo) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("producto_id = ?", p.ID).Delete(&model.ProductoCostoAdicional{}).Error; err != nil {
			return err
		}
		if err := tx.Where("producto_id = ?", p.ID).Delete(&model.ProductoInsumo{}).Error; err != nil {
			return err
		}
		for i := range costos {
			costos[i].ProductoID = p.ID
		}
		for i := range insumos {
			insumos[i].ProductoID = p.ID
		}
		if len(costos) > 0 {
			if err := tx.Create(&costos).Error; err != nil {
				return err
			}
		}
		if len(insumos) > 0 {
			if err := tx.Create(&insumos).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *productoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *productoRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Update("activo", true).Error
}
