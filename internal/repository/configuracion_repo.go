package repository

import (
	"context"

	"australprints/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConfiguracionRepository interface {
	FindByUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.ConfiguracionCotizacion, error)
	// Upsert crea o actualiza la configuración del usuario.
	Upsert(ctx context.Context, c *model.ConfiguracionCotizacion) error
}

type configuracionRepo struct{ db *gorm.DB }

func NewConfiguracionRepository(db *gorm.DB) ConfiguracionRepository {
	return &configuracionRepo{db: db}
}

func (r *configuracionRepo) FindByUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.ConfiguracionCotizacion, error) {
	var c model.ConfiguracionCotizacion
	err := r.db.WithContext(ctx).Where("usuario_id = ?", usuarioID).First(&c).Error
	return &c, err
}

func (r *configuracionRepo) Upsert(ctx context.Context, c *model.ConfiguracionCotizacion) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "usuario_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"costo_kwh", "potencia_watts", "precio_material_kg",
			"multiplicador_operativo", "multiplicador_venta", "updated_at",
		}),
	}).Create(c).Error
}
