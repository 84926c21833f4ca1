package repository

import (
	"context"

	"australprints/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EtiquetaRepository interface {
	Create(ctx context.Context, e *model.Etiqueta) error
	List(ctx context.Context) ([]model.Etiqueta, error)
	FindByNombre(ctx context.Context, nombre string) (*model.Etiqueta, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Renombrar actualiza el registro maestro y propaga el reemplazo de
	// string a las columnas array de pedidos y gastos en una sola
	// transacción. Las tablas afectadas viven en la misma base, así que acá
	// sí es atómico.
	Renombrar(ctx context.Context, actual, nuevo string, pedidos PedidoRepository, gastos GastoRepository) error
}

type etiquetaRepo struct{ db *gorm.DB }

func NewEtiquetaRepository(db *gorm.DB) EtiquetaRepository { return &etiquetaRepo{db: db} }

func (r *etiquetaRepo) Create(ctx context.Context, e *model.Etiqueta) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *etiquetaRepo) List(ctx context.Context) ([]model.Etiqueta, error) {
	var etiquetas []model.Etiqueta
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&etiquetas).Error
	return etiquetas, err
}

func (r *etiquetaRepo) FindByNombre(ctx context.Context, nombre string) (*model.Etiqueta, error) {
	var e model.Etiqueta
	err := r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&e).Error
	return &e, err
}

func (r *etiquetaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Etiqueta{}, "id = ?", id).Error
}

func (r *etiquetaRepo) Renombrar(ctx context.Context, actual, nuevo string, pedidos PedidoRepository, gastos GastoRepository) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := pedidos.RenombrarEtiquetaTx(tx, actual, nuevo); err != nil {
			return err
		}
		if err := gastos.RenombrarEtiquetaTx(tx, actual, nuevo); err != nil {
			return err
		}
		return tx.Model(&model.Etiqueta{}).
			Where("nombre = ?", actual).
			Update("nombre", nuevo).Error
	})
}
