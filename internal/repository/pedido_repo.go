package repository

import (
	"context"
	"time"

	"australprints/internal/dto"
	"australprints/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PedidoRepository defines the data access contract for orders.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type PedidoRepository interface {
	Create(ctx context.Context, p *model.Pedido) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error)
	List(ctx context.Context, filter dto.PedidoFilter) ([]model.Pedido, int64, error)
	Update(ctx context.Context, p *model.Pedido) error
	// ReemplazarLineas replaces the child collections (costos adicionales e
	// insumos) atomically with the parent save.
	ReemplazarLineas(ctx context.Context, p *model.Pedido, costos []model.CostoAdicional, insumos []model.PedidoInsumo) error
	HardDelete(ctx context.Context, id uuid.UUID) error

	// UpdateEstado writes only the estado column and reports the number of
	// affected rows: zero rows on a successful write is the silent failure
	// mode the caller must detect.
	UpdateEstado(ctx context.Context, id uuid.UUID, estado string) (int64, error)

	// ListEntregadosDesde returns delivered orders whose fecha OR created_at
	// falls on/after desde. Nil desde = no lower bound.
	ListEntregadosDesde(ctx context.Context, desde *time.Time) ([]model.Pedido, error)
	// ListNoCancelados returns every order outside cancelado (CSV export and
	// per-stage counts).
	ListNoCancelados(ctx context.Context) ([]model.Pedido, error)

	// ContarPorCliente supports the client list view.
	ContarPorCliente(ctx context.Context, clienteID uuid.UUID) (int64, error)

	// Rescate de clientes: nombres libres sin FK y su retargeting masivo.
	ListNombresLibres(ctx context.Context) ([]dto.NombreLibreResponse, error)
	ReasignarNombreLibre(ctx context.Context, nombre string, clienteID uuid.UUID) (int64, error)

	// RenombrarEtiqueta replaces a tag string inside the etiquetas array of
	// every order, within tx.
	RenombrarEtiquetaTx(tx *gorm.DB, actual, nuevo string) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type pedidoRepo struct{ db *gorm.DB }

func NewPedidoRepository(db *gorm.DB) PedidoRepository { return &pedidoRepo{db: db} }

func (r *pedidoRepo) Create(ctx context.Context, p *model.Pedido) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *pedidoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := r.db.WithContext(ctx).
		Preload("CostosAdicionales").
		Preload("Insumos").
		Preload("Insumos.Insumo").
		Preload("Cliente").
		Preload("Producto").
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *pedidoRepo) List(ctx context.Context, filter dto.PedidoFilter) ([]model.Pedido, int64, error) {
	var pedidos []model.Pedido
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Pedido{})

	switch filter.Estado {
	case "", "all":
		// no filter
	default:
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Etiqueta != "" {
		q = q.Where("? = ANY(etiquetas)", filter.Etiqueta)
	}
	if filter.Cliente != "" {
		q = q.Where("cliente_id = ?", filter.Cliente)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("CostosAdicionales").
		Preload("Insumos").
		Preload("Insumos.Insumo").
		Preload("Cliente").
		Order("COALESCE(fecha, created_at) DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&pedidos).Error
	return pedidos, total, err
}

func (r *pedidoRepo) Update(ctx context.Context, p *model.Pedido) error {
	return r.db.WithContext(ctx).Omit("CostosAdicionales", "Insumos").Save(p).Error
}

func (r *pedidoRepo) ReemplazarLineas(ctx context.Context, p *model.Pedido, costos []model.CostoAdicional, insumos []model.PedidoInsumo) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pedido_id = ?", p.ID).Delete(&model.CostoAdicional{}).Error; err != nil {
			return err
		}
		if err := tx.Where("pedido_id = ?", p.ID).Delete(&model.PedidoInsumo{}).Error; err != nil {
			return err
		}
		for i := range costos {
			costos[i].PedidoID = p.ID
		}
		for i := range insumos {
			insumos[i].PedidoID = p.ID
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

func (r *pedidoRepo) HardDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Pedido{}, "id = ?", id).Error
}

func (r *pedidoRepo) UpdateEstado(ctx context.Context, id uuid.UUID, estado string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Pedido{}).
		Where("id = ?", id).
		Update("estado", estado)
	return result.RowsAffected, result.Error
}

func (r *pedidoRepo) ListEntregadosDesde(ctx context.Context, desde *time.Time) ([]model.Pedido, error) {
	var pedidos []model.Pedido
	q := r.db.WithContext(ctx).
		Preload("CostosAdicionales").
		Preload("Insumos").
		Where("estado = ?", model.EstadoEntregado)
	if desde != nil {
		q = q.Where("fecha >= ? OR created_at >= ?", *desde, *desde)
	}
	err := q.Find(&pedidos).Error
	return pedidos, err
}

func (r *pedidoRepo) ListNoCancelados(ctx context.Context) ([]model.Pedido, error) {
	var pedidos []model.Pedido
	err := r.db.WithContext(ctx).
		Preload("CostosAdicionales").
		Preload("Insumos").
		Preload("Cliente").
		Where("estado <> ?", model.EstadoCancelado).
		Order("COALESCE(fecha, created_at) ASC").
		Find(&pedidos).Error
	return pedidos, err
}

func (r *pedidoRepo) ContarPorCliente(ctx context.Context, clienteID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Pedido{}).
		Where("cliente_id = ?", clienteID).Count(&n).Error
	return n, err
}

func (r *pedidoRepo) ListNombresLibres(ctx context.Context) ([]dto.NombreLibreResponse, error) {
	var rows []dto.NombreLibreResponse
	err := r.db.WithContext(ctx).Model(&model.Pedido{}).
		Select("nombre_cliente_libre AS nombre, COUNT(*) AS pedidos").
		Where("cliente_id IS NULL AND nombre_cliente_libre IS NOT NULL AND nombre_cliente_libre <> ''").
		Group("nombre_cliente_libre").
		Order("pedidos DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *pedidoRepo) ReasignarNombreLibre(ctx context.Context, nombre string, clienteID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Pedido{}).
		Where("nombre_cliente_libre = ? AND cliente_id IS NULL", nombre).
		Updates(map[string]interface{}{
			"cliente_id":           clienteID,
			"nombre_cliente_libre": nil,
		})
	return result.RowsAffected, result.Error
}

func (r *pedidoRepo) RenombrarEtiquetaTx(tx *gorm.DB, actual, nuevo string) error {
	return tx.Exec(`UPDATE pedidos SET etiquetas = array_replace(etiquetas, ?, ?) WHERE ? = ANY(etiquetas)`,
		actual, nuevo, actual).Error
}

func (r *pedidoRepo) DB() *gorm.DB { return r.db }
