package service

import (
	"context"
	"errors"

	"australprints/internal/dto"
	"australprints/internal/model"
	"australprints/internal/repository"

	"github.com/google/uuid"
)

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

type productoService struct {
	repo repository.ProductoRepository
}

func NewProductoService(repo repository.ProductoRepository) ProductoService {
	return &productoService{repo: repo}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	producto := &model.Producto{
		Nombre:           req.Nombre,
		Descripcion:      req.Descripcion,
		PrecioBase:       req.PrecioBase,
		PesoGramos:       req.PesoGramos,
		HorasEstimadas:   req.HorasEstimadas,
		MinutosEstimados: req.MinutosEstimados,
		Activo:           true,
	}
	for _, ca := range req.CostosAdicionales {
		producto.CostosAdicionales = append(producto.CostosAdicionales, model.ProductoCostoAdicional{
			Descripcion: ca.Descripcion,
			Monto:       ca.Monto,
		})
	}
	for _, pi := range req.Insumos {
		insumoID, err := uuid.Parse(pi.InsumoID)
		if err != nil {
			return nil, errors.New("insumo_id inválido")
		}
		producto.Insumos = append(producto.Insumos, model.ProductoInsumo{
			InsumoID: insumoID,
			Cantidad: pi.Cantidad,
		})
	}
	if err := s.repo.Create(ctx, producto); err != nil {
		return nil, err
	}
	return productoToResponse(producto), nil
}

func (s *productoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	producto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}
	return productoToResponse(producto), nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		data = append(data, *productoToResponse(&productos[i]))
	}
	return &dto.ProductoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}
	if req.Nombre != nil {
		producto.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		producto.Descripcion = req.Descripcion
	}
	if req.PrecioBase != nil {
		producto.PrecioBase = *req.PrecioBase
	}
	if req.PesoGramos != nil {
		producto.PesoGramos = *req.PesoGramos
	}
	if req.HorasEstimadas != nil {
		producto.HorasEstimadas = *req.HorasEstimadas
	}
	if req.MinutosEstimados != nil {
		producto.MinutosEstimados = *req.MinutosEstimados
	}

	// Nil = no tocar las líneas; slice (aun vacío) = reemplazo completo.
	if req.CostosAdicionales != nil || req.Insumos != nil {
		var costos []model.ProductoCostoAdicional
		for _, ca := range req.CostosAdicionales {
			costos = append(costos, model.ProductoCostoAdicional{
				ProductoID:  producto.ID,
				Descripcion: ca.Descripcion,
				Monto:       ca.Monto,
			})
		}
		var insumos []model.ProductoInsumo
		for _, pi := range req.Insumos {
			insumoID, err := uuid.Parse(pi.InsumoID)
			if err != nil {
				return nil, errors.New("insumo_id inválido")
			}
			insumos = append(insumos, model.ProductoInsumo{
				ProductoID: producto.ID,
				InsumoID:   insumoID,
				Cantidad:   pi.Cantidad,
			})
		}
		if err := s.repo.ReemplazarLineas(ctx, producto, costos, insumos); err != nil {
			return nil, err
		}
	} else if err := s.repo.Update(ctx, producto); err != nil {
		return nil, err
	}

	actualizado, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return productoToResponse(actualizado), nil
}

func (s *productoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *productoService) Reactivar(ctx context.Context, id uuid.UUID) error {
	return s.repo.Reactivar(ctx, id)
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	costos := make([]dto.CostoAdicionalResponse, 0, len(p.CostosAdicionales))
	for _, ca := range p.CostosAdicionales {
		costos = append(costos, dto.CostoAdicionalResponse{Descripcion: ca.Descripcion, Monto: ca.Monto})
	}
	insumos := make([]dto.ProductoInsumoResponse, 0, len(p.Insumos))
	for _, pi := range p.Insumos {
		nombre := ""
		if pi.Insumo != nil {
			nombre = pi.Insumo.Nombre
		}
		insumos = append(insumos, dto.ProductoInsumoResponse{
			InsumoID: pi.InsumoID.String(),
			Nombre:   nombre,
			Cantidad: pi.Cantidad,
		})
	}
	return &dto.ProductoResponse{
		ID:               p.ID.String(),
		Nombre:           p.Nombre,
		Descripcion:      p.Descripcion,
		PrecioBase:       p.PrecioBase,
		PesoGramos:       p.PesoGramos,
		HorasEstimadas:   p.HorasEstimadas,
		MinutosEstimados: p.MinutosEstimados,
		CostosAdicionales: costos,
		Insumos:           insumos,
		Activo:            p.Activo,
	}
}
