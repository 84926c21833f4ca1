package service

// cotizacion_service.go — capa de orquestación sobre el motor puro:
// resuelve la configuración guardada del usuario (o los defaults globales)
// y completa los parámetros omitidos de una cotización puntual.

import (
	"context"

	"australprints/internal/config"
	"australprints/internal/dto"
	"australprints/internal/model"
	"australprints/internal/repository"

	"github.com/google/uuid"
)

type CotizacionService interface {
	Cotizar(ctx context.Context, usuarioID uuid.UUID, req dto.CotizarRequest) (*ResultadoCotizacion, error)
	ObtenerConfiguracion(ctx context.Context, usuarioID uuid.UUID) (*dto.ConfiguracionCotizacionResponse, error)
	GuardarConfiguracion(ctx context.Context, usuarioID uuid.UUID, req dto.ConfiguracionCotizacionRequest) (*dto.ConfiguracionCotizacionResponse, error)

	// ConfiguracionEfectiva resuelve los defaults del usuario; la usa también
	// el servicio de pedidos al congelar la foto técnica.
	ConfiguracionEfectiva(ctx context.Context, usuarioID uuid.UUID) model.ConfiguracionCotizacion
}

type cotizacionService struct {
	repo repository.ConfiguracionRepository
	cfg  *config.Config
}

func NewCotizacionService(repo repository.ConfiguracionRepository, cfg *config.Config) CotizacionService {
	return &cotizacionService{repo: repo, cfg: cfg}
}

// ConfiguracionEfectiva devuelve la configuración guardada del usuario o, si
// nunca guardó una, los defaults de entorno.
func (s *cotizacionService) ConfiguracionEfectiva(ctx context.Context, usuarioID uuid.UUID) model.ConfiguracionCotizacion {
	if saved, err := s.repo.FindByUsuario(ctx, usuarioID); err == nil {
		return *saved
	}
	return model.ConfiguracionCotizacion{
		UsuarioID:              usuarioID,
		CostoKwh:               s.cfg.DefaultCostoKwh,
		PotenciaWatts:          s.cfg.DefaultPotenciaWatts,
		PrecioMaterialKg:       s.cfg.DefaultPrecioMaterialKg,
		MultiplicadorOperativo: s.cfg.DefaultMultiplicadorOperativo,
		MultiplicadorVenta:     s.cfg.DefaultMultiplicadorVenta,
	}
}

func (s *cotizacionService) Cotizar(ctx context.Context, usuarioID uuid.UUID, req dto.CotizarRequest) (*ResultadoCotizacion, error) {
	base := s.ConfiguracionEfectiva(ctx, usuarioID)

	params := ParametrosCotizacion{
		Gramos:                 req.Gramos,
		Horas:                  req.Horas,
		Minutos:                req.Minutos,
		PrecioMaterialKg:       base.PrecioMaterialKg,
		CostoKwh:               base.CostoKwh,
		PotenciaWatts:          base.PotenciaWatts,
		MultiplicadorOperativo: base.MultiplicadorOperativo,
		MultiplicadorVenta:     base.MultiplicadorVenta,
	}
	if req.PrecioMaterialKg != nil {
		params.PrecioMaterialKg = *req.PrecioMaterialKg
	}
	if req.CostoKwh != nil {
		params.CostoKwh = *req.CostoKwh
	}
	if req.PotenciaWatts != nil {
		params.PotenciaWatts = *req.PotenciaWatts
	}
	if req.MultiplicadorOperativo != nil {
		params.MultiplicadorOperativo = *req.MultiplicadorOperativo
	}
	if req.MultiplicadorVenta != nil {
		params.MultiplicadorVenta = *req.MultiplicadorVenta
	}

	resultado := CalcularCotizacion(params)
	return &resultado, nil
}

func (s *cotizacionService) ObtenerConfiguracion(ctx context.Context, usuarioID uuid.UUID) (*dto.ConfiguracionCotizacionResponse, error) {
	c := s.ConfiguracionEfectiva(ctx, usuarioID)
	return configuracionToResponse(&c), nil
}

func (s *cotizacionService) GuardarConfiguracion(ctx context.Context, usuarioID uuid.UUID, req dto.ConfiguracionCotizacionRequest) (*dto.ConfiguracionCotizacionResponse, error) {
	c := &model.ConfiguracionCotizacion{
		UsuarioID:              usuarioID,
		CostoKwh:               req.CostoKwh,
		PotenciaWatts:          req.PotenciaWatts,
		PrecioMaterialKg:       req.PrecioMaterialKg,
		MultiplicadorOperativo: req.MultiplicadorOperativo,
		MultiplicadorVenta:     req.MultiplicadorVenta,
	}
	if err := s.repo.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return configuracionToResponse(c), nil
}

func configuracionToResponse(c *model.ConfiguracionCotizacion) *dto.ConfiguracionCotizacionResponse {
	return &dto.ConfiguracionCotizacionResponse{
		CostoKwh:               c.CostoKwh,
		PotenciaWatts:          c.PotenciaWatts,
		PrecioMaterialKg:       c.PrecioMaterialKg,
		MultiplicadorOperativo: c.MultiplicadorOperativo,
		MultiplicadorVenta:     c.MultiplicadorVenta,
	}
}
