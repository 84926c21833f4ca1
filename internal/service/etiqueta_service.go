package service

import (
	"context"
	"errors"

	"australprints/internal/dto"
	"australprints/internal/model"
	"australprints/internal/repository"

	"github.com/google/uuid"
)

type EtiquetaService interface {
	Crear(ctx context.Context, req dto.CrearEtiquetaRequest) (*dto.EtiquetaResponse, error)
	Listar(ctx context.Context) ([]dto.EtiquetaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error

	// Renombrar propaga el cambio de nombre a todas las columnas array de
	// pedidos y gastos más el registro maestro, en una sola transacción.
	Renombrar(ctx context.Context, req dto.RenombrarEtiquetaRequest) error
}

type etiquetaService struct {
	repo       repository.EtiquetaRepository
	pedidoRepo repository.PedidoRepository
	gastoRepo  repository.GastoRepository
}

func NewEtiquetaService(repo repository.EtiquetaRepository, pedidoRepo repository.PedidoRepository, gastoRepo repository.GastoRepository) EtiquetaService {
	return &etiquetaService{repo: repo, pedidoRepo: pedidoRepo, gastoRepo: gastoRepo}
}

func (s *etiquetaService) Crear(ctx context.Context, req dto.CrearEtiquetaRequest) (*dto.EtiquetaResponse, error) {
	if existente, err := s.repo.FindByNombre(ctx, req.Nombre); err == nil {
		return etiquetaToResponse(existente), nil
	}
	etiqueta := &model.Etiqueta{Nombre: req.Nombre, Color: req.Color}
	if err := s.repo.Create(ctx, etiqueta); err != nil {
		return nil, err
	}
	return etiquetaToResponse(etiqueta), nil
}

func (s *etiquetaService) Listar(ctx context.Context) ([]dto.EtiquetaResponse, error) {
	etiquetas, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.EtiquetaResponse, 0, len(etiquetas))
	for i := range etiquetas {
		resp = append(resp, *etiquetaToResponse(&etiquetas[i]))
	}
	return resp, nil
}

func (s *etiquetaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *etiquetaService) Renombrar(ctx context.Context, req dto.RenombrarEtiquetaRequest) error {
	if req.NombreActual == req.NombreNuevo {
		return nil
	}
	if _, err := s.repo.FindByNombre(ctx, req.NombreNuevo); err == nil {
		return errors.New("ya existe una etiqueta con ese nombre")
	}
	return s.repo.Renombrar(ctx, req.NombreActual, req.NombreNuevo, s.pedidoRepo, s.gastoRepo)
}

func etiquetaToResponse(e *model.Etiqueta) *dto.EtiquetaResponse {
	return &dto.EtiquetaResponse{
		ID:     e.ID.String(),
		Nombre: e.Nombre,
		Color:  e.Color,
	}
}
