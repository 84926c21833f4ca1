package service

import (
	"context"
	"errors"

	"australprints/internal/dto"
	"australprints/internal/model"
	"australprints/internal/repository"

	"github.com/google/uuid"
)

type ClienteService interface {
	Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	Listar(ctx context.Context) ([]dto.ClienteResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error

	// Rescate: nombres de texto libre que aparecen en pedidos sin FK de
	// cliente, y su promoción a cliente registrado.
	ListarNombresLibres(ctx context.Context) ([]dto.NombreLibreResponse, error)
	Rescatar(ctx context.Context, req dto.RescatarClienteRequest) (*dto.RescatarClienteResponse, error)
}

type clienteService struct {
	repo       repository.ClienteRepository
	pedidoRepo repository.PedidoRepository
}

func NewClienteService(repo repository.ClienteRepository, pedidoRepo repository.PedidoRepository) ClienteService {
	return &clienteService{repo: repo, pedidoRepo: pedidoRepo}
}

func (s *clienteService) Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	cliente := &model.Cliente{
		NombreCompleto: req.NombreCompleto,
		Telefono:       req.Telefono,
		Email:          req.Email,
		Notas:          req.Notas,
		Activo:         true,
	}
	if err := s.repo.Create(ctx, cliente); err != nil {
		return nil, err
	}
	return s.clienteToResponse(ctx, cliente), nil
}

func (s *clienteService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cliente no encontrado")
	}
	return s.clienteToResponse(ctx, cliente), nil
}

func (s *clienteService) Listar(ctx context.Context) ([]dto.ClienteResponse, error) {
	clientes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		resp = append(resp, *s.clienteToResponse(ctx, &clientes[i]))
	}
	return resp, nil
}

func (s *clienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cliente no encontrado")
	}
	if req.NombreCompleto != nil {
		cliente.NombreCompleto = *req.NombreCompleto
	}
	if req.Telefono != nil {
		cliente.Telefono = req.Telefono
	}
	if req.Email != nil {
		cliente.Email = req.Email
	}
	if req.Notas != nil {
		cliente.Notas = req.Notas
	}
	if err := s.repo.Update(ctx, cliente); err != nil {
		return nil, err
	}
	return s.clienteToResponse(ctx, cliente), nil
}

func (s *clienteService) Desactivar(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *clienteService) ListarNombresLibres(ctx context.Context) ([]dto.NombreLibreResponse, error) {
	return s.pedidoRepo.ListNombresLibres(ctx)
}

// Rescatar crea el cliente y reasigna en bloque todos los pedidos cuyo
// nombre libre coincide exactamente: el texto se borra y queda la FK.
func (s *clienteService) Rescatar(ctx context.Context, req dto.RescatarClienteRequest) (*dto.RescatarClienteResponse, error) {
	cliente := &model.Cliente{
		NombreCompleto: req.Nombre,
		Telefono:       req.Telefono,
		Email:          req.Email,
		Activo:         true,
	}
	if err := s.repo.Create(ctx, cliente); err != nil {
		return nil, err
	}

	actualizados, err := s.pedidoRepo.ReasignarNombreLibre(ctx, req.Nombre, cliente.ID)
	if err != nil {
		return nil, err
	}

	return &dto.RescatarClienteResponse{
		Cliente:             *s.clienteToResponse(ctx, cliente),
		PedidosActualizados: actualizados,
	}, nil
}

func (s *clienteService) clienteToResponse(ctx context.Context, c *model.Cliente) *dto.ClienteResponse {
	total, _ := s.pedidoRepo.ContarPorCliente(ctx, c.ID)
	return &dto.ClienteResponse{
		ID:             c.ID.String(),
		NombreCompleto: c.NombreCompleto,
		Telefono:       c.Telefono,
		Email:          c.Email,
		Notas:          c.Notas,
		Activo:         c.Activo,
		TotalPedidos:   total,
	}
}
