package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"australprints/internal/dto"
	"australprints/internal/infra"
	"australprints/internal/model"
	"australprints/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrStorageNoDisponible indica que el object storage no está configurado:
// la subida de comprobantes queda deshabilitada, el resto de gastos funciona.
var ErrStorageNoDisponible = errors.New("object storage no configurado")

type GastoService interface {
	Crear(ctx context.Context, req dto.CrearGastoRequest) (*dto.GastoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.GastoResponse, error)
	Listar(ctx context.Context, filter dto.GastoFilter) (*dto.GastoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarGastoRequest) (*dto.GastoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error

	// SubirComprobante guarda la imagen de respaldo en el bucket y asocia la
	// URL pública al gasto.
	SubirComprobante(ctx context.Context, id uuid.UUID, fileName string, reader io.Reader, size int64, contentType string) (*dto.ComprobanteSubidoResponse, error)
}

type gastoService struct {
	repo    repository.GastoRepository
	storage *infra.Storage
	rdb     *redis.Client
}

func NewGastoService(repo repository.GastoRepository, storage *infra.Storage, rdb *redis.Client) GastoService {
	return &gastoService{repo: repo, storage: storage, rdb: rdb}
}

func (s *gastoService) Crear(ctx context.Context, req dto.CrearGastoRequest) (*dto.GastoResponse, error) {
	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		return nil, errors.New("fecha inválida, formato esperado YYYY-MM-DD")
	}
	origen := req.Origen
	if origen == "" {
		origen = model.OrigenInversionPersonal
	}
	gasto := &model.Gasto{
		Descripcion: req.Descripcion,
		Monto:       req.Monto,
		Categoria:   req.Categoria,
		Fecha:       fecha,
		Origen:      origen,
		Etiquetas:   req.Etiquetas,
	}
	if gasto.Etiquetas == nil {
		gasto.Etiquetas = []string{}
	}
	if err := s.repo.Create(ctx, gasto); err != nil {
		return nil, err
	}
	InvalidarResumenCache(ctx, s.rdb)
	return gastoToResponse(gasto), nil
}

func (s *gastoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.GastoResponse, error) {
	gasto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("gasto no encontrado")
	}
	return gastoToResponse(gasto), nil
}

func (s *gastoService) Listar(ctx context.Context, filter dto.GastoFilter) (*dto.GastoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	gastos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.GastoResponse, 0, len(gastos))
	for i := range gastos {
		data = append(data, *gastoToResponse(&gastos[i]))
	}
	return &dto.GastoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *gastoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarGastoRequest) (*dto.GastoResponse, error) {
	gasto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("gasto no encontrado")
	}
	if req.Descripcion != nil {
		gasto.Descripcion = *req.Descripcion
	}
	if req.Monto != nil {
		gasto.Monto = *req.Monto
	}
	if req.Categoria != nil {
		gasto.Categoria = *req.Categoria
	}
	if req.Fecha != nil {
		fecha, err := time.Parse("2006-01-02", *req.Fecha)
		if err != nil {
			return nil, errors.New("fecha inválida, formato esperado YYYY-MM-DD")
		}
		gasto.Fecha = fecha
	}
	if req.Origen != nil {
		gasto.Origen = *req.Origen
	}
	if req.Etiquetas != nil {
		gasto.Etiquetas = req.Etiquetas
	}
	if err := s.repo.Update(ctx, gasto); err != nil {
		return nil, err
	}
	InvalidarResumenCache(ctx, s.rdb)
	return gastoToResponse(gasto), nil
}

func (s *gastoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	InvalidarResumenCache(ctx, s.rdb)
	return nil
}

func (s *gastoService) SubirComprobante(ctx context.Context, id uuid.UUID, fileName string, reader io.Reader, size int64, contentType string) (*dto.ComprobanteSubidoResponse, error) {
	if s.storage == nil {
		return nil, ErrStorageNoDisponible
	}
	gasto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("gasto no encontrado")
	}

	objectName := fmt.Sprintf("gastos/%s/%s%s",
		time.Now().Format("2006/01"), gasto.ID.String()[:8], filepath.Ext(fileName))
	url, err := s.storage.Upload(ctx, objectName, reader, size, contentType)
	if err != nil {
		return nil, err
	}

	gasto.ComprobanteURL = &url
	if err := s.repo.Update(ctx, gasto); err != nil {
		return nil, err
	}
	return &dto.ComprobanteSubidoResponse{ComprobanteURL: url}, nil
}

func gastoToResponse(g *model.Gasto) *dto.GastoResponse {
	etiquetas := []string(g.Etiquetas)
	if etiquetas == nil {
		etiquetas = []string{}
	}
	return &dto.GastoResponse{
		ID:             g.ID.String(),
		Descripcion:    g.Descripcion,
		Monto:          g.Monto,
		Categoria:      g.Categoria,
		Fecha:          g.Fecha.Format("2006-01-02"),
		Origen:         g.Origen,
		Etiquetas:      etiquetas,
		ComprobanteURL: g.ComprobanteURL,
		CreatedAt:      g.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
