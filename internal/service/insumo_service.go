package service

import (
	"context"
	"errors"
	"fmt"

	"australprints/internal/dto"
	"australprints/internal/model"
	"australprints/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InsumoService interface {
	Crear(ctx context.Context, req dto.CrearInsumoRequest) (*dto.InsumoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.InsumoResponse, error)
	Listar(ctx context.Context, filter dto.InsumoFilter) (*dto.InsumoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarInsumoRequest) (*dto.InsumoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error

	// AjustarStock aplica un delta manual con piso en cero y deja asiento en
	// movimientos_stock.
	AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*dto.InsumoResponse, error)

	// ConsumirParaPedido descuenta el material de un pedido que llega a
	// terminado. Devuelve los gramos descontados (cero cuando el pedido no
	// consume material).
	ConsumirParaPedido(ctx context.Context, pedido *model.Pedido) (decimal.Decimal, error)

	ObtenerAlertas(ctx context.Context) ([]dto.AlertaStockResponse, error)
	ListarMovimientos(ctx context.Context, insumoID *uuid.UUID, limit int) ([]dto.MovimientoStockResponse, error)
}

type insumoService struct {
	repo           repository.InsumoRepository
	movimientoRepo repository.MovimientoStockRepository
}

func NewInsumoService(repo repository.InsumoRepository, movimientoRepo repository.MovimientoStockRepository) InsumoService {
	return &insumoService{repo: repo, movimientoRepo: movimientoRepo}
}

func (s *insumoService) Crear(ctx context.Context, req dto.CrearInsumoRequest) (*dto.InsumoResponse, error) {
	insumo := &model.Insumo{
		Nombre:       req.Nombre,
		Tipo:         req.Tipo,
		Color:        req.Color,
		Marca:        req.Marca,
		UnidadMedida: req.UnidadMedida,
		StockGramos:  req.StockGramos,
		PrecioPorKg:  req.PrecioPorKg,
		StockMinimo:  req.StockMinimo,
		Activo:       true,
	}
	if err := s.repo.Create(ctx, insumo); err != nil {
		return nil, err
	}
	return insumoToResponse(insumo), nil
}

func (s *insumoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.InsumoResponse, error) {
	insumo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("insumo no encontrado")
	}
	return insumoToResponse(insumo), nil
}

func (s *insumoService) Listar(ctx context.Context, filter dto.InsumoFilter) (*dto.InsumoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	insumos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.InsumoResponse, 0, len(insumos))
	for i := range insumos {
		data = append(data, *insumoToResponse(&insumos[i]))
	}
	return &dto.InsumoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *insumoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarInsumoRequest) (*dto.InsumoResponse, error) {
	insumo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("insumo no encontrado")
	}
	if req.Nombre != nil {
		insumo.Nombre = *req.Nombre
	}
	if req.Tipo != nil {
		insumo.Tipo = *req.Tipo
	}
	if req.Color != nil {
		insumo.Color = *req.Color
	}
	if req.Marca != nil {
		insumo.Marca = *req.Marca
	}
	if req.UnidadMedida != nil {
		insumo.UnidadMedida = *req.UnidadMedida
	}
	if req.StockGramos != nil {
		insumo.StockGramos = *req.StockGramos
	}
	if req.PrecioPorKg != nil {
		insumo.PrecioPorKg = *req.PrecioPorKg
	}
	if req.StockMinimo != nil {
		insumo.StockMinimo = *req.StockMinimo
	}
	if err := s.repo.Update(ctx, insumo); err != nil {
		return nil, err
	}
	return insumoToResponse(insumo), nil
}

func (s *insumoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *insumoService) AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*dto.InsumoResponse, error) {
	antes, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("insumo no encontrado")
	}

	if err := s.repo.AjustarStock(ctx, id, req.Delta); err != nil {
		return nil, err
	}

	despues, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tipo := "ajuste_manual"
	if req.Delta.IsPositive() {
		tipo = "reposicion"
	}
	mov := &model.MovimientoStock{
		InsumoID:      id,
		Tipo:          tipo,
		Cantidad:      despues.StockGramos.Sub(antes.StockGramos),
		StockAnterior: antes.StockGramos,
		StockNuevo:    despues.StockGramos,
		Motivo:        req.Motivo,
	}
	if err := s.movimientoRepo.Create(ctx, mov); err != nil {
		return nil, err
	}

	return insumoToResponse(despues), nil
}

// ConsumirParaPedido aplica la regla de consumo al completar:
//   - gramos = peso de catálogo del producto del pedido
//   - total  = gramos × cantidad efectiva
//   - rollo  = el insumo elegido en el pedido, o el primer filamento activo
//
// Sin producto, con peso en cero o sin ningún filamento activo no se
// descuenta nada y no es un error. El descuento en sí es atómico con piso
// en cero.
func (s *insumoService) ConsumirParaPedido(ctx context.Context, pedido *model.Pedido) (decimal.Decimal, error) {
	if pedido.Producto == nil || pedido.Producto.PesoGramos <= 0 {
		return decimal.Zero, nil
	}
	gramos := pedido.Producto.PesoGramos

	total := decimal.NewFromFloat(gramos).Mul(decimal.NewFromInt(int64(pedido.CantidadEfectiva())))

	var rollo *model.Insumo
	var err error
	if pedido.InsumoID != nil {
		rollo, err = s.repo.FindByID(ctx, *pedido.InsumoID)
		if err != nil {
			return decimal.Zero, fmt.Errorf("insumo del pedido no encontrado: %w", err)
		}
	} else {
		rollo, err = s.repo.FindPrimerFilamento(ctx)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		if err != nil {
			return decimal.Zero, fmt.Errorf("filamento activo: %w", err)
		}
	}

	antes := rollo.StockGramos
	if err := s.repo.DescontarStock(ctx, rollo.ID, total); err != nil {
		return decimal.Zero, fmt.Errorf("descuento de stock: %w", err)
	}

	nuevo := antes.Sub(total)
	if nuevo.IsNegative() {
		nuevo = decimal.Zero
	}

	pedidoRef := pedido.ID
	mov := &model.MovimientoStock{
		InsumoID:      rollo.ID,
		Tipo:          "consumo_pedido",
		Cantidad:      total.Neg(),
		StockAnterior: antes,
		StockNuevo:    nuevo,
		Motivo:        fmt.Sprintf("Pedido %s terminado", pedido.ID.String()[:8]),
		PedidoID:      &pedidoRef,
	}
	if err := s.movimientoRepo.Create(ctx, mov); err != nil {
		return total, err
	}

	return total, nil
}

func (s *insumoService) ObtenerAlertas(ctx context.Context) ([]dto.AlertaStockResponse, error) {
	insumos, err := s.repo.ListBajoMinimo(ctx)
	if err != nil {
		return nil, err
	}
	alertas := make([]dto.AlertaStockResponse, 0, len(insumos))
	for _, i := range insumos {
		alertas = append(alertas, dto.AlertaStockResponse{
			InsumoID:    i.ID.String(),
			Nombre:      i.Nombre,
			StockGramos: i.StockGramos,
			StockMinimo: i.StockMinimo,
		})
	}
	return alertas, nil
}

func (s *insumoService) ListarMovimientos(ctx context.Context, insumoID *uuid.UUID, limit int) ([]dto.MovimientoStockResponse, error) {
	if limit < 1 {
		limit = 100
	}
	var movimientos []model.MovimientoStock
	var err error
	if insumoID != nil {
		movimientos, err = s.movimientoRepo.ListByInsumo(ctx, *insumoID, limit)
	} else {
		movimientos, err = s.movimientoRepo.ListRecientes(ctx, limit)
	}
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MovimientoStockResponse, 0, len(movimientos))
	for _, m := range movimientos {
		var pedidoID *string
		if m.PedidoID != nil {
			id := m.PedidoID.String()
			pedidoID = &id
		}
		resp = append(resp, dto.MovimientoStockResponse{
			ID:            m.ID.String(),
			InsumoID:      m.InsumoID.String(),
			Tipo:          m.Tipo,
			Cantidad:      m.Cantidad,
			StockAnterior: m.StockAnterior,
			StockNuevo:    m.StockNuevo,
			Motivo:        m.Motivo,
			PedidoID:      pedidoID,
			CreatedAt:     m.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	return resp, nil
}

func insumoToResponse(i *model.Insumo) *dto.InsumoResponse {
	return &dto.InsumoResponse{
		ID:           i.ID.String(),
		Nombre:       i.Nombre,
		Tipo:         i.Tipo,
		Color:        i.Color,
		Marca:        i.Marca,
		UnidadMedida: i.UnidadMedida,
		StockGramos:  i.StockGramos,
		PrecioPorKg:  i.PrecioPorKg,
		StockMinimo:  i.StockMinimo,
		Activo:       i.Activo,
	}
}
