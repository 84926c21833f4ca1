package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"australprints/internal/dto"
	"australprints/internal/model"
	"australprints/internal/repository"
	"australprints/internal/worker"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ErrSinFilasAfectadas señala un UPDATE de estado que terminó sin error pero
// sin tocar ninguna fila: el pedido desapareció entre la lectura y la
// escritura. Se trata como fallo, nunca como éxito silencioso.
var ErrSinFilasAfectadas = errors.New("el cambio de estado no afectó ninguna fila")

// ErrCambioEnCurso rechaza un cambio de estado mientras otro cambio del
// mismo pedido sigue en vuelo.
var ErrCambioEnCurso = errors.New("ya hay un cambio de estado en curso para este pedido")

type PedidoService interface {
	Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearPedidoRequest) (*dto.PedidoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error)
	Listar(ctx context.Context, filter dto.PedidoFilter) (*dto.PedidoListResponse, error)
	Actualizar(ctx context.Context, usuarioID uuid.UUID, id uuid.UUID, req dto.ActualizarPedidoRequest) (*dto.PedidoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error

	// CambiarEstado aplica una transición directa al estado pedido.
	CambiarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.CambioEstadoResponse, error)
	// Avanzar y Retroceder mueven un paso sobre el pipeline lineal.
	Avanzar(ctx context.Context, id uuid.UUID) (*dto.CambioEstadoResponse, error)
	Retroceder(ctx context.Context, id uuid.UUID) (*dto.CambioEstadoResponse, error)
	Cancelar(ctx context.Context, id uuid.UUID) (*dto.CambioEstadoResponse, error)
}

type pedidoService struct {
	repo         repository.PedidoRepository
	productoRepo repository.ProductoRepository
	insumoRepo   repository.InsumoRepository
	inventario   InsumoService
	cotizacion   CotizacionService
	dispatcher   *worker.Dispatcher
	rdb          *redis.Client

	// Guardia de concurrencia por pedido: un solo cambio de estado en vuelo
	// por id. Protege contra el doble click, no reemplaza al chequeo de
	// filas afectadas.
	mu      sync.Mutex
	enCurso map[uuid.UUID]struct{}
}

func NewPedidoService(
	repo repository.PedidoRepository,
	productoRepo repository.ProductoRepository,
	insumoRepo repository.InsumoRepository,
	inventario InsumoService,
	cotizacion CotizacionService,
	dispatcher *worker.Dispatcher,
	rdb *redis.Client,
) PedidoService {
	return &pedidoService{
		repo:         repo,
		productoRepo: productoRepo,
		insumoRepo:   insumoRepo,
		inventario:   inventario,
		cotizacion:   cotizacion,
		dispatcher:   dispatcher,
		rdb:          rdb,
		enCurso:      make(map[uuid.UUID]struct{}),
	}
}

// ── Crear ────────────────────────────────────────────────────────────────────

func (s *pedidoService) Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearPedidoRequest) (*dto.PedidoResponse, error) {
	pedido := &model.Pedido{
		Descripcion: req.Descripcion,
		Precio:      req.Precio,
		Cantidad:    req.Cantidad,
		Estado:      model.EstadoPendiente,
		Etiquetas:   req.Etiquetas,
	}
	if pedido.Etiquetas == nil {
		pedido.Etiquetas = []string{}
	}

	if req.Fecha != nil {
		fecha, err := time.Parse("2006-01-02", *req.Fecha)
		if err != nil {
			return nil, errors.New("fecha inválida, formato esperado YYYY-MM-DD")
		}
		pedido.Fecha = &fecha
	}

	var producto *model.Producto
	if req.ProductoID != nil {
		pid, err := uuid.Parse(*req.ProductoID)
		if err != nil {
			return nil, errors.New("producto_id inválido")
		}
		producto, err = s.productoRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, errors.New("producto no encontrado")
		}
		pedido.ProductoID = &producto.ID
	}

	if err := s.resolverCliente(pedido, req.ClienteID, req.NombreClienteLibre); err != nil {
		return nil, err
	}
	if req.InsumoID != nil {
		iid, err := uuid.Parse(*req.InsumoID)
		if err != nil {
			return nil, errors.New("insumo_id inválido")
		}
		pedido.InsumoID = &iid
	}

	// Congelar la foto técnica y calcular costo + precio sugerido.
	s.congelarCotizacion(ctx, usuarioID, pedido, producto, req.Cotizacion)

	// Precio por defecto: el precio base del producto cuando el request no
	// trae uno. Nunca el sugerido por el motor.
	if pedido.Precio.IsZero() && producto != nil && !producto.PrecioBase.IsZero() {
		pedido.Precio = producto.PrecioBase
	}

	// Líneas: las del request, o las plantillas del producto como punto de
	// partida.
	costos, insumos, err := s.construirLineas(ctx, req.CostosAdicionales, req.Insumos, producto)
	if err != nil {
		return nil, err
	}
	pedido.CostosAdicionales = costos
	pedido.Insumos = insumos

	if err := s.repo.Create(ctx, pedido); err != nil {
		return nil, err
	}
	InvalidarResumenCache(ctx, s.rdb)

	completo, err := s.repo.FindByID(ctx, pedido.ID)
	if err != nil {
		return nil, err
	}
	return pedidoToResponse(completo), nil
}

// resolverCliente asigna FK de cliente o nombre libre. Ambos a la vez no
// tiene sentido: gana la FK.
func (s *pedidoService) resolverCliente(pedido *model.Pedido, clienteID, nombreLibre *string) error {
	if clienteID != nil {
		cid, err := uuid.Parse(*clienteID)
		if err != nil {
			return errors.New("cliente_id inválido")
		}
		pedido.ClienteID = &cid
		pedido.NombreClienteLibre = nil
		return nil
	}
	if nombreLibre != nil && *nombreLibre != "" {
		pedido.ClienteID = nil
		pedido.NombreClienteLibre = nombreLibre
	}
	return nil
}

// congelarCotizacion arma los parámetros efectivos (request > producto >
// configuración del usuario), corre el motor y guarda tanto los resultados
// como la foto de parámetros en el pedido.
func (s *pedidoService) congelarCotizacion(ctx context.Context, usuarioID uuid.UUID, pedido *model.Pedido, producto *model.Producto, cot *dto.CotizacionPedidoRequest) {
	base := s.cotizacion.ConfiguracionEfectiva(ctx, usuarioID)

	params := ParametrosCotizacion{
		CostoKwh:               base.CostoKwh,
		PotenciaWatts:          base.PotenciaWatts,
		PrecioMaterialKg:       base.PrecioMaterialKg,
		MultiplicadorOperativo: base.MultiplicadorOperativo,
		MultiplicadorVenta:     base.MultiplicadorVenta,
	}
	if producto != nil {
		params.Gramos = producto.PesoGramos
		params.Horas = producto.HorasEstimadas
		params.Minutos = producto.MinutosEstimados
	}
	if cot != nil {
		if cot.Gramos != nil {
			params.Gramos = *cot.Gramos
		}
		if cot.Horas != nil {
			params.Horas = *cot.Horas
		}
		if cot.Minutos != nil {
			params.Minutos = *cot.Minutos
		}
		if cot.PotenciaWatts != nil {
			params.PotenciaWatts = *cot.PotenciaWatts
		}
		if cot.PrecioMaterialKg != nil {
			params.PrecioMaterialKg = *cot.PrecioMaterialKg
		}
		if cot.MultiplicadorOperativo != nil {
			params.MultiplicadorOperativo = *cot.MultiplicadorOperativo
		}
		if cot.MultiplicadorVenta != nil {
			params.MultiplicadorVenta = *cot.MultiplicadorVenta
		}
	}

	resultado := CalcularCotizacion(params)

	pedido.Costo = decimal.NewFromFloat(resultado.CostoDirecto)
	pedido.PrecioSugerido = decimal.NewFromFloat(resultado.PrecioFinal)

	pedido.GramosCotizados = &params.Gramos
	pedido.HorasCotizadas = &params.Horas
	pedido.MinutosCotizados = &params.Minutos
	pedido.PotenciaCotizadaWatts = &params.PotenciaWatts
	pedido.PrecioMaterialCotizado = &params.PrecioMaterialKg
	pedido.MultiplicadorOperativo = &params.MultiplicadorOperativo
	pedido.MultiplicadorVenta = &params.MultiplicadorVenta
}

// construirLineas materializa costos adicionales e insumos del pedido. Con
// request vacío se copian las plantillas del producto; el costo de cada
// insumo se congela al precio vigente del material.
func (s *pedidoService) construirLineas(ctx context.Context, costosReq []dto.CostoAdicionalRequest, insumosReq []dto.PedidoInsumoRequest, producto *model.Producto) ([]model.CostoAdicional, []model.PedidoInsumo, error) {
	var costos []model.CostoAdicional
	if len(costosReq) > 0 {
		for _, ca := range costosReq {
			costos = append(costos, model.CostoAdicional{Descripcion: ca.Descripcion, Monto: ca.Monto})
		}
	} else if producto != nil {
		for _, ca := range producto.CostosAdicionales {
			costos = append(costos, model.CostoAdicional{Descripcion: ca.Descripcion, Monto: ca.Monto})
		}
	}

	var insumos []model.PedidoInsumo
	agregar := func(insumoID uuid.UUID, cantidad int) error {
		insumo, err := s.insumoRepo.FindByID(ctx, insumoID)
		if err != nil {
			return fmt.Errorf("insumo %s no encontrado", insumoID)
		}
		insumos = append(insumos, model.PedidoInsumo{
			InsumoID:       insumoID,
			Cantidad:       cantidad,
			CostoCalculado: costoUnitarioInsumo(insumo).Mul(decimal.NewFromInt(int64(cantidad))),
		})
		return nil
	}

	if len(insumosReq) > 0 {
		for _, pi := range insumosReq {
			iid, err := uuid.Parse(pi.InsumoID)
			if err != nil {
				return nil, nil, errors.New("insumo_id inválido")
			}
			if err := agregar(iid, pi.Cantidad); err != nil {
				return nil, nil, err
			}
		}
	} else if producto != nil {
		for _, pi := range producto.Insumos {
			if err := agregar(pi.InsumoID, pi.Cantidad); err != nil {
				return nil, nil, err
			}
		}
	}

	return costos, insumos, nil
}

// costoUnitarioInsumo traduce el precio del insumo a costo por unidad
// consumida: por unidad directa, o por gramo cuando se mide en gramos.
func costoUnitarioInsumo(i *model.Insumo) decimal.Decimal {
	if i.UnidadMedida == model.UnidadGramos {
		return i.PrecioPorKg.Div(decimal.NewFromInt(1000))
	}
	return i.PrecioPorKg
}

// ── Lectura ──────────────────────────────────────────────────────────────────

func (s *pedidoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error) {
	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("pedido no encontrado")
	}
	return pedidoToResponse(pedido), nil
}

func (s *pedidoService) Listar(ctx context.Context, filter dto.PedidoFilter) (*dto.PedidoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	pedidos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.PedidoResponse, 0, len(pedidos))
	for i := range pedidos {
		data = append(data, *pedidoToResponse(&pedidos[i]))
	}
	return &dto.PedidoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// ── Actualizar ───────────────────────────────────────────────────────────────

func (s *pedidoService) Actualizar(ctx context.Context, usuarioID uuid.UUID, id uuid.UUID, req dto.ActualizarPedidoRequest) (*dto.PedidoResponse, error) {
	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("pedido no encontrado")
	}

	if req.Descripcion != nil {
		pedido.Descripcion = *req.Descripcion
	}
	if req.Precio != nil {
		pedido.Precio = *req.Precio
	}
	if req.Cantidad != nil {
		pedido.Cantidad = *req.Cantidad
	}
	if req.Fecha != nil {
		fecha, err := time.Parse("2006-01-02", *req.Fecha)
		if err != nil {
			return nil, errors.New("fecha inválida, formato esperado YYYY-MM-DD")
		}
		pedido.Fecha = &fecha
	}
	if req.ClienteID != nil || req.NombreClienteLibre != nil {
		if err := s.resolverCliente(pedido, req.ClienteID, req.NombreClienteLibre); err != nil {
			return nil, err
		}
	}
	if req.InsumoID != nil {
		iid, err := uuid.Parse(*req.InsumoID)
		if err != nil {
			return nil, errors.New("insumo_id inválido")
		}
		pedido.InsumoID = &iid
	}
	if req.Etiquetas != nil {
		pedido.Etiquetas = req.Etiquetas
	}

	// Re-cotizar solo si el request trae parámetros nuevos: editar precio o
	// etiquetas no descongela la foto técnica.
	if req.Cotizacion != nil {
		s.congelarCotizacion(ctx, usuarioID, pedido, pedido.Producto, req.Cotizacion)
	}

	if req.CostosAdicionales != nil || req.Insumos != nil {
		costos, insumos, err := s.construirLineas(ctx, req.CostosAdicionales, req.Insumos, nil)
		if err != nil {
			return nil, err
		}
		for i := range costos {
			costos[i].PedidoID = pedido.ID
		}
		for i := range insumos {
			insumos[i].PedidoID = pedido.ID
		}
		if err := s.repo.ReemplazarLineas(ctx, pedido, costos, insumos); err != nil {
			return nil, err
		}
	} else if err := s.repo.Update(ctx, pedido); err != nil {
		return nil, err
	}
	InvalidarResumenCache(ctx, s.rdb)

	actualizado, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return pedidoToResponse(actualizado), nil
}

func (s *pedidoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.HardDelete(ctx, id); err != nil {
		return err
	}
	InvalidarResumenCache(ctx, s.rdb)
	return nil
}

// ── Cambios de estado ────────────────────────────────────────────────────────

func (s *pedidoService) CambiarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.CambioEstadoResponse, error) {
	if !model.EstadoValido(estado) {
		return nil, fmt.Errorf("estado desconocido: %s", estado)
	}

	if !s.reservar(id) {
		return nil, ErrCambioEnCurso
	}
	defer s.liberar(id)

	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("pedido no encontrado")
	}

	desde := pedido.Estado
	if desde == estado {
		// No-op: mismo estado, sin descuento ni escritura.
		return &dto.CambioEstadoResponse{Pedido: *pedidoToResponse(pedido)}, nil
	}

	filas, err := s.repo.UpdateEstado(ctx, id, estado)
	if err != nil {
		return nil, err
	}
	if filas == 0 {
		return nil, ErrSinFilasAfectadas
	}
	pedido.Estado = estado
	InvalidarResumenCache(ctx, s.rdb)

	resp := &dto.CambioEstadoResponse{}

	// Descuento de inventario después de confirmar el estado. Si falla, el
	// estado ya quedó: se avisa y el stock se concilia a mano.
	if model.DebeDescontarStock(desde, estado) {
		if _, err := s.inventario.ConsumirParaPedido(ctx, pedido); err != nil {
			log.Warn().
				Err(err).
				Str("pedido_id", id.String()).
				Msg("descuento de inventario falló tras el cambio de estado")
			resp.AdvertenciaInventario = fmt.Sprintf("el estado se actualizó pero el descuento de stock falló: %v", err)
		}
	}

	// Recibo asíncrono al entregar — fire & forget.
	if estado == model.EstadoEntregado && s.dispatcher != nil {
		payload := worker.ReciboJobPayload{PedidoID: id.String()}
		if pedido.Cliente != nil && pedido.Cliente.Email != nil {
			payload.ClienteEmail = pedido.Cliente.Email
		}
		if err := s.dispatcher.EnqueueRecibo(ctx, payload); err != nil {
			log.Warn().Err(err).Str("pedido_id", id.String()).Msg("no se pudo encolar el recibo")
		}
	}

	resp.Pedido = *pedidoToResponse(pedido)
	return resp, nil
}

func (s *pedidoService) Avanzar(ctx context.Context, id uuid.UUID) (*dto.CambioEstadoResponse, error) {
	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("pedido no encontrado")
	}
	return s.CambiarEstado(ctx, id, model.SiguienteEstado(pedido.Estado))
}

func (s *pedidoService) Retroceder(ctx context.Context, id uuid.UUID) (*dto.CambioEstadoResponse, error) {
	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("pedido no encontrado")
	}
	return s.CambiarEstado(ctx, id, model.EstadoAnterior(pedido.Estado))
}

func (s *pedidoService) Cancelar(ctx context.Context, id uuid.UUID) (*dto.CambioEstadoResponse, error) {
	return s.CambiarEstado(ctx, id, model.EstadoCancelado)
}

func (s *pedidoService) reservar(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ocupado := s.enCurso[id]; ocupado {
		return false
	}
	s.enCurso[id] = struct{}{}
	return true
}

func (s *pedidoService) liberar(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.enCurso, id)
}

// ── Mapeo ────────────────────────────────────────────────────────────────────

func pedidoToResponse(p *model.Pedido) *dto.PedidoResponse {
	costos := make([]dto.CostoAdicionalResponse, 0, len(p.CostosAdicionales))
	for _, ca := range p.CostosAdicionales {
		costos = append(costos, dto.CostoAdicionalResponse{Descripcion: ca.Descripcion, Monto: ca.Monto})
	}
	insumos := make([]dto.PedidoInsumoResponse, 0, len(p.Insumos))
	for _, pi := range p.Insumos {
		nombre := ""
		if pi.Insumo != nil {
			nombre = pi.Insumo.Nombre
		}
		insumos = append(insumos, dto.PedidoInsumoResponse{
			InsumoID:       pi.InsumoID.String(),
			Nombre:         nombre,
			Cantidad:       pi.Cantidad,
			CostoCalculado: pi.CostoCalculado,
		})
	}

	etiquetas := []string(p.Etiquetas)
	if etiquetas == nil {
		etiquetas = []string{}
	}

	var fecha *string
	if p.Fecha != nil {
		f := p.Fecha.Format("2006-01-02")
		fecha = &f
	}
	var productoID, clienteID, insumoID *string
	if p.ProductoID != nil {
		id := p.ProductoID.String()
		productoID = &id
	}
	if p.ClienteID != nil {
		id := p.ClienteID.String()
		clienteID = &id
	}
	if p.InsumoID != nil {
		id := p.InsumoID.String()
		insumoID = &id
	}

	clienteNombre := ""
	if p.Cliente != nil {
		clienteNombre = p.Cliente.NombreCompleto
	} else if p.NombreClienteLibre != nil {
		clienteNombre = *p.NombreClienteLibre
	}

	return &dto.PedidoResponse{
		ID:             p.ID.String(),
		Descripcion:    p.Descripcion,
		Fecha:          fecha,
		Precio:         p.Precio,
		Cantidad:       p.Cantidad,
		Costo:          p.Costo,
		PrecioSugerido: p.PrecioSugerido,
		Estado:         p.Estado,

		TotalVenta: p.TotalVenta(),
		CostoTotal: p.CostoTotal(),
		MargenReal: p.MargenReal(),

		ProductoID:         productoID,
		ClienteID:          clienteID,
		ClienteNombre:      clienteNombre,
		NombreClienteLibre: p.NombreClienteLibre,
		InsumoID:           insumoID,

		Gramos:                 p.GramosCotizados,
		Horas:                  p.HorasCotizadas,
		Minutos:                p.MinutosCotizados,
		PotenciaWatts:          p.PotenciaCotizadaWatts,
		PrecioMaterialKg:       p.PrecioMaterialCotizado,
		MultiplicadorOperativo: p.MultiplicadorOperativo,
		MultiplicadorVenta:     p.MultiplicadorVenta,

		CostosAdicionales: costos,
		Insumos:           insumos,
		Etiquetas:         etiquetas,
		CreatedAt:         p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
