package service

// estadisticas_service.go — agregador de métricas del taller.
// Trabaja sobre producción realizada: solo pedidos entregados dentro de la
// ventana pedida. Las cifras son float64 — vistas analíticas, no asientos.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"australprints/internal/dto"
	"australprints/internal/model"
	"australprints/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Proporción heurística de material sobre el costo directo cuando el pedido
// no tiene foto técnica para recalcular el desglose exacto.
const proporcionMaterialHeuristica = 0.9

const (
	statsCacheTTL       = 60 * time.Second
	statsCacheKeyPrefix = "stats:resumen:"
)

// ventanasResumen son las ventanas cacheables del resumen.
var ventanasResumen = []string{"7d", "30d", "month", "all"}

// InvalidarResumenCache borra el resumen cacheado de todas las ventanas. Se
// llama tras cada escritura de pedidos o gastos; best-effort, con redis nil
// no hace nada.
func InvalidarResumenCache(ctx context.Context, rdb *redis.Client) {
	if rdb == nil {
		return
	}
	keys := make([]string, len(ventanasResumen))
	for i, v := range ventanasResumen {
		keys[i] = statsCacheKeyPrefix + v
	}
	if err := rdb.Del(ctx, keys...).Err(); err != nil {
		log.Debug().Err(err).Msg("estadisticas: cache invalidation failed")
	}
}

type EstadisticasService interface {
	Resumen(ctx context.Context, ventana string) (*dto.ResumenEstadisticas, error)
	SimularCosto(ctx context.Context, usuarioID uuid.UUID, productoID uuid.UUID) (*dto.SimulacionCosto, error)
}

type estadisticasService struct {
	pedidoRepo   repository.PedidoRepository
	gastoRepo    repository.GastoRepository
	productoRepo repository.ProductoRepository
	cotizacion   CotizacionService
	rdb          *redis.Client
}

func NewEstadisticasService(
	pedidoRepo repository.PedidoRepository,
	gastoRepo repository.GastoRepository,
	productoRepo repository.ProductoRepository,
	cotizacion CotizacionService,
	rdb *redis.Client,
) EstadisticasService {
	return &estadisticasService{
		pedidoRepo:   pedidoRepo,
		gastoRepo:    gastoRepo,
		productoRepo: productoRepo,
		cotizacion:   cotizacion,
		rdb:          rdb,
	}
}

// inicioVentana traduce el nombre de la ventana a su límite inferior.
// nil = sin límite (ventana "all").
func inicioVentana(ventana string, ahora time.Time) (*time.Time, error) {
	switch ventana {
	case "7d":
		t := ahora.AddDate(0, 0, -7)
		return &t, nil
	case "30d":
		t := ahora.AddDate(0, 0, -30)
		return &t, nil
	case "month":
		t := time.Date(ahora.Year(), ahora.Month(), 1, 0, 0, 0, 0, ahora.Location())
		return &t, nil
	case "all", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("ventana desconocida: %s", ventana)
	}
}

func (s *estadisticasService) Resumen(ctx context.Context, ventana string) (*dto.ResumenEstadisticas, error) {
	if ventana == "" {
		ventana = "all"
	}
	desde, err := inicioVentana(ventana, time.Now())
	if err != nil {
		return nil, err
	}

	// Cache de lectura: el dashboard refresca seguido y estas consultas
	// recorren todos los entregados.
	cacheKey := statsCacheKeyPrefix + ventana
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached dto.ResumenEstadisticas
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	entregados, err := s.pedidoRepo.ListEntregadosDesde(ctx, desde)
	if err != nil {
		return nil, err
	}
	gastos, err := s.gastoRepo.ListDesde(ctx, desde)
	if err != nil {
		return nil, err
	}
	noCancelados, err := s.pedidoRepo.ListNoCancelados(ctx)
	if err != nil {
		return nil, err
	}

	resumen := &dto.ResumenEstadisticas{
		Ventana:          ventana,
		PedidosPorEstado: map[string]int{},
		VentaPorEstado:   map[string]float64{},
	}

	serie := map[string]*dto.PuntoDiario{}
	for i := range entregados {
		p := &entregados[i]
		ingreso := p.TotalVenta().InexactFloat64()
		material, energia := DesglosarCostoPedido(p)

		resumen.PedidosEntregados++
		resumen.TotalIngresos += ingreso
		resumen.CostoMaterial += material
		resumen.CostoEnergia += energia

		cantidad := float64(p.CantidadEfectiva())
		if p.GramosCotizados != nil {
			resumen.GramosTotales += *p.GramosCotizados * cantidad
		}
		if p.HorasCotizadas != nil {
			horas := *p.HorasCotizadas
			if p.MinutosCotizados != nil {
				horas += *p.MinutosCotizados / 60
			}
			resumen.HorasTotales += horas * cantidad
		}

		dia := fechaEfectiva(p).Format("2006-01-02")
		punto, ok := serie[dia]
		if !ok {
			punto = &dto.PuntoDiario{Fecha: dia}
			serie[dia] = punto
		}
		punto.Ingresos += ingreso
		punto.CostoMaterial += material
		punto.CostoEnergia += energia
		punto.Pedidos++
	}
	resumen.CostoDirecto = resumen.CostoMaterial + resumen.CostoEnergia

	for _, g := range gastos {
		resumen.TotalGastos += g.Monto.InexactFloat64()
	}

	// Promedios de eficiencia: material sobre gramos, energía sobre horas.
	// Guarda de división por cero: 0, nunca NaN.
	if resumen.GramosTotales > 0 {
		resumen.CostoPromedioPorGramo = resumen.CostoMaterial / resumen.GramosTotales
	}
	if resumen.HorasTotales > 0 {
		resumen.CostoPromedioPorHora = resumen.CostoEnergia / resumen.HorasTotales
	}

	for i := range noCancelados {
		p := &noCancelados[i]
		resumen.PedidosPorEstado[p.Estado]++
		resumen.VentaPorEstado[p.Estado] += p.TotalVenta().InexactFloat64()
	}

	dias := make([]string, 0, len(serie))
	for dia := range serie {
		dias = append(dias, dia)
	}
	sort.Strings(dias)
	resumen.Serie = make([]dto.PuntoDiario, 0, len(dias))
	for _, dia := range dias {
		resumen.Serie = append(resumen.Serie, *serie[dia])
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(resumen); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, raw, statsCacheTTL).Err(); err != nil {
				log.Debug().Err(err).Msg("estadisticas: cache write failed")
			}
		}
	}

	return resumen, nil
}

// DesglosarCostoPedido separa el costo directo de un pedido en material y
// energía. Con foto técnica recalcula el desglose exacto con las fórmulas
// congeladas; sin foto reparte el costo persistido con la proporción
// heurística 90/10.
func DesglosarCostoPedido(p *model.Pedido) (material, energia float64) {
	cantidad := float64(p.CantidadEfectiva())

	if p.GramosCotizados != nil && p.PrecioMaterialCotizado != nil {
		params := ParametrosCotizacion{
			Gramos:           *p.GramosCotizados,
			PrecioMaterialKg: *p.PrecioMaterialCotizado,
		}
		if p.HorasCotizadas != nil {
			params.Horas = *p.HorasCotizadas
		}
		if p.MinutosCotizados != nil {
			params.Minutos = *p.MinutosCotizados
		}
		if p.PotenciaCotizadaWatts != nil {
			params.PotenciaWatts = *p.PotenciaCotizadaWatts
		}
		// El costo de energía por hora depende del kwh, que no se fotografía
		// aparte: se reconstruye desde el costo persistido.
		r := CalcularCotizacion(params)
		material = r.CostoMaterial * cantidad
		energia = p.Costo.InexactFloat64()*cantidad - material
		if energia < 0 {
			energia = 0
		}
		return material, energia
	}

	costo := p.Costo.InexactFloat64() * cantidad
	return costo * proporcionMaterialHeuristica, costo * (1 - proporcionMaterialHeuristica)
}

func fechaEfectiva(p *model.Pedido) time.Time {
	if p.Fecha != nil {
		return *p.Fecha
	}
	return p.CreatedAt
}

// SimularCosto estima cuánto costaría producir el producto con la eficiencia
// realizada del taller: los promedios por gramo y por hora de toda la
// producción entregada aplicados al perfil físico del producto, más sus
// insumos y costos adicionales. El precio sugerido de referencia sale del
// motor con la configuración vigente del usuario.
func (s *estadisticasService) SimularCosto(ctx context.Context, usuarioID uuid.UUID, productoID uuid.UUID) (*dto.SimulacionCosto, error) {
	producto, err := s.productoRepo.FindByID(ctx, productoID)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}

	historial, err := s.Resumen(ctx, "all")
	if err != nil {
		return nil, err
	}

	horas := producto.HorasEstimadas + producto.MinutosEstimados/60
	material := producto.PesoGramos * historial.CostoPromedioPorGramo
	energia := horas * historial.CostoPromedioPorHora

	costosAdicionales := 0.0
	for _, ca := range producto.CostosAdicionales {
		costosAdicionales += ca.Monto.InexactFloat64()
	}
	costoInsumos := 0.0
	for _, pi := range producto.Insumos {
		if pi.Insumo != nil {
			costoInsumos += costoUnitarioInsumo(pi.Insumo).InexactFloat64() * float64(pi.Cantidad)
		}
	}

	costoTotal := material + energia + costoInsumos + costosAdicionales

	base := s.cotizacion.ConfiguracionEfectiva(ctx, usuarioID)
	referencia := CalcularCotizacion(ParametrosCotizacion{
		Gramos:                 producto.PesoGramos,
		Horas:                  producto.HorasEstimadas,
		Minutos:                producto.MinutosEstimados,
		PrecioMaterialKg:       base.PrecioMaterialKg,
		CostoKwh:               base.CostoKwh,
		PotenciaWatts:          base.PotenciaWatts,
		MultiplicadorOperativo: base.MultiplicadorOperativo,
		MultiplicadorVenta:     base.MultiplicadorVenta,
	})

	margen := 0.0
	if referencia.PrecioFinal > 0 {
		margen = (referencia.PrecioFinal - costoTotal) / referencia.PrecioFinal
	}

	return &dto.SimulacionCosto{
		ProductoID:        producto.ID.String(),
		Nombre:            producto.Nombre,
		CostoMaterial:     material,
		CostoEnergia:      energia,
		CostoInsumos:      costoInsumos,
		CostosAdicionales: costosAdicionales,
		CostoTotal:        costoTotal,
		PrecioSugerido:    referencia.PrecioFinal,
		Margen:            margen,
	}, nil
}
