package service

import (
	"context"
	"testing"

	"australprints/internal/config"
	"australprints/internal/dto"
	"australprints/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		DefaultCostoKwh:               150,
		DefaultPotenciaWatts:          200,
		DefaultPrecioMaterialKg:       10000,
		DefaultMultiplicadorOperativo: 1.25,
		DefaultMultiplicadorVenta:     2,
	}
}

func buildPedidoSvc() (PedidoService, *stubPedidoRepo, *stubProductoRepo, *stubInsumoRepo, *stubMovimientoRepo) {
	pedidoRepo := newStubPedidoRepo()
	productoRepo := newStubProductoRepo()
	insumoRepo := newStubInsumoRepo()
	movRepo := &stubMovimientoRepo{}

	cotizacionSvc := NewCotizacionService(newStubConfiguracionRepo(), testConfig())
	inventarioSvc := NewInsumoService(insumoRepo, movRepo)

	svc := NewPedidoService(pedidoRepo, productoRepo, insumoRepo, inventarioSvc, cotizacionSvc, nil, nil)
	return svc, pedidoRepo, productoRepo, insumoRepo, movRepo
}

func seedRollo(insumoRepo *stubInsumoRepo, stock float64) *model.Insumo {
	rollo := &model.Insumo{
		Nombre:       "PLA Negro 1kg",
		Tipo:         model.InsumoFilamento,
		UnidadMedida: model.UnidadGramos,
		StockGramos:  decimal.NewFromFloat(stock),
		PrecioPorKg:  decimal.NewFromInt(10000),
		Activo:       true,
	}
	_ = insumoRepo.Create(context.Background(), rollo)
	return rollo
}

func seedPedidoConPeso(pedidoRepo *stubPedidoRepo, peso float64, cantidad int, estado string) *model.Pedido {
	p := &model.Pedido{
		Descripcion: "Soporte articulado",
		Precio:      decimal.NewFromInt(5000),
		Cantidad:    cantidad,
		Estado:      estado,
	}
	if peso > 0 {
		p.Producto = &model.Producto{Nombre: "Soporte", PesoGramos: peso, Activo: true}
	}
	_ = pedidoRepo.Create(context.Background(), p)
	return p
}

// ── Crear ────────────────────────────────────────────────────────────────────

func TestCrearPedido_CongelaCotizacion(t *testing.T) {
	svc, _, productoRepo, _, _ := buildPedidoSvc()

	producto := &model.Producto{
		Nombre:         "Maceta hexagonal",
		PrecioBase:     decimal.NewFromInt(4500),
		PesoGramos:     100,
		HorasEstimadas: 2,
		Activo:         true,
	}
	require.NoError(t, productoRepo.Create(context.Background(), producto))

	pid := producto.ID.String()
	resp, err := svc.Crear(context.Background(), uuid.New(), dto.CrearPedidoRequest{
		Descripcion: "Maceta hexagonal x2",
		Cantidad:    2,
		ProductoID:  &pid,
	})
	require.NoError(t, err)

	// material 100g × $10/g = 1000; energía 0.2kW × 2h × $150 = 60
	assert.Equal(t, "1060", resp.Costo.String())
	// 1060 × 1.25 × 2
	assert.Equal(t, "2650", resp.PrecioSugerido.String())
	// sin precio en el request, hereda el precio base del producto — nunca el
	// sugerido
	assert.Equal(t, "4500", resp.Precio.String())
	assert.Equal(t, model.EstadoPendiente, resp.Estado)

	// la foto técnica queda congelada en el pedido
	require.NotNil(t, resp.Gramos)
	assert.Equal(t, 100.0, *resp.Gramos)
	require.NotNil(t, resp.PrecioMaterialKg)
	assert.Equal(t, 10000.0, *resp.PrecioMaterialKg)
}

func TestCrearPedido_RequestPisaProducto(t *testing.T) {
	svc, _, productoRepo, _, _ := buildPedidoSvc()

	producto := &model.Producto{Nombre: "Llavero", PesoGramos: 10, Activo: true}
	require.NoError(t, productoRepo.Create(context.Background(), producto))

	pid := producto.ID.String()
	gramos := 250.0
	resp, err := svc.Crear(context.Background(), uuid.New(), dto.CrearPedidoRequest{
		Descripcion: "Llavero gigante",
		Precio:      decimal.NewFromInt(1000),
		Cantidad:    1,
		ProductoID:  &pid,
		Cotizacion:  &dto.CotizacionPedidoRequest{Gramos: &gramos},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Gramos)
	assert.Equal(t, 250.0, *resp.Gramos)
	// material 250 × 10 = 2500
	assert.Equal(t, "2500", resp.Costo.String())
}

func TestCrearPedido_FechaInvalida(t *testing.T) {
	svc, _, _, _, _ := buildPedidoSvc()
	fecha := "30/08/2026"
	_, err := svc.Crear(context.Background(), uuid.New(), dto.CrearPedidoRequest{
		Descripcion: "Pieza suelta",
		Fecha:       &fecha,
	})
	assert.ErrorContains(t, err, "fecha inválida")
}

// ── Cambios de estado ────────────────────────────────────────────────────────

func TestCambiarEstado_TerminadoDescuentaStock(t *testing.T) {
	svc, pedidoRepo, _, insumoRepo, movRepo := buildPedidoSvc()
	rollo := seedRollo(insumoRepo, 1000)
	pedido := seedPedidoConPeso(pedidoRepo, 200, 3, model.EstadoEnProceso)

	resp, err := svc.CambiarEstado(context.Background(), pedido.ID, model.EstadoTerminado)
	require.NoError(t, err)
	assert.Empty(t, resp.AdvertenciaInventario)
	assert.Equal(t, model.EstadoTerminado, resp.Pedido.Estado)

	// 200g × 3 = 600 descontados del rollo
	assert.Equal(t, "400", rollo.StockGramos.String())
	require.Len(t, movRepo.movimientos, 1)
	mov := movRepo.movimientos[0]
	assert.Equal(t, "consumo_pedido", mov.Tipo)
	assert.Equal(t, "-600", mov.Cantidad.String())
	assert.Equal(t, "400", mov.StockNuevo.String())
}

func TestCambiarEstado_DescuentoConPisoEnCero(t *testing.T) {
	svc, pedidoRepo, _, insumoRepo, movRepo := buildPedidoSvc()
	rollo := seedRollo(insumoRepo, 100)
	pedido := seedPedidoConPeso(pedidoRepo, 600, 1, model.EstadoEnProceso)

	resp, err := svc.CambiarEstado(context.Background(), pedido.ID, model.EstadoTerminado)
	require.NoError(t, err)
	assert.Empty(t, resp.AdvertenciaInventario)
	assert.Equal(t, "0", rollo.StockGramos.String())
	require.Len(t, movRepo.movimientos, 1)
	assert.Equal(t, "0", movRepo.movimientos[0].StockNuevo.String())
}

func TestCambiarEstado_RetrocesoNoVuelveADescontar(t *testing.T) {
	svc, pedidoRepo, _, insumoRepo, movRepo := buildPedidoSvc()
	rollo := seedRollo(insumoRepo, 1000)
	pedido := seedPedidoConPeso(pedidoRepo, 200, 1, model.EstadoEntregado)

	resp, err := svc.Retroceder(context.Background(), pedido.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EstadoTerminado, resp.Pedido.Estado)
	assert.Equal(t, "1000", rollo.StockGramos.String())
	assert.Empty(t, movRepo.movimientos)
}

func TestCambiarEstado_NoOpSinEscritura(t *testing.T) {
	svc, pedidoRepo, _, _, _ := buildPedidoSvc()
	pedido := seedPedidoConPeso(pedidoRepo, 200, 1, model.EstadoTerminado)

	resp, err := svc.CambiarEstado(context.Background(), pedido.ID, model.EstadoTerminado)
	require.NoError(t, err)
	assert.Equal(t, model.EstadoTerminado, resp.Pedido.Estado)
	assert.Zero(t, pedidoRepo.updateEstadoCalls)
}

func TestCambiarEstado_SinFilasAfectadas(t *testing.T) {
	svc, pedidoRepo, _, _, _ := buildPedidoSvc()
	pedido := seedPedidoConPeso(pedidoRepo, 200, 1, model.EstadoPendiente)
	pedidoRepo.failNextUpdate = true

	_, err := svc.CambiarEstado(context.Background(), pedido.ID, model.EstadoEnProceso)
	assert.ErrorIs(t, err, ErrSinFilasAfectadas)
}

func TestCambiarEstado_FalloDeInventarioNoRevierteEstado(t *testing.T) {
	svc, pedidoRepo, _, _, _ := buildPedidoSvc()
	// el pedido apunta a un rollo que ya no existe: el descuento va a fallar
	pedido := seedPedidoConPeso(pedidoRepo, 200, 1, model.EstadoEnProceso)
	inexistente := uuid.New()
	pedido.InsumoID = &inexistente

	resp, err := svc.CambiarEstado(context.Background(), pedido.ID, model.EstadoTerminado)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AdvertenciaInventario)
	// el estado quedó confirmado igual
	assert.Equal(t, model.EstadoTerminado, resp.Pedido.Estado)
	guardado, _ := pedidoRepo.FindByID(context.Background(), pedido.ID)
	assert.Equal(t, model.EstadoTerminado, guardado.Estado)
}

func TestCambiarEstado_EstadoDesconocido(t *testing.T) {
	svc, pedidoRepo, _, _, _ := buildPedidoSvc()
	pedido := seedPedidoConPeso(pedidoRepo, 0, 1, model.EstadoPendiente)

	_, err := svc.CambiarEstado(context.Background(), pedido.ID, "enviado")
	assert.ErrorContains(t, err, "estado desconocido")
}

func TestCancelar_EsAbsorbente(t *testing.T) {
	svc, pedidoRepo, _, _, _ := buildPedidoSvc()
	pedido := seedPedidoConPeso(pedidoRepo, 0, 1, model.EstadoEnProceso)

	resp, err := svc.Cancelar(context.Background(), pedido.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EstadoCancelado, resp.Pedido.Estado)

	// avanzar desde cancelado es un no-op
	resp, err = svc.Avanzar(context.Background(), pedido.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EstadoCancelado, resp.Pedido.Estado)
}

func TestAvanzar_PipelineCompleto(t *testing.T) {
	svc, pedidoRepo, _, insumoRepo, _ := buildPedidoSvc()
	seedRollo(insumoRepo, 1000)
	pedido := seedPedidoConPeso(pedidoRepo, 50, 1, model.EstadoPendiente)

	esperados := []string{model.EstadoEnProceso, model.EstadoTerminado, model.EstadoEntregado}
	for _, estado := range esperados {
		resp, err := svc.Avanzar(context.Background(), pedido.ID)
		require.NoError(t, err)
		assert.Equal(t, estado, resp.Pedido.Estado)
	}

	// del último estado no se pasa
	resp, err := svc.Avanzar(context.Background(), pedido.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EstadoEntregado, resp.Pedido.Estado)
}

// ── Totales expuestos ────────────────────────────────────────────────────────

func TestPedidoResponse_Totales(t *testing.T) {
	svc, pedidoRepo, _, _, _ := buildPedidoSvc()
	pedido := &model.Pedido{
		Descripcion: "Lámpara lithophane",
		Precio:      decimal.NewFromInt(5000),
		Cantidad:    3,
		Costo:       decimal.NewFromInt(2000),
		Estado:      model.EstadoPendiente,
		CostosAdicionales: []model.CostoAdicional{
			{Descripcion: "Portalámparas", Monto: decimal.NewFromInt(1000)},
		},
	}
	require.NoError(t, pedidoRepo.Create(context.Background(), pedido))

	resp, err := svc.Obtener(context.Background(), pedido.ID)
	require.NoError(t, err)
	assert.Equal(t, "16000", resp.TotalVenta.String())
	assert.Equal(t, "3000", resp.CostoTotal.String())
	assert.Equal(t, "13000", resp.MargenReal.String())
}
