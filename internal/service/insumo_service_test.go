package service

import (
	"context"
	"testing"

	"australprints/internal/dto"
	"australprints/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildInsumoSvc() (InsumoService, *stubInsumoRepo, *stubMovimientoRepo) {
	insumoRepo := newStubInsumoRepo()
	movRepo := &stubMovimientoRepo{}
	return NewInsumoService(insumoRepo, movRepo), insumoRepo, movRepo
}

func TestAjustarStock_ReposicionDejaAsiento(t *testing.T) {
	svc, insumoRepo, movRepo := buildInsumoSvc()
	rollo := seedRollo(insumoRepo, 200)

	resp, err := svc.AjustarStock(context.Background(), rollo.ID, dto.AjustarStockRequest{
		Delta:  decimal.NewFromInt(500),
		Motivo: "Compra rollo nuevo",
	})
	require.NoError(t, err)
	assert.Equal(t, "700", resp.StockGramos.String())

	require.Len(t, movRepo.movimientos, 1)
	mov := movRepo.movimientos[0]
	assert.Equal(t, "reposicion", mov.Tipo)
	assert.Equal(t, "500", mov.Cantidad.String())
	assert.Equal(t, "200", mov.StockAnterior.String())
	assert.Equal(t, "700", mov.StockNuevo.String())
}

func TestAjustarStock_NegativoConPisoEnCero(t *testing.T) {
	svc, insumoRepo, movRepo := buildInsumoSvc()
	rollo := seedRollo(insumoRepo, 100)

	resp, err := svc.AjustarStock(context.Background(), rollo.ID, dto.AjustarStockRequest{
		Delta:  decimal.NewFromInt(-500),
		Motivo: "Merma",
	})
	require.NoError(t, err)
	assert.Equal(t, "0", resp.StockGramos.String())

	require.Len(t, movRepo.movimientos, 1)
	mov := movRepo.movimientos[0]
	assert.Equal(t, "ajuste_manual", mov.Tipo)
	// el asiento registra lo realmente descontado, no el delta pedido
	assert.Equal(t, "-100", mov.Cantidad.String())
	assert.Equal(t, "0", mov.StockNuevo.String())
}

func TestConsumirParaPedido_SinProductoNoDescuenta(t *testing.T) {
	svc, insumoRepo, movRepo := buildInsumoSvc()
	seedRollo(insumoRepo, 1000)

	// la foto cotizada no alcanza: sin producto el consumo es un no-op
	gramos := 100.0
	total, err := svc.ConsumirParaPedido(context.Background(), &model.Pedido{
		ID: uuid.New(), Cantidad: 1, GramosCotizados: &gramos,
	})
	require.NoError(t, err)
	assert.True(t, total.IsZero())
	assert.Empty(t, movRepo.movimientos)
}

func TestConsumirParaPedido_PesoDeCatalogoMandaSobreLaFoto(t *testing.T) {
	svc, insumoRepo, _ := buildInsumoSvc()
	rollo := seedRollo(insumoRepo, 1000)

	// la foto dice 100g pero el catálogo dice 300g: se descuenta el catálogo
	gramos := 100.0
	pedido := &model.Pedido{
		ID:              uuid.New(),
		Cantidad:        2,
		GramosCotizados: &gramos,
		Producto:        &model.Producto{PesoGramos: 300},
	}
	total, err := svc.ConsumirParaPedido(context.Background(), pedido)
	require.NoError(t, err)
	assert.Equal(t, "600", total.String())
	assert.Equal(t, "400", rollo.StockGramos.String())
}

func TestConsumirParaPedido_RolloExplicito(t *testing.T) {
	svc, insumoRepo, _ := buildInsumoSvc()
	primero := seedRollo(insumoRepo, 1000)
	elegido := seedRollo(insumoRepo, 800)

	pedido := &model.Pedido{
		ID:       uuid.New(),
		Cantidad: 1,
		Producto: &model.Producto{PesoGramos: 300},
		InsumoID: &elegido.ID,
	}
	total, err := svc.ConsumirParaPedido(context.Background(), pedido)
	require.NoError(t, err)
	assert.Equal(t, "300", total.String())
	assert.Equal(t, "500", elegido.StockGramos.String())
	// el primer rollo no se toca cuando el pedido elige uno
	assert.Equal(t, "1000", primero.StockGramos.String())
}

func TestConsumirParaPedido_SinFilamentoActivoEsNoOp(t *testing.T) {
	svc, _, movRepo := buildInsumoSvc()
	total, err := svc.ConsumirParaPedido(context.Background(), &model.Pedido{
		ID: uuid.New(), Cantidad: 1, Producto: &model.Producto{PesoGramos: 100},
	})
	require.NoError(t, err)
	assert.True(t, total.IsZero())
	assert.Empty(t, movRepo.movimientos)
}

func TestObtenerAlertas_BajoMinimo(t *testing.T) {
	svc, insumoRepo, _ := buildInsumoSvc()
	bajo := seedRollo(insumoRepo, 100)
	bajo.StockMinimo = decimal.NewFromInt(200)
	ok := seedRollo(insumoRepo, 900)
	ok.StockMinimo = decimal.NewFromInt(200)

	alertas, err := svc.ObtenerAlertas(context.Background())
	require.NoError(t, err)
	require.Len(t, alertas, 1)
	assert.Equal(t, bajo.ID.String(), alertas[0].InsumoID)
}
