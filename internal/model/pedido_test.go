package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTotalVenta_ConCostosAdicionales(t *testing.T) {
	p := &Pedido{
		Precio:   decimal.NewFromInt(5000),
		Cantidad: 3,
		CostosAdicionales: []CostoAdicional{
			{Descripcion: "Pintura", Monto: decimal.NewFromInt(1000)},
		},
	}
	// 5000 × 3 + 1000 = 16000
	assert.Equal(t, "16000", p.TotalVenta().String())
}

func TestTotalVenta_CantidadCeroValeUno(t *testing.T) {
	p := &Pedido{Precio: decimal.NewFromInt(2500), Cantidad: 0}
	assert.Equal(t, 1, p.CantidadEfectiva())
	assert.Equal(t, "2500", p.TotalVenta().String())

	p.Cantidad = -4
	assert.Equal(t, "2500", p.TotalVenta().String())
}

func TestCostoTotal_SumaInsumosYAdicionales(t *testing.T) {
	p := &Pedido{
		Costo: decimal.NewFromInt(3000),
		CostosAdicionales: []CostoAdicional{
			{Monto: decimal.NewFromInt(500)},
		},
		Insumos: []PedidoInsumo{
			{Cantidad: 4, CostoCalculado: decimal.NewFromInt(200)},
		},
	}
	assert.Equal(t, "3700", p.CostoTotal().String())
}

func TestMargenReal(t *testing.T) {
	p := &Pedido{
		Precio:   decimal.NewFromInt(8000),
		Cantidad: 1,
		Costo:    decimal.NewFromInt(3000),
	}
	assert.Equal(t, "5000", p.MargenReal().String())
}

func TestSiguienteEstado(t *testing.T) {
	assert.Equal(t, EstadoEnProceso, SiguienteEstado(EstadoPendiente))
	assert.Equal(t, EstadoTerminado, SiguienteEstado(EstadoEnProceso))
	assert.Equal(t, EstadoEntregado, SiguienteEstado(EstadoTerminado))
	// último estado y cancelado quedan donde están
	assert.Equal(t, EstadoEntregado, SiguienteEstado(EstadoEntregado))
	assert.Equal(t, EstadoCancelado, SiguienteEstado(EstadoCancelado))
}

func TestEstadoAnterior(t *testing.T) {
	assert.Equal(t, EstadoTerminado, EstadoAnterior(EstadoEntregado))
	assert.Equal(t, EstadoPendiente, EstadoAnterior(EstadoEnProceso))
	assert.Equal(t, EstadoPendiente, EstadoAnterior(EstadoPendiente))
	assert.Equal(t, EstadoCancelado, EstadoAnterior(EstadoCancelado))
}

func TestEstadoValido(t *testing.T) {
	for _, e := range []string{EstadoPendiente, EstadoEnProceso, EstadoTerminado, EstadoEntregado, EstadoCancelado} {
		assert.True(t, EstadoValido(e), e)
	}
	assert.False(t, EstadoValido("enviado"))
	assert.False(t, EstadoValido(""))
}

func TestDebeDescontarStock(t *testing.T) {
	cases := []struct {
		desde, hacia string
		want         bool
	}{
		{EstadoEnProceso, EstadoTerminado, true},
		{EstadoPendiente, EstadoTerminado, true}, // salto directo también descuenta
		{EstadoEntregado, EstadoTerminado, false}, // retroceso no vuelve a descontar
		{EstadoTerminado, EstadoTerminado, false}, // no-op
		{EstadoTerminado, EstadoEntregado, false},
		{EstadoEnProceso, EstadoCancelado, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, DebeDescontarStock(c.desde, c.hacia), "%s→%s", c.desde, c.hacia)
	}
}

func TestEsRetroceso(t *testing.T) {
	assert.True(t, EsRetroceso(EstadoEntregado, EstadoTerminado))
	assert.True(t, EsRetroceso(EstadoTerminado, EstadoPendiente))
	assert.False(t, EsRetroceso(EstadoPendiente, EstadoTerminado))
	assert.False(t, EsRetroceso(EstadoCancelado, EstadoPendiente))
	assert.False(t, EsRetroceso(EstadoPendiente, EstadoCancelado))
}
