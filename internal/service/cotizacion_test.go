package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalcularCotizacion_Desglose(t *testing.T) {
	// 100g a $10000/kg → material 1000; 200W × 2h × $150/kWh → energía 60.
	r := CalcularCotizacion(ParametrosCotizacion{
		Gramos:                 100,
		Horas:                  2,
		PrecioMaterialKg:       10000,
		CostoKwh:               150,
		PotenciaWatts:          200,
		MultiplicadorOperativo: 1.3,
		MultiplicadorVenta:     2,
	})
	assert.InDelta(t, 1000, r.CostoMaterial, 1e-9)
	assert.InDelta(t, 60, r.CostoEnergia, 1e-9)
	assert.InDelta(t, 1060, r.CostoDirecto, 1e-9)
	assert.InDelta(t, 1378, r.CostoOperativoTotal, 1e-9)
	assert.InDelta(t, 2756, r.PrecioFinal, 1e-9)
}

func TestCalcularCotizacion_MinutosSumanFraccion(t *testing.T) {
	// 1h30m = 1.5h de impresión
	conMinutos := CalcularCotizacion(ParametrosCotizacion{
		Horas: 1, Minutos: 30, PotenciaWatts: 200, CostoKwh: 100,
		MultiplicadorOperativo: 1, MultiplicadorVenta: 1,
	})
	horaYMedia := CalcularCotizacion(ParametrosCotizacion{
		Horas: 1.5, PotenciaWatts: 200, CostoKwh: 100,
		MultiplicadorOperativo: 1, MultiplicadorVenta: 1,
	})
	assert.Equal(t, horaYMedia.CostoEnergia, conMinutos.CostoEnergia)
	assert.InDelta(t, 30, conMinutos.CostoEnergia, 1e-9)
}

func TestCalcularCotizacion_EntradasCero(t *testing.T) {
	r := CalcularCotizacion(ParametrosCotizacion{})
	assert.Zero(t, r.CostoMaterial)
	assert.Zero(t, r.CostoEnergia)
	assert.Zero(t, r.CostoDirecto)
	assert.Zero(t, r.PrecioFinal)
}

func TestCalcularCotizacion_Deterministica(t *testing.T) {
	p := ParametrosCotizacion{
		Gramos: 37.5, Horas: 4, Minutos: 17, PrecioMaterialKg: 18350.9,
		CostoKwh: 142.7, PotenciaWatts: 220,
		MultiplicadorOperativo: 1.35, MultiplicadorVenta: 2.2,
	}
	assert.Equal(t, CalcularCotizacion(p), CalcularCotizacion(p))
}
