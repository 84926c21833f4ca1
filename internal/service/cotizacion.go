package service

// cotizacion.go — motor de cotización.
// Función pura: parámetros físicos de impresión → desglose de costos y
// precio sugerido. Sin I/O, sin redondeo (el redondeo es presentación),
// determinística. La validación de entradas es responsabilidad del caller.

// ParametrosCotizacion son las entradas físicas y comerciales de una
// cotización. Los multiplicadores se aplican en cadena sobre el costo
// directo.
type ParametrosCotizacion struct {
	Gramos                 float64 `json:"gramos"`
	Horas                  float64 `json:"horas"`
	Minutos                float64 `json:"minutos"`
	PrecioMaterialKg       float64 `json:"precio_material_kg"`
	CostoKwh               float64 `json:"costo_kwh"`
	PotenciaWatts          float64 `json:"potencia_watts"`
	MultiplicadorOperativo float64 `json:"multiplicador_operativo"`
	MultiplicadorVenta     float64 `json:"multiplicador_venta"`
}

// ResultadoCotizacion es el desglose completo de la cotización.
type ResultadoCotizacion struct {
	CostoMaterial       float64 `json:"costo_material"`
	CostoEnergia        float64 `json:"costo_energia"`
	CostoDirecto        float64 `json:"costo_directo"`
	CostoOperativoTotal float64 `json:"costo_operativo_total"`
	PrecioFinal         float64 `json:"precio_final"`
}

// CalcularCotizacion aplica las fórmulas de costo de producción:
//
//	horasTotales = horas + minutos/60
//	costoMaterial = gramos × (precioMaterialKg / 1000)
//	costoEnergia  = (potenciaWatts/1000) × horasTotales × costoKwh
//	costoDirecto  = material + energía
//	operativo     = directo × multiplicadorOperativo
//	precioFinal   = operativo × multiplicadorVenta
func CalcularCotizacion(p ParametrosCotizacion) ResultadoCotizacion {
	horasTotales := p.Horas + p.Minutos/60

	costoPorGramo := p.PrecioMaterialKg / 1000
	costoMaterial := p.Gramos * costoPorGramo
	costoEnergia := (p.PotenciaWatts / 1000) * horasTotales * p.CostoKwh

	costoDirecto := costoMaterial + costoEnergia
	costoOperativo := costoDirecto * p.MultiplicadorOperativo
	precioFinal := costoOperativo * p.MultiplicadorVenta

	return ResultadoCotizacion{
		CostoMaterial:       costoMaterial,
		CostoEnergia:        costoEnergia,
		CostoDirecto:        costoDirecto,
		CostoOperativoTotal: costoOperativo,
		PrecioFinal:         precioFinal,
	}
}
