package dto

// Respuestas del agregador de estadísticas. Las cifras son float64: son
// vistas analíticas sobre los montos, no asientos contables.

// PuntoDiario es un balde de la serie diaria de producción realizada.
type PuntoDiario struct {
	Fecha         string  `json:"fecha"` // YYYY-MM-DD
	Ingresos      float64 `json:"ingresos"`
	CostoMaterial float64 `json:"costo_material"`
	CostoEnergia  float64 `json:"costo_energia"`
	Pedidos       int     `json:"pedidos"`
}

type ResumenEstadisticas struct {
	Ventana string `json:"ventana"` // 7d | 30d | month | all

	// Producción realizada: solo pedidos entregados dentro de la ventana.
	PedidosEntregados int     `json:"pedidos_entregados"`
	TotalIngresos     float64 `json:"total_ingresos"`
	CostoMaterial     float64 `json:"costo_material"`
	CostoEnergia      float64 `json:"costo_energia"`
	CostoDirecto      float64 `json:"costo_directo"`

	TotalGastos float64 `json:"total_gastos"`

	GramosTotales float64 `json:"gramos_totales"`
	HorasTotales  float64 `json:"horas_totales"`
	// Eficiencia por unidad: material/gramos y energía/horas; 0 cuando el
	// denominador es 0, nunca NaN.
	CostoPromedioPorGramo float64 `json:"costo_promedio_por_gramo"`
	CostoPromedioPorHora  float64 `json:"costo_promedio_por_hora"`

	// Conteo y venta total por etapa sobre todos los pedidos no cancelados
	// (sin ventana).
	PedidosPorEstado map[string]int     `json:"pedidos_por_estado"`
	VentaPorEstado   map[string]float64 `json:"venta_por_estado"`

	Serie []PuntoDiario `json:"serie"`
}

// SimulacionCosto estima cuánto costaría producir un producto del catálogo
// con la eficiencia actual del taller.
type SimulacionCosto struct {
	ProductoID        string  `json:"producto_id"`
	Nombre            string  `json:"nombre"`
	CostoMaterial     float64 `json:"costo_material"`
	CostoEnergia      float64 `json:"costo_energia"`
	CostoInsumos      float64 `json:"costo_insumos"`
	CostosAdicionales float64 `json:"costos_adicionales"`
	CostoTotal        float64 `json:"costo_total"`
	PrecioSugerido    float64 `json:"precio_sugerido"`
	// Margen = (sugerido − total) / sugerido; 0 si el sugerido es 0.
	Margen float64 `json:"margen"`
}
