package dto

// CotizarRequest: parámetros de una cotización puntual. Los campos omitidos
// se completan con la configuración guardada del usuario.
type CotizarRequest struct {
	Gramos                 float64  `json:"gramos"  validate:"min=0"`
	Horas                  float64  `json:"horas"   validate:"min=0"`
	Minutos                float64  `json:"minutos" validate:"min=0"`
	PrecioMaterialKg       *float64 `json:"precio_material_kg"      validate:"omitempty,min=0"`
	CostoKwh               *float64 `json:"costo_kwh"               validate:"omitempty,min=0"`
	PotenciaWatts          *float64 `json:"potencia_watts"          validate:"omitempty,min=0"`
	MultiplicadorOperativo *float64 `json:"multiplicador_operativo" validate:"omitempty,gt=0"`
	MultiplicadorVenta     *float64 `json:"multiplicador_venta"     validate:"omitempty,gt=0"`
}

type ConfiguracionCotizacionRequest struct {
	CostoKwh               float64 `json:"costo_kwh"               validate:"min=0"`
	PotenciaWatts          float64 `json:"potencia_watts"          validate:"min=0"`
	PrecioMaterialKg       float64 `json:"precio_material_kg"      validate:"min=0"`
	MultiplicadorOperativo float64 `json:"multiplicador_operativo" validate:"gt=0"`
	MultiplicadorVenta     float64 `json:"multiplicador_venta"     validate:"gt=0"`
}

type ConfiguracionCotizacionResponse struct {
	CostoKwh               float64 `json:"costo_kwh"`
	PotenciaWatts          float64 `json:"potencia_watts"`
	PrecioMaterialKg       float64 `json:"precio_material_kg"`
	MultiplicadorOperativo float64 `json:"multiplicador_operativo"`
	MultiplicadorVenta     float64 `json:"multiplicador_venta"`
}
