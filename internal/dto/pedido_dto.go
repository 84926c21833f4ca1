package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// PedidoFilter is bound from the query string of GET /v1/pedidos.
type PedidoFilter struct {
	Estado   string `form:"estado"`   // pendiente | en_proceso | terminado | entregado | cancelado | all
	Etiqueta string `form:"etiqueta"` // exact tag match
	Cliente  string `form:"cliente"`  // cliente UUID
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type PedidoListResponse struct {
	Data  []PedidoResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CostoAdicionalRequest struct {
	Descripcion string          `json:"descripcion" validate:"required"`
	Monto       decimal.Decimal `json:"monto"       validate:"min=0"`
}

type PedidoInsumoRequest struct {
	InsumoID string `json:"insumo_id" validate:"required,uuid"`
	Cantidad int    `json:"cantidad"  validate:"min=1"`
}

// CotizacionPedidoRequest es la foto técnica que se congela en el pedido.
type CotizacionPedidoRequest struct {
	Gramos                 *float64 `json:"gramos"                  validate:"omitempty,min=0"`
	Horas                  *float64 `json:"horas"                   validate:"omitempty,min=0"`
	Minutos                *float64 `json:"minutos"                 validate:"omitempty,min=0"`
	PotenciaWatts          *float64 `json:"potencia_watts"          validate:"omitempty,min=0"`
	PrecioMaterialKg       *float64 `json:"precio_material_kg"      validate:"omitempty,min=0"`
	MultiplicadorOperativo *float64 `json:"multiplicador_operativo" validate:"omitempty,gt=0"`
	MultiplicadorVenta     *float64 `json:"multiplicador_venta"     validate:"omitempty,gt=0"`
}

type CrearPedidoRequest struct {
	Descripcion string          `json:"descripcion" validate:"required"`
	Precio      decimal.Decimal `json:"precio"      validate:"min=0"`
	Cantidad    int             `json:"cantidad"    validate:"min=0"`
	Fecha       *string         `json:"fecha"       validate:"omitempty,datetime=2006-01-02"`

	ProductoID         *string `json:"producto_id"          validate:"omitempty,uuid"`
	ClienteID          *string `json:"cliente_id"           validate:"omitempty,uuid"`
	NombreClienteLibre *string `json:"nombre_cliente_libre"`
	InsumoID           *string `json:"insumo_id"            validate:"omitempty,uuid"`

	Cotizacion        *CotizacionPedidoRequest `json:"cotizacion"`
	CostosAdicionales []CostoAdicionalRequest  `json:"costos_adicionales" validate:"omitempty,dive"`
	Insumos           []PedidoInsumoRequest    `json:"insumos"            validate:"omitempty,dive"`
	Etiquetas         []string                 `json:"etiquetas"`
}

type ActualizarPedidoRequest struct {
	Descripcion *string          `json:"descripcion"`
	Precio      *decimal.Decimal `json:"precio"   validate:"omitempty"`
	Cantidad    *int             `json:"cantidad" validate:"omitempty,min=0"`
	Fecha       *string          `json:"fecha"    validate:"omitempty,datetime=2006-01-02"`

	ClienteID          *string `json:"cliente_id" validate:"omitempty,uuid"`
	NombreClienteLibre *string `json:"nombre_cliente_libre"`
	InsumoID           *string `json:"insumo_id"  validate:"omitempty,uuid"`

	Cotizacion        *CotizacionPedidoRequest `json:"cotizacion"`
	CostosAdicionales []CostoAdicionalRequest  `json:"costos_adicionales" validate:"omitempty,dive"`
	Insumos           []PedidoInsumoRequest    `json:"insumos"            validate:"omitempty,dive"`
	Etiquetas         []string                 `json:"etiquetas"`
}

type CambiarEstadoRequest struct {
	Estado string `json:"estado" validate:"required,oneof=pendiente en_proceso terminado entregado cancelado"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CostoAdicionalResponse struct {
	Descripcion string          `json:"descripcion"`
	Monto       decimal.Decimal `json:"monto"`
}

type PedidoInsumoResponse struct {
	InsumoID       string          `json:"insumo_id"`
	Nombre         string          `json:"nombre"`
	Cantidad       int             `json:"cantidad"`
	CostoCalculado decimal.Decimal `json:"costo_calculado"`
}

type PedidoResponse struct {
	ID             string          `json:"id"`
	Descripcion    string          `json:"descripcion"`
	Fecha          *string         `json:"fecha"`
	Precio         decimal.Decimal `json:"precio"`
	Cantidad       int             `json:"cantidad"`
	Costo          decimal.Decimal `json:"costo"`
	PrecioSugerido decimal.Decimal `json:"precio_sugerido"`
	Estado         string          `json:"estado"`

	TotalVenta decimal.Decimal `json:"total_venta"`
	CostoTotal decimal.Decimal `json:"costo_total"`
	MargenReal decimal.Decimal `json:"margen_real"`

	ProductoID         *string `json:"producto_id"`
	ClienteID          *string `json:"cliente_id"`
	ClienteNombre      string  `json:"cliente_nombre"`
	NombreClienteLibre *string `json:"nombre_cliente_libre"`
	InsumoID           *string `json:"insumo_id"`

	Gramos                 *float64 `json:"gramos"`
	Horas                  *float64 `json:"horas"`
	Minutos                *float64 `json:"minutos"`
	PotenciaWatts          *float64 `json:"potencia_watts"`
	PrecioMaterialKg       *float64 `json:"precio_material_kg"`
	MultiplicadorOperativo *float64 `json:"multiplicador_operativo"`
	MultiplicadorVenta     *float64 `json:"multiplicador_venta"`

	CostosAdicionales []CostoAdicionalResponse `json:"costos_adicionales"`
	Insumos           []PedidoInsumoResponse   `json:"insumos"`
	Etiquetas         []string                 `json:"etiquetas"`
	CreatedAt         string                   `json:"created_at"`
}

// CambioEstadoResponse devuelve el pedido actualizado. AdvertenciaInventario
// se completa cuando el descuento de stock falló después de confirmar el
// cambio de estado: el estado queda, el inventario se concilia a mano.
type CambioEstadoResponse struct {
	Pedido                PedidoResponse `json:"pedido"`
	AdvertenciaInventario string         `json:"advertencia_inventario,omitempty"`
}
