package dto

import "github.com/shopspring/decimal"

type InsumoFilter struct {
	Tipo   string `form:"tipo"`   // Filamento | Resina | Repuesto | Otro
	Activo string `form:"activo"` // "false" | "all" | default activos
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CrearInsumoRequest struct {
	Nombre       string          `json:"nombre"        validate:"required"`
	Tipo         string          `json:"tipo"          validate:"required,oneof=Filamento Resina Repuesto Otro"`
	Color        string          `json:"color"`
	Marca        string          `json:"marca"`
	UnidadMedida string          `json:"unidad_medida" validate:"required,oneof=gramos unidades"`
	StockGramos  decimal.Decimal `json:"stock_gramos"  validate:"min=0"`
	PrecioPorKg  decimal.Decimal `json:"precio_por_kg" validate:"min=0"`
	StockMinimo  decimal.Decimal `json:"stock_minimo"  validate:"min=0"`
}

type ActualizarInsumoRequest struct {
	Nombre       *string          `json:"nombre"`
	Tipo         *string          `json:"tipo"          validate:"omitempty,oneof=Filamento Resina Repuesto Otro"`
	Color        *string          `json:"color"`
	Marca        *string          `json:"marca"`
	UnidadMedida *string          `json:"unidad_medida" validate:"omitempty,oneof=gramos unidades"`
	StockGramos  *decimal.Decimal `json:"stock_gramos"`
	PrecioPorKg  *decimal.Decimal `json:"precio_por_kg"`
	StockMinimo  *decimal.Decimal `json:"stock_minimo"`
}

// AjustarStockRequest aplica un delta manual (positivo o negativo) al stock.
type AjustarStockRequest struct {
	Delta  decimal.Decimal `json:"delta"  validate:"required"`
	Motivo string          `json:"motivo" validate:"required,min=3"`
}

type InsumoResponse struct {
	ID           string          `json:"id"`
	Nombre       string          `json:"nombre"`
	Tipo         string          `json:"tipo"`
	Color        string          `json:"color"`
	Marca        string          `json:"marca"`
	UnidadMedida string          `json:"unidad_medida"`
	StockGramos  decimal.Decimal `json:"stock_gramos"`
	PrecioPorKg  decimal.Decimal `json:"precio_por_kg"`
	StockMinimo  decimal.Decimal `json:"stock_minimo"`
	Activo       bool            `json:"activo"`
}

type InsumoListResponse struct {
	Data  []InsumoResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

// AlertaStockResponse marca insumos con stock por debajo del mínimo.
type AlertaStockResponse struct {
	InsumoID    string          `json:"insumo_id"`
	Nombre      string          `json:"nombre"`
	StockGramos decimal.Decimal `json:"stock_gramos"`
	StockMinimo decimal.Decimal `json:"stock_minimo"`
}

type MovimientoStockResponse struct {
	ID            string          `json:"id"`
	InsumoID      string          `json:"insumo_id"`
	Tipo          string          `json:"tipo"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	StockAnterior decimal.Decimal `json:"stock_anterior"`
	StockNuevo    decimal.Decimal `json:"stock_nuevo"`
	Motivo        string          `json:"motivo"`
	PedidoID      *string         `json:"pedido_id"`
	CreatedAt     string          `json:"created_at"`
}
