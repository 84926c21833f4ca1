package dto

import "github.com/shopspring/decimal"

type ProductoFilter struct {
	Nombre string `form:"nombre"`
	Activo string `form:"activo"` // "false" | "all" | default activos
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ProductoInsumoRequest struct {
	InsumoID string `json:"insumo_id" validate:"required,uuid"`
	Cantidad int    `json:"cantidad"  validate:"min=1"`
}

type CrearProductoRequest struct {
	Nombre           string          `json:"nombre"            validate:"required"`
	Descripcion      *string         `json:"descripcion"`
	PrecioBase       decimal.Decimal `json:"precio_base"       validate:"min=0"`
	PesoGramos       float64         `json:"peso_gramos"       validate:"min=0"`
	HorasEstimadas   float64         `json:"horas_estimadas"   validate:"min=0"`
	MinutosEstimados float64         `json:"minutos_estimados" validate:"min=0"`

	CostosAdicionales []CostoAdicionalRequest `json:"costos_adicionales" validate:"omitempty,dive"`
	Insumos           []ProductoInsumoRequest `json:"insumos"            validate:"omitempty,dive"`
}

type ActualizarProductoRequest struct {
	Nombre           *string          `json:"nombre"`
	Descripcion      *string          `json:"descripcion"`
	PrecioBase       *decimal.Decimal `json:"precio_base"`
	PesoGramos       *float64         `json:"peso_gramos"       validate:"omitempty,min=0"`
	HorasEstimadas   *float64         `json:"horas_estimadas"   validate:"omitempty,min=0"`
	MinutosEstimados *float64         `json:"minutos_estimados" validate:"omitempty,min=0"`

	CostosAdicionales []CostoAdicionalRequest `json:"costos_adicionales" validate:"omitempty,dive"`
	Insumos           []ProductoInsumoRequest `json:"insumos"            validate:"omitempty,dive"`
}

type ProductoInsumoResponse struct {
	InsumoID string `json:"insumo_id"`
	Nombre   string `json:"nombre"`
	Cantidad int    `json:"cantidad"`
}

type ProductoResponse struct {
	ID               string          `json:"id"`
	Nombre           string          `json:"nombre"`
	Descripcion      *string         `json:"descripcion"`
	PrecioBase       decimal.Decimal `json:"precio_base"`
	PesoGramos       float64         `json:"peso_gramos"`
	HorasEstimadas   float64         `json:"horas_estimadas"`
	MinutosEstimados float64         `json:"minutos_estimados"`

	CostosAdicionales []CostoAdicionalResponse `json:"costos_adicionales"`
	Insumos           []ProductoInsumoResponse `json:"insumos"`
	Activo            bool                     `json:"activo"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
