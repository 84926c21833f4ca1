package dto

import "github.com/shopspring/decimal"

type GastoFilter struct {
	Categoria string `form:"categoria"`
	Origen    string `form:"origen"` // reinversion | inversion_personal | all
	Etiqueta  string `form:"etiqueta"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CrearGastoRequest struct {
	Descripcion string          `json:"descripcion" validate:"required"`
	Monto       decimal.Decimal `json:"monto"       validate:"required"`
	Categoria   string          `json:"categoria"`
	Fecha       string          `json:"fecha"  validate:"required,datetime=2006-01-02"`
	Origen      string          `json:"origen" validate:"omitempty,oneof=reinversion inversion_personal"`
	Etiquetas   []string        `json:"etiquetas"`
}

type ActualizarGastoRequest struct {
	Descripcion *string          `json:"descripcion"`
	Monto       *decimal.Decimal `json:"monto"`
	Categoria   *string          `json:"categoria"`
	Fecha       *string          `json:"fecha"  validate:"omitempty,datetime=2006-01-02"`
	Origen      *string          `json:"origen" validate:"omitempty,oneof=reinversion inversion_personal"`
	Etiquetas   []string         `json:"etiquetas"`
}

type GastoResponse struct {
	ID             string          `json:"id"`
	Descripcion    string          `json:"descripcion"`
	Monto          decimal.Decimal `json:"monto"`
	Categoria      string          `json:"categoria"`
	Fecha          string          `json:"fecha"`
	Origen         string          `json:"origen"`
	Etiquetas      []string        `json:"etiquetas"`
	ComprobanteURL *string         `json:"comprobante_url"`
	CreatedAt      string          `json:"created_at"`
}

type GastoListResponse struct {
	Data  []GastoResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// ComprobanteSubidoResponse devuelve la URL pública del comprobante subido.
type ComprobanteSubidoResponse struct {
	ComprobanteURL string `json:"comprobante_url"`
}
