package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tipos de insumo.
const (
	InsumoFilamento = "Filamento"
	InsumoResina    = "Resina"
	InsumoRepuesto  = "Repuesto"
	InsumoOtro      = "Otro"
)

// Unidades de medida de stock.
const (
	UnidadGramos   = "gramos"
	UnidadUnidades = "unidades"
)

// Insumo es un material o repuesto en stock: rollos de filamento, resina,
// repuestos de impresora. El stock nunca baja de cero — los descuentos se
// recortan en el piso.
type Insumo struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre       string    `gorm:"not null;index"`
	Tipo         string    `gorm:"type:varchar(20);not null;default:'Filamento'"`
	Color        string
	Marca        string
	UnidadMedida string `gorm:"type:varchar(10);not null;default:'gramos'"`
	// StockGramos es gramos para filamento/resina y unidades para repuestos.
	StockGramos decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	// PrecioPorKg es precio por kilo (gramos) o por unidad (unidades).
	PrecioPorKg decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	StockMinimo decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Activo      bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
