package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto es una plantilla del catálogo. Sus costos adicionales e insumos
// por defecto se copian a cada pedido nuevo como punto de partida y desde
// ahí son mutables por pedido, independientes del catálogo.
type Producto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"not null;index"`
	Descripcion *string

	PrecioBase decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	// Parámetros físicos de impresión, en float: alimentan el motor de
	// cotización y el descuento de stock al completar un pedido.
	PesoGramos       float64 `gorm:"not null;default:0"`
	HorasEstimadas   float64 `gorm:"not null;default:0"`
	MinutosEstimados float64 `gorm:"not null;default:0"`

	CostosAdicionales []ProductoCostoAdicional `gorm:"foreignKey:ProductoID;constraint:OnDelete:CASCADE"`
	Insumos           []ProductoInsumo         `gorm:"foreignKey:ProductoID;constraint:OnDelete:CASCADE"`

	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductoCostoAdicional es una línea de costo por defecto de la plantilla.
type ProductoCostoAdicional struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Descripcion string          `gorm:"not null"`
	Monto       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
}

// ProductoInsumo es un consumible por defecto de la plantilla.
type ProductoInsumo struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID uuid.UUID `gorm:"type:uuid;not null;index"`
	InsumoID   uuid.UUID `gorm:"type:uuid;not null"`
	Cantidad   int       `gorm:"not null;default:1"`

	Insumo *Insumo `gorm:"foreignKey:InsumoID"`
}
