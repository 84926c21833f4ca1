package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovimientoStock registra cada cambio de stock de un insumo. Se crea al
// completar un pedido, al ajustar a mano o al reponer material.
type MovimientoStock struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InsumoID uuid.UUID `gorm:"type:uuid;not null;index"`
	Tipo     string    `gorm:"not null"` // "consumo_pedido" | "ajuste_manual" | "reposicion"
	// Cantidad con signo: positiva = entrada, negativa = salida.
	Cantidad      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	StockAnterior decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	StockNuevo    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Motivo        string
	PedidoID      *uuid.UUID `gorm:"type:uuid"`
	CreatedAt     time.Time

	Insumo *Insumo `gorm:"foreignKey:InsumoID"`
}

// TableName overrides GORM's pluralization (movimiento_stocks → movimientos_stock).
func (MovimientoStock) TableName() string { return "movimientos_stock" }
