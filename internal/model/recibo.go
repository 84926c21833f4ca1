package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Recibo es el comprobante interno emitido cuando un pedido llega a
// entregado. Se genera asíncrono (worker): el PDF puede fallar y reintentar
// sin afectar el cambio de estado del pedido.
type Recibo struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	MontoTotal decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado     string          `gorm:"type:varchar(20);not null;default:'pendiente'"` // pendiente | emitido | error
	PDFPath    *string

	RetryCount  int `gorm:"not null;default:0"`
	NextRetryAt *time.Time
	LastError   *string

	CreatedAt time.Time
	UpdatedAt time.Time

	Pedido *Pedido `gorm:"foreignKey:PedidoID"`
}
