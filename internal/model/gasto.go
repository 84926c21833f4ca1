package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Orígenes de capital de un gasto.
const (
	OrigenReinversion       = "reinversion"
	OrigenInversionPersonal = "inversion_personal"
)

// Gasto es una salida de dinero: compras de material, repuestos, servicios.
// Los gastos con origen reinversion pueden llevar un comprobante (imagen)
// subido al object storage.
type Gasto struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Descripcion string          `gorm:"not null"`
	Monto       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Categoria   string          `gorm:"index"`
	Fecha       time.Time       `gorm:"not null;index"`
	Origen      string          `gorm:"type:varchar(30);not null;default:'inversion_personal'"`
	Etiquetas   pq.StringArray  `gorm:"type:text[]"`
	// ComprobanteURL apunta a la imagen de respaldo en el bucket.
	ComprobanteURL *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
