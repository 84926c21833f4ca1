package model

import (
	"time"

	"github.com/google/uuid"
)

// ConfiguracionCotizacion guarda los valores por defecto del motor de
// cotización por usuario. El calculador en sí es puro y recibe estos valores
// como argumento — nunca los lee de estado global.
type ConfiguracionCotizacion struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`

	CostoKwh               float64 `gorm:"not null;default:0"`
	PotenciaWatts          float64 `gorm:"not null;default:0"`
	PrecioMaterialKg       float64 `gorm:"not null;default:0"`
	MultiplicadorOperativo float64 `gorm:"not null;default:1"`
	MultiplicadorVenta     float64 `gorm:"not null;default:1"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName keeps the singular-ish table name used by the app.
func (ConfiguracionCotizacion) TableName() string { return "configuraciones_cotizacion" }
