package model

import (
	"time"

	"github.com/google/uuid"
)

// Etiqueta es el registro maestro de etiquetas. Pedidos y gastos guardan las
// etiquetas como strings planos en columnas array, así que renombrar es un
// reemplazo masivo de strings sobre esas tablas, no una actualización de FK.
type Etiqueta struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	Color     string
	CreatedAt time.Time
}
