package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente registrado. Los pedidos pueden referenciarlo por id o llevar un
// nombre de texto libre que el rescate promociona después.
type Cliente struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NombreCompleto string    `gorm:"not null;index"`
	Telefono       *string
	Email          *string
	Notas          *string
	Activo         bool `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
