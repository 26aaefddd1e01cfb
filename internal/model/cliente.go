package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is a rental customer.
// TipoDocumento: "DUI" | "Pasaporte"
// TipoCliente:   "Nacional" | "Extranjero"
// Estado:        "Activo" | "Inactivo" | "Lista Negra"
// Blacklisted or inactive customers cannot start new rentals.
type Cliente struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombres         string     `gorm:"type:varchar(100);not null"`
	Apellidos       string     `gorm:"type:varchar(100);not null"`
	TipoDocumento   string     `gorm:"type:varchar(10);not null;uniqueIndex:idx_cliente_documento"`
	NumeroDocumento string     `gorm:"type:varchar(50);not null;uniqueIndex:idx_cliente_documento"`
	Direccion       string     `gorm:"not null"`
	Telefono        string     `gorm:"type:varchar(20);not null"`
	Email           string     `gorm:"type:varchar(100);uniqueIndex;not null"`
	TipoCliente     string     `gorm:"type:varchar(10);not null"`
	FechaNacimiento time.Time  `gorm:"type:date;not null"`
	Estado          string     `gorm:"type:varchar(15);not null;default:'Activo'"`
	Activo          bool       `gorm:"not null;default:true"`
	CreatedBy       *uuid.UUID `gorm:"type:uuid"`
	ModifiedBy      *uuid.UUID `gorm:"type:uuid"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Customer estados and tipos.
const (
	ClienteActivo     = "Activo"
	ClienteInactivo   = "Inactivo"
	ClienteListaNegra = "Lista Negra"

	ClienteNacional   = "Nacional"
	ClienteExtranjero = "Extranjero"
)

// NombreCompleto joins first and last names for display and e-mail bodies.
func (c *Cliente) NombreCompleto() string {
	return c.Nombres + " " + c.Apellidos
}
