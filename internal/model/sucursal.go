package model

import (
	"time"

	"github.com/google/uuid"
)

// Sucursal is a rental branch where vehicles are picked up and returned.
type Sucursal struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre     string     `gorm:"uniqueIndex;not null"`
	Telefono   string     `gorm:"type:varchar(20);not null"`
	Direccion  string     `gorm:"not null"`
	Email      string     `gorm:"type:varchar(100);not null"`
	DistritoID uuid.UUID  `gorm:"type:uuid;index;not null"`
	Activo     bool       `gorm:"not null;default:true"`
	CreatedBy  *uuid.UUID `gorm:"type:uuid"`
	ModifiedBy *uuid.UUID `gorm:"type:uuid"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Distrito *Distrito `gorm:"foreignKey:DistritoID"`
}
