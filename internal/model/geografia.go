package model

import (
	"time"

	"github.com/google/uuid"
)

// Reference geography: Departamento → Municipio → Distrito.
// Read-only seed data; branches point at a Distrito.

type Departamento struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	Activo    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Municipio struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DepartamentoID uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_municipio_nombre"`
	Nombre         string    `gorm:"not null;uniqueIndex:idx_municipio_nombre"`
	Activo         bool      `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Departamento *Departamento `gorm:"foreignKey:DepartamentoID"`
}

type Distrito struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MunicipioID uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_distrito_nombre"`
	Nombre      string    `gorm:"not null;uniqueIndex:idx_distrito_nombre"`
	Activo      bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Municipio *Municipio `gorm:"foreignKey:MunicipioID"`
}
