package model

import (
	"time"

	"github.com/google/uuid"
)

// Vehicle catalog reference data: Marca → ModeloVehiculo, plus CategoriaVehiculo.

type Marca struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre     string     `gorm:"uniqueIndex;not null"`
	Activo     bool       `gorm:"not null;default:true"`
	CreatedBy  *uuid.UUID `gorm:"type:uuid"`
	ModifiedBy *uuid.UUID `gorm:"type:uuid"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type ModeloVehiculo struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MarcaID    uuid.UUID  `gorm:"type:uuid;index;not null;uniqueIndex:idx_modelo_marca_nombre"`
	Nombre     string     `gorm:"not null;uniqueIndex:idx_modelo_marca_nombre"`
	Activo     bool       `gorm:"not null;default:true"`
	CreatedBy  *uuid.UUID `gorm:"type:uuid"`
	ModifiedBy *uuid.UUID `gorm:"type:uuid"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Marca *Marca `gorm:"foreignKey:MarcaID"`
}

type CategoriaVehiculo struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"uniqueIndex;not null"`
	Descripcion *string
	Activo      bool       `gorm:"not null;default:true"`
	CreatedBy   *uuid.UUID `gorm:"type:uuid"`
	ModifiedBy  *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
