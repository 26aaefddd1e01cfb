package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Alquiler is the aggregate root of the rental engine.
// Estado: "Reservado" | "Activo" | "Finalizado" | "Retrasado" | "Cancelado"
// Combustible levels: "Vacio" | "1/4" | "1/2" | "3/4" | "Lleno"
//
// PrecioTotal holds the quoted price at creation and is recomputed at
// finalization to include overdue and fuel surcharges.
type Alquiler struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID             uuid.UUID `gorm:"type:uuid;index;not null"`
	VehiculoID            uuid.UUID `gorm:"type:uuid;index;not null"`
	SucursalRecogidaID    uuid.UUID `gorm:"type:uuid;not null"`
	SucursalDevolucionID  uuid.UUID `gorm:"type:uuid;not null"`
	FechaInicio           time.Time `gorm:"not null;index"`
	FechaFin              time.Time `gorm:"not null"`
	FechaDevolucionReal   *time.Time
	Estado                string          `gorm:"type:varchar(20);not null;default:'Reservado'"`
	PrecioTotal           decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CombustibleRecogida   string          `gorm:"type:varchar(10);not null"`
	CombustibleDevolucion *string         `gorm:"type:varchar(10)"`
	Observaciones         *string
	Activo                bool       `gorm:"not null;default:true"`
	CreatedBy             *uuid.UUID `gorm:"type:uuid"`
	ModifiedBy            *uuid.UUID `gorm:"type:uuid"`
	CreatedAt             time.Time
	UpdatedAt             time.Time

	Cliente            *Cliente  `gorm:"foreignKey:ClienteID"`
	Vehiculo           *Vehiculo `gorm:"foreignKey:VehiculoID"`
	SucursalRecogida   *Sucursal `gorm:"foreignKey:SucursalRecogidaID"`
	SucursalDevolucion *Sucursal `gorm:"foreignKey:SucursalDevolucionID"`
	Pagos              []Pago    `gorm:"foreignKey:AlquilerID"`
}

// Rental estados.
const (
	AlquilerReservado  = "Reservado"
	AlquilerActivo     = "Activo"
	AlquilerFinalizado = "Finalizado"
	AlquilerRetrasado  = "Retrasado"
	AlquilerCancelado  = "Cancelado"
)

// Fuel levels, ordered Vacio → Lleno.
const (
	CombustibleVacio  = "Vacio"
	CombustibleCuarto = "1/4"
	CombustibleMedio  = "1/2"
	CombustibleTres   = "3/4"
	CombustibleLleno  = "Lleno"
)

// NivelCombustible maps a fuel label to its ordinal (Vacio=0 … Lleno=4).
// Returns -1 for an unknown label.
func NivelCombustible(nivel string) int {
	switch nivel {
	case CombustibleVacio:
		return 0
	case CombustibleCuarto:
		return 1
	case CombustibleMedio:
		return 2
	case CombustibleTres:
		return 3
	case CombustibleLleno:
		return 4
	default:
		return -1
	}
}
