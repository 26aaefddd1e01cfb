package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Vehiculo is a rentable unit of the fleet.
// Estado: "Disponible" | "En mantenimiento" | "En reparacion" | "Reservado" | "Alquilado"
// Estado is mutated by the rental lifecycle, never directly by clients.
type Vehiculo struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Placa               string          `gorm:"type:varchar(8);uniqueIndex;not null"`
	VIN                 string          `gorm:"type:varchar(17);uniqueIndex;not null;column:vin"`
	NumeroMotor         string          `gorm:"type:varchar(30);uniqueIndex;not null"`
	ModeloVehiculoID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	CategoriaVehiculoID uuid.UUID       `gorm:"type:uuid;index;not null"`
	SucursalID          uuid.UUID       `gorm:"type:uuid;index;not null"`
	Color               string          `gorm:"type:varchar(50);not null"`
	Anio                int             `gorm:"not null"`
	PrecioDiario        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Estado              string          `gorm:"type:varchar(20);not null;default:'Disponible'"`
	Activo              bool            `gorm:"not null;default:true"`
	CreatedBy           *uuid.UUID      `gorm:"type:uuid"`
	ModifiedBy          *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt           time.Time
	UpdatedAt           time.Time

	ModeloVehiculo    *ModeloVehiculo    `gorm:"foreignKey:ModeloVehiculoID"`
	CategoriaVehiculo *CategoriaVehiculo `gorm:"foreignKey:CategoriaVehiculoID"`
	Sucursal          *Sucursal          `gorm:"foreignKey:SucursalID"`
}

// Vehicle estados.
const (
	VehiculoDisponible    = "Disponible"
	VehiculoMantenimiento = "En mantenimiento"
	VehiculoReparacion    = "En reparacion"
	VehiculoReservado     = "Reservado"
	VehiculoAlquilado     = "Alquilado"
)
