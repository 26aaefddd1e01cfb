package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearVehiculoRequest struct {
	Placa               string          `json:"placa"                 validate:"required,min=6,max=8"`
	VIN                 string          `json:"vin"                   validate:"required,len=17"`
	NumeroMotor         string          `json:"numero_motor"          validate:"required,min=5,max=30"`
	ModeloVehiculoID    string          `json:"modelo_vehiculo_id"    validate:"required,uuid"`
	CategoriaVehiculoID string          `json:"categoria_vehiculo_id" validate:"required,uuid"`
	SucursalID          string          `json:"sucursal_id"           validate:"required,uuid"`
	Color               string          `json:"color"                 validate:"required,max=50"`
	Anio                int             `json:"anio"                  validate:"required,min=1886"`
	PrecioDiario        decimal.Decimal `json:"precio_diario"         validate:"required"`
}

type ActualizarVehiculoRequest struct {
	SucursalID   *string          `json:"sucursal_id"   validate:"omitempty,uuid"`
	Color        *string          `json:"color"         validate:"omitempty,max=50"`
	PrecioDiario *decimal.Decimal `json:"precio_diario"`
	// Estado accepts only garage states; Reservado/Alquilado are controlled
	// by the rental lifecycle.
	Estado *string `json:"estado" validate:"omitempty,oneof=Disponible 'En mantenimiento' 'En reparacion'"`
}

type VehiculoFilter struct {
	Estado     string `form:"estado"`
	SucursalID string `form:"sucursal_id" validate:"omitempty,uuid"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type VehiculoResponse struct {
	ID           string          `json:"id"`
	Placa        string          `json:"placa"`
	VIN          string          `json:"vin"`
	NumeroMotor  string          `json:"numero_motor"`
	Modelo       string          `json:"modelo,omitempty"`
	Marca        string          `json:"marca,omitempty"`
	Categoria    string          `json:"categoria,omitempty"`
	SucursalID   string          `json:"sucursal_id"`
	Color        string          `json:"color"`
	Anio         int             `json:"anio"`
	PrecioDiario decimal.Decimal `json:"precio_diario"`
	Estado       string          `json:"estado"`
	Activo       bool            `json:"activo"`
}

type VehiculoListResponse struct {
	Data  []VehiculoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
