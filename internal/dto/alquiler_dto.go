package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// FormatoFecha is the canonical output format for rental timestamps.
const FormatoFecha = "02-01-2006 15:04"

// formatosEntrada are the accepted input layouts, tried in order.
var formatosEntrada = []string{
	FormatoFecha,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
}

// ParseFecha parses a rental timestamp in any accepted input layout.
func ParseFecha(s string) (time.Time, error) {
	for _, layout := range formatosEntrada {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha inválida: %q (formato esperado: %s)", s, FormatoFecha)
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearAlquilerRequest struct {
	ClienteID            string  `json:"cliente_id"             validate:"required,uuid"`
	VehiculoID           string  `json:"vehiculo_id"            validate:"required,uuid"`
	SucursalRecogidaID   string  `json:"sucursal_recogida_id"   validate:"required,uuid"`
	SucursalDevolucionID string  `json:"sucursal_devolucion_id" validate:"required,uuid"`
	FechaInicio          string  `json:"fecha_inicio"           validate:"required"`
	FechaFin             string  `json:"fecha_fin"              validate:"required"`
	CombustibleRecogida  string  `json:"combustible_recogida"   validate:"required,oneof=Vacio 1/4 1/2 3/4 Lleno"`
	Observaciones        *string `json:"observaciones"`
}

type PagoInicialRequest struct {
	Monto    decimal.Decimal `json:"monto"     validate:"required"`
	TipoPago string          `json:"tipo_pago" validate:"required,oneof=Efectivo 'Tarjeta de Credito' 'Tarjeta de Debito' Transferencia"`
	Concepto string          `json:"concepto"  validate:"required,oneof=Anticipo Deposito"`
}

// CrearAlquilerConPagoRequest is the atomic create-with-initial-payment body.
// The sum of Pagos must equal the required advance plus deposit exactly.
type CrearAlquilerConPagoRequest struct {
	CrearAlquilerRequest
	Pagos []PagoInicialRequest `json:"pagos" validate:"required,min=1,dive"`
}

type CalcularPrecioRequest struct {
	ClienteID   string `json:"cliente_id"   validate:"required,uuid"`
	VehiculoID  string `json:"vehiculo_id"  validate:"required,uuid"`
	FechaInicio string `json:"fecha_inicio" validate:"required"`
	FechaFin    string `json:"fecha_fin"    validate:"required"`
}

type FinalizarAlquilerRequest struct {
	FechaDevolucionReal   string  `json:"fecha_devolucion_real" validate:"required"`
	CombustibleDevolucion string  `json:"combustible_devolucion" validate:"required,oneof=Vacio 1/4 1/2 3/4 Lleno"`
	Observaciones         *string `json:"observaciones"`
	// PagoFinal covers any outstanding balance; optional when nothing is owed.
	PagoFinal *PagoFinalRequest `json:"pago_final" validate:"omitempty"`
}

type PagoFinalRequest struct {
	Monto    decimal.Decimal `json:"monto"     validate:"required"`
	TipoPago string          `json:"tipo_pago" validate:"required,oneof=Efectivo 'Tarjeta de Credito' 'Tarjeta de Debito' Transferencia"`
}

type ActualizarAlquilerRequest struct {
	SucursalDevolucionID *string `json:"sucursal_devolucion_id" validate:"omitempty,uuid"`
	FechaFin             *string `json:"fecha_fin"`
	Observaciones        *string `json:"observaciones"`
}

type AlquilerFilter struct {
	Estado    string `form:"estado"`
	ClienteID string `form:"cliente_id" validate:"omitempty,uuid"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CotizacionResponse struct {
	DuracionDias          int             `json:"duracion_dias"`
	PrecioTotal           decimal.Decimal `json:"precio_total"`
	AnticipoRequerido     decimal.Decimal `json:"anticipo_requerido"`
	DepositoRequerido     decimal.Decimal `json:"deposito_requerido"`
	TotalInicialRequerido decimal.Decimal `json:"total_inicial_requerido"`
}

type AlquilerResponse struct {
	ID                    string          `json:"id"`
	ClienteID             string          `json:"cliente_id"`
	ClienteNombre         string          `json:"cliente_nombre,omitempty"`
	VehiculoID            string          `json:"vehiculo_id"`
	VehiculoPlaca         string          `json:"vehiculo_placa,omitempty"`
	SucursalRecogidaID    string          `json:"sucursal_recogida_id"`
	SucursalDevolucionID  string          `json:"sucursal_devolucion_id"`
	FechaInicio           string          `json:"fecha_inicio"`
	FechaFin              string          `json:"fecha_fin"`
	FechaDevolucionReal   *string         `json:"fecha_devolucion_real"`
	Estado                string          `json:"estado"`
	PrecioTotal           decimal.Decimal `json:"precio_total"`
	CombustibleRecogida   string          `json:"combustible_recogida"`
	CombustibleDevolucion *string         `json:"combustible_devolucion"`
	Observaciones         *string         `json:"observaciones"`
	Pagos                 []PagoResponse  `json:"pagos,omitempty"`
	CreatedAt             string          `json:"created_at"`
}

type AlquilerListResponse struct {
	Data  []AlquilerResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// FinalizarAlquilerResponse summarizes the settlement of a finished rental.
type FinalizarAlquilerResponse struct {
	Alquiler         AlquilerResponse `json:"alquiler"`
	CargoRetraso     decimal.Decimal  `json:"cargo_retraso"`
	CargoCombustible decimal.Decimal  `json:"cargo_combustible"`
	TotalACubrir     decimal.Decimal  `json:"total_a_cubrir"`
	Reembolso        decimal.Decimal  `json:"reembolso"`
	FacturaID        *string          `json:"factura_id"`
}
