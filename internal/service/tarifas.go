package service

import (
	"errors"
	"time"

	"github.com/Neith21/AutoRent-Leon/internal/model"

	"github.com/shopspring/decimal"
)

// Tariff constants for the rental engine. Amounts in USD.
var (
	// DepositoExtranjero is the flat refundable deposit charged to
	// foreign customers.
	DepositoExtranjero = decimal.NewFromInt(100)

	// CargoPorNivelCombustible is charged per missing fuel level at return.
	CargoPorNivelCombustible = decimal.NewFromInt(15)

	// ToleranciaPago absorbs rounding differences when comparing amounts.
	ToleranciaPago = decimal.NewFromFloat(0.01)
)

const (
	// UmbralAnticipoDias separates the 50% advance band from the 100% band.
	UmbralAnticipoDias = 5

	// Concurrent-rental limits per customer type.
	LimiteAlquileresNacional   = 5
	LimiteAlquileresExtranjero = 3

	// Overdue tier boundaries, in late days.
	retrasoDiasTarifaSimple = 3
	retrasoDiasTope         = 7

	// ToleranciaReloj forgives small clock skew on the reported return time.
	ToleranciaReloj = 5 * time.Minute
)

var ErrRangoFechasInvalido = errors.New("la fecha de fin debe ser posterior a la fecha de inicio")

// DuracionDias computes billable rental days: whole 24h blocks, plus one
// for any partial day remaining, never less than 1.
func DuracionDias(inicio, fin time.Time) (int, error) {
	if !fin.After(inicio) {
		return 0, ErrRangoFechasInvalido
	}
	span := fin.Sub(inicio)
	dias := int(span / (24 * time.Hour))
	if span%(24*time.Hour) > 0 {
		dias++
	}
	if dias < 1 {
		dias = 1
	}
	return dias, nil
}

// AnticipoRequerido computes the mandatory advance: 50% of the total for
// rentals of up to UmbralAnticipoDias days, 100% beyond that.
func AnticipoRequerido(precioTotal decimal.Decimal, dias int) decimal.Decimal {
	if dias <= UmbralAnticipoDias {
		return precioTotal.Div(decimal.NewFromInt(2)).Round(2)
	}
	return precioTotal.Round(2)
}

// DepositoRequerido returns the refundable deposit for the customer type.
func DepositoRequerido(tipoCliente string) decimal.Decimal {
	if tipoCliente == model.ClienteExtranjero {
		return DepositoExtranjero
	}
	return decimal.Zero
}

// LimiteAlquileres returns the max concurrent active/reserved rentals
// allowed for the customer type.
func LimiteAlquileres(tipoCliente string) int {
	if tipoCliente == model.ClienteExtranjero {
		return LimiteAlquileresExtranjero
	}
	return LimiteAlquileresNacional
}

// CargoCombustible charges CargoPorNivelCombustible for each fuel level
// the vehicle came back below its pickup level. Returning with more fuel
// yields no charge and no credit.
func CargoCombustible(recogida, devolucion string) (decimal.Decimal, error) {
	nivelRecogida := model.NivelCombustible(recogida)
	nivelDevolucion := model.NivelCombustible(devolucion)
	if nivelRecogida < 0 || nivelDevolucion < 0 {
		return decimal.Zero, errors.New("nivel de combustible desconocido")
	}
	faltante := nivelRecogida - nivelDevolucion
	if faltante <= 0 {
		return decimal.Zero, nil
	}
	return CargoPorNivelCombustible.Mul(decimal.NewFromInt(int64(faltante))), nil
}

// DiasRetraso converts lateness into whole billable days: any positive
// lateness beyond the clock tolerance counts at least one day, and each
// started 24h block counts as a full day.
func DiasRetraso(fechaFin, devolucionReal time.Time) int {
	retraso := devolucionReal.Sub(fechaFin)
	if retraso <= ToleranciaReloj {
		return 0
	}
	dias := int(retraso / (24 * time.Hour))
	if retraso%(24*time.Hour) > 0 {
		dias++
	}
	if dias < 1 {
		dias = 1
	}
	return dias
}

// CargoRetraso prices late days in two tiers: the first three at the
// daily rate, days four through seven at double rate. The charge is
// capped at the seven-day amount.
func CargoRetraso(diasRetraso int, precioDiario decimal.Decimal) decimal.Decimal {
	if diasRetraso <= 0 {
		return decimal.Zero
	}
	diasSimples := diasRetraso
	if diasSimples > retrasoDiasTarifaSimple {
		diasSimples = retrasoDiasTarifaSimple
	}
	diasDobles := diasRetraso - retrasoDiasTarifaSimple
	if diasDobles < 0 {
		diasDobles = 0
	}
	if diasDobles > retrasoDiasTope-retrasoDiasTarifaSimple {
		diasDobles = retrasoDiasTope - retrasoDiasTarifaSimple
	}
	cargo := precioDiario.Mul(decimal.NewFromInt(int64(diasSimples)))
	cargo = cargo.Add(precioDiario.Mul(decimal.NewFromInt(2)).Mul(decimal.NewFromInt(int64(diasDobles))))
	return cargo.Round(2)
}
