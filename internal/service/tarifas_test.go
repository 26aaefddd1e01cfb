package service_test

import (
	"testing"
	"time"

	"github.com/Neith21/AutoRent-Leon/internal/model"
	"github.com/Neith21/AutoRent-Leon/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 3, 10, 10, 0, 0, 0, time.Local)

func TestDuracionDias_BloquesDe24Horas(t *testing.T) {
	cases := []struct {
		nombre string
		fin    time.Time
		dias   int
	}{
		{"una hora cuenta como un dia", base.Add(1 * time.Hour), 1},
		{"exactamente 24h", base.Add(24 * time.Hour), 1},
		{"24h y un minuto redondea a 2", base.Add(24*time.Hour + time.Minute), 2},
		{"tres dias exactos", base.Add(72 * time.Hour), 3},
		{"tres dias y media hora", base.Add(72*time.Hour + 30*time.Minute), 4},
	}
	for _, tc := range cases {
		t.Run(tc.nombre, func(t *testing.T) {
			dias, err := service.DuracionDias(base, tc.fin)
			require.NoError(t, err)
			assert.Equal(t, tc.dias, dias)
		})
	}
}

func TestDuracionDias_RangoInvalido(t *testing.T) {
	_, err := service.DuracionDias(base, base)
	assert.ErrorIs(t, err, service.ErrRangoFechasInvalido)

	_, err = service.DuracionDias(base, base.Add(-time.Hour))
	assert.ErrorIs(t, err, service.ErrRangoFechasInvalido)
}

func TestAnticipoRequerido_Bandas(t *testing.T) {
	total := decimal.NewFromInt(300)

	// Hasta 5 dias: 50%
	assert.Equal(t, "150", service.AnticipoRequerido(total, 5).String())
	// Mas de 5 dias: 100%
	assert.Equal(t, "300", service.AnticipoRequerido(total, 6).String())
	// Mitades no enteras se redondean a 2 decimales
	assert.Equal(t, "62.5", service.AnticipoRequerido(decimal.NewFromInt(125), 3).String())
}

func TestDepositoRequerido_PorTipoCliente(t *testing.T) {
	assert.True(t, service.DepositoRequerido(model.ClienteNacional).IsZero())
	assert.Equal(t, "100", service.DepositoRequerido(model.ClienteExtranjero).String())
}

func TestLimiteAlquileres_PorTipoCliente(t *testing.T) {
	assert.Equal(t, 5, service.LimiteAlquileres(model.ClienteNacional))
	assert.Equal(t, 3, service.LimiteAlquileres(model.ClienteExtranjero))
}

func TestCargoCombustible(t *testing.T) {
	// Dos niveles faltantes: Lleno → 1/2
	cargo, err := service.CargoCombustible(model.CombustibleLleno, model.CombustibleMedio)
	require.NoError(t, err)
	assert.Equal(t, "30", cargo.String())

	// Devolver con mas combustible no genera credito
	cargo, err = service.CargoCombustible(model.CombustibleCuarto, model.CombustibleLleno)
	require.NoError(t, err)
	assert.True(t, cargo.IsZero())

	// Mismo nivel, sin cargo
	cargo, err = service.CargoCombustible(model.CombustibleMedio, model.CombustibleMedio)
	require.NoError(t, err)
	assert.True(t, cargo.IsZero())

	_, err = service.CargoCombustible("Llenisimo", model.CombustibleMedio)
	assert.Error(t, err)
}

func TestDiasRetraso_ToleranciaReloj(t *testing.T) {
	fin := base

	// Dentro de la tolerancia de 5 minutos
	assert.Equal(t, 0, service.DiasRetraso(fin, fin.Add(4*time.Minute)))
	assert.Equal(t, 0, service.DiasRetraso(fin, fin.Add(5*time.Minute)))
	// Pasada la tolerancia, un dia entero
	assert.Equal(t, 1, service.DiasRetraso(fin, fin.Add(6*time.Minute)))
	// 76 horas tarde = 3 bloques de 24h + resto → 4 dias
	assert.Equal(t, 4, service.DiasRetraso(fin, fin.Add(76*time.Hour)))
	// Devolucion anticipada
	assert.Equal(t, 0, service.DiasRetraso(fin, fin.Add(-2*time.Hour)))
}

func TestCargoRetraso_Tramos(t *testing.T) {
	tarifa := decimal.NewFromInt(40)

	cases := []struct {
		dias  int
		cargo string
	}{
		{0, "0"},
		{1, "40"},
		{3, "120"},  // 3 dias a tarifa simple
		{4, "200"},  // 3×40 + 1×80
		{7, "440"},  // 3×40 + 4×80
		{10, "440"}, // tope en el cargo de 7 dias
	}
	for _, tc := range cases {
		assert.Equal(t, tc.cargo, service.CargoRetraso(tc.dias, tarifa).String(), "dias=%d", tc.dias)
	}
}
