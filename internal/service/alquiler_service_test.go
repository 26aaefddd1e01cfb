package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Neith21/AutoRent-Leon/internal/dto"
	"github.com/Neith21/AutoRent-Leon/internal/model"
	"github.com/Neith21/AutoRent-Leon/internal/repository"
	"github.com/Neith21/AutoRent-Leon/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubAlquilerRepo is an in-memory AlquilerRepository for testing.
type stubAlquilerRepo struct {
	alquileres map[uuid.UUID]*model.Alquiler
}

func newStubAlquilerRepo() *stubAlquilerRepo {
	return &stubAlquilerRepo{alquileres: make(map[uuid.UUID]*model.Alquiler)}
}

func (r *stubAlquilerRepo) Create(_ context.Context, _ *gorm.DB, a *model.Alquiler) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.alquileres[a.ID] = a
	return nil
}

func (r *stubAlquilerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Alquiler, error) {
	a, ok := r.alquileres[id]
	if !ok || !a.Activo {
		return nil, errors.New("not found")
	}
	return a, nil
}

func (r *stubAlquilerRepo) FindByIDForUpdate(ctx context.Context, _ *gorm.DB, id uuid.UUID) (*model.Alquiler, error) {
	return r.FindByID(ctx, id)
}

func (r *stubAlquilerRepo) ExisteConflicto(_ context.Context, _ *gorm.DB, vehiculoID uuid.UUID, inicio, fin time.Time, excluir *uuid.UUID) (bool, error) {
	for _, a := range r.alquileres {
		if !a.Activo || a.VehiculoID != vehiculoID {
			continue
		}
		if excluir != nil && a.ID == *excluir {
			continue
		}
		if a.Estado != model.AlquilerActivo && a.Estado != model.AlquilerReservado {
			continue
		}
		if !a.FechaFin.Before(inicio) && !a.FechaInicio.After(fin) {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubAlquilerRepo) CountVigentesPorCliente(_ context.Context, _ *gorm.DB, clienteID uuid.UUID) (int64, error) {
	var count int64
	for _, a := range r.alquileres {
		if a.Activo && a.ClienteID == clienteID &&
			(a.Estado == model.AlquilerActivo || a.Estado == model.AlquilerReservado) {
			count++
		}
	}
	return count, nil
}

func (r *stubAlquilerRepo) List(_ context.Context, filter dto.AlquilerFilter) ([]model.Alquiler, int64, error) {
	var out []model.Alquiler
	for _, a := range r.alquileres {
		if !a.Activo {
			continue
		}
		if filter.Estado != "" && filter.Estado != "all" && a.Estado != filter.Estado {
			continue
		}
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func (r *stubAlquilerRepo) Update(_ context.Context, _ *gorm.DB, a *model.Alquiler) error {
	r.alquileres[a.ID] = a
	return nil
}

func (r *stubAlquilerRepo) SoftDelete(_ context.Context, _ *gorm.DB, id uuid.UUID, modifiedBy *uuid.UUID) error {
	a, ok := r.alquileres[id]
	if !ok {
		return errors.New("not found")
	}
	a.Activo = false
	a.ModifiedBy = modifiedBy
	return nil
}

func (r *stubAlquilerRepo) MarcarRetrasados(_ context.Context, corte time.Time) (int64, error) {
	var n int64
	for _, a := range r.alquileres {
		if a.Activo && a.Estado == model.AlquilerActivo && a.FechaFin.Before(corte) {
			a.Estado = model.AlquilerRetrasado
			n++
		}
	}
	return n, nil
}

func (r *stubAlquilerRepo) DB() *gorm.DB { return nil }

var _ repository.AlquilerRepository = (*stubAlquilerRepo)(nil)

// stubPagoRepo keeps the ledger as an append-only slice, like the real table.
type stubPagoRepo struct {
	pagos []model.Pago
}

func (r *stubPagoRepo) Create(_ context.Context, _ *gorm.DB, p *model.Pago) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.pagos = append(r.pagos, *p)
	return nil
}

func (r *stubPagoRepo) ListByAlquiler(_ context.Context, alquilerID uuid.UUID) ([]model.Pago, error) {
	var out []model.Pago
	for _, p := range r.pagos {
		if p.Activo && p.AlquilerID == alquilerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubPagoRepo) List(_ context.Context, _ dto.PagoFilter) ([]model.Pago, int64, error) {
	return r.pagos, int64(len(r.pagos)), nil
}

func (r *stubPagoRepo) SumPorConceptos(_ context.Context, _ *gorm.DB, alquilerID uuid.UUID, conceptos []string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range r.pagos {
		if !p.Activo || p.AlquilerID != alquilerID {
			continue
		}
		for _, c := range conceptos {
			if p.Concepto == c {
				sum = sum.Add(p.Monto)
				break
			}
		}
	}
	return sum, nil
}

func (r *stubPagoRepo) Existe(_ context.Context, _ *gorm.DB, alquilerID uuid.UUID, concepto string, monto decimal.Decimal) (bool, error) {
	for _, p := range r.pagos {
		if p.Activo && p.AlquilerID == alquilerID && p.Concepto == concepto && p.Monto.Equal(monto) {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubPagoRepo) SoftDelete(_ context.Context, _ uuid.UUID) error { return nil }

// porConcepto counts active ledger rows for one concepto.
func (r *stubPagoRepo) porConcepto(alquilerID uuid.UUID, concepto string) []model.Pago {
	var out []model.Pago
	for _, p := range r.pagos {
		if p.Activo && p.AlquilerID == alquilerID && p.Concepto == concepto {
			out = append(out, p)
		}
	}
	return out
}

var _ repository.PagoRepository = (*stubPagoRepo)(nil)

// stubVehiculoRepo is an in-memory VehiculoRepository.
type stubVehiculoRepo struct {
	vehiculos map[uuid.UUID]*model.Vehiculo
}

func newStubVehiculoRepo() *stubVehiculoRepo {
	return &stubVehiculoRepo{vehiculos: make(map[uuid.UUID]*model.Vehiculo)}
}

func (r *stubVehiculoRepo) Create(_ context.Context, v *model.Vehiculo) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.vehiculos[v.ID] = v
	return nil
}

func (r *stubVehiculoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Vehiculo, error) {
	v, ok := r.vehiculos[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return v, nil
}

func (r *stubVehiculoRepo) FindByIDForUpdate(ctx context.Context, _ *gorm.DB, id uuid.UUID) (*model.Vehiculo, error) {
	return r.FindByID(ctx, id)
}

func (r *stubVehiculoRepo) FindByPlaca(_ context.Context, placa string) (*model.Vehiculo, error) {
	for _, v := range r.vehiculos {
		if v.Placa == placa {
			return v, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubVehiculoRepo) List(_ context.Context, _ dto.VehiculoFilter) ([]model.Vehiculo, int64, error) {
	return nil, 0, nil
}

func (r *stubVehiculoRepo) Update(_ context.Context, v *model.Vehiculo) error {
	r.vehiculos[v.ID] = v
	return nil
}

func (r *stubVehiculoRepo) UpdateEstadoTx(_ context.Context, _ *gorm.DB, id uuid.UUID, estado string) error {
	v, ok := r.vehiculos[id]
	if !ok {
		return errors.New("not found")
	}
	v.Estado = estado
	return nil
}

func (r *stubVehiculoRepo) SoftDelete(_ context.Context, id uuid.UUID, _ *uuid.UUID) error {
	delete(r.vehiculos, id)
	return nil
}

var _ repository.VehiculoRepository = (*stubVehiculoRepo)(nil)

// stubClienteRepo is an in-memory ClienteRepository.
type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func (r *stubClienteRepo) FindByDocumento(_ context.Context, tipo, numero string) (*model.Cliente, error) {
	for _, c := range r.clientes {
		if c.TipoDocumento == tipo && c.NumeroDocumento == numero {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubClienteRepo) FindByEmail(_ context.Context, email string) (*model.Cliente, error) {
	for _, c := range r.clientes {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubClienteRepo) List(_ context.Context, _ dto.ClienteFilter) ([]model.Cliente, int64, error) {
	return nil, 0, nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) SoftDelete(_ context.Context, id uuid.UUID, _ *uuid.UUID) error {
	delete(r.clientes, id)
	return nil
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

// stubFacturaRepo is an in-memory FacturaRepository. createErrs is drained
// one error per Create call to simulate insert failures.
type stubFacturaRepo struct {
	facturas    map[uuid.UUID]*model.Factura // by AlquilerID
	createErrs  []error
	createCalls int
}

func newStubFacturaRepo() *stubFacturaRepo {
	return &stubFacturaRepo{facturas: make(map[uuid.UUID]*model.Factura)}
}

func (r *stubFacturaRepo) Create(_ context.Context, _ *gorm.DB, f *model.Factura) error {
	r.createCalls++
	if len(r.createErrs) > 0 {
		err := r.createErrs[0]
		r.createErrs = r.createErrs[1:]
		if err != nil {
			return err
		}
	}
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	r.facturas[f.AlquilerID] = f
	return nil
}

func (r *stubFacturaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Factura, error) {
	for _, f := range r.facturas {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubFacturaRepo) FindByAlquiler(_ context.Context, _ *gorm.DB, alquilerID uuid.UUID) (*model.Factura, error) {
	f, ok := r.facturas[alquilerID]
	if !ok {
		return nil, errors.New("not found")
	}
	return f, nil
}

func (r *stubFacturaRepo) List(_ context.Context, _, _ int) ([]model.Factura, int64, error) {
	return nil, 0, nil
}

func (r *stubFacturaRepo) Update(_ context.Context, _ *gorm.DB, f *model.Factura) error {
	r.facturas[f.AlquilerID] = f
	return nil
}

var _ repository.FacturaRepository = (*stubFacturaRepo)(nil)

// ── AlquilerService factory for tests ────────────────────────────────────────

type alquilerFixture struct {
	svc          service.AlquilerService
	alquilerRepo *stubAlquilerRepo
	pagoRepo     *stubPagoRepo
	vehiculoRepo *stubVehiculoRepo
	clienteRepo  *stubClienteRepo
	facturaRepo  *stubFacturaRepo
}

func buildAlquilerSvc() *alquilerFixture {
	f := &alquilerFixture{
		alquilerRepo: newStubAlquilerRepo(),
		pagoRepo:     &stubPagoRepo{},
		vehiculoRepo: newStubVehiculoRepo(),
		clienteRepo:  newStubClienteRepo(),
		facturaRepo:  newStubFacturaRepo(),
	}
	f.svc = service.NewAlquilerService(
		f.alquilerRepo, f.pagoRepo, f.vehiculoRepo, f.clienteRepo, f.facturaRepo, nil, nil)
	return f
}

func (f *alquilerFixture) seedCliente(tipo string) *model.Cliente {
	c := &model.Cliente{
		Nombres:         "Carlos",
		Apellidos:       "Mendoza",
		TipoDocumento:   "DUI",
		NumeroDocumento: uuid.NewString()[:8],
		TipoCliente:     tipo,
		Estado:          model.ClienteActivo,
		Activo:          true,
		Email:           uuid.NewString()[:8] + "@mail.test",
	}
	_ = f.clienteRepo.Create(context.Background(), c)
	return c
}

func (f *alquilerFixture) seedVehiculo(precioDiario int64) *model.Vehiculo {
	v := &model.Vehiculo{
		Placa:        "P" + uuid.NewString()[:6],
		PrecioDiario: decimal.NewFromInt(precioDiario),
		Estado:       model.VehiculoDisponible,
		Activo:       true,
	}
	_ = f.vehiculoRepo.Create(context.Background(), v)
	return v
}

// seedAlquiler plants a rental directly in the repo, bypassing creation.
func (f *alquilerFixture) seedAlquiler(cliente *model.Cliente, vehiculo *model.Vehiculo, inicio, fin time.Time, estado string, total decimal.Decimal) *model.Alquiler {
	a := &model.Alquiler{
		ClienteID:            cliente.ID,
		VehiculoID:           vehiculo.ID,
		SucursalRecogidaID:   uuid.New(),
		SucursalDevolucionID: uuid.New(),
		FechaInicio:          inicio,
		FechaFin:             fin,
		Estado:               estado,
		PrecioTotal:          total,
		CombustibleRecogida:  model.CombustibleLleno,
		Activo:               true,
	}
	_ = f.alquilerRepo.Create(context.Background(), nil, a)
	return a
}

func (f *alquilerFixture) pagar(alquilerID uuid.UUID, concepto string, monto int64) {
	_ = f.pagoRepo.Create(context.Background(), nil, &model.Pago{
		AlquilerID: alquilerID,
		Monto:      decimal.NewFromInt(monto),
		TipoPago:   "Efectivo",
		Concepto:   concepto,
		FechaPago:  time.Now(),
		Activo:     true,
	})
}

func crearReq(cliente *model.Cliente, vehiculo *model.Vehiculo, inicio, fin time.Time) dto.CrearAlquilerRequest {
	return dto.CrearAlquilerRequest{
		ClienteID:            cliente.ID.String(),
		VehiculoID:           vehiculo.ID.String(),
		SucursalRecogidaID:   uuid.NewString(),
		SucursalDevolucionID: uuid.NewString(),
		FechaInicio:          inicio.Format(dto.FormatoFecha),
		FechaFin:             fin.Format(dto.FormatoFecha),
		CombustibleRecogida:  model.CombustibleLleno,
	}
}

// ── Creation ──────────────────────────────────────────────────────────────────

func TestCrearReserva_OK(t *testing.T) {
	f := buildAlquilerSvc()
	cliente := f.seedCliente(model.ClienteNacional)
	vehiculo := f.seedVehiculo(40)
	inicio := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	fin := inicio.Add(3 * 24 * time.Hour)

	resp, err := f.svc.CrearReserva(context.Background(), uuid.New(), crearReq(cliente, vehiculo, inicio, fin))
	require.NoError(t, err)
	assert.Equal(t, model.AlquilerReservado, resp.Estado)
	assert.Equal(t, "120", resp.PrecioTotal.String()) // 3 dias × 40
	assert.Equal(t, model.VehiculoReservado, vehiculo.Estado)
}

func TestCrearReserva_ConflictoDeFechas(t *testing.T) {
	f := buildAlquilerSvc()
	cliente := f.seedCliente(model.ClienteNacional)
	otro := f.seedCliente(model.ClienteNacional)
	vehiculo := f.seedVehiculo(40)
	inicio := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	fin := inicio.Add(3 * 24 * time.Hour)

	f.seedAlquiler(otro, vehiculo, inicio, fin, model.AlquilerActivo, decimal.NewFromInt(120))

	// Overlapping range on the same vehicle
	_, err := f.svc.CrearReserva(context.Background(), uuid.New(),
		crearReq(cliente, vehiculo, inicio.Add(24*time.Hour), fin.Add(24*time.Hour)))
	assert.ErrorIs(t, err, service.ErrVehiculoNoDisponible)
}

func TestCrearReserva_ClienteListaNegra(t *testing.T) {
	f := buildAlquilerSvc()
	cliente := f.seedCliente(model.ClienteNacional)
	cliente.Estado = model.ClienteListaNegra
	vehiculo := f.seedVehiculo(40)
	inicio := time.Now().Add(24 * time.Hour).Truncate(time.Minute)

	_, err := f.svc.CrearReserva(context.Background(), uuid.New(),
		crearReq(cliente, vehiculo, inicio, inicio.Add(48*time.Hour)))
	assert.ErrorContains(t, err, "lista negra")
}

func TestCrearReserva_LimiteDeAlquileresVigentes(t *testing.T) {
	f := buildAlquilerSvc()
	cliente := f.seedCliente(model.ClienteExtranjero) // limite 3
	inicio := time.Now().Add(24 * time.Hour).Truncate(time.Minute)

	for i := 0; i < 3; i++ {
		v := f.seedVehiculo(40)
		f.seedAlquiler(cliente, v, inicio, inicio.Add(48*time.Hour), model.AlquilerActivo, decimal.NewFromInt(80))
	}

	vehiculo := f.seedVehiculo(40)
	_, err := f.svc.CrearReserva(context.Background(), uuid.New(),
		crearReq(cliente, vehiculo, inicio, inicio.Add(48*time.Hour)))
	assert.ErrorContains(t, err, "límite de 3")
}

func TestCrearConPagoInicial_ActivaYRegistraPagos(t *testing.T) {
	f := buildAlquilerSvc()
	cliente := f.seedCliente(model.ClienteExtranjero)
	vehiculo := f.seedVehiculo(40)
	inicio := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	fin := inicio.Add(3 * 24 * time.Hour) // total 120, anticipo 60, deposito 100

	resp, err := f.svc.CrearConPagoInicial(context.Background(), uuid.New(), dto.CrearAlquilerConPagoRequest{
		CrearAlquilerRequest: crearReq(cliente, vehiculo, inicio, fin),
		Pagos: []dto.PagoInicialRequest{
			{Monto: decimal.NewFromInt(60), TipoPago: "Efectivo", Concepto: model.ConceptoAnticipo},
			{Monto: decimal.NewFromInt(100), TipoPago: "Tarjeta de Credito", Concepto: model.ConceptoDeposito},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, model.AlquilerActivo, resp.Estado)
	assert.Len(t, resp.Pagos, 2)
	assert.Equal(t, model.VehiculoAlquilado, vehiculo.Estado)
}

func TestCrearConPagoInicial_AnticipoInexacto(t *testing.T) {
	f := buildAlquilerSvc()
	cliente := f.seedCliente(model.ClienteNacional)
	vehiculo := f.seedVehiculo(40)
	inicio := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	fin := inicio.Add(3 * 24 * time.Hour) // anticipo requerido: 60

	_, err := f.svc.CrearConPagoInicial(context.Background(), uuid.New(), dto.CrearAlquilerConPagoRequest{
		CrearAlquilerRequest: crearReq(cliente, vehiculo, inicio, fin),
		Pagos: []dto.PagoInicialRequest{
			{Monto: decimal.NewFromInt(59), TipoPago: "Efectivo", Concepto: model.ConceptoAnticipo},
		},
	})
	assert.ErrorContains(t, err, "el anticipo debe ser exactamente 60.00")
}

func TestCrearConPagoInicial_NacionalNoPagaDeposito(t *testing.T) {
	f := buildAlquilerSvc()
	cliente := f.seedCliente(model.ClienteNacional)
	vehiculo := f.seedVehiculo(40)
	inicio := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	fin := inicio.Add(3 * 24 * time.Hour)

	_, err := f.svc.CrearConPagoInicial(context.Background(), uuid.New(), dto.CrearAlquilerConPagoRequest{
		CrearAlquilerRequest: crearReq(cliente, vehiculo, inicio, fin),
		Pagos: []dto.PagoInicialRequest{
			{Monto: decimal.NewFromInt(60), TipoPago: "Efectivo", Concepto: model.ConceptoAnticipo},
			{Monto: decimal.NewFromInt(100), TipoPago: "Efectivo", Concepto: model.ConceptoDeposito},
		},
	})
	assert.ErrorContains(t, err, "nacional no paga depósito")
}

// Anticipo for a rental longer than 5 days is the full price.
func TestCrearConPagoInicial_AnticipoCompletoMasDeCincoDias(t *testing.T) {
	f := buildAlquilerSvc()
	cliente := f.seedCliente(model.ClienteNacional)
	vehiculo := f.seedVehiculo(40)
	inicio := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	fin := inicio.Add(6 * 24 * time.Hour) // total 240, anticipo 240

	_, err := f.svc.CrearConPagoInicial(context.Background(), uuid.New(), dto.CrearAlquilerConPagoRequest{
		CrearAlquilerRequest: crearReq(cliente, vehiculo, inicio, fin),
		Pagos: []dto.PagoInicialRequest{
			{Monto: decimal.NewFromInt(120), TipoPago: "Efectivo", Concepto: model.ConceptoAnticipo},
		},
	})
	assert.ErrorContains(t, err, "el anticipo debe ser exactamente 240.00")
}

// ── AgregarPago ───────────────────────────────────────────────────────────────

func TestAgregarPago_ActivaReservaCubierta(t *testing.T) {
	f := buildAlquilerSvc()
	cliente := f.seedCliente(model.ClienteExtranjero)
	vehiculo := f.seedVehiculo(40)
	vehiculo.Estado = model.VehiculoReservado
	inicio := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	fin := inicio.Add(3 * 24 * time.Hour)
	a := f.seedAlquiler(cliente, vehiculo, inicio, fin, model.AlquilerReservado, decimal.NewFromInt(120))

	// Anticipo alone does not activate: the deposit is still owed
	_, err := f.svc.AgregarPago(context.Background(), uuid.New(), a.ID, dto.AgregarPagoRequest{
		Monto: decimal.NewFromInt(60), TipoPago: "Efectivo", Concepto: model.ConceptoAnticipo,
	})
	require.NoError(t, err)
	assert.Equal(t, model.AlquilerReservado, a.Estado)

	_, err = f.svc.AgregarPago(context.Background(), uuid.New(), a.ID, dto.AgregarPagoRequest{
		Monto: decimal.NewFromInt(100), TipoPago: "Efectivo", Concepto: model.ConceptoDeposito,
	})
	require.NoError(t, err)
	assert.Equal(t, model.AlquilerActivo, a.Estado)
	assert.Equal(t, model.VehiculoAlquilado, vehiculo.Estado)
}

func TestAgregarPago_AnticipoExcedente(t *testing.T) {
	f := buildAlquilerSvc()
	cliente := f.seedCliente(model.ClienteNacional)
	vehiculo := f.seedVehiculo(40)
	inicio := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	fin := inicio.Add(3 * 24 * time.Hour)
	a := f.seedAlquiler(cliente, vehiculo, inicio, fin, model.AlquilerReservado, decimal.NewFromInt(120))
	f.pagar(a.ID, model.ConceptoAnticipo, 50)

	_, err := f.svc.AgregarPago(context.Background(), uuid.New(), a.ID, dto.AgregarPagoRequest{
		Monto: decimal.NewFromInt(20), TipoPago: "Efectivo", Concepto: model.ConceptoAnticipo,
	})
	assert.ErrorContains(t, err, "excede el requerido: restan 10.00")
}

func TestAgregarPago_AlquilerFinalizado(t *testing.T) {
	f := buildAlquilerSvc()
	cliente := f.seedCliente(model.ClienteNacional)
	vehiculo := f.seedVehiculo(40)
	inicio := time.Now().Add(-72 * time.Hour).Truncate(time.Minute)
	a := f.seedAlquiler(cliente, vehiculo, inicio, inicio.Add(48*time.Hour), model.AlquilerFinalizado, decimal.NewFromInt(80))

	_, err := f.svc.AgregarPago(context.Background(), uuid.New(), a.ID, dto.AgregarPagoRequest{
		Monto: decimal.NewFromInt(10), TipoPago: "Efectivo", Concepto: model.ConceptoCargoAdicional,
	})
	assert.ErrorContains(t, err, "ya está finalizado")
}

// ── Finalizar ─────────────────────────────────────────────────────────────────

func TestFinalizar_EnTiempoConReembolsoDeDeposito(t *testing.T) {
	f := buildAlquilerSvc()
	cliente := f.seedCliente(model.ClienteExtranjero)
	vehiculo := f.seedVehiculo(40)
	vehiculo.Estado = model.VehiculoAlquilado

	fin := time.Now().Add(-time.Hour).Truncate(time.Minute)
	inicio := fin.Add(-6 * 24 * time.Hour)
	a := f.seedAlquiler(cliente, vehiculo, inicio, fin, model.AlquilerActivo, decimal.NewFromInt(240))
	f.pagar(a.ID, model.ConceptoAnticipo, 240) // > 5 dias: anticipo = 100%
	f.pagar(a.ID, model.ConceptoDeposito, 100)

	resp, err := f.svc.Finalizar(context.Background(), uuid.New(), a.ID, dto.FinalizarAlquilerRequest{
		FechaDevolucionReal:   fin.Format(dto.FormatoFecha),
		CombustibleDevolucion: model.CombustibleLleno,
	})
	require.NoError(t, err)
	assert.True(t, resp.CargoRetraso.IsZero())
	assert.True(t, resp.CargoCombustible.IsZero())
	assert.Equal(t, "240", resp.TotalACubrir.String())
	assert.Equal(t, "100", resp.Reembolso.String())
	assert.Equal(t, model.AlquilerFinalizado, a.Estado)
	assert.Equal(t, model.VehiculoDisponible, vehiculo.Estado)

	// Refund posted as a single negative ledger row
	reembolsos := f.pagoRepo.porConcepto(a.ID, model.ConceptoReembolso)
	require.Len(t, reembolsos, 1)
	assert.Equal(t, "-100", reembolsos[0].Monto.String())

	// Invoice created as Emitida for the final total
	factura, err := f.facturaRepo.FindByAlquiler(context.Background(), nil, a.ID)
	require.NoError(t, err)
	assert.Equal(t, model.FacturaEmitida, factura.Estado)
	assert.Equal(t, "240", factura.MontoTotal.String())
	require.NotNil(t, resp.FacturaID)
	assert.Equal(t, factura.ID.String(), *resp.FacturaID)
}

func TestFinalizar_ConRetrasoYCombustible(t *testing.T) {
	f := buildAlquilerSvc()
	cliente := f.seedCliente(model.ClienteNacional)
	vehiculo := f.seedVehiculo(40)
	vehiculo.Estado = model.VehiculoAlquilado

	fin := time.Now().Add(-100 * time.Hour).Truncate(time.Minute)
	inicio := fin.Add(-3 * 24 * time.Hour)
	a := f.seedAlquiler(cliente, vehiculo, inicio, fin, model.AlquilerRetrasado, decimal.NewFromInt(120))
	f.pagar(a.ID, model.ConceptoAnticipo, 60)

	// 76h late → 4 dias: 3×40 + 1×80 = 200; Lleno → 1/2: 2 niveles × 15 = 30
	devolucion := fin.Add(76 * time.Hour)
	resp, err := f.svc.Finalizar(context.Background(), uuid.New(), a.ID, dto.FinalizarAlquilerRequest{
		FechaDevolucionReal:   devolucion.Format(dto.FormatoFecha),
		CombustibleDevolucion: model.CombustibleMedio,
		PagoFinal:             &dto.PagoFinalRequest{Monto: decimal.NewFromInt(290), TipoPago: "Efectivo"},
	})
	require.NoError(t, err)
	assert.Equal(t, "200", resp.CargoRetraso.String())
	assert.Equal(t, "30", resp.CargoCombustible.String())
	assert.Equal(t, "350", resp.TotalACubrir.String())
	assert.True(t, resp.Reembolso.IsZero())
	assert.Equal(t, "350", a.PrecioTotal.String())
}

func TestFinalizar_PagoInsuficiente(t *testing.T) {
	f := buildAlquilerSvc()
	cliente := f.seedCliente(model.ClienteNacional)
	vehiculo := f.seedVehiculo(40)

	fin := time.Now().Add(-2 * time.Hour).Truncate(time.Minute)
	inicio := fin.Add(-3 * 24 * time.Hour)
	a := f.seedAlquiler(cliente, vehiculo, inicio, fin, model.AlquilerActivo, decimal.NewFromInt(120))
	f.pagar(a.ID, model.ConceptoAnticipo, 60)

	_, err := f.svc.Finalizar(context.Background(), uuid.New(), a.ID, dto.FinalizarAlquilerRequest{
		FechaDevolucionReal:   fin.Format(dto.FormatoFecha),
		CombustibleDevolucion: model.CombustibleLleno,
	})
	assert.ErrorContains(t, err, "pago insuficiente: faltan 60.00")
}

// The deposit absorbs part of the balance; only the remainder comes back.
func TestFinalizar_DepositoAplicadoAlSaldo(t *testing.T) {
	f := buildAlquilerSvc()
	cliente := f.seedCliente(model.ClienteExtranjero)
	vehiculo := f.seedVehiculo(40)

	fin := time.Now().Add(-26 * time.Hour).Truncate(time.Minute)
	inicio := fin.Add(-3 * 24 * time.Hour)
	a := f.seedAlquiler(cliente, vehiculo, inicio, fin, model.AlquilerActivo, decimal.NewFromInt(120))
	f.pagar(a.ID, model.ConceptoAnticipo, 60)
	f.pagar(a.ID, model.ConceptoPagoFinal, 60)
	f.pagar(a.ID, model.ConceptoDeposito, 100)

	// ~26h late → 2 dias × 40 = 80 de cargo; saldo 80 cubierto por el deposito
	devolucion := fin.Add(26 * time.Hour)
	resp, err := f.svc.Finalizar(context.Background(), uuid.New(), a.ID, dto.FinalizarAlquilerRequest{
		FechaDevolucionReal:   devolucion.Format(dto.FormatoFecha),
		CombustibleDevolucion: model.CombustibleLleno,
	})
	require.NoError(t, err)
	assert.Equal(t, "80", resp.CargoRetraso.String())
	assert.Equal(t, "20", resp.Reembolso.String())

	reembolsos := f.pagoRepo.porConcepto(a.ID, model.ConceptoReembolso)
	require.Len(t, reembolsos, 1)
	assert.Equal(t, "-20", reembolsos[0].Monto.String())
}

func TestFinalizar_YaFinalizado(t *testing.T) {
	f := buildAlquilerSvc()
	cliente := f.seedCliente(model.ClienteNacional)
	vehiculo := f.seedVehiculo(40)
	fin := time.Now().Add(-2 * time.Hour).Truncate(time.Minute)
	a := f.seedAlquiler(cliente, vehiculo, fin.Add(-48*time.Hour), fin, model.AlquilerFinalizado, decimal.NewFromInt(80))

	_, err := f.svc.Finalizar(context.Background(), uuid.New(), a.ID, dto.FinalizarAlquilerRequest{
		FechaDevolucionReal:   fin.Format(dto.FormatoFecha),
		CombustibleDevolucion: model.CombustibleLleno,
	})
	assert.ErrorContains(t, err, "ya está finalizado")
}

func TestFinalizar_NoDuplicaPagoFinal(t *testing.T) {
	f := buildAlquilerSvc()
	cliente := f.seedCliente(model.ClienteNacional)
	vehiculo := f.seedVehiculo(40)
	fin := time.Now().Add(-2 * time.Hour).Truncate(time.Minute)
	inicio := fin.Add(-3 * 24 * time.Hour)
	a := f.seedAlquiler(cliente, vehiculo, inicio, fin, model.AlquilerActivo, decimal.NewFromInt(120))
	f.pagar(a.ID, model.ConceptoAnticipo, 60)
	f.pagar(a.ID, model.ConceptoPagoFinal, 60) // already posted by a previous attempt

	_, err := f.svc.Finalizar(context.Background(), uuid.New(), a.ID, dto.FinalizarAlquilerRequest{
		FechaDevolucionReal:   fin.Format(dto.FormatoFecha),
		CombustibleDevolucion: model.CombustibleLleno,
		PagoFinal:             &dto.PagoFinalRequest{Monto: decimal.NewFromInt(60), TipoPago: "Efectivo"},
	})
	require.NoError(t, err)
	assert.Len(t, f.pagoRepo.porConcepto(a.ID, model.ConceptoPagoFinal), 1)
}

func TestFinalizar_DevolucionEnElFuturo(t *testing.T) {
	f := buildAlquilerSvc()
	futuro := time.Now().Add(48 * time.Hour)

	_, err := f.svc.Finalizar(context.Background(), uuid.New(), uuid.New(), dto.FinalizarAlquilerRequest{
		FechaDevolucionReal:   futuro.Format(dto.FormatoFecha),
		CombustibleDevolucion: model.CombustibleLleno,
	})
	assert.ErrorContains(t, err, "no puede estar en el futuro")
}

func TestFinalizar_ReembolsaExcesoDePagoFinal(t *testing.T) {
	f := buildAlquilerSvc()
	cliente := f.seedCliente(model.ClienteNacional)
	vehiculo := f.seedVehiculo(40)
	fin := time.Now().Add(-time.Hour).Truncate(time.Minute)
	inicio := fin.Add(-3 * 24 * time.Hour)
	a := f.seedAlquiler(cliente, vehiculo, inicio, fin, model.AlquilerActivo, decimal.NewFromInt(120))
	f.pagar(a.ID, model.ConceptoAnticipo, 60)

	// Closing payment of 100 against an outstanding balance of 60
	resp, err := f.svc.Finalizar(context.Background(), uuid.New(), a.ID, dto.FinalizarAlquilerRequest{
		FechaDevolucionReal:   fin.Format(dto.FormatoFecha),
		CombustibleDevolucion: model.CombustibleLleno,
		PagoFinal:             &dto.PagoFinalRequest{Monto: decimal.NewFromInt(100), TipoPago: "Efectivo"},
	})
	require.NoError(t, err)
	assert.Equal(t, "120", resp.TotalACubrir.String())
	assert.Equal(t, "40", resp.Reembolso.String())

	reembolsos := f.pagoRepo.porConcepto(a.ID, model.ConceptoReembolso)
	require.Len(t, reembolsos, 1)
	assert.Equal(t, "-40", reembolsos[0].Monto.String())
}

func TestFinalizar_ReintentaNumeroFacturaDuplicado(t *testing.T) {
	f := buildAlquilerSvc()
	cliente := f.seedCliente(model.ClienteNacional)
	vehiculo := f.seedVehiculo(40)
	fin := time.Now().Add(-time.Hour).Truncate(time.Minute)
	inicio := fin.Add(-3 * 24 * time.Hour)
	a := f.seedAlquiler(cliente, vehiculo, inicio, fin, model.AlquilerActivo, decimal.NewFromInt(120))
	f.pagar(a.ID, model.ConceptoAnticipo, 60)
	f.pagar(a.ID, model.ConceptoPagoFinal, 60)

	// First insert collides on the numero_factura unique index
	f.facturaRepo.createErrs = []error{gorm.ErrDuplicatedKey}

	resp, err := f.svc.Finalizar(context.Background(), uuid.New(), a.ID, dto.FinalizarAlquilerRequest{
		FechaDevolucionReal:   fin.Format(dto.FormatoFecha),
		CombustibleDevolucion: model.CombustibleLleno,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, f.facturaRepo.createCalls)
	require.NotNil(t, resp.FacturaID)

	factura, err := f.facturaRepo.FindByAlquiler(context.Background(), nil, a.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, factura.NumeroFactura)
}

func TestFinalizar_NoReintentaOtrosErroresDeFactura(t *testing.T) {
	f := buildAlquilerSvc()
	cliente := f.seedCliente(model.ClienteNacional)
	vehiculo := f.seedVehiculo(40)
	fin := time.Now().Add(-time.Hour).Truncate(time.Minute)
	inicio := fin.Add(-3 * 24 * time.Hour)
	a := f.seedAlquiler(cliente, vehiculo, inicio, fin, model.AlquilerActivo, decimal.NewFromInt(120))
	f.pagar(a.ID, model.ConceptoAnticipo, 60)
	f.pagar(a.ID, model.ConceptoPagoFinal, 60)

	f.facturaRepo.createErrs = []error{errors.New("fallo de conexión")}

	_, err := f.svc.Finalizar(context.Background(), uuid.New(), a.ID, dto.FinalizarAlquilerRequest{
		FechaDevolucionReal:   fin.Format(dto.FormatoFecha),
		CombustibleDevolucion: model.CombustibleLleno,
	})
	assert.ErrorContains(t, err, "fallo de conexión")
	assert.Equal(t, 1, f.facturaRepo.createCalls)
}

// ── Actualizar / Desactivar ───────────────────────────────────────────────────

func TestActualizar_ExtenderFechaFinReprecia(t *testing.T) {
	f := buildAlquilerSvc()
	cliente := f.seedCliente(model.ClienteNacional)
	vehiculo := f.seedVehiculo(40)
	inicio := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	a := f.seedAlquiler(cliente, vehiculo, inicio, inicio.Add(3*24*time.Hour), model.AlquilerActivo, decimal.NewFromInt(120))

	// Extension must not collide with the rental's own range
	nuevaFin := inicio.Add(5 * 24 * time.Hour).Format(dto.FormatoFecha)
	resp, err := f.svc.Actualizar(context.Background(), uuid.New(), a.ID, dto.ActualizarAlquilerRequest{
		FechaFin: &nuevaFin,
	})
	require.NoError(t, err)
	assert.Equal(t, "200", resp.PrecioTotal.String()) // 5 dias × 40
}

func TestActualizar_ExtensionChocaConOtraReserva(t *testing.T) {
	f := buildAlquilerSvc()
	cliente := f.seedCliente(model.ClienteNacional)
	otro := f.seedCliente(model.ClienteNacional)
	vehiculo := f.seedVehiculo(40)
	inicio := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	a := f.seedAlquiler(cliente, vehiculo, inicio, inicio.Add(2*24*time.Hour), model.AlquilerActivo, decimal.NewFromInt(80))
	f.seedAlquiler(otro, vehiculo, inicio.Add(3*24*time.Hour), inicio.Add(5*24*time.Hour), model.AlquilerReservado, decimal.NewFromInt(80))

	nuevaFin := inicio.Add(4 * 24 * time.Hour).Format(dto.FormatoFecha)
	_, err := f.svc.Actualizar(context.Background(), uuid.New(), a.ID, dto.ActualizarAlquilerRequest{
		FechaFin: &nuevaFin,
	})
	assert.ErrorContains(t, err, "choca con otro alquiler")
}

func TestDesactivar_CancelaYLiberaVehiculo(t *testing.T) {
	f := buildAlquilerSvc()
	cliente := f.seedCliente(model.ClienteNacional)
	vehiculo := f.seedVehiculo(40)
	vehiculo.Estado = model.VehiculoReservado
	inicio := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	a := f.seedAlquiler(cliente, vehiculo, inicio, inicio.Add(48*time.Hour), model.AlquilerReservado, decimal.NewFromInt(80))

	err := f.svc.Desactivar(context.Background(), uuid.New(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AlquilerCancelado, a.Estado)
	assert.False(t, a.Activo)
	assert.Equal(t, model.VehiculoDisponible, vehiculo.Estado)
}

// ── Retrasado sweep ───────────────────────────────────────────────────────────

func TestMarcarRetrasados(t *testing.T) {
	f := buildAlquilerSvc()
	cliente := f.seedCliente(model.ClienteNacional)
	v1 := f.seedVehiculo(40)
	v2 := f.seedVehiculo(40)

	vencido := f.seedAlquiler(cliente, v1, time.Now().Add(-72*time.Hour), time.Now().Add(-24*time.Hour), model.AlquilerActivo, decimal.NewFromInt(80))
	vigente := f.seedAlquiler(cliente, v2, time.Now().Add(-24*time.Hour), time.Now().Add(24*time.Hour), model.AlquilerActivo, decimal.NewFromInt(80))

	n, err := f.alquilerRepo.MarcarRetrasados(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, model.AlquilerRetrasado, vencido.Estado)
	assert.Equal(t, model.AlquilerActivo, vigente.Estado)
}
