package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Neith21/AutoRent-Leon/internal/dto"
	"github.com/Neith21/AutoRent-Leon/internal/model"
	"github.com/Neith21/AutoRent-Leon/internal/repository"
	"github.com/Neith21/AutoRent-Leon/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrVehiculoNoDisponible is returned when the requested date range overlaps
// another live rental of the same vehicle. Mapped to 409 at the HTTP layer.
var ErrVehiculoNoDisponible = errors.New("el vehículo ya tiene un alquiler en ese rango de fechas")

type AlquilerService interface {
	CalcularPrecio(ctx context.Context, req dto.CalcularPrecioRequest) (*dto.CotizacionResponse, error)
	CrearReserva(ctx context.Context, usuarioID uuid.UUID, req dto.CrearAlquilerRequest) (*dto.AlquilerResponse, error)
	CrearConPagoInicial(ctx context.Context, usuarioID uuid.UUID, req dto.CrearAlquilerConPagoRequest) (*dto.AlquilerResponse, error)
	Finalizar(ctx context.Context, usuarioID uuid.UUID, id uuid.UUID, req dto.FinalizarAlquilerRequest) (*dto.FinalizarAlquilerResponse, error)
	AgregarPago(ctx context.Context, usuarioID uuid.UUID, id uuid.UUID, req dto.AgregarPagoRequest) (*dto.PagoResponse, error)
	ListarPagos(ctx context.Context, id uuid.UUID) ([]dto.PagoResponse, error)
	Listar(ctx context.Context, filter dto.AlquilerFilter) (*dto.AlquilerListResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.AlquilerResponse, error)
	Actualizar(ctx context.Context, usuarioID uuid.UUID, id uuid.UUID, req dto.ActualizarAlquilerRequest) (*dto.AlquilerResponse, error)
	Desactivar(ctx context.Context, usuarioID uuid.UUID, id uuid.UUID) error
}

type alquilerService struct {
	repo         repository.AlquilerRepository
	pagoRepo     repository.PagoRepository
	vehiculoRepo repository.VehiculoRepository
	clienteRepo  repository.ClienteRepository
	facturaRepo  repository.FacturaRepository
	auditRepo    repository.AuditoriaRepository
	dispatcher   *worker.Dispatcher
}

func NewAlquilerService(
	repo repository.AlquilerRepository,
	pagoRepo repository.PagoRepository,
	vehiculoRepo repository.VehiculoRepository,
	clienteRepo repository.ClienteRepository,
	facturaRepo repository.FacturaRepository,
	auditRepo repository.AuditoriaRepository,
	dispatcher *worker.Dispatcher,
) AlquilerService {
	return &alquilerService{
		repo:         repo,
		pagoRepo:     pagoRepo,
		vehiculoRepo: vehiculoRepo,
		clienteRepo:  clienteRepo,
		facturaRepo:  facturaRepo,
		auditRepo:    auditRepo,
		dispatcher:   dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// cotizacion is the priced breakdown of a prospective rental.
type cotizacion struct {
	dias     int
	total    decimal.Decimal
	anticipo decimal.Decimal
	deposito decimal.Decimal
}

// cotizar prices a rental for the given customer and vehicle.
func cotizar(cliente *model.Cliente, vehiculo *model.Vehiculo, inicio, fin time.Time) (*cotizacion, error) {
	dias, err := DuracionDias(inicio, fin)
	if err != nil {
		return nil, err
	}
	total := vehiculo.PrecioDiario.Mul(decimal.NewFromInt(int64(dias))).Round(2)
	return &cotizacion{
		dias:     dias,
		total:    total,
		anticipo: AnticipoRequerido(total, dias),
		deposito: DepositoRequerido(cliente.TipoCliente),
	}, nil
}

// validarClienteParaAlquiler rejects customers that may not start rentals.
// Runs inside the creation tx, after the vehicle lock, so two concurrent
// creates for the same customer cannot both slip under the rental limit.
func (s *alquilerService) validarClienteParaAlquiler(ctx context.Context, tx *gorm.DB, cliente *model.Cliente) error {
	if cliente.Estado == model.ClienteListaNegra {
		return errors.New("el cliente está en lista negra y no puede alquilar")
	}
	if cliente.Estado != model.ClienteActivo || !cliente.Activo {
		return errors.New("el cliente no está activo")
	}
	vigentes, err := s.repo.CountVigentesPorCliente(ctx, tx, cliente.ID)
	if err != nil {
		return err
	}
	if int(vigentes) >= LimiteAlquileres(cliente.TipoCliente) {
		return fmt.Errorf("el cliente alcanzó el límite de %d alquileres vigentes", LimiteAlquileres(cliente.TipoCliente))
	}
	return nil
}

// resolverCreacion parses and validates the shared fields of both creation paths.
func (s *alquilerService) resolverCreacion(ctx context.Context, req dto.CrearAlquilerRequest) (*model.Cliente, uuid.UUID, time.Time, time.Time, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, uuid.Nil, time.Time{}, time.Time{}, errors.New("cliente_id inválido")
	}
	vehiculoID, err := uuid.Parse(req.VehiculoID)
	if err != nil {
		return nil, uuid.Nil, time.Time{}, time.Time{}, errors.New("vehiculo_id inválido")
	}
	inicio, err := dto.ParseFecha(req.FechaInicio)
	if err != nil {
		return nil, uuid.Nil, time.Time{}, time.Time{}, err
	}
	fin, err := dto.ParseFecha(req.FechaFin)
	if err != nil {
		return nil, uuid.Nil, time.Time{}, time.Time{}, err
	}
	if !fin.After(inicio) {
		return nil, uuid.Nil, time.Time{}, time.Time{}, ErrRangoFechasInvalido
	}

	cliente, err := s.clienteRepo.FindByID(ctx, clienteID)
	if err != nil {
		return nil, uuid.Nil, time.Time{}, time.Time{}, errors.New("cliente no encontrado")
	}
	return cliente, vehiculoID, inicio, fin, nil
}

// ── CalcularPrecio ────────────────────────────────────────────────────────────

// CalcularPrecio prices a prospective rental without persisting anything.
func (s *alquilerService) CalcularPrecio(ctx context.Context, req dto.CalcularPrecioRequest) (*dto.CotizacionResponse, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, errors.New("cliente_id inválido")
	}
	vehiculoID, err := uuid.Parse(req.VehiculoID)
	if err != nil {
		return nil, errors.New("vehiculo_id inválido")
	}
	inicio, err := dto.ParseFecha(req.FechaInicio)
	if err != nil {
		return nil, err
	}
	fin, err := dto.ParseFecha(req.FechaFin)
	if err != nil {
		return nil, err
	}

	cliente, err := s.clienteRepo.FindByID(ctx, clienteID)
	if err != nil {
		return nil, errors.New("cliente no encontrado")
	}
	vehiculo, err := s.vehiculoRepo.FindByID(ctx, vehiculoID)
	if err != nil {
		return nil, errors.New("vehículo no encontrado")
	}

	cot, err := cotizar(cliente, vehiculo, inicio, fin)
	if err != nil {
		return nil, err
	}
	return &dto.CotizacionResponse{
		DuracionDias:          cot.dias,
		PrecioTotal:           cot.total,
		AnticipoRequerido:     cot.anticipo,
		DepositoRequerido:     cot.deposito,
		TotalInicialRequerido: cot.anticipo.Add(cot.deposito),
	}, nil
}

// ── Creation ──────────────────────────────────────────────────────────────────
// Both paths lock the vehicle row before the overlap check so two
// concurrent bookings of the same vehicle serialize on the same lock.

// CrearReserva creates a Reservado rental with no payments.
func (s *alquilerService) CrearReserva(ctx context.Context, usuarioID uuid.UUID, req dto.CrearAlquilerRequest) (*dto.AlquilerResponse, error) {
	cliente, vehiculoID, inicio, fin, err := s.resolverCreacion(ctx, req)
	if err != nil {
		return nil, err
	}

	var alquiler model.Alquiler
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		vehiculo, err := s.vehiculoRepo.FindByIDForUpdate(ctx, tx, vehiculoID)
		if err != nil {
			return errors.New("vehículo no encontrado")
		}
		if err := validarVehiculoAlquilable(vehiculo); err != nil {
			return err
		}
		if err := s.validarClienteParaAlquiler(ctx, tx, cliente); err != nil {
			return err
		}
		conflicto, err := s.repo.ExisteConflicto(ctx, tx, vehiculoID, inicio, fin, nil)
		if err != nil {
			return err
		}
		if conflicto {
			return ErrVehiculoNoDisponible
		}

		cot, err := cotizar(cliente, vehiculo, inicio, fin)
		if err != nil {
			return err
		}

		alquiler = model.Alquiler{
			ClienteID:            cliente.ID,
			VehiculoID:           vehiculoID,
			SucursalRecogidaID:   uuid.MustParse(req.SucursalRecogidaID),
			SucursalDevolucionID: uuid.MustParse(req.SucursalDevolucionID),
			FechaInicio:          inicio,
			FechaFin:             fin,
			Estado:               model.AlquilerReservado,
			PrecioTotal:          cot.total,
			CombustibleRecogida:  req.CombustibleRecogida,
			Observaciones:        req.Observaciones,
			Activo:               true,
			CreatedBy:            &usuarioID,
		}
		if err := s.repo.Create(ctx, tx, &alquiler); err != nil {
			return err
		}
		if err := s.vehiculoRepo.UpdateEstadoTx(ctx, tx, vehiculoID, model.VehiculoReservado); err != nil {
			return err
		}
		return s.auditar(ctx, tx, "alquiler", alquiler.ID, usuarioID, "crear_reserva",
			fmt.Sprintf("Reserva creada, total %s", cot.total.StringFixed(2)))
	})
	if txErr != nil {
		return nil, txErr
	}
	return alquilerToResponse(&alquiler), nil
}

// CrearConPagoInicial atomically creates an Activo rental together with its
// advance (and deposit, for foreign customers). The submitted payments must
// cover each required component exactly.
func (s *alquilerService) CrearConPagoInicial(ctx context.Context, usuarioID uuid.UUID, req dto.CrearAlquilerConPagoRequest) (*dto.AlquilerResponse, error) {
	cliente, vehiculoID, inicio, fin, err := s.resolverCreacion(ctx, req.CrearAlquilerRequest)
	if err != nil {
		return nil, err
	}

	var alquiler model.Alquiler
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		vehiculo, err := s.vehiculoRepo.FindByIDForUpdate(ctx, tx, vehiculoID)
		if err != nil {
			return errors.New("vehículo no encontrado")
		}
		if err := validarVehiculoAlquilable(vehiculo); err != nil {
			return err
		}
		if err := s.validarClienteParaAlquiler(ctx, tx, cliente); err != nil {
			return err
		}
		conflicto, err := s.repo.ExisteConflicto(ctx, tx, vehiculoID, inicio, fin, nil)
		if err != nil {
			return err
		}
		if conflicto {
			return ErrVehiculoNoDisponible
		}

		cot, err := cotizar(cliente, vehiculo, inicio, fin)
		if err != nil {
			return err
		}
		if err := validarPagosIniciales(req.Pagos, cot); err != nil {
			return err
		}

		alquiler = model.Alquiler{
			ClienteID:            cliente.ID,
			VehiculoID:           vehiculoID,
			SucursalRecogidaID:   uuid.MustParse(req.SucursalRecogidaID),
			SucursalDevolucionID: uuid.MustParse(req.SucursalDevolucionID),
			FechaInicio:          inicio,
			FechaFin:             fin,
			Estado:               model.AlquilerActivo,
			PrecioTotal:          cot.total,
			CombustibleRecogida:  req.CombustibleRecogida,
			Observaciones:        req.Observaciones,
			Activo:               true,
			CreatedBy:            &usuarioID,
		}
		if err := s.repo.Create(ctx, tx, &alquiler); err != nil {
			return err
		}

		ahora := time.Now()
		for _, p := range req.Pagos {
			ref := "Anticipo de alquiler"
			if p.Concepto == model.ConceptoDeposito {
				ref = "Depósito reembolsable (cliente extranjero)"
			}
			pago := model.Pago{
				AlquilerID: alquiler.ID,
				Monto:      p.Monto.Round(2),
				TipoPago:   p.TipoPago,
				Concepto:   p.Concepto,
				FechaPago:  ahora,
				Referencia: &ref,
				Activo:     true,
				CreatedBy:  &usuarioID,
			}
			if err := s.pagoRepo.Create(ctx, tx, &pago); err != nil {
				return err
			}
			alquiler.Pagos = append(alquiler.Pagos, pago)
		}

		if err := s.vehiculoRepo.UpdateEstadoTx(ctx, tx, vehiculoID, model.VehiculoAlquilado); err != nil {
			return err
		}
		return s.auditar(ctx, tx, "alquiler", alquiler.ID, usuarioID, "crear_con_pago",
			fmt.Sprintf("Alquiler activado con pago inicial, total %s", cot.total.StringFixed(2)))
	})
	if txErr != nil {
		return nil, txErr
	}
	return alquilerToResponse(&alquiler), nil
}

// validarPagosIniciales enforces the strict initial-payment policy: the
// submitted rows must cover the advance and, when required, the deposit,
// each exactly within tolerance, with no extra components.
func validarPagosIniciales(pagos []dto.PagoInicialRequest, cot *cotizacion) error {
	anticipo := decimal.Zero
	deposito := decimal.Zero
	for _, p := range pagos {
		if p.Monto.LessThanOrEqual(decimal.Zero) {
			return errors.New("el monto de cada pago debe ser mayor que cero")
		}
		switch p.Concepto {
		case model.ConceptoAnticipo:
			anticipo = anticipo.Add(p.Monto)
		case model.ConceptoDeposito:
			deposito = deposito.Add(p.Monto)
		default:
			return fmt.Errorf("concepto %q no permitido en el pago inicial", p.Concepto)
		}
	}
	if anticipo.Sub(cot.anticipo).Abs().GreaterThan(ToleranciaPago) {
		return fmt.Errorf("el anticipo debe ser exactamente %s", cot.anticipo.StringFixed(2))
	}
	if cot.deposito.IsZero() && deposito.GreaterThan(decimal.Zero) {
		return errors.New("el cliente nacional no paga depósito")
	}
	if deposito.Sub(cot.deposito).Abs().GreaterThan(ToleranciaPago) {
		return fmt.Errorf("el depósito debe ser exactamente %s", cot.deposito.StringFixed(2))
	}
	return nil
}

func validarVehiculoAlquilable(v *model.Vehiculo) error {
	if !v.Activo {
		return errors.New("el vehículo no está activo")
	}
	if v.Estado != model.VehiculoDisponible {
		return fmt.Errorf("el vehículo no está disponible (estado %q)", v.Estado)
	}
	return nil
}

// ── AgregarPago ───────────────────────────────────────────────────────────────

// AgregarPago appends one payment to the rental's ledger. Once the advance
// and deposit are both covered, a Reservado rental becomes Activo and the
// vehicle is marked Alquilado.
func (s *alquilerService) AgregarPago(ctx context.Context, usuarioID uuid.UUID, id uuid.UUID, req dto.AgregarPagoRequest) (*dto.PagoResponse, error) {
	if req.Monto.LessThanOrEqual(decimal.Zero) {
		return nil, errors.New("el monto debe ser mayor que cero")
	}

	var pago model.Pago
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		alquiler, err := s.repo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return errors.New("alquiler no encontrado")
		}
		switch alquiler.Estado {
		case model.AlquilerFinalizado:
			return errors.New("el alquiler ya está finalizado")
		case model.AlquilerCancelado:
			return errors.New("el alquiler está cancelado")
		}

		cliente, err := s.clienteRepo.FindByID(ctx, alquiler.ClienteID)
		if err != nil {
			return errors.New("cliente no encontrado")
		}
		dias, err := DuracionDias(alquiler.FechaInicio, alquiler.FechaFin)
		if err != nil {
			return err
		}
		anticipoReq := AnticipoRequerido(alquiler.PrecioTotal, dias)
		depositoReq := DepositoRequerido(cliente.TipoCliente)

		// Anticipo and Deposito may never exceed their expected amounts.
		switch req.Concepto {
		case model.ConceptoAnticipo:
			pagado, err := s.pagoRepo.SumPorConceptos(ctx, tx, id, []string{model.ConceptoAnticipo})
			if err != nil {
				return err
			}
			if pagado.Add(req.Monto).Sub(anticipoReq).GreaterThan(ToleranciaPago) {
				return fmt.Errorf("el anticipo excede el requerido: restan %s", anticipoReq.Sub(pagado).StringFixed(2))
			}
		case model.ConceptoDeposito:
			if depositoReq.IsZero() {
				return errors.New("el cliente nacional no paga depósito")
			}
			pagado, err := s.pagoRepo.SumPorConceptos(ctx, tx, id, []string{model.ConceptoDeposito})
			if err != nil {
				return err
			}
			if pagado.Add(req.Monto).Sub(depositoReq).GreaterThan(ToleranciaPago) {
				return fmt.Errorf("el depósito excede el requerido: restan %s", depositoReq.Sub(pagado).StringFixed(2))
			}
		}

		pago = model.Pago{
			AlquilerID: id,
			Monto:      req.Monto.Round(2),
			TipoPago:   req.TipoPago,
			Concepto:   req.Concepto,
			FechaPago:  time.Now(),
			Referencia: req.Referencia,
			Activo:     true,
			CreatedBy:  &usuarioID,
		}
		if err := s.pagoRepo.Create(ctx, tx, &pago); err != nil {
			return err
		}

		if alquiler.Estado == model.AlquilerReservado {
			anticipoPagado, err := s.pagoRepo.SumPorConceptos(ctx, tx, id, []string{model.ConceptoAnticipo})
			if err != nil {
				return err
			}
			depositoPagado, err := s.pagoRepo.SumPorConceptos(ctx, tx, id, []string{model.ConceptoDeposito})
			if err != nil {
				return err
			}
			anticipoCubierto := anticipoReq.Sub(anticipoPagado).LessThanOrEqual(ToleranciaPago)
			depositoCubierto := depositoReq.Sub(depositoPagado).LessThanOrEqual(ToleranciaPago)
			if anticipoCubierto && depositoCubierto {
				alquiler.Estado = model.AlquilerActivo
				alquiler.ModifiedBy = &usuarioID
				if err := s.repo.Update(ctx, tx, alquiler); err != nil {
					return err
				}
				if err := s.vehiculoRepo.UpdateEstadoTx(ctx, tx, alquiler.VehiculoID, model.VehiculoAlquilado); err != nil {
					return err
				}
			}
		}

		return s.auditar(ctx, tx, "pago", pago.ID, usuarioID, "agregar_pago",
			fmt.Sprintf("%s de %s", req.Concepto, req.Monto.StringFixed(2)))
	})
	if txErr != nil {
		return nil, txErr
	}
	return pagoToResponse(&pago), nil
}

// ListarPagos returns the payment ledger of one rental.
func (s *alquilerService) ListarPagos(ctx context.Context, id uuid.UUID) ([]dto.PagoResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, errors.New("alquiler no encontrado")
	}
	pagos, err := s.pagoRepo.ListByAlquiler(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PagoResponse, 0, len(pagos))
	for i := range pagos {
		resp = append(resp, *pagoToResponse(&pagos[i]))
	}
	return resp, nil
}

// ── Finalizar ─────────────────────────────────────────────────────────────────
// Settlement of a returned vehicle:
//  1. Lock the rental row; only Activo/Retrasado rentals can finish.
//  2. Price lateness and missing fuel into the final total.
//  3. Post the closing payment (if any), credit the deposit against the
//     remaining balance, refund the unused deposit plus any overpayment as
//     a single negative Reembolso.
//  4. Rental → Finalizado, vehicle → Disponible, invoice issued.
//  5. After commit: invoice PDF + email dispatched as an async job.

func (s *alquilerService) Finalizar(ctx context.Context, usuarioID uuid.UUID, id uuid.UUID, req dto.FinalizarAlquilerRequest) (*dto.FinalizarAlquilerResponse, error) {
	devolucion, err := dto.ParseFecha(req.FechaDevolucionReal)
	if err != nil {
		return nil, err
	}
	if devolucion.After(time.Now().Add(ToleranciaReloj)) {
		return nil, errors.New("la fecha de devolución no puede estar en el futuro")
	}

	var (
		alquiler         *model.Alquiler
		factura          *model.Factura
		cargoRetraso     decimal.Decimal
		cargoCombustible decimal.Decimal
		totalFinal       decimal.Decimal
		reembolso        = decimal.Zero
	)

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		alquiler, err = s.repo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return errors.New("alquiler no encontrado")
		}
		switch alquiler.Estado {
		case model.AlquilerActivo, model.AlquilerRetrasado:
			// finalizable
		case model.AlquilerFinalizado:
			return errors.New("el alquiler ya está finalizado")
		default:
			return fmt.Errorf("un alquiler en estado %q no puede finalizarse", alquiler.Estado)
		}
		if devolucion.Before(alquiler.FechaInicio) {
			return errors.New("la fecha de devolución no puede ser anterior al inicio del alquiler")
		}

		vehiculo, err := s.vehiculoRepo.FindByIDForUpdate(ctx, tx, alquiler.VehiculoID)
		if err != nil {
			return errors.New("vehículo no encontrado")
		}

		cargoRetraso = CargoRetraso(DiasRetraso(alquiler.FechaFin, devolucion), vehiculo.PrecioDiario)
		cargoCombustible, err = CargoCombustible(alquiler.CombustibleRecogida, req.CombustibleDevolucion)
		if err != nil {
			return err
		}
		totalFinal = alquiler.PrecioTotal.Add(cargoRetraso).Add(cargoCombustible)

		ahora := time.Now()
		if req.PagoFinal != nil && req.PagoFinal.Monto.GreaterThan(decimal.Zero) {
			// Existe guards a re-submitted finalization from double-posting.
			dup, err := s.pagoRepo.Existe(ctx, tx, id, model.ConceptoPagoFinal, req.PagoFinal.Monto.Round(2))
			if err != nil {
				return err
			}
			if !dup {
				ref := "Pago de cierre del alquiler"
				pago := model.Pago{
					AlquilerID: id,
					Monto:      req.PagoFinal.Monto.Round(2),
					TipoPago:   req.PagoFinal.TipoPago,
					Concepto:   model.ConceptoPagoFinal,
					FechaPago:  ahora,
					Referencia: &ref,
					Activo:     true,
					CreatedBy:  &usuarioID,
				}
				if err := s.pagoRepo.Create(ctx, tx, &pago); err != nil {
					return err
				}
			}
		}

		pagadoServicio, err := s.pagoRepo.SumPorConceptos(ctx, tx, id, model.ConceptosServicio)
		if err != nil {
			return err
		}
		depositoPagado, err := s.pagoRepo.SumPorConceptos(ctx, tx, id, []string{model.ConceptoDeposito})
		if err != nil {
			return err
		}

		saldo := totalFinal.Sub(pagadoServicio)
		aplicado := decimal.Zero
		if saldo.GreaterThan(ToleranciaPago) {
			aplicado = decimal.Min(saldo, depositoPagado)
			saldo = saldo.Sub(aplicado)
		}
		if saldo.GreaterThan(ToleranciaPago) {
			return fmt.Errorf("pago insuficiente: faltan %s para cubrir el total de %s",
				saldo.StringFixed(2), totalFinal.StringFixed(2))
		}
		reembolso = depositoPagado.Sub(aplicado)
		if saldo.Neg().GreaterThan(ToleranciaPago) {
			// Overpaid service charges come back together with the deposit.
			reembolso = reembolso.Add(saldo.Neg())
		}

		if reembolso.GreaterThan(decimal.Zero) {
			monto := reembolso.Neg().Round(2)
			dup, err := s.pagoRepo.Existe(ctx, tx, id, model.ConceptoReembolso, monto)
			if err != nil {
				return err
			}
			if !dup {
				ref := "Devolución del depósito"
				switch {
				case depositoPagado.Sub(aplicado).LessThanOrEqual(decimal.Zero):
					ref = "Devolución del excedente pagado"
				case aplicado.GreaterThan(decimal.Zero):
					ref = fmt.Sprintf("Devolución del depósito (%s aplicado al saldo)", aplicado.StringFixed(2))
				}
				pago := model.Pago{
					AlquilerID: id,
					Monto:      monto,
					TipoPago:   "Efectivo",
					Concepto:   model.ConceptoReembolso,
					FechaPago:  ahora,
					Referencia: &ref,
					Activo:     true,
					CreatedBy:  &usuarioID,
				}
				if err := s.pagoRepo.Create(ctx, tx, &pago); err != nil {
					return err
				}
			}
		}

		alquiler.Estado = model.AlquilerFinalizado
		alquiler.FechaDevolucionReal = &devolucion
		alquiler.CombustibleDevolucion = &req.CombustibleDevolucion
		alquiler.PrecioTotal = totalFinal
		alquiler.ModifiedBy = &usuarioID
		if req.Observaciones != nil {
			alquiler.Observaciones = req.Observaciones
		}
		if err := s.repo.Update(ctx, tx, alquiler); err != nil {
			return err
		}
		if err := s.vehiculoRepo.UpdateEstadoTx(ctx, tx, alquiler.VehiculoID, model.VehiculoDisponible); err != nil {
			return err
		}

		factura, err = s.facturaRepo.FindByAlquiler(ctx, tx, id)
		if err != nil {
			factura = &model.Factura{
				AlquilerID:   id,
				FechaEmision: ahora,
				MontoTotal:   totalFinal,
				Estado:       model.FacturaEmitida,
				Activo:       true,
				CreatedBy:    &usuarioID,
			}
			if err := crearFacturaConReintento(ctx, s.facturaRepo, tx, factura); err != nil {
				return err
			}
		} else if factura.Estado == model.FacturaEmitida {
			factura.Estado = model.FacturaPagada
			factura.MontoTotal = totalFinal
			factura.ModifiedBy = &usuarioID
			if err := s.facturaRepo.Update(ctx, tx, factura); err != nil {
				return err
			}
		}

		return s.auditar(ctx, tx, "alquiler", id, usuarioID, "finalizar",
			fmt.Sprintf("Finalizado: total %s, retraso %s, combustible %s, reembolso %s",
				totalFinal.StringFixed(2), cargoRetraso.StringFixed(2),
				cargoCombustible.StringFixed(2), reembolso.StringFixed(2)))
	})
	if txErr != nil {
		return nil, txErr
	}

	// Async invoice PDF + email (best-effort — fire & forget)
	if s.dispatcher != nil && factura != nil {
		_ = s.dispatcher.EnqueueFactura(ctx, worker.FacturaJobPayload{
			FacturaID: factura.ID.String(),
		})
	}

	resp := alquilerToResponse(alquiler)
	out := &dto.FinalizarAlquilerResponse{
		Alquiler:         *resp,
		CargoRetraso:     cargoRetraso,
		CargoCombustible: cargoCombustible,
		TotalACubrir:     totalFinal,
		Reembolso:        reembolso,
	}
	if factura != nil {
		fid := factura.ID.String()
		out.FacturaID = &fid
	}
	return out, nil
}

// ── CRUD ──────────────────────────────────────────────────────────────────────

func (s *alquilerService) Listar(ctx context.Context, filter dto.AlquilerFilter) (*dto.AlquilerListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	alquileres, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AlquilerResponse, 0, len(alquileres))
	for i := range alquileres {
		items = append(items, *alquilerToResponse(&alquileres[i]))
	}
	return &dto.AlquilerListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *alquilerService) Obtener(ctx context.Context, id uuid.UUID) (*dto.AlquilerResponse, error) {
	alquiler, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("alquiler no encontrado")
	}
	return alquilerToResponse(alquiler), nil
}

// Actualizar modifies the mutable fields of a pending rental: return
// branch, end date (repriced and re-checked for conflicts) and notes.
func (s *alquilerService) Actualizar(ctx context.Context, usuarioID uuid.UUID, id uuid.UUID, req dto.ActualizarAlquilerRequest) (*dto.AlquilerResponse, error) {
	var alquiler *model.Alquiler
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		alquiler, err = s.repo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return errors.New("alquiler no encontrado")
		}
		if alquiler.Estado != model.AlquilerReservado && alquiler.Estado != model.AlquilerActivo {
			return fmt.Errorf("un alquiler en estado %q no puede modificarse", alquiler.Estado)
		}

		if req.SucursalDevolucionID != nil {
			sid, err := uuid.Parse(*req.SucursalDevolucionID)
			if err != nil {
				return errors.New("sucursal_devolucion_id inválido")
			}
			alquiler.SucursalDevolucionID = sid
		}
		if req.FechaFin != nil {
			fin, err := dto.ParseFecha(*req.FechaFin)
			if err != nil {
				return err
			}
			if !fin.After(alquiler.FechaInicio) {
				return ErrRangoFechasInvalido
			}
			vehiculo, err := s.vehiculoRepo.FindByIDForUpdate(ctx, tx, alquiler.VehiculoID)
			if err != nil {
				return errors.New("vehículo no encontrado")
			}
			conflicto, err := s.repo.ExisteConflicto(ctx, tx, alquiler.VehiculoID, alquiler.FechaInicio, fin, &alquiler.ID)
			if err != nil {
				return err
			}
			if conflicto {
				return errors.New("el nuevo rango de fechas choca con otro alquiler del vehículo")
			}
			dias, err := DuracionDias(alquiler.FechaInicio, fin)
			if err != nil {
				return err
			}
			alquiler.FechaFin = fin
			alquiler.PrecioTotal = vehiculo.PrecioDiario.Mul(decimal.NewFromInt(int64(dias))).Round(2)
		}
		if req.Observaciones != nil {
			alquiler.Observaciones = req.Observaciones
		}
		alquiler.ModifiedBy = &usuarioID
		if err := s.repo.Update(ctx, tx, alquiler); err != nil {
			return err
		}
		return s.auditar(ctx, tx, "alquiler", id, usuarioID, "actualizar", "Alquiler modificado")
	})
	if txErr != nil {
		return nil, txErr
	}
	return alquilerToResponse(alquiler), nil
}

// Desactivar cancels a rental (soft delete) and releases the vehicle when
// the rental still held it.
func (s *alquilerService) Desactivar(ctx context.Context, usuarioID uuid.UUID, id uuid.UUID) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		alquiler, err := s.repo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return errors.New("alquiler no encontrado")
		}
		liberaVehiculo := alquiler.Estado == model.AlquilerReservado ||
			alquiler.Estado == model.AlquilerActivo ||
			alquiler.Estado == model.AlquilerRetrasado

		alquiler.Estado = model.AlquilerCancelado
		alquiler.ModifiedBy = &usuarioID
		if err := s.repo.Update(ctx, tx, alquiler); err != nil {
			return err
		}
		if err := s.repo.SoftDelete(ctx, tx, id, &usuarioID); err != nil {
			return err
		}
		if liberaVehiculo {
			if err := s.vehiculoRepo.UpdateEstadoTx(ctx, tx, alquiler.VehiculoID, model.VehiculoDisponible); err != nil {
				return err
			}
		}
		return s.auditar(ctx, tx, "alquiler", id, usuarioID, "cancelar", "Alquiler cancelado")
	})
}

func (s *alquilerService) auditar(ctx context.Context, tx *gorm.DB, entidad string, entidadID uuid.UUID, usuarioID uuid.UUID, accion, detalle string) error {
	if s.auditRepo == nil {
		return nil
	}
	return s.auditRepo.Create(ctx, tx, &model.Auditoria{
		Entidad:   entidad,
		EntidadID: entidadID,
		UsuarioID: &usuarioID,
		Accion:    accion,
		Detalle:   &detalle,
	})
}

// ── mapping helpers ───────────────────────────────────────────────────────────

func alquilerToResponse(a *model.Alquiler) *dto.AlquilerResponse {
	resp := &dto.AlquilerResponse{
		ID:                    a.ID.String(),
		ClienteID:             a.ClienteID.String(),
		VehiculoID:            a.VehiculoID.String(),
		SucursalRecogidaID:    a.SucursalRecogidaID.String(),
		SucursalDevolucionID:  a.SucursalDevolucionID.String(),
		FechaInicio:           a.FechaInicio.Format(dto.FormatoFecha),
		FechaFin:              a.FechaFin.Format(dto.FormatoFecha),
		Estado:                a.Estado,
		PrecioTotal:           a.PrecioTotal,
		CombustibleRecogida:   a.CombustibleRecogida,
		CombustibleDevolucion: a.CombustibleDevolucion,
		Observaciones:         a.Observaciones,
		CreatedAt:             a.CreatedAt.Format(time.RFC3339),
	}
	if a.FechaDevolucionReal != nil {
		s := a.FechaDevolucionReal.Format(dto.FormatoFecha)
		resp.FechaDevolucionReal = &s
	}
	if a.Cliente != nil {
		resp.ClienteNombre = a.Cliente.NombreCompleto()
	}
	if a.Vehiculo != nil {
		resp.VehiculoPlaca = a.Vehiculo.Placa
	}
	for i := range a.Pagos {
		resp.Pagos = append(resp.Pagos, *pagoToResponse(&a.Pagos[i]))
	}
	return resp
}

func pagoToResponse(p *model.Pago) *dto.PagoResponse {
	return &dto.PagoResponse{
		ID:         p.ID.String(),
		AlquilerID: p.AlquilerID.String(),
		Monto:      p.Monto,
		TipoPago:   p.TipoPago,
		Concepto:   p.Concepto,
		FechaPago:  p.FechaPago.Format(dto.FormatoFecha),
		Referencia: p.Referencia,
	}
}
