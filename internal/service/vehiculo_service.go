package service

import (
	"context"
	"errors"

	"github.com/Neith21/AutoRent-Leon/internal/dto"
	"github.com/Neith21/AutoRent-Leon/internal/model"
	"github.com/Neith21/AutoRent-Leon/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VehiculoService interface {
	Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearVehiculoRequest) (*dto.VehiculoResponse, error)
	Listar(ctx context.Context, filter dto.VehiculoFilter) (*dto.VehiculoListResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.VehiculoResponse, error)
	Actualizar(ctx context.Context, usuarioID uuid.UUID, id uuid.UUID, req dto.ActualizarVehiculoRequest) (*dto.VehiculoResponse, error)
	Desactivar(ctx context.Context, usuarioID uuid.UUID, id uuid.UUID) error
}

type vehiculoService struct {
	repo         repository.VehiculoRepository
	catalogoRepo repository.CatalogoRepository
	sucursalRepo repository.SucursalRepository
}

func NewVehiculoService(
	repo repository.VehiculoRepository,
	catalogoRepo repository.CatalogoRepository,
	sucursalRepo repository.SucursalRepository,
) VehiculoService {
	return &vehiculoService{repo: repo, catalogoRepo: catalogoRepo, sucursalRepo: sucursalRepo}
}

func (s *vehiculoService) Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearVehiculoRequest) (*dto.VehiculoResponse, error) {
	if req.PrecioDiario.LessThanOrEqual(decimal.Zero) {
		return nil, errors.New("precio_diario debe ser mayor que cero")
	}
	modeloID, err := uuid.Parse(req.ModeloVehiculoID)
	if err != nil {
		return nil, errors.New("modelo_vehiculo_id inválido")
	}
	categoriaID, err := uuid.Parse(req.CategoriaVehiculoID)
	if err != nil {
		return nil, errors.New("categoria_vehiculo_id inválido")
	}
	sucursalID, err := uuid.Parse(req.SucursalID)
	if err != nil {
		return nil, errors.New("sucursal_id inválido")
	}

	if _, err := s.catalogoRepo.ModeloPorID(ctx, modeloID); err != nil {
		return nil, errors.New("modelo de vehículo no encontrado")
	}
	if _, err := s.catalogoRepo.CategoriaPorID(ctx, categoriaID); err != nil {
		return nil, errors.New("categoría de vehículo no encontrada")
	}
	if _, err := s.sucursalRepo.FindByID(ctx, sucursalID); err != nil {
		return nil, errors.New("sucursal no encontrada")
	}
	if existente, err := s.repo.FindByPlaca(ctx, req.Placa); err == nil && existente != nil {
		return nil, errors.New("ya existe un vehículo con esa placa")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	v := &model.Vehiculo{
		Placa:               req.Placa,
		VIN:                 req.VIN,
		NumeroMotor:         req.NumeroMotor,
		ModeloVehiculoID:    modeloID,
		CategoriaVehiculoID: categoriaID,
		SucursalID:          sucursalID,
		Color:               req.Color,
		Anio:                req.Anio,
		PrecioDiario:        req.PrecioDiario.Round(2),
		Estado:              model.VehiculoDisponible,
		Activo:              true,
		CreatedBy:           &usuarioID,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return vehiculoToResponse(v), nil
}

func (s *vehiculoService) Listar(ctx context.Context, filter dto.VehiculoFilter) (*dto.VehiculoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	vehiculos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VehiculoResponse, 0, len(vehiculos))
	for i := range vehiculos {
		items = append(items, *vehiculoToResponse(&vehiculos[i]))
	}
	return &dto.VehiculoListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *vehiculoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.VehiculoResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("vehículo no encontrado")
	}
	return vehiculoToResponse(v), nil
}

// Actualizar modifies garage data. Reservado/Alquilado are lifecycle
// states and cannot be set here.
func (s *vehiculoService) Actualizar(ctx context.Context, usuarioID uuid.UUID, id uuid.UUID, req dto.ActualizarVehiculoRequest) (*dto.VehiculoResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("vehículo no encontrado")
	}
	if req.SucursalID != nil {
		sid, err := uuid.Parse(*req.SucursalID)
		if err != nil {
			return nil, errors.New("sucursal_id inválido")
		}
		if _, err := s.sucursalRepo.FindByID(ctx, sid); err != nil {
			return nil, errors.New("sucursal no encontrada")
		}
		v.SucursalID = sid
	}
	if req.Color != nil {
		v.Color = *req.Color
	}
	if req.PrecioDiario != nil {
		if req.PrecioDiario.LessThanOrEqual(decimal.Zero) {
			return nil, errors.New("precio_diario debe ser mayor que cero")
		}
		v.PrecioDiario = req.PrecioDiario.Round(2)
	}
	if req.Estado != nil {
		if v.Estado == model.VehiculoReservado || v.Estado == model.VehiculoAlquilado {
			return nil, errors.New("el vehículo está comprometido en un alquiler y su estado no puede cambiarse")
		}
		v.Estado = *req.Estado
	}
	v.ModifiedBy = &usuarioID
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return vehiculoToResponse(v), nil
}

func (s *vehiculoService) Desactivar(ctx context.Context, usuarioID uuid.UUID, id uuid.UUID) error {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("vehículo no encontrado")
	}
	if v.Estado == model.VehiculoReservado || v.Estado == model.VehiculoAlquilado {
		return errors.New("el vehículo está comprometido en un alquiler y no puede darse de baja")
	}
	return s.repo.SoftDelete(ctx, id, &usuarioID)
}

func vehiculoToResponse(v *model.Vehiculo) *dto.VehiculoResponse {
	resp := &dto.VehiculoResponse{
		ID:           v.ID.String(),
		Placa:        v.Placa,
		VIN:          v.VIN,
		NumeroMotor:  v.NumeroMotor,
		SucursalID:   v.SucursalID.String(),
		Color:        v.Color,
		Anio:         v.Anio,
		PrecioDiario: v.PrecioDiario,
		Estado:       v.Estado,
		Activo:       v.Activo,
	}
	if v.ModeloVehiculo != nil {
		resp.Modelo = v.ModeloVehiculo.Nombre
		if v.ModeloVehiculo.Marca != nil {
			resp.Marca = v.ModeloVehiculo.Marca.Nombre
		}
	}
	if v.CategoriaVehiculo != nil {
		resp.Categoria = v.CategoriaVehiculo.Nombre
	}
	return resp
}
