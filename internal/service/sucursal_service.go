package service

import (
	"context"
	"errors"

	"github.com/Neith21/AutoRent-Leon/internal/dto"
	"github.com/Neith21/AutoRent-Leon/internal/model"
	"github.com/Neith21/AutoRent-Leon/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SucursalService interface {
	Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearSucursalRequest) (*dto.SucursalResponse, error)
	Listar(ctx context.Context) ([]dto.SucursalResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.SucursalResponse, error)
	Actualizar(ctx context.Context, usuarioID uuid.UUID, id uuid.UUID, req dto.ActualizarSucursalRequest) (*dto.SucursalResponse, error)
	Desactivar(ctx context.Context, usuarioID uuid.UUID, id uuid.UUID) error
}

type sucursalService struct {
	repo          repository.SucursalRepository
	geografiaRepo repository.GeografiaRepository
}

func NewSucursalService(repo repository.SucursalRepository, geografiaRepo repository.GeografiaRepository) SucursalService {
	return &sucursalService{repo: repo, geografiaRepo: geografiaRepo}
}

func (s *sucursalService) Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearSucursalRequest) (*dto.SucursalResponse, error) {
	distritoID, err := uuid.Parse(req.DistritoID)
	if err != nil {
		return nil, errors.New("distrito_id inválido")
	}
	if _, err := s.geografiaRepo.DistritoPorID(ctx, distritoID); err != nil {
		return nil, errors.New("distrito no encontrado")
	}
	if existente, err := s.repo.FindByNombre(ctx, req.Nombre); err == nil && existente != nil {
		return nil, errors.New("ya existe una sucursal con ese nombre")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	suc := &model.Sucursal{
		Nombre:     req.Nombre,
		Telefono:   req.Telefono,
		Direccion:  req.Direccion,
		Email:      req.Email,
		DistritoID: distritoID,
		Activo:     true,
		CreatedBy:  &usuarioID,
	}
	if err := s.repo.Create(ctx, suc); err != nil {
		return nil, err
	}
	return sucursalToResponse(suc), nil
}

func (s *sucursalService) Listar(ctx context.Context) ([]dto.SucursalResponse, error) {
	sucursales, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SucursalResponse, 0, len(sucursales))
	for i := range sucursales {
		resp = append(resp, *sucursalToResponse(&sucursales[i]))
	}
	return resp, nil
}

func (s *sucursalService) Obtener(ctx context.Context, id uuid.UUID) (*dto.SucursalResponse, error) {
	suc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("sucursal no encontrada")
	}
	return sucursalToResponse(suc), nil
}

func (s *sucursalService) Actualizar(ctx context.Context, usuarioID uuid.UUID, id uuid.UUID, req dto.ActualizarSucursalRequest) (*dto.SucursalResponse, error) {
	suc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("sucursal no encontrada")
	}
	if req.Nombre != nil && *req.Nombre != suc.Nombre {
		if existente, err := s.repo.FindByNombre(ctx, *req.Nombre); err == nil && existente != nil && existente.ID != id {
			return nil, errors.New("ya existe una sucursal con ese nombre")
		}
		suc.Nombre = *req.Nombre
	}
	if req.Telefono != nil {
		suc.Telefono = *req.Telefono
	}
	if req.Direccion != nil {
		suc.Direccion = *req.Direccion
	}
	if req.Email != nil {
		suc.Email = *req.Email
	}
	if req.DistritoID != nil {
		did, err := uuid.Parse(*req.DistritoID)
		if err != nil {
			return nil, errors.New("distrito_id inválido")
		}
		if _, err := s.geografiaRepo.DistritoPorID(ctx, did); err != nil {
			return nil, errors.New("distrito no encontrado")
		}
		suc.DistritoID = did
	}
	suc.ModifiedBy = &usuarioID
	if err := s.repo.Update(ctx, suc); err != nil {
		return nil, err
	}
	return sucursalToResponse(suc), nil
}

// Desactivar refuses to retire a branch that still holds vehicles.
func (s *sucursalService) Desactivar(ctx context.Context, usuarioID uuid.UUID, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("sucursal no encontrada")
	}
	tiene, err := s.repo.TieneVehiculos(ctx, id)
	if err != nil {
		return err
	}
	if tiene {
		return errors.New("la sucursal tiene vehículos asignados y no puede darse de baja")
	}
	return s.repo.SoftDelete(ctx, id, &usuarioID)
}

func sucursalToResponse(s *model.Sucursal) *dto.SucursalResponse {
	resp := &dto.SucursalResponse{
		ID:        s.ID.String(),
		Nombre:    s.Nombre,
		Telefono:  s.Telefono,
		Direccion: s.Direccion,
		Email:     s.Email,
		Activo:    s.Activo,
	}
	if s.Distrito != nil {
		resp.Distrito = s.Distrito.Nombre
	}
	return resp
}
