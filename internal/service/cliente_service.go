package service

import (
	"context"
	"errors"
	"time"

	"github.com/Neith21/AutoRent-Leon/internal/dto"
	"github.com/Neith21/AutoRent-Leon/internal/model"
	"github.com/Neith21/AutoRent-Leon/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// formatoFechaNacimiento is the date-only layout for birth dates.
const formatoFechaNacimiento = "02-01-2006"

const edadMinima = 18

type ClienteService interface {
	Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	Listar(ctx context.Context, filter dto.ClienteFilter) (*dto.ClienteListResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	Actualizar(ctx context.Context, usuarioID uuid.UUID, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	Desactivar(ctx context.Context, usuarioID uuid.UUID, id uuid.UUID) error
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func (s *clienteService) Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	nacimiento, err := time.ParseInLocation(formatoFechaNacimiento, req.FechaNacimiento, time.Local)
	if err != nil {
		return nil, errors.New("fecha_nacimiento inválida (formato DD-MM-YYYY)")
	}
	if edadEn(nacimiento, time.Now()) < edadMinima {
		return nil, errors.New("el cliente debe ser mayor de edad")
	}
	// Passport holders are foreign customers; DUI holders are national.
	if req.TipoDocumento == "DUI" && req.TipoCliente != model.ClienteNacional {
		return nil, errors.New("un cliente con DUI debe registrarse como Nacional")
	}
	if req.TipoDocumento == "Pasaporte" && req.TipoCliente != model.ClienteExtranjero {
		return nil, errors.New("un cliente con Pasaporte debe registrarse como Extranjero")
	}

	if existente, err := s.repo.FindByDocumento(ctx, req.TipoDocumento, req.NumeroDocumento); err == nil && existente != nil {
		return nil, errors.New("ya existe un cliente con ese documento")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existente, err := s.repo.FindByEmail(ctx, req.Email); err == nil && existente != nil {
		return nil, errors.New("ya existe un cliente con ese email")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	c := &model.Cliente{
		Nombres:         req.Nombres,
		Apellidos:       req.Apellidos,
		TipoDocumento:   req.TipoDocumento,
		NumeroDocumento: req.NumeroDocumento,
		Direccion:       req.Direccion,
		Telefono:        req.Telefono,
		Email:           req.Email,
		TipoCliente:     req.TipoCliente,
		FechaNacimiento: nacimiento,
		Estado:          model.ClienteActivo,
		Activo:          true,
		CreatedBy:       &usuarioID,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Listar(ctx context.Context, filter dto.ClienteFilter) (*dto.ClienteListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	clientes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		items = append(items, *clienteToResponse(&clientes[i]))
	}
	return &dto.ClienteListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *clienteService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cliente no encontrado")
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Actualizar(ctx context.Context, usuarioID uuid.UUID, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cliente no encontrado")
	}
	if req.Nombres != nil {
		c.Nombres = *req.Nombres
	}
	if req.Apellidos != nil {
		c.Apellidos = *req.Apellidos
	}
	if req.Direccion != nil {
		c.Direccion = *req.Direccion
	}
	if req.Telefono != nil {
		c.Telefono = *req.Telefono
	}
	if req.Email != nil && *req.Email != c.Email {
		if existente, err := s.repo.FindByEmail(ctx, *req.Email); err == nil && existente != nil && existente.ID != id {
			return nil, errors.New("ya existe un cliente con ese email")
		}
		c.Email = *req.Email
	}
	if req.Estado != nil {
		c.Estado = *req.Estado
	}
	c.ModifiedBy = &usuarioID
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Desactivar(ctx context.Context, usuarioID uuid.UUID, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("cliente no encontrado")
	}
	return s.repo.SoftDelete(ctx, id, &usuarioID)
}

// edadEn returns completed years between nacimiento and ref.
func edadEn(nacimiento, ref time.Time) int {
	edad := ref.Year() - nacimiento.Year()
	if ref.YearDay() < nacimiento.YearDay() {
		edad--
	}
	return edad
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:              c.ID.String(),
		Nombres:         c.Nombres,
		Apellidos:       c.Apellidos,
		TipoDocumento:   c.TipoDocumento,
		NumeroDocumento: c.NumeroDocumento,
		Direccion:       c.Direccion,
		Telefono:        c.Telefono,
		Email:           c.Email,
		TipoCliente:     c.TipoCliente,
		FechaNacimiento: c.FechaNacimiento.Format(formatoFechaNacimiento),
		Estado:          c.Estado,
		Activo:          c.Activo,
	}
}
