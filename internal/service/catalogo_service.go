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

// CatalogoService covers vehicle reference data (brands, models,
// categories) and the read-only geography tree.
type CatalogoService interface {
	CrearMarca(ctx context.Context, req dto.CrearMarcaRequest) (*dto.MarcaResponse, error)
	ListarMarcas(ctx context.Context) ([]dto.MarcaResponse, error)
	ActualizarMarca(ctx context.Context, id uuid.UUID, req dto.ActualizarCatalogoRequest) (*dto.MarcaResponse, error)
	DesactivarMarca(ctx context.Context, id uuid.UUID) error

	CrearModelo(ctx context.Context, req dto.CrearModeloRequest) (*dto.ModeloResponse, error)
	ListarModelos(ctx context.Context, marcaID *uuid.UUID) ([]dto.ModeloResponse, error)
	ActualizarModelo(ctx context.Context, id uuid.UUID, req dto.ActualizarCatalogoRequest) (*dto.ModeloResponse, error)
	DesactivarModelo(ctx context.Context, id uuid.UUID) error

	CrearCategoria(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error)
	ListarCategorias(ctx context.Context) ([]dto.CategoriaResponse, error)
	ActualizarCategoria(ctx context.Context, id uuid.UUID, req dto.ActualizarCatalogoRequest) (*dto.CategoriaResponse, error)
	DesactivarCategoria(ctx context.Context, id uuid.UUID) error

	ListarDepartamentos(ctx context.Context) ([]dto.DepartamentoResponse, error)
	ListarMunicipios(ctx context.Context, departamentoID *uuid.UUID) ([]dto.MunicipioResponse, error)
	ListarDistritos(ctx context.Context, municipioID *uuid.UUID) ([]dto.DistritoResponse, error)
}

type catalogoService struct {
	repo          repository.CatalogoRepository
	geografiaRepo repository.GeografiaRepository
}

func NewCatalogoService(repo repository.CatalogoRepository, geografiaRepo repository.GeografiaRepository) CatalogoService {
	return &catalogoService{repo: repo, geografiaRepo: geografiaRepo}
}

// ── Marcas ────────────────────────────────────────────────────────────────────

func (s *catalogoService) CrearMarca(ctx context.Context, req dto.CrearMarcaRequest) (*dto.MarcaResponse, error) {
	if existente, err := s.repo.MarcaPorNombre(ctx, req.Nombre); err == nil && existente != nil {
		return nil, errors.New("ya existe una marca con ese nombre")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	m := &model.Marca{Nombre: req.Nombre, Activo: true}
	if err := s.repo.CrearMarca(ctx, m); err != nil {
		return nil, err
	}
	return marcaToResponse(m), nil
}

func (s *catalogoService) ListarMarcas(ctx context.Context) ([]dto.MarcaResponse, error) {
	marcas, err := s.repo.ListarMarcas(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MarcaResponse, 0, len(marcas))
	for i := range marcas {
		resp = append(resp, *marcaToResponse(&marcas[i]))
	}
	return resp, nil
}

func (s *catalogoService) ActualizarMarca(ctx context.Context, id uuid.UUID, req dto.ActualizarCatalogoRequest) (*dto.MarcaResponse, error) {
	m, err := s.repo.MarcaPorID(ctx, id)
	if err != nil {
		return nil, errors.New("marca no encontrada")
	}
	if req.Nombre != nil {
		m.Nombre = *req.Nombre
	}
	if req.Activo != nil {
		m.Activo = *req.Activo
	}
	if err := s.repo.ActualizarMarca(ctx, m); err != nil {
		return nil, err
	}
	return marcaToResponse(m), nil
}

func (s *catalogoService) DesactivarMarca(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.MarcaPorID(ctx, id); err != nil {
		return errors.New("marca no encontrada")
	}
	return s.repo.DesactivarMarca(ctx, id)
}

// ── Modelos ───────────────────────────────────────────────────────────────────

func (s *catalogoService) CrearModelo(ctx context.Context, req dto.CrearModeloRequest) (*dto.ModeloResponse, error) {
	marcaID, err := uuid.Parse(req.MarcaID)
	if err != nil {
		return nil, errors.New("marca_id inválido")
	}
	if _, err := s.repo.MarcaPorID(ctx, marcaID); err != nil {
		return nil, errors.New("marca no encontrada")
	}
	m := &model.ModeloVehiculo{MarcaID: marcaID, Nombre: req.Nombre, Activo: true}
	if err := s.repo.CrearModelo(ctx, m); err != nil {
		return nil, err
	}
	return modeloToResponse(m), nil
}

func (s *catalogoService) ListarModelos(ctx context.Context, marcaID *uuid.UUID) ([]dto.ModeloResponse, error) {
	modelos, err := s.repo.ListarModelos(ctx, marcaID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ModeloResponse, 0, len(modelos))
	for i := range modelos {
		resp = append(resp, *modeloToResponse(&modelos[i]))
	}
	return resp, nil
}

func (s *catalogoService) ActualizarModelo(ctx context.Context, id uuid.UUID, req dto.ActualizarCatalogoRequest) (*dto.ModeloResponse, error) {
	m, err := s.repo.ModeloPorID(ctx, id)
	if err != nil {
		return nil, errors.New("modelo no encontrado")
	}
	if req.Nombre != nil {
		m.Nombre = *req.Nombre
	}
	if req.Activo != nil {
		m.Activo = *req.Activo
	}
	if err := s.repo.ActualizarModelo(ctx, m); err != nil {
		return nil, err
	}
	return modeloToResponse(m), nil
}

func (s *catalogoService) DesactivarModelo(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.ModeloPorID(ctx, id); err != nil {
		return errors.New("modelo no encontrado")
	}
	return s.repo.DesactivarModelo(ctx, id)
}

// ── Categorías ────────────────────────────────────────────────────────────────

func (s *catalogoService) CrearCategoria(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error) {
	if existente, err := s.repo.CategoriaPorNombre(ctx, req.Nombre); err == nil && existente != nil {
		return nil, errors.New("ya existe una categoría con ese nombre")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	c := &model.CategoriaVehiculo{Nombre: req.Nombre, Descripcion: req.Descripcion, Activo: true}
	if err := s.repo.CrearCategoria(ctx, c); err != nil {
		return nil, err
	}
	return categoriaToResponse(c), nil
}

func (s *catalogoService) ListarCategorias(ctx context.Context) ([]dto.CategoriaResponse, error) {
	categorias, err := s.repo.ListarCategorias(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CategoriaResponse, 0, len(categorias))
	for i := range categorias {
		resp = append(resp, *categoriaToResponse(&categorias[i]))
	}
	return resp, nil
}

func (s *catalogoService) ActualizarCategoria(ctx context.Context, id uuid.UUID, req dto.ActualizarCatalogoRequest) (*dto.CategoriaResponse, error) {
	c, err := s.repo.CategoriaPorID(ctx, id)
	if err != nil {
		return nil, errors.New("categoría no encontrada")
	}
	if req.Nombre != nil {
		c.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		c.Descripcion = req.Descripcion
	}
	if req.Activo != nil {
		c.Activo = *req.Activo
	}
	if err := s.repo.ActualizarCategoria(ctx, c); err != nil {
		return nil, err
	}
	return categoriaToResponse(c), nil
}

func (s *catalogoService) DesactivarCategoria(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.CategoriaPorID(ctx, id); err != nil {
		return errors.New("categoría no encontrada")
	}
	return s.repo.DesactivarCategoria(ctx, id)
}

// ── Geografía ─────────────────────────────────────────────────────────────────

func (s *catalogoService) ListarDepartamentos(ctx context.Context) ([]dto.DepartamentoResponse, error) {
	deps, err := s.geografiaRepo.ListarDepartamentos(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.DepartamentoResponse, 0, len(deps))
	for _, d := range deps {
		resp = append(resp, dto.DepartamentoResponse{ID: d.ID.String(), Nombre: d.Nombre})
	}
	return resp, nil
}

func (s *catalogoService) ListarMunicipios(ctx context.Context, departamentoID *uuid.UUID) ([]dto.MunicipioResponse, error) {
	muns, err := s.geografiaRepo.ListarMunicipios(ctx, departamentoID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MunicipioResponse, 0, len(muns))
	for _, m := range muns {
		resp = append(resp, dto.MunicipioResponse{
			ID:             m.ID.String(),
			DepartamentoID: m.DepartamentoID.String(),
			Nombre:         m.Nombre,
		})
	}
	return resp, nil
}

func (s *catalogoService) ListarDistritos(ctx context.Context, municipioID *uuid.UUID) ([]dto.DistritoResponse, error) {
	dists, err := s.geografiaRepo.ListarDistritos(ctx, municipioID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.DistritoResponse, 0, len(dists))
	for _, d := range dists {
		resp = append(resp, dto.DistritoResponse{
			ID:          d.ID.String(),
			MunicipioID: d.MunicipioID.String(),
			Nombre:      d.Nombre,
		})
	}
	return resp, nil
}

// ── mapping helpers ───────────────────────────────────────────────────────────

func marcaToResponse(m *model.Marca) *dto.MarcaResponse {
	return &dto.MarcaResponse{ID: m.ID.String(), Nombre: m.Nombre, Activo: m.Activo}
}

func modeloToResponse(m *model.ModeloVehiculo) *dto.ModeloResponse {
	resp := &dto.ModeloResponse{
		ID:      m.ID.String(),
		MarcaID: m.MarcaID.String(),
		Nombre:  m.Nombre,
		Activo:  m.Activo,
	}
	if m.Marca != nil {
		resp.Marca = m.Marca.Nombre
	}
	return resp
}

func categoriaToResponse(c *model.CategoriaVehiculo) *dto.CategoriaResponse {
	return &dto.CategoriaResponse{
		ID:          c.ID.String(),
		Nombre:      c.Nombre,
		Descripcion: c.Descripcion,
		Activo:      c.Activo,
	}
}
