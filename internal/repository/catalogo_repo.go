package repository

import (
	"context"

	"github.com/Neith21/AutoRent-Leon/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogoRepository covers the vehicle catalog reference data:
// brands, vehicle models and vehicle categories.
type CatalogoRepository interface {
	CrearMarca(ctx context.Context, m *model.Marca) error
	MarcaPorID(ctx context.Context, id uuid.UUID) (*model.Marca, error)
	MarcaPorNombre(ctx context.Context, nombre string) (*model.Marca, error)
	ListarMarcas(ctx context.Context) ([]model.Marca, error)
	ActualizarMarca(ctx context.Context, m *model.Marca) error
	DesactivarMarca(ctx context.Context, id uuid.UUID) error

	CrearModelo(ctx context.Context, m *model.ModeloVehiculo) error
	ModeloPorID(ctx context.Context, id uuid.UUID) (*model.ModeloVehiculo, error)
	ListarModelos(ctx context.Context, marcaID *uuid.UUID) ([]model.ModeloVehiculo, error)
	ActualizarModelo(ctx context.Context, m *model.ModeloVehiculo) error
	DesactivarModelo(ctx context.Context, id uuid.UUID) error

	CrearCategoria(ctx context.Context, c *model.CategoriaVehiculo) error
	CategoriaPorID(ctx context.Context, id uuid.UUID) (*model.CategoriaVehiculo, error)
	CategoriaPorNombre(ctx context.Context, nombre string) (*model.CategoriaVehiculo, error)
	ListarCategorias(ctx context.Context) ([]model.CategoriaVehiculo, error)
	ActualizarCategoria(ctx context.Context, c *model.CategoriaVehiculo) error
	DesactivarCategoria(ctx context.Context, id uuid.UUID) error
}

type catalogoRepo struct{ db *gorm.DB }

func NewCatalogoRepository(db *gorm.DB) CatalogoRepository { return &catalogoRepo{db: db} }

// ── Marcas ───────────────────────────────────────────────────────────────────

func (r *catalogoRepo) CrearMarca(ctx context.Context, m *model.Marca) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *catalogoRepo) MarcaPorID(ctx context.Context, id uuid.UUID) (*model.Marca, error) {
	var m model.Marca
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	return &m, err
}

func (r *catalogoRepo) MarcaPorNombre(ctx context.Context, nombre string) (*model.Marca, error) {
	var m model.Marca
	err := r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&m).Error
	return &m, err
}

func (r *catalogoRepo) ListarMarcas(ctx context.Context) ([]model.Marca, error) {
	var marcas []model.Marca
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre ASC").Find(&marcas).Error
	return marcas, err
}

func (r *catalogoRepo) ActualizarMarca(ctx context.Context, m *model.Marca) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *catalogoRepo) DesactivarMarca(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Marca{}).Where("id = ?", id).Update("activo", false).Error
}

// ── Modelos ──────────────────────────────────────────────────────────────────

func (r *catalogoRepo) CrearModelo(ctx context.Context, m *model.ModeloVehiculo) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *catalogoRepo) ModeloPorID(ctx context.Context, id uuid.UUID) (*model.ModeloVehiculo, error) {
	var m model.ModeloVehiculo
	err := r.db.WithContext(ctx).Preload("Marca").First(&m, "id = ?", id).Error
	return &m, err
}

func (r *catalogoRepo) ListarModelos(ctx context.Context, marcaID *uuid.UUID) ([]model.ModeloVehiculo, error) {
	var modelos []model.ModeloVehiculo
	q := r.db.WithContext(ctx).Preload("Marca").Where("activo = true")
	if marcaID != nil {
		q = q.Where("marca_id = ?", *marcaID)
	}
	err := q.Order("nombre ASC").Find(&modelos).Error
	return modelos, err
}

func (r *catalogoRepo) ActualizarModelo(ctx context.Context, m *model.ModeloVehiculo) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *catalogoRepo) DesactivarModelo(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.ModeloVehiculo{}).Where("id = ?", id).Update("activo", false).Error
}

// ── Categorias ───────────────────────────────────────────────────────────────

func (r *catalogoRepo) CrearCategoria(ctx context.Context, c *model.CategoriaVehiculo) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *catalogoRepo) CategoriaPorID(ctx context.Context, id uuid.UUID) (*model.CategoriaVehiculo, error) {
	var c model.CategoriaVehiculo
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *catalogoRepo) CategoriaPorNombre(ctx context.Context, nombre string) (*model.CategoriaVehiculo, error) {
	var c model.CategoriaVehiculo
	err := r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&c).Error
	return &c, err
}

func (r *catalogoRepo) ListarCategorias(ctx context.Context) ([]model.CategoriaVehiculo, error) {
	var categorias []model.CategoriaVehiculo
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre ASC").Find(&categorias).Error
	return categorias, err
}

func (r *catalogoRepo) ActualizarCategoria(ctx context.Context, c *model.CategoriaVehiculo) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *catalogoRepo) DesactivarCategoria(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.CategoriaVehiculo{}).Where("id = ?", id).Update("activo", false).Error
}
