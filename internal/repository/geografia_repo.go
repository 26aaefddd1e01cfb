package repository

import (
	"context"

	"github.com/Neith21/AutoRent-Leon/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GeografiaRepository exposes the read-only geography tree.
type GeografiaRepository interface {
	ListarDepartamentos(ctx context.Context) ([]model.Departamento, error)
	ListarMunicipios(ctx context.Context, departamentoID *uuid.UUID) ([]model.Municipio, error)
	ListarDistritos(ctx context.Context, municipioID *uuid.UUID) ([]model.Distrito, error)
	DistritoPorID(ctx context.Context, id uuid.UUID) (*model.Distrito, error)
}

type geografiaRepo struct{ db *gorm.DB }

func NewGeografiaRepository(db *gorm.DB) GeografiaRepository { return &geografiaRepo{db: db} }

func (r *geografiaRepo) ListarDepartamentos(ctx context.Context) ([]model.Departamento, error) {
	var deps []model.Departamento
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre ASC").Find(&deps).Error
	return deps, err
}

func (r *geografiaRepo) ListarMunicipios(ctx context.Context, departamentoID *uuid.UUID) ([]model.Municipio, error) {
	var muns []model.Municipio
	q := r.db.WithContext(ctx).Where("activo = true")
	if departamentoID != nil {
		q = q.Where("departamento_id = ?", *departamentoID)
	}
	err := q.Order("nombre ASC").Find(&muns).Error
	return muns, err
}

func (r *geografiaRepo) ListarDistritos(ctx context.Context, municipioID *uuid.UUID) ([]model.Distrito, error) {
	var dists []model.Distrito
	q := r.db.WithContext(ctx).Where("activo = true")
	if municipioID != nil {
		q = q.Where("municipio_id = ?", *municipioID)
	}
	err := q.Order("nombre ASC").Find(&dists).Error
	return dists, err
}

func (r *geografiaRepo) DistritoPorID(ctx context.Context, id uuid.UUID) (*model.Distrito, error) {
	var d model.Distrito
	err := r.db.WithContext(ctx).Preload("Municipio.Departamento").First(&d, "id = ?", id).Error
	return &d, err
}
