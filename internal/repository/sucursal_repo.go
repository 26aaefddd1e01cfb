package repository

import (
	"context"

	"github.com/Neith21/AutoRent-Leon/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SucursalRepository interface {
	Create(ctx context.Context, s *model.Sucursal) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sucursal, error)
	FindByNombre(ctx context.Context, nombre string) (*model.Sucursal, error)
	List(ctx context.Context) ([]model.Sucursal, error)
	Update(ctx context.Context, s *model.Sucursal) error
	SoftDelete(ctx context.Context, id uuid.UUID, modifiedBy *uuid.UUID) error
	// TieneVehiculos reports whether active vehicles are still assigned to
	// the branch; a branch with vehicles cannot be deactivated.
	TieneVehiculos(ctx context.Context, id uuid.UUID) (bool, error)
}

type sucursalRepo struct{ db *gorm.DB }

func NewSucursalRepository(db *gorm.DB) SucursalRepository { return &sucursalRepo{db: db} }

func (r *sucursalRepo) Create(ctx context.Context, s *model.Sucursal) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sucursalRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sucursal, error) {
	var s model.Sucursal
	err := r.db.WithContext(ctx).Preload("Distrito.Municipio").First(&s, "id = ?", id).Error
	return &s, err
}

func (r *sucursalRepo) FindByNombre(ctx context.Context, nombre string) (*model.Sucursal, error) {
	var s model.Sucursal
	err := r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&s).Error
	return &s, err
}

func (r *sucursalRepo) List(ctx context.Context) ([]model.Sucursal, error) {
	var sucursales []model.Sucursal
	err := r.db.WithContext(ctx).
		Preload("Distrito").
		Where("activo = true").
		Order("nombre ASC").
		Find(&sucursales).Error
	return sucursales, err
}

func (r *sucursalRepo) Update(ctx context.Context, s *model.Sucursal) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *sucursalRepo) SoftDelete(ctx context.Context, id uuid.UUID, modifiedBy *uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Sucursal{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"activo": false, "modified_by": modifiedBy}).Error
}

func (r *sucursalRepo) TieneVehiculos(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Vehiculo{}).
		Where("sucursal_id = ? AND activo = true", id).
		Count(&count).Error
	return count > 0, err
}
