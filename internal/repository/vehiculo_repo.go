package repository

import (
	"context"

	"github.com/Neith21/AutoRent-Leon/internal/dto"
	"github.com/Neith21/AutoRent-Leon/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VehiculoRepository interface {
	Create(ctx context.Context, v *model.Vehiculo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Vehiculo, error)
	// FindByIDForUpdate locks the vehicle row for the duration of tx.
	// Taken before any overlap check to serialize concurrent bookings.
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Vehiculo, error)
	FindByPlaca(ctx context.Context, placa string) (*model.Vehiculo, error)
	List(ctx context.Context, filter dto.VehiculoFilter) ([]model.Vehiculo, int64, error)
	Update(ctx context.Context, v *model.Vehiculo) error
	UpdateEstadoTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, estado string) error
	SoftDelete(ctx context.Context, id uuid.UUID, modifiedBy *uuid.UUID) error
}

type vehiculoRepo struct{ db *gorm.DB }

func NewVehiculoRepository(db *gorm.DB) VehiculoRepository { return &vehiculoRepo{db: db} }

func (r *vehiculoRepo) Create(ctx context.Context, v *model.Vehiculo) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *vehiculoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Vehiculo, error) {
	var v model.Vehiculo
	err := r.db.WithContext(ctx).
		Preload("ModeloVehiculo.Marca").Preload("CategoriaVehiculo").
		First(&v, "id = ?", id).Error
	return &v, err
}

func (r *vehiculoRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Vehiculo, error) {
	var v model.Vehiculo
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&v, "id = ?", id).Error
	return &v, err
}

func (r *vehiculoRepo) FindByPlaca(ctx context.Context, placa string) (*model.Vehiculo, error) {
	var v model.Vehiculo
	err := r.db.WithContext(ctx).Where("placa = ?", placa).First(&v).Error
	return &v, err
}

func (r *vehiculoRepo) List(ctx context.Context, filter dto.VehiculoFilter) ([]model.Vehiculo, int64, error) {
	var vehiculos []model.Vehiculo
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Vehiculo{}).Where("activo = true")
	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.SucursalID != "" {
		q = q.Where("sucursal_id = ?", filter.SucursalID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("ModeloVehiculo.Marca").Preload("CategoriaVehiculo").
		Order("placa ASC").
		Offset(offset).Limit(filter.Limit).
		Find(&vehiculos).Error
	return vehiculos, total, err
}

func (r *vehiculoRepo) Update(ctx context.Context, v *model.Vehiculo) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *vehiculoRepo) UpdateEstadoTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, estado string) error {
	return tx.WithContext(ctx).Model(&model.Vehiculo{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *vehiculoRepo) SoftDelete(ctx context.Context, id uuid.UUID, modifiedBy *uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Vehiculo{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"activo": false, "modified_by": modifiedBy}).Error
}
