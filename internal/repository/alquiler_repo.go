package repository

import (
	"context"
	"time"

	"github.com/Neith21/AutoRent-Leon/internal/dto"
	"github.com/Neith21/AutoRent-Leon/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AlquilerRepository interface {
	Create(ctx context.Context, tx *gorm.DB, a *model.Alquiler) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Alquiler, error)
	// FindByIDForUpdate locks the rental row for the duration of tx.
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Alquiler, error)
	// ExisteConflicto reports whether another Activo/Reservado rental for the
	// vehicle overlaps [inicio, fin]. excluir skips one rental (the one being
	// updated). Must run inside the tx holding the vehicle row lock.
	ExisteConflicto(ctx context.Context, tx *gorm.DB, vehiculoID uuid.UUID, inicio, fin time.Time, excluir *uuid.UUID) (bool, error)
	// CountVigentesPorCliente counts the customer's Activo/Reservado rentals.
	// Runs on tx so creation-time limit checks see the transaction's view.
	CountVigentesPorCliente(ctx context.Context, tx *gorm.DB, clienteID uuid.UUID) (int64, error)
	List(ctx context.Context, filter dto.AlquilerFilter) ([]model.Alquiler, int64, error)
	Update(ctx context.Context, tx *gorm.DB, a *model.Alquiler) error
	SoftDelete(ctx context.Context, tx *gorm.DB, id uuid.UUID, modifiedBy *uuid.UUID) error
	// MarcarRetrasados flips active=true Activo rentals past their end date
	// to Retrasado; returns the number of rows updated.
	MarcarRetrasados(ctx context.Context, corte time.Time) (int64, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type alquilerRepo struct{ db *gorm.DB }

func NewAlquilerRepository(db *gorm.DB) AlquilerRepository { return &alquilerRepo{db: db} }

func (r *alquilerRepo) DB() *gorm.DB { return r.db }

func (r *alquilerRepo) Create(ctx context.Context, tx *gorm.DB, a *model.Alquiler) error {
	return tx.WithContext(ctx).Create(a).Error
}

func (r *alquilerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Alquiler, error) {
	var a model.Alquiler
	err := r.db.WithContext(ctx).
		Preload("Cliente").Preload("Vehiculo").Preload("Pagos").
		Where("activo = true").
		First(&a, "id = ?", id).Error
	return &a, err
}

func (r *alquilerRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Alquiler, error) {
	var a model.Alquiler
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("activo = true").
		First(&a, "id = ?", id).Error
	return &a, err
}

func (r *alquilerRepo) ExisteConflicto(ctx context.Context, tx *gorm.DB, vehiculoID uuid.UUID, inicio, fin time.Time, excluir *uuid.UUID) (bool, error) {
	var count int64
	q := tx.WithContext(ctx).Model(&model.Alquiler{}).
		Where("vehiculo_id = ? AND activo = true", vehiculoID).
		Where("estado IN ?", []string{model.AlquilerActivo, model.AlquilerReservado}).
		Where("fecha_fin >= ? AND fecha_inicio <= ?", inicio, fin)
	if excluir != nil {
		q = q.Where("id <> ?", *excluir)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *alquilerRepo) CountVigentesPorCliente(ctx context.Context, tx *gorm.DB, clienteID uuid.UUID) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&model.Alquiler{}).
		Where("cliente_id = ? AND activo = true", clienteID).
		Where("estado IN ?", []string{model.AlquilerActivo, model.AlquilerReservado}).
		Count(&count).Error
	return count, err
}

func (r *alquilerRepo) List(ctx context.Context, filter dto.AlquilerFilter) ([]model.Alquiler, int64, error) {
	var alquileres []model.Alquiler
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Alquiler{}).Where("activo = true")

	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.ClienteID != "" {
		q = q.Where("cliente_id = ?", filter.ClienteID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Cliente").Preload("Vehiculo").Preload("Pagos").
		Order("fecha_inicio DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&alquileres).Error

	return alquileres, total, err
}

func (r *alquilerRepo) Update(ctx context.Context, tx *gorm.DB, a *model.Alquiler) error {
	return tx.WithContext(ctx).Save(a).Error
}

func (r *alquilerRepo) SoftDelete(ctx context.Context, tx *gorm.DB, id uuid.UUID, modifiedBy *uuid.UUID) error {
	return tx.WithContext(ctx).Model(&model.Alquiler{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"activo": false, "modified_by": modifiedBy}).Error
}

func (r *alquilerRepo) MarcarRetrasados(ctx context.Context, corte time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Alquiler{}).
		Where("estado = ? AND activo = true AND fecha_fin < ?", model.AlquilerActivo, corte).
		Update("estado", model.AlquilerRetrasado)
	return res.RowsAffected, res.Error
}
