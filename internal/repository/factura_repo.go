package repository

import (
	"context"

	"github.com/Neith21/AutoRent-Leon/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FacturaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, f *model.Factura) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Factura, error)
	// FindByAlquiler runs inside tx when one is given so finalize sees its
	// own uncommitted state.
	FindByAlquiler(ctx context.Context, tx *gorm.DB, alquilerID uuid.UUID) (*model.Factura, error)
	List(ctx context.Context, page, limit int) ([]model.Factura, int64, error)
	Update(ctx context.Context, tx *gorm.DB, f *model.Factura) error
}

type facturaRepo struct{ db *gorm.DB }

func NewFacturaRepository(db *gorm.DB) FacturaRepository { return &facturaRepo{db: db} }

func (r *facturaRepo) Create(ctx context.Context, tx *gorm.DB, f *model.Factura) error {
	return tx.WithContext(ctx).Create(f).Error
}

func (r *facturaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Factura, error) {
	var f model.Factura
	err := r.db.WithContext(ctx).
		Preload("Alquiler.Cliente").Preload("Alquiler.Vehiculo").
		Where("activo = true").
		First(&f, "id = ?", id).Error
	return &f, err
}

func (r *facturaRepo) FindByAlquiler(ctx context.Context, tx *gorm.DB, alquilerID uuid.UUID) (*model.Factura, error) {
	db := r.db
	if tx != nil {
		db = tx
	}
	var f model.Factura
	err := db.WithContext(ctx).
		Where("alquiler_id = ? AND activo = true", alquilerID).
		First(&f).Error
	return &f, err
}

func (r *facturaRepo) List(ctx context.Context, page, limit int) ([]model.Factura, int64, error) {
	var facturas []model.Factura
	var total int64
	offset := (page - 1) * limit

	q := r.db.WithContext(ctx).Model(&model.Factura{}).Where("activo = true")
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Alquiler.Cliente").
		Order("fecha_emision DESC").
		Offset(offset).Limit(limit).
		Find(&facturas).Error
	return facturas, total, err
}

func (r *facturaRepo) Update(ctx context.Context, tx *gorm.DB, f *model.Factura) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Save(f).Error
}
