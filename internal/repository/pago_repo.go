package repository

import (
	"context"

	"github.com/Neith21/AutoRent-Leon/internal/dto"
	"github.com/Neith21/AutoRent-Leon/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PagoRepository interface {
	Create(ctx context.Context, tx *gorm.DB, p *model.Pago) error
	ListByAlquiler(ctx context.Context, alquilerID uuid.UUID) ([]model.Pago, error)
	List(ctx context.Context, filter dto.PagoFilter) ([]model.Pago, int64, error)
	// SumPorConceptos aggregates active payment amounts for the given
	// conceptos. Pass the surrounding tx so the aggregate is read under the
	// same row locks as the mutation it supports.
	SumPorConceptos(ctx context.Context, tx *gorm.DB, alquilerID uuid.UUID, conceptos []string) (decimal.Decimal, error)
	// Existe reports whether an identical active payment
	// (concepto + monto) is already posted for the rental.
	Existe(ctx context.Context, tx *gorm.DB, alquilerID uuid.UUID, concepto string, monto decimal.Decimal) (bool, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type pagoRepo struct{ db *gorm.DB }

func NewPagoRepository(db *gorm.DB) PagoRepository { return &pagoRepo{db: db} }

func (r *pagoRepo) Create(ctx context.Context, tx *gorm.DB, p *model.Pago) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *pagoRepo) ListByAlquiler(ctx context.Context, alquilerID uuid.UUID) ([]model.Pago, error) {
	var pagos []model.Pago
	err := r.db.WithContext(ctx).
		Where("alquiler_id = ? AND activo = true", alquilerID).
		Order("fecha_pago ASC").
		Find(&pagos).Error
	return pagos, err
}

func (r *pagoRepo) List(ctx context.Context, filter dto.PagoFilter) ([]model.Pago, int64, error) {
	var pagos []model.Pago
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Pago{}).Where("activo = true")
	if filter.AlquilerID != "" {
		q = q.Where("alquiler_id = ?", filter.AlquilerID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("fecha_pago DESC").Offset(offset).Limit(filter.Limit).Find(&pagos).Error
	return pagos, total, err
}

func (r *pagoRepo) SumPorConceptos(ctx context.Context, tx *gorm.DB, alquilerID uuid.UUID, conceptos []string) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := tx.WithContext(ctx).Model(&model.Pago{}).
		Select("SUM(monto)").
		Where("alquiler_id = ? AND activo = true AND concepto IN ?", alquilerID, conceptos).
		Scan(&total).Error
	if err != nil || !total.Valid {
		return decimal.Zero, err
	}
	return total.Decimal, nil
}

func (r *pagoRepo) Existe(ctx context.Context, tx *gorm.DB, alquilerID uuid.UUID, concepto string, monto decimal.Decimal) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&model.Pago{}).
		Where("alquiler_id = ? AND activo = true AND concepto = ? AND monto = ?", alquilerID, concepto, monto).
		Count(&count).Error
	return count > 0, err
}

func (r *pagoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Pago{}).Where("id = ?", id).Update("activo", false).Error
}
