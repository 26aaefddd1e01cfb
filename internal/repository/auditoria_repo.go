package repository

import (
	"context"

	"github.com/Neith21/AutoRent-Leon/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditoriaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, a *model.Auditoria) error
	ListByEntidad(ctx context.Context, entidad string, entidadID uuid.UUID) ([]model.Auditoria, error)
}

type auditoriaRepo struct{ db *gorm.DB }

func NewAuditoriaRepository(db *gorm.DB) AuditoriaRepository { return &auditoriaRepo{db: db} }

func (r *auditoriaRepo) Create(ctx context.Context, tx *gorm.DB, a *model.Auditoria) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Create(a).Error
}

func (r *auditoriaRepo) ListByEntidad(ctx context.Context, entidad string, entidadID uuid.UUID) ([]model.Auditoria, error) {
	var regs []model.Auditoria
	err := r.db.WithContext(ctx).
		Where("entidad = ? AND entidad_id = ?", entidad, entidadID).
		Order("created_at DESC").
		Find(&regs).Error
	return regs, err
}
