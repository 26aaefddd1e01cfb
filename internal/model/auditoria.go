package model

import (
	"time"

	"github.com/google/uuid"
)

// Auditoria is an explicit audit-log row written transactionally alongside
// mutations of rentals, payments, invoices and vehicle state.
type Auditoria struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Entidad   string     `gorm:"type:varchar(30);index:idx_auditoria_entidad;not null"`
	EntidadID uuid.UUID  `gorm:"type:uuid;index:idx_auditoria_entidad;not null"`
	UsuarioID *uuid.UUID `gorm:"type:uuid;index"`
	Accion    string     `gorm:"type:varchar(50);not null"`
	Detalle   *string
	CreatedAt time.Time
}
