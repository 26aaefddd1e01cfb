package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Factura is the invoice issued for a finished rental (one per Alquiler).
// Estado: "Emitida" | "Pagada" | "Anulada"
type Factura struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AlquilerID    uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	NumeroFactura string          `gorm:"type:varchar(50);uniqueIndex;not null"`
	FechaEmision  time.Time       `gorm:"not null"`
	MontoTotal    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Referencia    *string
	PDFPath       *string
	Estado        string     `gorm:"type:varchar(20);not null;default:'Emitida'"`
	Activo        bool       `gorm:"not null;default:true"`
	CreatedBy     *uuid.UUID `gorm:"type:uuid"`
	ModifiedBy    *uuid.UUID `gorm:"type:uuid"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Alquiler *Alquiler `gorm:"foreignKey:AlquilerID"`
}

// Invoice estados.
const (
	FacturaEmitida = "Emitida"
	FacturaPagada  = "Pagada"
	FacturaAnulada = "Anulada"
)
