package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pago is one entry of a rental's append-only payment ledger.
// TipoPago:  "Efectivo" | "Tarjeta de Credito" | "Tarjeta de Debito" | "Transferencia"
// Concepto:  "Anticipo" | "Pago Final" | "Cargo Adicional" | "Cargo por Retraso" | "Deposito" | "Reembolso"
//
// Monto is signed: a negative amount records a refund. Rows are never
// updated in place; corrections are posted as new rows.
type Pago struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AlquilerID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Monto      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TipoPago   string          `gorm:"type:varchar(20);not null"`
	Concepto   string          `gorm:"type:varchar(20);not null"`
	FechaPago  time.Time       `gorm:"not null"`
	Referencia *string         `gorm:"type:varchar(150)"`
	Activo     bool            `gorm:"not null;default:true"`
	CreatedBy  *uuid.UUID      `gorm:"type:uuid"`
	ModifiedBy *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Alquiler *Alquiler `gorm:"foreignKey:AlquilerID"`
}

// Payment conceptos.
const (
	ConceptoAnticipo       = "Anticipo"
	ConceptoPagoFinal      = "Pago Final"
	ConceptoCargoAdicional = "Cargo Adicional"
	ConceptoCargoRetraso   = "Cargo por Retraso"
	ConceptoDeposito       = "Deposito"
	ConceptoReembolso      = "Reembolso"
)

// ConceptosServicio are the conceptos that count toward covering the
// service amount. Deposito and Reembolso are excluded: the deposit is a
// refundable hold, not revenue.
var ConceptosServicio = []string{
	ConceptoAnticipo,
	ConceptoPagoFinal,
	ConceptoCargoAdicional,
	ConceptoCargoRetraso,
}
