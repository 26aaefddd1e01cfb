package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// AgregarPagoRequest appends one payment to an existing rental's ledger.
type AgregarPagoRequest struct {
	Monto      decimal.Decimal `json:"monto"      validate:"required"`
	TipoPago   string          `json:"tipo_pago"  validate:"required,oneof=Efectivo 'Tarjeta de Credito' 'Tarjeta de Debito' Transferencia"`
	Concepto   string          `json:"concepto"   validate:"required,oneof=Anticipo 'Pago Final' 'Cargo Adicional' 'Cargo por Retraso' Deposito"`
	Referencia *string         `json:"referencia" validate:"omitempty,max=150"`
}

type PagoFilter struct {
	AlquilerID string `form:"alquiler_id" validate:"omitempty,uuid"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PagoResponse struct {
	ID         string          `json:"id"`
	AlquilerID string          `json:"alquiler_id"`
	Monto      decimal.Decimal `json:"monto"`
	TipoPago   string          `json:"tipo_pago"`
	Concepto   string          `json:"concepto"`
	FechaPago  string          `json:"fecha_pago"`
	Referencia *string         `json:"referencia"`
}

type PagoListResponse struct {
	Data  []PagoResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
