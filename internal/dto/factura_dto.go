package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ActualizarFacturaRequest changes the invoice status.
// Emitida → Pagada | Anulada; Anulada is terminal.
type ActualizarFacturaRequest struct {
	Estado     string  `json:"estado"     validate:"required,oneof=Emitida Pagada Anulada"`
	Referencia *string `json:"referencia" validate:"omitempty,max=500"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type FacturaResponse struct {
	ID            string          `json:"id"`
	AlquilerID    string          `json:"alquiler_id"`
	NumeroFactura string          `json:"numero_factura"`
	FechaEmision  string          `json:"fecha_emision"`
	MontoTotal    decimal.Decimal `json:"monto_total"`
	Referencia    *string         `json:"referencia"`
	Estado        string          `json:"estado"`
	ClienteNombre string          `json:"cliente_nombre,omitempty"`
	PDFUrl        *string         `json:"pdf_url,omitempty"`
}

type FacturaListResponse struct {
	Data  []FacturaResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
