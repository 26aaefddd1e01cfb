package infra

// pdf.go — invoice PDF rendering with go-pdf/fpdf.
// A4 invoice with business header, invoice number and dates, customer and
// vehicle block, payment ledger table and bold total.
// The output file is saved to storagePath/factura_{numero}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Neith21/AutoRent-Leon/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerarFacturaPDF renders the invoice for a finished rental. The Factura
// must come with Alquiler, Alquiler.Cliente, Alquiler.Vehiculo and
// Alquiler.Pagos loaded. Returns the absolute path of the written file.
func GenerarFacturaPDF(f *model.Factura, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("factura_%s.pdf", strings.ReplaceAll(f.NumeroFactura, "/", "_"))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW, 10, "AutoRent León", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Alquiler de vehículos", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Invoice info ─────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW/2, 6, "Factura "+f.NumeroFactura, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW/2, 6, "Emitida: "+f.FechaEmision.Format("02/01/2006 15:04"), "", 1, "R", false, 0, "")
	pdf.CellFormat(contentW, 5, "Estado: "+f.Estado, "", 1, "L", false, 0, "")
	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	// ── Customer and vehicle block ───────────────────────────────────────────
	a := f.Alquiler
	if a != nil {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW, 6, "Datos del alquiler", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		if a.Cliente != nil {
			pdf.CellFormat(contentW, 5, "Cliente: "+a.Cliente.NombreCompleto(), "", 1, "L", false, 0, "")
			pdf.CellFormat(contentW, 5,
				fmt.Sprintf("%s: %s", a.Cliente.TipoDocumento, a.Cliente.NumeroDocumento), "", 1, "L", false, 0, "")
		}
		if a.Vehiculo != nil {
			pdf.CellFormat(contentW, 5, "Vehículo: "+a.Vehiculo.Placa, "", 1, "L", false, 0, "")
		}
		pdf.CellFormat(contentW, 5, "Desde: "+a.FechaInicio.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
		pdf.CellFormat(contentW, 5, "Hasta: "+a.FechaFin.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
		if a.FechaDevolucionReal != nil {
			pdf.CellFormat(contentW, 5, "Devuelto: "+a.FechaDevolucionReal.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}

	// ── Payment ledger ───────────────────────────────────────────────────────
	col1 := contentW * 0.30 // concepto
	col2 := contentW * 0.25 // tipo de pago
	col3 := contentW * 0.25 // fecha
	col4 := contentW * 0.20 // monto

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Concepto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Tipo de pago", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "Fecha", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 6, "Monto", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	if a != nil {
		for _, p := range a.Pagos {
			if !p.Activo {
				continue
			}
			pdf.CellFormat(col1, 5, p.Concepto, "", 0, "L", false, 0, "")
			pdf.CellFormat(col2, 5, p.TipoPago, "", 0, "L", false, 0, "")
			pdf.CellFormat(col3, 5, p.FechaPago.Format("02/01/2006"), "", 0, "L", false, 0, "")
			pdf.CellFormat(col4, 5, "$"+p.Monto.StringFixed(2), "", 1, "R", false, 0, "")
		}
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Total ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(col1+col2+col3, 8, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 8, "$"+f.MontoTotal.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(contentW, 5, "Gracias por su preferencia.", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
