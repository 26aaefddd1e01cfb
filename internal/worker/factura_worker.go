package worker

// factura_worker.go
// Processes invoice jobs from QueueFactura: renders the invoice PDF,
// stores its path, and enqueues the delivery email to the customer.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Neith21/AutoRent-Leon/internal/infra"
	"github.com/Neith21/AutoRent-Leon/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// FacturaJobPayload is the job envelope sent to QueueFactura.
type FacturaJobPayload struct {
	FacturaID string `json:"factura_id"`
}

type FacturaWorker struct {
	facturaRepo    repository.FacturaRepository
	dispatcher     *Dispatcher
	pdfStoragePath string
}

func NewFacturaWorker(facturaRepo repository.FacturaRepository, dispatcher *Dispatcher, pdfStoragePath string) *FacturaWorker {
	return &FacturaWorker{
		facturaRepo:    facturaRepo,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
	}
}

// Process handles a single invoice job:
//  1. Fetch the Factura with its rental, customer and vehicle
//  2. Render the PDF and store its path
//  3. Enqueue the delivery email with the PDF attached
func (w *FacturaWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload FacturaJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("factura_worker: invalid payload")
		return nil // malformed payloads are not retryable
	}
	facturaID, err := uuid.Parse(payload.FacturaID)
	if err != nil {
		log.Error().Str("factura_id", payload.FacturaID).Msg("factura_worker: invalid factura_id")
		return nil
	}

	factura, err := w.facturaRepo.FindByID(ctx, facturaID)
	if err != nil {
		return fmt.Errorf("factura_worker: factura %s not found: %w", payload.FacturaID, err)
	}

	pdfPath, err := infra.GenerarFacturaPDF(factura, w.pdfStoragePath)
	if err != nil {
		return fmt.Errorf("factura_worker: render PDF: %w", err)
	}
	factura.PDFPath = &pdfPath
	if err := w.facturaRepo.Update(ctx, nil, factura); err != nil {
		return fmt.Errorf("factura_worker: store pdf path: %w", err)
	}
	log.Info().Str("pdf", pdfPath).Str("factura", factura.NumeroFactura).Msg("factura_worker: PDF generated")

	if factura.Alquiler == nil || factura.Alquiler.Cliente == nil {
		log.Warn().Str("factura", factura.NumeroFactura).Msg("factura_worker: no customer to notify")
		return nil
	}
	cliente := factura.Alquiler.Cliente

	emailJob := EmailJobPayload{
		ToEmail: cliente.Email,
		Subject: fmt.Sprintf("Factura %s — AutoRent León", factura.NumeroFactura),
		Body: fmt.Sprintf("Estimado/a %s:\n\nAdjunto encontrará la factura de su alquiler.\nTotal: $%s\n\nAutoRent León",
			cliente.NombreCompleto(), factura.MontoTotal.StringFixed(2)),
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
		log.Warn().Err(err).Str("email", cliente.Email).Msg("factura_worker: failed to enqueue email")
		return nil // PDF exists; email can be re-sent manually
	}
	log.Info().Str("email", cliente.Email).Msg("factura_worker: email job enqueued")
	return nil
}
