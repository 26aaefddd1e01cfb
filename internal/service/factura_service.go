package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Neith21/AutoRent-Leon/internal/dto"
	"github.com/Neith21/AutoRent-Leon/internal/model"
	"github.com/Neith21/AutoRent-Leon/internal/repository"
	"github.com/Neith21/AutoRent-Leon/internal/worker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FacturaService interface {
	Listar(ctx context.Context, page, limit int) (*dto.FacturaListResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.FacturaResponse, error)
	Actualizar(ctx context.Context, usuarioID uuid.UUID, id uuid.UUID, req dto.ActualizarFacturaRequest) (*dto.FacturaResponse, error)
	ObtenerPDFPath(ctx context.Context, id uuid.UUID) (string, error)
}

type facturaService struct {
	repo       repository.FacturaRepository
	auditRepo  repository.AuditoriaRepository
	dispatcher *worker.Dispatcher
}

func NewFacturaService(repo repository.FacturaRepository, auditRepo repository.AuditoriaRepository, dispatcher *worker.Dispatcher) FacturaService {
	return &facturaService{repo: repo, auditRepo: auditRepo, dispatcher: dispatcher}
}

// GenerarNumeroFactura builds an invoice number of the form
// INV-YYYYMMDD-XXXX, where XXXX is a random hex suffix.
func GenerarNumeroFactura(fecha time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:4]
	return fmt.Sprintf("INV-%s-%s", fecha.Format("20060102"), strings.ToUpper(suffix))
}

// crearFacturaConReintento inserts the invoice, regenerating the random
// number suffix on a unique-index collision. Each attempt runs under a
// savepoint: without it the failed INSERT would abort the surrounding
// Postgres transaction and every retry after the first would fail too.
// Only duplicate-key errors are retried.
func crearFacturaConReintento(ctx context.Context, repo repository.FacturaRepository, tx *gorm.DB, f *model.Factura) error {
	const sp = "sp_numero_factura"
	var err error
	for intento := 0; intento < 5; intento++ {
		f.NumeroFactura = GenerarNumeroFactura(f.FechaEmision)
		if tx != nil {
			if spErr := tx.SavePoint(sp).Error; spErr != nil {
				return spErr
			}
		}
		if err = repo.Create(ctx, tx, f); err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		if tx != nil {
			if rbErr := tx.RollbackTo(sp).Error; rbErr != nil {
				return rbErr
			}
		}
	}
	return fmt.Errorf("no se pudo generar un número de factura único: %w", err)
}

func (s *facturaService) Listar(ctx context.Context, page, limit int) (*dto.FacturaListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	facturas, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.FacturaResponse, 0, len(facturas))
	for i := range facturas {
		items = append(items, *facturaToResponse(&facturas[i]))
	}
	return &dto.FacturaListResponse{
		Data:  items,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func (s *facturaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.FacturaResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("factura no encontrada")
	}
	return facturaToResponse(f), nil
}

// Actualizar applies a status transition. Anulada is terminal and
// triggers a notice e-mail to the customer.
func (s *facturaService) Actualizar(ctx context.Context, usuarioID uuid.UUID, id uuid.UUID, req dto.ActualizarFacturaRequest) (*dto.FacturaResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("factura no encontrada")
	}
	if f.Estado == model.FacturaAnulada {
		return nil, errors.New("una factura anulada no puede modificarse")
	}
	if f.Estado == model.FacturaPagada && req.Estado == model.FacturaEmitida {
		return nil, errors.New("una factura pagada no puede volver a Emitida")
	}

	f.Estado = req.Estado
	if req.Referencia != nil {
		f.Referencia = req.Referencia
	}
	f.ModifiedBy = &usuarioID
	if err := s.repo.Update(ctx, nil, f); err != nil {
		return nil, err
	}

	if s.auditRepo != nil {
		detalle := fmt.Sprintf("Factura %s → %s", f.NumeroFactura, req.Estado)
		_ = s.auditRepo.Create(ctx, nil, &model.Auditoria{
			Entidad:   "factura",
			EntidadID: f.ID,
			UsuarioID: &usuarioID,
			Accion:    "actualizar_estado",
			Detalle:   &detalle,
		})
	}

	if req.Estado == model.FacturaAnulada && s.dispatcher != nil &&
		f.Alquiler != nil && f.Alquiler.Cliente != nil {
		cliente := f.Alquiler.Cliente
		_ = s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{
			ToEmail: cliente.Email,
			Subject: fmt.Sprintf("Factura %s anulada — AutoRent León", f.NumeroFactura),
			Body: fmt.Sprintf("Estimado/a %s:\n\nLa factura %s ha sido anulada. "+
				"Si tiene dudas, contacte a su sucursal.\n\nAutoRent León",
				cliente.NombreCompleto(), f.NumeroFactura),
		})
	}

	return facturaToResponse(f), nil
}

// ObtenerPDFPath returns the filesystem path of the generated invoice PDF.
func (s *facturaService) ObtenerPDFPath(ctx context.Context, id uuid.UUID) (string, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", errors.New("factura no encontrada")
	}
	if f.PDFPath == nil || *f.PDFPath == "" {
		return "", errors.New("PDF no disponible todavía para esta factura")
	}
	return *f.PDFPath, nil
}

func facturaToResponse(f *model.Factura) *dto.FacturaResponse {
	resp := &dto.FacturaResponse{
		ID:            f.ID.String(),
		AlquilerID:    f.AlquilerID.String(),
		NumeroFactura: f.NumeroFactura,
		FechaEmision:  f.FechaEmision.Format(dto.FormatoFecha),
		MontoTotal:    f.MontoTotal,
		Referencia:    f.Referencia,
		Estado:        f.Estado,
	}
	if f.Alquiler != nil && f.Alquiler.Cliente != nil {
		resp.ClienteNombre = f.Alquiler.Cliente.NombreCompleto()
	}
	if f.PDFPath != nil && *f.PDFPath != "" {
		u := "/v1/facturas/" + f.ID.String() + "/pdf"
		resp.PDFUrl = &u
	}
	return resp
}
