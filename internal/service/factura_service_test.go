package service_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/Neith21/AutoRent-Leon/internal/dto"
	"github.com/Neith21/AutoRent-Leon/internal/model"
	"github.com/Neith21/AutoRent-Leon/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerarNumeroFactura_Formato(t *testing.T) {
	fecha := time.Date(2026, 7, 4, 15, 30, 0, 0, time.Local)
	numero := service.GenerarNumeroFactura(fecha)

	assert.Regexp(t, regexp.MustCompile(`^INV-20260704-[0-9A-F]{4}$`), numero)

	// Random suffix: two consecutive numbers should differ
	assert.NotEqual(t, numero, service.GenerarNumeroFactura(fecha))
}

func seedFactura(repo *stubFacturaRepo, estado string) *model.Factura {
	f := &model.Factura{
		AlquilerID:    uuid.New(),
		NumeroFactura: service.GenerarNumeroFactura(time.Now()),
		FechaEmision:  time.Now(),
		MontoTotal:    decimal.NewFromInt(240),
		Estado:        estado,
		Activo:        true,
	}
	_ = repo.Create(context.Background(), nil, f)
	return f
}

func TestActualizarFactura_EmitidaAPagada(t *testing.T) {
	repo := newStubFacturaRepo()
	svc := service.NewFacturaService(repo, nil, nil)
	f := seedFactura(repo, model.FacturaEmitida)

	resp, err := svc.Actualizar(context.Background(), uuid.New(), f.ID, dto.ActualizarFacturaRequest{
		Estado: model.FacturaPagada,
	})
	require.NoError(t, err)
	assert.Equal(t, model.FacturaPagada, resp.Estado)
}

func TestActualizarFactura_AnuladaEsTerminal(t *testing.T) {
	repo := newStubFacturaRepo()
	svc := service.NewFacturaService(repo, nil, nil)
	f := seedFactura(repo, model.FacturaAnulada)

	_, err := svc.Actualizar(context.Background(), uuid.New(), f.ID, dto.ActualizarFacturaRequest{
		Estado: model.FacturaEmitida,
	})
	assert.ErrorContains(t, err, "anulada no puede modificarse")
}

func TestActualizarFactura_PagadaNoVuelveAEmitida(t *testing.T) {
	repo := newStubFacturaRepo()
	svc := service.NewFacturaService(repo, nil, nil)
	f := seedFactura(repo, model.FacturaPagada)

	_, err := svc.Actualizar(context.Background(), uuid.New(), f.ID, dto.ActualizarFacturaRequest{
		Estado: model.FacturaEmitida,
	})
	assert.ErrorContains(t, err, "no puede volver a Emitida")
}

func TestObtenerPDFPath(t *testing.T) {
	repo := newStubFacturaRepo()
	svc := service.NewFacturaService(repo, nil, nil)
	f := seedFactura(repo, model.FacturaEmitida)

	// Without a generated PDF
	_, err := svc.ObtenerPDFPath(context.Background(), f.ID)
	assert.ErrorContains(t, err, "PDF no disponible")

	path := "/var/pdfs/" + f.ID.String() + ".pdf"
	f.PDFPath = &path
	got, err := svc.ObtenerPDFPath(context.Background(), f.ID)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	// The response exposes the download URL once the PDF exists
	resp, err := svc.Obtener(context.Background(), f.ID)
	require.NoError(t, err)
	require.NotNil(t, resp.PDFUrl)
	assert.Equal(t, "/v1/facturas/"+f.ID.String()+"/pdf", *resp.PDFUrl)
}
