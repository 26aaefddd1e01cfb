package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/Neith21/AutoRent-Leon/internal/dto"
	"github.com/Neith21/AutoRent-Leon/internal/model"
	"github.com/Neith21/AutoRent-Leon/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func crearClienteReq() dto.CrearClienteRequest {
	return dto.CrearClienteRequest{
		Nombres:         "María",
		Apellidos:       "Hernández",
		TipoDocumento:   "DUI",
		NumeroDocumento: "04567890-1",
		Direccion:       "Col. Escalón, San Salvador",
		Telefono:        "7777-1234",
		Email:           "maria@mail.test",
		TipoCliente:     model.ClienteNacional,
		FechaNacimiento: "15-06-1990",
	}
}

func TestCrearCliente_OK(t *testing.T) {
	repo := newStubClienteRepo()
	svc := service.NewClienteService(repo)

	resp, err := svc.Crear(context.Background(), uuid.New(), crearClienteReq())
	require.NoError(t, err)
	assert.Equal(t, model.ClienteActivo, resp.Estado)
	assert.Equal(t, "15-06-1990", resp.FechaNacimiento)
}

func TestCrearCliente_MenorDeEdad(t *testing.T) {
	repo := newStubClienteRepo()
	svc := service.NewClienteService(repo)

	req := crearClienteReq()
	req.FechaNacimiento = time.Now().AddDate(-17, 0, 0).Format("02-01-2006")
	_, err := svc.Crear(context.Background(), uuid.New(), req)
	assert.ErrorContains(t, err, "mayor de edad")
}

func TestCrearCliente_DocumentoYTipoConsistentes(t *testing.T) {
	repo := newStubClienteRepo()
	svc := service.NewClienteService(repo)

	req := crearClienteReq()
	req.TipoCliente = model.ClienteExtranjero // DUI + Extranjero
	_, err := svc.Crear(context.Background(), uuid.New(), req)
	assert.ErrorContains(t, err, "DUI debe registrarse como Nacional")

	req = crearClienteReq()
	req.TipoDocumento = "Pasaporte"
	req.TipoCliente = model.ClienteNacional // Pasaporte + Nacional
	_, err = svc.Crear(context.Background(), uuid.New(), req)
	assert.ErrorContains(t, err, "Pasaporte debe registrarse como Extranjero")
}

func TestCrearCliente_DocumentoDuplicado(t *testing.T) {
	repo := newStubClienteRepo()
	svc := service.NewClienteService(repo)

	_, err := svc.Crear(context.Background(), uuid.New(), crearClienteReq())
	require.NoError(t, err)

	req := crearClienteReq()
	req.Email = "otra@mail.test"
	_, err = svc.Crear(context.Background(), uuid.New(), req)
	assert.ErrorContains(t, err, "ya existe un cliente con ese documento")
}

func TestCrearCliente_EmailDuplicado(t *testing.T) {
	repo := newStubClienteRepo()
	svc := service.NewClienteService(repo)

	_, err := svc.Crear(context.Background(), uuid.New(), crearClienteReq())
	require.NoError(t, err)

	req := crearClienteReq()
	req.NumeroDocumento = "09999999-9"
	_, err = svc.Crear(context.Background(), uuid.New(), req)
	assert.ErrorContains(t, err, "ya existe un cliente con ese email")
}

func TestActualizarCliente_EstadoListaNegra(t *testing.T) {
	repo := newStubClienteRepo()
	svc := service.NewClienteService(repo)

	resp, err := svc.Crear(context.Background(), uuid.New(), crearClienteReq())
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	estado := model.ClienteListaNegra
	updated, err := svc.Actualizar(context.Background(), uuid.New(), id, dto.ActualizarClienteRequest{
		Estado: &estado,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ClienteListaNegra, updated.Estado)
}
