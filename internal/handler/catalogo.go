package handler

import (
	"net/http"

	"github.com/Neith21/AutoRent-Leon/internal/apierror"
	"github.com/Neith21/AutoRent-Leon/internal/dto"
	"github.com/Neith21/AutoRent-Leon/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CatalogoHandler serves the vehicle reference data (marcas, modelos,
// categorias) plus the read-only geography catalog.
type CatalogoHandler struct{ svc service.CatalogoService }

func NewCatalogoHandler(svc service.CatalogoService) *CatalogoHandler {
	return &CatalogoHandler{svc: svc}
}

// parseOptionalUUID reads an optional UUID query param, writing a 400 on
// malformed input. The bool result is false when the response was written.
func parseOptionalUUID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(name+" invalido"))
		return nil, false
	}
	return &id, true
}

// ── Marcas ───────────────────────────────────────────────────────────────────

// CrearMarca godoc
// @Summary Crear marca
// @Tags catalogo
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearMarcaRequest true "Marca"
// @Success 201 {object} dto.MarcaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/marcas [post]
func (h *CatalogoHandler) CrearMarca(c *gin.Context) {
	var req dto.CrearMarcaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearMarca(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogoHandler) ListarMarcas(c *gin.Context) {
	resp, err := h.svc.ListarMarcas(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar marcas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) ActualizarMarca(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarCatalogoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarMarca(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) DesactivarMarca(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.DesactivarMarca(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Modelos ──────────────────────────────────────────────────────────────────

// CrearModelo godoc
// @Summary Crear modelo de vehículo
// @Tags catalogo
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearModeloRequest true "Modelo"
// @Success 201 {object} dto.ModeloResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/modelos [post]
func (h *CatalogoHandler) CrearModelo(c *gin.Context) {
	var req dto.CrearModeloRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearModelo(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogoHandler) ListarModelos(c *gin.Context) {
	marcaID, ok := parseOptionalUUID(c, "marca_id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarModelos(c.Request.Context(), marcaID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar modelos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) ActualizarModelo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarCatalogoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarModelo(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) DesactivarModelo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.DesactivarModelo(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Categorías ───────────────────────────────────────────────────────────────

// CrearCategoria godoc
// @Summary Crear categoría de vehículo
// @Tags catalogo
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearCategoriaRequest true "Categoría"
// @Success 201 {object} dto.CategoriaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/categorias [post]
func (h *CatalogoHandler) CrearCategoria(c *gin.Context) {
	var req dto.CrearCategoriaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearCategoria(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogoHandler) ListarCategorias(c *gin.Context) {
	resp, err := h.svc.ListarCategorias(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar categorias"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) ActualizarCategoria(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarCatalogoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarCategoria(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) DesactivarCategoria(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.DesactivarCategoria(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Geografía (solo lectura) ─────────────────────────────────────────────────

func (h *CatalogoHandler) ListarDepartamentos(c *gin.Context) {
	resp, err := h.svc.ListarDepartamentos(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar departamentos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) ListarMunicipios(c *gin.Context) {
	departamentoID, ok := parseOptionalUUID(c, "departamento_id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarMunicipios(c.Request.Context(), departamentoID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar municipios"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) ListarDistritos(c *gin.Context) {
	municipioID, ok := parseOptionalUUID(c, "municipio_id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarDistritos(c.Request.Context(), municipioID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar distritos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
