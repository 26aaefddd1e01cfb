package handler

import (
	"net/http"

	"github.com/Neith21/AutoRent-Leon/internal/apierror"
	"github.com/Neith21/AutoRent-Leon/internal/dto"
	"github.com/Neith21/AutoRent-Leon/internal/middleware"
	"github.com/Neith21/AutoRent-Leon/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AlquileresHandler struct{ svc service.AlquilerService }

func NewAlquileresHandler(svc service.AlquilerService) *AlquileresHandler {
	return &AlquileresHandler{svc: svc}
}

// CalcularPrecio godoc
// @Summary      Cotizar un alquiler
// @Description  Calcula duración, precio total, anticipo y depósito sin persistir nada.
// @Tags         alquileres
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CalcularPrecioRequest true "Cliente, vehículo y rango de fechas"
// @Success      200  {object} dto.CotizacionResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/alquileres/calcular-precio [post]
func (h *AlquileresHandler) CalcularPrecio(c *gin.Context) {
	var req dto.CalcularPrecioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CalcularPrecio(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Crear godoc
// @Summary      Crear reserva
// @Description  Crea un alquiler en estado Reservado sin pago inicial. El vehículo queda Reservado.
// @Tags         alquileres
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearAlquilerRequest true "Datos de la reserva"
// @Success      201  {object} dto.AlquilerResponse
// @Failure      400  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/alquileres [post]
func (h *AlquileresHandler) Crear(c *gin.Context) {
	var req dto.CrearAlquilerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.CrearReserva(c.Request.Context(), usuarioID, req)
	if err != nil {
		status := http.StatusBadRequest
		if err == service.ErrVehiculoNoDisponible {
			status = http.StatusConflict
		}
		c.JSON(status, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CrearConPagoInicial godoc
// @Summary      Crear alquiler con pago inicial
// @Description  Crea el alquiler y registra anticipo (y depósito si aplica) en una sola transacción. La suma de pagos debe cubrir exactamente lo requerido.
// @Tags         alquileres
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearAlquilerConPagoRequest true "Alquiler + pagos iniciales"
// @Success      201  {object} dto.AlquilerResponse
// @Failure      400  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/alquileres/con-pago-inicial [post]
func (h *AlquileresHandler) CrearConPagoInicial(c *gin.Context) {
	var req dto.CrearAlquilerConPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.CrearConPagoInicial(c.Request.Context(), usuarioID, req)
	if err != nil {
		status := http.StatusBadRequest
		if err == service.ErrVehiculoNoDisponible {
			status = http.StatusConflict
		}
		c.JSON(status, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Finalizar godoc
// @Summary      Finalizar alquiler
// @Description  Liquida el alquiler: cargos por retraso y combustible, pago final, acreditación del depósito, reembolso y factura. Todo o nada.
// @Tags         alquileres
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del alquiler"
// @Param        body body dto.FinalizarAlquilerRequest true "Datos de la devolución"
// @Success      200  {object} dto.FinalizarAlquilerResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/alquileres/{id}/finalizar [post]
func (h *AlquileresHandler) Finalizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.FinalizarAlquilerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Finalizar(c.Request.Context(), usuarioID, id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AgregarPago godoc
// @Summary      Agregar pago a un alquiler
// @Description  Registra un pago contra la reserva o el alquiler activo. Completa la activación cuando el anticipo y el depósito quedan cubiertos.
// @Tags         alquileres
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del alquiler"
// @Param        body body dto.AgregarPagoRequest true "Pago"
// @Success      201  {object} dto.PagoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/alquileres/{id}/pagos [post]
func (h *AlquileresHandler) AgregarPago(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.AgregarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.AgregarPago(c.Request.Context(), usuarioID, id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarPagos godoc
// @Summary Listar pagos de un alquiler
// @Tags alquileres
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID del alquiler"
// @Success 200 {array} dto.PagoResponse
// @Router /v1/alquileres/{id}/pagos [get]
func (h *AlquileresHandler) ListarPagos(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ListarPagos(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar godoc
// @Summary      Listar alquileres
// @Tags         alquileres
// @Produce      json
// @Security     BearerAuth
// @Param        estado     query string false "Reservado | Activo | Finalizado | Retrasado | Cancelado"
// @Param        cliente_id query string false "UUID del cliente"
// @Param        page       query int    false "Página (default 1)"
// @Param        limit      query int    false "Registros por página (default 50)"
// @Success      200 {object} dto.AlquilerListResponse
// @Router       /v1/alquileres [get]
func (h *AlquileresHandler) Listar(c *gin.Context) {
	var filter dto.AlquilerFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar alquileres"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AlquileresHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary      Actualizar alquiler
// @Description  Permite extender la fecha fin (re-verifica solapamientos y recalcula el precio), cambiar sucursal de devolución u observaciones.
// @Tags         alquileres
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del alquiler"
// @Param        body body dto.ActualizarAlquilerRequest true "Campos a modificar"
// @Success      200  {object} dto.AlquilerResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/alquileres/{id} [put]
func (h *AlquileresHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarAlquilerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Actualizar(c.Request.Context(), usuarioID, id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Desactivar godoc
// @Summary      Cancelar alquiler
// @Description  Cancela la reserva o alquiler y libera el vehículo. Borrado lógico.
// @Tags         alquileres
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del alquiler"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /v1/alquileres/{id} [delete]
func (h *AlquileresHandler) Desactivar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	if err := h.svc.Desactivar(c.Request.Context(), usuarioID, id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
