package handler

import (
	"net/http"

	"github.com/Neith21/AutoRent-Leon/internal/apierror"
	"github.com/Neith21/AutoRent-Leon/internal/dto"
	"github.com/Neith21/AutoRent-Leon/internal/service"

	"github.com/gin-gonic/gin"
)

type PagosHandler struct{ svc service.PagoService }

func NewPagosHandler(svc service.PagoService) *PagosHandler { return &PagosHandler{svc: svc} }

// Listar godoc
// @Summary      Listar pagos
// @Description  Retorna el libro de pagos paginado, opcionalmente filtrado por alquiler.
// @Tags         pagos
// @Produce      json
// @Security     BearerAuth
// @Param        alquiler_id query string false "UUID del alquiler"
// @Param        page        query int    false "Página (default 1)"
// @Param        limit       query int    false "Registros por página (default 50)"
// @Success      200 {object} dto.PagoListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/pagos [get]
func (h *PagosHandler) Listar(c *gin.Context) {
	var filter dto.PagoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar pagos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
